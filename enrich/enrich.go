/*
 * MIT License
 *
 * Copyright (c) 2026 sabouaram
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

// Package enrich provides ready-made nullary producers (§9's
// "enricher") for registration as root fields or extras: timestamp,
// a fresh UUID per record, memory usage, client IP, and an HTTP request
// snapshot.
package enrich

import (
	"net/http"
	"runtime"
	"time"

	uuid "github.com/hashicorp/go-uuid"

	"github.com/sabouaram/signalog/fields"
)

// Timestamp returns a producer emitting the current time in RFC3339Nano.
func Timestamp() fields.Producer {
	return func() interface{} { return time.Now().Format(time.RFC3339Nano) }
}

// UUID returns a producer emitting a fresh random UUID per call. This
// is distinct from handler identity (assigned once, at construction):
// an enricher runs once per record.
func UUID() fields.Producer {
	return func() interface{} {
		id, err := uuid.GenerateUUID()
		if err != nil {
			return ""
		}
		return id
	}
}

// Memory returns a producer emitting the process's current heap usage
// in bytes.
func Memory() fields.Producer {
	return func() interface{} {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)
		return m.HeapAlloc
	}
}

// ClientIP returns a producer emitting req's remote address, preferring
// an X-Forwarded-For header if present.
func ClientIP(req *http.Request) fields.Producer {
	return func() interface{} {
		if req == nil {
			return ""
		}
		if fwd := req.Header.Get("X-Forwarded-For"); fwd != "" {
			return fwd
		}
		return req.RemoteAddr
	}
}

// RequestSnapshot returns a producer emitting a compact map describing
// req: method, path, and remote address.
func RequestSnapshot(req *http.Request) fields.Producer {
	return func() interface{} {
		if req == nil {
			return map[string]interface{}{}
		}
		return map[string]interface{}{
			"method": req.Method,
			"path":   req.URL.Path,
			"remote": req.RemoteAddr,
		}
	}
}
