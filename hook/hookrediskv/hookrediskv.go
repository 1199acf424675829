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

// Package hookrediskv stores each record under a random key with a
// fixed TTL via SETEX (§4.7). The connection is lazy: the first
// successful SETEX marks the handler live; a failure before any store
// has succeeded latches a "silently failed" state so later records
// simply drop. Once live, a failed store drops only that record.
package hookrediskv

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sabouaram/signalog/fields"
	"github.com/sabouaram/signalog/handler"
	"github.com/sabouaram/signalog/level"
)

type Handler struct {
	*handler.Base

	mu     sync.Mutex
	stream io.Writer

	client *redis.Client
	ttl    time.Duration
	failed bool
	probed bool
}

// New binds a Handler to an already-constructed client. ttl is the key
// expiry.
func New(client *redis.Client, ttl time.Duration, minLevel level.Level, root, extra *fields.Registry) *Handler {
	return &Handler{Base: handler.NewBase(handler.NewID(), minLevel, root, extra), client: client, ttl: ttl}
}

func (h *Handler) SetStream(w io.Writer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stream = w
}

func randomSuffix() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func (h *Handler) Invoke(lvl level.Level, message string, callContext map[string]interface{}) (string, bool) {
	payload, ok := h.BuildAndFormat(lvl, message, callContext)
	if !ok {
		return "", false
	}

	h.mu.Lock()
	w := h.stream
	failed := h.failed
	h.mu.Unlock()

	if w != nil {
		if _, err := w.Write(append(payload, '\n')); err != nil {
			return "", false
		}
		return string(payload), true
	}

	if failed {
		return "", false
	}

	if err := h.store(payload); err != nil {
		h.mu.Lock()
		if !h.probed {
			h.failed = true
		}
		h.mu.Unlock()
		return "", false
	}
	h.mu.Lock()
	h.probed = true
	h.mu.Unlock()
	return string(payload), true
}

func (h *Handler) store(payload []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	encoded := payload
	if !json.Valid(encoded) {
		var err error
		encoded, err = json.Marshal(string(payload))
		if err != nil {
			return err
		}
	}

	key := "Redis" + randomSuffix()
	return h.client.SetEx(ctx, key, encoded, h.ttl).Err()
}
