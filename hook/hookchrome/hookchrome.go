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

// Package hookchrome accumulates rows in a ChromeLogger formatter and,
// on request shutdown, emits the batch as a base64 X-ChromeLogger-Data
// response header (§4.7, §6). A 240000-byte in-memory cap bounds the
// batch: when no stream override is set and the accumulated payload
// exceeds the cap, Invoke returns that payload and the formatter starts
// a new, empty batch. The rows of the replaced batch are not emitted by
// EmitHeader.
package hookchrome

import (
	"encoding/base64"
	"io"
	"net/http"
	"sync"

	"github.com/sabouaram/signalog/fields"
	"github.com/sabouaram/signalog/formatter"
	"github.com/sabouaram/signalog/handler"
	"github.com/sabouaram/signalog/level"
)

const maxBatchBytes = 240000

type Handler struct {
	*handler.Base

	mu      sync.Mutex
	chrome  *formatter.ChromeLogger
	stream  io.Writer
}

func New(minLevel level.Level, root, extra *fields.Registry) *Handler {
	chrome := formatter.NewChromeLogger()
	h := &Handler{Base: handler.NewBase(handler.NewID(), minLevel, root, extra), chrome: chrome}
	h.SetFormat(chrome)
	return h
}

func (h *Handler) SetStream(w io.Writer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stream = w
}

func (h *Handler) Invoke(lvl level.Level, message string, callContext map[string]interface{}) (string, bool) {
	payload, ok := h.BuildAndFormat(lvl, message, callContext)
	if !ok {
		return "", false
	}

	h.mu.Lock()
	w := h.stream
	overflow := len(payload) > maxBatchBytes
	h.mu.Unlock()

	if w != nil {
		if _, err := w.Write(append(payload, '\n')); err != nil {
			return "", false
		}
	} else if overflow {
		h.chrome.Reset()
	}
	return string(payload), true
}

// EmitHeader writes the accumulated batch as a base64
// X-ChromeLogger-Data header and resets the batch, but only if resp
// has not already written its status line (headers not yet
// committed).
func (h *Handler) EmitHeader(resp http.ResponseWriter) bool {
	if committed, ok := resp.(interface{ Written() bool }); ok && committed.Written() {
		return false
	}

	payload, err := h.chrome.Format(nil)
	if err != nil {
		return false
	}
	resp.Header().Set("X-ChromeLogger-Data", base64.StdEncoding.EncodeToString(payload))
	h.chrome.Reset()
	return true
}
