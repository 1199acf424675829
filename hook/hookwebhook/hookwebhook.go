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

// Package hookwebhook is a thin wrapper over the shared HTTP transport
// (§4.7), POSTing a JSON body built by an optional caller-supplied
// formatter, default { message, data, timestamp }.
package hookwebhook

import (
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/sabouaram/signalog/fields"
	"github.com/sabouaram/signalog/formatter"
	"github.com/sabouaram/signalog/handler"
	"github.com/sabouaram/signalog/level"
	"github.com/sabouaram/signalog/record"
	"github.com/sabouaram/signalog/transport"
)

type defaultBody struct {
	Message   string      `json:"message"`
	Data      interface{} `json:"data"`
	Timestamp int64       `json:"timestamp"`
}

// Handler posts every accepted record to an HTTP endpoint.
type Handler struct {
	*handler.Base

	mu     sync.Mutex
	stream io.Writer

	url       string
	transport *transport.Transport
}

// New returns a Handler posting to url through tr.
func New(url string, tr *transport.Transport, minLevel level.Level, root, extra *fields.Registry) *Handler {
	h := &Handler{
		Base:      handler.NewBase(handler.NewID(), minLevel, root, extra),
		url:       url,
		transport: tr,
	}
	h.SetFormat(formatter.Func(h.body))
	return h
}

func (h *Handler) SetStream(w io.Writer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stream = w
}

// body renders the default webhook body shape for rec; callers wanting
// a custom shape should install their own Formatter via SetFormat.
func (h *Handler) body(rec *record.Record) ([]byte, error) {
	return json.Marshal(defaultBody{
		Message:   rec.Message(),
		Data:      rec.Data(),
		Timestamp: time.Now().Unix(),
	})
}

func (h *Handler) Invoke(lvl level.Level, message string, callContext map[string]interface{}) (string, bool) {
	if !h.Responsible(lvl) {
		return "", false
	}

	payload, ok := h.BuildAndFormat(lvl, message, callContext)
	if !ok {
		return "", false
	}

	h.mu.Lock()
	w := h.stream
	h.mu.Unlock()

	if w != nil {
		if _, err := w.Write(append(payload, '\n')); err != nil {
			return "", false
		}
		return string(payload), true
	}

	if !h.transport.Send(h.url, payload) {
		return "", false
	}
	return string(payload), true
}
