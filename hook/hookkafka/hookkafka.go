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

// Package hookkafka produces each record through a caller-constructed
// *kafka.Writer, whose balancer picks the partition (§4.7). Flush forces
// delivery of buffered messages before shutdown.
package hookkafka

import (
	"context"
	"io"
	"sync"

	"github.com/segmentio/kafka-go"

	"github.com/sabouaram/signalog/fields"
	"github.com/sabouaram/signalog/handler"
	"github.com/sabouaram/signalog/level"
)

type Handler struct {
	*handler.Base

	mu     sync.Mutex
	stream io.Writer

	writer *kafka.Writer
}

// New binds a Handler to an already-constructed writer (brokers and
// topic configured by the caller).
func New(writer *kafka.Writer, minLevel level.Level, root, extra *fields.Registry) *Handler {
	return &Handler{Base: handler.NewBase(handler.NewID(), minLevel, root, extra), writer: writer}
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
	h.mu.Unlock()

	if w != nil {
		if _, err := w.Write(append(payload, '\n')); err != nil {
			return "", false
		}
		return string(payload), true
	}

	if err := h.writer.WriteMessages(context.Background(), kafka.Message{Value: payload}); err != nil {
		return "", false
	}
	return string(payload), true
}

// Flush forces delivery of buffered messages before shutdown by
// closing the writer. The writer is not recreated, so records invoked
// after Flush are not produced.
func (h *Handler) Flush(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.writer.Close()
}
