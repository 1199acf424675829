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

// Package hookamqp lazily declares a fan-out exchange and publishes
// each record to it with an empty routing key and persistent delivery
// mode (§4.7). The caller's *amqp.Connection must already be
// connected; this is a construction-time precondition, not something
// the handler recovers from.
package hookamqp

import (
	"context"
	"io"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/sabouaram/signalog/errors"
	"github.com/sabouaram/signalog/fields"
	"github.com/sabouaram/signalog/handler"
	"github.com/sabouaram/signalog/level"
)

type Handler struct {
	*handler.Base

	mu       sync.Mutex
	stream   io.Writer
	conn     *amqp.Connection
	exchange string

	channel *amqp.Channel
}

// New rejects a conn that is not already connected, per §4.7's
// construction-time broker-handle check.
func New(conn *amqp.Connection, exchange string, minLevel level.Level, root, extra *fields.Registry) (*Handler, error) {
	if conn == nil || conn.IsClosed() {
		return nil, errors.New(errors.CodeBadRequest, 0, "hookamqp: connection is not open", nil)
	}
	return &Handler{Base: handler.NewBase(handler.NewID(), minLevel, root, extra), conn: conn, exchange: exchange}, nil
}

func (h *Handler) SetStream(w io.Writer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stream = w
}

func (h *Handler) ensureChannel() (*amqp.Channel, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.channel != nil {
		return h.channel, nil
	}

	ch, err := h.conn.Channel()
	if err != nil {
		return nil, err
	}
	if err := ch.ExchangeDeclare(h.exchange, amqp.ExchangeFanout, true, false, false, false, nil); err != nil {
		return nil, err
	}
	h.channel = ch
	return ch, nil
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

	ch, err := h.ensureChannel()
	if err != nil {
		return "", false
	}

	if err := ch.PublishWithContext(context.Background(), h.exchange, "", false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Body:         payload,
	}); err != nil {
		return "", false
	}
	return string(payload), true
}
