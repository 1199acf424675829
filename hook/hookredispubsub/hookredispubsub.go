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

// Package hookredispubsub publishes each record to a fixed Redis
// channel (§4.7). Publish failures are swallowed to an absent return,
// per the brokered-sink error policy of §7.
package hookredispubsub

import (
	"context"
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

	mu      sync.Mutex
	stream  io.Writer
	client  *redis.Client
	channel string
}

func New(client *redis.Client, channel string, minLevel level.Level, root, extra *fields.Registry) *Handler {
	return &Handler{Base: handler.NewBase(handler.NewID(), minLevel, root, extra), client: client, channel: channel}
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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := h.client.Publish(ctx, h.channel, payload).Err(); err != nil {
		return "", false
	}
	return string(payload), true
}
