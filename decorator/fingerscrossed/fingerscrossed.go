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

// Package fingerscrossed implements the buffering decorator of §4.4: it
// holds back sub-threshold records until one meets the activation
// level, then flushes the backlog in order before forwarding the
// trigger.
package fingerscrossed

import (
	"io"
	"sync"

	"github.com/sabouaram/signalog/formatter"
	"github.com/sabouaram/signalog/handler"
	"github.com/sabouaram/signalog/level"
)

type entry struct {
	level   level.Level
	message string
	data    map[string]interface{}
}

// Statistics is the snapshot returned by Handler.Statistics.
type Statistics struct {
	BufferedCount   int
	Capacity        int
	Activated       bool
	ActivationLevel level.Level
	Latching        bool
}

// Handler wraps a streamable child and buffers until activation.
type Handler struct {
	mu sync.Mutex

	id    string
	name  string
	child handler.Streamable

	activationLevel level.Level
	capacity        int
	latching        bool

	buffer    []entry
	activated bool
}

// New wraps child with the given activation level (rank), capacity
// (clamped to a minimum of 1) and latching flag.
func New(child handler.Streamable, activationLevel level.Level, capacity int, latching bool) *Handler {
	if capacity < 1 {
		capacity = 1
	}
	return &Handler{
		id:              handler.NewID(),
		child:           child,
		activationLevel: activationLevel,
		capacity:        capacity,
		latching:        latching,
	}
}

func (h *Handler) SetContext(ctx string)           { h.child.SetContext(ctx) }
func (h *Handler) SetFormat(f formatter.Formatter) { h.child.SetFormat(f) }
func (h *Handler) SetStream(w io.Writer)           { h.child.SetStream(w) }
func (h *Handler) SetHandlerName(name string)      { h.name = name }
func (h *Handler) GetHandlerName() string          { return h.name }
func (h *Handler) GetHandlerID() string            { return h.id }

// Invoke implements §4.4's state machine.
func (h *Handler) Invoke(lvl level.Level, message string, data map[string]interface{}) (string, bool) {
	h.mu.Lock()

	if h.activated && h.latching {
		h.mu.Unlock()
		return h.child.Invoke(lvl, message, data)
	}

	if lvl.Rank() >= h.activationLevel.Rank() {
		backlog := h.buffer
		h.buffer = nil
		h.activated = true
		h.mu.Unlock()

		var last string
		var ok bool
		for _, e := range backlog {
			last, ok = h.child.Invoke(e.level, e.message, e.data)
		}
		last, ok = h.child.Invoke(lvl, message, data)
		return last, ok
	}

	if len(h.buffer) >= h.capacity {
		h.buffer = h.buffer[1:]
	}
	h.buffer = append(h.buffer, entry{level: lvl, message: message, data: data})
	h.mu.Unlock()
	return "", false
}

// Flush drains the buffer to the wrapped handler without activation.
func (h *Handler) Flush() {
	h.mu.Lock()
	backlog := h.buffer
	h.buffer = nil
	h.mu.Unlock()

	for _, e := range backlog {
		h.child.Invoke(e.level, e.message, e.data)
	}
}

// Reset clears the activated flag and buffer; intended for tests.
func (h *Handler) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.activated = false
	h.buffer = nil
}

// Statistics exposes the decorator's internal state for observability
// and tests.
func (h *Handler) Statistics() Statistics {
	h.mu.Lock()
	defer h.mu.Unlock()
	return Statistics{
		BufferedCount:   len(h.buffer),
		Capacity:        h.capacity,
		Activated:       h.activated,
		ActivationLevel: h.activationLevel,
		Latching:        h.latching,
	}
}
