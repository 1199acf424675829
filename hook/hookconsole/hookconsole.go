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

// Package hookconsole binds to the process's standard output or
// standard error (§4.7). Neither stream is ever closed: both are
// borrowed, per §5's shared-resource policy.
package hookconsole

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/sabouaram/signalog/fields"
	"github.com/sabouaram/signalog/handler"
	"github.com/sabouaram/signalog/level"
)

// Handler writes formatted records to stdout or stderr, or to a
// caller-supplied stream override.
type Handler struct {
	*handler.Base

	mu     sync.Mutex
	native io.Writer
	stream io.Writer
}

// NewStdout returns a Handler bound to os.Stdout.
func NewStdout(minLevel level.Level, root, extra *fields.Registry) *Handler {
	return &Handler{Base: handler.NewBase(handler.NewID(), minLevel, root, extra), native: os.Stdout}
}

// NewStderr returns a Handler bound to os.Stderr.
func NewStderr(minLevel level.Level, root, extra *fields.Registry) *Handler {
	return &Handler{Base: handler.NewBase(handler.NewID(), minLevel, root, extra), native: os.Stderr}
}

// SetStream redirects output away from the native stream; used for
// testing and decorator composition.
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
	if w == nil {
		w = h.native
	}
	h.mu.Unlock()

	if _, err := fmt.Fprintf(w, "%s\n", payload); err != nil {
		return "", false
	}
	return string(payload), true
}
