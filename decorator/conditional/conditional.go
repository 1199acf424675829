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

// Package conditional implements the predicate-routing decorator of
// §4.6: the first matching predicate's handler receives the record; an
// optional fallback catches everything else.
package conditional

import (
	"io"

	"github.com/sabouaram/signalog/formatter"
	"github.com/sabouaram/signalog/handler"
	"github.com/sabouaram/signalog/level"
)

// Predicate decides whether its paired handler should receive a record.
type Predicate func(lvl level.Level, message string, callContext map[string]interface{}) bool

// Route pairs a predicate with the handler it guards.
type Route struct {
	Predicate Predicate
	Handler   handler.Streamable
}

// Handler dispatches to the first matching Route, or to Fallback.
type Handler struct {
	id       string
	name     string
	routes   []Route
	fallback handler.Streamable
}

// New returns a Handler trying routes in order, falling back to
// fallback (which may be nil) when nothing matches.
func New(routes []Route, fallback handler.Streamable) *Handler {
	return &Handler{id: handler.NewID(), routes: routes, fallback: fallback}
}

// SetContext, SetFormat and SetStream propagate to every route's
// handler and to the fallback, per §4.6.
func (h *Handler) SetContext(ctx string) {
	for _, r := range h.routes {
		r.Handler.SetContext(ctx)
	}
	if h.fallback != nil {
		h.fallback.SetContext(ctx)
	}
}

func (h *Handler) SetFormat(f formatter.Formatter) {
	for _, r := range h.routes {
		r.Handler.SetFormat(f)
	}
	if h.fallback != nil {
		h.fallback.SetFormat(f)
	}
}

func (h *Handler) SetStream(w io.Writer) {
	for _, r := range h.routes {
		r.Handler.SetStream(w)
	}
	if h.fallback != nil {
		h.fallback.SetStream(w)
	}
}

func (h *Handler) SetHandlerName(name string) { h.name = name }
func (h *Handler) GetHandlerName() string     { return h.name }
func (h *Handler) GetHandlerID() string       { return h.id }

func (h *Handler) Invoke(lvl level.Level, message string, callContext map[string]interface{}) (string, bool) {
	for _, r := range h.routes {
		if r.Predicate(lvl, message, callContext) {
			return r.Handler.Invoke(lvl, message, callContext)
		}
	}
	if h.fallback != nil {
		return h.fallback.Invoke(lvl, message, callContext)
	}
	return "", false
}
