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

// Package handler defines the contract every sink, terminal or decorator,
// implements (§4.2), plus Base, the embeddable struct that supplies
// identity, naming, level gating and record building to terminal
// handlers.
package handler

import (
	"io"

	"github.com/sabouaram/signalog/fields"
	"github.com/sabouaram/signalog/formatter"
	"github.com/sabouaram/signalog/level"
	"github.com/sabouaram/signalog/record"
)

// Handler is the contract every sink implements: level gate, identity,
// naming, and invocation. Invoke returns the formatted payload and true
// on delivery, or ("", false) on a dropped or failed record — it never
// panics out to the caller; destination errors are swallowed per §7.
type Handler interface {
	Invoke(lvl level.Level, message string, callContext map[string]interface{}) (string, bool)
	SetContext(ctx string)
	SetFormat(f formatter.Formatter)
	SetHandlerName(name string)
	GetHandlerName() string
	GetHandlerID() string
}

// Streamable is a Handler that can have its native destination replaced
// by an arbitrary io.Writer, the capability decorators require from
// whatever they wrap (§9: "model this with a capability interface, not
// a class hierarchy").
type Streamable interface {
	Handler
	SetStream(w io.Writer)
}

// Base supplies every terminal handler with identity, naming, the
// level gate, and record construction. It is not itself a Handler:
// embedders provide Invoke and, where relevant, SetStream.
type Base struct {
	id       string
	name     string
	minLevel level.Level
	context  string
	format   formatter.Formatter
	builder  *record.Builder
}

// NewBase returns a Base identified by id, gated at minLevel, rendering
// through the line formatter until SetFormat overrides it.
func NewBase(id string, minLevel level.Level, root, extra *fields.Registry) *Base {
	return &Base{
		id:       id,
		minLevel: minLevel,
		format:   formatter.NewLine(),
		builder:  record.NewBuilder(root, extra),
	}
}

func (b *Base) SetContext(ctx string)             { b.context = ctx }
func (b *Base) SetFormat(f formatter.Formatter)   { b.format = f }
func (b *Base) SetHandlerName(name string)        { b.name = name }
func (b *Base) GetHandlerName() string            { return b.name }
func (b *Base) GetHandlerID() string              { return b.id }

// Responsible reports whether this handler must process a record at
// lvl, per the level-gate invariant of §4.2.
func (b *Base) Responsible(lvl level.Level) bool {
	return lvl.Rank() >= b.minLevel.Rank()
}

// BuildRecord evaluates root fields, extras and the message interpolator
// into a Record without formatting it, so a handler that needs structured
// access to root fields or the merged data map — rather than just the
// formatted wire payload — can read it directly (e.g. hookdatabase's
// column mapping). ok is false when the handler is not responsible for
// lvl.
func (b *Base) BuildRecord(lvl level.Level, message string, callContext map[string]interface{}) (rec *record.Record, ok bool) {
	if !b.Responsible(lvl) {
		return nil, false
	}
	return b.builder.Build(b.context, lvl, message, callContext), true
}

// BuildAndFormat is the shared "responsible? build. format." sequence
// every terminal handler opens Invoke with. ok is false when the
// handler is not responsible for lvl; ok being true does not imply
// delivery succeeded, only that a payload was produced.
func (b *Base) BuildAndFormat(lvl level.Level, message string, callContext map[string]interface{}) (payload []byte, ok bool) {
	rec, ok := b.BuildRecord(lvl, message, callContext)
	if !ok {
		return nil, false
	}
	return b.Format(rec)
}

// Format renders an already-built Record through the handler's installed
// formatter.
func (b *Base) Format(rec *record.Record) (payload []byte, ok bool) {
	out, err := b.format.Format(rec)
	if err != nil {
		return nil, false
	}
	return out, true
}
