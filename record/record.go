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

// Package record builds the finished log record handed to every
// formatter: message interpolation, the root-field/extra two-tier
// enrichment, and the record's on-the-wire shape.
package record

import (
	"fmt"

	"github.com/sabouaram/signalog/fields"
	"github.com/sabouaram/signalog/level"
)

// Record is the fully-built map handed to a Formatter. It always carries
// context, level and message at the root, plus whatever root fields were
// registered, plus a "data" sub-map (never absent, possibly empty).
type Record struct {
	root *Map
}

// Context returns the logger context string.
func (r *Record) Context() string {
	v, _ := r.root.Get("context")
	s, _ := v.(string)
	return s
}

// Level returns the record's level.
func (r *Record) Level() level.Level {
	v, _ := r.root.Get("level")
	s, _ := v.(string)
	l, _ := level.Parse(s)
	return l
}

// Message returns the interpolated message.
func (r *Record) Message() string {
	v, _ := r.root.Get("message")
	s, _ := v.(string)
	return s
}

// Data returns the record's "data" sub-map (the call-site context merged
// with extras). Never nil.
func (r *Record) Data() *Map {
	v, _ := r.root.Get("data")
	m, _ := v.(*Map)
	if m == nil {
		m = NewMap()
	}
	return m
}

// Root returns the root-level ordered map (context, level, message, and
// every registered root field, plus "data" last).
func (r *Record) Root() *Map {
	return r.root
}

// Get looks up a root-level key.
func (r *Record) Get(key string) (interface{}, bool) {
	return r.root.Get(key)
}

// MarshalJSON delegates to the ordered root map so root-field order is
// preserved on the wire (§6).
func (r *Record) MarshalJSON() ([]byte, error) {
	return r.root.MarshalJSON()
}

// Builder interpolates a raw message template against registered root
// fields and extras and produces a finished Record. One Builder is shared
// by every handler on a Logger; it holds no per-call state.
type Builder struct {
	RootFields *fields.Registry
	Extras     *fields.Registry
}

// NewBuilder returns a Builder backed by the given root-field and extra
// registries.
func NewBuilder(root, extra *fields.Registry) *Builder {
	return &Builder{RootFields: root, Extras: extra}
}

// Build implements §4.1: evaluate root-field producers, evaluate extra
// producers and merge them under the call-site context (call-site wins
// ties), interpolate the message against the union, then assemble the
// finished Record.
func (b *Builder) Build(ctx string, lvl level.Level, message string, callContext map[string]interface{}) *Record {
	root := NewMap()
	root.Set("context", ctx)
	root.Set("level", lvl.String())

	rootVals := b.RootFields.Evaluate()

	merged := NewMap()
	for k, v := range b.Extras.Evaluate() {
		merged.Set(k, v)
	}
	for k, v := range callContext {
		merged.Set(k, v)
	}

	lookup := make(map[string]interface{}, merged.Len()+len(rootVals))
	for _, k := range merged.Keys() {
		v, _ := merged.Get(k)
		lookup[k] = v
	}
	for k, v := range rootVals {
		lookup[k] = v
	}

	root.Set("message", Interpolate(message, lookup))

	for _, k := range b.RootFields.Names() {
		if v, ok := rootVals[k]; ok {
			root.Set(k, v)
		}
	}

	root.Set("data", merged)

	return &Record{root: root}
}

// scalarString renders a value in its direct string form, evaluating a
// zero-argument callable first. renderValue uses it for scalars and as
// the fallback when JSON encoding fails; it never produces JSON itself.
func scalarString(v interface{}) string {
	switch t := v.(type) {
	case func() interface{}:
		return scalarString(t())
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	}
	return fmt.Sprintf("%v", v)
}
