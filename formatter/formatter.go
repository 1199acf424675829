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

// Package formatter maps a finished Record to a destination-specific
// payload (§4.8). Every formatter is a pure function of its input except
// ChromeLogger (accumulates rows across calls) and Loki (carries static
// label config); both guard their state independently of the owning
// handler, per §9's "stateful formatters" note.
package formatter

import "github.com/sabouaram/signalog/record"

// Formatter renders a Record to bytes for its destination.
type Formatter interface {
	Format(rec *record.Record) ([]byte, error)
}

// Func adapts a plain function to the Formatter interface.
type Func func(rec *record.Record) ([]byte, error)

func (f Func) Format(rec *record.Record) ([]byte, error) { return f(rec) }
