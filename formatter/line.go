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

package formatter

import (
	"encoding/json"
	"fmt"

	"github.com/sabouaram/signalog/record"
)

// Line renders a single-line, human-greppable form: context, level,
// message, and the data sub-map as compact JSON.
type Line struct{}

func NewLine() Line { return Line{} }

func (Line) Format(rec *record.Record) ([]byte, error) {
	data, err := json.Marshal(rec.Data())
	if err != nil {
		return nil, err
	}
	return []byte(fmt.Sprintf("[%s] %s: %s %s", rec.Context(), rec.Level().String(), rec.Message(), data)), nil
}

// JSON renders the full record as JSON, root-key order preserved.
type JSON struct{}

func NewJSON() JSON { return JSON{} }

func (JSON) Format(rec *record.Record) ([]byte, error) {
	return json.Marshal(rec)
}

// Human renders a multi-line, indented form meant for an interactive
// console.
type Human struct{}

func NewHuman() Human { return Human{} }

func (Human) Format(rec *record.Record) ([]byte, error) {
	out := fmt.Sprintf("%s\n  level:   %s\n  context: %s\n", rec.Message(), rec.Level().String(), rec.Context())
	for _, k := range rec.Data().Keys() {
		v, _ := rec.Data().Get(k)
		out += fmt.Sprintf("  %s: %v\n", k, v)
	}
	return []byte(out), nil
}
