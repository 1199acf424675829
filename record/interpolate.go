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

package record

import (
	"encoding/json"
	"strings"
)

// Interpolate substitutes every {identifier} placeholder found in tpl with
// its value from lookup (§4.1). It is a single pass: substituted text is
// never re-scanned for further placeholders. Unknown placeholders and
// unmatched braces are preserved verbatim.
func Interpolate(tpl string, lookup map[string]interface{}) string {
	var b strings.Builder
	b.Grow(len(tpl))

	i := 0
	for i < len(tpl) {
		c := tpl[i]
		if c != '{' {
			b.WriteByte(c)
			i++
			continue
		}

		end := strings.IndexByte(tpl[i+1:], '}')
		if end < 0 {
			// No closing brace: the rest is literal.
			b.WriteString(tpl[i:])
			break
		}
		end += i + 1

		name := tpl[i+1 : end]
		if v, ok := lookup[name]; ok {
			b.WriteString(renderValue(v))
		} else {
			b.WriteString(tpl[i : end+1])
		}
		i = end + 1
	}

	return b.String()
}

// renderValue implements the scalar/compact-JSON/callable substitution
// rules of §4.1.
func renderValue(v interface{}) string {
	switch t := v.(type) {
	case func() interface{}:
		return renderValue(t())
	case string:
		return t
	}

	if isScalar(v) {
		return scalarString(v)
	}

	b, err := json.Marshal(v)
	if err != nil {
		return scalarString(v)
	}
	return string(b)
}

func isScalar(v interface{}) bool {
	switch v.(type) {
	case nil, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64, string:
		return true
	}
	return false
}
