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

import "encoding/json"

// Map is a small insertion-ordered string-keyed map. encoding/json always
// sorts map[string]interface{} keys alphabetically; the formatter contract
// (§6) requires the record's root-key order to be preserved as built, so
// Record and its nested "data" sub-map use this instead of a plain map.
type Map struct {
	keys []string
	vals map[string]interface{}
}

// NewMap returns an empty ordered map.
func NewMap() *Map {
	return &Map{vals: make(map[string]interface{})}
}

// Set inserts or overwrites key, appending it to the key order on first
// insertion only — overwriting a key never changes its position.
func (m *Map) Set(key string, val interface{}) *Map {
	if m == nil {
		return m
	}
	if _, ok := m.vals[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.vals[key] = val
	return m
}

// Get returns the value for key and whether it was present.
func (m *Map) Get(key string) (interface{}, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.vals[key]
	return v, ok
}

// Has reports whether key is present.
func (m *Map) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len returns the number of entries.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Merge copies every entry of src into m, src's values winning ties. It
// respects src's own key order for newly introduced keys.
func (m *Map) Merge(src *Map) *Map {
	if m == nil || src == nil {
		return m
	}
	for _, k := range src.keys {
		m.Set(k, src.vals[k])
	}
	return m
}

// ToMap returns a plain copy for callers (e.g. formatters) that only need
// lookups and don't care about order.
func (m *Map) ToMap() map[string]interface{} {
	out := make(map[string]interface{}, m.Len())
	if m == nil {
		return out
	}
	for k, v := range m.vals {
		out[k] = v
	}
	return out
}

// MarshalJSON emits the object with keys in insertion order, which
// encoding/json's map handling cannot do on its own.
func (m *Map) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	if m == nil {
		return append(buf, '}'), nil
	}
	for i, k := range m.keys {
		if i > 0 {
			buf = append(buf, ',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf = append(buf, kb...)
		buf = append(buf, ':')
		vb, err := json.Marshal(m.vals[k])
		if err != nil {
			return nil, err
		}
		buf = append(buf, vb...)
	}
	return append(buf, '}'), nil
}
