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

// Package fields implements the two independent "first wins" producer
// registries described in §3: root fields (addField) and extras
// (addExtra). Both are plain name -> nullary-producer maps; the package
// only exists twice (one Registry per surface) so a key registered on one
// surface can never leak onto the other.
//
// The registry is a small, mutex-guarded map rather than the teacher's
// libctx.Config[T] (a generic sync.Map wrapper over an arbitrary context
// key type): here the key space is always a plain string and the only
// operations needed are register-once and evaluate-all, so a dedicated,
// smaller type was a better fit than pulling in the generic one.
package fields

import "sync"

// Producer is a nullary callable evaluated once per record.
type Producer func() interface{}

// Registry holds named producers under a first-registration-wins policy.
type Registry struct {
	mu    sync.RWMutex
	order []string
	prod  map[string]Producer
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{prod: make(map[string]Producer)}
}

// Add registers name with producer. A later call with an already-registered
// name is a silent no-op (§3, §8).
func (r *Registry) Add(name string, producer Producer) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.prod[name]; ok {
		return
	}
	r.order = append(r.order, name)
	r.prod[name] = producer
}

// Has reports whether name is already registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.prod[name]
	return ok
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Evaluate runs every registered producer once, in registration order,
// and returns the results keyed by name. The returned map carries no
// order; callers that need registration order iterate Names().
func (r *Registry) Evaluate() map[string]interface{} {
	r.mu.RLock()
	names := make([]string, len(r.order))
	copy(names, r.order)
	prod := make(map[string]Producer, len(r.prod))
	for k, v := range r.prod {
		prod[k] = v
	}
	r.mu.RUnlock()

	out := make(map[string]interface{}, len(names))
	for _, n := range names {
		if p := prod[n]; p != nil {
			out[n] = p()
		}
	}
	return out
}
