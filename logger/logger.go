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

// Package logger ties every other package together: the context holder,
// the handler registry keyed by identity with a secondary name index,
// and the fault-isolated dispatch loop of §4.3.
package logger

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/sabouaram/signalog/fields"
	"github.com/sabouaram/signalog/handler"
	"github.com/sabouaram/signalog/level"
)

// ErrorHook observes a handler failure. It must never itself raise; if it
// does, the dispatcher ignores the panic and continues (§7).
type ErrorHook func(err error, handlerID string, lvl level.Level, message string, callContext map[string]interface{})

// Logger is the context holder and dispatch loop described in §3/§4.3.
type Logger struct {
	mu sync.RWMutex

	context string

	rootFields *fields.Registry
	extras     *fields.Registry

	order    []string
	handlers map[string]handler.Handler
	byName   map[string]string

	errorHook ErrorHook
}

// New returns a Logger holding context, with empty root-field and extra
// registries and no handlers.
func New(context string) *Logger {
	return &Logger{
		context:    context,
		rootFields: fields.NewRegistry(),
		extras:     fields.NewRegistry(),
		handlers:   make(map[string]handler.Handler),
		byName:     make(map[string]string),
	}
}

// RootFields returns the registry new root-field producers are added to
// before handlers are constructed against it.
func (l *Logger) RootFields() *fields.Registry { return l.rootFields }

// Extras returns the registry new extra producers are added to.
func (l *Logger) Extras() *fields.Registry { return l.extras }

// Context returns the logger's context string.
func (l *Logger) Context() string { return l.context }

// SetErrorHook installs the callable notified of handler failures. A nil
// hook disables notification.
func (l *Logger) SetErrorHook(hook ErrorHook) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errorHook = hook
}

// AddHandler assigns the logger's context to h, then records it by
// identity and, if named, by name. Registering an already-registered
// identity a second time is a no-op (§9's "duplicate registration of the
// same instance must be rejected or is a no-op" — a no-op was chosen:
// re-adding is harmless and keeps addHandler idempotent for callers that
// reuse builder helpers defensively).
func (l *Logger) AddHandler(h handler.Handler) {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := h.GetHandlerID()
	if _, exists := l.handlers[id]; exists {
		return
	}

	h.SetContext(l.context)
	l.handlers[id] = h
	l.order = append(l.order, id)
	if name := h.GetHandlerName(); name != "" {
		l.byName[name] = id
	}
}

// GetHandler looks up a handler by name.
func (l *Logger) GetHandler(name string) (handler.Handler, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	id, ok := l.byName[name]
	if !ok {
		return nil, false
	}
	h, ok := l.handlers[id]
	return h, ok
}

// GetHandlersByKind returns every registered handler whose concrete Go
// type's string form equals kind, in registration order. kind is the
// "runtime kind" of §4.3; reflect.TypeOf(h).String() on a handler such as
// *hookfile.Handler yields "*hookfile.Handler".
func (l *Logger) GetHandlersByKind(kind string) []handler.Handler {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []handler.Handler
	for _, id := range l.order {
		h := l.handlers[id]
		if reflect.TypeOf(h).String() == kind {
			out = append(out, h)
		}
	}
	return out
}

// RemoveHandler tries a name lookup first; on failure it treats
// nameOrID as an identity. Removing by name also removes the matching
// identity entry; removing by identity also deletes its name index entry
// if one existed.
func (l *Logger) RemoveHandler(nameOrID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if id, ok := l.byName[nameOrID]; ok {
		delete(l.byName, nameOrID)
		return l.dropByID(id)
	}

	if _, ok := l.handlers[nameOrID]; ok {
		for name, id := range l.byName {
			if id == nameOrID {
				delete(l.byName, name)
				break
			}
		}
		return l.dropByID(nameOrID)
	}

	return false
}

func (l *Logger) dropByID(id string) bool {
	if _, ok := l.handlers[id]; !ok {
		return false
	}
	delete(l.handlers, id)
	for i, existing := range l.order {
		if existing == id {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
	return true
}

// log is the dispatch loop of §4.3: iterate the handler set in
// insertion order, invoke each, and isolate the rest from any single
// handler's panic.
func (l *Logger) log(lvl level.Level, message string, callContext map[string]interface{}) {
	l.mu.RLock()
	if len(l.order) == 0 {
		l.mu.RUnlock()
		return
	}
	ids := make([]string, len(l.order))
	copy(ids, l.order)
	snapshot := make(map[string]handler.Handler, len(l.handlers))
	for k, v := range l.handlers {
		snapshot[k] = v
	}
	hook := l.errorHook
	l.mu.RUnlock()

	for _, id := range ids {
		h := snapshot[id]
		if h == nil {
			continue
		}
		l.invokeSafely(h, id, lvl, message, callContext, hook)
	}
}

func (l *Logger) invokeSafely(h handler.Handler, id string, lvl level.Level, message string, callContext map[string]interface{}, hook ErrorHook) {
	defer func() {
		if r := recover(); r != nil {
			notifyHook(hook, fmt.Errorf("signalog: handler panic: %v", r), id, lvl, message, callContext)
		}
	}()
	h.Invoke(lvl, message, callContext)
}

func notifyHook(hook ErrorHook, err error, id string, lvl level.Level, message string, callContext map[string]interface{}) {
	if hook == nil {
		return
	}
	defer func() { _ = recover() }()
	hook(err, id, lvl, message, callContext)
}

// Log dispatches a record at an explicit level. callContext may be nil.
func (l *Logger) Log(lvl level.Level, message string, callContext map[string]interface{}) {
	l.log(lvl, message, callContext)
}

func (l *Logger) Debug(message string, callContext map[string]interface{}) {
	l.log(level.Debug, message, callContext)
}

func (l *Logger) Info(message string, callContext map[string]interface{}) {
	l.log(level.Info, message, callContext)
}

func (l *Logger) Notice(message string, callContext map[string]interface{}) {
	l.log(level.Notice, message, callContext)
}

func (l *Logger) Warning(message string, callContext map[string]interface{}) {
	l.log(level.Warning, message, callContext)
}

func (l *Logger) Error(message string, callContext map[string]interface{}) {
	l.log(level.Error, message, callContext)
}

func (l *Logger) Critical(message string, callContext map[string]interface{}) {
	l.log(level.Critical, message, callContext)
}

func (l *Logger) Alert(message string, callContext map[string]interface{}) {
	l.log(level.Alert, message, callContext)
}

func (l *Logger) Emergency(message string, callContext map[string]interface{}) {
	l.log(level.Emergency, message, callContext)
}
