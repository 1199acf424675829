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

// Package hooksyslog opens the system log on construction, using the
// handler's context as the syslog tag, and closes it on Close (§4.7).
// It translates the eight severities onto RFC 5424 syslog priorities
// via the same rank table used everywhere else in the pipeline.
package hooksyslog

import (
	"io"
	"log/syslog"
	"sync"

	"github.com/sabouaram/signalog/errors"
	"github.com/sabouaram/signalog/fields"
	"github.com/sabouaram/signalog/handler"
	"github.com/sabouaram/signalog/level"
)

// Handler writes formatted records to the local syslog daemon.
type Handler struct {
	*handler.Base

	mu     sync.Mutex
	writer *syslog.Writer
	stream io.Writer
}

// New opens the syslog connection with ident as tag.
func New(ident string, minLevel level.Level, root, extra *fields.Registry) (*Handler, error) {
	w, err := syslog.New(syslog.LOG_INFO, ident)
	if err != nil {
		return nil, errors.New(errors.CodeUnavailable, 0, "hooksyslog: could not open syslog connection", err)
	}
	h := &Handler{Base: handler.NewBase(handler.NewID(), minLevel, root, extra), writer: w}
	h.SetContext(ident)
	return h, nil
}

func (h *Handler) SetStream(w io.Writer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stream = w
}

func syslogWrite(w *syslog.Writer, lvl level.Level, msg string) error {
	switch lvl {
	case level.Emergency:
		return w.Emerg(msg)
	case level.Alert:
		return w.Alert(msg)
	case level.Critical:
		return w.Crit(msg)
	case level.Error:
		return w.Err(msg)
	case level.Warning:
		return w.Warning(msg)
	case level.Notice:
		return w.Notice(msg)
	case level.Info:
		return w.Info(msg)
	default: // Debug
		return w.Debug(msg)
	}
}

func (h *Handler) Invoke(lvl level.Level, message string, callContext map[string]interface{}) (string, bool) {
	payload, ok := h.BuildAndFormat(lvl, message, callContext)
	if !ok {
		return "", false
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.stream != nil {
		if _, err := h.stream.Write(append(payload, '\n')); err != nil {
			return "", false
		}
		return string(payload), true
	}

	if err := syslogWrite(h.writer, lvl, string(payload)); err != nil {
		return "", false
	}
	return string(payload), true
}

// Close closes the syslog connection.
func (h *Handler) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.writer.Close()
}
