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

// Package hookfile appends formatted records to a path opened lazily on
// first accepted record (§4.7, §5). The handler owns the file and
// closes it on Close.
package hookfile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sabouaram/signalog/errors"
	"github.com/sabouaram/signalog/fields"
	"github.com/sabouaram/signalog/handler"
	"github.com/sabouaram/signalog/level"
)

// Handler lazily appends to a file path.
type Handler struct {
	*handler.Base

	mu   sync.Mutex
	path string
	mode os.FileMode

	file   *os.File
	stream io.Writer
}

// New validates that path's parent directory exists and returns a
// Handler that will open path on first accepted record.
func New(path string, mode os.FileMode, minLevel level.Level, root, extra *fields.Registry) (*Handler, error) {
	dir := filepath.Dir(path)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return nil, errors.New(errors.CodeBadRequest, 0, fmt.Sprintf("hookfile: parent directory %q does not exist", dir), nil)
	}
	return &Handler{
		Base: handler.NewBase(handler.NewID(), minLevel, root, extra),
		path: path,
		mode: mode,
	}, nil
}

func (h *Handler) SetStream(w io.Writer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stream = w
}

func (h *Handler) Invoke(lvl level.Level, message string, callContext map[string]interface{}) (string, bool) {
	payload, ok := h.BuildAndFormat(lvl, message, callContext)
	if !ok {
		return "", false
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.stream != nil {
		if _, err := fmt.Fprintf(h.stream, "%s\n", payload); err != nil {
			return "", false
		}
		return string(payload), true
	}

	if h.file == nil {
		f, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, h.mode)
		if err != nil {
			return "", false
		}
		h.file = f
	}

	if _, err := fmt.Fprintf(h.file, "%s\n", payload); err != nil {
		return "", false
	}
	return string(payload), true
}

// Close closes the owned file, if it was ever opened. Never closes a
// stream override (borrowed, per §5).
func (h *Handler) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.file == nil {
		return nil
	}
	err := h.file.Close()
	h.file = nil
	return err
}
