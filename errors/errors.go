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

// Package errors gives construction-time failures a numeric code and the
// call site that raised them, while still satisfying the standard error
// interface. It is deliberately small next to the teacher's error
// hierarchy: the pipeline only ever needs to raise synchronously at
// construction (see spec §7), never to chain or collect errors across a
// request, so hierarchy/pool features were not carried over.
package errors

import (
	"fmt"
	"runtime"
)

// Code classifies a construction error the way an HTTP status would.
type Code int

const (
	CodeUnknown     Code = 0
	CodeBadRequest  Code = 400
	CodeConflict    Code = 409
	CodeInternal    Code = 500
	CodeUnavailable Code = 503
)

// Error is a construction-time error: a code, the message, the file/line
// that raised it and an optional wrapped cause.
type Error struct {
	code   Code
	msg    string
	file   string
	line   int
	parent error
}

// New captures the caller's file/line and returns an *Error. skip is the
// number of additional stack frames to skip past New itself — pass 0 from
// a direct caller, 1 if New is invoked from a small helper.
func New(code Code, skip int, msg string, parent error) *Error {
	_, file, line, _ := runtime.Caller(1 + skip)
	return &Error{code: code, msg: msg, file: file, line: line, parent: parent}
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.parent != nil {
		return fmt.Sprintf("%s (%s:%d): %v", e.msg, e.file, e.line, e.parent)
	}
	return fmt.Sprintf("%s (%s:%d)", e.msg, e.file, e.line)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.parent
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeUnknown
	}
	return e.code
}

func (e *Error) File() string {
	if e == nil {
		return ""
	}
	return e.file
}

func (e *Error) Line() int {
	if e == nil {
		return 0
	}
	return e.line
}
