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

// Package level defines the eight RFC 5424 severities used across the
// logging pipeline and the sole mechanism by which handlers are gated:
// rank comparison.
package level

import "strings"

// Level is a syslog-style severity. Lower rank means less severe.
type Level uint8

const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
	Critical
	Alert
	Emergency
)

// Rank returns the ordering value used for gate comparisons. It is
// currently identical to the underlying uint8 but kept as a distinct
// method so callers never depend on the concrete representation.
func (l Level) Rank() int {
	return int(l)
}

// String returns the canonical, lowercase name of the level.
func (l Level) String() string {
	switch l {
	case Debug:
		return "debug"
	case Info:
		return "info"
	case Notice:
		return "notice"
	case Warning:
		return "warning"
	case Error:
		return "error"
	case Critical:
		return "critical"
	case Alert:
		return "alert"
	case Emergency:
		return "emergency"
	}

	return "unknown"
}

// Valid reports whether l is one of the eight defined levels.
func (l Level) Valid() bool {
	return l <= Emergency
}

// Parse converts a level name to a Level. Matching is case-insensitive.
// Unknown names return (Info, false) — callers that must not silently
// downgrade should check the boolean.
func Parse(name string) (Level, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return Debug, true
	case "info":
		return Info, true
	case "notice":
		return Notice, true
	case "warning", "warn":
		return Warning, true
	case "error", "err":
		return Error, true
	case "critical", "crit":
		return Critical, true
	case "alert":
		return Alert, true
	case "emergency", "emerg":
		return Emergency, true
	}

	return Info, false
}

// All returns the eight levels from least to most severe.
func All() []Level {
	return []Level{Debug, Info, Notice, Warning, Error, Critical, Alert, Emergency}
}
