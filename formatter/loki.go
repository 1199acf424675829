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
	"regexp"
	"strconv"
	"sync"
	"time"

	"github.com/sabouaram/signalog/record"
)

var lokiLabelSanitize = regexp.MustCompile(`[^a-zA-Z0-9_]+`)

// sanitizeLokiLabel replaces runs of characters outside [a-zA-Z0-9_] with a
// single underscore and prefixes an underscore if the result does not
// start with a letter or underscore.
//
// Per §9's open question: Loki only restricts label *keys*, not values.
// The source this was distilled from sanitizes the *value* anyway; that
// behaviour is preserved verbatim rather than "fixed".
func sanitizeLokiLabel(v string) string {
	s := lokiLabelSanitize.ReplaceAllString(v, "_")
	if s == "" {
		return "_"
	}
	c := s[0]
	if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_' {
		return s
	}
	return "_" + s
}

// Loki carries the static labels applied to every stream (constructor
// config); it has no per-call mutable state, so it needs no internal
// lock, but one is kept (mu) to guard the label map against concurrent
// AddLabel calls made after construction.
type Loki struct {
	mu     sync.RWMutex
	labels map[string]string
}

// NewLoki returns a Loki formatter seeded with the given static labels.
func NewLoki(staticLabels map[string]string) *Loki {
	l := &Loki{labels: make(map[string]string, len(staticLabels))}
	for k, v := range staticLabels {
		l.labels[k] = v
	}
	return l
}

// AddLabel registers an additional static label.
func (l *Loki) AddLabel(key, value string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.labels[key] = value
}

type lokiPush struct {
	Streams []lokiStream `json:"streams"`
}

type lokiStream struct {
	Stream map[string]string `json:"stream"`
	Values [][2]string        `json:"values"`
}

func (l *Loki) Format(rec *record.Record) ([]byte, error) {
	l.mu.RLock()
	labels := make(map[string]string, len(l.labels)+2)
	for k, v := range l.labels {
		labels[k] = sanitizeLokiLabel(v)
	}
	l.mu.RUnlock()

	labels["level"] = sanitizeLokiLabel(rec.Level().String())
	if ctx := rec.Context(); ctx != "" {
		labels["context"] = sanitizeLokiLabel(ctx)
	}

	line := rec.Message()
	if rec.Data().Len() > 0 {
		dataJSON, err := json.Marshal(rec.Data())
		if err != nil {
			return nil, err
		}
		line = fmt.Sprintf("%s %s", line, dataJSON)
	}

	ts := lokiTimestamp(rec)

	push := lokiPush{Streams: []lokiStream{{
		Stream: labels,
		Values: [][2]string{{strconv.FormatInt(ts, 10), line}},
	}}}
	return json.Marshal(push)
}

// lokiTimestamp derives a nanosecond timestamp from record.timestamp if
// present (seconds as an integer are promoted to nanos; a parseable
// RFC3339 string is used as-is), falling back to wall-clock now.
func lokiTimestamp(rec *record.Record) int64 {
	if v, ok := rec.Get("timestamp"); ok {
		switch t := v.(type) {
		case int64:
			return t * int64(time.Second)
		case int:
			return int64(t) * int64(time.Second)
		case time.Time:
			return t.UnixNano()
		case string:
			if parsed, err := time.Parse(time.RFC3339Nano, t); err == nil {
				return parsed.UnixNano()
			}
		}
	}
	return time.Now().UnixNano()
}
