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

// Package sampling implements the four accept/drop strategies of §4.5:
// rate, percentage, smart and fingerprint. Each strategy wraps a
// streamable child handler and only forwards records the strategy
// accepts.
package sampling

import (
	"io"
	"sort"
	"sync"
	"time"

	"github.com/minio/highwayhash"
	"github.com/valyala/fastrand"

	"github.com/sabouaram/signalog/formatter"
	"github.com/sabouaram/signalog/handler"
	"github.com/sabouaram/signalog/level"
)

// Strategy names a sampling algorithm.
type Strategy string

const (
	Rate        Strategy = "rate"
	Percentage  Strategy = "percentage"
	Smart       Strategy = "smart"
	Fingerprint Strategy = "fingerprint"
)

// fingerprintKey is the highwayhash key. §4.5 only requires a
// non-predictable 128-bit hash of level+message, not a secret; a fixed
// key is sufficient since the hash is never used adversarially.
var fingerprintKey = make([]byte, 32)

type fpEntry struct {
	count     int
	firstSeen time.Time
	lastSeen  time.Time
}

// Statistics is the snapshot returned by Handler.Statistics.
type Statistics struct {
	Strategy           Strategy
	Rate               int
	Percentage         int
	AlwaysLogLevels    []level.Level
	Window             time.Duration
	TrackedFingerprints int
	CurrentSecondCount  int
}

// Handler wraps a streamable child and gates records through one
// sampling strategy.
type Handler struct {
	mu sync.Mutex

	id    string
	name  string
	child handler.Streamable

	strategy Strategy

	rate            int
	percentage      int
	alwaysLogLevels []level.Level
	window          time.Duration

	currentSecond   int64
	countThisSecond int

	fingerprints map[string]*fpEntry
}

// NewRate returns a Handler using the rate strategy (first N per
// wall-clock second).
func NewRate(child handler.Streamable, rate int) *Handler {
	return &Handler{id: handler.NewID(), child: child, strategy: Rate, rate: rate}
}

// NewPercentage returns a Handler using the percentage strategy
// (0-100, draw uniform in [1,100], accept iff <= percentage).
func NewPercentage(child handler.Streamable, percentage int) *Handler {
	return &Handler{id: handler.NewID(), child: child, strategy: Percentage, percentage: percentage}
}

// NewSmart returns a Handler that always accepts at or above the
// lowest rank in alwaysLogLevels, else applies the percentage gate.
func NewSmart(child handler.Streamable, alwaysLogLevels []level.Level, samplePercentage int) *Handler {
	return &Handler{
		id: handler.NewID(), child: child, strategy: Smart,
		alwaysLogLevels: alwaysLogLevels, percentage: samplePercentage,
	}
}

// NewFingerprint returns a Handler that deduplicates identical
// (level, message-prefix) records within window.
func NewFingerprint(child handler.Streamable, window time.Duration) *Handler {
	return &Handler{
		id: handler.NewID(), child: child, strategy: Fingerprint,
		window: window, fingerprints: make(map[string]*fpEntry),
	}
}

func (h *Handler) SetContext(ctx string)           { h.child.SetContext(ctx) }
func (h *Handler) SetFormat(f formatter.Formatter) { h.child.SetFormat(f) }
func (h *Handler) SetStream(w io.Writer)           { h.child.SetStream(w) }
func (h *Handler) SetHandlerName(name string)      { h.name = name }
func (h *Handler) GetHandlerName() string          { return h.name }
func (h *Handler) GetHandlerID() string            { return h.id }

func (h *Handler) Invoke(lvl level.Level, message string, data map[string]interface{}) (string, bool) {
	if !h.accepts(lvl, message) {
		return "", false
	}
	return h.child.Invoke(lvl, message, data)
}

func (h *Handler) accepts(lvl level.Level, message string) bool {
	switch h.strategy {
	case Rate:
		return h.acceptRate()
	case Percentage:
		return acceptPercentage(h.percentage)
	case Smart:
		return h.acceptSmart(lvl)
	case Fingerprint:
		return h.acceptFingerprint(lvl, message)
	}
	return true
}

func (h *Handler) acceptRate() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	now := time.Now().Unix()
	if now != h.currentSecond {
		h.currentSecond = now
		h.countThisSecond = 0
	}
	h.countThisSecond++
	return h.countThisSecond <= h.rate
}

func acceptPercentage(percentage int) bool {
	if percentage >= 100 {
		return true
	}
	if percentage <= 0 {
		return false
	}
	draw := int(fastrand.Uint32n(100)) + 1
	return draw <= percentage
}

func (h *Handler) acceptSmart(lvl level.Level) bool {
	if len(h.alwaysLogLevels) > 0 {
		min := h.alwaysLogLevels[0]
		for _, l := range h.alwaysLogLevels[1:] {
			if l.Rank() < min.Rank() {
				min = l
			}
		}
		if lvl.Rank() >= min.Rank() {
			return true
		}
	}
	return acceptPercentage(h.percentage)
}

const fingerprintMessageLimit = 200

func fingerprintOf(lvl level.Level, message string) string {
	if len(message) > fingerprintMessageLimit {
		message = message[:fingerprintMessageLimit]
	}
	h, _ := highwayhash.New128(fingerprintKey)
	h.Write([]byte(lvl.String() + ":" + message))
	return string(h.Sum(nil))
}

func (h *Handler) acceptFingerprint(lvl level.Level, message string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-h.window)
	for k, e := range h.fingerprints {
		if e.lastSeen.Before(cutoff) {
			delete(h.fingerprints, k)
		}
	}

	key := fingerprintOf(lvl, message)
	if e, ok := h.fingerprints[key]; ok {
		e.count++
		e.lastSeen = now
		return false
	}

	h.fingerprints[key] = &fpEntry{count: 1, firstSeen: now, lastSeen: now}
	return true
}

// Statistics exposes the decorator's configuration and live state.
func (h *Handler) Statistics() Statistics {
	h.mu.Lock()
	defer h.mu.Unlock()

	levels := append([]level.Level{}, h.alwaysLogLevels...)
	sort.Slice(levels, func(i, j int) bool { return levels[i].Rank() < levels[j].Rank() })

	return Statistics{
		Strategy:            h.strategy,
		Rate:                h.rate,
		Percentage:          h.percentage,
		AlwaysLogLevels:     levels,
		Window:              h.window,
		TrackedFingerprints: len(h.fingerprints),
		CurrentSecondCount:  h.countThisSecond,
	}
}

