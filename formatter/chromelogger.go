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
	"sync"

	"github.com/sabouaram/signalog/level"
	"github.com/sabouaram/signalog/record"
)

var chromeColumns = []string{"log", "backtrace", "type"}

func chromeType(lvl level.Level) string {
	switch lvl {
	case level.Emergency, level.Alert, level.Critical, level.Error:
		return "error"
	case level.Warning:
		return "warn"
	case level.Notice, level.Info:
		return "info"
	default: // Debug
		return "log"
	}
}

// ChromeLogger accumulates rows for the X-ChromeLogger-Data header
// protocol (§4.8, §9). Unlike the other formatters it is not a pure
// function of one record: every Format call appends a row and returns
// the full batch built so far, and the handler decides when to flush
// and Reset.
type ChromeLogger struct {
	mu   sync.Mutex
	rows [][3]interface{}
}

func NewChromeLogger() *ChromeLogger {
	return &ChromeLogger{}
}

type chromePayload struct {
	Version string          `json:"version"`
	Columns []string        `json:"columns"`
	Rows    [][3]interface{} `json:"rows"`
}

// Format appends a row for rec and returns the JSON-encoded batch
// payload accumulated so far. An empty-input invocation (rec == nil)
// returns the current batch without appending anything, letting a
// handler peek at pending size before deciding to flush.
func (c *ChromeLogger) Format(rec *record.Record) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if rec != nil {
		backtrace := "unknown"
		if file, ok := rec.Get("file"); ok {
			line, _ := rec.Get("line")
			backtrace = fmt.Sprintf("%v:%v", file, line)
		}

		parts := []interface{}{rec.Message()}
		for _, k := range rec.Data().Keys() {
			v, _ := rec.Data().Get(k)
			parts = append(parts, map[string]interface{}{k: v})
		}

		c.rows = append(c.rows, [3]interface{}{parts, backtrace, chromeType(rec.Level())})
	}

	payload := chromePayload{
		Version: "4.1.0",
		Columns: chromeColumns,
		Rows:    c.rows,
	}
	return json.Marshal(payload)
}

// GetRows returns a copy of the rows accumulated so far.
func (c *ChromeLogger) GetRows() [][3]interface{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([][3]interface{}, len(c.rows))
	copy(out, c.rows)
	return out
}

// Reset discards accumulated rows, typically called by the owning
// handler after a successful flush.
func (c *ChromeLogger) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rows = nil
}
