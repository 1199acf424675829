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

// Package hookdatabase inserts one row per record into a SQL table
// over a caller-supplied *gorm.DB (§4.7). Identifier quoting is
// per-driver (backtick for MySQL, double quote for PostgreSQL and
// SQLite); the quote character is detected once from the dialector
// name and cached.
package hookdatabase

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"gorm.io/gorm"

	"github.com/sabouaram/signalog/fields"
	"github.com/sabouaram/signalog/handler"
	"github.com/sabouaram/signalog/level"
	"github.com/sabouaram/signalog/record"
)

type Handler struct {
	*handler.Base

	mu     sync.Mutex
	stream io.Writer

	db    *gorm.DB
	table string
	quote string
}

// New binds a Handler to an already-open db and table; the table must
// already carry the columns in §6 plus any registered root fields.
func New(db *gorm.DB, table string, minLevel level.Level, root, extra *fields.Registry) *Handler {
	return &Handler{
		Base:  handler.NewBase(handler.NewID(), minLevel, root, extra),
		db:    db,
		table: table,
		quote: quoteCharFor(db),
	}
}

func quoteCharFor(db *gorm.DB) string {
	switch db.Dialector.Name() {
	case "mysql":
		return "`"
	default: // postgres, sqlite, sqlserver, clickhouse
		return `"`
	}
}

func (h *Handler) quoteIdent(name string) string {
	escaped := strings.ReplaceAll(name, h.quote, h.quote+h.quote)
	return h.quote + escaped + h.quote
}

func (h *Handler) SetStream(w io.Writer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stream = w
}

func (h *Handler) Invoke(lvl level.Level, message string, callContext map[string]interface{}) (string, bool) {
	rec, ok := h.BuildRecord(lvl, message, callContext)
	if !ok {
		return "", false
	}
	payload, ok := h.Format(rec)
	if !ok {
		return "", false
	}

	h.mu.Lock()
	w := h.stream
	h.mu.Unlock()

	if w != nil {
		if _, err := w.Write(append(payload, '\n')); err != nil {
			return "", false
		}
		return string(payload), true
	}

	if err := h.insert(rec); err != nil {
		return "", false
	}
	return string(payload), true
}

// insert reads columns directly off the built record: the fixed
// context/level/message columns, any additional root fields registered
// via addField (§6: "must exist in the table"), and finally the merged
// data map (call-site context plus extras) as the "data" column.
func (h *Handler) insert(rec *record.Record) error {
	dataJSON, err := json.Marshal(rec.Data())
	if err != nil {
		return err
	}

	cols := []string{"context", "level", "message"}
	vals := []interface{}{rec.Context(), rec.Level().String(), rec.Message()}

	for _, k := range rec.Root().Keys() {
		if k == "context" || k == "level" || k == "message" || k == "data" {
			continue
		}
		v, _ := rec.Root().Get(k)
		cols = append(cols, k)
		vals = append(vals, v)
	}

	cols = append(cols, "data")
	vals = append(vals, string(dataJSON))

	quoted := make([]string, len(cols))
	placeholders := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = h.quoteIdent(c)
		placeholders[i] = "?"
	}

	stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		h.quoteIdent(h.table), strings.Join(quoted, ", "), strings.Join(placeholders, ", "))

	return h.db.Exec(stmt, vals...).Error
}
