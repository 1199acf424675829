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

package hookdatabase_test

import (
	"bytes"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sabouaram/signalog/fields"
	"github.com/sabouaram/signalog/hook/hookdatabase"
	"github.com/sabouaram/signalog/level"
)

func TestHookDatabase(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "hookdatabase Suite")
}

var _ = Describe("Database handler", func() {
	It("inserts one parameterized row per accepted record", func() {
		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())
		Expect(db.Exec(`CREATE TABLE "logs" ("context" text, "level" text, "message" text, "data" text)`).Error).NotTo(HaveOccurred())

		root, extra := fields.NewRegistry(), fields.NewRegistry()
		h := hookdatabase.New(db, "logs", level.Info, root, extra)

		_, ok := h.Invoke(level.Info, "stored", map[string]interface{}{"user": "alice"})
		Expect(ok).To(BeTrue())

		var count int64
		Expect(db.Table("logs").Count(&count).Error).NotTo(HaveOccurred())
		Expect(count).To(Equal(int64(1)))
	})

	It("adds a column per registered root field and stores the interpolated, extras-merged payload", func() {
		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())
		Expect(db.Exec(`CREATE TABLE "logs" ("context" text, "service" text, "level" text, "message" text, "data" text)`).Error).NotTo(HaveOccurred())

		root, extra := fields.NewRegistry(), fields.NewRegistry()
		root.Add("service", func() interface{} { return "billing" })
		extra.Add("region", func() interface{} { return "eu-west-1" })

		h := hookdatabase.New(db, "logs", level.Info, root, extra)

		_, ok := h.Invoke(level.Info, "hello {name}", map[string]interface{}{"name": "world"})
		Expect(ok).To(BeTrue())

		type row struct {
			Service string
			Message string
			Data    string
		}
		var got row
		Expect(db.Table("logs").Select("service", "message", "data").Scan(&got).Error).NotTo(HaveOccurred())
		Expect(got.Service).To(Equal("billing"))
		Expect(got.Message).To(Equal("hello world"))
		Expect(got.Data).To(ContainSubstring(`"region":"eu-west-1"`))
		Expect(got.Data).To(ContainSubstring(`"name":"world"`))
	})

	It("writes the payload to a stream override instead of inserting", func() {
		root, extra := fields.NewRegistry(), fields.NewRegistry()
		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		h := hookdatabase.New(db, "logs", level.Info, root, extra)

		var buf bytes.Buffer
		h.SetStream(&buf)
		_, ok := h.Invoke(level.Info, "via stream", nil)
		Expect(ok).To(BeTrue())
		Expect(buf.String()).To(ContainSubstring("via stream"))
	})
})
