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

package formatter_test

import (
	"encoding/json"
	"strings"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/signalog/fields"
	"github.com/sabouaram/signalog/formatter"
	"github.com/sabouaram/signalog/level"
	"github.com/sabouaram/signalog/record"
)

func TestFormatter(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "formatter Suite")
}

func buildRecord(lvl level.Level, ctx, msg string, data map[string]interface{}) *record.Record {
	root := fields.NewRegistry()
	extra := fields.NewRegistry()
	for k, v := range data {
		v := v
		extra.Add(k, func() interface{} { return v })
	}
	b := record.NewBuilder(root, extra)
	return b.Build(ctx, lvl, msg, nil)
}

var _ = Describe("JSON", func() {
	It("serializes level as its lowercase name, not the underlying rank", func() {
		f := formatter.NewJSON()
		rec := buildRecord(level.Info, "OrderSvc", "placed", nil)

		out, err := f.Format(rec)
		Expect(err).ToNot(HaveOccurred())

		var payload map[string]interface{}
		Expect(json.Unmarshal(out, &payload)).To(Succeed())
		Expect(payload["level"]).To(Equal("info"))
		Expect(payload["context"]).To(Equal("OrderSvc"))
	})
})

var _ = Describe("Loki", func() {
	It("sanitizes static label values, preserving the legacy value-sanitizing behaviour", func() {
		f := formatter.NewLoki(map[string]string{"service": "pay-api!!"})
		rec := buildRecord(level.Error, "billing", "charge failed", nil)

		out, err := f.Format(rec)
		Expect(err).ToNot(HaveOccurred())

		var payload map[string]interface{}
		Expect(json.Unmarshal(out, &payload)).To(Succeed())

		streams := payload["streams"].([]interface{})
		stream := streams[0].(map[string]interface{})["stream"].(map[string]interface{})

		Expect(stream["service"]).To(Equal("pay_api_"))
		Expect(stream["context"]).To(Equal("billing"))
		Expect(stream["level"]).To(Equal("error"))
	})

	It("prefixes an underscore when sanitizing would otherwise start with a digit", func() {
		f := formatter.NewLoki(map[string]string{"region": "1east"})
		rec := buildRecord(level.Info, "", "ok", nil)

		out, err := f.Format(rec)
		Expect(err).ToNot(HaveOccurred())

		var payload map[string]interface{}
		Expect(json.Unmarshal(out, &payload)).To(Succeed())
		streams := payload["streams"].([]interface{})
		stream := streams[0].(map[string]interface{})["stream"].(map[string]interface{})
		Expect(stream["region"]).To(Equal("_1east"))
	})
})

var _ = Describe("Slack", func() {
	It("omits the attachment when there is no context and no data", func() {
		f := formatter.NewSlack()
		rec := buildRecord(level.Info, "", "hello", nil)

		out, err := f.Format(rec)
		Expect(err).ToNot(HaveOccurred())

		var payload map[string]interface{}
		Expect(json.Unmarshal(out, &payload)).To(Succeed())
		Expect(payload).ToNot(HaveKey("attachments"))
	})

	It("picks the danger color and rotating_light emoji for critical and above", func() {
		f := formatter.NewSlack()
		rec := buildRecord(level.Critical, "db", "pool exhausted", map[string]interface{}{"retries": 3})

		out, err := f.Format(rec)
		Expect(err).ToNot(HaveOccurred())

		var payload map[string]interface{}
		Expect(json.Unmarshal(out, &payload)).To(Succeed())
		Expect(payload["text"]).To(ContainSubstring("rotating_light"))

		att := payload["attachments"].([]interface{})[0].(map[string]interface{})
		Expect(att["color"]).To(Equal("danger"))
	})
})

var _ = Describe("Teams", func() {
	It("truncates the summary to 80 characters", func() {
		f := formatter.NewTeams()
		long := strings.Repeat("x", 200)
		rec := buildRecord(level.Warning, "", long, nil)

		out, err := f.Format(rec)
		Expect(err).ToNot(HaveOccurred())

		var card map[string]interface{}
		Expect(json.Unmarshal(out, &card)).To(Succeed())
		Expect(len(card["summary"].(string))).To(Equal(80))
	})

	It("caps data facts at five and adds a rollup fact for the remainder", func() {
		f := formatter.NewTeams()
		data := map[string]interface{}{"a": 1, "b": 2, "c": 3, "d": 4, "e": 5, "f": 6, "g": 7}
		rec := buildRecord(level.Error, "svc", "failure", data)

		out, err := f.Format(rec)
		Expect(err).ToNot(HaveOccurred())

		var card map[string]interface{}
		Expect(json.Unmarshal(out, &card)).To(Succeed())

		sections := card["sections"].([]interface{})
		facts := sections[0].(map[string]interface{})["facts"].([]interface{})

		var rollup map[string]interface{}
		for _, f := range facts {
			fm := f.(map[string]interface{})
			if fm["name"] == "Additional Fields" {
				rollup = fm
			}
		}
		Expect(rollup).ToNot(BeNil())
		Expect(rollup["value"]).To(Equal("+2 more..."))
	})

	It("maps emergency to the FF0000 theme color", func() {
		f := formatter.NewTeams()
		rec := buildRecord(level.Emergency, "", "down", nil)

		out, err := f.Format(rec)
		Expect(err).ToNot(HaveOccurred())

		var card map[string]interface{}
		Expect(json.Unmarshal(out, &card)).To(Succeed())
		Expect(card["themeColor"]).To(Equal("FF0000"))
	})

	It("gives every level a theme color, with Notice and Info kept distinct", func() {
		f := formatter.NewTeams()
		want := map[level.Level]string{
			level.Emergency: "FF0000",
			level.Alert:     "DC3545",
			level.Critical:  "DC3545",
			level.Error:     "FFC107",
			level.Warning:   "FFC107",
			level.Notice:    "17A2B8",
			level.Info:      "007BFF",
			level.Debug:     "6C757D",
		}

		for lvl, color := range want {
			rec := buildRecord(lvl, "", "msg", nil)
			out, err := f.Format(rec)
			Expect(err).ToNot(HaveOccurred())

			var card map[string]interface{}
			Expect(json.Unmarshal(out, &card)).To(Succeed())
			Expect(card["themeColor"]).To(Equal(color), "level %s", lvl.String())
		}
	})
})

var _ = Describe("ChromeLogger", func() {
	It("accumulates one row per Format call and reports the batch envelope", func() {
		f := formatter.NewChromeLogger()

		rec1 := buildRecord(level.Info, "", "first", nil)
		rec2 := buildRecord(level.Error, "", "second", map[string]interface{}{"n": 1})

		_, err := f.Format(rec1)
		Expect(err).ToNot(HaveOccurred())

		out, err := f.Format(rec2)
		Expect(err).ToNot(HaveOccurred())

		var payload map[string]interface{}
		Expect(json.Unmarshal(out, &payload)).To(Succeed())
		Expect(payload["version"]).To(Equal("4.1.0"))

		rows := payload["rows"].([]interface{})
		Expect(rows).To(HaveLen(2))

		second := rows[1].([]interface{})
		Expect(second[2]).To(Equal("error"))
	})

	It("resets accumulated rows", func() {
		f := formatter.NewChromeLogger()
		rec := buildRecord(level.Debug, "", "x", nil)
		_, _ = f.Format(rec)
		Expect(f.GetRows()).To(HaveLen(1))

		f.Reset()
		Expect(f.GetRows()).To(HaveLen(0))
	})

	It("returns the current batch without appending when given a nil record", func() {
		f := formatter.NewChromeLogger()
		rec := buildRecord(level.Debug, "", "x", nil)
		_, _ = f.Format(rec)

		out, err := f.Format(nil)
		Expect(err).ToNot(HaveOccurred())

		var payload map[string]interface{}
		Expect(json.Unmarshal(out, &payload)).To(Succeed())
		Expect(payload["rows"].([]interface{})).To(HaveLen(1))
	})
})
