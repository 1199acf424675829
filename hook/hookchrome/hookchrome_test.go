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

package hookchrome_test

import (
	"encoding/base64"
	"encoding/json"
	"net/http/httptest"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/signalog/fields"
	"github.com/sabouaram/signalog/hook/hookchrome"
	"github.com/sabouaram/signalog/level"
)

func TestHookChrome(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "hookchrome Suite")
}

var _ = Describe("ChromeLogger handler", func() {
	It("emits an X-ChromeLogger-Data header carrying every accumulated row", func() {
		root, extra := fields.NewRegistry(), fields.NewRegistry()
		h := hookchrome.New(level.Info, root, extra)

		h.Invoke(level.Info, "first", nil)
		h.Invoke(level.Warning, "second", nil)

		rec := httptest.NewRecorder()
		Expect(h.EmitHeader(rec)).To(BeTrue())

		raw, err := base64.StdEncoding.DecodeString(rec.Header().Get("X-ChromeLogger-Data"))
		Expect(err).NotTo(HaveOccurred())

		var batch struct {
			Rows [][3]interface{} `json:"rows"`
		}
		Expect(json.Unmarshal(raw, &batch)).To(Succeed())
		Expect(batch.Rows).To(HaveLen(2))
	})

	It("resets the batch after emitting the header", func() {
		root, extra := fields.NewRegistry(), fields.NewRegistry()
		h := hookchrome.New(level.Info, root, extra)
		h.Invoke(level.Info, "one", nil)

		rec1 := httptest.NewRecorder()
		Expect(h.EmitHeader(rec1)).To(BeTrue())

		rec2 := httptest.NewRecorder()
		Expect(h.EmitHeader(rec2)).To(BeTrue())

		raw, _ := base64.StdEncoding.DecodeString(rec2.Header().Get("X-ChromeLogger-Data"))
		var batch struct {
			Rows [][3]interface{} `json:"rows"`
		}
		Expect(json.Unmarshal(raw, &batch)).To(Succeed())
		Expect(batch.Rows).To(BeEmpty())
	})
})
