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

package hookloki_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/signalog/fields"
	"github.com/sabouaram/signalog/hook/hookloki"
	"github.com/sabouaram/signalog/level"
	"github.com/sabouaram/signalog/transport"
)

func TestHookLoki(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "hookloki Suite")
}

var _ = Describe("Loki handler", func() {
	It("pushes to <base>/loki/api/v1/push regardless of a trailing slash on baseURL", func() {
		var gotPath string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			w.WriteHeader(http.StatusNoContent)
		}))
		defer srv.Close()

		root, extra := fields.NewRegistry(), fields.NewRegistry()
		tr, err := transport.New("POST", 2, 0, time.Millisecond, nil)
		Expect(err).NotTo(HaveOccurred())

		h := hookloki.New(srv.URL+"/", map[string]string{"app": "signalog"}, tr, level.Info, root, extra)
		_, ok := h.Invoke(level.Info, "pushed", nil)

		Expect(ok).To(BeTrue())
		Expect(gotPath).To(Equal("/loki/api/v1/push"))
	})
})
