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

package hookconsole_test

import (
	"bytes"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/signalog/fields"
	"github.com/sabouaram/signalog/hook/hookconsole"
	"github.com/sabouaram/signalog/level"
)

func TestHookConsole(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "hookconsole Suite")
}

var _ = Describe("Console handler", func() {
	It("writes the formatted payload to a stream override instead of stdout", func() {
		root, extra := fields.NewRegistry(), fields.NewRegistry()
		h := hookconsole.NewStdout(level.Info, root, extra)

		var buf bytes.Buffer
		h.SetStream(&buf)

		_, ok := h.Invoke(level.Info, "hello", nil)
		Expect(ok).To(BeTrue())
		Expect(buf.String()).To(ContainSubstring("hello"))
	})

	It("drops a record below its level gate", func() {
		root, extra := fields.NewRegistry(), fields.NewRegistry()
		h := hookconsole.NewStderr(level.Error, root, extra)

		var buf bytes.Buffer
		h.SetStream(&buf)

		_, ok := h.Invoke(level.Debug, "too quiet", nil)
		Expect(ok).To(BeFalse())
		Expect(buf.String()).To(BeEmpty())
	})
})
