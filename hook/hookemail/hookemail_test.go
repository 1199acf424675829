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

package hookemail_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/signalog/fields"
	"github.com/sabouaram/signalog/hook/hookemail"
	"github.com/sabouaram/signalog/level"
)

func TestHookEmail(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "hookemail Suite")
}

var _ = Describe("Email handler construction", func() {
	It("rejects a malformed From address", func() {
		root, extra := fields.NewRegistry(), fields.NewRegistry()
		_, err := hookemail.New(hookemail.Config{
			Host: "smtp.example.com", Port: 587,
			From: "not-an-address", To: "ops@example.com",
		}, level.Error, root, extra)
		Expect(err).To(HaveOccurred())
	})

	It("rejects a malformed To address", func() {
		root, extra := fields.NewRegistry(), fields.NewRegistry()
		_, err := hookemail.New(hookemail.Config{
			Host: "smtp.example.com", Port: 587,
			From: "alerts@example.com", To: "not-an-address",
		}, level.Error, root, extra)
		Expect(err).To(HaveOccurred())
	})

	It("accepts well-formed addresses at construction", func() {
		root, extra := fields.NewRegistry(), fields.NewRegistry()
		h, err := hookemail.New(hookemail.Config{
			Host: "smtp.example.com", Port: 587,
			From: "alerts@example.com", To: "ops@example.com",
		}, level.Error, root, extra)
		Expect(err).NotTo(HaveOccurred())
		Expect(h).NotTo(BeNil())
	})
})
