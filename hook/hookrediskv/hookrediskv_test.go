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

package hookrediskv_test

import (
	"bytes"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/redis/go-redis/v9"

	"github.com/sabouaram/signalog/fields"
	"github.com/sabouaram/signalog/hook/hookrediskv"
	"github.com/sabouaram/signalog/level"
)

func TestHookRedisKV(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "hookrediskv Suite")
}

var _ = Describe("Redis KV handler", func() {
	It("writes the payload to a stream override without touching the client", func() {
		// redis.NewClient never dials until a command runs, so an
		// address with nothing listening is safe here: the stream
		// override short-circuits Invoke before the client is used.
		client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
		root, extra := fields.NewRegistry(), fields.NewRegistry()
		h := hookrediskv.New(client, time.Minute, level.Info, root, extra)

		var buf bytes.Buffer
		h.SetStream(&buf)

		_, ok := h.Invoke(level.Info, "cached", nil)
		Expect(ok).To(BeTrue())
		Expect(buf.String()).To(ContainSubstring("cached"))
	})

	It("drops a record below its level gate", func() {
		client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
		root, extra := fields.NewRegistry(), fields.NewRegistry()
		h := hookrediskv.New(client, time.Minute, level.Error, root, extra)

		var buf bytes.Buffer
		h.SetStream(&buf)

		_, ok := h.Invoke(level.Debug, "ignored", nil)
		Expect(ok).To(BeFalse())
		Expect(buf.Len()).To(Equal(0))
	})
})
