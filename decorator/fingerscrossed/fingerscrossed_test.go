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

package fingerscrossed_test

import (
	"io"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/signalog/decorator/fingerscrossed"
	"github.com/sabouaram/signalog/formatter"
	"github.com/sabouaram/signalog/level"
)

func TestFingersCrossed(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "fingerscrossed Suite")
}

type recording struct {
	id       string
	name     string
	received []level.Level
	messages []string
}

func newRecording() *recording { return &recording{id: "rec-1"} }

func (r *recording) Invoke(lvl level.Level, message string, callContext map[string]interface{}) (string, bool) {
	r.received = append(r.received, lvl)
	r.messages = append(r.messages, message)
	return message, true
}
func (r *recording) SetContext(string)             {}
func (r *recording) SetFormat(formatter.Formatter) {}
func (r *recording) SetStream(io.Writer)            {}
func (r *recording) SetHandlerName(n string)        { r.name = n }
func (r *recording) GetHandlerName() string         { return r.name }
func (r *recording) GetHandlerID() string           { return r.id }

var _ = Describe("FingersCrossed", func() {
	It("buffers below the activation level and delivers nothing", func() {
		child := newRecording()
		fc := fingerscrossed.New(child, level.Error, 3, true)

		fc.Invoke(level.Info, "a", nil)
		fc.Invoke(level.Info, "b", nil)

		Expect(child.received).To(BeEmpty())
		Expect(fc.Statistics().BufferedCount).To(Equal(2))
	})

	It("evicts the oldest entry past capacity then flushes in FIFO order on activation", func() {
		child := newRecording()
		fc := fingerscrossed.New(child, level.Error, 3, true)

		for _, m := range []string{"i1", "i2", "i3", "i4", "i5"} {
			fc.Invoke(level.Info, m, nil)
		}
		fc.Invoke(level.Error, "boom", nil)

		Expect(child.received).To(HaveLen(4))
		Expect(child.messages).To(Equal([]string{"i3", "i4", "i5", "boom"}))
	})

	It("forwards immediately once latched", func() {
		child := newRecording()
		fc := fingerscrossed.New(child, level.Error, 3, true)

		fc.Invoke(level.Error, "trigger", nil)
		_, ok := fc.Invoke(level.Info, "after", nil)

		Expect(ok).To(BeTrue())
		Expect(child.received).To(HaveLen(2))
	})

	It("keeps buffering post-activation records when latching is off", func() {
		child := newRecording()
		fc := fingerscrossed.New(child, level.Error, 3, false)

		fc.Invoke(level.Error, "trigger", nil)
		_, ok := fc.Invoke(level.Info, "after", nil)

		Expect(ok).To(BeFalse())
		Expect(fc.Statistics().BufferedCount).To(Equal(1))
	})
})
