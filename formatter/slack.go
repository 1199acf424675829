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
	"time"

	"github.com/sabouaram/signalog/level"
	"github.com/sabouaram/signalog/record"
)

// Slack renders the Slack incoming-webhook payload shape (§4.8).
type Slack struct{}

func NewSlack() Slack { return Slack{} }

type slackMsg struct {
	Text        string            `json:"text"`
	Attachments []slackAttachment `json:"attachments,omitempty"`
}

type slackAttachment struct {
	Color  string       `json:"color"`
	Fields []slackField `json:"fields"`
	Footer string       `json:"footer"`
	Ts     int64        `json:"ts"`
}

type slackField struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

func slackEmojiColor(lvl level.Level) (emoji, color string) {
	switch lvl {
	case level.Emergency, level.Alert, level.Critical:
		return "rotating_light", "danger"
	case level.Error:
		return "x", "#ff0000"
	case level.Warning:
		return "warning", "warning"
	case level.Notice, level.Info:
		return "speech_balloon", "#2196F3"
	default: // Debug
		return "bug", "#607D8B"
	}
}

func (Slack) Format(rec *record.Record) ([]byte, error) {
	emoji, color := slackEmojiColor(rec.Level())

	msg := slackMsg{Text: ":" + emoji + ": " + rec.Message()}

	if rec.Context() != "" || rec.Data().Len() > 0 {
		dataJSON, err := json.Marshal(rec.Data())
		if err != nil {
			return nil, err
		}

		att := slackAttachment{
			Color:  color,
			Footer: "signalog",
			Ts:     time.Now().Unix(),
			Fields: []slackField{
				{Title: "Context", Value: rec.Context(), Short: true},
				{Title: "Level", Value: rec.Level().String(), Short: true},
				{Title: "Data", Value: "```" + string(dataJSON) + "```", Short: false},
			},
		}
		msg.Attachments = []slackAttachment{att}
	}

	return json.Marshal(msg)
}
