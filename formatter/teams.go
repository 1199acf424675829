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
	"fmt"
	"strings"

	"github.com/sabouaram/signalog/level"
	"github.com/sabouaram/signalog/record"
)

// Teams renders an Office 365 Connector "MessageCard" (§4.8).
type Teams struct{}

func NewTeams() Teams { return Teams{} }

type teamsCard struct {
	Type       string         `json:"@type"`
	Context    string         `json:"@context"`
	Summary    string         `json:"summary"`
	ThemeColor string         `json:"themeColor"`
	Title      string         `json:"title"`
	Sections   []teamsSection `json:"sections"`
}

type teamsSection struct {
	ActivityTitle    string      `json:"activityTitle"`
	ActivitySubtitle string      `json:"activitySubtitle,omitempty"`
	Facts            []teamsFact `json:"facts"`
}

type teamsFact struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func teamsThemeEmoji(lvl level.Level) (color, emoji string) {
	switch lvl {
	case level.Emergency:
		return "FF0000", "🚨"
	case level.Alert:
		return "DC3545", "🔥"
	case level.Critical:
		return "DC3545", "‼️"
	case level.Error:
		return "FFC107", "❌"
	case level.Warning:
		return "FFC107", "⚠️"
	case level.Notice:
		return "17A2B8", "ℹ️"
	case level.Info:
		return "007BFF", "ℹ️"
	default: // Debug
		return "6C757D", "🐛"
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func renderFactValue(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case bool:
		if t {
			return "true"
		}
		return "false"
	case string:
		return truncate(t, 100-3)
	case map[string]interface{}, []interface{}:
		b, _ := json.Marshal(t)
		return truncate(string(b), 97)
	}
	return truncate(fmt.Sprintf("%v", v), 97)
}

func (Teams) Format(rec *record.Record) ([]byte, error) {
	color, emoji := teamsThemeEmoji(rec.Level())

	sec := teamsSection{ActivityTitle: rec.Message()}
	if rec.Context() != "" {
		sec.ActivitySubtitle = "Context: " + rec.Context()
	}

	sec.Facts = append(sec.Facts, teamsFact{Name: "Level", Value: rec.Level().String()})
	if rec.Context() != "" {
		sec.Facts = append(sec.Facts, teamsFact{Name: "Context", Value: rec.Context()})
	}
	if ts, ok := rec.Get("timestamp"); ok {
		sec.Facts = append(sec.Facts, teamsFact{Name: "Timestamp", Value: fmt.Sprintf("%v", ts)})
	}

	keys := rec.Data().Keys()
	shown := keys
	if len(shown) > 5 {
		shown = shown[:5]
	}
	for _, k := range shown {
		v, _ := rec.Data().Get(k)
		sec.Facts = append(sec.Facts, teamsFact{Name: strings.ToUpper(k[:1]) + k[1:], Value: renderFactValue(v)})
	}
	if len(keys) > 5 {
		sec.Facts = append(sec.Facts, teamsFact{
			Name:  "Additional Fields",
			Value: fmt.Sprintf("+%d more...", len(keys)-5),
		})
	}

	summary := rec.Message()
	if len(summary) > 80 {
		summary = summary[:80]
	}

	card := teamsCard{
		Type:       "MessageCard",
		Context:    "http://schema.org/extensions",
		Summary:    summary,
		ThemeColor: color,
		Title:      emoji + " " + strings.ToUpper(rec.Level().String()[:1]) + rec.Level().String()[1:],
		Sections:   []teamsSection{sec},
	}

	return json.Marshal(card)
}
