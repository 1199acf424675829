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

package logger

import (
	"fmt"
	"io"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/sabouaram/signalog/level"
)

// Access builds an info-level record in Apache combined-log shape,
// with the request fields pre-populated as call-site data atop the
// same record builder every other call goes through.
func (l *Logger) Access(remoteAddr, remoteUser string, localtime time.Time, latency time.Duration, method, request, proto string, status int, size int64) {
	callContext := map[string]interface{}{
		"remoteAddr": remoteAddr,
		"remoteUser": remoteUser,
		"method":     method,
		"request":    request,
		"proto":      proto,
		"status":     status,
		"size":       size,
		"latency":    latency.String(),
	}
	message := fmt.Sprintf("%s - %s [%s] [%s] %q %d %d",
		remoteAddr, remoteUser, localtime.Format(time.RFC1123Z), latency.String(),
		fmt.Sprintf("%s %s %s", method, request, proto), status, size)
	l.log(level.Info, message, callContext)
}

// writerBridge lets anything that only knows io.Writer feed the pipeline.
type writerBridge struct {
	logger *Logger
	level  level.Level
	drop   []*regexp.Regexp
}

func (w *writerBridge) Write(p []byte) (int, error) {
	line := strings.TrimSpace(string(p))
	if line == "" {
		return len(p), nil
	}
	for _, re := range w.drop {
		if re.MatchString(line) {
			return len(p), nil
		}
	}
	w.logger.log(w.level, line, nil)
	return len(p), nil
}

// Writer returns an io.Writer that dispatches every non-empty line
// written to it as a record at lvl.
func (l *Logger) Writer(lvl level.Level) io.Writer {
	return &writerBridge{logger: l, level: lvl}
}

// WriterFiltered is Writer plus a set of regular expressions; a written
// line matching any of them is dropped instead of dispatched.
func (l *Logger) WriterFiltered(lvl level.Level, dropPatterns ...string) (io.Writer, error) {
	compiled := make([]*regexp.Regexp, 0, len(dropPatterns))
	for _, p := range dropPatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, re)
	}
	return &writerBridge{logger: l, level: lvl, drop: compiled}, nil
}

// StdLogger returns a standard-library *log.Logger that feeds every
// message at lvl into this Logger.
func (l *Logger) StdLogger(lvl level.Level) *log.Logger {
	return log.New(l.Writer(lvl), "", 0)
}
