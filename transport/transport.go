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

// Package transport implements the shared HTTP delivery engine behind
// the webhook, Slack, Teams and Loki handlers (§4.7). It wraps
// hashicorp/go-retryablehttp's client for connection handling but
// drives the retry loop itself so the exact "sleep between attempts,
// never after the last" semantics of §4.7 and §8's scenario 6 hold.
package transport

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/sabouaram/signalog/errors"
)

var validMethods = map[string]bool{
	http.MethodGet: true, http.MethodPost: true, http.MethodPut: true,
	http.MethodPatch: true, http.MethodDelete: true,
}

// Transport is a constructor-validated method/timeout/retry engine.
type Transport struct {
	method     string
	timeout    time.Duration
	retries    int
	retryDelay time.Duration
	headers    map[string]string
	client     *http.Client
}

// New validates method, timeoutSeconds (1-300) and retries (0-10) and
// returns a ready Transport. A default Content-Type of
// application/json is applied unless headers already sets one.
func New(method string, timeoutSeconds int, retries int, retryDelay time.Duration, headers map[string]string) (*Transport, error) {
	method = strings.ToUpper(method)
	if !validMethods[method] {
		return nil, errors.New(errors.CodeBadRequest, 0, fmt.Sprintf("transport: unsupported method %q", method), nil)
	}
	if timeoutSeconds < 1 || timeoutSeconds > 300 {
		return nil, errors.New(errors.CodeBadRequest, 0, fmt.Sprintf("transport: timeout %ds out of range [1,300]", timeoutSeconds), nil)
	}
	if retries < 0 || retries > 10 {
		return nil, errors.New(errors.CodeBadRequest, 0, fmt.Sprintf("transport: retries %d out of range [0,10]", retries), nil)
	}

	h := make(map[string]string, len(headers)+1)
	for k, v := range headers {
		h[k] = v
	}
	if _, ok := h["Content-Type"]; !ok {
		h["Content-Type"] = "application/json"
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = 0
	rc.Logger = nil
	rc.HTTPClient.Timeout = time.Duration(timeoutSeconds) * time.Second

	return &Transport{
		method:     method,
		timeout:    time.Duration(timeoutSeconds) * time.Second,
		retries:    retries,
		retryDelay: retryDelay,
		headers:    h,
		client:     rc.StandardClient(),
	}, nil
}

// Send validates rawURL, then performs up to retries+1 attempts,
// sleeping retryDelay between attempts but never after the last one.
// Success is an HTTP status in [200,399]; any other outcome (bad URL,
// transport error, 4xx/5xx) counts as a failed attempt.
func (t *Transport) Send(rawURL string, payload []byte) bool {
	if _, err := url.ParseRequestURI(rawURL); err != nil {
		return false
	}

	attempts := t.retries + 1
	for i := 0; i < attempts; i++ {
		if t.attempt(rawURL, payload) {
			return true
		}
		if i < attempts-1 && t.retryDelay > 0 {
			time.Sleep(t.retryDelay)
		}
	}
	return false
}

func (t *Transport) attempt(rawURL string, payload []byte) bool {
	req, err := http.NewRequest(t.method, rawURL, bytes.NewReader(payload))
	if err != nil {
		return false
	}
	for k, v := range t.headers {
		req.Header.Set(k, v)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode >= 200 && resp.StatusCode <= 399
}
