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

package transport_test

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sabouaram/signalog/transport"
)

func TestRejectsBadConstructorArgs(t *testing.T) {
	_, err := transport.New("TRACE", 5, 2, 0, nil)
	assert.Error(t, err)

	_, err = transport.New("POST", 0, 2, 0, nil)
	assert.Error(t, err)

	_, err = transport.New("POST", 5, 11, 0, nil)
	assert.Error(t, err)
}

// TestRetriesThenSucceeds mirrors §8 scenario 6: 500, 500, 200 with
// retries=2 must yield exactly 3 attempts and a true result.
func TestRetriesThenSucceeds(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		if n < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	tr, err := transport.New(http.MethodPost, 5, 2, 0, nil)
	require.NoError(t, err)

	ok := tr.Send(srv.URL, []byte(`{}`))
	assert.True(t, ok)
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
}

func TestNoRetriesFailsFast(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	tr, err := transport.New(http.MethodPost, 5, 0, 0, nil)
	require.NoError(t, err)

	ok := tr.Send(srv.URL, []byte(`{}`))
	assert.False(t, ok)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestBadURLFailsWithoutAttempt(t *testing.T) {
	tr, err := transport.New(http.MethodPost, 5, 3, 0, nil)
	require.NoError(t, err)

	ok := tr.Send("://not-a-url", []byte(`{}`))
	assert.False(t, ok)
}

func TestDoesNotSleepAfterFinalAttempt(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	tr, err := transport.New(http.MethodPost, 5, 1, 50*time.Millisecond, nil)
	require.NoError(t, err)

	start := time.Now()
	ok := tr.Send(srv.URL, []byte(`{}`))
	elapsed := time.Since(start)

	assert.False(t, ok)
	assert.Less(t, elapsed, 100*time.Millisecond)
}
