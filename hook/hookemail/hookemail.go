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

// Package hookemail speaks a minimal SMTP dialog directly over a TCP
// socket (§4.7, §6): greeting, EHLO, optional STARTTLS, optional AUTH
// LOGIN, MAIL FROM/RCPT TO/DATA, QUIT. Delivery is rate-limited to one
// message per rateLimitSeconds; addresses are validated at
// construction via go-playground/validator.
package hookemail

import (
	"bufio"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"io"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/matcornic/hermes/v2"

	"github.com/sabouaram/signalog/errors"
	"github.com/sabouaram/signalog/fields"
	"github.com/sabouaram/signalog/handler"
	"github.com/sabouaram/signalog/level"
)

type addresses struct {
	From string `validate:"required,email"`
	To   string `validate:"required,email"`
}

// Config describes an SMTP destination.
type Config struct {
	Host             string
	Port             int
	From             string
	To               string
	Subject          string
	UseTLS           bool
	Username         string
	Password         string
	RateLimitSeconds int

	// HTML, when true, wraps the record payload in a themed HTML
	// email body instead of sending it as plain text.
	HTML        bool
	ProductName string
	ProductLink string
}

// renderHTML wraps body in a minimal hermes-themed HTML email.
func renderHTML(cfg Config, body string) (string, error) {
	h := hermes.Hermes{Theme: new(hermes.Default), Product: hermes.Product{Name: cfg.ProductName, Link: cfg.ProductLink}}
	return h.GenerateHTML(hermes.Email{Body: hermes.Body{
		Name:   cfg.Subject,
		Intros: []string{body},
	}})
}

type Handler struct {
	*handler.Base

	mu   sync.Mutex
	cfg  Config

	lastSent time.Time
	stream   io.Writer
}

// New validates From/To as RFC-compliant addresses, per §7's
// "construction validation" error kind.
func New(cfg Config, minLevel level.Level, root, extra *fields.Registry) (*Handler, error) {
	v := validator.New()
	if err := v.Struct(addresses{From: cfg.From, To: cfg.To}); err != nil {
		return nil, errors.New(errors.CodeBadRequest, 0, "hookemail: invalid From/To address", err)
	}
	if cfg.RateLimitSeconds <= 0 {
		cfg.RateLimitSeconds = 60
	}
	return &Handler{Base: handler.NewBase(handler.NewID(), minLevel, root, extra), cfg: cfg}, nil
}

func (h *Handler) SetStream(w io.Writer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stream = w
}

func (h *Handler) Invoke(lvl level.Level, message string, callContext map[string]interface{}) (string, bool) {
	payload, ok := h.BuildAndFormat(lvl, message, callContext)
	if !ok {
		return "", false
	}

	h.mu.Lock()
	w := h.stream
	now := time.Now()
	withinWindow := !h.lastSent.IsZero() && now.Sub(h.lastSent) < time.Duration(h.cfg.RateLimitSeconds)*time.Second
	if !withinWindow {
		h.lastSent = now
	}
	h.mu.Unlock()

	if w != nil {
		if _, err := w.Write(append(payload, '\n')); err != nil {
			return "", false
		}
		return string(payload), true
	}

	if withinWindow {
		return "", false
	}

	if err := h.deliver(payload); err != nil {
		return "", false
	}
	return string(payload), true
}

func (h *Handler) deliver(body []byte) error {
	conn, err := net.DialTimeout("tcp", net.JoinHostPort(h.cfg.Host, strconv.Itoa(h.cfg.Port)), 10*time.Second)
	if err != nil {
		return err
	}
	defer conn.Close()

	d := &dialog{conn: conn, r: bufio.NewReader(conn)}

	if err := d.expect(220); err != nil {
		return err
	}
	if err := d.cmd(fmt.Sprintf("EHLO %s", h.cfg.Host), 250); err != nil {
		return err
	}

	if h.cfg.UseTLS {
		if err := d.cmd("STARTTLS", 220); err != nil {
			return err
		}
		tlsConn := tls.Client(conn, &tls.Config{ServerName: h.cfg.Host})
		if err := tlsConn.Handshake(); err != nil {
			return err
		}
		d.conn = tlsConn
		d.r = bufio.NewReader(tlsConn)
		if err := d.cmd(fmt.Sprintf("EHLO %s", h.cfg.Host), 250); err != nil {
			return err
		}
	}

	if h.cfg.Username != "" {
		if err := d.cmd("AUTH LOGIN", 334); err != nil {
			return err
		}
		if err := d.cmd(base64.StdEncoding.EncodeToString([]byte(h.cfg.Username)), 334); err != nil {
			return err
		}
		if err := d.cmd(base64.StdEncoding.EncodeToString([]byte(h.cfg.Password)), 235); err != nil {
			return err
		}
	}

	if err := d.cmd(fmt.Sprintf("MAIL FROM:<%s>", h.cfg.From), 250); err != nil {
		return err
	}
	if err := d.cmd(fmt.Sprintf("RCPT TO:<%s>", h.cfg.To), 250); err != nil {
		return err
	}
	if err := d.cmd("DATA", 354); err != nil {
		return err
	}

	contentType := "text/plain"
	rendered := string(body)
	if h.cfg.HTML {
		if html, err := renderHTML(h.cfg, string(body)); err == nil {
			rendered = html
			contentType = "text/html"
		}
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nDate: %s\r\nContent-Type: %s; charset=utf-8\r\nContent-Transfer-Encoding: 8bit\r\n\r\n%s\r\n.\r\n",
		h.cfg.From, h.cfg.To, h.cfg.Subject, time.Now().Format(time.RFC1123Z), contentType, rendered)
	if _, err := d.conn.Write([]byte(msg)); err != nil {
		return err
	}
	if err := d.expect(250); err != nil {
		return err
	}

	return d.cmd("QUIT", 221)
}

// dialog wraps a single SMTP command/response exchange.
type dialog struct {
	conn net.Conn
	r    *bufio.Reader
}

func (d *dialog) cmd(line string, expected int) error {
	if _, err := d.conn.Write([]byte(line + "\r\n")); err != nil {
		return err
	}
	return d.expect(expected)
}

// expect reads one SMTP response (following multi-line continuations,
// where byte 4 of a line is '-') and checks it against code.
func (d *dialog) expect(code int) error {
	for {
		line, err := d.r.ReadString('\n')
		if err != nil {
			return err
		}
		if len(line) < 4 {
			return fmt.Errorf("hookemail: malformed SMTP response %q", line)
		}
		got, err := strconv.Atoi(line[:3])
		if err != nil {
			return err
		}
		if got != code {
			return fmt.Errorf("hookemail: expected %d, got %d (%s)", code, got, line)
		}
		if line[3] != '-' {
			return nil
		}
	}
}
