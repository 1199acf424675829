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

// Builder is the fluent construction façade (§C9): each addX method
// constructs a terminal handler against the logger's own root-field and
// extra registries, optionally names it, and registers it. The first
// construction error short-circuits every later call; Build reports it.
package logger

import (
	"os"
	"time"

	amqp091 "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"gorm.io/gorm"

	"github.com/sabouaram/signalog/decorator/conditional"
	"github.com/sabouaram/signalog/decorator/fingerscrossed"
	"github.com/sabouaram/signalog/decorator/sampling"
	"github.com/sabouaram/signalog/handler"
	"github.com/sabouaram/signalog/hook/hookamqp"
	"github.com/sabouaram/signalog/hook/hookchrome"
	"github.com/sabouaram/signalog/hook/hookconsole"
	"github.com/sabouaram/signalog/hook/hookdatabase"
	"github.com/sabouaram/signalog/hook/hookemail"
	"github.com/sabouaram/signalog/hook/hookfile"
	"github.com/sabouaram/signalog/hook/hookkafka"
	"github.com/sabouaram/signalog/hook/hookloki"
	"github.com/sabouaram/signalog/hook/hooknull"
	"github.com/sabouaram/signalog/hook/hookrediskv"
	"github.com/sabouaram/signalog/hook/hookredispubsub"
	"github.com/sabouaram/signalog/hook/hookslack"
	"github.com/sabouaram/signalog/hook/hooksyslog"
	"github.com/sabouaram/signalog/hook/hookteams"
	"github.com/sabouaram/signalog/hook/hookwebhook"
	"github.com/sabouaram/signalog/level"
	"github.com/sabouaram/signalog/transport"
)

// Builder accumulates handler construction against one Logger.
type Builder struct {
	logger *Logger
	err    error
}

// NewBuilder returns a Builder wrapping a fresh Logger for context.
func NewBuilder(context string) *Builder {
	return &Builder{logger: New(context)}
}

func (b *Builder) fail(err error) *Builder {
	if b.err == nil {
		b.err = err
	}
	return b
}

// Build returns the assembled Logger, or the first construction error
// encountered.
func (b *Builder) Build() (*Logger, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.logger, nil
}

func (b *Builder) register(h handler.Handler, name string) {
	if name != "" {
		h.SetHandlerName(name)
	}
	b.logger.AddHandler(h)
}

func (b *Builder) AddStdout(minLevel level.Level, name string) *Builder {
	if b.err != nil {
		return b
	}
	b.register(hookconsole.NewStdout(minLevel, b.logger.rootFields, b.logger.extras), name)
	return b
}

func (b *Builder) AddStderr(minLevel level.Level, name string) *Builder {
	if b.err != nil {
		return b
	}
	b.register(hookconsole.NewStderr(minLevel, b.logger.rootFields, b.logger.extras), name)
	return b
}

func (b *Builder) AddFile(path string, mode os.FileMode, minLevel level.Level, name string) *Builder {
	if b.err != nil {
		return b
	}
	h, err := hookfile.New(path, mode, minLevel, b.logger.rootFields, b.logger.extras)
	if err != nil {
		return b.fail(err)
	}
	b.register(h, name)
	return b
}

func (b *Builder) AddSyslog(ident string, minLevel level.Level, name string) *Builder {
	if b.err != nil {
		return b
	}
	h, err := hooksyslog.New(ident, minLevel, b.logger.rootFields, b.logger.extras)
	if err != nil {
		return b.fail(err)
	}
	b.register(h, name)
	return b
}

func (b *Builder) AddNull(minLevel level.Level, name string) *Builder {
	if b.err != nil {
		return b
	}
	b.register(hooknull.New(minLevel, b.logger.rootFields, b.logger.extras), name)
	return b
}

func (b *Builder) AddChrome(minLevel level.Level, name string) *Builder {
	if b.err != nil {
		return b
	}
	b.register(hookchrome.New(minLevel, b.logger.rootFields, b.logger.extras), name)
	return b
}

// httpTransport is a small helper shared by every HTTP-backed sink.
func httpTransport(timeoutSeconds, retries, retryDelaySeconds int, headers map[string]string) (*transport.Transport, error) {
	return transport.New("POST", timeoutSeconds, retries, time.Duration(retryDelaySeconds)*time.Second, headers)
}

func (b *Builder) AddWebhook(url string, timeoutSeconds, retries, retryDelaySeconds int, minLevel level.Level, name string) *Builder {
	if b.err != nil {
		return b
	}
	tr, err := httpTransport(timeoutSeconds, retries, retryDelaySeconds, nil)
	if err != nil {
		return b.fail(err)
	}
	b.register(hookwebhook.New(url, tr, minLevel, b.logger.rootFields, b.logger.extras), name)
	return b
}

func (b *Builder) AddSlack(webhookURL string, timeoutSeconds, retries, retryDelaySeconds int, minLevel level.Level, name string) *Builder {
	if b.err != nil {
		return b
	}
	tr, err := httpTransport(timeoutSeconds, retries, retryDelaySeconds, nil)
	if err != nil {
		return b.fail(err)
	}
	b.register(hookslack.New(webhookURL, tr, minLevel, b.logger.rootFields, b.logger.extras), name)
	return b
}

func (b *Builder) AddTeams(webhookURL string, timeoutSeconds, retries, retryDelaySeconds int, minLevel level.Level, name string) *Builder {
	if b.err != nil {
		return b
	}
	tr, err := httpTransport(timeoutSeconds, retries, retryDelaySeconds, nil)
	if err != nil {
		return b.fail(err)
	}
	b.register(hookteams.New(webhookURL, tr, minLevel, b.logger.rootFields, b.logger.extras), name)
	return b
}

func (b *Builder) AddLoki(baseURL string, staticLabels map[string]string, timeoutSeconds, retries, retryDelaySeconds int, minLevel level.Level, name string) *Builder {
	if b.err != nil {
		return b
	}
	tr, err := httpTransport(timeoutSeconds, retries, retryDelaySeconds, nil)
	if err != nil {
		return b.fail(err)
	}
	b.register(hookloki.New(baseURL, staticLabels, tr, minLevel, b.logger.rootFields, b.logger.extras), name)
	return b
}

func (b *Builder) AddEmail(cfg hookemail.Config, minLevel level.Level, name string) *Builder {
	if b.err != nil {
		return b
	}
	h, err := hookemail.New(cfg, minLevel, b.logger.rootFields, b.logger.extras)
	if err != nil {
		return b.fail(err)
	}
	b.register(h, name)
	return b
}

func (b *Builder) AddDatabase(db *gorm.DB, table string, minLevel level.Level, name string) *Builder {
	if b.err != nil {
		return b
	}
	b.register(hookdatabase.New(db, table, minLevel, b.logger.rootFields, b.logger.extras), name)
	return b
}

func (b *Builder) AddRedisKV(client *redis.Client, ttl time.Duration, minLevel level.Level, name string) *Builder {
	if b.err != nil {
		return b
	}
	b.register(hookrediskv.New(client, ttl, minLevel, b.logger.rootFields, b.logger.extras), name)
	return b
}

func (b *Builder) AddRedisPubSub(client *redis.Client, channel string, minLevel level.Level, name string) *Builder {
	if b.err != nil {
		return b
	}
	b.register(hookredispubsub.New(client, channel, minLevel, b.logger.rootFields, b.logger.extras), name)
	return b
}

func (b *Builder) AddAMQP(conn *amqp091.Connection, exchange string, minLevel level.Level, name string) *Builder {
	if b.err != nil {
		return b
	}
	h, err := hookamqp.New(conn, exchange, minLevel, b.logger.rootFields, b.logger.extras)
	if err != nil {
		return b.fail(err)
	}
	b.register(h, name)
	return b
}

func (b *Builder) AddKafka(writer *kafka.Writer, minLevel level.Level, name string) *Builder {
	if b.err != nil {
		return b
	}
	b.register(hookkafka.New(writer, minLevel, b.logger.rootFields, b.logger.extras), name)
	return b
}

// WrapFingersCrossed registers a FingersCrossed decorator buffering
// child until a record at activationLevel or above arrives.
func (b *Builder) WrapFingersCrossed(child handler.Streamable, activationLevel level.Level, capacity int, latching bool, name string) *Builder {
	if b.err != nil {
		return b
	}
	b.register(fingerscrossed.New(child, activationLevel, capacity, latching), name)
	return b
}

// WrapSamplingRate registers a Sampling decorator using the rate
// strategy (first rate records per wall-clock second).
func (b *Builder) WrapSamplingRate(child handler.Streamable, rate int, name string) *Builder {
	if b.err != nil {
		return b
	}
	b.register(sampling.NewRate(child, rate), name)
	return b
}

// WrapSamplingPercentage registers a Sampling decorator accepting
// percentage out of every 100 records.
func (b *Builder) WrapSamplingPercentage(child handler.Streamable, percentage int, name string) *Builder {
	if b.err != nil {
		return b
	}
	b.register(sampling.NewPercentage(child, percentage), name)
	return b
}

// WrapSamplingSmart registers a Sampling decorator that always accepts
// alwaysLogLevels and otherwise applies a percentage gate.
func (b *Builder) WrapSamplingSmart(child handler.Streamable, alwaysLogLevels []level.Level, samplePercentage int, name string) *Builder {
	if b.err != nil {
		return b
	}
	b.register(sampling.NewSmart(child, alwaysLogLevels, samplePercentage), name)
	return b
}

// WrapSamplingFingerprint registers a Sampling decorator deduplicating
// identical (level, message-prefix) records within window.
func (b *Builder) WrapSamplingFingerprint(child handler.Streamable, window time.Duration, name string) *Builder {
	if b.err != nil {
		return b
	}
	b.register(sampling.NewFingerprint(child, window), name)
	return b
}

// WrapConditional registers a Conditional decorator routing to the
// first matching route's handler, falling back to fallback if given.
func (b *Builder) WrapConditional(routes []conditional.Route, fallback handler.Streamable, name string) *Builder {
	if b.err != nil {
		return b
	}
	b.register(conditional.New(routes, fallback), name)
	return b
}
