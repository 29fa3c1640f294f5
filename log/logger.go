/*
   Copyright 2018-2019 Banco Bilbao Vizcaya Argentaria, S.A.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package log

import (
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"
	"strings"

	hclog "github.com/hashicorp/go-hclog"
)

// Level represents the logging level.
type Level uint32

const (
	// LevelNotSet level is used to indicate that no level has been set
	// and allow for a default to be used
	LevelNotSet Level = iota

	// LevelOff is intended to avoid tracing any action.
	// This is the hightest possible rank.
	LevelOff

	// LevelFatal designates very severe errors that lead
	// the application to abort.
	LevelFatal

	// LevelError designates rare error events that might still allow
	// the application to continue running (e.g. a digest function
	// that cannot be instantiated).
	LevelError

	// LevelWarn designates potentially harmful situations (e.g. encoding
	// errors, malformed requests...).
	LevelWarn

	// LevelInfo designates informational messages that hightlight the
	// main progress of the application at coarse-grained level
	// (e.g. bootstrap, shutdown...).
	LevelInfo

	// LevelDebug designates fine-grained informational events that are
	// useful to debug the application. Don't use it in production.
	LevelDebug

	// LevelTrace designates a even finer-grained informational events
	// than Debug level. Don't use it in production.
	LevelTrace
)

// Defaults used when the options leave a field unset.
var (
	DefaultOutput     io.Writer = os.Stderr
	DefaultLevel                = LevelInfo
	DefaultTimeFormat           = "2006-01-02T15:04:05.000Z0700"
)

// To allow mocking we require a switchable variable.
var osExit = os.Exit

// String returns a string representation of the level
func (l Level) String() string {
	switch l {
	case LevelNotSet:
		return "unknown"
	case LevelOff:
		return "off"
	case LevelFatal:
		return "fatal"
	case LevelError:
		return "error"
	case LevelWarn:
		return "warn"
	case LevelInfo:
		return "info"
	case LevelDebug:
		return "debug"
	case LevelTrace:
		return "trace"
	default:
		return "unknown"
	}
}

// LevelFromString returns a Level type for the named log level, or
// "NotSet" if the level passed as argument is invalid.
func LevelFromString(level string) Level {
	level = strings.ToLower(strings.TrimSpace(level))
	switch level {
	case "off", "silent":
		return LevelOff
	case "fatal":
		return LevelFatal
	case "error":
		return LevelError
	case "warn":
		return LevelWarn
	case "info":
		return LevelInfo
	case "debug":
		return LevelDebug
	case "trace":
		return LevelTrace
	default:
		return LevelNotSet
	}
}

// Logger describes the interface that must be implemented
// by all loggers.
type Logger interface {
	// Trace emits a message at the TRACE level.
	Trace(msg string)
	// Tracef formats a message according to a format specifier
	// and emits it at the TRACE level.
	Tracef(format string, args ...interface{})
	// Debug emits a message at the DEBUG level.
	Debug(msg string)
	// Debugf formats a message according to a format specifier
	// and emits it at the DEBUG level.
	Debugf(format string, args ...interface{})
	// Info emits a message at the INFO level.
	Info(msg string)
	// Infof formats a message according to a format specifier
	// and emits it at the INFO level.
	Infof(format string, args ...interface{})
	// Warn emits a message at the WARN level.
	Warn(msg string)
	// Warnf formats a message according to a format specifier
	// and emits it at the WARN level.
	Warnf(format string, args ...interface{})
	// Error emits a message at the ERROR level.
	Error(msg string)
	// Errorf formats a message according to a format specifier
	// and emits it at the ERROR level.
	Errorf(format string, args ...interface{})
	// Fatal emits a message at the ERROR level
	// and exits the application (os.Exit(1)).
	Fatal(msg string)
	// Fatalf formats a message according to a format specifier,
	// emits it at the ERROR level and exits the application
	// (os.Exit(1)).
	Fatalf(format string, args ...interface{})
	// Panic emits a message at the ERROR level
	// and panics.
	Panic(msg string)
	// Panicf formats a message according to a format specifier,
	// emits it at the ERROR level and panics.
	Panicf(format string, args ...interface{})

	// Creates a logger that will prepend the given name on front of all
	// messages. If the logger has a previously set name, the new value
	// will be the appended to it.
	Named(name string) Logger

	// Creates a logger that will prepend the given name on front of all
	// messages. It overrides any previously set name.
	ResetNamed(name string) Logger

	// WithLevel creates a logger with the given level changed.
	WithLevel(level Level) Logger

	// GetLevel returns the threshold of the logger.
	GetLevel() Level

	// StdLogger returns a logger implementation that conforms to the
	// stdlib log.Logger interface. This allows packages that expect
	// to be using the standard library log to actually use this logger.
	StdLogger() *log.Logger
}

// LoggerOptions can be used to configure a new logger.
type LoggerOptions struct {
	// Name of the subsystem to prefix logs with.
	Name string

	// Level is the threshold for the logger. Any log trace less
	// sever is supressed.
	Level Level

	// Output is the writer implementation where to write logs to.
	// If nil, defaults to os.Stderr.
	Output io.Writer

	// TimeFormat is the time format to use instead of the default one.
	TimeFormat string

	// IncludeLocation includes file and line information in each log line.
	IncludeLocation bool

	// JSONFormat emits one JSON object per line instead of plain text.
	JSONFormat bool
}

type hclogLogger struct {
	opts LoggerOptions
	log  hclog.Logger
}

// New returns a new logger configured with
// the given options.
func New(opts *LoggerOptions) Logger {
	if opts == nil {
		opts = &LoggerOptions{}
	}
	o := *opts

	if o.Output == nil {
		o.Output = DefaultOutput
	}
	if o.Level == LevelNotSet {
		o.Level = DefaultLevel
	}
	if o.TimeFormat == "" {
		o.TimeFormat = DefaultTimeFormat
	}

	output := o.Output
	if o.Level == LevelOff {
		output = ioutil.Discard
	}

	return &hclogLogger{
		opts: o,
		log: hclog.New(&hclog.LoggerOptions{
			Name:            o.Name,
			Level:           toHclogLevel(o.Level),
			Output:          output,
			TimeFormat:      o.TimeFormat,
			IncludeLocation: o.IncludeLocation,
			JSONFormat:      o.JSONFormat,
		}),
	}
}

func toHclogLevel(level Level) hclog.Level {
	switch level {
	case LevelTrace:
		return hclog.Trace
	case LevelDebug:
		return hclog.Debug
	case LevelInfo:
		return hclog.Info
	case LevelWarn:
		return hclog.Warn
	default:
		// hclog has no fatal level, fatal traces are emitted as errors.
		return hclog.Error
	}
}

func (l *hclogLogger) Trace(msg string) { l.log.Trace(msg) }

func (l *hclogLogger) Tracef(format string, args ...interface{}) {
	if l.log.IsTrace() {
		l.log.Trace(fmt.Sprintf(format, args...))
	}
}

func (l *hclogLogger) Debug(msg string) { l.log.Debug(msg) }

func (l *hclogLogger) Debugf(format string, args ...interface{}) {
	if l.log.IsDebug() {
		l.log.Debug(fmt.Sprintf(format, args...))
	}
}

func (l *hclogLogger) Info(msg string) { l.log.Info(msg) }

func (l *hclogLogger) Infof(format string, args ...interface{}) {
	if l.log.IsInfo() {
		l.log.Info(fmt.Sprintf(format, args...))
	}
}

func (l *hclogLogger) Warn(msg string) { l.log.Warn(msg) }

func (l *hclogLogger) Warnf(format string, args ...interface{}) {
	if l.log.IsWarn() {
		l.log.Warn(fmt.Sprintf(format, args...))
	}
}

func (l *hclogLogger) Error(msg string) { l.log.Error(msg) }

func (l *hclogLogger) Errorf(format string, args ...interface{}) {
	l.log.Error(fmt.Sprintf(format, args...))
}

func (l *hclogLogger) Fatal(msg string) {
	l.log.Error(msg)
	osExit(1)
}

func (l *hclogLogger) Fatalf(format string, args ...interface{}) {
	l.log.Error(fmt.Sprintf(format, args...))
	osExit(1)
}

func (l *hclogLogger) Panic(msg string) {
	l.log.Error(msg)
	panic(msg)
}

func (l *hclogLogger) Panicf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	l.log.Error(msg)
	panic(msg)
}

func (l *hclogLogger) Named(name string) Logger {
	opts := l.opts
	if opts.Name != "" {
		opts.Name = opts.Name + "." + name
	} else {
		opts.Name = name
	}
	return New(&opts)
}

func (l *hclogLogger) ResetNamed(name string) Logger {
	opts := l.opts
	opts.Name = name
	return New(&opts)
}

func (l *hclogLogger) WithLevel(level Level) Logger {
	opts := l.opts
	opts.Level = level
	return New(&opts)
}

func (l *hclogLogger) GetLevel() Level {
	return l.opts.Level
}

func (l *hclogLogger) StdLogger() *log.Logger {
	return l.log.StandardLogger(&hclog.StandardLoggerOptions{InferLevels: true})
}
