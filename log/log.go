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

// Package log implements a levelled logger on top of hashicorp/go-hclog
// as well as a switchable default logger used by the whole application.
package log

import (
	"sync"
)

var (
	mu  sync.RWMutex
	std = New(&LoggerOptions{Name: "hashtree", Level: LevelInfo})
)

// Default returns the logger used by the package level functions.
func Default() Logger {
	mu.RLock()
	defer mu.RUnlock()
	return std
}

// SetDefault switches the logger used by the package level functions.
func SetDefault(l Logger) {
	mu.Lock()
	defer mu.Unlock()
	std = l
}

// SetLogger is a function that switches the default logger to a new one
// with the given name and level. Available levels are "off", "fatal",
// "error", "warn", "info", "debug" and "trace".
func SetLogger(name, level string) {
	lv := LevelFromString(level)
	l := New(&LoggerOptions{Name: name, Level: lv, IncludeLocation: lv >= LevelDebug})
	if lv == LevelNotSet {
		l.Warnf("Incorrect level of verbosity (%v) fallback to %s", level, DefaultLevel)
	}
	SetDefault(l)
}

// Below is the public interface for the logger, a proxy for the switchable
// implementation defined in std.

func Trace(msg string) { Default().Trace(msg) }

func Tracef(format string, args ...interface{}) { Default().Tracef(format, args...) }

func Debug(msg string) { Default().Debug(msg) }

func Debugf(format string, args ...interface{}) { Default().Debugf(format, args...) }

func Info(msg string) { Default().Info(msg) }

func Infof(format string, args ...interface{}) { Default().Infof(format, args...) }

func Warn(msg string) { Default().Warn(msg) }

func Warnf(format string, args ...interface{}) { Default().Warnf(format, args...) }

func Error(msg string) { Default().Error(msg) }

func Errorf(format string, args ...interface{}) { Default().Errorf(format, args...) }

// Fatal writes the message and stops the execution.
func Fatal(msg string) { Default().Fatal(msg) }

// Fatalf writes the formatted message and stops the execution.
func Fatalf(format string, args ...interface{}) { Default().Fatalf(format, args...) }
