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
	"bytes"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLevelFromString(t *testing.T) {

	testCases := []struct {
		level    string
		expected Level
	}{
		{"off", LevelOff},
		{"silent", LevelOff},
		{" ERROR ", LevelError},
		{"warn", LevelWarn},
		{"info", LevelInfo},
		{"debug", LevelDebug},
		{"trace", LevelTrace},
		{"verbose", LevelNotSet},
	}

	for i, c := range testCases {
		require.Equalf(t, c.expected, LevelFromString(c.level), "Wrong level in test case %d", i)
	}
}

func TestLoggerLevels(t *testing.T) {

	testCases := []struct {
		level    Level
		log      func(l Logger)
		expected string
	}{
		{LevelInfo, func(l Logger) { l.Info("this is a test") }, "[INFO]  test: this is a test"},
		{LevelInfo, func(l Logger) { l.Infof("this is a %s", "test") }, "[INFO]  test: this is a test"},
		{LevelInfo, func(l Logger) { l.Debug("this is a test") }, ""},
		{LevelDebug, func(l Logger) { l.Debugf("this is a %s", "test") }, "[DEBUG] test: this is a test"},
		{LevelTrace, func(l Logger) { l.Tracef("this is a %s", "test") }, "[TRACE] test: this is a test"},
		{LevelError, func(l Logger) { l.Warn("this is a test") }, ""},
		{LevelError, func(l Logger) { l.Errorf("this is a %s", "test") }, "[ERROR] test: this is a test"},
		{LevelOff, func(l Logger) { l.Error("this is a test") }, ""},
	}

	for i, c := range testCases {
		var buf bytes.Buffer
		logger := New(&LoggerOptions{
			Name:   "test",
			Level:  c.level,
			Output: &buf,
		})

		c.log(logger)

		if c.expected == "" {
			require.Emptyf(t, buf.String(), "Nothing should be logged in test case %d", i)
			continue
		}
		require.Truef(t, strings.Contains(buf.String(), c.expected), "Expected %q in %q in test case %d", c.expected, buf.String(), i)
	}
}

func TestNamedLoggers(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&LoggerOptions{
		Name:   "hashtree",
		Level:  LevelInfo,
		Output: &buf,
	})

	logger.Named("merkle").Info("built")
	require.Contains(t, buf.String(), "hashtree.merkle: built")

	buf.Reset()
	logger.Named("merkle").ResetNamed("api").Info("listening")
	require.Contains(t, buf.String(), " api: listening")

	buf.Reset()
	debug := logger.WithLevel(LevelDebug)
	require.Equal(t, LevelDebug, debug.GetLevel())
	debug.Debug("visible")
	require.Contains(t, buf.String(), "[DEBUG] hashtree: visible")
}

func TestStdLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&LoggerOptions{
		Name:   "test",
		Level:  LevelInfo,
		Output: &buf,
	})

	logger.StdLogger().Printf("[WARN] this is a test")

	require.Contains(t, buf.String(), "[WARN]  test: this is a test")
}

func TestFatalDoingOsExit(t *testing.T) {

	if os.Getenv("BE_CRASHER") == "1" {
		New(&LoggerOptions{Level: LevelError}).Fatal("killed")
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatalDoingOsExit")
	cmd.Env = append(os.Environ(), "BE_CRASHER=1")
	err := cmd.Run()
	if e, ok := err.(*exec.ExitError); ok && !e.Success() {
		// pass
	} else {
		t.Fatalf("log.Fatal ran with err %v, want exit status 1", err)
	}
}

func TestFatalWithMockedExit(t *testing.T) {
	var code int
	osExit = func(c int) { code = c }
	defer func() { osExit = os.Exit }()

	var buf bytes.Buffer
	New(&LoggerOptions{Level: LevelError, Output: &buf}).Fatalf("killed in the name %s", "off")

	require.Equal(t, 1, code)
	require.Contains(t, buf.String(), "[ERROR] killed in the name off")
}

func TestPanic(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&LoggerOptions{Level: LevelError, Output: &buf})
	require.PanicsWithValue(t, "boom 1", func() { logger.Panicf("boom %d", 1) })
}

func TestPackageFunctions(t *testing.T) {
	prev := Default()
	defer SetDefault(prev)

	var buf bytes.Buffer
	SetDefault(New(&LoggerOptions{Name: "test", Level: LevelDebug, Output: &buf}))

	testCases := []struct {
		log      func()
		expected string
	}{
		{func() { Info("this is a test") }, "[INFO]  test: this is a test"},
		{func() { Warnf("this is a %s", "test") }, "[WARN]  test: this is a test"},
		{func() { Debug("this is a test") }, "[DEBUG] test: this is a test"},
		{func() { Errorf("this is a %s", "test") }, "[ERROR] test: this is a test"},
		{func() { Trace("this is a test") }, ""},
	}

	for i, c := range testCases {
		buf.Reset()
		c.log()
		if c.expected == "" {
			require.Emptyf(t, buf.String(), "Nothing should be logged in test case %d", i)
			continue
		}
		require.Containsf(t, buf.String(), c.expected, "Wrong output in test case %d", i)
	}
}

func TestSetLoggerLevel(t *testing.T) {
	prev := Default()
	defer SetDefault(prev)

	testCases := []struct {
		level    string
		expected Level
	}{
		{"debug", LevelDebug},
		{"off", LevelOff},
		{"bogus", LevelInfo},
	}

	for i, c := range testCases {
		SetLogger("test", c.level)
		require.Equalf(t, c.expected, Default().GetLevel(), "Wrong level in test case %d", i)
	}
}
