// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package log

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelFromEnvValue(t *testing.T) {
	assert.Equal(t, LevelTrace, LevelFromEnvValue("0"))
	assert.Equal(t, LevelDebug, LevelFromEnvValue("1"))
	assert.Equal(t, LevelInfo, LevelFromEnvValue("2"))
	assert.Equal(t, LevelWarn, LevelFromEnvValue("3"))
	assert.Equal(t, LevelError, LevelFromEnvValue("4"))
	assert.Equal(t, LevelFatal, LevelFromEnvValue("5"))
	assert.Equal(t, LevelInfo, LevelFromEnvValue("garbage"))
}

func TestLoggerFiltersBelowMinimum(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelWarn)
	l.Infof("should not appear")
	assert.Empty(t, buf.String())

	l.Warnf("should appear: %d", 42)
	assert.Contains(t, buf.String(), "should appear: 42")
}

func TestLevelLabelOrdering(t *testing.T) {
	assert.Equal(t, "TRACE", levelLabel(LevelTrace))
	assert.Equal(t, "DEBUG", levelLabel(LevelDebug))
	assert.Equal(t, "INFO", levelLabel(LevelInfo))
	assert.Equal(t, "WARN", levelLabel(LevelWarn))
	assert.Equal(t, "ERROR", levelLabel(LevelError))
	assert.Equal(t, "FATAL", levelLabel(LevelFatal))
}

func TestLoggerWritesAllLevelsWhenMinIsTrace(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelTrace)
	l.Tracef("trace line")
	l.Debugf("debug line")
	l.Errorf("error line")

	out := buf.String()
	for _, want := range []string{"trace line", "debug line", "error line"} {
		assert.True(t, strings.Contains(out, want), "missing %q in %q", want, out)
	}
}
