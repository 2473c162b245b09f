// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package log implements datoviz's level-colored logger, adapted from
// the rest of the pack's slog+termenv idiom (base/logx) to the
// trace/debug/info/warn/error/fatal scheme this system needs.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/muesli/termenv"
)

// Level extends slog's four levels with Trace below Debug and Fatal
// above Error, matching DVZ_LOG_LEVEL's six-value scheme (0=trace ...
// 5=fatal).
type Level = slog.Level

const (
	LevelTrace Level = slog.LevelDebug - 4
	LevelDebug Level = slog.LevelDebug
	LevelInfo  Level = slog.LevelInfo
	LevelWarn  Level = slog.LevelWarn
	LevelError Level = slog.LevelError
	LevelFatal Level = slog.LevelError + 4
)

// levelNames maps each of the six DVZ_LOG_LEVEL numeric values to its
// slog.Level, from most to least verbose.
var levelNames = [...]Level{LevelTrace, LevelDebug, LevelInfo, LevelWarn, LevelError, LevelFatal}

// LevelFromEnvValue parses one of "0".."5" (DVZ_LOG_LEVEL's values)
// into a Level, defaulting to LevelInfo for anything else.
func LevelFromEnvValue(v string) Level {
	switch v {
	case "0":
		return LevelTrace
	case "1":
		return LevelDebug
	case "2":
		return LevelInfo
	case "3":
		return LevelWarn
	case "4":
		return LevelError
	case "5":
		return LevelFatal
	default:
		return LevelInfo
	}
}

func levelLabel(l Level) string {
	switch {
	case l < LevelDebug:
		return "TRACE"
	case l < LevelInfo:
		return "DEBUG"
	case l < LevelWarn:
		return "INFO"
	case l < LevelError:
		return "WARN"
	case l < LevelFatal:
		return "ERROR"
	default:
		return "FATAL"
	}
}

// Logger is a level-colored logger over an io.Writer. It is safe for
// concurrent use (delegating to the underlying *slog.Logger, which is).
type Logger struct {
	min     Level
	out     io.Writer
	color   bool
	profile termenv.Profile
	slog    *slog.Logger
}

// New returns a Logger writing to w at minimum level min. The level
// label is colored when termenv.ColorProfile reports color support for
// standard output, whatever w is, and plain text otherwise.
func New(w io.Writer, min Level) *Logger {
	profile := termenv.ColorProfile()
	useColor := profile != termenv.Ascii
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: min})
	return &Logger{min: min, out: w, color: useColor, profile: profile, slog: slog.New(h)}
}

// NewDefault returns a Logger writing to os.Stderr at the level named
// by the DVZ_LOG_LEVEL environment variable (defaulting to info).
func NewDefault() *Logger {
	return New(os.Stderr, LevelFromEnvValue(os.Getenv("DVZ_LOG_LEVEL")))
}

func (l *Logger) colorize(level Level, s string) string {
	if !l.color {
		return s
	}
	var c termenv.Color
	switch {
	case level < LevelDebug:
		c = termenv.ANSIBrightBlack
	case level < LevelInfo:
		c = termenv.ANSICyan
	case level < LevelWarn:
		c = termenv.ANSIWhite
	case level < LevelError:
		c = termenv.ANSIYellow
	default:
		c = termenv.ANSIRed
	}
	return termenv.String(s).Foreground(c).String()
}

func (l *Logger) log(level Level, format string, args []any) {
	if level < l.min {
		return
	}
	msg := fmt.Sprintf(format, args...)
	line := fmt.Sprintf("%s %s", l.colorize(level, "["+levelLabel(level)+"]"), msg)
	l.slog.Log(context.Background(), level, line)
	if level >= LevelFatal {
		os.Exit(1)
	}
}

func (l *Logger) Tracef(format string, args ...any) { l.log(LevelTrace, format, args) }
func (l *Logger) Debugf(format string, args ...any) { l.log(LevelDebug, format, args) }
func (l *Logger) Infof(format string, args ...any)  { l.log(LevelInfo, format, args) }
func (l *Logger) Warnf(format string, args ...any)  { l.log(LevelWarn, format, args) }
func (l *Logger) Errorf(format string, args ...any) { l.log(LevelError, format, args) }

// Fatalf logs at LevelFatal and terminates the process with exit code 1.
func (l *Logger) Fatalf(format string, args ...any) { l.log(LevelFatal, format, args) }

// Default is the package-level logger used by the Tracef/.../Fatalf
// free functions, configured from DVZ_LOG_LEVEL at package init.
var Default = NewDefault()

func Tracef(format string, args ...any) { Default.Tracef(format, args...) }
func Debugf(format string, args ...any) { Default.Debugf(format, args...) }
func Infof(format string, args ...any)  { Default.Infof(format, args...) }
func Warnf(format string, args ...any)  { Default.Warnf(format, args...) }
func Errorf(format string, args ...any) { Default.Errorf(format, args...) }
func Fatalf(format string, args ...any) { Default.Fatalf(format, args...) }
