// Copyright 2024 Blotter Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package log is a small, dependency-free leveled logging abstraction: a
// Logger interface any backend can satisfy, a level filter that wraps one
// Logger to drop anything below a threshold, and a Helper that offers
// Debug/Info/Warn/Error convenience methods over whatever Logger it wraps.
package log

import (
	"fmt"
	"io"
	"time"
)

// Level is a log severity. Lower values are more verbose.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// ParseLevel parses one of "debug", "info", "warn" or "error",
// case-sensitively, as produced by Level.String.
func ParseLevel(s string) (Level, bool) {
	switch s {
	case "debug":
		return LevelDebug, true
	case "info":
		return LevelInfo, true
	case "warn":
		return LevelWarn, true
	case "error":
		return LevelError, true
	default:
		return 0, false
	}
}

// Logger is the sink every Helper call is eventually delivered to.
// keyvals is an alternating key/value list, e.g. Log(LevelInfo, "msg",
// "migrated save", "from", 5, "to", 6).
type Logger interface {
	Log(level Level, keyvals ...interface{}) error
}

// NewStdLogger returns a Logger that writes one line per call to w, with
// a timestamp, the level, and the keyvals rendered as space-separated
// key=value pairs.
func NewStdLogger(w io.Writer) Logger {
	return &stdLogger{w: w}
}

type stdLogger struct {
	w io.Writer
}

func (l *stdLogger) Log(level Level, keyvals ...interface{}) error {
	line := fmt.Sprintf("%s level=%s", time.Now().Format(time.RFC3339), level)
	for i := 0; i+1 < len(keyvals); i += 2 {
		line += fmt.Sprintf(" %v=%v", keyvals[i], keyvals[i+1])
	}
	line += "\n"
	_, err := io.WriteString(l.w, line)
	return err
}

// NewFilter wraps next so that Log calls below the configured level
// (LevelInfo unless a FilterOption says otherwise) are dropped.
func NewFilter(next Logger, opts ...FilterOption) Logger {
	f := &filter{next: next, level: LevelInfo}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

type filter struct {
	next  Logger
	level Level
}

func (f *filter) Log(level Level, keyvals ...interface{}) error {
	if level < f.level {
		return nil
	}
	return f.next.Log(level, keyvals...)
}

// FilterOption configures a filter built by NewFilter.
type FilterOption func(*filter)

// FilterLevel sets the minimum level a filter passes through.
func FilterLevel(level Level) FilterOption {
	return func(f *filter) { f.level = level }
}

// Helper offers Debug/Info/Warn/Error convenience methods over a Logger.
// A nil *Helper is valid and discards every call, so callers never need
// to nil-check a Helper before using it.
type Helper struct {
	logger Logger
}

// NewHelper wraps logger in a Helper.
func NewHelper(logger Logger) *Helper {
	return &Helper{logger: logger}
}

func (h *Helper) log(level Level, keyvals ...interface{}) {
	if h == nil || h.logger == nil {
		return
	}
	_ = h.logger.Log(level, keyvals...)
}

// Debugf logs a formatted message at debug level under key "msg".
func (h *Helper) Debugf(format string, args ...interface{}) {
	h.log(LevelDebug, "msg", fmt.Sprintf(format, args...))
}

// Infof logs a formatted message at info level under key "msg".
func (h *Helper) Infof(format string, args ...interface{}) {
	h.log(LevelInfo, "msg", fmt.Sprintf(format, args...))
}

// Warnf logs a formatted message at warn level under key "msg".
func (h *Helper) Warnf(format string, args ...interface{}) {
	h.log(LevelWarn, "msg", fmt.Sprintf(format, args...))
}

// Errorf logs a formatted message at error level under key "msg".
func (h *Helper) Errorf(format string, args ...interface{}) {
	h.log(LevelError, "msg", fmt.Sprintf(format, args...))
}
