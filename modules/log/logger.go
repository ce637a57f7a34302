// Copyright 2023 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package log

import (
	"os"
	"runtime"
	"strings"
	"sync/atomic"
	"time"
)

// BaseLogger provides the basic logging functions
type BaseLogger interface {
	Log(skip int, level Level, format string, v ...any)
	GetLevel() Level
}

// LevelLogger provides level-related logging functions
type LevelLogger interface {
	LevelEnabled(level Level) bool

	Trace(format string, v ...any)
	Debug(format string, v ...any)
	Info(format string, v ...any)
	Warn(format string, v ...any)
	Error(format string, v ...any)
}

type Logger interface {
	BaseLogger
	LevelLogger
}

// LoggerImpl is the default logger, it sends events with a level not lower than its own to its writer
type LoggerImpl struct {
	level           atomic.Int32
	stacktraceLevel atomic.Int32
	writer          atomic.Pointer[EventWriter]
}

var _ Logger = (*LoggerImpl)(nil)

// NewLogger creates a logger writing to w
func NewLogger(level Level, w *EventWriter) *LoggerImpl {
	l := &LoggerImpl{}
	l.level.Store(int32(level))
	l.stacktraceLevel.Store(int32(NONE))
	l.writer.Store(w)
	return l
}

// SetLevel changes the lowest level which is written
func (l *LoggerImpl) SetLevel(level Level) {
	l.level.Store(int32(level))
}

// SetStacktraceLevel sets the lowest level which gets a stacktrace attached
func (l *LoggerImpl) SetStacktraceLevel(level Level) {
	l.stacktraceLevel.Store(int32(level))
}

// SetWriter replaces the writer of the logger
func (l *LoggerImpl) SetWriter(w *EventWriter) {
	l.writer.Store(w)
}

// GetLevel returns the lowest level which is written
func (l *LoggerImpl) GetLevel() Level {
	return Level(l.level.Load())
}

// LevelEnabled checks if the level is enabled
func (l *LoggerImpl) LevelEnabled(level Level) bool {
	return level >= l.GetLevel()
}

// Log prepares the log event, if the level matches, the event will be written to the writer
func (l *LoggerImpl) Log(skip int, level Level, format string, logArgs ...any) {
	if !l.LevelEnabled(level) || level == NONE {
		return
	}

	event := &Event{
		Time:   time.Now(),
		Level:  level,
		Caller: "?()",
	}

	pc, filename, line, ok := runtime.Caller(skip + 1)
	if ok {
		fn := runtime.FuncForPC(pc)
		if fn != nil {
			event.Caller = fn.Name()
		}
	}
	event.Filename, event.Line = strings.TrimPrefix(filename, projectPackagePrefix), line

	if level >= Level(l.stacktraceLevel.Load()) {
		event.Stacktrace = Stack(skip + 1)
	}

	if len(logArgs) == 0 {
		event.MsgSimpleText = format
	} else {
		event.msgFormat = format
		event.msgArgs = logArgs
	}

	if w := l.writer.Load(); w != nil {
		_ = w.WriteEvent(event)
	}
}

// Trace logs a trace message
func (l *LoggerImpl) Trace(format string, v ...any) {
	l.Log(1, TRACE, format, v...)
}

// Debug logs a debug message
func (l *LoggerImpl) Debug(format string, v ...any) {
	l.Log(1, DEBUG, format, v...)
}

// Info logs an info message
func (l *LoggerImpl) Info(format string, v ...any) {
	l.Log(1, INFO, format, v...)
}

// Warn logs a warning message
func (l *LoggerImpl) Warn(format string, v ...any) {
	l.Log(1, WARN, format, v...)
}

// Error logs an error message
func (l *LoggerImpl) Error(format string, v ...any) {
	l.Log(1, ERROR, format, v...)
}

// IsTrace returns true if the logger is TRACE
func (l *LoggerImpl) IsTrace() bool {
	return l.LevelEnabled(TRACE)
}

var projectPackagePrefix string

func init() {
	_, filename, _, _ := runtime.Caller(0)
	projectPackagePrefix = strings.TrimSuffix(filename, "modules/log/logger.go")
	if projectPackagePrefix == filename {
		// in case the source code file is moved, we can not trim the suffix, the code above should also be updated.
		panic("unable to detect correct package prefix, please update file: " + filename)
	}
}

// OsExiter is the function called by Fatal, it is replaced in tests
var OsExiter = os.Exit
