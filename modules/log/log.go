// Copyright 2014 The Gogs Authors. All rights reserved.
// Copyright 2019 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package log

import (
	"fmt"
	"runtime"
	"strings"
)

var defaultLogger = NewLogger(INFO, NewConsoleWriter(LstdFlags))

// GetLevel returns the level of the default logger
func GetLevel() Level {
	return defaultLogger.GetLevel()
}

// SetLevel changes the level of the default logger
func SetLevel(level Level) {
	defaultLogger.SetLevel(level)
}

// SetWriter replaces the writer of the default logger
func SetWriter(w *EventWriter) {
	defaultLogger.SetWriter(w)
}

// IsTrace returns true if the default logger is TRACE
func IsTrace() bool {
	return defaultLogger.LevelEnabled(TRACE)
}

// SetStacktraceLevel sets the lowest level of the default logger which gets a stacktrace attached
func SetStacktraceLevel(level Level) {
	defaultLogger.SetStacktraceLevel(level)
}

// Log a message with defined skip and at logging level
func Log(skip int, level Level, format string, v ...any) {
	defaultLogger.Log(skip+1, level, format, v...)
}

// Trace records trace log
func Trace(format string, v ...any) {
	Log(1, TRACE, format, v...)
}

// Debug records debug log
func Debug(format string, v ...any) {
	Log(1, DEBUG, format, v...)
}

// Info records info log
func Info(format string, v ...any) {
	Log(1, INFO, format, v...)
}

// Warn records warning log
func Warn(format string, v ...any) {
	Log(1, WARN, format, v...)
}

// Error records error log
func Error(format string, v ...any) {
	Log(1, ERROR, format, v...)
}

// ErrorWithSkip records error log from "skip" calls back from this function
func ErrorWithSkip(skip int, format string, v ...any) {
	Log(skip+1, ERROR, format, v...)
}

// Fatal records fatal log and exit process
func Fatal(format string, v ...any) {
	Log(1, FATAL, format, v...)
	OsExiter(1)
}

// Stack will skip back the provided number of frames and return a stack trace with source code.
// Although we could just use debug.Stack(), this routine will return the source code and
// skip back the provided number of frames - i.e. allowing us to ignore preceding function calls.
// A skip of 0 returns the stack trace for the calling function, not including this call.
// If the problem is a lack of memory of course all this is not going to work...
func Stack(skip int) string {
	buf := new(strings.Builder)

	// Store the last file we opened as its probable that the preceding stack frame
	// will be in the same file
	for i := skip + 1; ; i++ { // Skip over frames
		programCounter, filename, lineNumber, ok := runtime.Caller(i)
		// If we can't retrieve the information break - there's likely a problem
		if !ok {
			break
		}

		// Print equivalent of debug.Stack()
		_, _ = fmt.Fprintf(buf, "%s:%d (0x%x)\n", filename, lineNumber, programCounter)
		fn := runtime.FuncForPC(programCounter)
		if fn == nil {
			continue
		}
		_, _ = fmt.Fprintf(buf, "\t%s\n", fn.Name())
	}
	return buf.String()
}
