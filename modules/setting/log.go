// Copyright 2019 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package setting

import (
	"code.gitea.io/githistory/modules/log"
)

// Log settings
var Log = struct {
	Level           log.Level
	StacktraceLevel log.Level
	Flags           int
}{
	Level:           log.INFO,
	StacktraceLevel: log.NONE,
	Flags:           log.LstdFlags,
}

func loadLogFrom(rootCfg ConfigProvider) {
	sec := rootCfg.Section("log")
	Log.Level = log.LevelFromString(sec.Key("LEVEL").MustString(log.INFO.String()))
	Log.StacktraceLevel = log.LevelFromString(sec.Key("STACKTRACE_LEVEL").MustString(log.NONE.String()))
	Log.Flags = log.FlagsFromString(sec.Key("FLAGS").MustString("stdflags"))
}

// InitLoggers applies the log settings to the default logger
func InitLoggers() {
	writer := log.NewConsoleWriter(Log.Flags)
	log.SetWriter(writer)
	log.SetLevel(Log.Level)
	log.SetStacktraceLevel(Log.StacktraceLevel)
}
