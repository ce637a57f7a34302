// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package setting

import (
	"code.gitea.io/githistory/modules/log"
)

// SessionConfig defines the bounds of the history session store
var SessionConfig = struct {
	MaxSessions int
}{
	MaxSessions: 1024,
}

func loadSessionFrom(rootCfg ConfigProvider) {
	sec := rootCfg.Section("session")
	SessionConfig.MaxSessions = sec.Key("MAX_SESSIONS").MustInt(1024)
	if SessionConfig.MaxSessions <= 0 {
		log.Warn("Invalid [session] MAX_SESSIONS %d, falling back to 1024", SessionConfig.MaxSessions)
		SessionConfig.MaxSessions = 1024
	}
}
