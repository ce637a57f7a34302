// Copyright 2022 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package setting

import (
	"time"

	"code.gitea.io/githistory/modules/log"
)

// CORSConfig defines CORS settings
var CORSConfig = struct {
	Enabled          bool
	AllowDomain      []string // allowed origins
	Methods          []string
	MaxAge           time.Duration
	AllowCredentials bool
	Headers          []string
}{
	AllowDomain: []string{"*"},
	Methods:     []string{"GET", "HEAD", "POST"},
	Headers:     []string{"Content-Type"},
	MaxAge:      10 * time.Minute,
}

func loadCorsFrom(rootCfg ConfigProvider) {
	if err := rootCfg.Section("cors").MapTo(&CORSConfig); err != nil {
		log.Fatal("Failed to map cors settings: %v", err)
	}
	if CORSConfig.Enabled {
		log.Info("CORS Service Enabled")
	}
}
