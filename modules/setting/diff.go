// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package setting

// Diff settings
var Diff = struct {
	SummaryCacheSize int
	ContextLines     int
}{
	SummaryCacheSize: 512,
	ContextLines:     3,
}

func loadDiffFrom(rootCfg ConfigProvider) {
	sec := rootCfg.Section("diff")
	Diff.SummaryCacheSize = sec.Key("SUMMARY_CACHE_SIZE").MustInt(512)
	Diff.ContextLines = sec.Key("CONTEXT_LINES").MustInt(3)
	if Diff.ContextLines < 0 {
		Diff.ContextLines = 0
	}
}
