// Copyright 2019 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package setting

// Metrics settings
var Metrics = struct {
	Enabled bool
}{
	Enabled: false,
}

func loadMetricsFrom(rootCfg ConfigProvider) {
	Metrics.Enabled = rootCfg.Section("metrics").Key("ENABLED").MustBool(false)
}
