// Copyright 2014 The Gogs Authors. All rights reserved.
// Copyright 2017 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package setting

import (
	"path/filepath"
)

var (
	// AppName is the application name, used in the CLI help and metrics namespace
	AppName = "githistory"
	// AppVer is the version of the current build, it is set by the linker flags
	AppVer = "development"
	// CustomConf is the path of the ini configuration file
	CustomConf = filepath.Join("custom", "conf", "app.ini")
)

// LoadCommonSettings loads every section of the configuration, flags are applied on top by the caller
func LoadCommonSettings(cfg ConfigProvider) {
	loadLogFrom(cfg)
	loadServerFrom(cfg)
	loadRepositoryFrom(cfg)
	loadSessionFrom(cfg)
	loadDiffFrom(cfg)
	loadCorsFrom(cfg)
	loadMetricsFrom(cfg)
}

// InitCfgProvider reads the configuration file (a missing file is allowed)
func InitCfgProvider(file string) (ConfigProvider, error) {
	if file != "" {
		CustomConf = file
	}
	return NewConfigProviderFromFile(file)
}
