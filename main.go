// Copyright 2014 The Gogs Authors. All rights reserved.
// Copyright 2016 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// githistory serves the paginated commit history of a git repository
package main

import (
	"os"
	"runtime"

	"code.gitea.io/githistory/cmd"
	"code.gitea.io/githistory/modules/setting"
)

// these flags will be set by the build flags
var (
	Version = "development" // program version for this build
	Tags    = ""            // the Golang build tags
)

func init() {
	setting.AppVer = Version
}

func main() {
	app := cmd.NewMainApp(cmd.AppVersion{Version: Version, Extra: formatBuiltWith()})
	_ = cmd.RunMainApp(app, os.Args...) // all errors should have been handled by the RunMainApp
}

func formatBuiltWith() string {
	version := runtime.Version()
	if Tags == "" {
		return " built with " + version
	}
	return " built with " + version + " : " + Tags
}
