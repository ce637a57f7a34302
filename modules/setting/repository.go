// Copyright 2019 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package setting

import (
	"os"
	"path/filepath"

	"code.gitea.io/githistory/modules/log"
)

// Repository settings, they select the repository to serve and the roots of the default query
var Repository = struct {
	Root     string
	Branch   string
	AllRefs  bool
	PageSize int
	// ExcludeRefs are glob patterns of the references left out of the ALL_REFS query
	ExcludeRefs []string
}{
	PageSize: 50,
}

func loadRepositoryFrom(rootCfg ConfigProvider) {
	sec := rootCfg.Section("repository")
	Repository.Root = sec.Key("ROOT").MustString("")
	Repository.Branch = sec.Key("BRANCH").MustString("")
	Repository.AllRefs = sec.Key("ALL_REFS").MustBool(false)
	Repository.ExcludeRefs = sec.Key("EXCLUDE_REFS").Strings(",")
	Repository.PageSize = sec.Key("PAGE_SIZE").MustInt(50)
	if Repository.PageSize <= 0 {
		log.Warn("Invalid [repository] PAGE_SIZE %d, falling back to 50", Repository.PageSize)
		Repository.PageSize = 50
	}
}

// ResolveRepositoryRoot makes the repository root absolute, an empty root means the working directory
func ResolveRepositoryRoot() error {
	root := Repository.Root
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		root = wd
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return err
	}
	Repository.Root = abs
	return nil
}
