// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package setting

import (
	"code.gitea.io/githistory/modules/log"

	"github.com/gobwas/glob"
)

// RefMatchers compiles reference name patterns, '/' separates the components of a name.
// Invalid patterns are logged and skipped.
func RefMatchers(patterns []string) []glob.Glob {
	matchers := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			log.Warn("Invalid reference pattern %q: %v", pattern, err)
			continue
		}
		matchers = append(matchers, g)
	}
	return matchers
}
