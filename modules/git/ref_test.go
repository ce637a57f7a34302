// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package git

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSafeRefName(t *testing.T) {
	for _, name := range []string{"main", "feature/foo", "v1.0", "refs/heads/main", "HEAD"} {
		assert.True(t, isSafeRefName(name), name)
	}
	for _, name := range []string{"", "/etc/passwd", "../config", "a..b", "a//b", "main.lock", "trailing/", "a b", "a:b", "a\x00b"} {
		assert.False(t, isSafeRefName(name), name)
	}
}

func TestCandidateRefNames(t *testing.T) {
	assert.Equal(t, []string{
		"refs/main",
		"refs/tags/main",
		"refs/heads/main",
		"refs/remotes/main",
		"refs/remotes/main/HEAD",
	}, candidateRefNames("main"))
	assert.Equal(t, "HEAD", candidateRefNames("HEAD")[0])
	assert.Equal(t, "refs/heads/main", candidateRefNames("refs/heads/main")[0])
}

func TestRefName(t *testing.T) {
	assert.Equal(t, "foo", RefName("refs/heads/foo").ShortName())
	assert.Equal(t, "feature/foo", RefName("refs/heads/feature/foo").ShortName())
	assert.Equal(t, "release/foo", RefName("refs/tags/release/foo").ShortName())
	assert.Equal(t, "origin/main", RefName("refs/remotes/origin/main").ShortName())
	assert.Equal(t, "c0ffee", RefName("c0ffee").ShortName())
}
