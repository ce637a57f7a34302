// Copyright 2015 The Gogs Authors. All rights reserved.
// Copyright 2019 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package git

import (
	"fmt"
	"io"

	"github.com/go-git/go-git/v5/plumbing/format/diff"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// GetPatch returns the changes between the trees of the base and the head commits
func (repo *Repository) GetPatch(base, head ObjectID) (*object.Patch, error) {
	baseCommit, err := repo.getGoGitCommit(base)
	if err != nil {
		return nil, err
	}
	headCommit, err := repo.getGoGitCommit(head)
	if err != nil {
		return nil, err
	}
	patch, err := baseCommit.PatchContext(repo.ctx, headCommit)
	if err != nil {
		return nil, fmt.Errorf("diff %s..%s: %w", base, head, err)
	}
	return patch, nil
}

// GetDiffShortStat counts the files changed and the total lines added and removed between two commits
func (repo *Repository) GetDiffShortStat(base, head ObjectID) (numFiles, totalAdditions, totalDeletions int, err error) {
	patch, err := repo.GetPatch(base, head)
	if err != nil {
		return 0, 0, 0, err
	}
	for _, stat := range patch.Stats() {
		numFiles++
		totalAdditions += stat.Addition
		totalDeletions += stat.Deletion
	}
	return numFiles, totalAdditions, totalDeletions, nil
}

// WriteUnifiedDiff writes the changes between two commits in the unified diff format
func (repo *Repository) WriteUnifiedDiff(w io.Writer, base, head ObjectID, contextLines int) error {
	patch, err := repo.GetPatch(base, head)
	if err != nil {
		return err
	}
	return diff.NewUnifiedEncoder(w, contextLines).Encode(patch)
}
