// Copyright 2017 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package git_test

import (
	"context"
	"path/filepath"
	"testing"

	"code.gitea.io/githistory/modules/git"
	"code.gitea.io/githistory/modules/git/gittest"
	"code.gitea.io/githistory/modules/util"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenRepository(t *testing.T) {
	_, err := git.OpenRepository(context.Background(), filepath.Join(t.TempDir(), "missing"))
	assert.True(t, git.IsErrRepoNotOpen(err))
	assert.ErrorIs(t, err, util.ErrUnavailable)

	b := gittest.NewBareRepo(t)
	id := b.Commit(gittest.CommitOptions{Message: "initial\n", Time: 100})
	b.SetBranch("master", id)

	repo, err := git.OpenRepository(context.Background(), b.Path())
	require.NoError(t, err)
	defer repo.Close()

	head, err := repo.GetHEADCommitID()
	require.NoError(t, err)
	assert.Equal(t, id, head)
}

func TestGetCommit(t *testing.T) {
	b := gittest.NewMemoryRepo(t)
	root := b.Commit(gittest.CommitOptions{Message: "root\n\nbody", Time: 100, Author: "alice"})
	side := b.Commit(gittest.CommitOptions{Message: "side", Time: 150})
	merge := b.Commit(gittest.CommitOptions{Message: "  merge  \nmore", Time: 200, Parents: []git.ObjectID{root, side, root}})

	repo := b.Repository()
	defer repo.Close()

	c, err := repo.GetCommit(root)
	require.NoError(t, err)
	assert.Equal(t, root, c.ID)
	assert.Equal(t, "root", c.Summary())
	assert.Equal(t, "root\n\nbody", c.Message())
	assert.EqualValues(t, 100, c.Time())
	assert.Equal(t, "alice", c.Author.Name)
	assert.Equal(t, "alice@example.com", c.Committer.Email)
	assert.Empty(t, c.Parents)

	c, err = repo.GetCommit(merge)
	require.NoError(t, err)
	assert.Equal(t, "merge", c.Summary())
	assert.Equal(t, []git.ObjectID{root, side, root}, c.Parents)

	_, err = repo.GetCommit(git.MustIDFromString("0123456789012345678901234567890123456789"))
	assert.True(t, git.IsErrNotExist(err))
	assert.ErrorIs(t, err, util.ErrNotExist)

	_, err = git.NewIDFromString("0123")
	assert.ErrorIs(t, err, util.ErrInvalidArgument)
}

func TestCommitSummary(t *testing.T) {
	assert.Empty(t, (&git.Commit{CommitMessage: ""}).Summary())
	assert.Empty(t, (&git.Commit{CommitMessage: "\n\n  \n"}).Summary())
	assert.Equal(t, "title", (&git.Commit{CommitMessage: "\n title \nbody"}).Summary())
}

func TestResolveReference(t *testing.T) {
	b := gittest.NewMemoryRepo(t)
	c1 := b.Commit(gittest.CommitOptions{Message: "one", Time: 100})
	c2 := b.Commit(gittest.CommitOptions{Message: "two", Time: 200, Parents: []git.ObjectID{c1}})
	c3 := b.Commit(gittest.CommitOptions{Message: "three", Time: 300, Parents: []git.ObjectID{c2}})
	b.SetBranch("main", c2)
	b.SetBranch("feature/x", c3)
	b.SetReference("refs/tags/main", c1)
	b.SetReference("refs/remotes/origin/dev", c3)
	b.AnnotatedTag("v1.0", c1, plumbing.CommitObject)
	b.SetHEAD("main")

	repo := b.Repository()
	defer repo.Close()

	cases := map[string]git.ObjectID{
		"HEAD":            c2,
		"refs/heads/main": c2,
		"main":            c1, // tags win over branches
		"feature/x":       c3,
		"origin/dev":      c3,
		"v1.0":            c1,
		"refs/tags/v1.0":  c1,
	}
	for name, expected := range cases {
		id, err := repo.ResolveReference(name)
		require.NoError(t, err, name)
		assert.Equal(t, expected, id, name)
	}

	for _, name := range []string{"missing", "../main", c1.String()} {
		_, err := repo.ResolveReference(name)
		assert.True(t, git.IsErrReferenceNotExist(err), name)
		assert.ErrorIs(t, err, util.ErrNotExist)
	}
}

func TestGetReferences(t *testing.T) {
	b := gittest.NewMemoryRepo(t)
	c1 := b.Commit(gittest.CommitOptions{Message: "one", Time: 100})
	c2 := b.Commit(gittest.CommitOptions{Message: "two", Time: 200, Parents: []git.ObjectID{c1}})
	tree := b.Tree(map[string]string{"README": "hello"})
	b.SetBranch("main", c2)
	b.AnnotatedTag("v1.0", c1, plumbing.CommitObject)
	b.AnnotatedTag("tree-tag", tree, plumbing.TreeObject)
	b.SetSymbolicReference("refs/remotes/origin/HEAD", "refs/heads/main")
	b.SetHEAD("main")

	repo := b.Repository()
	defer repo.Close()

	refs, err := repo.GetReferences()
	require.NoError(t, err)

	got := map[string]git.ObjectID{}
	for _, ref := range refs {
		got[ref.Name.String()] = ref.Object
	}
	assert.Equal(t, map[string]git.ObjectID{
		"refs/heads/main": c2,
		"refs/tags/v1.0":  c1,
	}, got)
}

func TestGetHEADCommitIDUnborn(t *testing.T) {
	repo := gittest.NewMemoryRepo(t).Repository()
	defer repo.Close()

	_, err := repo.GetHEADCommitID()
	assert.True(t, git.IsErrReferenceNotExist(err))
}
