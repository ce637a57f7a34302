// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package history_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"code.gitea.io/githistory/modules/git"
	"code.gitea.io/githistory/modules/git/gittest"
	"code.gitea.io/githistory/modules/util"
	"code.gitea.io/githistory/services/history"

	"github.com/gobwas/glob"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRepo struct {
	*gittest.Builder
	root, left, right, hidden, merge, tip git.ObjectID
}

// newTestRepo builds
//
//	tip -> merge -> left  -> hidden -> root
//	            \-> right ---------/
//
// hidden has an empty message, main points to tip, release to right.
func newTestRepo(t *testing.T) *testRepo {
	return buildTestRepo(gittest.NewMemoryRepo(t))
}

func buildTestRepo(b *gittest.Builder) *testRepo {
	r := &testRepo{Builder: b}
	r.root = b.Commit(gittest.CommitOptions{Message: "root\n", Time: 100})
	r.hidden = b.Commit(gittest.CommitOptions{Message: "", Time: 200, Parents: []git.ObjectID{r.root}})
	r.right = b.Commit(gittest.CommitOptions{Message: "right\n", Time: 250, Parents: []git.ObjectID{r.root}})
	r.left = b.Commit(gittest.CommitOptions{Message: "left\n", Time: 300, Parents: []git.ObjectID{r.hidden}})
	r.merge = b.Commit(gittest.CommitOptions{Message: "merge\n", Time: 400, Parents: []git.ObjectID{r.left, r.right}})
	r.tip = b.Commit(gittest.CommitOptions{Message: "tip\n", Time: 500, Parents: []git.ObjectID{r.merge}})
	b.SetBranch("main", r.tip)
	b.SetBranch("release", r.right)
	b.SetHEAD("main")
	return r
}

func newService(t *testing.T, r *testRepo, opts history.Options) *history.Service {
	store, err := history.NewSessionStore(16)
	require.NoError(t, err)
	return history.NewService(r.Opener(), store, opts)
}

func hashesOf(page *history.Page) []string {
	res := make([]string, 0, len(page.Commits))
	for _, c := range page.Commits {
		res = append(res, c.Hash)
	}
	return res
}

func TestDefaultSinglePage(t *testing.T) {
	r := newTestRepo(t)
	svc := newService(t, r, history.Options{PageSize: 50})

	page, err := svc.Default(context.Background())
	require.NoError(t, err)
	assert.Nil(t, page.Session)
	assert.Equal(t, []string{
		r.tip.String(), r.merge.String(), r.left.String(), r.right.String(), r.root.String(),
	}, hashesOf(page))
	assert.Equal(t, []string{r.left.String(), r.right.String()}, page.Commits[1].Parents)
	assert.Equal(t, 0, svc.Sessions().Len())
}

func TestDefaultRoots(t *testing.T) {
	r := newTestRepo(t)
	r.SetBranch("orphan", r.Commit(gittest.CommitOptions{Message: "orphan", Time: 50}))

	page, err := newService(t, r, history.Options{PageSize: 50, Branch: "release"}).Default(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{r.right.String(), r.root.String()}, hashesOf(page))

	page, err = newService(t, r, history.Options{PageSize: 50, AllRefs: true}).Default(context.Background())
	require.NoError(t, err)
	assert.Len(t, page.Commits, 6)
	assert.Equal(t, "orphan", page.Commits[5].Message)

	excluded := history.Options{PageSize: 50, AllRefs: true, ExcludeRefs: []glob.Glob{glob.MustCompile("refs/heads/*ph*", '/')}}
	page, err = newService(t, r, excluded).Default(context.Background())
	require.NoError(t, err)
	assert.Len(t, page.Commits, 5)

	_, err = newService(t, r, history.Options{PageSize: 50, Branch: "missing"}).Default(context.Background())
	assert.True(t, history.IsErrRootNotExist(err))
}

func TestDefaultUnbornHEAD(t *testing.T) {
	b := gittest.NewMemoryRepo(t)
	store, err := history.NewSessionStore(1)
	require.NoError(t, err)

	_, err = history.NewService(b.Opener(), store, history.Options{PageSize: 10}).Default(context.Background())
	assert.True(t, history.IsErrRootNotExist(err))
	assert.ErrorIs(t, err, util.ErrNotExist)
}

func TestFromRevision(t *testing.T) {
	r := newTestRepo(t)
	svc := newService(t, r, history.Options{PageSize: 50})

	page, err := svc.FromRevision(context.Background(), "release")
	require.NoError(t, err)
	assert.Equal(t, []string{r.right.String(), r.root.String()}, hashesOf(page))

	page, err = svc.FromRevision(context.Background(), r.left.String())
	require.NoError(t, err)
	assert.Equal(t, []string{r.left.String(), r.root.String()}, hashesOf(page))

	page, err = svc.FromRevision(context.Background(), "refs/heads/main")
	require.NoError(t, err)
	assert.Len(t, page.Commits, 5)

	_, err = svc.FromRevision(context.Background(), "not-a-ref")
	assert.ErrorIs(t, err, util.ErrInvalidArgument)

	_, err = svc.FromRevision(context.Background(), "0123456789012345678901234567890123456789")
	assert.True(t, history.IsErrRootNotExist(err))
}

func TestFromRevisions(t *testing.T) {
	r := newTestRepo(t)
	svc := newService(t, r, history.Options{PageSize: 50})

	page, err := svc.FromRevisions(context.Background(), []string{r.right.String(), r.left.String(), r.right.String()})
	require.NoError(t, err)
	assert.Equal(t, []string{r.left.String(), r.right.String(), r.root.String()}, hashesOf(page))

	_, err = svc.FromRevisions(context.Background(), []string{r.left.String(), "bogus"})
	assert.ErrorIs(t, err, util.ErrInvalidArgument)

	page, err = svc.FromRevisions(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, page.Commits)
	assert.Nil(t, page.Session)
}

func TestResumeSequence(t *testing.T) {
	r := newTestRepo(t)
	svc := newService(t, r, history.Options{PageSize: 2})
	ctx := context.Background()

	page, err := svc.Default(ctx)
	require.NoError(t, err)
	require.NotNil(t, page.Session)
	id := *page.Session
	assert.Equal(t, []string{r.tip.String(), r.merge.String()}, hashesOf(page))

	page, err = svc.Resume(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, *page.Session)
	assert.Equal(t, []string{r.left.String(), r.right.String()}, hashesOf(page))

	page, err = svc.Resume(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{r.root.String()}, hashesOf(page))

	sess, err := svc.Sessions().Resume(id)
	require.NoError(t, err)
	assert.Equal(t, 2, sess.SentPages)
	assert.Len(t, sess.Visited, 6)

	page, err = svc.Resume(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, page.Commits)
	assert.Nil(t, page.Session)

	_, err = svc.Resume(ctx, id)
	assert.True(t, history.IsErrSessionNotExist(err))
	assert.Equal(t, 0, svc.Sessions().Len())
}

func TestResumeSkipsMissingPendingCommit(t *testing.T) {
	r := buildTestRepo(gittest.NewBareRepo(t))
	store, err := history.NewSessionStore(4)
	require.NoError(t, err)
	svc := history.NewService(func(ctx context.Context) (*git.Repository, error) {
		return git.OpenRepository(ctx, r.Path())
	}, store, history.Options{PageSize: 2})
	ctx := context.Background()

	page, err := svc.Default(ctx)
	require.NoError(t, err)
	require.NotNil(t, page.Session)
	id := *page.Session
	seen := hashesOf(page)
	assert.Equal(t, []string{r.tip.String(), r.merge.String()}, seen)

	left := r.left.String()
	require.NoError(t, os.Remove(filepath.Join(r.Path(), "objects", left[:2], left[2:])))

	page, err = svc.Resume(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{r.right.String(), r.root.String()}, hashesOf(page))
	seen = append(seen, hashesOf(page)...)

	counts := map[string]int{}
	for _, h := range seen {
		counts[h]++
	}
	for h, n := range counts {
		assert.Equal(t, 1, n, h)
	}

	page, err = svc.Resume(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, page.Commits)
	assert.Nil(t, page.Session)

	_, err = svc.Resume(ctx, id)
	assert.True(t, history.IsErrSessionNotExist(err))
}

func TestResumeUnknownSession(t *testing.T) {
	svc := newService(t, newTestRepo(t), history.Options{PageSize: 2})
	id, err := history.NewSessionID()
	require.NoError(t, err)

	_, err = svc.Resume(context.Background(), id)
	assert.True(t, history.IsErrSessionNotExist(err))
}

func TestRepositoryUnavailable(t *testing.T) {
	store, err := history.NewSessionStore(1)
	require.NoError(t, err)
	openErr := git.ErrRepoNotOpen{Path: "/nowhere", Err: errors.New("boom")}
	svc := history.NewService(func(ctx context.Context) (*git.Repository, error) {
		return nil, openErr
	}, store, history.Options{PageSize: 1})

	_, err = svc.Default(context.Background())
	assert.ErrorIs(t, err, util.ErrUnavailable)
	_, err = svc.References(context.Background())
	assert.ErrorIs(t, err, util.ErrUnavailable)
}

func TestReferences(t *testing.T) {
	r := newTestRepo(t)
	refs, err := newService(t, r, history.Options{PageSize: 1}).References(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"refs/heads/main":    r.tip.String(),
		"refs/heads/release": r.right.String(),
	}, refs)
}
