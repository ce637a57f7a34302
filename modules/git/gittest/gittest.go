// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package gittest builds small repositories object by object for tests,
// commit times and parents are chosen by the caller so any graph shape can be expressed.
package gittest

import (
	"context"
	"io"
	"sort"
	"testing"
	"time"

	"code.gitea.io/githistory/modules/git"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/stretchr/testify/require"
)

// Builder writes objects and references into a go-git repository
type Builder struct {
	t    testing.TB
	path string
	repo *gogit.Repository
}

// NewMemoryRepo returns a builder over an empty repository kept in memory
func NewMemoryRepo(t testing.TB) *Builder {
	repo, err := gogit.Init(memory.NewStorage(), nil)
	require.NoError(t, err)
	return &Builder{t: t, path: "memory", repo: repo}
}

// NewBareRepo returns a builder over an empty bare repository created in a temporary directory,
// the directory can be opened with git.OpenRepository
func NewBareRepo(t testing.TB) *Builder {
	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, true)
	require.NoError(t, err)
	return &Builder{t: t, path: dir, repo: repo}
}

// Path returns the directory of the repository, "memory" for in-memory repositories
func (b *Builder) Path() string {
	return b.path
}

// Repository returns a new handle on the built repository
func (b *Builder) Repository() *git.Repository {
	return git.NewRepository(context.Background(), b.path, b.repo)
}

// Opener returns a function opening the built repository, in the shape the history service expects
func (b *Builder) Opener() func(ctx context.Context) (*git.Repository, error) {
	return func(ctx context.Context) (*git.Repository, error) {
		return git.NewRepository(ctx, b.path, b.repo), nil
	}
}

// CommitOptions describes a commit to write
type CommitOptions struct {
	Message string
	// Time is the committer and author time in Unix seconds
	Time    int64
	Parents []git.ObjectID
	// Files is the whole content of the commit tree, names must not contain a slash
	Files  map[string]string
	Author string
}

func (b *Builder) storeObject(encode func(plumbing.EncodedObject) error) plumbing.Hash {
	obj := b.repo.Storer.NewEncodedObject()
	require.NoError(b.t, encode(obj))
	h, err := b.repo.Storer.SetEncodedObject(obj)
	require.NoError(b.t, err)
	return h
}

func (b *Builder) writeBlob(content string) plumbing.Hash {
	return b.storeObject(func(obj plumbing.EncodedObject) error {
		obj.SetType(plumbing.BlobObject)
		w, err := obj.Writer()
		if err != nil {
			return err
		}
		if _, err := io.WriteString(w, content); err != nil {
			return err
		}
		return w.Close()
	})
}

func (b *Builder) writeTree(files map[string]string) plumbing.Hash {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	tree := &object.Tree{}
	for _, name := range names {
		tree.Entries = append(tree.Entries, object.TreeEntry{
			Name: name,
			Mode: filemode.Regular,
			Hash: b.writeBlob(files[name]),
		})
	}
	return b.storeObject(tree.Encode)
}

func (b *Builder) signature(name string, ts int64) object.Signature {
	if name == "" {
		name = "Gitea"
	}
	return object.Signature{Name: name, Email: name + "@example.com", When: time.Unix(ts, 0).UTC()}
}

// Commit writes a commit and returns its id
func (b *Builder) Commit(opts CommitOptions) git.ObjectID {
	parents := make([]plumbing.Hash, 0, len(opts.Parents))
	for _, p := range opts.Parents {
		parents = append(parents, plumbing.Hash(p))
	}
	commit := &object.Commit{
		Author:       b.signature(opts.Author, opts.Time),
		Committer:    b.signature(opts.Author, opts.Time),
		Message:      opts.Message,
		TreeHash:     b.writeTree(opts.Files),
		ParentHashes: parents,
	}
	return git.ObjectID(b.storeObject(commit.Encode))
}

// AnnotatedTag writes a tag object pointing to target and the refs/tags reference to it
func (b *Builder) AnnotatedTag(name string, target git.ObjectID, targetType plumbing.ObjectType) git.ObjectID {
	tag := &object.Tag{
		Name:       name,
		Tagger:     b.signature("", 0),
		Message:    name + "\n",
		TargetType: targetType,
		Target:     plumbing.Hash(target),
	}
	id := git.ObjectID(b.storeObject(tag.Encode))
	b.SetReference(git.TagPrefix+name, id)
	return id
}

// Tree writes a tree object and returns its id
func (b *Builder) Tree(files map[string]string) git.ObjectID {
	return git.ObjectID(b.writeTree(files))
}

// SetReference points the full reference name to id
func (b *Builder) SetReference(name string, id git.ObjectID) {
	require.NoError(b.t, b.repo.Storer.SetReference(plumbing.NewHashReference(plumbing.ReferenceName(name), plumbing.Hash(id))))
}

// SetBranch points refs/heads/<name> to id
func (b *Builder) SetBranch(name string, id git.ObjectID) {
	b.SetReference(git.BranchPrefix+name, id)
}

// SetSymbolicReference makes name point to the target reference
func (b *Builder) SetSymbolicReference(name, target string) {
	require.NoError(b.t, b.repo.Storer.SetReference(plumbing.NewSymbolicReference(plumbing.ReferenceName(name), plumbing.ReferenceName(target))))
}

// SetHEAD makes HEAD point to the given branch
func (b *Builder) SetHEAD(branch string) {
	b.SetSymbolicReference(git.HEADRef, git.BranchPrefix+branch)
}
