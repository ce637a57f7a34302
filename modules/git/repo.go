// Copyright 2015 The Gogs Authors. All rights reserved.
// Copyright 2017 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package git

import (
	"context"
	"errors"
	"io"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Repository represents a Git repository.
type Repository struct {
	Path string

	gogitRepo *gogit.Repository
	ctx       context.Context
}

// OpenRepository opens the repository at the given path, a work tree or a bare repository
func OpenRepository(ctx context.Context, repoPath string) (*Repository, error) {
	gogitRepo, err := gogit.PlainOpen(repoPath)
	if err != nil {
		return nil, ErrRepoNotOpen{Path: repoPath, Err: err}
	}
	return &Repository{Path: repoPath, gogitRepo: gogitRepo, ctx: ctx}, nil
}

// NewRepository wraps an already opened go-git repository, e.g. one backed by memory storage
func NewRepository(ctx context.Context, repoPath string, gogitRepo *gogit.Repository) *Repository {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Repository{Path: repoPath, gogitRepo: gogitRepo, ctx: ctx}
}

// Close releases the storage of the repository
func (repo *Repository) Close() error {
	if repo == nil || repo.gogitRepo == nil {
		return nil
	}
	closer, ok := repo.gogitRepo.Storer.(io.Closer)
	repo.gogitRepo = nil
	if ok {
		return closer.Close()
	}
	return nil
}

func (repo *Repository) getGoGitCommit(id ObjectID) (*object.Commit, error) {
	c, err := repo.gogitRepo.CommitObject(id.hash())
	if err != nil {
		if errors.Is(err, plumbing.ErrObjectNotFound) {
			return nil, ErrNotExist{ID: id.String()}
		}
		return nil, err
	}
	return c, nil
}
