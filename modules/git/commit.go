// Copyright 2015 The Gogs Authors. All rights reserved.
// Copyright 2018 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package git

import (
	"strings"
	"time"

	"github.com/go-git/go-git/v5/plumbing/object"
)

// Signature represents the Author or Committer information.
type Signature struct {
	Name  string
	Email string
	When  time.Time
}

// Commit represents a git commit.
type Commit struct {
	ID            ObjectID
	Author        *Signature // never nil
	Committer     *Signature // never nil
	CommitMessage string

	Parents []ObjectID // in commit order, duplicates are kept
}

// Message returns the commit message. Same as retrieving CommitMessage directly.
func (c *Commit) Message() string {
	return c.CommitMessage
}

// Summary returns first line of commit message.
// The string is forced to be valid UTF8
func (c *Commit) Summary() string {
	firstLine, _, _ := strings.Cut(strings.TrimSpace(c.CommitMessage), "\n")
	return strings.ToValidUTF8(strings.TrimSpace(firstLine), "?")
}

// Time returns the committer time in Unix seconds, the walker orders commits by it
func (c *Commit) Time() int64 {
	return c.Committer.When.Unix()
}

func convertSignature(sig object.Signature) *Signature {
	return &Signature{Name: sig.Name, Email: sig.Email, When: sig.When}
}

func convertCommit(gogitCommit *object.Commit) *Commit {
	parents := make([]ObjectID, 0, len(gogitCommit.ParentHashes))
	for _, h := range gogitCommit.ParentHashes {
		parents = append(parents, fromHash(h))
	}
	return &Commit{
		ID:            fromHash(gogitCommit.Hash),
		Author:        convertSignature(gogitCommit.Author),
		Committer:     convertSignature(gogitCommit.Committer),
		CommitMessage: gogitCommit.Message,
		Parents:       parents,
	}
}

// GetCommit returns the commit with the given id
func (repo *Repository) GetCommit(id ObjectID) (*Commit, error) {
	gogitCommit, err := repo.getGoGitCommit(id)
	if err != nil {
		return nil, err
	}
	return convertCommit(gogitCommit), nil
}
