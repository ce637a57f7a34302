// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package gitdiff

import (
	"context"

	"code.gitea.io/githistory/modules/git"
)

// EditStamp is who changed a commit and when, Date is in Unix seconds
type EditStamp struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Date  int64  `json:"date"`
}

// CommitMeta describes a single commit
type CommitMeta struct {
	Author    EditStamp `json:"author"`
	Committer EditStamp `json:"committer"`
	Message   string    `json:"message"`
}

func toEditStamp(sig *git.Signature) EditStamp {
	return EditStamp{Name: sig.Name, Email: sig.Email, Date: sig.When.Unix()}
}

func (s *Service) getCommit(ctx context.Context, id string) (*git.Commit, error) {
	commitID, err := git.NewIDFromString(id)
	if err != nil {
		return nil, err
	}
	var commit *git.Commit
	err = s.withRepo(ctx, func(repo *git.Repository) error {
		commit, err = repo.GetCommit(commitID)
		return err
	})
	return commit, err
}

// GetCommitMeta returns the author, the committer and the full message of a commit
func (s *Service) GetCommitMeta(ctx context.Context, id string) (*CommitMeta, error) {
	commit, err := s.getCommit(ctx, id)
	if err != nil {
		return nil, err
	}
	return &CommitMeta{
		Author:    toEditStamp(commit.Author),
		Committer: toEditStamp(commit.Committer),
		Message:   commit.Message(),
	}, nil
}

// GetCommitMessage returns the full message of a commit
func (s *Service) GetCommitMessage(ctx context.Context, id string) (string, error) {
	commit, err := s.getCommit(ctx, id)
	if err != nil {
		return "", err
	}
	return commit.Message(), nil
}
