// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package history

import (
	"code.gitea.io/githistory/modules/git"
	"code.gitea.io/githistory/modules/log"

	"github.com/emirpasic/gods/trees/binaryheap"
)

// CommitGetter looks commits up by id, *git.Repository implements it
type CommitGetter interface {
	GetCommit(id git.ObjectID) (*git.Commit, error)
}

// CommitRecord is the projection of a commit sent to clients
type CommitRecord struct {
	Hash    string   `json:"hash"`
	Message string   `json:"message"`
	Parents []string `json:"parents"`
}

func newCommitRecord(c *git.Commit) *CommitRecord {
	parents := make([]string, 0, len(c.Parents))
	for _, p := range c.Parents {
		parents = append(parents, p.String())
	}
	return &CommitRecord{
		Hash:    c.ID.String(),
		Message: c.Summary(),
		Parents: parents,
	}
}

// WalkResult is one page of a walk and the state needed to continue it
type WalkResult struct {
	Commits []*CommitRecord
	// Visited is the visited set passed to Walk, extended with every commit examined
	Visited map[git.ObjectID]struct{}
	// Continuation holds the ids still pending in the frontier, duplicates and visited ids included
	Continuation []git.ObjectID
}

// compareCommits orders the frontier: newest committer time first, then ascending id
func compareCommits(a, b any) int {
	ca, cb := a.(*git.Commit), b.(*git.Commit)
	ta, tb := ca.Time(), cb.Time()
	switch {
	case ta > tb:
		return -1
	case ta < tb:
		return 1
	}
	return ca.ID.Compare(cb.ID)
}

// Walk emits up to pageSize commits reachable from roots in descending committer time,
// skipping commits already in visited. A commit with an empty summary is traversed but not emitted.
// The walk stops as soon as the page is full, the frontier left at that point is the continuation.
func Walk(graph CommitGetter, roots []*git.Commit, pageSize int, visited map[git.ObjectID]struct{}) *WalkResult {
	if pageSize <= 0 {
		pageSize = 1
	}
	if visited == nil {
		visited = make(map[git.ObjectID]struct{})
	}

	frontier := binaryheap.NewWith(compareCommits)
	for _, root := range roots {
		frontier.Push(root)
	}

	result := &WalkResult{
		Commits: make([]*CommitRecord, 0, min(pageSize, 64)),
		Visited: visited,
	}
	for {
		v, ok := frontier.Pop()
		if !ok {
			return result
		}
		c := v.(*git.Commit)
		if _, seen := visited[c.ID]; seen {
			continue
		}
		visited[c.ID] = struct{}{}

		for _, parentID := range c.Parents {
			parent, err := graph.GetCommit(parentID)
			if err != nil {
				log.Warn("Unable to load parent %s of commit %s: %v", parentID, c.ID, err)
				continue
			}
			frontier.Push(parent)
		}

		if c.Summary() == "" {
			continue
		}
		result.Commits = append(result.Commits, newCommitRecord(c))
		if len(result.Commits) >= pageSize {
			break
		}
	}

	values := frontier.Values()
	result.Continuation = make([]git.ObjectID, 0, len(values))
	for _, v := range values {
		result.Continuation = append(result.Continuation, v.(*git.Commit).ID)
	}
	return result
}
