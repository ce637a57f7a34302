// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package history serves the commit graph of a repository page by page.
//
// Every query resolves its roots to commits, walks one page with Walk and,
// when the page was truncated, keeps the visited set and the frontier in the
// SessionStore so that a later Resume continues exactly where the page stopped.
package history

import (
	"context"
	"fmt"
	"time"

	"code.gitea.io/githistory/modules/git"
	"code.gitea.io/githistory/modules/log"
	"code.gitea.io/githistory/modules/metrics"
	"code.gitea.io/githistory/modules/util"

	"github.com/gobwas/glob"
)

// RepositoryOpener opens a new handle on the served repository, the caller closes it
type RepositoryOpener func(ctx context.Context) (*git.Repository, error)

// Options selects the page size and the roots of the default query
type Options struct {
	PageSize int
	// Branch is the reference the default query starts from, HEAD when empty
	Branch string
	// AllRefs makes the default query start from every reference
	AllRefs bool
	// ExcludeRefs leaves the matching references out of the AllRefs query
	ExcludeRefs []glob.Glob
}

// Page is one page of history, Session is nil when nothing is left to resume
type Page struct {
	Commits []*CommitRecord `json:"commits"`
	Session *SessionID      `json:"session"`
}

// Service answers history queries, it is safe for concurrent use
type Service struct {
	openRepo RepositoryOpener
	sessions *SessionStore
	opts     Options
}

// NewService creates the history service
func NewService(openRepo RepositoryOpener, sessions *SessionStore, opts Options) *Service {
	if opts.PageSize <= 0 {
		opts.PageSize = 1
	}
	return &Service{openRepo: openRepo, sessions: sessions, opts: opts}
}

// Sessions returns the session store of the service
func (s *Service) Sessions() *SessionStore {
	return s.sessions
}

type rootResolver func(repo *git.Repository) ([]*git.Commit, error)

// Default walks from the configured roots: every reference, the configured branch or HEAD
func (s *Service) Default(ctx context.Context) (*Page, error) {
	return s.query(ctx, "default", s.defaultRoots)
}

// FromRevision walks from a reference name or, failing that, a full commit id
func (s *Service) FromRevision(ctx context.Context, rev string) (*Page, error) {
	return s.query(ctx, "revision", func(repo *git.Repository) ([]*git.Commit, error) {
		c, err := resolveRevision(repo, rev)
		if err != nil {
			return nil, err
		}
		return []*git.Commit{c}, nil
	})
}

// FromRevisions walks from several revisions at once, every one of them must resolve
func (s *Service) FromRevisions(ctx context.Context, revs []string) (*Page, error) {
	return s.query(ctx, "revisions", func(repo *git.Repository) ([]*git.Commit, error) {
		roots := make([]*git.Commit, 0, len(revs))
		for _, rev := range revs {
			c, err := resolveRevision(repo, rev)
			if err != nil {
				return nil, err
			}
			roots = append(roots, c)
		}
		return roots, nil
	})
}

// Resume sends the next page of a session. A session with nothing left is dropped
// and an empty page is returned, any later resume of it fails with ErrSessionNotExist.
// Pending commits which no longer load are skipped. Concurrent resumes of one id may return the same page.
func (s *Service) Resume(ctx context.Context, id SessionID) (*Page, error) {
	start := time.Now()
	sess, err := s.sessions.Resume(id)
	if err != nil {
		return nil, err
	}
	if len(sess.Continuation) == 0 {
		s.sessions.Drop(id)
		log.Debug("Session %s drained after %d pages, dropped", id, sess.SentPages)
		return &Page{Commits: []*CommitRecord{}}, nil
	}

	repo, err := s.openRepo(ctx)
	if err != nil {
		return nil, err
	}
	defer repo.Close()

	roots := make([]*git.Commit, 0, len(sess.Continuation))
	for _, pending := range sess.Continuation {
		c, err := repo.GetCommit(pending)
		if err != nil {
			log.Warn("Session %s: unable to load pending commit %s: %v", id, pending, err)
			continue
		}
		roots = append(roots, c)
	}

	result := Walk(repo, roots, s.opts.PageSize, sess.Visited)
	if err := s.sessions.Advance(id, result.Visited, result.Continuation); err != nil {
		return nil, err
	}
	s.observe("resume", start, result)
	return &Page{Commits: result.Commits, Session: &id}, nil
}

// References maps every reference name to the commit it peels to
func (s *Service) References(ctx context.Context) (map[string]string, error) {
	repo, err := s.openRepo(ctx)
	if err != nil {
		return nil, err
	}
	defer repo.Close()

	refs, err := repo.GetReferences()
	if err != nil {
		return nil, err
	}
	res := make(map[string]string, len(refs))
	for _, ref := range refs {
		res[ref.Name.String()] = ref.Object.String()
	}
	return res, nil
}

func (s *Service) query(ctx context.Context, kind string, resolve rootResolver) (*Page, error) {
	start := time.Now()
	repo, err := s.openRepo(ctx)
	if err != nil {
		return nil, err
	}
	defer repo.Close()

	roots, err := resolve(repo)
	if err != nil {
		return nil, err
	}

	result := Walk(repo, roots, s.opts.PageSize, nil)
	page := &Page{Commits: result.Commits}
	if len(result.Continuation) > 0 {
		id, err := s.sessions.Create(result.Visited, result.Continuation)
		if err != nil {
			return nil, fmt.Errorf("create session: %w", err)
		}
		page.Session = &id
		log.Debug("Session %s created: %d visited, %d pending", id, len(result.Visited), len(result.Continuation))
	}
	s.observe(kind, start, result)
	return page, nil
}

func (s *Service) observe(kind string, start time.Time, result *WalkResult) {
	elapsed := time.Since(start)
	metrics.PagesServed.WithLabelValues(kind).Inc()
	metrics.CommitsEmitted.Add(float64(len(result.Commits)))
	metrics.WalkDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
	log.Info("git history with %d commits (%s query, %d visited) analyzed in %d ms", len(result.Commits), kind, len(result.Visited), elapsed.Milliseconds())
}

func (s *Service) defaultRoots(repo *git.Repository) ([]*git.Commit, error) {
	if s.opts.AllRefs {
		refs, err := repo.GetReferences()
		if err != nil {
			return nil, err
		}
		roots := make([]*git.Commit, 0, len(refs))
		for _, ref := range refs {
			if s.excluded(ref.Name) {
				log.Trace("Reference %s excluded from the default query", ref.Name.ShortName())
				continue
			}
			c, err := repo.GetCommit(ref.Object)
			if err != nil {
				return nil, ErrRootNotExist{Root: ref.Name.String(), Err: err}
			}
			roots = append(roots, c)
		}
		return roots, nil
	}

	if s.opts.Branch != "" {
		c, err := resolveReference(repo, s.opts.Branch)
		if err != nil {
			return nil, err
		}
		return []*git.Commit{c}, nil
	}

	id, err := repo.GetHEADCommitID()
	if err != nil {
		if git.IsErrReferenceNotExist(err) || git.IsErrNotExist(err) {
			return nil, ErrRootNotExist{Root: git.HEADRef, Err: err}
		}
		return nil, err
	}
	c, err := repo.GetCommit(id)
	if err != nil {
		return nil, ErrRootNotExist{Root: git.HEADRef, Err: err}
	}
	return []*git.Commit{c}, nil
}

func (s *Service) excluded(name git.RefName) bool {
	for _, g := range s.opts.ExcludeRefs {
		if g.Match(name.String()) {
			return true
		}
	}
	return false
}

func resolveReference(repo *git.Repository, name string) (*git.Commit, error) {
	id, err := repo.ResolveReference(name)
	if err != nil {
		if git.IsErrReferenceNotExist(err) {
			return nil, ErrRootNotExist{Root: name, Err: err}
		}
		return nil, err
	}
	c, err := repo.GetCommit(id)
	if err != nil {
		return nil, ErrRootNotExist{Root: name, Err: err}
	}
	return c, nil
}

// resolveRevision tries rev as a reference name first, then as a full commit id
func resolveRevision(repo *git.Repository, rev string) (*git.Commit, error) {
	c, err := resolveReference(repo, rev)
	if err == nil || !IsErrRootNotExist(err) {
		return c, err
	}

	id, parseErr := git.NewIDFromString(rev)
	if parseErr != nil {
		return nil, util.NewInvalidArgumentErrorf("%q is neither a reference nor a commit id", util.EllipsisString(rev, 100))
	}
	c, err = repo.GetCommit(id)
	if err != nil {
		if git.IsErrNotExist(err) {
			return nil, ErrRootNotExist{Root: rev, Err: err}
		}
		return nil, err
	}
	return c, nil
}
