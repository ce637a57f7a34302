// Copyright 2016 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package routers

import (
	"context"
	"fmt"

	"code.gitea.io/githistory/modules/git"
	"code.gitea.io/githistory/modules/log"
	"code.gitea.io/githistory/modules/setting"
	"code.gitea.io/githistory/routers/api"
	"code.gitea.io/githistory/services/gitdiff"
	"code.gitea.io/githistory/services/history"

	"github.com/go-chi/chi/v5"
)

// Services are the long-lived services built from the settings
type Services struct {
	History *history.Service
	Diff    *gitdiff.Service
}

// openRepository opens a new handle on the configured repository for every request
func openRepository(ctx context.Context) (*git.Repository, error) {
	return git.OpenRepository(ctx, setting.Repository.Root)
}

// InitServices checks that the configured repository can be opened and builds the services
func InitServices(ctx context.Context) (*Services, error) {
	if err := setting.ResolveRepositoryRoot(); err != nil {
		return nil, fmt.Errorf("resolve repository root: %w", err)
	}
	repo, err := openRepository(ctx)
	if err != nil {
		return nil, err
	}
	repo.Close()
	log.Info("Repository: %s", setting.Repository.Root)

	sessions, err := history.NewSessionStore(setting.SessionConfig.MaxSessions)
	if err != nil {
		return nil, fmt.Errorf("create session store: %w", err)
	}
	historyService := history.NewService(openRepository, sessions, history.Options{
		PageSize:    setting.Repository.PageSize,
		Branch:      setting.Repository.Branch,
		AllRefs:     setting.Repository.AllRefs,
		ExcludeRefs: setting.RefMatchers(setting.Repository.ExcludeRefs),
	})
	diffService, err := gitdiff.NewService(openRepository, setting.Diff.SummaryCacheSize, setting.Diff.ContextLines)
	if err != nil {
		return nil, err
	}
	return &Services{History: historyService, Diff: diffService}, nil
}

// NormalRoutes represents the routes served by the web command
func NormalRoutes(s *Services) *chi.Mux {
	return api.Routes(s.History, s.Diff)
}
