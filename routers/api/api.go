// Copyright 2015 The Gogs Authors. All rights reserved.
// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package api serves the commit history and the diffs of the repository over HTTP.
//
//	GET  /commits                      first page from the configured roots
//	GET  /commits/{rev}                first page from a reference or a commit id
//	GET  /commit-query/*               first page from a full reference name
//	POST /commits                      first page from a JSON list of revisions
//	POST /sessions                     next page of a session, body {"session_id": "..."}
//	GET  /refs                         reference names mapped to their commits
//	GET  /diff_summary/{a}/{b}         [insertions, deletions]
//	GET  /diff_stats/{a}/{b}           diff statistics as text
//	GET  /diff/{a}/{b}                 changed files with their hunks
//	GET  /commits/{id}/meta            author, committer and message of a commit
//	GET  /commits/{id}/message         message of a commit
package api

import (
	"net/http"
	"time"

	"code.gitea.io/githistory/modules/context"
	"code.gitea.io/githistory/modules/metrics"
	"code.gitea.io/githistory/modules/setting"
	"code.gitea.io/githistory/routers/common"
	"code.gitea.io/githistory/services/gitdiff"
	"code.gitea.io/githistory/services/history"

	"github.com/go-chi/chi/v5"
)

// immutableMaxAge is the cache lifetime of responses addressed by commit ids
const immutableMaxAge = 7 * 24 * time.Hour

// Routes returns the router of the API
func Routes(historyService *history.Service, diffService *gitdiff.Service) *chi.Mux {
	m := chi.NewRouter()
	m.Use(common.Middlewares()...)
	m.Use(context.APIContexter())

	h := &commitsHandler{history: historyService}
	m.Get("/commits", context.APIHandler(h.ListDefault))
	m.Post("/commits", context.APIHandler(h.ListFromRevisions))
	m.Get("/commits/{rev}", context.APIHandler(h.ListFromRevision))
	m.Get("/commit-query/*", context.APIHandler(h.ListFromRefPath))
	m.Post("/sessions", context.APIHandler(h.Resume))
	m.Get("/refs", context.APIHandler(h.ListReferences))

	d := &diffHandler{diff: diffService}
	m.Get("/diff_summary/{a}/{b}", context.APIHandler(d.Summary))
	m.Get("/diff_stats/{a}/{b}", context.APIHandler(d.Stats))
	m.Get("/diff/{a}/{b}", context.APIHandler(d.Diff))
	m.Get("/commits/{id}/meta", context.APIHandler(d.Meta))
	m.Get("/commits/{id}/message", context.APIHandler(d.Message))

	if setting.Metrics.Enabled {
		m.Handle("/metrics", metrics.Handler())
	}

	m.NotFound(context.APIHandler(func(ctx *context.APIContext) {
		ctx.Error(http.StatusNotFound, "", "not found")
	}))
	m.MethodNotAllowed(context.APIHandler(func(ctx *context.APIContext) {
		ctx.Error(http.StatusMethodNotAllowed, "", "method not allowed")
	}))
	return m
}
