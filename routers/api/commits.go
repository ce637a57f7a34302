// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package api

import (
	"net/http"
	"net/url"

	"code.gitea.io/githistory/modules/context"
	"code.gitea.io/githistory/services/history"

	"github.com/go-chi/chi/v5"
)

type commitsHandler struct {
	history *history.Service
}

// ResumeOptions is the body of POST /sessions
type ResumeOptions struct {
	SessionID string `json:"session_id"`
}

// ResumeResponse is the next page of a session, the session id is not repeated
type ResumeResponse struct {
	Commits []*history.CommitRecord `json:"commits"`
}

// historyError maps the errors of the history service onto status codes
func historyError(ctx *context.APIContext, err error) {
	if history.IsErrSessionNotExist(err) {
		ctx.Error(http.StatusBadRequest, "Resume", err)
		return
	}
	ctx.APIErrorFromService(err)
}

func (h *commitsHandler) writePage(ctx *context.APIContext, page *history.Page, err error) {
	if err != nil {
		historyError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, page)
}

// ListDefault lists the first page from the configured roots
func (h *commitsHandler) ListDefault(ctx *context.APIContext) {
	page, err := h.history.Default(ctx.Context())
	h.writePage(ctx, page, err)
}

// ListFromRevision lists the first page from a reference name or a commit id
func (h *commitsHandler) ListFromRevision(ctx *context.APIContext) {
	page, err := h.history.FromRevision(ctx.Context(), ctx.PathParam("rev"))
	h.writePage(ctx, page, err)
}

// ListFromRefPath lists the first page from a reference given as the rest of the path, e.g. refs/heads/main
func (h *commitsHandler) ListFromRefPath(ctx *context.APIContext) {
	ref := chi.URLParam(ctx.Req, "*")
	if unescaped, err := url.PathUnescape(ref); err == nil {
		ref = unescaped
	}
	page, err := h.history.FromRevision(ctx.Context(), ref)
	h.writePage(ctx, page, err)
}

// ListFromRevisions lists the first page from every revision of the JSON list in the body
func (h *commitsHandler) ListFromRevisions(ctx *context.APIContext) {
	var revs []string
	if err := ctx.DecodeJSON(&revs); err != nil {
		ctx.Error(http.StatusBadRequest, "DecodeJSON", "request body must be a JSON list of commit ids")
		return
	}
	page, err := h.history.FromRevisions(ctx.Context(), revs)
	h.writePage(ctx, page, err)
}

// Resume sends the next page of a session
func (h *commitsHandler) Resume(ctx *context.APIContext) {
	var opts ResumeOptions
	if err := ctx.DecodeJSON(&opts); err != nil {
		ctx.Error(http.StatusBadRequest, "DecodeJSON", "request body must be {\"session_id\": \"...\"}")
		return
	}
	id, err := history.ParseSessionID(opts.SessionID)
	if err != nil {
		historyError(ctx, err)
		return
	}
	page, err := h.history.Resume(ctx.Context(), id)
	if err != nil {
		historyError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, ResumeResponse{Commits: page.Commits})
}

// ListReferences maps every reference name to the commit it points to
func (h *commitsHandler) ListReferences(ctx *context.APIContext) {
	refs, err := h.history.References(ctx.Context())
	if err != nil {
		ctx.InternalServerError(err)
		return
	}
	ctx.JSON(http.StatusOK, refs)
}
