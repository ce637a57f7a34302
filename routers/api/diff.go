// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package api

import (
	"net/http"

	"code.gitea.io/githistory/modules/context"
	"code.gitea.io/githistory/modules/httpcache"
	"code.gitea.io/githistory/services/gitdiff"
)

// diffHandler serves content addressed by commit ids, every failure is an internal error
type diffHandler struct {
	diff *gitdiff.Service
}

// notModified marks a successful response as cacheable and answers conditional requests
func notModified(ctx *context.APIContext, ids ...string) bool {
	return httpcache.HandleGenericETagCache(ctx.Req, ctx.Resp, httpcache.ETagFromIDs(ids...), immutableMaxAge)
}

// Summary responds with [insertions, deletions] between two commits
func (h *diffHandler) Summary(ctx *context.APIContext) {
	a, b := ctx.PathParam("a"), ctx.PathParam("b")
	summary, err := h.diff.GetDiffSummary(ctx.Context(), a, b)
	if err != nil {
		ctx.InternalServerError(err)
		return
	}
	if notModified(ctx, "summary", a, b) {
		return
	}
	ctx.JSON(http.StatusOK, summary)
}

// Stats responds with the diff statistics between two commits as text
func (h *diffHandler) Stats(ctx *context.APIContext) {
	a, b := ctx.PathParam("a"), ctx.PathParam("b")
	stats, err := h.diff.GetDiffStats(ctx.Context(), a, b)
	if err != nil {
		ctx.InternalServerError(err)
		return
	}
	if notModified(ctx, "stats", a, b) {
		return
	}
	ctx.PlainText(http.StatusOK, stats)
}

// Diff responds with the changed files between two commits and their hunks
func (h *diffHandler) Diff(ctx *context.APIContext) {
	a, b := ctx.PathParam("a"), ctx.PathParam("b")
	files, err := h.diff.GetDiff(ctx.Context(), a, b)
	if err != nil {
		ctx.InternalServerError(err)
		return
	}
	if notModified(ctx, "diff", a, b) {
		return
	}
	ctx.JSON(http.StatusOK, files)
}

// Meta responds with the author, the committer and the message of a commit
func (h *diffHandler) Meta(ctx *context.APIContext) {
	id := ctx.PathParam("id")
	meta, err := h.diff.GetCommitMeta(ctx.Context(), id)
	if err != nil {
		ctx.InternalServerError(err)
		return
	}
	if notModified(ctx, "meta", id) {
		return
	}
	ctx.JSON(http.StatusOK, meta)
}

// Message responds with the message of a commit as a JSON string
func (h *diffHandler) Message(ctx *context.APIContext) {
	id := ctx.PathParam("id")
	message, err := h.diff.GetCommitMessage(ctx.Context(), id)
	if err != nil {
		ctx.InternalServerError(err)
		return
	}
	if notModified(ctx, "message", id) {
		return
	}
	ctx.JSON(http.StatusOK, message)
}
