// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package context

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"code.gitea.io/githistory/modules/util"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, pattern, method, target, body string, fn func(ctx *APIContext)) *httptest.ResponseRecorder {
	m := chi.NewRouter()
	m.Use(APIContexter())
	m.Method(method, pattern, APIHandler(fn))

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	recorder := httptest.NewRecorder()
	m.ServeHTTP(recorder, req)
	return recorder
}

func TestAPIContextPathParam(t *testing.T) {
	var rev string
	recorder := serve(t, "/commits/{rev}", http.MethodGet, "/commits/feature%2Fx", "", func(ctx *APIContext) {
		require.Same(t, ctx, GetAPIContext(ctx.Req))
		rev = ctx.PathParam("rev")
		ctx.PlainText(http.StatusOK, "ok")
	})
	assert.Equal(t, "feature/x", rev)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "ok", recorder.Body.String())
}

func TestAPIContextDecodeJSON(t *testing.T) {
	var revs []string
	recorder := serve(t, "/commits", http.MethodPost, "/commits", `["a","b"]`, func(ctx *APIContext) {
		require.NoError(t, ctx.DecodeJSON(&revs))
		ctx.JSON(http.StatusCreated, map[string]int{"count": len(revs)})
	})
	assert.Equal(t, []string{"a", "b"}, revs)
	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.Equal(t, "application/json;charset=utf-8", recorder.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"count":2}`, recorder.Body.String())
}

func TestAPIContextErrors(t *testing.T) {
	cases := []struct {
		name    string
		fn      func(ctx *APIContext)
		status  int
		message string
	}{
		{
			name:    "error",
			fn:      func(ctx *APIContext) { ctx.Error(http.StatusBadRequest, "Test", "bad input") },
			status:  http.StatusBadRequest,
			message: "bad input",
		},
		{
			name:    "internal",
			fn:      func(ctx *APIContext) { ctx.InternalServerError(errors.New("boom")) },
			status:  http.StatusInternalServerError,
			message: "boom",
		},
		{
			name:    "invalid argument",
			fn:      func(ctx *APIContext) { ctx.APIErrorFromService(util.NewInvalidArgumentErrorf("bad id")) },
			status:  http.StatusBadRequest,
			message: "bad id",
		},
		{
			name:    "not exist",
			fn:      func(ctx *APIContext) { ctx.APIErrorFromService(util.NewNotExistErrorf("no commit")) },
			status:  http.StatusInternalServerError,
			message: "no commit",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			recorder := serve(t, "/", http.MethodGet, "/", "", c.fn)
			assert.Equal(t, c.status, recorder.Code)
			assert.JSONEq(t, `{"message":"`+c.message+`"}`, recorder.Body.String())
		})
	}
}

func TestResponseStatus(t *testing.T) {
	recorder := httptest.NewRecorder()
	resp := NewResponse(recorder)
	assert.Same(t, resp, NewResponse(resp))
	assert.False(t, resp.Written())

	_, err := resp.Write([]byte("x"))
	require.NoError(t, err)
	resp.WriteHeader(http.StatusTeapot)
	assert.True(t, resp.Written())
	assert.Equal(t, http.StatusOK, resp.Status())
	assert.Equal(t, http.StatusOK, recorder.Code)
}
