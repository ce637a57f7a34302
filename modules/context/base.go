// Copyright 2021 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package context

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"code.gitea.io/githistory/modules/json"
	"code.gitea.io/githistory/modules/log"

	"github.com/go-chi/chi/v5"
)

// maxBodySize bounds the JSON bodies read by DecodeJSON
const maxBodySize = 1 << 20

// Base holds the request and the response of one HTTP call
type Base struct {
	Resp ResponseWriter
	Req  *http.Request
}

// NewBaseContext wraps the response writer and the request
func NewBaseContext(resp http.ResponseWriter, req *http.Request) *Base {
	return &Base{Resp: NewResponse(resp), Req: req}
}

// Context returns the request context
func (b *Base) Context() context.Context {
	return b.Req.Context()
}

// PathParam returns the unescaped value of a route parameter
func (b *Base) PathParam(name string) string {
	s, err := url.PathUnescape(chi.URLParam(b.Req, name))
	if err != nil {
		return chi.URLParam(b.Req, name)
	}
	return s
}

// DecodeJSON reads the request body into obj
func (b *Base) DecodeJSON(obj any) error {
	return json.NewDecoder(io.LimitReader(b.Req.Body, maxBodySize)).Decode(obj)
}

// JSON render content as JSON
func (b *Base) JSON(status int, content any) {
	b.Resp.Header().Set("Content-Type", "application/json;charset=utf-8")
	b.Resp.WriteHeader(status)
	if err := json.NewEncoder(b.Resp).Encode(content); err != nil {
		log.Error("Render JSON failed: %v", err)
	}
}

// PlainText render content as plain text
func (b *Base) PlainText(status int, text string) {
	b.Resp.Header().Set("Content-Type", "text/plain;charset=utf-8")
	b.Resp.WriteHeader(status)
	if _, err := io.WriteString(b.Resp, text); err != nil {
		log.Error("Render PlainText failed: %v", err)
	}
}
