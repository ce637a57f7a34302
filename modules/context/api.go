// Copyright 2016 The Gogs Authors. All rights reserved.
// Copyright 2019 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package context

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"code.gitea.io/githistory/modules/log"
	"code.gitea.io/githistory/modules/util"
)

// APIContext is a specific context for API service
type APIContext struct {
	*Base
}

// APIError is error format response
type APIError struct {
	Message string `json:"message"`
}

// Error responds with an error message to client with given obj as the message.
// If status is 500, also it prints error to log.
func (ctx *APIContext) Error(status int, title string, obj any) {
	var message string
	if err, ok := obj.(error); ok {
		message = err.Error()
	} else {
		message = fmt.Sprintf("%s", obj)
	}

	if status == http.StatusInternalServerError {
		log.ErrorWithSkip(1, "%s: %s", title, message)
	}

	ctx.JSON(status, APIError{Message: message})
}

// InternalServerError responds with an error message to the client with the error as a message
// and the file and line of the caller.
func (ctx *APIContext) InternalServerError(err error) {
	log.ErrorWithSkip(1, "InternalServerError: %v", err)
	ctx.JSON(http.StatusInternalServerError, APIError{Message: err.Error()})
}

// APIErrorFromService translates an error of the services into a response:
// malformed input is the fault of the client, everything else is an internal error
func (ctx *APIContext) APIErrorFromService(err error) {
	if errors.Is(err, util.ErrInvalidArgument) {
		ctx.Error(http.StatusBadRequest, "", err)
		return
	}
	log.ErrorWithSkip(1, "InternalServerError: %v", err)
	ctx.JSON(http.StatusInternalServerError, APIError{Message: err.Error()})
}

type apiContextKeyType struct{}

var apiContextKey = apiContextKeyType{}

// GetAPIContext returns a context for API routes
func GetAPIContext(req *http.Request) *APIContext {
	ctx, _ := req.Context().Value(apiContextKey).(*APIContext)
	return ctx
}

// APIContexter returns a middleware which attaches an APIContext to every request
func APIContexter() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := &APIContext{Base: NewBaseContext(w, req)}
			ctx.Req = req.WithContext(context.WithValue(req.Context(), apiContextKey, ctx))
			next.ServeHTTP(ctx.Resp, ctx.Req)
		})
	}
}

// APIHandler adapts a function taking an APIContext to a http.HandlerFunc
func APIHandler(fn func(ctx *APIContext)) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		ctx := GetAPIContext(req)
		if ctx == nil {
			ctx = &APIContext{Base: NewBaseContext(w, req)}
		} else {
			// chi adds the route parameters to the request after the middlewares have run
			ctx.Req = req
		}
		fn(ctx)
	}
}
