// Copyright 2021 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package context

import "net/http"

// ResponseWriter represents a response writer for HTTP
type ResponseWriter interface {
	http.ResponseWriter
	http.Flusher
	Status() int
	Written() bool
}

var _ ResponseWriter = &Response{}

// Response represents a response
type Response struct {
	http.ResponseWriter
	status int
}

// Write writes bytes to HTTP endpoint
func (r *Response) Write(bs []byte) (int, error) {
	if r.status == 0 {
		r.WriteHeader(http.StatusOK)
	}
	return r.ResponseWriter.Write(bs)
}

// WriteHeader write status code
func (r *Response) WriteHeader(statusCode int) {
	if r.status != 0 {
		return
	}
	r.status = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}

// Flush flushes cached data
func (r *Response) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Status returns the status code written, 0 before anything has been written
func (r *Response) Status() int {
	return r.status
}

// Written returns true if the response header has been sent
func (r *Response) Written() bool {
	return r.status != 0
}

// NewResponse creates a response
func NewResponse(resp http.ResponseWriter) *Response {
	if v, ok := resp.(*Response); ok {
		return v
	}
	return &Response{ResponseWriter: resp}
}
