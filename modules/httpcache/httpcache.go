// Copyright 2020 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package httpcache

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// AddCacheControlToHeader adds suitable cache-control headers to response
func AddCacheControlToHeader(h http.Header, maxAge time.Duration, additionalDirectives ...string) {
	directives := make([]string, 0, 1+len(additionalDirectives))
	if maxAge <= 0 {
		directives = append(directives, "no-store")
	} else {
		directives = append(directives, "max-age="+strconv.Itoa(int(maxAge.Seconds())))
	}
	h.Set("Cache-Control", strings.Join(append(directives, additionalDirectives...), ", "))
}

// ETagFromIDs builds a strong ETag from the object ids a response is derived from
func ETagFromIDs(ids ...string) string {
	return `"` + strings.Join(ids, "-") + `"`
}

// HandleGenericETagCache handles ETag-based caching for a HTTP request.
// It returns true if the request was handled.
func HandleGenericETagCache(req *http.Request, w http.ResponseWriter, etag string, maxAge time.Duration) (handled bool) {
	if len(etag) > 0 {
		w.Header().Set("Etag", etag)
		if checkIfNoneMatchIsValid(req, etag) {
			w.WriteHeader(http.StatusNotModified)
			return true
		}
	}
	AddCacheControlToHeader(w.Header(), maxAge)
	return false
}

// checkIfNoneMatchIsValid tests if the header If-None-Match matches the ETag
func checkIfNoneMatchIsValid(req *http.Request, etag string) bool {
	ifNoneMatch := req.Header.Get("If-None-Match")
	if len(ifNoneMatch) > 0 {
		for _, item := range strings.Split(ifNoneMatch, ",") {
			item = strings.TrimSpace(item)
			if item == etag || item == "*" {
				return true
			}
		}
	}
	return false
}
