// Copyright 2021 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package common

import (
	"fmt"
	"net/http"
	"time"

	"code.gitea.io/githistory/modules/context"
	"code.gitea.io/githistory/modules/log"
	"code.gitea.io/githistory/modules/setting"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Middlewares returns common middlewares
func Middlewares() []func(http.Handler) http.Handler {
	handlers := []func(http.Handler) http.Handler{
		func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(resp http.ResponseWriter, req *http.Request) {
				// First of all escape the URL RawPath to ensure that all routing is done using a correctly escaped URL
				req.URL.RawPath = req.URL.EscapedPath()
				next.ServeHTTP(context.NewResponse(resp), req)
			})
		},
		middleware.StripSlashes,
	}

	if !setting.DisableRouterLog {
		handlers = append(handlers, RouterLogger())
	}

	if setting.CORSConfig.Enabled {
		handlers = append(handlers, cors.Handler(cors.Options{
			AllowedOrigins:   setting.CORSConfig.AllowDomain,
			AllowedMethods:   setting.CORSConfig.Methods,
			AllowedHeaders:   setting.CORSConfig.Headers,
			AllowCredentials: setting.CORSConfig.AllowCredentials,
			MaxAge:           int(setting.CORSConfig.MaxAge.Seconds()),
		}))
	}

	handlers = append(handlers, Recovery())
	return handlers
}

// RouterLogger logs every completed request with its status and duration
func RouterLogger() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(resp http.ResponseWriter, req *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(resp, req.ProtoMajor)
			if log.IsTrace() {
				log.Trace("router: started   %v %s for %s", log.ColoredMethod(req.Method), req.RequestURI, req.RemoteAddr)
			}

			next.ServeHTTP(ww, req)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			level := log.INFO
			if status >= http.StatusInternalServerError {
				level = log.WARN
			}
			log.Log(0, level, "router: completed %v %s for %s, %v %v in %v",
				log.ColoredMethod(req.Method), req.RequestURI, req.RemoteAddr,
				log.ColoredStatus(status), log.ColoredStatus(status, http.StatusText(status)), log.ColoredTime(time.Since(start)),
			)
		})
	}
}

// Recovery turns a panic of a handler into a 500 response carrying the panic message
func Recovery() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(resp http.ResponseWriter, req *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					combinedErr := fmt.Sprintf("PANIC: %v\n%s", err, log.Stack(2))
					log.Error("%v", combinedErr)
					ctx := context.APIContext{Base: context.NewBaseContext(resp, req)}
					ctx.JSON(http.StatusInternalServerError, context.APIError{Message: fmt.Sprintf("%v", err)})
				}
			}()
			next.ServeHTTP(resp, req)
		})
	}
}
