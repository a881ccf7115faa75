// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"io"
	"net/http"

	"github.com/MKhiriev/coserv/internal/config"
	"github.com/MKhiriev/coserv/internal/livereload"
	"github.com/go-chi/chi/v5"
)

// Behavior names, in the order [Assemble] emits them.
const (
	BehaviorLogger           = "logger"
	BehaviorCookieParser     = "cookie-parser"
	BehaviorURLEncodedParser = "urlencoded-parser"
	BehaviorJSONParser       = "json-parser"
	BehaviorStatic           = "static"
	BehaviorLiveReload       = "livereload"
	BehaviorNotFound         = "not-found"
)

// Behavior is one named step of the request pipeline.
type Behavior struct {
	Name       string
	Middleware func(next http.Handler) http.Handler
}

// Assemble returns the behaviors cfg asks for, in fixed order:
//
//	logger            when cfg.Logging is set
//	cookie-parser     when cfg.API is set
//	urlencoded-parser when cfg.API is set
//	json-parser       when cfg.API is set
//	static            always
//	livereload        when cfg.LiveReload is set
//	not-found         always, last
//
// The result depends on cfg only; deps supply the collaborators the
// behaviors write to or delegate to.
func Assemble(cfg *config.Config, deps Deps) []Behavior {
	var behaviors []Behavior

	if cfg.Logging != "" {
		out := deps.AccessLog
		if out == nil {
			out = io.Discard
		}
		behaviors = append(behaviors, Behavior{
			Name:       BehaviorLogger,
			Middleware: withAccessLog(cfg.Logging, out),
		})
	}

	if api := cfg.API; api != nil {
		behaviors = append(behaviors,
			Behavior{Name: BehaviorCookieParser, Middleware: withCookies},
			Behavior{Name: BehaviorURLEncodedParser, Middleware: withURLEncodedBody(api.BodyLimit)},
			Behavior{Name: BehaviorJSONParser, Middleware: withJSONBody(api.BodyLimit)},
		)
	}

	var reserved []string
	if cfg.LiveReload != nil {
		reserved = []string{livereload.ScriptPath, livereload.SocketPath}
	}
	behaviors = append(behaviors, Behavior{
		Name:       BehaviorStatic,
		Middleware: newStaticServer(cfg.Static, reserved...).middleware,
	})

	if cfg.LiveReload != nil {
		behaviors = append(behaviors, Behavior{
			Name:       BehaviorLiveReload,
			Middleware: withLiveReload(deps.LiveReload),
		})
	}

	behaviors = append(behaviors, Behavior{
		Name:       BehaviorNotFound,
		Middleware: withNotFound,
	})

	return behaviors
}

// Chain composes behaviors into one handler. Requests run through the
// behaviors in order; a request nobody answered gets a 404.
func Chain(behaviors []Behavior) http.Handler {
	middlewares := make(chi.Middlewares, 0, len(behaviors))
	for _, b := range behaviors {
		middlewares = append(middlewares, b.Middleware)
	}
	return middlewares.Handler(http.HandlerFunc(notFound))
}
