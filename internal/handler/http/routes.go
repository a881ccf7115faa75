package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the router: panic recovery and request tracing in front of the
// assembled behaviors, which answer every path and method.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)

	chain := Chain(h.behaviors)
	router.Handle("/", chain)
	router.Handle("/*", chain)

	router.NotFound(chain.ServeHTTP)
	router.MethodNotAllowed(chain.ServeHTTP)

	return router
}
