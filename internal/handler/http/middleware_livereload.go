package http

import (
	"net/http"

	"github.com/MKhiriev/coserv/internal/livereload"
)

// withLiveReload hands the live-reload client script and websocket requests
// to endpoints. Everything else continues down the pipeline.
func withLiveReload(endpoints http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if endpoints == nil || !livereload.Handles(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}
			endpoints.ServeHTTP(w, r)
		})
	}
}
