package http

import "net/http"

// withNotFound ends the pipeline: it never calls next.
func withNotFound(_ http.Handler) http.Handler {
	return http.HandlerFunc(notFound)
}

func notFound(w http.ResponseWriter, r *http.Request) {
	uri := r.RequestURI
	if uri == "" {
		uri = r.URL.RequestURI()
	}
	renderError(w, r, &RouteNotFoundError{Path: uri})
}
