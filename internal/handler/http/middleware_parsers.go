package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/MKhiriev/coserv/internal/utils"
)

// withCookies stores the request cookies in the context, see
// [utils.GetCookiesFromContext]. Later cookies win over earlier ones with
// the same name.
func withCookies(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookies := make(map[string]string)
		for _, c := range r.Cookies() {
			cookies[c.Name] = c.Value
		}
		next.ServeHTTP(w, r.WithContext(utils.WithCookies(r.Context(), cookies)))
	})
}

// withURLEncodedBody parses application/x-www-form-urlencoded bodies into
// r.PostForm. Bodies over limit bytes are rejected with 413.
func withURLEncodedBody(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if mediaType(r) != "application/x-www-form-urlencoded" {
				next.ServeHTTP(w, r)
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, limit)
			if err := r.ParseForm(); err != nil {
				renderError(w, r, bodyError(err))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// withJSONBody decodes JSON bodies and stores the value in the context, see
// [utils.GetBodyFromContext]. The raw body stays readable downstream.
// Bodies over limit bytes are rejected with 413, invalid JSON with 400.
func withJSONBody(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !isJSON(mediaType(r)) {
				next.ServeHTTP(w, r)
				return
			}

			raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
			if err != nil {
				renderError(w, r, bodyError(err))
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(raw))

			if len(bytes.TrimSpace(raw)) == 0 {
				next.ServeHTTP(w, r)
				return
			}

			var body any
			if err = json.Unmarshal(raw, &body); err != nil {
				renderError(w, r, fmt.Errorf("%w: %w", ErrMalformedBody, err))
				return
			}
			next.ServeHTTP(w, r.WithContext(utils.WithBody(r.Context(), body)))
		})
	}
}

func bodyError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, maxErr.Limit)
	}
	return fmt.Errorf("%w: %w", ErrMalformedBody, err)
}

func mediaType(r *http.Request) string {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return ""
	}
	return mt
}

func isJSON(mt string) bool {
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}
