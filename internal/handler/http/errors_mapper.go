package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/MKhiriev/coserv/internal/logger"
	"github.com/MKhiriev/coserv/internal/utils"
	"github.com/MKhiriev/coserv/models"
)

var errorStatusMap = map[error]int{
	ErrNotFound:      http.StatusNotFound,
	ErrMalformedBody: http.StatusBadRequest,
	ErrBodyTooLarge:  http.StatusRequestEntityTooLarge,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// renderError answers the request with the status mapped from err. Clients
// that ask for JSON get a [models.ErrorResponse], everyone else plain text.
func renderError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)

	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Send()
	}

	message := err.Error()
	if status >= http.StatusInternalServerError {
		message = http.StatusText(status)
	}

	if acceptsJSON(r) {
		if _, werr := utils.WriteJSON(w, models.ErrorResponse{Status: status, Error: message}, status); werr != nil {
			log.Error().Err(werr).Msg("error writing error response")
		}
		return
	}
	http.Error(w, message, status)
}

// acceptsJSON reports whether the client prefers JSON over HTML.
func acceptsJSON(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "application/json") && !strings.Contains(accept, "text/html")
}
