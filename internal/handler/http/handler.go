package http

import (
	"io"
	"net/http"

	"github.com/MKhiriev/coserv/internal/config"
	"github.com/MKhiriev/coserv/internal/logger"
)

// Deps are the collaborators behaviors need besides the configuration.
type Deps struct {
	// AccessLog receives the text access log lines. Nil discards them.
	AccessLog io.Writer

	// LiveReload serves the live-reload client script and websocket.
	LiveReload http.Handler
}

// Handler owns the assembled behaviors of one server.
type Handler struct {
	behaviors []Behavior

	logger *logger.Logger
}

// NewHandler assembles the behaviors for cfg.
func NewHandler(cfg *config.Config, deps Deps, logger *logger.Logger) *Handler {
	behaviors := Assemble(cfg, deps)

	names := make([]string, 0, len(behaviors))
	for _, b := range behaviors {
		names = append(names, b.Name)
	}
	logger.Debug().Strs("behaviors", names).Msg("http handler created")

	return &Handler{
		behaviors: behaviors,
		logger:    logger,
	}
}

// Behaviors returns the assembled behaviors in request order.
func (h *Handler) Behaviors() []Behavior {
	return h.behaviors
}
