package http

import (
	"testing"

	"github.com/MKhiriev/coserv/internal/config"
	"github.com/MKhiriev/coserv/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestHandler creates a Handler with a nop logger and no behaviors.
func newTestHandler() *Handler {
	return &Handler{logger: logger.Nop()}
}

func TestNewHandler_AssemblesBehaviors(t *testing.T) {
	cfg := baseConfig(t.TempDir())
	cfg.Logging = "dev"

	h := NewHandler(cfg, Deps{}, logger.Nop())

	require.NotNil(t, h)
	assert.Equal(t, []string{BehaviorLogger, BehaviorStatic, BehaviorNotFound}, behaviorNames(h.Behaviors()))
}

func TestNewHandler_IndependentInstances(t *testing.T) {
	cfg := baseConfig(t.TempDir())

	h1 := NewHandler(cfg, Deps{}, logger.Nop())
	cfg.API = &config.API{BodyLimit: 10}
	h2 := NewHandler(cfg, Deps{}, logger.Nop())

	assert.NotSame(t, h1, h2)
	assert.Len(t, h1.Behaviors(), 2)
	assert.Len(t, h2.Behaviors(), 5)
}
