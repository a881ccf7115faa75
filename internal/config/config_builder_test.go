package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLoader struct {
	cfg UserConfig
	err error
	dir string
}

func (s *stubLoader) Load(dir string) (UserConfig, error) {
	s.dir = dir
	return s.cfg, s.err
}

// TestNewConfigBuilder_InitialState verifies that a freshly created builder
// has no error and an empty user config.
func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder(Production)
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.user)
	assert.Equal(t, Production, b.env)
}

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder(Development)
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_EmptyBuilder verifies that building without sources still yields
// a valid configuration made of built-in fallbacks.
func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder(Development).build()
	require.NoError(t, err)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, ".", cfg.Static.Path)
}

func TestWithUserConfig_PassesDirectory(t *testing.T) {
	loader := &stubLoader{cfg: UserConfig{Development: {Port: ptr(1234)}}}

	cfg, err := newConfigBuilder(Development).
		withDefaults(Builtin()).
		withUserConfig(loader, "/srv/site").
		build()

	require.NoError(t, err)
	assert.Equal(t, "/srv/site", loader.dir)
	assert.Equal(t, 1234, cfg.Port)
}

func TestWithUserConfig_WrapsPlainErrors(t *testing.T) {
	loader := &stubLoader{err: errors.New("boom")}

	cfg, err := newConfigBuilder(Development).
		withDefaults(Builtin()).
		withUserConfig(loader, "/srv/site").
		build()

	assert.Nil(t, cfg)
	var loadErr *ConfigLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "/srv/site", loadErr.Path)
}

func TestWithUserConfig_KeepsConfigLoadError(t *testing.T) {
	orig := &ConfigLoadError{Path: "coserv.config.yaml", Err: ErrNotAMapping}
	loader := &stubLoader{err: orig}

	_, err := newConfigBuilder(Development).withUserConfig(loader, ".").build()

	var loadErr *ConfigLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Same(t, orig, loadErr)
	assert.ErrorIs(t, err, ErrNotAMapping)
}

func TestWithUserConfig_NilConfigIsEmpty(t *testing.T) {
	b := newConfigBuilder(Development).withUserConfig(&stubLoader{}, ".")

	assert.NoError(t, b.err)
	assert.NotNil(t, b.user)
}

func TestBuild_WrapsValidationErrors(t *testing.T) {
	cfg, err := newConfigBuilder(Development).
		withDefaults(Builtin()).
		withOverrides(Partial{Port: ptr(99999)}).
		build()

	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrInvalidPort)
}
