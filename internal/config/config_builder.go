package config

import (
	"errors"
	"fmt"
)

type configBuilder struct {
	env       Environment
	defaults  Scoped
	user      UserConfig
	overrides Partial
	err       error
}

func newConfigBuilder(env Environment) *configBuilder {
	return &configBuilder{
		env:  env,
		user: UserConfig{},
	}
}

func (b *configBuilder) build() (*Config, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	cfg, err := Resolve(b.defaults, b.env, b.user, b.overrides)
	if err != nil {
		return nil, fmt.Errorf("error resolving config: %w", err)
	}

	return cfg, nil
}

func (b *configBuilder) withDefaults(defaults Scoped) *configBuilder {
	b.defaults = defaults
	return b
}

func (b *configBuilder) withUserConfig(loader Loader, dir string) *configBuilder {
	user, err := loader.Load(dir)
	if err != nil {
		var loadErr *ConfigLoadError
		if !errors.As(err, &loadErr) {
			err = &ConfigLoadError{Path: dir, Err: err}
		}
		b.err = errors.Join(b.err, err)
		return b
	}

	if user != nil {
		b.user = user
	}
	return b
}

func (b *configBuilder) withOverrides(overrides Partial) *configBuilder {
	b.overrides = overrides
	return b
}

// GetEffectiveConfig loads the user configuration of dir through loader and
// resolves it for env together with the built-in defaults and the
// command-line overrides.
//
// Returns the effective *Config, or an error wrapping a *ConfigLoadError
// when the user configuration cannot be loaded, or a validation error.
func GetEffectiveConfig(env Environment, loader Loader, dir string, overrides Partial) (*Config, error) {
	return newConfigBuilder(env).
		withDefaults(Builtin()).
		withUserConfig(loader, dir).
		withOverrides(overrides).
		build()
}
