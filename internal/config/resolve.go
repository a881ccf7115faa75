// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"maps"
	"net"
	"slices"
	"strconv"
	"time"
)

// Resolve merges the configuration sources for env into the effective
// configuration.
//
// Sources are merged in strict precedence order (lowest first):
//  1. defaults.Base
//  2. defaults.Environments[env]
//  3. user[env]
//  4. overrides
//
// A missing environment scope in defaults or user is treated as an empty
// partial. Environment scopes never appear in the result. Derived defaults
// are applied to the merged partial before it is finalized and validated.
//
// None of the inputs are modified.
func Resolve(defaults Scoped, env Environment, user UserConfig, overrides Partial) (*Config, error) {
	sources := []Partial{
		defaults.Base,
		defaults.Environments[env],
		user[env],
		overrides,
	}

	var merged Partial
	for i, src := range sources {
		var err error
		if merged, err = merge(merged, src); err != nil {
			return nil, fmt.Errorf("error merging config source %d: %w", i, err)
		}
	}

	applyDerivedDefaults(&merged)

	cfg := finalize(merged)
	cfg.Environment = env
	cfg.Scoped = defaults.Has(env) || user.Has(env)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// finalize converts a merged partial into a [Config], filling fields that no
// source provided with built-in values.
func finalize(p Partial) *Config {
	cfg := &Config{
		Port:    valueOr(p.Port, DefaultPort),
		Host:    clonePtr(p.Host.Value),
		Logging: valueOr(p.Logging, ""),
		Static:  Static{Path: ".", Index: DefaultIndex},
	}

	if p.API.enabled() {
		cfg.API = &API{BodyLimit: valueOr(p.API.BodyLimit, DefaultBodyLimit)}
	}

	if s := p.Static; s != nil {
		cfg.Static = Static{
			Path:        valueOr(s.Path, "."),
			SPA:         valueOr(s.SPA, false),
			Index:       valueOr(s.Index, DefaultIndex),
			NodeModules: valueOr(s.NodeModules, ""),
			LiveReload:  valueOr(s.LiveReload, false),
			Headers:     maps.Clone(s.Headers),
		}
	}

	if p.LiveReload.enabled() {
		lr := &LiveReload{
			Watch: slices.Clone(p.LiveReload.Watch),
			Options: LiveReloadOptions{
				Exts:       slices.Clone(DefaultLiveReloadExts),
				Exclusions: slices.Clone(DefaultLiveReloadExclusions),
			},
		}
		if lr.Watch == nil {
			lr.Watch = []string{"."}
		}
		if o := p.LiveReload.Options; o != nil {
			if o.Exts != nil {
				lr.Options.Exts = slices.Clone(o.Exts)
			}
			if o.Exclusions != nil {
				lr.Options.Exclusions = slices.Clone(o.Exclusions)
			}
			lr.Options.Delay = valueOr(o.Delay, Duration(0))
		}
		cfg.LiveReload = lr
	}

	return cfg
}

// Addr returns the listen address in host:port form. A nil host binds all
// interfaces.
func (c *Config) Addr() string {
	host := ""
	if c.Host != nil {
		host = *c.Host
	}
	return net.JoinHostPort(host, strconv.Itoa(c.Port))
}

// DelayDuration returns the debounce delay as a [time.Duration].
func (o LiveReloadOptions) DelayDuration() time.Duration {
	return time.Duration(o.Delay)
}

func valueOr[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
