// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func mustResolve(t *testing.T, defaults Scoped, env Environment, user UserConfig, overrides Partial) *Config {
	t.Helper()
	cfg, err := Resolve(defaults, env, user, overrides)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	return cfg
}

// ── overrides and derived defaults ────────────────────────────────────────────

// TestResolve_CLIPortBeatsDefault verifies that a CLI port beats the base
// default while the environment default for SPA survives.
func TestResolve_CLIPortBeatsDefault(t *testing.T) {
	defaults := Scoped{
		Base: Partial{Port: ptr(3000)},
		Environments: map[Environment]Partial{
			Development: {Static: &PartialStatic{SPA: ptr(true)}},
		},
	}

	cfg := mustResolve(t, defaults, Development, UserConfig{Development: {}}, Partial{Port: ptr(8080)})

	assert.Equal(t, 8080, cfg.Port)
	assert.True(t, cfg.Static.SPA)
}

// TestResolve_LiveReloadEnablesStaticInjection verifies the static-livereload
// derived default.
func TestResolve_LiveReloadEnablesStaticInjection(t *testing.T) {
	defaults := Scoped{
		Base: Partial{
			LiveReload: &PartialLiveReload{Watch: []string{"."}},
			Static:     &PartialStatic{},
		},
	}

	cfg := mustResolve(t, defaults, Development, nil, Partial{})

	require.NotNil(t, cfg.LiveReload)
	assert.True(t, cfg.Static.LiveReload)
}

// ── precedence ────────────────────────────────────────────────────────────────

func TestResolve_MergePrecedence(t *testing.T) {
	defaults := Scoped{
		Base: Partial{
			Port:    ptr(1),
			Logging: ptr("tiny"),
			Static:  &PartialStatic{Path: ptr("base"), Index: ptr("base.html"), SPA: ptr(false)},
		},
		Environments: map[Environment]Partial{
			Production: {
				Port:    ptr(2),
				Logging: ptr("short"),
				Static:  &PartialStatic{Path: ptr("env"), NodeModules: ptr("env_modules")},
			},
		},
	}
	user := UserConfig{
		Production: {
			Port:   ptr(3),
			Static: &PartialStatic{Path: ptr("user")},
		},
	}
	overrides := Partial{Port: ptr(4)}

	cfg := mustResolve(t, defaults, Production, user, overrides)

	assert.Equal(t, 4, cfg.Port, "CLI overrides win")
	assert.Equal(t, "short", cfg.Logging, "builtin env beats builtin base")
	assert.Equal(t, "user", cfg.Static.Path, "user env beats builtin env")
	assert.Equal(t, "env_modules", cfg.Static.NodeModules, "siblings from lower sources are kept")
	assert.Equal(t, "base.html", cfg.Static.Index, "siblings from the base are kept")
	assert.False(t, cfg.Static.SPA)
}

func TestResolve_SlicesAreReplacedNotConcatenated(t *testing.T) {
	defaults := Scoped{
		Base: Partial{LiveReload: &PartialLiveReload{Watch: []string{"a", "b"}}},
	}
	user := UserConfig{Development: {LiveReload: &PartialLiveReload{Watch: []string{"c"}}}}

	cfg := mustResolve(t, defaults, Development, user, Partial{})

	require.NotNil(t, cfg.LiveReload)
	assert.Equal(t, []string{"c"}, cfg.LiveReload.Watch)
}

func TestResolve_NestedOptionsMergeRecursively(t *testing.T) {
	delay := Duration(250 * time.Millisecond)
	defaults := Scoped{
		Base: Partial{LiveReload: &PartialLiveReload{
			Options: &PartialLiveReloadOptions{Exts: []string{"html"}},
		}},
	}
	user := UserConfig{Development: {LiveReload: &PartialLiveReload{
		Options: &PartialLiveReloadOptions{Delay: &delay},
	}}}

	cfg := mustResolve(t, defaults, Development, user, Partial{})

	require.NotNil(t, cfg.LiveReload)
	assert.Equal(t, []string{"html"}, cfg.LiveReload.Options.Exts)
	assert.Equal(t, 250*time.Millisecond, cfg.LiveReload.Options.DelayDuration())
	assert.Equal(t, DefaultLiveReloadExclusions, cfg.LiveReload.Options.Exclusions)
}

func TestResolve_StaticHeadersMergedPerName(t *testing.T) {
	defaults := Scoped{
		Base: Partial{Static: &PartialStatic{Headers: map[string]string{
			"Cache-Control": "no-cache",
			"X-Frame":       "DENY",
		}}},
	}
	user := UserConfig{Production: {Static: &PartialStatic{Headers: map[string]string{
		"Cache-Control": "max-age=60",
	}}}}

	cfg := mustResolve(t, defaults, Production, user, Partial{})

	assert.Equal(t, map[string]string{
		"Cache-Control": "max-age=60",
		"X-Frame":       "DENY",
	}, cfg.Static.Headers)
}

// ── environment scoping ───────────────────────────────────────────────────────

func TestResolve_EnvironmentIsolation(t *testing.T) {
	user := UserConfig{
		Development: {Port: ptr(4000), Logging: ptr("tiny")},
	}

	cfg := mustResolve(t, Builtin(), Production, user, Partial{})

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, "combined", cfg.Logging)
	assert.Equal(t, "./dist", cfg.Static.Path)
	assert.Nil(t, cfg.LiveReload, "development live reload must not leak into production")
	assert.Empty(t, cfg.Static.NodeModules)
}

func TestResolve_NoResidualScopes(t *testing.T) {
	for _, env := range []Environment{Development, Production, "staging"} {
		t.Run(string(env), func(t *testing.T) {
			user := UserConfig{
				Development: {Port: ptr(1)},
				Production:  {Port: ptr(2)},
			}
			cfg := mustResolve(t, Builtin(), env, user, Partial{})

			data, err := json.Marshal(cfg)
			require.NoError(t, err)

			var out map[string]any
			require.NoError(t, json.Unmarshal(data, &out))
			assert.NotContains(t, out, "development")
			assert.NotContains(t, out, "production")
		})
	}
}

func TestResolve_UnknownEnvironmentFallsBackToBase(t *testing.T) {
	cfg := mustResolve(t, Builtin(), "staging", UserConfig{}, Partial{})

	assert.False(t, cfg.Scoped)
	assert.Equal(t, Environment("staging"), cfg.Environment)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Empty(t, cfg.Logging)
	assert.Equal(t, ".", cfg.Static.Path)
	assert.Nil(t, cfg.LiveReload)
}

func TestResolve_UserOnlyEnvironmentIsScoped(t *testing.T) {
	cfg := mustResolve(t, Builtin(), "staging", UserConfig{"staging": {Port: ptr(5000)}}, Partial{})

	assert.True(t, cfg.Scoped)
	assert.Equal(t, 5000, cfg.Port)
}

// ── derived defaults ──────────────────────────────────────────────────────────

func TestResolve_DerivedDefaultDoesNotOverrideExplicitFalse(t *testing.T) {
	tests := []struct {
		name      string
		defaults  Scoped
		user      UserConfig
		overrides Partial
	}{
		{
			name: "false in builtin env",
			defaults: Scoped{Environments: map[Environment]Partial{Development: {
				Static:     &PartialStatic{LiveReload: ptr(false)},
				LiveReload: &PartialLiveReload{},
			}}},
		},
		{
			name:     "false in user config",
			defaults: Builtin(),
			user:     UserConfig{Development: {Static: &PartialStatic{LiveReload: ptr(false)}}},
		},
		{
			name:      "false in overrides",
			defaults:  Builtin(),
			overrides: Partial{Static: &PartialStatic{LiveReload: ptr(false)}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := mustResolve(t, tt.defaults, Development, tt.user, tt.overrides)

			require.NotNil(t, cfg.LiveReload)
			assert.False(t, cfg.Static.LiveReload)
		})
	}
}

func TestResolve_DerivedDefaultNeedsLiveReload(t *testing.T) {
	cfg := mustResolve(t, Builtin(), Production, nil, Partial{})

	assert.Nil(t, cfg.LiveReload)
	assert.False(t, cfg.Static.LiveReload)
}

func TestResolve_DerivedDefaultCreatesStaticSection(t *testing.T) {
	defaults := Scoped{Base: Partial{LiveReload: &PartialLiveReload{}}}

	cfg := mustResolve(t, defaults, Development, nil, Partial{})

	assert.True(t, cfg.Static.LiveReload)
	assert.Equal(t, ".", cfg.Static.Path)
	assert.Equal(t, []string{"."}, cfg.LiveReload.Watch)
}

// ── toggles ───────────────────────────────────────────────────────────────────

func TestResolve_LiveReloadDisabledByHigherSource(t *testing.T) {
	user := UserConfig{Development: {LiveReload: &PartialLiveReload{Disabled: true}}}

	cfg := mustResolve(t, Builtin(), Development, user, Partial{})

	assert.Nil(t, cfg.LiveReload)
	assert.False(t, cfg.Static.LiveReload)
}

func TestResolve_APISection(t *testing.T) {
	t.Run("absent", func(t *testing.T) {
		cfg := mustResolve(t, Builtin(), Development, nil, Partial{})
		assert.Nil(t, cfg.API)
	})

	t.Run("present with defaults", func(t *testing.T) {
		user := UserConfig{Development: {API: &PartialAPI{}}}
		cfg := mustResolve(t, Builtin(), Development, user, Partial{})
		require.NotNil(t, cfg.API)
		assert.Equal(t, int64(DefaultBodyLimit), cfg.API.BodyLimit)
	})

	t.Run("disabled above", func(t *testing.T) {
		defaults := Builtin()
		defaults.Base.API = &PartialAPI{BodyLimit: ptr(int64(10))}
		user := UserConfig{Development: {API: &PartialAPI{Disabled: true}}}
		cfg := mustResolve(t, defaults, Development, user, Partial{})
		assert.Nil(t, cfg.API)
	})
}

// ── null host ─────────────────────────────────────────────────────────────────

func TestResolve_NullHostPreserved(t *testing.T) {
	user := UserConfig{Development: {Host: NullOf("127.0.0.1")}}

	cfg := mustResolve(t, Builtin(), Development, user, Partial{Host: Null()})

	assert.Nil(t, cfg.Host)

	data, err := json.Marshal(cfg)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	require.Contains(t, out, "host")
	assert.Nil(t, out["host"])
}

func TestResolve_HostOverride(t *testing.T) {
	cfg := mustResolve(t, Builtin(), Development, nil, Partial{Host: NullOf("localhost")})

	require.NotNil(t, cfg.Host)
	assert.Equal(t, "localhost", *cfg.Host)
	assert.Equal(t, "localhost:3000", cfg.Addr())
}

func TestConfig_AddrAllInterfaces(t *testing.T) {
	cfg := &Config{Port: 8080}
	assert.Equal(t, ":8080", cfg.Addr())
}

// ── immutability ──────────────────────────────────────────────────────────────

func TestResolve_DoesNotModifyInputs(t *testing.T) {
	defaults := Builtin()
	user := UserConfig{Development: {
		Static: &PartialStatic{Headers: map[string]string{"X-A": "1"}},
	}}
	overrides := Partial{Static: &PartialStatic{Headers: map[string]string{"X-B": "2"}}}

	cfg := mustResolve(t, defaults, Development, user, overrides)
	cfg.Static.Headers["X-C"] = "3"
	cfg.LiveReload.Watch[0] = "mutated"

	assert.Equal(t, Builtin(), defaults)
	assert.Equal(t, map[string]string{"X-A": "1"}, user[Development].Static.Headers)
	assert.Equal(t, map[string]string{"X-B": "2"}, overrides.Static.Headers)
	assert.Nil(t, defaults.Environments[Development].Static.LiveReload, "derived default must not leak into defaults")
}

// ── validation ────────────────────────────────────────────────────────────────

func TestResolve_Validation(t *testing.T) {
	tests := []struct {
		name      string
		overrides Partial
		user      UserConfig
		wantErr   error
	}{
		{
			name:      "negative port",
			overrides: Partial{Port: ptr(-1)},
			wantErr:   ErrInvalidPort,
		},
		{
			name:      "port too large",
			overrides: Partial{Port: ptr(70000)},
			wantErr:   ErrInvalidPort,
		},
		{
			name:    "unknown logging format",
			user:    UserConfig{Development: {Logging: ptr("fancy")}},
			wantErr: ErrInvalidLoggingFormat,
		},
		{
			name:    "empty static path",
			user:    UserConfig{Development: {Static: &PartialStatic{Path: ptr("")}}},
			wantErr: ErrInvalidStaticConfigs,
		},
		{
			name:    "empty watch list",
			user:    UserConfig{Development: {LiveReload: &PartialLiveReload{Watch: []string{}}}},
			wantErr: ErrInvalidLiveReloadConfigs,
		},
		{
			name: "bad exclusion",
			user: UserConfig{Development: {LiveReload: &PartialLiveReload{
				Options: &PartialLiveReloadOptions{Exclusions: []string{"("}},
			}}},
			wantErr: ErrInvalidLiveReloadConfigs,
		},
		{
			name:    "zero body limit",
			user:    UserConfig{Development: {API: &PartialAPI{BodyLimit: ptr(int64(0))}}},
			wantErr: ErrInvalidAPIConfigs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Resolve(Builtin(), Development, tt.user, tt.overrides)
			assert.Nil(t, cfg)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestResolve_BuiltinDevelopment(t *testing.T) {
	cfg := mustResolve(t, Builtin(), Development, nil, Partial{})

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Nil(t, cfg.Host)
	assert.Equal(t, "dev", cfg.Logging)
	assert.Equal(t, Static{
		Path:        ".",
		SPA:         true,
		Index:       DefaultIndex,
		NodeModules: "./node_modules",
		LiveReload:  true,
	}, cfg.Static)
	require.NotNil(t, cfg.LiveReload)
	assert.Equal(t, []string{"."}, cfg.LiveReload.Watch)
	assert.Equal(t, DefaultLiveReloadExts, cfg.LiveReload.Options.Exts)
	assert.True(t, cfg.Scoped)
}
