// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/coserv/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func behaviorNames(behaviors []Behavior) []string {
	names := make([]string, 0, len(behaviors))
	for _, b := range behaviors {
		names = append(names, b.Name)
	}
	return names
}

func baseConfig(dir string) *config.Config {
	return &config.Config{
		Port:   3000,
		Static: config.Static{Path: dir, Index: config.DefaultIndex},
	}
}

func TestAssemble_Order(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cfg *config.Config)
		want   []string
	}{
		{
			name:   "static only",
			mutate: func(cfg *config.Config) {},
			want:   []string{BehaviorStatic, BehaviorNotFound},
		},
		{
			name: "logging",
			mutate: func(cfg *config.Config) {
				cfg.Logging = "combined"
			},
			want: []string{BehaviorLogger, BehaviorStatic, BehaviorNotFound},
		},
		{
			name: "api variant",
			mutate: func(cfg *config.Config) {
				cfg.API = &config.API{BodyLimit: 1024}
			},
			want: []string{BehaviorCookieParser, BehaviorURLEncodedParser, BehaviorJSONParser, BehaviorStatic, BehaviorNotFound},
		},
		{
			name: "live reload",
			mutate: func(cfg *config.Config) {
				cfg.Logging = "dev"
				cfg.LiveReload = &config.LiveReload{Watch: []string{"."}}
			},
			want: []string{BehaviorLogger, BehaviorStatic, BehaviorLiveReload, BehaviorNotFound},
		},
		{
			name: "everything",
			mutate: func(cfg *config.Config) {
				cfg.Logging = "json"
				cfg.API = &config.API{BodyLimit: 1024}
				cfg.LiveReload = &config.LiveReload{Watch: []string{"."}}
			},
			want: []string{
				BehaviorLogger,
				BehaviorCookieParser, BehaviorURLEncodedParser, BehaviorJSONParser,
				BehaviorStatic, BehaviorLiveReload, BehaviorNotFound,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig(t.TempDir())
			tt.mutate(cfg)

			got := behaviorNames(Assemble(cfg, Deps{}))
			assert.Equal(t, tt.want, got)

			// assembling twice yields the same decision set
			assert.Equal(t, got, behaviorNames(Assemble(cfg, Deps{})))
		})
	}
}

func TestAssemble_FromResolvedConfigs(t *testing.T) {
	tests := []struct {
		name string
		env  config.Environment
		user config.UserConfig
		want []string
	}{
		{
			name: "development defaults",
			env:  config.Development,
			want: []string{BehaviorLogger, BehaviorStatic, BehaviorLiveReload, BehaviorNotFound},
		},
		{
			name: "production defaults",
			env:  config.Production,
			want: []string{BehaviorLogger, BehaviorStatic, BehaviorNotFound},
		},
		{
			name: "production with api",
			env:  config.Production,
			user: config.UserConfig{config.Production: {API: &config.PartialAPI{}}},
			want: []string{
				BehaviorLogger,
				BehaviorCookieParser, BehaviorURLEncodedParser, BehaviorJSONParser,
				BehaviorStatic, BehaviorNotFound,
			},
		},
		{
			name: "development without live reload",
			env:  config.Development,
			user: config.UserConfig{config.Development: {LiveReload: &config.PartialLiveReload{Disabled: true}}},
			want: []string{BehaviorLogger, BehaviorStatic, BehaviorNotFound},
		},
		{
			name: "unknown environment",
			env:  "staging",
			want: []string{BehaviorStatic, BehaviorNotFound},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.Resolve(config.Builtin(), tt.env, tt.user, config.Partial{})
			require.NoError(t, err)

			assert.Equal(t, tt.want, behaviorNames(Assemble(cfg, Deps{})))
		})
	}
}

func TestAssemble_NotFoundIsAlwaysLast(t *testing.T) {
	cfg := baseConfig(t.TempDir())
	cfg.Logging = "tiny"
	cfg.API = &config.API{BodyLimit: 10}
	cfg.LiveReload = &config.LiveReload{Watch: []string{"."}}

	behaviors := Assemble(cfg, Deps{})
	require.NotEmpty(t, behaviors)
	assert.Equal(t, BehaviorNotFound, behaviors[len(behaviors)-1].Name)

	for _, b := range behaviors {
		assert.NotNil(t, b.Middleware, b.Name)
	}
}

func TestChain_ShortCircuitsAtFirstResponder(t *testing.T) {
	var calls []string
	record := func(name string, respond bool) Behavior {
		return Behavior{
			Name: name,
			Middleware: func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					calls = append(calls, name)
					if respond {
						w.WriteHeader(http.StatusTeapot)
						return
					}
					next.ServeHTTP(w, r)
				})
			},
		}
	}

	h := Chain([]Behavior{record("a", false), record("b", true), record("c", false)})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusTeapot, rr.Code)
	assert.Equal(t, []string{"a", "b"}, calls)
}

func TestChain_EmptyAnswersNotFound(t *testing.T) {
	rr := httptest.NewRecorder()
	Chain(nil).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/nothing?x=1", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Not Found - /nothing?x=1\n", rr.Body.String())
}
