// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Environment is the runtime mode selecting which scoped configuration
// applies. Any string is legal; [Development] and [Production] have built-in
// defaults.
type Environment string

const (
	Development Environment = "development"
	Production  Environment = "production"
)

// DefaultEnvironment is used when neither the command line nor the process
// environment selects one.
const DefaultEnvironment = Development

// ProcessEnv holds the settings read from environment variables.
type ProcessEnv struct {
	// Env selects the environment.
	// Env: COSERV_ENV
	Env string `env:"COSERV_ENV"`

	// NodeEnv is honoured when COSERV_ENV is not set so that existing
	// front-end tooling conventions keep working.
	// Env: NODE_ENV
	NodeEnv string `env:"NODE_ENV"`

	// ConfigFile overrides the config file lookup in the working directory.
	// Env: COSERV_CONFIG
	ConfigFile string `env:"COSERV_CONFIG"`
}

// ReadProcessEnv populates a [ProcessEnv] using the caarlos0/env library.
func ReadProcessEnv() (ProcessEnv, error) {
	var pe ProcessEnv
	if err := env.Parse(&pe); err != nil {
		return ProcessEnv{}, fmt.Errorf("error getting env configs: %w", err)
	}
	return pe, nil
}

// Environment picks the active environment: the command-line value wins,
// then COSERV_ENV, then NODE_ENV, then [DefaultEnvironment].
func (pe ProcessEnv) Environment(fromCLI string) Environment {
	for _, candidate := range []string{fromCLI, pe.Env, pe.NodeEnv} {
		if candidate != "" {
			return Environment(candidate)
		}
	}
	return DefaultEnvironment
}
