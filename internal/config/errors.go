// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
)

// Validation errors returned by [Config.validate] when the effective
// configuration cannot drive the server.
var (
	// ErrInvalidPort indicates a port outside 0..65535.
	ErrInvalidPort = errors.New("invalid port")
	// ErrInvalidLoggingFormat indicates an unknown access log format.
	ErrInvalidLoggingFormat = errors.New("invalid logging format")
	// ErrInvalidStaticConfigs indicates invalid static serving settings
	// (for example, an empty root path).
	ErrInvalidStaticConfigs = errors.New("invalid static configuration")
	// ErrInvalidLiveReloadConfigs indicates invalid live-reload settings
	// (for example, an empty watch list or a malformed exclusion).
	ErrInvalidLiveReloadConfigs = errors.New("invalid livereload configuration")
	// ErrInvalidAPIConfigs indicates invalid request parser settings.
	ErrInvalidAPIConfigs = errors.New("invalid api configuration")
)

// ErrConfigNotFound is wrapped by [ConfigLoadError] when no config file
// exists in the searched directory.
var ErrConfigNotFound = errors.New("config file not found")

// ConfigLoadError reports a user config source that is missing, unreadable
// or does not contain a configuration mapping. It is fatal at startup.
type ConfigLoadError struct {
	// Path is the file (or directory, when nothing was found) that failed.
	Path string
	Err  error
}

func (e *ConfigLoadError) Error() string {
	return fmt.Sprintf("error loading config %q: %v", e.Path, e.Err)
}

func (e *ConfigLoadError) Unwrap() error {
	return e.Err
}
