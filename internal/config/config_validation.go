// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"regexp"
	"slices"
)

// LoggingFormats lists the accepted access log format identifiers.
var LoggingFormats = []string{"dev", "combined", "common", "short", "tiny", "json"}

// validate checks that the effective [Config] can be used at startup.
//
// Returns nil if the configuration is valid, or an error wrapping one of the
// ErrInvalid* sentinels otherwise.
func (cfg *Config) validate() error {
	if cfg.Port < 0 || cfg.Port > 65535 {
		return fmt.Errorf("%w: %d", ErrInvalidPort, cfg.Port)
	}

	if cfg.Logging != "" && !slices.Contains(LoggingFormats, cfg.Logging) {
		return fmt.Errorf("%w: %q", ErrInvalidLoggingFormat, cfg.Logging)
	}

	if cfg.Static.Path == "" || cfg.Static.Index == "" {
		return ErrInvalidStaticConfigs
	}

	if cfg.API != nil && cfg.API.BodyLimit <= 0 {
		return ErrInvalidAPIConfigs
	}

	if lr := cfg.LiveReload; lr != nil {
		if len(lr.Watch) == 0 || lr.Options.Delay < 0 {
			return ErrInvalidLiveReloadConfigs
		}
		for _, pattern := range lr.Options.Exclusions {
			if _, err := regexp.Compile(pattern); err != nil {
				return fmt.Errorf("%w: exclusion %q: %w", ErrInvalidLiveReloadConfigs, pattern, err)
			}
		}
	}

	return nil
}
