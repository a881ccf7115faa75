// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package app

// Msg* constants are the human-readable lines the application prints to
// stdout and stderr. Keeping them in one place keeps the wording stable for
// scripts that scrape the startup output.
const (
	// MsgRunningAs announces the active environment.
	MsgRunningAs = "Running as %s\n"

	// MsgServerRunning announces the bound listen address.
	MsgServerRunning = "Server running on [%s]:%d\n"

	// MsgUsageHint follows a command-line error.
	MsgUsageHint = "Run 'coserv --help' for usage."

	// MsgStartupFailed prefixes fatal startup errors.
	MsgStartupFailed = "Error: %v\n"

	// MsgUnscopedEnvironment is logged when neither the built-in defaults
	// nor the user configuration define the active environment.
	MsgUnscopedEnvironment = "no configuration defined for this environment, using base defaults"
)
