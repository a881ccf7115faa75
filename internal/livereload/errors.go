// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package livereload

import "errors"

var (
	// ErrHandshake is returned when a websocket peer does not open the
	// session with a hello command.
	ErrHandshake = errors.New("livereload handshake failed")

	// ErrInvalidExclusion is returned by [NewWatcher] for an exclusion that
	// is not a valid regular expression.
	ErrInvalidExclusion = errors.New("invalid exclusion pattern")
)
