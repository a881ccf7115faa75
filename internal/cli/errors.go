// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"errors"
	"fmt"
)

// ErrTooManyArguments is returned when more than one directory is given.
var ErrTooManyArguments = errors.New("too many arguments: expected at most one directory")

// UnknownOptionError reports an option the parser does not recognize.
type UnknownOptionError struct {
	// Option is the option name without leading dashes.
	Option string
}

func (e *UnknownOptionError) Error() string {
	return fmt.Sprintf("Unknown command line option '%s'", e.Option)
}

// InvalidOptionError reports a recognized option with a missing or
// malformed value.
type InvalidOptionError struct {
	Err error
}

func (e *InvalidOptionError) Error() string {
	return fmt.Sprintf("Invalid command line: %v", e.Err)
}

func (e *InvalidOptionError) Unwrap() error {
	return e.Err
}
