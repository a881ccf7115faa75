// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
)

// Sentinel errors of the request pipeline. They are mapped to HTTP status
// codes by statusFromError and can be matched with [errors.Is].
var (
	// ErrNotFound is matched by every [RouteNotFoundError].
	ErrNotFound = errors.New("not found")

	// ErrMalformedBody is returned by the body parsers when a request body
	// cannot be decoded according to its content type.
	ErrMalformedBody = errors.New("malformed request body")

	// ErrBodyTooLarge is returned by the body parsers when a request body
	// exceeds the configured limit.
	ErrBodyTooLarge = errors.New("request entity too large")
)

// RouteNotFoundError is produced for a request no behavior answered.
type RouteNotFoundError struct {
	// Path is the original request URL, query included.
	Path string
}

func (e *RouteNotFoundError) Error() string {
	return "Not Found - " + e.Path
}

// Is makes [errors.Is] match [ErrNotFound].
func (e *RouteNotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
