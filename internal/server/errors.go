// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

var (
	// ErrListen is returned by [NewServer] when the listen address cannot be
	// bound.
	ErrListen = errors.New("error binding listener")
)
