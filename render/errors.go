// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"

	"github.com/gogpu/varlet/backend"
)

var (
	// ErrNoBackend is returned by Renderer.Init when no backend was supplied.
	ErrNoBackend = errors.New("render: no backend")

	// ErrNotInitialized is returned by frame operations before Renderer.Init.
	ErrNotInitialized = errors.New("render: renderer not initialized")

	// ErrTargetBound is returned when binding while another target is
	// bound, or when resizing or destroying a bound target.
	ErrTargetBound = errors.New("render: a render target is already bound")

	// ErrTargetNotBound is returned by UnBind for a target that is not bound.
	ErrTargetNotBound = errors.New("render: render target is not bound")

	// ErrDestroyed is returned by operations on a destroyed resource.
	ErrDestroyed = errors.New("render: resource destroyed")

	// ErrNoReadback is returned when reading from a target created without
	// the copy-source usage.
	ErrNoReadback = errors.New("render: target does not allow read-back")

	// ErrSelectionDisabled is returned by Pick when the selection pass is off
	// or has not rendered yet.
	ErrSelectionDisabled = errors.New("render: selection pass disabled")

	// ErrInvalidDimensions aliases the backend error for non-positive sizes.
	ErrInvalidDimensions = backend.ErrInvalidDimensions

	// ErrOutOfBounds aliases the backend error for read-back outside a target.
	ErrOutOfBounds = backend.ErrOutOfBounds
)
