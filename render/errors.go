// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import "errors"

var (
	// ErrNotRetained is returned by Submit for a shape that was never added.
	ErrNotRetained = errors.New("render: shape is not in the retained set")

	// ErrNilShape is returned for a nil shape.
	ErrNilShape = errors.New("render: nil shape")

	// ErrNoFrame is returned by Present before the first finalized frame.
	ErrNoFrame = errors.New("render: no finalized frame to present")

	// ErrInvalidDrawContext is returned by Present for a nil draw context or
	// one without a texture creator.
	ErrInvalidDrawContext = errors.New("render: draw context cannot create textures")
)
