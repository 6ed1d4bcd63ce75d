// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

import "errors"

var (
	// ErrNoEngine is returned by Render when no engine is attached.
	ErrNoEngine = errors.New("canvas: no render engine attached")

	// ErrForeignShape is returned for a shape that is not part of the canvas.
	ErrForeignShape = errors.New("canvas: shape does not belong to this canvas")

	// ErrDisposed is returned by operations on a disposed element.
	ErrDisposed = errors.New("canvas: element disposed")
)
