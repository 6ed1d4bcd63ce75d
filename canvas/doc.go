// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package canvas tracks which shapes need their engine-facing state
// recomputed and drives the per-frame repaint.
//
// A [Canvas] owns the shapes of one UI element. Mutating a shape marks it
// invalidated and signals the owner, which registers itself with an
// [Invalidator]. Once per frame a [FrameDriver] drains the invalidator and
// renders each registered element:
//
//	driver := canvas.NewFrameDriver(env, inv, engine)
//	for running {
//		waitForEvents()
//		stats, err := driver.RenderFrame()
//		...
//	}
//
// Registrations raised while a drained batch is being rendered go to the
// other buffer of the invalidator and are picked up by the next frame.
//
// All types in this package are confined to the UI thread of their Env.
package canvas
