// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package render defines the render engine contract consumed by the canvas
// pipeline and provides a software implementation of it.
//
// # Frame protocol
//
//	eng.InitializeFrame(background)
//	// Add, Remove and Submit shapes
//	eng.FinalizeFrame()
//
// The engine retains every added shape and redraws the whole retained set
// each frame; Submit only refreshes the engine's copy of a shape.
//
// # Depth and transparency
//
// Every z-index owns two sub-layers (see shape.Layers), so a fill and its
// border never fight over the same depth. Opaque shapes are drawn first
// with depth writes, in any order. Transparent shapes are drawn second,
// sorted back to front, tested against the opaque depth but not writing
// it. DepthState describes both passes in WebGPU terms.
//
// # Text
//
// Text is shaped with HarfBuzz (github.com/go-text/typesetting) for
// measurement and rasterized with golang.org/x/image/font. The Go Regular
// family is always available as gui.DefaultFontFamily.
//
// # GPU hosts
//
// SoftwareEngine.Present uploads a finished frame through a
// gpucontext.TextureDrawer, so the engine can run inside a gogpu window.
package render
