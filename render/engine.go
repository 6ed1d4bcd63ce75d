// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/gui"
	"github.com/gogpu/gui/shape"
)

// Engine is the contract between the canvas pipeline and a rasterizer.
//
// The engine retains every added shape and redraws the whole retained set
// each frame. Submit only refreshes the engine's copy of a shape's
// resolved state; it does not control which shapes are drawn.
//
// A frame is InitializeFrame, any number of Add, Remove and Submit calls,
// then FinalizeFrame. Every method must be called on the UI thread.
type Engine interface {
	CreateTexture(img Image, interpolate bool) (gui.TextureID, error)
	DeleteTexture(id gui.TextureID) error

	Add(s *shape.Shape) error
	Remove(s *shape.Shape) error
	Submit(s *shape.Shape) error

	InitializeFrame(background gui.RGBA) error
	FinalizeFrame() error

	ComputeTextSize(text string, font gui.Font) (gui.Size, error)
	ComputeTextMaximumHeight(font gui.Font) (float64, error)
}

// Phase is the frame lifecycle state of an engine.
type Phase uint8

const (
	// PhaseIdle is between frames.
	PhaseIdle Phase = iota

	// PhaseFrame is between InitializeFrame and FinalizeFrame.
	PhaseFrame

	// PhaseClosed is terminal.
	PhaseClosed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseFrame:
		return "frame"
	case PhaseClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// DepthFormat is the depth buffer format the passes are described with.
const DepthFormat = gputypes.TextureFormatDepth32Float

// PassState describes the fixed-function state of one draw pass in
// WebGPU terms, so a GPU backend can build matching pipelines.
type PassState struct {
	Name         string
	DepthStencil gputypes.DepthStencilState
	Blend        gputypes.BlendState
}

// DepthState returns the opaque and transparent pass descriptions.
//
// Both passes test with less against a buffer cleared to shape.ClearDepth.
// Only the opaque pass writes depth; the transparent pass blends
// source-over and is drawn back to front.
func DepthState() (opaque, transparent PassState) {
	opaque = PassState{
		Name:         "opaque",
		DepthStencil: gputypes.DefaultDepthStencilState(DepthFormat),
		Blend:        gputypes.BlendStateReplace(),
	}
	transparent = PassState{
		Name:         "transparent",
		DepthStencil: gputypes.DefaultDepthStencilState(DepthFormat),
		Blend:        gputypes.BlendStateAlpha(),
	}
	transparent.DepthStencil.DepthWriteEnabled = false
	return opaque, transparent
}

// FrameStats describes the last finalized frame.
type FrameStats struct {
	// Submitted is the number of Submit calls accepted during the frame.
	Submitted int

	// Opaque and Transparent count the shapes drawn by each pass.
	Opaque      int
	Transparent int

	// Skipped counts retained shapes that were not drawn: hidden, fully
	// clipped or never submitted.
	Skipped int

	// Sorted reports whether the transparent set was re-sorted.
	Sorted bool
}
