// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

import (
	"errors"
	"fmt"
	"time"

	"github.com/gogpu/gui"
)

// FrameEngine is the frame protocol of a render engine on top of Engine.
// render.Engine satisfies it.
type FrameEngine interface {
	Engine
	InitializeFrame(background gui.RGBA) error
	FinalizeFrame() error
}

// DriverOption configures a FrameDriver.
type DriverOption func(*driverOptions)

type driverOptions struct {
	background gui.RGBA
	clip       gui.Rect
}

func defaultDriverOptions() driverOptions {
	return driverOptions{
		background: gui.White,
		clip:       gui.Unbounded(),
	}
}

// WithBackground sets the color every frame is cleared to.
func WithBackground(c gui.RGBA) DriverOption {
	return func(o *driverOptions) {
		o.background = c
	}
}

// WithClip sets the ambient clip passed to every element, typically the
// window bounds.
func WithClip(r gui.Rect) DriverOption {
	return func(o *driverOptions) {
		o.clip = r
	}
}

// FrameStats summarizes one RenderFrame call.
type FrameStats struct {
	// Frame is the 1-based frame counter.
	Frame uint64

	// Repainted is the number of elements rendered without error.
	Repainted int

	// Failed is the number of elements whose render returned an error.
	Failed int

	// Skipped is the number of queued elements disposed before their turn.
	Skipped int

	// Deferred is the number of elements registered during the frame,
	// which wait for the next one.
	Deferred int

	Duration time.Duration
}

// FrameDriver runs the frame protocol:
// InitializeFrame, drain the invalidator, render each element, FinalizeFrame.
type FrameDriver struct {
	env    *gui.Env
	inv    *Invalidator
	engine FrameEngine
	opts   driverOptions
	frame  uint64
}

// NewFrameDriver creates a driver rendering the elements queued in inv
// into engine.
func NewFrameDriver(env *gui.Env, inv *Invalidator, engine FrameEngine, opts ...DriverOption) *FrameDriver {
	o := defaultDriverOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &FrameDriver{env: env, inv: inv, engine: engine, opts: o}
}

// SetBackground changes the clear color of subsequent frames.
func (d *FrameDriver) SetBackground(c gui.RGBA) { d.opts.background = c }

// SetClip changes the ambient clip of subsequent frames.
func (d *FrameDriver) SetClip(r gui.Rect) { d.opts.clip = r }

// RenderFrame renders one frame.
//
// Element failures are isolated: a failing element is logged and skipped,
// the remaining elements are still rendered and the frame is finalized.
// The returned error joins every failure.
func (d *FrameDriver) RenderFrame() (FrameStats, error) {
	if err := d.env.Check("FrameDriver.RenderFrame"); err != nil {
		return FrameStats{}, fmt.Errorf("frame driver: %w", err)
	}
	start := time.Now()
	d.frame++
	stats := FrameStats{Frame: d.frame}

	if err := d.engine.InitializeFrame(d.opts.background); err != nil {
		return stats, fmt.Errorf("frame %d: %w", d.frame, err)
	}

	batch, err := d.inv.DrainAndSwap()
	if err != nil {
		return stats, errors.Join(fmt.Errorf("frame %d: %w", d.frame, err), d.engine.FinalizeFrame())
	}

	var errs []error
	for _, r := range batch {
		if el, ok := r.(interface{ Disposed() bool }); ok && el.Disposed() {
			stats.Skipped++
			continue
		}
		if err := r.Render(d.opts.clip); err != nil {
			stats.Failed++
			gui.Logger().Warn("gui: element render failed",
				"env", d.env.Name(), "frame", d.frame, "element", r.Name(), "err", err)
			errs = append(errs, err)
			continue
		}
		stats.Repainted++
	}

	if err := d.engine.FinalizeFrame(); err != nil {
		errs = append(errs, fmt.Errorf("frame %d: %w", d.frame, err))
	}
	stats.Deferred = d.inv.Pending()
	stats.Duration = time.Since(start)

	gui.Logger().Debug("gui: frame rendered",
		"frame", stats.Frame,
		"repainted", stats.Repainted,
		"failed", stats.Failed,
		"skipped", stats.Skipped,
		"deferred", stats.Deferred,
		"duration", stats.Duration)
	return stats, errors.Join(errs...)
}
