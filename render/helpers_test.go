// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"image/color"
	"testing"

	"github.com/gogpu/gui"
	"github.com/gogpu/gui/shape"
)

func newTestEnv(t *testing.T) *gui.Env {
	t.Helper()
	env := gui.NewEnv(gui.WithName(t.Name()))
	if err := env.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { _ = env.Release() })
	return env
}

func newTestEngine(t *testing.T, w, h int, opts ...EngineOption) (*gui.Env, *SoftwareEngine) {
	t.Helper()
	env := newTestEnv(t)
	e, err := NewSoftwareEngine(env, w, h, opts...)
	if err != nil {
		t.Fatalf("NewSoftwareEngine failed: %v", err)
	}
	t.Cleanup(func() { _ = e.Close() })
	return env, e
}

// rect creates a rectangle with the given area and fill.
func rect(t *testing.T, env *gui.Env, area gui.Rect, bg gui.RGBA, z int) *shape.Shape {
	t.Helper()
	s := shape.NewRectangle(env)
	if err := s.Update(func(a *shape.Attributes) {
		a.Area = area
		a.Background = bg
		a.ZIndex = z
	}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	return s
}

// add registers shapes with the engine.
func add(t *testing.T, e *SoftwareEngine, shapes ...*shape.Shape) {
	t.Helper()
	for _, s := range shapes {
		if err := e.Add(s); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}
}

// frame renders one frame submitting shapes resolved at the origin.
func frame(t *testing.T, e *SoftwareEngine, bg gui.RGBA, shapes ...*shape.Shape) {
	t.Helper()
	if err := e.InitializeFrame(bg); err != nil {
		t.Fatalf("InitializeFrame failed: %v", err)
	}
	for _, s := range shapes {
		s.Resolve(gui.Point{}, gui.Unbounded(), 1)
		if err := e.Submit(s); err != nil {
			t.Fatalf("Submit %v failed: %v", s, err)
		}
	}
	if err := e.FinalizeFrame(); err != nil {
		t.Fatalf("FinalizeFrame failed: %v", err)
	}
}

func pixel(e *SoftwareEngine, x, y int) color.RGBA {
	return e.Target().Image().RGBAAt(x, y)
}

var (
	white = color.RGBA{0xff, 0xff, 0xff, 0xff}
	red   = color.RGBA{0xff, 0, 0, 0xff}
	blue  = color.RGBA{0, 0, 0xff, 0xff}
	black = color.RGBA{0, 0, 0, 0xff}
)
