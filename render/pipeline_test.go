// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"image/color"
	"testing"

	"github.com/gogpu/gui"
	"github.com/gogpu/gui/canvas"
)

func TestElementPipeline(t *testing.T) {
	env, e := newTestEngine(t, 40, 40)
	inv := canvas.NewInvalidator(env)
	driver := canvas.NewFrameDriver(env, inv, e, canvas.WithBackground(gui.White))

	el, err := canvas.NewElement(env, inv, "panel", canvas.WithOrigin(gui.Pt(10, 10)), canvas.WithEngine(e))
	if err != nil {
		t.Fatalf("NewElement failed: %v", err)
	}
	s := rect(t, env, gui.R(0, 0, 10, 10), gui.Red, 0)
	if err := el.AddShape(s); err != nil {
		t.Fatalf("AddShape failed: %v", err)
	}

	render := func() canvas.FrameStats {
		t.Helper()
		stats, err := driver.RenderFrame()
		if err != nil {
			t.Fatalf("RenderFrame failed: %v", err)
		}
		return stats
	}

	if stats := render(); stats.Repainted != 1 {
		t.Errorf("expected the element repainted, got %+v", stats)
	}
	if got := pixel(e, 15, 15); got != red {
		t.Errorf("expected shape at the element origin, got %v", got)
	}

	if err := el.SetOrigin(gui.Pt(20, 20)); err != nil {
		t.Fatalf("SetOrigin failed: %v", err)
	}
	render()
	if pixel(e, 15, 15) != white || pixel(e, 25, 25) != red {
		t.Error("expected the shape moved with its element")
	}

	if err := el.OpacityProperty().Set(0.5); err != nil {
		t.Fatalf("Set opacity failed: %v", err)
	}
	render()
	if got := pixel(e, 25, 25); got != (color.RGBA{0xff, 0x80, 0x80, 0xff}) {
		t.Errorf("expected half-transparent red over white, got %v", got)
	}
	if len(e.TransparentSet()) != 1 {
		t.Error("expected the faded shape reclassified as transparent")
	}

	if stats := render(); stats.Repainted != 0 {
		t.Errorf("expected nothing to repaint, got %+v", stats)
	}
	if got := pixel(e, 25, 25); got == white {
		t.Error("expected the retained shape drawn without repaint")
	}

	if err := el.Dispose(); err != nil {
		t.Fatalf("Dispose failed: %v", err)
	}
	render()
	if got := pixel(e, 25, 25); got != white {
		t.Errorf("expected a disposed element's shapes gone, got %v", got)
	}
	if e.RetainedCount() != 0 {
		t.Errorf("expected an empty retained set, got %d", e.RetainedCount())
	}
}
