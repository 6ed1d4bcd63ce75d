// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

import (
	"errors"
	"testing"

	"github.com/gogpu/gui"
	"github.com/gogpu/gui/property"
	"github.com/gogpu/gui/shape"
)

func TestNewElementQueuesFirstPaint(t *testing.T) {
	env := newTestEnv(t)
	inv := NewInvalidator(env)

	el, err := NewElement(env, inv, "button", WithOrigin(gui.Pt(5, 5)))
	if err != nil {
		t.Fatalf("NewElement failed: %v", err)
	}
	if !inv.Queued(el) {
		t.Error("expected element queued after creation")
	}
	if el.Origin() != gui.Pt(5, 5) {
		t.Errorf("expected origin (5,5), got %v", el.Origin())
	}
	if el.Opacity() != 1 {
		t.Errorf("expected opacity 1, got %v", el.Opacity())
	}
}

func TestOwnedPropertyInvalidatesElement(t *testing.T) {
	env := newTestEnv(t)
	inv := NewInvalidator(env)
	eng := newFakeEngine()
	el, _ := NewElement(env, inv, "label", WithEngine(eng))

	bg := shape.NewRectangle(env)
	_ = el.AddShape(bg)
	_ = el.Render(gui.Unbounded())
	_, _ = inv.DrainAndSwap()

	text := property.New(env, "Text", "", property.WithOwner(el))
	if err := text.Set("hello"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if !inv.Queued(el) {
		t.Error("expected property change to queue the element")
	}
	if !el.Canvas().Invalidated(bg) {
		t.Error("expected property change to invalidate the shapes")
	}
	if text.Name() != "label.Text" {
		t.Errorf("expected owner-qualified name, got %q", text.Name())
	}
}

func TestRenderCallbackDoesNotRequeueItself(t *testing.T) {
	env := newTestEnv(t)
	inv := NewInvalidator(env)
	eng := newFakeEngine()

	fill := shape.NewRectangle(env)
	calls := 0
	el, _ := NewElement(env, inv, "box",
		WithEngine(eng),
		WithOnRender(func(e *Element) error {
			calls++
			return fill.SetArea(gui.R(0, 0, float64(calls), 1))
		}))
	_ = el.AddShape(fill)
	_, _ = inv.DrainAndSwap()

	if err := el.Render(gui.Unbounded()); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected callback once, got %d", calls)
	}
	if inv.Queued(el) {
		t.Error("expected callback mutations not to requeue the element")
	}
	if el.Canvas().Invalidated(fill) {
		t.Error("expected mutated shape submitted in the same render")
	}
	if got := fill.Resolved().Area.W; got != 1 {
		t.Errorf("expected resolved width 1, got %v", got)
	}
}

func TestOpacityAppliedToShapes(t *testing.T) {
	env := newTestEnv(t)
	inv := NewInvalidator(env)
	eng := newFakeEngine()
	el, _ := NewElement(env, inv, "panel", WithEngine(eng), WithOpacity(0.25))

	s := shape.NewRectangle(env)
	_ = s.SetBackground(gui.Green)
	_ = el.AddShape(s)
	_ = el.Render(gui.Unbounded())
	if a := s.Resolved().Background.A; a != 0.25 {
		t.Errorf("expected alpha 0.25, got %v", a)
	}

	if err := el.OpacityProperty().Set(1); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if !el.Canvas().Invalidated(s) {
		t.Fatal("expected opacity change to invalidate shapes")
	}
	_ = el.Render(gui.Unbounded())
	if a := s.Resolved().Background.A; a != 1 {
		t.Errorf("expected alpha 1, got %v", a)
	}
}

func TestSetOriginResubmits(t *testing.T) {
	env := newTestEnv(t)
	inv := NewInvalidator(env)
	eng := newFakeEngine()
	el, _ := NewElement(env, inv, "moving", WithEngine(eng))
	s := shape.NewCircle(env)
	_ = s.SetArea(gui.R(1, 1, 2, 2))
	_ = el.AddShape(s)
	_ = el.Render(gui.Unbounded())

	if err := el.SetOrigin(gui.Pt(100, 0)); err != nil {
		t.Fatalf("SetOrigin failed: %v", err)
	}
	_ = el.Render(gui.Unbounded())
	if got := s.Resolved().Area; got != gui.R(101, 1, 2, 2) {
		t.Errorf("expected moved area, got %v", got)
	}
}

func TestRenderCallbackErrorStillSubmits(t *testing.T) {
	env := newTestEnv(t)
	inv := NewInvalidator(env)
	eng := newFakeEngine()
	boom := errors.New("boom")
	el, _ := NewElement(env, inv, "broken", WithEngine(eng),
		WithOnRender(func(*Element) error { return boom }))
	s := shape.NewRectangle(env)
	_ = el.AddShape(s)

	err := el.Render(gui.Unbounded())
	if !errors.Is(err, boom) {
		t.Errorf("expected callback error, got %v", err)
	}
	if el.Canvas().Invalidated(s) {
		t.Error("expected shapes submitted despite the callback error")
	}
}

func TestElementDispose(t *testing.T) {
	env := newTestEnv(t)
	inv := NewInvalidator(env)
	eng := newFakeEngine()
	el, _ := NewElement(env, inv, "gone", WithEngine(eng))
	s := shape.NewRectangle(env)
	_ = el.AddShape(s)
	_, _ = inv.DrainAndSwap()

	if err := el.Dispose(); err != nil {
		t.Fatalf("Dispose failed: %v", err)
	}
	if err := el.Dispose(); err != nil {
		t.Errorf("expected second Dispose to be a no-op, got %v", err)
	}
	if len(eng.added) != 0 {
		t.Error("expected shapes removed from engine")
	}
	if s.Owner() != nil {
		t.Error("expected shape detached")
	}
	el.Invalidate()
	if inv.Queued(el) {
		t.Error("expected disposed element to stay out of the invalidator")
	}
	if err := el.Render(gui.Unbounded()); !errors.Is(err, ErrDisposed) {
		t.Errorf("expected ErrDisposed, got %v", err)
	}
	if err := el.AddShape(s); !errors.Is(err, ErrDisposed) {
		t.Errorf("expected ErrDisposed, got %v", err)
	}
}
