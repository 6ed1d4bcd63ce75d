// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

import (
	"errors"
	"fmt"

	"github.com/gogpu/gui"
	"github.com/gogpu/gui/property"
	"github.com/gogpu/gui/shape"
)

// ElementOption configures an Element during creation.
type ElementOption func(*elementOptions)

type elementOptions struct {
	origin   gui.Point
	opacity  float64
	onRender func(*Element) error
	engine   Engine
}

func defaultElementOptions() elementOptions {
	return elementOptions{opacity: 1}
}

// WithOrigin sets the initial absolute position of the element.
func WithOrigin(p gui.Point) ElementOption {
	return func(o *elementOptions) {
		o.origin = p
	}
}

// WithOpacity sets the initial opacity.
func WithOpacity(a float64) ElementOption {
	return func(o *elementOptions) {
		o.opacity = a
	}
}

// WithOnRender sets the recompute callback, see Element.OnRender.
func WithOnRender(fn func(*Element) error) ElementOption {
	return func(o *elementOptions) {
		o.onRender = fn
	}
}

// WithEngine attaches the element's canvas to e.
func WithEngine(e Engine) ElementOption {
	return func(o *elementOptions) {
		o.engine = e
	}
}

// Element is the minimal UI element of the toolkit core: a named owner of
// one canvas that registers itself with an Invalidator whenever one of its
// shapes or properties changes. Widgets embed or wrap it.
//
// Element implements property.Owner, so properties created with
// property.WithOwner(el) repaint the element when they change.
type Element struct {
	env    *gui.Env
	name   string
	inv    *Invalidator
	canvas *Canvas

	origin   gui.Point
	opacity  *property.Property[float64]
	onRender func(*Element) error

	rendering bool
	disposed  bool
}

// NewElement creates an element and queues it for its first paint.
func NewElement(env *gui.Env, inv *Invalidator, name string, opts ...ElementOption) (*Element, error) {
	o := defaultElementOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := env.Check("NewElement"); err != nil {
		return nil, fmt.Errorf("element %s: %w", name, err)
	}

	e := &Element{
		env:      env,
		name:     name,
		inv:      inv,
		origin:   o.origin,
		onRender: o.onRender,
	}
	e.canvas = New(env, e)
	e.opacity = property.New(env, "Opacity", o.opacity, property.WithOwner(e))
	if o.engine != nil {
		if err := e.canvas.AttachEngine(o.engine); err != nil {
			return nil, err
		}
	}
	if err := e.register(); err != nil {
		return nil, err
	}
	return e, nil
}

// Name returns the element name.
func (e *Element) Name() string { return e.name }

func (e *Element) String() string { return "element " + e.name }

// Canvas returns the canvas holding the element's shapes.
func (e *Element) Canvas() *Canvas { return e.canvas }

// AddShape adds s to the element's canvas.
func (e *Element) AddShape(s *shape.Shape) error {
	if e.disposed {
		return fmt.Errorf("element %s: %w", e.name, ErrDisposed)
	}
	return e.canvas.AddShape(s)
}

// RemoveShape removes s from the element's canvas.
func (e *Element) RemoveShape(s *shape.Shape) error {
	return e.canvas.RemoveShape(s)
}

// OnRender replaces the callback that recomputes shape attributes from the
// element's properties before its canvas is rendered.
func (e *Element) OnRender(fn func(*Element) error) {
	e.onRender = fn
}

// Origin returns the absolute position of the element.
func (e *Element) Origin() gui.Point { return e.origin }

// SetOrigin moves the element. Every shape is resubmitted.
func (e *Element) SetOrigin(p gui.Point) error {
	if err := e.env.Check("Element.SetOrigin"); err != nil {
		return fmt.Errorf("element %s: %w", e.name, err)
	}
	if p == e.origin {
		return nil
	}
	e.origin = p
	return e.canvas.InvalidateAll()
}

// Opacity returns the current opacity clamped to [0, 1].
func (e *Element) Opacity() float64 {
	a, err := e.opacity.Get()
	if err != nil {
		return 1
	}
	return min(max(a, 0), 1)
}

// OpacityProperty returns the bindable opacity.
func (e *Element) OpacityProperty() *property.Property[float64] { return e.opacity }

// Invalidate marks every shape stale and queues the element. It is called
// by owned properties after a change.
func (e *Element) Invalidate() {
	if e.disposed {
		return
	}
	if err := e.canvas.InvalidateAll(); err != nil {
		gui.Logger().Warn("gui: invalidate failed", "element", e.name, "err", err)
		return
	}
	if len(e.canvas.shapes) == 0 {
		e.ShapeInvalidated()
	}
}

// ShapeInvalidated queues the element with its invalidator. Invalidations
// raised by the element's own render callback are absorbed: the shapes are
// submitted by the render in progress.
func (e *Element) ShapeInvalidated() {
	if e.rendering || e.disposed {
		return
	}
	if err := e.register(); err != nil {
		gui.Logger().Warn("gui: register failed", "element", e.name, "err", err)
	}
}

// Render runs the recompute callback and submits the invalidated shapes.
// When the engine rejects a shape the element queues itself again, so the
// shape is resubmitted in the next frame.
func (e *Element) Render(clip gui.Rect) error {
	if err := e.env.Check("Element.Render"); err != nil {
		return fmt.Errorf("element %s: %w", e.name, err)
	}
	if e.disposed {
		return fmt.Errorf("element %s: %w", e.name, ErrDisposed)
	}

	var errs []error
	if e.onRender != nil {
		e.rendering = true
		err := e.onRender(e)
		e.rendering = false
		if err != nil {
			errs = append(errs, fmt.Errorf("element %s: render callback: %w", e.name, err))
		}
	}
	if err := e.canvas.Render(clip); err != nil {
		errs = append(errs, fmt.Errorf("element %s: %w", e.name, err))
	}
	// Shapes the engine rejected stay invalidated; retry them next frame.
	if e.canvas.engine != nil && e.canvas.InvalidatedCount() > 0 {
		if err := e.register(); err != nil {
			errs = append(errs, fmt.Errorf("element %s: %w", e.name, err))
		}
	}
	return errors.Join(errs...)
}

// Dispose removes every shape from the canvas, withdraws the element from
// its invalidator and stops further registrations. Disposing twice is a
// no-op.
func (e *Element) Dispose() error {
	if err := e.env.Check("Element.Dispose"); err != nil {
		return fmt.Errorf("element %s: %w", e.name, err)
	}
	if e.disposed {
		return nil
	}
	var errs []error
	for _, s := range e.canvas.Shapes() {
		errs = append(errs, e.canvas.RemoveShape(s))
	}
	if e.inv != nil {
		errs = append(errs, e.inv.Unregister(e))
	}
	e.disposed = true
	return errors.Join(errs...)
}

// Disposed reports whether Dispose has been called.
func (e *Element) Disposed() bool { return e.disposed }

func (e *Element) register() error {
	if e.inv == nil {
		return nil
	}
	return e.inv.Register(e)
}
