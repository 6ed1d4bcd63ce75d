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

// Engine is the part of a render engine a canvas talks to.
// render.Engine satisfies it.
type Engine interface {
	Add(s *shape.Shape) error
	Remove(s *shape.Shape) error
	Submit(s *shape.Shape) error
}

// Owner is the UI element a canvas belongs to.
type Owner interface {
	Name() string

	// Origin is the absolute position shape areas are relative to.
	Origin() gui.Point

	// Opacity in [0, 1] multiplies every resolved color.
	Opacity() float64

	// ShapeInvalidated is called whenever a shape of the canvas becomes
	// invalidated.
	ShapeInvalidated()
}

// Canvas owns the shapes of one UI element and the set of those shapes
// whose engine-facing state is stale.
type Canvas struct {
	env    *gui.Env
	owner  Owner
	engine Engine

	shapes      []*shape.Shape
	subs        map[*shape.Shape]*property.Subscription
	invalidated map[*shape.Shape]struct{}
}

// New creates an empty canvas. owner may be nil for a free-standing canvas;
// its shapes are then drawn at the origin with full opacity.
func New(env *gui.Env, owner Owner) *Canvas {
	return &Canvas{
		env:         env,
		owner:       owner,
		subs:        make(map[*shape.Shape]*property.Subscription),
		invalidated: make(map[*shape.Shape]struct{}),
	}
}

// Name returns the owner's name, or "canvas" without owner.
func (c *Canvas) Name() string {
	if c.owner == nil {
		return "canvas"
	}
	return c.owner.Name()
}

// AddShape attaches s to the canvas, registers it with the engine if one is
// attached and marks it invalidated for its first paint.
//
// A shape that belongs to another canvas must be removed from it first;
// otherwise AddShape fails with an error wrapping shape.ErrAttached.
// Adding a shape twice is a no-op.
func (c *Canvas) AddShape(s *shape.Shape) error {
	if err := c.env.Check("Canvas.AddShape"); err != nil {
		return fmt.Errorf("canvas %s: %w", c.Name(), err)
	}
	if c.has(s) {
		return nil
	}
	if err := s.Attach(c); err != nil {
		return fmt.Errorf("canvas %s: add %v: %w", c.Name(), s, err)
	}
	if c.engine != nil {
		if err := c.engine.Add(s); err != nil {
			s.Detach(c)
			return fmt.Errorf("canvas %s: add %v: %w", c.Name(), s, err)
		}
	}

	c.shapes = append(c.shapes, s)
	c.subs[s] = s.Changed().Subscribe(func(shape.Attr) {
		c.invalidate(s)
	})
	c.invalidate(s)
	return nil
}

// RemoveShape unregisters s from the engine, forgets its invalidation and
// detaches it, after which it may be added to another canvas.
func (c *Canvas) RemoveShape(s *shape.Shape) error {
	if err := c.env.Check("Canvas.RemoveShape"); err != nil {
		return fmt.Errorf("canvas %s: %w", c.Name(), err)
	}
	i := c.index(s)
	if i < 0 {
		return fmt.Errorf("canvas %s: remove %v: %w", c.Name(), s, ErrForeignShape)
	}

	var err error
	if c.engine != nil {
		err = c.engine.Remove(s)
	}
	c.shapes = append(c.shapes[:i], c.shapes[i+1:]...)
	c.subs[s].Dispose()
	delete(c.subs, s)
	delete(c.invalidated, s)
	s.Detach(c)

	if err != nil {
		return fmt.Errorf("canvas %s: remove %v: %w", c.Name(), s, err)
	}
	return nil
}

// Invalidate marks s as needing its engine-facing state recomputed.
func (c *Canvas) Invalidate(s *shape.Shape) error {
	if err := c.env.Check("Canvas.Invalidate"); err != nil {
		return fmt.Errorf("canvas %s: %w", c.Name(), err)
	}
	if !c.has(s) {
		return fmt.Errorf("canvas %s: invalidate %v: %w", c.Name(), s, ErrForeignShape)
	}
	c.invalidate(s)
	return nil
}

// InvalidateAll marks every shape as invalidated.
func (c *Canvas) InvalidateAll() error {
	if err := c.env.Check("Canvas.InvalidateAll"); err != nil {
		return fmt.Errorf("canvas %s: %w", c.Name(), err)
	}
	for _, s := range c.shapes {
		c.invalidated[s] = struct{}{}
	}
	if len(c.shapes) > 0 {
		c.signal()
	}
	return nil
}

// Render resolves and submits every invalidated shape, in insertion order.
// clip is the ambient clip in absolute coordinates.
//
// A shape leaves the invalidated set only after the engine accepted it. A
// rejected shape stays invalidated, and the remaining shapes are still
// submitted; all failures are joined into the returned error.
func (c *Canvas) Render(clip gui.Rect) error {
	if err := c.env.Check("Canvas.Render"); err != nil {
		return fmt.Errorf("canvas %s: %w", c.Name(), err)
	}
	if len(c.invalidated) == 0 {
		return nil
	}
	if c.engine == nil {
		return fmt.Errorf("canvas %s: %w", c.Name(), ErrNoEngine)
	}

	origin, opacity := gui.Point{}, 1.0
	if c.owner != nil {
		origin, opacity = c.owner.Origin(), c.owner.Opacity()
	}

	pending := make([]*shape.Shape, 0, len(c.invalidated))
	for _, s := range c.shapes {
		if _, ok := c.invalidated[s]; ok {
			pending = append(pending, s)
		}
	}

	var errs []error
	for _, s := range pending {
		s.Resolve(origin, clip, opacity)
		if err := c.engine.Submit(s); err != nil {
			errs = append(errs, fmt.Errorf("canvas %s: submit %v: %w", c.Name(), s, err))
			continue
		}
		delete(c.invalidated, s)
	}
	return errors.Join(errs...)
}

// AttachEngine registers every shape with e and invalidates them all.
// A previously attached engine is detached first.
func (c *Canvas) AttachEngine(e Engine) error {
	if err := c.env.Check("Canvas.AttachEngine"); err != nil {
		return fmt.Errorf("canvas %s: %w", c.Name(), err)
	}
	if c.engine == e {
		return nil
	}
	var errs []error
	if c.engine != nil {
		errs = append(errs, c.detachEngine())
	}
	c.engine = e
	for _, s := range c.shapes {
		if err := e.Add(s); err != nil {
			errs = append(errs, fmt.Errorf("canvas %s: add %v: %w", c.Name(), s, err))
		}
		c.invalidated[s] = struct{}{}
	}
	if len(c.shapes) > 0 {
		c.signal()
	}
	return errors.Join(errs...)
}

// DetachEngine unregisters every shape from the attached engine.
func (c *Canvas) DetachEngine() error {
	if err := c.env.Check("Canvas.DetachEngine"); err != nil {
		return fmt.Errorf("canvas %s: %w", c.Name(), err)
	}
	return c.detachEngine()
}

func (c *Canvas) detachEngine() error {
	if c.engine == nil {
		return nil
	}
	var errs []error
	for _, s := range c.shapes {
		if err := c.engine.Remove(s); err != nil {
			errs = append(errs, fmt.Errorf("canvas %s: remove %v: %w", c.Name(), s, err))
		}
	}
	c.engine = nil
	return errors.Join(errs...)
}

// Engine returns the attached engine, or nil.
func (c *Canvas) Engine() Engine { return c.engine }

// Shapes returns the shapes in insertion order.
func (c *Canvas) Shapes() []*shape.Shape {
	return append([]*shape.Shape(nil), c.shapes...)
}

// Invalidated reports whether s is waiting to be submitted.
func (c *Canvas) Invalidated(s *shape.Shape) bool {
	_, ok := c.invalidated[s]
	return ok
}

// InvalidatedCount returns the number of shapes waiting to be submitted.
func (c *Canvas) InvalidatedCount() int { return len(c.invalidated) }

func (c *Canvas) invalidate(s *shape.Shape) {
	c.invalidated[s] = struct{}{}
	c.signal()
}

func (c *Canvas) signal() {
	if c.owner != nil {
		c.owner.ShapeInvalidated()
	}
}

func (c *Canvas) has(s *shape.Shape) bool {
	_, ok := c.subs[s]
	return ok
}

func (c *Canvas) index(s *shape.Shape) int {
	for i, x := range c.shapes {
		if x == s {
			return i
		}
	}
	return -1
}
