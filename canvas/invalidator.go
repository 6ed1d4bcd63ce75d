// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

import (
	"fmt"
	"slices"

	"github.com/gogpu/gui"
)

// Repainter is an element that can bring its shapes up to date with the
// engine. *Element implements it.
type Repainter interface {
	Name() string
	Render(clip gui.Rect) error
}

// Invalidator collects the elements that need repainting.
//
// It is double buffered. DrainAndSwap hands out the current batch and
// redirects Register to the other, emptied buffer, so elements registered
// while a batch is being rendered end up in the next batch and never in
// the one being iterated.
type Invalidator struct {
	env *gui.Env

	buffers [2][]Repainter
	seen    [2]map[Repainter]struct{}
	current int
}

// NewInvalidator creates an empty invalidator.
func NewInvalidator(env *gui.Env) *Invalidator {
	return &Invalidator{
		env: env,
		seen: [2]map[Repainter]struct{}{
			make(map[Repainter]struct{}),
			make(map[Repainter]struct{}),
		},
	}
}

// Register queues r for the next drain. Registering an element that is
// already queued is a no-op; the batch keeps first-registration order.
func (inv *Invalidator) Register(r Repainter) error {
	if err := inv.env.Check("Invalidator.Register"); err != nil {
		return fmt.Errorf("invalidator: %w", err)
	}
	seen := inv.seen[inv.current]
	if _, ok := seen[r]; ok {
		return nil
	}
	seen[r] = struct{}{}
	inv.buffers[inv.current] = append(inv.buffers[inv.current], r)
	return nil
}

// Unregister drops r from the pending batch. The batch being rendered, if
// any, is left alone.
func (inv *Invalidator) Unregister(r Repainter) error {
	if err := inv.env.Check("Invalidator.Unregister"); err != nil {
		return fmt.Errorf("invalidator: %w", err)
	}
	seen := inv.seen[inv.current]
	if _, ok := seen[r]; !ok {
		return nil
	}
	delete(seen, r)
	inv.buffers[inv.current] = slices.DeleteFunc(inv.buffers[inv.current], func(q Repainter) bool { return q == r })
	return nil
}

// DrainAndSwap returns the queued elements and makes the other buffer
// current. The returned slice stays valid until the next DrainAndSwap.
// It is called exactly once per frame.
func (inv *Invalidator) DrainAndSwap() ([]Repainter, error) {
	if err := inv.env.Check("Invalidator.DrainAndSwap"); err != nil {
		return nil, fmt.Errorf("invalidator: %w", err)
	}
	batch := inv.buffers[inv.current]

	next := 1 - inv.current
	clear(inv.buffers[next])
	inv.buffers[next] = inv.buffers[next][:0]
	clear(inv.seen[next])
	inv.current = next

	return batch, nil
}

// Pending returns the number of elements queued for the next drain.
func (inv *Invalidator) Pending() int {
	return len(inv.buffers[inv.current])
}

// Queued reports whether r is queued for the next drain.
func (inv *Invalidator) Queued(r Repainter) bool {
	_, ok := inv.seen[inv.current][r]
	return ok
}

// Reset drops everything queued in both buffers.
func (inv *Invalidator) Reset() error {
	if err := inv.env.Check("Invalidator.Reset"); err != nil {
		return fmt.Errorf("invalidator: %w", err)
	}
	for i := range inv.buffers {
		clear(inv.buffers[i])
		inv.buffers[i] = inv.buffers[i][:0]
		clear(inv.seen[i])
	}
	return nil
}
