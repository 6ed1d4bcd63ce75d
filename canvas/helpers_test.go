// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

import (
	"errors"
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

func offThread(fn func()) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
	}()
	<-done
}

var errRejected = errors.New("rejected")

// fakeEngine records the calls a canvas or driver makes.
type fakeEngine struct {
	calls     []string
	added     map[*shape.Shape]bool
	submitted []*shape.Shape
	reject    map[*shape.Shape]bool
	failInit  bool
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		added:  make(map[*shape.Shape]bool),
		reject: make(map[*shape.Shape]bool),
	}
}

func (e *fakeEngine) Add(s *shape.Shape) error {
	e.calls = append(e.calls, "add")
	e.added[s] = true
	return nil
}

func (e *fakeEngine) Remove(s *shape.Shape) error {
	e.calls = append(e.calls, "remove")
	delete(e.added, s)
	return nil
}

func (e *fakeEngine) Submit(s *shape.Shape) error {
	e.calls = append(e.calls, "submit")
	if e.reject[s] {
		return errRejected
	}
	e.submitted = append(e.submitted, s)
	return nil
}

func (e *fakeEngine) InitializeFrame(gui.RGBA) error {
	e.calls = append(e.calls, "init")
	if e.failInit {
		return errRejected
	}
	return nil
}

func (e *fakeEngine) FinalizeFrame() error {
	e.calls = append(e.calls, "finalize")
	return nil
}

// fakeOwner is a canvas owner that counts signals.
type fakeOwner struct {
	origin  gui.Point
	opacity float64
	signals int
}

func (o *fakeOwner) Name() string      { return "owner" }
func (o *fakeOwner) Origin() gui.Point { return o.origin }
func (o *fakeOwner) Opacity() float64  { return o.opacity }
func (o *fakeOwner) ShapeInvalidated() { o.signals++ }
