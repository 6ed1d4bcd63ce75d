package property

import (
	"testing"

	"github.com/gogpu/gui"
)

// newTestEnv pins the test goroutine as the UI thread.
func newTestEnv(t *testing.T) *gui.Env {
	t.Helper()
	env := gui.NewEnv(gui.WithName(t.Name()))
	if err := env.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { _ = env.Release() })
	return env
}

// offThread runs fn on another goroutine and waits for it. The UI
// goroutine is locked to its thread, so fn never shares it.
func offThread(fn func()) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
	}()
	<-done
}

// fakeOwner records invalidations.
type fakeOwner struct {
	name        string
	invalidated int
}

func (o *fakeOwner) Name() string { return o.name }
func (o *fakeOwner) Invalidate()  { o.invalidated++ }

// mustGet reads p and fails the test on error.
func mustGet[T any](t *testing.T, p *Property[T]) T {
	t.Helper()
	v, err := p.Get()
	if err != nil {
		t.Fatalf("Get(%s) failed: %v", p.Name(), err)
	}
	return v
}

// mustSet writes p and fails the test on error.
func mustSet[T any](t *testing.T, p *Property[T], v T) {
	t.Helper()
	if err := p.Set(v); err != nil {
		t.Fatalf("Set(%s) failed: %v", p.Name(), err)
	}
}
