package gui

import (
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/gogpu/gui/internal/thread"
)

// EnvOption configures an Env during creation.
type EnvOption func(*envOptions)

type envOptions struct {
	name string
}

func defaultEnvOptions() envOptions {
	return envOptions{name: "gui"}
}

// WithName sets the name the Env uses in log records.
// Applications with one Env per window typically use the window title.
func WithName(name string) EnvOption {
	return func(o *envOptions) {
		o.name = name
	}
}

// Env is the explicit handle for process-level UI state. It replaces global
// initialization flags: the application entry point creates one Env, calls
// Init on the goroutine that will run the UI, and threads the Env through
// every constructor in the property, canvas and render packages.
//
// The zero value is not usable; create Envs with NewEnv.
type Env struct {
	name     string
	uiThread atomic.Uint64
}

// NewEnv creates an uninitialized Env.
func NewEnv(opts ...EnvOption) *Env {
	o := defaultEnvOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Env{name: o.name}
}

// Name returns the name given with WithName.
func (e *Env) Name() string {
	return e.name
}

// Init locks the calling goroutine to its OS thread and records that thread
// as the UI thread.
//
// Init is idempotent: calling it again from the UI thread is a no-op.
// Calling it from any other thread after a successful Init fails with a
// *ThreadError.
func (e *Env) Init() error {
	if want := e.uiThread.Load(); want != 0 {
		if got := thread.ID(); got != want {
			return &ThreadError{Op: "Env.Init", Want: want, Got: got}
		}
		return nil
	}

	runtime.LockOSThread()
	id := thread.ID()
	if !e.uiThread.CompareAndSwap(0, id) {
		runtime.UnlockOSThread()
		return &ThreadError{Op: "Env.Init", Want: e.uiThread.Load(), Got: id}
	}

	Logger().Info("gui: environment initialized", "env", e.name, "thread", id)
	return nil
}

// Release undoes Init. It must run on the UI thread. After Release the Env
// may be initialized again, possibly on another goroutine.
func (e *Env) Release() error {
	if err := e.Check("Env.Release"); err != nil {
		return err
	}
	e.uiThread.Store(0)
	runtime.UnlockOSThread()
	return nil
}

// Initialized reports whether Init has succeeded and Release has not been
// called since.
func (e *Env) Initialized() bool {
	return e.uiThread.Load() != 0
}

// OnUIThread reports whether the caller runs on the UI thread.
func (e *Env) OnUIThread() bool {
	want := e.uiThread.Load()
	return want != 0 && thread.ID() == want
}

// Check fails with a *ThreadError naming op when the caller is not on the
// UI thread, or when the Env has not been initialized.
func (e *Env) Check(op string) error {
	want := e.uiThread.Load()
	if want == 0 {
		return &ThreadError{Op: op}
	}
	if got := thread.ID(); got != want {
		return &ThreadError{Op: op, Want: want, Got: got}
	}
	return nil
}

func (e *Env) String() string {
	return fmt.Sprintf("Env(%s)", e.name)
}
