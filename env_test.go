package gui

import (
	"errors"
	"strings"
	"testing"
)

// offThread runs fn on a fresh goroutine, which never shares the OS thread
// locked by Env.Init.
func offThread(fn func()) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
	}()
	<-done
}

func TestEnvLifecycle(t *testing.T) {
	env := NewEnv(WithName("main"))
	if env.Name() != "main" || env.String() != "Env(main)" {
		t.Errorf("unexpected name %q / %q", env.Name(), env.String())
	}
	if env.Initialized() || env.OnUIThread() {
		t.Error("expected a fresh Env to be uninitialized")
	}

	err := env.Check("Op")
	if !errors.Is(err, ErrNotInitialized) || errors.Is(err, ErrWrongThread) {
		t.Errorf("expected ErrNotInitialized before Init, got %v", err)
	}

	if err := env.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := env.Init(); err != nil {
		t.Errorf("expected a second Init on the UI thread to be a no-op, got %v", err)
	}
	if !env.Initialized() || !env.OnUIThread() {
		t.Error("expected the calling thread to be the UI thread")
	}
	if err := env.Check("Op"); err != nil {
		t.Errorf("expected Check to pass on the UI thread, got %v", err)
	}

	if err := env.Release(); err != nil {
		t.Fatalf("Release failed: %v", err)
	}
	if env.Initialized() {
		t.Error("expected Release to clear the UI thread")
	}
}

func TestEnvCheckOffThread(t *testing.T) {
	env := NewEnv()
	if err := env.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { _ = env.Release() })

	var checkErr, initErr, releaseErr error
	var onUI bool
	offThread(func() {
		checkErr = env.Check("Property(Label.Text).Set")
		initErr = env.Init()
		releaseErr = env.Release()
		onUI = env.OnUIThread()
	})

	var te *ThreadError
	if !errors.As(checkErr, &te) || !errors.Is(checkErr, ErrWrongThread) {
		t.Fatalf("expected *ThreadError wrapping ErrWrongThread, got %v", checkErr)
	}
	if te.Want == 0 || te.Got == te.Want {
		t.Errorf("expected distinct thread ids, got %+v", te)
	}
	if !strings.Contains(te.Error(), "Property(Label.Text).Set") {
		t.Errorf("expected the operation named in %q", te.Error())
	}
	if !errors.Is(initErr, ErrWrongThread) || !errors.Is(releaseErr, ErrWrongThread) {
		t.Errorf("expected Init and Release to fail off thread, got %v / %v", initErr, releaseErr)
	}
	if onUI {
		t.Error("expected OnUIThread false off thread")
	}
	if !env.Initialized() {
		t.Error("expected the Env untouched by off-thread calls")
	}
}

func TestErrorMessages(t *testing.T) {
	pe := &PhaseError{Op: "Submit", Phase: "idle", Want: "frame"}
	if !errors.Is(pe, ErrWrongPhase) || !strings.Contains(pe.Error(), "requires phase frame") {
		t.Errorf("unexpected PhaseError %q", pe.Error())
	}

	re := &ResourceError{Op: "CreateTexture", Resource: "texture", Detail: "2x2", Err: ErrTextureSize}
	if !errors.Is(re, ErrTextureSize) || !strings.HasSuffix(re.Error(), "(2x2)") {
		t.Errorf("unexpected ResourceError %q", re.Error())
	}
}
