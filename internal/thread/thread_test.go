package thread

import (
	"runtime"
	"testing"
)

func TestIDStableOnLockedThread(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	first := ID()
	if first == 0 {
		t.Fatal("expected non-zero thread id")
	}
	for i := 0; i < 10; i++ {
		runtime.Gosched()
		if got := ID(); got != first {
			t.Fatalf("expected id %d to be stable, got %d", first, got)
		}
	}
}

func TestIDDiffersAcrossLockedThreads(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	mine := ID()

	other := make(chan uint64)
	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		other <- ID()
	}()

	if got := <-other; got == mine {
		t.Errorf("expected a different id on another locked thread, both were %d", mine)
	}
}
