package gui

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by all gui packages.
var (
	// ErrWrongThread is wrapped by every ThreadError.
	ErrWrongThread = errors.New("gui: called off the UI thread")

	// ErrNotInitialized is returned when an Env is used before Init.
	ErrNotInitialized = errors.New("gui: environment not initialized")

	// ErrWrongPhase is wrapped by every PhaseError.
	ErrWrongPhase = errors.New("gui: call outside its frame phase")

	// ErrTextureSize is returned when texture data does not match its dimensions.
	ErrTextureSize = errors.New("gui: texture data length mismatch")

	// ErrTextureFormat is returned for pixel formats the engine cannot sample.
	ErrTextureFormat = errors.New("gui: unsupported texture format")

	// ErrUnknownTexture is returned when a texture id is not registered.
	ErrUnknownTexture = errors.New("gui: unknown texture")

	// ErrGeometry is returned when a border or corner radius does not fit its area.
	ErrGeometry = errors.New("gui: impossible geometry")

	// ErrUnknownFont is returned when a font family has not been registered.
	ErrUnknownFont = errors.New("gui: unknown font family")
)

// ThreadError reports an operation invoked from a thread other than the
// UI thread recorded by Env.Init.
type ThreadError struct {
	// Op names the operation, e.g. "Property(Label.Text).Set".
	Op string

	// Want is the UI thread id; zero when the Env was never initialized.
	Want uint64

	// Got is the id of the calling thread.
	Got uint64
}

func (e *ThreadError) Error() string {
	if e.Want == 0 {
		return fmt.Sprintf("gui: %s: environment not initialized", e.Op)
	}
	return fmt.Sprintf("gui: %s called off the UI thread (ui thread %d, caller %d)", e.Op, e.Want, e.Got)
}

// Unwrap makes errors.Is(err, ErrWrongThread) hold.
func (e *ThreadError) Unwrap() error {
	if e.Want == 0 {
		return ErrNotInitialized
	}
	return ErrWrongThread
}

// PhaseError reports a render engine call made outside the frame phase
// that permits it.
type PhaseError struct {
	Op    string
	Phase string
	Want  string
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("gui: %s requires phase %s, engine is in phase %s", e.Op, e.Want, e.Phase)
}

func (e *PhaseError) Unwrap() error { return ErrWrongPhase }

// ResourceError reports a draw or texture call rejected because of invalid
// resource data. Only the failing call is affected.
type ResourceError struct {
	Op       string
	Resource string
	Detail   string
	Err      error
}

func (e *ResourceError) Error() string {
	msg := fmt.Sprintf("gui: %s %s: %v", e.Op, e.Resource, e.Err)
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

func (e *ResourceError) Unwrap() error { return e.Err }
