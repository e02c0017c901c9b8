package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/ironsheep/menu-lens/internal/capture"
	"github.com/ironsheep/menu-lens/internal/imaging"
	"github.com/ironsheep/menu-lens/internal/translate"
)

// State enumerates the states of a translation session.
type State int

const (
	// StateLive: camera active, no photo held.
	StateLive State = iota
	// StateCaptured: photo held, waiting for the user to send or retake.
	StateCaptured
	// StateUploading: upload in flight.
	StateUploading
	// StateResult: translation result held.
	StateResult
	// StateError: classified upload error held.
	StateError
)

func (s State) String() string {
	switch s {
	case StateLive:
		return "live"
	case StateCaptured:
		return "captured"
	case StateUploading:
		return "uploading"
	case StateResult:
		return "result"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

var (
	// ErrInvalidTransition is returned when an operation is not allowed in the
	// current state.
	ErrInvalidTransition = errors.New("invalid session transition")

	// ErrCaptureUnavailable means the camera had no frame; the session stays Live.
	ErrCaptureUnavailable = errors.New("camera has no frame available")

	// ErrCaptureInProgress means another capture has not finished yet.
	ErrCaptureInProgress = errors.New("capture already in progress")

	// ErrSuperseded is returned to callers waiting on work that a retake or reset
	// made obsolete. The session state was not touched by that work.
	ErrSuperseded = errors.New("superseded by a newer photo")
)

func invalid(op string, s State) error {
	return fmt.Errorf("%s while %s: %w", op, s, ErrInvalidTransition)
}

// Uploader sends a photo to the recognition service.
// *translate.Client satisfies it.
type Uploader interface {
	Send(ctx context.Context, h imaging.Handle) (*translate.Result, error)
}

// HealthChecker is optionally implemented by an Uploader.
type HealthChecker interface {
	Health(ctx context.Context) (string, error)
}

// Store persists captured frames at a stable location.
// *imaging.Store satisfies it.
type Store interface {
	Save(ctx context.Context, f *capture.Frame) (*imaging.Handle, error)
	Clear() error
}

// Listener is called after every state change, outside the controller's lock.
type Listener func(prev, next State)

// Snapshot is a consistent copy of the session state.
type Snapshot struct {
	ID     string
	Epoch  uint64
	State  State
	Handle *imaging.Handle
	Result *translate.Result
	Err    error
}

var (
	_ Uploader      = (*translate.Client)(nil)
	_ HealthChecker = (*translate.Client)(nil)
	_ Store         = (*imaging.Store)(nil)
)
