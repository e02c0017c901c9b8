// Package capture defines the camera contract used by a translation session
// and a couple of file-backed sources for desktop use.
package capture

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"
)

// ErrNoFrame is returned when the device has nothing to deliver (not ready,
// shutter not pressed, file missing). Callers treat it as a no-op.
var ErrNoFrame = errors.New("no frame available")

// Frame is a captured still image.
type Frame struct {
	// Data is the encoded image (JPEG, PNG or GIF).
	Data []byte

	// Width and Height are the dimensions declared by the device. Zero means
	// unknown; the image store measures the decoded image either way.
	Width  int
	Height int

	CapturedAt time.Time
}

// Source produces still frames on request.
type Source interface {
	Capture(ctx context.Context) (*Frame, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) (*Frame, error)

// Capture calls f.
func (f SourceFunc) Capture(ctx context.Context) (*Frame, error) { return f(ctx) }

// FileSource reads the same image file on every capture.
type FileSource struct {
	Path string
}

// Capture reads the file. A missing file is reported as ErrNoFrame.
func (s FileSource) Capture(ctx context.Context) (*Frame, error) {
	return readFrame(ctx, s.Path)
}

// Queue is a one-shot source: Load stages a file, the next Capture consumes it.
// It stands in for a shutter button in the interactive shell.
type Queue struct {
	mu   sync.Mutex
	next string
}

// Load stages path for the next capture, replacing any staged path.
func (q *Queue) Load(path string) {
	q.mu.Lock()
	q.next = path
	q.mu.Unlock()
}

// Pending returns the staged path, if any.
func (q *Queue) Pending() (string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.next, q.next != ""
}

// Capture consumes the staged path. With nothing staged it returns ErrNoFrame.
func (q *Queue) Capture(ctx context.Context) (*Frame, error) {
	q.mu.Lock()
	path := q.next
	q.next = ""
	q.mu.Unlock()

	if path == "" {
		return nil, ErrNoFrame
	}
	return readFrame(ctx, path)
}

func readFrame(ctx context.Context, path string) (*Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrNoFrame)
		}
		return nil, fmt.Errorf("failed to read frame: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%s is empty: %w", path, ErrNoFrame)
	}
	return &Frame{Data: data, CapturedAt: time.Now()}, nil
}

var (
	_ Source = FileSource{}
	_ Source = (*Queue)(nil)
	_ Source = SourceFunc(nil)
)
