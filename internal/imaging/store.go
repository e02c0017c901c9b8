package imaging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/anthonynsimon/bild/imgio"

	"github.com/ironsheep/menu-lens/internal/capture"
)

// CurrentName is the fixed filename of the session photo. Every retake
// overwrites the same file, so neither side accumulates stale uploads.
const CurrentName = "current_menu.jpg"

// DefaultQuality is the JPEG quality used when none is configured.
const DefaultQuality = 90

// Store persists the session photo at a stable path.
//
// Save decodes the captured bytes, applies EXIF orientation and re-encodes them
// as JPEG, so the uploaded file, the handle dimensions and the pixels the
// recognition service measures all agree.
type Store struct {
	dir     string
	quality int
	logger  *slog.Logger
}

// NewStore returns a store writing into dir. quality outside 1..100 falls back
// to DefaultQuality; a nil logger discards output.
func NewStore(dir string, quality int, logger *slog.Logger) *Store {
	if quality < 1 || quality > 100 {
		quality = DefaultQuality
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{dir: dir, quality: quality, logger: logger}
}

// Path returns where the current photo lives.
func (s *Store) Path() string {
	return filepath.Join(s.dir, CurrentName)
}

// Save writes the frame to Path, replacing any previous photo atomically.
//
// Declared frame dimensions are checked against the decoded image; when they
// differ the decoded ones are used and a warning is logged.
func (s *Store) Save(ctx context.Context, f *capture.Frame) (*Handle, error) {
	if f == nil || len(f.Data) == 0 {
		return nil, capture.ErrNoFrame
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, info, err := Decode(f.Data)
	if err != nil {
		return nil, err
	}
	if (f.Width > 0 && f.Width != info.Width) || (f.Height > 0 && f.Height != info.Height) {
		s.logger.Warn("declared frame size differs from decoded image",
			"declared_width", f.Width, "declared_height", f.Height,
			"width", info.Width, "height", info.Height)
	}

	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, "current_menu-*.tmp")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	encode := imgio.JPEGEncoder(s.quality)
	if err := encode(tmp, img); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return nil, fmt.Errorf("failed to encode photo: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return nil, fmt.Errorf("failed to write photo: %w", err)
	}

	if err := os.Rename(tmpPath, s.Path()); err != nil {
		os.Remove(tmpPath)
		return nil, fmt.Errorf("failed to replace photo: %w", err)
	}

	h := &Handle{
		Ref:     s.Path(),
		Width:   info.Width,
		Height:  info.Height,
		Format:  "jpeg",
		SavedAt: time.Now(),
	}
	s.logger.Debug("photo stored", "path", h.Ref, "width", h.Width, "height", h.Height, "source_format", info.Format)
	return h, nil
}

// Clear removes the current photo. A missing file is not an error.
func (s *Store) Clear() error {
	err := os.Remove(s.Path())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove photo: %w", err)
	}
	return nil
}
