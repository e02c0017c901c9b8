package imaging

import (
	"context"
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/ironsheep/menu-lens/internal/capture"
)

func TestStore_Save(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir, 85, nil)

	frame := &capture.Frame{Data: encodePNG(t, createTestImage(800, 600, color.White)), Width: 800, Height: 600}
	h, err := s.Save(context.Background(), frame)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if h.Ref != filepath.Join(dir, CurrentName) {
		t.Errorf("unexpected ref %s", h.Ref)
	}
	if h.Width != 800 || h.Height != 600 || h.Format != "jpeg" {
		t.Errorf("unexpected handle %+v", h)
	}
	if !h.Valid() {
		t.Error("saved handle should be valid")
	}

	data, err := os.ReadFile(h.Ref)
	if err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
	_, info, err := Decode(data)
	if err != nil {
		t.Fatalf("stored file does not decode: %v", err)
	}
	if info.Format != "jpeg" {
		t.Errorf("stored file format = %s, want jpeg", info.Format)
	}
}

func TestStore_RetakeOverwrites(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir, 0, nil)
	ctx := context.Background()

	if _, err := s.Save(ctx, &capture.Frame{Data: encodePNG(t, createTestImage(100, 50, color.Black))}); err != nil {
		t.Fatal(err)
	}
	h, err := s.Save(ctx, &capture.Frame{Data: encodeJPEG(t, createTestImage(30, 40, color.White))})
	if err != nil {
		t.Fatal(err)
	}
	if h.Width != 30 || h.Height != 40 {
		t.Errorf("second save has wrong size: %+v", h)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != CurrentName {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("expected only %s in storage dir, got %v", CurrentName, names)
	}
}

func TestStore_DeclaredSizeMismatchUsesDecoded(t *testing.T) {
	s := NewStore(t.TempDir(), 90, nil)
	frame := &capture.Frame{Data: encodePNG(t, createTestImage(64, 32, color.White)), Width: 1000, Height: 1000}

	h, err := s.Save(context.Background(), frame)
	if err != nil {
		t.Fatal(err)
	}
	if h.Width != 64 || h.Height != 32 {
		t.Errorf("expected decoded size 64x32, got %dx%d", h.Width, h.Height)
	}
}

func TestStore_SaveRejectsBadInput(t *testing.T) {
	s := NewStore(t.TempDir(), 90, nil)
	ctx := context.Background()

	if _, err := s.Save(ctx, nil); !errors.Is(err, capture.ErrNoFrame) {
		t.Errorf("nil frame: expected ErrNoFrame, got %v", err)
	}
	if _, err := s.Save(ctx, &capture.Frame{Data: []byte("garbage")}); err == nil {
		t.Error("expected decode error for garbage data")
	}
	if _, err := os.Stat(s.Path()); !os.IsNotExist(err) {
		t.Error("failed save should not leave a photo behind")
	}
}

func TestStore_Clear(t *testing.T) {
	s := NewStore(t.TempDir(), 90, nil)
	ctx := context.Background()

	if _, err := s.Save(ctx, &capture.Frame{Data: encodePNG(t, createTestImage(10, 10, color.White))}); err != nil {
		t.Fatal(err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, err := os.Stat(s.Path()); !os.IsNotExist(err) {
		t.Error("photo still present after Clear")
	}
	if err := s.Clear(); err != nil {
		t.Errorf("second Clear should be a no-op, got %v", err)
	}
}
