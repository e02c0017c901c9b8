package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// createTestImage returns a solid-colour image of the given size.
func createTestImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// encodePNG encodes a test image as PNG bytes.
func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	return buf.Bytes()
}

// encodeJPEG encodes a test image as JPEG bytes.
func encodeJPEG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("failed to encode jpeg: %v", err)
	}
	return buf.Bytes()
}

func TestDecode_PNG(t *testing.T) {
	data := encodePNG(t, createTestImage(120, 80, color.RGBA{255, 0, 0, 255}))

	img, info, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if img == nil {
		t.Fatal("Decode returned nil image")
	}
	if info.Width != 120 || info.Height != 80 {
		t.Errorf("unexpected dimensions: got %dx%d, want 120x80", info.Width, info.Height)
	}
	if info.Format != "png" {
		t.Errorf("expected format png, got %s", info.Format)
	}
}

func TestDecode_JPEG(t *testing.T) {
	data := encodeJPEG(t, createTestImage(64, 48, color.RGBA{0, 0, 255, 255}))

	_, info, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if info.Format != "jpeg" {
		t.Errorf("expected format jpeg, got %s", info.Format)
	}
	if info.Width != 64 || info.Height != 48 {
		t.Errorf("unexpected dimensions: got %dx%d", info.Width, info.Height)
	}
}

func TestDecode_Invalid(t *testing.T) {
	if _, _, err := Decode([]byte("not an image")); err == nil {
		t.Error("Decode should fail for non-image bytes")
	}
	if _, _, err := Decode(nil); err == nil {
		t.Error("Decode should fail for empty input")
	}
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photo.png")
	if err := os.WriteFile(path, encodePNG(t, createTestImage(10, 20, color.White)), 0644); err != nil {
		t.Fatal(err)
	}

	img, err := Open(Handle{Ref: path, Width: 10, Height: 20})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if img.Bounds().Dx() != 10 || img.Bounds().Dy() != 20 {
		t.Errorf("unexpected bounds %v", img.Bounds())
	}

	if _, err := Open(Handle{Ref: "/nonexistent/photo.png"}); err == nil {
		t.Error("Open should fail for a missing file")
	}
}

func TestHandle_Valid(t *testing.T) {
	tests := []struct {
		h    Handle
		want bool
	}{
		{Handle{Ref: "a.jpg", Width: 800, Height: 600}, true},
		{Handle{Ref: "", Width: 800, Height: 600}, false},
		{Handle{Ref: "a.jpg", Width: 0, Height: 600}, false},
		{Handle{Ref: "a.jpg", Width: 800, Height: -1}, false},
	}
	for _, tt := range tests {
		if got := tt.h.Valid(); got != tt.want {
			t.Errorf("%+v.Valid() = %v, want %v", tt.h, got, tt.want)
		}
	}
}
