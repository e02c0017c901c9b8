package imaging

import (
	"image"
	"image/color"
	"testing"

	"github.com/ironsheep/menu-lens/internal/overlay"
)

func TestAnnotate_ResizesToRenderWidth(t *testing.T) {
	img := createTestImage(800, 600, color.White)

	out, errs := Annotate(img, nil, 400)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if out.Bounds().Dx() != 400 || out.Bounds().Dy() != 300 {
		t.Errorf("unexpected size %v, want 400x300", out.Bounds())
	}
}

func TestAnnotate_NoRegionsDrawsBaseOnly(t *testing.T) {
	img := createTestImage(40, 30, color.RGBA{10, 20, 30, 255})

	out, errs := Annotate(img, []overlay.Placement{}, 0)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	for y := 0; y < 30; y++ {
		for x := 0; x < 40; x++ {
			if c := out.NRGBAAt(x, y); c != (color.NRGBA{10, 20, 30, 255}) {
				t.Fatalf("pixel (%d,%d) changed to %v", x, y, c)
			}
		}
	}
}

func TestAnnotate_DrawsOutline(t *testing.T) {
	img := createTestImage(800, 600, color.White)
	placements := []overlay.Placement{
		{Index: 0, Label: "", Rect: overlay.Rect{Left: 50, Top: 25, Width: 100, Height: 20}},
	}

	out, errs := Annotate(img, placements, 400)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	white := color.NRGBA{255, 255, 255, 255}
	if out.NRGBAAt(50, 25) == white {
		t.Error("outline corner not drawn")
	}
	if out.NRGBAAt(149, 44) == white {
		t.Error("outline opposite corner not drawn")
	}
	if out.NRGBAAt(100, 35) != white {
		t.Error("interior of an unlabeled box should be untouched")
	}
}

func TestAnnotate_BadRegionDoesNotBlockOthers(t *testing.T) {
	img := createTestImage(200, 100, color.White)
	placements := []overlay.Placement{
		{Index: 0, Label: "gone", Rect: overlay.Rect{}},
		{Index: 1, Label: "far", Rect: overlay.Rect{Left: 5000, Top: 5000, Width: 10, Height: 10}},
		{Index: 2, Label: "Noodles", Rect: overlay.Rect{Left: 10, Top: 10, Width: 80, Height: 20}},
	}

	out, errs := Annotate(img, placements, 0)
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %d: %v", len(errs), errs)
	}
	if out.NRGBAAt(10, 10) == (color.NRGBA{255, 255, 255, 255}) {
		t.Error("valid region was not drawn")
	}
}

func TestAnnotate_LongLabelIsClipped(t *testing.T) {
	img := createTestImage(120, 60, color.White)
	placements := []overlay.Placement{
		{Index: 0, Label: "A very long translated dish name that cannot fit", Rect: overlay.Rect{Left: 60, Top: 10, Width: 40, Height: 15}},
	}

	_, errs := Annotate(img, placements, 0)
	if len(errs) != 0 {
		t.Errorf("overflowing label should be truncated, not fail: %v", errs)
	}
}

func TestFitLabel(t *testing.T) {
	if got := fitLabel("Soup", 1000); got != "Soup" {
		t.Errorf("short label changed: %q", got)
	}
	got := fitLabel("Braised pork belly", 70)
	if len(got) == 0 || got[len(got)-3:] != "..." {
		t.Errorf("expected truncated label with ellipsis, got %q", got)
	}
	if got := fitLabel("Soup", 0); got != "" {
		t.Errorf("no room should give empty label, got %q", got)
	}
}

func TestEncodePNG(t *testing.T) {
	data, err := EncodePNG(image.NewNRGBA(image.Rect(0, 0, 4, 4)))
	if err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}
	if _, info, err := Decode(data); err != nil || info.Format != "png" {
		t.Errorf("round trip failed: %v %+v", err, info)
	}
}
