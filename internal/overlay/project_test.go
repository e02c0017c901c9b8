package overlay

import (
	"math"
	"math/rand"
	"testing"
)

func rectPolygon(x1, y1, x2, y2 float64) Polygon {
	return Polygon{{x1, y1}, {x2, y1}, {x2, y2}, {x1, y2}}
}

func TestScale(t *testing.T) {
	tests := []struct {
		name        string
		renderWidth float64
		imageWidth  int
		want        float64
	}{
		{"half", 400, 800, 0.5},
		{"double", 1600, 800, 2},
		{"identity", 800, 800, 1},
		{"zero image width", 400, 0, 0},
		{"negative image width", 400, -10, 0},
		{"zero render width", 0, 800, 0},
		{"infinite render width", math.Inf(1), 800, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Scale(tt.renderWidth, tt.imageWidth); got != tt.want {
				t.Errorf("Scale(%v, %d) = %v, want %v", tt.renderWidth, tt.imageWidth, got, tt.want)
			}
		})
	}
}

func TestProject_MenuScenario(t *testing.T) {
	// 800x600 photo shown 400 wide
	poly, err := PolygonFromPairs([][]float64{{100, 50}, {300, 50}, {300, 90}, {100, 90}})
	if err != nil {
		t.Fatalf("PolygonFromPairs failed: %v", err)
	}

	got := Project(poly, Scale(400, 800))
	want := Rect{Left: 50, Top: 25, Width: 100, Height: 20}
	if got != want {
		t.Errorf("Project = %+v, want %+v", got, want)
	}
}

func TestProject_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		x1 := rng.Float64() * 2000
		y1 := rng.Float64() * 2000
		x2 := x1 + rng.Float64()*500
		y2 := y1 + rng.Float64()*200
		poly := rectPolygon(x1, y1, x2, y2)
		scale := rng.Float64()*3 + 0.001

		r := Project(poly, scale)
		if r.Width < 0 || r.Height < 0 {
			t.Fatalf("negative size for %v scale %v: %+v", poly, scale, r)
		}
		if r.Left != poly[TopLeft].X*scale {
			t.Fatalf("left = %v, want %v", r.Left, poly[TopLeft].X*scale)
		}
		if again := Project(poly, scale); again != r {
			t.Fatalf("Project not deterministic: %+v vs %+v", r, again)
		}
	}
}

func TestProject_Degenerate(t *testing.T) {
	poly := rectPolygon(10, 10, 50, 30)

	if r := Project(poly, 0); r != (Rect{}) {
		t.Errorf("zero scale should give zero rect, got %+v", r)
	}
	if r := Project(poly, Scale(400, 0)); r != (Rect{}) {
		t.Errorf("zero image width should give zero rect, got %+v", r)
	}
	if r := Project(poly, math.NaN()); r != (Rect{}) {
		t.Errorf("NaN scale should give zero rect, got %+v", r)
	}

	flat := rectPolygon(10, 10, 10, 30)
	if r := Project(flat, 1); r.Width != 0 || !r.Empty() {
		t.Errorf("zero-width polygon should give empty rect, got %+v", r)
	}

	// corners reversed: width would be negative
	reversed := Polygon{{50, 30}, {10, 30}, {10, 10}, {50, 10}}
	r := Project(reversed, 1)
	if r.Width != 0 || r.Height != 0 {
		t.Errorf("reversed polygon should clamp to zero size, got %+v", r)
	}
}

func TestProject_SkewedUsesThreeCorners(t *testing.T) {
	skewed := Polygon{{100, 50}, {300, 60}, {310, 100}, {105, 90}}
	r := Project(skewed, 1)
	if r.Width != 200 || r.Height != 40 {
		t.Errorf("unexpected rect for skewed polygon: %+v", r)
	}
	if skewed.AxisAligned(1) {
		t.Error("skewed polygon reported as axis aligned")
	}
	if !rectPolygon(1, 2, 3, 4).AxisAligned(0) {
		t.Error("rectangle reported as not axis aligned")
	}
}

func TestProjectAll(t *testing.T) {
	regions := []Labeled{
		{Label: "Fried rice", Polygon: rectPolygon(100, 50, 300, 90)},
		{Label: "broken", Polygon: rectPolygon(10, 10, 10, 10)},
		{Label: "Soup", Polygon: rectPolygon(0, 100, 200, 140)},
	}

	got := ProjectAll(regions, 0.5)
	if len(got) != len(regions) {
		t.Fatalf("got %d placements, want %d", len(got), len(regions))
	}
	for i, p := range got {
		if p.Index != i || p.Label != regions[i].Label {
			t.Errorf("placement %d out of order: %+v", i, p)
		}
	}
	if !got[1].Rect.Empty() {
		t.Errorf("degenerate region should be empty, got %+v", got[1].Rect)
	}
	if got[2].Rect != (Rect{Left: 0, Top: 50, Width: 100, Height: 20}) {
		t.Errorf("third placement wrong: %+v", got[2].Rect)
	}
}

func TestProjectAll_Empty(t *testing.T) {
	got := ProjectAll(nil, 1)
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}

func TestRenderHeight(t *testing.T) {
	if h := RenderHeight(400, 800, 600); h != 300 {
		t.Errorf("RenderHeight = %v, want 300", h)
	}
	if h := RenderHeight(400, 0, 600); h != 0 {
		t.Errorf("RenderHeight with zero width = %v, want 0", h)
	}
}
