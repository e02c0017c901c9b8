package overlay

import "math"

// Scale returns the uniform factor that maps source pixels to display units.
//
// Parameters:
//   - renderWidth: width the photo is displayed at, in display units.
//   - imageWidth: width of the source image in pixels, as reported by the
//     recognition service.
//
// Returns 0 when either width is non-positive or the ratio is not finite.
func Scale(renderWidth float64, imageWidth int) float64 {
	if imageWidth <= 0 || renderWidth <= 0 {
		return 0
	}
	s := renderWidth / float64(imageWidth)
	if !finite(s) {
		return 0
	}
	return s
}

// RenderHeight returns the display height for a photo of width x height pixels
// rendered renderWidth wide at its natural aspect ratio.
func RenderHeight(renderWidth float64, width, height int) float64 {
	if width <= 0 || height <= 0 || renderWidth <= 0 {
		return 0
	}
	return renderWidth * float64(height) / float64(width)
}

// Project maps a source-space polygon to a display-space rectangle.
//
// See the package documentation for the exact formula and the axis-aligned
// approximation it implies. Widths and heights that would be negative (corners
// in the wrong order) are clamped to 0. A non-positive or non-finite scale
// returns the zero Rect.
func Project(p Polygon, scale float64) Rect {
	if scale <= 0 || !finite(scale) {
		return Rect{}
	}
	tl, tr, bl := p[TopLeft], p[TopRight], p[BottomLeft]
	return Rect{
		Left:   tl.X * scale,
		Top:    tl.Y * scale,
		Width:  math.Max(0, (tr.X-tl.X)*scale),
		Height: math.Max(0, (bl.Y-tl.Y)*scale),
	}
}

// Labeled is a polygon with the text to display in its place.
type Labeled struct {
	Label   string
	Polygon Polygon
}

// Placement is a label positioned in display space.
type Placement struct {
	Index int    `json:"index"`
	Label string `json:"label"`
	Rect  Rect   `json:"rect"`
}

// ProjectAll projects every region with the same scale, preserving order.
//
// Each region is handled independently; a degenerate region produces an
// empty Rect in its slot and does not affect its neighbours.
func ProjectAll(regions []Labeled, scale float64) []Placement {
	out := make([]Placement, 0, len(regions))
	for i, r := range regions {
		out = append(out, Placement{
			Index: i,
			Label: r.Label,
			Rect:  Project(r.Polygon, scale),
		})
	}
	return out
}
