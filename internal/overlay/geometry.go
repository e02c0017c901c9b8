package overlay

import (
	"fmt"
	"math"
)

// Corner indexes into a Polygon.
const (
	TopLeft = iota
	TopRight
	BottomRight
	BottomLeft
)

// Point is a position in source-image pixel space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Polygon is the quadrilateral bounding a text region, ordered
// top-left, top-right, bottom-right, bottom-left.
type Polygon [4]Point

// PolygonFromPairs builds a Polygon from the [[x,y],...] form used on the wire.
//
// Exactly four pairs of exactly two numbers are required; anything else is an
// error because the winding order cannot be recovered.
func PolygonFromPairs(pairs [][]float64) (Polygon, error) {
	var p Polygon
	if len(pairs) != len(p) {
		return p, fmt.Errorf("polygon needs %d points, got %d", len(p), len(pairs))
	}
	for i, pair := range pairs {
		if len(pair) != 2 {
			return Polygon{}, fmt.Errorf("point %d has %d coordinates, want 2", i, len(pair))
		}
		if !finite(pair[0]) || !finite(pair[1]) {
			return Polygon{}, fmt.Errorf("point %d is not finite", i)
		}
		p[i] = Point{X: pair[0], Y: pair[1]}
	}
	return p, nil
}

// Pairs returns the polygon in [[x,y],...] form.
func (p Polygon) Pairs() [][]float64 {
	out := make([][]float64, len(p))
	for i, pt := range p {
		out[i] = []float64{pt.X, pt.Y}
	}
	return out
}

// Clamp limits every corner to [0, width-1] x [0, height-1].
//
// Non-positive dimensions leave the polygon untouched apart from removing
// negative coordinates, since there is no upper bound to clamp against.
func (p Polygon) Clamp(width, height int) Polygon {
	for i := range p {
		p[i].X = clampAxis(p[i].X, width)
		p[i].Y = clampAxis(p[i].Y, height)
	}
	return p
}

// Within reports whether all corners already lie inside [0,width) x [0,height).
func (p Polygon) Within(width, height int) bool {
	for _, pt := range p {
		if pt.X < 0 || pt.Y < 0 || pt.X >= float64(width) || pt.Y >= float64(height) {
			return false
		}
	}
	return true
}

// AxisAligned reports whether the polygon is a rectangle whose edges are
// parallel to the image axes, within tol pixels.
//
// Project only looks at three corners; when this returns false the projected
// rectangle is an approximation of the real region.
func (p Polygon) AxisAligned(tol float64) bool {
	tl, tr, br, bl := p[TopLeft], p[TopRight], p[BottomRight], p[BottomLeft]
	return math.Abs(tl.Y-tr.Y) <= tol &&
		math.Abs(bl.Y-br.Y) <= tol &&
		math.Abs(tl.X-bl.X) <= tol &&
		math.Abs(tr.X-br.X) <= tol
}

// Rect is an axis-aligned rectangle in display space.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Right returns the right edge.
func (r Rect) Right() float64 { return r.Left + r.Width }

// Bottom returns the bottom edge.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

func clampAxis(v float64, size int) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if size > 0 && v > float64(size-1) {
		return float64(size - 1)
	}
	return v
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
