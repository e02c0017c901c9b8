package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ironsheep/menu-lens/internal/overlay"
)

var (
	labelFace = basicfont.Face7x13
	labelBg   = color.NRGBA{255, 255, 255, 200}
	labelFg   = color.NRGBA{0, 0, 0, 255}
)

const labelPad = 2

// Annotate renders the photo at renderWidth and draws each placement on top:
// an outline around the original text and the translated label in its corner.
//
// Each region is drawn on its own. One that cannot be drawn (empty rectangle,
// entirely off-canvas) is skipped and reported in the returned slice; the rest
// are still drawn. With no placements the result is just the resized photo.
//
// A renderWidth <= 0 keeps the photo at its original width.
func Annotate(img image.Image, placements []overlay.Placement, renderWidth int) (*image.NRGBA, []error) {
	var dst *image.NRGBA
	if renderWidth <= 0 || renderWidth == img.Bounds().Dx() {
		dst = imaging.Clone(img)
	} else {
		dst = imaging.Resize(img, renderWidth, 0, imaging.Lanczos)
	}

	if len(placements) == 0 {
		return dst, nil
	}

	palette := colorful.FastHappyPalette(len(placements))
	var errs []error
	for i, p := range placements {
		r, g, b := palette[i].RGB255()
		if err := drawPlacement(dst, p, color.NRGBA{r, g, b, 255}); err != nil {
			errs = append(errs, err)
		}
	}
	return dst, errs
}

// EncodePNG encodes an annotated image as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

func drawPlacement(dst *image.NRGBA, p overlay.Placement, outline color.NRGBA) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("region %d: draw failed: %v", p.Index, r)
		}
	}()

	if p.Rect.Empty() {
		return fmt.Errorf("region %d: empty rectangle", p.Index)
	}

	box := image.Rect(
		int(math.Floor(p.Rect.Left)),
		int(math.Floor(p.Rect.Top)),
		int(math.Ceil(p.Rect.Right())),
		int(math.Ceil(p.Rect.Bottom())),
	)
	bounds := dst.Bounds()
	if !box.Overlaps(bounds) {
		return fmt.Errorf("region %d: %v outside canvas %v", p.Index, box, bounds)
	}

	drawOutline(dst, box.Intersect(bounds), outline)
	drawLabel(dst, box.Min, p.Label, bounds)
	return nil
}

// drawOutline draws a one pixel border just inside r.
func drawOutline(dst *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	for x := r.Min.X; x < r.Max.X; x++ {
		dst.SetNRGBA(x, r.Min.Y, c)
		dst.SetNRGBA(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		dst.SetNRGBA(r.Min.X, y, c)
		dst.SetNRGBA(r.Max.X-1, y, c)
	}
}

// drawLabel writes text on a translucent background anchored at the top-left of
// the region, truncating it so it never runs past the right edge of the canvas.
func drawLabel(dst *image.NRGBA, at image.Point, text string, canvas image.Rectangle) {
	if text == "" {
		return
	}
	x := max(at.X, canvas.Min.X)
	y := max(at.Y, canvas.Min.Y)

	text = fitLabel(text, canvas.Max.X-x-2*labelPad)
	if text == "" {
		return
	}

	metrics := labelFace.Metrics()
	width := font.MeasureString(labelFace, text).Ceil()
	height := (metrics.Ascent + metrics.Descent).Ceil()

	bg := image.Rect(x, y, x+width+2*labelPad, y+height+2*labelPad).Intersect(canvas)
	draw.Draw(dst, bg, image.NewUniform(labelBg), image.Point{}, draw.Over)

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(labelFg),
		Face: labelFace,
		Dot:  fixed.Point26_6{X: fixed.I(x + labelPad), Y: fixed.I(y+labelPad) + metrics.Ascent},
	}
	d.DrawString(text)
}

// fitLabel shortens text with a trailing "..." until it fits in maxWidth pixels.
func fitLabel(text string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if font.MeasureString(labelFace, text).Ceil() <= maxWidth {
		return text
	}
	runes := []rune(text)
	for n := len(runes) - 1; n > 0; n-- {
		candidate := string(runes[:n]) + "..."
		if font.MeasureString(labelFace, candidate).Ceil() <= maxWidth {
			return candidate
		}
	}
	return ""
}
