package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/ironsheep/menu-lens/internal/backend"
)

// DefaultLanguage is simplified Chinese, the language of the menus the
// service is built for.
const DefaultLanguage = "chi_sim"

// Tesseract recognizes lines of text with the Tesseract engine.
//
// A fresh engine is created per call, so one Tesseract may be shared by
// concurrent requests.
type Tesseract struct {
	// Language is a Tesseract language code such as "chi_sim" or "eng+chi_sim".
	// Empty means DefaultLanguage.
	Language string

	// MinConfidence drops lines Tesseract is less sure of (0.0 to 1.0).
	MinConfidence float64
}

// Recognize returns the text lines of img with their bounding boxes in image
// pixels. Lines that are empty after trimming are skipped.
func (t Tesseract) Recognize(ctx context.Context, img image.Image) ([]backend.Line, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image for OCR: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(t.language()); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	return linesFromBoxes(boxes, img.Bounds().Min, t.MinConfidence), nil
}

func (t Tesseract) language() string {
	if t.Language == "" {
		return DefaultLanguage
	}
	return t.Language
}

// linesFromBoxes converts Tesseract boxes to lines. offset is the origin of
// the source image, since Tesseract always reports from (0,0).
func linesFromBoxes(boxes []gosseract.BoundingBox, offset image.Point, minConfidence float64) []backend.Line {
	lines := make([]backend.Line, 0, len(boxes))
	for _, box := range boxes {
		text := joinCJK(strings.TrimSpace(box.Word))
		if text == "" {
			continue
		}
		if float64(box.Confidence)/100.0 < minConfidence {
			continue
		}
		lines = append(lines, backend.Line{Text: text, Bounds: box.Box.Add(offset)})
	}
	return lines
}

// joinCJK removes the spaces Tesseract puts between Han characters while
// keeping spaces between Latin words.
func joinCJK(s string) string {
	rs := []rune(s)
	var b strings.Builder
	for i, r := range rs {
		if r == ' ' && i > 0 && i < len(rs)-1 && isHan(rs[i-1]) && isHan(rs[i+1]) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isHan(r rune) bool {
	return r >= 0x4E00 && r <= 0x9FFF || r >= 0x3400 && r <= 0x4DBF
}

var _ backend.Recognizer = Tesseract{}
