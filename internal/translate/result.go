package translate

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/pkg/errors"

	"github.com/ironsheep/menu-lens/internal/overlay"
)

// Status is the outcome the service reports in its response body.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// Region is one piece of recognized text and its translation.
type Region struct {
	// SourceText is the recognized original-language text. May be empty.
	SourceText string `json:"source_text"`

	// TranslatedText is the text to display in its place.
	TranslatedText string `json:"translated_text"`

	// Polygon bounds the original text in source-image pixels.
	Polygon overlay.Polygon `json:"polygon"`
}

// Result is a parsed, successful response from the service.
//
// ImageWidth and ImageHeight are the service's own measurement of the uploaded
// photo. They, not the capture-time dimensions, are the basis for projecting
// regions onto the screen.
type Result struct {
	Status      Status   `json:"status"`
	Regions     []Region `json:"regions"`
	ImageWidth  int      `json:"image_width"`
	ImageHeight int      `json:"image_height"`
	Filename    string   `json:"filename"`
	Format      string   `json:"format"`

	// Message is the service's optional note, e.g. "Image received successfully".
	Message string `json:"message,omitempty"`

	// Skipped counts translations dropped for an unusable position.
	Skipped int `json:"skipped,omitempty"`
}

// Labeled pairs each region's translation with its polygon, in server order.
func (r *Result) Labeled() []overlay.Labeled {
	out := make([]overlay.Labeled, len(r.Regions))
	for i, reg := range r.Regions {
		out[i] = overlay.Labeled{Label: reg.TranslatedText, Polygon: reg.Polygon}
	}
	return out
}

// Response is the JSON body of the upload endpoint.
//
// The language-specific field names are kept on the wire; Region exposes them
// as SourceText and TranslatedText.
type Response struct {
	Status       string        `json:"status"`
	Message      string        `json:"message,omitempty"`
	Error        string        `json:"error,omitempty"`
	Translations []Translation `json:"translations"`
	ImageInfo    ImageInfo     `json:"image_info"`
}

// Translation is one entry of Response.Translations.
type Translation struct {
	Chinese  string      `json:"chinese"`
	English  string      `json:"english"`
	Position [][]float64 `json:"position"`
}

// ImageInfo describes the uploaded image as the service decoded it.
type ImageInfo struct {
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Filename string `json:"filename"`
	Format   string `json:"format"`
}

// HealthResponse is the JSON body of the health probe.
type HealthResponse struct {
	Message string `json:"message"`
}

// ParseResponse turns an upload response body into a Result.
//
// Polygons outside the reported image are clamped into it. A translation
// whose position is not four [x, y] pairs is dropped and counted in
// Result.Skipped; the others are kept. A body that is not JSON or has an
// unknown status is a KindMalformedResponse error; status "failure" is a
// KindApplicationFailure error.
func ParseResponse(body []byte, logger *slog.Logger) (*Result, error) {
	var resp Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &Error{Kind: KindMalformedResponse, Err: errors.Wrap(err, "decode body")}
	}

	switch Status(strings.ToLower(strings.TrimSpace(resp.Status))) {
	case StatusSuccess:
	case StatusFailure:
		msg := resp.Message
		if msg == "" {
			msg = resp.Error
		}
		return nil, &Error{Kind: KindApplicationFailure, Message: msg}
	default:
		return nil, &Error{Kind: KindMalformedResponse, Err: errors.Errorf("unknown status %q", resp.Status)}
	}

	info := resp.ImageInfo
	result := &Result{
		Status:      StatusSuccess,
		Regions:     make([]Region, 0, len(resp.Translations)),
		ImageWidth:  info.Width,
		ImageHeight: info.Height,
		Filename:    info.Filename,
		Format:      info.Format,
		Message:     resp.Message,
	}

	clamped, skipped := 0, 0
	for i, tr := range resp.Translations {
		poly, err := overlay.PolygonFromPairs(tr.Position)
		if err != nil {
			skipped++
			if logger != nil {
				logger.Warn("skipping region with unusable position", "index", i, "error", err)
			}
			continue
		}
		if info.Width > 0 && info.Height > 0 && !poly.Within(info.Width, info.Height) {
			poly = poly.Clamp(info.Width, info.Height)
			clamped++
		} else if info.Width <= 0 || info.Height <= 0 {
			poly = poly.Clamp(0, 0)
		}
		result.Regions = append(result.Regions, Region{
			SourceText:     tr.Chinese,
			TranslatedText: tr.English,
			Polygon:        poly,
		})
	}

	result.Skipped = skipped
	if clamped > 0 && logger != nil {
		logger.Warn("clamped regions outside the image", "count", clamped,
			"width", info.Width, "height", info.Height)
	}
	return result, nil
}
