package backend

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ironsheep/menu-lens/internal/imaging"
	"github.com/ironsheep/menu-lens/internal/translate"
)

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBytes)
	file, header, err := r.FormFile(translate.FileField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "image too large")
			return
		}
		writeError(w, http.StatusBadRequest, fmt.Sprintf("missing %q field", translate.FileField))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read upload")
		return
	}

	img, info, err := imaging.Decode(data)
	if err != nil {
		s.logger.Warn("upload is not a decodable image", "filename", header.Filename, "error", err)
		writeError(w, http.StatusBadRequest, "file is not a supported image")
		return
	}

	resp := translate.Response{
		Translations: []translate.Translation{},
		ImageInfo: translate.ImageInfo{
			Width:    info.Width,
			Height:   info.Height,
			Filename: header.Filename,
			Format:   strings.ToUpper(info.Format),
		},
	}

	lines, err := s.recognizer.Recognize(r.Context(), img)
	if err != nil {
		s.logger.Error("recognition failed", "filename", header.Filename, "error", err)
		resp.Status = string(translate.StatusFailure)
		resp.Message = "text recognition failed: " + err.Error()
		writeJSON(w, http.StatusOK, resp)
		return
	}

	for _, line := range lines {
		text := strings.TrimSpace(line.Text)
		if text == "" {
			continue
		}
		resp.Translations = append(resp.Translations, translate.Translation{
			Chinese:  text,
			English:  s.translator.Translate(text),
			Position: position(line),
		})
	}

	s.logger.Debug("upload processed", "filename", header.Filename,
		"width", info.Width, "height", info.Height, "regions", len(resp.Translations))
	resp.Status = string(translate.StatusSuccess)
	resp.Message = "Image received successfully"
	writeJSON(w, http.StatusOK, resp)
}

// position lists the corners of the line's bounds as TL, TR, BR, BL, using
// the last pixel inside the box on the far edges.
func position(l Line) [][]float64 {
	b := l.Bounds.Canon()
	x0, y0 := float64(b.Min.X), float64(b.Min.Y)
	x1, y1 := float64(max(b.Max.X-1, b.Min.X)), float64(max(b.Max.Y-1, b.Min.Y))
	return [][]float64{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}
}
