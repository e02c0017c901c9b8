// Package ocr recognizes menu text lines with Tesseract (via gosseract/v2).
//
// # Prerequisites
//
// Tesseract and the language data must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-chi-sim
//   - macOS: brew install tesseract tesseract-lang
//
// # Granularity
//
// Recognition runs at text-line level (RIL_TEXTLINE). A menu line is usually
// one dish, which is the unit the client overlays a translation on. Spaces
// Tesseract inserts between Han characters are removed.
package ocr
