package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"time"

	"github.com/disintegration/imaging"
)

// Handle refers to the photo currently held by a session.
//
// A Handle is a value; the session replaces it wholesale on retake and drops
// it on reset. The file behind Ref is owned by the Store that produced it.
type Handle struct {
	// Ref is the path of the stored image.
	Ref string `json:"ref"`

	// Width is the image width in pixels, after EXIF orientation is applied.
	Width int `json:"width"`

	// Height is the image height in pixels, after EXIF orientation is applied.
	Height int `json:"height"`

	// Format is the format of the stored file ("jpeg").
	Format string `json:"format"`

	// SavedAt is when the file was written.
	SavedAt time.Time `json:"saved_at"`
}

// Valid reports whether the handle points at an image with positive dimensions.
func (h Handle) Valid() bool {
	return h.Ref != "" && h.Width > 0 && h.Height > 0
}

func (h Handle) String() string {
	return fmt.Sprintf("%s (%dx%d)", h.Ref, h.Width, h.Height)
}

// Info contains metadata about an encoded image.
type Info struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the detected format: "png", "jpeg" or "gif".
	// Unlike the file-extension guess used for display, this comes from the
	// decoder registry and reflects the actual bytes.
	Format string `json:"format"`
}

// Decode decodes an encoded image and applies its EXIF orientation, so a phone
// photo taken in portrait comes back upright with matching dimensions.
//
// Returns the decoded image, its metadata, and an error if the bytes are not a
// supported PNG, JPEG or GIF image.
func Decode(data []byte) (image.Image, *Info, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read image header: %w", err)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	return img, &Info{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Format: format,
	}, nil
}

// Open loads the image a handle refers to.
func Open(h Handle) (image.Image, error) {
	data, err := os.ReadFile(h.Ref)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	img, _, err := Decode(data)
	return img, err
}
