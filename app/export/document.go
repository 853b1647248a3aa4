package export

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
)

// Orientation of a single-page document.
type Orientation string

const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
)

// OrientationFor picks the page orientation from the content's pixel
// dimensions: landscape when the content is wider than tall.
func OrientationFor(width, height int) Orientation {
	if width > height {
		return Landscape
	}
	return Portrait
}

// Document is a single-page export document sized to its image content.
type Document struct {
	Image       image.Image
	Width       int
	Height      int
	Orientation Orientation
}

// NewDocument wraps a rendered image in a page matching its dimensions.
func NewDocument(img image.Image) *Document {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	return &Document{
		Image:       img,
		Width:       w,
		Height:      h,
		Orientation: OrientationFor(w, h),
	}
}

// Encode writes the page to w.
func (d *Document) Encode(w io.Writer) error {
	if err := png.Encode(w, d.Image); err != nil {
		return fmt.Errorf("failed to encode export document: %w", err)
	}
	return nil
}

// Save writes the page to a file.
func (d *Document) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()
	return d.Encode(f)
}
