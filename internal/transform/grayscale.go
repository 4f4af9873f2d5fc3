package transform

import (
	"errors"
	"image/color"

	"github.com/ironsheep/image-editor-mcp/internal/pixel"
)

var (
	// ErrEmptySource is returned when a transform receives a buffer with no
	// pixels.
	ErrEmptySource = errors.New("empty source image")

	// ErrInvalidParameter is returned for non-positive target dimensions
	// and for crop regions outside the source.
	ErrInvalidParameter = errors.New("invalid parameter")
)

// Grayscale converts every pixel to the unweighted average of its color
// channels.
//
// For each pixel the gray level is (R + G + B) / 3. The channels are added as
// unsigned values before the integer division, which truncates. All three
// color channels are set to that level and alpha is copied unchanged.
//
// The operation is idempotent: a gray pixel has R == G == B, so averaging
// again yields the same value.
//
// Returns ErrEmptySource if src is nil or empty.
func Grayscale(src *pixel.Buffer) (*pixel.Buffer, error) {
	if src.Empty() {
		return nil, ErrEmptySource
	}

	return pixel.Generate(src.Width(), src.Height(), func(x, y int) color.NRGBA {
		c := src.NRGBAAt(x, y)
		gray := uint8((uint32(c.R) + uint32(c.G) + uint32(c.B)) / 3)
		return color.NRGBA{R: gray, G: gray, B: gray, A: c.A}
	})
}
