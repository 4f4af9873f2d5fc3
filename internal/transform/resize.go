package transform

import (
	"fmt"
	"image/color"

	"github.com/ironsheep/image-editor-mcp/internal/pixel"
)

// Resize resamples src to width×height using nearest-neighbor mapping.
//
// Each destination pixel (x, y) copies the source pixel at
//
//	srcX = x * W / width
//	srcY = y * H / height
//
// where W and H are the source dimensions and the divisions are integer
// (floor) divisions. There is no interpolation or anti-aliasing. Resizing to
// the source dimensions therefore reproduces the source exactly.
//
// Returns ErrInvalidParameter if width or height is not positive or the
// target holds more than pixel.MaxPixels pixels, and ErrEmptySource if src is
// nil or empty.
func Resize(src *pixel.Buffer, width, height int) (*pixel.Buffer, error) {
	if err := pixel.CheckDimensions(width, height); err != nil {
		return nil, fmt.Errorf("%w: target size: %w", ErrInvalidParameter, err)
	}
	if src.Empty() {
		return nil, ErrEmptySource
	}

	srcW, srcH := src.Width(), src.Height()

	// Column lookups are shared by every row.
	cols := make([]int, width)
	for x := range cols {
		cols[x] = x * srcW / width
	}

	return pixel.Generate(width, height, func(x, y int) color.NRGBA {
		return src.NRGBAAt(cols[x], y*srcH/height)
	})
}
