package pixel

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Channels is the number of bytes stored per pixel (R, G, B, A).
const Channels = 4

// MaxPixels is the largest width*height a buffer may hold (1 GiB of RGBA).
const MaxPixels = 1 << 28

var (
	// ErrInvalidDimensions is returned when a buffer would have a
	// non-positive width or height, more than MaxPixels pixels, or when the
	// supplied data does not hold exactly width*height*4 bytes.
	ErrInvalidDimensions = errors.New("invalid dimensions")

	// ErrOutOfBounds is returned by Pixel for coordinates outside the buffer.
	ErrOutOfBounds = errors.New("pixel out of bounds")
)

// Buffer is an immutable width×height grid of NRGBA pixels.
//
// The zero value is an empty buffer with no pixels. It is never produced
// by the constructors in this package, but transforms treat it as an empty
// source.
type Buffer struct {
	width  int
	height int
	pix    []uint8
}

// New creates a buffer from row-major RGBA data.
//
// Parameters:
//   - width, height: Dimensions in pixels. Both must be positive and
//     their product at most MaxPixels.
//   - data: width*height*4 bytes, one R,G,B,A quadruplet per pixel with
//     straight alpha. The slice is copied; later changes to data do not
//     affect the buffer.
//
// Returns ErrInvalidDimensions if the dimensions are out of range or the data
// length does not match them.
func New(width, height int, data []uint8) (*Buffer, error) {
	if err := CheckDimensions(width, height); err != nil {
		return nil, err
	}
	if want := width * height * Channels; len(data) != want {
		return nil, fmt.Errorf("%w: %dx%d needs %d bytes, got %d",
			ErrInvalidDimensions, width, height, want, len(data))
	}

	pix := make([]uint8, len(data))
	copy(pix, data)
	return &Buffer{width: width, height: height, pix: pix}, nil
}

// Filled creates a buffer where every pixel has the color c.
func Filled(width, height int, c color.NRGBA) (*Buffer, error) {
	return Generate(width, height, func(int, int) color.NRGBA { return c })
}

// Generate creates a buffer by evaluating fn once for every pixel in
// row-major order.
func Generate(width, height int, fn func(x, y int) color.NRGBA) (*Buffer, error) {
	if err := CheckDimensions(width, height); err != nil {
		return nil, err
	}

	pix := make([]uint8, width*height*Channels)
	i := 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := fn(x, y)
			pix[i+0] = c.R
			pix[i+1] = c.G
			pix[i+2] = c.B
			pix[i+3] = c.A
			i += Channels
		}
	}
	return &Buffer{width: width, height: height, pix: pix}, nil
}

// FromImage converts a decoded image into a buffer.
//
// The image is converted to straight-alpha NRGBA. Images whose bounds do not
// start at (0,0) are translated so the top-left pixel becomes (0,0).
// Returns ErrInvalidDimensions for images with empty bounds.
func FromImage(img image.Image) (*Buffer, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInvalidDimensions)
	}
	if b, ok := img.(*Buffer); ok {
		return b, nil
	}

	bounds := img.Bounds()
	if err := CheckDimensions(bounds.Dx(), bounds.Dy()); err != nil {
		return nil, err
	}

	// imaging.Clone always returns a tightly packed NRGBA with origin (0,0).
	nrgba := imaging.Clone(img)
	return &Buffer{width: bounds.Dx(), height: bounds.Dy(), pix: nrgba.Pix}, nil
}

// CheckDimensions reports whether a width×height buffer can be built.
// It returns ErrInvalidDimensions for non-positive sizes and for sizes with
// more than MaxPixels pixels.
func CheckDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if width > MaxPixels/height {
		return fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrInvalidDimensions, width, height, MaxPixels)
	}
	return nil
}

// Width returns the buffer width in pixels.
func (b *Buffer) Width() int { return b.width }

// Height returns the buffer height in pixels.
func (b *Buffer) Height() int { return b.height }

// Len returns the number of pixels in the buffer.
func (b *Buffer) Len() int { return b.width * b.height }

// Empty reports whether the buffer holds no pixels. A nil buffer is empty.
func (b *Buffer) Empty() bool { return b == nil || len(b.pix) == 0 }

// Pixel returns the color at (x, y).
//
// Returns ErrOutOfBounds if x or y is negative or not less than the
// corresponding dimension.
func (b *Buffer) Pixel(x, y int) (color.NRGBA, error) {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return color.NRGBA{}, fmt.Errorf("%w: (%d,%d) outside %dx%d",
			ErrOutOfBounds, x, y, b.width, b.height)
	}
	return b.NRGBAAt(x, y), nil
}

// NRGBAAt returns the color at (x, y), or the zero color for coordinates
// outside the buffer. It is the unchecked accessor used in pixel loops.
func (b *Buffer) NRGBAAt(x, y int) color.NRGBA {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return color.NRGBA{}
	}
	i := (y*b.width + x) * Channels
	s := b.pix[i : i+Channels : i+Channels]
	return color.NRGBA{R: s[0], G: s[1], B: s[2], A: s[3]}
}

// Bytes returns a copy of the row-major RGBA data.
func (b *Buffer) Bytes() []uint8 {
	out := make([]uint8, len(b.pix))
	copy(out, b.pix)
	return out
}

// NRGBA returns the buffer as a freshly allocated *image.NRGBA.
func (b *Buffer) NRGBA() *image.NRGBA {
	return &image.NRGBA{
		Pix:    b.Bytes(),
		Stride: b.width * Channels,
		Rect:   image.Rect(0, 0, b.width, b.height),
	}
}

// Equal reports whether two buffers have the same dimensions and pixel data.
func (b *Buffer) Equal(other *Buffer) bool {
	if b == nil || other == nil {
		return b == other
	}
	return b.width == other.width && b.height == other.height && bytes.Equal(b.pix, other.pix)
}

// String returns a short description such as "Buffer(640x480)".
func (b *Buffer) String() string {
	return fmt.Sprintf("Buffer(%dx%d)", b.width, b.height)
}

// ColorModel implements image.Image.
func (b *Buffer) ColorModel() color.Model { return color.NRGBAModel }

// Bounds implements image.Image. The origin is always (0,0).
func (b *Buffer) Bounds() image.Rectangle { return image.Rect(0, 0, b.width, b.height) }

// At implements image.Image.
func (b *Buffer) At(x, y int) color.Color { return b.NRGBAAt(x, y) }
