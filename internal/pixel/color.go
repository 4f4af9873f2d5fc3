package pixel

import (
	"image/color"
	"math"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGBAColor represents an RGBA color with 8-bit components including alpha.
//
// The alpha component represents opacity:
//   - 0 = fully transparent
//   - 255 = fully opaque
type RGBAColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
	A uint8 `json:"a"` // Alpha/opacity component (0-255)
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// ColorSample is a single pixel reported in several representations, for
// presentation layers that want to show the value under a cursor.
type ColorSample struct {
	X    int       `json:"x"`
	Y    int       `json:"y"`
	Hex  string    `json:"hex"`  // "#RRGGBB" (no alpha)
	RGBA RGBAColor `json:"rgba"` // Straight-alpha components
	HSL  HSLColor  `json:"hsl"`
}

// Sample returns the pixel at (x, y) as a ColorSample.
//
// Returns ErrOutOfBounds if the coordinates fall outside the buffer. The hex
// and HSL values describe the color channels only and ignore alpha.
func (b *Buffer) Sample(x, y int) (*ColorSample, error) {
	c, err := b.Pixel(x, y)
	if err != nil {
		return nil, err
	}
	return describe(x, y, c), nil
}

func describe(x, y int, c color.NRGBA) *ColorSample {
	// Build the colorful value from the straight channels directly;
	// colorful.MakeColor rejects fully transparent pixels.
	cf := colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
	h, s, l := cf.Hsl()
	if math.IsNaN(h) {
		h = 0
	}

	return &ColorSample{
		X:    x,
		Y:    y,
		Hex:  strings.ToUpper(cf.Hex()),
		RGBA: RGBAColor{R: c.R, G: c.G, B: c.B, A: c.A},
		HSL: HSLColor{
			H: int(math.Round(h)) % 360,
			S: int(math.Round(s * 100)),
			L: int(math.Round(l * 100)),
		},
	}
}
