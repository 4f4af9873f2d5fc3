package pixel

import (
	"fmt"
	"sort"
)

// paletteStep is the quantization bucket width per channel.
const paletteStep = 16

// ColorFrequency is one palette entry.
type ColorFrequency struct {
	Hex        string    `json:"hex"`        // Quantized color, "#RRGGBB"
	Percentage float64   `json:"percentage"` // Share of pixels, 0-100
	RGBA       RGBAColor `json:"rgba"`       // Quantized components, alpha 255
}

// DominantColors returns the most common colors in the buffer, most common
// first. Channels are quantized down to multiples of 16 so that near
// colors share a bucket; alpha is ignored. A count of zero or less returns
// every bucket.
func (b *Buffer) DominantColors(count int) []ColorFrequency {
	if b.Empty() {
		return nil
	}

	counts := make(map[uint32]int)
	for i := 0; i < len(b.pix); i += Channels {
		r := b.pix[i] / paletteStep * paletteStep
		g := b.pix[i+1] / paletteStep * paletteStep
		bl := b.pix[i+2] / paletteStep * paletteStep
		counts[uint32(r)<<16|uint32(g)<<8|uint32(bl)]++
	}

	total := float64(b.width * b.height)
	colors := make([]ColorFrequency, 0, len(counts))
	keys := make(map[string]int, len(counts))
	for key, n := range counts {
		c := RGBAColor{R: uint8(key >> 16), G: uint8(key >> 8), B: uint8(key), A: 255}
		hex := fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
		keys[hex] = n
		colors = append(colors, ColorFrequency{
			Hex:        hex,
			Percentage: float64(n) / total * 100,
			RGBA:       c,
		})
	}

	// Ties are broken by hex so the order is stable across runs.
	sort.Slice(colors, func(i, j int) bool {
		ni, nj := keys[colors[i].Hex], keys[colors[j].Hex]
		if ni != nj {
			return ni > nj
		}
		return colors[i].Hex < colors[j].Hex
	})

	if count > 0 && len(colors) > count {
		colors = colors[:count]
	}
	return colors
}
