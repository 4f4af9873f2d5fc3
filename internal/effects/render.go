package effects

import (
	"image"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/imaging"

	"github.com/ironsheep/image-editor-mcp/internal/pixel"
)

// Render resolves the overlay against src and returns the composited buffer.
//
// When no parameter is active, src itself is returned. Otherwise a new
// buffer is built by applying brightness, then the blur family, then sepia.
// src is never modified.
func (o *Overlay) Render(src *pixel.Buffer) (*pixel.Buffer, error) {
	if src.Empty() || !o.Active() {
		return src, nil
	}

	var img image.Image = src

	if o.brightnessActive() {
		img = imaging.AdjustBrightness(img, o.brightness*100)
	}

	switch {
	case o.blur == blurBox && o.boxKernel > 1:
		radius := float64(o.boxKernel-1) / 2
		for i := 0; i < o.boxIterations; i++ {
			img = blur.Box(img, radius)
		}
	case o.blur == blurGaussian && o.gaussianRadius > 0:
		img = imaging.Blur(img, o.gaussianRadius/3)
	}

	if o.sepia {
		img = effect.Sepia(img)
	}

	return pixel.FromImage(img)
}
