package effects

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Defaults match the fixed effects of the desktop editor this overlay
// replaces.
const (
	DefaultBoxKernel      = 5
	DefaultBoxIterations  = 3
	DefaultGaussianRadius = 10.0

	// MaxBoxIterations caps repeated box passes; three passes already
	// approximate a gaussian.
	MaxBoxIterations = 3
)

var (
	// ErrOutOfRange is returned for a brightness delta outside [-1, 1].
	ErrOutOfRange = errors.New("value out of range")

	// ErrInvalidParameter is returned for malformed blur parameters or an
	// unknown effect kind.
	ErrInvalidParameter = errors.New("invalid effect parameter")
)

// Kind names an overlay parameter.
type Kind string

const (
	KindBlur       Kind = "blur"
	KindBrightness Kind = "brightness"
	KindSepia      Kind = "sepia"
	KindGaussian   Kind = "gaussian"
)

// Kinds lists every effect kind in render order.
var Kinds = []Kind{KindBrightness, KindBlur, KindGaussian, KindSepia}

// ParseKind converts a case-insensitive name into a Kind.
func ParseKind(name string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: unknown effect %q", ErrInvalidParameter, name)
}

// Params carries the arguments for Apply. Only the fields relevant to the
// chosen Kind are read.
type Params struct {
	Kernel     int     // blur: box kernel size in pixels
	Iterations int     // blur: number of box passes
	Delta      float64 // brightness: -1.0 (black) to 1.0 (white)
	Enabled    bool    // sepia
	Radius     float64 // gaussian: blur radius in pixels
}

type blurMode int

const (
	blurNone blurMode = iota
	blurBox
	blurGaussian
)

// Overlay is the set of active view-layer effects. The zero value has no
// active effects and is ready to use.
type Overlay struct {
	brightness    float64
	brightnessSet bool

	blur           blurMode
	boxKernel      int
	boxIterations  int
	gaussianRadius float64

	sepia bool
}

// SetBoxBlur activates a box blur with the given kernel size and number of
// passes, replacing any gaussian blur.
//
// Returns ErrInvalidParameter if kernel < 1 or iterations is outside
// [1, MaxBoxIterations]. On error the overlay is unchanged.
func (o *Overlay) SetBoxBlur(kernel, iterations int) error {
	if kernel < 1 {
		return fmt.Errorf("%w: box kernel %d must be at least 1", ErrInvalidParameter, kernel)
	}
	if iterations < 1 || iterations > MaxBoxIterations {
		return fmt.Errorf("%w: box iterations %d must be in [1, %d]",
			ErrInvalidParameter, iterations, MaxBoxIterations)
	}
	o.blur = blurBox
	o.boxKernel = kernel
	o.boxIterations = iterations
	o.gaussianRadius = 0
	return nil
}

// SetBrightness sets an additive brightness adjustment.
//
// Returns ErrOutOfRange if delta is outside [-1, 1] or NaN. On error the
// overlay is unchanged.
func (o *Overlay) SetBrightness(delta float64) error {
	if math.IsNaN(delta) || delta < -1 || delta > 1 {
		return fmt.Errorf("%w: brightness %v must be between -1 and 1", ErrOutOfRange, delta)
	}
	o.brightness = delta
	o.brightnessSet = true
	return nil
}

// SetSepia turns the sepia tone on or off.
func (o *Overlay) SetSepia(enabled bool) {
	o.sepia = enabled
}

// SetGaussian activates a gaussian blur with the given radius, replacing
// any box blur. A radius of 0 is accepted and renders as no blur.
//
// Returns ErrInvalidParameter for a negative, infinite or NaN radius.
func (o *Overlay) SetGaussian(radius float64) error {
	if math.IsNaN(radius) || math.IsInf(radius, 0) || radius < 0 {
		return fmt.Errorf("%w: gaussian radius %v must be non-negative", ErrInvalidParameter, radius)
	}
	o.blur = blurGaussian
	o.gaussianRadius = radius
	o.boxKernel = 0
	o.boxIterations = 0
	return nil
}

// Apply sets the parameter named by kind from p.
func (o *Overlay) Apply(kind Kind, p Params) error {
	switch kind {
	case KindBlur:
		return o.SetBoxBlur(p.Kernel, p.Iterations)
	case KindBrightness:
		return o.SetBrightness(p.Delta)
	case KindSepia:
		o.SetSepia(p.Enabled)
		return nil
	case KindGaussian:
		return o.SetGaussian(p.Radius)
	default:
		return fmt.Errorf("%w: unknown effect %q", ErrInvalidParameter, kind)
	}
}

// Clear deactivates every parameter.
func (o *Overlay) Clear() {
	*o = Overlay{}
}

// Active reports whether any parameter would change a rendered image.
func (o *Overlay) Active() bool {
	return o.brightnessActive() || o.blurActive() || o.sepia
}

func (o *Overlay) brightnessActive() bool {
	return o.brightnessSet && o.brightness != 0
}

func (o *Overlay) blurActive() bool {
	switch o.blur {
	case blurBox:
		return o.boxKernel > 1
	case blurGaussian:
		return o.gaussianRadius > 0
	}
	return false
}

// BoxBlurSettings describes an active box blur.
type BoxBlurSettings struct {
	Kernel     int `json:"kernel"`
	Iterations int `json:"iterations"`
}

// Settings is a snapshot of the overlay suitable for status reporting.
// Inactive parameters are nil or false.
type Settings struct {
	Brightness     *float64         `json:"brightness,omitempty"`
	BoxBlur        *BoxBlurSettings `json:"box_blur,omitempty"`
	GaussianRadius *float64         `json:"gaussian_radius,omitempty"`
	Sepia          bool             `json:"sepia"`
}

// Settings returns the current parameters.
func (o *Overlay) Settings() Settings {
	var s Settings
	if o.brightnessSet {
		v := o.brightness
		s.Brightness = &v
	}
	switch o.blur {
	case blurBox:
		s.BoxBlur = &BoxBlurSettings{Kernel: o.boxKernel, Iterations: o.boxIterations}
	case blurGaussian:
		v := o.gaussianRadius
		s.GaussianRadius = &v
	}
	s.Sepia = o.sepia
	return s
}
