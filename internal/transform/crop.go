package transform

import (
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/image-editor-mcp/internal/pixel"
)

// Regions lists the names accepted by RegionRect.
var Regions = []string{
	"top-left", "top-right", "bottom-left", "bottom-right",
	"top-half", "bottom-half", "left-half", "right-half",
	"center",
}

// Crop returns the pixels of src inside rect, where rect.Max is exclusive.
//
// Returns ErrEmptySource for an empty source and ErrInvalidParameter if
// rect is empty or not fully inside the source.
func Crop(src *pixel.Buffer, rect image.Rectangle) (*pixel.Buffer, error) {
	if src.Empty() {
		return nil, ErrEmptySource
	}
	if rect.Empty() {
		return nil, fmt.Errorf("%w: crop region %v is empty", ErrInvalidParameter, rect)
	}
	if !rect.In(src.Bounds()) {
		return nil, fmt.Errorf("%w: crop region %v outside image bounds %v",
			ErrInvalidParameter, rect, src.Bounds())
	}
	return pixel.FromImage(imaging.Crop(src, rect))
}

// RegionRect maps a named region onto a width×height image. The halves and
// quadrants split at width/2 and height/2; "center" is the middle half in
// each direction.
func RegionRect(name string, width, height int) (image.Rectangle, error) {
	midX, midY := width/2, height/2

	switch strings.ToLower(strings.TrimSpace(name)) {
	case "top-left":
		return image.Rect(0, 0, midX, midY), nil
	case "top-right":
		return image.Rect(midX, 0, width, midY), nil
	case "bottom-left":
		return image.Rect(0, midY, midX, height), nil
	case "bottom-right":
		return image.Rect(midX, midY, width, height), nil
	case "top-half":
		return image.Rect(0, 0, width, midY), nil
	case "bottom-half":
		return image.Rect(0, midY, width, height), nil
	case "left-half":
		return image.Rect(0, 0, midX, height), nil
	case "right-half":
		return image.Rect(midX, 0, width, height), nil
	case "center":
		qW, qH := width/4, height/4
		return image.Rect(qW, qH, width-qW, height-qH), nil
	default:
		return image.Rectangle{}, fmt.Errorf("%w: unknown region %q", ErrInvalidParameter, name)
	}
}
