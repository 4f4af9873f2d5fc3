package transform

import (
	"errors"
	"image"
	"testing"
)

func TestCrop(t *testing.T) {
	src := createNoiseBuffer(t, 10, 8)

	out, err := Crop(src, image.Rect(2, 3, 7, 8))
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}
	if out.Width() != 5 || out.Height() != 5 {
		t.Fatalf("size: got %dx%d, want 5x5", out.Width(), out.Height())
	}

	for y := 0; y < out.Height(); y++ {
		for x := 0; x < out.Width(); x++ {
			if got, want := out.NRGBAAt(x, y), src.NRGBAAt(x+2, y+3); got != want {
				t.Fatalf("pixel (%d,%d): got %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestCrop_FullImage(t *testing.T) {
	src := createNoiseBuffer(t, 6, 4)

	out, err := Crop(src, src.Bounds())
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}
	if !out.Equal(src) {
		t.Error("cropping to the full bounds should reproduce the source")
	}
}

func TestCrop_Invalid(t *testing.T) {
	src := createCornerBuffer(t)

	tests := []struct {
		name string
		rect image.Rectangle
	}{
		{"empty", image.Rect(1, 1, 1, 2)},
		{"past right edge", image.Rect(0, 0, 3, 2)},
		{"negative origin", image.Rect(-1, 0, 1, 1)},
		{"inverted", image.Rectangle{Min: image.Pt(2, 2), Max: image.Pt(0, 0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Crop(src, tt.rect); !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("got %v, want ErrInvalidParameter", err)
			}
		})
	}

	if _, err := Crop(nil, image.Rect(0, 0, 1, 1)); !errors.Is(err, ErrEmptySource) {
		t.Errorf("nil source: got %v, want ErrEmptySource", err)
	}
}

func TestRegionRect(t *testing.T) {
	tests := []struct {
		region string
		want   image.Rectangle
	}{
		{"top-left", image.Rect(0, 0, 50, 40)},
		{"top-right", image.Rect(50, 0, 100, 40)},
		{"bottom-left", image.Rect(0, 40, 50, 80)},
		{"bottom-right", image.Rect(50, 40, 100, 80)},
		{"top-half", image.Rect(0, 0, 100, 40)},
		{"bottom-half", image.Rect(0, 40, 100, 80)},
		{"left-half", image.Rect(0, 0, 50, 80)},
		{"right-half", image.Rect(50, 0, 100, 80)},
		{"center", image.Rect(25, 20, 75, 60)},
		{" Center ", image.Rect(25, 20, 75, 60)},
	}

	for _, tt := range tests {
		t.Run(tt.region, func(t *testing.T) {
			got, err := RegionRect(tt.region, 100, 80)
			if err != nil {
				t.Fatalf("RegionRect failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}

	if len(Regions) != 9 {
		t.Errorf("Regions: got %d names, want 9", len(Regions))
	}
	if _, err := RegionRect("middle", 100, 80); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("unknown region: got %v, want ErrInvalidParameter", err)
	}
}
