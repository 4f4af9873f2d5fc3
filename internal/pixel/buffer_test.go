package pixel

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestNew(t *testing.T) {
	data := []uint8{
		255, 0, 0, 255, 0, 255, 0, 255,
		0, 0, 255, 255, 255, 255, 255, 128,
	}
	b, err := New(2, 2, data)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if b.Width() != 2 || b.Height() != 2 {
		t.Errorf("dimensions: got %dx%d, want 2x2", b.Width(), b.Height())
	}
	if b.Len() != 4 {
		t.Errorf("Len: got %d, want 4", b.Len())
	}

	// Mutating the caller's slice must not affect the buffer.
	data[0] = 7
	c, _ := b.Pixel(0, 0)
	if c.R != 255 {
		t.Errorf("buffer aliased input data: R = %d", c.R)
	}
}

func TestNew_InvalidDimensions(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		dataLen       int
	}{
		{"zero width", 0, 2, 0},
		{"zero height", 2, 0, 0},
		{"negative width", -1, 2, 8},
		{"short data", 2, 2, 15},
		{"long data", 2, 2, 17},
		{"rgb only", 2, 2, 12},
		{"length overflows", 1, 1 << 62, 0},
		{"too many pixels", MaxPixels, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.width, tt.height, make([]uint8, tt.dataLen))
			if !errors.Is(err, ErrInvalidDimensions) {
				t.Errorf("got %v, want ErrInvalidDimensions", err)
			}
		})
	}
}

func TestGenerate_TooLarge(t *testing.T) {
	called := false
	_, err := Generate(1<<31, 1<<31, func(int, int) color.NRGBA {
		called = true
		return color.NRGBA{}
	})
	if !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("got %v, want ErrInvalidDimensions", err)
	}
	if called {
		t.Error("Generate evaluated pixels for a rejected size")
	}
}

func TestCheckDimensions_Limit(t *testing.T) {
	if err := CheckDimensions(MaxPixels, 1); err != nil {
		t.Errorf("MaxPixels x 1: got %v, want nil", err)
	}
	if err := CheckDimensions(MaxPixels+1, 1); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("MaxPixels+1 x 1: got %v, want ErrInvalidDimensions", err)
	}
}

func TestPixel_OutOfBounds(t *testing.T) {
	b, err := Filled(3, 2, color.NRGBA{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("Filled failed: %v", err)
	}

	tests := []struct {
		name string
		x, y int
	}{
		{"x equals width", 3, 0},
		{"y equals height", 0, 2},
		{"negative x", -1, 0},
		{"negative y", 0, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := b.Pixel(tt.x, tt.y); !errors.Is(err, ErrOutOfBounds) {
				t.Errorf("Pixel(%d,%d): got %v, want ErrOutOfBounds", tt.x, tt.y, err)
			}
		})
	}

	c, err := b.Pixel(2, 1)
	if err != nil {
		t.Fatalf("Pixel(2,1) failed: %v", err)
	}
	if c != (color.NRGBA{1, 2, 3, 4}) {
		t.Errorf("Pixel(2,1): got %v", c)
	}
}

func TestGenerate_RowMajor(t *testing.T) {
	b, err := Generate(3, 2, func(x, y int) color.NRGBA {
		return color.NRGBA{uint8(x), uint8(y), 0, 255}
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	data := b.Bytes()
	// Pixel (1,1) lives at index (1*3+1)*4.
	if data[16] != 1 || data[17] != 1 {
		t.Errorf("pixel (1,1) at wrong offset: %v", data[16:20])
	}
	if len(data) != 3*2*Channels {
		t.Errorf("data length: got %d, want %d", len(data), 3*2*Channels)
	}
}

func TestBytes_ReturnsCopy(t *testing.T) {
	b, _ := Filled(1, 1, color.NRGBA{10, 20, 30, 40})
	data := b.Bytes()
	data[0] = 99

	c, _ := b.Pixel(0, 0)
	if c.R != 10 {
		t.Errorf("Bytes exposed internal storage: R = %d", c.R)
	}
}

func TestFromImage(t *testing.T) {
	src := image.NewNRGBA(image.Rect(10, 10, 14, 12))
	src.SetNRGBA(10, 10, color.NRGBA{200, 100, 50, 128})
	src.SetNRGBA(13, 11, color.NRGBA{1, 2, 3, 255})

	b, err := FromImage(src)
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}
	if b.Width() != 4 || b.Height() != 2 {
		t.Fatalf("dimensions: got %dx%d, want 4x2", b.Width(), b.Height())
	}

	// Origin is translated to (0,0) and straight alpha survives.
	if c := b.NRGBAAt(0, 0); c != (color.NRGBA{200, 100, 50, 128}) {
		t.Errorf("(0,0): got %v", c)
	}
	if c := b.NRGBAAt(3, 1); c != (color.NRGBA{1, 2, 3, 255}) {
		t.Errorf("(3,1): got %v", c)
	}
}

func TestFromImage_Empty(t *testing.T) {
	if _, err := FromImage(image.NewRGBA(image.Rect(0, 0, 0, 0))); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("empty image: got %v, want ErrInvalidDimensions", err)
	}
	if _, err := FromImage(nil); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("nil image: got %v, want ErrInvalidDimensions", err)
	}
}

func TestBuffer_ImplementsImage(t *testing.T) {
	var _ image.Image = (*Buffer)(nil)

	b, _ := Filled(5, 4, color.NRGBA{9, 8, 7, 6})
	if b.Bounds() != image.Rect(0, 0, 5, 4) {
		t.Errorf("Bounds: got %v", b.Bounds())
	}
	if b.ColorModel() != color.NRGBAModel {
		t.Error("ColorModel should be NRGBAModel")
	}
	if got := b.At(10, 10); got != (color.NRGBA{}) {
		t.Errorf("At outside bounds: got %v, want zero color", got)
	}
}

func TestEqual(t *testing.T) {
	a, _ := Filled(2, 2, color.NRGBA{1, 1, 1, 255})
	same, _ := Filled(2, 2, color.NRGBA{1, 1, 1, 255})
	other, _ := Filled(2, 2, color.NRGBA{2, 1, 1, 255})
	wide, _ := Filled(4, 1, color.NRGBA{1, 1, 1, 255})

	if !a.Equal(same) {
		t.Error("identical buffers should be equal")
	}
	if a.Equal(other) {
		t.Error("buffers with different pixels should not be equal")
	}
	if a.Equal(wide) {
		t.Error("buffers with different shapes should not be equal")
	}
	if a.Equal(nil) {
		t.Error("buffer should not equal nil")
	}
}

func TestNRGBA(t *testing.T) {
	b, _ := Filled(3, 3, color.NRGBA{4, 5, 6, 7})
	img := b.NRGBA()

	if img.Stride != 12 {
		t.Errorf("Stride: got %d, want 12", img.Stride)
	}
	if img.NRGBAAt(2, 2) != (color.NRGBA{4, 5, 6, 7}) {
		t.Errorf("NRGBAAt(2,2): got %v", img.NRGBAAt(2, 2))
	}

	img.Pix[0] = 0
	if b.NRGBAAt(0, 0).R != 4 {
		t.Error("NRGBA exposed internal storage")
	}
}

func TestEmpty(t *testing.T) {
	var nilBuf *Buffer
	if !nilBuf.Empty() {
		t.Error("nil buffer should be empty")
	}
	if !(&Buffer{}).Empty() {
		t.Error("zero buffer should be empty")
	}
	b, _ := Filled(1, 1, color.NRGBA{})
	if b.Empty() {
		t.Error("1x1 buffer should not be empty")
	}
}
