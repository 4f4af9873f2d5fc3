package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // Register WebP format decoder

	"github.com/ironsheep/image-editor-mcp/internal/pixel"
)

var (
	// ErrDecode is returned when source bytes cannot be decoded.
	ErrDecode = errors.New("decode error")

	// ErrEncode is returned when a buffer cannot be encoded or written.
	ErrEncode = errors.New("encode error")

	// ErrNoImage is returned when an export is requested without a buffer.
	ErrNoImage = errors.New("no image loaded")
)

// Decode reads an encoded image from r and converts it to a buffer.
//
// The format is detected from the data, not from a file name. Returns an
// error wrapping ErrDecode for malformed data or for images with zero width
// or height.
func Decode(r io.Reader) (*pixel.Buffer, error) {
	img, err := imaging.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	buf, err := pixel.FromImage(img)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return buf, nil
}

// DecodeBytes decodes an in-memory encoded image.
func DecodeBytes(raw []byte) (*pixel.Buffer, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrDecode)
	}
	return Decode(bytes.NewReader(raw))
}

// DecodeFile opens and decodes the image at path.
//
// A missing or unreadable file is reported as ErrDecode, with the underlying
// os error preserved in the chain.
func DecodeFile(path string) (*pixel.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open image: %w", ErrDecode, err)
	}
	defer f.Close()

	buf, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return buf, nil
}
