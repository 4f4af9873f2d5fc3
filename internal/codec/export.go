package codec

import (
	"bytes"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/image-editor-mcp/internal/pixel"
)

// Exporter writes buffers as PNG files.
//
// The buffer passed to an Exporter must already have any view-layer effects
// resolved into its pixels; an Exporter never sees effect parameters.
type Exporter struct {
	compression png.CompressionLevel
}

// NewExporter creates an exporter using the given PNG compression level.
// Every level is lossless; the level trades file size against speed.
func NewExporter(level png.CompressionLevel) *Exporter {
	return &Exporter{compression: level}
}

// Encode writes buf to w as PNG.
//
// Returns ErrNoImage for a nil or empty buffer and an error wrapping
// ErrEncode if encoding or writing fails.
func (e *Exporter) Encode(w io.Writer, buf *pixel.Buffer) error {
	if buf.Empty() {
		return ErrNoImage
	}
	if err := imaging.Encode(w, buf.NRGBA(), imaging.PNG, imaging.PNGCompressionLevel(e.compression)); err != nil {
		return fmt.Errorf("%w: failed to encode png: %v", ErrEncode, err)
	}
	return nil
}

// EncodeBytes encodes buf as PNG into memory.
func (e *Exporter) EncodeBytes(buf *pixel.Buffer) ([]byte, error) {
	var out bytes.Buffer
	if err := e.Encode(&out, buf); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// Export writes buf as a PNG file at path.
//
// The image is written to a temporary file in the destination directory and
// renamed into place, so a failed export never leaves a truncated file at
// path. An existing file at path is replaced.
//
// Returns ErrNoImage for a nil or empty buffer and an error wrapping
// ErrEncode for any encode or file system failure.
func (e *Exporter) Export(buf *pixel.Buffer, path string) error {
	if buf.Empty() {
		return ErrNoImage
	}
	if path == "" {
		return fmt.Errorf("%w: empty export path", ErrEncode)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".export-*.png")
	if err != nil {
		return fmt.Errorf("%w: failed to create file: %w", ErrEncode, err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		tmp.Close()
		os.Remove(tmpName)
	}

	if err := e.Encode(tmp, buf); err != nil {
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: failed to write file: %w", ErrEncode, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: failed to move file into place: %w", ErrEncode, err)
	}
	return nil
}
