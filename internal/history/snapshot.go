package history

import (
	"fmt"

	"github.com/klauspost/compress/zstd"

	"github.com/ironsheep/image-editor-mcp/internal/pixel"
)

// snapshot is one history entry. Exactly one of buf or packed is set.
type snapshot struct {
	buf    *pixel.Buffer
	packed []byte
	width  int
	height int
}

// compactor compresses raw NRGBA data with zstd. Encoder and decoder are
// created once and reused through EncodeAll/DecodeAll.
type compactor struct {
	enc *zstd.Encoder
	dec *zstd.Decoder
}

func newCompactor() (*compactor, error) {
	enc, err := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedFastest),
		zstd.WithEncoderConcurrency(1))
	if err != nil {
		return nil, fmt.Errorf("failed to create snapshot encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	if err != nil {
		enc.Close()
		return nil, fmt.Errorf("failed to create snapshot decoder: %w", err)
	}
	return &compactor{enc: enc, dec: dec}, nil
}

// pack compresses s in place if it is not already compressed.
func (c *compactor) pack(s *snapshot) {
	if s.buf == nil {
		return
	}
	s.width, s.height = s.buf.Width(), s.buf.Height()
	s.packed = c.enc.EncodeAll(s.buf.Bytes(), nil)
	s.buf = nil
}

// unpack restores the buffer of s in place.
func (c *compactor) unpack(s *snapshot) error {
	if s.buf != nil {
		return nil
	}
	raw, err := c.dec.DecodeAll(s.packed, make([]byte, 0, s.width*s.height*pixel.Channels))
	if err != nil {
		return fmt.Errorf("failed to expand %dx%d snapshot: %w", s.width, s.height, err)
	}
	buf, err := pixel.New(s.width, s.height, raw)
	if err != nil {
		return fmt.Errorf("failed to rebuild snapshot: %w", err)
	}
	s.buf = buf
	s.packed = nil
	return nil
}

func (c *compactor) close() {
	c.enc.Close()
	c.dec.Close()
}

// size returns the number of bytes the snapshot currently occupies.
func (s *snapshot) size() int {
	if s.buf != nil {
		return s.buf.Len() * pixel.Channels
	}
	return len(s.packed)
}
