package editor

import (
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/image-editor-mcp/internal/codec"
	"github.com/ironsheep/image-editor-mcp/internal/effects"
	"github.com/ironsheep/image-editor-mcp/internal/history"
	"github.com/ironsheep/image-editor-mcp/internal/pixel"
	"github.com/ironsheep/image-editor-mcp/internal/transform"
)

// ErrNoImage is returned by operations that need a loaded image.
var ErrNoImage = codec.ErrNoImage

// Options configures a Session.
type Options struct {
	// History tunes the undo stack (depth bound, compaction).
	History history.Options

	// PNGCompression is the compression level used for export.
	PNGCompression png.CompressionLevel

	// Logger receives structured operation logs. Nil discards them.
	Logger *logrus.Logger
}

// Session is one image editing session.
type Session struct {
	history  *history.Stack
	overlay  effects.Overlay
	exporter *codec.Exporter
	log      *logrus.Entry
	loaded   bool
}

// New creates a session with no image loaded.
func New(opts Options) (*Session, error) {
	stack, err := history.New(opts.History)
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}

	return &Session{
		history:  stack,
		exporter: codec.NewExporter(opts.PNGCompression),
		log:      logger.WithField("component", "editor"),
	}, nil
}

// Close releases resources held by the session's history.
func (s *Session) Close() {
	s.history.Close()
}

// Load decodes raw image bytes and starts a new editing session with them.
//
// On success the history is reset with the decoded buffer as its base and
// original, and every effect is cleared. On failure (an error wrapping
// codec.ErrDecode) the previous session state is untouched.
func (s *Session) Load(raw []byte) (*pixel.Buffer, error) {
	buf, err := codec.DecodeBytes(raw)
	if err != nil {
		s.log.WithError(err).Warn("Load rejected")
		return nil, err
	}
	return s.start(buf, logrus.Fields{"bytes": len(raw)})
}

// LoadFile decodes the image at path and starts a new editing session with
// it. See Load.
func (s *Session) LoadFile(path string) (*pixel.Buffer, error) {
	buf, err := codec.DecodeFile(path)
	if err != nil {
		s.log.WithError(err).WithField("path", path).Warn("Load rejected")
		return nil, err
	}
	return s.start(buf, logrus.Fields{"path": path})
}

// LoadBuffer starts a new editing session from an already decoded buffer.
func (s *Session) LoadBuffer(buf *pixel.Buffer) error {
	_, err := s.start(buf, logrus.Fields{"source": "buffer"})
	return err
}

func (s *Session) start(buf *pixel.Buffer, fields logrus.Fields) (*pixel.Buffer, error) {
	if err := s.history.Reset(buf); err != nil {
		return nil, fmt.Errorf("%w: %v", pixel.ErrInvalidDimensions, err)
	}
	s.overlay.Clear()
	s.loaded = true

	s.log.WithFields(fields).WithFields(logrus.Fields{
		"width":  buf.Width(),
		"height": buf.Height(),
	}).Info("Image loaded")
	return buf, nil
}

// ApplyGrayscale converts the current image to grayscale and commits the
// result to history.
func (s *Session) ApplyGrayscale() error {
	return s.commit("grayscale", logrus.Fields{}, transform.Grayscale)
}

// ApplyResize resamples the current image to width×height with
// nearest-neighbor mapping and commits the result to history.
//
// Returns an error wrapping transform.ErrInvalidParameter for non-positive
// dimensions.
func (s *Session) ApplyResize(width, height int) error {
	return s.commit("resize", logrus.Fields{"width": width, "height": height},
		func(src *pixel.Buffer) (*pixel.Buffer, error) {
			return transform.Resize(src, width, height)
		})
}

// ApplyCrop keeps only the pixels of the current image inside rect and
// commits the result to history. rect.Max is exclusive.
func (s *Session) ApplyCrop(rect image.Rectangle) error {
	return s.commit("crop", logrus.Fields{"region": rect.String()},
		func(src *pixel.Buffer) (*pixel.Buffer, error) {
			return transform.Crop(src, rect)
		})
}

// ApplyCropRegion crops the current image to a named region such as
// "top-left" or "center". See transform.RegionRect.
func (s *Session) ApplyCropRegion(name string) error {
	return s.commit("crop", logrus.Fields{"region": name},
		func(src *pixel.Buffer) (*pixel.Buffer, error) {
			rect, err := transform.RegionRect(name, src.Width(), src.Height())
			if err != nil {
				return nil, err
			}
			return transform.Crop(src, rect)
		})
}

// commit runs a destructive transform on the current buffer and pushes the
// result. History changes only if the transform succeeds.
func (s *Session) commit(op string, fields logrus.Fields, fn func(*pixel.Buffer) (*pixel.Buffer, error)) error {
	entry := s.log.WithField("op", op).WithFields(fields)

	src, err := s.Current()
	if err != nil {
		entry.WithError(err).Warn("Transform rejected")
		return err
	}

	out, err := fn(src)
	if err != nil {
		entry.WithError(err).Warn("Transform rejected")
		return err
	}
	if err := s.history.Push(out); err != nil {
		entry.WithError(err).Error("Failed to commit transform")
		return err
	}

	entry.WithFields(logrus.Fields{
		"result_width":  out.Width(),
		"result_height": out.Height(),
		"depth":         s.history.Depth(),
	}).Info("Transform committed")
	return nil
}

// SetEffect sets one overlay parameter. Other parameters stay as they are,
// except that box and gaussian blur replace each other.
//
// Returns ErrNoImage before a load, effects.ErrOutOfRange for a brightness
// outside [-1, 1] and effects.ErrInvalidParameter for malformed blur
// parameters. A rejected call leaves the overlay unchanged.
func (s *Session) SetEffect(kind effects.Kind, p effects.Params) error {
	entry := s.log.WithField("effect", string(kind))
	if !s.loaded {
		entry.Warn("Effect rejected: no image")
		return ErrNoImage
	}

	if err := s.overlay.Apply(kind, p); err != nil {
		entry.WithError(err).Warn("Effect rejected")
		return err
	}

	entry.WithField("active", s.overlay.Active()).Info("Effect set")
	return nil
}

// ClearEffects deactivates every overlay parameter without touching
// history.
func (s *Session) ClearEffects() {
	s.overlay.Clear()
	s.log.Debug("Effects cleared")
}

// Undo reverts the last destructive edit and clears every effect.
//
// At the base of the history, Undo leaves the original image current. Before
// any load it does nothing.
func (s *Session) Undo() {
	s.overlay.Clear()
	if !s.loaded {
		return
	}

	popped, err := s.history.Undo()
	if err != nil {
		s.log.WithError(err).Error("History snapshot lost; restored original")
	}

	cur := s.history.Current()
	s.log.WithFields(logrus.Fields{
		"popped": popped,
		"depth":  s.history.Depth(),
		"width":  cur.Width(),
		"height": cur.Height(),
	}).Info("Undo")
}

// Current returns the committed buffer at the top of history, without
// effects. Returns ErrNoImage before a load.
func (s *Session) Current() (*pixel.Buffer, error) {
	if !s.loaded {
		return nil, ErrNoImage
	}
	return s.history.Current(), nil
}

// Original returns the buffer captured at load time.
func (s *Session) Original() (*pixel.Buffer, error) {
	if !s.loaded {
		return nil, ErrNoImage
	}
	return s.history.Original(), nil
}

// Render returns the current buffer with the overlay resolved into its
// pixels, as it should be displayed. With no active effects this is the
// committed buffer itself.
func (s *Session) Render() (*pixel.Buffer, error) {
	cur, err := s.Current()
	if err != nil {
		return nil, err
	}
	return s.overlay.Render(cur)
}

// Export renders the current image with its effects and writes it as a PNG
// file at path.
//
// Returns ErrNoImage before a load and an error wrapping codec.ErrEncode on
// write failure.
func (s *Session) Export(path string) error {
	entry := s.log.WithField("path", path)

	rendered, err := s.Render()
	if err != nil {
		entry.WithError(err).Warn("Export rejected")
		return err
	}
	if err := s.exporter.Export(rendered, path); err != nil {
		entry.WithError(err).Error("Export failed")
		return err
	}

	entry.WithFields(logrus.Fields{
		"width":   rendered.Width(),
		"height":  rendered.Height(),
		"effects": s.overlay.Active(),
	}).Info("Image exported")
	return nil
}

// ExportTo renders the current image with its effects and writes it to w as
// PNG.
func (s *Session) ExportTo(w io.Writer) error {
	rendered, err := s.Render()
	if err != nil {
		return err
	}
	return s.exporter.Encode(w, rendered)
}

// EncodeCurrent encodes either the rendered view or, when committed is
// true, the effect-free committed buffer as PNG bytes.
func (s *Session) EncodeCurrent(committed bool) (*pixel.Buffer, []byte, error) {
	var (
		buf *pixel.Buffer
		err error
	)
	if committed {
		buf, err = s.Current()
	} else {
		buf, err = s.Render()
	}
	if err != nil {
		return nil, nil, err
	}

	data, err := s.exporter.EncodeBytes(buf)
	if err != nil {
		return nil, nil, err
	}
	return buf, data, nil
}

// Status summarizes the session for presentation layers.
type Status struct {
	Loaded         bool             `json:"loaded"`
	Width          int              `json:"width,omitempty"`
	Height         int              `json:"height,omitempty"`
	OriginalWidth  int              `json:"original_width,omitempty"`
	OriginalHeight int              `json:"original_height,omitempty"`
	CanUndo        bool             `json:"can_undo"`
	History        history.Stats    `json:"history"`
	Effects        effects.Settings `json:"effects"`
	EffectsActive  bool             `json:"effects_active"`
}

// Status returns the current session summary.
func (s *Session) Status() Status {
	st := Status{
		Loaded:        s.loaded,
		History:       s.history.Stats(),
		Effects:       s.overlay.Settings(),
		EffectsActive: s.overlay.Active(),
	}
	if !s.loaded {
		return st
	}

	cur := s.history.Current()
	orig := s.history.Original()
	st.Width, st.Height = cur.Width(), cur.Height()
	st.OriginalWidth, st.OriginalHeight = orig.Width(), orig.Height()
	st.CanUndo = s.history.CanUndo()
	return st
}
