package history

import (
	"errors"

	"github.com/ironsheep/image-editor-mcp/internal/pixel"
)

// ErrNilBuffer is returned when a nil or empty buffer is pushed or used as
// the initial state.
var ErrNilBuffer = errors.New("history: nil or empty buffer")

// Options tunes a Stack. The zero value gives an unbounded, uncompressed
// stack.
type Options struct {
	// MaxDepth bounds the number of snapshots. When a push exceeds it, the
	// oldest snapshot is evicted. 0 means unbounded.
	MaxDepth int

	// Compact stores snapshots below the top compressed.
	Compact bool
}

// Stack is the undo history of one editing session.
type Stack struct {
	opts     Options
	original *pixel.Buffer
	entries  []snapshot
	packer   *compactor
	evicted  int
}

// New creates an empty stack. Until Reset is called, Current returns nil.
//
// Returns an error only if Compact is requested and the zstd codec cannot
// be initialized.
func New(opts Options) (*Stack, error) {
	if opts.MaxDepth < 0 {
		opts.MaxDepth = 0
	}
	s := &Stack{opts: opts}
	if opts.Compact {
		c, err := newCompactor()
		if err != nil {
			return nil, err
		}
		s.packer = c
	}
	return s, nil
}

// Reset discards all history and makes initial both the base snapshot and
// the retained original.
func (s *Stack) Reset(initial *pixel.Buffer) error {
	if initial.Empty() {
		return ErrNilBuffer
	}
	s.original = initial
	s.entries = []snapshot{{buf: initial}}
	s.evicted = 0
	return nil
}

// Push commits buf as the new current state.
func (s *Stack) Push(buf *pixel.Buffer) error {
	if buf.Empty() {
		return ErrNilBuffer
	}
	if s.packer != nil && len(s.entries) > 0 {
		s.packer.pack(&s.entries[len(s.entries)-1])
	}
	s.entries = append(s.entries, snapshot{buf: buf})

	if s.opts.MaxDepth > 0 && len(s.entries) > s.opts.MaxDepth {
		drop := len(s.entries) - s.opts.MaxDepth
		// Clear dropped entries so their pixel data can be collected.
		for i := 0; i < drop; i++ {
			s.entries[i] = snapshot{}
		}
		s.entries = append(s.entries[:0], s.entries[drop:]...)
		s.evicted += drop
	}
	return nil
}

// Undo removes the current state.
//
// With more than one snapshot, the top is popped and the one below becomes
// current. With one snapshot or none, the stack collapses to the original
// alone; when the single snapshot already is the original this is a no-op.
// The returned bool reports whether the current state changed.
//
// An error is returned only if a compacted snapshot cannot be expanded. In
// that case the history falls back to the original alone.
func (s *Stack) Undo() (bool, error) {
	if len(s.entries) <= 1 {
		if s.original == nil {
			return false, nil
		}
		changed := !s.atOriginal()
		s.entries = []snapshot{{buf: s.original}}
		return changed, nil
	}

	s.entries[len(s.entries)-1] = snapshot{}
	s.entries = s.entries[:len(s.entries)-1]

	if s.packer != nil {
		if err := s.packer.unpack(&s.entries[len(s.entries)-1]); err != nil {
			s.entries = []snapshot{{buf: s.original}}
			return true, err
		}
	}
	return true, nil
}

// Current returns the top snapshot, or the original if the stack holds no
// snapshots. It returns nil only before the first Reset.
func (s *Stack) Current() *pixel.Buffer {
	if n := len(s.entries); n > 0 && s.entries[n-1].buf != nil {
		return s.entries[n-1].buf
	}
	return s.original
}

// Original returns the buffer captured by the last Reset.
func (s *Stack) Original() *pixel.Buffer {
	return s.original
}

// Depth returns the number of snapshots, including the base.
func (s *Stack) Depth() int {
	return len(s.entries)
}

// CanUndo reports whether Undo would change the current state.
func (s *Stack) CanUndo() bool {
	return len(s.entries) > 1 || !s.atOriginal()
}

// atOriginal reports whether the stack holds a single snapshot whose pixels
// are the original's. After eviction the last survivor may be an edit, and
// an expanded base is a copy rather than the original itself.
func (s *Stack) atOriginal() bool {
	if s.original == nil {
		return true
	}
	if len(s.entries) != 1 {
		return false
	}
	top := s.entries[0].buf
	return top == s.original || top.Equal(s.original)
}

// Stats describes the memory held by the stack.
type Stats struct {
	Depth     int  `json:"depth"`
	MaxDepth  int  `json:"max_depth"`
	Evicted   int  `json:"evicted"`
	Compacted bool `json:"compacted"`
	Bytes     int  `json:"bytes"`
}

// Stats returns the current depth, eviction count and snapshot bytes. The
// original is counted only when it is still a snapshot.
func (s *Stack) Stats() Stats {
	st := Stats{
		Depth:     len(s.entries),
		MaxDepth:  s.opts.MaxDepth,
		Evicted:   s.evicted,
		Compacted: s.packer != nil,
	}
	for i := range s.entries {
		st.Bytes += s.entries[i].size()
	}
	return st
}

// Close releases the compression codec. The stack must not be used after
// Close.
func (s *Stack) Close() {
	if s.packer != nil {
		s.packer.close()
		s.packer = nil
	}
}
