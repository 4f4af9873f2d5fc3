package history

import (
	"errors"
	"image/color"
	"testing"

	"github.com/ironsheep/image-editor-mcp/internal/pixel"
)

// createBuffer creates a small buffer whose pixels depend on seed, so
// different seeds give distinguishable states.
func createBuffer(t *testing.T, seed int) *pixel.Buffer {
	t.Helper()
	b, err := pixel.Generate(6, 4, func(x, y int) color.NRGBA {
		return color.NRGBA{uint8(seed*31 + x), uint8(seed*17 + y), uint8(seed), 255}
	})
	if err != nil {
		t.Fatalf("failed to create buffer: %v", err)
	}
	return b
}

func newStack(t *testing.T, opts Options) *Stack {
	t.Helper()
	s, err := New(opts)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func TestStack_CurrentBeforeReset(t *testing.T) {
	s := newStack(t, Options{})
	if s.Current() != nil {
		t.Error("Current before Reset should be nil")
	}
	if popped, err := s.Undo(); popped || err != nil {
		t.Errorf("Undo before Reset: got (%v, %v), want (false, nil)", popped, err)
	}
}

func TestStack_Reset(t *testing.T) {
	s := newStack(t, Options{})
	orig := createBuffer(t, 1)

	if err := s.Reset(orig); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if s.Current() != orig || s.Original() != orig {
		t.Error("Reset should make initial both current and original")
	}
	if s.Depth() != 1 {
		t.Errorf("Depth: got %d, want 1", s.Depth())
	}

	_ = s.Push(createBuffer(t, 2))
	_ = s.Push(createBuffer(t, 3))

	next := createBuffer(t, 9)
	if err := s.Reset(next); err != nil {
		t.Fatalf("second Reset failed: %v", err)
	}
	if s.Depth() != 1 || s.Original() != next {
		t.Error("Reset should discard previous history")
	}
}

func TestStack_RejectsEmpty(t *testing.T) {
	s := newStack(t, Options{})
	if err := s.Reset(nil); !errors.Is(err, ErrNilBuffer) {
		t.Errorf("Reset(nil): got %v, want ErrNilBuffer", err)
	}
	_ = s.Reset(createBuffer(t, 1))
	if err := s.Push(nil); !errors.Is(err, ErrNilBuffer) {
		t.Errorf("Push(nil): got %v, want ErrNilBuffer", err)
	}
	if s.Depth() != 1 {
		t.Errorf("rejected push changed depth to %d", s.Depth())
	}
}

func TestStack_UndoOnFreshHistory(t *testing.T) {
	s := newStack(t, Options{})
	orig := createBuffer(t, 1)
	_ = s.Reset(orig)

	for i := 0; i < 5; i++ {
		popped, err := s.Undo()
		if err != nil {
			t.Fatalf("Undo %d failed: %v", i, err)
		}
		if popped {
			t.Errorf("Undo %d on base should be a no-op", i)
		}
		if !s.Current().Equal(orig) {
			t.Fatalf("Undo %d changed the original", i)
		}
		if s.Depth() != 1 {
			t.Fatalf("Undo %d left depth %d, want 1", i, s.Depth())
		}
	}
}

func TestStack_PushThenUndo(t *testing.T) {
	for _, compact := range []bool{false, true} {
		name := "plain"
		if compact {
			name = "compact"
		}
		t.Run(name, func(t *testing.T) {
			s := newStack(t, Options{Compact: compact})
			states := []*pixel.Buffer{createBuffer(t, 1), createBuffer(t, 2), createBuffer(t, 3), createBuffer(t, 4)}

			_ = s.Reset(states[0])
			for _, b := range states[1:] {
				if err := s.Push(b); err != nil {
					t.Fatalf("Push failed: %v", err)
				}
			}
			if s.Depth() != len(states) {
				t.Fatalf("Depth: got %d, want %d", s.Depth(), len(states))
			}

			for i := len(states) - 1; i > 0; i-- {
				if !s.Current().Equal(states[i]) {
					t.Fatalf("state %d: current mismatch before undo", i)
				}
				popped, err := s.Undo()
				if err != nil {
					t.Fatalf("Undo failed: %v", err)
				}
				if !popped {
					t.Fatalf("Undo from depth %d should pop", i+1)
				}
				if !s.Current().Equal(states[i-1]) {
					t.Fatalf("after undo: want state %d", i-1)
				}
			}
		})
	}
}

func TestStack_CompactShrinksHistory(t *testing.T) {
	s := newStack(t, Options{Compact: true})
	// Uniform buffers compress very well.
	big, _ := pixel.Filled(64, 64, color.NRGBA{10, 20, 30, 255})
	bigger, _ := pixel.Filled(64, 64, color.NRGBA{40, 50, 60, 255})

	_ = s.Reset(big)
	_ = s.Push(bigger)

	st := s.Stats()
	raw := 2 * 64 * 64 * pixel.Channels
	if st.Bytes >= raw {
		t.Errorf("compacted bytes %d should be less than raw %d", st.Bytes, raw)
	}
	if !st.Compacted {
		t.Error("Stats should report compaction")
	}
}

func TestStack_MaxDepthEvictsOldest(t *testing.T) {
	s := newStack(t, Options{MaxDepth: 3})
	orig := createBuffer(t, 0)
	_ = s.Reset(orig)

	edits := []*pixel.Buffer{createBuffer(t, 1), createBuffer(t, 2), createBuffer(t, 3), createBuffer(t, 4)}
	for _, b := range edits {
		_ = s.Push(b)
	}

	if s.Depth() != 3 {
		t.Fatalf("Depth: got %d, want 3", s.Depth())
	}
	if st := s.Stats(); st.Evicted != 2 {
		t.Errorf("Evicted: got %d, want 2", st.Evicted)
	}

	// Surviving snapshots are edits 2..4.
	_, _ = s.Undo()
	if !s.Current().Equal(edits[2]) {
		t.Error("first undo should expose edit 3")
	}
	_, _ = s.Undo()
	if !s.Current().Equal(edits[1]) {
		t.Error("second undo should expose edit 2")
	}

	// The last survivor is an edit; undoing it falls back to the original.
	popped, err := s.Undo()
	if err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if !popped {
		t.Error("undoing the last surviving edit should change state")
	}
	if s.Current() != orig {
		t.Error("exhausted history should resolve to the original")
	}
	if s.Depth() != 1 {
		t.Errorf("Depth after exhausting: got %d, want 1", s.Depth())
	}
}

func TestStack_MaxDepthWithCompact(t *testing.T) {
	s := newStack(t, Options{MaxDepth: 2, Compact: true})
	_ = s.Reset(createBuffer(t, 0))
	a, b, c := createBuffer(t, 1), createBuffer(t, 2), createBuffer(t, 3)
	_ = s.Push(a)
	_ = s.Push(b)
	_ = s.Push(c)

	if _, err := s.Undo(); err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if !s.Current().Equal(b) {
		t.Error("undo should expand the compacted snapshot exactly")
	}
}

func TestStack_NegativeMaxDepthIsUnbounded(t *testing.T) {
	s := newStack(t, Options{MaxDepth: -5})
	_ = s.Reset(createBuffer(t, 0))
	for i := 1; i <= 10; i++ {
		_ = s.Push(createBuffer(t, i))
	}
	if s.Depth() != 11 {
		t.Errorf("Depth: got %d, want 11", s.Depth())
	}
}

func TestStack_CanUndo(t *testing.T) {
	s := newStack(t, Options{})
	_ = s.Reset(createBuffer(t, 0))
	if s.CanUndo() {
		t.Error("CanUndo should be false at the base")
	}
	_ = s.Push(createBuffer(t, 1))
	if !s.CanUndo() {
		t.Error("CanUndo should be true after a push")
	}
}

func TestStack_CanUndoAfterEviction(t *testing.T) {
	s := newStack(t, Options{MaxDepth: 1})
	_ = s.Reset(createBuffer(t, 0))
	_ = s.Push(createBuffer(t, 1))

	if s.Depth() != 1 {
		t.Fatalf("Depth: got %d, want 1", s.Depth())
	}
	if !s.CanUndo() {
		t.Error("an evicted base still leaves the original to return to")
	}
	_, _ = s.Undo()
	if s.CanUndo() {
		t.Error("CanUndo should be false once the original is current")
	}
}

func TestStack_CompactUndoAtBaseIsNoop(t *testing.T) {
	s := newStack(t, Options{Compact: true})
	orig := createBuffer(t, 0)
	_ = s.Reset(orig)
	_ = s.Push(createBuffer(t, 1))

	// The base comes back from its compressed form as a copy.
	if popped, _ := s.Undo(); !popped {
		t.Fatal("first undo should pop")
	}
	if !s.Current().Equal(orig) {
		t.Fatal("base should match the original")
	}
	if popped, _ := s.Undo(); popped {
		t.Error("undo at the base should report no change")
	}
	if s.CanUndo() {
		t.Error("CanUndo should be false at the base")
	}
}
