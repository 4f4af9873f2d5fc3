// Package history implements the undo stack of committed image states.
//
// A Stack holds the buffer captured at load time (the original) plus an
// ordered list of snapshots, one per destructive edit. The top snapshot is
// the current image. Undo pops the top; once only the base remains, undo is
// a no-op and the current image resolves to the original.
//
// # Tunables
//
// The stack is unbounded by default, matching the desktop editor it
// replaces. Two options bound its memory use:
//
//   - MaxDepth evicts the oldest snapshots once the depth exceeds the
//     bound. The original is retained separately, so undo always has a
//     defined fallback.
//   - Compact keeps every snapshot below the top zstd-compressed and expands
//     it again when it becomes the top. Compression is lossless; undo
//     returns byte-identical buffers.
//
// # Thread Safety
//
// A Stack is not safe for concurrent use. It belongs to a single editing
// session.
package history
