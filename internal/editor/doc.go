// Package editor implements the image editing session: the state machine
// that connects loading, destructive transforms, the effect overlay, undo
// history and export.
//
// # Control Flow
//
//	Load          decode → history.Reset(buffer), overlay cleared
//	ApplyGrayscale / ApplyResize / ApplyCrop
//	              transform(current) → history.Push(result)
//	SetEffect     overlay parameter replaced; history untouched
//	Undo          history.Undo(), overlay cleared
//	Export        overlay.Render(current) → Exporter
//
// # Undo and Effects
//
// Effects are view state rather than history state. Undo clears every active
// effect as well as popping history, and a new load clears them too. Effects
// are therefore not independently undoable; use ClearEffects to drop them
// without touching history.
//
// # Failure Semantics
//
// Every operation validates and computes before it changes state. A failed
// load, transform, effect or export leaves the session exactly as it was.
//
// # Thread Safety
//
// A Session is a single editing session and is not safe for concurrent use.
// Presentation layers serialize calls, as the MCP server does by handling
// one request at a time.
package editor
