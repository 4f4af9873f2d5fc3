// Package server implements the MCP (Model Context Protocol) server for the
// image editor.
//
// This package provides a JSON-RPC 2.0 server that exposes one editing
// session through the MCP protocol. An MCP client loads an image, applies
// destructive edits and view effects, undoes them, and exports the result.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Session:
//   - image_load: Load an image from a path or base64 data
//   - image_status: Dimensions, history and active effects
//
// Destructive transforms (recorded in history):
//   - image_grayscale: Average the color channels
//   - image_resize: Nearest-neighbor resize
//   - image_crop: Crop to a rectangle or named region
//   - image_undo: Revert the last transform and clear effects
//
// View effects (not recorded in history):
//   - image_set_effect: Set brightness, blur, gaussian or sepia
//   - image_clear_effects: Turn every effect off
//
// Output:
//   - image_export: Write the rendered image as PNG
//   - image_current: Return the rendered or committed image as base64 PNG
//   - image_sample_pixel: Color of one pixel as RGBA, hex and HSL
//   - image_dominant_colors: Most common quantized colors
//
// # Errors
//
// Tool failures are returned as JSON-RPC errors with code -32000 and the
// error text in the data field. The text names the failure kind, for
// example "no image loaded" or "value out of range". A failed tool leaves
// the session as it was. A panicking tool is reported as -32000 too.
//
// A request line longer than 64 MiB is skipped and answered with -32600
// and a null id.
//
// # Concurrency
//
// Requests are read and handled one at a time, so the session is never
// accessed concurrently.
package server
