// Package pixel provides the immutable pixel buffer that every editing
// operation consumes and produces.
//
// A Buffer is a width×height grid of 8-bit NRGBA pixels stored row-major in
// a flat slice of width*height*4 bytes. Alpha is straight (not
// premultiplied), so the value read back from a Buffer is exactly the value
// that was written into it.
//
// # Immutability
//
// Buffers never change after construction. Constructors copy their input, and
// accessors such as Bytes and NRGBA return copies. Edits are expressed by
// building a new Buffer (see the transform package). The history stack and
// callers share buffers by pointer.
//
// # Coordinate System
//
// Coordinates are 0-based with the origin at the top-left corner:
//   - X: horizontal position, 0 to Width()-1
//   - Y: vertical position, 0 to Height()-1
//
// # Interoperability
//
// Buffer implements image.Image with color.NRGBAModel, so it can be passed
// directly to encoders and to filter libraries such as imaging and bild.
// FromImage converts any decoded image.Image back into a Buffer.
package pixel
