// Package codec converts between encoded image files and pixel buffers.
//
// Decoding accepts every format registered with the image package: PNG,
// JPEG, GIF, BMP and TIFF (registered by the imaging library) plus WebP.
// Encoding is PNG only, which is lossless for 8-bit NRGBA data: a buffer
// exported with an Exporter and decoded again is pixel-for-pixel identical.
//
// # Error Handling
//
// Errors wrap one of the package sentinels so callers can classify them
// with errors.Is:
//   - ErrDecode: unreadable or malformed source bytes
//   - ErrEncode: encoding or file write failure
//   - ErrNoImage: export requested without a buffer
package codec
