// Package transform implements the destructive editing operations.
//
// Every function here is pure: it reads a source pixel.Buffer and returns a
// newly allocated one, never modifying its input. A failed call returns a
// nil buffer and an error, so callers can commit results to history only on
// success.
//
// Available transforms:
//   - Grayscale: unweighted channel average, alpha preserved
//   - Resize: nearest-neighbor resampling with floor-division mapping
//   - Crop: rectangle or named region, with RegionRect for the names
package transform
