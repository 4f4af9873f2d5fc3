// Package effects implements the non-destructive effect overlay.
//
// An Overlay holds view-layer parameters (brightness, box blur, gaussian
// blur, sepia) that are resolved against a pixel.Buffer only when the image
// is rendered or exported. Setting an effect never changes history; the
// editor session clears the overlay on undo and on load.
//
// # Parameters
//
// Each parameter is independent and setting one leaves the others alone, so
// sepia and brightness can be active together. The two blur kinds share a
// single slot: setting a box blur replaces an active gaussian blur and vice
// versa.
//
// # Render Order
//
// Render always applies active parameters in this order, regardless of the
// order in which they were set:
//
//  1. Brightness (additive, imaging.AdjustBrightness)
//  2. Blur family: box (bild blur.Box, repeated per iteration) or
//     gaussian (imaging.Blur with sigma = radius/3)
//  3. Sepia (bild effect.Sepia)
package effects
