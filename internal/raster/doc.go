// Package raster normalizes arbitrary input images into the canonical form the
// scanning pipeline operates on.
//
// Normalization produces an interleaved-RGBA raster (*image.NRGBA) that is:
//   - upscaled so the largest dimension approaches 2000px (never downscaled,
//     scale factor capped at 2x), which gives Tesseract enough pixels per glyph
//     on phone photos of small labels
//   - rotation-corrected when the intensity-energy heuristic indicates the
//     document is sideways
//   - annotated with a Laplacian blur score so callers can warn the user about
//     unreadable captures
//
// The blur score is informational only; a blurry image still flows through the
// rest of the pipeline.
//
// # Supported formats
//
// PNG, JPEG and GIF decoders come from the standard library; TIFF, BMP and
// WebP are registered from golang.org/x/image, since flatbed scanners and
// older phone apps commonly hand those over.
package raster
