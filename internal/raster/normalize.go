package raster

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// ErrDecode is returned when input bytes cannot be decoded as a raster image.
// It aborts the document's pipeline; there is no fallback for undecodable input.
var ErrDecode = errors.New("cannot decode image")

// maxDimension is the target size for the largest image dimension after
// normalization. Images are scaled toward it but never beyond 2x their
// original size, and never shrunk.
const maxDimension = 2000

// rotationGrid is the sampling step for the rotation heuristic: every
// rotationGrid-th row and column contributes to the energy sums.
const rotationGrid = 10

// Normalized is the canonical raster handed to the preprocessing stage.
//
// The Image field is owned by the caller once returned; no reference is
// retained by this package.
type Normalized struct {
	// Image is the scaled, rotation-corrected raster in interleaved RGBA.
	Image *image.NRGBA

	// OrigWidth and OrigHeight are the decoded dimensions before scaling.
	OrigWidth  int
	OrigHeight int

	// Rotated reports whether the 90° rotation correction was applied.
	Rotated bool

	// BlurScore is the mean absolute Laplacian response over interior luma
	// pixels, scaled by 10 for readability. Higher is sharper.
	BlurScore float64

	// Blurry is true when BlurScore falls below the blur threshold. It is
	// advisory metadata and never gates processing.
	Blurry bool
}

// Normalize decodes raw image bytes and produces the canonical raster.
//
// Returns an error wrapping ErrDecode when the bytes are not a supported
// image format. All other work (scaling, rotation, blur scoring) cannot fail.
func Normalize(data []byte) (*Normalized, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return NormalizeImage(img), nil
}

// NormalizeImage normalizes an already-decoded image. This is the entry point
// for PDF pages, which arrive as image.Image values rather than encoded bytes.
//
// The algorithm:
//
//  1. Scale by clamp(2000/max(w,h), 1, 2) using bilinear resampling. The
//     resampling filter is not load-bearing; only the dimensions matter
//     downstream.
//
//  2. Detect coarse rotation by sampling every 10th pixel and comparing
//     horizontal vs vertical intensity-difference energy. When vertical
//     energy dominates (ratio > 1.2), the image is treated as sideways and
//     rotated 90°.
//
//     Known limitation: the heuristic cannot distinguish 90° from 270° and
//     always applies +90°, so an image rotated the other way comes out upside
//     down. Callers surface Rotated so a UI can offer manual correction.
//
//  3. Score blur on the (possibly rotated) result. See BlurScore.
func NormalizeImage(img image.Image) *Normalized {
	b := img.Bounds()
	origW, origH := b.Dx(), b.Dy()

	scale := 1.0
	if m := max(origW, origH); m > 0 {
		scale = float64(maxDimension) / float64(m)
	}
	if scale < 1 {
		scale = 1
	}
	if scale > 2 {
		scale = 2
	}

	out := imaging.Clone(img)
	if scale > 1 {
		out = imaging.Resize(img, int(float64(origW)*scale), int(float64(origH)*scale), imaging.Linear)
	}

	rotated := false
	if needsRotation(out) {
		out = imaging.Rotate90(out)
		rotated = true
	}

	score := BlurScore(out)
	return &Normalized{
		Image:      out,
		OrigWidth:  origW,
		OrigHeight: origH,
		Rotated:    rotated,
		BlurScore:  score,
		Blurry:     score < blurThreshold,
	}
}

// needsRotation samples a sparse grid of pixels and accumulates intensity
// difference energy along each axis. Text documents have strong horizontal
// structure (lines of text), so dominant vertical energy suggests the page is
// on its side.
func needsRotation(img *image.NRGBA) bool {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= rotationGrid || h <= rotationGrid {
		return false
	}

	var horizontal, vertical float64
	for y := 0; y < h-rotationGrid; y += rotationGrid {
		for x := 0; x < w-rotationGrid; x += rotationGrid {
			c := luma(img, x, y)
			horizontal += absf(luma(img, x+rotationGrid, y) - c)
			vertical += absf(luma(img, x, y+rotationGrid) - c)
		}
	}

	return vertical/(horizontal+1) > 1.2
}

// luma returns the BT.601 luminance of the pixel at (x, y) relative to the
// image origin.
func luma(img *image.NRGBA, x, y int) float64 {
	i := img.PixOffset(img.Rect.Min.X+x, img.Rect.Min.Y+y)
	r := float64(img.Pix[i])
	g := float64(img.Pix[i+1])
	b := float64(img.Pix[i+2])
	return 0.299*r + 0.587*g + 0.114*b
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
