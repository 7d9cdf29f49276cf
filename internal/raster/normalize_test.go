package raster

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// fillImage creates a solid-color NRGBA image of the given size.
func fillImage(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// bandedImage creates horizontal black/white bands of the given height.
func bandedImage(w, h, band int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		c := color.White
		if (y/band)%2 == 1 {
			c = color.Black
		}
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestNormalize_InvalidBytes(t *testing.T) {
	_, err := Normalize([]byte("definitely not an image"))
	if err == nil {
		t.Fatal("expected error for garbage input")
	}
	if !errors.Is(err, ErrDecode) {
		t.Errorf("error should wrap ErrDecode, got %v", err)
	}
}

func TestNormalize_ValidPNG(t *testing.T) {
	data := encodePNG(t, fillImage(100, 80, color.White))

	n, err := Normalize(data)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if n.OrigWidth != 100 || n.OrigHeight != 80 {
		t.Errorf("original dimensions: got %dx%d, want 100x80", n.OrigWidth, n.OrigHeight)
	}
}

func TestNormalizeImage_ScaleCappedAtDouble(t *testing.T) {
	// 2000/500 = 4, but scale is capped at 2.
	n := NormalizeImage(fillImage(500, 400, color.White))

	b := n.Image.Bounds()
	if b.Dx() != 1000 || b.Dy() != 800 {
		t.Errorf("scaled dimensions: got %dx%d, want 1000x800", b.Dx(), b.Dy())
	}
}

func TestNormalizeImage_NeverDownscales(t *testing.T) {
	// Largest dimension already exceeds 2000; image must stay at original size.
	n := NormalizeImage(fillImage(2400, 600, color.White))

	b := n.Image.Bounds()
	if b.Dx() != 2400 || b.Dy() != 600 {
		t.Errorf("dimensions changed: got %dx%d, want 2400x600", b.Dx(), b.Dy())
	}
}

func TestNormalizeImage_RotationHeuristic(t *testing.T) {
	tests := []struct {
		name    string
		img     *image.NRGBA
		rotated bool
	}{
		// Horizontal bands produce dominant vertical intensity energy,
		// which the heuristic reads as a sideways document.
		{"horizontal bands", bandedImage(400, 400, 10), true},
		{"uniform", fillImage(400, 400, color.White), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NormalizeImage(tt.img)
			if n.Rotated != tt.rotated {
				t.Errorf("Rotated: got %v, want %v", n.Rotated, tt.rotated)
			}
		})
	}
}

func TestNormalizeImage_BlurryIsAdvisoryOnly(t *testing.T) {
	// A featureless image has zero Laplacian response and must be flagged
	// blurry, but normalization still returns a usable raster.
	n := NormalizeImage(fillImage(300, 300, color.RGBA{128, 128, 128, 255}))

	if !n.Blurry {
		t.Errorf("uniform image should be flagged blurry (score %.1f)", n.BlurScore)
	}
	if n.Image == nil {
		t.Fatal("blurry input must still produce an image")
	}
}

func TestBlurScore(t *testing.T) {
	uniform := BlurScore(fillImage(100, 100, color.White))
	if uniform != 0 {
		t.Errorf("uniform image: got score %.2f, want 0", uniform)
	}

	sharp := BlurScore(bandedImage(100, 100, 2))
	if sharp <= blurThreshold {
		t.Errorf("high-contrast bands: got score %.2f, want > %d", sharp, blurThreshold)
	}
	if sharp <= uniform {
		t.Errorf("sharp image should outscore uniform image: %.2f vs %.2f", sharp, uniform)
	}
}
