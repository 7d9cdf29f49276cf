package preprocess

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

func solid(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// textLike builds alternating dark/light vertical stripes, which produce many
// pixel pairs over the edge threshold.
func textLike(w, h, stripe int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.White
			if (x/stripe)%2 == 1 {
				c = color.Black
			}
			img.Set(x, y, c)
		}
	}
	return img
}

func TestStrategyString(t *testing.T) {
	tests := []struct {
		s    Strategy
		want string
	}{
		{Standard, "standard"},
		{HighContrast, "high-contrast"},
		{Denoise, "denoise"},
		{Aggressive, "aggressive"},
		{Strategy(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("Strategy(%d).String(): got %q, want %q", tt.s, got, tt.want)
		}
	}
}

func TestApply_Binarizes(t *testing.T) {
	out := Apply(solid(20, 20, color.RGBA{200, 200, 200, 255}), Standard)

	// Every pixel must end up pure black or pure white.
	for i := 0; i < len(out.Pix); i += 4 {
		if out.Pix[i] != 0 && out.Pix[i] != 255 {
			t.Fatalf("pixel %d not binarized: %d", i/4, out.Pix[i])
		}
	}
}

func TestApply_ThresholdsDiffer(t *testing.T) {
	// Luma 133: standard contrast lands above 128 (white), high-contrast's
	// raised threshold of 140 pushes it to black.
	img := solid(8, 8, color.RGBA{133, 133, 133, 255})

	std := Apply(img, Standard)
	hc := Apply(img, HighContrast)

	if std.Pix[0] != 255 {
		t.Errorf("standard: got %d, want white", std.Pix[0])
	}
	if hc.Pix[0] != 0 {
		t.Errorf("high-contrast: got %d, want black", hc.Pix[0])
	}
}

func TestSelect_Deterministic(t *testing.T) {
	img := textLike(120, 60, 4)

	first := Select(img)
	second := Select(img)

	if first.Strategy != second.Strategy {
		t.Fatalf("winner changed between runs: %v then %v", first.Strategy, second.Strategy)
	}
	if !bytes.Equal(first.Image.Pix, second.Image.Pix) {
		t.Error("output bytes differ between identical runs")
	}
	if first.EdgeScore != second.EdgeScore {
		t.Errorf("edge score changed: %d then %d", first.EdgeScore, second.EdgeScore)
	}
}

func TestSelect_TieGoesToStandard(t *testing.T) {
	// A uniform image scores zero for every strategy; Standard must win the
	// four-way tie by enumeration order.
	sel := Select(solid(40, 40, color.White))

	if sel.Strategy != Standard {
		t.Errorf("tie-break winner: got %v, want %v", sel.Strategy, Standard)
	}
	if sel.Image == nil {
		t.Fatal("Select must always return an image")
	}
}

func TestSelect_ZeroAreaImage(t *testing.T) {
	// Malformed PDFs can yield zero-area page images; the race must still
	// complete with a (zero-area) fallback candidate rather than panic.
	tests := []struct {
		name string
		rect image.Rectangle
	}{
		{"zero by zero", image.Rect(0, 0, 0, 0)},
		{"zero height", image.Rect(0, 0, 10, 0)},
		{"zero width", image.Rect(0, 0, 0, 10)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := Select(image.NewNRGBA(tt.rect))

			if sel.Image == nil {
				t.Fatal("Select must always return an image")
			}
			if d := sel.Image.Bounds(); d.Dx() != 0 || d.Dy() != 0 {
				t.Errorf("degenerate input produced %v raster", d)
			}
			if sel.Strategy != Standard {
				t.Errorf("winner: got %v, want %v", sel.Strategy, Standard)
			}
		})
	}
}

func TestSelect_RetainsFullColorPreview(t *testing.T) {
	img := textLike(60, 30, 4)
	sel := Select(img)

	if sel.FullColor != image.Image(img) {
		t.Error("FullColor should be the untouched input image")
	}
	// The recognition image must not be the preview.
	if sel.Image == nil || sel.Image.Pix == nil {
		t.Fatal("missing binarized image")
	}
}

func TestSelect_PrefersSharpestSeparation(t *testing.T) {
	sel := Select(textLike(200, 80, 4))
	if sel.EdgeScore <= 0 {
		t.Errorf("striped image should produce positive edge score, got %d", sel.EdgeScore)
	}
}
