// Package preprocess races a fixed set of binarization strategies against each
// other and picks the one that produces the sharpest text/background
// separation for recognition.
//
// This is deliberately a brute-force multi-hypothesis search rather than a
// learned classifier: with no training data available at run time, running
// four cheap transforms and scoring their edges is more robust than trying to
// predict which one a given capture needs.
package preprocess

import (
	"image"
)

// Strategy identifies one of the fixed binarization strategies. The numeric
// order doubles as the tie-break order: when two strategies score equally,
// the lower value wins.
type Strategy int

const (
	// Standard applies moderate contrast before a mid-level threshold.
	// It wins most well-lit captures and all ties.
	Standard Strategy = iota

	// HighContrast pushes contrast harder with a raised threshold, for
	// washed-out labels.
	HighContrast

	// Denoise smooths with a 5-neighbor box filter before thresholding,
	// for grainy low-light captures.
	Denoise

	// Aggressive combines the strongest contrast gain with a lowered
	// threshold, a last resort for faint print.
	Aggressive
)

// String returns the strategy name used in results and logs.
func (s Strategy) String() string {
	switch s {
	case Standard:
		return "standard"
	case HighContrast:
		return "high-contrast"
	case Denoise:
		return "denoise"
	case Aggressive:
		return "aggressive"
	default:
		return "unknown"
	}
}

// strategySpec holds the tuning constants for one strategy. The table is the
// single source of truth; Apply and Select both walk it.
type strategySpec struct {
	strategy  Strategy
	gain      float64 // linear contrast gain around the midpoint
	threshold uint8   // binarization cutoff on the contrasted luma
	smooth    bool    // 5-neighbor box blur before thresholding
}

var strategies = []strategySpec{
	{Standard, 1.5, 128, false},
	{HighContrast, 2.0, 140, false},
	{Denoise, 1.0, 128, true},
	{Aggressive, 2.5, 120, false},
}

// Selection is the outcome of the strategy race.
type Selection struct {
	// Image is the winning binarized raster, the one handed to recognition.
	Image *image.NRGBA

	// Strategy identifies which transform produced Image.
	Strategy Strategy

	// FullColor is the normalized image before binarization, retained for
	// human preview. Recognition never sees it.
	FullColor image.Image

	// EdgeScore is the winning strategy's edge count, exposed for logging.
	EdgeScore int
}

// Select applies every strategy to img, scores each result by edge density,
// and returns the best. It cannot fail: even if all four score zero, Standard
// wins by tie-break and its output is returned.
//
// Running Select twice on the same input yields the same winner and identical
// output bytes; there is no randomness anywhere in the race.
func Select(img image.Image) Selection {
	best := Selection{Strategy: Standard, EdgeScore: -1, FullColor: img}
	for _, spec := range strategies {
		candidate := apply(img, spec)
		score := edgeScore(candidate)
		// Strict inequality keeps the earlier strategy on ties.
		if score > best.EdgeScore {
			best.Image = candidate
			best.Strategy = spec.strategy
			best.EdgeScore = score
		}
	}
	return best
}

// Apply runs a single strategy's transform, exposed so individual strategies
// can be inspected and tested outside the race.
func Apply(img image.Image, s Strategy) *image.NRGBA {
	for _, spec := range strategies {
		if spec.strategy == s {
			return apply(img, spec)
		}
	}
	return apply(img, strategies[0])
}

func apply(img image.Image, spec strategySpec) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() < 1 || b.Dy() < 1 {
		// Zero-area rasters can arrive from malformed PDF page images.
		// They binarize to a zero-area raster so the race still completes.
		return image.NewNRGBA(image.Rect(0, 0, 0, 0))
	}
	gray := grayscale(img)
	if spec.smooth {
		gray = boxBlur5(gray)
	}
	w, h := len(gray[0]), len(gray)

	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := contrast(gray[y][x], spec.gain)
			var bit uint8
			if v >= spec.threshold {
				bit = 255
			}
			i := out.PixOffset(x, y)
			out.Pix[i] = bit
			out.Pix[i+1] = bit
			out.Pix[i+2] = bit
			out.Pix[i+3] = 255
		}
	}
	return out
}

// contrast applies a linear gain around the midpoint and clamps to [0, 255].
func contrast(v uint8, gain float64) uint8 {
	c := (float64(v)-128)*gain + 128
	if c < 0 {
		return 0
	}
	if c > 255 {
		return 255
	}
	return uint8(c)
}

// grayscale converts to BT.601 luma rows.
func grayscale(img image.Image) [][]uint8 {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	rows := make([][]uint8, h)
	for y := 0; y < h; y++ {
		rows[y] = make([]uint8, w)
		for x := 0; x < w; x++ {
			r, g, bb, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			l := 0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(bb>>8)
			rows[y][x] = uint8(l)
		}
	}
	return rows
}

// boxBlur5 averages each pixel with its four edge neighbors (a plus-shaped
// kernel). Out-of-range neighbors are skipped, so borders average fewer
// samples rather than wrapping or clamping.
func boxBlur5(rows [][]uint8) [][]uint8 {
	h := len(rows)
	w := len(rows[0])
	out := make([][]uint8, h)
	for y := 0; y < h; y++ {
		out[y] = make([]uint8, w)
		for x := 0; x < w; x++ {
			sum := int(rows[y][x])
			n := 1
			if x > 0 {
				sum += int(rows[y][x-1])
				n++
			}
			if x < w-1 {
				sum += int(rows[y][x+1])
				n++
			}
			if y > 0 {
				sum += int(rows[y-1][x])
				n++
			}
			if y < h-1 {
				sum += int(rows[y+1][x])
				n++
			}
			out[y][x] = uint8(sum / n)
		}
	}
	return out
}

// edgeScore counts sampled pixel pairs whose intensity difference exceeds 200.
// It walks the interleaved RGBA buffer every 4th byte and compares against the
// byte 16 positions ahead (four pixels to the right), a cheap proxy for crisp
// text edges.
func edgeScore(img *image.NRGBA) int {
	pix := img.Pix
	count := 0
	for i := 0; i+16 < len(pix); i += 4 {
		d := int(pix[i]) - int(pix[i+16])
		if d < 0 {
			d = -d
		}
		if d > 200 {
			count++
		}
	}
	return count
}
