package raster

import (
	"image"

	"github.com/anthonynsimon/bild/convolution"
	"github.com/disintegration/imaging"
)

// blurThreshold is the BlurScore below which an image is flagged blurry.
const blurThreshold = 100

// laplacian is the 4-neighbor discrete Laplacian kernel. Its response is
// large around sharp text edges and near zero on smooth or defocused regions.
var laplacian = convolution.Kernel{
	Matrix: []float64{
		0, 1, 0,
		1, -4, 1,
		0, 1, 0,
	},
	Width:  3,
	Height: 3,
}

// BlurScore measures image sharpness as the mean absolute Laplacian response
// over interior luma pixels, multiplied by 10 for a human-readable scale.
//
// The convolution is biased by 128 so negative responses survive the unsigned
// pixel clamp; the score reads the deviation from that bias. Scores below 100
// indicate a capture too soft for reliable recognition, though recognition is
// attempted regardless.
func BlurScore(img image.Image) float64 {
	gray := imaging.Grayscale(img)
	resp := convolution.Convolve(gray, &laplacian, &convolution.Options{Bias: 128})

	b := resp.Bounds()
	w, h := b.Dx(), b.Dy()
	if w < 3 || h < 3 {
		return 0
	}

	var sum float64
	var n int
	for y := 1; y < h-1; y++ {
		i := resp.PixOffset(b.Min.X+1, b.Min.Y+y)
		for x := 1; x < w-1; x++ {
			d := int(resp.Pix[i]) - 128
			if d < 0 {
				d = -d
			}
			sum += float64(d)
			n++
			i += 4
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n) * 10
}
