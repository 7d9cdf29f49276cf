// Package barcode decodes one-dimensional barcodes from raster images.
//
// Medication packaging carries UPC-A or EAN-13 symbols and pharmacy labels
// often use Code 128 or Interleaved 2-of-5, so those four readers are tried
// in order of likelihood. The decoded digit string feeds the registry
// lookups in internal/lookup.
package barcode

import (
	"errors"
	"fmt"
	"image"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/oned"
)

// ErrNoBarcode reports that no reader recognized a symbol in the image.
var ErrNoBarcode = errors.New("no barcode found")

// Result is one decoded symbol.
type Result struct {
	Text   string `json:"text"`
	Format string `json:"format"`
}

var readers = []struct {
	name   string
	reader gozxing.Reader
}{
	{"UPC-A", oned.NewUPCAReader()},
	{"EAN-13", oned.NewEAN13Reader()},
	{"CODE-128", oned.NewCode128Reader()},
	{"ITF", oned.NewITFReader()},
}

// Decode scans img with each supported reader and returns the first decoded
// symbol. Returns ErrNoBarcode when every reader misses.
func Decode(img image.Image) (*Result, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return nil, fmt.Errorf("barcode bitmap: %w", err)
	}

	for _, r := range readers {
		res, err := r.reader.Decode(bmp, nil)
		if err != nil {
			continue
		}
		if text := res.GetText(); text != "" {
			return &Result{Text: text, Format: r.name}, nil
		}
	}
	return nil, ErrNoBarcode
}
