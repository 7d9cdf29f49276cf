// Package pdf renders the pages of scanned PDF documents as raster images.
//
// The target documents are scanner output: each page is a single full-page
// embedded image. The file is first validated with pdfcpu, then the embedded
// page images are decoded in document order.
package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	pdfimg "github.com/sunshineplan/pdf"
)

var (
	// ErrInvalid reports bytes that do not parse as a PDF document.
	ErrInvalid = errors.New("invalid pdf document")

	// ErrNoPageImages reports a valid PDF with no decodable page images,
	// e.g. a text-native document rather than scanner output.
	ErrNoPageImages = errors.New("pdf contains no page images")
)

// Document is a validated scanned PDF.
type Document struct {
	PageCount int
	Pages     []image.Image
}

// Read validates data as a PDF and decodes its embedded page images. The
// decoded images are in document order; for scanner output there is one per
// page.
func Read(data []byte) (*Document, error) {
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), model.NewDefaultConfiguration())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	pages, err := decodeImages(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoPageImages, err)
	}
	if len(pages) == 0 {
		return nil, ErrNoPageImages
	}

	return &Document{PageCount: ctx.PageCount, Pages: pages}, nil
}

// decodeImages extracts every embedded image. The decoder panics on some
// malformed streams, so the recover converts that into a plain error.
func decodeImages(data []byte) (images []image.Image, err error) {
	defer func() {
		if r := recover(); r != nil {
			images = nil
			err = fmt.Errorf("image decode panic: %v", r)
		}
	}()

	images, err = pdfimg.DecodeAll(bytes.NewReader(data))
	return images, err
}
