// Package scan orchestrates the document pipeline: normalization,
// preprocessing-strategy selection, text recognition, and structured
// extraction of medication and patient-identity records.
//
// The pipeline is strictly sequential per document. Pages are processed in
// order, medication candidates accumulate across pages, and patient identity
// is taken from the first page only. A failure on any page aborts the whole
// document; there is no partial-failure recovery.
package scan

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/carelane/medscan-mcp/internal/extract"
	"github.com/carelane/medscan-mcp/internal/ocr"
	"github.com/carelane/medscan-mcp/internal/preprocess"
	"github.com/carelane/medscan-mcp/internal/raster"
)

// defaultTimeout bounds a single recognition call when the caller's context
// carries no deadline of its own.
const defaultTimeout = 30 * time.Second

// Scanner runs the pipeline against one recognition engine.
type Scanner struct {
	engine  ocr.Engine
	timeout time.Duration
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithTimeout overrides the per-recognition deadline applied when the
// caller's context has none.
func WithTimeout(d time.Duration) Option {
	return func(s *Scanner) { s.timeout = d }
}

// New returns a Scanner over the given engine.
func New(engine ocr.Engine, opts ...Option) *Scanner {
	s := &Scanner{engine: engine, timeout: defaultTimeout}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ScanImage runs the full pipeline on one encoded image. Returns an error
// wrapping raster.ErrDecode when the bytes are not a supported image format.
func (s *Scanner) ScanImage(ctx context.Context, data []byte) (*DocumentResult, error) {
	n, err := raster.Normalize(data)
	if err != nil {
		return nil, err
	}
	return s.scan(ctx, []*raster.Normalized{n})
}

// ScanPages runs the full pipeline on already-decoded page images, in order.
// This is the entry point for PDF documents, whose pages arrive from the
// page renderer as image values.
func (s *Scanner) ScanPages(ctx context.Context, pages []image.Image) (*DocumentResult, error) {
	if len(pages) == 0 {
		return nil, fmt.Errorf("no pages to scan")
	}
	norms := make([]*raster.Normalized, len(pages))
	for i, p := range pages {
		norms[i] = raster.NormalizeImage(p)
	}
	return s.scan(ctx, norms)
}

func (s *Scanner) scan(ctx context.Context, pages []*raster.Normalized) (*DocumentResult, error) {
	doc := &DocumentResult{}
	for i, n := range pages {
		sel := preprocess.Select(n.Image)

		res, err := s.recognize(ctx, sel.Image)
		if err != nil {
			// Abort the whole document: downstream extraction assumes
			// in-order, complete page text.
			return nil, fmt.Errorf("page %d: %w", i+1, err)
		}

		page, err := newPageResult(n, sel, res)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i+1, err)
		}
		doc.Pages = append(doc.Pages, *page)
		doc.Medications = append(doc.Medications, extract.Medications(res.Text)...)
		if i == 0 {
			doc.Patient = extract.Patient(res.Text)
		}
	}
	return doc, nil
}

// recognize invokes the engine under the default deadline unless the caller
// already set one.
func (s *Scanner) recognize(ctx context.Context, img image.Image) (*ocr.Result, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	return s.engine.Recognize(ctx, img)
}
