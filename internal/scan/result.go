package scan

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"

	"github.com/carelane/medscan-mcp/internal/extract"
	"github.com/carelane/medscan-mcp/internal/ocr"
	"github.com/carelane/medscan-mcp/internal/preprocess"
	"github.com/carelane/medscan-mcp/internal/raster"
)

// previewMax bounds the longer edge of the human-preview image. The preview
// exists for visual confirmation in a form UI, not for recognition, so it is
// kept small.
const previewMax = 800

// PageResult is the per-page pipeline output.
type PageResult struct {
	// Text and Confidence come from the recognition engine.
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`

	// PreprocessedImage is the binarized raster the engine actually read,
	// as a base64-encoded PNG. Useful for debugging strategy selection.
	PreprocessedImage string `json:"preprocessedImage"`

	// PreviewImage is the full-color normalized page scaled for display,
	// as a base64-encoded PNG, with its pixel dimensions.
	PreviewImage       string `json:"previewImage"`
	PreviewImageWidth  int    `json:"previewImageWidth"`
	PreviewImageHeight int    `json:"previewImageHeight"`

	// IsBlurry and RotationCorrected surface the normalizer's advisory
	// findings; neither ever gated processing.
	IsBlurry          bool `json:"isBlurry"`
	RotationCorrected bool `json:"rotationCorrected"`

	// PreprocessingStrategy names the winning strategy.
	PreprocessingStrategy string `json:"preprocessingStrategy"`

	Words []ocr.Word `json:"words"`
}

// DocumentResult is the outcome of scanning one document.
type DocumentResult struct {
	Pages []PageResult `json:"pages"`

	// Medications accumulates candidates across all pages in page order.
	Medications []extract.MedicationCandidate `json:"medications"`

	// Patient is extracted from the first page only, nil when nothing
	// matched.
	Patient *extract.PatientIdentityCandidate `json:"patient,omitempty"`
}

func newPageResult(n *raster.Normalized, sel preprocess.Selection, res *ocr.Result) (*PageResult, error) {
	pre, err := encodePNG(sel.Image)
	if err != nil {
		return nil, fmt.Errorf("encode preprocessed image: %w", err)
	}

	preview := imaging.Fit(sel.FullColor, previewMax, previewMax, imaging.Linear)
	prev, err := encodePNG(preview)
	if err != nil {
		return nil, fmt.Errorf("encode preview image: %w", err)
	}

	return &PageResult{
		Text:                  res.Text,
		Confidence:            res.Confidence,
		PreprocessedImage:     pre,
		PreviewImage:          prev,
		PreviewImageWidth:     preview.Bounds().Dx(),
		PreviewImageHeight:    preview.Bounds().Dy(),
		IsBlurry:              n.Blurry,
		RotationCorrected:     n.Rotated,
		PreprocessingStrategy: sel.Strategy.String(),
		Words:                 res.Words,
	}, nil
}

func encodePNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
