package ocr

import (
	"context"
	"errors"
	"image"
)

// ErrRecognition is returned when the recognition engine fails. It is fatal
// for the document being scanned; the pipeline performs no silent retries.
var ErrRecognition = errors.New("recognition failed")

// Bounds is a word bounding box in pixel coordinates of the recognized image.
type Bounds struct {
	X1 int `json:"x1"` // Left edge
	Y1 int `json:"y1"` // Top edge
	X2 int `json:"x2"` // Right edge
	Y2 int `json:"y2"` // Bottom edge
}

// Word is a single recognized token with its location and engine confidence.
type Word struct {
	Text string `json:"text"`

	// Confidence is the engine-reported score for this word, 0-100.
	Confidence float64 `json:"confidence"`

	Bounds Bounds `json:"bounds"`
}

// Result is the output of one recognition call. It is immutable once
// returned and is not retained by the engine.
type Result struct {
	// Text is the full recognized string with original spacing and newlines.
	Text string `json:"text"`

	// Confidence is the engine-reported overall score, 0-100. For engines
	// that only report per-word scores it is the mean word confidence.
	Confidence float64 `json:"confidence"`

	// Words lists recognized words in reading order. May be empty when the
	// engine cannot produce word-level layout; Text is still populated.
	Words []Word `json:"words"`
}

// Engine is the recognition contract the pipeline consumes.
type Engine interface {
	// Recognize runs OCR on the image and returns text plus word-level
	// layout. Implementations must release any engine-internal resources
	// before returning, on every path, and should honor ctx cancellation.
	Recognize(ctx context.Context, img image.Image) (*Result, error)
}
