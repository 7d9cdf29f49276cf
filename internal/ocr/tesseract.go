package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"

	"github.com/otiai10/gosseract/v2"
)

// TesseractEngine implements Engine using the gosseract client.
//
// A fresh client is created per Recognize call and closed before the call
// returns. Clients are cheap relative to recognition itself, and per-call
// scoping guarantees no native resources leak across documents.
type TesseractEngine struct {
	language      string
	clientFactory func() *gosseract.Client
}

// NewTesseractEngine constructs a Tesseract-backed engine for the given
// language code (e.g. "eng"). An empty language falls back to "eng".
func NewTesseractEngine(language string) *TesseractEngine {
	if language == "" {
		language = "eng"
	}
	return &TesseractEngine{
		language:      language,
		clientFactory: gosseract.NewClient,
	}
}

// Recognize runs Tesseract on img.
//
// The image is handed to the engine as encoded PNG bytes, avoiding temp
// files. Recognition runs in its own goroutine so a context deadline can
// interrupt the wait; the client is closed inside that goroutine regardless
// of how the call exits, so the engine handle is released on every path.
// When the context fires first, the abandoned recognition finishes in the
// background and its client is still closed.
func (e *TesseractEngine) Recognize(ctx context.Context, img image.Image) (*Result, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("%w: encode image: %v", ErrRecognition, err)
	}
	data := buf.Bytes()

	type outcome struct {
		res *Result
		err error
	}
	done := make(chan outcome, 1)

	go func() {
		client := e.clientFactory()
		defer client.Close()
		res, err := e.run(client, data)
		done <- outcome{res, err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", ErrRecognition, ctx.Err())
	case o := <-done:
		return o.res, o.err
	}
}

func (e *TesseractEngine) run(client *gosseract.Client, data []byte) (*Result, error) {
	if err := client.SetLanguage(e.language); err != nil {
		return nil, fmt.Errorf("%w: set language: %v", ErrRecognition, err)
	}
	if err := client.SetImageFromBytes(data); err != nil {
		return nil, fmt.Errorf("%w: set image: %v", ErrRecognition, err)
	}

	text, err := client.Text()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRecognition, err)
	}

	// Word boxes are best-effort: some Tesseract builds fail here even when
	// text extraction succeeded. The text alone is still a valid result.
	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return &Result{Text: text, Words: []Word{}}, nil
	}

	words := make([]Word, 0, len(boxes))
	var sum float64
	for _, box := range boxes {
		if box.Word == "" {
			continue
		}
		words = append(words, Word{
			Text:       box.Word,
			Confidence: box.Confidence,
			Bounds: Bounds{
				X1: box.Box.Min.X,
				Y1: box.Box.Min.Y,
				X2: box.Box.Max.X,
				Y2: box.Box.Max.Y,
			},
		})
		sum += box.Confidence
	}

	confidence := 0.0
	if len(words) > 0 {
		confidence = sum / float64(len(words))
	}

	return &Result{
		Text:       text,
		Confidence: confidence,
		Words:      words,
	}, nil
}

// Version reports the installed Tesseract version, for diagnostics.
func Version() string {
	client := gosseract.NewClient()
	defer client.Close()
	return client.Version()
}
