// Package ocr defines the recognition engine boundary and its Tesseract
// implementation.
//
// The pipeline treats the recognition engine as opaque: any implementation of
// Engine that returns text, word boxes and a confidence is interchangeable.
// Nothing downstream inspects engine internals.
//
// # Prerequisites
//
// The Tesseract implementation requires the native library and language data
// installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-eng
//   - macOS: brew install tesseract
//
// # Resource lifecycle
//
// Tesseract engine handles are acquired per recognition call and released on
// every exit path, success or failure. No handle survives a call.
package ocr
