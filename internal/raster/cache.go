package raster

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"sync"
)

// Cache provides thread-safe caching of decoded images keyed by file path.
//
// The MCP surface frequently runs several tools against the same capture
// (image_info, then read_barcode, then scan_image); caching the decode avoids
// re-reading and re-decoding the file for each call.
//
// Cached images remain in memory until Evict or Clear. Long-running servers
// processing many documents should evict entries once a document is done.
type Cache struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewCache creates an empty decoded-image cache, safe for concurrent use.
func NewCache() *Cache {
	return &Cache{images: make(map[string]image.Image)}
}

// Load returns the decoded image for path, reading and decoding it on first
// use. The cache key is the exact path string; relative and absolute paths to
// the same file produce separate entries.
//
// Decoding failures are reported wrapped in ErrDecode, same as Normalize.
func (c *Cache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// Evict removes the entry for path, if present.
func (c *Cache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// Clear drops every cached image.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]image.Image)
	c.mu.Unlock()
}
