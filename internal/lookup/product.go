package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Default product registry endpoints: a UPCItemDB-style item search primary
// and an Open Food Facts-style fallback.
const (
	defaultUPCURL         = "https://api.upcitemdb.com/prod/trial/lookup"
	defaultUPCFallbackURL = "https://world.openfoodfacts.org/api/v0/product"
)

// Product is a retail product record resolved from a UPC.
type Product struct {
	Title    string `json:"title"`
	Brand    string `json:"brand,omitempty"`
	Category string `json:"category,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
	Source   string `json:"source"`
}

// ProductClient queries two UPC product registries in sequence.
type ProductClient struct {
	primaryURL  string
	fallbackURL string
	client      *http.Client
}

// NewProductClient returns a client over the given registry endpoints,
// defaulting either one when empty.
func NewProductClient(primaryURL, fallbackURL string) *ProductClient {
	if primaryURL == "" {
		primaryURL = defaultUPCURL
	}
	if fallbackURL == "" {
		fallbackURL = defaultUPCFallbackURL
	}
	return &ProductClient{
		primaryURL:  primaryURL,
		fallbackURL: fallbackURL,
		client:      &http.Client{Timeout: lookupTimeout},
	}
}

// upcVariants expands a scanned retail code into the digit strings worth
// querying: the code itself, a 12-digit zero-padded form, and the form with
// leading zeros stripped. Duplicates removed, order preserved.
func upcVariants(code string) []string {
	digits := digitsOf(code)
	if digits == "" {
		return nil
	}
	candidates := []string{digits}
	if len(digits) < 12 {
		candidates = append(candidates, strings.Repeat("0", 12-len(digits))+digits)
	}
	if trimmed := strings.TrimLeft(digits, "0"); trimmed != "" && trimmed != digits {
		candidates = append(candidates, trimmed)
	}

	var out []string
	seen := make(map[string]bool)
	for _, c := range candidates {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

// Lookup resolves a retail UPC. Each code variant is tried against the
// primary registry and then the fallback; the first hit wins. A miss
// everywhere returns (nil, false, nil). Failed requests are skipped unless
// the context itself is done.
func (c *ProductClient) Lookup(ctx context.Context, code string) (*Product, bool, error) {
	for _, variant := range upcVariants(code) {
		for _, q := range []func(context.Context, string) (*Product, error){
			c.queryPrimary,
			c.queryFallback,
		} {
			p, err := q(ctx, variant)
			if err != nil {
				if ctx.Err() != nil {
					return nil, false, ctx.Err()
				}
				continue
			}
			if p != nil {
				return p, true, nil
			}
		}
	}
	return nil, false, nil
}

// queryPrimary speaks the UPCItemDB item-search shape:
// GET <base>?upc=<code> -> {items: [{title, brand, category, images[]}]}.
func (c *ProductClient) queryPrimary(ctx context.Context, code string) (*Product, error) {
	u := c.primaryURL + "?upc=" + url.QueryEscape(code)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("product registry: unexpected status %s", resp.Status)
	}

	var body struct {
		Items []struct {
			Title    string   `json:"title"`
			Brand    string   `json:"brand"`
			Category string   `json:"category"`
			Images   []string `json:"images"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}
	if len(body.Items) == 0 || body.Items[0].Title == "" {
		return nil, nil
	}

	item := body.Items[0]
	p := &Product{
		Title:    item.Title,
		Brand:    item.Brand,
		Category: item.Category,
		Source:   "upcitemdb",
	}
	if len(item.Images) > 0 {
		p.ImageURL = item.Images[0]
	}
	return p, nil
}

// queryFallback speaks the Open Food Facts shape:
// GET <base>/<code>.json -> {status, product: {product_name, brands, categories, image_url}}.
func (c *ProductClient) queryFallback(ctx context.Context, code string) (*Product, error) {
	u := c.fallbackURL + "/" + url.PathEscape(code) + ".json"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("product registry: unexpected status %s", resp.Status)
	}

	var body struct {
		Status  int `json:"status"`
		Product struct {
			ProductName string `json:"product_name"`
			Brands      string `json:"brands"`
			Categories  string `json:"categories"`
			ImageURL    string `json:"image_url"`
		} `json:"product"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}
	if body.Status != 1 || body.Product.ProductName == "" {
		return nil, nil
	}
	return &Product{
		Title:    body.Product.ProductName,
		Brand:    body.Product.Brands,
		Category: body.Product.Categories,
		ImageURL: body.Product.ImageURL,
		Source:   "openfoodfacts",
	}, nil
}
