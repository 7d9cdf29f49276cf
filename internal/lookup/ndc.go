package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// defaultDrugURL is the openFDA drug NDC directory endpoint.
const defaultDrugURL = "https://api.fda.gov/drug/ndc.json"

// lookupTimeout bounds each registry HTTP call. The registries give no SLA;
// a scan should not hang on one of them.
const lookupTimeout = 10 * time.Second

// ActiveIngredient is one ingredient entry of a registry drug record.
type ActiveIngredient struct {
	Name     string `json:"name"`
	Strength string `json:"strength"`
}

// DrugProduct is the registry record for one drug product.
type DrugProduct struct {
	BrandName         string             `json:"brand_name"`
	GenericName       string             `json:"generic_name"`
	DosageForm        string             `json:"dosage_form"`
	Route             []string           `json:"route"`
	ActiveIngredients []ActiveIngredient `json:"active_ingredients"`
	ProductNDC        string             `json:"product_ndc"`
}

// NDCFormats expands a scanned digit string into every plausible NDC
// hyphenation, most specific first, duplicates removed.
//
// Barcodes carry the code unhyphenated and frequently zero-padded, so the
// true segmentation (labeler-product-package) is unrecoverable; registries
// key on the hyphenated form. The expansion segments the leading ten digits
// as 4-4-2, 5-3-2 and 5-4-1, each also as its two-segment labeler-product
// prefix. Ten-digit codes additionally retry with a leading zero (the common
// 11-digit padding), shorter codes are zero-padded up front, and 12-digit
// UPC-A codes drop the number-system and check digits first.
//
// Returns nil when the input has no usable digit run.
func NDCFormats(code string) []string {
	digits := digitsOf(code)

	var out []string
	seen := make(map[string]bool)
	add := func(formats []string) {
		for _, f := range formats {
			if !seen[f] {
				seen[f] = true
				out = append(out, f)
			}
		}
	}

	switch len(digits) {
	case 11:
		add(segmentations(digits[:10]))
	case 10:
		add(segmentations(digits))
		add(NDCFormats("0" + digits))
	case 12:
		add(NDCFormats(digits[1:11]))
	case 8, 9:
		add(NDCFormats(strings.Repeat("0", 10-len(digits)) + digits))
	default:
		return nil
	}
	return out
}

// segmentations hyphenates a ten-digit run as 4-4-2, 5-3-2 and 5-4-1, each
// followed by its two-segment prefix.
func segmentations(d string) []string {
	return []string{
		d[:4] + "-" + d[4:8] + "-" + d[8:],
		d[:4] + "-" + d[4:8],
		d[:5] + "-" + d[5:8] + "-" + d[8:],
		d[:5] + "-" + d[5:8],
		d[:5] + "-" + d[5:9] + "-" + d[9:],
		d[:5] + "-" + d[5:9],
	}
}

func digitsOf(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// DrugClient queries an openFDA-style drug registry.
type DrugClient struct {
	baseURL string
	client  *http.Client
}

// NewDrugClient returns a registry client for baseURL, or for the public
// openFDA endpoint when baseURL is empty.
func NewDrugClient(baseURL string) *DrugClient {
	if baseURL == "" {
		baseURL = defaultDrugURL
	}
	return &DrugClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: lookupTimeout},
	}
}

// Lookup resolves a scanned drug code. Every NDC hyphenation variant is
// tried in order; the first registry hit wins. A miss on every variant
// returns (nil, false, nil) — not found is a result, not an error. Failed
// candidate requests are skipped unless the context itself is done.
func (c *DrugClient) Lookup(ctx context.Context, code string) (*DrugProduct, bool, error) {
	for _, format := range NDCFormats(code) {
		p, err := c.query(ctx, format)
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
	return nil, false, nil
}

func (c *DrugClient) query(ctx context.Context, format string) (*DrugProduct, error) {
	q := url.Values{}
	q.Set("search", fmt.Sprintf("product_ndc:%q", format))
	q.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	// openFDA answers 404 for an unmatched search.
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("drug registry: unexpected status %s", resp.Status)
	}

	var body struct {
		Results []DrugProduct `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}
	if len(body.Results) == 0 {
		return nil, nil
	}
	return &body.Results[0], nil
}
