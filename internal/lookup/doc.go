// Package lookup resolves scanned barcode values against external product
// registries.
//
// Drug codes are tried as National Drug Code (NDC) hyphenation variants
// against an openFDA-style drug registry; retail codes are tried against two
// UPC product registries in sequence. Lookups are best effort: candidate
// formats and registries are tried in order, the first hit wins, and
// exhausting every candidate is a "not found" result, never an error.
package lookup
