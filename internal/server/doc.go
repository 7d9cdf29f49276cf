// Package server implements the MCP (Model Context Protocol) server for the
// medication document scanner.
//
// This package provides a JSON-RPC 2.0 server that exposes the scanning
// pipeline through the MCP protocol, enabling MCP-compatible clients to turn
// photographed medication labels, prescription lists, and scanned PDFs into
// structured records.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Document Scanning:
//   - scan_image: Full pipeline over one image file
//   - scan_pdf: Full pipeline over every page of a scanned PDF
//
// Image Inspection:
//   - image_info: Dimensions, blur score, rotation finding
//   - read_barcode: Decode a 1D barcode from an image
//
// Registry Lookups:
//   - lookup_ndc: Resolve a drug code via NDC hyphenation variants
//   - lookup_upc: Resolve a retail UPC via two product registries
//
// Text Extraction:
//   - extract_text: Structured extraction over already-recognized text
//
// # Error Handling
//
// Tool execution failures are reported as JSON-RPC errors with code -32000.
// Registry misses and unrecognized barcodes are results (found=false), not
// errors. A failure on any page of a multi-page document fails the whole
// scan.
package server
