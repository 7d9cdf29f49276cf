package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/carelane/medscan-mcp/internal/barcode"
	"github.com/carelane/medscan-mcp/internal/extract"
	"github.com/carelane/medscan-mcp/internal/lookup"
	"github.com/carelane/medscan-mcp/internal/pdf"
	"github.com/carelane/medscan-mcp/internal/raster"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "scan_image", "lookup_ndc").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Loads the document bytes or cached image as needed
//  3. Calls the appropriate scan/lookup/extract function
//  4. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Document Scanning
	case "scan_image":
		return s.handleScanImage(args)
	case "scan_pdf":
		return s.handleScanPDF(args)

	// Image Inspection
	case "image_info":
		return s.handleImageInfo(args)
	case "read_barcode":
		return s.handleReadBarcode(args)

	// Registry Lookups
	case "lookup_ndc":
		return s.handleLookupNDC(args)
	case "lookup_upc":
		return s.handleLookupUPC(args)

	// Text Extraction
	case "extract_text":
		return s.handleExtractText(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Document Scanning Handlers ===

type pathArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleScanImage(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(a.Path)
	if err != nil {
		return nil, err
	}
	doc, err := s.scanner.ScanImage(context.Background(), data)
	if err != nil {
		return nil, fmt.Errorf("failed to extract text from image: %w", err)
	}
	return doc, nil
}

func (s *Server) handleScanPDF(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(a.Path)
	if err != nil {
		return nil, err
	}
	document, err := pdf.Read(data)
	if err != nil {
		return nil, err
	}
	doc, err := s.scanner.ScanPages(context.Background(), document.Pages)
	if err != nil {
		return nil, fmt.Errorf("failed to extract text from image: %w", err)
	}
	return doc, nil
}

// === Image Inspection Handlers ===

type imageInfoResult struct {
	Width             int     `json:"width"`
	Height            int     `json:"height"`
	BlurScore         float64 `json:"blurScore"`
	IsBlurry          bool    `json:"isBlurry"`
	RotationCorrected bool    `json:"rotationCorrected"`
}

func (s *Server) handleImageInfo(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	n := raster.NormalizeImage(img)
	return imageInfoResult{
		Width:             n.OrigWidth,
		Height:            n.OrigHeight,
		BlurScore:         n.BlurScore,
		IsBlurry:          n.Blurry,
		RotationCorrected: n.Rotated,
	}, nil
}

type barcodeResult struct {
	Found  bool   `json:"found"`
	Text   string `json:"text,omitempty"`
	Format string `json:"format,omitempty"`
}

func (s *Server) handleReadBarcode(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	res, err := barcode.Decode(img)
	if errors.Is(err, barcode.ErrNoBarcode) {
		return barcodeResult{Found: false}, nil
	}
	if err != nil {
		return nil, err
	}
	return barcodeResult{Found: true, Text: res.Text, Format: res.Format}, nil
}

// === Registry Lookup Handlers ===

type codeArgs struct {
	Code string `json:"code"`
}

type drugLookupResult struct {
	Found   bool                `json:"found"`
	Formats []string            `json:"formatsTried"`
	Product *lookup.DrugProduct `json:"product,omitempty"`
}

func (s *Server) handleLookupNDC(args json.RawMessage) (interface{}, error) {
	var a codeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	product, found, err := s.drugs.Lookup(context.Background(), a.Code)
	if err != nil {
		return nil, err
	}
	return drugLookupResult{
		Found:   found,
		Formats: lookup.NDCFormats(a.Code),
		Product: product,
	}, nil
}

type productLookupResult struct {
	Found   bool            `json:"found"`
	Product *lookup.Product `json:"product,omitempty"`
}

func (s *Server) handleLookupUPC(args json.RawMessage) (interface{}, error) {
	var a codeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	product, found, err := s.products.Lookup(context.Background(), a.Code)
	if err != nil {
		return nil, err
	}
	return productLookupResult{Found: found, Product: product}, nil
}

// === Text Extraction Handlers ===

type extractTextArgs struct {
	Text string `json:"text"`
}

type extractTextResult struct {
	DocumentShape extract.DocumentShape             `json:"documentShape"`
	Medications   []extract.MedicationCandidate     `json:"medications"`
	Patient       *extract.PatientIdentityCandidate `json:"patient,omitempty"`
}

func (s *Server) handleExtractText(args json.RawMessage) (interface{}, error) {
	var a extractTextArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return extractTextResult{
		DocumentShape: extract.Classify(a.Text),
		Medications:   extract.Medications(a.Text),
		Patient:       extract.Patient(a.Text),
	}, nil
}
