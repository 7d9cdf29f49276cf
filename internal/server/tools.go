package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Document Scanning
		{
			Name:        "scan_image",
			Description: "Run the full medication-scanning pipeline on an image file: normalization, preprocessing, OCR, and structured extraction of medication and patient-identity records.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "scan_pdf",
			Description: "Run the medication-scanning pipeline over every page of a scanned PDF document, in page order. Patient identity is taken from the first page only.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the PDF file",
					},
				},
				"required": []string{"path"},
			},
		},

		// Image Inspection
		{
			Name:        "image_info",
			Description: "Inspect an image file: dimensions, format, blur score, and whether the rotation heuristic would correct it. No OCR is performed.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "read_barcode",
			Description: "Decode a one-dimensional barcode (UPC-A, EAN-13, Code 128, ITF) from an image file. Returns found=false when no symbol is recognized.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},

		// Registry Lookups
		{
			Name:        "lookup_ndc",
			Description: "Resolve a scanned drug code against the drug registry, trying every plausible NDC hyphenation variant. Returns found=false after exhausting all variants.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"code": map[string]interface{}{
						"type":        "string",
						"description": "Scanned digit string (8-12 digits, hyphens ignored)",
					},
				},
				"required": []string{"code"},
			},
		},
		{
			Name:        "lookup_upc",
			Description: "Resolve a retail UPC against two product registries in sequence. Returns found=false after exhausting all candidates.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"code": map[string]interface{}{
						"type":        "string",
						"description": "Scanned UPC digit string",
					},
				},
				"required": []string{"code"},
			},
		},

		// Text Extraction
		{
			Name:        "extract_text",
			Description: "Run structured extraction over already-recognized text: document-shape classification plus medication and patient-identity candidates. Useful for re-parsing corrected OCR output.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"text": map[string]interface{}{
						"type":        "string",
						"description": "Recognized document text",
					},
				},
				"required": []string{"text"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
