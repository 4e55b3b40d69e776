package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// rectSchema is the JSON schema fragment for a rectangle argument.
func rectSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"x":      map[string]interface{}{"type": "integer", "description": "Left edge X coordinate (0-based)"},
			"y":      map[string]interface{}{"type": "integer", "description": "Top edge Y coordinate (0-based)"},
			"width":  map[string]interface{}{"type": "integer", "description": "Width in pixels"},
			"height": map[string]interface{}{"type": "integer", "description": "Height in pixels"},
		},
		"required": []string{"x", "y", "width", "height"},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Detection
		{
			Name: "icon_detect",
			Description: "Find every occurrence of a template icon in a screenshot. " +
				"Matches are de-duplicated, classified bright/dark, and returned row-major with their brightness info. " +
				"Optionally renders an annotated debug image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"screenshot_path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the screenshot image",
					},
					"template_path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the template icon image",
					},
					"confidence": map[string]interface{}{
						"type":        "number",
						"description": "Minimum match score 0.0-1.0 (default 0.8)",
						"default":     0.8,
					},
					"overlap_threshold": map[string]interface{}{
						"type":        "number",
						"description": "Overlap ratio above which two matches are duplicates (default 0.5)",
						"default":     0.5,
					},
					"filter_dark": map[string]interface{}{
						"type":        "boolean",
						"description": "Exclude detections dimmer than brightness_threshold (default true)",
						"default":     true,
					},
					"brightness_threshold": map[string]interface{}{
						"type":        "number",
						"description": "Minimum mean brightness 0-255 for a detection to count as available (default 100)",
						"default":     100,
					},
					"debug_image": map[string]interface{}{
						"type":        "boolean",
						"description": "Write an annotated copy of the screenshot (default true)",
						"default":     true,
					},
					"debug_dir": map[string]interface{}{
						"type":        "string",
						"description": "Directory for debug images (default \"debug_images\")",
					},
				},
				"required": []string{"screenshot_path", "template_path"},
			},
		},
		{
			Name: "icon_locate",
			Description: "Find the single best occurrence of a template icon and return its rectangle and center point. " +
				"Use this when exactly one button is expected and you want coordinates to click.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"screenshot_path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the screenshot image",
					},
					"template_path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the template icon image",
					},
					"confidence": map[string]interface{}{
						"type":        "number",
						"description": "Minimum match score 0.0-1.0 (default 0.8). The best score is reported even when below this.",
						"default":     0.8,
					},
				},
				"required": []string{"screenshot_path", "template_path"},
			},
		},

		// Analysis
		{
			Name:        "region_brightness",
			Description: "Measure the mean brightness of a rectangular region and classify it as available (bright) or dark.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"rect": rectSchema(),
					"brightness_threshold": map[string]interface{}{
						"type":        "number",
						"description": "Minimum mean brightness 0-255 to classify as available (default 100)",
						"default":     100,
					},
				},
				"required": []string{"path", "rect"},
			},
		},
		{
			Name: "remove_overlaps",
			Description: "De-duplicate a list of rectangles: of any pair overlapping beyond the threshold, only the earlier one survives. " +
				"Overlap is measured against the smaller rectangle, so a box nested inside a bigger one always counts as overlapping.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"rectangles": map[string]interface{}{
						"type":        "array",
						"items":       rectSchema(),
						"description": "Rectangles to de-duplicate, in priority order",
					},
					"overlap_threshold": map[string]interface{}{
						"type":        "number",
						"description": "Overlap ratio above which two rectangles are duplicates (default 0.5)",
						"default":     0.5,
					},
				},
				"required": []string{"rectangles"},
			},
		},
		{
			Name: "icon_extract_labels",
			Description: "OCR the text label rendered to the left of each detected button rectangle. " +
				"Returns one label per rectangle, empty when nothing readable was found.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"screenshot_path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the screenshot the buttons were detected in",
					},
					"buttons": map[string]interface{}{
						"type":        "array",
						"items":       rectSchema(),
						"description": "Button rectangles, typically the locations from icon_detect",
					},
					"language": map[string]interface{}{
						"type":        "string",
						"description": "Tesseract language code (default \"eng\")",
						"default":     "eng",
					},
				},
				"required": []string{"screenshot_path", "buttons"},
			},
		},

		// Image Information
		{
			Name:        "image_info",
			Description: "Load an image file and return its dimensions, format, color depth, and file size.",
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
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
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
