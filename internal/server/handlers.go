package server

import (
	"encoding/json"
	"fmt"

	"github.com/ironsheep/icon-detect-mcp/internal/detection"
	"github.com/ironsheep/icon-detect-mcp/internal/geometry"
	"github.com/ironsheep/icon-detect-mcp/internal/imaging"
	"github.com/ironsheep/icon-detect-mcp/internal/ocr"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "icon_detect", "icon_locate").
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
//  2. Applies default values for optional parameters
//  3. Loads images from cache as needed
//  4. Calls the appropriate detection/imaging/ocr function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Detection
	case "icon_detect":
		return s.handleIconDetect(args)
	case "icon_locate":
		return s.handleIconLocate(args)

	// Analysis
	case "region_brightness":
		return s.handleRegionBrightness(args)
	case "remove_overlaps":
		return s.handleRemoveOverlaps(args)
	case "icon_extract_labels":
		return s.handleIconExtractLabels(args)

	// Image Information
	case "image_info":
		return s.handleImageInfo(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

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

// === Detection Handlers ===

type iconDetectArgs struct {
	ScreenshotPath      string  `json:"screenshot_path"`
	TemplatePath        string  `json:"template_path"`
	Confidence          float64 `json:"confidence"`
	OverlapThreshold    float64 `json:"overlap_threshold"`
	FilterDark          *bool   `json:"filter_dark"`
	BrightnessThreshold float64 `json:"brightness_threshold"`
	DebugImage          *bool   `json:"debug_image"`
	DebugDir            string  `json:"debug_dir"`
}

func (s *Server) handleIconDetect(args json.RawMessage) (interface{}, error) {
	var a iconDetectArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	cfg := detection.DefaultConfig()
	if a.Confidence != 0 {
		cfg.Confidence = a.Confidence
	}
	if a.OverlapThreshold != 0 {
		cfg.OverlapThreshold = a.OverlapThreshold
	}
	if a.FilterDark != nil {
		cfg.FilterDark = *a.FilterDark
	}
	if a.BrightnessThreshold != 0 {
		cfg.BrightnessThreshold = a.BrightnessThreshold
	}
	if a.DebugImage != nil {
		cfg.DebugImage = *a.DebugImage
	}
	if a.DebugDir != "" {
		cfg.DebugDir = a.DebugDir
	}

	return detection.DetectFromFiles(s.cache, a.ScreenshotPath, a.TemplatePath, cfg)
}

type iconLocateArgs struct {
	ScreenshotPath string  `json:"screenshot_path"`
	TemplatePath   string  `json:"template_path"`
	Confidence     float64 `json:"confidence"`
}

func (s *Server) handleIconLocate(args json.RawMessage) (interface{}, error) {
	var a iconLocateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Confidence == 0 {
		a.Confidence = detection.DefaultConfidence
	}

	template, err := s.cache.Load(a.TemplatePath)
	if err != nil {
		return nil, fmt.Errorf("loading template: %w", err)
	}
	screenshot, err := s.cache.Load(a.ScreenshotPath)
	if err != nil {
		return nil, fmt.Errorf("loading screenshot: %w", err)
	}

	return detection.LocateBest(screenshot, template, a.Confidence)
}

// === Analysis Handlers ===

type regionBrightnessArgs struct {
	Path                string        `json:"path"`
	Rect                geometry.Rect `json:"rect"`
	BrightnessThreshold float64       `json:"brightness_threshold"`
}

func (s *Server) handleRegionBrightness(args json.RawMessage) (interface{}, error) {
	var a regionBrightnessArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.BrightnessThreshold == 0 {
		a.BrightnessThreshold = detection.DefaultBrightnessThreshold
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.ClassifyRegion(img, a.Rect, a.BrightnessThreshold), nil
}

type removeOverlapsArgs struct {
	Rectangles       []geometry.Rect `json:"rectangles"`
	OverlapThreshold float64         `json:"overlap_threshold"`
}

type removeOverlapsResult struct {
	Count      int             `json:"count"`
	Rectangles []geometry.Rect `json:"rectangles"`
}

func (s *Server) handleRemoveOverlaps(args json.RawMessage) (interface{}, error) {
	var a removeOverlapsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.OverlapThreshold == 0 {
		a.OverlapThreshold = detection.DefaultOverlapThreshold
	}
	if a.OverlapThreshold < 0 || a.OverlapThreshold > 1 {
		return nil, fmt.Errorf("overlap_threshold %v outside (0, 1]", a.OverlapThreshold)
	}

	kept := geometry.RemoveOverlapping(a.Rectangles, a.OverlapThreshold)
	return &removeOverlapsResult{
		Count:      len(kept),
		Rectangles: kept,
	}, nil
}

type iconExtractLabelsArgs struct {
	ScreenshotPath string          `json:"screenshot_path"`
	Buttons        []geometry.Rect `json:"buttons"`
	Language       string          `json:"language"`
}

type iconExtractLabelsResult struct {
	Count  int               `json:"count"`
	Labels []ocr.ButtonLabel `json:"labels"`
}

func (s *Server) handleIconExtractLabels(args json.RawMessage) (interface{}, error) {
	var a iconExtractLabelsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Language == "" {
		a.Language = "eng"
	}

	img, err := s.cache.Load(a.ScreenshotPath)
	if err != nil {
		return nil, err
	}

	labels, err := ocr.ExtractButtonLabels(img, a.Buttons, a.Language)
	if err != nil {
		return nil, err
	}
	return &iconExtractLabelsResult{
		Count:  len(labels),
		Labels: labels,
	}, nil
}

// === Image Information Handlers ===

type imagePathArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageInfo(args json.RawMessage) (interface{}, error) {
	var a imagePathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imagePathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}
