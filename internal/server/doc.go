// Package server implements the MCP (Model Context Protocol) server for the
// icon detector.
//
// This package provides a JSON-RPC 2.0 server that exposes the detection
// pipeline through the MCP protocol, so Claude and other MCP-compatible
// clients can locate UI buttons in screenshots and act on the coordinates.
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
// Detection:
//   - icon_detect: Run the full pipeline (match, de-duplicate, classify
//     brightness, optionally render a debug image)
//   - icon_locate: Find the single best occurrence of a template and return
//     its center point
//
// Analysis:
//   - region_brightness: Classify one rectangle as available or dark
//   - remove_overlaps: De-duplicate a caller-supplied rectangle list
//   - icon_extract_labels: OCR the text labels next to detected buttons
//
// Image Information:
//   - image_info: Load an image and get its metadata
//   - image_dimensions: Get width and height
//
// # Image Caching
//
// The server maintains an in-memory cache of loaded images. Template icons
// are small and requested on every detection, so caching them by path pays
// off immediately; screenshots are cached too and can be evicted by
// restarting the server.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
// The server is typically started by an MCP client:
//
//	srv := server.New()
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
