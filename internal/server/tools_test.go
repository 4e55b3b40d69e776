package server

import (
	"encoding/json"
	"testing"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	if len(tools) == 0 {
		t.Fatal("No tool definitions returned")
	}

	seen := make(map[string]bool)
	for _, tool := range tools {
		if tool.Name == "" {
			t.Error("Tool with empty name")
		}
		if seen[tool.Name] {
			t.Errorf("Duplicate tool name: %s", tool.Name)
		}
		seen[tool.Name] = true

		if tool.Description == "" {
			t.Errorf("Tool %s has no description", tool.Name)
		}
		if tool.InputSchema == nil {
			t.Errorf("Tool %s has no input schema", tool.Name)
		}
	}
}

func TestGetToolDefinitions_ExpectedTools(t *testing.T) {
	tools := GetToolDefinitions()

	expected := []string{
		"icon_detect",
		"icon_locate",
		"region_brightness",
		"remove_overlaps",
		"icon_extract_labels",
		"image_info",
		"image_dimensions",
	}

	byName := make(map[string]Tool)
	for _, tool := range tools {
		byName[tool.Name] = tool
	}

	for _, name := range expected {
		if _, ok := byName[name]; !ok {
			t.Errorf("Missing expected tool: %s", name)
		}
	}
	if len(tools) != len(expected) {
		t.Errorf("Got %d tools, want %d", len(tools), len(expected))
	}
}

func TestGetToolDefinitions_SchemaStructure(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.InputSchema["type"] != "object" {
				t.Errorf("Schema type: got %v, want object", tool.InputSchema["type"])
			}

			props, ok := tool.InputSchema["properties"].(map[string]interface{})
			if !ok {
				t.Fatal("Schema should have properties map")
			}

			required, ok := tool.InputSchema["required"].([]string)
			if !ok {
				t.Fatal("Schema should have required list")
			}
			for _, name := range required {
				if _, ok := props[name]; !ok {
					t.Errorf("Required property %s not in properties", name)
				}
			}
		})
	}
}

func TestGetToolDefinitions_MarshalsToJSON(t *testing.T) {
	// MCP clients consume the definitions as JSON; they must survive
	// marshaling.
	data, err := json.Marshal(GetToolDefinitions())
	if err != nil {
		t.Fatalf("Failed to marshal tool definitions: %v", err)
	}

	var decoded []map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal tool definitions: %v", err)
	}

	for _, tool := range decoded {
		if _, ok := tool["inputSchema"]; !ok {
			t.Errorf("Tool %v missing inputSchema key after roundtrip", tool["name"])
		}
	}
}

func TestEveryToolDispatches(t *testing.T) {
	// executeTool must know every advertised tool. Calling with empty
	// arguments will fail for most tools, but never with "unknown tool".
	s := New()
	for _, tool := range GetToolDefinitions() {
		_, err := s.executeTool(tool.Name, json.RawMessage(`{}`))
		if err != nil && err.Error() == "unknown tool: "+tool.Name {
			t.Errorf("Tool %s advertised but not dispatched", tool.Name)
		}
	}
}
