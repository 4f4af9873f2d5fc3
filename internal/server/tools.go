package server

import "github.com/ironsheep/image-editor-mcp/internal/transform"

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func emptySchema() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Session
		{
			Name:        "image_load",
			Description: "Load an image and start a new editing session with it. Clears history and effects. Pass either a file path or base64-encoded image data. A request carrying inline data is limited to 64 MiB.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to a PNG, JPEG, GIF, BMP, TIFF or WebP file",
					},
					"data": map[string]interface{}{
						"type":        "string",
						"description": "Base64-encoded image bytes, used when path is empty. The whole request line must fit in 64 MiB",
					},
				},
			},
		},
		{
			Name:        "image_status",
			Description: "Report the current and original dimensions, undo availability, history statistics and active effects.",
			InputSchema: emptySchema(),
		},

		// Destructive transforms
		{
			Name:        "image_grayscale",
			Description: "Convert the current image to grayscale by averaging the red, green and blue channels. Can be undone.",
			InputSchema: emptySchema(),
		},
		{
			Name:        "image_resize",
			Description: "Resize the current image with nearest-neighbor sampling. Can be undone.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "New width in pixels (at least 1)",
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "New height in pixels (at least 1)",
					},
				},
				"required": []string{"width", "height"},
			},
		},
		{
			Name:        "image_crop",
			Description: "Crop the current image to a rectangle or a named region. Can be undone.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"region": map[string]interface{}{
						"type":        "string",
						"enum":        transform.Regions,
						"description": "Named region. When set, the coordinates are ignored",
					},
					"x1": map[string]interface{}{
						"type":        "integer",
						"description": "Left edge X coordinate (0-based)",
					},
					"y1": map[string]interface{}{
						"type":        "integer",
						"description": "Top edge Y coordinate (0-based)",
					},
					"x2": map[string]interface{}{
						"type":        "integer",
						"description": "Right edge X coordinate (exclusive)",
					},
					"y2": map[string]interface{}{
						"type":        "integer",
						"description": "Bottom edge Y coordinate (exclusive)",
					},
				},
			},
		},
		{
			Name:        "image_undo",
			Description: "Revert the last grayscale, resize or crop and clear all effects. At the start of history the original image stays current.",
			InputSchema: emptySchema(),
		},

		// Effects
		{
			Name:        "image_set_effect",
			Description: "Set one view effect. Effects are applied on display and export in the order brightness, blur, sepia, and are not recorded in history. Box blur and gaussian blur replace each other.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"kind": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"brightness", "blur", "gaussian", "sepia"},
						"description": "Effect to set",
					},
					"delta": map[string]interface{}{
						"type":        "number",
						"description": "brightness: -1.0 (black) to 1.0 (white)",
					},
					"kernel": map[string]interface{}{
						"type":        "integer",
						"description": "blur: box kernel size in pixels. Default 5",
						"default":     5,
					},
					"iterations": map[string]interface{}{
						"type":        "integer",
						"description": "blur: number of box passes, 1 to 3. Default 3",
						"default":     3,
					},
					"radius": map[string]interface{}{
						"type":        "number",
						"description": "gaussian: blur radius in pixels. Default 10",
						"default":     10.0,
					},
					"enabled": map[string]interface{}{
						"type":        "boolean",
						"description": "sepia: turn the tone on or off. Default true",
						"default":     true,
					},
				},
				"required": []string{"kind"},
			},
		},
		{
			Name:        "image_clear_effects",
			Description: "Turn off every view effect. History is not affected.",
			InputSchema: emptySchema(),
		},

		// Output
		{
			Name:        "image_export",
			Description: "Write the current image, with effects applied, as a lossless PNG file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute destination path. An existing file is replaced",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_current",
			Description: "Return the current image as base64-encoded PNG. By default effects are applied; set committed to get the image as stored in history.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"committed": map[string]interface{}{
						"type":        "boolean",
						"description": "Return the image without effects. Default false",
						"default":     false,
					},
				},
			},
		},
		{
			Name:        "image_sample_pixel",
			Description: "Get the color of the pixel at (x, y) in the current image as RGBA, hex and HSL.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based)",
					},
					"rendered": map[string]interface{}{
						"type":        "boolean",
						"description": "Sample the image with effects applied. Default false",
						"default":     false,
					},
				},
				"required": []string{"x", "y"},
			},
		},
		{
			Name:        "image_dominant_colors",
			Description: "Extract the most common colors of the current image. Similar colors are grouped by quantizing each channel to multiples of 16.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"count": map[string]interface{}{
						"type":        "integer",
						"description": "Number of colors to return. Default 5",
						"default":     5,
					},
					"rendered": map[string]interface{}{
						"type":        "boolean",
						"description": "Analyze the image with effects applied. Default false",
						"default":     false,
					},
				},
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
