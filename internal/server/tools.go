package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the source image file (GIF, JPEG, PNG or WEBP)",
	}
}

func outputProperty() map[string]interface{} {
	return map[string]interface{}{
		"type": "string",
		"description": "Where to write the result. A path ending in .gif, .jpg, .jpeg, .png or .webp selects the output format; " +
			"a path without an extension is a directory and keeps the source file name and format. Defaults to overwriting the source.",
	}
}

func resizeProperties() map[string]interface{} {
	return map[string]interface{}{
		"mode": map[string]interface{}{
			"type":        "string",
			"description": "Resize mode. Only \"clip\" (keep aspect ratio) is supported",
			"enum":        []string{"clip"},
			"default":     "clip",
		},
		"width": map[string]interface{}{
			"type":        "integer",
			"description": "Target width in pixels",
		},
		"height": map[string]interface{}{
			"type":        "integer",
			"description": "Target height in pixels",
		},
	}
}

func rotateProperties() map[string]interface{} {
	return map[string]interface{}{
		"angle": map[string]interface{}{
			"type":        "number",
			"description": "Rotation angle in degrees, counter-clockwise",
		},
		"background": map[string]interface{}{
			"type":        "string",
			"description": "Fill colour for uncovered areas as #RRGGBB. Defaults to the server's configured background",
		},
	}
}

func merge(maps ...map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{})
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format, MIME type and path details.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
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
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Editing Operations
		{
			Name: "image_resize",
			Description: "Resize an image keeping its aspect ratio and save the result. " +
				"Give a width, a height, or both; the other side is derived from the source proportions.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": merge(map[string]interface{}{
					"path":   pathProperty(),
					"output": outputProperty(),
				}, resizeProperties()),
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_rotate",
			Description: "Rotate an image by any angle and save the result. The canvas grows to fit the rotated image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": merge(map[string]interface{}{
					"path":   pathProperty(),
					"output": outputProperty(),
				}, rotateProperties()),
				"required": []string{"path", "angle"},
			},
		},
		{
			Name:        "image_transform",
			Description: "Apply a sequence of resize and rotate steps to an image and save the result once.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":   pathProperty(),
					"output": outputProperty(),
					"steps": map[string]interface{}{
						"type":        "array",
						"description": "Steps applied in order",
						"items": map[string]interface{}{
							"type": "object",
							"properties": merge(map[string]interface{}{
								"op": map[string]interface{}{
									"type": "string",
									"enum": []string{"resize", "rotate"},
								},
							}, resizeProperties(), rotateProperties()),
							"required": []string{"op"},
						},
					},
				},
				"required": []string{"path", "steps"},
			},
		},
		{
			Name:        "image_convert",
			Description: "Re-encode an image to the format named by the output path's extension (gif, jpg, jpeg, png, webp).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":   pathProperty(),
					"output": outputProperty(),
				},
				"required": []string{"path", "output"},
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
