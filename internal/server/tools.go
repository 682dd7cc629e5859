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
		"description": "Absolute path to the image file",
	}
}

// detectionProperties describes the arguments shared by every detection tool.
func detectionProperties() map[string]interface{} {
	return map[string]interface{}{
		"path": pathProperty(),
		"edge_threshold_low": map[string]interface{}{
			"type":        "number",
			"description": "Canny low hysteresis threshold on 0-255 gradient magnitude. Default 400",
		},
		"edge_threshold_high": map[string]interface{}{
			"type":        "number",
			"description": "Canny high hysteresis threshold. Default 500",
		},
		"blur_sigma": map[string]interface{}{
			"type":        "number",
			"description": "Gaussian blur sigma applied before edge detection. Default 0 (off)",
		},
		"rho_resolution": map[string]interface{}{
			"type":        "number",
			"description": "Distance bin size in pixels. Default 2",
		},
		"theta_resolution": map[string]interface{}{
			"type":        "number",
			"description": "Angle bin size in degrees. Default 2",
		},
		"vote_threshold": map[string]interface{}{
			"type":        "integer",
			"description": "A bin must hold more votes than this to become a line. Default 120",
		},
		"mask_level": map[string]interface{}{
			"type":        "integer",
			"description": "Treat the image as an edge mask instead of running Canny: pixels with luminance at or above this level (1-255) are edges. Default 0 (off)",
		},
		"region": map[string]interface{}{
			"type":        "object",
			"description": "Optional region of interest; x1,y1 inclusive, x2,y2 exclusive",
			"properties": map[string]interface{}{
				"x1": map[string]interface{}{"type": "integer"},
				"y1": map[string]interface{}{"type": "integer"},
				"x2": map[string]interface{}{"type": "integer"},
				"y2": map[string]interface{}{"type": "integer"},
			},
			"required": []string{"x1", "y1", "x2", "y2"},
		},
	}
}

func withProperties(base map[string]interface{}, extra map[string]interface{}) map[string]interface{} {
	for k, v := range extra {
		base[k] = v
	}
	return base
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, diagonal and format. The decoded image is cached for later detection calls.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "hough_edge_detect",
			Description: "Run Canny edge detection and return the binary edge map as base64 PNG with the number of edge pixels. Use this to tune edge thresholds before detecting lines.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": detectionProperties(),
				"required":   []string{"path"},
			},
		},
		{
			Name:        "hough_detect_lines",
			Description: "Detect straight lines with the Hough transform. Returns each line as (rho, theta_degrees, votes) with a segment across the image, plus accumulator statistics. Strong lines appear as clusters of neighbouring bins unless suppress_radius is set.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(detectionProperties(), map[string]interface{}{
					"suppress_radius": map[string]interface{}{
						"type":        "integer",
						"description": "Keep only local maxima within this many bins. Default 0 (off)",
					},
					"max_lines": map[string]interface{}{
						"type":        "integer",
						"description": "Return only the strongest lines, ordered by votes. Default 0 (all, in accumulator order)",
					},
					"annotate": map[string]interface{}{
						"type":        "boolean",
						"description": "Also return the source image with lines drawn as base64 PNG",
					},
					"line_color": map[string]interface{}{
						"type":        "string",
						"description": "Hex colour for annotated lines. Default #ff0000",
					},
					"labels": map[string]interface{}{
						"type":        "boolean",
						"description": "Label annotated lines with rho, theta and votes",
					},
				}),
				"required": []string{"path"},
			},
		},
		{
			Name:        "hough_accumulator",
			Description: "Return the Hough accumulator as a heat map PNG (theta across, rho down) with its shape and vote statistics.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(detectionProperties(), map[string]interface{}{
					"width": map[string]interface{}{
						"type":        "integer",
						"description": "Resize the heat map to this width. Default: one pixel per bin",
					},
					"height": map[string]interface{}{
						"type":        "integer",
						"description": "Resize the heat map to this height. Default: one pixel per bin",
					},
				}),
				"required": []string{"path"},
			},
		},
	}
}
