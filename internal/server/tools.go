package server

import (
	"strings"

	"github.com/ironsheep/fezrs/internal/bands"
	"github.com/ironsheep/fezrs/internal/render"
	"github.com/ironsheep/fezrs/internal/tools"
)

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// MetadataTool is the name of the band metadata tool.
const MetadataTool = "fezrs_band_metadata"

// toolName maps a calculator name to its MCP tool name.
func toolName(calculator string) string {
	return "fezrs_" + strings.ToLower(calculator)
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	var defs []Tool
	for _, name := range tools.Names() {
		info, _ := tools.Lookup(name)
		props := bandProperties(info.Required)
		for k, v := range exportProperties() {
			props[k] = v
		}
		switch name {
		case "GAUSSIAN":
			props["ksize_x"] = prop("integer", "Kernel width, odd and positive. Default 13")
			props["ksize_y"] = prop("integer", "Kernel height, odd and positive. Default 13")
			props["sigma_x"] = prop("number", "Standard deviation along X. 0 derives it from the kernel size")
			props["sigma_y"] = prop("number", "Standard deviation along Y. Defaults to sigma_x")
		case "KMEANS":
			props["clusters"] = prop("integer", "Number of clusters. Default 4")
		}

		required := make([]string, len(info.Required))
		for i, n := range info.Required {
			required[i] = string(n)
		}
		defs = append(defs, Tool{
			Name:        toolName(name),
			Description: info.Description + ". Writes a PNG figure and returns its path.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": props,
				"required":   required,
			},
		})
	}

	defs = append(defs, Tool{
		Name:        MetadataTool,
		Description: "Describe band files: height, width, planes, format, color model, bit depth and file size.",
		InputSchema: map[string]interface{}{
			"type":       "object",
			"properties": bandProperties(nil),
		},
	})
	return defs
}

func prop(typ, description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        typ,
		"description": description,
	}
}

// bandProperties declares one path property per band name. Required bands
// are described as such.
func bandProperties(required []bands.Name) map[string]interface{} {
	props := map[string]interface{}{}
	for _, n := range bands.All() {
		desc := "Absolute path to the " + string(n) + " band image"
		for _, r := range required {
			if r == n {
				desc += " (required)"
			}
		}
		props[string(n)] = prop("string", desc)
	}
	return props
}

func exportProperties() map[string]interface{} {
	var colormaps []string
	for _, n := range render.ColormapNames() {
		colormaps = append(colormaps, n, n+"_r")
	}

	props := map[string]interface{}{
		"output_dir":      prop("string", "Directory for the PNG file. Created if missing"),
		"title":           prop("string", "Figure title; rendered as <title>-FEZrs"),
		"show_axis":       prop("boolean", "Draw a frame with pixel tick labels"),
		"show_colorbar":   prop("boolean", "Draw a colorbar"),
		"filename_prefix": prop("string", "File name prefix"),
		"dpi":             prop("integer", "Pixels per inch"),
		"grid":            prop("boolean", "Draw grid lines at the ticks (needs show_axis)"),
	}
	props["figsize"] = map[string]interface{}{
		"type":        "array",
		"items":       map[string]interface{}{"type": "number"},
		"minItems":    2,
		"maxItems":    2,
		"description": "Figure width and height in inches",
	}
	props["colormap"] = map[string]interface{}{
		"type":        "string",
		"enum":        colormaps,
		"description": "Colormap for single-band outputs",
	}
	props["bbox"] = map[string]interface{}{
		"type":        "string",
		"enum":        []string{render.BBoxStandard, render.BBoxTight},
		"description": "tight crops the figure to its content",
	}
	return props
}

// handleToolsList responds with every tool definition.
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
