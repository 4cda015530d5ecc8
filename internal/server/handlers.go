package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/ironsheep/fezrs/internal/bands"
	"github.com/ironsheep/fezrs/internal/config"
	"github.com/ironsheep/fezrs/internal/errdefs"
	"github.com/ironsheep/fezrs/internal/tools"
)

// ToolCallParams represents the parameters for a tools/call request
type ToolCallParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// bandArgs holds one path per band.
type bandArgs struct {
	TIF   string `json:"tif"`
	Red   string `json:"red"`
	NIR   string `json:"nir"`
	Blue  string `json:"blue"`
	SWIR1 string `json:"swir1"`
	SWIR2 string `json:"swir2"`
	Green string `json:"green"`
}

func (a bandArgs) paths() bands.Paths {
	return bands.Paths{
		bands.TIF:   a.TIF,
		bands.Red:   a.Red,
		bands.NIR:   a.NIR,
		bands.Blue:  a.Blue,
		bands.SWIR1: a.SWIR1,
		bands.SWIR2: a.SWIR2,
		bands.Green: a.Green,
	}
}

// CalculatorArgs are the arguments of every calculator tool. Parameters
// that do not apply to the called tool are ignored.
type CalculatorArgs struct {
	bandArgs
	config.Export

	OutputDir string   `json:"output_dir"`
	KSizeX    *int     `json:"ksize_x"`
	KSizeY    *int     `json:"ksize_y"`
	SigmaX    *float64 `json:"sigma_x"`
	SigmaY    *float64 `json:"sigma_y"`
	Clusters  *int     `json:"clusters"`
}

// params overlays the call's parameters on the server defaults.
func (a CalculatorArgs) params(p tools.Params) tools.Params {
	if a.KSizeX != nil {
		p.Gaussian.KSizeX = *a.KSizeX
	}
	if a.KSizeY != nil {
		p.Gaussian.KSizeY = *a.KSizeY
	}
	if a.SigmaX != nil {
		p.Gaussian.SigmaX = *a.SigmaX
	}
	if a.SigmaY != nil {
		sy := *a.SigmaY
		p.Gaussian.SigmaY = &sy
	}
	if a.Clusters != nil {
		p.KMeans.Clusters = *a.Clusters
	}
	return p
}

// CalculatorResult is returned by every calculator tool.
type CalculatorResult struct {
	Tool   string  `json:"tool"`
	Path   string  `json:"path"`
	Rows   int     `json:"rows"`
	Cols   int     `json:"cols"`
	Planes int     `json:"planes"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// MetadataResult maps band names to their descriptions.
type MetadataResult struct {
	Bands map[bands.Name]*bands.Metadata `json:"bands"`
}

// handleToolsCall dispatches a tool call
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		code := -32000
		if errors.Is(err, errUnknownTool) {
			code = -32602
		}
		return s.errorResponse(req.ID, code, "Tool execution failed", err.Error())
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

var errUnknownTool = errors.New("unknown tool")

// executeTool runs the named tool with the given arguments
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	if name == MetadataTool {
		return s.executeMetadata(args)
	}
	calculator, ok := strings.CutPrefix(name, "fezrs_")
	if !ok {
		return nil, fmt.Errorf("%w: %s", errUnknownTool, name)
	}
	if _, err := tools.Lookup(calculator); err != nil {
		return nil, fmt.Errorf("%w: %s", errUnknownTool, name)
	}
	return s.executeCalculator(calculator, args)
}

func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("invalid arguments: %v: %w", err, errdefs.ErrInvalidConfig)
	}
	return nil
}

func (s *Server) executeCalculator(name string, raw json.RawMessage) (*CalculatorResult, error) {
	var args CalculatorArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}

	t, err := tools.New(name, args.paths(), args.params(s.params), bands.WithCache(s.cache))
	if err != nil {
		return nil, err
	}

	dir := args.OutputDir
	if dir == "" {
		dir = s.outputDir
	}
	opts := args.Export.Apply(t.DefaultOptions())

	path, err := s.runner.Execute(t, dir, opts)
	if err != nil {
		return nil, err
	}

	out := t.Output()
	rows, cols, planes := out.Dims()
	lo, hi := out.MinMax()
	res := &CalculatorResult{
		Tool:   t.Name(),
		Path:   path,
		Rows:   rows,
		Cols:   cols,
		Planes: planes,
		Min:    lo,
		Max:    hi,
	}
	// JSON has no NaN.
	if math.IsNaN(lo) {
		res.Min, res.Max = 0, 0
	}
	return res, nil
}

func (s *Server) executeMetadata(raw json.RawMessage) (*MetadataResult, error) {
	var args bandArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	h, err := bands.Open(args.paths(), bands.WithCache(s.cache))
	if err != nil {
		return nil, err
	}
	md, err := h.Metadata()
	if err != nil {
		return nil, err
	}
	return &MetadataResult{Bands: md}, nil
}

// errorResponse creates an error response
func (s *Server) errorResponse(id interface{}, code int, message string, data interface{}) *MCPResponse {
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

// mustMarshalJSON marshals to JSON string, panicking on error
func mustMarshalJSON(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(data)
}
