package server

import (
	"encoding/json"
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/rs/zerolog/log"

	"github.com/ironsheep/image-edit-mcp/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_resize").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// JSON-RPC error codes returned by tools/call.
const (
	codeToolFailed = -32000 // fatal error: bad input, undecodable image, missing path
	codeOpFailed   = -32001 // recoverable failure reported by the imaging package
)

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Fatal tool errors return code -32000. Recoverable imaging failures (an
// unsupported mode or output extension, an unwritable directory, an encoder
// error) return code -32001 so clients can tell the two apart.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		if imaging.IsFailure(err) {
			log.Warn().Str("tool", params.Name).Err(err).Msg("operation failed")
			return s.errorResponse(req.ID, codeOpFailed, "Operation failed", err.Error())
		}
		log.Error().Str("tool", params.Name).Err(err).Msg("tool execution failed")
		return s.errorResponse(req.ID, codeToolFailed, "Tool execution failed", err.Error())
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
// Each editing handler:
//  1. Unmarshals arguments from JSON
//  2. Loads a private copy of the image from the cache
//  3. Applies the requested transforms
//  4. Saves to the output path (or over the source when none is given)
//  5. Evicts stale cache entries and returns the written file's info
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Editing Operations
	case "image_resize":
		return s.handleImageResize(args)
	case "image_rotate":
		return s.handleImageRotate(args)
	case "image_transform":
		return s.handleImageTransform(args)
	case "image_convert":
		return s.handleImageConvert(args)

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

// parseColor parses a "#RRGGBB" colour.
func parseColor(hex string) (color.Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Editing Operation Handlers ===

type resizeArgs struct {
	Mode   string `json:"mode"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

func (r resizeArgs) options() imaging.ResizeOptions {
	return imaging.ResizeOptions{
		Mode:   imaging.ResizeMode(r.Mode),
		Width:  r.Width,
		Height: r.Height,
	}
}

type rotateArgs struct {
	Angle      float64 `json:"angle"`
	Background string  `json:"background"`
}

type imageResizeArgs struct {
	Path   string `json:"path"`
	Output string `json:"output"`
	resizeArgs
}

func (s *Server) handleImageResize(args json.RawMessage) (interface{}, error) {
	var a imageResizeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	if _, err := img.Resize(a.options()); err != nil {
		return nil, err
	}
	return s.save(img, a.Path, a.Output)
}

type imageRotateArgs struct {
	Path   string `json:"path"`
	Output string `json:"output"`
	rotateArgs
}

func (s *Server) handleImageRotate(args json.RawMessage) (interface{}, error) {
	var a imageRotateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	bg, err := s.backgroundOrDefault(a.Background)
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	img.Rotate(a.Angle, bg)
	return s.save(img, a.Path, a.Output)
}

type transformStep struct {
	Op string `json:"op"` // "resize" or "rotate"
	resizeArgs
	rotateArgs
}

type imageTransformArgs struct {
	Path   string          `json:"path"`
	Output string          `json:"output"`
	Steps  []transformStep `json:"steps"`
}

func (s *Server) handleImageTransform(args json.RawMessage) (interface{}, error) {
	var a imageTransformArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if len(a.Steps) == 0 {
		return nil, fmt.Errorf("steps must not be empty")
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	for i, step := range a.Steps {
		switch step.Op {
		case "resize":
			if _, err := img.Resize(step.options()); err != nil {
				return nil, fmt.Errorf("step %d: %w", i, err)
			}
		case "rotate":
			bg, err := s.backgroundOrDefault(step.Background)
			if err != nil {
				return nil, fmt.Errorf("step %d: %w", i, err)
			}
			img.Rotate(step.Angle, bg)
		default:
			return nil, fmt.Errorf("step %d: unknown op %q", i, step.Op)
		}
	}
	return s.save(img, a.Path, a.Output)
}

type imageConvertArgs struct {
	Path   string `json:"path"`
	Output string `json:"output"`
}

func (s *Server) handleImageConvert(args json.RawMessage) (interface{}, error) {
	var a imageConvertArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Output == "" {
		return nil, fmt.Errorf("output is required: %w", imaging.ErrPathRequired)
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return s.save(img, a.Path, a.Output)
}

// save writes img to output (over its source when output is empty) and
// drops cache entries that no longer match the files on disk.
func (s *Server) save(img *imaging.Image, source, output string) (*imaging.ImageInfo, error) {
	saved, err := img.SaveWith(output, s.encodeOpts)
	if err != nil {
		return nil, err
	}
	// Cache keys are canonical paths, so this drops every spelling of the
	// written file.
	s.cache.Evict(saved.Realpath())

	log.Debug().
		Str("source", source).
		Str("realpath", saved.Realpath()).
		Str("format", saved.Format().String()).
		Int("width", saved.Width()).
		Int("height", saved.Height()).
		Msg("image saved")

	return saved.Info(), nil
}

func (s *Server) backgroundOrDefault(hex string) (color.Color, error) {
	if hex == "" {
		return s.background, nil
	}
	c, err := parseColor(hex)
	if err != nil {
		return nil, fmt.Errorf("invalid background %q: %w", hex, err)
	}
	return c, nil
}
