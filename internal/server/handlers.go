package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"

	"github.com/ironsheep/image-editor-mcp/internal/effects"
	"github.com/ironsheep/image-editor-mcp/internal/pixel"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_resize").
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
// A panicking tool is reported the same way and the session stays usable.
func (s *Server) handleToolsCall(req *MCPRequest) (resp *MCPResponse) {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	defer func() {
		if r := recover(); r != nil {
			s.log.WithField("tool", params.Name).WithField("panic", r).Error("Tool panicked")
			resp = s.errorResponse(req.ID, -32000, "Tool execution failed", fmt.Sprintf("internal error: %v", r))
		}
	}()

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.log.WithError(err).WithField("tool", params.Name).Debug("Tool failed")
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
//  3. Calls the matching editor session operation
//  4. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Session
	case "image_load":
		return s.handleImageLoad(args)
	case "image_status":
		return s.session.Status(), nil

	// Destructive transforms
	case "image_grayscale":
		return s.handleImageGrayscale()
	case "image_resize":
		return s.handleImageResize(args)
	case "image_crop":
		return s.handleImageCrop(args)
	case "image_undo":
		return s.handleImageUndo()

	// Effects
	case "image_set_effect":
		return s.handleImageSetEffect(args)
	case "image_clear_effects":
		s.session.ClearEffects()
		return s.session.Status(), nil

	// Output
	case "image_export":
		return s.handleImageExport(args)
	case "image_current":
		return s.handleImageCurrent(args)
	case "image_sample_pixel":
		return s.handleImageSamplePixel(args)
	case "image_dominant_colors":
		return s.handleImageDominantColors(args)

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
// Marshal errors yield an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// unmarshalArgs decodes tool arguments. Tools whose parameters are all
// optional may be called with no arguments at all.
func unmarshalArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 || string(args) == "null" {
		return nil
	}
	return json.Unmarshal(args, v)
}

// dimensionsResult is returned by every tool that changes the current image.
type dimensionsResult struct {
	Width   int  `json:"width"`
	Height  int  `json:"height"`
	Depth   int  `json:"depth"`
	CanUndo bool `json:"can_undo"`
}

func (s *Server) dimensions() dimensionsResult {
	st := s.session.Status()
	return dimensionsResult{
		Width:   st.Width,
		Height:  st.Height,
		Depth:   st.History.Depth,
		CanUndo: st.CanUndo,
	}
}

// === Session Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
	Data string `json:"data"`
}

// loadResult describes a freshly loaded image.
type loadResult struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}

	var (
		buf    *pixel.Buffer
		err    error
		source string
	)
	switch {
	case a.Path != "":
		buf, err = s.session.LoadFile(a.Path)
		source = a.Path
	case a.Data != "":
		raw, decErr := base64.StdEncoding.DecodeString(a.Data)
		if decErr != nil {
			return nil, fmt.Errorf("invalid base64 data: %w", decErr)
		}
		buf, err = s.session.Load(raw)
		source = "data"
	default:
		return nil, errors.New("either path or data is required")
	}
	if err != nil {
		return nil, err
	}

	return &loadResult{
		Source: source,
		Width:  buf.Width(),
		Height: buf.Height(),
	}, nil
}

// === Transform Handlers ===

func (s *Server) handleImageGrayscale() (interface{}, error) {
	if err := s.session.ApplyGrayscale(); err != nil {
		return nil, err
	}
	return s.dimensions(), nil
}

type imageResizeArgs struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (s *Server) handleImageResize(args json.RawMessage) (interface{}, error) {
	var a imageResizeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := s.session.ApplyResize(a.Width, a.Height); err != nil {
		return nil, err
	}
	return s.dimensions(), nil
}

type imageCropArgs struct {
	Region string `json:"region"`
	X1     int    `json:"x1"`
	Y1     int    `json:"y1"`
	X2     int    `json:"x2"`
	Y2     int    `json:"y2"`
}

func (s *Server) handleImageCrop(args json.RawMessage) (interface{}, error) {
	var a imageCropArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}

	var err error
	if a.Region != "" {
		err = s.session.ApplyCropRegion(a.Region)
	} else {
		err = s.session.ApplyCrop(image.Rect(a.X1, a.Y1, a.X2, a.Y2))
	}
	if err != nil {
		return nil, err
	}
	return s.dimensions(), nil
}

func (s *Server) handleImageUndo() (interface{}, error) {
	if _, err := s.session.Current(); err != nil {
		return nil, err
	}
	s.session.Undo()
	return s.dimensions(), nil
}

// === Effect Handlers ===

type imageSetEffectArgs struct {
	Kind       string   `json:"kind"`
	Delta      *float64 `json:"delta"`
	Kernel     *int     `json:"kernel"`
	Iterations *int     `json:"iterations"`
	Radius     *float64 `json:"radius"`
	Enabled    *bool    `json:"enabled"`
}

// params fills the effect parameters, using the editor defaults for
// anything the caller left out.
func (a imageSetEffectArgs) params(kind effects.Kind) (effects.Params, error) {
	p := effects.Params{
		Kernel:     effects.DefaultBoxKernel,
		Iterations: effects.DefaultBoxIterations,
		Radius:     effects.DefaultGaussianRadius,
		Enabled:    true,
	}
	if a.Kernel != nil {
		p.Kernel = *a.Kernel
	}
	if a.Iterations != nil {
		p.Iterations = *a.Iterations
	}
	if a.Radius != nil {
		p.Radius = *a.Radius
	}
	if a.Enabled != nil {
		p.Enabled = *a.Enabled
	}
	if a.Delta != nil {
		p.Delta = *a.Delta
	} else if kind == effects.KindBrightness {
		return p, fmt.Errorf("%w: brightness needs a delta", effects.ErrInvalidParameter)
	}
	return p, nil
}

func (s *Server) handleImageSetEffect(args json.RawMessage) (interface{}, error) {
	var a imageSetEffectArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	kind, err := effects.ParseKind(a.Kind)
	if err != nil {
		return nil, err
	}
	p, err := a.params(kind)
	if err != nil {
		return nil, err
	}
	if err := s.session.SetEffect(kind, p); err != nil {
		return nil, err
	}
	return s.session.Status().Effects, nil
}

// === Output Handlers ===

type imageExportArgs struct {
	Path string `json:"path"`
}

// exportResult describes a written file.
type exportResult struct {
	Path   string `json:"path"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format"`
}

func (s *Server) handleImageExport(args json.RawMessage) (interface{}, error) {
	var a imageExportArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := s.session.Export(a.Path); err != nil {
		return nil, err
	}

	st := s.session.Status()
	return &exportResult{
		Path:   a.Path,
		Width:  st.Width,
		Height: st.Height,
		Format: "png",
	}, nil
}

type imageCurrentArgs struct {
	Committed bool `json:"committed"`
}

// currentResult carries an encoded view of the current image.
type currentResult struct {
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	MimeType  string `json:"mime_type"`
	Committed bool   `json:"committed"`
	Data      string `json:"data"`
}

func (s *Server) handleImageCurrent(args json.RawMessage) (interface{}, error) {
	var a imageCurrentArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}

	buf, data, err := s.session.EncodeCurrent(a.Committed)
	if err != nil {
		return nil, err
	}
	return &currentResult{
		Width:     buf.Width(),
		Height:    buf.Height(),
		MimeType:  "image/png",
		Committed: a.Committed,
		Data:      base64.StdEncoding.EncodeToString(data),
	}, nil
}

type imageSamplePixelArgs struct {
	X        int  `json:"x"`
	Y        int  `json:"y"`
	Rendered bool `json:"rendered"`
}

func (s *Server) handleImageSamplePixel(args json.RawMessage) (interface{}, error) {
	var a imageSamplePixelArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	buf, err := s.view(a.Rendered)
	if err != nil {
		return nil, err
	}
	return buf.Sample(a.X, a.Y)
}

type imageDominantColorsArgs struct {
	Count    int  `json:"count"`
	Rendered bool `json:"rendered"`
}

// dominantColorsResult lists palette entries, most common first.
type dominantColorsResult struct {
	Colors []pixel.ColorFrequency `json:"colors"`
}

func (s *Server) handleImageDominantColors(args json.RawMessage) (interface{}, error) {
	var a imageDominantColorsArgs
	if err := unmarshalArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Count <= 0 {
		a.Count = 5
	}

	buf, err := s.view(a.Rendered)
	if err != nil {
		return nil, err
	}
	return &dominantColorsResult{Colors: buf.DominantColors(a.Count)}, nil
}

// view returns the committed buffer, or the rendered one when rendered is
// set.
func (s *Server) view(rendered bool) (*pixel.Buffer, error) {
	if rendered {
		return s.session.Render()
	}
	return s.session.Current()
}
