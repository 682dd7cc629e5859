package server

import (
	"encoding/json"
	"fmt"
	"image"

	"github.com/ironsheep/hough-lines-mcp/internal/edges"
	"github.com/ironsheep/hough-lines-mcp/internal/hough"
	"github.com/ironsheep/hough-lines-mcp/internal/imaging"
	"github.com/ironsheep/hough-lines-mcp/internal/pipeline"
	"github.com/ironsheep/hough-lines-mcp/internal/render"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "hough_detect_lines").
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
// Malformed arguments return -32602; tool failures return -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		if _, ok := err.(*argsError); ok {
			return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
		}
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
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "image_load":
		return s.handleImageLoad(args)
	case "hough_edge_detect":
		return s.handleEdgeDetect(args)
	case "hough_detect_lines":
		return s.handleDetectLines(args)
	case "hough_accumulator":
		return s.handleAccumulator(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// argsError marks arguments that could not be decoded.
type argsError struct{ err error }

func (e *argsError) Error() string { return e.err.Error() }

func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}
	if err := json.Unmarshal(args, v); err != nil {
		return &argsError{err: err}
	}
	return nil
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	e := &MCPError{
		Code:    code,
		Message: message,
	}
	if data != "" {
		e.Data = data
	}
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   e,
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Shared arguments ===

// detectionArgs are the settings every detection tool accepts. Zero values
// fall back to the server's base configuration.
type detectionArgs struct {
	Path              string  `json:"path"`
	EdgeThresholdLow  float64 `json:"edge_threshold_low"`
	EdgeThresholdHigh float64 `json:"edge_threshold_high"`
	BlurSigma         float64 `json:"blur_sigma"`
	RhoResolution     float64 `json:"rho_resolution"`
	ThetaResolution   float64 `json:"theta_resolution"`

	// VoteThreshold is a pointer because 0 is a meaningful threshold.
	VoteThreshold *int `json:"vote_threshold"`

	Region *imaging.Region `json:"region"`

	// MaskLevel treats the file as a ready-made edge image.
	MaskLevel int `json:"mask_level"`
}

func (s *Server) configFor(a detectionArgs) pipeline.Config {
	cfg := s.base
	if a.EdgeThresholdLow != 0 {
		cfg.EdgeThresholdLow = a.EdgeThresholdLow
	}
	if a.EdgeThresholdHigh != 0 {
		cfg.EdgeThresholdHigh = a.EdgeThresholdHigh
	}
	if a.BlurSigma != 0 {
		cfg.BlurSigma = a.BlurSigma
	}
	if a.RhoResolution != 0 {
		cfg.RhoResolution = a.RhoResolution
	}
	if a.ThetaResolution != 0 {
		cfg.ThetaResolution = a.ThetaResolution
	}
	if a.VoteThreshold != nil {
		cfg.VoteThreshold = *a.VoteThreshold
	}
	if a.MaskLevel != 0 {
		cfg.MaskLevel = a.MaskLevel
	}
	return cfg
}

// run loads the image and detects lines with cfg, honouring the region.
func (s *Server) run(a detectionArgs, cfg pipeline.Config) (image.Image, *pipeline.Result, error) {
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, nil, err
	}

	d, err := pipeline.New(cfg)
	if err != nil {
		return nil, nil, err
	}
	d.Debug = s.Debug

	var res *pipeline.Result
	if a.Region != nil {
		res, err = d.DetectRegion(img, *a.Region)
	} else {
		res, err = d.Detect(img)
	}
	if err != nil {
		return nil, nil, err
	}
	return img, res, nil
}

// === Result types ===

type point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// AccumulatorShape summarises the vote grid.
type AccumulatorShape struct {
	RhoBins    int     `json:"rho_bins"`
	ThetaBins  int     `json:"theta_bins"`
	RhoMin     float64 `json:"rho_min"`
	MaxRho     int     `json:"max_rho"`
	MaxVotes   uint32  `json:"max_votes"`
	TotalVotes uint64  `json:"total_votes"`
}

func shapeOf(acc *hough.Accumulator) AccumulatorShape {
	return AccumulatorShape{
		RhoBins:    acc.Rows(),
		ThetaBins:  acc.Cols(),
		RhoMin:     acc.Space().RhoMin(),
		MaxRho:     acc.Space().MaxRho,
		MaxVotes:   acc.Max(),
		TotalVotes: acc.Total(),
	}
}

// DetectedLine is one line in a hough_detect_lines result. Segment
// endpoints are in source image coordinates.
type DetectedLine struct {
	Rho          float64 `json:"rho"`
	ThetaDegrees float64 `json:"theta_degrees"`
	Votes        uint32  `json:"votes"`
	P1           point   `json:"p1"`
	P2           point   `json:"p2"`
}

// DetectLinesResult is returned by hough_detect_lines.
type DetectLinesResult struct {
	Width       int                   `json:"width"`
	Height      int                   `json:"height"`
	Offset      point                 `json:"offset"`
	EdgePoints  int                   `json:"edge_points"`
	Accumulator AccumulatorShape      `json:"accumulator"`
	LineCount   int                   `json:"line_count"`
	Lines       []DetectedLine        `json:"lines"`
	Config      pipeline.Config       `json:"config"`
	Annotated   *imaging.EncodedImage `json:"annotated,omitempty"`
}

// EdgeDetectResult is returned by hough_edge_detect.
type EdgeDetectResult struct {
	Width      int                   `json:"width"`
	Height     int                   `json:"height"`
	EdgePoints int                   `json:"edge_points"`
	Backend    string                `json:"backend"`
	Edges      *imaging.EncodedImage `json:"edges"`
}

// AccumulatorResult is returned by hough_accumulator.
type AccumulatorResult struct {
	AccumulatorShape
	HeatMap *imaging.EncodedImage `json:"heat_map"`
}

// === Tool handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleEdgeDetect(args json.RawMessage) (interface{}, error) {
	var a detectionArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	d, err := pipeline.New(s.configFor(a))
	if err != nil {
		return nil, err
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	if a.Region != nil {
		if img, _, err = imaging.CropRegion(img, *a.Region); err != nil {
			return nil, err
		}
	}

	em, err := d.Edges(img)
	if err != nil {
		return nil, err
	}

	encoded, err := imaging.EncodePNG(edges.ToGray(em))
	if err != nil {
		return nil, err
	}
	return &EdgeDetectResult{
		Width:      em.Width,
		Height:     em.Height,
		EdgePoints: em.Count(),
		Backend:    d.EdgeSource(),
		Edges:      encoded,
	}, nil
}

type detectLinesArgs struct {
	detectionArgs
	SuppressRadius int    `json:"suppress_radius"`
	MaxLines       int    `json:"max_lines"`
	Annotate       bool   `json:"annotate"`
	LineColor      string `json:"line_color"`
	Labels         bool   `json:"labels"`
}

func (s *Server) handleDetectLines(args json.RawMessage) (interface{}, error) {
	var a detectLinesArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	cfg := s.configFor(a.detectionArgs)
	if a.SuppressRadius != 0 {
		cfg.SuppressRadius = a.SuppressRadius
	}
	if a.MaxLines != 0 {
		cfg.MaxLines = a.MaxLines
	}

	img, res, err := s.run(a.detectionArgs, cfg)
	if err != nil {
		return nil, err
	}

	out := &DetectLinesResult{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		Offset:      point{X: res.Offset.X, Y: res.Offset.Y},
		EdgePoints:  res.Edges.Count(),
		Accumulator: shapeOf(res.Accumulator),
		LineCount:   len(res.Lines),
		Lines:       make([]DetectedLine, len(res.Lines)),
		Config:      cfg,
	}
	for i, l := range res.Lines {
		seg := res.Segments[i]
		out.Lines[i] = DetectedLine{
			Rho:          l.Rho,
			ThetaDegrees: l.ThetaDegrees(),
			Votes:        l.Votes,
			P1:           point{X: seg.P1.X + res.Offset.X, Y: seg.P1.Y + res.Offset.Y},
			P2:           point{X: seg.P2.X + res.Offset.X, Y: seg.P2.Y + res.Offset.Y},
		}
	}

	if a.Annotate {
		style := render.Style{Color: a.LineColor, Labels: a.Labels}
		annotated, err := render.Annotate(img, res.Lines, res.Segments, res.Offset, style)
		if err != nil {
			return nil, err
		}
		if out.Annotated, err = imaging.EncodePNG(annotated); err != nil {
			return nil, err
		}
	}

	return out, nil
}

type accumulatorArgs struct {
	detectionArgs
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (s *Server) handleAccumulator(args json.RawMessage) (interface{}, error) {
	var a accumulatorArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	_, res, err := s.run(a.detectionArgs, s.configFor(a.detectionArgs))
	if err != nil {
		return nil, err
	}

	heat, err := imaging.EncodePNG(render.HeatMap(res.Accumulator, a.Width, a.Height))
	if err != nil {
		return nil, err
	}
	return &AccumulatorResult{
		AccumulatorShape: shapeOf(res.Accumulator),
		HeatMap:          heat,
	}, nil
}
