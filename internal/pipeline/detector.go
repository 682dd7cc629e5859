package pipeline

import (
	"fmt"
	"image"
	"log"

	"github.com/ironsheep/hough-lines-mcp/internal/edges"
	"github.com/ironsheep/hough-lines-mcp/internal/hough"
	"github.com/ironsheep/hough-lines-mcp/internal/imaging"
)

// Result carries the output of every stage of a detection run.
type Result struct {
	// Edges is the binary edge map the accumulator was built from.
	Edges *hough.EdgeMap

	// Accumulator is the full vote grid.
	Accumulator *hough.Accumulator

	// Lines are the detected lines. Segments[i] draws Lines[i].
	Lines    []hough.Line
	Segments []hough.Segment

	// Offset is the position of the detection input in the source image.
	// It is zero unless the run was restricted to a region.
	Offset image.Point
}

// Detector runs the edge, vote, peak and reconstruction stages with a
// fixed, validated Config. It is safe for concurrent use.
type Detector struct {
	cfg   Config
	edges edges.Detector

	// Debug logs per-stage diagnostics when set.
	Debug bool
}

// New validates cfg and returns a Detector. It thresholds the input as an
// edge mask when cfg.MaskLevel is set and uses the build's Canny backend
// otherwise.
func New(cfg Config) (*Detector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var ed edges.Detector
	if cfg.MaskLevel > 0 {
		ed = edges.MaskDetector{Level: uint8(cfg.MaskLevel)}
	} else {
		ed = edges.New(cfg.EdgeThresholdLow, cfg.EdgeThresholdHigh, cfg.BlurSigma)
	}
	return &Detector{cfg: cfg, edges: ed}, nil
}

// Config returns the configuration the detector was built with.
func (d *Detector) Config() Config {
	return d.cfg
}

// Edges returns the edge map of img.
func (d *Detector) Edges(img image.Image) (*hough.EdgeMap, error) {
	em, err := d.edges.Detect(img)
	if err != nil {
		return nil, fmt.Errorf("failed to detect edges: %w", err)
	}
	return em, nil
}

// EdgeSource names where edge maps come from: "mask" or the Canny backend.
func (d *Detector) EdgeSource() string {
	if d.cfg.MaskLevel > 0 {
		return "mask"
	}
	return edges.Backend
}

// Detect finds lines in img.
func (d *Detector) Detect(img image.Image) (*Result, error) {
	em, err := d.Edges(img)
	if err != nil {
		return nil, err
	}
	return d.DetectEdges(em)
}

// DetectRegion finds lines inside region r of img. Segments are relative to
// the region; Result.Offset locates the region in img.
func (d *Detector) DetectRegion(img image.Image, r imaging.Region) (*Result, error) {
	cropped, offset, err := imaging.CropRegion(img, r)
	if err != nil {
		return nil, fmt.Errorf("failed to crop region: %w", err)
	}

	res, err := d.Detect(cropped)
	if err != nil {
		return nil, err
	}
	res.Offset = offset
	return res, nil
}

// DetectEdges runs the Hough stages on an existing edge map.
func (d *Detector) DetectEdges(em *hough.EdgeMap) (*Result, error) {
	d.logf("Edge points: %d (%dx%d)", em.Count(), em.Width, em.Height)

	acc, err := hough.Accumulate(em, d.cfg.RhoResolution, d.cfg.ThetaResolution, d.cfg.Workers)
	if err != nil {
		return nil, err
	}
	d.logf("Accumulator: %d rho x %d theta bins, max %d votes", acc.Rows(), acc.Cols(), acc.Max())

	lines := acc.Peaks(d.cfg.VoteThreshold, d.cfg.Workers)
	if d.cfg.SuppressRadius > 0 {
		lines = hough.SuppressNonMaxima(acc, lines, d.cfg.SuppressRadius)
	}
	if d.cfg.MaxLines > 0 {
		lines = hough.SortByVotes(lines)
		if len(lines) > d.cfg.MaxLines {
			lines = lines[:d.cfg.MaxLines]
		}
	}
	d.logf("Detected lines: %d", len(lines))

	return &Result{
		Edges:       em,
		Accumulator: acc,
		Lines:       lines,
		Segments:    hough.ReconstructAll(lines, em.Diagonal()),
	}, nil
}

func (d *Detector) logf(format string, args ...any) {
	if d.Debug {
		log.Printf(format, args...)
	}
}
