package pipeline

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"log"
	"math"
	"os"
	"strings"
	"testing"

	"github.com/ironsheep/hough-lines-mcp/internal/hough"
	"github.com/ironsheep/hough-lines-mcp/internal/imaging"
)

// createStepImage creates a black image that turns white from column stepX.
func createStepImage(width, height, stepX int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.Black
			if x >= stepX {
				c = color.White
			}
			img.Set(x, y, c)
		}
	}
	return img
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.RhoResolution = 1
	cfg.ThetaResolution = 1
	cfg.VoteThreshold = 40
	return cfg
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.EdgeThresholdLow != 400 || cfg.EdgeThresholdHigh != 500 {
		t.Errorf("edge thresholds: got %v/%v, want 400/500", cfg.EdgeThresholdLow, cfg.EdgeThresholdHigh)
	}
	if cfg.RhoResolution != 2 || cfg.ThetaResolution != 2 {
		t.Errorf("resolutions: got %v/%v, want 2/2", cfg.RhoResolution, cfg.ThetaResolution)
	}
	if cfg.VoteThreshold != 120 {
		t.Errorf("VoteThreshold: got %d, want 120", cfg.VoteThreshold)
	}
	if cfg.SuppressRadius != 0 || cfg.MaxLines != 0 {
		t.Error("suppression and ranking should be off by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
		field  string
	}{
		{"zero rho", func(c *Config) { c.RhoResolution = 0 }, "rho_resolution"},
		{"negative theta", func(c *Config) { c.ThetaResolution = -1 }, "theta_resolution"},
		{"NaN rho", func(c *Config) { c.RhoResolution = math.NaN() }, "rho_resolution"},
		{"negative threshold", func(c *Config) { c.VoteThreshold = -1 }, "vote_threshold"},
		{"negative low", func(c *Config) { c.EdgeThresholdLow = -5 }, "edge_threshold_low"},
		{"low above high", func(c *Config) { c.EdgeThresholdLow = 600 }, "edge_threshold_low"},
		{"negative blur", func(c *Config) { c.BlurSigma = -0.5 }, "blur_sigma"},
		{"negative radius", func(c *Config) { c.SuppressRadius = -1 }, "suppress_radius"},
		{"negative max lines", func(c *Config) { c.MaxLines = -3 }, "max_lines"},
		{"negative workers", func(c *Config) { c.Workers = -2 }, "workers"},
		{"theta too fine", func(c *Config) { c.ThetaResolution = 1e-300 }, "theta_resolution"},
		{"negative mask level", func(c *Config) { c.MaskLevel = -1 }, "mask_level"},
		{"mask level above 255", func(c *Config) { c.MaskLevel = 256 }, "mask_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)

			err := cfg.Validate()
			if !errors.Is(err, hough.ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
			var ce *hough.ConfigError
			if !errors.As(err, &ce) || ce.Field != tt.field {
				t.Errorf("field: got %+v, want %s", ce, tt.field)
			}

			if _, err := New(cfg); err == nil {
				t.Error("New should reject an invalid config")
			}
		})
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("HOUGH_RHO_RESOLUTION", "1.5")
	t.Setenv("HOUGH_VOTE_THRESHOLD", "80")
	t.Setenv("HOUGH_WORKERS", "3")
	t.Setenv("HOUGH_MASK_LEVEL", "128")
	t.Setenv("HOUGH_EDGE_LOW", "")

	cfg, err := FromEnv(DefaultConfig())
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}

	if cfg.RhoResolution != 1.5 {
		t.Errorf("RhoResolution: got %v, want 1.5", cfg.RhoResolution)
	}
	if cfg.VoteThreshold != 80 {
		t.Errorf("VoteThreshold: got %d, want 80", cfg.VoteThreshold)
	}
	if cfg.Workers != 3 {
		t.Errorf("Workers: got %d, want 3", cfg.Workers)
	}
	if cfg.MaskLevel != 128 {
		t.Errorf("MaskLevel: got %d, want 128", cfg.MaskLevel)
	}
	if cfg.EdgeThresholdLow != 400 || cfg.ThetaResolution != 2 {
		t.Error("unset variables should keep base values")
	}
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct{ key, val string }{
		{"HOUGH_THETA_RESOLUTION", "fine"},
		{"HOUGH_MAX_LINES", "2.5"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			if _, err := FromEnv(DefaultConfig()); err == nil || !strings.Contains(err.Error(), tt.key) {
				t.Errorf("expected parse error naming %s, got %v", tt.key, err)
			}
		})
	}
}

func TestDetect_StepEdge(t *testing.T) {
	cfg := testConfig()
	cfg.MaxLines = 1

	d, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	res, err := d.Detect(createStepImage(100, 60, 50))
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}

	if res.Edges.Count() == 0 {
		t.Fatal("expected edge points at the step")
	}
	if len(res.Lines) != 1 || len(res.Segments) != 1 {
		t.Fatalf("expected exactly one line, got %d lines and %d segments", len(res.Lines), len(res.Segments))
	}

	l := res.Lines[0]
	if math.Abs(l.ThetaDegrees()) > 1 || l.Rho < 48 || l.Rho > 52 {
		t.Errorf("strongest line: got rho=%.1f theta=%.1f°, want vertical near x=50", l.Rho, l.ThetaDegrees())
	}
	if res.Offset != (image.Point{}) {
		t.Errorf("Offset: got %v, want zero", res.Offset)
	}
}

func TestDetect_Mask(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 40, 40))
	for y := 0; y < 40; y++ {
		img.SetGray(10, y, color.Gray{Y: 255})
	}

	cfg := testConfig()
	cfg.VoteThreshold = 30
	cfg.MaxLines = 1
	cfg.MaskLevel = 128
	d, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if d.EdgeSource() != "mask" {
		t.Errorf("EdgeSource: got %q, want mask", d.EdgeSource())
	}

	res, err := d.Detect(img)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}

	// the mask is used as-is; Canny would mark both sides of the stripe
	if res.Edges.Count() != 40 || !res.Edges.At(10, 0) || res.Edges.At(9, 0) {
		t.Errorf("edge map should equal the mask, got %d points", res.Edges.Count())
	}
	if len(res.Lines) != 1 {
		t.Fatalf("expected one line, got %d", len(res.Lines))
	}
	if l := res.Lines[0]; math.Abs(l.ThetaDegrees()) > 1 || l.Rho < 8 || l.Rho > 12 || l.Votes != 40 {
		t.Errorf("line: got rho=%.1f theta=%.1f votes=%d, want vertical at x=10", l.Rho, l.ThetaDegrees(), l.Votes)
	}
}

func TestDetect_NoEdges(t *testing.T) {
	d, err := New(testConfig())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	res, err := d.Detect(createStepImage(40, 40, 40))
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if res.Lines == nil || len(res.Lines) != 0 {
		t.Errorf("expected an empty non-nil line list, got %v", res.Lines)
	}
	if res.Accumulator.Max() != 0 {
		t.Error("uniform image should leave the accumulator empty")
	}
}

func TestDetectEdges_Diagonal(t *testing.T) {
	pts := []image.Point{{0, 0}, {1, 1}, {2, 2}, {3, 3}}
	em, err := hough.EdgeMapFromPoints(10, 10, pts)
	if err != nil {
		t.Fatalf("EdgeMapFromPoints failed: %v", err)
	}

	cfg := testConfig()
	cfg.VoteThreshold = 3
	d, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	res, err := d.DetectEdges(em)
	if err != nil {
		t.Fatalf("DetectEdges failed: %v", err)
	}
	if len(res.Lines) == 0 {
		t.Fatal("expected lines through the diagonal")
	}
	if len(res.Segments) != len(res.Lines) {
		t.Errorf("segments: got %d, want %d", len(res.Segments), len(res.Lines))
	}

	found := false
	for _, l := range res.Lines {
		if l.Votes != 4 {
			t.Errorf("line %+v: every line above threshold 3 should hold 4 votes", l)
		}
		if l.ThetaIndex == 45 {
			found = true
		}
	}
	if !found {
		t.Error("expected the θ = -45° bin among the lines")
	}

	cfg.VoteThreshold = 4
	d, _ = New(cfg)
	res, err = d.DetectEdges(em)
	if err != nil {
		t.Fatalf("DetectEdges failed: %v", err)
	}
	if len(res.Lines) != 0 {
		t.Errorf("threshold 4: got %d lines, want 0", len(res.Lines))
	}
}

func TestDetect_SuppressionAndRanking(t *testing.T) {
	img := createStepImage(100, 60, 50)

	plain, err := New(testConfig())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	all, err := plain.Detect(img)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}

	cfg := testConfig()
	cfg.SuppressRadius = 2
	suppressing, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	kept, err := suppressing.Detect(img)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}

	if len(kept.Lines) == 0 || len(kept.Lines) > len(all.Lines) {
		t.Errorf("suppression: got %d lines from %d", len(kept.Lines), len(all.Lines))
	}

	cfg = testConfig()
	cfg.MaxLines = 3
	ranking, _ := New(cfg)
	top, err := ranking.Detect(img)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if len(all.Lines) >= 3 && len(top.Lines) != 3 {
		t.Errorf("MaxLines: got %d lines, want 3", len(top.Lines))
	}
	for i := 1; i < len(top.Lines); i++ {
		if top.Lines[i].Votes > top.Lines[i-1].Votes {
			t.Error("ranked lines should be ordered by votes")
		}
	}
}

func TestDetectRegion(t *testing.T) {
	cfg := testConfig()
	cfg.MaxLines = 1
	d, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	img := createStepImage(120, 80, 80)
	res, err := d.DetectRegion(img, imaging.Region{X1: 60, Y1: 0, X2: 120, Y2: 80})
	if err != nil {
		t.Fatalf("DetectRegion failed: %v", err)
	}

	if res.Offset != (image.Point{X: 60, Y: 0}) {
		t.Errorf("Offset: got %v, want (60,0)", res.Offset)
	}
	if res.Edges.Width != 60 || res.Edges.Height != 80 {
		t.Errorf("edge map: got %dx%d, want 60x80", res.Edges.Width, res.Edges.Height)
	}
	if len(res.Lines) != 1 {
		t.Fatalf("expected one line, got %d", len(res.Lines))
	}
	if l := res.Lines[0]; l.Rho < 18 || l.Rho > 22 {
		t.Errorf("line should sit at x = 20 inside the region, got rho=%.1f", l.Rho)
	}

	if _, err := d.DetectRegion(img, imaging.Region{X1: 100, Y1: 0, X2: 200, Y2: 10}); err == nil {
		t.Error("expected error for region outside the image")
	}
}

func TestDetector_DebugLogging(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	d, err := New(testConfig())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if _, err := d.Detect(createStepImage(40, 40, 20)); err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("nothing should be logged without Debug, got %q", buf.String())
	}

	d.Debug = true
	if _, err := d.Detect(createStepImage(40, 40, 20)); err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	for _, want := range []string{"Edge points", "Accumulator", "Detected lines"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("log should mention %q, got %q", want, buf.String())
		}
	}
}
