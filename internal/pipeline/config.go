package pipeline

import (
	"fmt"
	"os"
	"strconv"

	"github.com/ironsheep/hough-lines-mcp/internal/hough"
)

// Config holds every tunable of a detection run.
type Config struct {
	// EdgeThresholdLow and EdgeThresholdHigh are the Canny hysteresis
	// thresholds on the gradient magnitude of 0-255 luminance.
	EdgeThresholdLow  float64 `json:"edge_threshold_low"`
	EdgeThresholdHigh float64 `json:"edge_threshold_high"`

	// BlurSigma applies a Gaussian blur before edge detection. Zero disables it.
	BlurSigma float64 `json:"blur_sigma"`

	// RhoResolution is the distance bin size in pixels.
	RhoResolution float64 `json:"rho_resolution"`

	// ThetaResolution is the angle bin size in degrees.
	ThetaResolution float64 `json:"theta_resolution"`

	// VoteThreshold is the vote count a bin must exceed to become a line.
	VoteThreshold int `json:"vote_threshold"`

	// SuppressRadius enables local-maximum filtering over a
	// (2r+1)x(2r+1) window when positive.
	SuppressRadius int `json:"suppress_radius"`

	// MaxLines keeps only the strongest lines when positive, ordered by
	// votes. Zero keeps every line in accumulator order.
	MaxLines int `json:"max_lines"`

	// MaskLevel, when positive, treats the input as an edge image: pixels
	// with luminance at or above it are edges and Canny is skipped.
	MaskLevel int `json:"mask_level"`

	// Workers bounds the goroutines used for voting and peak scanning.
	// Zero uses one per CPU.
	Workers int `json:"workers"`
}

// DefaultConfig returns the settings the detector was tuned with.
func DefaultConfig() Config {
	return Config{
		EdgeThresholdLow:  400,
		EdgeThresholdHigh: 500,
		RhoResolution:     2,
		ThetaResolution:   2,
		VoteThreshold:     120,
	}
}

// Validate checks c and returns a *hough.ConfigError for the first bad field.
func (c Config) Validate() error {
	if err := hough.ValidateResolutions(c.RhoResolution, c.ThetaResolution); err != nil {
		return err
	}

	checks := []struct {
		field string
		value float64
	}{
		{"vote_threshold", float64(c.VoteThreshold)},
		{"edge_threshold_low", c.EdgeThresholdLow},
		{"edge_threshold_high", c.EdgeThresholdHigh},
		{"blur_sigma", c.BlurSigma},
		{"suppress_radius", float64(c.SuppressRadius)},
		{"max_lines", float64(c.MaxLines)},
		{"mask_level", float64(c.MaskLevel)},
		{"workers", float64(c.Workers)},
	}
	for _, chk := range checks {
		if chk.value < 0 {
			return &hough.ConfigError{Field: chk.field, Value: chk.value, Reason: "must not be negative"}
		}
	}

	if c.MaskLevel > 255 {
		return &hough.ConfigError{Field: "mask_level", Value: float64(c.MaskLevel), Reason: "must not exceed 255"}
	}

	if c.EdgeThresholdLow > c.EdgeThresholdHigh {
		return &hough.ConfigError{
			Field:  "edge_threshold_low",
			Value:  c.EdgeThresholdLow,
			Reason: fmt.Sprintf("must not exceed edge_threshold_high (%v)", c.EdgeThresholdHigh),
		}
	}
	return nil
}

// FromEnv returns base with fields overridden by HOUGH_* environment
// variables. Unset or empty variables leave the field alone; values that do
// not parse are errors.
func FromEnv(base Config) (Config, error) {
	c := base

	floats := []struct {
		key string
		dst *float64
	}{
		{"HOUGH_EDGE_LOW", &c.EdgeThresholdLow},
		{"HOUGH_EDGE_HIGH", &c.EdgeThresholdHigh},
		{"HOUGH_BLUR_SIGMA", &c.BlurSigma},
		{"HOUGH_RHO_RESOLUTION", &c.RhoResolution},
		{"HOUGH_THETA_RESOLUTION", &c.ThetaResolution},
	}
	for _, f := range floats {
		val := getEnv(f.key, "")
		if val == "" {
			continue
		}
		v, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return base, fmt.Errorf("failed to parse %s: %w", f.key, err)
		}
		*f.dst = v
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"HOUGH_VOTE_THRESHOLD", &c.VoteThreshold},
		{"HOUGH_SUPPRESS_RADIUS", &c.SuppressRadius},
		{"HOUGH_MAX_LINES", &c.MaxLines},
		{"HOUGH_MASK_LEVEL", &c.MaskLevel},
		{"HOUGH_WORKERS", &c.Workers},
	}
	for _, f := range ints {
		val := getEnv(f.key, "")
		if val == "" {
			continue
		}
		v, err := strconv.Atoi(val)
		if err != nil {
			return base, fmt.Errorf("failed to parse %s: %w", f.key, err)
		}
		*f.dst = v
	}

	return c, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
