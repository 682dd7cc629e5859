// Package pipeline wires edge detection and the Hough stages into one run.
//
// A Config is validated once by New; every Detect call then threads an
// image through edges, accumulator, peaks, optional suppression and
// ranking, and segment reconstruction, returning each stage's output in a
// Result.
//
// # Configuration
//
// DefaultConfig returns Canny thresholds 400/500, no blur, 2 px and 2°
// resolutions and a vote threshold of 120. FromEnv overrides fields from
// HOUGH_EDGE_LOW, HOUGH_EDGE_HIGH, HOUGH_BLUR_SIGMA, HOUGH_RHO_RESOLUTION,
// HOUGH_THETA_RESOLUTION, HOUGH_VOTE_THRESHOLD, HOUGH_SUPPRESS_RADIUS,
// HOUGH_MAX_LINES and HOUGH_WORKERS.
//
// # Errors
//
// Invalid settings are reported as *hough.ConfigError, matching
// hough.ErrInvalidConfig with errors.Is.
package pipeline
