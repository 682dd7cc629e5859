// Package hough implements the Hough line transform over a binary edge map.
//
// Each edge pixel votes for every line, in normal form
// x·cos(θ) + y·sin(θ) = ρ, that could pass through it. Lines are recovered as
// accumulator cells with more votes than a threshold, and each is turned into
// a segment long enough to cross the whole image.
//
// # Pipeline
//
//  1. EdgeMap: row-major boolean grid supplied by an edge detector
//  2. Accumulate: vote into a ρ × θ grid (Space defines the bins)
//  3. Peaks: every cell with votes strictly above the threshold
//  4. Reconstruct: endpoints for drawing each detected line
//
// # Parameter Space
//
// θ covers [-90°, 90°) in steps of the angle resolution. ρ covers
// [-⌊diagonal⌋, ⌊diagonal⌋) in steps of the distance resolution, where the
// diagonal is sqrt(width² + height²). A vote lands in distance bin
// ⌊(ρ − ρmin) / ρres⌋; votes that fall outside the grid are dropped.
// Detected lines report the centre of their distance bin and the exact
// sampled angle.
//
// # Coordinate System
//
// The origin is the top-left pixel, X grows rightward and Y grows downward.
// With this convention the main diagonal y = x has its normal at θ = -45°
// and ρ = 0.
//
// # Duplicate Detections
//
// Peaks performs a raw threshold scan. A strong line typically pushes
// several neighbouring bins over the threshold and is reported several
// times with slightly different parameters. SuppressNonMaxima is available
// as an explicit extra pass for callers that want one line per cluster.
//
// # Concurrency
//
// Accumulate partitions edge points across goroutines with private partial
// grids that are summed at the end; Peaks partitions rows. Results do not
// depend on the worker count. Accumulator, Space and EdgeMap values are
// read-only after construction and safe to share.
//
// # Errors
//
// Non-positive resolutions are reported as *ConfigError, which wraps
// ErrInvalidConfig, before any voting starts. Empty inputs and empty
// results are not errors.
package hough
