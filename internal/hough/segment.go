package hough

import (
	"image"
	"math"
)

// Segment is a drawable stretch of a detected line.
type Segment struct {
	P1 image.Point `json:"p1"`
	P2 image.Point `json:"p2"`
}

// Reconstruct turns a line into a segment centred on the line's foot point,
// the point closest to the origin, extending length pixels in both
// directions along the line.
//
// Every image pixel on the line lies within one diagonal of the foot point,
// so passing the image diagonal as length yields a segment that crosses the
// whole image. Lengths below 1 are raised to 1. Endpoints are rounded to the
// nearest pixel.
func Reconstruct(l Line, length float64) Segment {
	if !(length >= 1) {
		length = 1
	}

	cosT := math.Cos(l.Theta)
	sinT := math.Sin(l.Theta)

	x0 := l.Rho * cosT
	y0 := l.Rho * sinT

	// (-sin, cos) is perpendicular to the normal, i.e. along the line
	dx := -sinT * length
	dy := cosT * length

	return Segment{
		P1: image.Point{X: int(math.Round(x0 + dx)), Y: int(math.Round(y0 + dy))},
		P2: image.Point{X: int(math.Round(x0 - dx)), Y: int(math.Round(y0 - dy))},
	}
}

// ReconstructAll maps Reconstruct over lines, preserving order.
func ReconstructAll(lines []Line, length float64) []Segment {
	segments := make([]Segment, len(lines))
	for i, l := range lines {
		segments[i] = Reconstruct(l, length)
	}
	return segments
}

// Midpoint returns the centre of the segment.
func (s Segment) Midpoint() (float64, float64) {
	return float64(s.P1.X+s.P2.X) / 2, float64(s.P1.Y+s.P2.Y) / 2
}
