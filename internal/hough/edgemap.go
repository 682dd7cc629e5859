package hough

import (
	"fmt"
	"image"
	"math"
)

// EdgeMap is a row-major grid of edge pixels.
//
// The core treats an EdgeMap as read-only input. Pixel (x, y) is stored at
// Pix[y*Width+x]; x grows rightward and y grows downward from the top-left.
type EdgeMap struct {
	Width  int
	Height int
	Pix    []bool
}

// NewEdgeMap allocates an empty edge map of the given size.
func NewEdgeMap(width, height int) (*EdgeMap, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("invalid edge map size %dx%d", width, height)
	}
	return &EdgeMap{
		Width:  width,
		Height: height,
		Pix:    make([]bool, width*height),
	}, nil
}

// EdgeMapFromPoints builds an edge map with the given pixels set.
// Points outside the grid are rejected.
func EdgeMapFromPoints(width, height int, points []image.Point) (*EdgeMap, error) {
	em, err := NewEdgeMap(width, height)
	if err != nil {
		return nil, err
	}
	for _, p := range points {
		if p.X < 0 || p.X >= width || p.Y < 0 || p.Y >= height {
			return nil, fmt.Errorf("edge point (%d,%d) outside %dx%d grid", p.X, p.Y, width, height)
		}
		em.Pix[p.Y*width+p.X] = true
	}
	return em, nil
}

// At reports whether (x, y) is an edge pixel. Out-of-range coordinates are not edges.
func (m *EdgeMap) At(x, y int) bool {
	if x < 0 || x >= m.Width || y < 0 || y >= m.Height {
		return false
	}
	return m.Pix[y*m.Width+x]
}

// Set marks or clears (x, y). Out-of-range coordinates are ignored.
func (m *EdgeMap) Set(x, y int, edge bool) {
	if x < 0 || x >= m.Width || y < 0 || y >= m.Height {
		return
	}
	m.Pix[y*m.Width+x] = edge
}

// Diagonal returns sqrt(width² + height²), the bound on any line's distance
// from the origin.
func (m *EdgeMap) Diagonal() float64 {
	return math.Sqrt(float64(m.Width*m.Width + m.Height*m.Height))
}

// Count returns the number of edge pixels.
func (m *EdgeMap) Count() int {
	n := 0
	for _, e := range m.Pix {
		if e {
			n++
		}
	}
	return n
}

// Points returns the coordinates of every edge pixel in row-major order.
func (m *EdgeMap) Points() []image.Point {
	points := make([]image.Point, 0, m.Count())
	for y := 0; y < m.Height; y++ {
		row := m.Pix[y*m.Width : (y+1)*m.Width]
		for x, e := range row {
			if e {
				points = append(points, image.Point{X: x, Y: y})
			}
		}
	}
	return points
}
