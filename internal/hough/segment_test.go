package hough

import (
	"math"
	"testing"
)

func TestReconstruct_RoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		rho      float64
		thetaDeg float64
	}{
		{"origin diagonal", 0, -45},
		{"vertical", 5, 0},
		{"horizontal", -3, -90},
		{"steep positive", 37.5, 62},
		{"shallow negative", -120.25, -12},
		{"far from origin", 250, 89},
		{"fractional angle", 17.3, 33.3},
	}

	const length = 300.0

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			theta := tt.thetaDeg * math.Pi / 180
			seg := Reconstruct(Line{Rho: tt.rho, Theta: theta}, length)

			mx, my := seg.Midpoint()
			got := mx*math.Cos(theta) + my*math.Sin(theta)
			if math.Abs(got-tt.rho) > 1 {
				t.Errorf("midpoint projects to rho %.3f, want %.3f", got, tt.rho)
			}

			// Both endpoints lie on the line, up to rounding
			for _, p := range []struct{ x, y int }{{seg.P1.X, seg.P1.Y}, {seg.P2.X, seg.P2.Y}} {
				r := float64(p.x)*math.Cos(theta) + float64(p.y)*math.Sin(theta)
				if math.Abs(r-tt.rho) > 1 {
					t.Errorf("endpoint (%d,%d) projects to %.3f, want %.3f", p.x, p.y, r, tt.rho)
				}
			}

			dx := float64(seg.P2.X - seg.P1.X)
			dy := float64(seg.P2.Y - seg.P1.Y)
			if span := math.Sqrt(dx*dx + dy*dy); math.Abs(span-2*length) > 2 {
				t.Errorf("segment length %.2f, want about %.0f", span, 2*length)
			}
		})
	}
}

func TestReconstruct_Horizontal(t *testing.T) {
	seg := Reconstruct(Line{Rho: -3, Theta: -math.Pi / 2}, 20)

	if seg.P1.Y != 3 || seg.P2.Y != 3 {
		t.Errorf("horizontal line endpoints should have y=3, got %v", seg)
	}
	if seg.P1.X != 20 || seg.P2.X != -20 {
		t.Errorf("endpoints x: got %d and %d, want 20 and -20", seg.P1.X, seg.P2.X)
	}
}

func TestReconstruct_SpansImage(t *testing.T) {
	// A line through the middle of a 100x60 image must leave the image on
	// both ends when drawn with the diagonal as length.
	em, _ := NewEdgeMap(100, 60)
	for x := 0; x < 100; x++ {
		em.Set(x, 30, true)
	}
	acc, _ := Accumulate(em, 1, 1, 0)
	lines := acc.Peaks(90, 0)
	if len(lines) == 0 {
		t.Fatal("expected the horizontal line to be detected")
	}

	for _, seg := range ReconstructAll(lines, em.Diagonal()) {
		minX := min(seg.P1.X, seg.P2.X)
		maxX := max(seg.P1.X, seg.P2.X)
		if minX > 0 || maxX < 99 {
			t.Errorf("segment %v does not span the image width", seg)
		}
	}
}

func TestReconstruct_MinimumLength(t *testing.T) {
	seg := Reconstruct(Line{Rho: 10, Theta: 0}, 0)
	if seg.P1 == seg.P2 {
		t.Errorf("zero length should be raised, got degenerate segment %v", seg)
	}
	if seg.P1.X != 10 || seg.P2.X != 10 {
		t.Errorf("vertical line x: got %d and %d, want 10", seg.P1.X, seg.P2.X)
	}
}

func TestReconstructAll_PreservesOrder(t *testing.T) {
	lines := []Line{
		{Rho: 1, Theta: 0},
		{Rho: 2, Theta: 0},
		{Rho: 3, Theta: 0},
	}

	segs := ReconstructAll(lines, 10)
	if len(segs) != len(lines) {
		t.Fatalf("got %d segments, want %d", len(segs), len(lines))
	}
	for i, s := range segs {
		if s.P1.X != i+1 {
			t.Errorf("segment %d: x %d, want %d", i, s.P1.X, i+1)
		}
	}

	if n := len(ReconstructAll(nil, 10)); n != 0 {
		t.Errorf("nil input should give empty output, got %d", n)
	}
}
