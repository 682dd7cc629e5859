package hough

import (
	"fmt"
	"math"
)

// MaxCells bounds the size of the vote grid. Resolutions fine enough to
// exceed it are rejected before anything is allocated.
const MaxCells = 1 << 26

// Space is the discretized (ρ, θ) parameter space for one image size.
//
// θ is sampled at -90 + i·ThetaRes degrees for i < ThetaBins(), covering
// [-90°, 90°). ρ is gridded at -MaxRho + j·RhoRes for j < RhoBins(), covering
// [-MaxRho, MaxRho). MaxRho is the image diagonal truncated to an integer.
//
// A Space is immutable after construction and safe for concurrent use.
type Space struct {
	Width    int
	Height   int
	Diagonal float64
	MaxRho   int
	RhoRes   float64
	ThetaRes float64

	thetaDeg []float64
	cos      []float64
	sin      []float64
	rhoBins  int
}

// NewSpace computes the parameter space for a width×height image.
//
// Both resolutions must be finite and strictly positive, and together must
// not produce more than MaxCells cells; otherwise a *ConfigError is returned.
// rhoRes is in pixels, thetaRes in degrees.
func NewSpace(width, height int, rhoRes, thetaRes float64) (*Space, error) {
	if err := ValidateResolutions(rhoRes, thetaRes); err != nil {
		return nil, err
	}

	diagonal := math.Sqrt(float64(width*width + height*height))
	maxRho := int(diagonal)

	thetaBins := math.Ceil(180.0 / thetaRes)
	rhoBins := math.Ceil(float64(2*maxRho) / rhoRes)
	if cells := rhoBins * thetaBins; cells > MaxCells {
		return nil, configError("rho_resolution", rhoRes,
			fmt.Sprintf("is too fine: %.3g rho x %.0f theta bins exceed the %d cell limit", rhoBins, thetaBins, MaxCells))
	}

	numThetas := int(thetaBins)
	s := &Space{
		Width:    width,
		Height:   height,
		Diagonal: diagonal,
		MaxRho:   maxRho,
		RhoRes:   rhoRes,
		ThetaRes: thetaRes,
		thetaDeg: make([]float64, numThetas),
		cos:      make([]float64, numThetas),
		sin:      make([]float64, numThetas),
		rhoBins:  int(rhoBins),
	}

	for i := 0; i < numThetas; i++ {
		deg := -90.0 + float64(i)*thetaRes
		rad := deg * math.Pi / 180.0
		s.thetaDeg[i] = deg
		s.cos[i] = math.Cos(rad)
		s.sin[i] = math.Sin(rad)
	}

	return s, nil
}

// ValidateResolutions rejects non-positive or non-finite resolutions, and
// angle steps so small the θ axis alone would exceed MaxCells. The ρ axis
// depends on the image size and is checked by NewSpace.
func ValidateResolutions(rhoRes, thetaRes float64) error {
	if !(rhoRes > 0) || math.IsInf(rhoRes, 0) {
		return configError("rho_resolution", rhoRes, "must be a positive number")
	}
	if !(thetaRes > 0) || math.IsInf(thetaRes, 0) {
		return configError("theta_resolution", thetaRes, "must be a positive number")
	}
	if bins := math.Ceil(180.0 / thetaRes); bins > MaxCells {
		return configError("theta_resolution", thetaRes,
			fmt.Sprintf("is too fine: %.3g theta bins exceed the %d cell limit", bins, MaxCells))
	}
	return nil
}

// RhoBins is the number of distance bins (accumulator rows).
func (s *Space) RhoBins() int { return s.rhoBins }

// ThetaBins is the number of angle bins (accumulator columns).
func (s *Space) ThetaBins() int { return len(s.thetaDeg) }

// RhoMin is the lower edge of the first distance bin.
func (s *Space) RhoMin() float64 { return float64(-s.MaxRho) }

// RhoEdge returns the lower edge of distance bin j.
func (s *Space) RhoEdge(j int) float64 {
	return s.RhoMin() + float64(j)*s.RhoRes
}

// Rho returns the centre value of distance bin j.
func (s *Space) Rho(j int) float64 {
	return s.RhoEdge(j) + s.RhoRes/2
}

// ThetaDegrees returns the sampled angle of bin i in degrees.
func (s *Space) ThetaDegrees(i int) float64 { return s.thetaDeg[i] }

// Theta returns the sampled angle of bin i in radians.
func (s *Space) Theta(i int) float64 { return s.thetaDeg[i] * math.Pi / 180.0 }

// RhoIndex maps a distance to its bin with ⌊(ρ − ρmin) / ρres⌋.
// ok is false when the value falls outside [0, RhoBins()).
func (s *Space) RhoIndex(rho float64) (idx int, ok bool) {
	f := math.Floor((rho - s.RhoMin()) / s.RhoRes)
	if f < 0 || f >= float64(s.rhoBins) {
		return 0, false
	}
	return int(f), true
}

// ThetaIndex returns the bin whose sampled angle is nearest to deg.
// ok is false outside [-90°, 90°).
func (s *Space) ThetaIndex(deg float64) (idx int, ok bool) {
	if deg < -90 || deg >= 90 {
		return 0, false
	}
	i := int(math.Round((deg + 90) / s.ThetaRes))
	if i >= len(s.thetaDeg) {
		i = len(s.thetaDeg) - 1
	}
	return i, true
}
