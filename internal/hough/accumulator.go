package hough

import (
	"image"
	"runtime"
	"sync"
)

// minPointsPerWorker keeps small edge sets on a single goroutine, where
// allocating per-worker partial buffers would cost more than the voting.
const minPointsPerWorker = 1024

// Accumulator is the vote grid over a Space.
//
// Rows are distance bins and columns are angle bins; cell (r, t) counts the
// edge points whose line through angle t lands in distance bin r. The grid is
// read-only once returned by Accumulate.
type Accumulator struct {
	space *Space
	votes []uint32
}

// Accumulate builds the vote grid for em.
//
// rhoRes is the distance resolution in pixels and thetaRes the angle
// resolution in degrees. workers <= 0 uses runtime.NumCPU(). Invalid
// resolutions are reported as *ConfigError before any voting happens.
// An edge map with no edge pixels yields an all-zero accumulator.
func Accumulate(em *EdgeMap, rhoRes, thetaRes float64, workers int) (*Accumulator, error) {
	space, err := NewSpace(em.Width, em.Height, rhoRes, thetaRes)
	if err != nil {
		return nil, err
	}
	return AccumulateSpace(em, space, workers), nil
}

// AccumulateSpace votes em into a prebuilt space.
//
// Edge points are split into contiguous chunks, one per worker. Each worker
// fills a private partial grid which is summed into the result once all
// workers finish, so no cell is ever written concurrently.
func AccumulateSpace(em *EdgeMap, space *Space, workers int) *Accumulator {
	acc := &Accumulator{
		space: space,
		votes: make([]uint32, space.RhoBins()*space.ThetaBins()),
	}

	points := em.Points()
	if len(points) == 0 {
		return acc
	}

	numWorkers := resolveWorkers(workers)
	if maxUseful := len(points) / minPointsPerWorker; numWorkers > maxUseful {
		numWorkers = maxUseful
	}
	if numWorkers <= 1 {
		vote(acc.votes, space, points)
		return acc
	}

	partials := make([][]uint32, numWorkers)
	chunk := (len(points) + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		start := w * chunk
		end := start + chunk
		if end > len(points) {
			end = len(points)
		}
		if start >= end {
			continue
		}

		partials[w] = make([]uint32, len(acc.votes))
		wg.Add(1)
		go func(buf []uint32, pts []image.Point) {
			defer wg.Done()
			vote(buf, space, pts)
		}(partials[w], points[start:end])
	}
	wg.Wait()

	for _, partial := range partials {
		for i, v := range partial {
			acc.votes[i] += v
		}
	}

	return acc
}

// vote casts one vote per (point, angle) pair into buf.
func vote(buf []uint32, space *Space, points []image.Point) {
	numThetas := space.ThetaBins()
	numRhos := space.RhoBins()
	rhoMin := space.RhoMin()
	rhoRes := space.RhoRes

	for _, p := range points {
		x := float64(p.X)
		y := float64(p.Y)
		for t := 0; t < numThetas; t++ {
			rho := x*space.cos[t] + y*space.sin[t]
			f := (rho - rhoMin) / rhoRes
			if f < 0 {
				continue
			}
			// f >= 0, so truncation equals floor
			r := int(f)
			if r >= numRhos {
				continue
			}
			buf[r*numThetas+t]++
		}
	}
}

func resolveWorkers(workers int) int {
	if workers <= 0 {
		return runtime.NumCPU()
	}
	return workers
}

// Space returns the parameter space the accumulator was built over.
func (a *Accumulator) Space() *Space { return a.space }

// Rows is the number of distance bins.
func (a *Accumulator) Rows() int { return a.space.RhoBins() }

// Cols is the number of angle bins.
func (a *Accumulator) Cols() int { return a.space.ThetaBins() }

// At returns the vote count of cell (rhoIdx, thetaIdx).
// Out-of-range indices report zero.
func (a *Accumulator) At(rhoIdx, thetaIdx int) uint32 {
	if rhoIdx < 0 || rhoIdx >= a.Rows() || thetaIdx < 0 || thetaIdx >= a.Cols() {
		return 0
	}
	return a.votes[rhoIdx*a.Cols()+thetaIdx]
}

// Row returns a copy of distance bin rhoIdx across all angles.
func (a *Accumulator) Row(rhoIdx int) []uint32 {
	cols := a.Cols()
	row := make([]uint32, cols)
	copy(row, a.votes[rhoIdx*cols:(rhoIdx+1)*cols])
	return row
}

// Max returns the largest vote count in the grid.
func (a *Accumulator) Max() uint32 {
	var m uint32
	for _, v := range a.votes {
		if v > m {
			m = v
		}
	}
	return m
}

// Total returns the sum of all votes.
func (a *Accumulator) Total() uint64 {
	var sum uint64
	for _, v := range a.votes {
		sum += uint64(v)
	}
	return sum
}
