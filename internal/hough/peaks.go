package hough

import (
	"math"
	"sync"
)

// Line is a detected line in normal form: x·cos(Theta) + y·sin(Theta) = Rho.
type Line struct {
	// Rho is the centre of the distance bin, in pixels.
	Rho float64 `json:"rho"`

	// Theta is the sampled angle of the normal, in radians.
	Theta float64 `json:"theta"`

	// Votes is the accumulator count for the bin.
	Votes uint32 `json:"votes"`

	RhoIndex   int `json:"rho_index"`
	ThetaIndex int `json:"theta_index"`
}

// ThetaDegrees returns Theta in degrees.
func (l Line) ThetaDegrees() float64 {
	return l.Theta * 180 / math.Pi
}

// Peaks returns every cell whose vote count is strictly greater than
// threshold, in row-major (ρ, θ) order.
//
// Any threshold is accepted. Cells without a single vote are never peaks,
// so a negative threshold behaves like zero and an empty accumulator yields
// no lines at all. There is no neighbourhood suppression, so a strong line
// usually appears as a cluster of adjacent bins. See SuppressNonMaxima for
// an opt-in filter.
//
// Rows are scanned in bands across workers (workers <= 0 uses
// runtime.NumCPU()) and the bands are concatenated in order, so the result
// does not depend on the worker count.
func (a *Accumulator) Peaks(threshold int, workers int) []Line {
	rows := a.Rows()
	numWorkers := resolveWorkers(workers)
	if numWorkers > rows {
		numWorkers = rows
	}
	if numWorkers <= 1 {
		return a.scanRows(0, rows, threshold)
	}

	bands := make([][]Line, numWorkers)
	rowsPerWorker := (rows + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		startRow := w * rowsPerWorker
		endRow := startRow + rowsPerWorker
		if endRow > rows {
			endRow = rows
		}
		if startRow >= endRow {
			continue
		}

		wg.Add(1)
		go func(w, startRow, endRow int) {
			defer wg.Done()
			bands[w] = a.scanRows(startRow, endRow, threshold)
		}(w, startRow, endRow)
	}
	wg.Wait()

	total := 0
	for _, b := range bands {
		total += len(b)
	}
	lines := make([]Line, 0, total)
	for _, b := range bands {
		lines = append(lines, b...)
	}
	return lines
}

func (a *Accumulator) scanRows(startRow, endRow, threshold int) []Line {
	cols := a.Cols()
	lines := make([]Line, 0)
	limit := int64(threshold)
	if limit < 0 {
		limit = 0
	}

	for r := startRow; r < endRow; r++ {
		for t := 0; t < cols; t++ {
			v := a.votes[r*cols+t]
			if int64(v) <= limit {
				continue
			}
			lines = append(lines, Line{
				Rho:        a.space.Rho(r),
				Theta:      a.space.Theta(t),
				Votes:      v,
				RhoIndex:   r,
				ThetaIndex: t,
			})
		}
	}
	return lines
}
