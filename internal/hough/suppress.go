package hough

import (
	"sort"
)

// SuppressNonMaxima keeps only lines whose cell is a local maximum within a
// (2·radius+1)² window of the accumulator.
//
// A line is dropped when any neighbouring cell in the window holds strictly
// more votes; equal neighbours do not suppress each other, so plateaus keep
// every member. The window is clipped at the accumulator border and does not
// wrap in θ. radius <= 0 returns lines unchanged.
//
// This pass is never applied implicitly: it changes the number of detections
// and breaks the monotonic relation between threshold and line count.
func SuppressNonMaxima(acc *Accumulator, lines []Line, radius int) []Line {
	if radius <= 0 {
		return lines
	}

	kept := make([]Line, 0, len(lines))
	for _, l := range lines {
		v := acc.At(l.RhoIndex, l.ThetaIndex)
		isMax := true
		for dr := -radius; dr <= radius && isMax; dr++ {
			for dt := -radius; dt <= radius && isMax; dt++ {
				if dr == 0 && dt == 0 {
					continue
				}
				if acc.At(l.RhoIndex+dr, l.ThetaIndex+dt) > v {
					isMax = false
				}
			}
		}
		if isMax {
			kept = append(kept, l)
		}
	}
	return kept
}

// SortByVotes returns a copy of lines ordered by votes, highest first.
// Ties keep their original relative order.
func SortByVotes(lines []Line) []Line {
	sorted := make([]Line, len(lines))
	copy(sorted, lines)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Votes > sorted[j].Votes
	})
	return sorted
}
