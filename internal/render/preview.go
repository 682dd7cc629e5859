package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/ironsheep/hough-lines-mcp/internal/hough"
)

// DrawHeatMap paints the accumulator onto s.
//
// The first row holds title; the rest of the screen is divided into cells,
// each showing the strongest bin of the block of accumulator cells it
// covers, so peaks survive downsampling.
func DrawHeatMap(s tcell.Screen, acc *hough.Accumulator, title string) {
	s.Clear()
	sw, sh := s.Size()

	titleStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	for i, r := range []rune(title) {
		if i >= sw {
			break
		}
		s.SetContent(i, 0, r, nil, titleStyle)
	}

	rows, cols := acc.Rows(), acc.Cols()
	gridH := sh - 1
	if sw <= 0 || gridH <= 0 || rows == 0 || cols == 0 {
		return
	}

	max := acc.Max()
	for cy := 0; cy < gridH; cy++ {
		j0, j1 := span(cy, gridH, rows)
		for cx := 0; cx < sw; cx++ {
			i0, i1 := span(cx, sw, cols)

			var best uint32
			for j := j0; j < j1; j++ {
				for i := i0; i < i1; i++ {
					if v := acc.At(j, i); v > best {
						best = v
					}
				}
			}

			c := HeatColor(best, max)
			style := tcell.StyleDefault.Background(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
			s.SetContent(cx, cy+1, ' ', nil, style)
		}
	}
}

// span maps screen cell k of n onto the half-open range of the m source
// cells it covers. Every cell covers at least one source cell.
func span(k, n, m int) (int, int) {
	lo := k * m / n
	hi := (k + 1) * m / n
	if hi <= lo {
		hi = lo + 1
	}
	if hi > m {
		hi = m
		if lo >= hi {
			lo = hi - 1
		}
	}
	return lo, hi
}

// PreviewTitle summarises an accumulator and its detections in one line.
func PreviewTitle(name string, acc *hough.Accumulator, lines int) string {
	return fmt.Sprintf("%s  ρ×θ %dx%d  max %d  lines %d  (q to quit)",
		name, acc.Rows(), acc.Cols(), acc.Max(), lines)
}

// Preview shows the accumulator heat map in the terminal until the user
// presses q, Escape or Ctrl-C. The map is redrawn on resize.
func Preview(acc *hough.Accumulator, title string) error {
	s, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer s.Fini()

	return runPreview(s, acc, title)
}

func runPreview(s tcell.Screen, acc *hough.Accumulator, title string) error {
	DrawHeatMap(s, acc, title)
	s.Show()

	for {
		switch ev := s.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			s.Sync()
			DrawHeatMap(s, acc, title)
			s.Show()
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
				return nil
			}
		}
	}
}
