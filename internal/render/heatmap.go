package render

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/hough-lines-mcp/internal/hough"
)

// heatStops is the colour ramp from zero votes to the accumulator maximum.
var heatStops = []string{"#000000", "#b40000", "#ffd200", "#ffffff"}

// heatPalette holds the ramp sampled at 256 levels.
var heatPalette = buildPalette(heatStops, 256)

func buildPalette(stops []string, levels int) []color.NRGBA {
	ramp := make([]colorful.Color, len(stops))
	for i, hex := range stops {
		c, err := colorful.Hex(hex)
		if err != nil {
			panic(err)
		}
		ramp[i] = c
	}

	palette := make([]color.NRGBA, levels)
	segments := float64(len(ramp) - 1)
	for i := range palette {
		t := float64(i) / float64(levels-1) * segments
		seg := int(t)
		if seg >= len(ramp)-1 {
			seg = len(ramp) - 2
		}
		c := ramp[seg].BlendLab(ramp[seg+1], t-float64(seg)).Clamped()
		r, g, b := c.RGB255()
		palette[i] = color.NRGBA{R: r, G: g, B: b, A: 255}
	}
	return palette
}

// HeatColor maps votes on a scale where max is the hottest colour.
func HeatColor(votes, max uint32) color.NRGBA {
	if max == 0 || votes == 0 {
		return heatPalette[0]
	}
	if votes > max {
		votes = max
	}
	level := int(uint64(votes) * uint64(len(heatPalette)-1) / uint64(max))
	return heatPalette[level]
}

// HeatMap draws the accumulator with θ along the x axis and ρ along the y
// axis, one pixel per bin, coloured relative to the strongest bin.
//
// When width and height are positive the result is resized to that size
// with nearest-neighbour sampling so individual bins stay visible.
func HeatMap(acc *hough.Accumulator, width, height int) image.Image {
	rows, cols := acc.Rows(), acc.Cols()
	img := image.NewNRGBA(image.Rect(0, 0, cols, rows))
	max := acc.Max()

	for j := 0; j < rows; j++ {
		for i, v := range acc.Row(j) {
			img.SetNRGBA(i, j, HeatColor(v, max))
		}
	}

	if width <= 0 || height <= 0 || (width == cols && height == rows) {
		return img
	}
	return imaging.Resize(img, width, height, imaging.NearestNeighbor)
}
