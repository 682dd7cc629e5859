package render

import (
	"fmt"
	"image"

	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font/basicfont"

	"github.com/ironsheep/hough-lines-mcp/internal/hough"
)

// DefaultLineColor matches the red used for detected lines in plots.
const DefaultLineColor = "#ff0000"

// Style controls how detected lines are drawn over the source image.
type Style struct {
	// Color is a hex colour such as "#ff0000". Empty uses DefaultLineColor.
	Color string

	// LineWidth in pixels. Zero uses 2.
	LineWidth float64

	// Labels draws "ρ θ votes" next to each line.
	Labels bool
}

// Annotate draws segments over a copy of img.
//
// Segments are in the coordinates of the detection input; offset is added
// to every point, which places lines detected in a cropped region back on
// the full image. lines must be parallel to segments when Labels is set.
func Annotate(img image.Image, lines []hough.Line, segments []hough.Segment, offset image.Point, style Style) (image.Image, error) {
	hex := style.Color
	if hex == "" {
		hex = DefaultLineColor
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return nil, fmt.Errorf("invalid line color %q: %w", hex, err)
	}

	width := style.LineWidth
	if width <= 0 {
		width = 2
	}

	gc := gg.NewContextForImage(img)
	gc.SetColor(c)
	gc.SetLineWidth(width)
	gc.SetLineCap(gg.LineCapSquare)

	for _, s := range segments {
		gc.DrawLine(
			float64(s.P1.X+offset.X), float64(s.P1.Y+offset.Y),
			float64(s.P2.X+offset.X), float64(s.P2.Y+offset.Y))
		gc.Stroke()
	}

	if style.Labels && len(lines) == len(segments) {
		gc.SetFontFace(basicfont.Face7x13)
		w, h := float64(gc.Width()), float64(gc.Height())
		for i, l := range lines {
			// The foot point is the midpoint of a reconstructed segment
			x, y := segments[i].Midpoint()
			x = clampFloat(x+float64(offset.X), 0, w-1)
			y = clampFloat(y+float64(offset.Y), 13, h-1)
			gc.DrawString(fmt.Sprintf("%.1f %.0f° %d", l.Rho, l.ThetaDegrees(), l.Votes), x, y)
		}
	}

	return gc.Image(), nil
}

func clampFloat(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
