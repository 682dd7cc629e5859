package edges

import (
	"image"

	"github.com/anthonynsimon/bild/segment"

	"github.com/ironsheep/hough-lines-mcp/internal/hough"
)

// FromGray converts a grayscale mask to an edge map; every non-zero pixel is an edge.
func FromGray(g *image.Gray) *hough.EdgeMap {
	bounds := g.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	em, _ := hough.NewEdgeMap(width, height)

	for y := 0; y < height; y++ {
		row := g.Pix[y*g.Stride : y*g.Stride+width]
		for x, v := range row {
			if v != 0 {
				em.Pix[y*width+x] = true
			}
		}
	}
	return em
}

// FromMask binarizes an externally produced edge image. Pixels whose
// luminance is at or above level become edges.
func FromMask(img image.Image, level uint8) *hough.EdgeMap {
	return FromGray(segment.Threshold(img, level))
}

// MaskDetector treats its input as a ready-made edge image instead of
// running Canny on it.
type MaskDetector struct {
	// Level is the luminance at or above which a pixel is an edge.
	Level uint8
}

// Detect implements Detector.
func (m MaskDetector) Detect(img image.Image) (*hough.EdgeMap, error) {
	return FromMask(img, m.Level), nil
}

// ToGray renders an edge map as a black image with white edges.
func ToGray(em *hough.EdgeMap) *image.Gray {
	g := image.NewGray(image.Rect(0, 0, em.Width, em.Height))
	for i, e := range em.Pix {
		if e {
			y := i / em.Width
			x := i % em.Width
			g.Pix[y*g.Stride+x] = 255
		}
	}
	return g
}
