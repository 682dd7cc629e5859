package imaging

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// Region is a rectangular area of interest in source image coordinates.
// (X1, Y1) is inclusive, (X2, Y2) is exclusive.
type Region struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Rect converts the region to an image.Rectangle.
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.X1, r.Y1, r.X2, r.Y2)
}

// CropRegion extracts r from img so that detection can be restricted to it.
//
// The returned image has its origin at (0, 0); offset is the position of
// that origin in the source image, to be added back to any coordinates
// computed on the crop.
func CropRegion(img image.Image, r Region) (cropped image.Image, offset image.Point, err error) {
	bounds := img.Bounds()

	if r.X1 >= r.X2 || r.Y1 >= r.Y2 {
		return nil, image.Point{}, fmt.Errorf("invalid region: x1 must be < x2, y1 must be < y2")
	}
	if r.X1 < bounds.Min.X || r.Y1 < bounds.Min.Y || r.X2 > bounds.Max.X || r.Y2 > bounds.Max.Y {
		return nil, image.Point{}, fmt.Errorf("region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
			r.X1, r.Y1, r.X2, r.Y2, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}

	return imaging.Crop(img, r.Rect()), image.Point{X: r.X1 - bounds.Min.X, Y: r.Y1 - bounds.Min.Y}, nil
}

func diagonal(w, h int) float64 {
	return math.Sqrt(float64(w*w + h*h))
}

func roundTo(v float64, scale float64) float64 {
	return math.Round(v*scale) / scale
}
