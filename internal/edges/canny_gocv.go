//go:build gocv

package edges

import (
	"fmt"
	"image"
	"image/draw"

	"gocv.io/x/gocv"

	"github.com/ironsheep/hough-lines-mcp/internal/hough"
)

func init() {
	Backend = "opencv"
	newDetector = func(low, high, sigma float64) Detector {
		return OpenCVDetector{Low: low, High: high, Sigma: sigma}
	}
}

// OpenCVDetector runs cv2-equivalent Canny through gocv.
// Requires OpenCV 4 and a cgo toolchain.
type OpenCVDetector struct {
	Low   float64
	High  float64
	Sigma float64
}

// Detect implements Detector.
func (d OpenCVDetector) Detect(img image.Image) (*hough.EdgeMap, error) {
	if d.Low < 0 || d.High < 0 || d.Low > d.High {
		return nil, fmt.Errorf("invalid canny thresholds low=%v high=%v", d.Low, d.High)
	}

	bounds := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || bounds.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	}

	src, err := gocv.ImageToMatRGBA(rgba)
	if err != nil {
		return nil, fmt.Errorf("failed to convert image to mat: %w", err)
	}
	defer src.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(src, &gray, gocv.ColorRGBAToGray)

	if d.Sigma > 0 {
		gocv.GaussianBlur(gray, &gray, image.Point{}, d.Sigma, d.Sigma, gocv.BorderDefault)
	}

	out := gocv.NewMat()
	defer out.Close()
	gocv.Canny(gray, &out, float32(d.Low), float32(d.High))

	em, err := hough.NewEdgeMap(out.Cols(), out.Rows())
	if err != nil {
		return nil, err
	}
	data, err := out.DataPtrUint8()
	if err != nil {
		return nil, fmt.Errorf("failed to read edge mat: %w", err)
	}
	for i, v := range data {
		em.Pix[i] = v > 0
	}
	return em, nil
}
