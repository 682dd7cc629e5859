package edges

import (
	"image"

	"github.com/ironsheep/hough-lines-mcp/internal/hough"
)

// Detector turns an image into a binary edge map.
type Detector interface {
	Detect(img image.Image) (*hough.EdgeMap, error)
}

// Backend names the edge detector selected at build time.
var Backend = "go"

// newDetector is replaced by the OpenCV backend when built with -tags gocv.
var newDetector = func(low, high, sigma float64) Detector {
	return CannyDetector{Low: low, High: high, Sigma: sigma}
}

// New returns the Canny detector for this build with the given hysteresis
// thresholds and pre-blur sigma.
func New(low, high, sigma float64) Detector {
	return newDetector(low, high, sigma)
}
