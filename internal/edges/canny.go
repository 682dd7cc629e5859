package edges

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/hough-lines-mcp/internal/hough"
)

// CannyDetector performs Canny edge detection in pure Go.
//
// Thresholds are on the L1 Sobel gradient magnitude |Gx| + |Gy| of 8-bit
// luminance, the same scale OpenCV's Canny uses, so values tuned for
// cv2.Canny (e.g. 400/500) carry over unchanged.
type CannyDetector struct {
	// Low is the hysteresis low threshold. Pixels at or below it are never edges.
	Low float64

	// High is the hysteresis high threshold. Pixels above it are always edges.
	High float64

	// Sigma is the Gaussian blur applied before the gradient. Zero disables blurring.
	Sigma float64
}

// Detect implements Detector.
func (d CannyDetector) Detect(img image.Image) (*hough.EdgeMap, error) {
	if d.Low < 0 || d.High < 0 || d.Low > d.High {
		return nil, fmt.Errorf("invalid canny thresholds low=%v high=%v", d.Low, d.High)
	}
	return Canny(img, d.Low, d.High, d.Sigma), nil
}

// Canny returns the edge map of img.
//
// # Algorithm
//
//  1. Grayscale conversion with ITU-R BT.601 weights (0.299 R + 0.587 G + 0.114 B)
//  2. Optional Gaussian blur when sigma > 0
//  3. 3x3 Sobel gradients, magnitude = |Gx| + |Gy|, direction = atan2(Gy, Gx)
//  4. Non-maximum suppression along the quantized gradient direction
//  5. Hysteresis: pixels above high seed edges, which then grow through
//     8-connected pixels above low
//
// Border pixels are never edges. The returned map has the image's size with
// its origin at the image's top-left corner.
func Canny(img image.Image, low, high, sigma float64) *hough.EdgeMap {
	gray := imaging.Grayscale(img)
	if sigma > 0 {
		gray = imaging.Blur(gray, sigma)
	}

	width := gray.Bounds().Dx()
	height := gray.Bounds().Dy()
	em, _ := hough.NewEdgeMap(width, height)
	if width < 3 || height < 3 {
		return em
	}

	lum := make([]float64, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			lum[y*width+x] = float64(gray.Pix[y*gray.Stride+x*4])
		}
	}

	magnitude, direction := sobel(lum, width, height)
	suppressed := nonMaxSuppression(magnitude, direction, width, height)
	hysteresis(em, suppressed, low, high)

	return em
}

// sobel computes the L1 gradient magnitude and direction with clamped borders.
func sobel(lum []float64, width, height int) ([]float64, []float64) {
	sobelX := [3][3]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	sobelY := [3][3]float64{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}

	magnitude := make([]float64, width*height)
	direction := make([]float64, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var gx, gy float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					py := clamp(y+ky, 0, height-1)
					px := clamp(x+kx, 0, width-1)
					v := lum[py*width+px]
					gx += v * sobelX[ky+1][kx+1]
					gy += v * sobelY[ky+1][kx+1]
				}
			}
			magnitude[y*width+x] = math.Abs(gx) + math.Abs(gy)
			direction[y*width+x] = math.Atan2(gy, gx)
		}
	}
	return magnitude, direction
}

// nonMaxSuppression keeps a pixel only if it is at least as strong as both
// neighbours along its gradient direction.
func nonMaxSuppression(magnitude, direction []float64, width, height int) []float64 {
	suppressed := make([]float64, width*height)
	at := func(x, y int) float64 { return magnitude[y*width+x] }

	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			angle := direction[y*width+x]
			mag := at(x, y)
			if mag == 0 {
				continue
			}

			var n1, n2 float64
			switch {
			case (angle >= -math.Pi/8 && angle < math.Pi/8) || angle >= 7*math.Pi/8 || angle < -7*math.Pi/8:
				n1, n2 = at(x-1, y), at(x+1, y)
			case (angle >= math.Pi/8 && angle < 3*math.Pi/8) || (angle >= -7*math.Pi/8 && angle < -5*math.Pi/8):
				n1, n2 = at(x-1, y-1), at(x+1, y+1)
			case (angle >= 3*math.Pi/8 && angle < 5*math.Pi/8) || (angle >= -5*math.Pi/8 && angle < -3*math.Pi/8):
				n1, n2 = at(x, y-1), at(x, y+1)
			default:
				n1, n2 = at(x+1, y-1), at(x-1, y+1)
			}

			if mag >= n1 && mag >= n2 {
				suppressed[y*width+x] = mag
			}
		}
	}
	return suppressed
}

// hysteresis marks strong pixels and grows them through weak 8-connected
// neighbours with an explicit stack.
func hysteresis(em *hough.EdgeMap, suppressed []float64, low, high float64) {
	width := em.Width
	height := em.Height
	stack := make([]image.Point, 0)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if suppressed[y*width+x] > high {
				em.Set(x, y, true)
				stack = append(stack, image.Point{X: x, Y: y})
			}
		}
	}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				nx, ny := p.X+dx, p.Y+dy
				if nx < 0 || nx >= width || ny < 0 || ny >= height {
					continue
				}
				if em.At(nx, ny) || suppressed[ny*width+nx] <= low {
					continue
				}
				em.Set(nx, ny, true)
				stack = append(stack, image.Point{X: nx, Y: ny})
			}
		}
	}
}

// clamp constrains an integer value to the range [min, max].
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
