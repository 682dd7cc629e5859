// Package edges produces binary edge maps for the Hough transform.
//
// The default backend is a pure-Go Canny detector (CannyDetector). Building
// with -tags gocv swaps in OpenCV's Canny through gocv, which matches
// cv2.Canny exactly but needs OpenCV 4 and cgo. Both use the OpenCV
// threshold scale, the L1 Sobel magnitude of 8-bit luminance.
//
// # Threshold Selection
//
// A sharp black/white step produces a magnitude of about 1020, so:
//   - Clean diagrams and renders: low=400, high=500
//   - Photographs: low=100, high=200
//   - Noisy images: raise both, or set a blur sigma of 1-2
//
// FromMask and FromGray accept edge images computed elsewhere.
package edges
