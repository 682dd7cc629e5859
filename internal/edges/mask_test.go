package edges

import (
	"image"
	"image/color"
	"testing"
)

func TestFromGray(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 5, 4))
	g.SetGray(1, 2, color.Gray{Y: 255})
	g.SetGray(4, 0, color.Gray{Y: 1})

	em := FromGray(g)

	if em.Width != 5 || em.Height != 4 {
		t.Fatalf("dimensions: got %dx%d, want 5x4", em.Width, em.Height)
	}
	if !em.At(1, 2) || !em.At(4, 0) {
		t.Error("non-zero pixels should be edges")
	}
	if em.Count() != 2 {
		t.Errorf("Count: got %d, want 2", em.Count())
	}
}

func TestFromGray_SubImage(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 10, 10))
	g.SetGray(6, 7, color.Gray{Y: 200})

	sub := g.SubImage(image.Rect(5, 5, 10, 10)).(*image.Gray)
	em := FromGray(sub)

	if em.Width != 5 || em.Height != 5 {
		t.Fatalf("dimensions: got %dx%d, want 5x5", em.Width, em.Height)
	}
	if !em.At(1, 2) {
		t.Error("edge should be translated into sub-image coordinates")
	}
}

func TestFromMask(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.Black)
		}
	}
	img.Set(3, 3, color.White)
	img.Set(4, 4, color.RGBA{60, 60, 60, 255})

	em := FromMask(img, 128)

	if !em.At(3, 3) {
		t.Error("white pixel should be an edge")
	}
	if em.At(4, 4) {
		t.Error("dark gray pixel below level should not be an edge")
	}
	if em.Count() != 1 {
		t.Errorf("Count: got %d, want 1", em.Count())
	}
}

func TestMaskDetector(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 6, 6))
	for y := 0; y < 6; y++ {
		img.SetGray(2, y, color.Gray{Y: 200})
	}

	var d Detector = MaskDetector{Level: 100}
	em, err := d.Detect(img)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if em.Count() != 6 {
		t.Errorf("Count: got %d, want 6", em.Count())
	}

	em, _ = MaskDetector{Level: 201}.Detect(img)
	if em.Count() != 0 {
		t.Errorf("pixels below level should be dropped, got %d", em.Count())
	}
}

func TestToGray(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 6, 3))
	g.SetGray(5, 2, color.Gray{Y: 255})
	g.SetGray(0, 1, color.Gray{Y: 255})

	out := ToGray(FromGray(g))

	for y := 0; y < 3; y++ {
		for x := 0; x < 6; x++ {
			if out.GrayAt(x, y) != g.GrayAt(x, y) {
				t.Errorf("pixel (%d,%d): got %v, want %v", x, y, out.GrayAt(x, y), g.GrayAt(x, y))
			}
		}
	}
}
