package state

import (
	"image"
	"testing"

	"StickerSketch/internal/render"
)

func newTestSurface(t *testing.T, scale int) *render.Surface {
	t.Helper()
	fonts, err := render.DefaultFonts()
	if err != nil {
		t.Fatalf("DefaultFonts() error = %v", err)
	}
	t.Cleanup(func() { _ = fonts.Close() })

	s, err := render.NewSurface(64, 64, scale, fonts)
	if err != nil {
		t.Fatalf("NewSurface() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func inked(img image.Image) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0 {
				n++
			}
		}
	}
	return n
}

func alphaAt(img image.Image, x, y int) uint32 {
	_, _, _, a := img.At(x, y).RGBA()
	return a
}

func snapshot(img image.Image) []uint32 {
	b := img.Bounds()
	out := make([]uint32, 0, b.Dx()*b.Dy()*4)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			out = append(out, r, g, bl, a)
		}
	}
	return out
}

func equalPixels(a, b []uint32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
