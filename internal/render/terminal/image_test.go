package terminal

import (
	"image"
	"image/color"
	"testing"
)

func TestResourceLoaderCopiesImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 10, 74, 42))
	src.Set(10, 10, color.RGBA{255, 0, 0, 255})

	img := NewResourceLoader().NewImageFromImage(src)

	if w, h := img.Size(); w != 64 || h != 32 {
		t.Errorf("Expected 64x32, got %dx%d", w, h)
	}
	rgba := img.(*Image).img
	if got := rgba.RGBAAt(0, 0); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("Expected source origin copied to (0, 0), got %v", got)
	}

	sub := img.SubImage(image.Rect(32, 0, 64, 32))
	if sub.Bounds() != image.Rect(32, 0, 64, 32) {
		t.Errorf("Expected sub-image bounds kept, got %v", sub.Bounds())
	}
}
