package terminal

import (
	"image"
	"image/color"
	"image/draw"

	"chosenoffset.com/desertwalk/internal/render"
)

// Image is a CPU-side render.Image. The terminal draws cells, not pixels,
// so images only need to exist for slicing tilesets and spritesheets.
type Image struct {
	img *image.RGBA
}

func (i *Image) Bounds() image.Rectangle { return i.img.Bounds() }

func (i *Image) Size() (width, height int) {
	b := i.img.Bounds()
	return b.Dx(), b.Dy()
}

func (i *Image) SubImage(r image.Rectangle) render.Image {
	return &Image{img: i.img.SubImage(r).(*image.RGBA)}
}

func (i *Image) Fill(clr color.Color) {
	draw.Draw(i.img, i.img.Bounds(), &image.Uniform{clr}, image.Point{}, draw.Src)
}

// DrawImage is a no-op. Terminal frames are composed by DrawCells.
func (i *Image) DrawImage(src render.Image, opts *render.DrawImageOptions) {}

// ResourceLoader implements render.ResourceLoader with CPU images.
type ResourceLoader struct{}

// NewResourceLoader creates a resource loader.
func NewResourceLoader() render.ResourceLoader {
	return &ResourceLoader{}
}

// NewImageFromImage copies img into a render.Image.
func (l *ResourceLoader) NewImageFromImage(img image.Image) render.Image {
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return &Image{img: rgba}
}
