package atlas

import (
	"fmt"
	"image"

	"chosenoffset.com/desertwalk/internal/render"
)

// Tileset is a tileset image sliced into equally sized tiles, indexed
// row-major from the top-left tile starting at 0.
type Tileset struct {
	Name       string
	Image      render.Image
	TileWidth  int
	TileHeight int
	Margin     int // Border around the whole image in pixels
	Spacing    int // Gap between neighbouring tiles in pixels
	Columns    int
	Rows       int

	cache map[int]render.Image
}

// NewTileset slices img into tiles. The tile grid is derived from the image
// size, margin and spacing.
func NewTileset(name string, img render.Image, tileWidth, tileHeight, margin, spacing int) (*Tileset, error) {
	if tileWidth <= 0 || tileHeight <= 0 {
		return nil, fmt.Errorf("invalid tile dimensions: %dx%d", tileWidth, tileHeight)
	}
	if img == nil {
		return nil, fmt.Errorf("tileset %s has no image", name)
	}

	w, h := img.Size()
	cols := fitCount(w, tileWidth, margin, spacing)
	rows := fitCount(h, tileHeight, margin, spacing)
	if cols == 0 || rows == 0 {
		return nil, fmt.Errorf("tileset %s: image %dx%d holds no %dx%d tiles", name, w, h, tileWidth, tileHeight)
	}

	return &Tileset{
		Name:       name,
		Image:      img,
		TileWidth:  tileWidth,
		TileHeight: tileHeight,
		Margin:     margin,
		Spacing:    spacing,
		Columns:    cols,
		Rows:       rows,
		cache:      make(map[int]render.Image),
	}, nil
}

// fitCount returns how many cells of size fit in length given a margin on
// both ends and spacing between cells.
func fitCount(length, size, margin, spacing int) int {
	usable := length - 2*margin + spacing
	if usable < size {
		return 0
	}
	return usable / (size + spacing)
}

// TileCount returns the number of tiles in the set.
func (t *Tileset) TileCount() int {
	return t.Columns * t.Rows
}

// TileRect returns the source rectangle of a tile index.
func (t *Tileset) TileRect(index int) (image.Rectangle, error) {
	if index < 0 || index >= t.TileCount() {
		return image.Rectangle{}, fmt.Errorf("tile index %d out of range (0-%d)", index, t.TileCount()-1)
	}
	col := index % t.Columns
	row := index / t.Columns
	x := t.Margin + col*(t.TileWidth+t.Spacing)
	y := t.Margin + row*(t.TileHeight+t.Spacing)
	return image.Rect(x, y, x+t.TileWidth, y+t.TileHeight), nil
}

// GetTileSubImage returns the sub-image for a specific tile
func (t *Tileset) GetTileSubImage(index int) (render.Image, error) {
	if img, ok := t.cache[index]; ok {
		return img, nil
	}
	rect, err := t.TileRect(index)
	if err != nil {
		return nil, err
	}
	img := t.Image.SubImage(rect)
	t.cache[index] = img
	return img, nil
}

// DrawTile draws a specific tile at the given screen coordinates
func (t *Tileset) DrawTile(screen render.Image, index int, x, y, scale float64) error {
	subImg, err := t.GetTileSubImage(index)
	if err != nil {
		return err
	}

	opts := &render.DrawImageOptions{GeoM: render.NewGeoM()}
	opts.GeoM.Scale(scale, scale)
	opts.GeoM.Translate(x, y)
	screen.DrawImage(subImg, opts)
	return nil
}

// Spritesheet is an image of equally sized animation frames without margins.
type Spritesheet struct {
	Image       render.Image
	FrameWidth  int
	FrameHeight int
	Columns     int
	Rows        int
}

// NewSpritesheet slices img into frames of the given size.
func NewSpritesheet(img render.Image, frameWidth, frameHeight int) (*Spritesheet, error) {
	if frameWidth <= 0 || frameHeight <= 0 {
		return nil, fmt.Errorf("invalid frame dimensions: %dx%d", frameWidth, frameHeight)
	}
	if img == nil {
		return nil, fmt.Errorf("spritesheet has no image")
	}
	w, h := img.Size()
	cols, rows := w/frameWidth, h/frameHeight
	if cols == 0 || rows == 0 {
		return nil, fmt.Errorf("spritesheet image %dx%d is smaller than one %dx%d frame", w, h, frameWidth, frameHeight)
	}
	return &Spritesheet{Image: img, FrameWidth: frameWidth, FrameHeight: frameHeight, Columns: cols, Rows: rows}, nil
}

// FrameCount returns the number of frames in the sheet.
func (s *Spritesheet) FrameCount() int {
	return s.Columns * s.Rows
}

// FrameRect returns the source rectangle of a frame.
func (s *Spritesheet) FrameRect(frame int) (image.Rectangle, error) {
	if frame < 0 || frame >= s.FrameCount() {
		return image.Rectangle{}, fmt.Errorf("frame %d out of range (0-%d)", frame, s.FrameCount()-1)
	}
	x := (frame % s.Columns) * s.FrameWidth
	y := (frame / s.Columns) * s.FrameHeight
	return image.Rect(x, y, x+s.FrameWidth, y+s.FrameHeight), nil
}

// Frame returns the sub-image of a frame.
func (s *Spritesheet) Frame(frame int) (render.Image, error) {
	rect, err := s.FrameRect(frame)
	if err != nil {
		return nil, err
	}
	return s.Image.SubImage(rect), nil
}
