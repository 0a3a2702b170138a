// Package rendertest provides in-memory render backends for tests.
package rendertest

import (
	"image"
	"image/color"
	"sync"

	"chosenoffset.com/desertwalk/internal/render"
)

func init() {
	if render.NewGeoM == nil {
		render.NewGeoM = func() render.GeoM { return &GeoM{SX: 1, SY: 1} }
	}
}

// Draw records one DrawImage call.
type Draw struct {
	Src    *Image
	TX, TY float64
	SX, SY float64
}

// Image is a render.Image that records what is drawn onto it.
type Image struct {
	Rect   image.Rectangle
	Parent *Image
	Draws  []Draw
	Filled color.Color
}

// NewImage creates an image of the given size.
func NewImage(width, height int) *Image {
	return &Image{Rect: image.Rect(0, 0, width, height)}
}

func (i *Image) Bounds() image.Rectangle { return i.Rect }
func (i *Image) Size() (int, int)        { return i.Rect.Dx(), i.Rect.Dy() }
func (i *Image) Fill(clr color.Color)    { i.Filled = clr }
func (i *Image) SubImage(r image.Rectangle) render.Image {
	return &Image{Rect: r.Intersect(i.Rect), Parent: i}
}

// DrawImage records the draw and its translation and scale.
func (i *Image) DrawImage(src render.Image, opts *render.DrawImageOptions) {
	d := Draw{Src: src.(*Image), SX: 1, SY: 1}
	if opts != nil {
		if g, ok := opts.GeoM.(*GeoM); ok {
			d.TX, d.TY, d.SX, d.SY = g.TX, g.TY, g.SX, g.SY
		}
	}
	i.Draws = append(i.Draws, d)
}

// GeoM is a scale-then-translate matrix, enough for tile and sprite drawing.
type GeoM struct {
	SX, SY float64
	TX, TY float64
}

func (g *GeoM) Translate(tx, ty float64) { g.TX += tx; g.TY += ty }
func (g *GeoM) Scale(sx, sy float64) {
	g.SX *= sx
	g.SY *= sy
	g.TX *= sx
	g.TY *= sy
}

// Renderer records text and rectangles.
type Renderer struct {
	Texts   []string
	Rects   int
	Strokes int
}

func (r *Renderer) FillRect(dst render.Image, x, y, w, h float32, clr color.Color) {
	r.Rects++
}
func (r *Renderer) StrokeRect(dst render.Image, x, y, w, h, sw float32, clr color.Color) {
	r.Strokes++
}
func (r *Renderer) DrawText(dst render.Image, text string, x, y int, clr color.Color, scale float64) {
	r.Texts = append(r.Texts, text)
}
func (r *Renderer) MeasureText(text string, scale float64) (int, int) {
	return len(text) * 6, 16
}

// Input is a render.InputManager with settable key states.
type Input struct {
	mu   sync.Mutex
	keys map[render.Key]bool
	just map[render.Key]bool
}

// NewInput creates an input with no keys held.
func NewInput() *Input {
	return &Input{
		keys: make(map[render.Key]bool),
		just: make(map[render.Key]bool),
	}
}

// Set holds or releases keys.
func (in *Input) Set(down bool, keys ...render.Key) {
	in.mu.Lock()
	defer in.mu.Unlock()
	for _, k := range keys {
		in.keys[k] = down
	}
}

func (in *Input) IsKeyPressed(k render.Key) bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.keys[k]
}

// Tap marks keys as just pressed until the next read of each.
func (in *Input) Tap(keys ...render.Key) {
	in.mu.Lock()
	defer in.mu.Unlock()
	for _, k := range keys {
		in.just[k] = true
	}
}

func (in *Input) IsKeyJustPressed(k render.Key) bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	tapped := in.just[k]
	delete(in.just, k)
	return tapped
}

// Loader wraps decoded images as Images of the same size.
type Loader struct{}

func (Loader) NewImageFromImage(img image.Image) render.Image {
	b := img.Bounds()
	return NewImage(b.Dx(), b.Dy())
}

// Canvas is a render.CellCanvas backed by a rune grid.
type Canvas struct {
	Cols, Rows int
	Cells      [][]rune
}

// NewCanvas creates a blank canvas.
func NewCanvas(cols, rows int) *Canvas {
	cells := make([][]rune, rows)
	for y := range cells {
		cells[y] = make([]rune, cols)
		for x := range cells[y] {
			cells[y][x] = ' '
		}
	}
	return &Canvas{Cols: cols, Rows: rows, Cells: cells}
}

func (c *Canvas) Size() (int, int) { return c.Cols, c.Rows }
func (c *Canvas) SetCell(col, row int, glyph rune, fg, bg color.Color) {
	if col < 0 || row < 0 || col >= c.Cols || row >= c.Rows {
		return
	}
	c.Cells[row][col] = glyph
}
func (c *Canvas) DrawString(col, row int, text string, fg, bg color.Color) {
	for i, r := range []rune(text) {
		c.SetCell(col+i, row, r, fg, bg)
	}
}

// Line returns one row as a string.
func (c *Canvas) Line(row int) string {
	return string(c.Cells[row])
}
