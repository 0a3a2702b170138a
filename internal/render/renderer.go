package render

import (
	"errors"
	"image"
	"image/color"
)

// TicksPerSecond is the fixed simulation rate of every backend.
const TicksPerSecond = 60

// ErrTerminated is returned from Game.Update to stop the engine cleanly.
var ErrTerminated = errors.New("render: game terminated")

// Renderer is the main rendering interface that abstracts the underlying
// graphics engine. This allows swapping rendering backends without changing
// game logic.
type Renderer interface {
	// Vector operations (for debug shapes and HUD backgrounds)
	FillRect(dst Image, x, y, width, height float32, clr color.Color)
	StrokeRect(dst Image, x, y, width, height, strokeWidth float32, clr color.Color)

	// Text operations
	DrawText(dst Image, text string, x, y int, clr color.Color, scale float64)
	MeasureText(text string, scale float64) (width, height int)
}

// Image represents a renderable image surface that can be drawn to or drawn from.
// It abstracts the underlying image implementation.
type Image interface {
	// Properties
	Bounds() image.Rectangle
	Size() (width, height int)

	// Sub-image extraction
	SubImage(r image.Rectangle) Image

	// Fill operations
	Fill(clr color.Color)

	// Drawing operations
	DrawImage(src Image, opts *DrawImageOptions)
}

// DrawImageOptions contains options for drawing an image.
type DrawImageOptions struct {
	GeoM GeoM
}

// GeoM represents a geometric transformation matrix.
type GeoM interface {
	// Translate shifts the image by (tx, ty).
	Translate(tx, ty float64)

	// Scale scales the image by (sx, sy).
	Scale(sx, sy float64)
}

// NewGeoM creates a new geometric transformation matrix.
// This is implemented by the specific renderer backend.
var NewGeoM func() GeoM

// CellCanvas is a character-cell drawing surface used by text backends.
type CellCanvas interface {
	// Size returns the canvas size in cells.
	Size() (cols, rows int)

	// SetCell draws a glyph at the given cell.
	SetCell(col, row int, glyph rune, fg, bg color.Color)

	// DrawString draws text starting at the given cell.
	DrawString(col, row int, text string, fg, bg color.Color)
}

// InputManager handles input from the user (keyboard).
// IsKeyJustPressed is true only on the tick the key went down.
type InputManager interface {
	IsKeyPressed(key Key) bool
	IsKeyJustPressed(key Key) bool
}

// Key represents a keyboard key.
type Key int

// Key constants for the keys the demo reads
const (
	KeyUp Key = iota
	KeyDown
	KeyLeft
	KeyRight
	KeyEscape
)

// ResourceLoader turns decoded images into backend images.
type ResourceLoader interface {
	NewImageFromImage(img image.Image) Image
}

// Game represents the game interface that the engine will call.
// This is typically implemented by the main game struct.
type Game interface {
	// Update updates the game logic. It is called every tick (TicksPerSecond).
	// Returning ErrTerminated stops the engine without an error.
	Update() error

	// Draw draws the game screen. It is called every frame.
	Draw(screen Image)

	// Layout accepts the outside size (e.g., window size) and returns the logical screen size.
	// The logical screen size is used for rendering and input coordinates.
	Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int)
}

// CellGame is a Game that can also draw itself onto a character-cell canvas.
type CellGame interface {
	Game
	DrawCells(canvas CellCanvas)
}

// Engine represents the game engine that manages the game loop and window.
type Engine interface {
	// SetWindowSize sets the window size in pixels.
	SetWindowSize(width, height int)

	// SetWindowTitle sets the window title.
	SetWindowTitle(title string)

	// SetWindowResizable enables or disables window resizing.
	SetWindowResizable(resizable bool)

	// RunGame runs the game loop with the provided game.
	// This is a blocking call that runs until the game ends.
	RunGame(game Game) error
}
