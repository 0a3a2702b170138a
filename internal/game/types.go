package game

import (
	"context"
	"image"

	"chosenoffset.com/desertwalk/internal/physics"
	"chosenoffset.com/desertwalk/internal/render"
)

// Scene is what a Manager drives. Load may block on I/O, Init builds the
// world synchronously and Step advances it once per tick.
type Scene interface {
	Load(ctx context.Context) error
	Init() error
	Step(dt float64)
	Draw(screen render.Image)
	DrawCells(canvas render.CellCanvas)
	Resize(width, height int)
}

var _ Scene = (*Game)(nil)

// ImageSource fetches and decodes an image by URL or path.
type ImageSource interface {
	FetchImage(ctx context.Context, location string) (image.Image, error)
}

// Player is the controllable character: a physics body drawn with a
// spritesheet frame.
type Player struct {
	Body  *physics.Body
	Frame int
}

// Position returns the player's center in world coordinates.
func (p *Player) Position() (x, y float64) {
	return p.Body.X, p.Body.Y
}

// Velocity returns the player's current velocity.
func (p *Player) Velocity() (vx, vy float64) {
	return p.Body.VX, p.Body.VY
}
