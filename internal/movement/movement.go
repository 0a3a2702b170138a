// Package movement maps directional input to a player velocity.
package movement

import (
	"math"

	"chosenoffset.com/desertwalk/internal/render"
)

// DiagonalFactor scales both axes when moving diagonally so the resulting
// speed equals the axial speed.
const DiagonalFactor = 1 / math.Sqrt2

// Input holds the four directional flags sampled for one step.
type Input struct {
	Up, Down, Left, Right bool
}

// ReadInput samples the arrow keys.
func ReadInput(im render.InputManager) Input {
	return Input{
		Up:    im.IsKeyPressed(render.KeyUp),
		Down:  im.IsKeyPressed(render.KeyDown),
		Left:  im.IsKeyPressed(render.KeyLeft),
		Right: im.IsKeyPressed(render.KeyRight),
	}
}

// Controller converts input into velocity at a fixed speed.
type Controller struct {
	Speed float64
}

// NewController creates a controller moving at speed units per second.
func NewController(speed float64) *Controller {
	return &Controller{Speed: speed}
}

// Velocity returns the velocity for one step of input.
// Opposite keys on the same axis cancel out.
func (c *Controller) Velocity(in Input) (vx, vy float64) {
	vx = axis(in.Left, in.Right) * c.Speed
	vy = axis(in.Up, in.Down) * c.Speed

	if vx != 0 && vy != 0 {
		vx *= DiagonalFactor
		vy *= DiagonalFactor
	}
	return vx, vy
}

func axis(negative, positive bool) float64 {
	switch {
	case negative && !positive:
		return -1
	case positive && !negative:
		return 1
	default:
		return 0
	}
}
