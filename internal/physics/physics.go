// Package physics implements a small arcade-style physics world:
// axis-aligned bodies, velocity integration and tile collision with no
// rotation and no mass.
package physics

import "math"

// Rect is an axis-aligned rectangle in world units.
type Rect struct {
	X, Y float64 // Top-left corner
	W, H float64
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// Blocked records which sides of a body touched something during the last step.
type Blocked struct {
	Left, Right, Up, Down bool
}

// Body is an axis-aligned box positioned by its center.
type Body struct {
	X, Y               float64 // Center
	HalfW, HalfH       float64
	VX, VY             float64
	CollideWorldBounds bool
	Blocked            Blocked
}

// NewBody creates a body of the given size centered at (x, y).
func NewBody(x, y, width, height float64) *Body {
	return &Body{X: x, Y: y, HalfW: width / 2, HalfH: height / 2}
}

// SetVelocity sets the body velocity in units per second.
func (b *Body) SetVelocity(vx, vy float64) {
	b.VX = vx
	b.VY = vy
}

// Bounds returns the body's rectangle.
func (b *Body) Bounds() Rect {
	return Rect{X: b.X - b.HalfW, Y: b.Y - b.HalfH, W: b.HalfW * 2, H: b.HalfH * 2}
}

// TileLayer is a grid of cells some of which are solid.
type TileLayer interface {
	IsSolid(x, y int) bool
}

// Collider pairs a body with a tile layer it must not overlap.
type Collider struct {
	Body     *Body
	Layer    TileLayer
	TileSize float64
}

// World holds bodies and colliders and advances them.
type World struct {
	Bounds             Rect
	GravityX, GravityY float64

	bodies    []*Body
	colliders []Collider
}

// NewWorld creates a world with zero gravity.
func NewWorld(bounds Rect) *World {
	return &World{Bounds: bounds}
}

// SetBounds replaces the world bounds.
func (w *World) SetBounds(x, y, width, height float64) {
	w.Bounds = Rect{X: x, Y: y, W: width, H: height}
}

// AddBody registers a body to be integrated by Step.
func (w *World) AddBody(b *Body) {
	w.bodies = append(w.bodies, b)
}

// AddCollider keeps body out of the solid cells of layer.
func (w *World) AddCollider(b *Body, layer TileLayer, tileSize int) {
	w.colliders = append(w.colliders, Collider{Body: b, Layer: layer, TileSize: float64(tileSize)})
}

// Bodies returns the registered bodies.
func (w *World) Bodies() []*Body {
	return w.bodies
}

// Step advances every body by dt seconds. Movement is applied one axis at a
// time and each axis is resolved before the next is applied.
func (w *World) Step(dt float64) {
	for _, b := range w.bodies {
		b.Blocked = Blocked{}
		b.VX += w.GravityX * dt
		b.VY += w.GravityY * dt

		if dx := b.VX * dt; dx != 0 {
			b.X += dx
			w.resolveX(b, dx)
		}
		if dy := b.VY * dt; dy != 0 {
			b.Y += dy
			w.resolveY(b, dy)
		}
	}
}

// resolveX pushes b out of solid cells, then clamps it to the world bounds.
// The bounds win when a body is wedged between cells it cannot fit between.
func (w *World) resolveX(b *Body, dx float64) {
	for _, c := range w.colliders {
		if c.Body != b {
			continue
		}
		r := b.Bounds()
		x0, x1, y0, y1 := cellRange(r, c.TileSize)
		if dx > 0 {
			for tx := x0; tx <= x1; tx++ {
				if columnSolid(c.Layer, tx, y0, y1) {
					b.X = float64(tx)*c.TileSize - b.HalfW
					b.VX = 0
					b.Blocked.Right = true
					break
				}
			}
		} else {
			for tx := x1; tx >= x0; tx-- {
				if columnSolid(c.Layer, tx, y0, y1) {
					b.X = float64(tx+1)*c.TileSize + b.HalfW
					b.VX = 0
					b.Blocked.Left = true
					break
				}
			}
		}
	}

	if b.CollideWorldBounds {
		if b.X-b.HalfW < w.Bounds.X {
			b.X = w.Bounds.X + b.HalfW
			b.VX = 0
			b.Blocked.Left = true
		} else if b.X+b.HalfW > w.Bounds.Right() {
			b.X = w.Bounds.Right() - b.HalfW
			b.VX = 0
			b.Blocked.Right = true
		}
	}
}

func (w *World) resolveY(b *Body, dy float64) {
	for _, c := range w.colliders {
		if c.Body != b {
			continue
		}
		r := b.Bounds()
		x0, x1, y0, y1 := cellRange(r, c.TileSize)
		if dy > 0 {
			for ty := y0; ty <= y1; ty++ {
				if rowSolid(c.Layer, ty, x0, x1) {
					b.Y = float64(ty)*c.TileSize - b.HalfH
					b.VY = 0
					b.Blocked.Down = true
					break
				}
			}
		} else {
			for ty := y1; ty >= y0; ty-- {
				if rowSolid(c.Layer, ty, x0, x1) {
					b.Y = float64(ty+1)*c.TileSize + b.HalfH
					b.VY = 0
					b.Blocked.Up = true
					break
				}
			}
		}
	}

	if b.CollideWorldBounds {
		if b.Y-b.HalfH < w.Bounds.Y {
			b.Y = w.Bounds.Y + b.HalfH
			b.VY = 0
			b.Blocked.Up = true
		} else if b.Y+b.HalfH > w.Bounds.Bottom() {
			b.Y = w.Bounds.Bottom() - b.HalfH
			b.VY = 0
			b.Blocked.Down = true
		}
	}
}

// cellRange returns the inclusive range of cells a rectangle overlaps.
// Touching an edge is not overlapping.
func cellRange(r Rect, size float64) (x0, x1, y0, y1 int) {
	x0 = int(math.Floor(r.X / size))
	x1 = int(math.Ceil(r.Right()/size)) - 1
	y0 = int(math.Floor(r.Y / size))
	y1 = int(math.Ceil(r.Bottom()/size)) - 1
	return x0, x1, y0, y1
}

func columnSolid(layer TileLayer, tx, y0, y1 int) bool {
	for ty := y0; ty <= y1; ty++ {
		if layer.IsSolid(tx, ty) {
			return true
		}
	}
	return false
}

func rowSolid(layer TileLayer, ty, x0, x1 int) bool {
	for tx := x0; tx <= x1; tx++ {
		if layer.IsSolid(tx, ty) {
			return true
		}
	}
	return false
}
