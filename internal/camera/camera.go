// Package camera tracks the viewport over a bounded world.
package camera

import "math"

// Target is anything with a world position the camera can follow.
type Target interface {
	Position() (x, y float64)
}

// Camera tracks the viewport position for scrolling large levels.
type Camera struct {
	X, Y        float64 // Scroll: top-left corner of the view in world coords
	ViewWidth   int     // Viewport size in screen pixels
	ViewHeight  int
	Zoom        float64
	RoundPixels bool

	boundsW, boundsH float64
	hasBounds        bool
	target           Target
}

// New creates a camera with a viewport of the given size and zoom 1.
func New(viewWidth, viewHeight int) *Camera {
	return &Camera{ViewWidth: viewWidth, ViewHeight: viewHeight, Zoom: 1}
}

// SetBounds limits scrolling to the rectangle (0,0)-(width,height).
func (c *Camera) SetBounds(width, height float64) {
	c.boundsW = width
	c.boundsH = height
	c.hasBounds = true
}

// SetZoom sets the zoom factor. Non-positive values reset it to 1.
func (c *Camera) SetZoom(zoom float64) {
	if zoom <= 0 {
		zoom = 1
	}
	c.Zoom = zoom
}

// StartFollow makes the camera recenter on target every Update.
func (c *Camera) StartFollow(target Target, roundPixels bool) {
	c.target = target
	c.RoundPixels = roundPixels
	c.Update()
}

// StopFollow detaches the follow target.
func (c *Camera) StopFollow() {
	c.target = nil
}

// Resize changes the viewport size and re-applies follow and bounds.
func (c *Camera) Resize(viewWidth, viewHeight int) {
	c.ViewWidth = viewWidth
	c.ViewHeight = viewHeight
	c.Update()
}

// WorldView returns the size of the visible world area.
func (c *Camera) WorldView() (width, height float64) {
	return float64(c.ViewWidth) / c.Zoom, float64(c.ViewHeight) / c.Zoom
}

// Update centers the camera on the follow target and clamps it to bounds.
func (c *Camera) Update() {
	viewW, viewH := c.WorldView()

	if c.target != nil {
		tx, ty := c.target.Position()
		c.X = tx - viewW/2
		c.Y = ty - viewH/2
	}

	if c.hasBounds {
		c.X = clampAxis(c.X, viewW, c.boundsW)
		c.Y = clampAxis(c.Y, viewH, c.boundsH)
	}

	if c.RoundPixels {
		c.X = math.Round(c.X)
		c.Y = math.Round(c.Y)
	}
}

// Center returns the world position at the middle of the view.
func (c *Camera) Center() (x, y float64) {
	viewW, viewH := c.WorldView()
	return c.X + viewW/2, c.Y + viewH/2
}

// WorldToScreen converts a world position to screen pixels.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	return (wx - c.X) * c.Zoom, (wy - c.Y) * c.Zoom
}

// clampAxis keeps the view inside [0, bound]. A view larger than the bound
// centers the bound instead.
func clampAxis(pos, view, bound float64) float64 {
	if view >= bound {
		return (bound - view) / 2
	}
	if pos < 0 {
		return 0
	}
	if pos > bound-view {
		return bound - view
	}
	return pos
}
