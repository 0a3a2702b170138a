package camera

import "testing"

type point struct{ x, y float64 }

func (p *point) Position() (float64, float64) { return p.x, p.y }

func TestCenterTracksTarget(t *testing.T) {
	c := New(800, 600)
	c.SetBounds(1600, 1600)
	p := &point{800, 800}
	c.StartFollow(p, true)

	positions := []point{{800, 800}, {805, 795}, {400, 300}, {1200, 1300}}
	for _, pos := range positions {
		p.x, p.y = pos.x, pos.y
		c.Update()
		cx, cy := c.Center()
		if cx != pos.x || cy != pos.y {
			t.Errorf("Expected center (%v, %v), got (%v, %v)", pos.x, pos.y, cx, cy)
		}
	}
}

func TestClampsToBounds(t *testing.T) {
	c := New(800, 600)
	c.SetBounds(1600, 1600)
	p := &point{10, 1590}
	c.StartFollow(p, false)

	if c.X != 0 {
		t.Errorf("Expected scroll x 0, got %v", c.X)
	}
	if c.Y != 1000 {
		t.Errorf("Expected scroll y 1000, got %v", c.Y)
	}
}

func TestViewLargerThanBounds(t *testing.T) {
	c := New(2000, 1000)
	c.SetBounds(1600, 1600)
	c.StartFollow(&point{100, 100}, false)

	if c.X != -200 {
		t.Errorf("Expected bounds centered horizontally (x -200), got %v", c.X)
	}
	if c.Y != 0 {
		t.Errorf("Expected scroll y 0, got %v", c.Y)
	}
}

func TestResizeKeepsFollow(t *testing.T) {
	c := New(800, 600)
	c.SetBounds(1600, 1600)
	c.StartFollow(&point{800, 800}, true)

	c.Resize(1024, 768)

	if c.ViewWidth != 1024 || c.ViewHeight != 768 {
		t.Errorf("Expected view 1024x768, got %dx%d", c.ViewWidth, c.ViewHeight)
	}
	cx, cy := c.Center()
	if cx != 800 || cy != 800 {
		t.Errorf("Expected center (800, 800) after resize, got (%v, %v)", cx, cy)
	}
}

func TestZoomAndWorldToScreen(t *testing.T) {
	c := New(800, 600)
	c.SetZoom(2)
	c.StartFollow(&point{1000, 1000}, false)

	w, h := c.WorldView()
	if w != 400 || h != 300 {
		t.Errorf("Expected world view 400x300, got %vx%v", w, h)
	}
	sx, sy := c.WorldToScreen(1000, 1000)
	if sx != 400 || sy != 300 {
		t.Errorf("Expected target at screen (400, 300), got (%v, %v)", sx, sy)
	}

	c.SetZoom(0)
	if c.Zoom != 1 {
		t.Errorf("Expected zoom reset to 1, got %v", c.Zoom)
	}
}
