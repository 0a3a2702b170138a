package hud

import (
	"strings"
	"testing"

	"chosenoffset.com/desertwalk/internal/config"
	"chosenoffset.com/desertwalk/internal/render/rendertest"
)

type point struct{ x, y float64 }

func (p point) Position() (float64, float64) { return p.x, p.y }

func TestLines(t *testing.T) {
	cfg := config.DefaultConfig().HUD
	h := New(cfg, nil, 800, 600)

	if lines := h.Lines(); len(lines) != 1 || lines[0] != HelpText {
		t.Errorf("Expected only help text before the map exists, got %q", lines)
	}

	h.SetMapSize(1600, 1600)
	h.SetPlayer(point{800, 800})
	lines := h.Lines()
	if len(lines) != 2 || lines[1] != "Map size: 1600x1600" {
		t.Errorf("Expected map size line, got %q", lines)
	}

	cfg.ShowPosition = true
	h = New(cfg, nil, 800, 600)
	h.SetPlayer(point{812.4, 99.6})
	if lines := h.Lines(); lines[len(lines)-1] != "Pos: 812, 100" {
		t.Errorf("Expected position line, got %q", lines)
	}
}

func TestCalculatePosition(t *testing.T) {
	tests := []struct {
		position string
		i        int
		wantX    int
		wantY    int
	}{
		{"top-left", 0, 10, 10},
		{"top-left", 1, 10, 40},
		{"top-right", 0, 800 - 100 - 10, 10},
		{"bottom-left", 1, 10, 600 - 10 - 26},
		{"bottom-right", 0, 800 - 100 - 10, 600 - 10 - 26 - 30},
	}

	for _, tt := range tests {
		cfg := config.DefaultConfig().HUD
		cfg.Position = tt.position
		h := New(cfg, nil, 800, 600)

		x, y := h.calculatePosition(tt.i, 2, 100, 26)
		if x != tt.wantX || y != tt.wantY {
			t.Errorf("%s line %d: expected (%d, %d), got (%d, %d)", tt.position, tt.i, tt.wantX, tt.wantY, x, y)
		}
	}
}

func TestDraw(t *testing.T) {
	r := &rendertest.Renderer{}
	h := New(config.DefaultConfig().HUD, r, 800, 600)
	h.SetMapSize(1600, 1600)

	h.Draw(rendertest.NewImage(800, 600))

	if r.Rects != 2 || len(r.Texts) != 2 {
		t.Errorf("Expected two boxes with text, got %d boxes %d texts", r.Rects, len(r.Texts))
	}
}

func TestDrawCellsBottomRight(t *testing.T) {
	cfg := config.DefaultConfig().HUD
	cfg.Position = "bottom-right"
	h := New(cfg, nil, 800, 600)
	h.SetMapSize(1600, 1600)

	canvas := rendertest.NewCanvas(60, 5)
	h.DrawCells(canvas)

	if !strings.HasSuffix(canvas.Line(4), "Map size: 1600x1600") {
		t.Errorf("Expected map size on the last row, right aligned, got %q", canvas.Line(4))
	}
	if !strings.HasSuffix(canvas.Line(3), HelpText) {
		t.Errorf("Expected help text above it, got %q", canvas.Line(3))
	}
}
