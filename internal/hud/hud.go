// Package hud provides the heads-up display drawn in screen space on top of
// the camera view: the help line, the map size and optionally the player
// position.
package hud

import (
	"fmt"
	"image/color"

	"chosenoffset.com/desertwalk/internal/config"
	"chosenoffset.com/desertwalk/internal/render"
)

// HelpText is the first HUD line.
const HelpText = "Use arrow keys to move in all directions"

// Layout of one text box
const (
	padding  = 10 // Distance from the screen edge
	padX     = 10
	padY     = 5
	lineStep = 30
)

// Positioner is anything with a world position.
type Positioner interface {
	Position() (x, y float64)
}

// HUD manages the heads-up display
type HUD struct {
	config       config.HUDConfig
	renderer     render.Renderer
	screenWidth  int
	screenHeight int

	// Data sources
	mapWidth  int
	mapHeight int
	player    Positioner
}

// New creates a new HUD with the given configuration
func New(cfg config.HUDConfig, r render.Renderer, screenWidth, screenHeight int) *HUD {
	return &HUD{
		config:       cfg,
		renderer:     r,
		screenWidth:  screenWidth,
		screenHeight: screenHeight,
	}
}

// SetMapSize sets the map size shown in pixels
func (h *HUD) SetMapSize(width, height int) {
	h.mapWidth = width
	h.mapHeight = height
}

// SetPlayer sets the player whose position is shown
func (h *HUD) SetPlayer(p Positioner) {
	h.player = p
}

// SetScreenSize updates the screen dimensions
func (h *HUD) SetScreenSize(width, height int) {
	h.screenWidth = width
	h.screenHeight = height
}

// Lines returns the text lines in display order.
func (h *HUD) Lines() []string {
	lines := []string{HelpText}
	if h.mapWidth > 0 && h.mapHeight > 0 {
		lines = append(lines, fmt.Sprintf("Map size: %dx%d", h.mapWidth, h.mapHeight))
	}
	if h.config.ShowPosition && h.player != nil {
		x, y := h.player.Position()
		lines = append(lines, fmt.Sprintf("Pos: %.0f, %.0f", x, y))
	}
	return lines
}

// Draw renders each line in its own box.
func (h *HUD) Draw(screen render.Image) {
	if h.renderer == nil {
		return
	}

	textColor := color.RGBA{255, 255, 255, 255}
	backColor := color.RGBA{0, 0, 0, uint8(h.config.Opacity * 255)}

	lines := h.Lines()
	for i, line := range lines {
		w, ht := h.renderer.MeasureText(line, 1)
		boxW, boxH := w+2*padX, ht+2*padY
		x, y := h.calculatePosition(i, len(lines), boxW, boxH)

		h.renderer.FillRect(screen, float32(x), float32(y), float32(boxW), float32(boxH), backColor)
		h.renderer.DrawText(screen, line, x+padX, y+padY, textColor, 1)
	}
}

// calculatePosition returns the top-left corner of box i of n
func (h *HUD) calculatePosition(i, n, boxW, boxH int) (int, int) {
	x := padding
	if h.config.Position == "top-right" || h.config.Position == "bottom-right" {
		x = h.screenWidth - boxW - padding
	}

	y := padding + i*lineStep
	if h.config.Position == "bottom-left" || h.config.Position == "bottom-right" {
		y = h.screenHeight - padding - boxH - (n-1-i)*lineStep
	}
	return x, y
}

// DrawCells writes one line per row in the configured corner.
func (h *HUD) DrawCells(canvas render.CellCanvas) {
	cols, rows := canvas.Size()
	fg := color.RGBA{255, 255, 255, 255}
	bg := color.RGBA{0, 0, 0, 255}

	lines := h.Lines()
	for i, line := range lines {
		row := i
		if h.config.Position == "bottom-left" || h.config.Position == "bottom-right" {
			row = rows - len(lines) + i
		}
		if row < 0 || row >= rows {
			continue
		}
		col := 0
		if h.config.Position == "top-right" || h.config.Position == "bottom-right" {
			col = max(0, cols-len([]rune(line)))
		}
		canvas.DrawString(col, row, line, fg, bg)
	}
}
