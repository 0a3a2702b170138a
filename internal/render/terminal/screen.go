// Package terminal implements the render interfaces on a character-cell
// terminal using tcell.
package terminal

import (
	"image/color"

	"github.com/gdamore/tcell/v2"
)

// Screen wraps tcell.Screen with a simplified interface. It implements
// render.CellCanvas.
type Screen struct {
	screen tcell.Screen
}

// NewScreen creates and initializes a new terminal screen.
func NewScreen() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return newScreen(s)
}

func newScreen(s tcell.Screen) (*Screen, error) {
	if err := s.Init(); err != nil {
		return nil, err
	}
	s.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	s.HideCursor()
	s.Clear()
	return &Screen{screen: s}, nil
}

// Close finalizes the screen and restores terminal state.
func (s *Screen) Close() {
	s.screen.Fini()
}

// PollEvent waits for and returns the next terminal event. It returns nil
// once the screen is closed.
func (s *Screen) PollEvent() tcell.Event {
	return s.screen.PollEvent()
}

// Clear clears the screen buffer.
func (s *Screen) Clear() {
	s.screen.Clear()
}

// Show flushes the screen buffer to the terminal.
func (s *Screen) Show() {
	s.screen.Show()
}

// Sync forces a complete redraw of the screen.
func (s *Screen) Sync() {
	s.screen.Sync()
}

// Size returns the current terminal dimensions in cells.
func (s *Screen) Size() (cols, rows int) {
	return s.screen.Size()
}

// SetCell sets one cell. Cells outside the screen are ignored by tcell.
func (s *Screen) SetCell(col, row int, glyph rune, fg, bg color.Color) {
	s.screen.SetContent(col, row, glyph, nil, style(fg, bg))
}

// DrawString writes text starting at (col, row), one rune per cell.
func (s *Screen) DrawString(col, row int, text string, fg, bg color.Color) {
	st := style(fg, bg)
	for i, r := range []rune(text) {
		s.screen.SetContent(col+i, row, r, nil, st)
	}
}

func style(fg, bg color.Color) tcell.Style {
	return tcell.StyleDefault.
		Foreground(tcell.FromImageColor(fg)).
		Background(tcell.FromImageColor(bg))
}
