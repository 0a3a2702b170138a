package terminal

import (
	"errors"
	"image/color"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"chosenoffset.com/desertwalk/internal/render"
)

func newSimScreen(t *testing.T, cols, rows int) (tcell.SimulationScreen, *Screen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	s, err := newScreen(sim)
	if err != nil {
		t.Fatalf("Failed to init simulation screen: %v", err)
	}
	sim.SetSize(cols, rows)
	return sim, s
}

func TestScreenDrawString(t *testing.T) {
	sim, s := newSimScreen(t, 10, 2)
	defer s.Close()

	s.DrawString(1, 1, "hi", color.White, color.Black)
	s.SetCell(0, 0, '@', color.White, color.Black)
	s.Show()

	cells, cols, _ := sim.GetContents()
	if got := cells[0].Runes; len(got) == 0 || got[0] != '@' {
		t.Errorf("Expected '@' at (0, 0), got %q", got)
	}
	if got := cells[cols+1].Runes; len(got) == 0 || got[0] != 'h' {
		t.Errorf("Expected 'h' at (1, 1), got %q", got)
	}
	if got := cells[cols+2].Runes; len(got) == 0 || got[0] != 'i' {
		t.Errorf("Expected 'i' at (2, 1), got %q", got)
	}
}

// cellGame counts ticks and records the last layout.
type cellGame struct {
	updates          int
	drawn            int
	layoutW, layoutH int
	stopAfter        int
	err              error
}

func (g *cellGame) Update() error {
	g.updates++
	if g.stopAfter > 0 && g.updates >= g.stopAfter {
		return g.err
	}
	return nil
}
func (g *cellGame) Draw(screen render.Image) {}
func (g *cellGame) Layout(w, h int) (int, int) {
	g.layoutW, g.layoutH = w, h
	return w, h
}
func (g *cellGame) DrawCells(canvas render.CellCanvas) {
	g.drawn++
	canvas.DrawString(0, 0, "ok", color.White, color.Black)
}

func newSimEngine(t *testing.T, cols, rows int) (*Engine, tcell.SimulationScreen) {
	t.Helper()
	sim, s := newSimScreen(t, cols, rows)
	e := NewEngine(NewInputManager(), 32)
	e.newScreen = func() (*Screen, error) { return s, nil }
	return e, sim
}

func TestRunGameStopsOnTerminated(t *testing.T) {
	e, _ := newSimEngine(t, 40, 12)
	g := &cellGame{stopAfter: 3, err: render.ErrTerminated}

	if err := e.RunGame(g); err != nil {
		t.Errorf("Expected clean stop, got %v", err)
	}
	if g.layoutW != 40*32 || g.layoutH != 12*32 {
		t.Errorf("Expected layout 1280x384, got %dx%d", g.layoutW, g.layoutH)
	}
	if g.drawn != 2 {
		t.Errorf("Expected 2 frames drawn, got %d", g.drawn)
	}
}

func TestRunGameReturnsUpdateError(t *testing.T) {
	e, _ := newSimEngine(t, 20, 10)
	boom := errors.New("boom")
	g := &cellGame{stopAfter: 1, err: boom}

	if err := e.RunGame(g); !errors.Is(err, boom) {
		t.Errorf("Expected update error, got %v", err)
	}
}

func TestRunGameStopsOnEscape(t *testing.T) {
	e, sim := newSimEngine(t, 20, 10)
	g := &cellGame{}

	done := make(chan error, 1)
	go func() { done <- e.RunGame(g) }()
	sim.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Expected clean stop on Escape, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("RunGame did not stop on Escape")
	}
}

func TestRunGameNeedsCellGame(t *testing.T) {
	e := NewEngine(NewInputManager(), 32)
	if err := e.RunGame(plainGame{}); err == nil {
		t.Error("Expected error for a game without DrawCells")
	}
}

type plainGame struct{}

func (plainGame) Update() error              { return nil }
func (plainGame) Draw(screen render.Image)   {}
func (plainGame) Layout(w, h int) (int, int) { return w, h }
