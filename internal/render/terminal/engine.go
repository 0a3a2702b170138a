package terminal

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"chosenoffset.com/desertwalk/internal/render"
)

// Engine runs a render.CellGame in the terminal. Each cell stands for one
// tile, so the game is laid out at cols*TileSize by rows*TileSize pixels.
type Engine struct {
	Input    *InputManager
	TileSize int

	title     string
	newScreen func() (*Screen, error)
}

// NewEngine creates a terminal engine that feeds key events into input.
func NewEngine(input *InputManager, tileSize int) *Engine {
	return &Engine{
		Input:     input,
		TileSize:  tileSize,
		newScreen: NewScreen,
	}
}

// SetWindowSize is a no-op. The terminal decides its own size.
func (e *Engine) SetWindowSize(width, height int) {}

// SetWindowTitle records the title for the startup log line.
func (e *Engine) SetWindowTitle(title string) {
	e.title = title
}

// SetWindowResizable is a no-op. Terminal resizes are always delivered.
func (e *Engine) SetWindowResizable(resizable bool) {}

// RunGame runs the tick loop until the game returns an error, the user
// presses Escape or Ctrl-C, or the screen is closed. render.ErrTerminated
// is a clean stop.
func (e *Engine) RunGame(game render.Game) error {
	cg, ok := game.(render.CellGame)
	if !ok {
		return errors.New("terminal backend needs a game that can draw cells")
	}

	screen, err := e.newScreen()
	if err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}
	defer screen.Close()
	if e.title != "" {
		log.Printf("Running %q in terminal", e.title)
	}

	quit := make(chan struct{})
	defer close(quit)
	events := make(chan tcell.Event, 64)
	go func() {
		defer close(events)
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	e.layout(cg, screen)
	ticker := time.NewTicker(time.Second / render.TicksPerSecond)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
					return nil
				}
				e.Input.HandleEvent(ev)
			case *tcell.EventResize:
				screen.Sync()
				e.layout(cg, screen)
			}
		case <-ticker.C:
			if err := cg.Update(); err != nil {
				if errors.Is(err, render.ErrTerminated) {
					return nil
				}
				return err
			}
			screen.Clear()
			cg.DrawCells(screen)
			screen.Show()
			e.Input.EndFrame()
		}
	}
}

func (e *Engine) layout(game render.Game, screen *Screen) {
	cols, rows := screen.Size()
	game.Layout(cols*e.TileSize, rows*e.TileSize)
}
