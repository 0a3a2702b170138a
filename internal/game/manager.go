package game

import (
	"context"
	"fmt"
	"image/color"
	"log"
	"sync"
	"sync/atomic"

	"chosenoffset.com/desertwalk/internal/render"
)

// State is a phase of the scene lifecycle.
type State int

const (
	StateLoading State = iota
	StateRunning
	StateDestroyed
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateRunning:
		return "running"
	case StateDestroyed:
		return "destroyed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Manager drives the scene through loading, running and destroyed, and
// adapts it to the engine's game loop.
type Manager struct {
	ScreenWidth  int
	ScreenHeight int
	Game         Scene
	Renderer     render.Renderer
	Input        render.InputManager

	state       State
	loadStarted bool
	loadDone    chan error
	ctx         context.Context
	cancel      context.CancelFunc

	destroyed   atomic.Bool
	destroyOnce sync.Once
}

// NewManager creates a manager for g. Loading starts on the first Update.
func NewManager(g *Game) *Manager {
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		ScreenWidth:  g.ScreenWidth,
		ScreenHeight: g.ScreenHeight,
		Game:         g,
		Renderer:     g.Renderer,
		Input:        g.InputMgr,
		state:        StateLoading,
		loadDone:     make(chan error, 1),
		ctx:          ctx,
		cancel:       cancel,
	}
}

// State returns the current lifecycle phase.
func (m *Manager) State() State {
	if m.destroyed.Load() {
		return StateDestroyed
	}
	return m.state
}

// Update advances the lifecycle by one tick. Pressing Escape destroys the
// scene in any state.
func (m *Manager) Update() error {
	if m.Input != nil && m.Input.IsKeyJustPressed(render.KeyEscape) {
		m.Destroy()
	}
	if m.destroyed.Load() {
		m.state = StateDestroyed
		return render.ErrTerminated
	}

	switch m.state {
	case StateLoading:
		if !m.loadStarted {
			m.loadStarted = true
			go func() {
				m.loadDone <- m.Game.Load(m.ctx)
			}()
		}
		select {
		case err := <-m.loadDone:
			if m.destroyed.Load() {
				return render.ErrTerminated
			}
			if err != nil {
				return fmt.Errorf("failed to load scene: %w", err)
			}
			if err := m.Game.Init(); err != nil {
				return fmt.Errorf("failed to create scene: %w", err)
			}
			m.state = StateRunning
		default:
		}
	case StateRunning:
		m.Game.Step(1.0 / render.TicksPerSecond)
	}
	return nil
}

// Destroy ends the scene. It cancels a load still in flight, is safe to
// call from any goroutine and more than once. The next Update returns
// render.ErrTerminated.
func (m *Manager) Destroy() {
	m.destroyOnce.Do(func() {
		m.destroyed.Store(true)
		m.cancel()
		log.Printf("Scene destroyed")
	})
}

// Draw draws the current state.
func (m *Manager) Draw(screen render.Image) {
	switch m.State() {
	case StateRunning:
		m.Game.Draw(screen)
	default:
		screen.Fill(color.RGBA{0, 0, 0, 255})
		if m.Renderer != nil {
			m.Renderer.DrawText(screen, "Loading...", 10, 10, color.RGBA{255, 255, 255, 255}, 1)
		}
	}
}

// DrawCells draws the current state onto a character grid.
func (m *Manager) DrawCells(canvas render.CellCanvas) {
	switch m.State() {
	case StateRunning:
		m.Game.DrawCells(canvas)
	default:
		canvas.DrawString(0, 0, "Loading...", color.White, color.Black)
	}
}

// Layout handles window resize. The scene is resized in place.
func (m *Manager) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != m.ScreenWidth || outsideHeight != m.ScreenHeight {
		m.ScreenWidth = outsideWidth
		m.ScreenHeight = outsideHeight
		m.Game.Resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
