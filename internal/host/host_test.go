package host

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"chosenoffset.com/desertwalk/internal/config"
	"chosenoffset.com/desertwalk/internal/render"
)

// fakeScene terminates on the first Update after Destroy.
type fakeScene struct {
	destroys atomic.Int32
	updates  atomic.Int32
}

func (s *fakeScene) Update() error {
	s.updates.Add(1)
	if s.destroys.Load() > 0 {
		return render.ErrTerminated
	}
	return nil
}
func (s *fakeScene) Draw(screen render.Image)   {}
func (s *fakeScene) Layout(w, h int) (int, int) { return w, h }
func (s *fakeScene) Destroy()                   { s.destroys.Add(1) }

// fakeEngine ticks the game until it returns an error, then behaves like
// ebiten: ErrTerminated is a clean stop.
type fakeEngine struct {
	width, height int
	title         string
	resizable     bool
	started       chan struct{}
	fail          error
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{started: make(chan struct{}, 1)}
}

func (e *fakeEngine) SetWindowSize(w, h int)    { e.width, e.height = w, h }
func (e *fakeEngine) SetWindowTitle(t string)   { e.title = t }
func (e *fakeEngine) SetWindowResizable(r bool) { e.resizable = r }
func (e *fakeEngine) RunGame(g render.Game) error {
	e.started <- struct{}{}
	if e.fail != nil {
		return e.fail
	}
	for {
		if err := g.Update(); err != nil {
			if errors.Is(err, render.ErrTerminated) {
				return nil
			}
			return err
		}
		time.Sleep(time.Millisecond)
	}
}

func TestRunConfiguresWindowAndStopsOnCancel(t *testing.T) {
	cfg := config.DefaultConfig()
	engine := newFakeEngine()
	scene := &fakeScene{}
	h := New(cfg, engine, scene)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- h.Run(ctx) }()

	<-engine.started
	cancel()

	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Expected clean shutdown, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	if engine.width != cfg.Window.Width || engine.height != cfg.Window.Height {
		t.Errorf("Expected window %dx%d, got %dx%d", cfg.Window.Width, cfg.Window.Height, engine.width, engine.height)
	}
	if engine.title != cfg.Window.Title || engine.resizable != cfg.Window.Resizable {
		t.Errorf("Expected title %q resizable %v, got %q %v", cfg.Window.Title, cfg.Window.Resizable, engine.title, engine.resizable)
	}
	if n := scene.destroys.Load(); n != 1 {
		t.Errorf("Expected scene destroyed once, got %d", n)
	}
}

func TestRunReleasesOnEngineError(t *testing.T) {
	engine := newFakeEngine()
	engine.fail = errors.New("no display")
	scene := &fakeScene{}
	h := New(config.DefaultConfig(), engine, scene)

	err := h.Run(context.Background())
	if !errors.Is(err, engine.fail) {
		t.Errorf("Expected engine error, got %v", err)
	}
	if n := scene.destroys.Load(); n != 1 {
		t.Errorf("Expected scene destroyed once, got %d", n)
	}
}

func TestRunRejectsConcurrentRun(t *testing.T) {
	engine := newFakeEngine()
	scene := &fakeScene{}
	h := New(config.DefaultConfig(), engine, scene)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- h.Run(ctx) }()
	<-engine.started

	if err := h.Run(context.Background()); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("Expected ErrAlreadyRunning, got %v", err)
	}

	cancel()
	if err := <-errCh; err != nil {
		t.Errorf("Expected clean shutdown, got %v", err)
	}
	if n := scene.destroys.Load(); n != 1 {
		t.Errorf("Expected scene destroyed once, got %d", n)
	}
}

func TestRunValidates(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Host)
	}{
		{"zero width", func(h *Host) { h.Config.Window.Width = 0 }},
		{"negative height", func(h *Host) { h.Config.Window.Height = -1 }},
		{"unknown backend", func(h *Host) { h.Config.Backend = "opengl" }},
		{"no engine", func(h *Host) { h.Engine = nil }},
		{"no scene", func(h *Host) { h.Scene = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scene := &fakeScene{}
			h := New(config.DefaultConfig(), newFakeEngine(), scene)
			tt.mutate(h)

			if err := h.Run(context.Background()); err == nil {
				t.Error("Expected validation error")
			}
			if scene.destroys.Load() != 0 {
				t.Error("Expected nothing acquired on validation failure")
			}
		})
	}
}
