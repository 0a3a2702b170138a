// Package host owns the engine for the lifetime of one run of the scene.
package host

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"chosenoffset.com/desertwalk/internal/config"
	"chosenoffset.com/desertwalk/internal/render"
)

// ErrAlreadyRunning is returned by Run while another Run is in progress.
var ErrAlreadyRunning = errors.New("host: already running")

// Scene is a game with an explicit teardown. game.Manager satisfies it.
type Scene interface {
	render.Game
	Destroy()
}

// Host runs a scene on an engine and releases it when the run ends.
type Host struct {
	Config *config.Config
	Engine render.Engine
	Scene  Scene

	running atomic.Bool
}

// New creates a host.
func New(cfg *config.Config, engine render.Engine, scene Scene) *Host {
	return &Host{Config: cfg, Engine: engine, Scene: scene}
}

// Run configures the window and runs the scene until the engine stops or
// ctx is done. The scene is destroyed exactly once before Run returns.
func (h *Host) Run(ctx context.Context) error {
	if err := h.validate(); err != nil {
		return err
	}
	if !h.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer h.running.Store(false)

	var releaseOnce sync.Once
	release := func() {
		releaseOnce.Do(h.Scene.Destroy)
	}
	defer release()

	win := h.Config.Window
	h.Engine.SetWindowSize(win.Width, win.Height)
	h.Engine.SetWindowTitle(win.Title)
	h.Engine.SetWindowResizable(win.Resizable)

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			log.Printf("Shutting down: %v", context.Cause(ctx))
			release()
		case <-done:
		}
	}()

	log.Printf("Starting %s backend (%dx%d)", h.Config.Backend, win.Width, win.Height)
	if err := h.Engine.RunGame(h.Scene); err != nil && !errors.Is(err, render.ErrTerminated) {
		return fmt.Errorf("engine stopped: %w", err)
	}
	return nil
}

func (h *Host) validate() error {
	if h.Config == nil {
		return errors.New("host: no config")
	}
	if h.Engine == nil {
		return errors.New("host: no engine")
	}
	if h.Scene == nil {
		return errors.New("host: no scene")
	}
	if w, ht := h.Config.Window.Width, h.Config.Window.Height; w <= 0 || ht <= 0 {
		return fmt.Errorf("host: invalid window size: %dx%d", w, ht)
	}
	switch h.Config.Backend {
	case config.BackendEbiten, config.BackendTerminal:
	default:
		return fmt.Errorf("host: unknown backend %q", h.Config.Backend)
	}
	return nil
}
