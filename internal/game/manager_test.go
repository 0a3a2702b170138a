package game

import (
	"context"
	"errors"
	"image"
	"testing"
	"time"

	"chosenoffset.com/desertwalk/internal/config"
	"chosenoffset.com/desertwalk/internal/render"
	"chosenoffset.com/desertwalk/internal/render/rendertest"
)

// blockingAssets never finishes a fetch until its context is cancelled.
type blockingAssets struct {
	started   chan struct{}
	cancelled chan struct{}
}

func newBlockingAssets() *blockingAssets {
	return &blockingAssets{
		started:   make(chan struct{}, 2),
		cancelled: make(chan struct{}, 2),
	}
}

func (b *blockingAssets) FetchImage(ctx context.Context, location string) (image.Image, error) {
	b.started <- struct{}{}
	<-ctx.Done()
	b.cancelled <- struct{}{}
	return nil, ctx.Err()
}

func runUntil(t *testing.T, m *Manager, want State) error {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if err := m.Update(); err != nil {
			return err
		}
		if m.State() == want {
			return nil
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("Timed out waiting for state %v, still %v", want, m.State())
	return nil
}

func TestManagerLoadsThenRuns(t *testing.T) {
	g, in, _ := newTestGame(t)
	m := NewManager(g)

	if m.State() != StateLoading {
		t.Errorf("Expected initial state loading, got %v", m.State())
	}
	if err := runUntil(t, m, StateRunning); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	in.Set(true, render.KeyDown)
	if err := m.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if _, y := g.Player.Position(); y <= 800 {
		t.Errorf("Expected player to move down while running, got y %v", y)
	}
}

func TestManagerLoadError(t *testing.T) {
	cfg := config.DefaultConfig()
	offline := errors.New("offline")
	g := New(cfg, &rendertest.Renderer{}, rendertest.NewInput(), rendertest.Loader{}, stubAssets{fail: offline})
	m := NewManager(g)

	err := runUntil(t, m, StateRunning)
	if !errors.Is(err, offline) {
		t.Errorf("Expected load error wrapping %v, got %v", offline, err)
	}
}

func TestManagerDestroyDuringLoad(t *testing.T) {
	cfg := config.DefaultConfig()
	assets := newBlockingAssets()
	g := New(cfg, &rendertest.Renderer{}, rendertest.NewInput(), rendertest.Loader{}, assets)
	m := NewManager(g)

	if err := m.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	select {
	case <-assets.started:
	case <-time.After(2 * time.Second):
		t.Fatal("Expected load to start on first update")
	}

	m.Destroy()

	select {
	case <-assets.cancelled:
	case <-time.After(2 * time.Second):
		t.Fatal("Expected in-flight fetch to be cancelled")
	}
	if err := m.Update(); !errors.Is(err, render.ErrTerminated) {
		t.Errorf("Expected ErrTerminated after destroy, got %v", err)
	}
	if m.State() != StateDestroyed {
		t.Errorf("Expected destroyed state, got %v", m.State())
	}
	if g.Player != nil {
		t.Error("Expected scene not to be initialized after destroy")
	}

	// Second destroy is a no-op
	m.Destroy()
}

func TestManagerDestroyWhileRunning(t *testing.T) {
	g, _, _ := newTestGame(t)
	m := NewManager(g)
	if err := runUntil(t, m, StateRunning); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	m.Destroy()
	if err := m.Update(); !errors.Is(err, render.ErrTerminated) {
		t.Errorf("Expected ErrTerminated, got %v", err)
	}
}

func TestManagerDrawWhileLoading(t *testing.T) {
	g, _, r := newTestGame(t)
	m := NewManager(g)

	m.Draw(rendertest.NewImage(800, 600))
	if len(r.Texts) != 1 || r.Texts[0] != "Loading..." {
		t.Errorf("Expected loading text, got %q", r.Texts)
	}

	canvas := rendertest.NewCanvas(20, 5)
	m.DrawCells(canvas)
	if got := canvas.Line(0); got[:10] != "Loading..." {
		t.Errorf("Expected loading text on first row, got %q", got)
	}
}

func TestManagerLayoutResizesInPlace(t *testing.T) {
	g, _, _ := newTestGame(t)
	m := NewManager(g)
	if err := runUntil(t, m, StateRunning); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	cam := g.Camera

	w, h := m.Layout(1024, 768)

	if w != 1024 || h != 768 {
		t.Errorf("Expected layout 1024x768, got %dx%d", w, h)
	}
	if m.Game != g || g.Camera != cam {
		t.Error("Expected scene and camera to survive resize")
	}
	if m.ScreenWidth != 1024 || cam.ViewWidth != 1024 || cam.ViewHeight != 768 {
		t.Errorf("Expected view 1024x768, got %dx%d", cam.ViewWidth, cam.ViewHeight)
	}
}

func TestManagerEscapeQuitsWhileRunning(t *testing.T) {
	g, in, _ := newTestGame(t)
	m := NewManager(g)
	if err := runUntil(t, m, StateRunning); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	in.Tap(render.KeyEscape)
	if err := m.Update(); !errors.Is(err, render.ErrTerminated) {
		t.Errorf("Expected ErrTerminated after Escape, got %v", err)
	}
	if m.State() != StateDestroyed {
		t.Errorf("Expected destroyed state, got %v", m.State())
	}
}

func TestManagerEscapeCancelsLoad(t *testing.T) {
	cfg := config.DefaultConfig()
	assets := newBlockingAssets()
	in := rendertest.NewInput()
	g := New(cfg, &rendertest.Renderer{}, in, rendertest.Loader{}, assets)
	m := NewManager(g)

	if err := m.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	<-assets.started

	in.Tap(render.KeyEscape)
	if err := m.Update(); !errors.Is(err, render.ErrTerminated) {
		t.Errorf("Expected ErrTerminated after Escape, got %v", err)
	}
	select {
	case <-assets.cancelled:
	case <-time.After(2 * time.Second):
		t.Fatal("Expected in-flight fetch to be cancelled")
	}
}

func TestManagerHeldEscapeDoesNotQuit(t *testing.T) {
	g, in, _ := newTestGame(t)
	m := NewManager(g)
	if err := runUntil(t, m, StateRunning); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	in.Set(true, render.KeyEscape)
	if err := m.Update(); err != nil {
		t.Errorf("Expected held key without a fresh press to be ignored, got %v", err)
	}
}
