package terminal

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"chosenoffset.com/desertwalk/internal/render"
)

// HoldWindow is how long a key counts as held after its last event.
// Terminals report presses and auto-repeats but never releases, so a held
// key is one that keeps repeating.
const HoldWindow = 300 * time.Millisecond

// InputManager implements render.InputManager from terminal key events.
// Events arrive on the event goroutine and are read on the frame loop.
type InputManager struct {
	mu       sync.Mutex
	lastSeen map[render.Key]time.Time
	fresh    map[render.Key]bool
	hold     time.Duration
	now      func() time.Time
}

// NewInputManager creates an input manager with no keys held.
func NewInputManager() *InputManager {
	return &InputManager{
		lastSeen: make(map[render.Key]time.Time),
		fresh:    make(map[render.Key]bool),
		hold:     HoldWindow,
		now:      time.Now,
	}
}

// Press records a key event. Pressing a direction releases its opposite
// immediately so turning around does not stall.
func (m *InputManager) Press(key render.Key) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if last, ok := m.lastSeen[key]; !ok || now.Sub(last) >= m.hold {
		m.fresh[key] = true
	}
	m.lastSeen[key] = now
	if opp, ok := opposite[key]; ok {
		delete(m.lastSeen, opp)
	}
}

// HandleEvent records a tcell key event. It reports whether the key is one
// the game uses.
func (m *InputManager) HandleEvent(ev *tcell.EventKey) bool {
	key, ok := keyFromEvent(ev)
	if ok {
		m.Press(key)
	}
	return ok
}

// IsKeyPressed reports whether key had an event within the hold window.
func (m *InputManager) IsKeyPressed(key render.Key) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	last, ok := m.lastSeen[key]
	return ok && m.now().Sub(last) < m.hold
}

// IsKeyJustPressed reports whether key went down since the last EndFrame.
func (m *InputManager) IsKeyJustPressed(key render.Key) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fresh[key]
}

// EndFrame clears just-pressed state. The engine calls it after each tick.
func (m *InputManager) EndFrame() {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.fresh)
}

var opposite = map[render.Key]render.Key{
	render.KeyUp:    render.KeyDown,
	render.KeyDown:  render.KeyUp,
	render.KeyLeft:  render.KeyRight,
	render.KeyRight: render.KeyLeft,
}

func keyFromEvent(ev *tcell.EventKey) (render.Key, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return render.KeyUp, true
	case tcell.KeyDown:
		return render.KeyDown, true
	case tcell.KeyLeft:
		return render.KeyLeft, true
	case tcell.KeyRight:
		return render.KeyRight, true
	case tcell.KeyEscape:
		return render.KeyEscape, true
	}
	return 0, false
}
