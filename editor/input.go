package editor

import "github.com/go-gl/mathgl/mgl32"

// Key identifies a keyboard key the editor reacts to.
type Key uint8

const (
	KeyW Key = iota
	KeyA
	KeyS
	KeyD
	KeyQ
	KeyE
	KeyLeftShift
)

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
)

// KeyState selects which transition a query asks about.
type KeyState uint8

const (
	// Press is true on the frame the key went down.
	Press KeyState = iota
	// Release is true on the frame the key went up.
	Release
	// Hold is true while the key is down.
	Hold
)

// Input is the host's polled input for the current frame.
type Input interface {
	Key(k Key, s KeyState) bool
	Mouse(b MouseButton, s KeyState) bool

	// MouseDelta is the cursor movement since the previous frame, in
	// pixels, +Y down.
	MouseDelta() mgl32.Vec2
}

// CursorState is the host cursor mode.
type CursorState uint8

const (
	CursorVisible CursorState = iota
	// CursorDisabled hides and captures the cursor for mouse-look.
	CursorDisabled
)

// Cursor is implemented by inputs that can change the cursor mode.
type Cursor interface {
	SetCursorState(s CursorState)
}

// Snapshot is an Input holding one frame of state. Hosts without their
// own polling layer fill one per frame; tests script it directly.
type Snapshot struct {
	Held     map[Key]bool
	Pressed  map[MouseButton]bool
	Released map[MouseButton]bool
	Buttons  map[MouseButton]bool
	Delta    mgl32.Vec2
	Cursor   CursorState
}

// Key reports held keys. Key transitions are not tracked.
func (s *Snapshot) Key(k Key, st KeyState) bool {
	return st == Hold && s.Held[k]
}

// Mouse reports button transitions and held buttons.
func (s *Snapshot) Mouse(b MouseButton, st KeyState) bool {
	switch st {
	case Press:
		return s.Pressed[b]
	case Release:
		return s.Released[b]
	default:
		return s.Buttons[b]
	}
}

// MouseDelta returns Delta.
func (s *Snapshot) MouseDelta() mgl32.Vec2 { return s.Delta }

// SetCursorState records the requested cursor mode.
func (s *Snapshot) SetCursorState(c CursorState) { s.Cursor = c }

// Next clears the per-frame transitions and mouse delta.
func (s *Snapshot) Next() {
	clear(s.Pressed)
	clear(s.Released)
	s.Delta = mgl32.Vec2{}
}
