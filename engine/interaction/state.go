package interaction

import (
	"github.com/Carmen-Shannon/anatomy-viewer/common"
	"github.com/go-gl/mathgl/mgl32"
)

// ButtonState is the pressed state of a pointer button or modifier key.
type ButtonState int

const (
	Up ButtonState = iota
	Down
)

// State is the persistent input state shared with listeners.
type State struct {
	Pointer mgl32.Vec2
	Buttons [common.MouseButtonCount]ButtonState
	Shift   ButtonState
}

// IsDown reports whether button is held.
func (s State) IsDown(button common.MouseButton) bool {
	if button < 0 || button >= common.MouseButtonCount {
		return false
	}
	return s.Buttons[button] == Down
}

// ShiftHeld reports whether either shift key is held.
func (s State) ShiftHeld() bool {
	return s.Shift == Down
}
