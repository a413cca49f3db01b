package interaction

import (
	"github.com/Carmen-Shannon/anatomy-viewer/common"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/picker"
)

// Listener receives interaction events after the state machine has updated State.
// Embed NopListener to implement only the callbacks of interest.
type Listener interface {
	HandleKeyDown(key uint32, state State)
	HandleKeyUp(key uint32, state State)
	HandlePointerDown(button common.MouseButton, state State)
	HandlePointerUp(button common.MouseButton, state State)
	HandlePointerMove(state State)
	HandlePointerLeave(state State)
	HandleScroll(delta float32, state State)

	// HandleObjectClicked receives the pick result of a primary-button press. The result
	// is empty when nothing was under the pointer.
	HandleObjectClicked(result picker.PickResult)

	// HandleObjectHovered receives the pick result of a pointer move.
	HandleObjectHovered(result picker.PickResult)
}

// NopListener implements every Listener callback as a no-op.
type NopListener struct{}

var _ Listener = NopListener{}

func (NopListener) HandleKeyDown(uint32, State)                 {}
func (NopListener) HandleKeyUp(uint32, State)                   {}
func (NopListener) HandlePointerDown(common.MouseButton, State) {}
func (NopListener) HandlePointerUp(common.MouseButton, State)   {}
func (NopListener) HandlePointerMove(State)                     {}
func (NopListener) HandlePointerLeave(State)                    {}
func (NopListener) HandleScroll(float32, State)                 {}
func (NopListener) HandleObjectClicked(picker.PickResult)       {}
func (NopListener) HandleObjectHovered(picker.PickResult)       {}
