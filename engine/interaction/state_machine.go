package interaction

import (
	"sync"

	"github.com/Carmen-Shannon/anatomy-viewer/common"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/picker"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"
)

type stateMachine struct {
	mu          *sync.Mutex
	logger      zerolog.Logger
	state       State
	picker      picker.Picker
	pickOnClick bool
	pickOnHover bool
	listeners   common.Observers[Listener]
}

// StateMachine tracks pointer buttons, the shift key and the pointer position across raw
// input events, runs pick queries on click and hover, and fans events out to listeners.
// Input handlers only update State and notify; they never move the camera directly.
type StateMachine interface {
	// PointerDown marks button as held at (x, y). A primary press runs a pick query when
	// picking on click is enabled and reports it through HandleObjectClicked.
	//
	// Parameters:
	//   - button: the pressed button
	//   - x, y: pointer position in surface pixels
	PointerDown(button common.MouseButton, x, y float32)

	// PointerUp marks button as released.
	//
	// Parameters:
	//   - button: the released button
	//   - x, y: pointer position in surface pixels
	PointerUp(button common.MouseButton, x, y float32)

	// PointerMove records the pointer position. When picking on hover is enabled a pick
	// query runs on every move, regardless of button state.
	//
	// Parameters:
	//   - x, y: pointer position in surface pixels
	PointerMove(x, y float32)

	// PointerLeave releases every button so no drag mode survives the pointer leaving the surface.
	PointerLeave()

	// KeyDown records shift presses and forwards every key to listeners.
	//
	// Parameters:
	//   - key: GLFW key code
	KeyDown(key uint32)

	// KeyUp records shift releases and forwards every key to listeners.
	//
	// Parameters:
	//   - key: GLFW key code
	KeyUp(key uint32)

	// Scroll forwards a wheel delta to listeners.
	//
	// Parameters:
	//   - delta: wheel steps, positive away from the user
	Scroll(delta float32)

	// Highlight reports a pick result produced outside the pointer path, such as a gesture
	// device, as a hover event.
	//
	// Parameters:
	//   - result: the pick result
	Highlight(result picker.PickResult)

	// State returns a copy of the current input state.
	State() State

	// AddListener registers l.
	//
	// Returns:
	//   - bool: false if l was already registered
	AddListener(l Listener) bool

	// RemoveListener unregisters l. Only future notifications stop; a dispatch in
	// progress skips l from that point on.
	//
	// Returns:
	//   - bool: true if l was registered
	RemoveListener(l Listener) bool

	// SetPickOnClick enables or disables picking on primary press.
	SetPickOnClick(enabled bool)

	// SetPickOnHover enables or disables picking on pointer move.
	SetPickOnHover(enabled bool)
}

var _ StateMachine = &stateMachine{}

// NewStateMachine creates a StateMachine with picking on click and hover enabled.
//
// Parameters:
//   - p: the picker used for click and hover queries, or nil to disable picking
//   - options: functional options
//
// Returns:
//   - StateMachine: the state machine
func NewStateMachine(p picker.Picker, options ...StateMachineBuilderOption) StateMachine {
	sm := &stateMachine{
		mu:          &sync.Mutex{},
		logger:      zerolog.Nop(),
		picker:      p,
		pickOnClick: true,
		pickOnHover: true,
	}
	for _, opt := range options {
		opt(sm)
	}
	return sm
}

func (sm *stateMachine) PointerDown(button common.MouseButton, x, y float32) {
	if button < 0 || button >= common.MouseButtonCount {
		return
	}
	sm.mu.Lock()
	sm.state.Pointer = mgl32.Vec2{x, y}
	sm.state.Buttons[button] = Down
	state := sm.state
	pick := button == common.MouseButtonPrimary && sm.pickOnClick && sm.picker != nil
	sm.mu.Unlock()

	sm.listeners.Each(func(l Listener) { l.HandlePointerDown(button, state) })

	if pick {
		result := sm.picker.PickAt(x, y)
		sm.logger.Debug().Bool("hit", result.Hit()).Float32("x", x).Float32("y", y).Msg("click pick")
		sm.listeners.Each(func(l Listener) { l.HandleObjectClicked(result) })
	}
}

func (sm *stateMachine) PointerUp(button common.MouseButton, x, y float32) {
	if button < 0 || button >= common.MouseButtonCount {
		return
	}
	sm.mu.Lock()
	sm.state.Pointer = mgl32.Vec2{x, y}
	sm.state.Buttons[button] = Up
	state := sm.state
	sm.mu.Unlock()

	sm.listeners.Each(func(l Listener) { l.HandlePointerUp(button, state) })
}

func (sm *stateMachine) PointerMove(x, y float32) {
	sm.mu.Lock()
	sm.state.Pointer = mgl32.Vec2{x, y}
	state := sm.state
	pick := sm.pickOnHover && sm.picker != nil
	sm.mu.Unlock()

	sm.listeners.Each(func(l Listener) { l.HandlePointerMove(state) })

	if pick {
		result := sm.picker.PickAt(x, y)
		sm.listeners.Each(func(l Listener) { l.HandleObjectHovered(result) })
	}
}

func (sm *stateMachine) PointerLeave() {
	sm.mu.Lock()
	for i := range sm.state.Buttons {
		sm.state.Buttons[i] = Up
	}
	state := sm.state
	sm.mu.Unlock()

	sm.listeners.Each(func(l Listener) { l.HandlePointerLeave(state) })
}

func (sm *stateMachine) KeyDown(key uint32) {
	sm.mu.Lock()
	if common.IsShift(key) {
		sm.state.Shift = Down
	}
	state := sm.state
	sm.mu.Unlock()

	sm.listeners.Each(func(l Listener) { l.HandleKeyDown(key, state) })
}

func (sm *stateMachine) KeyUp(key uint32) {
	sm.mu.Lock()
	if common.IsShift(key) {
		sm.state.Shift = Up
	}
	state := sm.state
	sm.mu.Unlock()

	sm.listeners.Each(func(l Listener) { l.HandleKeyUp(key, state) })
}

func (sm *stateMachine) Scroll(delta float32) {
	state := sm.State()
	sm.listeners.Each(func(l Listener) { l.HandleScroll(delta, state) })
}

func (sm *stateMachine) Highlight(result picker.PickResult) {
	sm.listeners.Each(func(l Listener) { l.HandleObjectHovered(result) })
}

func (sm *stateMachine) State() State {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.state
}

func (sm *stateMachine) AddListener(l Listener) bool {
	return sm.listeners.Add(l)
}

func (sm *stateMachine) RemoveListener(l Listener) bool {
	return sm.listeners.Remove(l)
}

func (sm *stateMachine) SetPickOnClick(enabled bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.pickOnClick = enabled
}

func (sm *stateMachine) SetPickOnHover(enabled bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.pickOnHover = enabled
}
