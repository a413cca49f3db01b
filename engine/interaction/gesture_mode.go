package interaction

// GestureMode is the modal state of a gesture input device.
type GestureMode int

const (
	// ModeNormal interprets gestures as camera and pointing commands.
	ModeNormal GestureMode = iota

	// ModeMenu interprets pointing as menu navigation.
	ModeMenu
)

func (m GestureMode) String() string {
	switch m {
	case ModeMenu:
		return "menu"
	default:
		return "normal"
	}
}

// GestureEvent drives GestureMode transitions.
type GestureEvent int

const (
	// EventMenuHotspot fires when the pointing finger enters the menu hotspot.
	EventMenuHotspot GestureEvent = iota

	// EventHandsLost fires when the device reports no hands.
	EventHandsLost

	// EventMenuChosen fires when a menu item has been selected.
	EventMenuChosen
)

// Transition returns the mode that follows m after e. Events that do not apply to m leave it unchanged.
func (m GestureMode) Transition(e GestureEvent) GestureMode {
	switch m {
	case ModeNormal:
		if e == EventMenuHotspot {
			return ModeMenu
		}
	case ModeMenu:
		if e == EventHandsLost || e == EventMenuChosen {
			return ModeNormal
		}
	}
	return m
}
