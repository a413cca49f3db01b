package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyC     = 67 // C key (ASCII)
	KeyH     = 72 // H key (ASCII)
	KeyR     = 82 // R key (ASCII)
	KeyV     = 86 // V key (ASCII)
	KeySlash = 47 // Slash / question mark key (ASCII)
	KeySpace = 32 // Spacebar (ASCII)
	KeyEsc   = 256
)

// Additional non-printable keys
const (
	KeyLeftShift  = 340 // Left Shift (GLFW)
	KeyRightShift = 344 // Right Shift (GLFW)
)

// IsShift reports whether key is either shift key.
func IsShift(key uint32) bool {
	return key == KeyLeftShift || key == KeyRightShift
}

// MouseButton identifies one of the three tracked pointer buttons.
type MouseButton int

const (
	MouseButtonPrimary MouseButton = iota
	MouseButtonMiddle
	MouseButtonSecondary

	// MouseButtonCount is the number of tracked buttons.
	MouseButtonCount
)

func (b MouseButton) String() string {
	switch b {
	case MouseButtonPrimary:
		return "primary"
	case MouseButtonMiddle:
		return "middle"
	case MouseButtonSecondary:
		return "secondary"
	default:
		return "unknown"
	}
}
