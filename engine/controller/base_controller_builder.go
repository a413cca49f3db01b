package controller

import "github.com/rs/zerolog"

// BaseControllerBuilderOption is a functional option for configuring a BaseController.
type BaseControllerBuilderOption func(*baseController)

// WithSensitivity overrides the input scale factors. Zero fields keep their defaults.
//
// Parameters:
//   - s: the sensitivities
//
// Returns:
//   - BaseControllerBuilderOption: functional option to set the sensitivities
func WithSensitivity(s Sensitivity) BaseControllerBuilderOption {
	return func(b *baseController) {
		if s.Rotate != 0 {
			b.sensitivity.Rotate = s.Rotate
		}
		if s.Pan != 0 {
			b.sensitivity.Pan = s.Pan
		}
		if s.Zoom != 0 {
			b.sensitivity.Zoom = s.Zoom
		}
	}
}

// WithHelpHandler registers a callback invoked whenever help is toggled.
func WithHelpHandler(fn func(visible bool)) BaseControllerBuilderOption {
	return func(b *baseController) {
		b.onHelp = fn
	}
}

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) BaseControllerBuilderOption {
	return func(b *baseController) {
		b.logger = logger
	}
}
