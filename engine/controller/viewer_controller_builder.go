package controller

import (
	"github.com/Carmen-Shannon/anatomy-viewer/engine/scene_object"
	"github.com/rs/zerolog"
)

// ViewerControllerBuilderOption is a functional option for configuring a ViewerController.
// Options may also contribute options for the embedded BaseController.
type ViewerControllerBuilderOption func(*viewerController, []BaseControllerBuilderOption) []BaseControllerBuilderOption

// WithViewerLogger sets the logger for the controller and its embedded BaseController.
func WithViewerLogger(logger zerolog.Logger) ViewerControllerBuilderOption {
	return func(v *viewerController, base []BaseControllerBuilderOption) []BaseControllerBuilderOption {
		v.logger = logger
		return base
	}
}

// WithBaseOptions forwards options to the embedded BaseController.
//
// Parameters:
//   - options: BaseController options such as WithSensitivity
//
// Returns:
//   - ViewerControllerBuilderOption: functional option to forward the options
func WithBaseOptions(options ...BaseControllerBuilderOption) ViewerControllerBuilderOption {
	return func(v *viewerController, base []BaseControllerBuilderOption) []BaseControllerBuilderOption {
		return append(base, options...)
	}
}

// WithSelectionHandler registers a callback invoked after every click pick with the newly
// selected structure, or nil when the click hit nothing.
func WithSelectionHandler(fn func(obj scene_object.SceneObject)) ViewerControllerBuilderOption {
	return func(v *viewerController, base []BaseControllerBuilderOption) []BaseControllerBuilderOption {
		v.onSelect = fn
		return base
	}
}
