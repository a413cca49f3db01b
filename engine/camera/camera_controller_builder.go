package camera

import (
	"github.com/Carmen-Shannon/anatomy-viewer/engine/viewpoint"
	"github.com/rs/zerolog"
)

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithZoomLimits sets the zoom factor bounds and reset value.
//
// Parameters:
//   - limits: zoom bounds; zero fields fall back to the defaults
//
// Returns:
//   - CameraControllerOption: functional option to set the limits
func WithZoomLimits(limits viewpoint.Limits) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		preset := cc.vp.Preset
		cc.vp = viewpoint.New(limits)
		cc.vp.Preset = preset
	}
}

// WithPreset installs a preset that Reset restores instead of computed framing.
//
// Parameters:
//   - preset: the preset viewpoint
//
// Returns:
//   - CameraControllerOption: functional option to set the preset
func WithPreset(preset *viewpoint.Preset) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.vp.Preset = preset
	}
}

// WithPrimaryView selects the view whose camera position is captured by Snapshot and
// restored verbatim from a preset.
//
// Parameters:
//   - index: view index in the rig
//
// Returns:
//   - CameraControllerOption: functional option to set the primary view
func WithPrimaryView(index int) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.primaryView = index
	}
}

// WithLogger sets the logger used for viewpoint events.
func WithLogger(logger zerolog.Logger) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.logger = logger.With().Str("component", "camera").Logger()
	}
}
