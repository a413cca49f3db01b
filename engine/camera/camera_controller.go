package camera

import (
	"github.com/Carmen-Shannon/anatomy-viewer/engine/scene_object"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/viewpoint"
)

// CameraController applies camera commands to the shared transform groups and to every
// view's camera. Rotation and pan are shared by all views; each camera sits on its own
// eye direction at distance zoom * extent.
type CameraController interface {
	// Apply executes one camera command.
	//
	// Rotation is unclamped. Pan is converted from screen space into model space with
	// the inverse of the current rotation before it is added to the translation group.
	// Zoom is subtracted from the zoom factor, clamped, and every camera is re-placed.
	//
	// Parameters:
	//   - cmd: the command to execute
	Apply(cmd Command)

	// Reset restores the rotation group to identity, the translation group to the
	// computed origin and the zoom factor to its default. When a preset is set it is
	// restored verbatim instead.
	Reset()

	// Recompute re-runs the viewpoint calculation over the full object set.
	// An empty set leaves the previous framing untouched.
	//
	// Parameters:
	//   - objects: every object currently in the scene
	//
	// Returns:
	//   - bool: true if the framing changed
	Recompute(objects []scene_object.SceneObject) bool

	// Viewpoint returns a copy of the current framing state.
	//
	// Returns:
	//   - viewpoint.Viewpoint: origin, extent, zoom and preset
	Viewpoint() viewpoint.Viewpoint

	// SetPreset installs or clears the preset used by Reset.
	//
	// Parameters:
	//   - preset: the preset, or nil to return to computed framing
	SetPreset(preset *viewpoint.Preset)

	// Snapshot captures the current rotation, translation and primary camera position.
	//
	// Returns:
	//   - viewpoint.Preset: a preset that reproduces the current view
	Snapshot() viewpoint.Preset

	// Rig returns the views driven by this controller.
	Rig() ViewRig
}
