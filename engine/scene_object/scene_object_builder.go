package scene_object

import (
	"github.com/Carmen-Shannon/anatomy-viewer/common"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

// SceneObjectBuilderOption is a functional option for configuring a SceneObject during construction.
type SceneObjectBuilderOption func(*sceneObject)

// WithMesh attaches geometry to the SceneObject.
//
// Parameters:
//   - mesh: local-space geometry
//
// Returns:
//   - SceneObjectBuilderOption: functional option to set the mesh
func WithMesh(mesh *model.Mesh) SceneObjectBuilderOption {
	return func(o *sceneObject) {
		o.mesh = mesh
	}
}

// WithPosition sets the initial local translation.
//
// Parameters:
//   - position: translation relative to the parent group
//
// Returns:
//   - SceneObjectBuilderOption: functional option to set the position
func WithPosition(position mgl32.Vec3) SceneObjectBuilderOption {
	return func(o *sceneObject) {
		o.position = position
	}
}

// WithScale sets the initial local scale.
func WithScale(scale mgl32.Vec3) SceneObjectBuilderOption {
	return func(o *sceneObject) {
		o.scale = scale
	}
}

// WithVisible sets the initial visibility.
func WithVisible(visible bool) SceneObjectBuilderOption {
	return func(o *sceneObject) {
		o.visible.Store(visible)
	}
}

// WithOpacity sets the initial opacity.
func WithOpacity(opacity float32) SceneObjectBuilderOption {
	return func(o *sceneObject) {
		o.opacity = common.Clamp(opacity, 0, 1)
	}
}
