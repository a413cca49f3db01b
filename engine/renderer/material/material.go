package material

import (
	"github.com/Carmen-Shannon/anatomy-viewer/engine/scene_object"
	"github.com/go-gl/mathgl/mgl32"
)

// DrawColor is the flat color an object is drawn with: diffuse plus emissive, so highlights
// brighten rather than replace the surface, with the object's opacity as alpha.
//
// Parameters:
//   - m: the object's current material
//   - opacity: the object's opacity in [0, 1]
//
// Returns:
//   - mgl32.Vec4: RGBA color
func DrawColor(m scene_object.Material, opacity float32) mgl32.Vec4 {
	return m.Diffuse.Add(m.Emissive).Vec4(opacity)
}

// NewGPUObjectParams packs the uniform for one object draw.
//
// Parameters:
//   - obj: the scene object
//   - world: the object's world matrix, including the registry's shared groups
//
// Returns:
//   - GPUObjectParams: the packed uniform
func NewGPUObjectParams(obj scene_object.SceneObject, world mgl32.Mat4) GPUObjectParams {
	return GPUObjectParams{
		Model: world,
		Color: DrawColor(obj.Material(), obj.Opacity()),
	}
}
