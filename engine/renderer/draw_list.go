package renderer

import (
	"sort"

	"github.com/Carmen-Shannon/anatomy-viewer/common"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/scene"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/scene_object"
	"github.com/go-gl/mathgl/mgl32"
)

// drawable is one visible object with its world transform for the current frame.
type drawable struct {
	object   scene_object.SceneObject
	world    mgl32.Mat4
	boxMin   mgl32.Vec3
	boxMax   mgl32.Vec3
	center   mgl32.Vec3
	distance float32
}

// collectDrawables walks the registry once per frame and keeps visible objects with geometry.
func collectDrawables(registry scene.Registry) []drawable {
	var out []drawable
	registry.WalkObjects(func(obj scene_object.SceneObject, world mgl32.Mat4) {
		if !obj.Visible() || obj.Mesh().Empty() {
			return
		}
		localMin, localMax := obj.Bounds()
		boxMin, boxMax := worldBounds(localMin, localMax, world)
		out = append(out, drawable{
			object: obj,
			world:  world,
			boxMin: boxMin,
			boxMax: boxMax,
			center: boxMin.Add(boxMax).Mul(0.5),
		})
	})
	return out
}

// cullView splits the drawables inside a view's frustum into opaque ones, in registry order,
// and transparent ones sorted far to near from the eye so blending composes correctly.
//
// Parameters:
//   - all: the frame's drawables
//   - viewProj: the view camera's projection * view matrix
//   - eye: the view camera's position
//
// Returns:
//   - opaque: objects drawn with depth writes
//   - transparent: objects drawn blended after every opaque object
//   - culled: number of drawables outside the frustum
func cullView(all []drawable, viewProj mgl32.Mat4, eye mgl32.Vec3) (opaque, transparent []drawable, culled int) {
	frustum := common.ExtractFrustum(viewProj)
	for _, d := range all {
		if !frustum.IntersectsAABB(d.boxMin, d.boxMax) {
			culled++
			continue
		}
		if d.object.Transparent() {
			d.distance = d.center.Sub(eye).Len()
			transparent = append(transparent, d)
			continue
		}
		opaque = append(opaque, d)
	}
	sort.SliceStable(transparent, func(i, j int) bool {
		return transparent[i].distance > transparent[j].distance
	})
	return opaque, transparent, culled
}

// worldBounds transforms a local box and returns the axis-aligned box around the result.
func worldBounds(localMin, localMax mgl32.Vec3, world mgl32.Mat4) (mgl32.Vec3, mgl32.Vec3) {
	var boxMin, boxMax mgl32.Vec3
	for i := 0; i < 8; i++ {
		corner := mgl32.Vec3{localMin.X(), localMin.Y(), localMin.Z()}
		if i&1 != 0 {
			corner[0] = localMax.X()
		}
		if i&2 != 0 {
			corner[1] = localMax.Y()
		}
		if i&4 != 0 {
			corner[2] = localMax.Z()
		}
		p := common.TransformPoint(world, corner)
		if i == 0 {
			boxMin, boxMax = p, p
			continue
		}
		for axis := 0; axis < 3; axis++ {
			boxMin[axis] = min(boxMin[axis], p[axis])
			boxMax[axis] = max(boxMax[axis], p[axis])
		}
	}
	return boxMin, boxMax
}
