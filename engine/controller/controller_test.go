package controller

import (
	"testing"

	"github.com/Carmen-Shannon/anatomy-viewer/engine/camera"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/scene"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/scene_object"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/viewpoint"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"
)

type recordingCamera struct {
	applied    []camera.Command
	resets     int
	recomputed int
	rig        camera.ViewRig
}

func (r *recordingCamera) Apply(cmd camera.Command) { r.applied = append(r.applied, cmd) }
func (r *recordingCamera) Reset()                   { r.resets++ }
func (r *recordingCamera) Recompute(objects []scene_object.SceneObject) bool {
	r.recomputed++
	return len(objects) > 0
}
func (r *recordingCamera) Viewpoint() viewpoint.Viewpoint { return viewpoint.Viewpoint{} }
func (r *recordingCamera) SetPreset(*viewpoint.Preset)    {}
func (r *recordingCamera) Snapshot() viewpoint.Preset     { return viewpoint.Preset{} }
func (r *recordingCamera) Rig() camera.ViewRig            { return r.rig }

func newRecordingCamera() *recordingCamera {
	rig := camera.NewViewRig()
	rig.Resize(800, 600)
	return &recordingCamera{rig: rig}
}

func newObject(t *testing.T, id, name, layer string) scene_object.SceneObject {
	t.Helper()
	obj, err := scene_object.New(scene_object.Descriptor{
		ID:       id,
		Name:     name,
		Layer:    layer,
		Material: &scene_object.Material{},
		Min:      mgl32.Vec3{-1, -1, -1},
		Max:      mgl32.Vec3{1, 1, 1},
	})
	require.NoError(t, err)
	return obj
}

func newRegistry(t *testing.T, objects ...scene_object.SceneObject) scene.Registry {
	t.Helper()
	return scene.NewRegistry(scene.WithObjects(objects...))
}
