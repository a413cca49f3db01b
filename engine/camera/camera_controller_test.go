package camera

import (
	"testing"

	"github.com/Carmen-Shannon/anatomy-viewer/engine/scene"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/scene_object"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/viewpoint"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newController(t *testing.T, options ...CameraControllerOption) (CameraController, scene.Registry) {
	t.Helper()
	reg := scene.NewRegistry()
	rig := NewViewRig()
	rig.Resize(800, 600)
	return NewCameraController(reg, rig, options...), reg
}

func addBox(t *testing.T, reg scene.Registry, id string, centroid mgl32.Vec3, half float32) {
	t.Helper()
	h := mgl32.Vec3{half, half, half}
	obj, err := scene_object.New(scene_object.Descriptor{
		ID:       id,
		Material: &scene_object.Material{},
		Centroid: centroid,
		Min:      centroid.Sub(h),
		Max:      centroid.Add(h),
	})
	require.NoError(t, err)
	reg.Add(obj)
}

func assertCamerasOnEyeDirections(t *testing.T, rig ViewRig, distance float32) {
	t.Helper()
	for _, v := range rig.Views() {
		want := v.DefaultEye.Mul(distance)
		assert.True(t, v.Camera.Position().ApproxEqualThreshold(want, 1e-4), "%s: got %v want %v", v.Name, v.Camera.Position(), want)
	}
}

func TestApplyRotateIsUnclamped(t *testing.T) {
	cc, reg := newController(t)

	cc.Apply(Command{Rotate: mgl32.Vec2{0.5, -0.25}})
	cc.Apply(Command{Rotate: mgl32.Vec2{4, 4}})

	rot := reg.RotationGroup().Rotation()
	assert.InDelta(t, 4.5, rot.Y(), 1e-6, "yaw accumulates rotate.x")
	assert.InDelta(t, 3.75, rot.X(), 1e-6, "pitch accumulates rotate.y")
	assert.Zero(t, rot.Z())
}

func TestApplyPanRoundTrip(t *testing.T) {
	rotations := []mgl32.Vec3{
		{0, 0, 0},
		{0.3, 1.2, 0},
		{-2.1, 0.7, 0},
		{3.14, -3.14, 0},
	}

	for _, r := range rotations {
		cc, reg := newController(t)
		addBox(t, reg, "a", mgl32.Vec3{}, 3)
		require.True(t, cc.Recompute(reg.Objects()))
		reg.RotationGroup().SetRotation(r)
		reg.TranslationGroup().SetPosition(mgl32.Vec3{1, 2, 3})

		cc.Apply(Command{Pan: mgl32.Vec2{0.02, -0.05}})
		assert.False(t, reg.TranslationGroup().Position().ApproxEqualThreshold(mgl32.Vec3{1, 2, 3}, 1e-6))
		cc.Apply(Command{Pan: mgl32.Vec2{-0.02, 0.05}})

		got := reg.TranslationGroup().Position()
		assert.True(t, got.ApproxEqualThreshold(mgl32.Vec3{1, 2, 3}, 1e-5), "rotation %v: got %v", r, got)
	}
}

func TestApplyPanMovesAlongScreenAxes(t *testing.T) {
	cc, reg := newController(t)
	addBox(t, reg, "a", mgl32.Vec3{}, 2)
	cc.Recompute(reg.Objects())
	reg.RotationGroup().SetRotation(mgl32.Vec3{0, mgl32.DegToRad(90), 0})

	cc.Apply(Command{Pan: mgl32.Vec2{0.5, 0}})

	// In world space the model must move along +X by pan.x * extent regardless of rotation.
	world := reg.RotationGroup().LocalMatrix().Mul4x1(reg.TranslationGroup().Position().Vec4(1)).Vec3()
	assert.True(t, world.ApproxEqualThreshold(mgl32.Vec3{1, 0, 0}, 1e-5), "got %v", world)
}

func TestApplyZoomClampsAndPlacesCameras(t *testing.T) {
	cc, reg := newController(t)
	addBox(t, reg, "a", mgl32.Vec3{}, 5)
	require.True(t, cc.Recompute(reg.Objects()))
	cc.Reset()
	assertCamerasOnEyeDirections(t, cc.Rig(), 10)

	cc.Apply(Command{Zoom: 0.5})
	assert.InDelta(t, 1.5, cc.Viewpoint().Zoom, 1e-6)
	assertCamerasOnEyeDirections(t, cc.Rig(), 7.5)

	cc.Apply(Command{Zoom: 100})
	assert.Equal(t, viewpoint.DefaultZoomMin, cc.Viewpoint().Zoom)
	cc.Apply(Command{Zoom: 100})
	assert.Equal(t, viewpoint.DefaultZoomMin, cc.Viewpoint().Zoom)

	cc.Apply(Command{Zoom: -100})
	assert.Equal(t, viewpoint.DefaultZoomMax, cc.Viewpoint().Zoom)
	assertCamerasOnEyeDirections(t, cc.Rig(), 50)
}

func TestResetRestoresComputedFraming(t *testing.T) {
	cc, reg := newController(t)
	addBox(t, reg, "a", mgl32.Vec3{4, 0, 0}, 1)
	addBox(t, reg, "b", mgl32.Vec3{6, 0, 0}, 1)
	require.True(t, cc.Recompute(reg.Objects()))

	cc.Apply(Command{Rotate: mgl32.Vec2{1, 1}, Pan: mgl32.Vec2{1, 1}, Zoom: 1})
	cc.Reset()

	assert.Equal(t, mgl32.Vec3{}, reg.RotationGroup().Rotation())
	assert.Equal(t, mgl32.Vec3{-5, 0, 0}, reg.TranslationGroup().Position())
	assert.Equal(t, viewpoint.DefaultZoomDefault, cc.Viewpoint().Zoom)
	assertCamerasOnEyeDirections(t, cc.Rig(), 2*2)
}

func TestResetUsesPresetVerbatim(t *testing.T) {
	preset := &viewpoint.Preset{
		Rotation:    mgl32.Vec3{0.1, 0.2, 0.3},
		Translation: mgl32.Vec3{-1, -2, -3},
		CameraPos:   mgl32.Vec3{0, 3, 4},
	}
	cc, reg := newController(t, WithPreset(preset))
	addBox(t, reg, "a", mgl32.Vec3{}, 1)
	cc.Recompute(reg.Objects())

	cc.Apply(Command{Rotate: mgl32.Vec2{1, 1}})
	cc.Reset()

	assert.Equal(t, preset.Rotation, reg.RotationGroup().Rotation())
	assert.Equal(t, preset.Translation, reg.TranslationGroup().Position())
	assert.Equal(t, preset.CameraPos, cc.Rig().View(0).Camera.Position())
	assert.InDelta(t, 5, cc.Rig().View(1).Camera.Position().Len(), 1e-5)

	snap := cc.Snapshot()
	assert.Equal(t, *preset, snap)

	cc.SetPreset(nil)
	cc.Reset()
	assert.Equal(t, mgl32.Vec3{}, reg.RotationGroup().Rotation())
}

func TestRecomputeEmptyKeepsFraming(t *testing.T) {
	cc, reg := newController(t)
	addBox(t, reg, "a", mgl32.Vec3{1, 1, 1}, 4)
	require.True(t, cc.Recompute(reg.Objects()))
	before := cc.Viewpoint()

	assert.False(t, cc.Recompute(nil))
	assert.Equal(t, before, cc.Viewpoint())
}

func TestZeroCommandIsIgnored(t *testing.T) {
	cc, reg := newController(t)
	cc.Apply(Command{})
	assert.Equal(t, mgl32.Vec3{}, reg.RotationGroup().Rotation())
	assert.True(t, Command{}.IsZero())
	assert.False(t, Command{}.Add(Command{Zoom: 1}).IsZero())
}
