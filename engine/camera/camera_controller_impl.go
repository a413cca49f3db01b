package camera

import (
	"sync"

	"github.com/Carmen-Shannon/anatomy-viewer/common"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/scene"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/scene_object"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/viewpoint"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"
)

type cameraControllerImpl struct {
	mu          *sync.Mutex
	logger      zerolog.Logger
	registry    scene.Registry
	rig         ViewRig
	vp          *viewpoint.Viewpoint
	primaryView int
}

var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a controller over the registry's transform groups and the rig's views.
// Cameras are placed at the default zoom immediately.
//
// Parameters:
//   - registry: owner of the rotation and translation groups
//   - rig: the views whose cameras are moved
//   - options: functional options
//
// Returns:
//   - CameraController: the controller
func NewCameraController(registry scene.Registry, rig ViewRig, options ...CameraControllerOption) CameraController {
	if registry == nil || rig == nil {
		panic("camera: NewCameraController requires a Registry and a ViewRig")
	}
	cc := &cameraControllerImpl{
		mu:       &sync.Mutex{},
		logger:   zerolog.Nop(),
		registry: registry,
		rig:      rig,
		vp:       viewpoint.New(viewpoint.DefaultLimits()),
	}
	for _, opt := range options {
		opt(cc)
	}
	cc.rig.PlaceCameras(cc.vp.Distance())
	return cc
}

func (cc *cameraControllerImpl) Apply(cmd Command) {
	if cmd.IsZero() {
		return
	}
	cc.mu.Lock()
	defer cc.mu.Unlock()

	rotation := cc.registry.RotationGroup()
	if cmd.Rotate.X() != 0 || cmd.Rotate.Y() != 0 {
		rotation.Rotate(mgl32.Vec3{cmd.Rotate.Y(), cmd.Rotate.X(), 0})
	}

	if cmd.Pan.X() != 0 || cmd.Pan.Y() != 0 {
		screen := mgl32.Vec3{cmd.Pan.X() * cc.vp.Extent, cmd.Pan.Y() * cc.vp.Extent, 0}
		cc.registry.TranslationGroup().Translate(common.TransformDirection(rotation.InverseRotation(), screen))
	}

	if cmd.Zoom != 0 {
		cc.vp.ApplyZoomDelta(cmd.Zoom)
		cc.rig.PlaceCameras(cc.vp.Distance())
	}
}

func (cc *cameraControllerImpl) Reset() {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	rotation := cc.registry.RotationGroup()
	translation := cc.registry.TranslationGroup()

	if p := cc.vp.Preset; p != nil {
		rotation.SetRotation(p.Rotation)
		translation.SetPosition(p.Translation)
		cc.rig.PlaceFromPosition(cc.primaryView, p.CameraPos)
		// Keep later zoom steps continuous with the preset distance.
		cc.vp.Zoom = common.Clamp(p.CameraPos.Len()/cc.vp.Extent, cc.vp.Limits.Min, cc.vp.Limits.Max)
		cc.logger.Debug().Interface("preset", p).Msg("viewpoint reset from preset")
		return
	}

	rotation.SetRotation(mgl32.Vec3{})
	translation.SetPosition(cc.vp.Origin)
	cc.vp.ResetZoom()
	cc.rig.PlaceCameras(cc.vp.Distance())
	cc.logger.Debug().
		Float32("extent", cc.vp.Extent).
		Float32("zoom", cc.vp.Zoom).
		Msg("viewpoint reset")
}

func (cc *cameraControllerImpl) Recompute(objects []scene_object.SceneObject) bool {
	result, ok := viewpoint.Compute(viewpoint.BoundsOf(objects))
	if !ok {
		return false
	}

	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.vp.Update(result)
	cc.logger.Info().
		Int("objects", len(objects)).
		Float32("extent", result.Extent).
		Msg("viewpoint computed")
	return true
}

func (cc *cameraControllerImpl) Viewpoint() viewpoint.Viewpoint {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return *cc.vp
}

func (cc *cameraControllerImpl) SetPreset(preset *viewpoint.Preset) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.vp.Preset = preset
}

func (cc *cameraControllerImpl) Snapshot() viewpoint.Preset {
	p := viewpoint.Preset{
		Rotation:    cc.registry.RotationGroup().Rotation(),
		Translation: cc.registry.TranslationGroup().Position(),
	}
	if v := cc.rig.View(cc.primaryView); v != nil {
		p.CameraPos = v.Camera.Position()
	}
	return p
}

func (cc *cameraControllerImpl) Rig() ViewRig {
	return cc.rig
}
