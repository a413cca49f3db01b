package renderer

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/anatomy-viewer/common"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/camera"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/light"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/model"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/scene"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/scene_object"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type drawRecord struct {
	pipeline string
	object   string
}

// fakeBackend records what the renderer asks of the GPU.
type fakeBackend struct {
	configured  [][2]int
	viewports   [][4]float32
	draws       []drawRecord
	writes      int
	meshUploads map[string]int
	failMesh    map[string]bool
	beginErr    error
	frames      int
	presented   int
	released    bool
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{meshUploads: map[string]int{}, failMesh: map[string]bool{}}
}

func (f *fakeBackend) ConfigureSurface(w, h int) { f.configured = append(f.configured, [2]int{w, h}) }

func (f *fakeBackend) SetPresentMode(PresentMode) {}

func (f *fakeBackend) SetClearColor(common.Color) {}

func (f *fakeBackend) WriteBuffers(w []bind_group_provider.BufferWrite) { f.writes += len(w) }

func (f *fakeBackend) EndFrame() {}

func (f *fakeBackend) Present() { f.presented++ }

func (f *fakeBackend) Release() { f.released = true }

func (f *fakeBackend) CreateBindGroupLayouts(d []wgpu.BindGroupLayoutDescriptor) ([]*wgpu.BindGroupLayout, error) {
	return make([]*wgpu.BindGroupLayout, len(d)), nil
}

func (f *fakeBackend) RegisterRenderPipeline(p pipeline.Pipeline, layouts []*wgpu.BindGroupLayout) error {
	p.SetRenderPipeline(nil, layouts)
	return nil
}

func (f *fakeBackend) InitMeshBuffers(p bind_group_provider.BindGroupProvider, v, i []byte, n int) error {
	f.meshUploads[p.Label()]++
	if f.failMesh[p.Label()] {
		return errors.New("out of memory")
	}
	p.SetIndexCount(n)
	return nil
}

func (f *fakeBackend) InitBindGroup(bind_group_provider.BindGroupProvider, *wgpu.BindGroupLayout, wgpu.BindGroupLayoutDescriptor) error {
	return nil
}

func (f *fakeBackend) BeginFrame() error {
	if f.beginErr != nil {
		return f.beginErr
	}
	f.frames++
	return nil
}

func (f *fakeBackend) SetViewport(x, y, w, h float32) {
	f.viewports = append(f.viewports, [4]float32{x, y, w, h})
}

func (f *fakeBackend) DrawCall(p pipeline.Pipeline, mesh bind_group_provider.BindGroupProvider, _ []bind_group_provider.BindGroupProvider) {
	f.draws = append(f.draws, drawRecord{pipeline: p.PipelineKey(), object: mesh.Label()})
}

func newTestRenderer(t *testing.T, backend *fakeBackend) *renderer {
	t.Helper()
	r := newRenderer()
	require.NoError(t, r.init(backend, 800, 600))
	return r
}

func boxObject(t *testing.T, id string, position mgl32.Vec3, opts ...scene_object.SceneObjectBuilderOption) scene_object.SceneObject {
	t.Helper()
	opts = append([]scene_object.SceneObjectBuilderOption{
		scene_object.WithMesh(model.NewBoxMesh(mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1})),
		scene_object.WithPosition(position),
	}, opts...)
	obj, err := scene_object.New(scene_object.Descriptor{
		ID:       id,
		Material: &scene_object.Material{Diffuse: common.ColorFromHex(0xcc8866)},
	}, opts...)
	require.NoError(t, err)
	return obj
}

func testRig() camera.ViewRig {
	rig := camera.NewViewRig()
	rig.Resize(800, 600)
	rig.PlaceCameras(10)
	return rig
}

func TestInitRegistersBothPipelines(t *testing.T) {
	backend := newFakeBackend()
	r := newTestRenderer(t, backend)

	assert.NotNil(t, r.Pipeline(PipelineKeyOpaque))
	assert.NotNil(t, r.Pipeline(PipelineKeyTransparent))
	assert.True(t, r.Pipeline(PipelineKeyTransparent).BlendEnabled())
	assert.False(t, r.Pipeline(PipelineKeyTransparent).DepthWriteEnabled())
	assert.Equal(t, [][2]int{{800, 600}}, backend.configured)
}

func TestDrawEachViewWithItsViewport(t *testing.T) {
	backend := newFakeBackend()
	r := newTestRenderer(t, backend)
	registry := scene.NewRegistry(scene.WithObjects(
		boxObject(t, "heart", mgl32.Vec3{}),
		boxObject(t, "liver", mgl32.Vec3{2, 0, 0}),
		boxObject(t, "hidden", mgl32.Vec3{}, scene_object.WithVisible(false)),
		boxObject(t, "far", mgl32.Vec3{0, 0, -100000}),
	))

	require.NoError(t, r.Draw(registry, testRig(), light.NewLight()))

	assert.Equal(t, [][4]float32{
		{0, 0, 400, 300},
		{400, 0, 400, 300},
		{0, 300, 400, 300},
		{400, 300, 400, 300},
	}, backend.viewports)
	assert.Len(t, backend.draws, 8)
	for _, d := range backend.draws {
		assert.Contains(t, []string{"heart", "liver"}, d.object)
		assert.Equal(t, PipelineKeyOpaque, d.pipeline)
	}
	assert.Equal(t, FrameStats{Objects: 3, Draws: 8, Culled: 4}, r.Stats())
	assert.Equal(t, 1, backend.presented)
}

func TestTransparentDrawnAfterOpaque(t *testing.T) {
	backend := newFakeBackend()
	r := newTestRenderer(t, backend)
	registry := scene.NewRegistry(scene.WithObjects(
		boxObject(t, "skin", mgl32.Vec3{}, scene_object.WithOpacity(0.3)),
		boxObject(t, "bone", mgl32.Vec3{}),
	))
	rig := camera.NewViewRig(camera.DefaultViewConfigs()[0])
	rig.Resize(800, 600)
	rig.PlaceCameras(10)

	require.NoError(t, r.Draw(registry, rig, nil))

	assert.Equal(t, []drawRecord{
		{PipelineKeyOpaque, "bone"},
		{PipelineKeyTransparent, "skin"},
	}, backend.draws)
}

func TestRemovedObjectReleasedAndFailedUploadNotRetried(t *testing.T) {
	backend := newFakeBackend()
	backend.failMesh["broken"] = true
	r := newTestRenderer(t, backend)
	registry := scene.NewRegistry(scene.WithObjects(
		boxObject(t, "heart", mgl32.Vec3{}),
		boxObject(t, "broken", mgl32.Vec3{}),
	))
	rig := testRig()

	require.NoError(t, r.Draw(registry, rig, nil))
	require.NoError(t, r.Draw(registry, rig, nil))
	assert.Equal(t, 1, backend.meshUploads["broken"])
	assert.Equal(t, 1, backend.meshUploads["heart"])
	for _, d := range backend.draws {
		assert.NotEqual(t, "broken", d.object)
	}

	require.True(t, registry.Remove("heart"))
	require.NoError(t, r.Draw(registry, rig, nil))
	assert.NotContains(t, r.objects, "heart")
	assert.Contains(t, r.objects, "broken")
}

func TestDrawSkipsFrameWhenSurfaceUnavailable(t *testing.T) {
	backend := newFakeBackend()
	backend.beginErr = errors.New("surface lost")
	r := newTestRenderer(t, backend)
	registry := scene.NewRegistry(scene.WithObjects(boxObject(t, "heart", mgl32.Vec3{})))

	err := r.Draw(registry, testRig(), nil)

	assert.ErrorContains(t, err, "surface lost")
	assert.Empty(t, backend.draws)
	assert.Zero(t, backend.presented)
}

func TestCloseReleasesBackend(t *testing.T) {
	backend := newFakeBackend()
	r := newTestRenderer(t, backend)
	require.NoError(t, r.Draw(scene.NewRegistry(scene.WithObjects(boxObject(t, "heart", mgl32.Vec3{}))), testRig(), nil))

	r.Close()

	assert.True(t, backend.released)
	assert.Empty(t, r.objects)
	assert.Nil(t, r.views)
}
