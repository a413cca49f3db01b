package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/Carmen-Shannon/anatomy-viewer/engine/scene"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/scene_object"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLoadListener struct {
	NopLoadListener
	events []string
}

func (r *recordingLoadListener) LoadStarted(loaders, objects int) {
	r.events = append(r.events, fmt.Sprintf("started %d %d", loaders, objects))
}
func (r *recordingLoadListener) ObjectLoadStarted(id int, d scene_object.Descriptor) {
	r.events = append(r.events, "object started "+d.ID)
}
func (r *recordingLoadListener) ObjectLoadProgress(id int, loaded, total int) {
	r.events = append(r.events, "progress")
}
func (r *recordingLoadListener) ObjectLoadFinished(id int, d scene_object.Descriptor) {
	r.events = append(r.events, "object finished "+d.ID)
}
func (r *recordingLoadListener) ObjectLoadFailed(id int, d scene_object.Descriptor, err error) {
	r.events = append(r.events, "object failed "+d.ID)
}
func (r *recordingLoadListener) LoadFinished() {
	r.events = append(r.events, "finished")
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func descriptor(id string) scene_object.Descriptor {
	return scene_object.Descriptor{
		ID:       id,
		Name:     id,
		Material: &scene_object.Material{},
		Centroid: mgl32.Vec3{},
		Min:      mgl32.Vec3{-1, -1, -1},
		Max:      mgl32.Vec3{1, 1, 1},
	}
}

func newContentLoader(t *testing.T, options ...SceneContentLoaderBuilderOption) (SceneContentLoader, scene.Registry, *recordingLoadListener) {
	t.Helper()
	reg := scene.NewRegistry()
	rec := &recordingLoadListener{}
	l := NewSceneContentLoader(reg, NewLoader(BackendTypeGLTF), append([]SceneContentLoaderBuilderOption{WithListeners(rec)}, options...)...)
	t.Cleanup(l.Close)
	return l, reg, rec
}

// drain polls until the loader is idle.
func drain(t *testing.T, l SceneContentLoader) {
	t.Helper()
	require.Eventually(t, func() bool { return !l.Poll() }, 2*time.Second, time.Millisecond)
}

func TestLoadBatchNotifiesInOrder(t *testing.T) {
	l, reg, rec := newContentLoader(t, WithWorkers(1))

	require.NoError(t, l.Load([]scene_object.Descriptor{descriptor("a"), descriptor("b")}))
	drain(t, l)

	assert.Equal(t, 2, reg.Count())
	require.Len(t, rec.events, 8)
	assert.Equal(t, "started 2 2", rec.events[0])
	assert.ElementsMatch(t, []string{"object started a", "object started b"}, rec.events[1:3])
	assert.Equal(t, "finished", rec.events[7])
	assert.False(t, reg.Get("a").Mesh().Empty(), "descriptors without a mesh get a box")
}

func TestLoadSkipsExistingIDs(t *testing.T) {
	l, reg, rec := newContentLoader(t)

	require.NoError(t, l.Load([]scene_object.Descriptor{descriptor("a"), descriptor("a")}))
	drain(t, l)
	require.Equal(t, 1, reg.Count())

	rec.events = nil
	require.NoError(t, l.Load([]scene_object.Descriptor{descriptor("a")}))
	drain(t, l)

	assert.Equal(t, 1, reg.Count())
	assert.Equal(t, []string{"started 0 0", "finished"}, rec.events)
}

func TestLoadDuringActiveBatchIsDeferred(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	l, reg, rec := newContentLoader(t, WithClock(clock.Now))

	require.NoError(t, l.Load([]scene_object.Descriptor{descriptor("a")}))
	require.NoError(t, l.Load([]scene_object.Descriptor{descriptor("a"), descriptor("b")}))
	assert.True(t, l.Busy())

	require.Eventually(t, func() bool {
		l.Poll()
		return reg.Has("a")
	}, 2*time.Second, time.Millisecond)
	l.Poll()
	assert.False(t, reg.Has("b"), "deferred request waits for the retry interval")
	assert.True(t, l.Busy())

	clock.Advance(DefaultRetryInterval)
	drain(t, l)

	assert.Equal(t, 2, reg.Count())
	assert.Equal(t, "started 1 1", rec.events[0])
	finished := 0
	for _, e := range rec.events {
		if e == "finished" {
			finished++
		}
	}
	assert.Equal(t, 2, finished, "each batch finishes separately")
}

func TestLoadRejectsMissingID(t *testing.T) {
	l, reg, rec := newContentLoader(t)

	err := l.Load([]scene_object.Descriptor{descriptor("a"), {Material: &scene_object.Material{}}})

	assert.ErrorIs(t, err, ErrMissingDescriptorID)
	assert.False(t, l.Poll())
	assert.Zero(t, reg.Count())
	assert.Empty(t, rec.events)
}

func TestLoadReportsPerObjectFailures(t *testing.T) {
	l, reg, rec := newContentLoader(t)

	broken := descriptor("broken")
	broken.MeshPath = filepath.Join(t.TempDir(), "missing.glb")
	noMaterial := descriptor("plain")
	noMaterial.Material = nil

	require.NoError(t, l.Load([]scene_object.Descriptor{broken, noMaterial, descriptor("ok")}))
	drain(t, l)

	assert.Equal(t, 1, reg.Count())
	assert.Contains(t, rec.events, "object failed broken")
	assert.Contains(t, rec.events, "object failed plain")
	assert.Contains(t, rec.events, "object finished ok")
	assert.Equal(t, "finished", rec.events[len(rec.events)-1])
}

func TestLoadTakesBoundsFromMeshFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tri.gltf")
	require.NoError(t, os.WriteFile(path, gltfBytes(t, [3]float32{4, 0, 0}), 0o644))
	l, reg, _ := newContentLoader(t)

	d := descriptor("tri")
	d.Min, d.Max = mgl32.Vec3{}, mgl32.Vec3{}
	d.MeshPath = path
	require.NoError(t, l.Load([]scene_object.Descriptor{d}))
	drain(t, l)

	obj := reg.Get("tri")
	require.NotNil(t, obj)
	assert.Equal(t, mgl32.Vec3{4, 0, 0}, obj.Descriptor().Min)
	assert.Equal(t, mgl32.Vec3{5, 2, 0}, obj.Descriptor().Max)
}

func TestRemovedListenerStopsReceiving(t *testing.T) {
	l, _, rec := newContentLoader(t)

	require.NoError(t, l.Load([]scene_object.Descriptor{descriptor("a")}))
	assert.True(t, l.RemoveListener(rec))
	drain(t, l)

	assert.Empty(t, rec.events)
	assert.False(t, l.RemoveListener(rec))
}

func TestReplaceSceneObjectsIsDeprecated(t *testing.T) {
	l, _, _ := newContentLoader(t)

	assert.ErrorIs(t, l.ReplaceSceneObjects(nil), ErrDeprecated)
}
