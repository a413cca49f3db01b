package loader

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Carmen-Shannon/anatomy-viewer/common"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/model"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/scene"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/scene_object"
	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/rs/zerolog"
)

var (
	// ErrDeprecated is returned by retired operations.
	ErrDeprecated = errors.New("deprecated operation")

	// ErrMissingDescriptorID rejects a load request containing a descriptor without an id.
	ErrMissingDescriptorID = errors.New("cannot add scene object with descriptor missing id")
)

// DefaultRetryInterval is how long a request made during an active batch waits before it
// is retried.
const DefaultRetryInterval = 200 * time.Millisecond

type loadEvent func(l LoadListener)

type decoded struct {
	loaderID int
	desc     scene_object.Descriptor
	mesh     *model.Mesh
	size     int
	err      error
}

type deferredRequest struct {
	descriptors []scene_object.Descriptor
	readyAt     time.Time
}

type batch struct {
	remaining int
}

type sceneContentLoader struct {
	mu            *sync.Mutex
	logger        zerolog.Logger
	registry      scene.Registry
	meshes        Loader
	pool          worker.DynamicWorkerPool
	workers       int
	retryInterval time.Duration
	now           func() time.Time

	active    *batch
	deferred  []deferredRequest
	events    []loadEvent
	results   []decoded
	nextTask  int
	listeners common.Observers[LoadListener]
}

// SceneContentLoader adds structures to a registry from descriptors.
//
// A request starts a batch: descriptors whose id is already in the registry are dropped,
// mesh files are decoded on a worker pool, and each decoded structure is inserted on the
// goroutine that calls Poll. At most one batch is active; a request made while one is
// running is deferred and retried by Poll once the retry interval has passed and the
// active batch has finished. Load listeners are notified from Poll only.
type SceneContentLoader interface {
	// Load requests that descriptors be added to the registry.
	//
	// Parameters:
	//   - descriptors: the structures to add
	//
	// Returns:
	//   - error: ErrMissingDescriptorID if any descriptor has no id, in which case nothing is loaded
	Load(descriptors []scene_object.Descriptor) error

	// Poll inserts decoded structures, delivers pending listener notifications and starts
	// deferred requests that are due. It must be called from the frame goroutine.
	//
	// Returns:
	//   - bool: true while a batch is active or a request is deferred
	Poll() bool

	// Busy reports whether a batch is active or a request is deferred.
	Busy() bool

	// ReplaceSceneObjects is retired and always fails.
	//
	// Returns:
	//   - error: always wraps ErrDeprecated
	ReplaceSceneObjects(descriptors []scene_object.Descriptor) error

	// AddListener registers l.
	//
	// Returns:
	//   - bool: false if l was already registered
	AddListener(l LoadListener) bool

	// RemoveListener unregisters l. Work already in flight is not cancelled; l simply
	// receives no further notifications.
	//
	// Returns:
	//   - bool: true if l was registered
	RemoveListener(l LoadListener) bool

	// Close stops the worker pool. Batches in flight never finish after Close.
	Close()
}

var _ SceneContentLoader = &sceneContentLoader{}

// NewSceneContentLoader creates a SceneContentLoader that inserts into registry and decodes
// mesh files through meshes.
//
// Parameters:
//   - registry: the destination registry
//   - meshes: the mesh decoder and cache
//   - options: functional options
//
// Returns:
//   - SceneContentLoader: the loader
func NewSceneContentLoader(registry scene.Registry, meshes Loader, options ...SceneContentLoaderBuilderOption) SceneContentLoader {
	if registry == nil || meshes == nil {
		panic("loader: nil registry or mesh loader")
	}
	s := &sceneContentLoader{
		mu:            &sync.Mutex{},
		logger:        zerolog.Nop(),
		registry:      registry,
		meshes:        meshes,
		workers:       4,
		retryInterval: DefaultRetryInterval,
		now:           time.Now,
	}
	for _, opt := range options {
		opt(s)
	}
	s.pool = worker.NewDynamicWorkerPool(s.workers, 256, 1*time.Second)
	return s
}

func (s *sceneContentLoader) Load(descriptors []scene_object.Descriptor) error {
	for i, d := range descriptors {
		if d.ID == "" {
			return fmt.Errorf("descriptor %d: %w", i, ErrMissingDescriptorID)
		}
	}

	s.mu.Lock()
	if s.active != nil || len(s.deferred) > 0 {
		s.deferred = append(s.deferred, deferredRequest{
			descriptors: append([]scene_object.Descriptor(nil), descriptors...),
			readyAt:     s.now().Add(s.retryInterval),
		})
		s.mu.Unlock()
		s.logger.Debug().Int("objects", len(descriptors)).Dur("retry", s.retryInterval).Msg("load in progress, deferring request")
		return nil
	}
	tasks := s.start(descriptors)
	s.mu.Unlock()

	s.submit(tasks)
	return nil
}

// start begins a batch and returns the decode tasks to submit once mu is released, since
// a full pool queue would otherwise block workers waiting on mu. Caller holds mu.
func (s *sceneContentLoader) start(descriptors []scene_object.Descriptor) []worker.Task {
	seen := make(map[string]bool, len(descriptors))
	filtered := make([]scene_object.Descriptor, 0, len(descriptors))
	for _, d := range descriptors {
		if seen[d.ID] || s.registry.Has(d.ID) {
			continue
		}
		seen[d.ID] = true
		filtered = append(filtered, d)
	}

	s.active = &batch{remaining: len(filtered)}
	count := len(filtered)
	s.events = append(s.events, func(l LoadListener) { l.LoadStarted(count, count) })
	s.logger.Info().Int("requested", len(descriptors)).Int("objects", count).Msg("load batch started")

	tasks := make([]worker.Task, 0, len(filtered))
	for i, d := range filtered {
		loaderID, desc := i, d
		s.events = append(s.events, func(l LoadListener) { l.ObjectLoadStarted(loaderID, desc) })

		tasks = append(tasks, worker.Task{
			ID:      s.nextTask,
			Payload: desc.ID,
			Do: func() (any, error) {
				res := s.decode(loaderID, desc)
				s.mu.Lock()
				s.results = append(s.results, res)
				s.mu.Unlock()
				return nil, res.err
			},
		})
		s.nextTask++
	}
	return tasks
}

func (s *sceneContentLoader) submit(tasks []worker.Task) {
	for _, t := range tasks {
		s.pool.SubmitTask(t)
	}
}

// decode builds the mesh for desc. Runs on a pool worker.
func (s *sceneContentLoader) decode(loaderID int, desc scene_object.Descriptor) decoded {
	res := decoded{loaderID: loaderID, desc: desc}
	if desc.MeshPath == "" {
		res.mesh = model.NewBoxMesh(desc.Min, desc.Max)
	} else {
		res.mesh, res.err = s.meshes.Load(desc.MeshPath)
		if res.err == nil && desc.Min == desc.Max {
			// descriptor carries no bounds, take them from the geometry
			res.desc.Min, res.desc.Max = res.mesh.Min, res.mesh.Max
			res.desc.Centroid = res.mesh.Centroid()
		}
	}
	if res.mesh != nil {
		res.size = len(res.mesh.Positions)
	}
	return res
}

func (s *sceneContentLoader) Poll() bool {
	s.mu.Lock()
	results := s.results
	s.results = nil
	s.mu.Unlock()

	for _, res := range results {
		s.insert(res)
	}

	s.mu.Lock()
	if s.active != nil && s.active.remaining == 0 {
		s.active = nil
		s.events = append(s.events, func(l LoadListener) { l.LoadFinished() })
		s.logger.Info().Int("objects", s.registry.Count()).Msg("load batch finished")
	}
	var tasks []worker.Task
	if s.active == nil && len(s.deferred) > 0 && !s.now().Before(s.deferred[0].readyAt) {
		next := s.deferred[0]
		s.deferred = s.deferred[1:]
		tasks = s.start(next.descriptors)
	}
	events := s.events
	s.events = nil
	busy := s.active != nil || len(s.deferred) > 0
	s.mu.Unlock()

	s.submit(tasks)

	for _, ev := range events {
		s.listeners.Each(func(l LoadListener) { ev(l) })
	}
	return busy
}

// insert adds one decoded structure to the registry and queues its notifications.
func (s *sceneContentLoader) insert(res decoded) {
	err := res.err
	var obj scene_object.SceneObject
	if err == nil {
		obj, err = scene_object.New(res.desc, scene_object.WithMesh(res.mesh))
	}
	if err == nil && !s.registry.Add(obj) {
		s.logger.Debug().Str("id", res.desc.ID).Msg("object already in scene, skipping")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active != nil {
		s.active.remaining--
	}
	id, desc, size := res.loaderID, res.desc, res.size
	if err != nil {
		s.logger.Warn().Err(err).Str("id", desc.ID).Msg("object load failed")
		s.events = append(s.events, func(l LoadListener) { l.ObjectLoadFailed(id, desc, err) })
		return
	}
	s.events = append(s.events,
		func(l LoadListener) { l.ObjectLoadProgress(id, size, size) },
		func(l LoadListener) { l.ObjectLoadFinished(id, desc) },
	)
}

func (s *sceneContentLoader) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active != nil || len(s.deferred) > 0
}

func (s *sceneContentLoader) ReplaceSceneObjects(descriptors []scene_object.Descriptor) error {
	return fmt.Errorf("ReplaceSceneObjects: %w; use Load, which skips ids already in the scene", ErrDeprecated)
}

func (s *sceneContentLoader) AddListener(l LoadListener) bool {
	return s.listeners.Add(l)
}

func (s *sceneContentLoader) RemoveListener(l LoadListener) bool {
	return s.listeners.Remove(l)
}

func (s *sceneContentLoader) Close() {
	s.pool.Stop()
}
