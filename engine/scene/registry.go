package scene

import (
	"sync"

	"github.com/Carmen-Shannon/anatomy-viewer/engine/scene_object"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"
)

type registry struct {
	mu          *sync.RWMutex
	logger      zerolog.Logger
	root        Group
	rotation    Group
	translation Group
	objects     map[string]scene_object.SceneObject
	order       []string
}

// Registry owns the identifier to SceneObject mapping and the two shared transform
// groups every object hangs beneath: root -> rotation group -> translation group -> objects.
type Registry interface {
	// Add attaches obj beneath the translation group.
	// Adding an ID that is already registered is a no-op.
	//
	// Parameters:
	//   - obj: the object to register
	//
	// Returns:
	//   - bool: true if the object was inserted
	Add(obj scene_object.SceneObject) bool

	// Remove detaches and forgets the object with the given ID.
	//
	// Parameters:
	//   - id: the object ID
	//
	// Returns:
	//   - bool: true if an object was removed
	Remove(id string) bool

	// Get returns the object with the given ID, or nil.
	//
	// Parameters:
	//   - id: the object ID
	//
	// Returns:
	//   - scene_object.SceneObject: the object or nil
	Get(id string) scene_object.SceneObject

	// Has reports whether an object with the given ID is registered.
	Has(id string) bool

	// Objects returns the registered objects in insertion order.
	Objects() []scene_object.SceneObject

	// Count returns the number of registered objects.
	Count() int

	// Clear removes every object. Transform groups keep their state.
	Clear()

	// Root returns the top-level group handed to the renderer.
	Root() Group

	// RotationGroup returns the group carrying the user-driven orientation.
	RotationGroup() Group

	// TranslationGroup returns the group carrying the user-driven pan offset.
	TranslationGroup() Group

	// WorldMatrix returns obj's transform including both shared groups.
	//
	// Parameters:
	//   - obj: a registered object
	//
	// Returns:
	//   - mgl32.Mat4: the world transform
	WorldMatrix(obj scene_object.SceneObject) mgl32.Mat4

	// WalkObjects visits every SceneObject beneath the rotation group with its world matrix.
	//
	// Parameters:
	//   - fn: visitor invoked for each object
	WalkObjects(fn func(obj scene_object.SceneObject, world mgl32.Mat4))
}

var _ Registry = &registry{}

// NewRegistry creates an empty registry with identity transform groups.
//
// Parameters:
//   - options: functional options
//
// Returns:
//   - Registry: the registry
func NewRegistry(options ...RegistryBuilderOption) Registry {
	r := &registry{
		mu:          &sync.RWMutex{},
		logger:      zerolog.Nop(),
		root:        NewGroup("scene"),
		rotation:    NewGroup("rotation"),
		translation: NewGroup("translation"),
		objects:     make(map[string]scene_object.SceneObject),
	}
	r.root.Add(r.rotation)
	r.rotation.Add(r.translation)

	for _, opt := range options {
		opt(r)
	}
	return r
}

func (r *registry) Add(obj scene_object.SceneObject) bool {
	if obj == nil {
		panic("scene: Add requires a non-nil SceneObject")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.objects[obj.ID()]; exists {
		r.logger.Debug().Str("id", obj.ID()).Msg("object already registered, skipping")
		return false
	}
	r.objects[obj.ID()] = obj
	r.order = append(r.order, obj.ID())
	r.translation.Add(obj)
	return true
}

func (r *registry) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	obj, exists := r.objects[id]
	if !exists {
		return false
	}
	delete(r.objects, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	r.translation.Remove(obj)
	return true
}

func (r *registry) Get(id string) scene_object.SceneObject {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.objects[id]
}

func (r *registry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.objects[id]
	return ok
}

func (r *registry) Objects() []scene_object.SceneObject {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]scene_object.SceneObject, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.objects[id])
	}
	return out
}

func (r *registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.objects)
}

func (r *registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.objects = make(map[string]scene_object.SceneObject)
	r.order = nil
	r.translation.Clear()
}

func (r *registry) Root() Group {
	return r.root
}

func (r *registry) RotationGroup() Group {
	return r.rotation
}

func (r *registry) TranslationGroup() Group {
	return r.translation
}

func (r *registry) WorldMatrix(obj scene_object.SceneObject) mgl32.Mat4 {
	return r.translation.WorldMatrix().Mul4(obj.LocalMatrix())
}

func (r *registry) WalkObjects(fn func(obj scene_object.SceneObject, world mgl32.Mat4)) {
	Walk(r.rotation, func(node Node, world mgl32.Mat4) bool {
		if obj, ok := node.(scene_object.SceneObject); ok {
			fn(obj, world)
		}
		return true
	})
}
