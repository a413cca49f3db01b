package picker

import (
	"sort"
	"sync"

	"github.com/Carmen-Shannon/anatomy-viewer/common"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/camera"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/scene"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/scene_object"
	"github.com/go-gl/mathgl/mgl32"
)

// Policy selects which views accept pick queries.
type Policy int

const (
	// PolicyPrimaryView only resolves points that fall inside the designated primary view.
	PolicyPrimaryView Policy = iota

	// PolicyViewUnderCursor resolves points in whichever view contains them.
	PolicyViewUnderCursor
)

// ParsePolicy maps a config string to a Policy. Unknown values select PolicyPrimaryView.
func ParsePolicy(s string) Policy {
	if s == "under_cursor" {
		return PolicyViewUnderCursor
	}
	return PolicyPrimaryView
}

// PickResult is the outcome of a pick query. A zero PickResult means nothing was hit.
type PickResult struct {
	Object     scene_object.SceneObject
	LocalPoint mgl32.Vec3
	Distance   float32
	View       int
}

// Hit reports whether the query resolved an object.
func (r PickResult) Hit() bool {
	return r.Object != nil
}

type intersection struct {
	object   scene_object.SceneObject
	distance float32
	point    mgl32.Vec3
	inverse  mgl32.Mat4
}

type pickerImpl struct {
	mu          *sync.Mutex
	registry    scene.Registry
	rig         camera.ViewRig
	policy      Policy
	primaryView int
}

// Picker maps a screen point to the nearest visible object under it.
type Picker interface {
	// PickAt resolves the object under the pixel (x, y), measured from the top-left
	// corner of the render surface.
	//
	// Parameters:
	//   - x, y: pointer position in surface pixels
	//
	// Returns:
	//   - PickResult: the nearest visible hit, or an empty result
	PickAt(x, y float32) PickResult

	// Policy returns the active view policy.
	Policy() Policy

	// SetPolicy changes the view policy.
	//
	// Parameters:
	//   - policy: the new policy
	//   - primaryView: view index used by PolicyPrimaryView
	SetPolicy(policy Policy, primaryView int)
}

var _ Picker = &pickerImpl{}

// NewPicker creates a Picker over the registry's rotation group as seen through the rig's views.
//
// Parameters:
//   - registry: the scene to intersect
//   - rig: the views used to build picking rays
//   - options: functional options
//
// Returns:
//   - Picker: the picker
func NewPicker(registry scene.Registry, rig camera.ViewRig, options ...PickerBuilderOption) Picker {
	if registry == nil || rig == nil {
		panic("picker: NewPicker requires a Registry and a ViewRig")
	}
	p := &pickerImpl{
		mu:       &sync.Mutex{},
		registry: registry,
		rig:      rig,
		policy:   PolicyPrimaryView,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *pickerImpl) Policy() Policy {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.policy
}

func (p *pickerImpl) SetPolicy(policy Policy, primaryView int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.policy = policy
	p.primaryView = primaryView
}

func (p *pickerImpl) PickAt(x, y float32) PickResult {
	p.mu.Lock()
	policy, primary := p.policy, p.primaryView
	p.mu.Unlock()

	index, ok := p.rig.ViewAt(x, y)
	if !ok {
		return PickResult{}
	}
	if policy == PolicyPrimaryView && index != primary {
		return PickResult{}
	}

	view := p.rig.View(index)
	width, height := p.rig.Size()
	ray := view.Camera.Unproject(view.Viewport.ToNDC(x, y, width, height))

	hits := p.intersect(ray)
	sort.Slice(hits, func(i, j int) bool {
		return hits[i].distance < hits[j].distance
	})

	for _, h := range hits {
		if !h.object.Visible() {
			continue
		}
		return PickResult{
			Object:     h.object,
			LocalPoint: common.TransformPoint(h.inverse, h.point),
			Distance:   h.distance,
			View:       index,
		}
	}
	return PickResult{}
}

// intersect collects every object hit by the world-space ray beneath the rotation group.
// Each object is tested in its local space: first its bounding box, then its triangles
// when it has a mesh.
func (p *pickerImpl) intersect(ray common.Ray) []intersection {
	var hits []intersection
	p.registry.WalkObjects(func(obj scene_object.SceneObject, world mgl32.Mat4) {
		inverse := world.Inv()
		local := ray.Transform(inverse)

		boxMin, boxMax := obj.Bounds()
		tBox, ok := local.IntersectAABB(boxMin, boxMax)
		if !ok {
			return
		}

		t := tBox
		if mesh := obj.Mesh(); !mesh.Empty() {
			best, found := float32(0), false
			for i := 0; i < mesh.TriangleCount(); i++ {
				a, b, c := mesh.Triangle(i)
				if tt, hit := local.IntersectTriangle(a, b, c); hit && (!found || tt < best) {
					best, found = tt, true
				}
			}
			if !found {
				return
			}
			t = best
		}

		hits = append(hits, intersection{
			object:   obj,
			distance: t,
			point:    ray.At(t),
			inverse:  inverse,
		})
	})
	return hits
}
