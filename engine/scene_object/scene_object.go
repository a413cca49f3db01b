package scene_object

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/anatomy-viewer/common"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

type sceneObject struct {
	mu         *sync.Mutex
	descriptor Descriptor
	mesh       *model.Mesh
	visible    atomic.Bool

	initialMaterial Material
	material        Material
	opacity         float32
	position        mgl32.Vec3
	scale           mgl32.Vec3
}

// SceneObject is a named, independently visible and colorable mesh placed in the scene.
// Objects are identified by their descriptor ID and carry the material they were
// created with so highlight changes can be undone.
type SceneObject interface {
	// ID returns the object's unique identifier.
	//
	// Returns:
	//   - string: the descriptor ID
	ID() string

	// Descriptor returns a copy of the descriptor the object was created from.
	//
	// Returns:
	//   - Descriptor: the descriptor
	Descriptor() Descriptor

	// Name returns the display name, falling back to the ID.
	Name() string

	// Mesh returns the object's geometry, or nil if it has none.
	//
	// Returns:
	//   - *model.Mesh: the mesh in local space
	Mesh() *model.Mesh

	// Bounds returns the local axis-aligned bounds used for picking.
	// Mesh bounds are preferred over descriptor bounds.
	//
	// Returns:
	//   - mgl32.Vec3: minimum corner
	//   - mgl32.Vec3: maximum corner
	Bounds() (mgl32.Vec3, mgl32.Vec3)

	// Material returns the current material.
	Material() Material

	// SetMaterial replaces the current material. The creation material is kept for ResetMaterial.
	//
	// Parameters:
	//   - m: the new material
	SetMaterial(m Material)

	// SetEmissive replaces only the emissive color of the current material.
	//
	// Parameters:
	//   - c: the emissive color
	SetEmissive(c common.Color)

	// ResetMaterial restores the material the object was created with.
	ResetMaterial()

	// Opacity returns the opacity in [0, 1].
	Opacity() float32

	// SetOpacity sets the opacity, clamped to [0, 1].
	//
	// Parameters:
	//   - opacity: the new opacity
	SetOpacity(opacity float32)

	// Transparent reports whether the object must be blended (opacity != 1).
	Transparent() bool

	// Visible reports whether the object is drawn and pickable.
	Visible() bool

	// SetVisible sets the visibility flag.
	//
	// Parameters:
	//   - visible: true to show the object
	SetVisible(visible bool)

	// ToggleVisible flips the visibility flag.
	//
	// Returns:
	//   - bool: the new visibility
	ToggleVisible() bool

	// Position returns the local translation.
	Position() mgl32.Vec3

	// SetPosition sets the local translation.
	SetPosition(p mgl32.Vec3)

	// Scale returns the local scale.
	Scale() mgl32.Vec3

	// SetScale sets the local scale.
	SetScale(s mgl32.Vec3)

	// LocalMatrix returns the object's transform relative to its parent group.
	//
	// Returns:
	//   - mgl32.Mat4: translation * scale
	LocalMatrix() mgl32.Mat4
}

var _ SceneObject = &sceneObject{}

// New creates a SceneObject from a descriptor.
//
// Parameters:
//   - desc: the descriptor; ID and Material are required
//   - options: functional options for mesh and initial transform
//
// Returns:
//   - SceneObject: the created object
//   - error: ErrMissingID or ErrMissingMaterial wrapped with the offending descriptor
func New(desc Descriptor, options ...SceneObjectBuilderOption) (SceneObject, error) {
	if err := desc.Validate(); err != nil {
		return nil, fmt.Errorf("scene object %q: %w", desc.DisplayName(), err)
	}

	o := &sceneObject{
		mu:              &sync.Mutex{},
		descriptor:      desc,
		initialMaterial: *desc.Material,
		material:        *desc.Material,
		opacity:         1,
		scale:           mgl32.Vec3{1, 1, 1},
	}
	o.visible.Store(true)

	for _, opt := range options {
		opt(o)
	}
	return o, nil
}

// MustNew is like New but panics on a malformed descriptor.
func MustNew(desc Descriptor, options ...SceneObjectBuilderOption) SceneObject {
	o, err := New(desc, options...)
	if err != nil {
		panic(err)
	}
	return o
}

func (o *sceneObject) ID() string {
	return o.descriptor.ID
}

func (o *sceneObject) Descriptor() Descriptor {
	return o.descriptor
}

func (o *sceneObject) Name() string {
	return o.descriptor.DisplayName()
}

func (o *sceneObject) Mesh() *model.Mesh {
	return o.mesh
}

func (o *sceneObject) Bounds() (mgl32.Vec3, mgl32.Vec3) {
	if !o.mesh.Empty() {
		return o.mesh.Min, o.mesh.Max
	}
	return o.descriptor.Min, o.descriptor.Max
}

func (o *sceneObject) Material() Material {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.material
}

func (o *sceneObject) SetMaterial(m Material) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.material = m
}

func (o *sceneObject) SetEmissive(c common.Color) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.material.Emissive = c
}

func (o *sceneObject) ResetMaterial() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.material = o.initialMaterial
}

func (o *sceneObject) Opacity() float32 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.opacity
}

func (o *sceneObject) SetOpacity(opacity float32) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.opacity = common.Clamp(opacity, 0, 1)
}

func (o *sceneObject) Transparent() bool {
	return o.Opacity() != 1
}

func (o *sceneObject) Visible() bool {
	return o.visible.Load()
}

func (o *sceneObject) SetVisible(visible bool) {
	o.visible.Store(visible)
}

func (o *sceneObject) ToggleVisible() bool {
	for {
		cur := o.visible.Load()
		if o.visible.CompareAndSwap(cur, !cur) {
			return !cur
		}
	}
}

func (o *sceneObject) Position() mgl32.Vec3 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.position
}

func (o *sceneObject) SetPosition(p mgl32.Vec3) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.position = p
}

func (o *sceneObject) Scale() mgl32.Vec3 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.scale
}

func (o *sceneObject) SetScale(s mgl32.Vec3) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.scale = s
}

func (o *sceneObject) LocalMatrix() mgl32.Mat4 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return common.ComposeTRS(o.position, mgl32.Vec3{}, o.scale)
}
