package scene

import (
	"sync"

	"github.com/Carmen-Shannon/anatomy-viewer/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Node is anything that can be attached beneath a Group.
type Node interface {
	// LocalMatrix returns the node's transform relative to its parent.
	//
	// Returns:
	//   - mgl32.Mat4: the local transform
	LocalMatrix() mgl32.Mat4
}

type group struct {
	mu       *sync.RWMutex
	name     string
	parent   *group
	position mgl32.Vec3
	rotation mgl32.Vec3
	children []Node
}

// Group is a transform node holding a translation and an Euler rotation (XYZ order)
// applied to all of its children.
type Group interface {
	Node

	// Name returns the group's label.
	Name() string

	// Position returns the group's translation.
	//
	// Returns:
	//   - mgl32.Vec3: the translation relative to the parent
	Position() mgl32.Vec3

	// SetPosition replaces the group's translation.
	//
	// Parameters:
	//   - p: the new translation
	SetPosition(p mgl32.Vec3)

	// Translate adds delta to the group's translation.
	//
	// Parameters:
	//   - delta: the offset to add
	Translate(delta mgl32.Vec3)

	// Rotation returns the Euler angles in radians (x = pitch, y = yaw, z = roll).
	Rotation() mgl32.Vec3

	// SetRotation replaces the Euler angles.
	//
	// Parameters:
	//   - r: the new angles in radians
	SetRotation(r mgl32.Vec3)

	// Rotate adds delta to the Euler angles without clamping.
	//
	// Parameters:
	//   - delta: angles in radians to add
	Rotate(delta mgl32.Vec3)

	// InverseRotation returns the inverse of the current rotation matrix.
	//
	// Returns:
	//   - mgl32.Mat4: rotation that undoes the group's orientation
	InverseRotation() mgl32.Mat4

	// Add attaches a child node. A child Group is re-parented.
	//
	// Parameters:
	//   - child: the node to attach
	Add(child Node)

	// Remove detaches a child node.
	//
	// Parameters:
	//   - child: the node to detach
	//
	// Returns:
	//   - bool: true if the child was attached
	Remove(child Node) bool

	// Clear detaches every child.
	Clear()

	// Children returns a snapshot of the attached nodes in insertion order.
	Children() []Node

	// WorldMatrix returns the product of every ancestor's local transform and this group's.
	WorldMatrix() mgl32.Mat4
}

var _ Group = &group{}

// NewGroup creates an empty group with identity transform.
//
// Parameters:
//   - name: a label used in logs
//
// Returns:
//   - Group: the new group
func NewGroup(name string) Group {
	return &group{
		mu:   &sync.RWMutex{},
		name: name,
	}
}

func (g *group) Name() string {
	return g.name
}

func (g *group) Position() mgl32.Vec3 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.position
}

func (g *group) SetPosition(p mgl32.Vec3) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.position = p
}

func (g *group) Translate(delta mgl32.Vec3) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.position = g.position.Add(delta)
}

func (g *group) Rotation() mgl32.Vec3 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.rotation
}

func (g *group) SetRotation(r mgl32.Vec3) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rotation = r
}

func (g *group) Rotate(delta mgl32.Vec3) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rotation = g.rotation.Add(delta)
}

func (g *group) InverseRotation() mgl32.Mat4 {
	return common.InverseEulerXYZ(g.Rotation())
}

func (g *group) LocalMatrix() mgl32.Mat4 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return mgl32.Translate3D(g.position.X(), g.position.Y(), g.position.Z()).Mul4(common.EulerXYZ(g.rotation))
}

func (g *group) Add(child Node) {
	if c, ok := child.(*group); ok {
		if c.parent != nil {
			c.parent.Remove(c)
		}
		c.parent = g
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.children = append(g.children, child)
}

func (g *group) Remove(child Node) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i, c := range g.children {
		if c == child {
			g.children = append(g.children[:i], g.children[i+1:]...)
			if cg, ok := child.(*group); ok {
				cg.parent = nil
			}
			return true
		}
	}
	return false
}

func (g *group) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, c := range g.children {
		if cg, ok := c.(*group); ok {
			cg.parent = nil
		}
	}
	g.children = nil
}

func (g *group) Children() []Node {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]Node, len(g.children))
	copy(out, g.children)
	return out
}

func (g *group) WorldMatrix() mgl32.Mat4 {
	m := g.LocalMatrix()
	for p := g.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Mul4(m)
	}
	return m
}

// Walk visits root and every descendant depth-first, passing each node's world matrix.
// Returning false from fn skips that node's children.
//
// Parameters:
//   - root: the group to start from
//   - fn: visitor invoked for each node
func Walk(root Group, fn func(node Node, world mgl32.Mat4) bool) {
	walk(root, root.WorldMatrix(), fn)
}

func walk(node Node, world mgl32.Mat4, fn func(Node, mgl32.Mat4) bool) {
	if !fn(node, world) {
		return
	}
	g, ok := node.(Group)
	if !ok {
		return
	}
	for _, child := range g.Children() {
		walk(child, world.Mul4(child.LocalMatrix()), fn)
	}
}
