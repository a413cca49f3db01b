package model

import (
	"github.com/Carmen-Shannon/anatomy-viewer/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Mesh is triangle geometry in an object's local space.
//
// Indices are a triangle list. A mesh with no indices treats Positions as an
// unindexed triangle list.
type Mesh struct {
	// Positions holds one entry per vertex.
	Positions []mgl32.Vec3

	// Indices holds three entries per triangle.
	Indices []uint32

	// Min and Max are the axis-aligned bounds of Positions.
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// NewMesh creates a mesh and computes its bounds.
//
// Parameters:
//   - positions: vertex positions
//   - indices: triangle list indices, or nil for unindexed geometry
//
// Returns:
//   - *Mesh: the mesh
func NewMesh(positions []mgl32.Vec3, indices []uint32) *Mesh {
	m := &Mesh{Positions: positions, Indices: indices}
	m.Min, m.Max = calculateBounds(positions)
	return m
}

// NewBoxMesh builds a closed box spanning [boxMin, boxMax] as 12 triangles.
func NewBoxMesh(boxMin, boxMax mgl32.Vec3) *Mesh {
	positions := make([]mgl32.Vec3, 8)
	for i := range positions {
		for axis := 0; axis < 3; axis++ {
			if i&(1<<axis) != 0 {
				positions[i][axis] = boxMax[axis]
			} else {
				positions[i][axis] = boxMin[axis]
			}
		}
	}
	indices := []uint32{
		0, 2, 1, 1, 2, 3, // z min
		4, 5, 6, 5, 7, 6, // z max
		0, 1, 4, 1, 5, 4, // y min
		2, 6, 3, 3, 6, 7, // y max
		0, 4, 2, 2, 4, 6, // x min
		1, 3, 5, 3, 7, 5, // x max
	}
	return NewMesh(positions, indices)
}

// Empty reports whether the mesh has no triangles.
func (m *Mesh) Empty() bool {
	return m == nil || m.TriangleCount() == 0
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	if len(m.Indices) > 0 {
		return len(m.Indices) / 3
	}
	return len(m.Positions) / 3
}

// Triangle returns the corners of triangle i.
func (m *Mesh) Triangle(i int) (a, b, c mgl32.Vec3) {
	if len(m.Indices) > 0 {
		return m.Positions[m.Indices[i*3]], m.Positions[m.Indices[i*3+1]], m.Positions[m.Indices[i*3+2]]
	}
	return m.Positions[i*3], m.Positions[i*3+1], m.Positions[i*3+2]
}

// Centroid returns the center of the bounding box.
func (m *Mesh) Centroid() mgl32.Vec3 {
	return m.Min.Add(m.Max).Mul(0.5)
}

// Append merges other into m after transforming its positions by transform.
//
// Parameters:
//   - other: geometry to merge
//   - transform: matrix applied to each of other's positions
func (m *Mesh) Append(other *Mesh, transform mgl32.Mat4) {
	if other == nil {
		return
	}
	base := uint32(len(m.Positions))
	for _, p := range other.Positions {
		m.Positions = append(m.Positions, common.TransformPoint(transform, p))
	}
	if len(m.Indices) > 0 || len(other.Indices) > 0 {
		if len(m.Indices) == 0 {
			for i := uint32(0); i < base; i++ {
				m.Indices = append(m.Indices, i)
			}
		}
		if len(other.Indices) > 0 {
			for _, idx := range other.Indices {
				m.Indices = append(m.Indices, base+idx)
			}
		} else {
			for i := range other.Positions {
				m.Indices = append(m.Indices, base+uint32(i))
			}
		}
	}
	m.Min, m.Max = calculateBounds(m.Positions)
}

// VertexBytes returns the positions as tightly packed float32x3 for GPU upload.
func (m *Mesh) VertexBytes() []byte {
	return common.SliceToBytes(m.Positions)
}

// IndexBytes returns the triangle list as uint32 indices for GPU upload,
// synthesizing sequential indices for unindexed meshes.
func (m *Mesh) IndexBytes() ([]byte, int) {
	if len(m.Indices) > 0 {
		return common.SliceToBytes(m.Indices), len(m.Indices)
	}
	seq := make([]uint32, len(m.Positions))
	for i := range seq {
		seq[i] = uint32(i)
	}
	return common.SliceToBytes(seq), len(seq)
}

func calculateBounds(positions []mgl32.Vec3) (mgl32.Vec3, mgl32.Vec3) {
	if len(positions) == 0 {
		return mgl32.Vec3{}, mgl32.Vec3{}
	}
	lo, hi := positions[0], positions[0]
	for _, p := range positions[1:] {
		for axis := 0; axis < 3; axis++ {
			lo[axis] = min(lo[axis], p[axis])
			hi[axis] = max(hi[axis], p[axis])
		}
	}
	return lo, hi
}
