package model

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBoxMesh(t *testing.T) {
	m := NewBoxMesh(mgl32.Vec3{-1, -2, -3}, mgl32.Vec3{1, 2, 3})

	assert.Equal(t, 12, m.TriangleCount())
	assert.Equal(t, mgl32.Vec3{-1, -2, -3}, m.Min)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, m.Max)
	assert.Equal(t, mgl32.Vec3{}, m.Centroid())
	assert.False(t, m.Empty())
}

func TestMeshAppendTransformsAndReindexes(t *testing.T) {
	tri := NewMesh([]mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}, nil)
	m := NewMesh(nil, nil)
	require.True(t, m.Empty())

	m.Append(tri, mgl32.Ident4())
	m.Append(tri, mgl32.Translate3D(0, 0, 5))

	require.Equal(t, 2, m.TriangleCount())
	a, _, _ := m.Triangle(1)
	assert.Equal(t, mgl32.Vec3{0, 0, 5}, a)
	assert.Equal(t, float32(5), m.Max.Z())

	indexed := NewBoxMesh(mgl32.Vec3{}, mgl32.Vec3{1, 1, 1})
	m.Append(indexed, mgl32.Ident4())
	assert.Equal(t, 14, m.TriangleCount())
	_, count := m.IndexBytes()
	assert.Equal(t, 42, count)
}
