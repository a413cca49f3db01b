package common

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRayIntersectAABB(t *testing.T) {
	boxMin := mgl32.Vec3{-1, -1, -1}
	boxMax := mgl32.Vec3{1, 1, 1}

	tests := []struct {
		name  string
		ray   Ray
		hit   bool
		param float32
	}{
		{"front hit", NewRay(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, -1}), true, 4},
		{"miss to the side", NewRay(mgl32.Vec3{3, 0, 5}, mgl32.Vec3{0, 0, -1}), false, 0},
		{"pointing away", NewRay(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 1}), false, 0},
		{"origin inside", NewRay(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0}), true, 0},
		{"parallel outside slab", NewRay(mgl32.Vec3{0, 2, 5}, mgl32.Vec3{0, 0, -1}), false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.ray.IntersectAABB(boxMin, boxMax)
			assert.Equal(t, tt.hit, ok)
			if tt.hit {
				assert.InDelta(t, tt.param, got, 1e-5)
			}
		})
	}
}

func TestRayIntersectTriangle(t *testing.T) {
	a := mgl32.Vec3{-1, -1, 0}
	b := mgl32.Vec3{1, -1, 0}
	c := mgl32.Vec3{0, 1, 0}

	got, ok := NewRay(mgl32.Vec3{0, 0, 3}, mgl32.Vec3{0, 0, -1}).IntersectTriangle(a, b, c)
	require.True(t, ok)
	assert.InDelta(t, 3, got, 1e-5)

	_, ok = NewRay(mgl32.Vec3{0, 0, -3}, mgl32.Vec3{0, 0, -1}).IntersectTriangle(a, b, c)
	assert.False(t, ok, "triangle behind origin")

	_, ok = NewRay(mgl32.Vec3{2, 2, 3}, mgl32.Vec3{0, 0, -1}).IntersectTriangle(a, b, c)
	assert.False(t, ok, "outside triangle")
}

func TestRayTransformKeepsParameter(t *testing.T) {
	world := NewRay(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{0, 0, -1})
	model := ComposeTRS(mgl32.Vec3{0, 0, 2}, mgl32.Vec3{}, mgl32.Vec3{2, 2, 2})

	local := world.Transform(model.Inv())
	param, ok := local.IntersectAABB(mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1})
	require.True(t, ok)

	// Box spans z in [0, 4] in world space, so the front face is 6 units away.
	assert.InDelta(t, 6, param, 1e-4)
	assert.True(t, world.At(param).ApproxEqualThreshold(mgl32.Vec3{0, 0, 4}, 1e-4))
}

func TestInverseEulerUndoesRotation(t *testing.T) {
	rot := mgl32.Vec3{0.3, -1.2, 0.7}
	v := mgl32.Vec3{1, 2, 3}

	back := TransformDirection(InverseEulerXYZ(rot), TransformDirection(EulerXYZ(rot), v))
	assert.True(t, back.ApproxEqualThreshold(v, 1e-5))
}

func TestFrustumIntersectsAABB(t *testing.T) {
	proj := mgl32.Perspective(mgl32.DegToRad(45), 1, 0.1, 100)
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	f := ExtractFrustum(proj.Mul4(view))

	assert.True(t, f.IntersectsAABB(mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1}))
	assert.False(t, f.IntersectsAABB(mgl32.Vec3{50, 50, -1}, mgl32.Vec3{51, 51, 1}))
	assert.False(t, f.IntersectsAABB(mgl32.Vec3{-1, -1, 20}, mgl32.Vec3{1, 1, 21}), "behind the camera")
}

func TestColorHexRoundTrip(t *testing.T) {
	for _, hex := range []uint32{0xffff00, 0xff6000, 0x000000, 0x123456} {
		assert.Equal(t, hex, ColorFromHex(hex).Hex())
	}
	assert.Equal(t, Color{R: 1, G: 1, B: 1}, ColorFromHex(0x808080).Add(ColorFromHex(0xffffff)))
}

func TestClampAndCoalesce(t *testing.T) {
	assert.Equal(t, float32(0.001), Clamp(float32(-4), 0.001, 10))
	assert.Equal(t, float32(10), Clamp(float32(40), 0.001, 10))
	assert.Equal(t, 3, Clamp(3, 1, 5))
	assert.Equal(t, "b", Coalesce("", "b", "c"))
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want uint32
		err  bool
	}{
		{"#ff6000", 0xff6000, false},
		{"0xffff00", 0xffff00, false},
		{"255", 0x0000ff, false},
		{"#zz", 0, true},
	}
	for _, tt := range tests {
		c, err := ParseColor(tt.in)
		if tt.err {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, c.Hex(), tt.in)
	}
}
