package common

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const rayEpsilon = 1e-7

// Ray is a half-line starting at Origin and extending along Direction.
// Direction is not required to be unit length; intersection parameters are expressed
// in multiples of Direction so they survive affine transforms of the ray.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// NewRay creates a ray with a normalized direction.
func NewRay(origin, direction mgl32.Vec3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// At returns the point Origin + t*Direction.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Transform maps the ray into the space described by m. The direction keeps its
// length distortion so that a parameter t refers to the same point in both spaces.
func (r Ray) Transform(m mgl32.Mat4) Ray {
	return Ray{
		Origin:    TransformPoint(m, r.Origin),
		Direction: TransformDirection(m, r.Direction),
	}
}

// IntersectAABB tests the ray against an axis-aligned box using the slab method.
//
// Parameters:
//   - boxMin: minimum corner of the box
//   - boxMax: maximum corner of the box
//
// Returns:
//   - float32: the entry parameter (0 when the origin is inside the box)
//   - bool: true if the ray hits the box in front of its origin
func (r Ray) IntersectAABB(boxMin, boxMax mgl32.Vec3) (float32, bool) {
	tMin := float32(0)
	tMax := math32.Inf(1)

	for axis := 0; axis < 3; axis++ {
		o, d := r.Origin[axis], r.Direction[axis]
		if math32.Abs(d) < rayEpsilon {
			if o < boxMin[axis] || o > boxMax[axis] {
				return 0, false
			}
			continue
		}
		inv := 1 / d
		t1 := (boxMin[axis] - o) * inv
		t2 := (boxMax[axis] - o) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math32.Max(tMin, t1)
		tMax = math32.Min(tMax, t2)
		if tMin > tMax {
			return 0, false
		}
	}
	return tMin, true
}

// IntersectTriangle tests the ray against triangle (a, b, c) using the Möller-Trumbore
// algorithm. Both faces are hit.
//
// Returns:
//   - float32: the hit parameter along the ray
//   - bool: true on a hit in front of the origin
func (r Ray) IntersectTriangle(a, b, c mgl32.Vec3) (float32, bool) {
	edge1 := b.Sub(a)
	edge2 := c.Sub(a)
	p := r.Direction.Cross(edge2)
	det := edge1.Dot(p)
	if math32.Abs(det) < rayEpsilon {
		return 0, false
	}
	invDet := 1 / det
	s := r.Origin.Sub(a)
	u := s.Dot(p) * invDet
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(edge1)
	v := r.Direction.Dot(q) * invDet
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := edge2.Dot(q) * invDet
	if t <= rayEpsilon {
		return 0, false
	}
	return t, true
}
