package common

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}

// StructToBytes reinterprets a pointer to a struct as a raw byte slice using unsafe.
//
// Parameters:
//   - v: pointer to the struct to reinterpret
//
// Returns:
//   - []byte: byte slice view of the struct's memory
func StructToBytes[T any](v *T) []byte {
	size := unsafe.Sizeof(*v)
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), int(size))
}

// EulerXYZ builds a rotation matrix from Euler angles applied in X, then Y, then Z order
// relative to the parent frame (R = Rx * Ry * Rz).
//
// Parameters:
//   - rotation: angles in radians around the X, Y and Z axes
//
// Returns:
//   - mgl32.Mat4: the homogeneous rotation matrix
func EulerXYZ(rotation mgl32.Vec3) mgl32.Mat4 {
	return mgl32.HomogRotate3DX(rotation.X()).
		Mul4(mgl32.HomogRotate3DY(rotation.Y())).
		Mul4(mgl32.HomogRotate3DZ(rotation.Z()))
}

// InverseEulerXYZ returns the inverse of EulerXYZ(rotation).
// Rotation matrices are orthonormal so the inverse is the transpose.
func InverseEulerXYZ(rotation mgl32.Vec3) mgl32.Mat4 {
	return EulerXYZ(rotation).Transpose()
}

// ComposeTRS builds a model matrix from translation, Euler rotation and scale (T * R * S).
//
// Parameters:
//   - position: translation
//   - rotation: Euler angles in radians (XYZ order)
//   - scale: per-axis scale
//
// Returns:
//   - mgl32.Mat4: the composed matrix
func ComposeTRS(position, rotation, scale mgl32.Vec3) mgl32.Mat4 {
	return mgl32.Translate3D(position.X(), position.Y(), position.Z()).
		Mul4(EulerXYZ(rotation)).
		Mul4(mgl32.Scale3D(scale.X(), scale.Y(), scale.Z()))
}

// TransformPoint applies m to p as a position (w = 1) with perspective divide.
func TransformPoint(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	return mgl32.TransformCoordinate(p, m)
}

// TransformDirection applies m to d as a direction (w = 0), ignoring translation.
func TransformDirection(m mgl32.Mat4, d mgl32.Vec3) mgl32.Vec3 {
	return m.Mul4x1(d.Vec4(0)).Vec3()
}
