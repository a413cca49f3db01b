package material

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// GPUObjectParamsSource is the canonical WGSL definition of the ObjectParams struct.
// Matches GPUObjectParams layout exactly (80 bytes).
//
//go:embed assets/object_params.wgsl
var GPUObjectParamsSource string

// GPUObjectParams is the per-object uniform of the flat shader.
// Matches the WGSL ObjectParams struct layout exactly (see GPUObjectParamsSource).
type GPUObjectParams struct {
	Model [16]float32 // offset 0: column-major world matrix (64 bytes)
	Color [4]float32  // offset 64: diffuse + emissive RGB, opacity in alpha (16 bytes)
}

// Size returns the size of the GPUObjectParams struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUObjectParams) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUObjectParams struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 80-byte buffer ready for GPU upload.
func (g *GPUObjectParams) Marshal() []byte {
	buf := make([]byte, 80)
	putFloats(buf[0:64], g.Model[:])
	putFloats(buf[64:80], g.Color[:])
	return buf
}

// GPUViewParamsSource is the canonical WGSL definition of the ViewParams struct.
// Matches GPUViewParams layout exactly (80 bytes).
//
//go:embed assets/view_params.wgsl
var GPUViewParamsSource string

// GPUViewParams is the per-view uniform of the flat shader. Each quadrant of the view rig
// owns one so the four cameras can be written before a single submit.
type GPUViewParams struct {
	ViewProj [16]float32 // offset 0: column-major projection * view (64 bytes)
	Eye      [4]float32  // offset 64: camera position in world space, w unused (16 bytes)
}

// NewGPUViewParams packs a camera's matrices.
//
// Parameters:
//   - viewProj: the camera's projection * view matrix
//   - eye: the camera position
//
// Returns:
//   - GPUViewParams: the packed uniform
func NewGPUViewParams(viewProj mgl32.Mat4, eye mgl32.Vec3) GPUViewParams {
	return GPUViewParams{
		ViewProj: viewProj,
		Eye:      [4]float32{eye.X(), eye.Y(), eye.Z(), 1},
	}
}

// Size returns the size of the GPUViewParams struct in bytes.
func (g *GPUViewParams) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUViewParams struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 80-byte buffer ready for GPU upload.
func (g *GPUViewParams) Marshal() []byte {
	buf := make([]byte, 80)
	putFloats(buf[0:64], g.ViewProj[:])
	putFloats(buf[64:80], g.Eye[:])
	return buf
}

func putFloats(dst []byte, values []float32) {
	for i, v := range values {
		binary.LittleEndian.PutUint32(dst[i*4:i*4+4], math.Float32bits(v))
	}
}
