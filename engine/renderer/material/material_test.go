package material

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/anatomy-viewer/common"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/scene_object"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatAt(buf []byte, i int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
}

func TestDrawColorAddsEmissive(t *testing.T) {
	m := scene_object.Material{
		Diffuse:  common.Color{R: 0.5, G: 0.25, B: 0},
		Emissive: common.Color{R: 0.75, G: 0.25, B: 0},
	}

	c := DrawColor(m, 0.4)

	assert.InDelta(t, 1.0, c[0], 1e-6, "red clamps at 1")
	assert.InDelta(t, 0.5, c[1], 1e-6)
	assert.InDelta(t, 0.0, c[2], 1e-6)
	assert.InDelta(t, 0.4, c[3], 1e-6)
}

func TestGPUObjectParamsMarshal(t *testing.T) {
	obj, err := scene_object.New(scene_object.Descriptor{
		ID:       "FJ3153",
		Material: &scene_object.Material{Diffuse: common.ColorFromHex(0xff0000)},
	})
	require.NoError(t, err)
	obj.SetOpacity(0.5)

	params := NewGPUObjectParams(obj, mgl32.Translate3D(1, 2, 3))
	buf := params.Marshal()

	require.Len(t, buf, params.Size())
	assert.InDelta(t, 1.0, floatAt(buf, 12), 1e-6)
	assert.InDelta(t, 2.0, floatAt(buf, 13), 1e-6)
	assert.InDelta(t, 3.0, floatAt(buf, 14), 1e-6)
	assert.InDelta(t, 1.0, floatAt(buf, 16), 1e-6)
	assert.InDelta(t, 0.5, floatAt(buf, 19), 1e-6)
}

func TestGPUViewParamsMarshal(t *testing.T) {
	params := NewGPUViewParams(mgl32.Ident4(), mgl32.Vec3{0, 0, 5})
	buf := params.Marshal()

	require.Len(t, buf, params.Size())
	assert.InDelta(t, 1.0, floatAt(buf, 0), 1e-6)
	assert.InDelta(t, 5.0, floatAt(buf, 18), 1e-6)
	assert.Contains(t, GPUViewParamsSource, "struct ViewParams")
	assert.Contains(t, GPUObjectParamsSource, "struct ObjectParams")
}
