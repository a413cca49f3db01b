package light

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/anatomy-viewer/common"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/viewpoint"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLightDefaults(t *testing.T) {
	l := NewLight()

	assert.Equal(t, common.Color{R: 1, G: 1, B: 1}, l.Color())
	assert.Equal(t, DefaultIntensity, l.Intensity())
	assert.Equal(t, DefaultAmbient, l.Ambient())
	assert.True(t, l.Enabled())
}

func TestLightOptionsClamp(t *testing.T) {
	l := NewLight(WithIntensity(-2), WithAmbient(3), WithPosition(mgl32.Vec3{1, 2, 3}))

	assert.Equal(t, float32(0), l.Intensity())
	assert.Equal(t, float32(1), l.Ambient())
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, l.Position())
}

func TestFollowViewpoint(t *testing.T) {
	vp := viewpoint.New(viewpoint.Limits{})
	l := NewLight()

	l.Follow(vp)

	assert.Equal(t, vp.LightPosition(), l.Position())
	assert.NotEqual(t, mgl32.Vec3{}, l.Position())
}

func TestDisabledLightIsAmbientOnly(t *testing.T) {
	l := NewLight()
	l.SetEnabled(false)

	g := l.GPU()

	assert.Equal(t, float32(0), g.Intensity)
	assert.Equal(t, float32(1), g.Ambient)
}

func TestGPULightMarshal(t *testing.T) {
	g := NewLight(WithPosition(mgl32.Vec3{4, 5, 6}), WithColor(common.Color{R: 0.5})).GPU()
	buf := g.Marshal()

	require.Len(t, buf, g.Size())
	at := func(i int) float32 { return math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:])) }
	assert.Equal(t, float32(4), at(0))
	assert.Equal(t, float32(6), at(2))
	assert.Equal(t, float32(1), at(3))
	assert.Equal(t, float32(0.5), at(4))
	assert.Equal(t, DefaultAmbient, at(7))
}
