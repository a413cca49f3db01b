package light

import (
	"sync"

	"github.com/Carmen-Shannon/anatomy-viewer/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Default light values used by NewLight.
const (
	DefaultIntensity float32 = 1
	DefaultAmbient   float32 = 0.25
)

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	mu        *sync.Mutex
	position  mgl32.Vec3
	color     common.Color
	intensity float32
	ambient   float32
	enabled   bool
}

// Light is the viewer's single key light. It is a point light whose position is moved with
// the viewpoint so the model stays lit as the cameras zoom, plus a flat ambient term that
// keeps faces pointing away from the light readable.
type Light interface {
	// Position returns the world-space position of the light.
	//
	// Returns:
	//   - mgl32.Vec3: position
	Position() mgl32.Vec3

	// SetPosition moves the light.
	//
	// Parameters:
	//   - p: world-space position
	SetPosition(p mgl32.Vec3)

	// Follow places the light at the viewpoint's key light position.
	//
	// Parameters:
	//   - source: anything reporting a light position, usually the current viewpoint
	Follow(source PositionSource)

	// Color returns the RGB color of the light.
	Color() common.Color

	// SetColor sets the RGB color of the light.
	SetColor(c common.Color)

	// Intensity returns the scalar intensity multiplier for the light.
	Intensity() float32

	// SetIntensity sets the scalar intensity multiplier.
	SetIntensity(intensity float32)

	// Ambient returns the ambient fraction applied to every fragment.
	Ambient() float32

	// SetAmbient sets the ambient fraction, clamped to [0, 1].
	SetAmbient(ambient float32)

	// Enabled returns whether the light contributes. A disabled light leaves only the
	// ambient term at full strength.
	Enabled() bool

	// SetEnabled toggles the light.
	SetEnabled(enabled bool)

	// GPU packs the light for upload.
	//
	// Returns:
	//   - GPULight: the GPU-aligned light
	GPU() GPULight
}

// PositionSource reports where the key light belongs. *viewpoint.Viewpoint implements it.
type PositionSource interface {
	LightPosition() mgl32.Vec3
}

var _ Light = &lightImpl{}

// NewLight creates a white key light at the origin.
//
// Parameters:
//   - options: variadic LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: the light
func NewLight(options ...LightBuilderOption) Light {
	l := &lightImpl{
		mu:        &sync.Mutex{},
		color:     common.Color{R: 1, G: 1, B: 1},
		intensity: DefaultIntensity,
		ambient:   DefaultAmbient,
		enabled:   true,
	}
	for _, opt := range options {
		opt(l)
	}
	return l
}

func (l *lightImpl) Position() mgl32.Vec3 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.position
}

func (l *lightImpl) SetPosition(p mgl32.Vec3) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.position = p
}

func (l *lightImpl) Follow(source PositionSource) {
	if source == nil {
		return
	}
	l.SetPosition(source.LightPosition())
}

func (l *lightImpl) Color() common.Color {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.color
}

func (l *lightImpl) SetColor(c common.Color) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.color = c
}

func (l *lightImpl) Intensity() float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.intensity
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.intensity = max(intensity, 0)
}

func (l *lightImpl) Ambient() float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ambient
}

func (l *lightImpl) SetAmbient(ambient float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ambient = common.Clamp(ambient, 0, 1)
}

func (l *lightImpl) Enabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.enabled
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.enabled = enabled
}

func (l *lightImpl) GPU() GPULight {
	l.mu.Lock()
	defer l.mu.Unlock()
	g := GPULight{
		Position:  [3]float32{l.position.X(), l.position.Y(), l.position.Z()},
		Color:     [3]float32{l.color.R, l.color.G, l.color.B},
		Intensity: l.intensity,
		Ambient:   l.ambient,
	}
	if !l.enabled {
		g.Intensity = 0
		g.Ambient = 1
	}
	return g
}
