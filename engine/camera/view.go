package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Rect is a viewport rectangle in normalized render-surface coordinates.
// Left and Bottom are measured from the lower-left corner; all fields lie in [0, 1].
type Rect struct {
	Left   float32 `yaml:"left"`
	Bottom float32 `yaml:"bottom"`
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

// Pixels converts the rect to surface pixels with a top-left origin, matching window
// cursor coordinates.
//
// Parameters:
//   - width, height: render surface size in pixels
//
// Returns:
//   - x, y: top-left corner of the viewport
//   - w, h: size of the viewport
func (r Rect) Pixels(width, height int) (x, y, w, h float32) {
	fw, fh := float32(width), float32(height)
	return r.Left * fw, (1 - r.Bottom - r.Height) * fh, r.Width * fw, r.Height * fh
}

// Contains reports whether the pixel (px, py), measured from the top-left corner,
// lies inside the rect. The right and bottom edges are exclusive so adjacent
// quadrants never both claim a point.
func (r Rect) Contains(px, py float32, width, height int) bool {
	x, y, w, h := r.Pixels(width, height)
	return px >= x && px < x+w && py >= y && py < y+h
}

// ToNDC maps a pixel inside the rect to normalized device coordinates with y up.
//
// Parameters:
//   - px, py: pixel measured from the top-left corner of the surface
//   - width, height: render surface size in pixels
//
// Returns:
//   - mgl32.Vec2: x and y in [-1, 1]
func (r Rect) ToNDC(px, py float32, width, height int) mgl32.Vec2 {
	x, y, w, h := r.Pixels(width, height)
	return mgl32.Vec2{
		(px-x)/w*2 - 1,
		-((py-y)/h*2 - 1),
	}
}

// Aspect returns the rect's aspect ratio on a surface of the given size.
func (r Rect) Aspect(width, height int) float32 {
	_, _, w, h := r.Pixels(width, height)
	if h == 0 {
		return 1
	}
	return w / h
}

// View is one viewport of the rig with its own camera.
type View struct {
	Name       string
	Viewport   Rect
	Camera     Camera
	DefaultEye mgl32.Vec3
	DefaultUp  mgl32.Vec3
}

// ViewConfig describes a view before its camera exists.
type ViewConfig struct {
	Name     string     `yaml:"name"`
	Viewport Rect       `yaml:"viewport"`
	Eye      mgl32.Vec3 `yaml:"eye,flow"`
	Up       mgl32.Vec3 `yaml:"up,flow"`
	FovDeg   float32    `yaml:"fov"`
}

// DefaultViewConfigs tiles the surface into four quadrants: front (top-left), side (top-right),
// top (bottom-left) and oblique (bottom-right).
func DefaultViewConfigs() []ViewConfig {
	return []ViewConfig{
		{Name: "front", Viewport: Rect{Left: 0, Bottom: 0.5, Width: 0.5, Height: 0.5}, Eye: mgl32.Vec3{0, 0, 1}, Up: mgl32.Vec3{0, 1, 0}, FovDeg: 45},
		{Name: "side", Viewport: Rect{Left: 0.5, Bottom: 0.5, Width: 0.5, Height: 0.5}, Eye: mgl32.Vec3{1, 0, 0}, Up: mgl32.Vec3{0, 1, 0}, FovDeg: 45},
		{Name: "top", Viewport: Rect{Left: 0, Bottom: 0, Width: 0.5, Height: 0.5}, Eye: mgl32.Vec3{0, 1, 0}, Up: mgl32.Vec3{0, 0, -1}, FovDeg: 45},
		{Name: "oblique", Viewport: Rect{Left: 0.5, Bottom: 0, Width: 0.5, Height: 0.5}, Eye: mgl32.Vec3{1, 1, 1}, Up: mgl32.Vec3{0, 1, 0}, FovDeg: 45},
	}
}

func newView(cfg ViewConfig) *View {
	eye := cfg.Eye.Normalize()
	fov := cfg.FovDeg
	if fov <= 0 {
		fov = 45
	}
	return &View{
		Name:       cfg.Name,
		Viewport:   cfg.Viewport,
		DefaultEye: eye,
		DefaultUp:  cfg.Up,
		Camera: NewCamera(
			WithEyeDirection(eye),
			WithUp(cfg.Up),
			WithFov(mgl32.DegToRad(fov)),
		),
	}
}
