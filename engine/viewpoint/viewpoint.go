package viewpoint

import (
	"github.com/Carmen-Shannon/anatomy-viewer/common"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/scene_object"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Zoom bounds and reset value used when no Limits are supplied.
const (
	DefaultZoomMin     float32 = 0.001
	DefaultZoomMax     float32 = 10
	DefaultZoomDefault float32 = 2

	// MinExtent keeps degenerate scenes from collapsing the zoom range.
	MinExtent float32 = 1
)

// Bounds is the bounding data of one object: its centroid and axis-aligned corners.
type Bounds struct {
	Centroid mgl32.Vec3
	Min      mgl32.Vec3
	Max      mgl32.Vec3
}

// Result is the framing derived from a set of objects.
type Result struct {
	// Origin is the negated aggregate centroid, applied to the translation group on reset.
	Origin mgl32.Vec3

	// Extent is the largest distance from the aggregate centroid to any bounding corner, at least MinExtent.
	Extent float32
}

// Compute derives the framing of a set of objects.
//
// The aggregate centroid is the average of the object centroids. Extent is the maximum
// of (max - centroid) and (centroid - min) over all axes and objects, floored at MinExtent.
//
// Parameters:
//   - bounds: bounding data of every object in the scene
//
// Returns:
//   - Result: the computed framing
//   - bool: false when bounds is empty, in which case the prior framing should be kept
func Compute(bounds []Bounds) (Result, bool) {
	if len(bounds) == 0 {
		return Result{}, false
	}

	var sum mgl32.Vec3
	hi := mgl32.Vec3{math32.Inf(-1), math32.Inf(-1), math32.Inf(-1)}
	lo := mgl32.Vec3{math32.Inf(1), math32.Inf(1), math32.Inf(1)}
	for _, b := range bounds {
		sum = sum.Add(b.Centroid)
		for axis := 0; axis < 3; axis++ {
			hi[axis] = math32.Max(hi[axis], b.Max[axis])
			lo[axis] = math32.Min(lo[axis], b.Min[axis])
		}
	}
	centroid := sum.Mul(1 / float32(len(bounds)))

	extent := MinExtent
	for axis := 0; axis < 3; axis++ {
		extent = math32.Max(extent, hi[axis]-centroid[axis])
		extent = math32.Max(extent, centroid[axis]-lo[axis])
	}

	return Result{Origin: centroid.Mul(-1), Extent: extent}, true
}

// BoundsOf reads the descriptor bounds of each object.
func BoundsOf(objects []scene_object.SceneObject) []Bounds {
	out := make([]Bounds, 0, len(objects))
	for _, obj := range objects {
		d := obj.Descriptor()
		out = append(out, Bounds{Centroid: d.Centroid, Min: d.Min, Max: d.Max})
	}
	return out
}

// Limits bounds the zoom factor.
type Limits struct {
	Min     float32 `yaml:"min"`
	Max     float32 `yaml:"max"`
	Default float32 `yaml:"default"`
}

// DefaultLimits returns the standard zoom bounds.
func DefaultLimits() Limits {
	return Limits{Min: DefaultZoomMin, Max: DefaultZoomMax, Default: DefaultZoomDefault}
}

// Viewpoint is the shared framing state of all views.
// Camera distance along each view's eye direction is Zoom * Extent.
type Viewpoint struct {
	Origin mgl32.Vec3
	Extent float32
	Zoom   float32
	Limits Limits

	// Preset, when set, replaces computed framing on reset.
	Preset *Preset
}

// New creates a Viewpoint at the default zoom with extent MinExtent.
//
// Parameters:
//   - limits: zoom bounds; zero fields fall back to the defaults
//
// Returns:
//   - *Viewpoint: the viewpoint
func New(limits Limits) *Viewpoint {
	limits.Min = common.Coalesce(limits.Min, DefaultZoomMin)
	limits.Max = common.Coalesce(limits.Max, DefaultZoomMax)
	limits.Default = common.Coalesce(limits.Default, DefaultZoomDefault)
	return &Viewpoint{
		Extent: MinExtent,
		Zoom:   common.Clamp(limits.Default, limits.Min, limits.Max),
		Limits: limits,
	}
}

// Update replaces origin and extent with a freshly computed Result.
func (v *Viewpoint) Update(r Result) {
	v.Origin = r.Origin
	v.Extent = r.Extent
}

// ApplyZoomDelta subtracts delta from the zoom factor and clamps it to the limits.
//
// Parameters:
//   - delta: positive values move cameras closer
//
// Returns:
//   - float32: the new zoom factor
func (v *Viewpoint) ApplyZoomDelta(delta float32) float32 {
	v.Zoom = common.Clamp(v.Zoom-delta, v.Limits.Min, v.Limits.Max)
	return v.Zoom
}

// ResetZoom returns the zoom factor to its default.
func (v *Viewpoint) ResetZoom() {
	v.Zoom = common.Clamp(v.Limits.Default, v.Limits.Min, v.Limits.Max)
}

// Distance is the camera distance from the rig center.
func (v *Viewpoint) Distance() float32 {
	return v.Zoom * v.Extent
}

// LightPosition places the key light relative to the current camera distance.
func (v *Viewpoint) LightPosition() mgl32.Vec3 {
	return mgl32.Vec3{0.5, 0.5, 0.8}.Mul(v.Distance())
}
