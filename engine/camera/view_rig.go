package camera

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

type viewRig struct {
	mu     *sync.RWMutex
	views  []*View
	width  int
	height int
}

// ViewRig is the fixed set of views sharing one scene.
type ViewRig interface {
	// Views returns every view in rig order.
	Views() []*View

	// View returns the view at index i, or nil when out of range.
	//
	// Parameters:
	//   - i: view index
	//
	// Returns:
	//   - *View: the view or nil
	View(i int) *View

	// Len returns the number of views.
	Len() int

	// Resize records the render surface size and updates every camera's aspect ratio.
	//
	// Parameters:
	//   - width, height: surface size in pixels
	Resize(width, height int)

	// Size returns the render surface size in pixels.
	Size() (int, int)

	// ViewAt returns the index of the view whose viewport contains the pixel (x, y),
	// measured from the top-left corner of the surface.
	//
	// Returns:
	//   - int: view index
	//   - bool: false when the point lies outside every viewport
	ViewAt(x, y float32) (int, bool)

	// PlaceCameras puts every camera at DefaultEye * distance.
	//
	// Parameters:
	//   - distance: zoom * extent
	PlaceCameras(distance float32)

	// PlaceFromPosition puts the view at index primary exactly at pos and the other
	// cameras at the same distance along their own eye directions.
	//
	// Parameters:
	//   - primary: index of the view that receives pos verbatim
	//   - pos: world-space camera position
	PlaceFromPosition(primary int, pos mgl32.Vec3)
}

var _ ViewRig = &viewRig{}

// NewViewRig creates a rig from view configurations.
// When configs is empty the four default quadrant views are used.
//
// Parameters:
//   - configs: view layout and orientation
//
// Returns:
//   - ViewRig: the rig
func NewViewRig(configs ...ViewConfig) ViewRig {
	if len(configs) == 0 {
		configs = DefaultViewConfigs()
	}
	r := &viewRig{mu: &sync.RWMutex{}, width: 1, height: 1}
	for _, cfg := range configs {
		r.views = append(r.views, newView(cfg))
	}
	return r
}

func (r *viewRig) Views() []*View {
	out := make([]*View, len(r.views))
	copy(out, r.views)
	return out
}

func (r *viewRig) View(i int) *View {
	if i < 0 || i >= len(r.views) {
		return nil
	}
	return r.views[i]
}

func (r *viewRig) Len() int {
	return len(r.views)
}

func (r *viewRig) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.mu.Lock()
	r.width, r.height = width, height
	r.mu.Unlock()

	for _, v := range r.views {
		v.Camera.SetAspect(v.Viewport.Aspect(width, height))
	}
}

func (r *viewRig) Size() (int, int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.width, r.height
}

func (r *viewRig) ViewAt(x, y float32) (int, bool) {
	w, h := r.Size()
	for i, v := range r.views {
		if v.Viewport.Contains(x, y, w, h) {
			return i, true
		}
	}
	return -1, false
}

func (r *viewRig) PlaceCameras(distance float32) {
	for _, v := range r.views {
		v.Camera.SetPosition(v.DefaultEye.Mul(distance))
	}
}

func (r *viewRig) PlaceFromPosition(primary int, pos mgl32.Vec3) {
	distance := pos.Len()
	for i, v := range r.views {
		if i == primary {
			v.Camera.SetPosition(pos)
			continue
		}
		v.Camera.SetPosition(v.DefaultEye.Mul(distance))
	}
}
