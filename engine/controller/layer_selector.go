package controller

import (
	"sync"

	"github.com/Carmen-Shannon/anatomy-viewer/engine/scene"
)

// DefaultLayers orders the anatomical layers from innermost to outermost.
var DefaultLayers = []string{"nervous", "digestive", "respiratory", "circulatory", "skeletal", "muscular"}

type layerSelector struct {
	mu       *sync.Mutex
	registry scene.Registry
	order    []string
	members  map[string][]string
	enabled  map[string]bool
}

// LayerSelector shows and hides whole anatomical layers. A structure belongs to a layer when
// its descriptor names that layer or when the layer's member list contains its id.
type LayerSelector interface {
	// Layers returns the layer names, innermost first.
	Layers() []string

	// Enabled reports whether layer is shown.
	Enabled(layer string) bool

	// Enable shows every structure on layer.
	Enable(layer string)

	// Disable hides every structure on layer.
	Disable(layer string)

	// Toggle flips layer and returns its new state.
	Toggle(layer string) bool

	// PeelNext hides the outermost shown layer.
	//
	// Returns:
	//   - string: the layer hidden, or "" when every layer is already hidden
	PeelNext() string

	// RestoreNext shows the innermost hidden layer.
	//
	// Returns:
	//   - string: the layer shown, or "" when every layer is already shown
	RestoreNext() string
}

var _ LayerSelector = &layerSelector{}

// NewLayerSelector creates a LayerSelector over registry with every layer shown.
//
// Parameters:
//   - registry: the scene holding the structures
//   - order: layer names innermost first, or nil for DefaultLayers
//   - members: extra structure ids per layer, may be nil
//
// Returns:
//   - LayerSelector: the selector
func NewLayerSelector(registry scene.Registry, order []string, members map[string][]string) LayerSelector {
	if registry == nil {
		panic("controller: nil registry")
	}
	if len(order) == 0 {
		order = DefaultLayers
	}
	ls := &layerSelector{
		mu:       &sync.Mutex{},
		registry: registry,
		order:    append([]string(nil), order...),
		members:  make(map[string][]string, len(members)),
		enabled:  make(map[string]bool, len(order)),
	}
	for k, ids := range members {
		ls.members[k] = append([]string(nil), ids...)
	}
	for _, name := range order {
		ls.enabled[name] = true
	}
	return ls
}

func (ls *layerSelector) Layers() []string {
	return append([]string(nil), ls.order...)
}

func (ls *layerSelector) Enabled(layer string) bool {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.enabled[layer]
}

func (ls *layerSelector) Enable(layer string) {
	ls.set(layer, true)
}

func (ls *layerSelector) Disable(layer string) {
	ls.set(layer, false)
}

func (ls *layerSelector) Toggle(layer string) bool {
	visible := !ls.Enabled(layer)
	ls.set(layer, visible)
	return visible
}

func (ls *layerSelector) PeelNext() string {
	for i := len(ls.order) - 1; i >= 0; i-- {
		if ls.Enabled(ls.order[i]) {
			ls.set(ls.order[i], false)
			return ls.order[i]
		}
	}
	return ""
}

func (ls *layerSelector) RestoreNext() string {
	for _, name := range ls.order {
		if !ls.Enabled(name) {
			ls.set(name, true)
			return name
		}
	}
	return ""
}

func (ls *layerSelector) set(layer string, visible bool) {
	ls.mu.Lock()
	ls.enabled[layer] = visible
	ids := ls.members[layer]
	ls.mu.Unlock()

	for _, obj := range ls.registry.Objects() {
		if obj.Descriptor().Layer == layer {
			obj.SetVisible(visible)
		}
	}
	for _, id := range ids {
		if obj := ls.registry.Get(id); obj != nil {
			obj.SetVisible(visible)
		}
	}
}
