package controller

import (
	"sort"
	"sync"

	"github.com/Carmen-Shannon/anatomy-viewer/common"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/camera"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/interaction"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/loader"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/picker"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/scene"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/scene_object"
	"github.com/rs/zerolog"
)

var (
	// HoveredEmissive tints the structure under the pointer.
	HoveredEmissive = common.ColorFromHex(0xffff00)

	// SelectedEmissive tints the selected structure.
	SelectedEmissive = common.ColorFromHex(0xff6000)
)

type viewerController struct {
	BaseController
	loader.NopLoadListener

	mu              *sync.Mutex
	logger          zerolog.Logger
	registry        scene.Registry
	cc              camera.CameraController
	hovered         scene_object.SceneObject
	selected        scene_object.SceneObject
	contentsVisible bool
	onSelect        func(obj scene_object.SceneObject)
}

// ViewerController adds structure highlighting and selection on top of BaseController.
//
// Hovering tints a structure yellow and clicking selects it and tints it orange. Moving the
// hover or selection restores the previous structure's material. V toggles the selected
// structure's visibility and C toggles the contents list. When a load batch finishes the
// viewpoint is recomputed over the whole scene and reset.
type ViewerController interface {
	BaseController
	loader.LoadListener

	// Hovered returns the structure under the pointer, or nil.
	Hovered() scene_object.SceneObject

	// Selected returns the selected structure, or nil.
	Selected() scene_object.SceneObject

	// ContentsVisible reports whether the contents list is toggled on.
	ContentsVisible() bool

	// Contents lists every structure in the scene ordered by display name.
	//
	// Returns:
	//   - []scene_object.SceneObject: the structures sorted by name, then id
	Contents() []scene_object.SceneObject
}

var _ ViewerController = &viewerController{}

// NewViewerController creates a ViewerController over registry that drives cc.
//
// Parameters:
//   - registry: the scene whose structures are highlighted and listed
//   - cc: the camera controller that receives commands
//   - options: functional options
//
// Returns:
//   - ViewerController: the controller
func NewViewerController(registry scene.Registry, cc camera.CameraController, options ...ViewerControllerBuilderOption) ViewerController {
	if registry == nil {
		panic("controller: nil registry")
	}
	v := &viewerController{
		mu:       &sync.Mutex{},
		logger:   zerolog.Nop(),
		registry: registry,
		cc:       cc,
	}
	var baseOpts []BaseControllerBuilderOption
	for _, opt := range options {
		baseOpts = opt(v, baseOpts)
	}
	v.BaseController = NewBaseController(cc, append([]BaseControllerBuilderOption{WithLogger(v.logger)}, baseOpts...)...)
	return v
}

func (v *viewerController) Help() HelpConfig {
	help := v.BaseController.Help()
	help.Items = append(help.Items,
		HelpItem{Control: "V", Description: "Toggle visibility of selected structure"},
		HelpItem{Control: "C", Description: "Toggle contents list"},
	)
	return help
}

func (v *viewerController) HandleKeyDown(key uint32, state interaction.State) {
	switch key {
	case common.KeyV:
		v.mu.Lock()
		selected := v.selected
		v.mu.Unlock()
		if selected != nil {
			visible := selected.ToggleVisible()
			v.logger.Debug().Str("id", selected.ID()).Bool("visible", visible).Msg("toggled visibility")
		}
	case common.KeyC:
		v.mu.Lock()
		v.contentsVisible = !v.contentsVisible
		v.mu.Unlock()
	default:
		v.BaseController.HandleKeyDown(key, state)
	}
}

func (v *viewerController) HandleObjectClicked(result picker.PickResult) {
	v.mu.Lock()
	obj := result.Object
	if v.selected != nil && v.selected != obj {
		v.selected.ResetMaterial()
	}
	v.selected = obj
	if obj != nil {
		obj.SetEmissive(SelectedEmissive)
	}
	onSelect := v.onSelect
	v.mu.Unlock()

	if onSelect != nil {
		onSelect(obj)
	}
}

func (v *viewerController) HandleObjectHovered(result picker.PickResult) {
	v.mu.Lock()
	defer v.mu.Unlock()
	obj := result.Object
	if v.hovered != nil && v.hovered != obj {
		if v.hovered == v.selected {
			v.hovered.SetEmissive(SelectedEmissive)
		} else {
			v.hovered.ResetMaterial()
		}
	}
	v.hovered = obj
	if obj != nil {
		obj.SetEmissive(HoveredEmissive)
	}
}

func (v *viewerController) Hovered() scene_object.SceneObject {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.hovered
}

func (v *viewerController) Selected() scene_object.SceneObject {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.selected
}

func (v *viewerController) ContentsVisible() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.contentsVisible
}

func (v *viewerController) Contents() []scene_object.SceneObject {
	objects := v.registry.Objects()
	sort.SliceStable(objects, func(i, j int) bool {
		ni, nj := objects[i].Name(), objects[j].Name()
		if ni != nj {
			return ni < nj
		}
		return objects[i].ID() < objects[j].ID()
	})
	return objects
}

func (v *viewerController) LoadFinished() {
	changed := v.cc.Recompute(v.registry.Objects())
	v.logger.Info().Int("objects", v.registry.Count()).Bool("changed", changed).Msg("load finished, resetting viewpoint")
	v.cc.Reset()
}
