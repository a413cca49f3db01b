package engine

import (
	"time"

	"github.com/Carmen-Shannon/anatomy-viewer/engine/camera"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/controller"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/loader"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/picker"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/renderer"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/scene_object"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/viewpoint"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/window"
	"github.com/rs/zerolog"
)

// ViewerBuilderOption is a functional option for configuring a Viewer.
// Use the With* functions to create options that are applied directly to the viewer instance.
type ViewerBuilderOption func(*viewer)

// WithWindow sets the window the viewer draws into and takes input from.
//
// Parameters:
//   - w: a spawned Window instance
//
// Returns:
//   - ViewerBuilderOption: option function to apply
func WithWindow(w window.Window) ViewerBuilderOption {
	return func(v *viewer) {
		v.window = w
	}
}

// WithRenderer supplies a renderer instead of creating a wgpu renderer for the window.
func WithRenderer(r renderer.Renderer) ViewerBuilderOption {
	return func(v *viewer) {
		v.renderer = r
	}
}

// WithRendererOptions forwards options to the renderer created for the window.
func WithRendererOptions(options ...renderer.RendererBuilderOption) ViewerBuilderOption {
	return func(v *viewer) {
		v.rendererOptions = append(v.rendererOptions, options...)
	}
}

// WithLogger sets the logger shared by every component of the viewer.
func WithLogger(logger zerolog.Logger) ViewerBuilderOption {
	return func(v *viewer) {
		v.logger = logger
	}
}

// WithProfiling enables or disables frame samples at debug level.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - ViewerBuilderOption: option function to apply
func WithProfiling(enabled bool) ViewerBuilderOption {
	return func(v *viewer) {
		v.profilingEnabled = enabled
	}
}

// WithRenderFrameLimit sets an optional frame rate cap in frames per second.
// Pass 0 to uncap the loop (default).
//
// Parameters:
//   - fps: maximum frames per second (0 = uncapped)
//
// Returns:
//   - ViewerBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) ViewerBuilderOption {
	return func(v *viewer) {
		if fps <= 0 {
			v.renderFrameLimit = 0
			return
		}
		v.renderFrameLimit = time.Duration(float64(time.Second) / fps)
	}
}

// WithViewConfigs replaces the four default quadrant views.
func WithViewConfigs(configs ...camera.ViewConfig) ViewerBuilderOption {
	return func(v *viewer) {
		v.viewConfigs = configs
	}
}

// WithZoomLimits sets the zoom factor bounds and the zoom a reset returns to.
func WithZoomLimits(limits viewpoint.Limits) ViewerBuilderOption {
	return func(v *viewer) {
		v.zoomLimits = &limits
	}
}

// WithPreset makes resets restore preset instead of framing the scene's extent.
//
// Parameters:
//   - preset: the preset viewpoint, or nil for computed framing
//
// Returns:
//   - ViewerBuilderOption: option function to apply
func WithPreset(preset *viewpoint.Preset) ViewerBuilderOption {
	return func(v *viewer) {
		v.preset = preset
	}
}

// WithPicking sets which views answer pick queries and the primary view.
//
// Parameters:
//   - policy: picker.PolicyPrimaryView or picker.PolicyViewUnderCursor
//   - primaryView: index of the primary view, also used for presets and URLs
//
// Returns:
//   - ViewerBuilderOption: option function to apply
func WithPicking(policy picker.Policy, primaryView int) ViewerBuilderOption {
	return func(v *viewer) {
		v.pickPolicy = policy
		v.primaryView = primaryView
	}
}

// WithPickTriggers enables picking on primary-button press and on pointer movement.
// Both default to true.
func WithPickTriggers(onClick, onHover bool) ViewerBuilderOption {
	return func(v *viewer) {
		v.pickOnClick = onClick
		v.pickOnHover = onHover
	}
}

// WithSensitivity scales mouse input for the default controller.
func WithSensitivity(s controller.Sensitivity) ViewerBuilderOption {
	return func(v *viewer) {
		v.sensitivity = s
	}
}

// WithLayers sets the layer order and extra layer membership by id.
//
// Parameters:
//   - order: layer names innermost first, or nil for controller.DefaultLayers
//   - members: structure ids per layer, may be nil
//
// Returns:
//   - ViewerBuilderOption: option function to apply
func WithLayers(order []string, members map[string][]string) ViewerBuilderOption {
	return func(v *viewer) {
		v.layerOrder = order
		v.layerMembers = members
	}
}

// WithMeshDir sets the directory relative mesh paths resolve against.
func WithMeshDir(dir string) ViewerBuilderOption {
	return func(v *viewer) {
		v.meshDir = dir
	}
}

// WithMeshLoader supplies the mesh decoder and cache used by the content loader.
func WithMeshLoader(l loader.Loader) ViewerBuilderOption {
	return func(v *viewer) {
		v.meshes = l
	}
}

// WithLoaderWorkers sets how many meshes are decoded in parallel.
func WithLoaderWorkers(n int) ViewerBuilderOption {
	return func(v *viewer) {
		if n > 0 {
			v.workers = n
		}
	}
}

// WithBaseURL sets the URL GenerateURL appends the viewpoint to.
func WithBaseURL(base string) ViewerBuilderOption {
	return func(v *viewer) {
		v.baseURL = base
	}
}

// WithGestures adds a hand gesture controller. onMenu, which may be nil, is called after the
// default action for every menu item chosen.
//
// Parameters:
//   - onMenu: callback for chosen menu items
//
// Returns:
//   - ViewerBuilderOption: option function to apply
func WithGestures(onMenu func(item controller.MenuItem)) ViewerBuilderOption {
	return func(v *viewer) {
		v.gesturesEnabled = true
		v.onMenu = onMenu
	}
}

// WithSelectionHandler is called with every newly selected structure, nil when a click hit
// nothing.
func WithSelectionHandler(fn func(obj scene_object.SceneObject)) ViewerBuilderOption {
	return func(v *viewer) {
		v.onSelect = fn
	}
}

// WithHelpHandler is called whenever the help overlay is toggled.
func WithHelpHandler(fn func(visible bool)) ViewerBuilderOption {
	return func(v *viewer) {
		v.onHelp = fn
	}
}
