package engine

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Carmen-Shannon/anatomy-viewer/engine/camera"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/controller"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/interaction"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/light"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/loader"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/picker"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/profiler"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/renderer"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/scene"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/scene_object"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/viewpoint"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/window"
	"github.com/rs/zerolog"
)

// ErrPrimaryView is returned by NewViewer when the primary view index is not a view of the rig.
var ErrPrimaryView = errors.New("primary view out of range")

// viewer implements the Viewer interface.
// Everything except gesture submission runs on the goroutine that owns the window.
type viewer struct {
	mu     *sync.Mutex
	logger zerolog.Logger

	window   window.Window
	renderer renderer.Renderer
	registry scene.Registry
	rig      camera.ViewRig
	cc       camera.CameraController
	picker   picker.Picker
	sm       interaction.StateMachine
	content  loader.SceneContentLoader
	meshes   loader.Loader
	layers   controller.LayerSelector
	keyLight light.Light

	controllers []controller.Controller
	main        controller.ViewerController
	gestures    controller.GestureController

	profiler         *profiler.Profiler
	profilingEnabled bool
	lastTick         time.Time
	quitOnce         sync.Once

	// Pre-creation config collected from builder options
	viewConfigs      []camera.ViewConfig
	zoomLimits       *viewpoint.Limits
	preset           *viewpoint.Preset
	pickPolicy       picker.Policy
	primaryView      int
	pickOnClick      bool
	pickOnHover      bool
	sensitivity      controller.Sensitivity
	layerOrder       []string
	layerMembers     map[string][]string
	workers          int
	baseURL          string
	meshDir          string
	rendererOptions  []renderer.RendererBuilderOption
	renderFrameLimit time.Duration
	gesturesEnabled  bool
	onMenu           func(item controller.MenuItem)
	onSelect         func(obj scene_object.SceneObject)
	onHelp           func(visible bool)
	tickCallback     func(deltaTime float32)
}

// Viewer is the anatomical viewer facade. It owns the scene registry, the four-view rig and
// the camera controller, the picker and interaction state machine that turn window input
// into listener events, the controllers that turn those events into camera commands, the
// content loader and the renderer.
//
// Each Tick polls the loader, lets every controller apply its frame command, moves the key
// light with the viewpoint and draws every view.
type Viewer interface {
	// Window returns the window, or nil for a headless viewer.
	Window() window.Window

	// Registry returns the scene registry.
	Registry() scene.Registry

	// Rig returns the views.
	Rig() camera.ViewRig

	// CameraController returns the controller that frames and moves the cameras.
	CameraController() camera.CameraController

	// Picker returns the picker used by the interaction state machine.
	Picker() picker.Picker

	// StateMachine returns the interaction state machine fed by the window.
	StateMachine() interaction.StateMachine

	// Layers returns the anatomical layer selector.
	Layers() controller.LayerSelector

	// KeyLight returns the light that follows the viewpoint.
	KeyLight() light.Light

	// Controller returns the default mouse and keyboard controller.
	Controller() controller.ViewerController

	// Gestures returns the hand gesture controller, or nil when gestures are disabled.
	Gestures() controller.GestureController

	// Load requests that descriptors be added to the scene. Objects appear over the
	// following ticks; load listeners observe the batch.
	//
	// Parameters:
	//   - descriptors: the structures to add
	//
	// Returns:
	//   - error: loader.ErrMissingDescriptorID if a descriptor has no id
	Load(descriptors []scene_object.Descriptor) error

	// ReplaceSceneObjects is retired. It always panics with an error wrapping
	// loader.ErrDeprecated.
	ReplaceSceneObjects(descriptors []scene_object.Descriptor)

	// AddController registers c with the interaction state machine and, when c is also a
	// load listener, with the content loader.
	//
	// Parameters:
	//   - c: the controller
	AddController(c controller.Controller)

	// RemoveController unregisters c.
	//
	// Returns:
	//   - bool: true if c was registered
	RemoveController(c controller.Controller) bool

	// Controllers returns the registered controllers in registration order.
	Controllers() []controller.Controller

	// AddLoadListener registers l with the content loader.
	//
	// Returns:
	//   - bool: false if l was already registered
	AddLoadListener(l loader.LoadListener) bool

	// RemoveLoadListener unregisters l from the content loader.
	//
	// Returns:
	//   - bool: true if l was registered
	RemoveLoadListener(l loader.LoadListener) bool

	// HelpConfigs collects the controls of every registered controller.
	HelpConfigs() []controller.HelpConfig

	// GenerateURL encodes the current viewpoint onto the configured base URL.
	//
	// Returns:
	//   - string: a URL of the form base/x,y,z/rx,ry,rz/tx,ty,tz/
	GenerateURL() string

	// SetTickCallback registers a function called at the end of every tick.
	SetTickCallback(callback func(deltaTime float32))

	// EnableProfiler enables frame samples at debug level.
	EnableProfiler()

	// DisableProfiler disables frame samples.
	DisableProfiler()

	// Tick runs one frame. It must be called from the goroutine that owns the window.
	//
	// Returns:
	//   - error: the renderer's error when the frame was skipped
	Tick() error

	// Run ticks until the window closes. It blocks and must be called from the main goroutine.
	Run()

	// Quit closes the window and releases the loader and renderer.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

var _ Viewer = &viewer{}

// NewViewer wires a Viewer. Without WithWindow the viewer is headless and draws nothing
// unless a renderer is supplied with WithRenderer.
//
// Parameters:
//   - options: functional options for viewer configuration
//
// Returns:
//   - Viewer: the viewer
//   - error: an error if the renderer could not be created; wraps
//     renderer.ErrUnsupportedEnvironment when no GPU is usable
func NewViewer(options ...ViewerBuilderOption) (Viewer, error) {
	v := &viewer{
		mu:          &sync.Mutex{},
		logger:      zerolog.Nop(),
		pickOnClick: true,
		pickOnHover: true,
		sensitivity: controller.DefaultSensitivity,
		workers:     4,
	}
	for _, opt := range options {
		opt(v)
	}

	v.registry = scene.NewRegistry(scene.WithLogger(v.logger))
	v.rig = camera.NewViewRig(v.viewConfigs...)
	if v.primaryView < 0 || v.primaryView >= v.rig.Len() {
		return nil, fmt.Errorf("%w: %d of %d views", ErrPrimaryView, v.primaryView, v.rig.Len())
	}
	if v.window != nil {
		v.rig.Resize(v.window.Width(), v.window.Height())
	}

	ccOptions := []camera.CameraControllerOption{
		camera.WithPrimaryView(v.primaryView),
		camera.WithPreset(v.preset),
		camera.WithLogger(v.logger),
	}
	if v.zoomLimits != nil {
		ccOptions = append(ccOptions, camera.WithZoomLimits(*v.zoomLimits))
	}
	v.cc = camera.NewCameraController(v.registry, v.rig, ccOptions...)

	v.picker = picker.NewPicker(v.registry, v.rig,
		picker.WithPolicy(v.pickPolicy),
		picker.WithPrimaryView(v.primaryView),
	)
	v.sm = interaction.NewStateMachine(v.picker,
		interaction.WithPickOnClick(v.pickOnClick),
		interaction.WithPickOnHover(v.pickOnHover),
		interaction.WithLogger(v.logger),
	)

	if v.meshes == nil {
		v.meshes = loader.NewLoader(loader.BackendTypeGLTF, loader.WithBaseDir(v.meshDir))
	}
	v.content = loader.NewSceneContentLoader(v.registry, v.meshes,
		loader.WithWorkers(v.workers),
		loader.WithLogger(v.logger),
	)

	v.layers = controller.NewLayerSelector(v.registry, v.layerOrder, v.layerMembers)
	v.keyLight = light.NewLight()
	v.profiler = profiler.NewProfiler(profiler.WithLogger(v.logger))

	baseOptions := []controller.BaseControllerBuilderOption{
		controller.WithSensitivity(v.sensitivity),
		controller.WithLogger(v.logger),
	}
	if v.onHelp != nil {
		baseOptions = append(baseOptions, controller.WithHelpHandler(v.onHelp))
	}
	viewerOptions := []controller.ViewerControllerBuilderOption{
		controller.WithViewerLogger(v.logger),
		controller.WithBaseOptions(baseOptions...),
	}
	if v.onSelect != nil {
		viewerOptions = append(viewerOptions, controller.WithSelectionHandler(v.onSelect))
	}
	v.main = controller.NewViewerController(v.registry, v.cc, viewerOptions...)
	v.AddController(v.main)

	if v.gesturesEnabled {
		gestureOptions := []controller.GestureControllerBuilderOption{
			controller.WithHighlighting(v.picker, v.sm),
			controller.WithMenuHandler(v.handleMenu),
			controller.WithGestureLogger(v.logger),
		}
		v.gestures = controller.NewGestureController(v.cc, v.rig, gestureOptions...)
		v.AddController(v.gestures)
	}

	if v.window != nil {
		if v.renderer == nil {
			r, err := renderer.NewRenderer(renderer.BackendTypeWGPU, v.window,
				append([]renderer.RendererBuilderOption{renderer.WithLogger(v.logger)}, v.rendererOptions...)...)
			if err != nil {
				v.content.Close()
				return nil, fmt.Errorf("create renderer: %w", err)
			}
			v.renderer = r
		}
		v.bindWindow()
	}
	v.cc.Reset()
	return v, nil
}

// bindWindow routes window input into the state machine and resizes into the rig and
// renderer.
func (v *viewer) bindWindow() {
	v.window.SetPointerDownCallback(v.sm.PointerDown)
	v.window.SetPointerUpCallback(v.sm.PointerUp)
	v.window.SetPointerMoveCallback(v.sm.PointerMove)
	v.window.SetPointerLeaveCallback(v.sm.PointerLeave)
	v.window.SetKeyDownCallback(v.sm.KeyDown)
	v.window.SetKeyUpCallback(v.sm.KeyUp)
	v.window.SetScrollCallback(v.sm.Scroll)
	v.window.SetResizeCallback(func(width, height int) {
		v.rig.Resize(width, height)
		if v.renderer != nil {
			v.renderer.Resize(width, height)
		}
	})
}

// handleMenu is the default gesture menu action: the layers item peels the outermost shown
// layer, and once every layer is hidden it restores them all.
func (v *viewer) handleMenu(item controller.MenuItem) {
	if item == controller.MenuLayers {
		if peeled := v.layers.PeelNext(); peeled != "" {
			v.logger.Debug().Str("layer", peeled).Msg("layer hidden")
		} else {
			for _, layer := range v.layers.Layers() {
				v.layers.Enable(layer)
			}
		}
	}
	if v.onMenu != nil {
		v.onMenu(item)
	}
}

func (v *viewer) Window() window.Window {
	return v.window
}

func (v *viewer) Registry() scene.Registry {
	return v.registry
}

func (v *viewer) Rig() camera.ViewRig {
	return v.rig
}

func (v *viewer) CameraController() camera.CameraController {
	return v.cc
}

func (v *viewer) Picker() picker.Picker {
	return v.picker
}

func (v *viewer) StateMachine() interaction.StateMachine {
	return v.sm
}

func (v *viewer) Layers() controller.LayerSelector {
	return v.layers
}

func (v *viewer) KeyLight() light.Light {
	return v.keyLight
}

func (v *viewer) Controller() controller.ViewerController {
	return v.main
}

func (v *viewer) Gestures() controller.GestureController {
	return v.gestures
}

func (v *viewer) Load(descriptors []scene_object.Descriptor) error {
	return v.content.Load(descriptors)
}

func (v *viewer) ReplaceSceneObjects(descriptors []scene_object.Descriptor) {
	if err := v.content.ReplaceSceneObjects(descriptors); err != nil {
		panic(err)
	}
}

func (v *viewer) AddController(c controller.Controller) {
	v.mu.Lock()
	for _, existing := range v.controllers {
		if existing == c {
			v.mu.Unlock()
			return
		}
	}
	v.controllers = append(v.controllers, c)
	v.mu.Unlock()

	v.sm.AddListener(c)
	if l, ok := c.(loader.LoadListener); ok {
		v.content.AddListener(l)
	}
}

func (v *viewer) RemoveController(c controller.Controller) bool {
	v.mu.Lock()
	found := false
	for i, existing := range v.controllers {
		if existing == c {
			v.controllers = append(v.controllers[:i:i], v.controllers[i+1:]...)
			found = true
			break
		}
	}
	v.mu.Unlock()
	if !found {
		return false
	}

	v.sm.RemoveListener(c)
	if l, ok := c.(loader.LoadListener); ok {
		v.content.RemoveListener(l)
	}
	return true
}

func (v *viewer) Controllers() []controller.Controller {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]controller.Controller, len(v.controllers))
	copy(out, v.controllers)
	return out
}

func (v *viewer) AddLoadListener(l loader.LoadListener) bool {
	return v.content.AddListener(l)
}

func (v *viewer) RemoveLoadListener(l loader.LoadListener) bool {
	return v.content.RemoveListener(l)
}

func (v *viewer) HelpConfigs() []controller.HelpConfig {
	controllers := v.Controllers()
	out := make([]controller.HelpConfig, 0, len(controllers))
	for _, c := range controllers {
		out = append(out, c.Help())
	}
	return out
}

func (v *viewer) GenerateURL() string {
	return viewpoint.EncodeURL(v.baseURL, v.cc.Snapshot())
}

func (v *viewer) SetTickCallback(callback func(deltaTime float32)) {
	v.tickCallback = callback
}

func (v *viewer) EnableProfiler() {
	v.profilingEnabled = true
}

func (v *viewer) DisableProfiler() {
	v.profilingEnabled = false
}

func (v *viewer) Tick() error {
	now := time.Now()
	var dt float32
	if !v.lastTick.IsZero() {
		dt = float32(now.Sub(v.lastTick).Seconds())
	}
	v.lastTick = now

	v.content.Poll()
	for _, c := range v.Controllers() {
		c.Frame()
	}

	vp := v.cc.Viewpoint()
	v.keyLight.Follow(&vp)

	var err error
	if v.renderer != nil {
		err = v.renderer.Draw(v.registry, v.rig, v.keyLight)
		if err != nil {
			v.logger.Debug().Err(err).Msg("frame skipped")
		}
	}

	if v.tickCallback != nil {
		v.tickCallback(dt)
	}
	if v.profilingEnabled {
		if v.renderer != nil {
			stats := v.renderer.Stats()
			v.profiler.Record("objects", stats.Objects)
			v.profiler.Record("draws", stats.Draws)
			v.profiler.Record("culled", stats.Culled)
		}
		v.profiler.Tick()
	}
	return err
}

func (v *viewer) Run() {
	if v.window == nil {
		panic("engine: Run requires a window")
	}
	v.window.SetUpdateCallback(v.safeTick)
	v.window.ProcessMessages()
	v.Quit()
}

// safeTick runs one frame with the optional frame cap and quits instead of crashing when a
// frame panics.
func (v *viewer) safeTick() {
	defer func() {
		if r := recover(); r != nil {
			v.logger.Error().Interface("panic", r).Msg("render loop recovered from panic")
			v.Quit()
		}
	}()

	start := time.Now()
	_ = v.Tick()
	if v.renderFrameLimit > 0 {
		if remaining := v.renderFrameLimit - time.Since(start); remaining > 0 {
			time.Sleep(remaining)
		}
	}
}

func (v *viewer) Quit() {
	v.quitOnce.Do(func() {
		v.content.Close()
		if v.renderer != nil {
			v.renderer.Close()
		}
		if v.window != nil && v.window.IsRunning() {
			if err := v.window.Close(); err != nil {
				v.logger.Warn().Err(err).Msg("failed to close window")
			}
		}
	})
}
