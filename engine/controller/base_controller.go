package controller

import (
	"sync"

	"github.com/Carmen-Shannon/anatomy-viewer/common"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/camera"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/interaction"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"
)

// Sensitivity scales raw input into camera command units.
type Sensitivity struct {
	Rotate float32 `yaml:"rotate"`
	Pan    float32 `yaml:"pan"`
	Zoom   float32 `yaml:"zoom"`
}

// DefaultSensitivity converts one pixel of drag into 0.01 radians of rotation or 0.002
// extents of pan, and one wheel step into 0.03 of zoom factor.
var DefaultSensitivity = Sensitivity{Rotate: 0.01, Pan: 0.002, Zoom: 0.03}

type baseController struct {
	interaction.NopListener

	mu          *sync.Mutex
	logger      zerolog.Logger
	cc          camera.CameraController
	sensitivity Sensitivity

	pointerCurrent   mgl32.Vec2
	pointerLastFrame mgl32.Vec2
	scroll           float32
	rotating         bool
	panning          bool
	helpVisible      bool
	onHelp           func(visible bool)
}

// BaseController provides mouse and keyboard camera control.
//
// Primary button with shift held pans, secondary button rotates and the wheel zooms.
// Rotating and panning are mutually exclusive; entering one clears the other. R resets the
// viewpoint and ? or H toggles help.
type BaseController interface {
	Controller

	// Rotating reports whether a rotate drag is in progress.
	Rotating() bool

	// Panning reports whether a pan drag is in progress.
	Panning() bool

	// HelpVisible reports whether the help overlay is toggled on.
	HelpVisible() bool
}

var _ BaseController = &baseController{}

// NewBaseController creates a BaseController that drives cc.
//
// Parameters:
//   - cc: the camera controller that receives commands
//   - options: functional options
//
// Returns:
//   - BaseController: the controller
func NewBaseController(cc camera.CameraController, options ...BaseControllerBuilderOption) BaseController {
	if cc == nil {
		panic("controller: nil camera controller")
	}
	b := &baseController{
		mu:          &sync.Mutex{},
		logger:      zerolog.Nop(),
		cc:          cc,
		sensitivity: DefaultSensitivity,
	}
	for _, opt := range options {
		opt(b)
	}
	return b
}

func (b *baseController) Frame() camera.Command {
	b.mu.Lock()
	delta := b.pointerCurrent.Sub(b.pointerLastFrame)
	b.pointerLastFrame = b.pointerCurrent

	var cmd camera.Command
	if b.rotating {
		cmd.Rotate = delta.Mul(b.sensitivity.Rotate)
	}
	// screen y grows downward, model y grows upward
	if b.panning {
		cmd.Pan = mgl32.Vec2{delta.X() * b.sensitivity.Pan, -delta.Y() * b.sensitivity.Pan}
	}
	cmd.Zoom = b.scroll * b.sensitivity.Zoom
	b.scroll = 0
	b.mu.Unlock()

	if !cmd.IsZero() {
		b.cc.Apply(cmd)
	}
	return cmd
}

func (b *baseController) Help() HelpConfig {
	return HelpConfig{
		Title: "Basic Controls",
		Items: []HelpItem{
			{Control: "?", Description: "Toggle help"},
			{Control: "R", Description: "Reset viewpoint"},
			{Control: "Left click", Description: "Select structure"},
			{Control: "Left click + Shift", Description: "Pan"},
			{Control: "Right click", Description: "Rotate"},
			{Control: "Scroll", Description: "Zoom"},
		},
	}
}

func (b *baseController) Rotating() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.rotating
}

func (b *baseController) Panning() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.panning
}

func (b *baseController) HelpVisible() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.helpVisible
}

func (b *baseController) HandleKeyDown(key uint32, state interaction.State) {
	switch {
	case key == common.KeyR:
		b.logger.Debug().Msg("reset viewpoint")
		b.cc.Reset()
	case key == common.KeySlash || key == common.KeyH:
		b.mu.Lock()
		b.helpVisible = !b.helpVisible
		visible, onHelp := b.helpVisible, b.onHelp
		b.mu.Unlock()
		if onHelp != nil {
			onHelp(visible)
		}
	case common.IsShift(key) && state.IsDown(common.MouseButtonPrimary):
		b.mu.Lock()
		// A held shift may arrive again as key repeat; re-anchoring would drop the drag.
		if !b.panning {
			b.enterPanning(state.Pointer)
		}
		b.mu.Unlock()
	}
}

func (b *baseController) HandleKeyUp(key uint32, state interaction.State) {
	if !common.IsShift(key) {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.panning = false
}

func (b *baseController) HandlePointerDown(button common.MouseButton, state interaction.State) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pointerCurrent = state.Pointer
	switch {
	case button == common.MouseButtonPrimary && state.ShiftHeld():
		b.enterPanning(state.Pointer)
	case button == common.MouseButtonSecondary:
		b.enterRotating(state.Pointer)
	}
}

func (b *baseController) HandlePointerUp(button common.MouseButton, state interaction.State) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pointerCurrent = state.Pointer
	switch button {
	case common.MouseButtonPrimary:
		b.panning = false
	case common.MouseButtonSecondary:
		b.rotating = false
	}
}

func (b *baseController) HandlePointerMove(state interaction.State) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pointerCurrent = state.Pointer
}

func (b *baseController) HandlePointerLeave(state interaction.State) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.panning = false
	b.rotating = false
}

func (b *baseController) HandleScroll(delta float32, state interaction.State) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.scroll += delta
}

// enterPanning starts a pan drag anchored at p. Caller holds mu.
func (b *baseController) enterPanning(p mgl32.Vec2) {
	b.panning = true
	b.rotating = false
	b.pointerCurrent = p
	b.pointerLastFrame = p
}

// enterRotating starts a rotate drag anchored at p. Caller holds mu.
func (b *baseController) enterRotating(p mgl32.Vec2) {
	b.rotating = true
	b.panning = false
	b.pointerCurrent = p
	b.pointerLastFrame = p
}
