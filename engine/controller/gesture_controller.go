package controller

import (
	"sync"

	"github.com/Carmen-Shannon/anatomy-viewer/engine/camera"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/interaction"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/picker"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"
)

const (
	// PickInterval is the number of one-finger samples between highlight picks.
	PickInterval = 30

	// GestureZoomScale converts a two-finger scale change into zoom factor.
	GestureZoomScale = 2.5

	// GestureRotateScale converts five-finger hand translation into radians.
	GestureRotateScale = 0.02

	// MenuDwellFrames is the number of consecutive one-finger samples the fingertip must rest
	// in the hotspot before the menu opens.
	MenuDwellFrames = 20

	// MenuSelectDistance is how far in pixels the finger must travel from the menu entry
	// point to choose an item.
	MenuSelectDistance = 50
)

// Hand is one tracked hand in a gesture sample.
type Hand struct {
	// Fingers holds the extended fingertips in surface pixels.
	Fingers []mgl32.Vec2

	// ScaleFactor is the hand's spread relative to the previous sample; 1 means unchanged.
	ScaleFactor float32

	// Translation is the hand's movement since the previous sample in device units.
	Translation mgl32.Vec3
}

// HandFrame is one sample from a gesture device.
type HandFrame struct {
	Hands []Hand
}

// FingerCount returns the number of extended fingers across all hands.
func (f HandFrame) FingerCount() int {
	n := 0
	for _, h := range f.Hands {
		n += len(h.Fingers)
	}
	return n
}

// MenuItem is an entry of the gesture menu.
type MenuItem int

const (
	MenuLayers MenuItem = iota
	MenuSettings
	MenuSearch
	MenuQuiz
)

func (m MenuItem) String() string {
	switch m {
	case MenuLayers:
		return "layers"
	case MenuSettings:
		return "settings"
	case MenuSearch:
		return "search"
	case MenuQuiz:
		return "quiz"
	default:
		return "unknown"
	}
}

type gestureController struct {
	interaction.NopListener

	mu          *sync.Mutex
	logger      zerolog.Logger
	cc          camera.CameraController
	rig         camera.ViewRig
	picker      picker.Picker
	highlighter interaction.StateMachine
	pending     []HandFrame
	mode        interaction.GestureMode
	menuEntry   mgl32.Vec2
	pickCounter int
	dwell       int
	onMenu      func(item MenuItem)
}

// GestureController turns hand-tracking samples into camera commands.
//
// In normal mode one finger points and highlights the structure under it every
// PickInterval samples, two fingers zoom by their change in spread and five fingers rotate
// with the hand's movement. Resting one finger in the bottom-right hotspot for MenuDwellFrames
// samples opens the menu; in menu
// mode moving the finger away from the entry point chooses an item, and losing all hands
// closes the menu.
type GestureController interface {
	Controller

	// Submit queues a device sample. Samples are interpreted by the next Frame call, so
	// Submit may be called from the device goroutine.
	//
	// Parameters:
	//   - frame: the sample
	Submit(frame HandFrame)

	// Mode returns the current gesture mode.
	Mode() interaction.GestureMode
}

var _ GestureController = &gestureController{}

// NewGestureController creates a GestureController that drives cc. The rig's surface size
// locates the menu hotspot.
//
// Parameters:
//   - cc: the camera controller that receives commands
//   - rig: the views whose surface the fingertips are reported in
//   - options: functional options
//
// Returns:
//   - GestureController: the controller
func NewGestureController(cc camera.CameraController, rig camera.ViewRig, options ...GestureControllerBuilderOption) GestureController {
	if cc == nil || rig == nil {
		panic("controller: nil camera controller or view rig")
	}
	g := &gestureController{
		mu:     &sync.Mutex{},
		logger: zerolog.Nop(),
		cc:     cc,
		rig:    rig,
		mode:   interaction.ModeNormal,
	}
	for _, opt := range options {
		opt(g)
	}
	return g
}

func (g *gestureController) Submit(frame HandFrame) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.pending = append(g.pending, frame)
}

func (g *gestureController) Mode() interaction.GestureMode {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.mode
}

func (g *gestureController) Frame() camera.Command {
	g.mu.Lock()
	frames := g.pending
	g.pending = nil
	g.mu.Unlock()

	var cmd camera.Command
	for _, f := range frames {
		cmd = cmd.Add(g.process(f))
	}
	if !cmd.IsZero() {
		g.cc.Apply(cmd)
	}
	return cmd
}

func (g *gestureController) Help() HelpConfig {
	return HelpConfig{
		Title: "Gesture Controls",
		Items: []HelpItem{
			{Control: "One finger", Description: "Point and highlight"},
			{Control: "Two fingers", Description: "Zoom"},
			{Control: "Five fingers", Description: "Rotate"},
			{Control: "Point at bottom right", Description: "Open menu"},
		},
	}
}

func (g *gestureController) process(f HandFrame) camera.Command {
	if g.Mode() == interaction.ModeMenu {
		g.processMenu(f)
		return camera.Command{}
	}

	var cmd camera.Command
	fingers := f.FingerCount()
	if fingers != 1 {
		g.resetDwell()
	}
	for _, hand := range f.Hands {
		switch {
		case fingers == 1 && len(hand.Fingers) == 1:
			if g.point(hand.Fingers[0]) {
				return cmd
			}
		case fingers == 2 && hand.ScaleFactor != 0 && hand.ScaleFactor != 1:
			cmd.Zoom += (hand.ScaleFactor - 1) * GestureZoomScale
		case fingers == 5:
			cmd.Rotate = cmd.Rotate.Add(mgl32.Vec2{
				hand.Translation.Y() * GestureRotateScale,
				hand.Translation.X() * GestureRotateScale,
			})
		}
	}
	return cmd
}

// point highlights under tip on every PickInterval-th sample and opens the menu once tip has
// stayed inside the hotspot for MenuDwellFrames samples. It reports whether the menu was opened.
func (g *gestureController) point(tip mgl32.Vec2) bool {
	g.mu.Lock()
	pick := g.pickCounter == PickInterval
	if pick {
		g.pickCounter = 0
	} else {
		g.pickCounter++
	}
	p, sm := g.picker, g.highlighter
	g.mu.Unlock()

	if pick && p != nil {
		result := p.PickAt(tip.X(), tip.Y())
		if sm != nil {
			sm.Highlight(result)
		}
	}

	w, h := g.rig.Size()
	if h <= 0 {
		return false
	}
	corner := mgl32.Vec2{float32(w), float32(h)}
	if corner.Sub(tip).Len() >= float32(h)/4 {
		g.resetDwell()
		return false
	}

	g.mu.Lock()
	g.dwell++
	if g.dwell < MenuDwellFrames {
		g.mu.Unlock()
		return false
	}
	g.dwell = 0
	g.mode = g.mode.Transition(interaction.EventMenuHotspot)
	g.menuEntry = tip
	g.mu.Unlock()
	g.logger.Debug().Msg("gesture menu opened")
	return true
}

func (g *gestureController) resetDwell() {
	g.mu.Lock()
	g.dwell = 0
	g.mu.Unlock()
}

func (g *gestureController) processMenu(f HandFrame) {
	if len(f.Hands) == 0 {
		g.mu.Lock()
		g.mode = g.mode.Transition(interaction.EventHandsLost)
		g.mu.Unlock()
		g.logger.Debug().Msg("gesture menu closed")
		return
	}
	if f.FingerCount() != 1 {
		return
	}

	var tip mgl32.Vec2
	for _, hand := range f.Hands {
		if len(hand.Fingers) == 1 {
			tip = hand.Fingers[0]
		}
	}

	g.mu.Lock()
	item, ok := chooseMenuItem(tip.Sub(g.menuEntry))
	if ok {
		g.mode = g.mode.Transition(interaction.EventMenuChosen)
	}
	onMenu := g.onMenu
	g.mu.Unlock()

	if ok {
		g.logger.Debug().Stringer("item", item).Msg("gesture menu item chosen")
		if onMenu != nil {
			onMenu(item)
		}
	}
}

// chooseMenuItem maps a fingertip offset from the menu entry point to an item. Screen y
// grows downward, so up is negative.
func chooseMenuItem(offset mgl32.Vec2) (MenuItem, bool) {
	dx, dy := offset.X(), offset.Y()
	if math32.Abs(dy) >= math32.Abs(dx) {
		if math32.Abs(dy) <= MenuSelectDistance {
			return 0, false
		}
		if dy < 0 {
			return MenuLayers, true
		}
		return MenuSettings, true
	}
	if math32.Abs(dx) <= MenuSelectDistance {
		return 0, false
	}
	if dx < 0 {
		return MenuSearch, true
	}
	return MenuQuiz, true
}
