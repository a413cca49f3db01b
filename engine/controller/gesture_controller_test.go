package controller

import (
	"testing"

	"github.com/Carmen-Shannon/anatomy-viewer/engine/interaction"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/picker"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingPicker struct {
	calls int
}

func (p *countingPicker) PickAt(x, y float32) picker.PickResult {
	p.calls++
	return picker.PickResult{}
}
func (p *countingPicker) Policy() picker.Policy        { return picker.PolicyPrimaryView }
func (p *countingPicker) SetPolicy(picker.Policy, int) {}

func oneFinger(x, y float32) HandFrame {
	return HandFrame{Hands: []Hand{{Fingers: []mgl32.Vec2{{x, y}}, ScaleFactor: 1}}}
}

func fingers(n int, h Hand) HandFrame {
	h.Fingers = make([]mgl32.Vec2, n)
	return HandFrame{Hands: []Hand{h}}
}

// restInHotspot submits enough one-finger samples at (x, y) to open the menu.
func restInHotspot(g GestureController, x, y float32) {
	for i := 0; i < MenuDwellFrames; i++ {
		g.Submit(oneFinger(x, y))
	}
}

func TestGestureZoomAndRotate(t *testing.T) {
	tests := []struct {
		name   string
		frame  HandFrame
		expect func(t *testing.T, cmd mgl32.Vec3)
	}{
		{
			name:  "spreading two fingers zooms in",
			frame: fingers(2, Hand{ScaleFactor: 1.2}),
			expect: func(t *testing.T, cmd mgl32.Vec3) {
				assert.InDelta(t, 0.5, cmd.Z(), 1e-5)
			},
		},
		{
			name:  "pinching two fingers zooms out",
			frame: fingers(2, Hand{ScaleFactor: 0.8}),
			expect: func(t *testing.T, cmd mgl32.Vec3) {
				assert.InDelta(t, -0.5, cmd.Z(), 1e-5)
			},
		},
		{
			name:  "five fingers rotate with hand movement",
			frame: fingers(5, Hand{ScaleFactor: 1, Translation: mgl32.Vec3{10, -5, 3}}),
			expect: func(t *testing.T, cmd mgl32.Vec3) {
				assert.InDelta(t, -0.1, cmd.X(), 1e-6)
				assert.InDelta(t, 0.2, cmd.Y(), 1e-6)
				assert.Zero(t, cmd.Z())
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cc := newRecordingCamera()
			g := NewGestureController(cc, cc.rig)

			g.Submit(tt.frame)
			cmd := g.Frame()

			tt.expect(t, mgl32.Vec3{cmd.Rotate.X(), cmd.Rotate.Y(), cmd.Zoom})
			assert.Equal(t, mgl32.Vec2{}, cmd.Pan)
			require.Len(t, cc.applied, 1)
		})
	}
}

func TestGestureFrameDrainsQueue(t *testing.T) {
	cc := newRecordingCamera()
	g := NewGestureController(cc, cc.rig)

	g.Submit(fingers(2, Hand{ScaleFactor: 1.2}))
	g.Submit(fingers(2, Hand{ScaleFactor: 1.2}))

	assert.InDelta(t, 1.0, g.Frame().Zoom, 1e-5)
	assert.True(t, g.Frame().IsZero())
	assert.Len(t, cc.applied, 1)
}

func TestGesturePointingPicksEveryInterval(t *testing.T) {
	cc := newRecordingCamera()
	p := &countingPicker{}
	sm := interaction.NewStateMachine(nil)
	var hovered int
	sm.AddListener(&hoverCounter{count: &hovered})
	g := NewGestureController(cc, cc.rig, WithHighlighting(p, sm))

	for i := 0; i < 2*(PickInterval+1); i++ {
		g.Submit(oneFinger(100, 100))
	}
	g.Frame()

	assert.Equal(t, 2, p.calls)
	assert.Equal(t, 2, hovered)
	assert.Equal(t, interaction.ModeNormal, g.Mode())
}

type hoverCounter struct {
	interaction.NopListener
	count *int
}

func (h *hoverCounter) HandleObjectHovered(picker.PickResult) { *h.count++ }

func TestGestureMenu(t *testing.T) {
	tests := []struct {
		name   string
		move   mgl32.Vec2
		chosen MenuItem
	}{
		{name: "up chooses layers", move: mgl32.Vec2{0, -60}, chosen: MenuLayers},
		{name: "down chooses settings", move: mgl32.Vec2{5, 60}, chosen: MenuSettings},
		{name: "left chooses search", move: mgl32.Vec2{-70, 10}, chosen: MenuSearch},
		{name: "right chooses quiz", move: mgl32.Vec2{70, -10}, chosen: MenuQuiz},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cc := newRecordingCamera()
			var items []MenuItem
			g := NewGestureController(cc, cc.rig, WithMenuHandler(func(item MenuItem) { items = append(items, item) }))

			entry := mgl32.Vec2{780, 580}
			restInHotspot(g, entry.X(), entry.Y())
			g.Frame()
			require.Equal(t, interaction.ModeMenu, g.Mode())

			g.Submit(fingers(2, Hand{ScaleFactor: 2}))
			assert.True(t, g.Frame().IsZero(), "camera gestures are ignored in menu mode")

			g.Submit(oneFinger(entry.X()+10, entry.Y()+10))
			g.Frame()
			assert.Empty(t, items, "small movements do not choose")

			target := entry.Add(tt.move)
			g.Submit(oneFinger(target.X(), target.Y()))
			g.Frame()
			assert.Equal(t, []MenuItem{tt.chosen}, items)
			assert.Equal(t, interaction.ModeNormal, g.Mode())
		})
	}
}

func TestGestureMenuClosesWhenHandsLost(t *testing.T) {
	cc := newRecordingCamera()
	g := NewGestureController(cc, cc.rig)

	restInHotspot(g, 790, 590)
	g.Frame()
	require.Equal(t, interaction.ModeMenu, g.Mode())

	g.Submit(HandFrame{})
	g.Frame()
	assert.Equal(t, interaction.ModeNormal, g.Mode())
}

func TestGestureHotspotOnlyInCorner(t *testing.T) {
	cc := newRecordingCamera()
	g := NewGestureController(cc, cc.rig)

	g.Submit(oneFinger(400, 300))
	g.Frame()

	assert.Equal(t, interaction.ModeNormal, g.Mode())
}

func TestGestureMenuNeedsFingerToRest(t *testing.T) {
	cc := newRecordingCamera()
	g := NewGestureController(cc, cc.rig)

	for i := 0; i < MenuDwellFrames-1; i++ {
		g.Submit(oneFinger(790, 590))
	}
	g.Frame()
	assert.Equal(t, interaction.ModeNormal, g.Mode(), "passing through the corner does not open the menu")

	g.Submit(oneFinger(400, 300))
	g.Submit(fingers(2, Hand{ScaleFactor: 1}))
	for i := 0; i < MenuDwellFrames-1; i++ {
		g.Submit(oneFinger(790, 590))
	}
	g.Frame()
	assert.Equal(t, interaction.ModeNormal, g.Mode(), "leaving the hotspot restarts the count")

	g.Submit(oneFinger(790, 590))
	g.Frame()
	assert.Equal(t, interaction.ModeMenu, g.Mode())
}
