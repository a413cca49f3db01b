package controller

import (
	"testing"

	"github.com/Carmen-Shannon/anatomy-viewer/common"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/camera"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/interaction"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBase(t *testing.T, options ...BaseControllerBuilderOption) (BaseController, interaction.StateMachine, *recordingCamera) {
	t.Helper()
	cc := newRecordingCamera()
	b := NewBaseController(cc, options...)
	sm := interaction.NewStateMachine(nil)
	require.True(t, sm.AddListener(b))
	return b, sm, cc
}

func TestShiftPrimaryDragPans(t *testing.T) {
	b, sm, cc := newBase(t)

	sm.KeyDown(common.KeyLeftShift)
	sm.PointerDown(common.MouseButtonPrimary, 100, 100)
	first := b.Frame()
	sm.PointerMove(110, 95)
	second := b.Frame()

	assert.True(t, first.IsZero())
	assert.True(t, b.Panning())
	assert.False(t, b.Rotating())
	assert.Greater(t, second.Pan.X(), float32(0))
	assert.Greater(t, second.Pan.Y(), float32(0))
	assert.Equal(t, mgl32.Vec2{}, second.Rotate)
	assert.Zero(t, second.Zoom)
	require.Len(t, cc.applied, 1)
	assert.Equal(t, second, cc.applied[0])
}

func TestSecondaryDragRotates(t *testing.T) {
	b, sm, _ := newBase(t)

	sm.PointerDown(common.MouseButtonSecondary, 50, 50)
	b.Frame()
	sm.PointerMove(40, 70)
	cmd := b.Frame()

	assert.InDelta(t, -0.1, cmd.Rotate.X(), 1e-6)
	assert.InDelta(t, 0.2, cmd.Rotate.Y(), 1e-6)
	assert.Equal(t, mgl32.Vec2{}, cmd.Pan)
	assert.Zero(t, cmd.Zoom)
}

func TestModesAreExclusive(t *testing.T) {
	b, sm, _ := newBase(t)

	sm.PointerDown(common.MouseButtonSecondary, 0, 0)
	require.True(t, b.Rotating())

	sm.KeyDown(common.KeyRightShift)
	sm.PointerDown(common.MouseButtonPrimary, 0, 0)
	assert.True(t, b.Panning())
	assert.False(t, b.Rotating())

	sm.PointerDown(common.MouseButtonSecondary, 0, 0)
	assert.True(t, b.Rotating())
	assert.False(t, b.Panning())
}

func TestModeExits(t *testing.T) {
	tests := []struct {
		name  string
		start func(sm interaction.StateMachine)
		exit  func(sm interaction.StateMachine)
	}{
		{
			name: "primary release ends pan",
			start: func(sm interaction.StateMachine) {
				sm.KeyDown(common.KeyLeftShift)
				sm.PointerDown(common.MouseButtonPrimary, 0, 0)
			},
			exit: func(sm interaction.StateMachine) { sm.PointerUp(common.MouseButtonPrimary, 0, 0) },
		},
		{
			name: "shift release ends pan",
			start: func(sm interaction.StateMachine) {
				sm.KeyDown(common.KeyLeftShift)
				sm.PointerDown(common.MouseButtonPrimary, 0, 0)
			},
			exit: func(sm interaction.StateMachine) { sm.KeyUp(common.KeyLeftShift) },
		},
		{
			name:  "secondary release ends rotate",
			start: func(sm interaction.StateMachine) { sm.PointerDown(common.MouseButtonSecondary, 0, 0) },
			exit:  func(sm interaction.StateMachine) { sm.PointerUp(common.MouseButtonSecondary, 0, 0) },
		},
		{
			name:  "leave ends rotate",
			start: func(sm interaction.StateMachine) { sm.PointerDown(common.MouseButtonSecondary, 0, 0) },
			exit:  func(sm interaction.StateMachine) { sm.PointerLeave() },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, sm, _ := newBase(t)
			tt.start(sm)
			require.True(t, b.Panning() || b.Rotating())

			tt.exit(sm)
			assert.False(t, b.Panning())
			assert.False(t, b.Rotating())

			sm.PointerMove(30, 30)
			assert.True(t, b.Frame().IsZero())
		})
	}
}

func TestPrimaryWithoutShiftDoesNotPan(t *testing.T) {
	b, sm, cc := newBase(t)

	sm.PointerDown(common.MouseButtonPrimary, 10, 10)
	sm.PointerMove(50, 50)

	assert.True(t, b.Frame().IsZero())
	assert.Empty(t, cc.applied)
}

func TestShiftPressedDuringPrimaryDragPans(t *testing.T) {
	b, sm, _ := newBase(t)

	sm.PointerDown(common.MouseButtonPrimary, 10, 10)
	sm.PointerMove(20, 10)
	sm.KeyDown(common.KeyLeftShift)
	require.True(t, b.Panning())

	assert.True(t, b.Frame().IsZero(), "pan anchors at the pointer when shift is pressed")
	sm.PointerMove(30, 10)
	assert.InDelta(t, 0.02, b.Frame().Pan.X(), 1e-6)
}

func TestRepeatedShiftKeepsPanDrag(t *testing.T) {
	b, sm, _ := newBase(t)

	sm.KeyDown(common.KeyLeftShift)
	sm.PointerDown(common.MouseButtonPrimary, 100, 100)
	require.True(t, b.Panning())
	b.Frame()

	sm.PointerMove(110, 95)
	sm.KeyDown(common.KeyLeftShift)
	cmd := b.Frame()

	assert.InDelta(t, 0.02, cmd.Pan.X(), 1e-6)
	assert.NotZero(t, cmd.Pan.Y())
}

func TestScrollAccumulatesAndResets(t *testing.T) {
	b, sm, _ := newBase(t)

	sm.Scroll(1)
	sm.Scroll(2)
	cmd := b.Frame()

	assert.InDelta(t, 0.09, cmd.Zoom, 1e-6)
	assert.Zero(t, b.Frame().Zoom)
}

func TestSensitivityOverride(t *testing.T) {
	b, sm, _ := newBase(t, WithSensitivity(Sensitivity{Zoom: 1}))

	sm.Scroll(2)
	sm.PointerDown(common.MouseButtonSecondary, 0, 0)
	sm.PointerMove(10, 0)
	cmd := b.Frame()

	assert.InDelta(t, 2, cmd.Zoom, 1e-6)
	assert.InDelta(t, 0.1, cmd.Rotate.X(), 1e-6, "unset fields keep defaults")
}

func TestKeys(t *testing.T) {
	var toggles []bool
	b, sm, cc := newBase(t, WithHelpHandler(func(v bool) { toggles = append(toggles, v) }))

	sm.KeyDown(common.KeyR)
	assert.Equal(t, 1, cc.resets)

	sm.KeyDown(common.KeySlash)
	assert.True(t, b.HelpVisible())
	sm.KeyDown(common.KeyH)
	assert.False(t, b.HelpVisible())
	assert.Equal(t, []bool{true, false}, toggles)
}

func TestHelpListsControls(t *testing.T) {
	b, _, _ := newBase(t)

	help := b.Help()

	assert.Equal(t, "Basic Controls", help.Title)
	controls := make([]string, 0, len(help.Items))
	for _, item := range help.Items {
		controls = append(controls, item.Control)
	}
	assert.Contains(t, controls, "R")
	assert.Contains(t, controls, "Right click")
}

func TestNewBaseControllerPanicsOnNil(t *testing.T) {
	assert.Panics(t, func() { NewBaseController(nil) })
}

var _ camera.CameraController = &recordingCamera{}
