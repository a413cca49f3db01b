package controller

import (
	"github.com/Carmen-Shannon/anatomy-viewer/engine/interaction"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/picker"
	"github.com/rs/zerolog"
)

// GestureControllerBuilderOption is a functional option for configuring a GestureController.
type GestureControllerBuilderOption func(*gestureController)

// WithHighlighting enables one-finger highlighting. Picks run through p and are reported to
// listeners of sm as hover events.
//
// Parameters:
//   - p: the picker
//   - sm: the state machine that dispatches the result
//
// Returns:
//   - GestureControllerBuilderOption: functional option to enable highlighting
func WithHighlighting(p picker.Picker, sm interaction.StateMachine) GestureControllerBuilderOption {
	return func(g *gestureController) {
		g.picker = p
		g.highlighter = sm
	}
}

// WithMenuHandler registers a callback invoked when a menu item is chosen.
func WithMenuHandler(fn func(item MenuItem)) GestureControllerBuilderOption {
	return func(g *gestureController) {
		g.onMenu = fn
	}
}

// WithGestureLogger sets the logger.
func WithGestureLogger(logger zerolog.Logger) GestureControllerBuilderOption {
	return func(g *gestureController) {
		g.logger = logger
	}
}
