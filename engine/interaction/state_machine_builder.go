package interaction

import "github.com/rs/zerolog"

// StateMachineBuilderOption is a functional option for configuring a StateMachine.
type StateMachineBuilderOption func(*stateMachine)

// WithPickOnClick enables or disables picking on primary press.
//
// Parameters:
//   - enabled: true to pick on click
//
// Returns:
//   - StateMachineBuilderOption: functional option to set the flag
func WithPickOnClick(enabled bool) StateMachineBuilderOption {
	return func(sm *stateMachine) {
		sm.pickOnClick = enabled
	}
}

// WithPickOnHover enables or disables picking on pointer move.
//
// Parameters:
//   - enabled: true to pick on hover
//
// Returns:
//   - StateMachineBuilderOption: functional option to set the flag
func WithPickOnHover(enabled bool) StateMachineBuilderOption {
	return func(sm *stateMachine) {
		sm.pickOnHover = enabled
	}
}

// WithListeners registers listeners at construction.
func WithListeners(listeners ...Listener) StateMachineBuilderOption {
	return func(sm *stateMachine) {
		for _, l := range listeners {
			sm.listeners.Add(l)
		}
	}
}

// WithLogger sets the logger used for pick diagnostics.
func WithLogger(logger zerolog.Logger) StateMachineBuilderOption {
	return func(sm *stateMachine) {
		sm.logger = logger.With().Str("component", "interaction").Logger()
	}
}
