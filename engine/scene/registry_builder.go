package scene

import (
	"github.com/Carmen-Shannon/anatomy-viewer/engine/scene_object"
	"github.com/rs/zerolog"
)

// RegistryBuilderOption is a functional option for configuring a Registry.
// Use the With* functions to create options.
type RegistryBuilderOption func(r *registry)

// WithLogger sets the logger used for registry events.
//
// Parameters:
//   - logger: the zerolog logger
//
// Returns:
//   - RegistryBuilderOption: option function to apply
func WithLogger(logger zerolog.Logger) RegistryBuilderOption {
	return func(r *registry) {
		r.logger = logger.With().Str("component", "scene").Logger()
	}
}

// WithObjects adds initial objects to the registry. Duplicate IDs are skipped.
//
// Parameters:
//   - objects: the objects to add
//
// Returns:
//   - RegistryBuilderOption: option function to apply
func WithObjects(objects ...scene_object.SceneObject) RegistryBuilderOption {
	return func(r *registry) {
		for _, obj := range objects {
			r.Add(obj)
		}
	}
}
