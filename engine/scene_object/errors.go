package scene_object

import "errors"

var (
	// ErrMissingID is returned when a descriptor has no identifier.
	ErrMissingID = errors.New("scene object descriptor requires an id")

	// ErrMissingMaterial is returned when a descriptor has no material.
	ErrMissingMaterial = errors.New("scene object descriptor requires a material")
)
