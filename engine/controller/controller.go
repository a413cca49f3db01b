package controller

import (
	"github.com/Carmen-Shannon/anatomy-viewer/engine/camera"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/interaction"
)

// Controller turns interaction events into camera commands. Event handlers only record
// input; the command is produced and applied once per frame by Frame.
type Controller interface {
	interaction.Listener

	// Frame drains the input accumulated since the previous call into a single command and
	// applies it to the camera controller.
	//
	// Returns:
	//   - camera.Command: the command that was applied, zero if nothing changed
	Frame() camera.Command

	// Help describes the controls handled by this controller.
	Help() HelpConfig
}

// HelpItem is one control and what it does.
type HelpItem struct {
	Control     string `yaml:"control"`
	Description string `yaml:"description"`
}

// HelpConfig is a titled list of controls shown by a help overlay.
type HelpConfig struct {
	Title string     `yaml:"title"`
	Items []HelpItem `yaml:"items"`
}
