package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/Carmen-Shannon/anatomy-viewer/common"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/camera"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/controller"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/picker"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/scene_object"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/viewpoint"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned when a config file parses but holds unusable values.
var ErrInvalid = errors.New("invalid config")

// Config is the viewer's file configuration.
type Config struct {
	Window      WindowConfig           `yaml:"window"`
	LogLevel    string                 `yaml:"log_level"`
	Zoom        viewpoint.Limits       `yaml:"zoom"`
	Sensitivity controller.Sensitivity `yaml:"sensitivity"`
	Picking     PickingConfig          `yaml:"picking"`
	Renderer    RendererConfig         `yaml:"renderer"`
	Profiling   bool                   `yaml:"profiling"`
	Gestures    bool                   `yaml:"gestures"`

	// ViewpointPreset, when set, replaces computed framing. ViewpointURL is an alternative
	// spelling of the same preset as a viewer URL; the explicit preset wins.
	ViewpointPreset *viewpoint.Preset `yaml:"viewpoint_preset,omitempty"`
	ViewpointURL    string            `yaml:"viewpoint_url,omitempty"`

	BaseURL string `yaml:"base_url"`
	MeshDir string `yaml:"mesh_dir"`

	Objects    []scene_object.Descriptor `yaml:"objects,omitempty"`
	LayerOrder []string                  `yaml:"layer_order,omitempty"`
	Layers     map[string][]string       `yaml:"layers,omitempty"`
}

// WindowConfig sizes and titles the window.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// PickingConfig selects when and where pointer picking happens.
type PickingConfig struct {
	OnClick     bool   `yaml:"on_click"`
	OnHover     bool   `yaml:"on_hover"`
	Policy      string `yaml:"policy"`
	PrimaryView int    `yaml:"primary_view"`
}

// RendererConfig holds the GPU presentation settings.
type RendererConfig struct {
	VSync         bool          `yaml:"vsync"`
	MSAA          bool          `yaml:"msaa"`
	ForceSoftware bool          `yaml:"force_software"`
	FrameLimit    float64       `yaml:"frame_limit"`
	ClearColor    *common.Color `yaml:"clear_color,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Window:      WindowConfig{Title: "Anatomy Viewer", Width: 1280, Height: 720},
		LogLevel:    "info",
		Zoom:        viewpoint.DefaultLimits(),
		Sensitivity: controller.DefaultSensitivity,
		Picking:     PickingConfig{OnClick: true, OnHover: true, Policy: "primary"},
		Renderer:    RendererConfig{VSync: true, MSAA: true},
	}
}

// Load reads a YAML config file on top of Default. A missing file yields the defaults.
//
// Parameters:
//   - path: the file to read
//
// Returns:
//   - *Config: the configuration
//   - error: a read or parse error, or ErrInvalid wrapped with the offending field
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// Validate checks values a YAML decode cannot.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if c.Zoom.Min > c.Zoom.Max {
		return fmt.Errorf("%w: zoom min %g above max %g", ErrInvalid, c.Zoom.Min, c.Zoom.Max)
	}
	switch c.Picking.Policy {
	case "", "primary", "under_cursor":
	default:
		return fmt.Errorf("%w: picking policy %q", ErrInvalid, c.Picking.Policy)
	}
	if views := len(camera.DefaultViewConfigs()); c.Picking.PrimaryView < 0 || c.Picking.PrimaryView >= views {
		return fmt.Errorf("%w: primary view %d outside [0, %d)", ErrInvalid, c.Picking.PrimaryView, views)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := c.Preset(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	for i, d := range c.Objects {
		if d.ID == "" {
			return fmt.Errorf("%w: object %d has no id", ErrInvalid, i)
		}
	}
	return nil
}

// Level returns the configured log level, info when unset or unknown.
func (c *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

// Preset returns the configured viewpoint preset, decoding ViewpointURL when no explicit
// preset is given.
//
// Returns:
//   - *viewpoint.Preset: the preset, or nil for computed framing
//   - error: viewpoint.ErrMalformedURL wrapped when ViewpointURL cannot be decoded
func (c *Config) Preset() (*viewpoint.Preset, error) {
	if c.ViewpointPreset != nil {
		return c.ViewpointPreset, nil
	}
	if c.ViewpointURL == "" {
		return nil, nil
	}
	p, err := viewpoint.ParseURL(c.ViewpointURL)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// PickPolicy maps Picking.Policy to a picker policy.
func (c *Config) PickPolicy() picker.Policy {
	return picker.ParsePolicy(c.Picking.Policy)
}
