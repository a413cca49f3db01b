package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/anatomy-viewer/common"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/picker"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/viewpoint"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "viewer.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))

	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
window:
  title: Thorax
picking:
  policy: under_cursor
  primary_view: 3
zoom:
  min: 0.5
  max: 4
  default: 1
objects:
  - id: heart
    name: Heart
    layer: circulatory
    material:
      diffuse: "#cc3333"
    min: [-1, -1, -1]
    max: [1, 1, 1]
layers:
  circulatory: [aorta]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Thorax", cfg.Window.Title)
	assert.Equal(t, 1280, cfg.Window.Width, "unset fields keep defaults")
	assert.Equal(t, zerolog.DebugLevel, cfg.Level())
	assert.Equal(t, picker.PolicyViewUnderCursor, cfg.PickPolicy())
	assert.Equal(t, 3, cfg.Picking.PrimaryView)
	assert.True(t, cfg.Picking.OnHover)
	assert.Equal(t, viewpoint.Limits{Min: 0.5, Max: 4, Default: 1}, cfg.Zoom)
	require.Len(t, cfg.Objects, 1)
	assert.Equal(t, "heart", cfg.Objects[0].ID)
	require.NotNil(t, cfg.Objects[0].Material)
	assert.Equal(t, common.ColorFromHex(0xcc3333), cfg.Objects[0].Material.Diffuse)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, cfg.Objects[0].Max)
	assert.Equal(t, []string{"aorta"}, cfg.Layers["circulatory"])
}

func TestLoadRejectsBadFiles(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		invalid bool
	}{
		{"malformed yaml", "window: [unterminated", false},
		{"unknown policy", "picking:\n  policy: nearest\n", true},
		{"inverted zoom", "zoom:\n  min: 5\n  max: 1\n", true},
		{"bad viewpoint url", "viewpoint_url: https://example.org/a/b/\n", true},
		{"object without id", "objects:\n  - name: Heart\n", true},
		{"primary view past last view", "picking:\n  primary_view: 4\n", true},
		{"negative primary view", "picking:\n  primary_view: -1\n", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Equal(t, tt.invalid, errors.Is(err, ErrInvalid))
		})
	}
}

func TestPresetFromURL(t *testing.T) {
	cfg := Default()
	cfg.ViewpointURL = "https://example.org/viewer/0,0,400/0.5,0,0/1,2,3/"

	p, err := cfg.Preset()
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, mgl32.Vec3{0, 0, 400}, p.CameraPos)
	assert.Equal(t, mgl32.Vec3{0.5, 0, 0}, p.Rotation)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, p.Translation)

	explicit := &viewpoint.Preset{CameraPos: mgl32.Vec3{0, 0, 9}}
	cfg.ViewpointPreset = explicit
	p, err = cfg.Preset()
	require.NoError(t, err)
	assert.Same(t, explicit, p)
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.yaml")
	cfg := Default()
	cfg.BaseURL = "https://example.org/viewer"
	cfg.ViewpointPreset = &viewpoint.Preset{CameraPos: mgl32.Vec3{0, 0, 250}}

	require.NoError(t, Save(path, cfg))
	loaded, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
