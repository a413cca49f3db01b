package common

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// Color is a linear RGB color with components in [0, 1].
type Color struct {
	R, G, B float32
}

// ColorFromHex converts a 0xRRGGBB value into a Color.
//
// Parameters:
//   - hex: packed 24-bit color
//
// Returns:
//   - Color: the unpacked color
func ColorFromHex(hex uint32) Color {
	return Color{
		R: float32((hex>>16)&0xff) / 255,
		G: float32((hex>>8)&0xff) / 255,
		B: float32(hex&0xff) / 255,
	}
}

// Hex packs the color back into 0xRRGGBB, rounding each channel.
func (c Color) Hex() uint32 {
	ch := func(v float32) uint32 {
		return uint32(Clamp(v, 0, 1)*255 + 0.5)
	}
	return ch(c.R)<<16 | ch(c.G)<<8 | ch(c.B)
}

// Add returns the per-channel sum clamped to 1.
func (c Color) Add(o Color) Color {
	return Color{R: min(c.R+o.R, 1), G: min(c.G+o.G, 1), B: min(c.B+o.B, 1)}
}

// Vec4 returns the color as (r, g, b, alpha).
func (c Color) Vec4(alpha float32) mgl32.Vec4 {
	return mgl32.Vec4{c.R, c.G, c.B, alpha}
}

// ParseColor parses "#rrggbb", "0xrrggbb" or a decimal integer.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	base := 10
	switch {
	case strings.HasPrefix(s, "#"):
		s, base = s[1:], 16
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		s, base = s[2:], 16
	}
	v, err := strconv.ParseUint(s, base, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return ColorFromHex(uint32(v)), nil
}

// String formats the color as #rrggbb.
func (c Color) String() string {
	return fmt.Sprintf("#%06x", c.Hex())
}

// MarshalYAML writes the color as a #rrggbb string.
func (c Color) MarshalYAML() (any, error) {
	return c.String(), nil
}

// UnmarshalYAML accepts either a scalar color or a {r, g, b} mapping.
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		parsed, err := ParseColor(value.Value)
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	}
	var raw struct {
		R float32 `yaml:"r"`
		G float32 `yaml:"g"`
		B float32 `yaml:"b"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	*c = Color{R: raw.R, G: raw.G, B: raw.B}
	return nil
}
