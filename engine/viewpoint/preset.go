package viewpoint

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrMalformedURL is returned when a viewpoint URL does not end in three numeric triples.
var ErrMalformedURL = errors.New("malformed viewpoint url")

// Preset is a fully specified camera configuration that bypasses extent-based framing.
type Preset struct {
	Rotation    mgl32.Vec3 `yaml:"rotation,flow"`
	Translation mgl32.Vec3 `yaml:"translation,flow"`
	CameraPos   mgl32.Vec3 `yaml:"camera_pos,flow"`
}

// EncodeURL appends the preset to base as "/x,y,z/rx,ry,rz/tx,ty,tz/" where the triples are
// camera position, rotation and translation.
//
// Parameters:
//   - base: the viewer URL without a viewpoint
//   - p: the viewpoint to embed
//
// Returns:
//   - string: the full URL
func EncodeURL(base string, p Preset) string {
	var sb strings.Builder
	sb.WriteString(strings.TrimRight(base, "/"))
	for _, v := range []mgl32.Vec3{p.CameraPos, p.Rotation, p.Translation} {
		sb.WriteByte('/')
		sb.WriteString(formatTriple(v))
	}
	sb.WriteByte('/')
	return sb.String()
}

// ParseURL reads a preset from the last three path segments of a URL produced by EncodeURL.
// Segments may be percent-encoded.
//
// Parameters:
//   - s: the URL
//
// Returns:
//   - Preset: the decoded preset
//   - error: ErrMalformedURL wrapped with the failing segment
func ParseURL(s string) (Preset, error) {
	parts := strings.Split(strings.TrimRight(s, "/"), "/")
	if len(parts) < 3 {
		return Preset{}, fmt.Errorf("%w: expected three segments in %q", ErrMalformedURL, s)
	}
	parts = parts[len(parts)-3:]

	var triples [3]mgl32.Vec3
	for i, part := range parts {
		unescaped, err := url.PathUnescape(part)
		if err != nil {
			return Preset{}, fmt.Errorf("%w: %v", ErrMalformedURL, err)
		}
		v, err := parseTriple(unescaped)
		if err != nil {
			return Preset{}, err
		}
		triples[i] = v
	}
	return Preset{CameraPos: triples[0], Rotation: triples[1], Translation: triples[2]}, nil
}

func formatTriple(v mgl32.Vec3) string {
	parts := make([]string, 3)
	for i := range parts {
		parts[i] = strconv.FormatFloat(float64(v[i]), 'g', -1, 32)
	}
	return strings.Join(parts, ",")
}

func parseTriple(s string) (mgl32.Vec3, error) {
	fields := strings.Split(s, ",")
	if len(fields) != 3 {
		return mgl32.Vec3{}, fmt.Errorf("%w: segment %q is not a triple", ErrMalformedURL, s)
	}
	var v mgl32.Vec3
	for i, f := range fields {
		n, err := strconv.ParseFloat(strings.TrimSpace(f), 32)
		if err != nil {
			return mgl32.Vec3{}, fmt.Errorf("%w: segment %q: %v", ErrMalformedURL, s, err)
		}
		v[i] = float32(n)
	}
	return v, nil
}
