package viewpoint

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeURL(t *testing.T) {
	p := Preset{
		CameraPos:   mgl32.Vec3{0, 0, 6},
		Rotation:    mgl32.Vec3{0.5, -1.25, 0},
		Translation: mgl32.Vec3{-1, 2.5, 3},
	}
	assert.Equal(t, "http://viewer/model/0,0,6/0.5,-1.25,0/-1,2.5,3/", EncodeURL("http://viewer/model/", p))
}

func TestURLRoundTrip(t *testing.T) {
	p := Preset{
		CameraPos:   mgl32.Vec3{1.5, -2, 300.25},
		Rotation:    mgl32.Vec3{0.1, 0.2, 0.3},
		Translation: mgl32.Vec3{-7, 0, 1e-3},
	}
	got, err := ParseURL(EncodeURL("https://example.org/anatomy", p))
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestParseURLAcceptsEscapedCommas(t *testing.T) {
	got, err := ParseURL("/view/1%2C2%2C3/0%2C0%2C0/4%2C5%2C6/")
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, got.CameraPos)
	assert.Equal(t, mgl32.Vec3{4, 5, 6}, got.Translation)
}

func TestParseURLErrors(t *testing.T) {
	for _, in := range []string{"", "/1,2,3/", "/a/1,2/3,4,5/6,7,8/extra,x,1/", "/1,2,3/4,5,6/7,8,nope/"} {
		_, err := ParseURL(in)
		assert.ErrorIs(t, err, ErrMalformedURL, in)
	}
}
