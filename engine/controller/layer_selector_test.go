package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLayerEnableDisableToggle(t *testing.T) {
	heart := newObject(t, "heart", "Heart", "circulatory")
	aorta := newObject(t, "aorta", "Aorta", "")
	femur := newObject(t, "femur", "Femur", "skeletal")
	ls := NewLayerSelector(newRegistry(t, heart, aorta, femur), nil, map[string][]string{"circulatory": {"aorta", "missing"}})

	ls.Disable("circulatory")
	assert.False(t, heart.Visible())
	assert.False(t, aorta.Visible(), "members listed by id follow the layer")
	assert.True(t, femur.Visible())
	assert.False(t, ls.Enabled("circulatory"))

	assert.True(t, ls.Toggle("circulatory"))
	assert.True(t, heart.Visible())
	assert.True(t, aorta.Visible())

	ls.Disable("skeletal")
	ls.Enable("skeletal")
	assert.True(t, femur.Visible())
}

func TestLayerPeelAndRestore(t *testing.T) {
	skin := newObject(t, "m", "Muscle", "muscular")
	bone := newObject(t, "s", "Bone", "skeletal")
	ls := NewLayerSelector(newRegistry(t, skin, bone), []string{"skeletal", "muscular"}, nil)

	assert.Equal(t, "muscular", ls.PeelNext())
	assert.False(t, skin.Visible())
	assert.True(t, bone.Visible())
	assert.Equal(t, "skeletal", ls.PeelNext())
	assert.Equal(t, "", ls.PeelNext())

	assert.Equal(t, "skeletal", ls.RestoreNext())
	assert.True(t, bone.Visible())
	assert.False(t, skin.Visible())
	assert.Equal(t, "muscular", ls.RestoreNext())
	assert.Equal(t, "", ls.RestoreNext())
}

func TestDefaultLayers(t *testing.T) {
	ls := NewLayerSelector(newRegistry(t), nil, nil)

	assert.Equal(t, DefaultLayers, ls.Layers())
	for _, l := range DefaultLayers {
		assert.True(t, ls.Enabled(l))
	}
}
