package bind_group_provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBindGroupProviderIsEmpty(t *testing.T) {
	p := NewBindGroupProvider("heart")

	assert.Equal(t, "heart", p.Label())
	assert.Nil(t, p.BindGroup())
	assert.Nil(t, p.Buffer(0))
	assert.Empty(t, p.Buffers())
	assert.False(t, p.Drawable())
}

func TestReleaseWithoutResources(t *testing.T) {
	p := NewBindGroupProvider("lung")
	p.SetIndexCount(36)
	p.SetBuffer(0, nil)

	p.Release()

	assert.Equal(t, 0, p.IndexCount())
	assert.Empty(t, p.Buffers())
	assert.False(t, p.Drawable())
}
