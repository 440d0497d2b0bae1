package bind_group_provider

import (
	"errors"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntriesMissingResource(t *testing.T) {
	p := NewBindGroupProvider("Sprite Texture")
	assert.Equal(t, "Sprite Texture", p.Label())

	desc := wgpu.BindGroupLayoutDescriptor{
		Entries: []wgpu.BindGroupLayoutEntry{
			{Binding: 0, Texture: wgpu.TextureBindingLayout{SampleType: wgpu.TextureSampleTypeFloat}},
			{Binding: 1, Sampler: wgpu.SamplerBindingLayout{Type: wgpu.SamplerBindingTypeFiltering}},
		},
	}
	_, err := p.Entries(desc)
	require.Error(t, err)

	var missing *MissingResourceError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, 0, missing.Binding)
	assert.Equal(t, "texture view", missing.Kind)
	assert.Equal(t, `bind group "Sprite Texture": binding 0 has no texture view`, err.Error())
}

func TestEntriesMissingBuffer(t *testing.T) {
	p := NewBindGroupProvider("Camera")
	desc := wgpu.BindGroupLayoutDescriptor{
		Entries: []wgpu.BindGroupLayoutEntry{
			{Binding: 0, Buffer: wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform}},
		},
	}
	_, err := p.Entries(desc)

	var missing *MissingResourceError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "buffer", missing.Kind)
}

func TestEmptyProvider(t *testing.T) {
	p := NewBindGroupProvider("empty")
	assert.Nil(t, p.BindGroup())
	assert.Nil(t, p.BindGroupLayout())
	assert.Nil(t, p.Buffer(0))
	assert.Nil(t, p.Texture(0))
	assert.Nil(t, p.TextureView(0))
	assert.Nil(t, p.Sampler(0))

	entries, err := p.Entries(wgpu.BindGroupLayoutDescriptor{})
	require.NoError(t, err)
	assert.Empty(t, entries)

	p.Release()
}
