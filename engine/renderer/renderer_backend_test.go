package renderer

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-batch/common"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresentMode(t *testing.T) {
	assert.Equal(t, wgpu.PresentModeFifo, wgpuPresentMode(PresentModeVSync))
	assert.Equal(t, wgpu.PresentModeImmediate, wgpuPresentMode(PresentModeUncapped))
	assert.Equal(t, wgpu.PresentModeImmediate, wgpuPresentMode(PresentMode(42)))

	assert.Equal(t, "vsync", PresentModeVSync.String())
	assert.Equal(t, "uncapped", PresentModeUncapped.String())
	assert.Equal(t, "unknown", PresentMode(42).String())
}

func TestMSAASampleCount_Valid(t *testing.T) {
	for _, c := range []MSAASampleCount{MSAAOff, MSAA4x, MSAA8x, MSAA16x} {
		assert.True(t, c.Valid(), "%d", c)
	}
	for _, c := range []MSAASampleCount{0, 2, 3, 32} {
		assert.False(t, c.Valid(), "%d", c)
	}
}

func TestWGPUColor(t *testing.T) {
	assert.Equal(t, wgpu.Color{R: 1, G: 1, B: 1, A: 1}, wgpuColor(common.White))
	assert.Equal(t, wgpu.Color{A: 1}, wgpuColor(common.Black))

	c := wgpuColor(common.RGBA(51, 102, 0, 255))
	assert.InDelta(t, 0.2, c.R, 1e-9)
	assert.InDelta(t, 0.4, c.G, 1e-9)
	assert.InDelta(t, 0, c.B, 1e-9)
}

func TestMergeBindGroupLayouts(t *testing.T) {
	vertex := map[int]wgpu.BindGroupLayoutDescriptor{
		0: {Label: "camera", Entries: []wgpu.BindGroupLayoutEntry{
			{Binding: 0, Visibility: wgpu.ShaderStageVertex},
		}},
		1: {Label: "shared", Entries: []wgpu.BindGroupLayoutEntry{
			{Binding: 1, Visibility: wgpu.ShaderStageVertex},
		}},
	}
	fragment := map[int]wgpu.BindGroupLayoutDescriptor{
		1: {Label: "texture", Entries: []wgpu.BindGroupLayoutEntry{
			{Binding: 1, Visibility: wgpu.ShaderStageFragment},
			{Binding: 0, Visibility: wgpu.ShaderStageFragment},
		}},
	}

	merged := mergeBindGroupLayouts(vertex, fragment)
	require.Len(t, merged, 2)
	assert.Equal(t, vertex[0], merged[0])

	shared := merged[1]
	assert.Equal(t, "shared", shared.Label)
	require.Len(t, shared.Entries, 2)
	assert.Equal(t, uint32(0), shared.Entries[0].Binding)
	assert.Equal(t, wgpu.ShaderStageFragment, shared.Entries[0].Visibility)
	assert.Equal(t, uint32(1), shared.Entries[1].Binding)
	assert.Equal(t, wgpu.ShaderStageVertex|wgpu.ShaderStageFragment, shared.Entries[1].Visibility)
}
