package shader

import (
	_ "embed"

	"github.com/Carmen-Shannon/oxy-batch/engine/batcher"
	"github.com/cogentcore/webgpu/wgpu"
)

//go:embed sprite.wgsl
var spriteSource string

const (
	// SpriteCameraGroup is the bind group holding the view-projection uniform.
	SpriteCameraGroup = 0
	// SpriteTextureGroup is the bind group holding the sprite texture and its sampler.
	SpriteTextureGroup = 1

	// SpriteTextureBinding is the texture binding within SpriteTextureGroup.
	SpriteTextureBinding = 0
	// SpriteSamplerBinding is the sampler binding within SpriteTextureGroup.
	SpriteSamplerBinding = 1

	// SpriteCameraUniformSize is the byte size of the camera uniform (one mat4x4<f32>).
	SpriteCameraUniformSize = 64
)

// SpriteSource returns the WGSL source of the sprite shader.
func SpriteSource() string {
	return spriteSource
}

// SpriteVertexLayout returns the vertex buffer layout matching batcher.Vertex.
//
// Returns:
//   - wgpu.VertexBufferLayout: stride 24 with position, color and uv attributes
func SpriteVertexLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: uint64(batcher.VertexSize),
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: batcher.VertexPositionOffset, ShaderLocation: 0},
			{Format: wgpu.VertexFormatUnorm8x4, Offset: batcher.VertexColorOffset, ShaderLocation: 1},
			{Format: wgpu.VertexFormatFloat32x2, Offset: batcher.VertexUVOffset, ShaderLocation: 2},
		},
	}
}

// SpriteCameraLayout returns the layout of the camera bind group.
func SpriteCameraLayout() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: "Sprite Camera Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: SpriteCameraUniformSize,
				},
			},
		},
	}
}

// SpriteTextureLayout returns the layout of the texture bind group.
func SpriteTextureLayout() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: "Sprite Texture Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    SpriteTextureBinding,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
			{
				Binding:    SpriteSamplerBinding,
				Visibility: wgpu.ShaderStageFragment,
				Sampler: wgpu.SamplerBindingLayout{
					Type: wgpu.SamplerBindingTypeFiltering,
				},
			},
		},
	}
}

// NewSpriteShaders builds the vertex and fragment stages of the sprite pipeline from the embedded source.
//
// Returns:
//   - Shader: the vertex stage, carrying the vertex layout and the camera group
//   - Shader: the fragment stage, carrying the texture group
//   - error: an error if the embedded source does not match the declared layouts
func NewSpriteShaders() (Shader, Shader, error) {
	vs, err := NewShader("Sprite Vertex", ShaderTypeVertex, spriteSource,
		WithVertexLayout(SpriteVertexLayout()),
		WithBindGroupLayout(SpriteCameraGroup, SpriteCameraLayout()),
	)
	if err != nil {
		return nil, nil, err
	}
	fs, err := NewShader("Sprite Fragment", ShaderTypeFragment, spriteSource,
		WithBindGroupLayout(SpriteTextureGroup, SpriteTextureLayout()),
	)
	if err != nil {
		return nil, nil, err
	}
	return vs, fs, nil
}
