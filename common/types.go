// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// TextureStagingData holds RGBA pixel data for a texture pending GPU upload.
// The renderer consumes this when creating a sprite texture and its bind group.
type TextureStagingData struct {
	// Pixels is the byte slice representing the actual pixel data for the texture. It should be in RGBA format, with 4 bytes per pixel.
	Pixels []byte
	// Width is the width of the texture in pixels. This is also the divisor used to normalize sprite source rectangles.
	Width uint32
	// Height is the height of the texture in pixels. This is also the divisor used to normalize sprite source rectangles.
	Height uint32
}

// SamplerStagingData holds the configuration for a sampler pending GPU creation.
// The zero value selects DefaultSampler. Any other value is used as given, except that a zero
// LodMaxClamp becomes 32 and a zero MaxAnisotropy becomes 1.
type SamplerStagingData struct {
	// AddressModeU, AddressModeV, AddressModeW specify the addressing mode for texture coordinates outside the [0, 1] range in each dimension (U, V, W).
	AddressModeU, AddressModeV, AddressModeW wgpu.AddressMode
	// MagFilter and MinFilter specify the filtering mode for magnification and minification.
	MagFilter, MinFilter wgpu.FilterMode
	// MipmapFilter specifies the filtering mode for mipmap level selection.
	MipmapFilter wgpu.MipmapFilterMode
	// LodMinClamp and LodMaxClamp specify the minimum and maximum level of detail (LOD) for mipmapping.
	LodMinClamp, LodMaxClamp float32
	// MaxAnisotropy specifies the maximum anisotropy level for anisotropic filtering.
	MaxAnisotropy uint16
}

// DefaultSampler returns clamp-to-edge addressing with linear filtering.
//
// Returns:
//   - SamplerStagingData: the default sampler configuration
func DefaultSampler() SamplerStagingData {
	return SamplerStagingData{
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeLinear,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	}
}

// PixelArtSampler returns sampler staging data with nearest-neighbour filtering,
// which keeps hard texel edges when sprites are scaled up.
//
// Returns:
//   - SamplerStagingData: a nearest-filtering, clamp-to-edge sampler configuration
func PixelArtSampler() SamplerStagingData {
	s := DefaultSampler()
	s.MagFilter = wgpu.FilterModeNearest
	s.MinFilter = wgpu.FilterModeNearest
	s.MipmapFilter = wgpu.MipmapFilterModeNearest
	return s
}

// TilingSampler returns linear filtering with repeat addressing, so source rectangles larger
// than the texture tile it.
//
// Returns:
//   - SamplerStagingData: a repeating sampler configuration
func TilingSampler() SamplerStagingData {
	s := DefaultSampler()
	s.AddressModeU = wgpu.AddressModeRepeat
	s.AddressModeV = wgpu.AddressModeRepeat
	s.AddressModeW = wgpu.AddressModeRepeat
	return s
}
