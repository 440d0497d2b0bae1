package loader

import (
	"github.com/Carmen-Shannon/oxy-batch/common"
	"github.com/Carmen-Shannon/oxy-batch/engine/renderer"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithRenderer is an option builder that sets the renderer used to create textures.
//
// Parameters:
//   - r: the texture factory, usually a renderer.Renderer
//
// Returns:
//   - LoaderBuilderOption: a function that applies the renderer option to a loader
func WithRenderer(r TextureFactory) LoaderBuilderOption {
	return func(l *loader) {
		l.renderer = r
	}
}

// WithSampler sets the sampler every loaded texture is created with. Defaults to
// common.DefaultSampler.
//
// Parameters:
//   - s: the sampler configuration
//
// Returns:
//   - LoaderBuilderOption: a function that applies the sampler option to a loader
func WithSampler(s common.SamplerStagingData) LoaderBuilderOption {
	return func(l *loader) {
		l.sampler = s
	}
}

// WithTexture is an option builder that pre-populates the texture cache.
//
// Parameters:
//   - key: the cache key for the texture
//   - tex: the texture to cache
//
// Returns:
//   - LoaderBuilderOption: a function that applies the texture option to a loader
func WithTexture(key string, tex renderer.Texture) LoaderBuilderOption {
	return func(l *loader) {
		l.textureCache[key] = tex
	}
}
