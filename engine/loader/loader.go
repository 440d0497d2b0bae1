package loader

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/oxy-batch/common"
	"github.com/Carmen-Shannon/oxy-batch/engine/renderer"
)

// LoaderBackendType identifies the file format backend to use.
type LoaderBackendType int

const (
	// BackendTypeImage selects the raster image backend (PNG, JPEG, BMP, TIFF, WebP).
	BackendTypeImage LoaderBackendType = iota
)

var (
	// ErrUnsupportedFormat is returned for file extensions no backend decodes.
	ErrUnsupportedFormat = errors.New("loader: unsupported texture format")
	// ErrNoRenderer is returned when a texture must be created but no renderer was configured.
	ErrNoRenderer = errors.New("loader: cannot create textures without a renderer")
)

// TextureFactory creates GPU textures from staging data. renderer.Renderer satisfies it.
type TextureFactory interface {
	CreateTexture(label string, pixels common.TextureStagingData, sampler common.SamplerStagingData) (renderer.Texture, error)
}

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	renderer TextureFactory
	sampler  common.SamplerStagingData

	textureCache map[string]renderer.Texture

	backend loaderBackend
}

// Loader loads sprite textures from image files and caches them by path, so sprites that share
// an image share one texture and batch together.
type Loader interface {
	// Load decodes an image file and creates a texture from it, caching the result.
	// If the texture is already cached (by file path), the cached version is returned.
	//
	// Parameters:
	//   - path: the file path to the image
	//
	// Returns:
	//   - renderer.Texture: the loaded and cached texture
	//   - error: error if the format is unsupported, decoding fails or the texture cannot be created
	Load(path string) (renderer.Texture, error)

	// LoadReader decodes an image from a reader stream and caches it by the given name.
	//
	// Parameters:
	//   - name: the cache key and texture label
	//   - r: the reader providing encoded image data
	//
	// Returns:
	//   - renderer.Texture: the loaded texture
	//   - error: error if loading fails
	LoadReader(name string, r io.Reader) (renderer.Texture, error)

	// Get retrieves a cached texture by name. Returns nil if not found.
	//
	// Parameters:
	//   - name: the cache key to look up
	//
	// Returns:
	//   - renderer.Texture: the cached texture or nil
	Get(name string) renderer.Texture

	// Textures returns a copy of the texture cache.
	//
	// Returns:
	//   - map[string]renderer.Texture: all cached textures keyed by name
	Textures() map[string]renderer.Texture

	// Release releases every cached texture and empties the cache.
	Release()
}

var _ Loader = &loader{}

// NewLoader creates a new Loader instance with the specified backend type and options applied.
//
// Parameters:
//   - backendType: the type of loader backend to use (e.g., BackendTypeImage)
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader configured with the provided backend and options
func NewLoader(backendType LoaderBackendType, options ...LoaderBuilderOption) Loader {
	l := &loader{
		sampler:      common.DefaultSampler(),
		textureCache: make(map[string]renderer.Texture),
	}

	switch backendType {
	case BackendTypeImage:
		l.backend = newImageLoaderBackend()
	}

	for _, option := range options {
		option(l)
	}
	return l
}

func (l *loader) Load(path string) (renderer.Texture, error) {
	if cached := l.Get(path); cached != nil {
		return cached, nil
	}

	backend, err := l.resolveBackend(path)
	if err != nil {
		return nil, err
	}

	staging, err := backend.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	return l.store(path, filepath.Base(path), staging)
}

func (l *loader) LoadReader(name string, r io.Reader) (renderer.Texture, error) {
	if cached := l.Get(name); cached != nil {
		return cached, nil
	}

	staging, err := l.backend.LoadReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to load from reader %q: %w", name, err)
	}

	return l.store(name, name, staging)
}

func (l *loader) Get(name string) renderer.Texture {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.textureCache[name]
}

func (l *loader) Textures() map[string]renderer.Texture {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make(map[string]renderer.Texture, len(l.textureCache))
	for k, v := range l.textureCache {
		result[k] = v
	}
	return result
}

func (l *loader) Release() {
	l.mu.Lock()
	cache := l.textureCache
	l.textureCache = make(map[string]renderer.Texture)
	l.mu.Unlock()

	for _, tex := range cache {
		tex.Release()
	}
}

// store creates the GPU texture and caches it under key. If another caller cached the same key
// first, the new texture is released and the cached one returned.
func (l *loader) store(key, label string, staging common.TextureStagingData) (renderer.Texture, error) {
	if l.renderer == nil {
		return nil, ErrNoRenderer
	}

	tex, err := l.renderer.CreateTexture(label, staging, l.sampler)
	if err != nil {
		return nil, fmt.Errorf("failed to create texture %q: %w", key, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if existing, ok := l.textureCache[key]; ok {
		tex.Release()
		return existing, nil
	}
	l.textureCache[key] = tex
	return tex, nil
}

// resolveBackend selects an appropriate loader backend based on the file extension.
func (l *loader) resolveBackend(path string) (loaderBackend, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".bmp", ".tif", ".tiff", ".webp":
		return l.backend, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}
