package renderer

import (
	"github.com/Carmen-Shannon/oxy-batch/engine/batcher"
	"github.com/Carmen-Shannon/oxy-batch/engine/renderer/bind_group_provider"
)

// Texture is a sprite texture created by a Renderer. The handle is what sprites carry; a Renderer
// only binds textures it created itself.
type Texture interface {
	batcher.Texture

	// Label returns the debug label the texture was created with.
	Label() string

	// Release frees the texture, its view, its sampler and its bind group.
	Release()
}

type texture struct {
	width    uint32
	height   uint32
	provider bind_group_provider.BindGroupProvider
}

var _ Texture = &texture{}

func (t *texture) Width() uint32 {
	return t.width
}

func (t *texture) Height() uint32 {
	return t.height
}

func (t *texture) Label() string {
	return t.provider.Label()
}

func (t *texture) Release() {
	t.provider.Release()
}
