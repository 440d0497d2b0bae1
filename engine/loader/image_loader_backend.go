package loader

import (
	"io"

	"github.com/Carmen-Shannon/oxy-batch/common"
	"github.com/Carmen-Shannon/oxy-batch/engine/texture"
)

// imageLoaderBackend decodes raster images through the texture package.
type imageLoaderBackend struct{}

var _ loaderBackend = &imageLoaderBackend{}

func newImageLoaderBackend() loaderBackend {
	return &imageLoaderBackend{}
}

func (b *imageLoaderBackend) Load(path string) (common.TextureStagingData, error) {
	return texture.Load(path)
}

func (b *imageLoaderBackend) LoadReader(r io.Reader) (common.TextureStagingData, error) {
	staging, _, err := texture.Decode(r)
	return staging, err
}
