package loader

import (
	"io"

	"github.com/Carmen-Shannon/oxy-batch/common"
)

// loaderBackend defines the generic interface for decoding textures from files or streams.
// Concrete implementations (e.g., imageLoaderBackend) handle format-specific details.
type loaderBackend interface {
	// Load decodes the image at the given file path.
	//
	// Parameters:
	//   - path: the file path to load
	//
	// Returns:
	//   - common.TextureStagingData: the decoded RGBA pixels
	//   - error: error if loading fails
	Load(path string) (common.TextureStagingData, error)

	// LoadReader decodes an image from a reader stream.
	//
	// Parameters:
	//   - r: the reader providing encoded image data
	//
	// Returns:
	//   - common.TextureStagingData: the decoded RGBA pixels
	//   - error: error if loading fails
	LoadReader(r io.Reader) (common.TextureStagingData, error)
}
