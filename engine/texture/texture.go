// Package texture turns image files and procedural patterns into RGBA staging data for sprite
// textures, and slices sprite sheets into source rectangles.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/Carmen-Shannon/oxy-batch/common"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// MaxDimension is the largest width or height accepted for a sprite texture, matching the
// default WebGPU maxTextureDimension2D limit.
const MaxDimension = 8192

var (
	// ErrEmptyImage is returned when a decoded image has no pixels.
	ErrEmptyImage = errors.New("texture: image has no pixels")
	// ErrTooLarge is returned when an image exceeds MaxDimension on either axis.
	ErrTooLarge = errors.New("texture: image exceeds maximum dimension")
)

// Decode reads an encoded image (PNG, JPEG, BMP, TIFF or WebP) and converts it to tightly packed,
// non-premultiplied RGBA staging data.
//
// Parameters:
//   - r: the reader providing the encoded image
//
// Returns:
//   - common.TextureStagingData: the decoded pixels and dimensions
//   - string: the format name reported by the decoder
//   - error: error if the image cannot be decoded or has unusable dimensions
func Decode(r io.Reader) (common.TextureStagingData, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return common.TextureStagingData{}, "", fmt.Errorf("failed to decode image: %w", err)
	}
	data, err := FromImage(img)
	if err != nil {
		return common.TextureStagingData{}, format, err
	}
	return data, format, nil
}

// DecodeBytes is Decode over an in-memory encoded image.
//
// Parameters:
//   - data: the encoded image bytes
//
// Returns:
//   - common.TextureStagingData: the decoded pixels and dimensions
//   - error: error if decoding fails
func DecodeBytes(data []byte) (common.TextureStagingData, error) {
	staging, _, err := Decode(bytes.NewReader(data))
	return staging, err
}

// Load opens and decodes an image file.
//
// Parameters:
//   - path: the image file path
//
// Returns:
//   - common.TextureStagingData: the decoded pixels and dimensions
//   - error: error if the file cannot be opened or decoded
func Load(path string) (common.TextureStagingData, error) {
	file, err := os.Open(path)
	if err != nil {
		return common.TextureStagingData{}, fmt.Errorf("failed to open texture file %s: %w", path, err)
	}
	defer file.Close()

	staging, _, err := Decode(file)
	if err != nil {
		return common.TextureStagingData{}, fmt.Errorf("texture file %s: %w", path, err)
	}
	return staging, nil
}

// FromImage converts any image.Image into RGBA staging data. The result always starts at the
// image's bounds minimum and has a stride of exactly 4*width bytes.
//
// Parameters:
//   - img: the source image
//
// Returns:
//   - common.TextureStagingData: the converted pixels and dimensions
//   - error: ErrEmptyImage or ErrTooLarge for unusable dimensions
func FromImage(img image.Image) (common.TextureStagingData, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return common.TextureStagingData{}, ErrEmptyImage
	}
	if width > MaxDimension || height > MaxDimension {
		return common.TextureStagingData{}, fmt.Errorf("%w: %dx%d", ErrTooLarge, width, height)
	}

	// Sprites blend with straight alpha, so keep channels non-premultiplied.
	nrgba, ok := img.(*image.NRGBA)
	if !ok || nrgba.Stride != width*4 || nrgba.Rect.Min != (image.Point{}) {
		nrgba = image.NewNRGBA(image.Rect(0, 0, width, height))
		draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)
	}

	return common.TextureStagingData{
		Pixels: nrgba.Pix[:width*height*4],
		Width:  uint32(width),
		Height: uint32(height),
	}, nil
}
