package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{G: 255, A: 255})
	img.SetNRGBA(0, 1, color.NRGBA{B: 255, A: 255})
	img.SetNRGBA(1, 1, color.NRGBA{R: 200, G: 100, B: 50, A: 128})
	return img
}

var testPixels = []byte{
	255, 0, 0, 255, 0, 255, 0, 255,
	0, 0, 255, 255, 200, 100, 50, 128,
}

func TestDecode_PNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage()))

	data, format, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, uint32(2), data.Width)
	assert.Equal(t, uint32(2), data.Height)
	assert.Equal(t, testPixels, data.Pixels)
}

func TestDecode_BMP(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 1))
	img.Set(0, 0, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	img.Set(1, 0, color.RGBA{A: 255})
	img.Set(2, 0, color.RGBA{R: 40, G: 50, B: 60, A: 255})
	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, img))

	data, format, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, "bmp", format)
	assert.Equal(t, uint32(3), data.Width)
	assert.Len(t, data.Pixels, 12)
	assert.Equal(t, []byte{10, 20, 30, 255}, data.Pixels[0:4])
	assert.Equal(t, []byte{40, 50, 60, 255}, data.Pixels[8:12])
}

func TestDecode_Garbage(t *testing.T) {
	_, err := DecodeBytes([]byte("not an image"))
	require.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sprite.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, testImage()))
	require.NoError(t, f.Close())

	data, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, testPixels, data.Pixels)

	_, err = Load(filepath.Join(t.TempDir(), "missing.png"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestFromImage_SubImageIsRepacked(t *testing.T) {
	sub := testImage().SubImage(image.Rect(1, 1, 2, 2))

	data, err := FromImage(sub)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), data.Width)
	assert.Equal(t, uint32(1), data.Height)
	assert.Equal(t, []byte{200, 100, 50, 128}, data.Pixels)
}

func TestFromImage_Dimensions(t *testing.T) {
	_, err := FromImage(image.NewNRGBA(image.Rect(0, 0, 0, 4)))
	require.ErrorIs(t, err, ErrEmptyImage)

	_, err = FromImage(image.NewNRGBA(image.Rect(0, 0, MaxDimension+1, 1)))
	require.ErrorIs(t, err, ErrTooLarge)
}
