package loader

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-batch/common"
	"github.com/Carmen-Shannon/oxy-batch/engine/renderer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTexture struct {
	label    string
	w, h     uint32
	released bool
}

func (t *fakeTexture) Width() uint32  { return t.w }
func (t *fakeTexture) Height() uint32 { return t.h }
func (t *fakeTexture) Label() string  { return t.label }
func (t *fakeTexture) Release()       { t.released = true }

type fakeFactory struct {
	created  []*fakeTexture
	samplers []common.SamplerStagingData
	err      error
}

func (f *fakeFactory) CreateTexture(label string, pixels common.TextureStagingData, sampler common.SamplerStagingData) (renderer.Texture, error) {
	if f.err != nil {
		return nil, f.err
	}
	t := &fakeTexture{label: label, w: pixels.Width, h: pixels.Height}
	f.created = append(f.created, t)
	f.samplers = append(f.samplers, sampler)
	return t, nil
}

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestLoad_CachesByPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hero.png")
	require.NoError(t, os.WriteFile(path, encodePNG(t, 3, 2), 0o644))

	f := &fakeFactory{}
	l := NewLoader(BackendTypeImage, WithRenderer(f), WithSampler(common.PixelArtSampler()))

	a, err := l.Load(path)
	require.NoError(t, err)
	b, err := l.Load(path)
	require.NoError(t, err)

	assert.Same(t, a, b)
	require.Len(t, f.created, 1)
	assert.Equal(t, "hero.png", a.Label())
	assert.Equal(t, uint32(3), a.Width())
	assert.Equal(t, common.PixelArtSampler(), f.samplers[0])
	assert.Same(t, a, l.Get(path))
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	l := NewLoader(BackendTypeImage, WithRenderer(&fakeFactory{}))

	_, err := l.Load(filepath.Join(dir, "model.glb"))
	require.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = l.Load(filepath.Join(dir, "missing.png"))
	require.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(dir, "ok.png")
	require.NoError(t, os.WriteFile(path, encodePNG(t, 1, 1), 0o644))
	_, err = NewLoader(BackendTypeImage).Load(path)
	require.ErrorIs(t, err, ErrNoRenderer)

	boom := errors.New("device lost")
	_, err = NewLoader(BackendTypeImage, WithRenderer(&fakeFactory{err: boom})).Load(path)
	require.ErrorIs(t, err, boom)
}

func TestLoadReader(t *testing.T) {
	f := &fakeFactory{}
	l := NewLoader(BackendTypeImage, WithRenderer(f))

	tex, err := l.LoadReader("embedded", bytes.NewReader(encodePNG(t, 4, 4)))
	require.NoError(t, err)
	assert.Equal(t, "embedded", tex.Label())

	again, err := l.LoadReader("embedded", bytes.NewReader(nil))
	require.NoError(t, err)
	assert.Same(t, tex, again)

	_, err = l.LoadReader("garbage", bytes.NewReader([]byte("nope")))
	require.Error(t, err)
}

func TestRelease_EmptiesCache(t *testing.T) {
	pre := &fakeTexture{label: "pre"}
	l := NewLoader(BackendTypeImage, WithTexture("pre", pre))
	require.Len(t, l.Textures(), 1)

	l.Release()
	assert.True(t, pre.released)
	assert.Empty(t, l.Textures())
	assert.Nil(t, l.Get("pre"))
}
