package main

import (
	"fmt"
	"log/slog"

	"github.com/Carmen-Shannon/oxy-batch/common"
	"github.com/Carmen-Shannon/oxy-batch/engine/loader"
	"github.com/Carmen-Shannon/oxy-batch/engine/renderer"
	"github.com/Carmen-Shannon/oxy-batch/engine/texture"
)

// textureFactory is the part of a renderer that turns staging data into textures.
type textureFactory interface {
	CreateTexture(label string, pixels common.TextureStagingData, sampler common.SamplerStagingData) (renderer.Texture, error)
}

// loadTextures loads one texture per configured image path through the cache. Paths that fail to
// load are skipped with a warning; if none load, a procedural set is generated instead.
func loadTextures(l loader.Loader, f textureFactory, paths []string, sampler common.SamplerStagingData, logger *slog.Logger) ([]demoTexture, error) {
	var out []demoTexture
	for _, path := range paths {
		tex, err := l.Load(path)
		if err != nil {
			logger.Warn("skipping texture", slog.String("path", path), slog.Any("error", err))
			continue
		}
		out = append(out, demoTexture{texture: tex})
	}
	if len(out) > 0 {
		return out, nil
	}
	return proceduralTextures(f, sampler)
}

// releaseTextures frees every texture that supports it. Textures owned by a loader are released
// by the loader instead.
func releaseTextures(textures []demoTexture) {
	for _, t := range textures {
		if r, ok := t.texture.(interface{ Release() }); ok {
			r.Release()
		}
	}
}

// proceduralTextures builds an asset-free texture set: two checkerboards, a solid square and a
// 4x4 sprite sheet whose cells are animated through an atlas.
func proceduralTextures(f textureFactory, sampler common.SamplerStagingData) ([]demoTexture, error) {
	sheet := animationSheet(4, 4, 16)
	atlas, err := texture.NewAtlasFor(sheet, 16, 16, 0, 0)
	if err != nil {
		return nil, err
	}

	sources := []struct {
		label   string
		staging common.TextureStagingData
		frames  []common.Rect
	}{
		{"Checker Warm", texture.Checkerboard(32, 32, 8, common.RGBA(255, 190, 80, 255), common.RGBA(200, 60, 40, 255)), nil},
		{"Checker Cool", texture.Checkerboard(32, 32, 4, common.RGBA(90, 200, 255, 255), common.RGBA(40, 70, 200, 255)), nil},
		{"Solid", texture.Solid(8, 8, common.White), nil},
		{"Sheet", sheet, atlas.Frames()},
	}

	out := make([]demoTexture, 0, len(sources))
	for _, s := range sources {
		tex, err := f.CreateTexture(s.label, s.staging, sampler)
		if err != nil {
			releaseTextures(out)
			return nil, fmt.Errorf("failed to create texture %s: %w", s.label, err)
		}
		out = append(out, demoTexture{texture: tex, frames: s.frames})
	}
	return out, nil
}

// animationSheet draws a columns x rows grid of cell-sized frames, each a bar that grows with its
// frame index over a transparent background.
func animationSheet(columns, rows, cell uint32) common.TextureStagingData {
	width, height := columns*cell, rows*cell
	pixels := make([]byte, int(width)*int(height)*4)
	frames := columns * rows
	for frame := range frames {
		ox, oy := (frame%columns)*cell, (frame/columns)*cell
		barHeight := 1 + frame*(cell-1)/max(frames-1, 1)
		hue := uint8(frame * 255 / max(frames-1, 1))
		for y := cell - barHeight; y < cell; y++ {
			for x := cell / 4; x < cell-cell/4; x++ {
				i := (int(oy+y)*int(width) + int(ox+x)) * 4
				pixels[i+0] = 255 - hue
				pixels[i+1] = hue
				pixels[i+2] = 160
				pixels[i+3] = 255
			}
		}
	}
	return common.TextureStagingData{Pixels: pixels, Width: width, Height: height}
}
