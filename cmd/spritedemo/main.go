// Command spritedemo draws thousands of animated sprites through the batcher.
//
//	spritedemo -config demo.toml
//
// W/A/S/D pan, Q/E zoom, F/G rotate, R resets the camera, middle-mouse drag pans, the scroll wheel
// zooms, Space pauses and Escape quits.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"

	"github.com/Carmen-Shannon/oxy-batch/common"
	"github.com/Carmen-Shannon/oxy-batch/engine"
	"github.com/Carmen-Shannon/oxy-batch/engine/batcher"
	"github.com/Carmen-Shannon/oxy-batch/engine/camera"
	"github.com/Carmen-Shannon/oxy-batch/engine/config"
	"github.com/Carmen-Shannon/oxy-batch/engine/loader"
	"github.com/Carmen-Shannon/oxy-batch/engine/renderer"
	"github.com/Carmen-Shannon/oxy-batch/engine/texture"
	"github.com/Carmen-Shannon/oxy-batch/engine/window"
	"github.com/chewxy/math32"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "spritedemo:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	level, err := cfg.Demo.Level()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	batcher.SetLogger(logger)

	win, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
	)
	if err != nil {
		return err
	}
	defer win.Close()

	present, err := cfg.Renderer.Present()
	if err != nil {
		return err
	}
	r, err := renderer.NewRenderer(win,
		renderer.WithPresentMode(present),
		renderer.WithMSAA(cfg.Renderer.SampleCount()),
		renderer.WithForceSoftwareRenderer(cfg.Renderer.ForceSoftware),
		renderer.WithClearColor(cfg.Renderer.Clear()),
		renderer.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	defer r.Release()

	b, err := batcher.NewBatcher(r, r,
		batcher.WithMaxQuads(cfg.Batcher.MaxQuads),
		batcher.WithLabel("Sprites"),
		batcher.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	defer b.Release()

	sampler := common.DefaultSampler()
	if cfg.Demo.PixelArt {
		sampler = common.PixelArtSampler()
	}
	assets := loader.NewLoader(loader.BackendTypeImage, loader.WithRenderer(r), loader.WithSampler(sampler))
	defer assets.Release()
	textures, err := loadTextures(assets, r, cfg.Demo.Textures, sampler, logger)
	if err != nil {
		return err
	}
	if len(assets.Textures()) == 0 {
		defer releaseTextures(textures)
	}

	floor, err := r.CreateTexture("Floor", texture.Checkerboard(64, 64, 16, common.White, common.RGBA(200, 200, 200, 255)), common.TilingSampler())
	if err != nil {
		return err
	}
	defer floor.Release()

	bounds := common.R(0, 0, float32(win.Width()), float32(win.Height()))
	rng := rand.New(rand.NewPCG(uint64(cfg.Demo.Seed), uint64(cfg.Demo.Seed)^0x9e3779b97f4a7c15))
	sprites := newField(rng, cfg.Demo.Sprites, textures, bounds)
	logger.Info("sprites ready",
		slog.Int("sprites", cfg.Demo.Sprites),
		slog.Int("textures", len(textures)),
		slog.Int("maxQuads", b.Capacity()),
	)

	controller := camera.NewCameraController(r.Camera())
	win.SetKeyDownCallback(func(key int) {
		if key == common.KeySpace {
			sprites.togglePause()
			return
		}
		controller.KeyDown(key)
	})
	win.SetKeyUpCallback(controller.KeyUp)
	win.SetDragCallback(func(dx, dy float32) {
		controller.Pan(-dx, -dy)
	})
	win.SetScrollCallback(func(delta float32) {
		controller.ZoomBy(math32.Pow(1.1, delta))
	})

	eng, err := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithRenderer(r),
		engine.WithBatcher(b),
		engine.WithProfiling(true),
		engine.WithLogger(logger),
		engine.WithLayer(0, func(float32) {
			b.Begin()
			backdrop(b, floor, bounds)
			b.End()
		}),
		engine.WithLayer(1, func(float32) {
			b.Begin()
			sprites.draw(b)
			b.End()
		}),
	)
	if err != nil {
		return err
	}
	eng.SetTickCallback(func(dt float32) {
		controller.Update(dt)
		sprites.update(dt)
	})

	eng.Run()
	logger.Info("shutdown", slog.Uint64("frames", eng.Frames()), slog.Int("passSplits", r.PassSplits()))
	return nil
}
