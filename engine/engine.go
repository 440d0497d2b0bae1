package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/Carmen-Shannon/oxy-batch/engine/batcher"
	"github.com/Carmen-Shannon/oxy-batch/engine/profiler"
	"github.com/Carmen-Shannon/oxy-batch/engine/window"
)

var (
	// ErrNoWindow is returned by NewEngine when no window was supplied.
	ErrNoWindow = errors.New("engine: window is nil")
	// ErrNoRenderer is returned by NewEngine when no renderer was supplied.
	ErrNoRenderer = errors.New("engine: renderer is nil")
)

// FrameRenderer is the part of a renderer the engine drives once per frame.
// renderer.Renderer satisfies it.
type FrameRenderer interface {
	BeginFrame() error
	EndFrame() error
	Present()
	Resize(width, height int) error
}

// Layer draws one z-ordered slice of the frame. It runs between BeginFrame and EndFrame.
type Layer func(deltaTime float32)

// engine implements the Engine interface.
// Runs the tick, draw and present sequence on the window's thread.
type engine struct {
	window   window.Window
	renderer FrameRenderer
	batcher  batcher.Batcher
	logger   *slog.Logger

	profiler         *profiler.Profiler
	profilingEnabled bool

	now   func() time.Time
	sleep func(time.Duration)

	running   bool
	lastFrame time.Time
	frames    uint64

	tickCallback func(deltaTime float32)
	layers       map[int]Layer

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
}

// Engine is the main entry point for the engine.
// It owns the frame loop: each window message loop iteration runs the tick callback, draws the
// layers inside one renderer frame and presents it.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickCallback registers the function called at the start of each frame, before drawing.
	// Use this for game logic, input processing, and animation updates.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the loop (default).
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// AddLayer registers a draw layer at the given z-index key, replacing any layer already there.
	// Layers are drawn in ascending key order into the same render pass.
	//
	// Parameters:
	//   - key: the z-index determining draw order (lower draws first)
	//   - layer: the draw function
	AddLayer(key int, layer Layer)

	// RemoveLayer removes the layer at the given z-index key.
	//
	// Parameters:
	//   - key: the z-index of the layer to remove
	RemoveLayer(key int)

	// Step runs a single frame. Run calls it once per message loop iteration.
	//
	// Returns:
	//   - error: error if the renderer could not begin or end the frame
	Step() error

	// Frames returns the number of frames presented.
	//
	// Returns:
	//   - uint64: the frame count
	Frames() uint64

	// Run starts the frame loop (blocks until the window closes).
	Run()

	// Quit asks the window to close; Run returns after the current frame.
	// Safe to call multiple times.
	Quit()
}

// NewEngine creates a new Engine with the provided options. A window and a renderer are required.
// The window's resize events are forwarded to the renderer.
//
// Parameters:
//   - options: functional options for engine configuration (window, renderer, profiling, etc.)
//
// Returns:
//   - Engine: the newly created engine
//   - error: ErrNoWindow or ErrNoRenderer if a required collaborator is missing
func NewEngine(options ...EngineBuilderOption) (Engine, error) {
	e := &engine{
		logger: slog.Default(),
		now:    time.Now,
		sleep:  time.Sleep,
		layers: make(map[int]Layer),
	}

	for _, opt := range options {
		opt(e)
	}

	if e.window == nil {
		return nil, ErrNoWindow
	}
	if e.renderer == nil {
		return nil, ErrNoRenderer
	}
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(profiler.WithLogger(e.logger))
	}

	e.window.SetResizeCallback(func(width, height int) {
		if err := e.renderer.Resize(width, height); err != nil {
			e.logger.Warn("resize failed", slog.Int("width", width), slog.Int("height", height), slog.Any("error", err))
		}
	})

	return e, nil
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	e.renderFrameLimit = frameDuration(fps)
}

func (e *engine) AddLayer(key int, layer Layer) {
	if layer == nil {
		delete(e.layers, key)
		return
	}
	e.layers[key] = layer
}

func (e *engine) RemoveLayer(key int) {
	delete(e.layers, key)
}

func (e *engine) Frames() uint64 {
	return e.frames
}

func (e *engine) Run() {
	e.running = true
	e.lastFrame = e.now()
	e.window.SetUpdateCallback(func() {
		if !e.running {
			return
		}
		if err := e.Step(); err != nil {
			e.logger.Debug("frame skipped", slog.Any("error", err))
		}
	})
	e.window.ProcessMessages()
	e.running = false
}

func (e *engine) Quit() {
	e.running = false
	e.window.RequestClose()
}

func (e *engine) Step() error {
	start := e.now()
	if e.lastFrame.IsZero() {
		e.lastFrame = start
	}
	dt := float32(start.Sub(e.lastFrame).Seconds())
	e.lastFrame = start

	if e.tickCallback != nil {
		e.tickCallback(dt)
	}

	if err := e.renderer.BeginFrame(); err != nil {
		return fmt.Errorf("failed to begin frame: %w", err)
	}

	keys := make([]int, 0, len(e.layers))
	for k := range e.layers {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	for _, k := range keys {
		e.layers[k](dt)
	}

	if err := e.renderer.EndFrame(); err != nil {
		return fmt.Errorf("failed to end frame: %w", err)
	}
	e.renderer.Present()
	e.frames++

	if e.batcher != nil {
		if e.profilingEnabled {
			e.profiler.Tick(e.batcher.Stats())
		}
		e.batcher.ResetStats()
	} else if e.profilingEnabled {
		e.profiler.Tick(batcher.Stats{})
	}

	if e.renderFrameLimit > 0 {
		if remaining := e.renderFrameLimit - e.now().Sub(start); remaining > 0 {
			e.sleep(remaining)
		}
	}
	return nil
}

// frameDuration converts a frame rate cap to the minimum frame duration; fps <= 0 means uncapped.
func frameDuration(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
