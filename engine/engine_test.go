package engine

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-batch/engine/batcher"
	"github.com/Carmen-Shannon/oxy-batch/engine/profiler"
	"github.com/Carmen-Shannon/oxy-batch/engine/window"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWindow runs a fixed number of message loop iterations.
type fakeWindow struct {
	window.Window
	iterations   int
	onUpdate     func()
	onResize     func(width, height int)
	closeRequest bool
}

func (w *fakeWindow) SetUpdateCallback(callback func()) { w.onUpdate = callback }
func (w *fakeWindow) SetResizeCallback(callback func(int, int)) { w.onResize = callback }
func (w *fakeWindow) RequestClose() { w.closeRequest = true }
func (w *fakeWindow) ProcessMessages() {
	for i := 0; i < w.iterations && !w.closeRequest; i++ {
		w.onUpdate()
	}
}

type fakeRenderer struct {
	calls    []string
	beginErr error
	resized  [2]int
}

func (r *fakeRenderer) BeginFrame() error {
	r.calls = append(r.calls, "begin")
	return r.beginErr
}

func (r *fakeRenderer) EndFrame() error {
	r.calls = append(r.calls, "end")
	return nil
}

func (r *fakeRenderer) Present() {
	r.calls = append(r.calls, "present")
}

func (r *fakeRenderer) Resize(width, height int) error {
	r.resized = [2]int{width, height}
	return nil
}

type fakeBatcher struct {
	batcher.Batcher
	stats  batcher.Stats
	resets int
}

func (b *fakeBatcher) Stats() batcher.Stats { return b.stats }
func (b *fakeBatcher) ResetStats() {
	b.stats = batcher.Stats{}
	b.resets++
}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func newTestEngine(t *testing.T, options ...EngineBuilderOption) (*engine, *fakeWindow, *fakeRenderer) {
	t.Helper()
	w := &fakeWindow{}
	r := &fakeRenderer{}
	options = append([]EngineBuilderOption{WithWindow(w), WithRenderer(r), WithLogger(slog.New(slog.DiscardHandler))}, options...)
	e, err := NewEngine(options...)
	require.NoError(t, err)
	return e.(*engine), w, r
}

func TestNewEngine_RequiresCollaborators(t *testing.T) {
	_, err := NewEngine(WithRenderer(&fakeRenderer{}))
	require.ErrorIs(t, err, ErrNoWindow)

	_, err = NewEngine(WithWindow(&fakeWindow{}))
	require.ErrorIs(t, err, ErrNoRenderer)
}

func TestStep_DrawsLayersInOrder(t *testing.T) {
	e, _, r := newTestEngine(t)
	e.SetTickCallback(func(float32) { r.calls = append(r.calls, "tick") })
	e.AddLayer(10, func(float32) { r.calls = append(r.calls, "layer10") })
	e.AddLayer(-1, func(float32) { r.calls = append(r.calls, "layer-1") })
	e.AddLayer(3, func(float32) { r.calls = append(r.calls, "layer3") })
	e.AddLayer(5, func(float32) { r.calls = append(r.calls, "layer5") })
	e.RemoveLayer(5)

	require.NoError(t, e.Step())
	assert.Equal(t, []string{"tick", "begin", "layer-1", "layer3", "layer10", "end", "present"}, r.calls)
	assert.Equal(t, uint64(1), e.Frames())
}

func TestStep_BeginFailureSkipsFrame(t *testing.T) {
	e, _, r := newTestEngine(t, WithLayer(0, func(float32) { t.Fatal("layer drawn without a frame") }))
	r.beginErr = errors.New("surface lost")

	err := e.Step()
	require.Error(t, err)
	assert.Equal(t, []string{"begin"}, r.calls)
	assert.Zero(t, e.Frames())
}

func TestStep_DeltaTime(t *testing.T) {
	clock := &fakeClock{t: time.Unix(100, 0)}
	e, _, _ := newTestEngine(t)
	e.now = clock.now

	var dts []float32
	e.SetTickCallback(func(dt float32) { dts = append(dts, dt) })

	require.NoError(t, e.Step())
	clock.t = clock.t.Add(250 * time.Millisecond)
	require.NoError(t, e.Step())

	assert.Equal(t, []float32{0, 0.25}, dts)
}

func TestStep_FrameLimitSleeps(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	e, _, _ := newTestEngine(t, WithRenderFrameLimit(50))
	e.now = clock.now
	var slept time.Duration
	e.sleep = func(d time.Duration) { slept += d }

	e.AddLayer(0, func(float32) { clock.t = clock.t.Add(5 * time.Millisecond) })
	require.NoError(t, e.Step())
	assert.Equal(t, 15*time.Millisecond, slept)

	e.SetRenderFrameLimit(0)
	slept = 0
	require.NoError(t, e.Step())
	assert.Zero(t, slept)
}

func TestStep_FeedsProfilerAndResetsStats(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	var logs bytes.Buffer
	p := profiler.NewProfiler(
		profiler.WithClock(clock.now),
		profiler.WithInterval(time.Second),
		profiler.WithMemoryStats(false),
		profiler.WithLogger(slog.New(slog.NewTextHandler(&logs, nil))),
	)
	b := &fakeBatcher{}
	e, _, _ := newTestEngine(t, WithBatcher(b), WithProfiler(p), WithProfiling(true))
	e.AddLayer(0, func(float32) { b.stats = batcher.Stats{Sprites: 10, DrawCalls: 2, Flushes: 1} })

	require.NoError(t, e.Step())
	clock.t = clock.t.Add(time.Second)
	require.NoError(t, e.Step())

	assert.Equal(t, 2, b.resets)
	assert.Contains(t, logs.String(), "spritesPerFrame=10")
	assert.Contains(t, logs.String(), "drawCallsPerFrame=2")
}

func TestRun_StepsUntilQuit(t *testing.T) {
	e, w, _ := newTestEngine(t)
	w.iterations = 10
	ticks := 0
	e.SetTickCallback(func(float32) {
		ticks++
		if ticks == 3 {
			e.Quit()
		}
	})

	e.Run()
	assert.Equal(t, 3, ticks)
	assert.Equal(t, uint64(3), e.Frames())
	assert.True(t, w.closeRequest)
}

func TestResizeForwardsToRenderer(t *testing.T) {
	_, w, r := newTestEngine(t)
	w.onResize(800, 600)
	assert.Equal(t, [2]int{800, 600}, r.resized)
}
