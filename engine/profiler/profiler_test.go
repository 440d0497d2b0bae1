package profiler

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-batch/engine/batcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func TestProfiler_ReportsAfterInterval(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	var logs bytes.Buffer
	p := NewProfiler(
		WithClock(clock.now),
		WithInterval(time.Second),
		WithMemoryStats(false),
		WithLogger(slog.New(slog.NewTextHandler(&logs, nil))),
	)

	frame := batcher.Stats{Sprites: 100, DrawCalls: 3, Flushes: 1}
	for range 3 {
		clock.advance(250 * time.Millisecond)
		_, ok := p.Tick(frame)
		require.False(t, ok)
	}
	assert.Empty(t, logs.String())

	clock.advance(250 * time.Millisecond)
	r, ok := p.Tick(batcher.Stats{Sprites: 200, DrawCalls: 5, Flushes: 1, Dropped: 2})
	require.True(t, ok)

	assert.Equal(t, 4, r.Frames)
	assert.Equal(t, time.Second, r.Elapsed)
	assert.InDelta(t, 4, r.FPS, 1e-9)
	assert.InDelta(t, 125, r.SpritesPerFrame, 1e-9)
	assert.InDelta(t, 3.5, r.DrawCallsPerFrame, 1e-9)
	assert.InDelta(t, 1, r.FlushesPerFrame, 1e-9)
	assert.Equal(t, 2, r.Dropped)
	assert.Zero(t, r.HeapMB)
	assert.Contains(t, logs.String(), "msg=profiler")
	assert.Contains(t, logs.String(), "fps=4")
}

func TestProfiler_ResetsAfterReport(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	p := NewProfiler(WithClock(clock.now), WithMemoryStats(false), WithLogger(slog.New(slog.DiscardHandler)))

	clock.advance(time.Second)
	_, ok := p.Tick(batcher.Stats{Sprites: 10})
	require.True(t, ok)

	clock.advance(2 * time.Second)
	r, ok := p.Tick(batcher.Stats{Sprites: 4})
	require.True(t, ok)
	assert.Equal(t, 1, r.Frames)
	assert.InDelta(t, 0.5, r.FPS, 1e-9)
	assert.InDelta(t, 4, r.SpritesPerFrame, 1e-9)
}

func TestProfiler_MemoryStats(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	p := NewProfiler(WithClock(clock.now), WithLogger(slog.New(slog.DiscardHandler)))

	clock.advance(time.Second)
	r, ok := p.Tick(batcher.Stats{})
	require.True(t, ok)
	assert.Positive(t, r.HeapMB)
	assert.Positive(t, r.SysMB)
	assert.GreaterOrEqual(t, r.MaxPauseUs, uint64(0))
}
