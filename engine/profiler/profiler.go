package profiler

import (
	"log/slog"
	"runtime"
	"time"

	"github.com/Carmen-Shannon/oxy-batch/engine/batcher"
)

// Report is one interval's worth of frame and memory statistics.
type Report struct {
	Frames  int
	Elapsed time.Duration
	FPS     float64

	// Per-frame averages of the batcher stats passed to Tick.
	SpritesPerFrame   float64
	DrawCallsPerFrame float64
	FlushesPerFrame   float64
	Dropped           int

	HeapMB      float64 // live heap
	SysMB       float64 // memory obtained from the OS
	AllocRateMB float64 // heap allocation churn per second
	GCCount     uint32
	LastPauseUs uint64
	MaxPauseUs  uint64
}

// Profiler tracks frame rate, batcher throughput and memory statistics.
// Logs a Report at a configurable interval.
type Profiler struct {
	logger         *slog.Logger
	now            func() time.Time
	readMemStats   bool
	updateInterval time.Duration

	frameCount     int
	lastTime       time.Time
	totals         batcher.Stats
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
}

// NewProfiler creates a new Profiler. The update interval defaults to 1 second.
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerOption) *Profiler {
	p := &Profiler{
		logger:         slog.Default(),
		now:            time.Now,
		readMemStats:   true,
		updateInterval: time.Second,
	}
	for _, option := range options {
		option(p)
	}
	p.lastTime = p.now()
	return p
}

// Tick should be called once per frame with the batcher stats of that frame; callers reset the
// batcher stats after each frame. When the update interval has elapsed the accumulated Report is
// logged and returned.
//
// Parameters:
//   - stats: the batcher stats for the frame just drawn
//
// Returns:
//   - Report: the interval report, zero unless ok
//   - bool: true if a report was produced this tick
func (p *Profiler) Tick(stats batcher.Stats) (Report, bool) {
	p.frameCount++
	p.totals.Sprites += stats.Sprites
	p.totals.DrawCalls += stats.DrawCalls
	p.totals.Flushes += stats.Flushes
	p.totals.Dropped += stats.Dropped

	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval || elapsed <= 0 {
		return Report{}, false
	}

	frames := float64(p.frameCount)
	r := Report{
		Frames:            p.frameCount,
		Elapsed:           elapsed,
		FPS:               frames / elapsed.Seconds(),
		SpritesPerFrame:   float64(p.totals.Sprites) / frames,
		DrawCallsPerFrame: float64(p.totals.DrawCalls) / frames,
		FlushesPerFrame:   float64(p.totals.Flushes) / frames,
		Dropped:           p.totals.Dropped,
	}
	if p.readMemStats {
		p.fillMemory(&r, elapsed)
	}

	p.logger.Info("profiler",
		slog.Float64("fps", r.FPS),
		slog.Float64("spritesPerFrame", r.SpritesPerFrame),
		slog.Float64("drawCallsPerFrame", r.DrawCallsPerFrame),
		slog.Float64("flushesPerFrame", r.FlushesPerFrame),
		slog.Int("dropped", r.Dropped),
		slog.Float64("heapMB", r.HeapMB),
		slog.Float64("allocRateMBps", r.AllocRateMB),
		slog.Any("gc", r.GCCount),
		slog.Any("gcLastPauseUs", r.LastPauseUs),
		slog.Any("gcMaxPauseUs", r.MaxPauseUs),
		slog.Float64("sysMB", r.SysMB),
	)

	p.frameCount = 0
	p.totals = batcher.Stats{}
	p.lastTime = currentTime
	return r, true
}

// fillMemory reads the runtime memory stats into r and advances the GC and allocation baselines.
func (p *Profiler) fillMemory(r *Report, elapsed time.Duration) {
	runtime.ReadMemStats(&p.memStats)
	r.HeapMB = float64(p.memStats.Alloc) / 1024 / 1024
	r.SysMB = float64(p.memStats.Sys) / 1024 / 1024
	r.AllocRateMB = float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / elapsed.Seconds()

	gcCount := p.memStats.NumGC
	r.GCCount = gcCount
	if gcCount > 0 {
		// PauseNs is a circular buffer of the last 256 GC pauses.
		r.LastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000

		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			r.MaxPauseUs = max(r.MaxPauseUs, p.memStats.PauseNs[i%256]/1000)
		}
	}

	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
}
