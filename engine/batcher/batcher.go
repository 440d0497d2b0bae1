package batcher

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/Carmen-Shannon/oxy-batch/common"
)

// DefaultMaxQuads is the default quad capacity of a Batcher.
const DefaultMaxQuads = 2048

var (
	// ErrCapacityOutOfRange is returned when a quad capacity cannot be addressed with 16-bit indices.
	ErrCapacityOutOfRange = errors.New("batcher: quad capacity must be between 1 and 16384")
	// ErrNilDevice is returned when a Batcher is created without a Device.
	ErrNilDevice = errors.New("batcher: device is nil")
	// ErrNilPipeline is returned when a Batcher is created without a Pipeline.
	ErrNilPipeline = errors.New("batcher: pipeline is nil")
)

// State is the lifecycle state of a Batcher.
type State int

const (
	// StateIdle is the state outside a Begin/End pair.
	StateIdle State = iota
	// StateBegun is the state between Begin and End, the only state Push is accepted in.
	StateBegun
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateBegun:
		return "begun"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Sprite describes one textured rectangle to draw.
type Sprite struct {
	// Source is the region of the texture in pixels. A zero-size rectangle selects the whole texture.
	Source common.Rect
	// Dest is the destination rectangle. X and Y locate the Origin pivot, W and H are the unrotated size.
	Dest common.Rect
	// Origin is the rotation pivot normalized within Dest; (0,0) is the top-left corner.
	Origin common.Vec2
	// Rotation is the clockwise rotation in radians in y-down space.
	Rotation float32
	// Skew shears the quad corners.
	Skew common.Skew
	// Color tints the sprite. The zero value is transparent black; use common.White for no tint.
	Color common.Color
	// Depth is written to the z coordinate of every vertex.
	Depth float32
	// Flip mirrors the texture.
	Flip common.FlipFlags
}

// Stats are cumulative counters since the Batcher was created or ResetStats was last called.
type Stats struct {
	// Sprites is the number of sprites accepted by Push.
	Sprites int
	// Flushes is the number of non-empty flushes, implicit or explicit.
	Flushes int
	// DrawCalls is the number of draw calls issued to the device.
	DrawCalls int
	// Dropped is the number of sprites rejected because the batcher was idle.
	Dropped int
}

// batcher is the implementation of the Batcher interface.
type batcher struct {
	label    string
	device   Device
	pipeline Pipeline
	logger   *slog.Logger

	maxQuads int
	quads    *QuadBuffer
	buffers  *GPUBuffers

	state State
	stats Stats
}

// Batcher accumulates sprites between Begin and End and draws them with as few draw calls as
// possible: consecutive sprites sharing a texture are drawn together. Push sprites grouped by
// texture where draw order permits to keep the number of draw calls low.
//
// A Batcher is not safe for concurrent use.
type Batcher interface {
	// Begin starts accepting sprites. Calling Begin while already begun logs a warning and is otherwise ignored.
	Begin()

	// Push encodes sprite against tex and queues it. When the quad buffer is already full the
	// pending sprites are flushed first, so Push always succeeds. Outside Begin/End the sprite is
	// dropped with a warning.
	//
	// Parameters:
	//   - sprite: the sprite descriptor
	//   - tex: the texture to sample; it must stay alive until the sprite has been flushed
	Push(sprite Sprite, tex Texture)

	// Flush uploads the pending sprites and issues one draw call per run of equal textures, then
	// empties the quad buffer. Flushing with nothing pending does nothing. Outside Begin/End it
	// logs a warning and does nothing.
	Flush()

	// End flushes and returns to the idle state. Outside Begin/End it logs a warning and does nothing.
	End()

	// IsSaturated reports whether the next Push will trigger an implicit flush.
	//
	// Returns:
	//   - bool: true if the quad buffer is full
	IsSaturated() bool

	// Pending returns the number of queued sprites.
	//
	// Returns:
	//   - int: the number of sprites pushed since the last flush
	Pending() int

	// Capacity returns the maximum number of sprites batched into one flush.
	//
	// Returns:
	//   - int: the quad capacity
	Capacity() int

	// State returns the current lifecycle state.
	//
	// Returns:
	//   - State: StateIdle or StateBegun
	State() State

	// Stats returns the cumulative counters.
	//
	// Returns:
	//   - Stats: counters since creation or the last ResetStats
	Stats() Stats

	// ResetStats zeroes the cumulative counters.
	ResetStats()

	// Release frees the device buffers. The Batcher must not be used afterwards.
	Release()
}

var _ Batcher = &batcher{}

// NewBatcher creates a Batcher drawing through device and pipeline. The device buffers for the
// full capacity are allocated immediately.
//
// Parameters:
//   - device: the graphics device used for buffers and draw calls
//   - pipeline: the pipeline used for texture and vertex buffer binding
//   - options: functional options (capacity, logger, label)
//
// Returns:
//   - Batcher: the idle batcher
//   - error: an error if the configuration is invalid or buffer allocation fails
func NewBatcher(device Device, pipeline Pipeline, options ...BatcherBuilderOption) (Batcher, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	if pipeline == nil {
		return nil, ErrNilPipeline
	}

	b := &batcher{
		label:    "Sprite Batcher",
		device:   device,
		pipeline: pipeline,
		maxQuads: DefaultMaxQuads,
	}
	for _, opt := range options {
		opt(b)
	}
	if b.logger == nil {
		b.logger = Logger()
	}

	buffers, err := NewGPUBuffers(device, b.label, b.maxQuads, b.logger)
	if err != nil {
		return nil, err
	}
	b.buffers = buffers
	b.quads = NewQuadBuffer(b.maxQuads)

	return b, nil
}

func (b *batcher) Begin() {
	if b.state == StateBegun {
		b.logger.Warn("batcher: Begin called while already begun", slog.String("label", b.label))
		return
	}
	b.state = StateBegun
}

func (b *batcher) Push(sprite Sprite, tex Texture) {
	if b.state != StateBegun {
		b.stats.Dropped++
		b.logger.Warn("batcher: Push called outside Begin/End, sprite dropped", slog.String("label", b.label))
		return
	}

	if b.quads.IsFull() {
		b.flush()
	}

	src := sprite.Source
	if src.Empty() {
		src = common.R(0, 0, float32(tex.Width()), float32(tex.Height()))
	}
	src = src.Normalize(tex.Width(), tex.Height())

	q := b.quads.Reserve(tex)
	Encode(q, sprite.Origin, src, sprite.Dest, sprite.Skew, sprite.Color, sprite.Rotation, sprite.Depth, sprite.Flip)
	b.stats.Sprites++
}

func (b *batcher) Flush() {
	if b.state != StateBegun {
		b.logger.Warn("batcher: Flush called outside Begin/End", slog.String("label", b.label))
		return
	}
	b.flush()
}

func (b *batcher) End() {
	if b.state != StateBegun {
		b.logger.Warn("batcher: End called outside Begin/End", slog.String("label", b.label))
		return
	}
	b.flush()
	b.state = StateIdle
}

// flush draws the pending quads. The caller has already checked the state.
func (b *batcher) flush() {
	if b.quads.Len() == 0 {
		return
	}

	b.pipeline.RefreshShaderState()
	b.buffers.UploadVertices(0, b.quads.Quads())

	vb := b.buffers.RawVertexBuffer()
	ib := b.buffers.RawIndexBuffer()
	elementSize := b.buffers.IndexElementSize()

	spans := b.quads.Spans()
	drawCalls := 0
	for span, ok := spans.Next(); ok; span, ok = spans.Next() {
		b.pipeline.BindTexture(spans.Texture(span))
		b.pipeline.BindVertexBuffer(vb, span.BaseVertex())
		b.device.DrawIndexedPrimitives(PrimitiveTriangleList, span.BaseVertex(), span.BaseIndex(), span.Triangles(), ib, elementSize)
		drawCalls++
	}

	b.logger.Debug("batcher flushed",
		slog.String("label", b.label),
		slog.Int("sprites", b.quads.Len()),
		slog.Int("drawCalls", drawCalls),
	)

	b.stats.Flushes++
	b.stats.DrawCalls += drawCalls
	b.quads.Clear()
}

func (b *batcher) IsSaturated() bool {
	return b.quads.IsFull()
}

func (b *batcher) Pending() int {
	return b.quads.Len()
}

func (b *batcher) Capacity() int {
	return b.quads.Cap()
}

func (b *batcher) State() State {
	return b.state
}

func (b *batcher) Stats() Stats {
	return b.stats
}

func (b *batcher) ResetStats() {
	b.stats = Stats{}
}

func (b *batcher) Release() {
	b.buffers.Release()
	b.quads.Clear()
	b.state = StateIdle
}
