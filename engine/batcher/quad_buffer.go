package batcher

import "fmt"

// QuadBuffer is the fixed-capacity accumulator of encoded sprites. Each slot pairs a Quad with the
// texture it samples; the two are kept in parallel arrays so the quads can be uploaded as one
// contiguous block, and both arrays are only ever written together.
type QuadBuffer struct {
	quads    []Quad
	textures []Texture
	count    int
}

// NewQuadBuffer allocates a buffer with room for capacity quads. The storage is never
// reallocated afterwards.
//
// Parameters:
//   - capacity: the number of quad slots
//
// Returns:
//   - *QuadBuffer: the empty buffer
func NewQuadBuffer(capacity int) *QuadBuffer {
	return &QuadBuffer{
		quads:    make([]Quad, capacity),
		textures: make([]Texture, capacity),
	}
}

// Reserve claims the next slot for tex and returns it for in-place encoding.
// Reserve panics if the buffer is full; callers flush before that happens.
//
// Parameters:
//   - tex: the texture sampled by the quad written into the slot
//
// Returns:
//   - *Quad: the claimed slot
func (b *QuadBuffer) Reserve(tex Texture) *Quad {
	if b.count == len(b.quads) {
		panic(fmt.Sprintf("batcher: quad buffer overflow (capacity %d)", len(b.quads)))
	}
	i := b.count
	b.textures[i] = tex
	b.count++
	return &b.quads[i]
}

// Push copies q into the next slot and records tex alongside it.
// Push panics if the buffer is full.
//
// Parameters:
//   - q: the encoded quad
//   - tex: the texture sampled by q
func (b *QuadBuffer) Push(q Quad, tex Texture) {
	*b.Reserve(tex) = q
}

// IsFull reports whether every slot holds a pending quad.
func (b *QuadBuffer) IsFull() bool {
	return b.count == len(b.quads)
}

// Clear drops all pending quads. The slot contents are left in place and overwritten by later pushes.
func (b *QuadBuffer) Clear() {
	b.count = 0
}

// Len returns the number of pending quads.
func (b *QuadBuffer) Len() int {
	return b.count
}

// Cap returns the number of slots.
func (b *QuadBuffer) Cap() int {
	return len(b.quads)
}

// Quads returns the pending quads. The slice aliases the buffer and is only valid until the next
// Push, Reserve or Clear.
func (b *QuadBuffer) Quads() []Quad {
	return b.quads[:b.count]
}

// Texture returns the texture recorded for pending quad i.
func (b *QuadBuffer) Texture(i int) Texture {
	return b.textures[i]
}

// Spans returns a fresh partitioner over the pending quads.
func (b *QuadBuffer) Spans() *SpanPartitioner {
	return &SpanPartitioner{textures: b.textures[:b.count]}
}
