package batcher

import (
	"fmt"
	"log/slog"

	"github.com/Carmen-Shannon/oxy-batch/common"
)

// GPUBuffers owns the device-side vertex buffer sized for a full quad buffer and the index buffer
// holding the static index pattern. The index buffer is uploaded once at construction.
type GPUBuffers struct {
	device       Device
	vertexBuffer Buffer
	indexBuffer  Buffer
	capacity     int
}

// NewGPUBuffers allocates the vertex and index buffers for capacity quads on device.
//
// Parameters:
//   - device: the device to allocate on
//   - label: a debug label prefix for both buffers
//   - capacity: the quad capacity, in [1, MaxIndexableQuads]
//   - logger: receives debug output about the allocation
//
// Returns:
//   - *GPUBuffers: the bridge
//   - error: an error if either buffer could not be created
func NewGPUBuffers(device Device, label string, capacity int, logger *slog.Logger) (*GPUBuffers, error) {
	if capacity < 1 || capacity > MaxIndexableQuads {
		return nil, fmt.Errorf("%w: %d", ErrCapacityOutOfRange, capacity)
	}

	vertexSize := uint64(capacity * QuadSize)
	vb, err := device.CreateVertexBuffer(label+" Vertex Buffer", vertexSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create vertex buffer: %w", err)
	}

	indices := BuildIndexPattern(capacity)
	ib, err := device.CreateIndexBuffer(label+" Index Buffer", common.SliceToBytes(indices))
	if err != nil {
		device.ReleaseBuffer(vb)
		return nil, fmt.Errorf("failed to create index buffer: %w", err)
	}

	logger.Debug("batcher buffers created",
		slog.String("label", label),
		slog.Int("capacity", capacity),
		slog.Uint64("vertexBytes", vertexSize),
		slog.Int("indexCount", len(indices)),
	)

	return &GPUBuffers{
		device:       device,
		vertexBuffer: vb,
		indexBuffer:  ib,
		capacity:     capacity,
	}, nil
}

// UploadVertices copies quads into the vertex buffer starting at quad slot offset.
//
// Parameters:
//   - offset: the first quad slot to write
//   - quads: the quads to upload; offset+len(quads) must not exceed the capacity
func (g *GPUBuffers) UploadVertices(offset int, quads []Quad) {
	if len(quads) == 0 {
		return
	}
	if offset < 0 || offset+len(quads) > g.capacity {
		panic(fmt.Sprintf("batcher: vertex upload [%d, %d) exceeds capacity %d", offset, offset+len(quads), g.capacity))
	}
	g.device.WriteBuffer(g.vertexBuffer, uint64(offset*QuadSize), common.SliceToBytes(quads))
}

// RawVertexBuffer returns the device vertex buffer.
func (g *GPUBuffers) RawVertexBuffer() Buffer {
	return g.vertexBuffer
}

// RawIndexBuffer returns the device index buffer holding the static index pattern.
func (g *GPUBuffers) RawIndexBuffer() Buffer {
	return g.indexBuffer
}

// IndexElementSize returns the width of the index buffer elements.
func (g *GPUBuffers) IndexElementSize() IndexElementSize {
	return IndexElementSize16
}

// Capacity returns the number of quads the vertex buffer can hold.
func (g *GPUBuffers) Capacity() int {
	return g.capacity
}

// Release frees both device buffers. The bridge must not be used afterwards.
func (g *GPUBuffers) Release() {
	if g.vertexBuffer != nil {
		g.device.ReleaseBuffer(g.vertexBuffer)
		g.vertexBuffer = nil
	}
	if g.indexBuffer != nil {
		g.device.ReleaseBuffer(g.indexBuffer)
		g.indexBuffer = nil
	}
}
