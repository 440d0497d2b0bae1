package batcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGPUBuffersUploadVertices(t *testing.T) {
	rec := &recorder{}
	g, err := NewGPUBuffers(rec, "Test", 4, Logger())
	require.NoError(t, err)

	assert.Equal(t, 4, g.Capacity())
	assert.Equal(t, IndexElementSize16, g.IndexElementSize())
	assert.Same(t, rec.buffers[0], g.RawVertexBuffer())
	assert.Same(t, rec.buffers[1], g.RawIndexBuffer())

	g.UploadVertices(0, nil)
	assert.Empty(t, rec.writes)

	quads := make([]Quad, 2)
	quads[1][3].UV = [2]float32{1, 1}
	g.UploadVertices(2, quads)
	require.Len(t, rec.writes, 1)
	assert.Equal(t, uint64(2*QuadSize), rec.writes[0].offset)
	assert.Len(t, rec.writes[0].data, 2*QuadSize)
	assert.Equal(t, [2]float32{1, 1}, quadsFromBytes(rec.buffers[0].data)[3][3].UV)

	assert.Panics(t, func() { g.UploadVertices(3, quads) })

	g.Release()
	g.Release()
	assert.Len(t, rec.released, 2, "releasing twice frees each buffer once")
}
