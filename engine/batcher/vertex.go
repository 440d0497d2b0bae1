package batcher

import (
	"unsafe"

	"github.com/Carmen-Shannon/oxy-batch/common"
)

// Vertex is the GPU vertex layout of the sprite pipeline. The struct is tightly packed:
// position at byte 0, color at byte 12, uv at byte 16, 24 bytes in total.
type Vertex struct {
	// Position is the destination x, y and the depth/layering hint in z.
	Position [3]float32
	// Color is the tint applied to the sampled texel.
	Color common.Color
	// UV is the texture coordinate normalized to [0, 1].
	UV [2]float32
}

// Quad holds the four vertices of one sprite in top-left, top-right, bottom-left,
// bottom-right order.
type Quad [4]Vertex

const (
	// VertexSize is the size of one Vertex in bytes.
	VertexSize = int(unsafe.Sizeof(Vertex{}))
	// QuadSize is the size of one Quad in bytes.
	QuadSize = VertexSize * VerticesPerQuad

	// VerticesPerQuad is the number of vertices emitted per sprite.
	VerticesPerQuad = 4
	// IndicesPerQuad is the number of indices emitted per sprite (two triangles).
	IndicesPerQuad = 6
	// TrianglesPerQuad is the number of triangles drawn per sprite.
	TrianglesPerQuad = 2
)

// Byte offsets of the vertex attributes, for building vertex buffer layouts.
const (
	VertexPositionOffset = uint64(unsafe.Offsetof(Vertex{}.Position))
	VertexColorOffset    = uint64(unsafe.Offsetof(Vertex{}.Color))
	VertexUVOffset       = uint64(unsafe.Offsetof(Vertex{}.UV))
)
