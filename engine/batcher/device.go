package batcher

// Buffer is an opaque GPU buffer handle created and owned by a Device.
type Buffer any

// Texture is a non-owning reference to a GPU texture. Implementations must be comparable; two
// handles refer to the same texture exactly when they are equal, which is what decides where one
// draw call ends and the next begins.
type Texture interface {
	// Width returns the texture width in pixels.
	Width() uint32

	// Height returns the texture height in pixels.
	Height() uint32
}

// PrimitiveType is the topology used when drawing indexed primitives.
type PrimitiveType int

const (
	// PrimitiveTriangleList draws every three indices as an independent triangle.
	PrimitiveTriangleList PrimitiveType = iota
)

// String implements fmt.Stringer.
func (p PrimitiveType) String() string {
	switch p {
	case PrimitiveTriangleList:
		return "triangle-list"
	default:
		return "unknown"
	}
}

// IndexElementSize is the width of a single element in an index buffer.
type IndexElementSize int

const (
	// IndexElementSize16 selects unsigned 16-bit indices.
	IndexElementSize16 IndexElementSize = 2
	// IndexElementSize32 selects unsigned 32-bit indices.
	IndexElementSize32 IndexElementSize = 4
)

// Device is the graphics device the batcher allocates buffers on and issues draw calls to.
// The batcher only ever calls it from a single goroutine.
type Device interface {
	// CreateVertexBuffer allocates a write-only vertex buffer of the given size in bytes.
	//
	// Parameters:
	//   - label: a debug label for the buffer
	//   - size: the buffer size in bytes
	//
	// Returns:
	//   - Buffer: the created buffer handle
	//   - error: an error if allocation fails
	CreateVertexBuffer(label string, size uint64) (Buffer, error)

	// CreateIndexBuffer allocates an index buffer and fills it with data.
	//
	// Parameters:
	//   - label: a debug label for the buffer
	//   - data: the raw index bytes
	//
	// Returns:
	//   - Buffer: the created buffer handle
	//   - error: an error if allocation fails
	CreateIndexBuffer(label string, data []byte) (Buffer, error)

	// WriteBuffer copies data into buf starting at the given byte offset.
	//
	// Parameters:
	//   - buf: a buffer created by this device
	//   - offset: the destination byte offset
	//   - data: the bytes to copy
	WriteBuffer(buf Buffer, offset uint64, data []byte)

	// ReleaseBuffer frees a buffer created by this device.
	//
	// Parameters:
	//   - buf: the buffer to release
	ReleaseBuffer(buf Buffer)

	// DrawIndexedPrimitives issues one indexed draw call.
	//
	// Parameters:
	//   - primitive: the primitive topology
	//   - baseVertex: the first vertex referenced by this draw
	//   - baseIndex: the first index read from indexBuffer
	//   - primitiveCount: the number of primitives (triangles) to draw
	//   - indexBuffer: the index buffer to read from
	//   - elementSize: the width of one index element
	DrawIndexedPrimitives(primitive PrimitiveType, baseVertex, baseIndex, primitiveCount int, indexBuffer Buffer, elementSize IndexElementSize)
}

// Pipeline owns the shader and binding state the batcher draws with.
type Pipeline interface {
	// BindTexture makes tex the texture sampled by subsequent draw calls.
	//
	// Parameters:
	//   - tex: the texture to bind
	BindTexture(tex Texture)

	// BindVertexBuffer binds buf as the vertex source for subsequent draw calls.
	//
	// Parameters:
	//   - buf: the vertex buffer
	//   - baseVertex: the first vertex the next draw call will reference
	BindVertexBuffer(buf Buffer, baseVertex int)

	// RefreshShaderState pushes any per-frame shader state (view projection, effect parameters)
	// before the first draw call of a flush.
	RefreshShaderState()
}
