package batcher

import (
	"errors"
	"fmt"
	"unsafe"
)

type fakeTexture struct {
	name          string
	width, height uint32
}

func (t *fakeTexture) Width() uint32  { return t.width }
func (t *fakeTexture) Height() uint32 { return t.height }

func newFakeTexture(name string, width, height uint32) *fakeTexture {
	return &fakeTexture{name: name, width: width, height: height}
}

type fakeBuffer struct {
	label string
	data  []byte
}

type drawCall struct {
	primitive      PrimitiveType
	baseVertex     int
	baseIndex      int
	primitiveCount int
	indexBuffer    Buffer
	elementSize    IndexElementSize
}

type bufferWrite struct {
	buffer *fakeBuffer
	offset uint64
	data   []byte
}

// recorder implements both Device and Pipeline and records every call in order.
type recorder struct {
	events   []string
	draws    []drawCall
	writes   []bufferWrite
	bound    []Texture
	vbBinds  []int
	released []*fakeBuffer
	buffers  []*fakeBuffer

	failVertex bool
	failIndex  bool
}

var _ Device = &recorder{}
var _ Pipeline = &recorder{}

func (r *recorder) CreateVertexBuffer(label string, size uint64) (Buffer, error) {
	r.events = append(r.events, "CreateVertexBuffer")
	if r.failVertex {
		return nil, errors.New("out of memory")
	}
	b := &fakeBuffer{label: label, data: make([]byte, size)}
	r.buffers = append(r.buffers, b)
	return b, nil
}

func (r *recorder) CreateIndexBuffer(label string, data []byte) (Buffer, error) {
	r.events = append(r.events, "CreateIndexBuffer")
	if r.failIndex {
		return nil, errors.New("out of memory")
	}
	b := &fakeBuffer{label: label, data: append([]byte(nil), data...)}
	r.buffers = append(r.buffers, b)
	return b, nil
}

func (r *recorder) WriteBuffer(buf Buffer, offset uint64, data []byte) {
	r.events = append(r.events, "WriteBuffer")
	b := buf.(*fakeBuffer)
	copy(b.data[offset:], data)
	r.writes = append(r.writes, bufferWrite{buffer: b, offset: offset, data: append([]byte(nil), data...)})
}

func (r *recorder) ReleaseBuffer(buf Buffer) {
	r.events = append(r.events, "ReleaseBuffer")
	r.released = append(r.released, buf.(*fakeBuffer))
}

func (r *recorder) DrawIndexedPrimitives(primitive PrimitiveType, baseVertex, baseIndex, primitiveCount int, indexBuffer Buffer, elementSize IndexElementSize) {
	r.events = append(r.events, fmt.Sprintf("Draw(%d,%d,%d)", baseVertex, baseIndex, primitiveCount))
	r.draws = append(r.draws, drawCall{
		primitive:      primitive,
		baseVertex:     baseVertex,
		baseIndex:      baseIndex,
		primitiveCount: primitiveCount,
		indexBuffer:    indexBuffer,
		elementSize:    elementSize,
	})
}

func (r *recorder) BindTexture(tex Texture) {
	r.events = append(r.events, "BindTexture:"+tex.(*fakeTexture).name)
	r.bound = append(r.bound, tex)
}

func (r *recorder) BindVertexBuffer(buf Buffer, baseVertex int) {
	r.events = append(r.events, fmt.Sprintf("BindVertexBuffer(%d)", baseVertex))
	r.vbBinds = append(r.vbBinds, baseVertex)
}

func (r *recorder) RefreshShaderState() {
	r.events = append(r.events, "RefreshShaderState")
}

// resetCalls forgets everything recorded during construction.
func (r *recorder) resetCalls() {
	r.events = nil
	r.draws = nil
	r.writes = nil
	r.bound = nil
	r.vbBinds = nil
}

// quadsFromBytes reinterprets an uploaded vertex block.
func quadsFromBytes(data []byte) []Quad {
	if len(data) == 0 {
		return nil
	}
	return unsafe.Slice((*Quad)(unsafe.Pointer(&data[0])), len(data)/QuadSize)
}
