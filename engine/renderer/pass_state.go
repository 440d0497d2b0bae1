package renderer

import "github.com/cogentcore/webgpu/wgpu"

// maxBindGroups is the number of bind group slots tracked per pass. The sprite pipeline uses two.
const maxBindGroups = 4

// passEncoder is the subset of *wgpu.RenderPassEncoder that pass state is replayed onto.
type passEncoder interface {
	SetPipeline(pipeline *wgpu.RenderPipeline)
	SetBindGroup(groupIndex uint32, group *wgpu.BindGroup, dynamicOffsets []uint32)
	SetVertexBuffer(slot uint32, buffer *wgpu.Buffer, offset, size uint64)
}

// passState remembers what has been bound on the current render pass and how many draws it has
// recorded. Queue writes are ordered before every command buffer submitted after them, so a
// write that lands while the pass already holds draws forces the pass to be split; the bindings
// recorded here are replayed onto the new pass.
type passState struct {
	pipeline     *wgpu.RenderPipeline
	bindGroups   [maxBindGroups]*wgpu.BindGroup
	vertexBuffer *wgpu.Buffer
	draws        int
}

// reset forgets every binding. Called when a frame begins.
func (s *passState) reset() {
	*s = passState{}
}

// needsSplit reports whether a queue write now would be observed by draws already recorded.
func (s *passState) needsSplit() bool {
	return s.draws > 0
}

func (s *passState) setPipeline(enc passEncoder, p *wgpu.RenderPipeline) {
	if p == nil || s.pipeline == p {
		return
	}
	enc.SetPipeline(p)
	s.pipeline = p
}

func (s *passState) setBindGroup(enc passEncoder, group int, bg *wgpu.BindGroup) {
	if bg == nil || group < 0 || group >= maxBindGroups || s.bindGroups[group] == bg {
		return
	}
	enc.SetBindGroup(uint32(group), bg, nil)
	s.bindGroups[group] = bg
}

func (s *passState) setVertexBuffer(enc passEncoder, buf *wgpu.Buffer) {
	if buf == nil || s.vertexBuffer == buf {
		return
	}
	enc.SetVertexBuffer(0, buf, 0, wgpu.WholeSize)
	s.vertexBuffer = buf
}

// replay applies the recorded bindings to a freshly begun pass and clears the draw count.
func (s *passState) replay(enc passEncoder) {
	s.draws = 0
	if s.pipeline != nil {
		enc.SetPipeline(s.pipeline)
	}
	for i, bg := range s.bindGroups {
		if bg != nil {
			enc.SetBindGroup(uint32(i), bg, nil)
		}
	}
	if s.vertexBuffer != nil {
		enc.SetVertexBuffer(0, s.vertexBuffer, 0, wgpu.WholeSize)
	}
}
