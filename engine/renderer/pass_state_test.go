package renderer

import (
	"fmt"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
)

type fakeEncoder struct {
	calls []string
}

func (e *fakeEncoder) SetPipeline(p *wgpu.RenderPipeline) {
	e.calls = append(e.calls, "pipeline")
}

func (e *fakeEncoder) SetBindGroup(group uint32, bg *wgpu.BindGroup, dynamicOffsets []uint32) {
	e.calls = append(e.calls, fmt.Sprintf("group%d", group))
}

func (e *fakeEncoder) SetVertexBuffer(slot uint32, buf *wgpu.Buffer, offset, size uint64) {
	e.calls = append(e.calls, fmt.Sprintf("vertex%d", slot))
}

func TestPassState_SkipsRedundantBinds(t *testing.T) {
	var s passState
	enc := &fakeEncoder{}
	rp := &wgpu.RenderPipeline{}
	bg := &wgpu.BindGroup{}
	vb := &wgpu.Buffer{}

	s.setPipeline(enc, rp)
	s.setPipeline(enc, rp)
	s.setBindGroup(enc, 1, bg)
	s.setBindGroup(enc, 1, bg)
	s.setVertexBuffer(enc, vb)
	s.setVertexBuffer(enc, vb)

	assert.Equal(t, []string{"pipeline", "group1", "vertex0"}, enc.calls)
}

func TestPassState_IgnoresNilAndOutOfRange(t *testing.T) {
	var s passState
	enc := &fakeEncoder{}

	s.setPipeline(enc, nil)
	s.setBindGroup(enc, 0, nil)
	s.setBindGroup(enc, maxBindGroups, &wgpu.BindGroup{})
	s.setBindGroup(enc, -1, &wgpu.BindGroup{})
	s.setVertexBuffer(enc, nil)

	assert.Empty(t, enc.calls)
}

func TestPassState_NeedsSplitOnlyAfterDraws(t *testing.T) {
	var s passState
	assert.False(t, s.needsSplit())

	s.draws = 2
	assert.True(t, s.needsSplit())

	s.reset()
	assert.False(t, s.needsSplit())
}

func TestPassState_ReplayRestoresBindings(t *testing.T) {
	var s passState
	first := &fakeEncoder{}
	s.setPipeline(first, &wgpu.RenderPipeline{})
	s.setBindGroup(first, 0, &wgpu.BindGroup{})
	s.setBindGroup(first, 1, &wgpu.BindGroup{})
	s.setVertexBuffer(first, &wgpu.Buffer{})
	s.draws = 3

	second := &fakeEncoder{}
	s.replay(second)

	assert.Equal(t, []string{"pipeline", "group0", "group1", "vertex0"}, second.calls)
	assert.False(t, s.needsSplit(), "replay starts a pass with no draws")
}
