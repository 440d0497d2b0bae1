package batcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fill(buf *QuadBuffer, textures ...Texture) {
	for _, tex := range textures {
		buf.Push(Quad{}, tex)
	}
}

func TestSpansRunLength(t *testing.T) {
	a := newFakeTexture("a", 1, 1)
	b := newFakeTexture("b", 1, 1)
	buf := NewQuadBuffer(8)
	fill(buf, a, a, b, b, b, a)

	p := buf.Spans()
	spans := p.All()
	assert.Equal(t, []Span{{0, 2}, {2, 5}, {5, 6}}, spans)
	assert.Equal(t, Texture(a), p.Texture(spans[0]))
	assert.Equal(t, Texture(b), p.Texture(spans[1]))
	assert.Equal(t, Texture(a), p.Texture(spans[2]))

	_, ok := p.Next()
	assert.False(t, ok, "a drained partitioner yields nothing")
}

func TestSpansCoverage(t *testing.T) {
	textures := []Texture{
		newFakeTexture("a", 1, 1),
		newFakeTexture("b", 1, 1),
		newFakeTexture("c", 1, 1),
	}
	buf := NewQuadBuffer(64)
	for i := 0; i < 64; i++ {
		buf.Push(Quad{}, textures[(i/3)%len(textures)])
	}

	next := 0
	for _, s := range buf.Spans().All() {
		require.Equal(t, next, s.Lo, "spans must be contiguous")
		require.Greater(t, s.Hi, s.Lo)
		for i := s.Lo; i < s.Hi; i++ {
			assert.Equal(t, buf.Texture(s.Lo), buf.Texture(i))
		}
		next = s.Hi
	}
	assert.Equal(t, 64, next)
}

func TestSpansEmpty(t *testing.T) {
	buf := NewQuadBuffer(4)
	assert.Empty(t, buf.Spans().All())
}

func TestSpanDerivedCounts(t *testing.T) {
	s := Span{Lo: 2, Hi: 5}
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, 6, s.Triangles())
	assert.Equal(t, 12, s.Vertices())
	assert.Equal(t, 8, s.BaseVertex())
	assert.Equal(t, 12, s.BaseIndex())
}
