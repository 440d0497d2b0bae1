package batcher

// Span is the half-open range [Lo, Hi) of quad slots that share one texture and are drawn by a
// single draw call.
type Span struct {
	Lo, Hi int
}

// Len returns the number of sprites in the span.
func (s Span) Len() int { return s.Hi - s.Lo }

// Triangles returns the number of triangles drawn for the span.
func (s Span) Triangles() int { return s.Len() * TrianglesPerQuad }

// Vertices returns the number of vertices covered by the span.
func (s Span) Vertices() int { return s.Len() * VerticesPerQuad }

// BaseVertex returns the offset of the span's first vertex in the vertex buffer.
func (s Span) BaseVertex() int { return s.Lo * VerticesPerQuad }

// BaseIndex returns the offset of the span's first index in the index buffer.
func (s Span) BaseIndex() int { return s.Lo * IndicesPerQuad }

// SpanPartitioner walks a snapshot of a texture track and yields maximal runs of equal textures
// in push order. Runs of the same texture separated by another texture stay separate spans.
// A partitioner is single use.
type SpanPartitioner struct {
	textures []Texture
	current  int
}

// Next returns the next span, or false once every pending quad has been covered.
//
// Returns:
//   - Span: the next run of quads sharing a texture
//   - bool: false when there are no more spans
func (p *SpanPartitioner) Next() (Span, bool) {
	n := len(p.textures)
	if p.current >= n {
		return Span{}, false
	}

	lo := p.current
	head := p.textures[lo]
	hi := lo + 1
	for hi < n && p.textures[hi] == head {
		hi++
	}
	p.current = hi
	return Span{Lo: lo, Hi: hi}, true
}

// Texture returns the texture shared by every quad of span s.
func (p *SpanPartitioner) Texture(s Span) Texture {
	return p.textures[s.Lo]
}

// All drains the partitioner and returns the remaining spans.
//
// Returns:
//   - []Span: the spans in push order
func (p *SpanPartitioner) All() []Span {
	var spans []Span
	for s, ok := p.Next(); ok; s, ok = p.Next() {
		spans = append(spans, s)
	}
	return spans
}
