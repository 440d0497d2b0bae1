package batcher

// MaxIndexableQuads is the largest quad capacity whose vertices can all be addressed by 16-bit indices.
const MaxIndexableQuads = 65536 / VerticesPerQuad

// BuildIndexPattern returns the static index list for capacity quads. Quad n with first vertex
// v = 4n contributes the triangles (v, v+1, v+2) and (v+3, v+2, v+1). The pattern depends only on
// slot position, so a span starting at slot lo always begins at index lo*6.
//
// Parameters:
//   - capacity: the number of quads, at most MaxIndexableQuads
//
// Returns:
//   - []uint16: capacity*6 indices
func BuildIndexPattern(capacity int) []uint16 {
	indices := make([]uint16, capacity*IndicesPerQuad)
	for n := 0; n < capacity; n++ {
		v := uint16(n * VerticesPerQuad)
		i := n * IndicesPerQuad
		indices[i+0] = v
		indices[i+1] = v + 1
		indices[i+2] = v + 2
		indices[i+3] = v + 3
		indices[i+4] = v + 2
		indices[i+5] = v + 1
	}
	return indices
}
