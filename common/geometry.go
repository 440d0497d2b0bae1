package common

// Vec2 is a two component float32 vector.
type Vec2 struct {
	X, Y float32
}

// V2 is a shorthand constructor for Vec2.
func V2(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

// Rect is an axis-aligned rectangle described by its top-left corner and size.
// Depending on context the units are pixels (destination and texture source rectangles)
// or normalized texture coordinates.
type Rect struct {
	X, Y, W, H float32
}

// R is a shorthand constructor for Rect.
func R(x, y, w, h float32) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W == 0 || r.H == 0
}

// Normalize divides the rectangle by the given texture dimensions, mapping a pixel rectangle
// into [0, 1] texture coordinate space.
//
// Parameters:
//   - width: the texture width in pixels (must be non-zero)
//   - height: the texture height in pixels (must be non-zero)
//
// Returns:
//   - Rect: the rectangle in normalized texture coordinates
func (r Rect) Normalize(width, height uint32) Rect {
	invW := 1 / float32(width)
	invH := 1 / float32(height)
	return Rect{X: r.X * invW, Y: r.Y * invH, W: r.W * invW, H: r.H * invH}
}

// Skew shears a quad by offsetting its corners. X1 shifts the top edge horizontally and X2 the
// bottom edge, Y1 shifts the left edge vertically and Y2 the right edge.
// Skew is expressed in un-flipped space.
type Skew struct {
	X1, Y1, X2, Y2 float32
}

// Negated returns the skew with all four components negated.
func (s Skew) Negated() Skew {
	return Skew{X1: -s.X1, Y1: -s.Y1, X2: -s.X2, Y2: -s.Y2}
}

// Color is a non-premultiplied 8-bit per channel RGBA color. Its memory layout matches the
// Unorm8x4 vertex attribute.
type Color struct {
	R, G, B, A uint8
}

// RGBA is a shorthand constructor for Color.
func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

var (
	// White leaves the sampled texel unchanged when used as a sprite tint.
	White = Color{R: 255, G: 255, B: 255, A: 255}
	// Black is opaque black.
	Black = Color{A: 255}
	// Transparent is fully transparent black.
	Transparent = Color{}
)

// FlipFlags selects mirroring of a sprite's texture along its axes.
// The two bits are chosen so that XOR-ing a corner index with the flags swaps the mirrored corners.
type FlipFlags uint8

const (
	// FlipNone draws the texture unmirrored.
	FlipNone FlipFlags = 0
	// FlipHorizontal mirrors left and right.
	FlipHorizontal FlipFlags = 1
	// FlipVertical mirrors top and bottom.
	FlipVertical FlipFlags = 2
	// FlipBoth mirrors both axes.
	FlipBoth = FlipHorizontal | FlipVertical
)

// Bits returns the two flip bits as a corner index mask.
func (f FlipFlags) Bits() int {
	return int(f & FlipBoth)
}

// Has reports whether all bits of flag are set.
func (f FlipFlags) Has(flag FlipFlags) bool {
	return f&flag == flag
}

// String implements fmt.Stringer.
func (f FlipFlags) String() string {
	switch f & FlipBoth {
	case FlipHorizontal:
		return "horizontal"
	case FlipVertical:
		return "vertical"
	case FlipBoth:
		return "both"
	default:
		return "none"
	}
}

// Corner indices of a quad, in vertex order.
const (
	CornerTopLeft = iota
	CornerTopRight
	CornerBottomLeft
	CornerBottomRight
)

// CornerOffsetX and CornerOffsetY are the unit offsets of each quad corner in vertex order
// (top-left, top-right, bottom-left, bottom-right).
var (
	CornerOffsetX = [4]float32{0, 1, 0, 1}
	CornerOffsetY = [4]float32{0, 0, 1, 1}
)
