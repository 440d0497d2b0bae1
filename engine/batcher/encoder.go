package batcher

import (
	"github.com/Carmen-Shannon/oxy-batch/common"
	"github.com/chewxy/math32"
)

// float32Epsilon is the difference between 1 and the next representable float32.
const float32Epsilon = 1.1920929e-07

// rotation2D is a 2x2 rotation matrix.
type rotation2D struct {
	m11, m12, m21, m22 float32
}

var identityRotation = rotation2D{m11: 1, m22: 1}

func newRotation2D(radians float32) rotation2D {
	if math32.Abs(radians) < float32Epsilon {
		return identityRotation
	}
	c, s := math32.Cos(radians), math32.Sin(radians)
	return rotation2D{m11: c, m12: s, m21: -s, m22: c}
}

// Encode writes the four vertices of one sprite into q.
//
// The destination rectangle is positioned by its pivot: origin is normalized within dest
// ((0,0) top-left, (1,1) bottom-right) and the quad rotates about that point, which lands on
// (dest.X, dest.Y). dest.W and dest.H are the unrotated size. src is already normalized to
// texture space. Skew is defined un-flipped, so any flip negates it. Flips are applied to the
// texture coordinates by XOR-ing the corner index with the flip bits.
//
// Parameters:
//   - q: the quad to overwrite
//   - origin: normalized rotation pivot within dest
//   - src: normalized source rectangle in the texture
//   - dest: destination rectangle
//   - skew: corner shear offsets
//   - color: tint shared by all four vertices
//   - rotation: rotation in radians
//   - depth: depth/layering hint written to every vertex z
//   - flip: texture mirroring
func Encode(q *Quad, origin common.Vec2, src, dest common.Rect, skew common.Skew, color common.Color, rotation, depth float32, flip common.FlipFlags) {
	rot := newRotation2D(rotation)

	if flip.Bits() != 0 {
		skew = skew.Negated()
	}
	skewX := [4]float32{skew.X1, skew.X1, skew.X2, skew.X2}
	skewY := [4]float32{skew.Y1, skew.Y2, skew.Y1, skew.Y2}

	bits := flip.Bits()
	for i := range q {
		cx := (common.CornerOffsetX[i]-origin.X)*dest.W + skewX[i]
		cy := (common.CornerOffsetY[i]-origin.Y)*dest.H - skewY[i]

		v := &q[i]
		v.Position[0] = rot.m21*cy + rot.m11*cx + dest.X
		v.Position[1] = rot.m22*cy + rot.m12*cx + dest.Y
		v.Position[2] = depth

		j := i ^ bits
		v.UV[0] = common.CornerOffsetX[j]*src.W + src.X
		v.UV[1] = common.CornerOffsetY[j]*src.H + src.Y

		v.Color = color
	}
}
