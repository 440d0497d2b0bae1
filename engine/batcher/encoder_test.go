package batcher

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-batch/common"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

func positions(q *Quad) [4]common.Vec2 {
	var out [4]common.Vec2
	for i, v := range q {
		out[i] = common.V2(v.Position[0], v.Position[1])
	}
	return out
}

func uvs(q *Quad) [4]common.Vec2 {
	var out [4]common.Vec2
	for i, v := range q {
		out[i] = common.V2(v.UV[0], v.UV[1])
	}
	return out
}

var unitSource = common.R(0, 0, 1, 1)

func TestEncodeIdentity(t *testing.T) {
	var q Quad
	Encode(&q, common.Vec2{}, unitSource, common.R(10, 20, 30, 40), common.Skew{}, common.White, 0, 0.5, common.FlipNone)

	assert.Equal(t, [4]common.Vec2{
		common.V2(10, 20),
		common.V2(40, 20),
		common.V2(10, 60),
		common.V2(40, 60),
	}, positions(&q))

	assert.Equal(t, [4]common.Vec2{
		common.V2(0, 0),
		common.V2(1, 0),
		common.V2(0, 1),
		common.V2(1, 1),
	}, uvs(&q))

	for _, v := range q {
		assert.Equal(t, float32(0.5), v.Position[2])
		assert.Equal(t, common.White, v.Color)
	}
}

func TestEncodeOrigin(t *testing.T) {
	var q Quad
	Encode(&q, common.V2(0.5, 0.5), unitSource, common.R(100, 100, 20, 10), common.Skew{}, common.White, 0, 0, common.FlipNone)

	assert.Equal(t, [4]common.Vec2{
		common.V2(90, 95),
		common.V2(110, 95),
		common.V2(90, 105),
		common.V2(110, 105),
	}, positions(&q))
}

func TestEncodeRotation(t *testing.T) {
	var q Quad
	Encode(&q, common.Vec2{}, unitSource, common.R(0, 0, 10, 20), common.Skew{}, common.White, math32.Pi/2, 0, common.FlipNone)

	// A quarter turn in y-down space maps +x onto +y and +y onto -x.
	want := [4]common.Vec2{
		common.V2(0, 0),
		common.V2(0, 10),
		common.V2(-20, 0),
		common.V2(-20, 10),
	}
	got := positions(&q)
	for i := range want {
		assert.InDelta(t, want[i].X, got[i].X, 1e-5, "corner %d x", i)
		assert.InDelta(t, want[i].Y, got[i].Y, 1e-5, "corner %d y", i)
	}
}

func TestEncodeTinyRotationIsIdentity(t *testing.T) {
	var a, b Quad
	dest := common.R(3, 4, 5, 6)
	Encode(&a, common.Vec2{}, unitSource, dest, common.Skew{}, common.White, 1e-8, 0, common.FlipNone)
	Encode(&b, common.Vec2{}, unitSource, dest, common.Skew{}, common.White, 0, 0, common.FlipNone)
	assert.Equal(t, b, a)
}

func TestEncodeSkew(t *testing.T) {
	skew := common.Skew{X1: 5, Y1: 2, X2: -3, Y2: 1}

	var q Quad
	Encode(&q, common.Vec2{}, unitSource, common.R(0, 0, 30, 40), skew, common.White, 0, 0, common.FlipNone)
	assert.Equal(t, [4]common.Vec2{
		common.V2(5, -2),
		common.V2(35, -1),
		common.V2(-3, 38),
		common.V2(27, 39),
	}, positions(&q))

	// Any flip negates the skew before it is applied.
	Encode(&q, common.Vec2{}, unitSource, common.R(0, 0, 30, 40), skew, common.White, 0, 0, common.FlipHorizontal)
	assert.Equal(t, [4]common.Vec2{
		common.V2(-5, 2),
		common.V2(25, 1),
		common.V2(3, 42),
		common.V2(33, 41),
	}, positions(&q))
}

func TestEncodeFlip(t *testing.T) {
	src := common.R(0.25, 0.5, 0.5, 0.25)
	tl := common.V2(0.25, 0.5)
	tr := common.V2(0.75, 0.5)
	bl := common.V2(0.25, 0.75)
	br := common.V2(0.75, 0.75)

	tests := []struct {
		name string
		flip common.FlipFlags
		want [4]common.Vec2
	}{
		{"none", common.FlipNone, [4]common.Vec2{tl, tr, bl, br}},
		{"horizontal", common.FlipHorizontal, [4]common.Vec2{tr, tl, br, bl}},
		{"vertical", common.FlipVertical, [4]common.Vec2{bl, br, tl, tr}},
		{"both", common.FlipBoth, [4]common.Vec2{br, bl, tr, tl}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var q Quad
			Encode(&q, common.Vec2{}, src, common.R(0, 0, 8, 8), common.Skew{}, common.White, 0, 0, tt.flip)
			assert.Equal(t, tt.want, uvs(&q))
			// Flipping never moves the geometry.
			assert.Equal(t, common.V2(8, 8), positions(&q)[common.CornerBottomRight])
		})
	}
}

func TestEncodeColor(t *testing.T) {
	var q Quad
	tint := common.Color{R: 255, G: 128, B: 0, A: 64}
	Encode(&q, common.Vec2{}, unitSource, common.R(0, 0, 1, 1), common.Skew{}, tint, 0, 0, common.FlipNone)
	for _, v := range q {
		assert.Equal(t, tint, v.Color)
	}
}
