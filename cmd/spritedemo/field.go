package main

import (
	"cmp"
	"math/rand/v2"
	"slices"

	"github.com/Carmen-Shannon/oxy-batch/common"
	"github.com/Carmen-Shannon/oxy-batch/engine/batcher"
	"github.com/chewxy/math32"
)

// pusher is the part of a batcher the field draws into.
type pusher interface {
	Push(sprite batcher.Sprite, tex batcher.Texture)
}

// demoTexture is a texture plus the source frames sprites cycle through. No frames means the
// whole texture.
type demoTexture struct {
	texture batcher.Texture
	frames  []common.Rect
}

type spriteState struct {
	texture  int
	position common.Vec2
	velocity common.Vec2
	size     float32
	rotation float32
	spin     float32
	skew     common.Skew
	color    common.Color
	flip     common.FlipFlags
	phase    float32
}

// field is a box of bouncing, spinning sprites.
type field struct {
	textures []demoTexture
	sprites  []spriteState
	bounds   common.Rect
	elapsed  float32
	paused   bool
	fps      float32 // atlas animation frames per second
}

// newField scatters n sprites over bounds. Sprites are ordered by texture so that one frame
// draws with one call per texture.
func newField(rng *rand.Rand, n int, textures []demoTexture, bounds common.Rect) *field {
	f := &field{
		textures: textures,
		sprites:  make([]spriteState, n),
		bounds:   bounds,
		fps:      8,
	}
	if len(textures) == 0 {
		f.sprites = nil
		return f
	}
	for i := range f.sprites {
		size := 12 + rng.Float32()*36
		speed := 40 + rng.Float32()*160
		heading := rng.Float32() * 2 * math32.Pi
		f.sprites[i] = spriteState{
			texture:  rng.IntN(len(textures)),
			position: common.V2(bounds.X+rng.Float32()*bounds.W, bounds.Y+rng.Float32()*bounds.H),
			velocity: common.V2(math32.Cos(heading)*speed, math32.Sin(heading)*speed),
			size:     size,
			rotation: rng.Float32() * 2 * math32.Pi,
			spin:     (rng.Float32() - 0.5) * 4,
			skew:     common.Skew{X1: (rng.Float32() - 0.5) * size * 0.4, X2: (rng.Float32() - 0.5) * size * 0.4},
			color:    common.RGBA(uint8(128+rng.IntN(128)), uint8(128+rng.IntN(128)), uint8(128+rng.IntN(128)), 255),
			flip:     common.FlipFlags(rng.IntN(4)),
			phase:    rng.Float32() * 16,
		}
	}
	slices.SortStableFunc(f.sprites, func(a, b spriteState) int {
		return cmp.Compare(a.texture, b.texture)
	})
	return f
}

// togglePause stops or resumes the simulation; drawing continues.
func (f *field) togglePause() {
	f.paused = !f.paused
}

// update advances every sprite by dt seconds and bounces it off the field edges.
func (f *field) update(dt float32) {
	if f.paused {
		return
	}
	f.elapsed += dt
	minX, minY := f.bounds.X, f.bounds.Y
	maxX, maxY := f.bounds.X+f.bounds.W, f.bounds.Y+f.bounds.H
	for i := range f.sprites {
		s := &f.sprites[i]
		s.position.X += s.velocity.X * dt
		s.position.Y += s.velocity.Y * dt
		s.rotation += s.spin * dt

		if s.position.X < minX || s.position.X > maxX {
			s.velocity.X = -s.velocity.X
			s.position.X = common.Clamp(s.position.X, minX, maxX)
		}
		if s.position.Y < minY || s.position.Y > maxY {
			s.velocity.Y = -s.velocity.Y
			s.position.Y = common.Clamp(s.position.Y, minY, maxY)
		}
	}
}

// draw pushes every sprite, centered on its position.
func (f *field) draw(p pusher) {
	for i := range f.sprites {
		s := &f.sprites[i]
		tex := f.textures[s.texture]
		var source common.Rect
		if n := len(tex.frames); n > 0 {
			source = tex.frames[int(f.elapsed*f.fps+s.phase)%n]
		}
		p.Push(batcher.Sprite{
			Source:   source,
			Dest:     common.R(s.position.X, s.position.Y, s.size, s.size),
			Origin:   common.V2(0.5, 0.5),
			Rotation: s.rotation,
			Skew:     s.skew,
			Color:    s.color,
			Flip:     s.flip,
		}, tex.texture)
	}
}

// backdrop draws one untinted sprite covering the field.
func backdrop(p pusher, tex batcher.Texture, bounds common.Rect) {
	p.Push(batcher.Sprite{
		Source: common.R(0, 0, bounds.W/4, bounds.H/4),
		Dest:   bounds,
		Color:  common.RGBA(60, 60, 70, 255),
	}, tex)
}
