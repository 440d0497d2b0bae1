package texture

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-batch/common"
	"github.com/stretchr/testify/assert"
)

func TestSolid(t *testing.T) {
	c := common.RGBA(1, 2, 3, 4)
	data := Solid(3, 2, c)
	assert.Equal(t, uint32(3), data.Width)
	assert.Equal(t, uint32(2), data.Height)
	assert.Len(t, data.Pixels, 24)
	for i := 0; i < len(data.Pixels); i += 4 {
		assert.Equal(t, []byte{1, 2, 3, 4}, data.Pixels[i:i+4])
	}

	tiny := Solid(0, 0, c)
	assert.Equal(t, uint32(1), tiny.Width)
	assert.Len(t, tiny.Pixels, 4)
}

func TestCheckerboard(t *testing.T) {
	a, b := common.White, common.Black
	data := Checkerboard(4, 4, 2, a, b)

	pixel := func(x, y int) []byte {
		i := (y*4 + x) * 4
		return data.Pixels[i : i+4]
	}
	white := []byte{255, 255, 255, 255}
	black := []byte{0, 0, 0, 255}

	assert.Equal(t, white, pixel(0, 0))
	assert.Equal(t, white, pixel(1, 1))
	assert.Equal(t, black, pixel(2, 0))
	assert.Equal(t, black, pixel(0, 3))
	assert.Equal(t, white, pixel(3, 3))
}
