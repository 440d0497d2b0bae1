package texture

import (
	"github.com/Carmen-Shannon/oxy-batch/common"
)

// Solid returns a width by height texture filled with a single color.
//
// Parameters:
//   - width: texture width in pixels (values below 1 become 1)
//   - height: texture height in pixels (values below 1 become 1)
//   - c: the fill color
//
// Returns:
//   - common.TextureStagingData: the generated pixels
func Solid(width, height uint32, c common.Color) common.TextureStagingData {
	width, height = max(width, 1), max(height, 1)
	pixels := make([]byte, int(width)*int(height)*4)
	for i := 0; i < len(pixels); i += 4 {
		pixels[i+0] = c.R
		pixels[i+1] = c.G
		pixels[i+2] = c.B
		pixels[i+3] = c.A
	}
	return common.TextureStagingData{Pixels: pixels, Width: width, Height: height}
}

// Checkerboard returns a texture of alternating cell x cell squares. The top-left cell uses a.
//
// Parameters:
//   - width: texture width in pixels (values below 1 become 1)
//   - height: texture height in pixels (values below 1 become 1)
//   - cell: edge length of one square in pixels (values below 1 become 1)
//   - a: color of the even cells
//   - b: color of the odd cells
//
// Returns:
//   - common.TextureStagingData: the generated pixels
func Checkerboard(width, height, cell uint32, a, b common.Color) common.TextureStagingData {
	width, height, cell = max(width, 1), max(height, 1), max(cell, 1)
	pixels := make([]byte, int(width)*int(height)*4)
	i := 0
	for y := range height {
		for x := range width {
			c := a
			if (x/cell+y/cell)%2 == 1 {
				c = b
			}
			pixels[i+0] = c.R
			pixels[i+1] = c.G
			pixels[i+2] = c.B
			pixels[i+3] = c.A
			i += 4
		}
	}
	return common.TextureStagingData{Pixels: pixels, Width: width, Height: height}
}
