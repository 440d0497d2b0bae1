package texture

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-batch/common"
)

// ErrInvalidGrid is returned when an atlas grid does not fit its sheet.
var ErrInvalidGrid = errors.New("texture: invalid atlas grid")

// Atlas slices a sprite sheet laid out as a regular grid into pixel source rectangles.
// Frames are numbered row-major from the top-left cell.
type Atlas struct {
	frames  []common.Rect
	columns int
	rows    int
}

// NewAtlas builds an Atlas over a sheet of sheetWidth by sheetHeight pixels with frames of
// frameWidth by frameHeight. margin is the border around the grid and spacing the gap between
// cells, both in pixels. Partial cells at the right and bottom edges are ignored.
//
// Parameters:
//   - sheetWidth: the sheet width in pixels
//   - sheetHeight: the sheet height in pixels
//   - frameWidth: the width of one frame in pixels
//   - frameHeight: the height of one frame in pixels
//   - margin: pixels between the sheet edge and the first cell
//   - spacing: pixels between adjacent cells
//
// Returns:
//   - *Atlas: the atlas
//   - error: ErrInvalidGrid if no full frame fits
func NewAtlas(sheetWidth, sheetHeight, frameWidth, frameHeight, margin, spacing uint32) (*Atlas, error) {
	if frameWidth == 0 || frameHeight == 0 {
		return nil, fmt.Errorf("%w: zero frame size", ErrInvalidGrid)
	}
	columns := cellsAlong(sheetWidth, frameWidth, margin, spacing)
	rows := cellsAlong(sheetHeight, frameHeight, margin, spacing)
	if columns == 0 || rows == 0 {
		return nil, fmt.Errorf("%w: %dx%d frames do not fit a %dx%d sheet", ErrInvalidGrid, frameWidth, frameHeight, sheetWidth, sheetHeight)
	}

	a := &Atlas{
		frames:  make([]common.Rect, 0, columns*rows),
		columns: columns,
		rows:    rows,
	}
	for row := range rows {
		for col := range columns {
			x := margin + uint32(col)*(frameWidth+spacing)
			y := margin + uint32(row)*(frameHeight+spacing)
			a.frames = append(a.frames, common.R(float32(x), float32(y), float32(frameWidth), float32(frameHeight)))
		}
	}
	return a, nil
}

// NewAtlasFor is NewAtlas over the dimensions of staged texture data.
func NewAtlasFor(sheet common.TextureStagingData, frameWidth, frameHeight, margin, spacing uint32) (*Atlas, error) {
	return NewAtlas(sheet.Width, sheet.Height, frameWidth, frameHeight, margin, spacing)
}

// cellsAlong counts how many whole cells fit along one axis.
func cellsAlong(extent, cell, margin, spacing uint32) int {
	if extent < 2*margin+cell {
		return 0
	}
	return int((extent-2*margin-cell)/(cell+spacing)) + 1
}

// Len returns the number of frames.
func (a *Atlas) Len() int {
	return len(a.frames)
}

// Columns returns the number of frames per row.
func (a *Atlas) Columns() int {
	return a.columns
}

// Rows returns the number of frame rows.
func (a *Atlas) Rows() int {
	return a.rows
}

// Frame returns frame i, wrapping around so animation counters can be passed directly.
//
// Parameters:
//   - i: the frame index, any integer
//
// Returns:
//   - common.Rect: the frame's source rectangle in pixels
func (a *Atlas) Frame(i int) common.Rect {
	n := len(a.frames)
	i %= n
	if i < 0 {
		i += n
	}
	return a.frames[i]
}

// At returns the frame at the given grid cell.
//
// Parameters:
//   - col: the column index
//   - row: the row index
//
// Returns:
//   - common.Rect: the frame's source rectangle
//   - bool: false if the cell is outside the grid
func (a *Atlas) At(col, row int) (common.Rect, bool) {
	if col < 0 || row < 0 || col >= a.columns || row >= a.rows {
		return common.Rect{}, false
	}
	return a.frames[row*a.columns+col], true
}

// Frames returns a copy of all frames in row-major order.
func (a *Atlas) Frames() []common.Rect {
	out := make([]common.Rect, len(a.frames))
	copy(out, a.frames)
	return out
}
