package window

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-batch/common"
	"github.com/stretchr/testify/assert"
)

func TestNewEngineWindow_Options(t *testing.T) {
	w := newEngineWindow(
		WithTitle("Sprites"),
		WithSize(800, 600),
		WithMinSize(100, 50),
		WithMaxSize(1920, 1080),
	)

	assert.Equal(t, "Sprites", w.title)
	assert.Equal(t, 800, w.Width())
	assert.Equal(t, 600, w.Height())
	assert.Equal(t, 100, w.minWidth)
	assert.Equal(t, 50, w.minHeight)
	assert.Equal(t, 1920, w.maxWidth)
	assert.Equal(t, 1080, w.maxHeight)
}

func TestEngineWindow_NotOpened(t *testing.T) {
	w := newEngineWindow()

	assert.False(t, w.IsRunning())
	assert.Nil(t, w.SurfaceDescriptor())
	assert.Error(t, w.Close())
	w.RequestClose()
}

func TestEngineWindow_KeyCallbacks(t *testing.T) {
	w := newEngineWindow()
	var down, up []int
	w.SetKeyDownCallback(func(key int) { down = append(down, key) })
	w.SetKeyUpCallback(func(key int) { up = append(up, key) })

	w.handleKey(common.KeyW, true)
	w.handleKey(common.KeyW, true)
	w.handleKey(common.KeyW, false)

	assert.Equal(t, []int{common.KeyW, common.KeyW}, down)
	assert.Equal(t, []int{common.KeyW}, up)
}

func TestEngineWindow_Resize(t *testing.T) {
	w := newEngineWindow()
	var got [2]int
	w.SetResizeCallback(func(width, height int) { got = [2]int{width, height} })

	w.handleResize(640, 480)

	assert.Equal(t, [2]int{640, 480}, got)
	assert.Equal(t, 640, w.Width())
	assert.Equal(t, 480, w.Height())
}

func TestEngineWindow_DragReportsDeltasWhileHeld(t *testing.T) {
	w := newEngineWindow()
	var deltas [][2]float32
	w.SetDragCallback(func(dx, dy float32) { deltas = append(deltas, [2]float32{dx, dy}) })

	w.handleCursor(10, 10)
	w.handleDragButton(true, 10, 10)
	w.handleCursor(15, 8)
	w.handleCursor(15, 8)
	w.handleCursor(20, 20)
	w.handleDragButton(false, 20, 20)
	w.handleCursor(50, 50)

	assert.Equal(t, [][2]float32{{5, -2}, {5, 12}}, deltas)
}

func TestEngineWindow_Scroll(t *testing.T) {
	w := newEngineWindow()
	w.handleScroll(1)

	var got float32
	w.SetScrollCallback(func(delta float32) { got = delta })
	w.handleScroll(-2)
	assert.Equal(t, float32(-2), got)
}
