package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-batch/common"
	"github.com/chewxy/math32"
)

const (
	// DefaultNear is the nearest sprite depth that survives clipping.
	DefaultNear float32 = -1
	// DefaultFar is the farthest sprite depth that survives clipping.
	DefaultFar float32 = 1

	// MinZoom is the smallest zoom factor accepted; smaller values are clamped.
	MinZoom float32 = 1e-3
)

type cameraImpl struct {
	mu *sync.Mutex

	position common.Vec2
	zoom     float32
	rotation float32

	viewportWidth  float32
	viewportHeight float32
	near, far      float32

	viewMatrix           [16]float32
	projectionMatrix     [16]float32
	viewProjectionMatrix [16]float32

	version uint64
}

// Camera is a 2D camera over a y-down pixel space. With zoom 1 and no rotation one world unit is
// one pixel. Position is the world point shown at the center of the viewport; zoom and rotation
// pivot about that point. Sprite depth must lie in [near, far].
type Camera interface {
	// Position returns the world point at the center of the viewport.
	//
	// Returns:
	//   - common.Vec2: the camera position
	Position() common.Vec2

	// Zoom returns the magnification factor; values above 1 enlarge the world.
	//
	// Returns:
	//   - float32: the zoom factor
	Zoom() float32

	// Rotation returns the camera rotation in radians. Rotating the camera clockwise turns the
	// world counter-clockwise on screen.
	//
	// Returns:
	//   - float32: the rotation in radians
	Rotation() float32

	// Viewport returns the viewport size in pixels.
	//
	// Returns:
	//   - width, height: the viewport size
	Viewport() (width, height float32)

	// ViewMatrix returns the current 4x4 world to screen-pixel matrix (column-major).
	//
	// Returns:
	//   - [16]float32: the view matrix
	ViewMatrix() [16]float32

	// ProjectionMatrix returns the current 4x4 screen-pixel to clip-space matrix (column-major).
	//
	// Returns:
	//   - [16]float32: the projection matrix
	ProjectionMatrix() [16]float32

	// ViewProjectionMatrix returns the combined world to clip-space matrix (column-major).
	//
	// Returns:
	//   - [16]float32: the combined view-projection matrix
	ViewProjectionMatrix() [16]float32

	// Version returns a counter that increases every time the matrices change. Consumers compare it
	// against the value they last uploaded.
	//
	// Returns:
	//   - uint64: the change counter
	Version() uint64

	// ScreenToWorld converts a point in viewport pixels to world coordinates.
	//
	// Parameters:
	//   - p: the point in viewport pixels
	//
	// Returns:
	//   - common.Vec2: the world point
	ScreenToWorld(p common.Vec2) common.Vec2

	// WorldToScreen converts a world point to viewport pixels.
	//
	// Parameters:
	//   - p: the world point
	//
	// Returns:
	//   - common.Vec2: the point in viewport pixels
	WorldToScreen(p common.Vec2) common.Vec2

	// VisibleBounds returns the axis-aligned world rectangle covering the viewport.
	//
	// Returns:
	//   - common.Rect: the visible world bounds
	VisibleBounds() common.Rect

	// SetPosition sets the world point at the center of the viewport.
	//
	// Parameters:
	//   - p: the new position
	SetPosition(p common.Vec2)

	// Move offsets the position by a world-space delta.
	//
	// Parameters:
	//   - dx, dy: the offset
	Move(dx, dy float32)

	// SetZoom sets the zoom factor, clamped to at least MinZoom.
	//
	// Parameters:
	//   - zoom: the zoom factor
	SetZoom(zoom float32)

	// SetRotation sets the camera rotation in radians.
	//
	// Parameters:
	//   - radians: the rotation
	SetRotation(radians float32)

	// SetViewport sets the viewport size in pixels, typically on window resize.
	//
	// Parameters:
	//   - width, height: the viewport size
	SetViewport(width, height float32)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera looking at the origin with zoom 1. Set the viewport before use,
// either with WithViewport or SetViewport; the renderer does so on creation and every resize.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:             &sync.Mutex{},
		zoom:           1,
		viewportWidth:  1,
		viewportHeight: 1,
		near:           DefaultNear,
		far:            DefaultFar,
	}
	for _, option := range options {
		option(c)
	}
	c.updateMatrices()
	return c
}

func (c *cameraImpl) Position() common.Vec2 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) Zoom() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.zoom
}

func (c *cameraImpl) Rotation() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rotation
}

func (c *cameraImpl) Viewport() (width, height float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewportWidth, c.viewportHeight
}

func (c *cameraImpl) ViewMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) Version() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version
}

func (c *cameraImpl) ScreenToWorld(p common.Vec2) common.Vec2 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var inv [16]float32
	if !common.Invert4(inv[:], c.viewMatrix[:]) {
		return c.position
	}
	x, y := common.TransformPoint(inv[:], p.X, p.Y)
	return common.V2(x, y)
}

func (c *cameraImpl) WorldToScreen(p common.Vec2) common.Vec2 {
	c.mu.Lock()
	defer c.mu.Unlock()
	x, y := common.TransformPoint(c.viewMatrix[:], p.X, p.Y)
	return common.V2(x, y)
}

func (c *cameraImpl) VisibleBounds() common.Rect {
	c.mu.Lock()
	defer c.mu.Unlock()

	var inv [16]float32
	if !common.Invert4(inv[:], c.viewMatrix[:]) {
		return common.Rect{}
	}
	corners := [4]common.Vec2{
		{X: 0, Y: 0},
		{X: c.viewportWidth, Y: 0},
		{X: 0, Y: c.viewportHeight},
		{X: c.viewportWidth, Y: c.viewportHeight},
	}
	minX, minY := math32.Inf(1), math32.Inf(1)
	maxX, maxY := math32.Inf(-1), math32.Inf(-1)
	for _, p := range corners {
		x, y := common.TransformPoint(inv[:], p.X, p.Y)
		minX, maxX = math32.Min(minX, x), math32.Max(maxX, x)
		minY, maxY = math32.Min(minY, y), math32.Max(maxY, y)
	}
	return common.R(minX, minY, maxX-minX, maxY-minY)
}

func (c *cameraImpl) SetPosition(p common.Vec2) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = p
	c.updateMatrices()
}

func (c *cameraImpl) Move(dx, dy float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position.X += dx
	c.position.Y += dy
	c.updateMatrices()
}

func (c *cameraImpl) SetZoom(zoom float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.zoom = zoom
	c.updateMatrices()
}

func (c *cameraImpl) SetRotation(radians float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rotation = radians
	c.updateMatrices()
}

func (c *cameraImpl) SetViewport(width, height float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.viewportWidth = width
	c.viewportHeight = height
	c.updateMatrices()
}

// updateMatrices recalculates the view, projection and view-projection matrices and bumps the
// version. Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() {
	c.zoom = math32.Max(c.zoom, MinZoom)
	c.viewportWidth = math32.Max(c.viewportWidth, 1)
	c.viewportHeight = math32.Max(c.viewportHeight, 1)

	// view = T(viewport center) * R(-rotation) * S(zoom) * T(-position)
	var center, offset [16]float32
	common.Transform2D(center[:], c.viewportWidth/2, c.viewportHeight/2, -c.rotation, c.zoom, c.zoom)
	common.Transform2D(offset[:], -c.position.X, -c.position.Y, 0, 1, 1)
	common.Mul4(c.viewMatrix[:], center[:], offset[:])

	common.Orthographic(c.projectionMatrix[:], 0, c.viewportWidth, c.viewportHeight, 0, c.near, c.far)

	common.Mul4(c.viewProjectionMatrix[:], c.projectionMatrix[:], c.viewMatrix[:])
	c.version++
}
