package camera

import "github.com/Carmen-Shannon/oxy-batch/common"

// CameraBuilderOption is a functional option applied to a camera during construction via NewCamera.
type CameraBuilderOption func(*cameraImpl)

// WithPosition sets the world point shown at the center of the viewport.
//
// Parameters:
//   - x, y: the world position
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's position
func WithPosition(x, y float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.position = common.V2(x, y)
	}
}

// WithZoom sets the initial zoom factor.
//
// Parameters:
//   - zoom: the zoom factor, 1 maps one world unit to one pixel
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's zoom
func WithZoom(zoom float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.zoom = zoom
	}
}

// WithRotation sets the initial camera rotation.
//
// Parameters:
//   - radians: the rotation in radians
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's rotation
func WithRotation(radians float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.rotation = radians
	}
}

// WithViewport sets the viewport size in pixels.
//
// Parameters:
//   - width, height: the viewport size
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's viewport
func WithViewport(width, height float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.viewportWidth = width
		c.viewportHeight = height
	}
}

// WithDepthRange sets the sprite depth range that survives clipping. Defaults to [-1, 1].
//
// Parameters:
//   - near: the depth mapped to the front of clip space
//   - far: the depth mapped to the back of clip space (must differ from near)
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's depth range
func WithDepthRange(near, far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.near = near
		c.far = far
	}
}
