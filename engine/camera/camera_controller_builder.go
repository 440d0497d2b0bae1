package camera

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithPanSpeed sets how fast held pan keys move the view.
//
// Parameters:
//   - pixelsPerSecond: screen-space pan speed
//
// Returns:
//   - CameraControllerOption: functional option to set the pan speed
func WithPanSpeed(pixelsPerSecond float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.panSpeed = pixelsPerSecond
	}
}

// WithZoomSpeed sets how fast held zoom keys change the zoom.
//
// Parameters:
//   - doublingsPerSecond: how many times per second the zoom doubles or halves
//
// Returns:
//   - CameraControllerOption: functional option to set the zoom speed
func WithZoomSpeed(doublingsPerSecond float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.zoomSpeed = doublingsPerSecond
	}
}

// WithRotateSpeed sets how fast held rotate keys turn the camera.
//
// Parameters:
//   - radiansPerSecond: rotation speed
//
// Returns:
//   - CameraControllerOption: functional option to set the rotation speed
func WithRotateSpeed(radiansPerSecond float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.rotateSpeed = radiansPerSecond
	}
}

// WithZoomLimits sets the zoom range the controller keeps the camera in.
//
// Parameters:
//   - minZoom: the smallest zoom factor
//   - maxZoom: the largest zoom factor
//
// Returns:
//   - CameraControllerOption: functional option to set the zoom limits
func WithZoomLimits(minZoom, maxZoom float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.minZoom = minZoom
		cc.maxZoom = maxZoom
	}
}
