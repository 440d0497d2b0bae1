package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-batch/common"
	"github.com/chewxy/math32"
)

// CameraController drives a Camera from held keys: W/A/S/D pan, Q/E zoom out/in, F/G rotate and
// R resets. Key state is fed from window callbacks and applied once per frame by Update.
type CameraController interface {
	// KeyDown records that a key is held.
	//
	// Parameters:
	//   - key: the key code
	KeyDown(key int)

	// KeyUp records that a key was released.
	//
	// Parameters:
	//   - key: the key code
	KeyUp(key int)

	// Update applies the held keys to the camera for a frame of length dt.
	//
	// Parameters:
	//   - dt: elapsed time in seconds
	Update(dt float32)

	// Pan moves the camera by a screen-space delta in pixels, regardless of zoom and rotation.
	//
	// Parameters:
	//   - dx, dy: the screen-space delta
	Pan(dx, dy float32)

	// ZoomBy multiplies the zoom by factor, clamped to the controller's zoom limits.
	//
	// Parameters:
	//   - factor: the zoom multiplier
	ZoomBy(factor float32)

	// Reset restores the camera's position, zoom and rotation to their values when the controller was created.
	Reset()

	// Camera returns the controlled camera.
	//
	// Returns:
	//   - Camera: the camera
	Camera() Camera
}

// cameraControllerImpl is the implementation of CameraController.
type cameraControllerImpl struct {
	mu *sync.Mutex

	camera Camera
	held   map[int]bool

	panSpeed    float32 // pixels per second
	zoomSpeed   float32 // zoom doublings per second
	rotateSpeed float32 // radians per second
	minZoom     float32
	maxZoom     float32

	homePosition common.Vec2
	homeZoom     float32
	homeRotation float32
}

var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a keyboard controller for cam.
//
// Parameters:
//   - cam: the camera to drive
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(cam Camera, options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu:          &sync.Mutex{},
		camera:      cam,
		held:        make(map[int]bool),
		panSpeed:    400,
		zoomSpeed:   1,
		rotateSpeed: math32.Pi / 2,
		minZoom:     0.1,
		maxZoom:     10,

		homePosition: cam.Position(),
		homeZoom:     cam.Zoom(),
		homeRotation: cam.Rotation(),
	}
	for _, option := range options {
		option(cc)
	}
	return cc
}

func (cc *cameraControllerImpl) KeyDown(key int) {
	cc.mu.Lock()
	cc.held[key] = true
	cc.mu.Unlock()

	if key == common.KeyR {
		cc.Reset()
	}
}

func (cc *cameraControllerImpl) KeyUp(key int) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	delete(cc.held, key)
}

func (cc *cameraControllerImpl) Update(dt float32) {
	cc.mu.Lock()
	var dx, dy, zoom, rotate float32
	if cc.held[common.KeyA] {
		dx--
	}
	if cc.held[common.KeyD] {
		dx++
	}
	if cc.held[common.KeyW] {
		dy--
	}
	if cc.held[common.KeyS] {
		dy++
	}
	if cc.held[common.KeyE] {
		zoom++
	}
	if cc.held[common.KeyQ] {
		zoom--
	}
	if cc.held[common.KeyG] {
		rotate++
	}
	if cc.held[common.KeyF] {
		rotate--
	}
	panSpeed, zoomSpeed, rotateSpeed := cc.panSpeed, cc.zoomSpeed, cc.rotateSpeed
	cc.mu.Unlock()

	if dx != 0 || dy != 0 {
		cc.Pan(dx*panSpeed*dt, dy*panSpeed*dt)
	}
	if zoom != 0 {
		cc.ZoomBy(math32.Exp2(zoom * zoomSpeed * dt))
	}
	if rotate != 0 {
		cc.camera.SetRotation(cc.camera.Rotation() + rotate*rotateSpeed*dt)
	}
}

func (cc *cameraControllerImpl) Pan(dx, dy float32) {
	// Convert the screen delta into world space so panning feels the same at any zoom or rotation.
	zoom := cc.camera.Zoom()
	c, s := math32.Cos(cc.camera.Rotation()), math32.Sin(cc.camera.Rotation())
	wx := (c*dx - s*dy) / zoom
	wy := (s*dx + c*dy) / zoom
	cc.camera.Move(wx, wy)
}

func (cc *cameraControllerImpl) ZoomBy(factor float32) {
	cc.mu.Lock()
	lo, hi := cc.minZoom, cc.maxZoom
	cc.mu.Unlock()
	cc.camera.SetZoom(common.Clamp(cc.camera.Zoom()*factor, lo, hi))
}

func (cc *cameraControllerImpl) Reset() {
	cc.camera.SetPosition(cc.homePosition)
	cc.camera.SetZoom(cc.homeZoom)
	cc.camera.SetRotation(cc.homeRotation)
}

func (cc *cameraControllerImpl) Camera() Camera {
	return cc.camera
}
