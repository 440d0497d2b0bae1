package renderer

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Carmen-Shannon/oxy-batch/common"
	"github.com/Carmen-Shannon/oxy-batch/engine/batcher"
	"github.com/Carmen-Shannon/oxy-batch/engine/camera"
	"github.com/Carmen-Shannon/oxy-batch/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-batch/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-batch/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// Surface is what a Renderer presents to. engine/window.Window satisfies it.
type Surface interface {
	// SurfaceDescriptor returns the platform-specific descriptor used to create the WebGPU surface.
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// Width returns the drawable width in pixels.
	Width() int

	// Height returns the drawable height in pixels.
	Height() int
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu     *sync.Mutex
	logger *slog.Logger

	backend        RendererBackend
	pipeline       pipeline.Pipeline
	cameraProvider bind_group_provider.BindGroupProvider

	camera         camera.Camera
	ownsCamera     bool
	cameraUploaded uint64

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	presentMode          PresentMode
	msaa                 MSAASampleCount
	clearColor           common.Color
}

// Renderer draws batched sprites to a window surface with WebGPU.
//
// It is both the batcher.Device the batcher allocates its buffers on and the batcher.Pipeline that
// binds the sprite shader, the camera uniform and per-draw textures. A frame looks like:
//
//	r.BeginFrame()
//	b.Begin(); b.Push(...); b.End()
//	r.EndFrame()
//	r.Present()
//
// Vertex uploads that happen while the current pass already holds draws split the pass, so every
// flush of the batcher is drawn with the vertices it uploaded.
type Renderer interface {
	batcher.Device
	batcher.Pipeline

	// CreateTexture uploads RGBA pixels into a new sprite texture with its own sampler.
	//
	// Parameters:
	//   - label: the debug label of the texture
	//   - pixels: the RGBA8 pixel data and dimensions
	//   - sampler: the sampler configuration, zero fields use the defaults
	//
	// Returns:
	//   - Texture: the texture handle for sprites
	//   - error: an error if the GPU resources could not be created
	CreateTexture(label string, pixels common.TextureStagingData, sampler common.SamplerStagingData) (Texture, error)

	// Camera returns the camera whose view-projection is used for drawing.
	//
	// Returns:
	//   - camera.Camera: the camera
	Camera() camera.Camera

	// BeginFrame acquires the swapchain texture and begins the main render pass, cleared to the
	// clear color. Must be paired with EndFrame.
	//
	// Returns:
	//   - error: an error if the swapchain texture could not be acquired
	BeginFrame() error

	// EndFrame ends the current render pass and submits the command buffer to the GPU.
	// Does not present the surface; call Present() after EndFrame to display the frame.
	//
	// Returns:
	//   - error: an error if no frame is in progress or submission fails
	EndFrame() error

	// Present presents the surface to the display and releases the swapchain texture.
	// Must be called once per frame after EndFrame.
	Present()

	// PassSplits returns how many extra render passes the current or last frame needed.
	//
	// Returns:
	//   - int: the number of pass splits
	PassSplits() int

	// Resize reconfigures the surface and the camera viewport for a new size. A zero size, as
	// reported for a minimized window, is ignored.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	//
	// Returns:
	//   - error: an error if the surface could not be reconfigured
	Resize(width, height int) error

	// SetPresentMode sets the surface present mode which controls how frames are delivered to the display.
	// A call to Resize is required after changing this for the new mode to take effect.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// Release frees the sprite pipeline, the camera uniform and the GPU device. Textures and
	// buffers created by the renderer must be released before.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a WebGPU renderer for surface with the sprite pipeline registered and the
// camera uniform allocated.
//
// Parameters:
//   - surface: the window surface to present to
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: the renderer
//   - error: an error if the adapter, device, surface or sprite pipeline could not be set up
func NewRenderer(surface Surface, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:          &sync.Mutex{},
		logger:      slog.Default(),
		presentMode: PresentModeUncapped,
		msaa:        MSAA4x,
		clearColor:  common.Black,
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}
	if !r.msaa.Valid() {
		return nil, fmt.Errorf("unsupported MSAA sample count %d", r.msaa)
	}

	width, height := surface.Width(), surface.Height()
	if r.camera == nil {
		r.camera = camera.NewCamera(
			camera.WithViewport(float32(width), float32(height)),
			camera.WithPosition(float32(width)/2, float32(height)/2),
		)
		r.ownsCamera = true
	} else {
		r.camera.SetViewport(float32(width), float32(height))
	}

	backend, err := newWGPURendererBackend(surface.SurfaceDescriptor(), r.forceFallbackAdapter, r.msaa, r.logger)
	if err != nil {
		return nil, err
	}
	r.backend = backend
	r.backend.SetPresentMode(r.presentMode)
	r.backend.SetClearColor(r.clearColor)

	if err := r.backend.ConfigureSurface(width, height); err != nil {
		r.backend.Release()
		return nil, fmt.Errorf("failed to configure surface: %w", err)
	}

	if err := r.initSpritePipeline(); err != nil {
		r.Release()
		return nil, err
	}
	return r, nil
}

// initSpritePipeline registers the sprite pipeline and creates the camera uniform bind group.
func (r *renderer) initSpritePipeline() error {
	p, err := pipeline.NewSpritePipeline()
	if err != nil {
		return err
	}
	if err := r.backend.RegisterRenderPipeline(p); err != nil {
		return fmt.Errorf("failed to register sprite pipeline: %w", err)
	}
	r.pipeline = p

	uniform, err := r.backend.CreateBuffer("Sprite Camera Uniform", shader.SpriteCameraUniformSize, wgpu.BufferUsageUniform|wgpu.BufferUsageCopyDst)
	if err != nil {
		return fmt.Errorf("failed to create camera uniform: %w", err)
	}
	r.cameraProvider = bind_group_provider.NewBindGroupProvider("Sprite Camera",
		bind_group_provider.WithBindGroupLayout(p.BindGroupLayout(shader.SpriteCameraGroup)),
		bind_group_provider.WithBuffer(0, uniform),
	)
	if err := r.backend.InitBindGroup(r.cameraProvider, shader.SpriteCameraLayout()); err != nil {
		return fmt.Errorf("failed to create camera bind group: %w", err)
	}
	return nil
}

func (r *renderer) CreateVertexBuffer(label string, size uint64) (batcher.Buffer, error) {
	buf, err := r.backend.CreateBuffer(label, size, wgpu.BufferUsageVertex|wgpu.BufferUsageCopyDst)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

func (r *renderer) CreateIndexBuffer(label string, data []byte) (batcher.Buffer, error) {
	// Buffer sizes must be a multiple of 4 bytes.
	if pad := len(data) % 4; pad != 0 {
		data = append(append(make([]byte, 0, len(data)+4-pad), data...), make([]byte, 4-pad)...)
	}
	buf, err := r.backend.CreateBufferInit(label, data, wgpu.BufferUsageIndex|wgpu.BufferUsageCopyDst)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

func (r *renderer) WriteBuffer(buf batcher.Buffer, offset uint64, data []byte) {
	b, ok := buf.(*wgpu.Buffer)
	if !ok {
		r.logger.Warn("renderer: WriteBuffer got a buffer not created by this renderer")
		return
	}
	if err := r.backend.WriteBuffer(b, offset, data); err != nil {
		r.logger.Error("renderer: buffer write failed", "offset", offset, "size", len(data), "error", err)
	}
}

func (r *renderer) ReleaseBuffer(buf batcher.Buffer) {
	if b, ok := buf.(*wgpu.Buffer); ok && b != nil {
		b.Release()
	}
}

func (r *renderer) DrawIndexedPrimitives(primitive batcher.PrimitiveType, baseVertex, baseIndex, primitiveCount int, indexBuffer batcher.Buffer, elementSize batcher.IndexElementSize) {
	if primitive != batcher.PrimitiveTriangleList {
		r.logger.Warn("renderer: unsupported primitive type", "primitive", primitive)
		return
	}
	ib, ok := indexBuffer.(*wgpu.Buffer)
	if !ok {
		r.logger.Warn("renderer: DrawIndexedPrimitives got a buffer not created by this renderer")
		return
	}
	format := wgpu.IndexFormatUint16
	if elementSize == batcher.IndexElementSize32 {
		format = wgpu.IndexFormatUint32
	}

	// Indices are absolute vertex numbers, so the draw needs no vertex bias.
	if err := r.backend.DrawIndexed(ib, format, uint32(primitiveCount*3), uint32(baseIndex)); err != nil {
		r.logger.Warn("renderer: draw outside a frame dropped", "error", err)
		return
	}
	r.logger.Debug("renderer: draw", "baseVertex", baseVertex, "baseIndex", baseIndex, "triangles", primitiveCount)
}

func (r *renderer) RefreshShaderState() {
	if !r.backend.InFrame() {
		r.logger.Warn("renderer: RefreshShaderState called outside a frame")
		return
	}

	r.mu.Lock()
	version := r.camera.Version()
	dirty := version != r.cameraUploaded
	r.mu.Unlock()

	if dirty {
		u := camera.NewGPUCameraUniform(r.camera)
		err := r.backend.WriteBuffers([]bind_group_provider.BufferWrite{
			{Provider: r.cameraProvider, Binding: 0, Offset: 0, Data: u.Marshal()},
		})
		if err != nil {
			r.logger.Error("renderer: camera upload failed", "error", err)
		} else {
			r.mu.Lock()
			r.cameraUploaded = version
			r.mu.Unlock()
		}
	}

	if err := r.backend.SetPipeline(r.pipeline.RenderPipeline()); err != nil {
		r.logger.Warn("renderer: pipeline not set", "error", err)
		return
	}
	if err := r.backend.SetBindGroup(shader.SpriteCameraGroup, r.cameraProvider.BindGroup()); err != nil {
		r.logger.Warn("renderer: camera bind group not set", "error", err)
	}
}

func (r *renderer) BindTexture(tex batcher.Texture) {
	t, ok := tex.(*texture)
	if !ok || t == nil {
		r.logger.Warn("renderer: BindTexture got a texture not created by this renderer")
		return
	}
	if err := r.backend.SetBindGroup(shader.SpriteTextureGroup, t.provider.BindGroup()); err != nil {
		r.logger.Warn("renderer: BindTexture called outside a frame", "texture", t.Label())
	}
}

func (r *renderer) BindVertexBuffer(buf batcher.Buffer, baseVertex int) {
	b, ok := buf.(*wgpu.Buffer)
	if !ok {
		r.logger.Warn("renderer: BindVertexBuffer got a buffer not created by this renderer")
		return
	}
	if err := r.backend.SetVertexBuffer(b); err != nil {
		r.logger.Warn("renderer: BindVertexBuffer called outside a frame", "baseVertex", baseVertex)
	}
}

func (r *renderer) CreateTexture(label string, pixels common.TextureStagingData, sampler common.SamplerStagingData) (Texture, error) {
	provider := bind_group_provider.NewBindGroupProvider(label,
		bind_group_provider.WithBindGroupLayout(r.pipeline.BindGroupLayout(shader.SpriteTextureGroup)),
	)
	if err := r.backend.InitTextureView(provider, shader.SpriteTextureBinding, pixels); err != nil {
		provider.Release()
		return nil, fmt.Errorf("failed to create texture %q: %w", label, err)
	}
	if err := r.backend.InitSampler(provider, shader.SpriteSamplerBinding, sampler); err != nil {
		provider.Release()
		return nil, fmt.Errorf("failed to create sampler for %q: %w", label, err)
	}
	if err := r.backend.InitBindGroup(provider, shader.SpriteTextureLayout()); err != nil {
		provider.Release()
		return nil, fmt.Errorf("failed to create bind group for %q: %w", label, err)
	}
	r.logger.Debug("renderer: texture created", "label", label, "width", pixels.Width, "height", pixels.Height)
	return &texture{width: pixels.Width, height: pixels.Height, provider: provider}, nil
}

func (r *renderer) Camera() camera.Camera {
	return r.camera
}

func (r *renderer) BeginFrame() error {
	return r.backend.BeginFrame()
}

func (r *renderer) EndFrame() error {
	return r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
}

func (r *renderer) PassSplits() int {
	return r.backend.PassSplits()
}

func (r *renderer) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	if r.backend.InFrame() {
		return errors.New("cannot resize during a frame")
	}
	if err := r.backend.ConfigureSurface(width, height); err != nil {
		return fmt.Errorf("failed to configure surface: %w", err)
	}
	r.camera.SetViewport(float32(width), float32(height))
	if r.ownsCamera {
		r.camera.SetPosition(common.V2(float32(width)/2, float32(height)/2))
	}
	return nil
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) Release() {
	if r.cameraProvider != nil {
		r.cameraProvider.Release()
		r.cameraProvider = nil
	}
	if r.pipeline != nil {
		r.pipeline.Release()
		r.pipeline = nil
	}
	if r.backend != nil {
		r.backend.Release()
		r.backend = nil
	}
}
