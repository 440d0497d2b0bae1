package renderer

import (
	"bytes"
	"fmt"
	"log/slog"
	"sync"
	"testing"

	"github.com/Carmen-Shannon/oxy-batch/common"
	"github.com/Carmen-Shannon/oxy-batch/engine/batcher"
	"github.com/Carmen-Shannon/oxy-batch/engine/camera"
	"github.com/Carmen-Shannon/oxy-batch/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-batch/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-batch/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend records the calls the renderer makes on its backend without touching a GPU.
type fakeBackend struct {
	inFrame bool
	calls   []string
	writes  [][]byte
}

var _ RendererBackend = &fakeBackend{}

func (f *fakeBackend) record(format string, args ...any) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeBackend) SurfaceFormat() *wgpu.TextureFormat { return nil }

func (f *fakeBackend) ConfigureSurface(width, height int) error {
	f.record("configure(%d,%d)", width, height)
	return nil
}

func (f *fakeBackend) SetPresentMode(mode PresentMode) { f.record("present(%s)", mode) }

func (f *fakeBackend) SetClearColor(c common.Color) {}

func (f *fakeBackend) RegisterRenderPipeline(p pipeline.Pipeline) error { return nil }

func (f *fakeBackend) CreateBuffer(label string, size uint64, usage wgpu.BufferUsage) (*wgpu.Buffer, error) {
	f.record("buffer(%s,%d)", label, size)
	return &wgpu.Buffer{}, nil
}

func (f *fakeBackend) CreateBufferInit(label string, contents []byte, usage wgpu.BufferUsage) (*wgpu.Buffer, error) {
	f.record("bufferInit(%s,%d)", label, len(contents))
	return &wgpu.Buffer{}, nil
}

func (f *fakeBackend) WriteBuffer(buf *wgpu.Buffer, offset uint64, data []byte) error {
	f.record("write(%d,%d)", offset, len(data))
	f.writes = append(f.writes, data)
	return nil
}

func (f *fakeBackend) WriteBuffers(writes []bind_group_provider.BufferWrite) error {
	for _, w := range writes {
		f.record("writeBinding(%s,%d,%d)", w.Provider.Label(), w.Binding, len(w.Data))
		f.writes = append(f.writes, w.Data)
	}
	return nil
}

func (f *fakeBackend) InitTextureView(provider bind_group_provider.BindGroupProvider, bindingKey int, stagingData common.TextureStagingData) error {
	return nil
}

func (f *fakeBackend) InitSampler(provider bind_group_provider.BindGroupProvider, bindingKey int, samplerStagingData common.SamplerStagingData) error {
	return nil
}

func (f *fakeBackend) InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error {
	return nil
}

func (f *fakeBackend) BeginFrame() error {
	f.inFrame = true
	return nil
}

func (f *fakeBackend) InFrame() bool { return f.inFrame }

func (f *fakeBackend) SetPipeline(rp *wgpu.RenderPipeline) error {
	if !f.inFrame {
		return errNoFrame
	}
	f.record("setPipeline")
	return nil
}

func (f *fakeBackend) SetBindGroup(group int, bg *wgpu.BindGroup) error {
	if !f.inFrame {
		return errNoFrame
	}
	f.record("setBindGroup(%d)", group)
	return nil
}

func (f *fakeBackend) SetVertexBuffer(buf *wgpu.Buffer) error {
	if !f.inFrame {
		return errNoFrame
	}
	f.record("setVertexBuffer")
	return nil
}

func (f *fakeBackend) DrawIndexed(indexBuffer *wgpu.Buffer, format wgpu.IndexFormat, indexCount, firstIndex uint32) error {
	if !f.inFrame {
		return errNoFrame
	}
	f.record("draw(%d,%d,%v)", indexCount, firstIndex, format == wgpu.IndexFormatUint16)
	return nil
}

func (f *fakeBackend) PassSplits() int { return 0 }

func (f *fakeBackend) EndFrame() error {
	f.inFrame = false
	return nil
}

func (f *fakeBackend) Present() {}

func (f *fakeBackend) Release() {}

func newTestRenderer(t *testing.T) (*renderer, *fakeBackend, *bytes.Buffer) {
	t.Helper()
	p, err := pipeline.NewSpritePipeline()
	require.NoError(t, err)

	var logs bytes.Buffer
	backend := &fakeBackend{}
	r := &renderer{
		mu:             &sync.Mutex{},
		logger:         slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})),
		backend:        backend,
		pipeline:       p,
		cameraProvider: bind_group_provider.NewBindGroupProvider("Sprite Camera"),
		camera:         camera.NewCamera(camera.WithViewport(800, 600), camera.WithPosition(400, 300)),
		ownsCamera:     true,
	}
	return r, backend, &logs
}

func TestRenderer_RefreshShaderStateUploadsCameraOnce(t *testing.T) {
	r, backend, _ := newTestRenderer(t)
	require.NoError(t, r.BeginFrame())

	r.RefreshShaderState()
	r.RefreshShaderState()

	assert.Equal(t, []string{
		"writeBinding(Sprite Camera,0,64)",
		"setPipeline",
		"setBindGroup(0)",
		"setPipeline",
		"setBindGroup(0)",
	}, backend.calls)

	want := camera.NewGPUCameraUniform(r.camera)
	assert.Equal(t, want.Marshal(), backend.writes[0])
}

func TestRenderer_RefreshShaderStateReuploadsAfterCameraChange(t *testing.T) {
	r, backend, _ := newTestRenderer(t)
	require.NoError(t, r.BeginFrame())

	r.RefreshShaderState()
	r.camera.Move(10, 0)
	r.RefreshShaderState()

	assert.Len(t, backend.writes, 2)
	assert.NotEqual(t, backend.writes[0], backend.writes[1])
}

func TestRenderer_RefreshShaderStateOutsideFrame(t *testing.T) {
	r, backend, logs := newTestRenderer(t)

	r.RefreshShaderState()

	assert.Empty(t, backend.calls)
	assert.Contains(t, logs.String(), "RefreshShaderState called outside a frame")
}

func TestRenderer_DrawIndexedPrimitives(t *testing.T) {
	r, backend, logs := newTestRenderer(t)
	require.NoError(t, r.BeginFrame())
	ib := &wgpu.Buffer{}

	r.DrawIndexedPrimitives(batcher.PrimitiveTriangleList, 8, 12, 6, ib, batcher.IndexElementSize16)
	r.DrawIndexedPrimitives(batcher.PrimitiveTriangleList, 0, 0, 2, ib, batcher.IndexElementSize32)

	assert.Equal(t, []string{"draw(18,12,true)", "draw(6,0,false)"}, backend.calls)
	assert.Contains(t, logs.String(), "baseVertex=8")
}

func TestRenderer_DrawRejectsForeignBuffer(t *testing.T) {
	r, backend, logs := newTestRenderer(t)
	require.NoError(t, r.BeginFrame())

	r.DrawIndexedPrimitives(batcher.PrimitiveTriangleList, 0, 0, 2, "not a buffer", batcher.IndexElementSize16)
	r.WriteBuffer(42, 0, []byte{1, 2, 3, 4})
	r.BindVertexBuffer(nil, 0)

	assert.Empty(t, backend.calls)
	assert.Contains(t, logs.String(), "not created by this renderer")
}

func TestRenderer_BindTexture(t *testing.T) {
	r, backend, logs := newTestRenderer(t)
	tex := &texture{width: 4, height: 4, provider: bind_group_provider.NewBindGroupProvider("Atlas")}

	r.BindTexture(tex)
	assert.Empty(t, backend.calls)
	assert.Contains(t, logs.String(), "BindTexture called outside a frame")

	require.NoError(t, r.BeginFrame())
	r.BindTexture(tex)
	assert.Equal(t, []string{fmt.Sprintf("setBindGroup(%d)", shader.SpriteTextureGroup)}, backend.calls)
}

type foreignTexture struct{}

func (foreignTexture) Width() uint32  { return 1 }
func (foreignTexture) Height() uint32 { return 1 }

func TestRenderer_BindTextureRejectsForeignTexture(t *testing.T) {
	r, backend, logs := newTestRenderer(t)
	require.NoError(t, r.BeginFrame())

	r.BindTexture(foreignTexture{})

	assert.Empty(t, backend.calls)
	assert.Contains(t, logs.String(), "BindTexture got a texture not created by this renderer")
}

func TestRenderer_CreateIndexBufferPadsToFourBytes(t *testing.T) {
	r, backend, _ := newTestRenderer(t)

	_, err := r.CreateIndexBuffer("ib", make([]byte, 6))
	require.NoError(t, err)
	_, err = r.CreateIndexBuffer("ib", make([]byte, 12))
	require.NoError(t, err)

	assert.Equal(t, []string{"bufferInit(ib,8)", "bufferInit(ib,12)"}, backend.calls)
}

func TestRenderer_ResizeRecentersOwnedCamera(t *testing.T) {
	r, backend, _ := newTestRenderer(t)

	require.NoError(t, r.Resize(0, 0))
	assert.Empty(t, backend.calls, "minimized windows are ignored")

	require.NoError(t, r.Resize(1024, 768))
	assert.Equal(t, []string{"configure(1024,768)"}, backend.calls)
	w, h := r.camera.Viewport()
	assert.Equal(t, float32(1024), w)
	assert.Equal(t, float32(768), h)
	assert.Equal(t, common.V2(512, 384), r.camera.Position())

	require.NoError(t, r.BeginFrame())
	assert.Error(t, r.Resize(640, 480))
}

func TestRenderer_ResizeKeepsSuppliedCamera(t *testing.T) {
	r, _, _ := newTestRenderer(t)
	r.ownsCamera = false
	r.camera.SetPosition(common.V2(5, 5))

	require.NoError(t, r.Resize(320, 240))
	assert.Equal(t, common.V2(5, 5), r.camera.Position())
}

func TestTexture_Accessors(t *testing.T) {
	tex := &texture{width: 16, height: 8, provider: bind_group_provider.NewBindGroupProvider("Sheet")}

	assert.Equal(t, uint32(16), tex.Width())
	assert.Equal(t, uint32(8), tex.Height())
	assert.Equal(t, "Sheet", tex.Label())
	tex.Release()
}

func TestRenderer_DrivesBatcher(t *testing.T) {
	r, backend, _ := newTestRenderer(t)
	b, err := batcher.NewBatcher(r, r, batcher.WithMaxQuads(4), batcher.WithLabel("Demo"))
	require.NoError(t, err)

	a := &texture{width: 4, height: 4, provider: bind_group_provider.NewBindGroupProvider("A")}
	c := &texture{width: 4, height: 4, provider: bind_group_provider.NewBindGroupProvider("C")}

	require.NoError(t, r.BeginFrame())
	backend.calls = nil
	b.Begin()
	for _, tex := range []batcher.Texture{a, a, c} {
		b.Push(batcher.Sprite{Dest: common.R(0, 0, 4, 4), Color: common.White}, tex)
	}
	b.End()

	assert.Equal(t, []string{
		"writeBinding(Sprite Camera,0,64)",
		"setPipeline",
		"setBindGroup(0)",
		fmt.Sprintf("write(0,%d)", 3*4*batcher.VertexSize),
		"setBindGroup(1)",
		"setVertexBuffer",
		"draw(12,0,true)",
		"setBindGroup(1)",
		"setVertexBuffer",
		"draw(6,12,true)",
	}, backend.calls)
	assert.Equal(t, 2, b.Stats().DrawCalls)
}
