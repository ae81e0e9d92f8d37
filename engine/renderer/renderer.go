package renderer

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-shadows/common"
	"github.com/Carmen-Shannon/oxy-shadows/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-shadows/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	pipelineCache map[string]pipeline.Pipeline

	backendType RendererBackendType
	backend     RendererBackend
	logger      *zap.Logger

	// Pre-creation config collected from builder options
	options backendOptions
}

// SurfaceSource is the window-side dependency of the renderer: something that can describe
// a presentable surface and report its framebuffer size.
type SurfaceSource interface {
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
	Width() int
	Height() int
}

// Renderer defines the interface for the rendering system.
//
// The Renderer owns the GPU device and the swapchain, caches registered pipelines by key,
// and exposes a frame API split into a depth-only shadow phase and the main color phase.
// All calls must come from the thread that created the Renderer.
type Renderer interface {
	// Pipeline retrieves the registered Pipeline associated with the given key, or nil.
	//
	// Parameters:
	//   - key: the unique identifier for the Pipeline to retrieve
	//
	// Returns:
	//   - pipeline.Pipeline: the Pipeline associated with the key, or nil if not found
	Pipeline(key string) pipeline.Pipeline

	// RegisterPipelines creates the GPU pipeline objects for one or more pipelines and caches
	// them by PipelineKey. Pipelines whose keys are already registered are skipped.
	//
	// Parameters:
	//   - pipelines: the Pipelines to register
	//
	// Returns:
	//   - error: an error if pipeline creation fails
	RegisterPipelines(pipelines ...pipeline.Pipeline) error

	// Resize reconfigures the swapchain and its attachments for a new framebuffer size.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// SetPresentMode changes the present mode; applied on the next Resize.
	SetPresentMode(mode PresentMode)

	// InitMeshBuffers creates GPU vertex and index buffers from raw byte data and stores them
	// on the given BindGroupProvider for later use in draw calls.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to store the created buffers on
	//   - vertexData: the raw vertex data bytes to upload to the GPU
	//   - indexData: the raw uint32 index data bytes to upload to the GPU
	//   - indexCount: the number of indices
	//
	// Returns:
	//   - error: an error if buffer creation fails
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error

	// InitBindGroup creates uniform buffers and a bind group for one group of a registered
	// pipeline and stores them on the provider. Textures and samplers the group declares must
	// be attached first via InitShadowMap and InitSampler.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to store the created bind group on
	//   - pipelineKey: the key of a registered pipeline
	//   - group: the bind group index within that pipeline
	//
	// Returns:
	//   - error: an error if the pipeline is unknown, the group is not declared or creation fails
	InitBindGroup(provider bind_group_provider.BindGroupProvider, pipelineKey string, group int) error

	// InitSampler creates a GPU sampler and stores it on the provider at bindingKey.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to store the created sampler on
	//   - bindingKey: the binding index for this sampler
	//   - samplerStagingData: the sampler configuration
	//
	// Returns:
	//   - error: an error if sampler creation fails
	InitSampler(provider bind_group_provider.BindGroupProvider, bindingKey int, samplerStagingData common.SamplerStagingData) error

	// InitShadowMap creates a square Depth32Float texture and stores it and its view on the
	// provider at bindingKey, releasing any shadow map stored there before. The provider's
	// bind group is released too, since it references the old view.
	//
	// Parameters:
	//   - provider: the BindGroupProvider owning the shadow map
	//   - bindingKey: the binding index of the depth texture
	//   - size: the width and height in texels
	//
	// Returns:
	//   - error: an error if texture creation fails
	InitShadowMap(provider bind_group_provider.BindGroupProvider, bindingKey int, size int) error

	// WriteBuffers queues all staged buffer writes.
	//
	// Parameters:
	//   - writes: the buffer writes to perform
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// BeginShadowFrame creates the command encoder for the frame's shadow passes.
	//
	// Returns:
	//   - error: an error if the command encoder could not be created
	BeginShadowFrame() error

	// BeginShadowPass starts a depth-only pass that clears depthView to 1.0.
	//
	// Parameters:
	//   - depthView: the shadow map view to render into
	BeginShadowPass(depthView *wgpu.TextureView)

	// ShadowDrawCall draws one index range with a depth-only pipeline.
	//
	// Parameters:
	//   - pipelineKey: the key of a registered depth-only pipeline
	//   - meshProvider: the provider holding vertex and index buffers
	//   - rng: the index range to draw
	//   - bindGroups: providers bound at group index = slice index
	//
	// Returns:
	//   - error: an error if the pipeline is not registered
	ShadowDrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, rng DrawRange, bindGroups []bind_group_provider.BindGroupProvider) error

	// EndShadowPass ends the current shadow pass.
	EndShadowPass()

	// EndShadowFrame submits the shadow command buffer.
	EndShadowFrame()

	// BeginFrame acquires the swapchain texture and begins the main pass, clearing color
	// to opaque black and depth to 1.0.
	//
	// Returns:
	//   - error: an error if the swapchain texture could not be acquired
	BeginFrame() error

	// DrawCall draws one index range with a render pipeline in the main pass.
	//
	// Parameters:
	//   - pipelineKey: the key of a registered render pipeline
	//   - meshProvider: the provider holding vertex and index buffers
	//   - rng: the index range to draw
	//   - bindGroups: providers bound at group index = slice index
	//
	// Returns:
	//   - error: an error if the pipeline is not registered
	DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, rng DrawRange, bindGroups []bind_group_provider.BindGroupProvider) error

	// EndFrame ends the main pass and submits it.
	EndFrame()

	// Present displays the frame and releases the swapchain texture.
	Present()

	// Release releases every cached pipeline and the GPU device.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer drawing into the surface described by the window.
// Adapter or device acquisition failure panics. Defaults are MSAA 4x and VSync.
//
// Parameters:
//   - backendType: the rendering backend to use
//   - window: the surface source, usually a window.Window
//   - options: a variadic list of RendererBuilderOption functions
//
// Returns:
//   - Renderer: the initialized Renderer
func NewRenderer(backendType RendererBackendType, window SurfaceSource, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:            &sync.Mutex{},
		pipelineCache: make(map[string]pipeline.Pipeline),
		backendType:   backendType,
		logger:        zap.NewNop(),
		options: backendOptions{
			sampleCount: MSAA4x,
			presentMode: PresentModeVSync,
			backendType: wgpu.BackendTypeUndefined,
		},
	}

	for _, opt := range options {
		opt(r)
	}

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend = newWGPURendererBackend(window.SurfaceDescriptor(), r.options)
	}

	r.backend.ConfigureSurface(window.Width(), window.Height())
	r.logger.Info("renderer ready",
		zap.Int("width", window.Width()),
		zap.Int("height", window.Height()),
		zap.Uint32("msaa", uint32(r.options.sampleCount)),
		zap.String("backend", common.Coalesce(r.options.backendName, "auto")),
	)
	return r
}

func (r *renderer) Resize(width, height int) {
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) Pipeline(key string) pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelineCache[key]
}

func (r *renderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range pipelines {
		key := p.PipelineKey()
		if _, exists := r.pipelineCache[key]; exists {
			continue
		}
		if err := r.backend.RegisterRenderPipeline(p); err != nil {
			return errors.Wrapf(err, "register pipeline %s", key)
		}
		r.pipelineCache[key] = p
		r.logger.Debug("pipeline registered", zap.String("key", key))
	}
	return nil
}

func (r *renderer) lookup(key string) (pipeline.Pipeline, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, exists := r.pipelineCache[key]
	if !exists {
		return nil, errors.Errorf("pipeline %q not registered", key)
	}
	return p, nil
}

func (r *renderer) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	return r.backend.InitMeshBuffers(provider, vertexData, indexData, indexCount)
}

func (r *renderer) InitBindGroup(provider bind_group_provider.BindGroupProvider, pipelineKey string, group int) error {
	p, err := r.lookup(pipelineKey)
	if err != nil {
		return err
	}
	descriptor, ok := p.BindGroupLayoutDescriptors()[group]
	if !ok {
		return errors.Errorf("pipeline %s declares no bind group %d", pipelineKey, group)
	}
	descriptor.Label = provider.Label()
	return r.backend.InitBindGroup(provider, descriptor)
}

func (r *renderer) InitSampler(provider bind_group_provider.BindGroupProvider, bindingKey int, samplerStagingData common.SamplerStagingData) error {
	return r.backend.InitSampler(provider, bindingKey, samplerStagingData)
}

func (r *renderer) InitShadowMap(provider bind_group_provider.BindGroupProvider, bindingKey int, size int) error {
	view, tex, err := r.backend.CreateShadowDepthTexture(size, size)
	if err != nil {
		return err
	}
	provider.ReleaseBindGroup()
	provider.SetTexture(bindingKey, tex, view)
	return nil
}

func (r *renderer) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	r.backend.WriteBuffers(writes)
}

func (r *renderer) BeginShadowFrame() error {
	return r.backend.BeginShadowFrame()
}

func (r *renderer) BeginShadowPass(depthView *wgpu.TextureView) {
	r.backend.BeginShadowPass(depthView)
}

func (r *renderer) ShadowDrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, rng DrawRange, bindGroups []bind_group_provider.BindGroupProvider) error {
	p, err := r.lookup(pipelineKey)
	if err != nil {
		return err
	}
	r.backend.ShadowDrawCall(p, meshProvider, rng, bindGroups)
	return nil
}

func (r *renderer) EndShadowPass() {
	r.backend.EndShadowPass()
}

func (r *renderer) EndShadowFrame() {
	r.backend.EndShadowFrame()
}

func (r *renderer) BeginFrame() error {
	return r.backend.BeginFrame()
}

func (r *renderer) DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, rng DrawRange, bindGroups []bind_group_provider.BindGroupProvider) error {
	p, err := r.lookup(pipelineKey)
	if err != nil {
		return err
	}
	r.backend.DrawCall(p, meshProvider, rng, bindGroups)
	return nil
}

func (r *renderer) EndFrame() {
	r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
}

func (r *renderer) Release() {
	r.mu.Lock()
	for key, p := range r.pipelineCache {
		p.Release()
		delete(r.pipelineCache, key)
	}
	r.mu.Unlock()
	r.backend.Release()
}
