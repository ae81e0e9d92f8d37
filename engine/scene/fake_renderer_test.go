package scene

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-shadows/common"
	"github.com/Carmen-Shannon/oxy-shadows/engine/renderer"
	"github.com/Carmen-Shannon/oxy-shadows/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-shadows/engine/renderer/pipeline"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/pkg/errors"
)

type drawRecord struct {
	pipeline   string
	mesh       string
	rng        renderer.DrawRange
	bindGroups []string
}

type shadowMapRecord struct {
	provider string
	binding  int
	size     int
}

// fakeRenderer records every call the scene makes. It never touches a GPU.
type fakeRenderer struct {
	mu sync.Mutex

	// attachViews makes InitShadowMap store a placeholder depth view. Providers holding
	// one must not be released.
	attachViews bool
	failBegin   bool
	// failBindGroup makes InitBindGroup fail for the provider with this label.
	failBindGroup string

	pipelines  map[string]pipeline.Pipeline
	uploads    []string
	bindGroups map[string][]int
	samplers   map[string]common.SamplerStagingData
	shadowMaps []shadowMapRecord
	writes     [][]bind_group_provider.BufferWrite
	resizes    [][2]int

	shadowDraws []drawRecord
	litDraws    []drawRecord
	calls       []string
}

var _ renderer.Renderer = &fakeRenderer{}

func newFakeRenderer(attachViews bool) *fakeRenderer {
	return &fakeRenderer{
		attachViews: attachViews,
		pipelines:   make(map[string]pipeline.Pipeline),
		bindGroups:  make(map[string][]int),
		samplers:    make(map[string]common.SamplerStagingData),
	}
}

func labels(providers []bind_group_provider.BindGroupProvider) []string {
	out := make([]string, len(providers))
	for i, p := range providers {
		out[i] = p.Label()
	}
	return out
}

func (f *fakeRenderer) Pipeline(key string) pipeline.Pipeline {
	return f.pipelines[key]
}

func (f *fakeRenderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	for _, p := range pipelines {
		f.pipelines[p.PipelineKey()] = p
	}
	return nil
}

func (f *fakeRenderer) Resize(width, height int) {
	f.resizes = append(f.resizes, [2]int{width, height})
}

func (f *fakeRenderer) SetPresentMode(renderer.PresentMode) {}

func (f *fakeRenderer) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads = append(f.uploads, provider.Label())
	return nil
}

func (f *fakeRenderer) InitBindGroup(provider bind_group_provider.BindGroupProvider, pipelineKey string, group int) error {
	if f.failBindGroup != "" && provider.Label() == f.failBindGroup {
		return errors.Errorf("bind group %s: device lost", provider.Label())
	}
	p, ok := f.pipelines[pipelineKey]
	if !ok {
		return errors.Errorf("unknown pipeline %s", pipelineKey)
	}
	if _, ok := p.BindGroupLayoutDescriptors()[group]; !ok {
		return errors.Errorf("pipeline %s declares no bind group %d", pipelineKey, group)
	}
	f.bindGroups[provider.Label()] = append(f.bindGroups[provider.Label()], group)
	return nil
}

func (f *fakeRenderer) InitSampler(provider bind_group_provider.BindGroupProvider, bindingKey int, data common.SamplerStagingData) error {
	f.samplers[provider.Label()] = data
	return nil
}

func (f *fakeRenderer) InitShadowMap(provider bind_group_provider.BindGroupProvider, bindingKey int, size int) error {
	f.shadowMaps = append(f.shadowMaps, shadowMapRecord{provider: provider.Label(), binding: bindingKey, size: size})
	if f.attachViews {
		provider.SetTextureView(bindingKey, &wgpu.TextureView{})
	}
	return nil
}

func (f *fakeRenderer) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	f.writes = append(f.writes, append([]bind_group_provider.BufferWrite(nil), writes...))
	f.calls = append(f.calls, "write")
}

func (f *fakeRenderer) BeginShadowFrame() error {
	f.calls = append(f.calls, "begin_shadow_frame")
	return nil
}

func (f *fakeRenderer) BeginShadowPass(*wgpu.TextureView) {
	f.calls = append(f.calls, "begin_shadow_pass")
}

func (f *fakeRenderer) ShadowDrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, rng renderer.DrawRange, bindGroups []bind_group_provider.BindGroupProvider) error {
	f.shadowDraws = append(f.shadowDraws, drawRecord{pipelineKey, meshProvider.Label(), rng, labels(bindGroups)})
	return nil
}

func (f *fakeRenderer) EndShadowPass() {
	f.calls = append(f.calls, "end_shadow_pass")
}

func (f *fakeRenderer) EndShadowFrame() {
	f.calls = append(f.calls, "end_shadow_frame")
}

func (f *fakeRenderer) BeginFrame() error {
	if f.failBegin {
		return errors.New("surface outdated")
	}
	f.calls = append(f.calls, "begin_frame")
	return nil
}

func (f *fakeRenderer) DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, rng renderer.DrawRange, bindGroups []bind_group_provider.BindGroupProvider) error {
	f.litDraws = append(f.litDraws, drawRecord{pipelineKey, meshProvider.Label(), rng, labels(bindGroups)})
	return nil
}

func (f *fakeRenderer) EndFrame() {
	f.calls = append(f.calls, "end_frame")
}

func (f *fakeRenderer) Present() {
	f.calls = append(f.calls, "present")
}

func (f *fakeRenderer) Release() {}
