package scene

import (
	"github.com/Carmen-Shannon/oxy-shadows/engine/model"
	"github.com/Carmen-Shannon/oxy-shadows/engine/renderer"
	"github.com/Carmen-Shannon/oxy-shadows/engine/renderer/bind_group_provider"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

// passRenderer is the slice of renderer.Renderer the shadow and lit passes drive each frame.
type passRenderer interface {
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	BeginShadowFrame() error
	BeginShadowPass(depthView *wgpu.TextureView)
	ShadowDrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, rng renderer.DrawRange, bindGroups []bind_group_provider.BindGroupProvider) error
	EndShadowPass()
	EndShadowFrame()

	BeginFrame() error
	DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, rng renderer.DrawRange, bindGroups []bind_group_provider.BindGroupProvider) error
	EndFrame()
	Present()
}

// sceneObject is one mesh placed in the world together with its per-object uniform buffer.
type sceneObject struct {
	name      string
	mesh      model.Mesh
	transform model.Transform
	color     mgl32.Vec4
	provider  bind_group_provider.BindGroupProvider
}

// uniforms returns the per-object block for the current transform.
func (o *sceneObject) uniforms() *model.GPUObjectUniforms {
	return &model.GPUObjectUniforms{
		Model: o.transform.Matrix(),
		Color: o.color,
	}
}

// drawRanges converts the mesh's sub-meshes into renderer draw ranges.
func (o *sceneObject) drawRanges() []renderer.DrawRange {
	subs := o.mesh.SubMeshes()
	out := make([]renderer.DrawRange, len(subs))
	for i, sm := range subs {
		out[i] = renderer.DrawRange{
			IndexCount: sm.IndexCount,
			FirstIndex: sm.BaseIndex,
			BaseVertex: sm.BaseVertex,
		}
	}
	return out
}
