package scene

import (
	"github.com/Carmen-Shannon/oxy-shadows/engine/renderer/bind_group_provider"

	"github.com/pkg/errors"
)

// ShadowPipelineKey is the key of the depth-only pipeline used by the shadow pass.
const ShadowPipelineKey = "shadow_depth"

// shadowPass renders every object into the shadow map from the light's point of view.
// The light matrix comes from the global block; the pipeline has no fragment stage.
type shadowPass struct {
	pipelineKey string

	globals    bind_group_provider.BindGroupProvider
	shadowMap  bind_group_provider.BindGroupProvider
	mapBinding int

	bindGroups []bind_group_provider.BindGroupProvider
}

func newShadowPass(globals, shadowMap bind_group_provider.BindGroupProvider, mapBinding int) *shadowPass {
	return &shadowPass{
		pipelineKey: ShadowPipelineKey,
		globals:     globals,
		shadowMap:   shadowMap,
		mapBinding:  mapBinding,
		bindGroups:  make([]bind_group_provider.BindGroupProvider, 0, 2),
	}
}

// Render clears the shadow map to 1.0 and draws every sub-mesh of every object in order.
//
// Parameters:
//   - r: the renderer to encode into
//   - objects: the objects to draw, in draw order
//
// Returns:
//   - error: an error if the pass cannot begin or a draw references an unknown pipeline
func (p *shadowPass) Render(r passRenderer, objects []*sceneObject) error {
	depthView := p.shadowMap.TextureView(p.mapBinding)
	if depthView == nil {
		return errors.New("shadow map has no depth view")
	}

	if err := r.BeginShadowFrame(); err != nil {
		return errors.Wrap(err, "begin shadow frame")
	}
	r.BeginShadowPass(depthView)

	var drawErr error
	for _, obj := range objects {
		p.bindGroups = append(p.bindGroups[:0], p.globals, obj.provider)
		for _, rng := range obj.drawRanges() {
			if err := r.ShadowDrawCall(p.pipelineKey, obj.mesh.MeshProvider(), rng, p.bindGroups); err != nil && drawErr == nil {
				drawErr = errors.Wrapf(err, "shadow draw %s", obj.name)
			}
		}
	}

	r.EndShadowPass()
	r.EndShadowFrame()
	return drawErr
}
