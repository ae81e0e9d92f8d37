package scene

import (
	"github.com/Carmen-Shannon/oxy-shadows/engine/renderer/bind_group_provider"

	"github.com/pkg/errors"
)

// LitPipelineKey is the key of the forward pipeline that samples the shadow map.
const LitPipelineKey = "lit"

// litPass draws every object into the swapchain. When light is nil the fragment
// shader declared no shadow map and group 2 is not bound.
type litPass struct {
	pipelineKey string

	globals bind_group_provider.BindGroupProvider
	light   bind_group_provider.BindGroupProvider

	bindGroups []bind_group_provider.BindGroupProvider
}

func newLitPass(globals, light bind_group_provider.BindGroupProvider) *litPass {
	return &litPass{
		pipelineKey: LitPipelineKey,
		globals:     globals,
		light:       light,
		bindGroups:  make([]bind_group_provider.BindGroupProvider, 0, 3),
	}
}

// Render clears the frame, draws every sub-mesh of every object and presents.
//
// Parameters:
//   - r: the renderer to encode into
//   - objects: the objects to draw, in draw order
//
// Returns:
//   - error: an error if the swapchain texture cannot be acquired or a draw fails
func (p *litPass) Render(r passRenderer, objects []*sceneObject) error {
	if err := r.BeginFrame(); err != nil {
		return errors.Wrap(err, "begin frame")
	}

	var drawErr error
	for _, obj := range objects {
		p.bindGroups = append(p.bindGroups[:0], p.globals, obj.provider)
		if p.light != nil {
			p.bindGroups = append(p.bindGroups, p.light)
		}
		for _, rng := range obj.drawRanges() {
			if err := r.DrawCall(p.pipelineKey, obj.mesh.MeshProvider(), rng, p.bindGroups); err != nil && drawErr == nil {
				drawErr = errors.Wrapf(err, "draw %s", obj.name)
			}
		}
	}

	r.EndFrame()
	r.Present()
	return drawErr
}
