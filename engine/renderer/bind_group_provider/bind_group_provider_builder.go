package bind_group_provider

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// BindGroupProviderOption is a functional option for configuring a BindGroupProvider.
type BindGroupProviderOption func(*bindGroupProvider)

// WithBindGroupLayout is an option builder that reuses an existing bind group layout,
// typically one owned by a pipeline, instead of creating a new one in InitBindGroup.
//
// Parameters:
//   - bgl: the bind group layout to set
//
// Returns:
//   - BindGroupProviderOption: a function that applies the bind group layout option to a bindGroupProvider
func WithBindGroupLayout(bgl *wgpu.BindGroupLayout) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.bindGroupLayout = bgl
	}
}

// WithSampler is an option builder that stores an already created sampler at a binding.
//
// Parameters:
//   - binding: the binding index
//   - s: the sampler
//
// Returns:
//   - BindGroupProviderOption: a function that applies the sampler option to a bindGroupProvider
func WithSampler(binding int, s *wgpu.Sampler) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.samplers[binding] = s
	}
}

// WithTexture is an option builder that stores a texture and its view at a binding.
//
// Parameters:
//   - binding: the binding index
//   - tex: the texture the provider takes ownership of
//   - tv: the view bound to the shader
//
// Returns:
//   - BindGroupProviderOption: a function that applies the texture option to a bindGroupProvider
func WithTexture(binding int, tex *wgpu.Texture, tv *wgpu.TextureView) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.textures[binding] = tex
		p.textureViews[binding] = tv
	}
}
