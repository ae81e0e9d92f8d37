package model

import (
	"github.com/Carmen-Shannon/oxy-shadows/engine/renderer/bind_group_provider"
	"github.com/google/uuid"
)

// MeshBuilderOption is a functional option for configuring a Mesh via NewMesh.
type MeshBuilderOption func(*mesh)

// WithID is an option builder that overrides the generated id of the Mesh.
//
// Parameters:
//   - id: the mesh identity
//
// Returns:
//   - MeshBuilderOption: a function that applies the id option to a mesh
func WithID(id uuid.UUID) MeshBuilderOption {
	return func(m *mesh) {
		m.id = id
	}
}

// WithName is an option builder that sets the name of the Mesh.
//
// Parameters:
//   - name: the mesh identifier
//
// Returns:
//   - MeshBuilderOption: a function that applies the name option to a mesh
func WithName(name string) MeshBuilderOption {
	return func(m *mesh) {
		m.name = name
	}
}

// WithSubMeshes is an option builder that sets the draw ranges of the Mesh.
//
// Parameters:
//   - subMeshes: the sub-mesh draw ranges
//
// Returns:
//   - MeshBuilderOption: a function that applies the sub-mesh option to a mesh
func WithSubMeshes(subMeshes []SubMesh) MeshBuilderOption {
	return func(m *mesh) {
		m.subMeshes = subMeshes
	}
}

// WithVertexData is an option builder that sets the packed vertex payload.
//
// Parameters:
//   - data: the vertex bytes
//   - count: the number of vertices in data
//
// Returns:
//   - MeshBuilderOption: a function that applies the vertex data option to a mesh
func WithVertexData(data []byte, count int) MeshBuilderOption {
	return func(m *mesh) {
		m.vertexData = data
		m.vertexCount = count
	}
}

// WithIndexData is an option builder that sets the packed index payload.
//
// Parameters:
//   - data: the index bytes
//   - count: the number of indices in data
//
// Returns:
//   - MeshBuilderOption: a function that applies the index data option to a mesh
func WithIndexData(data []byte, count int) MeshBuilderOption {
	return func(m *mesh) {
		m.indexData = data
		m.indexCount = count
	}
}

// WithBoundingRadius is an option builder that sets the bounding sphere radius.
func WithBoundingRadius(radius float32) MeshBuilderOption {
	return func(m *mesh) {
		m.boundingRadius = radius
	}
}

// WithMeshProvider is an option builder that sets the BindGroupProvider for mesh GPU resources.
//
// Parameters:
//   - provider: the BindGroupProvider holding vertex/index buffers
//
// Returns:
//   - MeshBuilderOption: a function that applies the mesh provider option to a mesh
func WithMeshProvider(provider bind_group_provider.BindGroupProvider) MeshBuilderOption {
	return func(m *mesh) {
		m.meshProvider = provider
	}
}
