package model

import "github.com/go-gl/mathgl/mgl32"

// Transform places a mesh in the world. Scale is applied first, then a rotation
// about the Y axis, then the translation.
type Transform struct {
	// Position is the world-space translation.
	Position mgl32.Vec3

	// Scale is a uniform scale factor.
	Scale float32

	// RotationY is the rotation about the world Y axis, in degrees.
	RotationY float32
}

// Matrix returns the model matrix T * R * S for the transform.
//
// Returns:
//   - mgl32.Mat4: the column-major model matrix
func (t Transform) Matrix() mgl32.Mat4 {
	s := t.Scale
	if s == 0 {
		s = 1
	}
	translate := mgl32.Translate3D(t.Position[0], t.Position[1], t.Position[2])
	rotate := mgl32.HomogRotate3DY(mgl32.DegToRad(t.RotationY))
	return translate.Mul4(rotate).Mul4(mgl32.Scale3D(s, s, s))
}

// SubMesh is a draw range within a Mesh's shared vertex and index buffers.
type SubMesh struct {
	// IndexCount is the number of indices drawn for this sub-mesh.
	IndexCount uint32

	// BaseIndex is the first index in the shared index buffer.
	BaseIndex uint32

	// BaseVertex is added to every index before fetching a vertex.
	BaseVertex int32
}

// --- Import Types ---

// ImportedModel represents a mesh file decoded by a loader backend.
// This is the universal format that importers (OBJ, glTF) produce.
type ImportedModel struct {
	// Name is the model identifier.
	Name string

	// Meshes contains all decoded meshes; each becomes one SubMesh.
	Meshes []ImportedMesh
}

// ImportedMesh represents a single mesh within an imported model.
// Indices are local to Vertices.
type ImportedMesh struct {
	// Name is the mesh identifier.
	Name string

	// Vertices are the mesh vertices.
	Vertices []GPUVertex

	// Indices are the triangle indices.
	Indices []uint32

	// BoundingMin is the minimum corner of the axis-aligned bounding box.
	BoundingMin [3]float32

	// BoundingMax is the maximum corner of the axis-aligned bounding box.
	BoundingMax [3]float32
}

// ComputeBounds fills BoundingMin and BoundingMax from the vertex positions.
func (m *ImportedMesh) ComputeBounds() {
	if len(m.Vertices) == 0 {
		return
	}
	m.BoundingMin = m.Vertices[0].Position
	m.BoundingMax = m.Vertices[0].Position
	for _, v := range m.Vertices[1:] {
		for i := 0; i < 3; i++ {
			m.BoundingMin[i] = min(m.BoundingMin[i], v.Position[i])
			m.BoundingMax[i] = max(m.BoundingMax[i], v.Position[i])
		}
	}
}
