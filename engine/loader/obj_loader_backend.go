package loader

import (
	"bytes"
	"io/fs"
	"strings"

	"github.com/Carmen-Shannon/oxy-shadows/engine/model"

	"github.com/g3n/engine/loader/obj"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// objLoaderBackend decodes Wavefront OBJ files. Every OBJ object becomes one
// ImportedMesh; polygons are fan-triangulated.
type objLoaderBackend struct{}

var _ loaderBackend = &objLoaderBackend{}

func newOBJLoaderBackend() *objLoaderBackend {
	return &objLoaderBackend{}
}

// objCorner identifies a unique (position, uv, normal) triple within an object.
type objCorner struct {
	v, uv, n int
}

func (b *objLoaderBackend) Decode(fsys fs.FS, name string) (*model.ImportedModel, error) {
	objData, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", name)
	}

	// The material library is optional; an empty one keeps the decoder off the host file system.
	var mtlData []byte
	if data, err := fs.ReadFile(fsys, strings.TrimSuffix(name, ".obj")+".mtl"); err == nil {
		mtlData = data
	}

	dec, err := obj.DecodeReader(bytes.NewReader(objData), bytes.NewReader(mtlData))
	if err != nil {
		return nil, errors.Wrapf(err, "decode obj %s", name)
	}

	imported := &model.ImportedModel{Name: modelName(name)}
	for _, o := range dec.Objects {
		mesh := b.buildMesh(dec, &o)
		if len(mesh.Indices) == 0 {
			continue
		}
		imported.Meshes = append(imported.Meshes, mesh)
	}
	return imported, nil
}

func (b *objLoaderBackend) buildMesh(dec *obj.Decoder, o *obj.Object) model.ImportedMesh {
	mesh := model.ImportedMesh{Name: o.Name}
	lookup := make(map[objCorner]uint32)

	for _, face := range o.Faces {
		if len(face.Vertices) < 3 {
			continue
		}

		hasNormals := len(face.Normals) == len(face.Vertices)
		for _, n := range face.Normals {
			if _, ok := vec3At(dec.Normals, n); !ok {
				hasNormals = false
				break
			}
		}

		corners := make([]uint32, len(face.Vertices))
		if hasNormals {
			for i := range face.Vertices {
				uv := -1
				if i < len(face.Uvs) {
					uv = face.Uvs[i]
				}
				key := objCorner{v: face.Vertices[i], uv: uv, n: face.Normals[i]}
				idx, ok := lookup[key]
				if !ok {
					idx = uint32(len(mesh.Vertices))
					mesh.Vertices = append(mesh.Vertices, objVertex(dec, key))
					lookup[key] = idx
				}
				corners[i] = idx
			}
		} else {
			normal := faceNormal(dec, face.Vertices)
			for i := range face.Vertices {
				uv := -1
				if i < len(face.Uvs) {
					uv = face.Uvs[i]
				}
				v := objVertex(dec, objCorner{v: face.Vertices[i], uv: uv, n: -1})
				v.Normal = normal
				corners[i] = uint32(len(mesh.Vertices))
				mesh.Vertices = append(mesh.Vertices, v)
			}
		}

		for i := 2; i < len(corners); i++ {
			mesh.Indices = append(mesh.Indices, corners[0], corners[i-1], corners[i])
		}
	}

	mesh.ComputeBounds()
	return mesh
}

func objVertex(dec *obj.Decoder, key objCorner) model.GPUVertex {
	var v model.GPUVertex
	if p, ok := vec3At(dec.Vertices, key.v); ok {
		v.Position = p
	}
	if n, ok := vec3At(dec.Normals, key.n); ok {
		v.Normal = n
	}
	if key.uv >= 0 && key.uv*2+1 < len(dec.Uvs) {
		// OBJ texture space has V pointing up; WebGPU samples with V pointing down.
		v.TexCoord = [2]float32{dec.Uvs[key.uv*2], 1 - dec.Uvs[key.uv*2+1]}
	}
	return v
}

// faceNormal computes a polygon normal with Newell's method so that
// non-planar quads still get a stable direction.
func faceNormal(dec *obj.Decoder, vertices []int) [3]float32 {
	var n mgl32.Vec3
	for i := range vertices {
		a, _ := vec3At(dec.Vertices, vertices[i])
		b, _ := vec3At(dec.Vertices, vertices[(i+1)%len(vertices)])
		n[0] += (a[1] - b[1]) * (a[2] + b[2])
		n[1] += (a[2] - b[2]) * (a[0] + b[0])
		n[2] += (a[0] - b[0]) * (a[1] + b[1])
	}
	if n.Len() == 0 {
		return [3]float32{0, 1, 0}
	}
	return n.Normalize()
}

func vec3At(data []float32, idx int) ([3]float32, bool) {
	if idx < 0 || idx*3+2 >= len(data) {
		return [3]float32{}, false
	}
	return [3]float32{data[idx*3], data[idx*3+1], data[idx*3+2]}, true
}
