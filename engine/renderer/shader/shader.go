package shader

import (
	"io/fs"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/pkg/errors"
)

// Stage identifies the pipeline stage a shader module is compiled for.
type Stage int

const (
	// StageVertex is the vertex stage.
	StageVertex Stage = iota

	// StageFragment is the fragment stage, paired with a vertex shader.
	StageFragment
)

// String returns the WGSL attribute name of the stage.
func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	default:
		return "unknown"
	}
}

// visibility returns the wgpu stage flag for bind group layout entries.
func (s Stage) visibility() wgpu.ShaderStage {
	if s == StageFragment {
		return wgpu.ShaderStageFragment
	}
	return wgpu.ShaderStageVertex
}

// Binding describes one @group/@binding resource declared by a shader.
type Binding struct {
	Group   int
	Binding int
	// Name is the WGSL variable name.
	Name string
	// Type is the WGSL type of the variable.
	Type string
	// Size is the minimum buffer size in bytes for buffer bindings, 0 otherwise.
	Size uint64
}

// shader is the implementation of the Shader interface.
type shader struct {
	key                        string
	source                     string
	stage                      Stage
	entryPoint                 string
	bindings                   []Binding
	bindGroupLayoutDescriptors map[int]wgpu.BindGroupLayoutDescriptor
	vertexLayouts              []wgpu.VertexBufferLayout
	module                     *wgpu.ShaderModuleDescriptor
	declarations               []Annotation
}

// Shader is a loaded, pre-processed and reflected WGSL shader. Reflection exposes the
// resources the shader declares so callers can look them up by variable name.
type Shader interface {
	// Key returns the unique identifier for this shader.
	Key() string

	// Source returns the pre-processed WGSL source.
	Source() string

	// Stage returns the pipeline stage the shader was loaded for.
	Stage() Stage

	// EntryPoint returns the name of the stage's entry point function.
	EntryPoint() string

	// Binding looks up a declared resource by its WGSL variable name.
	//
	// Parameters:
	//   - name: the WGSL variable name
	//
	// Returns:
	//   - Binding: the declaration
	//   - bool: false if the shader declares no such variable
	Binding(name string) (Binding, bool)

	// Bindings returns every declared resource in source order.
	Bindings() []Binding

	// BindGroupLayoutDescriptors returns the reflected layout descriptors keyed by group index.
	BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor

	// VertexLayouts returns the vertex buffer layouts of a vertex shader. Nil for fragment shaders.
	VertexLayouts() []wgpu.VertexBufferLayout

	// Module returns the wgpu shader module descriptor built from the source.
	Module() *wgpu.ShaderModuleDescriptor

	// Declarations returns the @oxy:group annotations found while pre-processing.
	Declarations() []Annotation
}

var _ Shader = &shader{}

// NewShader pre-processes and reflects WGSL source.
//
// Parameters:
//   - key: a unique identifier for the shader, used as the module label
//   - stage: the pipeline stage the source provides an entry point for
//   - source: the raw WGSL source
//   - pp: the pre-processor resolving @oxy: annotations, or nil for plain WGSL
//
// Returns:
//   - Shader: the reflected shader
//   - error: error if pre-processing fails or the stage has no entry point
func NewShader(key string, stage Stage, source string, pp PreProcessor) (Shader, error) {
	if pp == nil {
		pp = NewPreProcessor()
	}
	processed, err := pp.Process(source)
	if err != nil {
		return nil, errors.Wrapf(err, "pre-process shader %s", key)
	}

	s := &shader{
		key:          key,
		source:       processed,
		stage:        stage,
		entryPoint:   parseEntryPoint(processed, stage),
		declarations: append([]Annotation(nil), pp.Declarations()...),
	}
	if s.entryPoint == "" {
		return nil, errors.Errorf("shader %s: no @%s entry point", key, stage)
	}
	s.bindings, s.bindGroupLayoutDescriptors = parseBindings(processed, stage.visibility())
	if stage == StageVertex {
		s.vertexLayouts = parseVertexLayouts(processed)
	}
	s.module = &wgpu.ShaderModuleDescriptor{
		Label: key,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: processed,
		},
	}
	return s, nil
}

// NewShaderFromFile reads WGSL source from a file system and builds a Shader from it.
//
// Parameters:
//   - fsys: the file system holding shader sources
//   - key: a unique identifier for the shader
//   - stage: the pipeline stage
//   - path: the slash-separated path within fsys
//   - pp: the pre-processor, or nil
//
// Returns:
//   - Shader: the reflected shader
//   - error: error if the file cannot be read or the shader cannot be built
func NewShaderFromFile(fsys fs.FS, key string, stage Stage, path string, pp PreProcessor) (Shader, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, errors.Wrapf(err, "read shader %s", path)
	}
	return NewShader(key, stage, string(data), pp)
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) Stage() Stage {
	return s.stage
}

func (s *shader) EntryPoint() string {
	return s.entryPoint
}

func (s *shader) Binding(name string) (Binding, bool) {
	for _, b := range s.bindings {
		if b.Name == name {
			return b, true
		}
	}
	return Binding{}, false
}

func (s *shader) Bindings() []Binding {
	return s.bindings
}

func (s *shader) BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors
}

func (s *shader) VertexLayouts() []wgpu.VertexBufferLayout {
	return s.vertexLayouts
}

func (s *shader) Module() *wgpu.ShaderModuleDescriptor {
	return s.module
}

func (s *shader) Declarations() []Annotation {
	return s.declarations
}
