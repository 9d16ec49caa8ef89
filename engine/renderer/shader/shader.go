package shader

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// ShaderType identifies which pipeline stage a shader provides.
type ShaderType int

const (
	// ShaderTypeVertex is the vertex shader type, used for vertex processing in render pipelines.
	ShaderTypeVertex ShaderType = iota

	// ShaderTypeFragment is the fragment shader type, used for fragment processing in pair with a vertex shader.
	ShaderTypeFragment
)

// shader is the implementation of the Shader interface.
// It holds the WGSL source plus the declared binding and vertex layout metadata
// required for pipeline creation.
type shader struct {
	key                        string
	source                     string
	shaderType                 ShaderType
	entryPoint                 string
	bindGroupLayoutDescriptors map[int]wgpu.BindGroupLayoutDescriptor
	vertexLayouts              map[int][]wgpu.VertexBufferLayout
	module                     *wgpu.ShaderModuleDescriptor
}

// Shader defines the interface for a WGSL shader stage. It exposes the shader's
// unique key, source code, entry point, bind group layout descriptors, and vertex
// buffer layouts needed for pipeline creation and resource wiring.
//
// Bind group layouts and vertex layouts are declared at construction time via
// builder options and must match the @group/@binding and @location declarations
// in the WGSL source.
type Shader interface {
	// Key retrieves the unique identifier for this shader, used for caching and lookups.
	//
	// Returns:
	//   - string: the shader's unique key
	Key() string

	// Source retrieves the WGSL shader source code.
	//
	// Returns:
	//   - string: the WGSL source code of the shader
	Source() string

	// BindGroupLayoutDescriptor retrieves the bind group layout descriptor for a specific group index.
	//
	// Parameters:
	//   - group: the bind group index
	//
	// Returns:
	//   - wgpu.BindGroupLayoutDescriptor: the descriptor for the group, or an empty descriptor if not declared
	BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor

	// BindGroupLayoutDescriptors retrieves all declared bind group layout descriptors.
	// These are the CPU-side descriptors the renderer uses to create the actual
	// wgpu.BindGroupLayout GPU objects.
	//
	// Returns:
	//   - map[int]wgpu.BindGroupLayoutDescriptor: descriptors keyed by group index
	BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor

	// VertexLayout retrieves the vertex buffer layout for a specific slot.
	//
	// Parameters:
	//   - slot: the integer slot identifying the vertex layout
	//
	// Returns:
	//   - []wgpu.VertexBufferLayout: the vertex buffer layout for the slot, or nil if not declared
	VertexLayout(slot int) []wgpu.VertexBufferLayout

	// VertexLayouts retrieves all vertex buffer layouts associated with this shader.
	//
	// Returns:
	//   - map[int][]wgpu.VertexBufferLayout: a map of slots to their corresponding vertex buffer layouts
	VertexLayouts() map[int][]wgpu.VertexBufferLayout

	// EntryPoint returns the entry point name for this shader.
	//
	// Returns:
	//   - string: the entry point name (e.g. "vs_main")
	EntryPoint() string

	// Module returns the wgpu.ShaderModuleDescriptor for this shader.
	//
	// Returns:
	//   - *wgpu.ShaderModuleDescriptor: the shader module descriptor containing the WGSL code and label
	Module() *wgpu.ShaderModuleDescriptor

	// ShaderType returns the type of the shader (vertex or fragment).
	//
	// Returns:
	//   - ShaderType: ShaderTypeVertex or ShaderTypeFragment
	ShaderType() ShaderType
}

var _ Shader = &shader{}

// NewShader creates a new Shader instance from WGSL source with all specified options applied.
// The source is typically provided via go:embed. The default entry point is "vs_main" for
// vertex shaders and "fs_main" for fragment shaders.
//
// Parameters:
//   - key: a unique identifier for the shader, used for caching and lookups
//   - shaderType: the pipeline stage this shader provides (vertex or fragment)
//   - source: the WGSL source code
//   - opts: a variadic list of ShaderBuilderOption functions to configure the shader
//
// Returns:
//   - Shader: a new Shader instance with the provided configuration
func NewShader(key string, shaderType ShaderType, source string, opts ...ShaderBuilderOption) Shader {
	if source == "" {
		panic("shader: " + key + " must have WGSL source")
	}
	s := &shader{
		key:                        key,
		shaderType:                 shaderType,
		source:                     source,
		bindGroupLayoutDescriptors: make(map[int]wgpu.BindGroupLayoutDescriptor),
		vertexLayouts:              make(map[int][]wgpu.VertexBufferLayout),
	}
	switch shaderType {
	case ShaderTypeVertex:
		s.entryPoint = "vs_main"
	case ShaderTypeFragment:
		s.entryPoint = "fs_main"
	}
	for _, opt := range opts {
		opt(s)
	}
	s.module = &wgpu.ShaderModuleDescriptor{
		Label: s.key,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: s.source,
		},
	}
	return s
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) VertexLayout(slot int) []wgpu.VertexBufferLayout {
	return s.vertexLayouts[slot]
}

func (s *shader) VertexLayouts() map[int][]wgpu.VertexBufferLayout {
	return s.vertexLayouts
}

func (s *shader) EntryPoint() string {
	return s.entryPoint
}

func (s *shader) BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors[group]
}

func (s *shader) BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors
}

func (s *shader) Module() *wgpu.ShaderModuleDescriptor {
	return s.module
}

func (s *shader) ShaderType() ShaderType {
	return s.shaderType
}
