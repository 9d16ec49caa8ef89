package shader

import "github.com/cogentcore/webgpu/wgpu"

// ShaderBuilderOption is a functional option used to configure a Shader during construction.
type ShaderBuilderOption func(*shader)

// WithEntryPoint overrides the default entry point name for this shader.
//
// Parameters:
//   - entryPoint: the entry point function name in the WGSL source
//
// Returns:
//   - ShaderBuilderOption: a function that sets the entry point for this shader
func WithEntryPoint(entryPoint string) ShaderBuilderOption {
	return func(s *shader) {
		s.entryPoint = entryPoint
	}
}

// WithBindGroupLayout declares the bind group layout for a specific group index.
// The entries must match the @group/@binding declarations in the WGSL source.
//
// Parameters:
//   - group: the bind group index
//   - descriptor: the layout descriptor for the group
//
// Returns:
//   - ShaderBuilderOption: a function that sets the bind group layout for this shader
func WithBindGroupLayout(group int, descriptor wgpu.BindGroupLayoutDescriptor) ShaderBuilderOption {
	return func(s *shader) {
		s.bindGroupLayoutDescriptors[group] = descriptor
	}
}

// WithVertexLayout declares the vertex buffer layout for a specific slot.
// Only meaningful on vertex shaders.
//
// Parameters:
//   - slot: the vertex buffer slot
//   - layouts: the vertex buffer layouts occupying the slot
//
// Returns:
//   - ShaderBuilderOption: a function that sets the vertex layout for this shader
func WithVertexLayout(slot int, layouts ...wgpu.VertexBufferLayout) ShaderBuilderOption {
	return func(s *shader) {
		s.vertexLayouts[slot] = layouts
	}
}
