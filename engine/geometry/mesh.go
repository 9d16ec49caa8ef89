// package geometry builds the procedural meshes used by the render passes:
// UV spheres for the planet and sun, an inverted sky shell, a point-cloud
// starfield, and a fullscreen quad for overlay passes.
package geometry

import (
	"fmt"

	"github.com/terraview/terraview/common"
)

// Vertex is one interleaved mesh vertex: position, texture coordinate.
// The field order matches the vertex buffer layout declared by the sphere
// and quad shaders (stride 20 bytes).
type Vertex struct {
	Position [3]float32
	UV       [2]float32
}

// ColorVertex is one interleaved point vertex: position plus an RGBA color.
// Used by the point-topology starfield mesh (stride 28 bytes).
type ColorVertex struct {
	Position [3]float32
	Color    [4]float32
}

// Mesh holds CPU-side mesh data pending GPU upload. Exactly one of Vertices
// or ColorVertices is populated depending on the mesh kind.
type Mesh struct {
	Vertices      []Vertex
	ColorVertices []ColorVertex
	Indices       []uint32
}

// VertexCount returns the number of vertices in whichever vertex stream is populated.
//
// Returns:
//   - int: the vertex count
func (m *Mesh) VertexCount() int {
	if len(m.ColorVertices) > 0 {
		return len(m.ColorVertices)
	}
	return len(m.Vertices)
}

// VertexBytes returns the interleaved vertex data as raw bytes for GPU upload.
//
// Returns:
//   - []byte: byte view of the vertex stream
func (m *Mesh) VertexBytes() []byte {
	if len(m.ColorVertices) > 0 {
		return common.SliceToBytes(m.ColorVertices)
	}
	return common.SliceToBytes(m.Vertices)
}

// IndexBytes returns the index data as raw bytes for GPU upload.
//
// Returns:
//   - []byte: byte view of the index stream
func (m *Mesh) IndexBytes() []byte {
	return common.SliceToBytes(m.Indices)
}

// Validate checks the mesh invariants: every index must reference an existing
// vertex, and triangle meshes must carry a multiple of three indices.
//
// Returns:
//   - error: a descriptive error if an invariant is violated, otherwise nil
func (m *Mesh) Validate() error {
	n := uint32(m.VertexCount())
	for i, idx := range m.Indices {
		if idx >= n {
			return fmt.Errorf("index %d at position %d out of range (vertex count %d)", idx, i, n)
		}
	}
	return nil
}
