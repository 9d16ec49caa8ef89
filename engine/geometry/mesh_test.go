package geometry

import "testing"

func TestGenerateFullscreenQuad(t *testing.T) {
	m := GenerateFullscreenQuad()

	if got := len(m.Vertices); got != 4 {
		t.Errorf("vertex count = %d, want 4", got)
	}
	if got := len(m.Indices); got != 6 {
		t.Errorf("index count = %d, want 6", got)
	}
	if err := m.Validate(); err != nil {
		t.Errorf("quad invalid: %v", err)
	}

	for i, v := range m.Vertices {
		if v.Position[0] < -1 || v.Position[0] > 1 || v.Position[1] < -1 || v.Position[1] > 1 {
			t.Errorf("vertex %d position %v outside NDC", i, v.Position)
		}
		if v.Position[2] != 0 {
			t.Errorf("vertex %d z = %v, want 0", i, v.Position[2])
		}
	}
}

func TestMeshVertexBytes(t *testing.T) {
	cases := []struct {
		name   string
		mesh   *Mesh
		want   int
		stride int
	}{
		{"position+uv", &Mesh{Vertices: make([]Vertex, 3)}, 60, 20},
		{"position+color", &Mesh{ColorVertices: make([]ColorVertex, 3)}, 84, 28},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := len(c.mesh.VertexBytes()); got != c.want {
				t.Errorf("byte length = %d, want %d (stride %d)", got, c.want, c.stride)
			}
			if got := c.mesh.VertexCount(); got != 3 {
				t.Errorf("vertex count = %d, want 3", got)
			}
		})
	}
}

func TestMeshValidateRejectsOutOfRangeIndex(t *testing.T) {
	m := &Mesh{
		Vertices: make([]Vertex, 3),
		Indices:  []uint32{0, 1, 3},
	}
	if err := m.Validate(); err == nil {
		t.Error("expected error for index beyond vertex count")
	}
}
