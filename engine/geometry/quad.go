package geometry

// GenerateFullscreenQuad builds a two-triangle quad spanning normalized device
// coordinates [-1,1] on x/y at z=0, with UVs covering [0,1]. Used by overlay
// passes (lens flare) whose vertex shader passes positions through untransformed.
//
// Returns:
//   - *Mesh: the quad mesh (4 vertices, 6 indices)
func GenerateFullscreenQuad() *Mesh {
	return &Mesh{
		Vertices: []Vertex{
			{Position: [3]float32{-1, -1, 0}, UV: [2]float32{0, 1}},
			{Position: [3]float32{1, -1, 0}, UV: [2]float32{1, 1}},
			{Position: [3]float32{1, 1, 0}, UV: [2]float32{1, 0}},
			{Position: [3]float32{-1, 1, 0}, UV: [2]float32{0, 0}},
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
}
