package geometry

import (
	"math"
	"testing"
)

func TestGenerateSphereCounts(t *testing.T) {
	cases := []struct {
		name     string
		latBands int
		lonBands int
	}{
		{"minimal", 1, 1},
		{"low detail", 8, 16},
		{"planet detail", 64, 128},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m := GenerateSphere(1, c.latBands, c.lonBands)

			wantVerts := (c.latBands + 1) * (c.lonBands + 1)
			if got := len(m.Vertices); got != wantVerts {
				t.Errorf("vertex count = %d, want %d", got, wantVerts)
			}

			wantIndices := c.latBands * c.lonBands * 6
			if got := len(m.Indices); got != wantIndices {
				t.Errorf("index count = %d, want %d", got, wantIndices)
			}

			if err := m.Validate(); err != nil {
				t.Errorf("generated mesh invalid: %v", err)
			}
		})
	}
}

func TestGenerateSphereRadius(t *testing.T) {
	const radius = 2.5
	m := GenerateSphere(radius, 12, 24)
	for i, v := range m.Vertices {
		r := math.Sqrt(float64(
			v.Position[0]*v.Position[0] +
				v.Position[1]*v.Position[1] +
				v.Position[2]*v.Position[2],
		))
		if math.Abs(r-radius) > 1e-4 {
			t.Fatalf("vertex %d at radius %v, want %v", i, r, radius)
		}
	}
}

func TestGenerateSphereUVRange(t *testing.T) {
	m := GenerateSphere(1, 8, 16)
	for i, v := range m.Vertices {
		if v.UV[0] < 0 || v.UV[0] > 1 || v.UV[1] < 0 || v.UV[1] > 1 {
			t.Fatalf("vertex %d uv %v out of [0,1]", i, v.UV)
		}
	}
}

func TestGenerateSpherePanicsOnBadBands(t *testing.T) {
	cases := []struct {
		name     string
		latBands int
		lonBands int
	}{
		{"zero lat", 0, 16},
		{"zero lon", 16, 0},
		{"negative", -1, -1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic for invalid band counts")
				}
			}()
			GenerateSphere(1, c.latBands, c.lonBands)
		})
	}
}

func TestPointOnSphere(t *testing.T) {
	cases := []struct {
		name   string
		lat    float64
		lon    float64
		want   [3]float32
	}{
		{"north pole", 90, 0, [3]float32{0, 1, 0}},
		{"south pole", -90, 0, [3]float32{0, -1, 0}},
		{"equator lat", 0, 0, [3]float32{}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := PointOnSphere(c.lat, c.lon)

			l := math.Sqrt(float64(p[0]*p[0] + p[1]*p[1] + p[2]*p[2]))
			if math.Abs(l-1) > 1e-5 {
				t.Fatalf("point length = %v, want 1", l)
			}

			if c.name == "equator lat" {
				if math.Abs(float64(p[1])) > 1e-5 {
					t.Errorf("equator point y = %v, want 0", p[1])
				}
				return
			}
			for i := range c.want {
				if math.Abs(float64(p[i]-c.want[i])) > 1e-5 {
					t.Errorf("point = %v, want %v", p, c.want)
					break
				}
			}
		})
	}
}

func TestPointOnSphereMatchesMeshUV(t *testing.T) {
	// A longitude step of the mesh must land on the vertex with the matching
	// texture coordinate, so lighting computed from lat/lon lines up with the
	// mapped imagery.
	const lonBands = 8
	m := GenerateSphere(1, 2, lonBands)

	for lon := 0; lon <= lonBands; lon++ {
		// Equatorial ring is the middle latitude row.
		v := m.Vertices[1*(lonBands+1)+lon]
		lonDeg := float64(v.UV[0])*360 - 180

		p := PointOnSphere(0, lonDeg)
		for i := 0; i < 3; i++ {
			if math.Abs(float64(p[i]-v.Position[i])) > 1e-4 {
				t.Fatalf("lon %d: PointOnSphere(0, %v) = %v, mesh vertex %v", lon, lonDeg, p, v.Position)
			}
		}
	}
}
