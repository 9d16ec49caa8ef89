package geometry

import (
	"math"
	"testing"
)

func TestGenerateStarPoints(t *testing.T) {
	const count = 500
	const radius = 3.0
	m := GenerateStarPoints(count, radius, 99)

	if got := len(m.ColorVertices); got != count {
		t.Fatalf("star count = %d, want %d", got, count)
	}
	if got := len(m.Indices); got != count {
		t.Fatalf("index count = %d, want %d", got, count)
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("star mesh invalid: %v", err)
	}

	for i, v := range m.ColorVertices {
		r := math.Sqrt(float64(
			v.Position[0]*v.Position[0] +
				v.Position[1]*v.Position[1] +
				v.Position[2]*v.Position[2],
		))
		if math.Abs(r-radius) > 1e-4 {
			t.Fatalf("star %d at radius %v, want %v", i, r, radius)
		}
		for c := 0; c < 4; c++ {
			if v.Color[c] < 0 || v.Color[c] > 1.5 {
				t.Fatalf("star %d color component %d = %v out of range", i, c, v.Color[c])
			}
		}
	}
}

func TestGenerateStarPointsDeterministic(t *testing.T) {
	a := GenerateStarPoints(100, 1, 7)
	b := GenerateStarPoints(100, 1, 7)
	for i := range a.ColorVertices {
		if a.ColorVertices[i] != b.ColorVertices[i] {
			t.Fatalf("star %d differs between identically seeded runs", i)
		}
	}

	c := GenerateStarPoints(100, 1, 8)
	same := 0
	for i := range a.ColorVertices {
		if a.ColorVertices[i].Position == c.ColorVertices[i].Position {
			same++
		}
	}
	if same == len(a.ColorVertices) {
		t.Error("different seeds produced an identical starfield")
	}
}

func TestGenerateStarPointsPanicsOnBadCount(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for star count < 1")
		}
	}()
	GenerateStarPoints(0, 1, 1)
}

func TestGenerateStarPointsBrightnessSpread(t *testing.T) {
	m := GenerateStarPoints(2000, 1, 3)

	// The power-law-ish brightness distribution should leave most stars dim
	// and only a few bright ones.
	bright, dim := 0, 0
	for _, v := range m.ColorVertices {
		lum := (v.Color[0] + v.Color[1] + v.Color[2]) / 3
		if lum > 0.7 {
			bright++
		}
		if lum < 0.4 {
			dim++
		}
	}
	if bright >= dim {
		t.Errorf("bright stars (%d) should be rarer than dim stars (%d)", bright, dim)
	}
	if bright == 0 {
		t.Error("expected at least one bright star in 2000")
	}
}
