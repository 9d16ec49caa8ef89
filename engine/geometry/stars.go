package geometry

import (
	"fmt"
	"math"
	"math/rand"
)

// GenerateStarPoints scatters count stars uniformly over a sphere of the
// given radius and returns them as a point-topology mesh. Each star carries a
// per-vertex color: brightness varies over a power-law-ish distribution so a
// handful of stars dominate, and hue is jittered between warm and cool
// color temperatures.
//
// The generator is seeded, so a fixed seed reproduces the same field; callers
// that want a different sky pass a different seed.
//
// Parameters:
//   - count: number of stars (>= 1)
//   - radius: shell radius the points are placed on
//   - seed: random source seed
//
// Returns:
//   - *Mesh: point mesh with one index per star
func GenerateStarPoints(count int, radius float32, seed int64) *Mesh {
	if count < 1 {
		panic(fmt.Sprintf("geometry: star count must be >= 1, got %d", count))
	}

	rng := rand.New(rand.NewSource(seed))
	m := &Mesh{
		ColorVertices: make([]ColorVertex, 0, count),
		Indices:       make([]uint32, 0, count),
	}

	for i := 0; i < count; i++ {
		// Uniform direction on the sphere via normalized gaussians.
		x := rng.NormFloat64()
		y := rng.NormFloat64()
		z := rng.NormFloat64()
		l := math.Sqrt(x*x + y*y + z*z)
		if l == 0 {
			l = 1
		}

		// Squaring skews brightness toward dim stars.
		brightness := rng.Float64() * rng.Float64()
		brightness = 0.15 + 0.85*brightness

		// Color temperature: warm (reddish) through white to cool (bluish).
		temp := rng.Float64()
		r := 0.8 + 0.2*temp
		b := 1.0 - 0.3*temp
		g := 0.85 + 0.15*temp*(1-temp)*4

		m.ColorVertices = append(m.ColorVertices, ColorVertex{
			Position: [3]float32{
				radius * float32(x/l),
				radius * float32(y/l),
				radius * float32(z/l),
			},
			Color: [4]float32{
				float32(r * brightness),
				float32(g * brightness),
				float32(b * brightness),
				1,
			},
		})
		m.Indices = append(m.Indices, uint32(i))
	}

	return m
}
