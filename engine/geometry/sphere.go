package geometry

import (
	"fmt"
	"math"
)

// GenerateSphere builds a UV sphere of the given radius with latBands
// latitude rings and lonBands longitude segments.
//
// Latitude steps from 0 to pi (north pole first), longitude from 0 to 2*pi.
// UV.u runs 1 - lon/lonBands so east-facing geometry matches equirectangular
// source imagery; UV.v runs lat/latBands. Each quad between adjacent rings
// emits two triangles (first, first+1, second) and (second, first+1, second+1);
// this winding must stay consistent for back-face culling downstream.
//
// The result has (latBands+1)*(lonBands+1) vertices and latBands*lonBands*6
// indices. Panics when either band count is below 1.
//
// Parameters:
//   - radius: sphere radius
//   - latBands: number of latitude subdivisions (>= 1)
//   - lonBands: number of longitude subdivisions (>= 1)
//
// Returns:
//   - *Mesh: the generated triangle mesh
func GenerateSphere(radius float32, latBands, lonBands int) *Mesh {
	if latBands < 1 || lonBands < 1 {
		panic(fmt.Sprintf("geometry: sphere band counts must be >= 1, got lat=%d lon=%d", latBands, lonBands))
	}

	m := &Mesh{
		Vertices: make([]Vertex, 0, (latBands+1)*(lonBands+1)),
		Indices:  make([]uint32, 0, latBands*lonBands*6),
	}

	for lat := 0; lat <= latBands; lat++ {
		theta := float64(lat) * math.Pi / float64(latBands)
		sinTheta := math.Sin(theta)
		cosTheta := math.Cos(theta)

		for lon := 0; lon <= lonBands; lon++ {
			phi := float64(lon) * 2 * math.Pi / float64(lonBands)
			x := float32(math.Cos(phi) * sinTheta)
			y := float32(cosTheta)
			z := float32(math.Sin(phi) * sinTheta)

			m.Vertices = append(m.Vertices, Vertex{
				Position: [3]float32{radius * x, radius * y, radius * z},
				UV: [2]float32{
					1 - float32(lon)/float32(lonBands),
					float32(lat) / float32(latBands),
				},
			})
		}
	}

	for lat := 0; lat < latBands; lat++ {
		for lon := 0; lon < lonBands; lon++ {
			first := uint32(lat*(lonBands+1) + lon)
			second := first + uint32(lonBands) + 1

			m.Indices = append(m.Indices,
				first, first+1, second,
				second, first+1, second+1,
			)
		}
	}

	return m
}

// GenerateSkySphere builds a sphere intended to be viewed from the inside:
// same algorithm as GenerateSphere at a larger radius. The sky pass renders
// it with front-face culling so only interior faces survive, giving the
// camera inside the shell an unbroken backdrop.
//
// Parameters:
//   - radius: shell radius (should exceed the camera's maximum orbit distance)
//   - latBands: number of latitude subdivisions (>= 1)
//   - lonBands: number of longitude subdivisions (>= 1)
//
// Returns:
//   - *Mesh: the generated shell mesh
func GenerateSkySphere(radius float32, latBands, lonBands int) *Mesh {
	return GenerateSphere(radius, latBands, lonBands)
}

// PointOnSphere converts a geographic latitude/longitude pair (degrees) to a
// Cartesian point on the unit sphere using the same mapping GenerateSphere
// uses for its texture coordinates. The astronomical model relies on this so
// the computed subsolar point lands on the matching texel of the planet mesh.
//
// Parameters:
//   - latDeg: geographic latitude in degrees (+north)
//   - lonDeg: geographic longitude in degrees (+east)
//
// Returns:
//   - [3]float32: unit-length direction from the sphere center
func PointOnSphere(latDeg, lonDeg float64) [3]float32 {
	theta := (90 - latDeg) * math.Pi / 180 // colatitude
	phi := math.Pi - lonDeg*math.Pi/180    // inverse of the u = 1 - lon/lonBands mapping

	sinTheta := math.Sin(theta)
	return [3]float32{
		float32(math.Cos(phi) * sinTheta),
		float32(math.Cos(theta)),
		float32(math.Sin(phi) * sinTheta),
	}
}
