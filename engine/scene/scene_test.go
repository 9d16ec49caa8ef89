package scene

import (
	"math"
	"testing"

	"github.com/terraview/terraview/engine/camera"
)

const epsilon = 1e-5

func approxEqual(a, b float32) bool {
	return math.Abs(float64(a-b)) < epsilon
}

func TestCloudOpacityFor(t *testing.T) {
	cases := []struct {
		name      string
		distance  float32
		near, far float32
		want      float32
	}{
		{"below near", 1.0, 1.8, 3.5, 0},
		{"at near", 1.8, 1.8, 3.5, 0},
		{"midpoint", 2.65, 1.8, 3.5, 0.5},
		{"at far", 3.5, 1.8, 3.5, 1},
		{"beyond far", 9, 1.8, 3.5, 1},
		{"degenerate band", 2, 3, 3, 1},
		{"inverted band", 2, 4, 3, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := cloudOpacityFor(c.distance, c.near, c.far)
			if !approxEqual(got, c.want) {
				t.Errorf("cloudOpacityFor(%v, %v, %v) = %v, want %v",
					c.distance, c.near, c.far, got, c.want)
			}
		})
	}
}

func TestFlareStateSunAhead(t *testing.T) {
	// Camera at default orientation looks down -Z from (0, 0, distance), so a
	// sun along -Z sits dead ahead.
	cam := camera.NewCamera()
	vp := cam.ViewProjection()
	x, y, z := cam.Position()

	ndcX, ndcY, intensity := flareState(vp, x, y, z, [3]float32{0, 0, -1})
	if !approxEqual(ndcX, 0) || !approxEqual(ndcY, 0) {
		t.Errorf("sun ahead projected to (%v, %v), want screen center", ndcX, ndcY)
	}
	if intensity < 0.9 {
		t.Errorf("intensity = %v, want near 1 at full alignment", intensity)
	}
}

func TestFlareStateSunBehindCamera(t *testing.T) {
	cam := camera.NewCamera()
	vp := cam.ViewProjection()
	x, y, z := cam.Position()

	_, _, intensity := flareState(vp, x, y, z, [3]float32{0, 0, 1})
	if intensity != 0 {
		t.Errorf("intensity = %v, want 0 with the sun behind the camera", intensity)
	}
}

func TestFlareStateSunOffScreen(t *testing.T) {
	// A sun far to the side stays in front of the camera but projects outside
	// the frustum, which must kill the flare.
	cam := camera.NewCamera()
	vp := cam.ViewProjection()
	x, y, z := cam.Position()

	dir := []float32{1, 0, -0.15}
	n := float32(math.Sqrt(float64(dir[0]*dir[0] + dir[2]*dir[2])))
	_, _, intensity := flareState(vp, x, y, z, [3]float32{dir[0] / n, 0, dir[2] / n})
	if intensity != 0 {
		t.Errorf("intensity = %v, want 0 with the sun off screen", intensity)
	}
}

func TestFlareStateIntensityFallsOffWithAngle(t *testing.T) {
	cam := camera.NewCamera(camera.WithFov(float32(70*math.Pi/180)), camera.WithAspect(2))
	vp := cam.ViewProjection()
	x, y, z := cam.Position()

	aligned := [3]float32{0, 0, -1}
	_, _, centerIntensity := flareState(vp, x, y, z, aligned)

	// Tilt the sun a modest angle off axis, still on screen with the wide fov.
	angle := 20 * math.Pi / 180
	tilted := [3]float32{float32(math.Sin(angle)), 0, float32(-math.Cos(angle))}
	_, _, edgeIntensity := flareState(vp, x, y, z, tilted)

	if edgeIntensity <= 0 {
		t.Fatalf("tilted sun intensity = %v, want > 0", edgeIntensity)
	}
	if edgeIntensity >= centerIntensity {
		t.Errorf("intensity did not fall off: center %v, tilted %v", centerIntensity, edgeIntensity)
	}
}

func TestUniformBlockSizes(t *testing.T) {
	cases := []struct {
		name string
		got  uint64
		want uint64
	}{
		{"sky", uniformSize[skyUniforms](), 64},
		{"stars", uniformSize[starUniforms](), 80},
		{"sun", uniformSize[sunUniforms](), 80},
		{"planet", uniformSize[planetUniforms](), 112},
		{"flare", uniformSize[flareUniforms](), 16},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if c.got != c.want {
				t.Errorf("uniform block size = %d, want %d", c.got, c.want)
			}
		})
	}
}
