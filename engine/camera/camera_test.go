package camera

import (
	"math"
	"testing"
	"time"

	"github.com/terraview/terraview/common"
)

const epsilon = 1e-5

func approxEqual(a, b float32) bool {
	return math.Abs(float64(a-b)) < epsilon
}

func TestNewCameraDefaults(t *testing.T) {
	c := NewCamera()
	if c.Yaw() != 0 || c.Pitch() != 0 {
		t.Errorf("default orientation = (%v, %v), want (0, 0)", c.Yaw(), c.Pitch())
	}
	if c.Distance() != 4.0 {
		t.Errorf("default distance = %v, want 4", c.Distance())
	}
	if c.MinDistance() != 1.5 || c.MaxDistance() != 10.0 {
		t.Errorf("default bounds = [%v, %v], want [1.5, 10]", c.MinDistance(), c.MaxDistance())
	}
	if !approxEqual(c.Fov(), float32(45*math.Pi/180)) {
		t.Errorf("default fov = %v, want 45 degrees", c.Fov())
	}
}

func TestApplyOrbitDeltaClampsPitch(t *testing.T) {
	cases := []struct {
		name      string
		dPitch    float32
		wantPitch float32
	}{
		{"within bounds", 0.5, 0.5},
		{"over the top", 10, float32(math.Pi / 2)},
		{"under the bottom", -10, float32(-math.Pi / 2)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cam := NewCamera()
			cam.ApplyOrbitDelta(0.25, c.dPitch)
			if !approxEqual(cam.Pitch(), c.wantPitch) {
				t.Errorf("pitch = %v, want %v", cam.Pitch(), c.wantPitch)
			}
			if !approxEqual(cam.Yaw(), 0.25) {
				t.Errorf("yaw = %v, want 0.25", cam.Yaw())
			}
		})
	}
}

func TestApplyZoomDeltaClampsDistance(t *testing.T) {
	cases := []struct {
		name  string
		delta float32
		want  float32
	}{
		{"zoom in", 1, 3},
		{"zoom out", -2, 6},
		{"clamp at min", 100, 1.5},
		{"clamp at max", -100, 10},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cam := NewCamera()
			cam.ApplyZoomDelta(c.delta)
			if !approxEqual(cam.Distance(), c.want) {
				t.Errorf("distance = %v, want %v", cam.Distance(), c.want)
			}
		})
	}
}

func TestNewCameraClampsInitialState(t *testing.T) {
	cam := NewCamera(
		WithOrientation(0, 3),
		WithDistance(50),
		WithDistanceBounds(2, 8),
	)
	if !approxEqual(cam.Pitch(), float32(math.Pi/2)) {
		t.Errorf("pitch = %v, want pi/2", cam.Pitch())
	}
	if !approxEqual(cam.Distance(), 8) {
		t.Errorf("distance = %v, want 8", cam.Distance())
	}
}

func TestSetAspectIgnoresNonPositive(t *testing.T) {
	cam := NewCamera(WithAspect(1.5))
	cam.SetAspect(0)
	if !approxEqual(cam.Aspect(), 1.5) {
		t.Errorf("aspect = %v, want 1.5 after rejecting zero", cam.Aspect())
	}
	cam.SetAspect(-2)
	if !approxEqual(cam.Aspect(), 1.5) {
		t.Errorf("aspect = %v, want 1.5 after rejecting negative", cam.Aspect())
	}
	cam.SetAspect(2)
	if !approxEqual(cam.Aspect(), 2) {
		t.Errorf("aspect = %v, want 2", cam.Aspect())
	}
}

func TestViewProjectionAtRest(t *testing.T) {
	// With yaw and pitch zero the MVP reduces to projection * translation.
	cam := NewCamera(WithAspect(16.0 / 9.0))

	var proj, trans, want [16]float32
	common.Perspective(proj[:], cam.Fov(), cam.Aspect(), 0.1, 100)
	common.Translation(trans[:], 0, 0, -cam.Distance())
	common.Mul4(want[:], proj[:], trans[:])

	got := cam.ViewProjection()
	for i := range got {
		if !approxEqual(got[i], want[i]) {
			t.Fatalf("element %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestViewProjectionCentersOrigin(t *testing.T) {
	// The orbit target is the origin, so it must project to the screen
	// center whatever the orientation.
	cases := []struct {
		name       string
		yaw, pitch float32
	}{
		{"at rest", 0, 0},
		{"rotated", 1.2, 0.7},
		{"negative", -2.5, -0.9},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cam := NewCamera(WithOrientation(c.yaw, c.pitch))
			vp := cam.ViewProjection()
			clip := common.TransformVec4(vp[:], 0, 0, 0, 1)
			if clip[3] <= 0 {
				t.Fatalf("clip w = %v, want > 0", clip[3])
			}
			if !approxEqual(clip[0]/clip[3], 0) || !approxEqual(clip[1]/clip[3], 0) {
				t.Errorf("origin projects to (%v, %v), want center",
					clip[0]/clip[3], clip[1]/clip[3])
			}
		})
	}
}

func TestRotationViewProjectionIgnoresDistance(t *testing.T) {
	near := NewCamera(WithOrientation(0.8, 0.3), WithDistance(2))
	far := NewCamera(WithOrientation(0.8, 0.3), WithDistance(9))

	a := near.RotationViewProjection()
	b := far.RotationViewProjection()
	for i := range a {
		if !approxEqual(a[i], b[i]) {
			t.Fatalf("element %d differs across distances: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestPositionMatchesViewMatrix(t *testing.T) {
	// The eye position must be the point the view transform maps to the
	// origin of view space.
	cases := []struct {
		name       string
		yaw, pitch float32
		distance   float32
	}{
		{"at rest", 0, 0, 4},
		{"quarter turn", float32(math.Pi / 2), 0, 3},
		{"tilted", 0.6, 0.4, 5},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cam := NewCamera(WithOrientation(c.yaw, c.pitch), WithDistance(c.distance))
			x, y, z := cam.Position()

			var trans, rotX, rotY, tmp, view [16]float32
			common.RotationX(rotX[:], c.pitch)
			common.RotationY(rotY[:], c.yaw)
			common.Translation(trans[:], 0, 0, -c.distance)
			common.Mul4(tmp[:], rotX[:], rotY[:])
			common.Mul4(view[:], trans[:], tmp[:])

			eye := common.TransformVec4(view[:], x, y, z, 1)
			for i := 0; i < 3; i++ {
				if !approxEqual(eye[i], 0) {
					t.Fatalf("view * eye component %d = %v, want 0", i, eye[i])
				}
			}

			d := float32(math.Sqrt(float64(x*x + y*y + z*z)))
			if !approxEqual(d, c.distance) {
				t.Errorf("|position| = %v, want %v", d, c.distance)
			}
		})
	}
}

func TestAutoRotateSkipsInteractionTimestamp(t *testing.T) {
	cam := NewCamera()
	before := cam.LastInteraction()
	time.Sleep(time.Millisecond)

	cam.AutoRotate(0.1)
	if !cam.LastInteraction().Equal(before) {
		t.Error("AutoRotate updated the interaction timestamp")
	}
	if !approxEqual(cam.Yaw(), 0.1) {
		t.Errorf("yaw = %v, want 0.1", cam.Yaw())
	}

	cam.ApplyOrbitDelta(0.1, 0)
	if !cam.LastInteraction().After(before) {
		t.Error("ApplyOrbitDelta did not update the interaction timestamp")
	}
}

func TestDraggingState(t *testing.T) {
	cam := NewCamera()
	if cam.Dragging() {
		t.Fatal("new camera reports dragging")
	}
	cam.SetDragging(true)
	if !cam.Dragging() {
		t.Fatal("SetDragging(true) not reflected")
	}
	cam.SetDragging(false)
	if cam.Dragging() {
		t.Fatal("SetDragging(false) not reflected")
	}
}
