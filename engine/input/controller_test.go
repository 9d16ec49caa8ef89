package input

import (
	"math"
	"testing"
	"time"

	"github.com/terraview/terraview/engine/camera"
)

const epsilon = 1e-5

func approxEqual(a, b float32) bool {
	return math.Abs(float64(a-b)) < epsilon
}

func TestDragOrbitsCamera(t *testing.T) {
	cam := camera.NewCamera()
	c := NewController(cam, WithSensitivity(0.01)).(*controllerImpl)

	c.onMouseDown(100, 100)
	if !c.Dragging() {
		t.Fatal("mouse down did not start a drag")
	}
	if !cam.Dragging() {
		t.Fatal("camera not marked dragging")
	}

	c.onMouseMove(110, 95)
	if !approxEqual(cam.Yaw(), 0.1) {
		t.Errorf("yaw = %v, want 0.1 after 10px drag at 0.01 rad/px", cam.Yaw())
	}
	if !approxEqual(cam.Pitch(), -0.05) {
		t.Errorf("pitch = %v, want -0.05 after -5px drag", cam.Pitch())
	}

	// The anchor advances with each move, so a second move applies only its
	// own delta.
	c.onMouseMove(120, 95)
	if !approxEqual(cam.Yaw(), 0.2) {
		t.Errorf("yaw = %v, want 0.2 after second move", cam.Yaw())
	}

	c.onMouseUp(120, 95)
	if c.Dragging() || cam.Dragging() {
		t.Error("mouse up did not end the drag")
	}
}

func TestMoveWithoutDragIsIgnored(t *testing.T) {
	cam := camera.NewCamera()
	c := NewController(cam).(*controllerImpl)

	c.onMouseMove(50, 50)
	c.onMouseMove(500, 500)
	if cam.Yaw() != 0 || cam.Pitch() != 0 {
		t.Errorf("hover moved the camera to (%v, %v)", cam.Yaw(), cam.Pitch())
	}
}

func TestScrollZooms(t *testing.T) {
	cam := camera.NewCamera()
	c := NewController(cam, WithZoomStep(0.5)).(*controllerImpl)

	c.onScroll(2)
	if !approxEqual(cam.Distance(), 3) {
		t.Errorf("distance = %v, want 3 after zooming in", cam.Distance())
	}
	c.onScroll(-4)
	if !approxEqual(cam.Distance(), 5) {
		t.Errorf("distance = %v, want 5 after zooming out", cam.Distance())
	}
}

func TestCursorLeaveEndsDrag(t *testing.T) {
	cam := camera.NewCamera()
	c := NewController(cam).(*controllerImpl)

	c.onMouseDown(10, 10)
	c.endDrag()
	if c.Dragging() || cam.Dragging() {
		t.Fatal("cursor leave did not end the drag")
	}

	// A later move must not orbit from the stale anchor.
	before := cam.Yaw()
	c.onMouseMove(300, 300)
	if cam.Yaw() != before {
		t.Error("move after cursor leave orbited the camera")
	}
}

func TestEndDragWithoutDragIsNoOp(t *testing.T) {
	cam := camera.NewCamera()
	c := NewController(cam).(*controllerImpl)

	before := cam.LastInteraction()
	time.Sleep(time.Millisecond)
	c.endDrag()
	if !cam.LastInteraction().Equal(before) {
		t.Error("spurious endDrag touched the camera")
	}
}

func TestTickAutoRotatesAfterIdle(t *testing.T) {
	cam := camera.NewCamera()
	c := NewController(cam, WithIdleDelay(time.Nanosecond), WithAutoRotateRate(0.5))

	time.Sleep(time.Millisecond)
	c.Tick(2)
	if !approxEqual(cam.Yaw(), 1) {
		t.Errorf("yaw = %v, want 1 after 2s tick at 0.5 rad/s", cam.Yaw())
	}

	// Auto-rotation never registers as interaction, so it keeps going.
	c.Tick(2)
	if !approxEqual(cam.Yaw(), 2) {
		t.Errorf("yaw = %v, want 2 after second tick", cam.Yaw())
	}
}

func TestTickHeldOffWhileInteracting(t *testing.T) {
	cam := camera.NewCamera()
	c := NewController(cam, WithIdleDelay(time.Hour)).(*controllerImpl)

	cam.ApplyOrbitDelta(0.3, 0)
	c.Tick(1)
	if !approxEqual(cam.Yaw(), 0.3) {
		t.Errorf("yaw = %v, want 0.3: tick rotated before the idle delay", cam.Yaw())
	}
}

func TestTickBlockedWhileDragging(t *testing.T) {
	cam := camera.NewCamera()
	c := NewController(cam, WithIdleDelay(time.Nanosecond)).(*controllerImpl)

	c.onMouseDown(0, 0)
	time.Sleep(time.Millisecond)
	yaw := cam.Yaw()
	c.Tick(1)
	if cam.Yaw() != yaw {
		t.Error("tick auto-rotated during a drag")
	}
}
