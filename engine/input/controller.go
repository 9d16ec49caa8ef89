// package input translates window pointer events into orbit camera motion:
// left-drag orbits, scroll (including trackpad pinch, which the platform
// layer reports as scroll) zooms, and a configurable idle interval hands
// control to a slow automatic rotation.
package input

import (
	"sync"
	"time"

	"github.com/terraview/terraview/engine/camera"
	"github.com/terraview/terraview/engine/window"
)

// controllerImpl is the implementation of the Controller interface.
type controllerImpl struct {
	mu *sync.Mutex

	camera camera.Camera

	sensitivity    float32
	zoomStep       float32
	idleDelay      time.Duration
	autoRotateRate float32

	dragging     bool
	lastX, lastY int32
}

// Controller wires pointer events to an orbit camera. Attach registers the
// window callbacks; Tick must be called at a fixed rate to drive idle
// auto-rotation. Thread-safe: window callbacks and Tick may run on different
// goroutines.
type Controller interface {
	// Attach registers this controller's handlers on the window. Only one
	// controller should be attached to a window at a time; attaching
	// overwrites any previously registered pointer callbacks.
	//
	// Parameters:
	//   - win: the window to receive events from
	Attach(win window.Window)

	// Tick advances idle auto-rotation: when no interaction has occurred for
	// the configured idle delay and no drag is in progress, the camera yaws
	// at the auto-rotation rate.
	//
	// Parameters:
	//   - deltaTime: elapsed time since the last tick in seconds
	Tick(deltaTime float32)

	// Dragging reports whether a left-button drag is in progress.
	//
	// Returns:
	//   - bool: true while dragging
	Dragging() bool
}

var _ Controller = &controllerImpl{}

// NewController creates an input controller bound to the given camera with
// default tuning: 0.005 rad/pixel drag sensitivity, 0.25 distance per scroll
// step, auto-rotation at 0.1 rad/s after 5 seconds idle.
//
// Parameters:
//   - cam: the orbit camera to drive
//   - options: functional options to adjust tuning
//
// Returns:
//   - Controller: the newly created controller
func NewController(cam camera.Camera, options ...ControllerBuilderOption) Controller {
	c := &controllerImpl{
		mu:             &sync.Mutex{},
		camera:         cam,
		sensitivity:    0.005,
		zoomStep:       0.25,
		idleDelay:      5 * time.Second,
		autoRotateRate: 0.1,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *controllerImpl) Attach(win window.Window) {
	win.SetLeftMouseDownCallback(c.onMouseDown)
	win.SetLeftMouseUpCallback(c.onMouseUp)
	win.SetMouseMoveCallback(c.onMouseMove)
	win.SetScrollCallback(c.onScroll)
	win.SetCursorLeaveCallback(c.endDrag)
}

func (c *controllerImpl) Tick(deltaTime float32) {
	c.mu.Lock()
	dragging := c.dragging
	c.mu.Unlock()

	if dragging {
		return
	}
	if time.Since(c.camera.LastInteraction()) < c.idleDelay {
		return
	}
	c.camera.AutoRotate(c.autoRotateRate * deltaTime)
}

func (c *controllerImpl) Dragging() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dragging
}

func (c *controllerImpl) onMouseDown(x, y int32) {
	c.mu.Lock()
	c.dragging = true
	c.lastX, c.lastY = x, y
	c.mu.Unlock()
	c.camera.SetDragging(true)
}

func (c *controllerImpl) onMouseUp(x, y int32) {
	c.endDrag()
}

func (c *controllerImpl) onMouseMove(x, y int32) {
	c.mu.Lock()
	if !c.dragging {
		c.mu.Unlock()
		return
	}
	dx := float32(x - c.lastX)
	dy := float32(y - c.lastY)
	c.lastX, c.lastY = x, y
	sens := c.sensitivity
	c.mu.Unlock()

	c.camera.ApplyOrbitDelta(dx*sens, dy*sens)
}

func (c *controllerImpl) onScroll(delta float32) {
	c.camera.ApplyZoomDelta(delta * c.zoomStep)
}

// endDrag terminates any drag in progress. Also invoked when the cursor
// leaves the window, since the matching release event would otherwise be
// missed and the globe would stick to the mouse.
func (c *controllerImpl) endDrag() {
	c.mu.Lock()
	wasDragging := c.dragging
	c.dragging = false
	c.mu.Unlock()

	if wasDragging {
		c.camera.SetDragging(false)
	}
}
