// package camera maintains the orbit camera state (yaw, pitch, distance) and
// derives the per-frame view-projection matrix and world-space eye position.
// The input controller is the only writer; every other component reads.
package camera

import (
	"math"
	"sync"
	"time"

	"github.com/terraview/terraview/common"
)

type cameraImpl struct {
	mu *sync.Mutex

	yaw      float32
	pitch    float32
	distance float32

	minPitch, maxPitch       float32
	minDistance, maxDistance float32

	fov    float32
	aspect float32
	near   float32
	far    float32

	dragging        bool
	pinching        bool
	lastInteraction time.Time
}

// Camera defines the interface for the orbit camera. It clamps pitch to
// +-pi/2 and distance to a configured range, and composes the model-view-
// projection matrix as Projection * Translate(0,0,-distance) * RotX(pitch)
// * RotY(yaw), column-major.
type Camera interface {
	// Yaw returns the current yaw angle in radians.
	//
	// Returns:
	//   - float32: yaw in radians
	Yaw() float32

	// Pitch returns the current pitch angle in radians, within [-pi/2, pi/2].
	//
	// Returns:
	//   - float32: pitch in radians
	Pitch() float32

	// Distance returns the current orbit distance, within the configured bounds.
	//
	// Returns:
	//   - float32: orbit distance
	Distance() float32

	// Fov returns the vertical field of view in radians.
	//
	// Returns:
	//   - float32: field of view in radians
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// SetAspect sets the aspect ratio. Called on window resize.
	//
	// Parameters:
	//   - aspect: the new aspect ratio
	SetAspect(aspect float32)

	// ApplyOrbitDelta adds yaw and pitch deltas, clamping pitch. Records the
	// interaction time used by idle auto-rotation.
	//
	// Parameters:
	//   - dYaw: yaw delta in radians
	//   - dPitch: pitch delta in radians
	ApplyOrbitDelta(dYaw, dPitch float32)

	// ApplyZoomDelta adjusts the orbit distance, clamping to the configured
	// bounds. Positive delta zooms in. Records the interaction time.
	//
	// Parameters:
	//   - delta: distance change
	ApplyZoomDelta(delta float32)

	// AutoRotate advances yaw without registering as user interaction,
	// so idle rotation does not reset the idle timer.
	//
	// Parameters:
	//   - dYaw: yaw delta in radians
	AutoRotate(dYaw float32)

	// ViewProjection composes the current model-view-projection matrix.
	//
	// Returns:
	//   - [16]float32: column-major MVP matrix
	ViewProjection() [16]float32

	// RotationViewProjection composes the MVP with the translation component
	// zeroed. Sky and star passes use it so the backdrop tracks rotation only,
	// giving the infinite-distance illusion.
	//
	// Returns:
	//   - [16]float32: column-major rotation-only MVP
	RotationViewProjection() [16]float32

	// Position derives the camera's world-space position from yaw, pitch, and
	// distance. By construction this stays algebraically consistent with the
	// view matrix; lighting and specular math depend on that.
	//
	// Returns:
	//   - x, y, z: world-space eye position
	Position() (x, y, z float32)

	// SetDragging marks the start or end of a pointer drag.
	//
	// Parameters:
	//   - dragging: true while the pointer is held down
	SetDragging(dragging bool)

	// Dragging reports whether a pointer drag is in progress.
	//
	// Returns:
	//   - bool: true while dragging
	Dragging() bool

	// SetPinching marks the start or end of a two-finger pinch.
	//
	// Parameters:
	//   - pinching: true while a pinch gesture is in progress
	SetPinching(pinching bool)

	// LastInteraction returns the time of the most recent user interaction.
	//
	// Returns:
	//   - time.Time: timestamp of the last drag or zoom
	LastInteraction() time.Time

	// MinDistance returns the lower orbit distance bound.
	//
	// Returns:
	//   - float32: minimum distance
	MinDistance() float32

	// MaxDistance returns the upper orbit distance bound.
	//
	// Returns:
	//   - float32: maximum distance
	MaxDistance() float32
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new orbit camera with default perspective settings:
// 45 degree field of view, near 0.1, far 100, distance bounds [1.5, 10].
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:              &sync.Mutex{},
		yaw:             0,
		pitch:           0,
		distance:        4.0,
		minPitch:        float32(-math.Pi / 2),
		maxPitch:        float32(math.Pi / 2),
		minDistance:     1.5,
		maxDistance:     10.0,
		fov:             45.0 * (math.Pi / 180.0),
		aspect:          1.0,
		near:            0.1,
		far:             100.0,
		lastInteraction: time.Now(),
	}
	for _, option := range options {
		option(c)
	}
	c.clamp()
	return c
}

func (c *cameraImpl) Yaw() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.yaw
}

func (c *cameraImpl) Pitch() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pitch
}

func (c *cameraImpl) Distance() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.distance
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if aspect > 0 {
		c.aspect = aspect
	}
}

func (c *cameraImpl) ApplyOrbitDelta(dYaw, dPitch float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.yaw += dYaw
	c.pitch += dPitch
	c.clamp()
	c.lastInteraction = time.Now()
}

func (c *cameraImpl) ApplyZoomDelta(delta float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.distance -= delta
	c.clamp()
	c.lastInteraction = time.Now()
}

func (c *cameraImpl) AutoRotate(dYaw float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.yaw += dYaw
}

func (c *cameraImpl) SetDragging(dragging bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dragging = dragging
	c.lastInteraction = time.Now()
}

func (c *cameraImpl) Dragging() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dragging
}

func (c *cameraImpl) SetPinching(pinching bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pinching = pinching
	c.lastInteraction = time.Now()
}

func (c *cameraImpl) LastInteraction() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastInteraction
}

func (c *cameraImpl) MinDistance() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.minDistance
}

func (c *cameraImpl) MaxDistance() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.maxDistance
}

func (c *cameraImpl) ViewProjection() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.compose(true)
}

func (c *cameraImpl) RotationViewProjection() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.compose(false)
}

func (c *cameraImpl) Position() (x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cosP := float32(math.Cos(float64(c.pitch)))
	sinP := float32(math.Sin(float64(c.pitch)))
	cosY := float32(math.Cos(float64(c.yaw)))
	sinY := float32(math.Sin(float64(c.yaw)))

	// Inverse of Translate(0,0,-d) * RotX(pitch) * RotY(yaw) applied to the origin.
	return -c.distance * cosP * sinY,
		c.distance * sinP,
		c.distance * cosP * cosY
}

// compose builds Projection * Translate * RotX * RotY; when translate is
// false the translation term is skipped for the infinite-distance passes.
// Caller must hold the mutex.
func (c *cameraImpl) compose(translate bool) [16]float32 {
	var proj, trans, rotX, rotY, tmp, out [16]float32

	common.Perspective(proj[:], c.fov, c.aspect, c.near, c.far)
	common.RotationX(rotX[:], c.pitch)
	common.RotationY(rotY[:], c.yaw)

	common.Mul4(tmp[:], rotX[:], rotY[:])
	if translate {
		common.Translation(trans[:], 0, 0, -c.distance)
		common.Mul4(tmp[:], trans[:], tmp[:])
	}
	common.Mul4(out[:], proj[:], tmp[:])
	return out
}

// clamp enforces pitch and distance bounds. Caller must hold the mutex.
func (c *cameraImpl) clamp() {
	c.pitch = common.Clamp(c.pitch, c.minPitch, c.maxPitch)
	c.distance = common.Clamp(c.distance, c.minDistance, c.maxDistance)
}
