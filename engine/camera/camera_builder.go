package camera

// CameraBuilderOption is a functional option applied to a camera during construction via NewCamera.
type CameraBuilderOption func(*cameraImpl)

// WithFov sets the vertical field of view in radians.
//
// Parameters:
//   - fov: field of view in radians
//
// Returns:
//   - CameraBuilderOption: option function to apply
func WithFov(fov float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fov = fov
	}
}

// WithAspect sets the initial aspect ratio (width / height).
//
// Parameters:
//   - aspect: the aspect ratio
//
// Returns:
//   - CameraBuilderOption: option function to apply
func WithAspect(aspect float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		if aspect > 0 {
			c.aspect = aspect
		}
	}
}

// WithNearFar sets the near and far clipping plane distances.
//
// Parameters:
//   - near: near plane distance (must be > 0)
//   - far: far plane distance (must be > near)
//
// Returns:
//   - CameraBuilderOption: option function to apply
func WithNearFar(near, far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.near = near
		c.far = far
	}
}

// WithDistance sets the initial orbit distance.
//
// Parameters:
//   - distance: initial distance from the orbit target
//
// Returns:
//   - CameraBuilderOption: option function to apply
func WithDistance(distance float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.distance = distance
	}
}

// WithDistanceBounds sets the minimum and maximum orbit distance.
//
// Parameters:
//   - min: minimum distance
//   - max: maximum distance
//
// Returns:
//   - CameraBuilderOption: option function to apply
func WithDistanceBounds(min, max float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.minDistance = min
		c.maxDistance = max
	}
}

// WithOrientation sets the initial yaw and pitch in radians.
//
// Parameters:
//   - yaw: initial yaw
//   - pitch: initial pitch (clamped to [-pi/2, pi/2])
//
// Returns:
//   - CameraBuilderOption: option function to apply
func WithOrientation(yaw, pitch float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.yaw = yaw
		c.pitch = pitch
	}
}
