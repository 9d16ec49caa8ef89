package input

import "time"

// ControllerBuilderOption is a functional option for configuring a Controller.
// Use the With* functions to create options.
type ControllerBuilderOption func(c *controllerImpl)

// WithSensitivity sets the drag sensitivity in radians of orbit per pixel of
// mouse travel.
//
// Parameters:
//   - radiansPerPixel: drag sensitivity (must be > 0 to take effect)
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithSensitivity(radiansPerPixel float32) ControllerBuilderOption {
	return func(c *controllerImpl) {
		if radiansPerPixel > 0 {
			c.sensitivity = radiansPerPixel
		}
	}
}

// WithZoomStep sets the camera distance change per scroll wheel unit.
//
// Parameters:
//   - step: distance per scroll unit (must be > 0 to take effect)
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithZoomStep(step float32) ControllerBuilderOption {
	return func(c *controllerImpl) {
		if step > 0 {
			c.zoomStep = step
		}
	}
}

// WithIdleDelay sets how long the camera must sit untouched before idle
// auto-rotation starts.
//
// Parameters:
//   - delay: the idle interval
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithIdleDelay(delay time.Duration) ControllerBuilderOption {
	return func(c *controllerImpl) {
		if delay > 0 {
			c.idleDelay = delay
		}
	}
}

// WithAutoRotateRate sets the idle auto-rotation yaw rate in radians per
// second.
//
// Parameters:
//   - radiansPerSecond: the rotation rate
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithAutoRotateRate(radiansPerSecond float32) ControllerBuilderOption {
	return func(c *controllerImpl) {
		c.autoRotateRate = radiansPerSecond
	}
}
