package scene

import (
	"time"

	"github.com/terraview/terraview/engine/astro"
	"github.com/terraview/terraview/engine/texture"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *sceneImpl)

// WithDayTexture sets the planet's daytime surface texture resource.
//
// Parameters:
//   - res: the hot-swappable texture resource
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithDayTexture(res *texture.Resource) SceneBuilderOption {
	return func(s *sceneImpl) {
		s.dayTexture = res
	}
}

// WithCloudTexture sets the planet's cloud layer texture resource. The
// texture's alpha channel carries cloud coverage.
//
// Parameters:
//   - res: the hot-swappable texture resource
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCloudTexture(res *texture.Resource) SceneBuilderOption {
	return func(s *sceneImpl) {
		s.cloudTexture = res
	}
}

// WithSkyTexture sets the texture mapped onto the inward-facing sky shell.
//
// Parameters:
//   - res: the hot-swappable texture resource
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithSkyTexture(res *texture.Resource) SceneBuilderOption {
	return func(s *sceneImpl) {
		s.skyTexture = res
	}
}

// WithSunModel replaces the sun position model. Defaults to the first-order
// astro.SunPosition; pass astro.ApparentSunPosition for sub-tenth-degree
// accuracy.
//
// Parameters:
//   - model: function mapping an instant to a sun state
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithSunModel(model func(time.Time) astro.SunState) SceneBuilderOption {
	return func(s *sceneImpl) {
		if model != nil {
			s.sunModel = model
		}
	}
}

// WithCloudFadeBand sets the camera distance band over which the cloud layer
// fades in: fully transparent at or below near, fully opaque at or beyond far.
//
// Parameters:
//   - near: distance at which clouds are fully faded out
//   - far: distance at which clouds are fully opaque
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCloudFadeBand(near, far float32) SceneBuilderOption {
	return func(s *sceneImpl) {
		s.cloudFadeNear = near
		s.cloudFadeFar = far
	}
}

// WithStarCount sets the number of stars scattered in the point starfield.
//
// Parameters:
//   - count: star count (minimum 1)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithStarCount(count int) SceneBuilderOption {
	return func(s *sceneImpl) {
		if count >= 1 {
			s.starCount = count
		}
	}
}

// WithStarSeed sets the seed for star placement, so a fixed seed reproduces
// the same sky.
//
// Parameters:
//   - seed: random source seed
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithStarSeed(seed int64) SceneBuilderOption {
	return func(s *sceneImpl) {
		s.starSeed = seed
	}
}

// WithSunColor sets the sun disc color. The alpha component scales overall
// intensity.
//
// Parameters:
//   - r, g, b, a: color components in [0, 1]
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithSunColor(r, g, b, a float32) SceneBuilderOption {
	return func(s *sceneImpl) {
		s.sunColor = [4]float32{r, g, b, a}
	}
}
