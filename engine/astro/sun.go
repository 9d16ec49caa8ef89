// package astro computes the subsolar point (the latitude/longitude directly
// beneath the sun) and the matching world-space sun direction for a given
// instant. The default model is a first-order approximation good to about a
// degree; ApparentSunPosition offers a high-accuracy alternative.
package astro

import (
	"math"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/terraview/terraview/engine/geometry"
)

// maxDeclinationDeg is Earth's axial tilt, the amplitude of the annual
// declination swing.
const maxDeclinationDeg = 23.45

// SunState describes the sun's position relative to Earth at one instant.
type SunState struct {
	// DeclinationDeg is the subsolar latitude in degrees (+north).
	DeclinationDeg float64

	// LongitudeDeg is the subsolar longitude in degrees (+east), in [-180, 180].
	LongitudeDeg float64

	// Direction is the unit vector from Earth's center toward the sun, in the
	// same coordinate frame the planet mesh is generated in.
	Direction [3]float32
}

// memo caches per-second sun states. Visual change is imperceptible below
// one second, and the frame loop calls SunPosition every frame.
var memo, _ = lru.New(128)

// SunPosition computes the sun state for the given instant, memoized at
// one-second granularity.
//
// Declination uses -23.45deg * cos(2*pi/365 * (dayOfYear + 10)); the subsolar
// longitude is 180deg - utcHours*15deg. Day-of-year comes from the calendar
// day, not the true solar day - a deliberate first-order simplification.
//
// Parameters:
//   - t: the instant to evaluate
//
// Returns:
//   - SunState: declination, subsolar longitude, and unit direction
func SunPosition(t time.Time) SunState {
	key := t.Unix()
	if v, ok := memo.Get(key); ok {
		return v.(SunState)
	}
	s := ComputeSunPosition(t)
	memo.Add(key, s)
	return s
}

// ComputeSunPosition is the uncached form of SunPosition. Pure and stateless.
//
// Parameters:
//   - t: the instant to evaluate
//
// Returns:
//   - SunState: declination, subsolar longitude, and unit direction
func ComputeSunPosition(t time.Time) SunState {
	utc := t.UTC()

	day := float64(utc.YearDay())
	decl := -maxDeclinationDeg * math.Cos(2*math.Pi/365*(day+10))

	hours := float64(utc.Hour()) +
		float64(utc.Minute())/60 +
		float64(utc.Second())/3600
	lon := 180 - hours*15
	lon = normalizeLongitude(lon)

	return SunState{
		DeclinationDeg: decl,
		LongitudeDeg:   lon,
		Direction:      geometry.PointOnSphere(decl, lon),
	}
}

// normalizeLongitude wraps a longitude in degrees into [-180, 180].
func normalizeLongitude(lon float64) float64 {
	lon = math.Mod(lon+180, 360)
	if lon < 0 {
		lon += 360
	}
	return lon - 180
}
