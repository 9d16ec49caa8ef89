package astro

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/meeus/v3/solar"
	"github.com/terraview/terraview/engine/geometry"
)

// ApparentSunPosition computes the sun state from the sun's apparent
// equatorial coordinates rotated into the Earth-fixed frame by Greenwich
// sidereal time. Accurate to well under a tenth of a degree, compared with
// roughly a degree for the first-order model in ComputeSunPosition.
//
// Parameters:
//   - t: the instant to evaluate
//
// Returns:
//   - SunState: declination, subsolar longitude, and unit direction
func ApparentSunPosition(t time.Time) SunState {
	jd := julian.TimeToJD(t.UTC())

	ra, dec := solar.ApparentEquatorial(jd)
	gmst := sidereal.Apparent0UT(jd)

	// Subsolar longitude is the hour-angle complement: RA minus GMST,
	// wrapped into [-180, 180].
	lon := normalizeLongitude((ra.Rad() - gmst.Angle().Rad()) * 180 / math.Pi)
	decl := dec.Deg()

	return SunState{
		DeclinationDeg: decl,
		LongitudeDeg:   lon,
		Direction:      geometry.PointOnSphere(decl, lon),
	}
}
