package overlay

import (
	"testing"
	"time"

	"github.com/terraview/terraview/engine/astro"
)

func TestFormatReadoutUTC(t *testing.T) {
	now := time.Date(2024, 6, 21, 12, 30, 45, 0, time.UTC)
	r := FormatReadout(now, astro.SunState{DeclinationDeg: 23.4, LongitudeDeg: -7.5})

	if r.UTC != "2024-06-21 12:30:45 UTC" {
		t.Errorf("UTC = %q", r.UTC)
	}
	if r.Subsolar != "23.4N 7.5W" {
		t.Errorf("Subsolar = %q, want \"23.4N 7.5W\"", r.Subsolar)
	}
}

func TestFormatReadoutConvertsToUTC(t *testing.T) {
	loc := time.FixedZone("TST", -5*3600)
	now := time.Date(2024, 1, 1, 22, 0, 0, 0, loc)
	r := FormatReadout(now, astro.SunState{})

	if r.UTC != "2024-01-02 03:00:00 UTC" {
		t.Errorf("UTC = %q, want the zone-shifted instant", r.UTC)
	}
	if r.Local != "2024-01-01 22:00:00 TST" {
		t.Errorf("Local = %q, want the wall-clock instant", r.Local)
	}
}

func TestFormatSubsolarHemispheres(t *testing.T) {
	cases := []struct {
		name     string
		lat, lon float64
		want     string
	}{
		{"northeast", 23.45, 45.2, "23.4N 45.2E"},
		{"northwest", 10, -120.35, "10.0N 120.3W"},
		{"southeast", -33.8, 151.2, "33.8S 151.2E"},
		{"southwest", -54.5, -68.3, "54.5S 68.3W"},
		{"origin", 0, 0, "0.0N 0.0E"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := formatSubsolar(c.lat, c.lon); got != c.want {
				t.Errorf("formatSubsolar(%v, %v) = %q, want %q", c.lat, c.lon, got, c.want)
			}
		})
	}
}
