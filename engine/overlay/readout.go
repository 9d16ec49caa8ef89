// package overlay publishes the scene's time and sun readout to external
// widgets. The renderer draws no 2D text itself; anything that wants the
// readout (a status bar, a web overlay) subscribes over a websocket and
// receives the formatted strings each tick.
package overlay

import (
	"fmt"
	"math"
	"time"

	"github.com/terraview/terraview/engine/astro"
)

// Readout is the display contract for overlay widgets: preformatted UTC
// time, local time, and subsolar point strings, rebuilt each tick.
type Readout struct {
	UTC      string `json:"utc"`
	Local    string `json:"local"`
	Subsolar string `json:"subsolar"`
}

// FormatReadout builds the overlay readout for an instant and sun state.
//
// Parameters:
//   - now: the instant being displayed
//   - state: the sun state computed for that instant
//
// Returns:
//   - Readout: the formatted display strings
func FormatReadout(now time.Time, state astro.SunState) Readout {
	return Readout{
		UTC:      now.UTC().Format("2006-01-02 15:04:05") + " UTC",
		Local:    now.Format("2006-01-02 15:04:05 MST"),
		Subsolar: formatSubsolar(state.DeclinationDeg, state.LongitudeDeg),
	}
}

// formatSubsolar renders a latitude/longitude pair as hemisphere-suffixed
// degrees, e.g. "23.4N 45.2W".
func formatSubsolar(latDeg, lonDeg float64) string {
	latHemi := "N"
	if latDeg < 0 {
		latHemi = "S"
	}
	lonHemi := "E"
	if lonDeg < 0 {
		lonHemi = "W"
	}
	return fmt.Sprintf("%.1f%s %.1f%s",
		math.Abs(latDeg), latHemi,
		math.Abs(lonDeg), lonHemi,
	)
}
