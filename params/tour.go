package params

type TourConfig struct {
	// OutlierThreshold is the closeness-score ceiling for tour construction.
	// If no remaining point scores at or under this against the point being
	// extended from, that point is excluded as an outlier.
	// The value was determined experimentally against F1 position feeds:
	// neighboring unique points usually score around 100, so 200 leaves
	// comfortable headroom without admitting off-track garbage.
	OutlierThreshold float64

	// ObserveEvery is the observer cadence: the tour builder reports
	// progress every ObserveEvery appended points. Zero disables
	// observation entirely.
	ObserveEvery int
}

var DefaultTourConfig = &TourConfig{
	OutlierThreshold: 200.0,
	ObserveEvery:     0,
}

// DefaultCalibrationFactor scales the measured median nearest-neighbor
// closeness into an outlier threshold, for callers that prefer measuring
// their feed over trusting the default.
var DefaultCalibrationFactor = 2.0
