package track

import "github.com/rotblauer/trackd/types/trackpoint"

// Integrate walks an ordered point sequence once, accumulating Euclidean
// segment lengths into distance-from-start, and normalizing by the total.
// Integration uses true Euclidean distance; the tour builder's closeness
// score has no business here.
//
// Empty input integrates to two empty slices. A single point integrates to
// cumulative [0] with normalized defaulted to [0]; there is no length to
// normalize by, and that is a boundary case, not an error. A multi-point
// sequence of zero total length cannot be normalized and returns
// ErrZeroLength instead of dividing by it.
func Integrate(points []trackpoint.TrackPoint) (cum, norm []float64, err error) {
	cum = make([]float64, len(points))
	norm = make([]float64, len(points))
	if len(points) <= 1 {
		return cum, norm, nil
	}

	covered := 0.0
	for i := 1; i < len(points); i++ {
		covered += points[i-1].Distance(points[i])
		cum[i] = covered
	}
	if covered == 0 {
		return nil, nil, ErrZeroLength
	}
	for i := range cum {
		norm[i] = cum[i] / covered
	}
	return cum, norm, nil
}
