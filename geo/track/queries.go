package track

import (
	"fmt"

	"github.com/rotblauer/trackd/common"
	"github.com/rotblauer/trackd/types/trackpoint"
)

// Axis names a coordinate for axis-keyed queries.
type Axis string

const (
	AxisX Axis = "x"
	AxisY Axis = "y"
)

func (a Axis) of(tp trackpoint.TrackPoint) float64 {
	if a == AxisY {
		return tp.Y
	}
	return tp.X
}

// other returns the coordinate the axis does not name.
func (a Axis) other(tp trackpoint.TrackPoint) float64 {
	if a == AxisY {
		return tp.X
	}
	return tp.Y
}

// Nearest returns the path point closest to the query point by Euclidean
// distance, lowest index winning ties. The path is assumed to contain all
// points of the data being queried; coordinates outside the sampled region
// return whatever happens to be least far, which is on the caller.
func (p *Path) Nearest(q trackpoint.TrackPoint) (trackpoint.TrackPoint, error) {
	if p.Len() == 0 {
		return trackpoint.TrackPoint{}, ErrEmptyPath
	}
	best := 0
	bestDist := q.Distance(p.Points[0])
	for i := 1; i < p.Len(); i++ {
		if d := q.Distance(p.Points[i]); d < bestDist {
			best, bestDist = i, d
		}
	}
	return p.Points[best], nil
}

// Between returns the sub-path connecting two reference points that are
// already on the path. With short, it is the contiguous slice between the
// two (list order, no wrap-around); otherwise it is the complementary
// wrap-around slice, path end stitched to path start. includeRef brackets
// the result with the reference points themselves, ordered so the result
// traverses from p1 towards p2 along the chosen branch.
func (p *Path) Between(p1, p2 trackpoint.TrackPoint, short, includeRef bool) ([]trackpoint.TrackPoint, error) {
	i1 := p.indexOf(p1)
	if i1 < 0 {
		return nil, fmt.Errorf("%w: %s", ErrPointNotFound, p1)
	}
	i2 := p.indexOf(p2)
	if i2 < 0 {
		return nil, fmt.Errorf("%w: %s", ErrPointNotFound, p2)
	}

	lo, hi := i1, i2
	if lo > hi {
		lo, hi = hi, lo
	}

	var rng []trackpoint.TrackPoint
	if short {
		rng = append(rng, p.Points[lo+1:hi]...)
		if includeRef {
			if i1 < i2 {
				rng = append([]trackpoint.TrackPoint{p1}, append(rng, p2)...)
			} else {
				rng = append([]trackpoint.TrackPoint{p2}, append(rng, p1)...)
			}
		}
		return rng, nil
	}

	rng = append(rng, p.Points[hi+1:]...)
	rng = append(rng, p.Points[:lo]...)
	if includeRef {
		if i1 < i2 {
			rng = append([]trackpoint.TrackPoint{p2}, append(rng, p1)...)
		} else {
			rng = append([]trackpoint.TrackPoint{p1}, append(rng, p2)...)
		}
	}
	return rng, nil
}

// InterpolateAlong finds where the sub-path between p1 and p2 crosses the
// given coordinate value on the given axis, linearly interpolating the
// other coordinate between the two bracketing path points.
//
// The sub-path (the short branch) must be locally monotonic on the axis
// for the answer to mean anything; only a straightish stretch of track
// qualifies, and supplying one is the caller's job. The query fails with
// ErrUnbracketed when the two nearest points do not straddle the value.
func (p *Path) InterpolateAlong(value float64, p1, p2 trackpoint.TrackPoint, axis Axis) (trackpoint.TrackPoint, error) {
	rng, err := p.Between(p1, p2, true, true)
	if err != nil {
		return trackpoint.TrackPoint{}, err
	}
	if len(rng) < 2 {
		return trackpoint.TrackPoint{}, fmt.Errorf("%w: need at least two points between %s and %s",
			ErrUnbracketed, p1, p2)
	}

	// Closest point on the axis alone; valid because the range is assumed
	// approximately straight.
	offsets := make([]float64, len(rng))
	for i, tp := range rng {
		off := axis.of(tp) - value
		if off < 0 {
			off = -off
		}
		offsets[i] = off
	}

	minIdx := common.MinIndex(offsets)
	pa := rng[minIdx]

	// Second point: the adjacent neighbor on the nearer side, with edge
	// cases when the closest point sits at either end of the range.
	var pb trackpoint.TrackPoint
	switch {
	case minIdx == 0:
		pb = rng[1]
	case minIdx == len(rng)-1:
		pb = rng[len(rng)-2]
	default:
		if offsets[minIdx+1] < offsets[minIdx-1] {
			pb = rng[minIdx+1]
		} else {
			pb = rng[minIdx-1]
		}
	}

	va, vb := axis.of(pa), axis.of(pb)
	if va == value {
		return interpPoint(value, axis.other(pa), axis), nil
	}
	if (va-value)*(vb-value) > 0 {
		return trackpoint.TrackPoint{}, fmt.Errorf("%w: %v=%v between %s and %s",
			ErrUnbracketed, axis, value, pa, pb)
	}

	t := (value - va) / (vb - va)
	other := axis.other(pa) + (axis.other(pb)-axis.other(pa))*t
	return interpPoint(value, other, axis), nil
}

func interpPoint(onAxis, offAxis float64, axis Axis) trackpoint.TrackPoint {
	if axis == AxisY {
		return trackpoint.New(offAxis, onAxis)
	}
	return trackpoint.New(onAxis, offAxis)
}
