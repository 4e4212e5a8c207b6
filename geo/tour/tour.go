// Package tour reconstructs the traversal order of a circuit's points.
//
// The input is an unordered set of unique on-track points; the output is the
// same points sequenced into a path, minus whatever got rejected as outliers.
// Construction is greedy nearest-neighbor: starting from an arbitrary seed,
// repeatedly jump to the closest remaining point. A circuit sampled at
// roughly one point per meter keeps the greedy chain honest; there is no
// backtracking and no spatial index, and none is needed at the few-thousand
// point counts a single circuit produces. The scan is O(n²) and it's fine.
package tour

import (
	"github.com/montanaflynn/stats"
	"github.com/rotblauer/trackd/geo/pointset"
	"github.com/rotblauer/trackd/params"
	"github.com/rotblauer/trackd/types/trackpoint"
)

// Tour is a reconstructed traversal: the ordered path and the points
// rejected along the way. Every point of the input set lands in exactly
// one of the two; nothing is silently dropped.
type Tour struct {
	Ordered  []trackpoint.TrackPoint
	Excluded []trackpoint.TrackPoint
}

// SeamGap returns the closeness score between the tour's last and first
// ordered points. The builder treats the circuit as an open list, so the
// loop-closing edge is never threshold-checked during construction; this
// reports it for callers that want to judge closure themselves.
// Zero for tours shorter than two points.
func (t Tour) SeamGap() float64 {
	if len(t.Ordered) < 2 {
		return 0
	}
	return t.Ordered[len(t.Ordered)-1].Closeness(t.Ordered[0])
}

// Progress is a read-only snapshot of a build in flight.
type Progress struct {
	Ordered   []trackpoint.TrackPoint
	Remaining []trackpoint.TrackPoint
	Excluded  int
}

// Observer receives Progress snapshots at the builder's configured cadence.
// Observers are for monitoring and visualization only; they cannot alter
// the build.
type Observer func(p Progress)

type Builder struct {
	config   *params.TourConfig
	observer Observer
	counter  int
}

func NewBuilder(config *params.TourConfig) *Builder {
	if config == nil {
		config = params.DefaultTourConfig
	}
	return &Builder{config: config}
}

// OnProgress attaches an observer. A nil observer, or a config cadence of
// zero, disables observation; either way the resulting tour is identical.
func (b *Builder) OnProgress(fn Observer) *Builder {
	b.observer = fn
	return b
}

// Build sequences the set greedily.
//
// The first element of the set seeds the walk; any point is a valid seed
// since a closed circuit reads the same from anywhere. Each step scans all
// remaining points for the minimum closeness score against the point in
// hand, lowest index winning ties. If even the closest survivor scores
// above the threshold, the point in hand has nothing near it and is the
// outlier, so it is excluded instead of appended; the walk continues from
// the closest survivor regardless. The final point in hand is measured
// against the tail of the ordered path, since nothing else remains.
//
// An empty set builds an empty tour. A single point is always ordered,
// never excluded; there is nothing to score it against.
func (b *Builder) Build(set pointset.Set) Tour {
	tour := Tour{
		Ordered:  []trackpoint.TrackPoint{},
		Excluded: []trackpoint.TrackPoint{},
	}
	if len(set) == 0 {
		return tour
	}

	tour.Ordered = make([]trackpoint.TrackPoint, 0, len(set))

	// Working arena, consumed by swap-remove. The set itself stays intact.
	remaining := make([]trackpoint.TrackPoint, len(set))
	copy(remaining, set)

	current := remaining[0]
	remaining[0] = remaining[len(remaining)-1]
	remaining = remaining[:len(remaining)-1]

	b.counter = 0
	for len(remaining) > 0 {
		minIdx := 0
		minScore := current.Closeness(remaining[0])
		for i := 1; i < len(remaining); i++ {
			if score := current.Closeness(remaining[i]); score < minScore {
				minIdx, minScore = i, score
			}
		}

		if minScore > b.config.OutlierThreshold {
			tour.Excluded = append(tour.Excluded, current)
		} else {
			tour.Ordered = append(tour.Ordered, current)
		}

		next := remaining[minIdx]
		remaining[minIdx] = remaining[len(remaining)-1]
		remaining = remaining[:len(remaining)-1]
		current = next

		b.observe(tour, remaining)
	}

	// The last point in hand has only the path itself to measure against.
	if len(tour.Ordered) == 0 ||
		current.Closeness(tour.Ordered[len(tour.Ordered)-1]) <= b.config.OutlierThreshold {
		tour.Ordered = append(tour.Ordered, current)
	} else {
		tour.Excluded = append(tour.Excluded, current)
	}

	return tour
}

func (b *Builder) observe(t Tour, remaining []trackpoint.TrackPoint) {
	if b.observer == nil || b.config.ObserveEvery <= 0 {
		return
	}
	b.counter++
	if b.counter%b.config.ObserveEvery != 0 {
		return
	}
	p := Progress{
		Ordered:   make([]trackpoint.TrackPoint, len(t.Ordered)),
		Remaining: make([]trackpoint.TrackPoint, len(remaining)),
		Excluded:  len(t.Excluded),
	}
	copy(p.Ordered, t.Ordered)
	copy(p.Remaining, remaining)
	b.observer(p)
}

// CalibrateThreshold measures the set instead of trusting the default:
// it takes the median nearest-neighbor closeness score across the set and
// scales it by factor (see params.DefaultCalibrationFactor).
// Sets smaller than two points have no neighbor spacing to measure.
func CalibrateThreshold(set pointset.Set, factor float64) (float64, error) {
	nn := make([]float64, 0, len(set))
	for i := range set {
		best := -1.0
		for j := range set {
			if i == j {
				continue
			}
			if score := set[i].Closeness(set[j]); best < 0 || score < best {
				best = score
			}
		}
		if best >= 0 {
			nn = append(nn, best)
		}
	}
	median, err := stats.Median(stats.Float64Data(nn))
	if err != nil {
		return 0, err
	}
	return median * factor, nil
}
