// Package pointset is responsible for coercing raw per-car position samples
// into the unordered set of unique on-track points that a tour is built from.
//
// Although there are easily a hundred thousand position reports per session,
// the number of unique points on track is limited; typically about one unique
// point per meter of track length, 5000-7000 for a normal circuit. Points are
// not evenly spaced though. In slow corners they sit closer together than on
// straights.
//
// A set is only a valid representation for the data it was built from.
// Do not reuse a set (or anything downstream of it) across sessions unless
// the sessions' samples were joined before building.
package pointset

import (
	"context"
	"fmt"
	"sort"

	"github.com/golang/groupcache/lru"
	"github.com/mitchellh/hashstructure/v2"
	"github.com/rotblauer/trackd/params"
	"github.com/rotblauer/trackd/stream"
	"github.com/rotblauer/trackd/types/possample"
	"github.com/rotblauer/trackd/types/trackpoint"
)

// Set is an unordered collection of unique track points.
// Order carries no meaning downstream, but building is stable with respect
// to input concatenation order: first occurrence wins.
type Set []trackpoint.TrackPoint

// FilterOnTrack drops samples reported while the car was not on track.
func FilterOnTrack(ctx context.Context, in <-chan *possample.PosSample) <-chan *possample.PosSample {
	return stream.Filter(ctx, func(ps *possample.PosSample) bool {
		return ps.IsOnTrack()
	}, in)
}

// coordKey fields are exported for hashstructure, which sees only
// exported fields.
type coordKey struct {
	X, Y float64
}

// NewDedupeLRUFunc returns a predicate reporting whether a sample's
// coordinate pair is being seen for the first time lately.
// The LRU bound makes this approximate; it exists to thin duplicate-heavy
// streams cheaply before the exact dedupe in FromSamples, which remains
// authoritative.
func NewDedupeLRUFunc() func(ps *possample.PosSample) bool {
	var dedupeCache = lru.New(params.DefaultBatchSize)
	return func(ps *possample.PosSample) bool {
		hash, err := hashstructure.Hash(coordKey{ps.X, ps.Y}, hashstructure.FormatV2, nil)
		if err != nil {
			return false
		}
		key := fmt.Sprintf("%d", hash)
		_, ok := dedupeCache.Get(key)
		if ok {
			return false
		}
		dedupeCache.Add(key, true)
		return true
	}
}

// FromSamples builds the set from one or more sample series, concatenated
// in argument order. Off-track samples are dropped, coordinates are
// projected to (x, y), and exact coordinate duplicates are removed keeping
// the first occurrence (and its timestamp, when it has one).
// Empty input yields an empty set, not an error.
func FromSamples(series ...possample.Samples) Set {
	set := Set{}
	seen := map[coordKey]struct{}{}
	for _, samples := range series {
		for _, ps := range samples {
			if !ps.IsOnTrack() {
				continue
			}
			key := coordKey{ps.X, ps.Y}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			set = append(set, trackpoint.NewAt(ps.X, ps.Y, ps.Time))
		}
	}
	return set
}

// FromSeries builds the set from per-entity series, concatenating entities
// in sorted key order so the result is reproducible; map iteration order
// must not leak into the set.
func FromSeries(series possample.Series) Set {
	keys := make([]string, 0, len(series))
	for k := range series {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	ordered := make([]possample.Samples, 0, len(keys))
	for _, k := range keys {
		ordered = append(ordered, series[k])
	}
	return FromSamples(ordered...)
}
