package pointset

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/rotblauer/trackd/stream"
	"github.com/rotblauer/trackd/types/possample"
	"github.com/rotblauer/trackd/types/trackpoint"
)

func sample(x, y float64, status string) *possample.PosSample {
	return &possample.PosSample{X: x, Y: y, Status: status}
}

func TestFromSamples(t *testing.T) {
	ts := time.Date(2019, 7, 28, 14, 0, 0, 0, time.UTC)
	car44 := possample.Samples{
		{X: 0, Y: 0, Status: possample.StatusOnTrack, Time: ts},
		sample(1, 0, possample.StatusOnTrack),
		sample(0, 0, possample.StatusOnTrack), // dupe, later lap
		sample(50, 50, possample.StatusOffTrack),
	}
	car77 := possample.Samples{
		sample(1, 0, possample.StatusOnTrack), // dupe across cars
		sample(2, 0, possample.StatusOnTrack),
	}

	set := FromSamples(car44, car77)
	expected := Set{
		trackpoint.NewAt(0, 0, ts),
		trackpoint.New(1, 0),
		trackpoint.New(2, 0),
	}
	if !reflect.DeepEqual(set, expected) {
		t.Errorf("Expected %v, but got %v", expected, set)
	}
}

func TestFromSamples_Empty(t *testing.T) {
	set := FromSamples(possample.Samples{
		sample(1, 1, possample.StatusOffTrack),
	})
	if len(set) != 0 {
		t.Errorf("expected empty set, got %v", set)
	}
	if set := FromSamples(); len(set) != 0 {
		t.Errorf("expected empty set from no input, got %v", set)
	}
}

func TestFromSeries_StableOrder(t *testing.T) {
	series := possample.Series{
		"77": {sample(5, 5, possample.StatusOnTrack)},
		"44": {sample(0, 0, possample.StatusOnTrack)},
	}
	for i := 0; i < 10; i++ {
		set := FromSeries(series)
		expected := Set{trackpoint.New(0, 0), trackpoint.New(5, 5)}
		if !reflect.DeepEqual(set, expected) {
			t.Fatalf("Expected %v, but got %v", expected, set)
		}
	}
}

func TestFilterOnTrack(t *testing.T) {
	ctx := context.Background()
	in := stream.Slice(ctx, []*possample.PosSample{
		sample(0, 0, possample.StatusOnTrack),
		sample(1, 1, possample.StatusOffTrack),
		sample(2, 2, possample.StatusOnTrack),
	})
	out := stream.Collect(ctx, FilterOnTrack(ctx, in))
	if len(out) != 2 {
		t.Fatalf("expected 2 on-track samples, got %d", len(out))
	}
	for _, ps := range out {
		if !ps.IsOnTrack() {
			t.Errorf("off-track sample leaked: %v", ps)
		}
	}
}

func TestNewDedupeLRUFunc(t *testing.T) {
	dedupe := NewDedupeLRUFunc()
	if !dedupe(sample(1, 2, possample.StatusOnTrack)) {
		t.Error("expected first occurrence to pass")
	}
	if dedupe(sample(1, 2, possample.StatusOnTrack)) {
		t.Error("expected repeat coordinate pair to be dropped")
	}
	if !dedupe(sample(1, 3, possample.StatusOnTrack)) {
		t.Error("expected new coordinate pair to pass")
	}
}

// TestNewDedupeLRUFunc_DistinctPairs guards the hash identity: distinct
// coordinate pairs must hash distinctly, or the predicate collapses a
// whole stream to its first sample.
func TestNewDedupeLRUFunc_DistinctPairs(t *testing.T) {
	dedupe := NewDedupeLRUFunc()
	passed := 0
	for _, ps := range []*possample.PosSample{
		sample(0, 0, possample.StatusOnTrack),
		sample(1, 0, possample.StatusOnTrack),
		sample(2, 0, possample.StatusOnTrack),
		sample(2, 0, possample.StatusOnTrack),
		sample(3, 0, possample.StatusOnTrack),
	} {
		if dedupe(ps) {
			passed++
		}
	}
	if passed != 4 {
		t.Errorf("expected 4 distinct coordinate pairs to pass, got %d", passed)
	}
}
