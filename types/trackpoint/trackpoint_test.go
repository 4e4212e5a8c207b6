package trackpoint

import (
	"testing"
	"time"
)

func TestTrackPoint_Closeness(t *testing.T) {
	a := New(2, 0)
	b := New(100, 100)
	if got := a.Closeness(b); got != 198 {
		t.Errorf("expected closeness 198, got %v", got)
	}
	if got := b.Closeness(a); got != 198 {
		t.Errorf("expected closeness symmetric, got %v", got)
	}
	if got := a.Closeness(a); got != 0 {
		t.Errorf("expected zero closeness to self, got %v", got)
	}
}

// TestTrackPoint_ClosenessIsNotDistance pins the score to its exact form.
// A 3-4-5 triangle scores 7 on closeness but measures 5 on distance;
// the two must never be swapped for each other.
func TestTrackPoint_ClosenessIsNotDistance(t *testing.T) {
	a := New(0, 0)
	b := New(3, 4)
	if got := a.Closeness(b); got != 7 {
		t.Errorf("expected closeness 7, got %v", got)
	}
	if got := a.Distance(b); got != 5 {
		t.Errorf("expected distance 5, got %v", got)
	}
}

func TestTrackPoint_SharesCoords(t *testing.T) {
	ts := time.Date(2019, 7, 28, 14, 0, 0, 0, time.UTC)
	a := NewAt(1, 2, ts)
	b := New(1, 2)
	if !a.SharesCoords(b) {
		t.Error("expected same coordinates to match regardless of time")
	}
	if a.Equal(b) {
		t.Error("expected time-bearing point not Equal to bare point")
	}
	if !a.Equal(NewAt(1, 2, ts)) {
		t.Error("expected value+time equality")
	}
}
