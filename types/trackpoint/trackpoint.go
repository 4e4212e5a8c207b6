// Package trackpoint defines the 2-D point value that track maps are made of.
//
// The coordinate system is whatever the telemetry feed uses; trackd never
// converts units. All downstream geometry (tours, arc lengths, queries)
// is expressed in these raw coordinates.
package trackpoint

import (
	"fmt"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// TrackPoint is a unique position on (or suspiciously far away from) a circuit.
// The Time field is optional; a zero Time means the point carries no timestamp.
// TrackPoints are values and are never mutated after construction.
type TrackPoint struct {
	X    float64   `json:"x"`
	Y    float64   `json:"y"`
	Time time.Time `json:"time,omitempty"`
}

func New(x, y float64) TrackPoint {
	return TrackPoint{X: x, Y: y}
}

func NewAt(x, y float64, t time.Time) TrackPoint {
	return TrackPoint{X: x, Y: y, Time: t}
}

// Point bridges into the orb geometry types.
func (tp TrackPoint) Point() orb.Point {
	return orb.Point{tp.X, tp.Y}
}

// Closeness returns the sum of absolute coordinate differences, |Δx| + |Δy|.
// This is not a real distance; it is the cheap score the tour builder
// thresholds on, and its calibration (points on a sampled circuit usually
// score around 100 against their neighbor) depends on this exact form.
// Treat the return value as opaque.
func (tp TrackPoint) Closeness(other TrackPoint) float64 {
	dx := other.X - tp.X
	if dx < 0 {
		dx = -dx
	}
	dy := other.Y - tp.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// Distance returns the true Euclidean distance to other.
// Arc-length integration uses this, never Closeness.
func (tp TrackPoint) Distance(other TrackPoint) float64 {
	return planar.Distance(tp.Point(), other.Point())
}

// SharesCoords reports coordinate-pair equality, ignoring time.
// This is the dedupe identity: the same spot sampled in two laps
// is the same track point.
func (tp TrackPoint) SharesCoords(other TrackPoint) bool {
	return tp.X == other.X && tp.Y == other.Y
}

// Equal reports value equality, time included where present.
func (tp TrackPoint) Equal(other TrackPoint) bool {
	return tp.SharesCoords(other) && tp.Time.Equal(other.Time)
}

func (tp TrackPoint) String() string {
	if tp.Time.IsZero() {
		return fmt.Sprintf("(%v,%v)", tp.X, tp.Y)
	}
	return fmt.Sprintf("(%v,%v)@%s", tp.X, tp.Y, tp.Time.Format(time.RFC3339))
}
