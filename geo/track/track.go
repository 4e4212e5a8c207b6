// Package track holds the finished artifact of map reconstruction: an
// ordered path of points with cumulative and normalized distance along it,
// plus the queries telemetry overlays run against it.
//
// A path is only a valid representation for the session data it was built
// from. Its nearest-point query assumes the path contains every point the
// querying data can produce; it knows nothing about positions that were
// never recorded.
package track

import (
	"errors"
	"fmt"

	"github.com/montanaflynn/stats"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/rotblauer/trackd/common"
	"github.com/rotblauer/trackd/types/trackpoint"
)

var ErrZeroLength = errors.New("zero total path length")
var ErrEmptyPath = errors.New("empty path")
var ErrPointNotFound = errors.New("point not on path")
var ErrUnbracketed = errors.New("value not bracketed by path segment")

// Path is an ordered track line with distance-from-start for every point.
// The three slices are parallel and equally long. Distances is monotonically
// non-decreasing and starts at 0; Normalized runs 0..1 (a single-point path
// degenerates to [0]). Read-only after construction; query failures never
// invalidate it.
type Path struct {
	Points     []trackpoint.TrackPoint `json:"points"`
	Distances  []float64               `json:"distances"`
	Normalized []float64               `json:"normalized"`
}

// NewPath integrates arc length over an ordered point sequence, taking
// ownership of it. An empty sequence builds an empty path.
// Returns ErrZeroLength when a multi-point sequence integrates to nothing
// (all points coincident; should not survive dedupe).
func NewPath(ordered []trackpoint.TrackPoint) (*Path, error) {
	cum, norm, err := Integrate(ordered)
	if err != nil {
		return nil, err
	}
	return &Path{
		Points:     ordered,
		Distances:  cum,
		Normalized: norm,
	}, nil
}

func (p *Path) Len() int {
	return len(p.Points)
}

// TotalDistance is the arc length of the whole path.
func (p *Path) TotalDistance() float64 {
	if len(p.Distances) == 0 {
		return 0
	}
	return p.Distances[len(p.Distances)-1]
}

// indexOf locates a reference point on the path.
// Timestamped queries must match value+time; bare geometric points match
// by coordinates alone.
func (p *Path) indexOf(tp trackpoint.TrackPoint) int {
	for i := range p.Points {
		if tp.Time.IsZero() {
			if p.Points[i].SharesCoords(tp) {
				return i
			}
			continue
		}
		if p.Points[i].Equal(tp) {
			return i
		}
	}
	return -1
}

// LineString bridges the path into the orb geometry types.
func (p *Path) LineString() orb.LineString {
	ls := make(orb.LineString, 0, len(p.Points))
	for _, tp := range p.Points {
		ls = append(ls, tp.Point())
	}
	return ls
}

// GeoJSON exports the path as a LineString feature with summary properties,
// suitable for anything that eats GeoJSON.
func (p *Path) GeoJSON() *geojson.Feature {
	f := geojson.NewFeature(p.LineString())
	f.Properties["PointCount"] = p.Len()
	f.Properties["Distance_Total"] = common.DecimalToFixed(p.TotalDistance(), 2)

	spacings := make([]float64, 0, p.Len())
	for i := 1; i < p.Len(); i++ {
		spacings = append(spacings, p.Distances[i]-p.Distances[i-1])
	}
	statsMustFloat := func(fn func() (float64, error), def float64) float64 {
		out, err := fn()
		if err != nil {
			return def
		}
		return out
	}
	statsData := stats.Float64Data(spacings)
	f.Properties["Spacing_Mean"] = common.DecimalToFixed(statsMustFloat(statsData.Mean, 0), 2)
	f.Properties["Spacing_Median"] = common.DecimalToFixed(statsMustFloat(statsData.Median, 0), 2)
	f.Properties["Spacing_Min"] = common.DecimalToFixed(statsMustFloat(statsData.Min, 0), 2)
	f.Properties["Spacing_Max"] = common.DecimalToFixed(statsMustFloat(statsData.Max, 0), 2)
	return f
}

func (p *Path) String() string {
	return fmt.Sprintf("path points=%d distance=%.1f", p.Len(), p.TotalDistance())
}
