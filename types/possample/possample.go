// Package possample defines the raw position record trackd consumes.
// Samples arrive as per-car time series from whatever telemetry transport
// the caller uses; trackd only ever reads X, Y and Status from them.
package possample

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

const (
	StatusOnTrack  = "OnTrack"
	StatusOffTrack = "OffTrack"
)

// PosSample is a single timestamped position report for one car.
// Z and Time pass through unused by map reconstruction; Time may be
// attached to the resulting track points for later correlation.
type PosSample struct {
	X      float64   `json:"x"`
	Y      float64   `json:"y"`
	Z      float64   `json:"z"`
	Status string    `json:"status"`
	Time   time.Time `json:"time"`
}

// UnmarshalJSON is a custom unmarshaler for PosSample.
// It asserts that the Time field, when present, is a valid RFC3339 time.
// An absent or empty time is allowed; position samples without timestamps
// are still usable for map building.
func (ps *PosSample) UnmarshalJSON(data []byte) error {
	type Alias PosSample
	aux := &struct {
		Time string `json:"time"`
		*Alias
	}{
		Alias: (*Alias)(ps),
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Time == "" {
		ps.Time = time.Time{}
		return nil
	}
	var err error
	ps.Time, err = time.Parse(time.RFC3339, aux.Time)
	if err != nil {
		return err
	}
	return nil
}

func (ps *PosSample) IsOnTrack() bool {
	return ps.Status == StatusOnTrack
}

// Validate checks the sample for basic validity.
// It returns the first error it encounters.
func (ps *PosSample) Validate() error {
	if math.IsNaN(ps.X) || math.IsInf(ps.X, 0) {
		return fmt.Errorf("invalid coordinate: x=%v", ps.X)
	}
	if math.IsNaN(ps.Y) || math.IsInf(ps.Y, 0) {
		return fmt.Errorf("invalid coordinate: y=%v", ps.Y)
	}
	if ps.Status == "" {
		return fmt.Errorf("empty status")
	}
	return nil
}

type Samples []*PosSample

// Series is position data keyed by car/entity identifier,
// as delivered by a telemetry feed.
type Series map[string]Samples
