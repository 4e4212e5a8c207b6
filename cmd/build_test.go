package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rotblauer/trackd/params"
)

const ndSamples = `{"x": 500, "y": 500, "status": "OnTrack"}
{"x": 0, "y": 0, "status": "OnTrack"}
{"x": 1, "y": 0, "status": "OnTrack"}
{"x": 1, "y": 0, "status": "OnTrack"}
{"x": 2, "y": 0, "status": "OnTrack"}
{"x": 3, "y": 0, "status": "OffTrack"}
{"x": 3, "y": 0, "status": "OnTrack"}
`

func TestBuildTrack(t *testing.T) {
	cfg := &params.TourConfig{OutlierThreshold: 50}
	path, tour, err := buildTrack(context.Background(), cfg, strings.NewReader(ndSamples))
	if err != nil {
		t.Fatal(err)
	}
	if path.Len() != 4 {
		t.Errorf("expected 4 path points, got %d", path.Len())
	}
	if len(tour.Excluded) != 1 {
		t.Errorf("expected 1 excluded point, got %d", len(tour.Excluded))
	}
}

func TestBuildTrack_ArrayInput(t *testing.T) {
	arr := `[
{"x": 500, "y": 500, "status": "OnTrack"},
{"x": 0, "y": 0, "status": "OnTrack"},
{"x": 1, "y": 0, "status": "OnTrack"},
{"x": 2, "y": 0, "status": "OnTrack"}
]`
	cfg := &params.TourConfig{OutlierThreshold: 50}
	path, tour, err := buildTrack(context.Background(), cfg, strings.NewReader(arr))
	if err != nil {
		t.Fatal(err)
	}
	if path.Len() != 3 {
		t.Errorf("expected 3 path points, got %d", path.Len())
	}
	if len(tour.Excluded) != 1 {
		t.Errorf("expected 1 excluded point, got %d", len(tour.Excluded))
	}
}

func TestBuildTrack_Calibrate(t *testing.T) {
	optBuildCalibrate = true
	defer func() { optBuildCalibrate = false }()

	cfg := &params.TourConfig{OutlierThreshold: 0}
	path, _, err := buildTrack(context.Background(), cfg, strings.NewReader(ndSamples))
	if err != nil {
		t.Fatal(err)
	}
	// Median nearest-neighbor spacing is 1, doubled to 2; the far point
	// cannot attach.
	if cfg.OutlierThreshold != 2 {
		t.Errorf("expected calibrated threshold 2, got %v", cfg.OutlierThreshold)
	}
	if path.Len() != 4 {
		t.Errorf("expected 4 path points, got %d", path.Len())
	}
}

func TestWriteTrack_CSV(t *testing.T) {
	cfg := &params.TourConfig{OutlierThreshold: 50}
	path, _, err := buildTrack(context.Background(), cfg, strings.NewReader(ndSamples))
	if err != nil {
		t.Fatal(err)
	}
	buf := &bytes.Buffer{}
	if err := writeTrack(buf, "csv", path); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected header plus 4 rows, got %d lines", len(lines))
	}
	if lines[0] != "x,y,distance,normalized" {
		t.Errorf("unexpected header: %s", lines[0])
	}
}

func TestWriteTrack_UnknownFormat(t *testing.T) {
	cfg := &params.TourConfig{OutlierThreshold: 50}
	path, _, err := buildTrack(context.Background(), cfg, strings.NewReader(ndSamples))
	if err != nil {
		t.Fatal(err)
	}
	if err := writeTrack(&bytes.Buffer{}, "xml", path); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
