package types

import (
	"strings"
	"testing"

	"github.com/rotblauer/trackd/types/possample"
)

var sampleArrayJSON = `[
{"x":0,"y":0,"z":1,"status":"OnTrack","time":"2019-07-28T14:00:00Z"},
{"x":1,"y":0,"z":1,"status":"OnTrack","time":"2019-07-28T14:00:01Z"},
{"x":2,"y":0,"z":1,"status":"OffTrack","time":"2019-07-28T14:00:02Z"}
]`

var sampleSeriesJSON = `{
"44": [{"x":0,"y":0,"z":1,"status":"OnTrack","time":"2019-07-28T14:00:00Z"}],
"77": [{"x":5,"y":5,"z":1,"status":"OnTrack","time":"2019-07-28T14:00:00Z"},
       {"x":6,"y":5,"z":1,"status":"OnTrack","time":"2019-07-28T14:00:01Z"}]
}`

func TestDecodeSamplesShotgun_Array(t *testing.T) {
	series, err := DecodeSamplesShotgun([]byte(sampleArrayJSON))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(series) != 1 {
		t.Fatalf("expected 1 entity, got %d", len(series))
	}
	if len(series[""]) != 3 {
		t.Errorf("expected 3 samples, got %d", len(series[""]))
	}
	if series[""][2].Status != possample.StatusOffTrack {
		t.Errorf("expected third sample OffTrack, got %q", series[""][2].Status)
	}
}

func TestDecodeSamplesShotgun_Series(t *testing.T) {
	series, err := DecodeSamplesShotgun([]byte(sampleSeriesJSON))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(series) != 2 {
		t.Fatalf("expected 2 entities, got %d", len(series))
	}
	if len(series["77"]) != 2 {
		t.Errorf("expected 2 samples for car 77, got %d", len(series["77"]))
	}
}

func TestDecodeSamplesShotgun_Garbage(t *testing.T) {
	if _, err := DecodeSamplesShotgun([]byte(`"not samples"`)); err == nil {
		t.Fatal("expected error, got nil")
	}
	if _, err := DecodeSamplesShotgun([]byte(`{"44": "not an array"}`)); err == nil {
		t.Fatal("expected error, got nil")
	}
	if _, err := DecodeSamplesShotgun([]byte(`[]`)); err == nil {
		t.Fatal("expected error on empty array, got nil")
	}
}

func TestScanNDSamples(t *testing.T) {
	nd := `{"x":0,"y":0,"z":1,"status":"OnTrack","time":"2019-07-28T14:00:00Z"}
{"x":1,"y":0,"z":1,"status":"OnTrack","time":"2019-07-28T14:00:01Z"}`
	got := 0
	err := ScanNDSamples(strings.NewReader(nd), func(ps *possample.PosSample) error {
		got++
		return ps.Validate()
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 2 {
		t.Errorf("expected 2 samples scanned, got %d", got)
	}
}

func TestScanNDSamples_Array(t *testing.T) {
	got := 0
	err := ScanNDSamples(strings.NewReader(sampleArrayJSON), func(ps *possample.PosSample) error {
		got++
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 3 {
		t.Errorf("expected 3 samples scanned, got %d", got)
	}
}
