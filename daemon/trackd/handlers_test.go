package trackd

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/rotblauer/trackd/common"
	"github.com/tidwall/gjson"
)

func TestTrackDaemon_ping(t *testing.T) {
	req := httptest.NewRequest("GET", "http://trackd.local/ping", nil)
	w := httptest.NewRecorder()
	pingPong(w, req)
	resp := w.Result()
	body, _ := io.ReadAll(resp.Body)
	t.Log(resp.StatusCode)
	t.Log(string(body))
	if resp.StatusCode != 200 {
		t.Fatalf("status code not 200")
	}
	if string(body) != "pong" {
		t.Errorf("body is not pong: %s", string(body))
	}
}

func TestTrackDaemon_statusReport(t *testing.T) {
	req := httptest.NewRequest("GET", "http://trackd.local/status", nil)
	w := httptest.NewRecorder()
	d, teardown := newTestTrackDaemon("")
	defer teardown()
	d.statusReport(w, req)
	resp := w.Result()
	t.Log(resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	status := trackDaemonStatus{}
	if err := json.Unmarshal(body, &status); err != nil {
		t.Fatal(err)
	}
	if status.Uptime == "" {
		t.Fatal("uptime is empty")
	}
}

func TestTrackDaemon_getTrack_NoTrackThat(t *testing.T) {
	defer common.SlogResetLevel(slog.Level(slog.LevelWarn + 1))()
	req := httptest.NewRequest("GET", "http://trackd.local/tracks/ghost", nil)
	req = mux.SetURLVars(req, map[string]string{"name": "ghost"}) // hack
	w := httptest.NewRecorder()
	d, teardown := newTestTrackDaemon("")
	defer teardown()
	d.getTrack(w, req)
	resp := w.Result()
	t.Log(resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("status code not 204")
	}
	if !strings.Contains(string(body), "no track that") {
		t.Errorf("body does not contain 'no track that': %s", string(body))
	}
}

// The off-circuit point seeds the walk and is the one exclusion.
const samplesFlat = `[
{"x": 500, "y": 500, "status": "OnTrack"},
{"x": 0, "y": 0, "status": "OnTrack"},
{"x": 1, "y": 0, "status": "OnTrack"},
{"x": 1, "y": 0, "status": "OnTrack"},
{"x": 2, "y": 0, "status": "OnTrack"},
{"x": 3, "y": 0, "status": "OnTrack"}
]`

func TestTrackDaemon_handleReconstruct(t *testing.T) {
	d, teardown := newTestTrackDaemon("")
	defer teardown()

	req := httptest.NewRequest("POST", "http://trackd.local/reconstruct?name=fp1&threshold=50",
		strings.NewReader(samplesFlat))
	w := httptest.NewRecorder()
	d.handleReconstruct(w, req)
	resp := w.Result()
	body, _ := io.ReadAll(resp.Body)
	t.Log(resp.StatusCode)
	t.Log(string(body))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status code not 200")
	}
	if gjson.GetBytes(body, "name").String() != "fp1" {
		t.Errorf("body has wrong name: %s", gjson.GetBytes(body, "name").String())
	}
	if n := gjson.GetBytes(body, "path.points.#").Int(); n != 4 {
		t.Errorf("expected 4 ordered points, got %d", n)
	}
	if n := gjson.GetBytes(body, "excluded").Int(); n != 1 {
		t.Errorf("expected 1 excluded point, got %d", n)
	}

	// The stored track is now fetchable.
	req = httptest.NewRequest("GET", "http://trackd.local/tracks/fp1", nil)
	req = mux.SetURLVars(req, map[string]string{"name": "fp1"})
	w = httptest.NewRecorder()
	d.getTrack(w, req)
	resp = w.Result()
	body, _ = io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status code not 200")
	}
	if n := gjson.GetBytes(body, "distances.#").Int(); n != 4 {
		t.Errorf("expected 4 distances, got %d", n)
	}
}

func TestTrackDaemon_handleReconstruct_BadBody(t *testing.T) {
	defer common.SlogResetLevel(slog.Level(slog.LevelWarn + 1))()
	d, teardown := newTestTrackDaemon("")
	defer teardown()

	req := httptest.NewRequest("POST", "http://trackd.local/reconstruct",
		strings.NewReader("not json at all"))
	w := httptest.NewRecorder()
	d.handleReconstruct(w, req)
	resp := w.Result()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status code not 422, got %d", resp.StatusCode)
	}
}

func TestTrackDaemon_getTrackGeoJSON(t *testing.T) {
	d, teardown := newTestTrackDaemon("")
	defer teardown()

	req := httptest.NewRequest("POST", "http://trackd.local/reconstruct?name=fp1&threshold=50",
		strings.NewReader(samplesFlat))
	w := httptest.NewRecorder()
	d.handleReconstruct(w, req)
	if w.Result().StatusCode != http.StatusOK {
		t.Fatal("reconstruct failed")
	}

	req = httptest.NewRequest("GET", "http://trackd.local/tracks/fp1/geojson", nil)
	req = mux.SetURLVars(req, map[string]string{"name": "fp1"})
	w = httptest.NewRecorder()
	d.getTrackGeoJSON(w, req)
	resp := w.Result()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status code not 200")
	}
	if gjson.GetBytes(body, "geometry.type").String() != "LineString" {
		t.Errorf("geometry is not a LineString: %s", string(body))
	}
	if gjson.GetBytes(body, "properties.PointCount").Int() != 4 {
		t.Errorf("wrong PointCount: %s", gjson.GetBytes(body, "properties.PointCount").String())
	}
}
