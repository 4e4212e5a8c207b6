package trackd

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/rotblauer/trackd/api"
	"github.com/rotblauer/trackd/geo/track"
	"github.com/rotblauer/trackd/params"
	"github.com/rotblauer/trackd/types"
)

func pingPong(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("pong"))
}

type trackDaemonStatus struct {
	StartedAt time.Time                 `json:"started_at"`
	Uptime    string                    `json:"uptime"`
	Config    *params.TrackDaemonConfig `json:"config"`
	WSOpen    bool                      `json:"ws_open"`
	WSConns   int                       `json:"ws_conns"`
	Tracks    int                       `json:"tracks"`
}

func (s *TrackDaemon) statusReport(w http.ResponseWriter, r *http.Request) {
	names, _ := s.store.ListNames()
	st := trackDaemonStatus{
		StartedAt: s.started,
		Uptime:    time.Since(s.started).Round(time.Second).String(),
		WSOpen:    !s.melodyInstance.IsClosed(),
		WSConns:   s.melodyInstance.Len(),
		Config:    s.Config,
		Tracks:    len(names),
	}
	j, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		s.logger.Error("Failed to marshal status", "error", err)
		http.Error(w, "Failed to marshal status", http.StatusInternalServerError)
		return
	}
	if _, err := w.Write(j); err != nil {
		s.logger.Error("Failed to write response", "error", err)
	}
}

func (s *TrackDaemon) trackIndex(w http.ResponseWriter, r *http.Request) {
	names, err := s.store.ListNames()
	if err != nil {
		s.logger.Error("Failed to list tracks", "error", err)
		http.Error(w, "Failed to list tracks", http.StatusInternalServerError)
		return
	}
	if err := json.NewEncoder(w).Encode(names); err != nil {
		s.logger.Warn("Failed to write response", "error", err)
	}
}

func (s *TrackDaemon) readNamedTrack(w http.ResponseWriter, r *http.Request) *track.Path {
	name := mux.Vars(r)["name"]
	p, err := s.store.ReadPath(name)
	if err != nil {
		s.logger.Error("Failed to read track", "name", name, "error", err)
		http.Error(w, "Failed to read track", http.StatusInternalServerError)
		return nil
	}
	if p == nil {
		w.WriteHeader(http.StatusNoContent)
		_, _ = w.Write([]byte(fmt.Sprintf("no track that: %q", name)))
		return nil
	}
	return p
}

func (s *TrackDaemon) getTrack(w http.ResponseWriter, r *http.Request) {
	p := s.readNamedTrack(w, r)
	if p == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(p); err != nil {
		s.logger.Warn("Failed to write response", "error", err)
	}
}

func (s *TrackDaemon) getTrackGeoJSON(w http.ResponseWriter, r *http.Request) {
	p := s.readNamedTrack(w, r)
	if p == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(p.GeoJSON()); err != nil {
		s.logger.Warn("Failed to write response", "error", err)
	}
}

type reconstructResponse struct {
	Name     string      `json:"name"`
	Excluded int         `json:"excluded"`
	SeamGap  float64     `json:"seam_gap"`
	Path     *track.Path `json:"path"`
}

// handleReconstruct is a handler for the /reconstruct endpoint.
// It is where raw position samples get posted. It supports the sample
// input shapes DecodeSamplesShotgun knows: a flat array of samples or
// an object of per-entity sample arrays.
func (s *TrackDaemon) handleReconstruct(w http.ResponseWriter, r *http.Request) {
	if r.Body == nil {
		s.logger.Error("No request body", "method", r.Method, "url", r.URL)
		http.Error(w, "Please send a request body", 500)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.logger.Error("Failed to read request body", "error", err)
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	s.logger.Debug("Decoding", "bytes", len(body),
		"peek", string(body)[:int(math.Min(80, float64(len(body))))])

	series, err := types.DecodeSamplesShotgun(body)
	if err != nil {
		s.logger.Error("Failed to decode", "error", err)
		http.Error(w, "Failed to decode", http.StatusUnprocessableEntity)
		return
	}

	cfg := &params.TourConfig{
		OutlierThreshold: params.DefaultTourConfig.OutlierThreshold,
		ObserveEvery:     100,
	}
	if v := r.URL.Query().Get("threshold"); v != "" {
		t, err := strconv.ParseFloat(v, 64)
		if err != nil {
			http.Error(w, "Bad threshold", http.StatusBadRequest)
			return
		}
		cfg.OutlierThreshold = t
	}

	path, tour, err := api.Reconstruct(r.Context(), cfg, series)
	if err != nil {
		s.logger.Error("Failed to reconstruct", "error", err)
		http.Error(w, "Failed to reconstruct", http.StatusUnprocessableEntity)
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		name = "track"
	}
	if err := s.store.StorePath(name, path); err != nil {
		s.logger.Error("Failed to store track", "name", name, "error", err)
		http.Error(w, "Failed to store track", http.StatusInternalServerError)
		return
	}

	resp := reconstructResponse{
		Name:     name,
		Excluded: len(tour.Excluded),
		SeamGap:  tour.SeamGap(),
		Path:     path,
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Warn("Failed to write response", "error", err)
	}
}
