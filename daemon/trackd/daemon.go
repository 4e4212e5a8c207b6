package trackd

import (
	"log"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/olahol/melody"
	"github.com/rotblauer/trackd/params"
	"github.com/rotblauer/trackd/state"
)

// TrackDaemon serves track reconstruction over HTTP. Clients post raw
// position samples and get back (and can later re-fetch) ordered paths.
// Tour progress is broadcast to websocket subscribers as builds run.
type TrackDaemon struct {
	Config         *params.TrackDaemonConfig
	logger         *slog.Logger
	melodyInstance *melody.Melody
	store          *state.Store
	started        time.Time
}

func NewTrackDaemon(config *params.TrackDaemonConfig) (*TrackDaemon, error) {
	if config == nil {
		config = params.DefaultTrackDaemonConfig()
	}
	store, err := state.NewStore(config.DataDir, false)
	if err != nil {
		return nil, err
	}
	return &TrackDaemon{
		Config:  config,
		logger:  slog.With("d", "web"),
		store:   store,
		started: time.Now(),
	}, nil
}

// Run starts the HTTP server (ListenAndServe) and waits for it,
// returning any server error.
func (s *TrackDaemon) Run() error {
	router := s.NewRouter()
	http.Handle("/", router)
	log.Printf("Starting track daemon on %s", s.Config.Address)
	return http.ListenAndServe(s.Config.Address, nil)
}

func (s *TrackDaemon) Close() error {
	s.store.Wait()
	return s.store.Close()
}

func (s *TrackDaemon) NewRouter() *mux.Router {

	// Handle websocket.
	s.initMelody()
	http.HandleFunc("/progress", func(w http.ResponseWriter, r *http.Request) {
		_ = s.melodyInstance.HandleRequest(w, r)
	})

	router := mux.NewRouter().StrictSlash(false)
	router.Use(loggingMiddleware)

	apiRoutes := router.NewRoute().Subrouter()

	// All API routes use permissive CORS settings.
	apiRoutes.Use(permissiveCorsMiddleware)

	// /ping is a simple server healthcheck endpoint
	apiRoutes.Path("/ping").HandlerFunc(pingPong)

	apiJSONRoutes := apiRoutes.NewRoute().Subrouter()
	jsonMiddleware := contentTypeMiddlewareFunc("application/json")
	apiJSONRoutes.Use(jsonMiddleware)

	apiJSONRoutes.Path("/status").HandlerFunc(s.statusReport).Methods(http.MethodGet)
	apiJSONRoutes.Path("/tracks").HandlerFunc(s.trackIndex).Methods(http.MethodGet)
	apiJSONRoutes.Path("/tracks/{name}").HandlerFunc(s.getTrack).Methods(http.MethodGet)
	apiJSONRoutes.Path("/tracks/{name}/geojson").HandlerFunc(s.getTrackGeoJSON).Methods(http.MethodGet)

	authenticatedAPIRoutes := apiJSONRoutes.NewRoute().Subrouter()
	authenticatedAPIRoutes.Use(tokenAuthenticationMiddleware)

	authenticatedAPIRoutes.Path("/reconstruct/").HandlerFunc(s.handleReconstruct).Methods(http.MethodPost)
	authenticatedAPIRoutes.Path("/reconstruct").HandlerFunc(s.handleReconstruct).Methods(http.MethodPost)

	return router
}
