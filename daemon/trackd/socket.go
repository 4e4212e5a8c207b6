package trackd

import (
	"encoding/json"
	"log"
	"log/slog"

	"github.com/olahol/melody"
	"github.com/rotblauer/trackd/events"
	"github.com/rotblauer/trackd/geo/tour"
	"github.com/rotblauer/trackd/geo/track"
)

type websocketAction string

var websocketActionProgress websocketAction = "progress"
var websocketActionBuilt websocketAction = "built"

type broadcast struct {
	Action    websocketAction `json:"action"`
	Ordered   int             `json:"ordered"`
	Remaining int             `json:"remaining"`
	Excluded  int             `json:"excluded"`
}

type broadcastBuilt struct {
	Action   websocketAction `json:"action"`
	Points   int             `json:"points"`
	Distance float64         `json:"distance"`
}

// initMelody sets up the websocket handler.
func (s *TrackDaemon) initMelody() {
	s.melodyInstance = melody.New()

	s.melodyInstance.HandleConnect(func(sess *melody.Session) {
		log.Println("[websocket] connected", sess.Request.RemoteAddr)
	})

	// Right now don't care about incoming messages from clients. Log and drop.
	s.melodyInstance.HandleMessage(loggingHandler)

	s.melodyInstance.HandleDisconnect(func(sess *melody.Session) {
		log.Println("[websocket] disconnected", sess.Request.RemoteAddr)
	})

	s.melodyInstance.HandleError(func(sess *melody.Session, e error) {
		log.Println("[websocket] error", e, sess.Request.RemoteAddr)
	})

	// Broadcast tour build progress, as reported, to all connected clients.
	// Snapshots are advisory; the finished track is what gets stored.
	// Completed builds go out on the same socket so a watching client can
	// tell progress ticks from the final artifact.
	progress := make(chan tour.Progress)
	progressSub := events.TourProgressFeed.Subscribe(progress)
	built := make(chan *track.Path)
	builtSub := events.TrackBuiltFeed.Subscribe(built)
	go func() {
		for {
			select {
			case p := <-progress:
				bc := broadcast{
					Action:    websocketActionProgress,
					Ordered:   len(p.Ordered),
					Remaining: len(p.Remaining),
					Excluded:  p.Excluded,
				}
				b, err := json.Marshal(bc)
				if err != nil {
					slog.Error("Failed to marshal progress event", "error", err)
					continue
				}
				if err := s.melodyInstance.Broadcast(b); err != nil {
					slog.Warn("Failed to broadcast progress event", "error", err)
				}
			case p := <-built:
				bc := broadcastBuilt{
					Action:   websocketActionBuilt,
					Points:   p.Len(),
					Distance: p.TotalDistance(),
				}
				b, err := json.Marshal(bc)
				if err != nil {
					slog.Error("Failed to marshal built event", "error", err)
					continue
				}
				if err := s.melodyInstance.Broadcast(b); err != nil {
					slog.Warn("Failed to broadcast built event", "error", err)
				}
			case err := <-progressSub.Err():
				slog.Error("Failed to subscribe to TourProgressFeed", "error", err)
				return
			case err := <-builtSub.Err():
				slog.Error("Failed to subscribe to TrackBuiltFeed", "error", err)
				return
			}
		}
	}()
}

// on request
func loggingHandler(s *melody.Session, msg []byte) {
	log.Println("[websocket] message", string(msg))
}
