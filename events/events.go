package events

import (
	"github.com/ethereum/go-ethereum/event"
	"github.com/rotblauer/trackd/geo/tour"
	"github.com/rotblauer/trackd/geo/track"
)

// TrackBuiltFeed is emitted for every track path that is successfully
// reconstructed, whoever asked for it (CLI, daemon, library caller).
var TrackBuiltFeed = event.FeedOf[*track.Path]{}

// TourProgressFeed re-broadcasts the tour builder's progress snapshots.
// It only carries data when a reconstruction was configured with a nonzero
// observation cadence; subscribers must expect long silences.
var TourProgressFeed = event.FeedOf[tour.Progress]{}
