package api

import (
	"context"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/rotblauer/trackd/events"
	"github.com/rotblauer/trackd/geo/pointset"
	"github.com/rotblauer/trackd/geo/tour"
	"github.com/rotblauer/trackd/geo/track"
	"github.com/rotblauer/trackd/params"
	"github.com/rotblauer/trackd/stream"
	"github.com/rotblauer/trackd/types/possample"
)

// Reconstruct runs the whole chain: samples to point set to tour to path.
// It is a pure function of its inputs; nothing is cached or shared between
// calls, and batch callers may run it concurrently, one call per session.
// Progress snapshots (when cfg enables them) and the finished path are
// re-broadcast on the events feeds.
//
// Empty input yields an empty path and an empty tour, not an error.
func Reconstruct(ctx context.Context, cfg *params.TourConfig, series possample.Series) (*track.Path, tour.Tour, error) {
	if cfg == nil {
		cfg = params.DefaultTourConfig
	}

	set := pointset.FromSeries(series)
	slog.Info("Reconstructing track", "entities", len(series),
		"unique points", humanize.Comma(int64(len(set))),
		"threshold", cfg.OutlierThreshold)

	builder := tour.NewBuilder(cfg).OnProgress(func(p tour.Progress) {
		events.TourProgressFeed.Send(p)
	})
	t := builder.Build(set)

	path, err := track.NewPath(t.Ordered)
	if err != nil {
		return nil, t, err
	}

	slog.Info("Reconstructed track", "points", path.Len(),
		"excluded", len(t.Excluded),
		"distance", humanize.CommafWithDigits(path.TotalDistance(), 1),
		"seam gap", t.SeamGap())

	events.TrackBuiltFeed.Send(path)
	return path, t, nil
}

// ReconstructStream consumes a single sample stream (one anonymous entity),
// filtering and thinning it on the way through; this is the daemon and CLI
// ingest path.
func ReconstructStream(ctx context.Context, cfg *params.TourConfig, in <-chan *possample.PosSample) (*track.Path, tour.Tour, error) {
	onTrack := pointset.FilterOnTrack(ctx, in)
	thinned := stream.Filter(ctx, pointset.NewDedupeLRUFunc(), onTrack)
	samples := stream.Collect(ctx, thinned)
	return Reconstruct(ctx, cfg, possample.Series{"": samples})
}
