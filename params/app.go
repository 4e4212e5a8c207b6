package params

import "time"

var (
	// CacheBuiltTrackTTL bounds the in-memory cache of reconstructed
	// track paths served by the daemon.
	CacheBuiltTrackTTL = 24 * time.Hour
)

var TrackDBName = "trackd.db"
var TrackBucket = []byte("tracks")

var DefaultBatchSize = 10_000
