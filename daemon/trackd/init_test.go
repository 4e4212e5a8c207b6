package trackd

import (
	"os"

	"github.com/rotblauer/trackd/params"
)

// newTestTrackDaemon creates a new TrackDaemon for testing purposes.
// If datadir is empty, one will be provided for you.
func newTestTrackDaemon(datadir string) (daemon *TrackDaemon, teardown func() error) {
	config := params.DefaultTestTrackDaemonConfig()
	if datadir != "" {
		config.DataDir = datadir
	} else {
		tmpd, err := os.MkdirTemp(os.TempDir(), "trackd-webd-test")
		if err != nil {
			panic(err)
		}
		config.DataDir = tmpd
	}
	daemon, err := NewTrackDaemon(config)
	if err != nil {
		panic(err)
	}
	daemon.initMelody()
	teardown = func() error {
		daemon.Close()
		return os.RemoveAll(config.DataDir)
	}
	return daemon, teardown
}
