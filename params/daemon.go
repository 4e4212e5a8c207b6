package params

import "github.com/rotblauer/trackd/app"

type ListenerConfig struct {
	Network string
	Address string
}

type TrackDaemonConfig struct {
	ListenerConfig
	DataDir string
}

func DefaultListenerConfig() ListenerConfig {
	return ListenerConfig{
		Network: "tcp",
		Address: "localhost:3000",
	}
}

func DefaultTrackDaemonConfig() *TrackDaemonConfig {
	return &TrackDaemonConfig{
		ListenerConfig: DefaultListenerConfig(),
		DataDir:        app.DatadirRoot,
	}
}

func DefaultTestTrackDaemonConfig() *TrackDaemonConfig {
	return &TrackDaemonConfig{
		ListenerConfig: ListenerConfig{
			Network: "tcp",
			Address: "localhost:3333",
		},
		DataDir: "",
	}
}
