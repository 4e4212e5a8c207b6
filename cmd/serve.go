/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"log"
	"log/slog"

	"github.com/rotblauer/trackd/app"
	"github.com/rotblauer/trackd/daemon/trackd"
	"github.com/rotblauer/trackd/params"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var optHTTPAddr string
var optDataDir string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the track reconstruction webserver",
	Long:  `Serves track maps on the internet`,
	Run: func(cmd *cobra.Command, args []string) {
		setDefaultSlog(cmd, args)
		slog.Info("serve.Run")
		server, err := trackd.NewTrackDaemon(&params.TrackDaemonConfig{
			DataDir: optDataDir,
			ListenerConfig: params.ListenerConfig{
				Address: optHTTPAddr,
				Network: "tcp",
			},
		})
		if err != nil {
			log.Fatalln(err)
		}

		if err := server.Run(); err != nil {
			log.Fatalln(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	defaults := params.DefaultTrackDaemonConfig()

	pFlags := serveCmd.PersistentFlags()
	pFlags.AddFlagSet(&pflag.FlagSet{})
	pFlags.StringVar(&optHTTPAddr, "address", defaults.Address, "HTTP address to listen on")
	pFlags.StringVar(&optDataDir, "datadir", app.DatadirRoot, "Track database directory")
}
