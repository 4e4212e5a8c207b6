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
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var optVerbosity int

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "trackd",
	Short: "Track map reconstruction from raw position samples",
	Long: `trackd rebuilds the shape of a circuit from the position telemetry
driven over it: unordered, duplicate-heavy (x, y) samples in, an ordered
track line with distance-from-start out.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().IntVarP(&optVerbosity, "verbosity", "v", 0,
		"Logging verbosity (0=info, 1=debug, negative quiets)")
}

func setDefaultSlog(cmd *cobra.Command, args []string) {
	level := slog.LevelInfo
	switch {
	case optVerbosity > 0:
		level = slog.LevelDebug
	case optVerbosity < 0:
		level = slog.LevelWarn
	}
	slog.SetLogLoggerLevel(level)
}
