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
	"bufio"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strconv"

	"github.com/rotblauer/trackd/api"
	"github.com/rotblauer/trackd/common"
	"github.com/rotblauer/trackd/geo/pointset"
	"github.com/rotblauer/trackd/geo/tour"
	"github.com/rotblauer/trackd/geo/track"
	"github.com/rotblauer/trackd/params"
	"github.com/rotblauer/trackd/stream"
	"github.com/rotblauer/trackd/types"
	"github.com/rotblauer/trackd/types/possample"
	"github.com/spf13/cobra"
)

var optBuildInput string
var optBuildOutput string
var optBuildFormat string
var optBuildThreshold float64
var optBuildCalibrate bool
var optBuildObserveEvery int

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a track map from a position sample stream",
	Long: `

Reads position samples from stdin (or --input) and writes the reconstructed
track to stdout (or --output).

Samples are decoded as JSON lines, or as a single JSON array of samples.
Off-track and duplicate samples are dropped on the way in; reconstruction
works on unique on-track points only.

Flags:

  --threshold       Closeness-score ceiling for the greedy walk. A remaining
                    point whose nearest neighbor scores above this is rejected
                    as an outlier. (Default is 200.)
  --calibrate       Measure the feed instead: set the threshold from the median
                    nearest-neighbor spacing of the input. Overrides --threshold.
  --observe-every   Log build progress every N ordered points. Zero disables.
  --format          Output format: json, geojson, or csv.

Examples:

  zcat session.ndjson.gz | trackd build --format csv > track.csv
  trackd build --input samples.json --calibrate --format geojson
`,
	Run: func(cmd *cobra.Command, args []string) {
		setDefaultSlog(cmd, args)

		ctx, ctxCanceler := context.WithCancel(context.Background())
		defer ctxCanceler()
		go func() {
			select {
			case <-common.Interrupted():
				ctxCanceler()
			case <-ctx.Done():
			}
		}()

		in := os.Stdin
		if optBuildInput != "" && optBuildInput != "-" {
			f, err := os.Open(optBuildInput)
			if err != nil {
				log.Fatalln(err)
			}
			defer f.Close()
			in = f
		}

		cfg := &params.TourConfig{
			OutlierThreshold: optBuildThreshold,
			ObserveEvery:     optBuildObserveEvery,
		}

		path, t, err := buildTrack(ctx, cfg, in)
		if err != nil {
			log.Fatalln(err)
		}
		if len(t.Excluded) > 0 {
			slog.Warn("Excluded outliers", "count", len(t.Excluded))
		}

		out := os.Stdout
		if optBuildOutput != "" && optBuildOutput != "-" {
			f, err := os.Create(optBuildOutput)
			if err != nil {
				log.Fatalln(err)
			}
			defer f.Close()
			out = f
		}
		if err := writeTrack(out, optBuildFormat, path); err != nil {
			log.Fatalln(err)
		}
	},
}

// buildTrack decodes, optionally calibrates, and reconstructs.
func buildTrack(ctx context.Context, cfg *params.TourConfig, in io.Reader) (*track.Path, tour.Tour, error) {
	if optBuildCalibrate {
		// Calibration needs the whole set before the walk can start.
		samples := possample.Samples{}
		if err := types.ScanNDSamples(in, func(ps *possample.PosSample) error {
			samples = append(samples, ps)
			return nil
		}); err != nil {
			return nil, tour.Tour{}, err
		}
		set := pointset.FromSamples(samples)
		threshold, err := tour.CalibrateThreshold(set, params.DefaultCalibrationFactor)
		if err != nil {
			return nil, tour.Tour{}, fmt.Errorf("calibrate: %w", err)
		}
		slog.Info("Calibrated threshold", "threshold", threshold)
		cfg.OutlierThreshold = threshold
		return api.Reconstruct(ctx, cfg, possample.Series{"": samples})
	}

	ch, err := sampleStream(ctx, in)
	if err != nil {
		return nil, tour.Tour{}, err
	}
	return api.ReconstructStream(ctx, cfg, ch)
}

// sampleStream turns the input into a sample channel: a single JSON array
// is sliced whole, anything else is treated as newline-delimited samples.
func sampleStream(ctx context.Context, in io.Reader) (<-chan *possample.PosSample, error) {
	buf := bufio.NewReader(in)
	peek, err := buf.Peek(1)
	if err != nil {
		return nil, err
	}
	if peek[0] == '[' {
		samples := possample.Samples{}
		if err := json.NewDecoder(buf).Decode(&samples); err != nil {
			return nil, err
		}
		return stream.Slice(ctx, []*possample.PosSample(samples)), nil
	}
	return stream.Transform(ctx, func(ps possample.PosSample) *possample.PosSample {
		return &ps
	}, stream.NDJSON[possample.PosSample](ctx, buf)), nil
}

func writeTrack(w io.Writer, format string, p *track.Path) error {
	switch format {
	case "json":
		return json.NewEncoder(w).Encode(p)
	case "geojson":
		return json.NewEncoder(w).Encode(p.GeoJSON())
	case "csv":
		cw := csv.NewWriter(w)
		if err := cw.Write([]string{"x", "y", "distance", "normalized"}); err != nil {
			return err
		}
		for i, tp := range p.Points {
			rec := []string{
				strconv.FormatFloat(tp.X, 'g', -1, 64),
				strconv.FormatFloat(tp.Y, 'g', -1, 64),
				strconv.FormatFloat(p.Distances[i], 'g', -1, 64),
				strconv.FormatFloat(p.Normalized[i], 'g', -1, 64),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	default:
		return fmt.Errorf("unknown format: %q", format)
	}
}

func init() {
	rootCmd.AddCommand(buildCmd)

	flags := buildCmd.Flags()
	flags.StringVar(&optBuildInput, "input", "-", "Input file, or - for stdin")
	flags.StringVar(&optBuildOutput, "output", "-", "Output file, or - for stdout")
	flags.StringVar(&optBuildFormat, "format", "json", "Output format: json, geojson, csv")
	flags.Float64Var(&optBuildThreshold, "threshold", params.DefaultTourConfig.OutlierThreshold,
		"Outlier rejection threshold (closeness score)")
	flags.BoolVar(&optBuildCalibrate, "calibrate", false, "Calibrate the threshold from the input")
	flags.IntVar(&optBuildObserveEvery, "observe-every", 0, "Progress report cadence, 0 disables")
}
