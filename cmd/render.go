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
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/rotblauer/trackd/geo/track"
	"github.com/spf13/cobra"
)

var optRenderInput string
var optRenderOutput string

// renderCmd represents the render command
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a built track as an HTML chart",
	Long: `

Reads a track (as written by 'build --format json') and renders it as a
standalone HTML page: the track shape in XY, colored by normalized
distance from the start so the traversal direction is visible.

Examples:

  trackd build --input samples.json | trackd render --output track.html
`,
	Run: func(cmd *cobra.Command, args []string) {
		setDefaultSlog(cmd, args)

		in := os.Stdin
		if optRenderInput != "" && optRenderInput != "-" {
			f, err := os.Open(optRenderInput)
			if err != nil {
				log.Fatalln(err)
			}
			defer f.Close()
			in = f
		}
		p := &track.Path{}
		if err := json.NewDecoder(in).Decode(p); err != nil {
			log.Fatalln(err)
		}
		if p.Len() == 0 {
			log.Fatalln("empty track")
		}

		out := os.Stdout
		if optRenderOutput != "" && optRenderOutput != "-" {
			f, err := os.Create(optRenderOutput)
			if err != nil {
				log.Fatalln(err)
			}
			defer f.Close()
			out = f
		}
		if err := renderTrack(out, p); err != nil {
			log.Fatalln(err)
		}
	},
}

func renderTrack(w io.Writer, p *track.Path) error {
	data := make([]opts.ScatterData, 0, p.Len())
	maxAbs := 0.0
	for i, tp := range p.Points {
		if math.Abs(tp.X) > maxAbs {
			maxAbs = math.Abs(tp.X)
		}
		if math.Abs(tp.Y) > maxAbs {
			maxAbs = math.Abs(tp.Y)
		}
		data = append(data, opts.ScatterData{Value: []interface{}{tp.X, tp.Y, p.Normalized[i]}})
	}

	// Small padding so points at the edges are visible; square axes so the
	// track shape is not distorted.
	pad := maxAbs * 1.05
	if pad == 0 {
		pad = 1.0
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Track Map", Theme: "dark", Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Track Map",
			Subtitle: fmt.Sprintf("points=%d distance=%.1f", p.Len(), p.TotalDistance())}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: -pad, Max: pad, Name: "X", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: -pad, Max: pad, Name: "Y", NameLocation: "middle", NameGap: 30}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        1,
			Dimension:  "2",
			InRange:    &opts.VisualMapInRange{Color: []string{"#440154", "#3e4989", "#26828e", "#35b779", "#b5de2b", "#fde725"}},
		}),
	)

	scatter.AddSeries("track", data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 4}))
	return scatter.Render(w)
}

func init() {
	rootCmd.AddCommand(renderCmd)

	flags := renderCmd.Flags()
	flags.StringVar(&optRenderInput, "input", "-", "Track JSON file, or - for stdin")
	flags.StringVar(&optRenderOutput, "output", "-", "HTML output file, or - for stdout")
}
