package export

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/asanabria-2021067/CRT-Simulation/internal/crt"
)

// Series is one named line of a waveform chart.
type Series struct {
	Name   string
	Values []float64
}

func baseOptions(title, xName, yName string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			BackgroundColor: "#0a0a0a",
			Width:           "100%",
			Height:          "600px",
			PageTitle:       title,
		}),
		charts.WithTitleOpts(opts.Title{
			Title: title,
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(true),
			Type: "scroll",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
		charts.WithToolboxOpts(opts.Toolbox{
			Show: opts.Bool(true),
			Feature: &opts.ToolBoxFeature{
				SaveAsImage: &opts.ToolBoxFeatureSaveAsImage{
					Show:  opts.Bool(true),
					Type:  "png",
					Name:  "crt",
					Title: "Save as image",
				},
				Restore: &opts.ToolBoxFeatureRestore{
					Show:  opts.Bool(true),
					Title: "refresh",
				},
			},
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: xName,
			Type: "value",
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:  yName,
			Type:  "value",
			Show:  opts.Bool(true),
			Scale: opts.Bool(true),
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}),
	}
}

// LissajousChart plots the screen trace as an X-Y scatter in display units.
func LissajousChart(title string, points []crt.Point) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(baseOptions(title, "x (px)", "y (px)")...)

	data := make([]opts.ScatterData, len(points))
	for i, p := range points {
		data[i] = opts.ScatterData{Value: []float64{p.X, p.Y}, SymbolSize: 3}
	}
	scatter.AddSeries("beam", data)
	return scatter
}

// WaveformChart plots each series against times.
func WaveformChart(title string, times []float64, series ...Series) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(append(baseOptions(title, "t (s)", "V"),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			XAxisIndex: []int{0},
		}),
	)...)

	for _, s := range series {
		n := min(len(times), len(s.Values))
		data := make([]opts.LineData, n)
		for i := 0; i < n; i++ {
			data[i] = opts.LineData{Value: []float64{times[i], s.Values[i]}}
		}
		line.AddSeries(s.Name, data)
	}
	return line
}

func LissajousHTML(w io.Writer, title string, points []crt.Point) error {
	if err := LissajousChart(title, points).Render(w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

func WaveformHTML(w io.Writer, title string, times []float64, series ...Series) error {
	if err := WaveformChart(title, times, series...).Render(w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}
