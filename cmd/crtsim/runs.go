package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/asanabria-2021067/CRT-Simulation/internal/analysis"
	"github.com/asanabria-2021067/CRT-Simulation/internal/export"
	"github.com/asanabria-2021067/CRT-Simulation/internal/sim"
	"github.com/asanabria-2021067/CRT-Simulation/internal/storage"
	"github.com/asanabria-2021067/CRT-Simulation/internal/viz"
)

// loadRun resolves the optional run argument ("latest" when absent).
func loadRun(args []string) (*storage.RunMetadata, *sim.Result, error) {
	st := storage.New(dataDir)
	runID := ""
	if len(args) > 0 {
		runID = args[0]
	}
	runID, err := st.Resolve(runID)
	if err != nil {
		return nil, nil, err
	}
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	result, err := st.LoadResult(runID)
	if err != nil {
		return nil, nil, err
	}
	if result.Len() == 0 {
		return nil, nil, fmt.Errorf("run %s has no samples", runID)
	}
	return meta, result, nil
}

func runWindow(meta *storage.RunMetadata) sim.Config {
	return sim.Config{Duration: meta.Duration, SampleRate: meta.SampleRate}
}

func runLabel(meta *storage.RunMetadata) string {
	if meta.Preset != "" {
		return meta.Preset
	}
	return meta.Mode
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODE\tPRESET\tACCEL\tTIME\tDURATION\tRATE\tSAMPLES")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.0fV\t%s\t%.2fs\t%.0fHz\t%d\n",
			run.ID,
			run.Mode,
			run.Preset,
			run.Accel,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.SampleRate,
			run.Samples,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, result, err := loadRun(args)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("mode: %s\n", runLabel(meta))
	fmt.Printf("samples: %d\n\n", result.Len())

	fmt.Println(asciigraph.PlotMany([][]float64{result.Vertical, result.Horizontal},
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.SeriesColors(asciigraph.Green, asciigraph.Yellow),
		asciigraph.SeriesLegends("vertical", "horizontal"),
		asciigraph.Caption("plate voltages (V)"),
	))
	fmt.Println()

	x := make([]float64, result.Len())
	y := make([]float64, result.Len())
	for i, p := range result.Points {
		x[i], y[i] = p.X, p.Y
	}
	fmt.Println(asciigraph.PlotMany([][]float64{y, x},
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.SeriesColors(asciigraph.Green, asciigraph.Yellow),
		asciigraph.SeriesLegends("y", "x"),
		asciigraph.Caption("beam deflection (px)"),
	))
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, result, err := loadRun(args)
	if err != nil {
		return err
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("mode: %s\n\n", runLabel(meta))

	x, y := result.XY()
	fs := meta.SampleRate

	spec := analysis.PowerSpectrum(y, fs)
	if len(spec.Power) > 2 {
		plotData := spec.Power[:max(len(spec.Power)/4, 2)]
		fmt.Println(asciigraph.Plot(plotData,
			asciigraph.Height(15),
			asciigraph.Width(80),
			asciigraph.Caption("power spectrum (vertical deflection)"),
		))
		fmt.Println()
	}

	for _, axis := range []struct {
		name string
		data []float64
	}{
		{"horizontal", x},
		{"vertical", y},
	} {
		f, err := analysis.DominantFrequency(axis.data, fs)
		if err != nil {
			fmt.Printf("%s: %v\n", axis.name, err)
			continue
		}
		fmt.Printf("%s dominant frequency: %.3f hz\n", axis.name, f)
		if est, err := analysis.EstimateFrequency(result.Times, axis.data); err == nil {
			fmt.Printf("%s crossing estimate: %.3f hz\n", axis.name, est)
		}
	}

	if p, q, ok := analysis.EstimateRatio(result.Times, x, y, 8); ok {
		fmt.Printf("\nfrequency ratio (x:y): %d:%d\n", p, q)
	} else {
		fmt.Println("\nfrequency ratio: not resolved")
	}
	return nil
}

func curveRun(cmd *cobra.Command, args []string) error {
	meta, result, err := loadRun(args)
	if err != nil {
		return err
	}

	x, y := result.XY()
	fmt.Println(viz.HeaderStyle.Render(fmt.Sprintf("%s (%s)", meta.ID, runLabel(meta))))
	fmt.Println(analysis.CurveToASCII(analysis.CurvePoints(x, y), figWidth, figHeight))
	return nil
}

// output opens path, or stdout when path is empty.
func output(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func exportCSV(cmd *cobra.Command, args []string) error {
	_, result, err := loadRun(args)
	if err != nil {
		return err
	}
	w, err := output(outFile)
	if err != nil {
		return err
	}
	defer w.Close()
	return export.WriteCSV(w, result)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, result, err := loadRun(args)
	if err != nil {
		return err
	}
	w, err := output(outFile)
	if err != nil {
		return err
	}
	defer w.Close()
	return export.WriteJSON(w, meta.ID, runWindow(meta), result)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	_, result, err := loadRun(args)
	if err != nil {
		return err
	}
	svg := export.ScreenToSVG(result.Points, svgSize, viz.DefaultHalfWidth, export.PhosphorGreen)
	if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Fprintf(progress(), "wrote %s\n", svgOut)
	return nil
}

func exportHTML(cmd *cobra.Command, args []string) error {
	meta, result, err := loadRun(args)
	if err != nil {
		return err
	}
	f, err := os.Create(htmlOut)
	if err != nil {
		return err
	}
	defer f.Close()

	title := fmt.Sprintf("%s (%s)", meta.ID, runLabel(meta))
	if waveform {
		err = export.WaveformHTML(f, title, result.Times,
			export.Series{Name: "vertical", Values: result.Vertical},
			export.Series{Name: "horizontal", Values: result.Horizontal},
		)
	} else {
		err = export.LissajousHTML(f, title, result.Points)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(progress(), "wrote %s\n", htmlOut)
	return nil
}
