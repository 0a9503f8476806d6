package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/asanabria-2021067/CRT-Simulation/internal/signal"
)

var (
	dataDir    string
	configFile string
	scene      string
	quiet      bool

	// Drive
	mode       string
	preset     string
	accel      float64
	vertical   float64
	horizontal float64
	freqV      float64
	freqH      float64
	phaseV     float64 // degrees
	phaseH     float64 // degrees

	// Trace window
	duration   float64
	sampleRate float64
	endpoint   bool
	seed       int64
	noSave     bool

	// Output
	outFile    string
	svgOut     string
	htmlOut    string
	showStage  bool
	plotOut    bool
	plotWidth  int
	plotHeight int
	figWidth   int
	figHeight  int
	svgSize    int
	waveform   bool
	themeName  string

	// Signal generator
	sigRate    float64
	sigTime    float64
	figPreset  string
	amplitude  float64
	frequency  float64
	phase      float64 // degrees
	offset     float64
	noiseStd   float64
	components []string

	// Audio
	baseFreq float64
	wavRate  float64
	wavTime  float64
	wavOut   string
	loops    int

	// Sweep and tolerance
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	tolerance  float64
	trials     int

	force bool
)

// progress is where long-running commands report; --quiet discards it.
func progress() io.Writer {
	if quiet {
		return io.Discard
	}
	return os.Stdout
}

func addDriveFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&mode, "mode", "manual", "drive mode (manual, sinusoidal)")
	cmd.Flags().StringVar(&preset, "preset", "", "Lissajous preset or alias (implies sinusoidal)")
	cmd.Flags().Float64Var(&accel, "accel", 2000, "accelerating voltage (V)")
	cmd.Flags().Float64Var(&vertical, "vv", 0, "vertical plate voltage, manual mode (V)")
	cmd.Flags().Float64Var(&horizontal, "vh", 0, "horizontal plate voltage, manual mode (V)")
	cmd.Flags().Float64Var(&freqV, "freq-v", 1, "vertical drive frequency (Hz)")
	cmd.Flags().Float64Var(&freqH, "freq-h", 1, "horizontal drive frequency (Hz)")
	cmd.Flags().Float64Var(&phaseV, "phase-v", 0, "vertical drive phase (deg)")
	cmd.Flags().Float64Var(&phaseH, "phase-h", 0, "horizontal drive phase (deg)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&scene, "scene", "", "start from a named scene")
}

func addWindowFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&duration, "time", 2, "trace duration (s)")
	cmd.Flags().Float64Var(&sampleRate, "rate", 500, "sample rate (Hz)")
	cmd.Flags().BoolVar(&endpoint, "endpoint", false, "include the sample at t = duration")
}

func main() {
	rootCmd := &cobra.Command{
		Use:          "crtsim",
		Short:        "cathode-ray tube beam and Lissajous simulator",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".crtsim", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress progress output")

	impactCmd := &cobra.Command{
		Use:   "impact",
		Short: "solve one beam impact",
		RunE:  runImpact,
	}
	addDriveFlags(impactCmd)
	impactCmd.Flags().BoolVar(&showStage, "stages", false, "print the per-region breakdown")

	traceCmd := &cobra.Command{
		Use:   "trace",
		Short: "trace the beam over time and save the run",
		RunE:  runTrace,
	}
	addDriveFlags(traceCmd)
	addWindowFlags(traceCmd)
	traceCmd.Flags().Int64Var(&seed, "seed", 0, "seed recorded with the run")
	traceCmd.Flags().BoolVar(&noSave, "no-save", false, "print metrics without saving")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot drive voltages and beam deflection",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&plotWidth, "width", 80, "plot width")
	plotCmd.Flags().IntVar(&plotHeight, "height", 12, "plot height")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "spectrum and frequency ratio of a run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  analyzeRun,
	}

	curveCmd := &cobra.Command{
		Use:   "curve [run_id]",
		Short: "draw the screen figure of a run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  curveRun,
	}
	curveCmd.Flags().IntVar(&figWidth, "width", 60, "figure width")
	curveCmd.Flags().IntVar(&figHeight, "height", 30, "figure height")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run samples to CSV",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run samples to JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render the screen figure as SVG",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&svgOut, "out", "o", "trace.svg", "output file")
	exportSVGCmd.Flags().IntVar(&svgSize, "size", 600, "image size (px)")

	exportHTMLCmd := &cobra.Command{
		Use:   "export-html [run_id]",
		Short: "render an interactive chart of a run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportHTML,
	}
	exportHTMLCmd.Flags().StringVarP(&htmlOut, "out", "o", "trace.html", "output file")
	exportHTMLCmd.Flags().BoolVar(&waveform, "waveform", false, "plot drive voltages instead of the screen figure")

	signalCmd := &cobra.Command{
		Use:   "signal",
		Short: "generate sampled signals",
	}
	signalCmd.PersistentFlags().Float64Var(&sigRate, "rate", signal.DefaultSampleRate, "sample rate (Hz)")
	signalCmd.PersistentFlags().Float64Var(&sigTime, "time", signal.DefaultDuration, "duration (s)")
	signalCmd.PersistentFlags().BoolVar(&endpoint, "endpoint", false, "include the sample at t = duration")
	signalCmd.PersistentFlags().BoolVar(&plotOut, "plot", false, "plot instead of printing CSV")
	signalCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")

	sineCmd := &cobra.Command{
		Use:   "sine",
		Short: "single sinusoid",
		RunE:  signalSine,
	}
	sineCmd.Flags().Float64Var(&frequency, "freq", signal.DefaultFrequency, "frequency (Hz)")
	sineCmd.Flags().Float64Var(&amplitude, "amp", signal.DefaultAmplitude, "amplitude")
	sineCmd.Flags().Float64Var(&phase, "phase", 0, "phase (deg)")
	sineCmd.Flags().Float64Var(&offset, "offset", 0, "DC offset")

	compositeCmd := &cobra.Command{
		Use:   "composite",
		Short: "sum of sinusoids plus optional Gaussian noise",
		RunE:  signalComposite,
	}
	compositeCmd.Flags().StringArrayVarP(&components, "component", "c", nil, "freq,amp[,phase_deg[,offset]] (repeatable)")
	compositeCmd.Flags().Float64Var(&noiseStd, "noise", 0, "noise standard deviation")
	compositeCmd.Flags().Int64Var(&seed, "seed", 0, "noise seed (0 uses the clock)")

	lissajousCmd := &cobra.Command{
		Use:   "lissajous",
		Short: "X-Y sinusoid pair",
		RunE:  signalLissajous,
	}
	lissajousCmd.Flags().StringVar(&figPreset, "preset", "circle", "preset or alias; frequency and phase flags override it")
	lissajousCmd.Flags().Float64Var(&amplitude, "amp", signal.DefaultAmplitude, "amplitude of both axes")
	lissajousCmd.Flags().Float64Var(&frequency, "freq", signal.DefaultFrequency, "frequency of ratio 1 (Hz)")
	lissajousCmd.Flags().Float64Var(&freqV, "freq-v", 1, "vertical (Y) frequency (Hz)")
	lissajousCmd.Flags().Float64Var(&freqH, "freq-h", 1, "horizontal (X) frequency (Hz)")
	lissajousCmd.Flags().Float64Var(&phaseV, "phase-v", 0, "vertical (Y) phase (deg)")
	lissajousCmd.Flags().Float64Var(&phaseH, "phase-h", 0, "horizontal (X) phase (deg)")
	lissajousCmd.Flags().IntVar(&figWidth, "width", 60, "figure width")
	lissajousCmd.Flags().IntVar(&figHeight, "height", 30, "figure height")
	signalCmd.AddCommand(sineCmd, compositeCmd, lissajousCmd)

	wavCmd := &cobra.Command{
		Use:   "wav",
		Short: "write a Lissajous preset as XY-oscilloscope audio",
		RunE:  writeWAV,
	}
	wavCmd.Flags().StringVar(&figPreset, "preset", "circle", "preset or alias")
	wavCmd.Flags().Float64Var(&baseFreq, "base", 220, "frequency of ratio 1 (Hz)")
	wavCmd.Flags().Float64Var(&wavRate, "rate", 44100, "sample rate (Hz)")
	wavCmd.Flags().Float64Var(&wavTime, "time", 0.1, "length of one loop (s)")
	wavCmd.Flags().IntVar(&loops, "loops", 20, "number of loops")
	wavCmd.Flags().StringVarP(&wavOut, "out", "o", "lissajous.wav", "output file")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list Lissajous presets, aliases and scenes",
		RunE:  listPresets,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep the accelerating voltage",
		RunE:  runSweep,
	}
	addDriveFlags(sweepCmd)
	addWindowFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 500, "lowest accelerating voltage (V)")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 5000, "highest accelerating voltage (V)")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 10, "number of sweep points")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	scenarioCmd.Flags().StringVar(&configFile, "config", "", "base config file path (yaml)")
	scenarioCmd.Flags().StringVar(&scene, "scene", "", "start from a named scene")

	toleranceCmd := &cobra.Command{
		Use:   "tolerance",
		Short: "spot spread under random tube dimension errors",
		RunE:  runTolerance,
	}
	addDriveFlags(toleranceCmd)
	toleranceCmd.Flags().Float64Var(&tolerance, "tol", 0.02, "relative dimension tolerance")
	toleranceCmd.Flags().IntVar(&trials, "trials", 1000, "number of trials")
	toleranceCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 uses the clock)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive CRT screen",
		RunE:  runLive,
	}
	addDriveFlags(liveCmd)
	liveCmd.Flags().StringVar(&themeName, "theme", "p31", "phosphor theme")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage config files",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a default config file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	configInitCmd.Flags().StringVar(&scene, "scene", "", "write a named scene instead of the defaults")
	configInitCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(impactCmd, traceCmd, listCmd, plotCmd, analyzeCmd, curveCmd,
		exportCSVCmd, exportJSONCmd, exportSVGCmd, exportHTMLCmd,
		signalCmd, wavCmd, presetsCmd, sweepCmd, scenarioCmd, toleranceCmd, liveCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
