package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/asanabria-2021067/CRT-Simulation/internal/config"
	"github.com/asanabria-2021067/CRT-Simulation/internal/metrics"
	"github.com/asanabria-2021067/CRT-Simulation/internal/sim"
	"github.com/asanabria-2021067/CRT-Simulation/internal/storage"
	"github.com/asanabria-2021067/CRT-Simulation/internal/viz"
)

// loadConfig resolves scene, then config file, then explicitly set flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if scene != "" {
		cfg = config.GetScene(scene)
		if cfg == nil {
			return nil, fmt.Errorf("unknown scene: %s (available: %v)", scene, sceneNames())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("preset") {
		if err := cfg.ApplyPreset(preset); err != nil {
			return nil, err
		}
	}
	if flags.Changed("mode") {
		cfg.Drive.Mode = mode
	}
	for _, o := range []struct {
		flag string
		dst  *float64
		val  float64
	}{
		{"accel", &cfg.Drive.Accel, accel},
		{"vv", &cfg.Drive.Vertical, vertical},
		{"vh", &cfg.Drive.Horizontal, horizontal},
		{"freq-v", &cfg.Drive.FreqV, freqV},
		{"freq-h", &cfg.Drive.FreqH, freqH},
		{"phase-v", &cfg.Drive.PhaseV, phaseV},
		{"phase-h", &cfg.Drive.PhaseH, phaseH},
		{"time", &cfg.Trace.Duration, duration},
		{"rate", &cfg.Trace.SampleRate, sampleRate},
	} {
		if flags.Changed(o.flag) {
			*o.dst = o.val
		}
	}
	if flags.Changed("endpoint") {
		cfg.Trace.Endpoint = endpoint
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func sceneNames() []string {
	names := config.ListScenes()
	sort.Strings(names)
	return names
}

func traceWindow(cfg *config.Config) sim.Config {
	return sim.Config{
		Duration:   cfg.Trace.Duration,
		SampleRate: cfg.Trace.SampleRate,
		Endpoint:   cfg.Trace.Endpoint,
	}
}

func runImpact(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	d, err := cfg.NewDrive()
	if err != nil {
		return err
	}
	solver, err := cfg.NewSolver()
	if err != nil {
		return err
	}

	st := d.State(0)
	hit := solver.Impact(st.Vertical, st.Horizontal, st.Accel)
	pt := cfg.Display.Project(hit)

	fmt.Printf("accel: %.1f V  vertical: %.2f V  horizontal: %.2f V\n", st.Accel, st.Vertical, st.Horizontal)
	fmt.Printf("impact: x=%.6e m  y=%.6e m\n", hit.X, hit.Y)
	fmt.Printf("screen: x=%.2f px  y=%.2f px\n", pt.X, pt.Y)

	if !showStage {
		return nil
	}

	s := solver.Stages(st.Vertical, st.Horizontal, st.Accel)
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STAGE\tQUANTITY\tVERTICAL\tHORIZONTAL")
	fmt.Fprintf(w, "entry\tspeed (m/s)\t%.4e\t%.4e\n", s.Speed, s.Speed)
	fmt.Fprintf(w, "plates\tfield (V/m)\t%.4e\t%.4e\n", s.FieldV, s.FieldH)
	fmt.Fprintf(w, "plates\tsurface charge (C/m²)\t%.4e\t%.4e\n", s.SurfaceChargeV, s.SurfaceChargeH)
	fmt.Fprintf(w, "plates\taccel (m/s²)\t%.4e\t%.4e\n", s.AccelV, s.AccelH)
	fmt.Fprintf(w, "plates\ttime (s)\t%.4e\t%.4e\n", s.TimeV, s.TimeH)
	fmt.Fprintf(w, "plates\texit velocity (m/s)\t%.4e\t%.4e\n", s.VelocityY, s.VelocityX)
	fmt.Fprintf(w, "plates\tdisplacement (m)\t%.4e\t%.4e\n", s.PlateY, s.PlateX)
	fmt.Fprintf(w, "gap\tdisplacement (m)\t%.4e\t-\n", s.GapY)
	fmt.Fprintf(w, "free flight\tdisplacement (m)\t%.4e\t%.4e\n", s.FreeY, s.FreeX)
	fmt.Fprintf(w, "total\ttransit time (s)\t%.4e\t\n", s.TransitTime())
	return w.Flush()
}

func runTrace(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	d, err := cfg.NewDrive()
	if err != nil {
		return err
	}
	solver, err := cfg.NewSolver()
	if err != nil {
		return err
	}

	s := sim.New(d, solver, cfg.Display)
	for _, m := range metrics.Standard() {
		s.AddMetric(m)
	}

	out := progress()
	fmt.Fprintf(out, "tracing %s beam at %.0f V...\n", d.Mode(), cfg.Drive.Accel)
	start := time.Now()

	window := traceWindow(cfg)
	result, err := s.Run(context.Background(), window)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Fprintf(out, "completed in %v\n", elapsed)
	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		info := storage.InfoFor(d, window, cfg.Seed, cfg.Tube, cfg.Display)
		info.Preset = cfg.Drive.Preset
		runID, err := st.Save(info, result)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}
	fmt.Printf("samples: %d\n", result.Len())
	printMetrics(result.Metrics)
	return nil
}

func printMetrics(values map[string]float64) {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println()
	fmt.Println(viz.HeaderStyle.Render("metrics"))
	for _, name := range names {
		fmt.Printf("  %s: %.6g\n", name, values[name])
	}
}
