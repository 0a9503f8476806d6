package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/asanabria-2021067/CRT-Simulation/internal/automation"
	"github.com/asanabria-2021067/CRT-Simulation/internal/config"
	"github.com/asanabria-2021067/CRT-Simulation/internal/drive"
	"github.com/asanabria-2021067/CRT-Simulation/internal/sim"
	"github.com/asanabria-2021067/CRT-Simulation/internal/storage"
	"github.com/asanabria-2021067/CRT-Simulation/internal/viz"
)

func listPresets(cmd *cobra.Command, args []string) error {
	fmt.Println(viz.HeaderStyle.Render("lissajous presets"))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tFREQ V\tFREQ H\tPHASE V\tPHASE H")
	for _, name := range drive.PresetNames() {
		p := drive.Presets[name]
		fmt.Fprintf(w, "%s\t%g Hz\t%g Hz\t%g°\t%g°\n", name, p.FreqV, p.FreqH, p.PhaseV, p.PhaseH)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	aliases := drive.PresetAliases()
	names := make([]string, 0, len(aliases))
	for name := range aliases {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println()
	fmt.Println(viz.HeaderStyle.Render("aliases"))
	for _, name := range names {
		fmt.Printf("  %-14s %s\n", name, aliases[name])
	}

	fmt.Println()
	fmt.Println(viz.HeaderStyle.Render("scenes"))
	for _, name := range sceneNames() {
		fmt.Printf("  %s\n", name)
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	sweep := automation.AccelSweep{Min: sweepMin, Max: sweepMax, Steps: sweepSteps}
	results, err := automation.RunSweep(context.Background(), sweep, cfg, progress())
	if err != nil {
		return err
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ACCEL\tSENS V (mm/V)\tSENS H (mm/V)\tTRANSIT\tPEAK (mm)\tRMS (mm)\tON SCREEN")
	for _, r := range results {
		fmt.Fprintf(w, "%.0fV\t%.4f\t%.4f\t%.3gs\t%.3f\t%.3f\t%.0f%%\n",
			r.Accel,
			r.SensitivityV*1e3,
			r.SensitivityH*1e3,
			r.TransitTime,
			r.PeakDeflection*1e3,
			r.RMSRadius*1e3,
			r.OnScreen*100,
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	_, sv, sh := automation.Sensitivities(results)
	fmt.Println()
	fmt.Println(asciigraph.PlotMany([][]float64{scale(sv, 1e3), scale(sh, 1e3)},
		asciigraph.Height(10),
		asciigraph.Width(60),
		asciigraph.SeriesColors(asciigraph.Green, asciigraph.Yellow),
		asciigraph.SeriesLegends("vertical", "horizontal"),
		asciigraph.Caption(fmt.Sprintf("sensitivity (mm/V), %.0f to %.0f V", sweepMin, sweepMax)),
	))
	return nil
}

func scale(v []float64, k float64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = x * k
	}
	return out
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	base, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	if sc.Name != "" {
		fmt.Fprintln(progress(), viz.HeaderStyle.Render(sc.Name))
	}
	results, err := automation.RunScenario(context.Background(), sc, base, st, progress())
	if err != nil {
		return err
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tRUN\tSAMPLES\tPEAK (mm)\tPATH (mm)")
	for _, r := range results {
		runID := r.RunID
		if runID == "" {
			runID = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%.3f\t%.1f\n",
			r.Name,
			runID,
			r.Result.Len(),
			r.Result.Metrics["peak_deflection"]*1e3,
			r.Result.Metrics["path_length"]*1e3,
		)
	}
	return w.Flush()
}

func runTolerance(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	tc := automation.ToleranceConfig{
		Geometry:   cfg.Tube,
		Tolerance:  tolerance,
		Trials:     trials,
		Seed:       seed,
		Vertical:   cfg.Drive.Vertical,
		Horizontal: cfg.Drive.Horizontal,
		Accel:      cfg.Drive.Accel,
	}
	fmt.Fprintf(progress(), "running %d trials at ±%.1f%%...\n", trials, tolerance*100)
	results, err := automation.RunTolerance(tc)
	if err != nil {
		return err
	}

	s := automation.Stats(results)
	fmt.Printf("operating point: %.0f V accel, %.1f V vertical, %.1f V horizontal\n",
		tc.Accel, tc.Vertical, tc.Horizontal)
	fmt.Printf("x: mean %.4f mm  std %.4f mm\n", s.MeanX*1e3, s.StdX*1e3)
	fmt.Printf("y: mean %.4f mm  std %.4f mm\n", s.MeanY*1e3, s.StdY*1e3)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
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

	m := viz.NewModel(d, sim.New(d, solver, cfg.Display), viz.Options{
		Persistence: cfg.Screen.Persistence,
		Brightness:  cfg.Screen.Brightness,
		Theme:       themeName,
	})
	return viz.Run(m)
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := "crtsim.yaml"
	if len(args) > 0 {
		path = args[0]
	}

	cfg := config.DefaultConfig()
	if scene != "" {
		cfg = config.GetScene(scene)
		if cfg == nil {
			return fmt.Errorf("unknown scene: %s (available: %v)", scene, sceneNames())
		}
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Fprintf(progress(), "wrote %s\n", path)
	return nil
}
