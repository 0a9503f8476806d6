package automation

import (
	"context"
	"fmt"
	"io"

	"gonum.org/v1/gonum/floats"

	"github.com/asanabria-2021067/CRT-Simulation/internal/config"
	"github.com/asanabria-2021067/CRT-Simulation/internal/drive"
	"github.com/asanabria-2021067/CRT-Simulation/internal/metrics"
	"github.com/asanabria-2021067/CRT-Simulation/internal/params"
	"github.com/asanabria-2021067/CRT-Simulation/internal/sim"
)

// AccelSweep steps the accelerating voltage across [Min, Max] and traces the
// configured drive at each value.
type AccelSweep struct {
	Min, Max float64
	Steps    int
}

// SweepResult holds one point of a sweep.
type SweepResult struct {
	Accel          float64
	SensitivityV   float64 // m/V
	SensitivityH   float64 // m/V
	TransitTime    float64 // s
	PeakDeflection float64 // m
	RMSRadius      float64 // m
	OnScreen       float64
}

func (sw AccelSweep) validate() error {
	if sw.Steps < 2 {
		return params.Invalid("steps", float64(sw.Steps), "need at least 2")
	}
	r := params.MustRange(params.AccelVoltage)
	if err := r.Check(sw.Min); err != nil {
		return err
	}
	if err := r.Check(sw.Max); err != nil {
		return err
	}
	if sw.Max <= sw.Min {
		return params.Invalid("accel_max", sw.Max, fmt.Sprintf("not above accel_min %g", sw.Min))
	}
	return nil
}

// Values returns the evenly spaced sweep points.
func (sw AccelSweep) Values() []float64 {
	return floats.Span(make([]float64, sw.Steps), sw.Min, sw.Max)
}

// RunSweep traces every sweep point concurrently and reports in sweep order.
func RunSweep(ctx context.Context, sweep AccelSweep, cfg *config.Config, progress io.Writer) ([]SweepResult, error) {
	if err := sweep.validate(); err != nil {
		return nil, err
	}
	solver, err := cfg.NewSolver()
	if err != nil {
		return nil, err
	}
	mode, err := cfg.DriveMode()
	if err != nil {
		return nil, err
	}

	values := sweep.Values()
	sources := make([]sim.Source, len(values))
	for i, va := range values {
		p := cfg.DriveParams()
		p.Accel = va
		d, err := drive.New(p, drive.WithMode(mode))
		if err != nil {
			return nil, err
		}
		sources[i] = d
	}

	batch := sim.NewBatch(solver, cfg.Display, metrics.Standard)
	window := sim.Config{Duration: cfg.Trace.Duration, SampleRate: cfg.Trace.SampleRate, Endpoint: cfg.Trace.Endpoint}
	runs, err := batch.Run(ctx, sources, window)
	if err != nil {
		return nil, err
	}

	results := make([]SweepResult, len(values))
	for i, va := range values {
		sv, sh := solver.Sensitivity(va)
		m := runs[i].Metrics
		results[i] = SweepResult{
			Accel:          va,
			SensitivityV:   sv,
			SensitivityH:   sh,
			TransitTime:    solver.Stages(0, 0, va).TransitTime(),
			PeakDeflection: m["peak_deflection"],
			RMSRadius:      m["rms_radius"],
			OnScreen:       m["on_screen"],
		}
		fmt.Fprintf(progress, "Sweep %d/%d: accel=%.0f V\n", i+1, len(values), va)
	}
	return results, nil
}

// Sensitivities splits the results into plottable columns.
func Sensitivities(results []SweepResult) (accel, vertical, horizontal []float64) {
	accel = make([]float64, len(results))
	vertical = make([]float64, len(results))
	horizontal = make([]float64, len(results))
	for i, r := range results {
		accel[i], vertical[i], horizontal[i] = r.Accel, r.SensitivityV, r.SensitivityH
	}
	return accel, vertical, horizontal
}
