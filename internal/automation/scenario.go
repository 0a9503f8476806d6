package automation

import (
	"context"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/asanabria-2021067/CRT-Simulation/internal/config"
	"github.com/asanabria-2021067/CRT-Simulation/internal/metrics"
	"github.com/asanabria-2021067/CRT-Simulation/internal/sim"
	"github.com/asanabria-2021067/CRT-Simulation/internal/storage"
)

// Scenario is a scripted sequence of traces on one tube.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep overlays the base configuration. Unset fields keep the value
// of the previous step; phases are degrees.
type ScenarioStep struct {
	Name       string   `yaml:"name"`
	Preset     string   `yaml:"preset"`
	Mode       string   `yaml:"mode"`
	Accel      *float64 `yaml:"accel_voltage"`
	Vertical   *float64 `yaml:"vertical_voltage"`
	Horizontal *float64 `yaml:"horizontal_voltage"`
	FreqV      *float64 `yaml:"freq_v"`
	FreqH      *float64 `yaml:"freq_h"`
	PhaseV     *float64 `yaml:"phase_v"`
	PhaseH     *float64 `yaml:"phase_h"`
	Duration   float64  `yaml:"duration"`
	SampleRate float64  `yaml:"sample_rate"`
	Save       bool     `yaml:"save"`
}

// StepResult is the outcome of one scenario step. RunID is empty unless the
// step was saved.
type StepResult struct {
	Name   string
	RunID  string
	Result *sim.Result
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %s has no steps", path)
	}
	return &scenario, nil
}

func (st ScenarioStep) apply(cfg *config.Config) error {
	if st.Preset != "" {
		if err := cfg.ApplyPreset(st.Preset); err != nil {
			return err
		}
	}
	if st.Mode != "" {
		cfg.Drive.Mode = st.Mode
	}
	for _, f := range []struct {
		src *float64
		dst *float64
	}{
		{st.Accel, &cfg.Drive.Accel},
		{st.Vertical, &cfg.Drive.Vertical},
		{st.Horizontal, &cfg.Drive.Horizontal},
		{st.FreqV, &cfg.Drive.FreqV},
		{st.FreqH, &cfg.Drive.FreqH},
		{st.PhaseV, &cfg.Drive.PhaseV},
		{st.PhaseH, &cfg.Drive.PhaseH},
	} {
		if f.src != nil {
			*f.dst = *f.src
		}
	}
	if st.Duration > 0 {
		cfg.Trace.Duration = st.Duration
	}
	if st.SampleRate > 0 {
		cfg.Trace.SampleRate = st.SampleRate
	}
	return cfg.Validate()
}

// RunScenario executes the steps in order on a copy of base. Progress lines go
// to progress; saved steps go to store, which may be nil when no step saves.
// Results of completed steps are returned alongside any error.
func RunScenario(ctx context.Context, scenario *Scenario, base *config.Config, store *storage.Store, progress io.Writer) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))
	cfg := *base

	for i, step := range scenario.Steps {
		name := step.Name
		if name == "" {
			name = fmt.Sprintf("step-%d", i+1)
		}
		fmt.Fprintf(progress, "Running step %d/%d: %s\n", i+1, len(scenario.Steps), name)

		if err := step.apply(&cfg); err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		d, err := cfg.NewDrive()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		solver, err := cfg.NewSolver()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		s := sim.New(d, solver, cfg.Display)
		for _, m := range metrics.Standard() {
			s.AddMetric(m)
		}
		window := sim.Config{
			Duration:   cfg.Trace.Duration,
			SampleRate: cfg.Trace.SampleRate,
			Endpoint:   cfg.Trace.Endpoint,
		}
		result, err := s.Run(ctx, window)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		sr := StepResult{Name: name, Result: result}
		if step.Save {
			if store == nil {
				return results, fmt.Errorf("step %d: save requested without a store", i+1)
			}
			info := storage.InfoFor(d, window, cfg.Seed, cfg.Tube, cfg.Display)
			info.Preset = cfg.Drive.Preset
			if sr.RunID, err = store.Save(info, result); err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}
		results = append(results, sr)
	}

	return results, nil
}
