package automation

import (
	"context"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/asanabria-2021067/CRT-Simulation/internal/config"
	"github.com/asanabria-2021067/CRT-Simulation/internal/crt"
	"github.com/asanabria-2021067/CRT-Simulation/internal/params"
	"github.com/asanabria-2021067/CRT-Simulation/internal/storage"
)

const scenarioYAML = `name: demo
description: static spot then a circle
steps:
  - name: spot
    accel_voltage: 2000
    vertical_voltage: 100
    duration: 0.1
    sample_rate: 100
  - name: circle
    preset: circle
    duration: 1
    sample_rate: 200
    save: true
`

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatal(err)
	}
	if sc.Name != "demo" || len(sc.Steps) != 2 {
		t.Fatalf("unexpected scenario: %+v", sc)
	}
	if sc.Steps[0].Accel == nil || *sc.Steps[0].Accel != 2000 {
		t.Error("accel not parsed")
	}
	if sc.Steps[1].FreqV != nil {
		t.Error("unset field should stay nil")
	}

	if _, err := LoadScenario(writeScenario(t, "name: empty\n")); err == nil {
		t.Error("expected error for scenario without steps")
	}
}

func TestRunScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatal(err)
	}
	store := storage.New(t.TempDir())

	results, err := RunScenario(context.Background(), sc, config.DefaultConfig(), store, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	spot := results[0].Result
	if spot.Len() != 10 {
		t.Errorf("expected 10 samples, got %d", spot.Len())
	}
	if math.Abs(spot.Impacts[0].Y-0.0190625) > 1e-6 {
		t.Errorf("expected reference deflection, got %v", spot.Impacts[0].Y)
	}
	if results[0].RunID != "" {
		t.Error("unsaved step should have no run id")
	}

	circle := results[1]
	if circle.RunID == "" {
		t.Fatal("saved step should have a run id")
	}
	meta, err := store.Load(circle.RunID)
	if err != nil {
		t.Fatal(err)
	}
	if meta.Preset != "circle" || meta.Mode != "sinusoidal" {
		t.Errorf("unexpected metadata: %+v", meta)
	}
	// The manual vertical voltage carries over but sinusoidal mode ignores it.
	if circle.Result.Metrics["peak_deflection"] <= 0 {
		t.Error("expected metrics on the circle step")
	}
}

func TestRunScenario_InvalidStep(t *testing.T) {
	body := "steps:\n  - accel_voltage: 9000\n"
	sc, err := LoadScenario(writeScenario(t, body))
	if err != nil {
		t.Fatal(err)
	}
	_, err = RunScenario(context.Background(), sc, config.DefaultConfig(), nil, io.Discard)
	if !errors.Is(err, params.ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestRunScenario_SaveWithoutStore(t *testing.T) {
	sc := &Scenario{Steps: []ScenarioStep{{Save: true, Duration: 0.1, SampleRate: 10}}}
	if _, err := RunScenario(context.Background(), sc, config.DefaultConfig(), nil, io.Discard); err == nil {
		t.Error("expected error when saving without a store")
	}
}

func TestRunSweep(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Drive.Vertical = 100
	cfg.Trace.Duration = 0.1
	cfg.Trace.SampleRate = 100

	results, err := RunSweep(context.Background(), AccelSweep{Min: 1000, Max: 4000, Steps: 4}, cfg, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 4 {
		t.Fatalf("expected 4 points, got %d", len(results))
	}

	for i, r := range results {
		want := 1000 + float64(i)*1000
		if r.Accel != want {
			t.Errorf("point %d: accel %v, want %v", i, r.Accel, want)
		}
		// Deflection scales as 1/Va.
		if got := r.SensitivityV * r.Accel; math.Abs(got-results[0].SensitivityV*1000) > 1e-12 {
			t.Errorf("point %d: sensitivity·Va = %v", i, got)
		}
		if math.Abs(r.PeakDeflection-100*r.SensitivityV) > 1e-12 {
			t.Errorf("point %d: peak %v, want %v", i, r.PeakDeflection, 100*r.SensitivityV)
		}
	}
	if results[3].TransitTime >= results[0].TransitTime {
		t.Error("faster beam should reach the screen sooner")
	}

	accel, v, _ := Sensitivities(results)
	if len(accel) != 4 || v[0] != results[0].SensitivityV {
		t.Error("Sensitivities columns out of sync")
	}
}

func TestRunSweep_Invalid(t *testing.T) {
	tests := []AccelSweep{
		{Min: 1000, Max: 2000, Steps: 1},
		{Min: 2000, Max: 1000, Steps: 3},
		{Min: 100, Max: 2000, Steps: 3},
	}
	for _, sw := range tests {
		if _, err := RunSweep(context.Background(), sw, config.DefaultConfig(), io.Discard); !errors.Is(err, params.ErrInvalidParameter) {
			t.Errorf("%+v: expected ErrInvalidParameter, got %v", sw, err)
		}
	}
}

func TestRunTolerance(t *testing.T) {
	cfg := ToleranceConfig{
		Geometry: crt.StandardGeometry(),
		Trials:   200,
		Seed:     7,
		Vertical: 100,
		Accel:    2000,
	}

	exact, err := RunTolerance(cfg)
	if err != nil {
		t.Fatal(err)
	}
	s := Stats(exact)
	if s.StdY > 1e-12 || math.Abs(s.MeanY-0.0190625) > 1e-12 {
		t.Errorf("zero tolerance should reproduce the nominal spot: %+v", s)
	}

	cfg.Tolerance = 0.05
	a, err := RunTolerance(cfg)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := RunTolerance(cfg)
	if a[17].Impact != b[17].Impact {
		t.Error("same seed should reproduce trials")
	}

	s = Stats(a)
	if s.StdY <= 0 {
		t.Error("expected spread with tolerance")
	}
	if math.Abs(s.MeanY-0.0190625) > 0.002 {
		t.Errorf("mean drifted: %v", s.MeanY)
	}
}

func TestRunTolerance_Invalid(t *testing.T) {
	base := ToleranceConfig{Geometry: crt.StandardGeometry(), Trials: 1, Accel: 2000}

	bad := base
	bad.Tolerance = 1.5
	if _, err := RunTolerance(bad); !errors.Is(err, params.ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}

	bad = base
	bad.Trials = 0
	if _, err := RunTolerance(bad); !errors.Is(err, params.ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}
}
