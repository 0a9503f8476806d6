package automation

import (
	"fmt"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/asanabria-2021067/CRT-Simulation/internal/crt"
	"github.com/asanabria-2021067/CRT-Simulation/internal/params"
)

// ToleranceConfig perturbs every tube dimension uniformly by ±Tolerance
// (a fraction) and solves one fixed operating point per trial.
type ToleranceConfig struct {
	Geometry   crt.Geometry
	Tolerance  float64
	Trials     int
	Seed       int64
	Vertical   float64
	Horizontal float64
	Accel      float64
}

type ToleranceResult struct {
	Trial    int
	Geometry crt.Geometry
	Impact   crt.Impact
}

// ToleranceStats summarizes the spread of the landing spot.
type ToleranceStats struct {
	MeanX, StdX float64
	MeanY, StdY float64
}

// RunTolerance executes the trials. A zero Seed draws one from the clock.
func RunTolerance(cfg ToleranceConfig) ([]ToleranceResult, error) {
	if err := params.CheckNonNegative("tolerance", cfg.Tolerance); err != nil {
		return nil, err
	}
	if cfg.Tolerance >= 1 {
		return nil, params.Invalid("tolerance", cfg.Tolerance, "must be below 1")
	}
	if cfg.Trials < 1 {
		return nil, params.Invalid("trials", float64(cfg.Trials), "need at least 1")
	}
	if err := cfg.Geometry.Validate(); err != nil {
		return nil, fmt.Errorf("tube geometry: %w", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	perturb := func(v float64) float64 {
		return v * (1 + (rng.Float64()-0.5)*2*cfg.Tolerance)
	}

	results := make([]ToleranceResult, 0, cfg.Trials)
	for trial := 0; trial < cfg.Trials; trial++ {
		g := crt.Geometry{
			PlateLengthV:   perturb(cfg.Geometry.PlateLengthV),
			PlateLengthH:   perturb(cfg.Geometry.PlateLengthH),
			Separation:     perturb(cfg.Geometry.Separation),
			Gap:            perturb(cfg.Geometry.Gap),
			ScreenDistance: perturb(cfg.Geometry.ScreenDistance),
		}
		solver, err := crt.NewSolver(g, crt.Electron)
		if err != nil {
			return nil, fmt.Errorf("trial %d: %w", trial, err)
		}
		results = append(results, ToleranceResult{
			Trial:    trial,
			Geometry: g,
			Impact:   solver.Impact(cfg.Vertical, cfg.Horizontal, cfg.Accel),
		})
	}
	return results, nil
}

func Stats(results []ToleranceResult) ToleranceStats {
	xs := make([]float64, len(results))
	ys := make([]float64, len(results))
	for i, r := range results {
		xs[i], ys[i] = r.Impact.X, r.Impact.Y
	}
	var s ToleranceStats
	if len(results) == 0 {
		return s
	}
	if len(results) == 1 {
		return ToleranceStats{MeanX: xs[0], MeanY: ys[0]}
	}
	s.MeanX, s.StdX = stat.MeanStdDev(xs, nil)
	s.MeanY, s.StdY = stat.MeanStdDev(ys, nil)
	return s
}
