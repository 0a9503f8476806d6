package sim

import (
	"context"
	"fmt"

	"github.com/asanabria-2021067/CRT-Simulation/internal/crt"
	"github.com/asanabria-2021067/CRT-Simulation/internal/signal"
)

// chunkSize is how many samples run between context checks.
const chunkSize = 4096

// Simulator drives the solver from a Source over a time grid. Not safe for
// concurrent use.
type Simulator struct {
	src       Source
	solver    *crt.Solver
	display   crt.Display
	metrics   []Metric
	observers []Observer
}

func New(src Source, solver *crt.Solver, display crt.Display) *Simulator {
	return &Simulator{
		src:       src,
		solver:    solver,
		display:   display,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Step evaluates a single tick without touching metrics or observers.
func (s *Simulator) Step(t float64) Sample {
	st := s.src.State(t)
	hit := s.solver.Impact(st.Vertical, st.Horizontal, st.Accel)
	return Sample{T: t, Drive: st, Impact: hit, Point: s.display.Project(hit)}
}

// Run samples the drive on the grid described by cfg. On cancellation the
// partial result is returned with ctx.Err().
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	times, err := s.grid(cfg)
	if err != nil {
		return nil, err
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	result := newResult(len(times))
	for start := 0; start < len(times); start += chunkSize {
		select {
		case <-ctx.Done():
			s.collect(result)
			return result, ctx.Err()
		default:
		}

		end := min(start+chunkSize, len(times))
		for _, t := range times[start:end] {
			sample := s.Step(t)
			s.emit(sample)
			result.append(sample)
		}
	}

	s.collect(result)
	return result, nil
}

// RunWithCallback streams samples to fn until it returns false or the grid
// ends. Nothing is accumulated.
func (s *Simulator) RunWithCallback(ctx context.Context, cfg Config, fn func(Sample) bool) error {
	times, err := s.grid(cfg)
	if err != nil {
		return err
	}

	for i, t := range times {
		if i%chunkSize == 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}
		if !fn(s.Step(t)) {
			return nil
		}
	}
	return nil
}

func (s *Simulator) grid(cfg Config) ([]float64, error) {
	times, err := signal.TimeVector(cfg.SampleRate, cfg.Duration, cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("time grid: %w", err)
	}
	return times, nil
}

func (s *Simulator) emit(sample Sample) {
	for _, m := range s.metrics {
		m.Observe(sample)
	}
	for _, obs := range s.observers {
		obs.OnSample(sample)
	}
}

func (s *Simulator) collect(r *Result) {
	for _, m := range s.metrics {
		r.Metrics[m.Name()] = m.Value()
	}
}
