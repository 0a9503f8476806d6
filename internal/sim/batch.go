package sim

import (
	"context"
	"sync"

	"github.com/asanabria-2021067/CRT-Simulation/internal/crt"
)

// Batch runs several sources against one tube concurrently. The solver is
// shared; each run gets its own Simulator and metric set.
type Batch struct {
	solver  *crt.Solver
	display crt.Display
	metrics func() []Metric
}

// NewBatch takes a metric factory so runs never share metric state. It may
// be nil.
func NewBatch(solver *crt.Solver, display crt.Display, metrics func() []Metric) *Batch {
	return &Batch{solver: solver, display: display, metrics: metrics}
}

// Run returns one result per source, in source order. The first error wins.
func (b *Batch) Run(ctx context.Context, sources []Source, cfg Config) ([]*Result, error) {
	results := make([]*Result, len(sources))
	errs := make([]error, len(sources))

	var wg sync.WaitGroup
	for i, src := range sources {
		wg.Add(1)
		go func(idx int, src Source) {
			defer wg.Done()

			s := New(src, b.solver, b.display)
			if b.metrics != nil {
				for _, m := range b.metrics() {
					s.AddMetric(m)
				}
			}
			results[idx], errs[idx] = s.Run(ctx, cfg)
		}(i, src)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
