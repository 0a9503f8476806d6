package metrics

import (
	"math"

	"github.com/asanabria-2021067/CRT-Simulation/internal/sim"
)

// PeakDeflection is the largest spot radius seen, metres.
type PeakDeflection struct {
	name string
	peak float64
}

func NewPeakDeflection() *PeakDeflection {
	return &PeakDeflection{name: "peak_deflection"}
}

func (p *PeakDeflection) Name() string { return p.name }

func (p *PeakDeflection) Observe(s sim.Sample) {
	p.peak = math.Max(p.peak, s.Impact.Radius())
}

func (p *PeakDeflection) Value() float64 { return p.peak }
func (p *PeakDeflection) Reset()         { p.peak = 0 }

// RMSRadius is the root-mean-square spot radius, metres.
type RMSRadius struct {
	name    string
	sumSq   float64
	samples int
}

func NewRMSRadius() *RMSRadius {
	return &RMSRadius{name: "rms_radius"}
}

func (r *RMSRadius) Name() string { return r.name }

func (r *RMSRadius) Observe(s sim.Sample) {
	x, y := s.Impact.X, s.Impact.Y
	r.sumSq += x*x + y*y
	r.samples++
}

func (r *RMSRadius) Value() float64 {
	if r.samples == 0 {
		return 0
	}
	return math.Sqrt(r.sumSq / float64(r.samples))
}

func (r *RMSRadius) Reset() {
	r.sumSq = 0
	r.samples = 0
}

// PathLength is the distance the spot travels across the screen, metres.
type PathLength struct {
	name   string
	length float64
	last   sim.Sample
	seen   bool
}

func NewPathLength() *PathLength {
	return &PathLength{name: "path_length"}
}

func (p *PathLength) Name() string { return p.name }

func (p *PathLength) Observe(s sim.Sample) {
	if p.seen {
		p.length += math.Hypot(s.Impact.X-p.last.Impact.X, s.Impact.Y-p.last.Impact.Y)
	}
	p.last = s
	p.seen = true
}

func (p *PathLength) Value() float64 { return p.length }

func (p *PathLength) Reset() {
	p.length = 0
	p.seen = false
}
