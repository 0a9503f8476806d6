package sim

import (
	"github.com/asanabria-2021067/CRT-Simulation/internal/crt"
	"github.com/asanabria-2021067/CRT-Simulation/internal/drive"
)

// Source yields the deflection state at time t. *drive.Model satisfies it.
type Source interface {
	State(t float64) drive.State
}

// Sample is one tick of the beam: the drive input and where it lands.
type Sample struct {
	T      float64
	Drive  drive.State
	Impact crt.Impact
	Point  crt.Point
}

type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}

type Observer interface {
	OnSample(s Sample)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Sample)

func (f ObserverFunc) OnSample(s Sample) { f(s) }

type Config struct {
	Duration   float64
	SampleRate float64
	Endpoint   bool
}

type Result struct {
	Times      []float64
	Vertical   []float64
	Horizontal []float64
	Accel      []float64
	Impacts    []crt.Impact
	Points     []crt.Point
	Metrics    map[string]float64
}

func newResult(n int) *Result {
	return &Result{
		Times:      make([]float64, 0, n),
		Vertical:   make([]float64, 0, n),
		Horizontal: make([]float64, 0, n),
		Accel:      make([]float64, 0, n),
		Impacts:    make([]crt.Impact, 0, n),
		Points:     make([]crt.Point, 0, n),
		Metrics:    make(map[string]float64),
	}
}

func (r *Result) append(s Sample) {
	r.Times = append(r.Times, s.T)
	r.Vertical = append(r.Vertical, s.Drive.Vertical)
	r.Horizontal = append(r.Horizontal, s.Drive.Horizontal)
	r.Accel = append(r.Accel, s.Drive.Accel)
	r.Impacts = append(r.Impacts, s.Impact)
	r.Points = append(r.Points, s.Point)
}

func (r *Result) Len() int { return len(r.Times) }

// Sample reassembles the i-th tick.
func (r *Result) Sample(i int) Sample {
	return Sample{
		T: r.Times[i],
		Drive: drive.State{
			Vertical:   r.Vertical[i],
			Horizontal: r.Horizontal[i],
			Accel:      r.Accel[i],
		},
		Impact: r.Impacts[i],
		Point:  r.Points[i],
	}
}

// XY returns the impact coordinates as separate slices, metres.
func (r *Result) XY() (x, y []float64) {
	x = make([]float64, len(r.Impacts))
	y = make([]float64, len(r.Impacts))
	for i, hit := range r.Impacts {
		x[i], y[i] = hit.X, hit.Y
	}
	return x, y
}
