package signal

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/asanabria-2021067/CRT-Simulation/internal/params"
)

// NoiseSource draws standard normal variates. *rand.Rand satisfies it.
type NoiseSource interface {
	NormFloat64() float64
}

// Generator produces sampled signals. It holds no mutable state besides the
// noise source, which is only touched by Composite.
type Generator struct {
	defaults Defaults
	noise    NoiseSource
}

type GeneratorOption func(*Generator)

// WithNoiseSource makes Composite's noise path reproducible.
func WithNoiseSource(src NoiseSource) GeneratorOption {
	return func(g *Generator) { g.noise = src }
}

func NewGenerator(d Defaults, opts ...GeneratorOption) (*Generator, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	g := &Generator{defaults: d}
	for _, opt := range opts {
		opt(g)
	}
	if g.noise == nil {
		g.noise = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return g, nil
}

func (g *Generator) Defaults() Defaults { return g.defaults }

type window struct {
	fs, duration float64
	endpoint     bool
}

// Option overrides a sampling parameter for a single call.
type Option func(*window)

func WithSampleRate(fs float64) Option { return func(w *window) { w.fs = fs } }
func WithDuration(d float64) Option    { return func(w *window) { w.duration = d } }

// WithEndpoint samples the closed interval [0, duration].
func WithEndpoint() Option { return func(w *window) { w.endpoint = true } }

func (g *Generator) times(opts []Option) ([]float64, error) {
	w := window{fs: g.defaults.SampleRate, duration: g.defaults.Duration}
	for _, opt := range opts {
		opt(&w)
	}
	return TimeVector(w.fs, w.duration, w.endpoint)
}

// Sine samples offset + amp·sin(2π·freq·t + phase).
func (g *Generator) Sine(freq, amp, phase, offset float64, opts ...Option) (*Buffer, error) {
	spec := Spec{Frequency: freq, Amplitude: amp, Phase: phase, Offset: offset}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	t, err := g.times(opts)
	if err != nil {
		return nil, err
	}
	return newBuffer(t, sample(t, spec)), nil
}

// Tone samples the generator's default tone.
func (g *Generator) Tone(opts ...Option) (*Buffer, error) {
	s := g.defaults.Spec()
	return g.Sine(s.Frequency, s.Amplitude, s.Phase, s.Offset, opts...)
}

// Composite sums specs on one time vector, in order, then adds zero-mean
// Gaussian noise of standard deviation noiseStd when it is positive. All
// specs are validated before any sample is computed.
func (g *Generator) Composite(specs []Spec, noiseStd float64, opts ...Option) (*Buffer, error) {
	for i, s := range specs {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("spec %d: %w", i, err)
		}
	}
	if err := params.CheckNonNegative("noise_std", noiseStd); err != nil {
		return nil, err
	}
	t, err := g.times(opts)
	if err != nil {
		return nil, err
	}

	x := make([]float64, len(t))
	for _, s := range specs {
		accumulate(x, t, s)
	}

	if noiseStd > 0 {
		for i := range x {
			x[i] += noiseStd * g.noise.NormFloat64()
		}
	}

	return newBuffer(t, x), nil
}

// Lissajous samples two tones on one shared time vector.
func (g *Generator) Lissajous(x, y Spec, opts ...Option) (*Pair, error) {
	if err := x.Validate(); err != nil {
		return nil, err
	}
	if err := y.Validate(); err != nil {
		return nil, err
	}
	t, err := g.times(opts)
	if err != nil {
		return nil, err
	}
	return &Pair{times: t, x: sample(t, x), y: sample(t, y)}, nil
}

func sin(freq, phase, t float64) float64 {
	return math.Sin(2*math.Pi*freq*t + phase)
}

func sample(t []float64, s Spec) []float64 {
	out := make([]float64, len(t))
	accumulate(out, t, s)
	return out
}

func accumulate(dst, t []float64, s Spec) {
	parallelFor(len(t), parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			dst[i] += s.Offset + s.Amplitude*sin(s.Frequency, s.Phase, t[i])
		}
	})
}
