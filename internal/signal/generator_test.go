package signal

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/asanabria-2021067/CRT-Simulation/internal/params"
)

func newTestGenerator(t *testing.T, opts ...GeneratorOption) *Generator {
	t.Helper()
	g, err := NewGenerator(DefaultDefaults(), opts...)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	return g
}

func TestNewGenerator_InvalidDefaults(t *testing.T) {
	d := DefaultDefaults()
	d.SampleRate = 0
	if _, err := NewGenerator(d); !errors.Is(err, params.ErrInvalidParameter) {
		t.Errorf("err = %v, want ErrInvalidParameter", err)
	}
}

func TestSine_ZeroFrequency(t *testing.T) {
	g := newTestGenerator(t)

	tests := []struct {
		name  string
		phase float64
		want  float64
	}{
		{"phase 0", 0, 0},
		{"phase pi/2", math.Pi / 2, 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, err := g.Sine(0, 2.5, tt.phase, 0, WithSampleRate(100), WithDuration(1))
			if err != nil {
				t.Fatal(err)
			}
			if buf.Len() != 100 {
				t.Fatalf("len = %d, want 100", buf.Len())
			}
			for _, v := range buf.Values() {
				if math.Abs(v-tt.want) > 1e-12 {
					t.Fatalf("sample = %v, want %v", v, tt.want)
				}
			}
		})
	}
}

func TestSine_Values(t *testing.T) {
	g := newTestGenerator(t)

	buf, err := g.Sine(5, 2, 0.3, 1, WithSampleRate(1000), WithDuration(0.2))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < buf.Len(); i++ {
		tt, v := buf.At(i)
		want := 1 + 2*math.Sin(2*math.Pi*5*tt+0.3)
		if math.Abs(v-want) > 1e-12 {
			t.Fatalf("sample %d = %v, want %v", i, v, want)
		}
	}
	if math.Abs(buf.SampleRate()-1000) > 1e-6 {
		t.Errorf("SampleRate() = %v", buf.SampleRate())
	}
}

func TestSine_Deterministic(t *testing.T) {
	g := newTestGenerator(t)

	a, _ := g.Sine(440, 1, 0, 0)
	b, _ := g.Sine(440, 1, 0, 0)
	if a.Len() != b.Len() || a.Len() != 5000 {
		t.Fatalf("lengths %d and %d, want 5000", a.Len(), b.Len())
	}
	av, bv := a.Values(), b.Values()
	for i := range av {
		if av[i] != bv[i] {
			t.Fatalf("sample %d differs", i)
		}
	}
}

func TestSine_Invalid(t *testing.T) {
	g := newTestGenerator(t)

	if _, err := g.Sine(-1, 1, 0, 0); !errors.Is(err, params.ErrInvalidParameter) {
		t.Errorf("negative freq: err = %v", err)
	}
	if _, err := g.Sine(1, math.Inf(1), 0, 0); !errors.Is(err, params.ErrInvalidParameter) {
		t.Errorf("infinite amp: err = %v", err)
	}
	if _, err := g.Sine(1, 1, 0, 0, WithSampleRate(0)); !errors.Is(err, params.ErrInvalidParameter) {
		t.Errorf("zero fs: err = %v", err)
	}
	if _, err := g.Sine(1, 1, 0, 0, WithDuration(-1)); !errors.Is(err, params.ErrInvalidParameter) {
		t.Errorf("negative duration: err = %v", err)
	}
}

func TestBuffer_Immutable(t *testing.T) {
	g := newTestGenerator(t)
	buf, _ := g.Sine(0, 1, math.Pi/2, 0, WithSampleRate(10), WithDuration(1))

	v := buf.Values()
	v[0] = 99
	if _, got := buf.At(0); got == 99 {
		t.Error("Values() exposed internal storage")
	}
}

func TestComposite_SingleSpecMatchesSine(t *testing.T) {
	g := newTestGenerator(t)
	spec := Spec{Frequency: 120, Amplitude: 0.7, Phase: 1.1, Offset: -0.2}

	c, err := g.Composite([]Spec{spec}, 0, WithSampleRate(8000), WithDuration(0.1))
	if err != nil {
		t.Fatal(err)
	}
	s, err := g.Sine(spec.Frequency, spec.Amplitude, spec.Phase, spec.Offset, WithSampleRate(8000), WithDuration(0.1))
	if err != nil {
		t.Fatal(err)
	}

	cv, sv := c.Values(), s.Values()
	if len(cv) != len(sv) {
		t.Fatalf("lengths %d vs %d", len(cv), len(sv))
	}
	for i := range cv {
		if cv[i] != sv[i] {
			t.Fatalf("sample %d: composite %v, sine %v", i, cv[i], sv[i])
		}
	}
}

func TestComposite_Sum(t *testing.T) {
	g := newTestGenerator(t)
	specs := []Spec{
		{Frequency: 50, Amplitude: 1},
		{Frequency: 150, Amplitude: 0.3, Phase: 0.5},
		{Frequency: 0, Amplitude: 0, Offset: 2},
	}

	buf, err := g.Composite(specs, 0, WithSampleRate(1000), WithDuration(0.1))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < buf.Len(); i++ {
		tt, v := buf.At(i)
		want := 0.0
		for _, s := range specs {
			want += s.At(tt)
		}
		if math.Abs(v-want) > 1e-12 {
			t.Fatalf("sample %d = %v, want %v", i, v, want)
		}
	}
}

func TestComposite_Empty(t *testing.T) {
	g := newTestGenerator(t)
	buf, err := g.Composite(nil, 0, WithSampleRate(100), WithDuration(0.1))
	if err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 10 || buf.RMS() != 0 {
		t.Errorf("expected 10 zero samples, got len %d rms %v", buf.Len(), buf.RMS())
	}
}

func TestComposite_SeededNoise(t *testing.T) {
	specs := []Spec{{Frequency: 10, Amplitude: 1}}

	a := newTestGenerator(t, WithNoiseSource(rand.New(rand.NewSource(7))))
	b := newTestGenerator(t, WithNoiseSource(rand.New(rand.NewSource(7))))

	ba, err := a.Composite(specs, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	bb, _ := b.Composite(specs, 0.1)

	av, bv := ba.Values(), bb.Values()
	for i := range av {
		if av[i] != bv[i] {
			t.Fatalf("sample %d differs with identical seeds", i)
		}
	}

	clean, _ := a.Composite(specs, 0)
	cv := clean.Values()
	diff := make([]float64, len(cv))
	for i := range cv {
		diff[i] = av[i] - cv[i]
	}
	if rms := RMS(diff); rms < 0.08 || rms > 0.12 {
		t.Errorf("noise RMS = %v, want ~0.1", rms)
	}
}

func TestComposite_FailsBeforeAccumulating(t *testing.T) {
	g := newTestGenerator(t)
	specs := []Spec{
		{Frequency: 10, Amplitude: 1},
		{Frequency: -5, Amplitude: 1},
	}

	buf, err := g.Composite(specs, 0)
	if !errors.Is(err, params.ErrInvalidParameter) {
		t.Fatalf("err = %v, want ErrInvalidParameter", err)
	}
	if buf != nil {
		t.Error("partial buffer returned on failure")
	}

	if _, err := g.Composite(specs[:1], -0.5); !errors.Is(err, params.ErrInvalidParameter) {
		t.Errorf("negative noise: err = %v", err)
	}
}

func TestLissajous_Circle(t *testing.T) {
	g := newTestGenerator(t)
	f := 3.0

	pair, err := g.Lissajous(
		Spec{Frequency: f, Amplitude: 1},
		Spec{Frequency: f, Amplitude: 1, Phase: math.Pi / 2},
		WithSampleRate(500), WithDuration(2),
	)
	if err != nil {
		t.Fatal(err)
	}

	if pair.Len() != 1000 {
		t.Fatalf("len = %d, want 1000", pair.Len())
	}
	for i := 0; i < pair.Len(); i++ {
		_, x, y := pair.At(i)
		if r := x*x + y*y; math.Abs(r-1) > 1e-12 {
			t.Fatalf("sample %d: x²+y² = %v", i, r)
		}
	}

	if pair.Horizontal().Len() != pair.Vertical().Len() {
		t.Error("channel lengths differ")
	}
}

func TestLissajous_Invalid(t *testing.T) {
	g := newTestGenerator(t)
	_, err := g.Lissajous(Spec{Frequency: 1, Amplitude: 1}, Spec{Frequency: 1, Amplitude: math.NaN()})
	if !errors.Is(err, params.ErrInvalidParameter) {
		t.Errorf("err = %v", err)
	}
}

func TestParallelFor_Coverage(t *testing.T) {
	n := 100_003
	hits := make([]int, n)
	parallelFor(n, 1000, func(start, end int) {
		for i := start; i < end; i++ {
			hits[i]++
		}
	})
	for i, h := range hits {
		if h != 1 {
			t.Fatalf("index %d visited %d times", i, h)
		}
	}
}

func TestSine_LongBufferOrdered(t *testing.T) {
	g := newTestGenerator(t)
	buf, err := g.Sine(1, 1, 0, 0, WithSampleRate(100_000), WithDuration(1))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < buf.Len(); i += 997 {
		tt, v := buf.At(i)
		if math.Abs(v-math.Sin(2*math.Pi*tt)) > 1e-12 {
			t.Fatalf("sample %d out of place", i)
		}
	}
}
