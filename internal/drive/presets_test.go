package drive

import (
	"math"
	"testing"
)

func TestPresets_Table(t *testing.T) {
	if len(Presets) != 20 {
		t.Fatalf("expected 20 presets, got %d", len(Presets))
	}

	names := PresetNames()
	if names[0] != "1:1/0" {
		t.Errorf("first preset = %s, want 1:1/0", names[0])
	}
	if len(names) != len(Presets) {
		t.Errorf("PresetNames returned %d names", len(names))
	}
}

func TestLookupPreset(t *testing.T) {
	tests := []struct {
		name   string
		fv, fh float64
		dphase float64
	}{
		{"circle", 1, 1, 90},
		{"line", 1, 1, 0},
		{"1:2/45", 2, 1, -45},
		{"2:3/180", 3, 2, -180},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := LookupPreset(tt.name)
			if !ok {
				t.Fatalf("preset %s not found", tt.name)
			}
			if p.FreqV != tt.fv || p.FreqH != tt.fh {
				t.Errorf("freqs = %v:%v, want %v:%v", p.FreqV, p.FreqH, tt.fv, tt.fh)
			}
			if got := p.PhaseH - p.PhaseV; got != tt.dphase {
				t.Errorf("phase difference = %v, want %v", got, tt.dphase)
			}
		})
	}

	if _, ok := LookupPreset("nonexistent"); ok {
		t.Error("expected miss for unknown preset")
	}
}

func TestPresetAliases_Resolve(t *testing.T) {
	for alias, target := range PresetAliases() {
		if _, ok := Presets[target]; !ok {
			t.Errorf("alias %s points at missing preset %s", alias, target)
		}
	}
}

// With sine on both axes the circle preset keeps v²+h² constant.
func TestCirclePreset_TracesCircle(t *testing.T) {
	m, err := New(DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	p, _ := LookupPreset("circle")
	if err := m.ApplyPreset(p); err != nil {
		t.Fatal(err)
	}

	a := m.AmplitudeBase()
	for i := 0; i < 100; i++ {
		v, h := m.Voltages(float64(i) / 100)
		if r := math.Hypot(v, h); math.Abs(r-a) > 1e-9 {
			t.Fatalf("t=%v: radius %v, want %v", float64(i)/100, r, a)
		}
	}
}

func TestRatioPresets_TraceShapes(t *testing.T) {
	tests := []struct {
		alias string
		shape func(x, y float64) float64
	}{
		// y = cos(2θ) = 1 - 2x²
		{"parabola", func(x, y float64) float64 { return y - (1 - 2*x*x) }},
		// y = sin(2θ) = 2x·cos(θ), so y² = 4x²(1 - x²)
		{"figure-eight", func(x, y float64) float64 { return y*y - 4*x*x*(1-x*x) }},
	}

	for _, tt := range tests {
		t.Run(tt.alias, func(t *testing.T) {
			m, err := New(DefaultParams())
			if err != nil {
				t.Fatal(err)
			}
			p, ok := LookupPreset(tt.alias)
			if !ok {
				t.Fatalf("alias %s not found", tt.alias)
			}
			if err := m.ApplyPreset(p); err != nil {
				t.Fatal(err)
			}

			a := m.AmplitudeBase()
			for i := 0; i < 200; i++ {
				v, h := m.Voltages(float64(i) / 200)
				if d := tt.shape(h/a, v/a); math.Abs(d) > 1e-9 {
					t.Fatalf("t=%v: off curve by %v", float64(i)/200, d)
				}
			}
		})
	}
}
