package crt

import (
	"errors"
	"math"
	"testing"

	"github.com/asanabria-2021067/CRT-Simulation/internal/params"
)

func TestGeometry_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Geometry)
		wantErr bool
	}{
		{"standard", func(g *Geometry) {}, false},
		{"no gap", func(g *Geometry) { g.Gap = 0 }, false},
		{"no free flight", func(g *Geometry) { g.ScreenDistance = 0 }, false},
		{"zero separation", func(g *Geometry) { g.Separation = 0 }, true},
		{"negative plate", func(g *Geometry) { g.PlateLengthH = -0.01 }, true},
		{"zero plate", func(g *Geometry) { g.PlateLengthV = 0 }, true},
		{"negative gap", func(g *Geometry) { g.Gap = -0.1 }, true},
		{"NaN screen", func(g *Geometry) { g.ScreenDistance = math.NaN() }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := StandardGeometry()
			tt.mutate(&g)
			err := g.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, params.ErrInvalidParameter) {
				t.Errorf("error %v does not wrap ErrInvalidParameter", err)
			}
		})
	}
}

func TestGeometry_Lengths(t *testing.T) {
	g := StandardGeometry()

	if got, want := g.ScreenDistanceV(), 0.08+0.04+0.20; math.Abs(got-want) > 1e-12 {
		t.Errorf("ScreenDistanceV() = %v, want %v", got, want)
	}
	if got, want := g.Length(), 0.37; math.Abs(got-want) > 1e-12 {
		t.Errorf("Length() = %v, want %v", got, want)
	}
}

func TestSolver_SpeedEnergy(t *testing.T) {
	s, err := NewSolver(StandardGeometry(), Electron)
	if err != nil {
		t.Fatal(err)
	}

	// ½mv² = eV
	va := 2000.0
	v := s.Speed(va)
	ke := 0.5 * Electron.ElectronMass * v * v
	if want := Electron.ElectronCharge * va; math.Abs(ke-want)/want > 1e-12 {
		t.Errorf("kinetic energy %e, want %e", ke, want)
	}

	if s.Speed(-va) != v {
		t.Error("speed should depend on |va|")
	}
}

func TestStages_SurfaceCharge(t *testing.T) {
	s, _ := NewSolver(StandardGeometry(), Electron)
	st := s.Stages(100, -100, 2000)

	if want := Electron.VacuumPermittivity * 100 / 0.02; math.Abs(st.SurfaceChargeV-want) > 1e-20 {
		t.Errorf("SurfaceChargeV = %e, want %e", st.SurfaceChargeV, want)
	}
	if st.SurfaceChargeH >= 0 {
		t.Errorf("SurfaceChargeH = %e, want negative", st.SurfaceChargeH)
	}
}
