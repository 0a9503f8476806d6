package crt

import (
	"fmt"
	"math"
)

// Impact is the beam's net displacement at the screen plane, in metres.
type Impact struct {
	X, Y float64
}

// Radius is the distance of the spot from the undeflected centre.
func (i Impact) Radius() float64 {
	return math.Hypot(i.X, i.Y)
}

// Stages is the per-region breakdown of one solve.
type Stages struct {
	Speed float64 // v0, m/s

	FieldV, FieldH        float64 // V/m
	SurfaceChargeV        float64 // C/m², eps0*E on the vertical plates
	SurfaceChargeH        float64 // C/m²
	AccelV, AccelH        float64 // m/s², along +Y and +X
	TimeV, TimeGap, TimeH float64 // s
	TimeFree              float64 // s
	VelocityY, VelocityX  float64 // exit transverse velocities, m/s
	PlateY, GapY, FreeY   float64 // vertical contributions, m
	PlateX, FreeX         float64 // horizontal contributions, m
}

// Impact sums the staged contributions.
func (s Stages) Impact() Impact {
	return Impact{
		X: s.PlateX + s.FreeX,
		Y: s.PlateY + s.GapY + s.FreeY,
	}
}

// TransitTime is the time from entering the vertical plates to the screen.
func (s Stages) TransitTime() float64 {
	return s.TimeV + s.TimeGap + s.TimeH + s.TimeFree
}

// VoltageSource yields instantaneous deflection voltages.
type VoltageSource interface {
	Voltages(t float64) (vertical, horizontal float64)
}

// Solver computes beam impacts for a fixed tube. Safe for concurrent use: it
// holds only immutable configuration.
type Solver struct {
	geom   Geometry
	consts Constants
}

// NewSolver validates the geometry and constants once so Impact can't fail.
func NewSolver(g Geometry, c Constants) (*Solver, error) {
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("tube geometry: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("physical constants: %w", err)
	}
	return &Solver{geom: g, consts: c}, nil
}

// ComputeImpact is the one-shot form of Solver.Impact.
func ComputeImpact(vv, vh, va float64, g Geometry, c Constants) (Impact, error) {
	s, err := NewSolver(g, c)
	if err != nil {
		return Impact{}, err
	}
	return s.Impact(vv, vh, va), nil
}

func (s *Solver) Geometry() Geometry   { return s.geom }
func (s *Solver) Constants() Constants { return s.consts }

// Speed is the electron speed after acceleration through va volts.
func (s *Solver) Speed(va float64) float64 {
	return math.Sqrt(2 * s.consts.ElectronCharge * math.Abs(va) / s.consts.ElectronMass)
}

// Impact returns the screen displacement for deflection voltages vv, vh and
// accelerating voltage va. A beam that is off (va <= 0) or driven by
// non-finite voltages lands at the origin.
func (s *Solver) Impact(vv, vh, va float64) Impact {
	st, ok := s.stages(vv, vh, va)
	if !ok {
		return Impact{}
	}
	return st.Impact()
}

// Stages returns the full breakdown. The zero Stages is returned when the
// beam is off.
func (s *Solver) Stages(vv, vh, va float64) Stages {
	st, _ := s.stages(vv, vh, va)
	return st
}

func (s *Solver) stages(vv, vh, va float64) (Stages, bool) {
	if !(va > 0) || math.IsInf(va, 1) || !finite(vv) || !finite(vh) {
		return Stages{}, false
	}

	g := s.geom
	qm := s.consts.ChargeToMass()
	v0 := s.Speed(va)

	var st Stages
	st.Speed = v0

	// Vertical plates. The field points from the positive upper plate down;
	// the electron's negative charge turns that into an upward push.
	st.FieldV = vv / g.Separation
	st.SurfaceChargeV = s.consts.VacuumPermittivity * st.FieldV
	st.AccelV = qm * st.FieldV
	st.TimeV = g.PlateLengthV / v0
	st.VelocityY = st.AccelV * st.TimeV
	st.PlateY = 0.5 * st.AccelV * st.TimeV * st.TimeV

	// Field-free gap.
	st.TimeGap = g.Gap / v0
	st.GapY = st.VelocityY * st.TimeGap

	// Horizontal plates. The axes are solved independently past the gap, so
	// this region adds no vertical displacement.
	st.FieldH = vh / g.Separation
	st.SurfaceChargeH = s.consts.VacuumPermittivity * st.FieldH
	st.AccelH = qm * st.FieldH
	st.TimeH = g.PlateLengthH / v0
	st.VelocityX = st.AccelH * st.TimeH
	st.PlateX = 0.5 * st.AccelH * st.TimeH * st.TimeH

	// Free flight, referenced to the horizontal plates' exit.
	st.TimeFree = g.ScreenDistance / v0
	st.FreeY = st.VelocityY * st.TimeFree
	st.FreeX = st.VelocityX * st.TimeFree

	return st, true
}

// Sensitivity is the deflection per volt on each axis at accelerating
// voltage va, in m/V. Zero when the beam is off.
func (s *Solver) Sensitivity(va float64) (vertical, horizontal float64) {
	hit := s.Impact(1, 1, va)
	return hit.Y, hit.X
}

// Trace solves one impact per sample time with voltages taken from src.
// Output order matches times.
func (s *Solver) Trace(times []float64, src VoltageSource, va float64) []Impact {
	hits := make([]Impact, len(times))
	for i, t := range times {
		vv, vh := src.Voltages(t)
		hits[i] = s.Impact(vv, vh, va)
	}
	return hits
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
