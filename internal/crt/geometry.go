package crt

import "github.com/asanabria-2021067/CRT-Simulation/internal/params"

const (
	DefaultPlateLengthV   = 0.05
	DefaultPlateLengthH   = 0.04
	DefaultSeparation     = 0.02
	DefaultGap            = 0.08
	DefaultScreenDistance = 0.20
)

// Geometry describes the beam path through the tube, in metres.
//
// ScreenDistance is measured from the exit of the horizontal plates. Gap and
// ScreenDistance may be zero, which reduces the model to the in-plate arcs.
type Geometry struct {
	PlateLengthV   float64 `yaml:"plate_length_v" json:"plate_length_v"`
	PlateLengthH   float64 `yaml:"plate_length_h" json:"plate_length_h"`
	Separation     float64 `yaml:"separation" json:"separation"`
	Gap            float64 `yaml:"gap" json:"gap"`
	ScreenDistance float64 `yaml:"screen_distance" json:"screen_distance"`
}

// StandardGeometry is the reference tube used throughout the tests and CLI.
func StandardGeometry() Geometry {
	return Geometry{
		PlateLengthV:   DefaultPlateLengthV,
		PlateLengthH:   DefaultPlateLengthH,
		Separation:     DefaultSeparation,
		Gap:            DefaultGap,
		ScreenDistance: DefaultScreenDistance,
	}
}

// Validate fails on any length that would leave a stage undefined.
// A zero separation makes the plate field undefined.
func (g Geometry) Validate() error {
	if err := params.CheckPositive("plate_length_v", g.PlateLengthV); err != nil {
		return err
	}
	if err := params.CheckPositive("plate_length_h", g.PlateLengthH); err != nil {
		return err
	}
	if err := params.CheckPositive("separation", g.Separation); err != nil {
		return err
	}
	if err := params.CheckNonNegative("gap", g.Gap); err != nil {
		return err
	}
	return params.CheckNonNegative("screen_distance", g.ScreenDistance)
}

// ScreenDistanceV is the path length from the vertical plates' exit to the screen.
func (g Geometry) ScreenDistanceV() float64 {
	return g.Gap + g.PlateLengthH + g.ScreenDistance
}

// Length is the total path from the vertical plates' entrance to the screen.
func (g Geometry) Length() float64 {
	return g.PlateLengthV + g.ScreenDistanceV()
}
