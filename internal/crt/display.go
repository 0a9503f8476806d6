package crt

// DefaultPixelsPerMeter keeps a 250 V deflection at 2000 V inside a
// 250 px screen.
const DefaultPixelsPerMeter = 2500.0

// Display converts screen-plane displacements into display units.
type Display struct {
	PixelsPerMeter float64 `yaml:"pixels_per_meter" json:"pixels_per_meter"`
}

// Point is a position in display units, origin at the screen centre, +Y up.
type Point struct {
	X, Y float64
}

func DefaultDisplay() Display {
	return Display{PixelsPerMeter: DefaultPixelsPerMeter}
}

func (d Display) Project(hit Impact) Point {
	return Point{X: hit.X * d.PixelsPerMeter, Y: hit.Y * d.PixelsPerMeter}
}

// ProjectAll projects a trace in order.
func (d Display) ProjectAll(hits []Impact) []Point {
	pts := make([]Point, len(hits))
	for i, h := range hits {
		pts[i] = d.Project(h)
	}
	return pts
}
