package params

import (
	"fmt"
	"sort"
)

// Range is the declared valid interval of a named operator parameter.
type Range struct {
	Name string
	Unit string
	Min  float64
	Max  float64
	Step float64
}

// Check rejects values outside [Min, Max] and non-finite values.
func (r Range) Check(v float64) error {
	if err := CheckFinite(r.Name, v); err != nil {
		return err
	}
	if v < r.Min || v > r.Max {
		return &ParameterError{
			Name:   r.Name,
			Value:  v,
			Reason: "outside " + r.String(),
		}
	}
	return nil
}

// Clamp pulls v into [Min, Max]. NaN cannot be clamped and is rejected.
func (r Range) Clamp(v float64) (float64, error) {
	if err := CheckFinite(r.Name, v); err != nil {
		// ±Inf has an obvious clamp target, NaN does not.
		switch {
		case v > 0:
			return r.Max, nil
		case v < 0:
			return r.Min, nil
		}
		return 0, err
	}
	if v < r.Min {
		return r.Min, nil
	}
	if v > r.Max {
		return r.Max, nil
	}
	return v, nil
}

func (r Range) String() string {
	if r.Unit == "" {
		return fmt.Sprintf("[%g, %g]", r.Min, r.Max)
	}
	return fmt.Sprintf("[%g, %g] %s", r.Min, r.Max, r.Unit)
}

// Parameter names shared by config files, CLI flags and the live view.
const (
	AccelVoltage      = "accel_voltage"
	DeflectionVoltage = "deflection_voltage"
	Frequency         = "frequency"
	Phase             = "phase"
	Persistence       = "persistence"
	Brightness        = "brightness"
)

// Ranges declares the operator-facing parameters and their limits.
var Ranges = map[string]Range{
	AccelVoltage:      {Name: AccelVoltage, Unit: "V", Min: 500, Max: 5000, Step: 100},
	DeflectionVoltage: {Name: DeflectionVoltage, Unit: "V", Min: -600, Max: 600, Step: 25},
	Frequency:         {Name: Frequency, Unit: "Hz", Min: 0, Max: 10, Step: 0.1},
	Phase:             {Name: Phase, Unit: "deg", Min: 0, Max: 360, Step: 10},
	Persistence:       {Name: Persistence, Unit: "s", Min: 0.2, Max: 5, Step: 0.2},
	Brightness:        {Name: Brightness, Unit: "", Min: 0.3, Max: 2, Step: 0.1},
}

// Lookup returns the declared range for name.
func Lookup(name string) (Range, bool) {
	r, ok := Ranges[name]
	return r, ok
}

// Names lists the declared parameters in sorted order.
func Names() []string {
	names := make([]string, 0, len(Ranges))
	for name := range Ranges {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MustRange panics on an undeclared name. Used for package-level lookups of
// the constants above.
func MustRange(name string) Range {
	r, ok := Ranges[name]
	if !ok {
		panic("params: undeclared parameter " + name)
	}
	return r
}
