package params

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParameter is the root of every validation failure raised by the core.
var ErrInvalidParameter = errors.New("crt: invalid parameter")

// ParameterError carries the offending parameter alongside ErrInvalidParameter.
type ParameterError struct {
	Name   string
	Value  float64
	Reason string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("%s: %s = %g: %s", ErrInvalidParameter, e.Name, e.Value, e.Reason)
}

func (e *ParameterError) Unwrap() error {
	return ErrInvalidParameter
}

// Invalid builds a *ParameterError.
func Invalid(name string, value float64, reason string) error {
	return &ParameterError{Name: name, Value: value, Reason: reason}
}

// CheckFinite rejects NaN and ±Inf.
func CheckFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Invalid(name, v, "must be finite")
	}
	return nil
}

// CheckPositive rejects non-finite values and values <= 0.
func CheckPositive(name string, v float64) error {
	if err := CheckFinite(name, v); err != nil {
		return err
	}
	if v <= 0 {
		return Invalid(name, v, "must be > 0")
	}
	return nil
}

// CheckNonNegative rejects non-finite values and values < 0.
func CheckNonNegative(name string, v float64) error {
	if err := CheckFinite(name, v); err != nil {
		return err
	}
	if v < 0 {
		return Invalid(name, v, "must be >= 0")
	}
	return nil
}
