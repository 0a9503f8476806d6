package signal

import (
	"math"
	"math/cmplx"

	"golang.org/x/exp/constraints"
	"gonum.org/v1/gonum/floats"

	"github.com/asanabria-2021067/CRT-Simulation/internal/params"
)

func Deg2Rad(deg float64) float64 { return deg * (math.Pi / 180) }
func Rad2Deg(rad float64) float64 { return rad * (180 / math.Pi) }

// Clamp restricts x to [lo, hi].
func Clamp[T constraints.Ordered](x, lo, hi T) T {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// ValidateParams is the tone check shared by every generator path:
// frequency must be >= 0 and amplitude finite.
func ValidateParams(freq, amp float64) error {
	if err := params.CheckNonNegative("frequency", freq); err != nil {
		return err
	}
	return params.CheckFinite("amplitude", amp)
}

// RMS of a discrete signal. Zero for an empty slice.
func RMS(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return math.Sqrt(floats.Dot(x, x) / float64(len(x)))
}

// Phasor returns amp∠phase.
func Phasor(amp, phase float64) complex128 {
	return cmplx.Rect(amp, phase)
}
