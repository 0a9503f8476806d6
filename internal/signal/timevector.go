package signal

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/asanabria-2021067/CRT-Simulation/internal/params"
)

// MaxSamples caps a single time grid at 2^26 samples (512 MiB of float64).
const MaxSamples = 1 << 26

// SampleCount is round(fs·duration), never less than 1. Counts above
// MaxSamples are rejected before conversion to int.
func SampleCount(fs, duration float64) (int, error) {
	count := math.Round(fs * duration)
	if math.IsNaN(count) || count > MaxSamples {
		return 0, params.Invalid("sample_count", count, "exceeds maximum samples per grid")
	}
	n := int(count)
	if n < 1 {
		n = 1
	}
	return n, nil
}

// TimeVector returns uniformly spaced sample times. With endpoint unset the
// interval is [0, duration) with SampleCount samples; with endpoint set it is
// [0, duration] with one extra sample.
func TimeVector(fs, duration float64, endpoint bool) ([]float64, error) {
	if err := params.CheckPositive("sample_rate", fs); err != nil {
		return nil, err
	}
	if err := params.CheckPositive("duration", duration); err != nil {
		return nil, err
	}

	n, err := SampleCount(fs, duration)
	if err != nil {
		return nil, err
	}
	t := floats.Span(make([]float64, n+1), 0, duration)
	if endpoint {
		return t, nil
	}
	return t[:n:n], nil
}
