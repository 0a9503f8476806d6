package analysis

import (
	"errors"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/stat"
)

var ErrTooShort = errors.New("analysis: not enough samples")

// Spectrum is a single-sided magnitude spectrum.
type Spectrum struct {
	Freqs []float64 // Hz
	Power []float64
}

// PowerSpectrum returns |X[k]|/n for k = 0..n/2 of the mean-removed signal.
// Any length is accepted.
func PowerSpectrum(data []float64, sampleRate float64) Spectrum {
	n := len(data)
	if n == 0 {
		return Spectrum{}
	}

	centred := make([]float64, n)
	m := stat.Mean(data, nil)
	for i, v := range data {
		centred[i] = v - m
	}

	bins := fft.FFTReal(centred)
	half := n/2 + 1
	s := Spectrum{
		Freqs: make([]float64, half),
		Power: make([]float64, half),
	}
	for k := 0; k < half; k++ {
		s.Freqs[k] = float64(k) * sampleRate / float64(n)
		s.Power[k] = cmplx.Abs(bins[k]) / float64(n)
	}
	return s
}

// DominantFrequency is the frequency of the strongest bin above DC.
func DominantFrequency(data []float64, sampleRate float64) (float64, error) {
	if len(data) < 4 {
		return 0, ErrTooShort
	}
	s := PowerSpectrum(data, sampleRate)
	best := 1
	for k := 2; k < len(s.Power); k++ {
		if s.Power[k] > s.Power[best] {
			best = k
		}
	}
	return s.Freqs[best], nil
}
