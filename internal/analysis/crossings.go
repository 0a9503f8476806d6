package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// ZeroCrossings returns the times at which values rises through level,
// linearly interpolated between samples.
func ZeroCrossings(times, values []float64, level float64) []float64 {
	n := min(len(times), len(values))
	out := make([]float64, 0)
	for i := 1; i < n; i++ {
		prev, cur := values[i-1]-level, values[i]-level
		if prev < 0 && cur >= 0 {
			frac := -prev / (cur - prev)
			if math.IsNaN(frac) || math.IsInf(frac, 0) {
				frac = 0.5
			}
			out = append(out, times[i-1]+frac*(times[i]-times[i-1]))
		}
	}
	return out
}

// EstimateFrequency measures the fundamental from the spacing of rising
// crossings through the signal mean. Needs at least two crossings.
func EstimateFrequency(times, values []float64) (float64, error) {
	if len(values) < 2 {
		return 0, ErrTooShort
	}
	c := ZeroCrossings(times, values, stat.Mean(values, nil))
	if len(c) < 2 {
		return 0, ErrTooShort
	}
	return float64(len(c)-1) / (c[len(c)-1] - c[0]), nil
}

// EstimateRatio finds p:q ≈ fx:fy with q <= maxDen, reduced. ok is false when
// either trace has too few crossings or no ratio fits within 2%.
func EstimateRatio(times, x, y []float64, maxDen int) (p, q int, ok bool) {
	fx, err := EstimateFrequency(times, x)
	if err != nil {
		return 0, 0, false
	}
	fy, err := EstimateFrequency(times, y)
	if err != nil || fy == 0 {
		return 0, 0, false
	}

	r := fx / fy
	for den := 1; den <= maxDen; den++ {
		num := int(math.Round(r * float64(den)))
		if num == 0 {
			continue
		}
		if math.Abs(float64(num)/float64(den)-r) <= 0.02*r {
			g := gcd(num, den)
			return num / g, den / g, true
		}
	}
	return 0, 0, false
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
