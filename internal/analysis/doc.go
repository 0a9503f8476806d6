// Package analysis characterizes recorded deflection traces.
//
// The package includes:
//
//   - [PowerSpectrum]: single-sided magnitude spectrum of a sampled signal
//   - [DominantFrequency]: strongest non-DC component
//   - [ZeroCrossings]: interpolated rising crossings of a level
//   - [EstimateFrequency]: fundamental from crossing spacing
//   - [EstimateRatio]: Lissajous frequency ratio of two traces
//   - [CurveToASCII]: plot of an X-Y figure as text
//
// # Reading a figure
//
// The ratio of a Lissajous figure is the ratio of the horizontal to the
// vertical drive frequency:
//
//	p, q, ok := analysis.EstimateRatio(times, horizontal, vertical, 10)
//	if ok {
//	    fmt.Printf("%d:%d\n", p, q)
//	}
package analysis
