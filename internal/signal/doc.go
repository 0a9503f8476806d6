// Package signal generates uniformly sampled sinusoidal signals.
//
// A [Generator] is configured once with [Defaults] and produces:
//
//   - [Generator.Sine]: offset + amp·sin(2π·f·t + φ)
//   - [Generator.Composite]: sum of several [Spec] tones plus optional Gaussian noise
//   - [Generator.Lissajous]: two tones on one shared time vector
//
// Phases are radians. Use [Deg2Rad] at any boundary that speaks degrees.
//
// # Determinism
//
// Every path is a pure function of its inputs except Composite with a
// positive noise level. Inject a seeded source to make that reproducible:
//
//	gen, _ := signal.NewGenerator(signal.DefaultDefaults(),
//	    signal.WithNoiseSource(rand.New(rand.NewSource(42))))
package signal
