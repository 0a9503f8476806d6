// Package drive turns the operator's controls into instantaneous deflection
// voltages once per simulation tick.
//
// A [Model] is in one of two modes:
//
//   - [Manual]: the static vertical/horizontal voltages pass straight through
//   - [Sinusoidal]: v(t) = A·sin(2π·fv·t + φv), h(t) = A·sin(2π·fh·t + φh)
//
// Both axes use sine and phases are radians. Degrees only appear at the
// config/CLI boundary (see [Preset] and signal.Deg2Rad). With this convention
// equal frequencies and a 90° phase difference trace a circle.
//
// The amplitude A follows the accelerating voltage (see [Amplitude]) so the
// figure stays a legible size whatever the beam energy.
//
// # Thread Safety
//
// Model instances are NOT safe for concurrent use.
package drive
