// Package viz renders the beam on a terminal.
//
//   - [Canvas]: Braille sub-pixel grid, 2×4 dots per character
//   - [Screen]: maps display-unit points onto a canvas, origin at the centre
//   - [Model]: Bubble Tea model of the live CRT with the operator sliders
//   - [Theme]: phosphor colour schemes
//
// # Key Bindings
//
//	Space  - Pause/Resume the beam clock
//	M      - Toggle Manual/Sinusoidal drive
//	P      - Apply the next Lissajous preset
//	R      - Reset to defaults
//	Tab    - Select slider
//	↑/↓    - Adjust selected slider by its step
//	+/-    - Double/halve clock speed
//	T      - Cycle phosphor themes
//	?      - Show help overlay
//
// # Persistence
//
// The trail keeps every sample newer than the persistence setting, measured
// on the simulation clock, so slowing the clock lengthens the visible figure
// in wall time but not in drive cycles.
package viz
