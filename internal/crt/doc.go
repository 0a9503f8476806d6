// Package crt models electron-beam deflection in a cathode-ray tube.
//
// The beam is followed through four field regions with piecewise-constant
// acceleration rather than a single lumped-displacement formula:
//
//   - vertical deflection plates (uniform field, parabolic arc)
//   - field-free gap between the plate pairs
//   - horizontal deflection plates (uniform field, parabolic arc)
//   - free flight from the horizontal plates to the screen
//
// # Example
//
//	solver, err := crt.NewSolver(crt.StandardGeometry(), crt.Electron)
//	if err != nil {
//	    return err
//	}
//	hit := solver.Impact(100, 0, 2000) // metres at the screen plane
//	px := crt.DefaultDisplay().Project(hit)
//
// # Sign convention
//
// A positive voltage on either plate pair moves the spot toward +Y (up) or
// +X (right). Both axes are antisymmetric in their own voltage.
//
// An accelerating voltage <= 0 means the beam is off; [Solver.Impact] then
// returns the zero [Impact] instead of an error.
package crt
