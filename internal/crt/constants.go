package crt

import "github.com/asanabria-2021067/CRT-Simulation/internal/params"

// Constants are the physical inputs to the kinematics. Never mutated.
type Constants struct {
	ElectronCharge     float64 // C, magnitude
	ElectronMass       float64 // kg
	VacuumPermittivity float64 // F/m
}

// Electron holds the CODATA 2018 values.
var Electron = Constants{
	ElectronCharge:     1.602176634e-19,
	ElectronMass:       9.1093837015e-31,
	VacuumPermittivity: 8.8541878128e-12,
}

// ChargeToMass is e/m.
func (c Constants) ChargeToMass() float64 {
	return c.ElectronCharge / c.ElectronMass
}

func (c Constants) Validate() error {
	if err := params.CheckPositive("electron_charge", c.ElectronCharge); err != nil {
		return err
	}
	if err := params.CheckPositive("electron_mass", c.ElectronMass); err != nil {
		return err
	}
	return params.CheckPositive("vacuum_permittivity", c.VacuumPermittivity)
}
