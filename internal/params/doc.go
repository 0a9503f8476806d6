// Package params holds the validation vocabulary shared by the simulator
// core: the invalid-parameter error taxonomy and the declared ranges of every
// operator-facing parameter.
//
// Every public operation of the core validates its inputs through this
// package before doing any numeric work, so a failure is always total:
//
//	if err := params.CheckFinite("amplitude", amp); err != nil {
//	    return nil, err
//	}
//
// Callers test for the taxonomy with errors.Is:
//
//	if errors.Is(err, params.ErrInvalidParameter) { ... }
package params
