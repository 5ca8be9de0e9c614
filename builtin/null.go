package builtin

import (
	"github.com/crawfordsm/gala/potential"
)

// The null potential is identically zero in every quantity. Useful as a
// placeholder component and for exercising composite plumbing.
func init() {
	potential.MustRegister(potential.Kind{
		Name:     "null",
		Value:    nullValue,
		Density:  nullValue,
		Gradient: nullAccumulate,
		Hessian:  nullAccumulate,
	})
}

func nullValue(t float64, pars, q []float64, nDim int) float64 {
	return 0.
}

func nullAccumulate(t float64, pars, q []float64, nDim int, out []float64) {}
