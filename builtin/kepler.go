package builtin

import (
	"github.com/crawfordsm/gala/potential"
	"github.com/crawfordsm/gala/utils"
)

/*
Kepler point mass

	Phi(r) = -G m / r

Parameters: m, the total mass. The density is a delta function at the
origin and is not evaluated.
*/
func init() {
	potential.MustRegister(potential.Kind{
		Name:     "kepler",
		Params:   []string{"m"},
		Value:    keplerValue,
		Gradient: keplerGradient,
		Hessian:  keplerHessian,
	})
}

func keplerValue(t float64, pars, q []float64, nDim int) float64 {
	return -pars[0] * pars[1] / radius(q, nDim)
}

func keplerGradient(t float64, pars, q []float64, nDim int, grad []float64) {
	var (
		r   = radius(q, nDim)
		fac = pars[0] * pars[1] / utils.POW(r, 3)
	)
	for j := 0; j < nDim; j++ {
		grad[j] += fac * q[j]
	}
}

func keplerHessian(t float64, pars, q []float64, nDim int, hess []float64) {
	var (
		r  = radius(q, nDim)
		Gm = pars[0] * pars[1]
	)
	sphericalHessian(q, nDim, r, Gm/(r*r), -2.*Gm/utils.POW(r, 3), hess)
}
