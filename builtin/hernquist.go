package builtin

import (
	"math"

	"github.com/crawfordsm/gala/potential"
	"github.com/crawfordsm/gala/utils"
)

/*
Hernquist sphere

	Phi(r) = -G m / (r + c)

Parameters: m, the total mass, and c, the scale radius. The density has
the familiar 1/r cusp at the center.
*/
func init() {
	potential.MustRegister(potential.Kind{
		Name:     "hernquist",
		Params:   []string{"m", "c"},
		Value:    hernquistValue,
		Density:  hernquistDensity,
		Gradient: hernquistGradient,
		Hessian:  hernquistHessian,
	})
}

func hernquistValue(t float64, pars, q []float64, nDim int) float64 {
	return -pars[0] * pars[1] / (radius(q, nDim) + pars[2])
}

func hernquistDensity(t float64, pars, q []float64, nDim int) float64 {
	var (
		m, c = pars[1], pars[2]
		r    = radius(q, nDim)
	)
	return m * c / (2. * math.Pi * r * utils.POW(r+c, 3))
}

func hernquistGradient(t float64, pars, q []float64, nDim int, grad []float64) {
	var (
		r   = radius(q, nDim)
		fac = pars[0] * pars[1] / (r * utils.POW(r+pars[2], 2))
	)
	for j := 0; j < nDim; j++ {
		grad[j] += fac * q[j]
	}
}

func hernquistHessian(t float64, pars, q []float64, nDim int, hess []float64) {
	var (
		r  = radius(q, nDim)
		Gm = pars[0] * pars[1]
		rc = r + pars[2]
	)
	sphericalHessian(q, nDim, r, Gm/(rc*rc), -2.*Gm/utils.POW(rc, 3), hess)
}
