package builtin

import (
	"github.com/crawfordsm/gala/potential"
)

/*
Henon-Heiles potential

	Phi(x,y) = (x^2 + y^2)/2 + x^2 y - y^3/3

The classic two-dimensional chaos testbed. Dimensionless: no parameters
beyond the reserved G slot, and only defined in two dimensions.
*/
func init() {
	potential.MustRegister(potential.Kind{
		Name:     "henonheiles",
		NDim:     2,
		Value:    henonHeilesValue,
		Gradient: henonHeilesGradient,
		Hessian:  henonHeilesHessian,
	})
}

func henonHeilesValue(t float64, pars, q []float64, nDim int) float64 {
	var (
		x, y = q[0], q[1]
	)
	return 0.5*(x*x+y*y) + x*x*y - y*y*y/3.
}

func henonHeilesGradient(t float64, pars, q []float64, nDim int, grad []float64) {
	var (
		x, y = q[0], q[1]
	)
	grad[0] += x + 2.*x*y
	grad[1] += y + x*x - y*y
}

func henonHeilesHessian(t float64, pars, q []float64, nDim int, hess []float64) {
	var (
		x, y = q[0], q[1]
	)
	hess[0*2+0] += 1. + 2.*y
	hess[0*2+1] += 2. * x
	hess[1*2+0] += 2. * x
	hess[1*2+1] += 1. - 2.*y
}
