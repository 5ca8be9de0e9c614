package builtin

import (
	"math"

	"github.com/crawfordsm/gala/potential"
)

/*
Triaxial logarithmic halo

	Phi(q) = v0^2/2 ln(rh^2 + x^2/q1^2 + y^2/q2^2 + z^2/q3^2)

Parameters: v0, the circular velocity at large radius, rh, the core
radius, and the axis flattenings q1, q2, q3. Produces a flat rotation
curve; the leading G slot is reserved but unused. Only defined in three
dimensions.
*/
func init() {
	potential.MustRegister(potential.Kind{
		Name:     "logarithmic",
		Params:   []string{"v0", "rh", "q1", "q2", "q3"},
		NDim:     3,
		Value:    logarithmicValue,
		Gradient: logarithmicGradient,
		Hessian:  logarithmicHessian,
	})
}

func logarithmicS(pars, q []float64) (S float64) {
	S = pars[2] * pars[2]
	for j := 0; j < 3; j++ {
		a := pars[3+j]
		S += q[j] * q[j] / (a * a)
	}
	return
}

func logarithmicValue(t float64, pars, q []float64, nDim int) float64 {
	var (
		v0 = pars[1]
	)
	return 0.5 * v0 * v0 * math.Log(logarithmicS(pars, q))
}

func logarithmicGradient(t float64, pars, q []float64, nDim int, grad []float64) {
	var (
		v0  = pars[1]
		fac = v0 * v0 / logarithmicS(pars, q)
	)
	for j := 0; j < 3; j++ {
		a := pars[3+j]
		grad[j] += fac * q[j] / (a * a)
	}
}

func logarithmicHessian(t float64, pars, q []float64, nDim int, hess []float64) {
	var (
		v0 = pars[1]
		S  = logarithmicS(pars, q)
		v2 = v0 * v0
	)
	for i := 0; i < 3; i++ {
		ai2 := pars[3+i] * pars[3+i]
		for j := 0; j < 3; j++ {
			var (
				aj2 = pars[3+j] * pars[3+j]
				h   = -2. * v2 * q[i] * q[j] / (ai2 * aj2 * S * S)
			)
			if i == j {
				h += v2 / (ai2 * S)
			}
			hess[i*3+j] += h
		}
	}
}
