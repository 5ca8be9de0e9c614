package builtin

import (
	"math"

	"github.com/crawfordsm/gala/potential"
	"github.com/crawfordsm/gala/utils"
)

/*
Isochrone sphere

	Phi(r) = -G m / (b + a),  a = sqrt(b^2 + r^2)

Parameters: m, the total mass, and b, the core radius. Every bound orbit
in this potential is analytic, which makes it a common regression target.
No closed-form Hessian is registered.
*/
func init() {
	potential.MustRegister(potential.Kind{
		Name:     "isochrone",
		Params:   []string{"m", "b"},
		Value:    isochroneValue,
		Density:  isochroneDensity,
		Gradient: isochroneGradient,
	})
}

func isochroneValue(t float64, pars, q []float64, nDim int) float64 {
	var (
		b = pars[2]
		a = math.Sqrt(b*b + radius2(q, nDim))
	)
	return -pars[0] * pars[1] / (b + a)
}

func isochroneDensity(t float64, pars, q []float64, nDim int) float64 {
	var (
		m, b = pars[1], pars[2]
		r2   = radius2(q, nDim)
		a    = math.Sqrt(b*b + r2)
	)
	return m * (3.*(b+a)*a*a - r2*(b+3.*a)) /
		(4. * math.Pi * utils.POW(b+a, 3) * utils.POW(a, 3))
}

func isochroneGradient(t float64, pars, q []float64, nDim int, grad []float64) {
	var (
		b   = pars[2]
		a   = math.Sqrt(b*b + radius2(q, nDim))
		fac = pars[0] * pars[1] / (a * utils.POW(b+a, 2))
	)
	for j := 0; j < nDim; j++ {
		grad[j] += fac * q[j]
	}
}
