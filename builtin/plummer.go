package builtin

import (
	"math"

	"github.com/crawfordsm/gala/potential"
	"github.com/crawfordsm/gala/utils"
)

/*
Plummer sphere

	Phi(r) = -G m / sqrt(r^2 + b^2)

Parameters: m, the total mass, and b, the scale (softening) radius. All
quantities are smooth through the center, so the Hessian carries a direct
form rather than the radial one.
*/
func init() {
	potential.MustRegister(potential.Kind{
		Name:     "plummer",
		Params:   []string{"m", "b"},
		Value:    plummerValue,
		Density:  plummerDensity,
		Gradient: plummerGradient,
		Hessian:  plummerHessian,
	})
}

func plummerValue(t float64, pars, q []float64, nDim int) float64 {
	var (
		b = pars[2]
	)
	return -pars[0] * pars[1] / math.Sqrt(radius2(q, nDim)+b*b)
}

func plummerDensity(t float64, pars, q []float64, nDim int) float64 {
	var (
		m, b = pars[1], pars[2]
	)
	return 3. * m / (4. * math.Pi * utils.POW(b, 3)) *
		math.Pow(1.+radius2(q, nDim)/(b*b), -2.5)
}

func plummerGradient(t float64, pars, q []float64, nDim int, grad []float64) {
	var (
		b   = pars[2]
		s   = math.Sqrt(radius2(q, nDim) + b*b)
		fac = pars[0] * pars[1] / utils.POW(s, 3)
	)
	for j := 0; j < nDim; j++ {
		grad[j] += fac * q[j]
	}
}

func plummerHessian(t float64, pars, q []float64, nDim int, hess []float64) {
	var (
		b      = pars[2]
		s      = math.Sqrt(radius2(q, nDim) + b*b)
		Gm     = pars[0] * pars[1]
		s3, s5 = utils.POW(s, 3), utils.POW(s, 5)
	)
	for i := 0; i < nDim; i++ {
		for j := 0; j < nDim; j++ {
			h := -3. * Gm * q[i] * q[j] / s5
			if i == j {
				h += Gm / s3
			}
			hess[i*nDim+j] += h
		}
	}
}
