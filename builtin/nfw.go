package builtin

import (
	"math"

	"github.com/crawfordsm/gala/potential"
	"github.com/crawfordsm/gala/utils"
)

/*
Navarro-Frenk-White halo

	Phi(r) = -G m ln(1 + r/rs) / r

Parameters: m, the scale mass, and rs, the scale radius. The cumulative
mass diverges logarithmically, so m is a normalization rather than a
total.
*/
func init() {
	potential.MustRegister(potential.Kind{
		Name:     "nfw",
		Params:   []string{"m", "rs"},
		Value:    nfwValue,
		Density:  nfwDensity,
		Gradient: nfwGradient,
		Hessian:  nfwHessian,
	})
}

func nfwValue(t float64, pars, q []float64, nDim int) float64 {
	var (
		rs = pars[2]
		r  = radius(q, nDim)
	)
	return -pars[0] * pars[1] * math.Log(1.+r/rs) / r
}

func nfwDensity(t float64, pars, q []float64, nDim int) float64 {
	var (
		m, rs = pars[1], pars[2]
		r     = radius(q, nDim)
	)
	return m / (4. * math.Pi * r * utils.POW(r+rs, 2))
}

// nfwRadialDeriv returns dPhi/dr at radius r.
func nfwRadialDeriv(Gm, rs, r float64) float64 {
	return Gm * (math.Log(1.+r/rs)/(r*r) - 1./(r*(r+rs)))
}

func nfwGradient(t float64, pars, q []float64, nDim int, grad []float64) {
	var (
		r   = radius(q, nDim)
		fac = nfwRadialDeriv(pars[0]*pars[1], pars[2], r) / r
	)
	for j := 0; j < nDim; j++ {
		grad[j] += fac * q[j]
	}
}

func nfwHessian(t float64, pars, q []float64, nDim int, hess []float64) {
	var (
		Gm, rs = pars[0] * pars[1], pars[2]
		r      = radius(q, nDim)
		r2     = r * r
		d2Phi  = Gm * (1./(r2*(r+rs)) - 2.*math.Log(1.+r/rs)/utils.POW(r, 3) +
			(rs+2.*r)/(r2*utils.POW(r+rs, 2)))
	)
	sphericalHessian(q, nDim, r, nfwRadialDeriv(Gm, rs, r), d2Phi, hess)
}
