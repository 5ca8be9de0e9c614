// Package builtin registers the built-in potential kinds with the core
// registry. Importing it, usually for side effects, makes the standard kinds
// available to potential.NewKind and to model files:
//
//	import _ "github.com/crawfordsm/gala/builtin"
//
// Every kind's parameter block starts with the gravitational constant G in
// the caller's unit system, followed by the named constants listed in its
// registration. Kinds without a closed form for some quantity leave that
// slot nil and evaluate to NaN there.
package builtin

import (
	"github.com/crawfordsm/gala/utils"
)

// sphericalHessian accumulates the Hessian of a spherically symmetric
// potential from its radial derivatives at radius r:
//
//	H_ij = (delta_ij/r - q_i q_j/r^3) Phi' + (q_i q_j/r^2) Phi''
//
// Kinds with a cuspy center use this; kinds smooth at r = 0 carry a direct
// form instead, because the delta_ij/r term is 0/0 at the exact center.
func sphericalHessian(q []float64, nDim int, r, dPhi, d2Phi float64, hess []float64) {
	var (
		fac = d2Phi/(r*r) - dPhi/utils.POW(r, 3)
	)
	for i := 0; i < nDim; i++ {
		for j := 0; j < nDim; j++ {
			h := q[i] * q[j] * fac
			if i == j {
				h += dPhi / r
			}
			hess[i*nDim+j] += h
		}
	}
}

func radius2(q []float64, nDim int) (r2 float64) {
	for j := 0; j < nDim; j++ {
		r2 += q[j] * q[j]
	}
	return
}

func radius(q []float64, nDim int) float64 {
	return utils.Norm2(q[:nDim])
}
