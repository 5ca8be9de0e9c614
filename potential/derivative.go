package potential

import (
	"math"

	"github.com/crawfordsm/gala/utils"
)

// Numerical radial derivatives of the potential value, for kinds that carry
// no closed forms and for the spherically averaged enclosed mass. Both
// stencils step along the unit radial direction with a step proportional to
// the radius, floored by an absolute minimum so positions near the origin do
// not collapse the stencil into cancellation.
const (
	radialStepFrac = 1.e-2
	radialStepMin  = 1.e-8
)

func radialStep(r float64) (eps float64) {
	eps = radialStepFrac * r
	if eps < radialStepMin {
		eps = radialStepMin
	}
	return
}

// RadialDeriv computes dPhi/dr at q by central difference of Value along the
// radial direction. At the exact origin the radial direction is undefined
// and the result is NaN, as it is when Value itself is undefined.
func RadialDeriv(d *Descriptor, t float64, q []float64) float64 {
	var (
		n   = d.nDim
		r   = utils.Norm2(q[:n])
		eps = radialStep(r)
	)
	for j := 0; j < n; j++ {
		d.qd[j] = q[j] * (1. + eps/r)
	}
	fp := d.Value(t, d.qd)
	for j := 0; j < n; j++ {
		d.qd[j] = q[j] * (1. - eps/r)
	}
	fm := d.Value(t, d.qd)
	return (fp - fm) / (2. * eps)
}

// RadialDeriv2 computes d2Phi/dr2 at q with the three-point second
// derivative stencil, using the same radial step policy as RadialDeriv.
func RadialDeriv2(d *Descriptor, t float64, q []float64) float64 {
	var (
		n   = d.nDim
		r   = utils.Norm2(q[:n])
		eps = radialStep(r)
		f0  = d.Value(t, q)
	)
	for j := 0; j < n; j++ {
		d.qd[j] = q[j] * (1. + eps/r)
	}
	fp := d.Value(t, d.qd)
	for j := 0; j < n; j++ {
		d.qd[j] = q[j] * (1. - eps/r)
	}
	fm := d.Value(t, d.qd)
	return (fp - 2.*f0 + fm) / (eps * eps)
}

// MassEnclosed estimates the mass inside radius |q| from the radial force,
// M(r) = |r^2 dPhi/dr| / G, with G in the same unit system as the
// descriptor's parameters. The estimate assumes spherical symmetry: for
// flattened or triaxial potentials it depends on the direction of q and is
// only an approximation. The absolute value keeps the estimate positive
// in shallow regions where the numerical derivative can cross zero.
func MassEnclosed(d *Descriptor, t float64, q []float64, G float64) float64 {
	var (
		r    = utils.Norm2(q[:d.nDim])
		dphi = RadialDeriv(d, t, q)
	)
	return math.Abs(r*r*dphi) / G
}
