package builtin

import (
	"math"

	"github.com/crawfordsm/gala/potential"
	"github.com/crawfordsm/gala/utils"
)

/*
Miyamoto-Nagai flattened disk

	Phi(x,y,z) = -G m / sqrt(x^2 + y^2 + (a + sqrt(z^2 + b^2))^2)

Parameters: m, the total mass, a, the radial scale length, and b, the
vertical scale height. Reduces to a Plummer sphere for a = 0 and to a
Kuzmin disk for b = 0. Only defined in three dimensions.
*/
func init() {
	potential.MustRegister(potential.Kind{
		Name:     "miyamotonagai",
		Params:   []string{"m", "a", "b"},
		NDim:     3,
		Value:    miyamotoNagaiValue,
		Density:  miyamotoNagaiDensity,
		Gradient: miyamotoNagaiGradient,
		Hessian:  miyamotoNagaiHessian,
	})
}

// miyamotoNagaiGeom returns the vertical factor zeta = sqrt(z^2 + b^2),
// the stretched height u = a + zeta and the effective distance
// D = sqrt(x^2 + y^2 + u^2) shared by all four quantities.
func miyamotoNagaiGeom(pars, q []float64) (zeta, u, D float64) {
	var (
		a, b = pars[2], pars[3]
	)
	zeta = math.Sqrt(q[2]*q[2] + b*b)
	u = a + zeta
	D = math.Sqrt(q[0]*q[0] + q[1]*q[1] + u*u)
	return
}

func miyamotoNagaiValue(t float64, pars, q []float64, nDim int) float64 {
	_, _, D := miyamotoNagaiGeom(pars, q)
	return -pars[0] * pars[1] / D
}

func miyamotoNagaiDensity(t float64, pars, q []float64, nDim int) float64 {
	var (
		m, a, b    = pars[1], pars[2], pars[3]
		zeta, u, D = miyamotoNagaiGeom(pars, q)
		R2         = q[0]*q[0] + q[1]*q[1]
	)
	return b * b * m / (4. * math.Pi) * (a*R2 + (a+3.*zeta)*u*u) /
		(utils.POW(D, 5) * utils.POW(zeta, 3))
}

func miyamotoNagaiGradient(t float64, pars, q []float64, nDim int, grad []float64) {
	var (
		zeta, u, D = miyamotoNagaiGeom(pars, q)
		fac        = pars[0] * pars[1] / utils.POW(D, 3)
	)
	grad[0] += fac * q[0]
	grad[1] += fac * q[1]
	grad[2] += fac * q[2] * u / zeta
}

func miyamotoNagaiHessian(t float64, pars, q []float64, nDim int, hess []float64) {
	var (
		Gm         = pars[0] * pars[1]
		a          = pars[2]
		zeta, u, D = miyamotoNagaiGeom(pars, q)
		x, y, z    = q[0], q[1], q[2]
		D3         = utils.POW(D, 3)
		D5         = utils.POW(D, 5)
		xz, yz     = -3. * Gm * x * z * u / (zeta * D5), -3. * Gm * y * z * u / (zeta * D5)
	)
	hess[0*3+0] += Gm * (1./D3 - 3.*x*x/D5)
	hess[1*3+1] += Gm * (1./D3 - 3.*y*y/D5)
	hess[2*3+2] += Gm * (u/(zeta*D3) - a*z*z/(utils.POW(zeta, 3)*D3) -
		3.*u*u*z*z/(zeta*zeta*D5))
	hess[0*3+1] += -3. * Gm * x * y / D5
	hess[1*3+0] += -3. * Gm * x * y / D5
	hess[0*3+2] += xz
	hess[2*3+0] += xz
	hess[1*3+2] += yz
	hess[2*3+1] += yz
}
