package potential

import (
	"math"
	"testing"

	"github.com/crawfordsm/gala/utils"
	"github.com/stretchr/testify/assert"
)

// Test kinds with closed forms simple enough to verify by hand. They are
// installed directly, without going through the registry, so the registry
// tests stay in control of the global kind table.

// harmonicKind: Phi = k r^2 / 2, pars = [G, k]. All four quantities defined,
// and every central difference of a quadratic is exact up to rounding.
func harmonicKind() Kind {
	return Kind{
		Name:   "harmonic",
		Params: []string{"k"},
		Value: func(t float64, pars, q []float64, nDim int) float64 {
			var r2 float64
			for j := 0; j < nDim; j++ {
				r2 += q[j] * q[j]
			}
			return 0.5 * pars[1] * r2
		},
		Density: func(t float64, pars, q []float64, nDim int) float64 {
			return pars[1] * float64(nDim) / (4. * math.Pi * pars[0])
		},
		Gradient: func(t float64, pars, q []float64, nDim int, grad []float64) {
			for j := 0; j < nDim; j++ {
				grad[j] += pars[1] * q[j]
			}
		},
		Hessian: func(t float64, pars, q []float64, nDim int, hess []float64) {
			for j := 0; j < nDim; j++ {
				hess[j*nDim+j] += pars[1]
			}
		},
	}
}

// anisoKind: Phi = sum_j a_j q_j^2 / 2, pars = [G, a_0, ..]. Distinguishes
// the axes, which makes rotation handling visible.
func anisoKind() Kind {
	return Kind{
		Name:   "aniso",
		Params: []string{"a0", "a1", "a2"},
		NDim:   3,
		Value: func(t float64, pars, q []float64, nDim int) float64 {
			var v float64
			for j := 0; j < nDim; j++ {
				v += 0.5 * pars[1+j] * q[j] * q[j]
			}
			return v
		},
		Gradient: func(t float64, pars, q []float64, nDim int, grad []float64) {
			for j := 0; j < nDim; j++ {
				grad[j] += pars[1+j] * q[j]
			}
		},
		Hessian: func(t float64, pars, q []float64, nDim int, hess []float64) {
			for j := 0; j < nDim; j++ {
				hess[j*nDim+j] += pars[1+j]
			}
		},
	}
}

// rampKind: Phi = c t x, pars = [G, c]. Value only, so density, gradient and
// Hessian run through the NaN sentinels; the t factor makes time plumbing
// visible.
func rampKind() Kind {
	return Kind{
		Name:   "ramp",
		Params: []string{"c"},
		Value: func(t float64, pars, q []float64, nDim int) float64 {
			return pars[1] * t * q[0]
		},
	}
}

func newTestKind(k Kind, pars, origin []float64, nDim int) *Descriptor {
	d := NewDescriptor(pars, origin, nDim)
	d.install(0, k)
	return d
}

func numericalGradient(d *Descriptor, t float64, q []float64, h float64) (grad []float64) {
	var (
		n  = d.NDim()
		qp = make([]float64, n)
	)
	grad = make([]float64, n)
	for j := 0; j < n; j++ {
		copy(qp, q)
		qp[j] = q[j] + h
		fp := d.Value(t, qp)
		qp[j] = q[j] - h
		fm := d.Value(t, qp)
		grad[j] = (fp - fm) / (2. * h)
	}
	return
}

func numericalHessian(d *Descriptor, t float64, q []float64, h float64) (hess []float64) {
	var (
		n  = d.NDim()
		qp = make([]float64, n)
		gp = make([]float64, n)
		gm = make([]float64, n)
	)
	hess = make([]float64, n*n)
	for j := 0; j < n; j++ {
		copy(qp, q)
		qp[j] = q[j] + h
		d.Gradient(t, qp, gp)
		qp[j] = q[j] - h
		d.Gradient(t, qp, gm)
		for i := 0; i < n; i++ {
			hess[i*n+j] = (gp[i] - gm[i]) / (2. * h)
		}
	}
	return
}

func rotationZ(theta float64) utils.Matrix {
	var (
		c, s = math.Cos(theta), math.Sin(theta)
	)
	return utils.NewMatrix(3, 3, []float64{
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	})
}

func TestDispatch(t *testing.T) {
	var (
		G = 2.5
		k = 1.7
		q = []float64{1.1, -0.4, 2.3}
	)
	// Single slot closed forms
	{
		d := newTestKind(harmonicKind(), []float64{G, k}, []float64{0, 0, 0}, 3)
		r2 := q[0]*q[0] + q[1]*q[1] + q[2]*q[2]
		assert.Equal(t, 0.5*k*r2, d.Value(0, q))
		assert.Equal(t, 3.*k/(4.*math.Pi*G), d.Density(0, q))
		grad := make([]float64, 3)
		d.Gradient(0, q, grad)
		assert.Equal(t, []float64{k * q[0], k * q[1], k * q[2]}, grad)
		hess := make([]float64, 9)
		d.Hessian(0, q, hess)
		assert.Equal(t, []float64{
			k, 0, 0,
			0, k, 0,
			0, 0, k,
		}, hess)
	}
	// Origin shift
	{
		o := []float64{0.5, -1, 2}
		d := newTestKind(harmonicKind(), []float64{G, k}, o, 3)
		centered := newTestKind(harmonicKind(), []float64{G, k}, []float64{0, 0, 0}, 3)
		shifted := []float64{q[0] - o[0], q[1] - o[1], q[2] - o[2]}
		assert.Equal(t, centered.Value(0, shifted), d.Value(0, q))
		grad := make([]float64, 3)
		d.Gradient(0, q, grad)
		assert.Equal(t, []float64{k * shifted[0], k * shifted[1], k * shifted[2]}, grad)
	}
	// Time passes through to the slot implementations
	{
		d := newTestKind(rampKind(), []float64{G, 5}, []float64{0, 0, 0}, 3)
		assert.Equal(t, 5.*2.*q[0], d.Value(2, q))
		assert.Equal(t, 5.*7.*q[0], d.Value(7, q))
	}
	// Sentinel slots yield NaN for the missing quantities without touching
	// the defined ones
	{
		d := newTestKind(rampKind(), []float64{G, 5}, []float64{0, 0, 0}, 3)
		assert.False(t, math.IsNaN(d.Value(1, q)))
		assert.True(t, math.IsNaN(d.Density(1, q)))
		grad := make([]float64, 3)
		d.Gradient(1, q, grad)
		for j := 0; j < 3; j++ {
			assert.True(t, math.IsNaN(grad[j]))
		}
		hess := make([]float64, 9)
		d.Hessian(1, q, hess)
		for j := 0; j < 9; j++ {
			assert.True(t, math.IsNaN(hess[j]))
		}
		assert.True(t, d.Defines(Energy))
		assert.False(t, d.Defines(Density))
		assert.False(t, d.Defines(Gradient))
		assert.False(t, d.Defines(Hessian))
	}
	// Gradient and Hessian buffers are zeroed by the dispatch, not
	// accumulated across calls
	{
		d := newTestKind(harmonicKind(), []float64{G, k}, []float64{0, 0, 0}, 3)
		grad := []float64{99, 99, 99}
		d.Gradient(0, q, grad)
		assert.Equal(t, []float64{k * q[0], k * q[1], k * q[2]}, grad)
	}
}

func TestDispatchRotation(t *testing.T) {
	var (
		G    = 1.0
		q    = []float64{1.2, -0.7, 0.9}
		tol  = 1.e-8
		pars = []float64{G, 1, 4, 9}
	)
	// A spherical kind cannot see a rotation
	{
		d := newTestKind(harmonicKind(), []float64{G, 2}, []float64{0, 0, 0}, 3)
		plain := d.Value(0, q)
		assert.NoError(t, d.SetRotation(0, rotationZ(0.6)))
		assert.InDelta(t, plain, d.Value(0, q), 1.e-13)
	}
	// Identity rotation is a no-op for an anisotropic kind
	{
		d := newTestKind(anisoKind(), pars, []float64{0, 0, 0}, 3)
		plain := d.Value(0, q)
		assert.NoError(t, d.SetRotation(0, rotationZ(0)))
		assert.InDelta(t, plain, d.Value(0, q), 1.e-14)
	}
	// A quarter turn about z hands the x constant to the y axis
	{
		d := newTestKind(anisoKind(), pars, []float64{0, 0, 0}, 3)
		assert.NoError(t, d.SetRotation(0, rotationZ(math.Pi/2)))
		want := 0.5 * (pars[2]*q[0]*q[0] + pars[1]*q[1]*q[1] + pars[3]*q[2]*q[2])
		assert.InDelta(t, want, d.Value(0, q), 1.e-13)
	}
	// Rotated gradients obey the chain rule: compare against central
	// differences of the rotated descriptor's own value
	{
		d := newTestKind(anisoKind(), pars, []float64{0.3, 0.1, -0.2}, 3)
		assert.NoError(t, d.SetRotation(0, rotationZ(1.1)))
		grad := make([]float64, 3)
		d.Gradient(0, q, grad)
		want := numericalGradient(d, 0, q, 1.e-4)
		for j := 0; j < 3; j++ {
			assert.InDelta(t, want[j], grad[j], tol)
		}
	}
	// Rotated Hessians are conjugated consistently with the gradient
	{
		d := newTestKind(anisoKind(), pars, []float64{0, 0, 0}, 3)
		assert.NoError(t, d.SetRotation(0, rotationZ(0.8)))
		hess := make([]float64, 9)
		d.Hessian(0, q, hess)
		want := numericalHessian(d, 0, q, 1.e-4)
		for j := 0; j < 9; j++ {
			assert.InDelta(t, want[j], hess[j], tol)
		}
		// Symmetry survives the conjugation
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				assert.InDelta(t, hess[i*3+j], hess[j*3+i], 1.e-12)
			}
		}
	}
}
