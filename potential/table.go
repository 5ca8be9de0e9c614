package potential

import "math"

// Slot implementation signatures. Every implementation receives the
// evaluation time, its own parameter block (gravitational constant first,
// then the kind's named constants), the origin-shifted position and the
// dimensionality. Gradient and Hessian implementations accumulate with +=
// into the output buffer so that composite slots sum naturally; the caller
// zeroes the buffer once per evaluation, not once per slot.
type (
	ValueFunc    func(t float64, pars, q []float64, nDim int) float64
	DensityFunc  func(t float64, pars, q []float64, nDim int) float64
	GradientFunc func(t float64, pars, q []float64, nDim int, grad []float64)
	HessianFunc  func(t float64, pars, q []float64, nDim int, hess []float64)
)

// Quantity enumerates the four evaluable quantities of a descriptor.
type Quantity uint8

const (
	Energy Quantity = iota
	Density
	Gradient
	Hessian
)

func (q Quantity) String() string {
	switch q {
	case Energy:
		return "energy"
	case Density:
		return "density"
	case Gradient:
		return "gradient"
	case Hessian:
		return "hessian"
	}
	return "unknown"
}

// Capability is a bitmask of the quantities a slot genuinely implements, as
// opposed to the NaN sentinels standing in for missing ones.
type Capability uint8

const (
	CapEnergy   Capability = 1 << Energy
	CapDensity  Capability = 1 << Density
	CapGradient Capability = 1 << Gradient
	CapHessian  Capability = 1 << Hessian
)

func (c Capability) Has(q Quantity) bool {
	return c&(1<<q) != 0
}

// Sentinel implementations installed in every slot position left empty by a
// kind. They yield NaN rather than failing: an undefined quantity is data,
// and a single sentinel slot poisons the whole composite sum.

func nanValue(t float64, pars, q []float64, nDim int) float64 {
	return math.NaN()
}

func nanDensity(t float64, pars, q []float64, nDim int) float64 {
	return math.NaN()
}

func nanGradient(t float64, pars, q []float64, nDim int, grad []float64) {
	for j := 0; j < nDim; j++ {
		grad[j] += math.NaN()
	}
}

func nanHessian(t float64, pars, q []float64, nDim int, hess []float64) {
	for j := 0; j < nDim*nDim; j++ {
		hess[j] += math.NaN()
	}
}
