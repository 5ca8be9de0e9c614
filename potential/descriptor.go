// Package potential evaluates gravitational potentials: the scalar value
// (per-mass energy), mass density, gradient and Hessian of one component or
// of a composite sum of components, plus numerical radial derivatives built
// on top of the value evaluation. A Descriptor packs the parameter blocks,
// origins and per-quantity implementation tables of all of its components
// into flat storage so that hot evaluation loops touch no maps and allocate
// nothing.
package potential

import (
	"fmt"

	"github.com/crawfordsm/gala/utils"
)

// Descriptor is the evaluatable form of a potential. A leaf descriptor has
// one component slot; a composite descriptor carries one slot per child, all
// sharing the same dimensionality. Parameter blocks for all slots live
// packed in one buffer, located by offset. Slots whose kind does not define
// a quantity hold NaN sentinel implementations there, so every evaluation
// can walk all slots unconditionally.
//
// A Descriptor owns its parameter, origin and scratch storage. The scratch
// buffers make evaluation allocation-free but tie a descriptor to one
// goroutine at a time; Clone gives an independently usable handle sharing
// the read-only storage.
type Descriptor struct {
	nDim        int
	nComponents int

	parameters []float64
	nParams    []int
	offsets    []int
	origins    [][]float64
	rotations  [][]float64 // row-major nDim x nDim, nil = identity

	value    []ValueFunc
	density  []DensityFunc
	gradient []GradientFunc
	hessian  []HessianFunc
	caps     []Capability

	// Scratch, private to the goroutine using this handle.
	qs []float64 // origin-shifted (and rotated) position
	gs []float64 // slot gradient before rotating back
	hs []float64 // slot Hessian before conjugation
	qd []float64 // probe position for the radial derivative stencils
}

// NewDescriptor builds a single-slot descriptor holding copies of the
// parameter block and origin, with every quantity left at its NaN sentinel.
// Kind implementations are installed on top by NewKind. The origin length
// must match nDim; violating that is a construction bug and panics.
func NewDescriptor(pars, origin []float64, nDim int) (d *Descriptor) {
	if nDim < 1 {
		panic(fmt.Errorf("descriptor dimensionality must be positive, have %d", nDim))
	}
	if len(origin) != nDim {
		panic(fmt.Errorf("mismatch in allocation: NewDescriptor nDim = %d, len(origin) = %d", nDim, len(origin)))
	}
	var (
		parsC   = make([]float64, len(pars))
		originC = make([]float64, nDim)
	)
	copy(parsC, pars)
	copy(originC, origin)
	d = &Descriptor{
		nDim:        nDim,
		nComponents: 1,
		parameters:  parsC,
		nParams:     []int{len(pars)},
		offsets:     []int{0},
		origins:     [][]float64{originC},
		rotations:   [][]float64{nil},
		value:       []ValueFunc{nanValue},
		density:     []DensityFunc{nanDensity},
		gradient:    []GradientFunc{nanGradient},
		hessian:     []HessianFunc{nanHessian},
		caps:        []Capability{0},
	}
	d.allocScratch()
	return
}

// NewKind builds a leaf descriptor for a registered kind. The parameter
// block must carry the gravitational constant followed by the kind's named
// constants, in order.
func NewKind(name string, pars, origin []float64, nDim int) (d *Descriptor, err error) {
	var (
		k Kind
	)
	if k, err = LookupKind(name); err != nil {
		return nil, err
	}
	if k.NDim != 0 && k.NDim != nDim {
		return nil, ShapeError{
			Context: "kind " + name,
			Got:     fmt.Sprintf("nDim = %d", nDim),
			Want:    fmt.Sprintf("nDim = %d", k.NDim),
		}
	}
	if len(pars) != k.NParams() {
		return nil, ShapeError{
			Context: "kind " + name,
			Got:     fmt.Sprintf("%d parameters", len(pars)),
			Want:    fmt.Sprintf("%d (G then %v)", k.NParams(), k.Params),
		}
	}
	if len(origin) != nDim {
		return nil, ShapeError{
			Context: "kind " + name,
			Got:     fmt.Sprintf("origin length %d", len(origin)),
			Want:    fmt.Sprintf("origin length %d", nDim),
		}
	}
	d = NewDescriptor(pars, origin, nDim)
	d.install(0, k)
	return
}

// install replaces slot s's sentinel table with the kind's implementations.
// All quantities of a slot are installed through this one path, so a slot is
// never part real, part stale.
func (d *Descriptor) install(s int, k Kind) {
	if k.Value != nil {
		d.value[s] = k.Value
	}
	if k.Density != nil {
		d.density[s] = k.Density
	}
	if k.Gradient != nil {
		d.gradient[s] = k.Gradient
	}
	if k.Hessian != nil {
		d.hessian[s] = k.Hessian
	}
	d.caps[s] = k.Capabilities()
}

func (d *Descriptor) allocScratch() {
	d.qs = make([]float64, d.nDim)
	d.gs = make([]float64, d.nDim)
	d.hs = make([]float64, d.nDim*d.nDim)
	d.qd = make([]float64, d.nDim)
}

func (d *Descriptor) NDim() int        { return d.nDim }
func (d *Descriptor) NComponents() int { return d.nComponents }

// Descriptor satisfies Potential, so a leaf can stand anywhere a composite
// can.
func (d *Descriptor) Descriptor() *Descriptor { return d }

// Parameters returns slot s's parameter block as a view into the packed
// buffer. Treat it as read only.
func (d *Descriptor) Parameters(s int) []float64 {
	var (
		off = d.offsets[s]
	)
	return d.parameters[off : off+d.nParams[s]]
}

// Origin returns a copy of slot s's origin. Descriptor storage is never
// aliased out.
func (d *Descriptor) Origin(s int) (o []float64) {
	o = make([]float64, d.nDim)
	copy(o, d.origins[s])
	return
}

// SetRotation installs a rotation for slot s, applied to the origin-shifted
// position before the slot implementations run. Gradients are rotated back
// and Hessians conjugated, so callers always see world-frame results. R must
// be nDim x nDim; its contents are copied.
func (d *Descriptor) SetRotation(s int, R utils.Matrix) error {
	var (
		nr, nc = R.Dims()
		n      = d.nDim
	)
	if nr != n || nc != n {
		return ShapeError{
			Context: "slot rotation",
			Got:     fmt.Sprintf("%dx%d", nr, nc),
			Want:    fmt.Sprintf("%dx%d", n, n),
		}
	}
	rC := make([]float64, n*n)
	copy(rC, R.DataP)
	d.rotations[s] = rC
	return nil
}

// Rotation returns a copy of slot s's rotation matrix and whether one is
// set.
func (d *Descriptor) Rotation(s int) (R utils.Matrix, ok bool) {
	if d.rotations[s] == nil {
		return
	}
	var (
		n  = d.nDim
		rC = make([]float64, n*n)
	)
	copy(rC, d.rotations[s])
	return utils.NewMatrix(n, n, rC), true
}

// Defines reports whether every slot carries a real implementation of the
// quantity. When it returns false the corresponding evaluation still runs
// and yields NaN.
func (d *Descriptor) Defines(q Quantity) bool {
	for s := 0; s < d.nComponents; s++ {
		if !d.caps[s].Has(q) {
			return false
		}
	}
	return true
}

// Clone returns a handle sharing the descriptor's parameter, origin and
// implementation storage but owning fresh scratch buffers. Clones evaluate
// concurrently with the original; one clone per goroutine is the concurrency
// unit of the parallel batch driver.
func (d *Descriptor) Clone() *Descriptor {
	c := *d
	c.allocScratch()
	return &c
}
