package potential

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/crawfordsm/gala/utils"
)

// The batch driver: evaluate one quantity for N positions held as rows of a
// utils.Matrix, with a time array broadcast by index stride. All shape
// validation happens before the first evaluation, so a ShapeError means no
// output was written. A single undefined or singular sample yields NaN in
// its own output slot only.

// checkBatch validates the common batch preconditions and returns the
// sample count and the time index stride (0 broadcasts a single time over
// all samples).
func checkBatch(d *Descriptor, Q utils.Matrix, ts []float64, context string) (n, tStride int, err error) {
	if d == nil {
		return 0, 0, ErrNilPotential
	}
	var (
		nc int
	)
	n, nc = Q.Dims()
	if nc != d.nDim {
		return 0, 0, ShapeError{
			Context: context,
			Got:     fmt.Sprintf("%d position columns", nc),
			Want:    fmt.Sprintf("%d", d.nDim),
		}
	}
	switch len(ts) {
	case 1:
		tStride = 0
	case n:
		tStride = 1
	default:
		return 0, 0, ShapeError{
			Context: context,
			Got:     fmt.Sprintf("%d times", len(ts)),
			Want:    fmt.Sprintf("1 or %d", n),
		}
	}
	return n, tStride, nil
}

func checkScalarOut(out []float64, n int, context string) error {
	if len(out) != n {
		return ShapeError{
			Context: context,
			Got:     fmt.Sprintf("output length %d", len(out)),
			Want:    fmt.Sprintf("%d", n),
		}
	}
	return nil
}

// EvalValue fills out[i] with the potential value at row i of Q.
func EvalValue(d *Descriptor, Q utils.Matrix, ts, out []float64) error {
	n, tStride, err := checkBatch(d, Q, ts, "batch value")
	if err != nil {
		return err
	}
	if err = checkScalarOut(out, n, "batch value"); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		out[i] = d.Value(ts[i*tStride], Q.RowView(i))
	}
	return nil
}

// EvalDensity fills out[i] with the mass density at row i of Q.
func EvalDensity(d *Descriptor, Q utils.Matrix, ts, out []float64) error {
	n, tStride, err := checkBatch(d, Q, ts, "batch density")
	if err != nil {
		return err
	}
	if err = checkScalarOut(out, n, "batch density"); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		out[i] = d.Density(ts[i*tStride], Q.RowView(i))
	}
	return nil
}

// EvalGradient fills row i of out with the gradient at row i of Q. out must
// be N x nDim.
func EvalGradient(d *Descriptor, Q utils.Matrix, ts []float64, out utils.Matrix) error {
	n, tStride, err := checkBatch(d, Q, ts, "batch gradient")
	if err != nil {
		return err
	}
	onr, onc := out.Dims()
	if onr != n || onc != d.nDim {
		return ShapeError{
			Context: "batch gradient",
			Got:     fmt.Sprintf("output %dx%d", onr, onc),
			Want:    fmt.Sprintf("%dx%d", n, d.nDim),
		}
	}
	for i := 0; i < n; i++ {
		d.Gradient(ts[i*tStride], Q.RowView(i), out.RowView(i))
	}
	return nil
}

// EvalHessian fills out with N packed row-major nDim x nDim Hessians, one
// per row of Q. Use HessianView for a per-sample matrix view.
func EvalHessian(d *Descriptor, Q utils.Matrix, ts, out []float64) error {
	n, tStride, err := checkBatch(d, Q, ts, "batch hessian")
	if err != nil {
		return err
	}
	var (
		n2 = d.nDim * d.nDim
	)
	if len(out) != n*n2 {
		return ShapeError{
			Context: "batch hessian",
			Got:     fmt.Sprintf("output length %d", len(out)),
			Want:    fmt.Sprintf("%d", n*n2),
		}
	}
	for i := 0; i < n; i++ {
		d.Hessian(ts[i*tStride], Q.RowView(i), out[i*n2:(i+1)*n2])
	}
	return nil
}

// HessianView wraps sample i of an EvalHessian output buffer as an
// nDim x nDim matrix without copying.
func HessianView(out []float64, i, nDim int) utils.Matrix {
	var (
		n2 = nDim * nDim
	)
	return utils.NewMatrix(nDim, nDim, out[i*n2:(i+1)*n2])
}

// EvalRadialDeriv fills out[i] with dPhi/dr at row i of Q.
func EvalRadialDeriv(d *Descriptor, Q utils.Matrix, ts, out []float64) error {
	n, tStride, err := checkBatch(d, Q, ts, "batch dphi/dr")
	if err != nil {
		return err
	}
	if err = checkScalarOut(out, n, "batch dphi/dr"); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		out[i] = RadialDeriv(d, ts[i*tStride], Q.RowView(i))
	}
	return nil
}

// EvalRadialDeriv2 fills out[i] with d2Phi/dr2 at row i of Q.
func EvalRadialDeriv2(d *Descriptor, Q utils.Matrix, ts, out []float64) error {
	n, tStride, err := checkBatch(d, Q, ts, "batch d2phi/dr2")
	if err != nil {
		return err
	}
	if err = checkScalarOut(out, n, "batch d2phi/dr2"); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		out[i] = RadialDeriv2(d, ts[i*tStride], Q.RowView(i))
	}
	return nil
}

// EvalMassEnclosed fills out[i] with the spherically averaged enclosed mass
// at row i of Q. See MassEnclosed for the symmetry caveat.
func EvalMassEnclosed(d *Descriptor, Q utils.Matrix, ts []float64, G float64, out []float64) error {
	n, tStride, err := checkBatch(d, Q, ts, "batch enclosed mass")
	if err != nil {
		return err
	}
	if err = checkScalarOut(out, n, "batch enclosed mass"); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		out[i] = MassEnclosed(d, ts[i*tStride], Q.RowView(i), G)
	}
	return nil
}

// runParallel splits the sample range over np workers, each evaluating
// through its own descriptor clone. Writes are partitioned by sample index,
// so worker outputs never overlap and the result is identical to the serial
// loop.
func runParallel(d *Descriptor, n, np int, eval func(dd *Descriptor, i int)) {
	if np <= 0 {
		np = runtime.NumCPU()
	}
	if np > n {
		np = n
	}
	var (
		pm = utils.NewPartitionMap(np, n)
		wg sync.WaitGroup
	)
	wg.Add(np)
	for b := 0; b < np; b++ {
		go func(b int) {
			defer wg.Done()
			var (
				dd     = d.Clone()
				lo, hi = pm.GetBucketRange(b)
			)
			for i := lo; i < hi; i++ {
				eval(dd, i)
			}
		}(b)
	}
	wg.Wait()
}

// EvalValueParallel is EvalValue over np workers. np <= 0 uses all CPUs.
func EvalValueParallel(d *Descriptor, Q utils.Matrix, ts, out []float64, np int) error {
	n, tStride, err := checkBatch(d, Q, ts, "batch value")
	if err != nil {
		return err
	}
	if err = checkScalarOut(out, n, "batch value"); err != nil {
		return err
	}
	runParallel(d, n, np, func(dd *Descriptor, i int) {
		out[i] = dd.Value(ts[i*tStride], Q.RowView(i))
	})
	return nil
}

// EvalDensityParallel is EvalDensity over np workers.
func EvalDensityParallel(d *Descriptor, Q utils.Matrix, ts, out []float64, np int) error {
	n, tStride, err := checkBatch(d, Q, ts, "batch density")
	if err != nil {
		return err
	}
	if err = checkScalarOut(out, n, "batch density"); err != nil {
		return err
	}
	runParallel(d, n, np, func(dd *Descriptor, i int) {
		out[i] = dd.Density(ts[i*tStride], Q.RowView(i))
	})
	return nil
}

// EvalGradientParallel is EvalGradient over np workers.
func EvalGradientParallel(d *Descriptor, Q utils.Matrix, ts []float64, out utils.Matrix, np int) error {
	n, tStride, err := checkBatch(d, Q, ts, "batch gradient")
	if err != nil {
		return err
	}
	onr, onc := out.Dims()
	if onr != n || onc != d.nDim {
		return ShapeError{
			Context: "batch gradient",
			Got:     fmt.Sprintf("output %dx%d", onr, onc),
			Want:    fmt.Sprintf("%dx%d", n, d.nDim),
		}
	}
	runParallel(d, n, np, func(dd *Descriptor, i int) {
		dd.Gradient(ts[i*tStride], Q.RowView(i), out.RowView(i))
	})
	return nil
}

// EvalHessianParallel is EvalHessian over np workers.
func EvalHessianParallel(d *Descriptor, Q utils.Matrix, ts, out []float64, np int) error {
	n, tStride, err := checkBatch(d, Q, ts, "batch hessian")
	if err != nil {
		return err
	}
	var (
		n2 = d.nDim * d.nDim
	)
	if len(out) != n*n2 {
		return ShapeError{
			Context: "batch hessian",
			Got:     fmt.Sprintf("output length %d", len(out)),
			Want:    fmt.Sprintf("%d", n*n2),
		}
	}
	runParallel(d, n, np, func(dd *Descriptor, i int) {
		dd.Hessian(ts[i*tStride], Q.RowView(i), out[i*n2:(i+1)*n2])
	})
	return nil
}

// EvalRadialDerivParallel is EvalRadialDeriv over np workers.
func EvalRadialDerivParallel(d *Descriptor, Q utils.Matrix, ts, out []float64, np int) error {
	n, tStride, err := checkBatch(d, Q, ts, "batch dphi/dr")
	if err != nil {
		return err
	}
	if err = checkScalarOut(out, n, "batch dphi/dr"); err != nil {
		return err
	}
	runParallel(d, n, np, func(dd *Descriptor, i int) {
		out[i] = RadialDeriv(dd, ts[i*tStride], Q.RowView(i))
	})
	return nil
}

// EvalRadialDeriv2Parallel is EvalRadialDeriv2 over np workers.
func EvalRadialDeriv2Parallel(d *Descriptor, Q utils.Matrix, ts, out []float64, np int) error {
	n, tStride, err := checkBatch(d, Q, ts, "batch d2phi/dr2")
	if err != nil {
		return err
	}
	if err = checkScalarOut(out, n, "batch d2phi/dr2"); err != nil {
		return err
	}
	runParallel(d, n, np, func(dd *Descriptor, i int) {
		out[i] = RadialDeriv2(dd, ts[i*tStride], Q.RowView(i))
	})
	return nil
}

// EvalMassEnclosedParallel is EvalMassEnclosed over np workers.
func EvalMassEnclosedParallel(d *Descriptor, Q utils.Matrix, ts []float64, G float64, out []float64, np int) error {
	n, tStride, err := checkBatch(d, Q, ts, "batch enclosed mass")
	if err != nil {
		return err
	}
	if err = checkScalarOut(out, n, "batch enclosed mass"); err != nil {
		return err
	}
	runParallel(d, n, np, func(dd *Descriptor, i int) {
		out[i] = MassEnclosed(dd, ts[i*tStride], Q.RowView(i), G)
	})
	return nil
}
