package potential

// The dispatch core: each public evaluation walks every component slot,
// shifts the query position into the slot frame through descriptor-owned
// scratch, calls the slot implementation with a view into the packed
// parameter buffer and accumulates. Nothing here allocates, so a tight batch
// loop over millions of samples runs at slot-call cost.
//
// Positions are raw []float64 of length >= nDim; only the first nDim entries
// are read. The evaluation methods are not safe for concurrent use on one
// handle because of the shared scratch; use Clone per goroutine.

// shift moves q into slot s's frame: subtract the slot origin, then rotate
// if the slot carries a rotation. The result lives in d.qs until the next
// shift on this handle.
func (d *Descriptor) shift(s int, q []float64) []float64 {
	var (
		n = d.nDim
		o = d.origins[s]
		R = d.rotations[s]
	)
	if R == nil {
		for j := 0; j < n; j++ {
			d.qs[j] = q[j] - o[j]
		}
		return d.qs
	}
	for i := 0; i < n; i++ {
		var acc float64
		for j := 0; j < n; j++ {
			acc += R[i*n+j] * (q[j] - o[j])
		}
		d.qs[i] = acc
	}
	return d.qs
}

func (d *Descriptor) slotParams(s int) []float64 {
	var (
		off = d.offsets[s]
	)
	return d.parameters[off : off+d.nParams[s]]
}

// Value evaluates the potential (per-mass energy) at position q and time t,
// summed over all component slots. Slots without a value implementation
// contribute NaN.
func (d *Descriptor) Value(t float64, q []float64) (v float64) {
	for s := 0; s < d.nComponents; s++ {
		v += d.value[s](t, d.slotParams(s), d.shift(s, q), d.nDim)
	}
	return
}

// Density evaluates the mass density at position q and time t, summed over
// all component slots.
func (d *Descriptor) Density(t float64, q []float64) (rho float64) {
	for s := 0; s < d.nComponents; s++ {
		rho += d.density[s](t, d.slotParams(s), d.shift(s, q), d.nDim)
	}
	return
}

// Gradient evaluates the potential gradient at position q and time t into
// grad, which must have length >= nDim. grad is zeroed first, then every
// slot accumulates; rotated slots accumulate through scratch and are rotated
// back to the world frame.
func (d *Descriptor) Gradient(t float64, q, grad []float64) {
	var (
		n = d.nDim
	)
	for j := 0; j < n; j++ {
		grad[j] = 0
	}
	for s := 0; s < d.nComponents; s++ {
		var (
			qs = d.shift(s, q)
			R  = d.rotations[s]
		)
		if R == nil {
			d.gradient[s](t, d.slotParams(s), qs, n, grad)
			continue
		}
		for j := 0; j < n; j++ {
			d.gs[j] = 0
		}
		d.gradient[s](t, d.slotParams(s), qs, n, d.gs)
		for i := 0; i < n; i++ {
			var acc float64
			for j := 0; j < n; j++ {
				acc += R[j*n+i] * d.gs[j]
			}
			grad[i] += acc
		}
	}
}

// Hessian evaluates the row-major nDim x nDim second-derivative matrix at
// position q and time t into hess, which must have length >= nDim*nDim.
// hess is zeroed first, then every slot accumulates; rotated slots are
// conjugated back with R^T H R.
func (d *Descriptor) Hessian(t float64, q, hess []float64) {
	var (
		n = d.nDim
	)
	for j := 0; j < n*n; j++ {
		hess[j] = 0
	}
	for s := 0; s < d.nComponents; s++ {
		var (
			qs = d.shift(s, q)
			R  = d.rotations[s]
		)
		if R == nil {
			d.hessian[s](t, d.slotParams(s), qs, n, hess)
			continue
		}
		for j := 0; j < n*n; j++ {
			d.hs[j] = 0
		}
		d.hessian[s](t, d.slotParams(s), qs, n, d.hs)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				var acc float64
				for k := 0; k < n; k++ {
					for l := 0; l < n; l++ {
						acc += R[k*n+i] * d.hs[k*n+l] * R[l*n+j]
					}
				}
				hess[i*n+j] += acc
			}
		}
	}
}
