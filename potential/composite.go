package potential

import (
	"fmt"

	"github.com/google/uuid"
)

// Potential is anything the dispatch core can evaluate: a leaf Descriptor
// or a Composite of several.
type Potential interface {
	Descriptor() *Descriptor
}

// Composite aggregates keyed child potentials over one merged Descriptor.
// Children are appended in insertion order; parameter blocks concatenate
// into the shared packed buffer and every per-slot table extends by the
// incoming slots. Evaluation goes through Descriptor(), which exposes the
// merged descriptor directly, so a composite costs nothing over a
// hand-packed multi-slot descriptor.
//
// Add mutates the merged descriptor and must not race with evaluation on
// the same handle. There is no internal locking.
type Composite struct {
	d     *Descriptor
	keys  []string
	byKey map[string]int
}

// NewComposite builds an empty composite of the given dimensionality. With
// no slots every evaluation is an empty sum: zero, not NaN.
func NewComposite(nDim int) *Composite {
	if nDim < 1 {
		panic(fmt.Errorf("composite dimensionality must be positive, have %d", nDim))
	}
	d := &Descriptor{nDim: nDim}
	d.allocScratch()
	return &Composite{
		d:     d,
		byKey: make(map[string]int),
	}
}

func (c *Composite) Descriptor() *Descriptor {
	if c == nil {
		return nil
	}
	return c.d
}

func (c *Composite) NDim() int        { return c.d.nDim }
func (c *Composite) NComponents() int { return c.d.nComponents }

// Keys lists the component keys in insertion order.
func (c *Composite) Keys() (keys []string) {
	keys = make([]string, len(c.keys))
	copy(keys, c.keys)
	return
}

// Add appends a child potential under the given key. An empty key gets a
// generated unique token. A composite child contributes all of its slots
// under its own keys and must be added with an empty key. Key collisions
// fail with DuplicateKeyError and leave the composite unchanged.
func (c *Composite) Add(key string, child Potential) error {
	if child == nil || child.Descriptor() == nil {
		return ErrNilPotential
	}
	var (
		cd = child.Descriptor()
	)
	if cd.nDim != c.d.nDim {
		return ShapeError{
			Context: "composite add",
			Got:     fmt.Sprintf("child nDim = %d", cd.nDim),
			Want:    fmt.Sprintf("nDim = %d", c.d.nDim),
		}
	}
	var newKeys []string
	if sub, ok := child.(*Composite); ok {
		if key != "" {
			return fmt.Errorf("cannot add a composite child under key %q: its slots keep their own keys, use an empty key", key)
		}
		newKeys = sub.keys
	} else {
		newKeys = make([]string, cd.nComponents)
		for i := range newKeys {
			newKeys[i] = uuid.NewString()
		}
		if key != "" {
			if cd.nComponents != 1 {
				return fmt.Errorf("cannot add a %d-component child under the single key %q", cd.nComponents, key)
			}
			newKeys[0] = key
		}
	}
	// Validate every incoming key before touching descriptor storage, so a
	// collision never leaves a partial append behind.
	for _, k := range newKeys {
		if _, exists := c.byKey[k]; exists {
			return DuplicateKeyError{Key: k}
		}
	}
	for i, k := range newKeys {
		c.appendSlot(k, cd, i)
	}
	return nil
}

// appendSlot copies slot i of src onto the end of the merged descriptor.
func (c *Composite) appendSlot(key string, src *Descriptor, i int) {
	var (
		d   = c.d
		n   = d.nDim
		off = src.offsets[i]
		np  = src.nParams[i]
	)
	d.offsets = append(d.offsets, len(d.parameters))
	d.parameters = append(d.parameters, src.parameters[off:off+np]...)
	d.nParams = append(d.nParams, np)

	o := make([]float64, n)
	copy(o, src.origins[i])
	d.origins = append(d.origins, o)

	var R []float64
	if src.rotations[i] != nil {
		R = make([]float64, n*n)
		copy(R, src.rotations[i])
	}
	d.rotations = append(d.rotations, R)

	d.value = append(d.value, src.value[i])
	d.density = append(d.density, src.density[i])
	d.gradient = append(d.gradient, src.gradient[i])
	d.hessian = append(d.hessian, src.hessian[i])
	d.caps = append(d.caps, src.caps[i])
	d.nComponents++

	c.keys = append(c.keys, key)
	c.byKey[key] = d.nComponents - 1
}

// Slot extracts the keyed component as a standalone single-slot descriptor
// with copied parameter and origin storage, so it can be evaluated in
// isolation or added to another composite.
func (c *Composite) Slot(key string) (d *Descriptor, ok bool) {
	var (
		i int
	)
	if i, ok = c.byKey[key]; !ok {
		return nil, false
	}
	src := c.d
	d = NewDescriptor(src.slotParams(i), src.origins[i], src.nDim)
	d.value[0] = src.value[i]
	d.density[0] = src.density[i]
	d.gradient[0] = src.gradient[i]
	d.hessian[0] = src.hessian[i]
	d.caps[0] = src.caps[i]
	if src.rotations[i] != nil {
		R := make([]float64, src.nDim*src.nDim)
		copy(R, src.rotations[i])
		d.rotations[0] = R
	}
	return d, true
}

// Combine merges two potentials into a new composite. Plain descriptors come
// in as single generated-key components; composite operands keep their keys.
// Combining with nil fails with ErrNilPotential.
func Combine(a, b Potential) (*Composite, error) {
	if a == nil || a.Descriptor() == nil || b == nil || b.Descriptor() == nil {
		return nil, ErrNilPotential
	}
	c := NewComposite(a.Descriptor().nDim)
	for _, p := range []Potential{a, b} {
		if err := c.Add("", p); err != nil {
			return nil, err
		}
	}
	return c, nil
}
