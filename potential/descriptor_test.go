package potential

import (
	"testing"

	"github.com/crawfordsm/gala/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescriptor(t *testing.T) {
	var (
		pars   = []float64{1, 2.5}
		origin = []float64{0.1, 0.2, 0.3}
	)
	// Construction copies parameter and origin storage
	{
		parsIn := append([]float64{}, pars...)
		originIn := append([]float64{}, origin...)
		d := NewDescriptor(parsIn, originIn, 3)
		parsIn[1] = -1
		originIn[0] = -1
		assert.Equal(t, pars, d.Parameters(0))
		assert.Equal(t, origin, d.Origin(0))
	}
	// Origin accessor hands out copies, not views
	{
		d := NewDescriptor(pars, origin, 3)
		o := d.Origin(0)
		o[0] = 99
		assert.Equal(t, origin, d.Origin(0))
	}
	// A fresh descriptor is all sentinels
	{
		d := NewDescriptor(pars, origin, 3)
		assert.False(t, d.Defines(Energy))
		assert.False(t, d.Defines(Density))
		assert.False(t, d.Defines(Gradient))
		assert.False(t, d.Defines(Hessian))
	}
	// Construction bugs panic
	{
		assert.Panics(t, func() { NewDescriptor(pars, origin, 0) })
		assert.Panics(t, func() { NewDescriptor(pars, []float64{0, 0}, 3) })
	}
	// Rotation dimensions are checked and contents copied
	{
		d := NewDescriptor(pars, origin, 3)
		err := d.SetRotation(0, utils.NewMatrix(2, 2))
		var shape ShapeError
		require.ErrorAs(t, err, &shape)

		R := rotationZ(0.4)
		require.NoError(t, d.SetRotation(0, R))
		R.Set(0, 0, 77)
		got, ok := d.Rotation(0)
		require.True(t, ok)
		assert.NotEqual(t, 77., got.At(0, 0))
	}
	// No rotation by default
	{
		d := NewDescriptor(pars, origin, 3)
		_, ok := d.Rotation(0)
		assert.False(t, ok)
	}
}

func TestDescriptorClone(t *testing.T) {
	var (
		q = []float64{0.5, -0.3, 1.2}
		d = newTestKind(harmonicKind(), []float64{1, 4}, []float64{0.2, 0, -0.1}, 3)
		c = d.Clone()
	)
	// Clones share parameter storage and agree on every evaluation
	assert.Equal(t, d.Parameters(0), c.Parameters(0))
	assert.Equal(t, d.Value(3, q), c.Value(3, q))
	gd := make([]float64, 3)
	gc := make([]float64, 3)
	d.Gradient(3, q, gd)
	c.Gradient(3, q, gc)
	assert.Equal(t, gd, gc)

	// Scratch is private: interleaved evaluations cannot corrupt each other
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 2000; i++ {
			c.Gradient(0, q, gc)
		}
	}()
	for i := 0; i < 2000; i++ {
		d.Gradient(0, q, gd)
	}
	<-done
	assert.Equal(t, gd, gc)
}
