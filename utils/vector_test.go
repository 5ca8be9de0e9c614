package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVector(t *testing.T) {
	N := 3
	v1 := NewVector(N).Set(1)
	require.Equal(t, 1., v1.V.RawVector().Data[N-1])
	v1.Set(2)
	require.Equal(t, 2., v1.V.RawVector().Data[N-1])
	// Min / Max / Norm
	{
		v := NewVector(4, []float64{3, -4, 0, 1})
		assert.Equal(t, -4., v.Min())
		assert.Equal(t, 3., v.Max())
		assert.InDelta(t, math.Sqrt(26), v.Norm(), 1.e-15)
	}
	// Apply and POW act in place
	{
		v := NewVector(3, []float64{1, 2, 3})
		v.Apply(func(x float64) float64 { return -x })
		assert.Equal(t, []float64{-1, -2, -3}, v.RawVector().Data)
		v.POW(2)
		assert.Equal(t, []float64{1, 4, 9}, v.RawVector().Data)
	}
	// Add scalar
	{
		v := NewVector(2, []float64{1, 2}).Add(0.5)
		assert.Equal(t, []float64{1.5, 2.5}, v.RawVector().Data)
	}
}

func TestMathHelpers(t *testing.T) {
	// POW matches math.Pow on the switch range and beyond it
	for p := -10; p <= 10; p++ {
		assert.InDelta(t, math.Pow(1.7, float64(p)), POW(1.7, p), 1.e-12)
	}
	// Norm2
	assert.Equal(t, 5., Norm2([]float64{3, 4}))
	assert.Equal(t, 0., Norm2(nil))
	// ConstArray
	assert.Equal(t, []float64{2.5, 2.5, 2.5}, ConstArray(3, 2.5))
}
