package builtin

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crawfordsm/gala/potential"
)

func TestMilkyWay(t *testing.T) {
	mw, err := MilkyWay()
	require.NoError(t, err)
	{ // four components under their conventional keys, all quantities defined
		assert.Equal(t, 4, mw.NComponents())
		assert.Equal(t, []string{"disk", "bulge", "nucleus", "halo"}, mw.Keys())
		for _, q := range []potential.Quantity{
			potential.Energy, potential.Density, potential.Gradient, potential.Hessian,
		} {
			assert.Truef(t, mw.Descriptor().Defines(q), "milky way defines %s", q)
		}
	}
	{ // circular velocity at the solar radius lands near 229 km/s
		var (
			q  = []float64{8.122, 0, 0}
			vc = math.Sqrt(8.122 * potential.RadialDeriv(mw.Descriptor(), 0, q))
		)
		assert.Greater(t, vc, 0.20)
		assert.Less(t, vc, 0.25)
	}
	{ // enclosed mass at 10 kpc is of order 1e11 Msun
		m := potential.MassEnclosed(mw.Descriptor(), 0, []float64{10., 0, 0}, GGalactic)
		assert.Greater(t, m, 0.8e11)
		assert.Less(t, m, 1.6e11)
	}
	{ // the disk dominates the halo in the midplane at the solar circle
		var (
			q        = []float64{8.122, 0, 0}
			disk, d  = mw.Slot("disk")
			halo, h  = mw.Slot("halo")
			bulge, b = mw.Slot("bulge")
			nucl, n  = mw.Slot("nucleus")
		)
		require.True(t, d && h && b && n)
		assert.Greater(t, disk.Density(0, q), halo.Density(0, q))
		var (
			total = mw.Descriptor().Density(0, q)
			parts = disk.Density(0, q) + bulge.Density(0, q) +
				nucl.Density(0, q) + halo.Density(0, q)
		)
		assert.InDelta(t, total, parts, 1.e-6*total)
	}
}

func BenchmarkMilkyWayGradient(b *testing.B) {
	mw, err := MilkyWay()
	if err != nil {
		b.Fatal(err)
	}
	var (
		d    = mw.Descriptor()
		q    = []float64{8.122, 0, 0.02}
		grad = make([]float64, 3)
	)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d.Gradient(0, q, grad)
	}
}
