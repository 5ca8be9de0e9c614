package builtin

import (
	"github.com/crawfordsm/gala/potential"
)

// GGalactic is the gravitational constant in galactic units,
// kpc^3 Msun^-1 Myr^-2. With positions in kpc and masses in Msun it
// yields velocities in kpc/Myr (1 kpc/Myr = 977.79 km/s).
const GGalactic = 4.498502151469553e-12

// MilkyWay assembles a four component Milky Way model in galactic units:
// a Miyamoto-Nagai disk, Hernquist bulge and nucleus, and an NFW halo,
// with parameters fit to the enclosed mass profile of the Galaxy. The
// circular velocity at the solar radius comes out near 229 km/s.
func MilkyWay() (c *potential.Composite, err error) {
	var (
		origin = []float64{0, 0, 0}
		comps  = []struct {
			key, kind string
			pars      []float64
		}{
			{"disk", "miyamotonagai", []float64{GGalactic, 6.8e10, 3.0, 0.28}},
			{"bulge", "hernquist", []float64{GGalactic, 5.0e9, 1.0}},
			{"nucleus", "hernquist", []float64{GGalactic, 1.71e9, 0.07}},
			{"halo", "nfw", []float64{GGalactic, 5.4e11, 15.62}},
		}
	)
	c = potential.NewComposite(3)
	for _, cmp := range comps {
		var d *potential.Descriptor
		if d, err = potential.NewKind(cmp.kind, cmp.pars, origin, 3); err != nil {
			return nil, err
		}
		if err = c.Add(cmp.key, d); err != nil {
			return nil, err
		}
	}
	return c, nil
}
