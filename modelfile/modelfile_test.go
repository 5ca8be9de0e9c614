package modelfile

import (
	"io/ioutil"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/crawfordsm/gala/builtin"
	"github.com/crawfordsm/gala/potential"
	"github.com/crawfordsm/gala/utils"
)

var galaxyYAML = `
Title: "Two component galaxy"
GravConst: 4.498502151469553e-12
Components:
  disk:
    Kind: miyamotonagai
    Parameters:
      m: 6.8e10
      a: 3.0
      b: 0.28
  halo:
    Kind: nfw
    Parameters:
      m: 5.4e11
      rs: 15.62
    Origin: [1.0, 0.0, 0.0]
`

func TestModelFileParse(t *testing.T) {
	{ // fields, defaults and component maps
		ms := &ModelSpec{}
		require.NoError(t, ms.Parse([]byte(galaxyYAML)))
		assert.Equal(t, "Two component galaxy", ms.Title)
		assert.Equal(t, 3, ms.NDim)
		assert.Equal(t, 4.498502151469553e-12, ms.GravConst)
		require.Len(t, ms.Components, 2)
		disk := ms.Components["disk"]
		assert.Equal(t, "miyamotonagai", disk.Kind)
		assert.Equal(t, 3.0, disk.Parameters["a"])
		assert.Nil(t, disk.Origin)
		assert.Equal(t, []float64{1, 0, 0}, ms.Components["halo"].Origin)
	}
	{ // a bare file still gets three dimensions and G = 1
		ms := &ModelSpec{}
		require.NoError(t, ms.Parse([]byte("Title: bare\n")))
		assert.Equal(t, 3, ms.NDim)
		assert.Equal(t, 1.0, ms.GravConst)
	}
	{ // broken YAML refuses to parse
		ms := &ModelSpec{}
		assert.Error(t, ms.Parse([]byte("Components: [not, a, map]")))
	}
}

func TestModelFileBuild(t *testing.T) {
	{ // the built composite matches one assembled by hand
		ms := &ModelSpec{}
		require.NoError(t, ms.Parse([]byte(galaxyYAML)))
		c, err := ms.Build()
		require.NoError(t, err)
		assert.Equal(t, []string{"disk", "halo"}, c.Keys())
		var (
			G = ms.GravConst
			q = []float64{8.122, 0, 0.02}
		)
		disk, err := potential.NewKind("miyamotonagai",
			[]float64{G, 6.8e10, 3.0, 0.28}, []float64{0, 0, 0}, 3)
		require.NoError(t, err)
		halo, err := potential.NewKind("nfw",
			[]float64{G, 5.4e11, 15.62}, []float64{1, 0, 0}, 3)
		require.NoError(t, err)
		want := disk.Value(0, q) + halo.Value(0, q)
		assert.InDelta(t, want, c.Descriptor().Value(0, q), math.Abs(want)*1.e-14)
	}
	{ // kind and parameter validation
		cases := []struct {
			yaml, msg string
		}{
			{"Components: {x: {Kind: tyrannosaur}}", "unknown potential kind"},
			{"Components: {x: {Kind: plummer, Parameters: {m: 1}}}", `needs parameter "b"`},
			{"Components: {x: {Kind: plummer, Parameters: {m: 1, b: 1, peanut: 3}}}",
				`no parameter "peanut"`},
		}
		for _, c := range cases {
			ms := &ModelSpec{}
			require.NoError(t, ms.Parse([]byte(c.yaml)))
			_, err := ms.Build()
			require.Error(t, err)
			assert.Contains(t, err.Error(), c.msg)
			assert.Contains(t, err.Error(), `component "x"`)
		}
		var unknown potential.UnknownKindError
		ms := &ModelSpec{}
		require.NoError(t, ms.Parse([]byte("Components: {x: {Kind: tyrannosaur}}")))
		_, err := ms.Build()
		require.ErrorAs(t, err, &unknown)
	}
	{ // origin and rotation shapes are checked
		var shape potential.ShapeError
		for _, bad := range []string{
			"Components: {x: {Kind: plummer, Parameters: {m: 1, b: 1}, Origin: [0, 0]}}",
			"Components: {x: {Kind: plummer, Parameters: {m: 1, b: 1}, Rotation: [1, 0, 0, 1]}}",
		} {
			ms := &ModelSpec{}
			require.NoError(t, ms.Parse([]byte(bad)))
			_, err := ms.Build()
			require.ErrorAs(t, err, &shape)
		}
		ms := &ModelSpec{NDim: -2}
		_, err := ms.Build()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bad model dimension")
	}
	{ // a rotation in the file behaves like SetRotation by hand
		yamlText := `
Components:
  bar:
    Kind: miyamotonagai
    Parameters: {m: 2.0, a: 1.2, b: 0.3}
    Rotation: [0, 0, -1, 0, 1, 0, 1, 0, 0]
`
		ms := &ModelSpec{}
		require.NoError(t, ms.Parse([]byte(yamlText)))
		c, err := ms.Build()
		require.NoError(t, err)
		var (
			q    = []float64{2., 0., 0.5}
			pars = []float64{1., 2., 1.2, 0.3}
		)
		hand, err := potential.NewKind("miyamotonagai", pars, []float64{0, 0, 0}, 3)
		require.NoError(t, err)
		require.NoError(t, hand.SetRotation(0,
			utils.NewMatrix(3, 3, []float64{0, 0, -1, 0, 1, 0, 1, 0, 0})))
		assert.Equal(t, hand.Value(0, q), c.Descriptor().Value(0, q))

		plain, err := potential.NewKind("miyamotonagai", pars, []float64{0, 0, 0}, 3)
		require.NoError(t, err)
		assert.InDelta(t, plain.Value(0, []float64{-0.5, 0., 2.}),
			c.Descriptor().Value(0, q), 1.e-15)
	}
}

func TestModelFileLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "galaxy.yaml")
	require.NoError(t, ioutil.WriteFile(path, []byte(galaxyYAML), 0644))
	ms, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Two component galaxy", ms.Title)
	c, err := ms.Build()
	require.NoError(t, err)
	assert.Equal(t, 2, c.NComponents())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
