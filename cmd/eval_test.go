package cmd

import (
	"io/ioutil"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/gocarina/gocsv"
	"github.com/magiconair/properties/assert"

	"github.com/crawfordsm/gala/modelfile"
)

func TestRunEval(t *testing.T) {
	var (
		err error
		dir = t.TempDir()
	)
	fileInput := []byte(`
Title: Plummer test
GravConst: 1.0
Components:
  ball:
    Kind: plummer
    Parameters:
      m: 4.0
      b: 1.0
`)
	positions := []byte(`x,y,z
0.0,0.0,0.0
3.0,0.0,4.0
`)
	var (
		posPath = filepath.Join(dir, "positions.csv")
		outPath = filepath.Join(dir, "results.csv")
	)
	if err = ioutil.WriteFile(posPath, positions, 0644); err != nil {
		panic(err)
	}
	ms := &modelfile.ModelSpec{}
	if err = ms.Parse(fileInput); err != nil {
		panic(err)
	}
	ms.Print()
	assert.Equal(t, ms.Components["ball"].Parameters["b"], 1.)
	me := &ModelEval{
		PositionsFile: posPath,
		OutFile:       outPath,
		Quantity:      "value",
	}
	RunEval(me, ms)
	var (
		f    *os.File
		rows []*scalarRow
	)
	if f, err = os.Open(outPath); err != nil {
		panic(err)
	}
	defer f.Close()
	if err = gocsv.UnmarshalFile(f, &rows); err != nil {
		panic(err)
	}
	// Phi(0) = -G m / b, and the second row sits at r = 5
	assert.Equal(t, len(rows), 2)
	assert.Equal(t, rows[0].Result, -4.)
	assert.Equal(t, rows[1].Result, -4./math.Sqrt(26.))
}
