package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/crawfordsm/gala/builtin"
	"github.com/crawfordsm/gala/modelfile"
	"github.com/crawfordsm/gala/potential"
)

var (
	modelFile string
	outFile   = "rotcurve.csv"
	rMin      = 0.1
	rMax      = 30.0
	nPoints   = 300
)

func main() {
	modelFilePtr := flag.String("modelFile", modelFile, "YAML model file, default is the built in Milky Way")
	outFilePtr := flag.String("outFile", outFile, "CSV file to write the rotation curve to")
	rMinPtr := flag.Float64("rMin", rMin, "smallest radius")
	rMaxPtr := flag.Float64("rMax", rMax, "largest radius")
	nPtr := flag.Int("n", nPoints, "number of radii")
	flag.Parse()
	modelFile = *modelFilePtr
	outFile = *outFilePtr
	rMin = *rMinPtr
	rMax = *rMaxPtr
	nPoints = *nPtr
	if nPoints < 2 || rMin <= 0 || rMax <= rMin {
		flag.Usage()
		os.Exit(1)
	}

	var (
		c   *potential.Composite
		err error
	)
	if len(modelFile) != 0 {
		var ms *modelfile.ModelSpec
		if ms, err = modelfile.Load(modelFile); err != nil {
			fmt.Printf("error: unable to read model file: %s\n", err.Error())
			os.Exit(1)
		}
		if ms.NDim != 3 {
			fmt.Printf("error: rotation curves need a 3D model, got NDim = %d\n", ms.NDim)
			os.Exit(1)
		}
		if c, err = ms.Build(); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
	} else if c, err = builtin.MilkyWay(); err != nil {
		panic(err)
	}
	writeCurve(outFile, c.Descriptor())
	fmt.Printf("wrote %d radii to %s\n", nPoints, outFile)
}

// writeCurve samples the circular velocity vc = sqrt(r dPhi/dr) along the x
// axis in the midplane and writes an r,vc table.
func writeCurve(path string, d *potential.Descriptor) {
	var (
		err error
		f   *os.File
	)
	if f, err = os.Create(path); err != nil {
		panic(err)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	defer w.Flush()
	_ = w.Write([]string{"r", "vc"})
	for i := 0; i < nPoints; i++ {
		var (
			r  = rMin + (rMax-rMin)*float64(i)/float64(nPoints-1)
			q  = []float64{r, 0, 0}
			vc = math.Sqrt(math.Abs(r * potential.RadialDeriv(d, 0, q)))
		)
		_ = w.Write([]string{
			strconv.FormatFloat(r, 'f', -1, 64),
			strconv.FormatFloat(vc, 'f', -1, 64),
		})
	}
}
