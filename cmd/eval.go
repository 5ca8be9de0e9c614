/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"

	_ "github.com/crawfordsm/gala/builtin"
	"github.com/crawfordsm/gala/modelfile"
	"github.com/crawfordsm/gala/potential"
	"github.com/crawfordsm/gala/utils"
)

type ModelEval struct {
	ModelFile     string
	PositionsFile string
	OutFile       string
	Quantity      string
	Time          float64
	Parallel      int
}

type positionRow struct {
	X float64 `csv:"x"`
	Y float64 `csv:"y"`
	Z float64 `csv:"z"`
}

type scalarRow struct {
	X      float64 `csv:"x"`
	Y      float64 `csv:"y"`
	Z      float64 `csv:"z"`
	Result float64 `csv:"result"`
}

type gradientRow struct {
	X  float64 `csv:"x"`
	Y  float64 `csv:"y"`
	Z  float64 `csv:"z"`
	GX float64 `csv:"gx"`
	GY float64 `csv:"gy"`
	GZ float64 `csv:"gz"`
}

type hessianRow struct {
	X   float64 `csv:"x"`
	Y   float64 `csv:"y"`
	Z   float64 `csv:"z"`
	HXX float64 `csv:"hxx"`
	HXY float64 `csv:"hxy"`
	HXZ float64 `csv:"hxz"`
	HYX float64 `csv:"hyx"`
	HYY float64 `csv:"hyy"`
	HYZ float64 `csv:"hyz"`
	HZX float64 `csv:"hzx"`
	HZY float64 `csv:"hzy"`
	HZZ float64 `csv:"hzz"`
}

// evalNeeds maps each quantity name onto the table entry it reads, for the
// presence warning before a batch run.
var evalNeeds = map[string]potential.Quantity{
	"value":        potential.Energy,
	"density":      potential.Density,
	"gradient":     potential.Gradient,
	"hessian":      potential.Hessian,
	"radialderiv":  potential.Energy,
	"radialderiv2": potential.Energy,
	"massenclosed": potential.Energy,
}

// EvalCmd represents the eval command
var EvalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Evaluate a composite potential over a batch of positions",
	Long: `
Builds the composite potential described by a YAML model file and evaluates
the requested quantity at every position in a CSV file, writing a CSV of
results,

gala eval -M model.yaml -P positions.csv -q gradient`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		fmt.Println("eval called")
		me := &ModelEval{}
		if me.ModelFile, err = cmd.Flags().GetString("modelFile"); err != nil {
			panic(err)
		}
		if me.PositionsFile, err = cmd.Flags().GetString("positionsFile"); err != nil {
			panic(err)
		}
		me.OutFile, _ = cmd.Flags().GetString("outFile")
		me.Quantity, _ = cmd.Flags().GetString("quantity")
		me.Time, _ = cmd.Flags().GetFloat64("time")
		me.Parallel, _ = cmd.Flags().GetInt("parallel")
		ms := processEvalInput(me)
		RunEval(me, ms)
	},
}

func init() {
	rootCmd.AddCommand(EvalCmd)
	EvalCmd.Flags().StringP("modelFile", "M", "", "YAML file describing the mass model")
	EvalCmd.Flags().StringP("positionsFile", "P", "", "CSV file of positions with columns x,y,z")
	EvalCmd.Flags().StringP("outFile", "o", "results.csv", "CSV file to write results to")
	EvalCmd.Flags().StringP("quantity", "q", "value",
		"one of value, density, gradient, hessian, radialderiv, radialderiv2, massenclosed")
	EvalCmd.Flags().Float64P("time", "t", 0., "evaluation time passed to the components")
	EvalCmd.Flags().IntP("parallel", "p", 0, "number of goroutines, 0 uses all cores")
}

func processEvalInput(me *ModelEval) (ms *modelfile.ModelSpec) {
	var (
		err      error
		willExit bool
	)
	if len(me.ModelFile) == 0 {
		err = fmt.Errorf("must supply a model file (-M, --modelFile) in YAML format")
		fmt.Printf("error: %s\n", err.Error())
		exampleFile := `
########################################
Title: "Milky Way"
NDim: 3
GravConst: 4.4985e-12 # kpc^3 / (Msun Myr^2)
Components:
  disk:
    Kind: miyamotonagai
    Parameters: {m: 6.8e10, a: 3.0, b: 0.28}
  halo:
    Kind: nfw
    Parameters: {m: 5.4e11, rs: 15.62}
########################################
`
		fmt.Printf("Example File:%s\n", exampleFile)
		willExit = true
	}
	if len(me.PositionsFile) == 0 {
		err = fmt.Errorf("must supply a positions file (-P, --positionsFile) in CSV format")
		fmt.Printf("error: %s\n", err.Error())
		examplePositions := `
########################################
x,y,z
8.122,0.0,0.02
-4.5,3.3,0.5
########################################
`
		fmt.Printf("Example File:%s\n", examplePositions)
		willExit = true
	}
	if _, ok := evalNeeds[me.Quantity]; !ok {
		err = fmt.Errorf("unknown quantity %q", me.Quantity)
		fmt.Printf("error: %s\n", err.Error())
		willExit = true
	}
	if willExit {
		os.Exit(1)
	}
	if ms, err = modelfile.Load(me.ModelFile); err != nil {
		fmt.Printf("error: unable to read model file: %s\n", err.Error())
		os.Exit(1)
	}
	return
}

func RunEval(me *ModelEval, ms *modelfile.ModelSpec) {
	var (
		err error
	)
	ms.Print()
	c, err := ms.Build()
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	if ms.NDim != 3 {
		fmt.Printf("error: eval reads x,y,z positions, model has NDim = %d\n", ms.NDim)
		os.Exit(1)
	}
	var (
		d   = c.Descriptor()
		pos = loadPositions(me.PositionsFile)
		n   = len(pos)
	)
	if n == 0 {
		fmt.Printf("error: no positions in %s\n", me.PositionsFile)
		os.Exit(1)
	}
	if !d.Defines(evalNeeds[me.Quantity]) {
		fmt.Printf("warning: model does not define %s, results will be NaN\n", me.Quantity)
	}
	Q := utils.NewMatrix(n, 3)
	for i, p := range pos {
		Q.DataP[i*3], Q.DataP[i*3+1], Q.DataP[i*3+2] = p.X, p.Y, p.Z
	}
	var (
		ts    = []float64{me.Time}
		start = time.Now()
	)
	switch me.Quantity {
	case "gradient":
		out := utils.NewMatrix(n, 3)
		if err = potential.EvalGradientParallel(d, Q, ts, out, me.Parallel); err != nil {
			panic(err)
		}
		rows := make([]*gradientRow, n)
		mags := utils.NewVector(n)
		for i, p := range pos {
			g := out.RowView(i)
			rows[i] = &gradientRow{p.X, p.Y, p.Z, g[0], g[1], g[2]}
			mags.DataP[i] = utils.Norm2(g)
		}
		writeRows(me.OutFile, rows)
		if utils.IsNan(mags) {
			fmt.Println("warning: undefined gradient entries (NaN)")
		} else {
			fmt.Printf("%8.5g\t\t= min |gradient|\n", mags.Min())
			fmt.Printf("%8.5g\t\t= max |gradient|\n", mags.Max())
		}
	case "hessian":
		out := make([]float64, n*9)
		if err = potential.EvalHessianParallel(d, Q, ts, out, me.Parallel); err != nil {
			panic(err)
		}
		rows := make([]*hessianRow, n)
		for i, p := range pos {
			h := out[i*9 : (i+1)*9]
			rows[i] = &hessianRow{p.X, p.Y, p.Z,
				h[0], h[1], h[2], h[3], h[4], h[5], h[6], h[7], h[8]}
		}
		writeRows(me.OutFile, rows)
		if utils.IsNan(out) {
			fmt.Println("warning: undefined Hessian entries (NaN)")
		}
	default:
		out := make([]float64, n)
		switch me.Quantity {
		case "value":
			err = potential.EvalValueParallel(d, Q, ts, out, me.Parallel)
		case "density":
			err = potential.EvalDensityParallel(d, Q, ts, out, me.Parallel)
		case "radialderiv":
			err = potential.EvalRadialDerivParallel(d, Q, ts, out, me.Parallel)
		case "radialderiv2":
			err = potential.EvalRadialDeriv2Parallel(d, Q, ts, out, me.Parallel)
		case "massenclosed":
			err = potential.EvalMassEnclosedParallel(d, Q, ts, ms.GravConst, out, me.Parallel)
		}
		if err != nil {
			panic(err)
		}
		rows := make([]*scalarRow, n)
		nans := 0
		for i, p := range pos {
			rows[i] = &scalarRow{p.X, p.Y, p.Z, out[i]}
			if math.IsNaN(out[i]) {
				nans++
			}
		}
		writeRows(me.OutFile, rows)
		if nans > 0 {
			fmt.Printf("[%d]\t\t\t\t= undefined results (NaN)\n", nans)
		}
		if nans < n {
			finite := utils.NewVector(n - nans)
			j := 0
			for _, v := range out {
				if !math.IsNaN(v) {
					finite.DataP[j] = v
					j++
				}
			}
			fmt.Printf("%8.5g\t\t= min %s\n", finite.Min(), me.Quantity)
			fmt.Printf("%8.5g\t\t= max %s\n", finite.Max(), me.Quantity)
		}
	}
	fmt.Printf("evaluated %s at %d positions in %s, wrote %s\n",
		me.Quantity, n, time.Since(start), me.OutFile)
}

func loadPositions(path string) (rows []*positionRow) {
	var (
		err error
		f   *os.File
	)
	if f, err = os.Open(path); err != nil {
		fmt.Printf("error: unable to read positions file: %s\n", err.Error())
		os.Exit(1)
	}
	defer f.Close()
	if err = gocsv.UnmarshalFile(f, &rows); err != nil {
		fmt.Printf("error: unable to parse positions file: %s\n", err.Error())
		os.Exit(1)
	}
	return
}

func writeRows(path string, rows interface{}) {
	var (
		err error
		f   *os.File
	)
	if f, err = os.Create(path); err != nil {
		panic(err)
	}
	defer f.Close()
	if err = gocsv.Marshal(rows, f); err != nil {
		panic(err)
	}
}
