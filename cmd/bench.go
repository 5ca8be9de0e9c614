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
	"math/rand"
	"os"
	"time"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/crawfordsm/gala/builtin"
	"github.com/crawfordsm/gala/modelfile"
	"github.com/crawfordsm/gala/potential"
	"github.com/crawfordsm/gala/utils"
)

type ModelBench struct {
	ModelFile string
	Quantity  string
	Samples   int
	Parallel  int
	Profile   bool
	Perf      bool
}

// BenchCmd represents the bench command
var BenchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Measure batch evaluation throughput",
	Long: `
Evaluates a quantity of the built in Milky Way model, or of a model file,
over a block of random positions and reports the throughput,

gala bench -n 1000000 -q gradient`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		fmt.Println("bench called")
		mb := &ModelBench{}
		if mb.ModelFile, err = cmd.Flags().GetString("modelFile"); err != nil {
			panic(err)
		}
		mb.Quantity, _ = cmd.Flags().GetString("quantity")
		mb.Samples, _ = cmd.Flags().GetInt("samples")
		mb.Parallel, _ = cmd.Flags().GetInt("parallel")
		mb.Profile, _ = cmd.Flags().GetBool("profile")
		mb.Perf, _ = cmd.Flags().GetBool("perf")
		RunBench(mb)
	},
}

func init() {
	rootCmd.AddCommand(BenchCmd)
	BenchCmd.Flags().StringP("modelFile", "M", "", "YAML model file, default is the built in Milky Way")
	BenchCmd.Flags().StringP("quantity", "q", "value",
		"one of value, density, gradient, hessian, radialderiv, radialderiv2, massenclosed")
	BenchCmd.Flags().IntP("samples", "n", 1048576, "number of random positions to evaluate")
	BenchCmd.Flags().IntP("parallel", "p", 0, "number of goroutines, 0 uses all cores")
	BenchCmd.Flags().Bool("profile", false, "write a CPU profile to the current directory")
	BenchCmd.Flags().Bool("perf", false, "report hardware counters for the run (linux only)")
}

func RunBench(mb *ModelBench) {
	var (
		err error
		c   *potential.Composite
		G   = builtin.GGalactic
	)
	if _, ok := evalNeeds[mb.Quantity]; !ok {
		fmt.Printf("error: unknown quantity %q\n", mb.Quantity)
		os.Exit(1)
	}
	if len(mb.ModelFile) != 0 {
		var ms *modelfile.ModelSpec
		if ms, err = modelfile.Load(mb.ModelFile); err != nil {
			fmt.Printf("error: unable to read model file: %s\n", err.Error())
			os.Exit(1)
		}
		if ms.NDim != 3 {
			fmt.Printf("error: bench generates 3D positions, model has NDim = %d\n", ms.NDim)
			os.Exit(1)
		}
		if c, err = ms.Build(); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		G = ms.GravConst
	} else if c, err = builtin.MilkyWay(); err != nil {
		panic(err)
	}
	var (
		d    = c.Descriptor()
		n    = mb.Samples
		Q    = randomPositions(n, 25.)
		ts   = []float64{0.}
		eval func() error
	)
	switch mb.Quantity {
	case "value":
		out := make([]float64, n)
		eval = func() error { return potential.EvalValueParallel(d, Q, ts, out, mb.Parallel) }
	case "density":
		out := make([]float64, n)
		eval = func() error { return potential.EvalDensityParallel(d, Q, ts, out, mb.Parallel) }
	case "gradient":
		out := utils.NewMatrix(n, 3)
		eval = func() error { return potential.EvalGradientParallel(d, Q, ts, out, mb.Parallel) }
	case "hessian":
		out := make([]float64, n*9)
		eval = func() error { return potential.EvalHessianParallel(d, Q, ts, out, mb.Parallel) }
	case "radialderiv":
		out := make([]float64, n)
		eval = func() error { return potential.EvalRadialDerivParallel(d, Q, ts, out, mb.Parallel) }
	case "radialderiv2":
		out := make([]float64, n)
		eval = func() error { return potential.EvalRadialDeriv2Parallel(d, Q, ts, out, mb.Parallel) }
	case "massenclosed":
		out := make([]float64, n)
		eval = func() error { return potential.EvalMassEnclosedParallel(d, Q, ts, G, out, mb.Parallel) }
	}
	if mb.Profile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}
	start := time.Now()
	if mb.Perf {
		runWithPerf(eval, n)
	} else if err = eval(); err != nil {
		panic(err)
	}
	elapsed := time.Since(start)
	fmt.Printf("%8.5f\t\t= seconds for %d x %s\n", elapsed.Seconds(), n, mb.Quantity)
	fmt.Printf("%8.3f\t\t= Msamples/sec\n", float64(n)/elapsed.Seconds()/1.e6)
	fmt.Println(utils.GetMemUsage())
}

// randomPositions fills an n x 3 block with coordinates drawn uniformly from
// a cube of half width w. The seed is fixed so that runs are comparable.
func randomPositions(n int, w float64) (Q utils.Matrix) {
	var (
		rnd = rand.New(rand.NewSource(42))
	)
	Q = utils.NewMatrix(n, 3)
	for i := range Q.DataP {
		Q.DataP[i] = w * (2.*rnd.Float64() - 1.)
	}
	return
}
