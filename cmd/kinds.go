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
	"strings"

	"github.com/spf13/cobra"

	"github.com/crawfordsm/gala/potential"
)

// KindsCmd represents the kinds command
var KindsCmd = &cobra.Command{
	Use:   "kinds",
	Short: "List the registered potential kinds",
	Long: `
Lists every registered potential kind with its parameter names, dimension
restriction and the quantities it defines,

gala kinds`,
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range potential.Kinds() {
			k, err := potential.LookupKind(name)
			if err != nil {
				panic(err)
			}
			var have []string
			for _, q := range []potential.Quantity{
				potential.Energy, potential.Density, potential.Gradient, potential.Hessian,
			} {
				if k.Capabilities().Has(q) {
					have = append(have, q.String())
				}
			}
			dims := "any"
			if k.NDim != 0 {
				dims = fmt.Sprintf("%d", k.NDim)
			}
			pars := append([]string{"G"}, k.Params...)
			fmt.Printf("%-14s dims %-4s pars %-22s defines %s\n",
				name, dims, strings.Join(pars, ","), strings.Join(have, ","))
		}
	},
}

func init() {
	rootCmd.AddCommand(KindsCmd)
}
