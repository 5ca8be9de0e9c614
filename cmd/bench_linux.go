//go:build linux

package cmd

import (
	"fmt"

	perf "github.com/hodgesds/perf-utils"
)

// runWithPerf runs eval under the hardware instruction counter and reports
// instructions per sample. Falls back to a plain run when perf events are
// unavailable, as in most containers.
func runWithPerf(eval func() error, n int) {
	pv, err := perf.CPUInstructions(eval)
	if err != nil {
		fmt.Printf("perf counters unavailable: %s\n", err.Error())
		if err = eval(); err != nil {
			panic(err)
		}
		return
	}
	fmt.Printf("%8.1f\t\t= CPU instructions/sample\n", float64(pv.Value)/float64(n))
}
