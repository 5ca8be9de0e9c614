//go:build !linux

package cmd

import "fmt"

func runWithPerf(eval func() error, n int) {
	fmt.Println("perf counters are only available on linux")
	if err := eval(); err != nil {
		panic(err)
	}
}
