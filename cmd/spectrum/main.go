// Package main provides offline shell-spectrum analysis of a generated mode
// table, for checking that a modes.csv approximates the target spectrum.
package main

import (
	"flag"
	"fmt"
	"log"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/turbstir/telemetry"
)

func main() {
	modesPath := flag.String("modes", "", "Path to a modes.csv written by the generator")
	lx := flag.Float64("lx", 1.0, "Box extent Lx used during generation")
	flag.Parse()

	if *modesPath == "" {
		log.Fatal("--modes is required")
	}

	records, err := telemetry.ReadModes(*modesPath)
	if err != nil {
		log.Fatalf("failed to read modes: %v", err)
	}
	if len(records) == 0 {
		log.Fatal("mode table is empty")
	}

	amps := make([]float64, len(records))
	ks := make([]float64, len(records))
	for i, rec := range records {
		amps[i] = rec.Amplitude
		ks[i] = rec.K
	}

	fmt.Printf("modes: %d, k in [%.4f, %.4f]\n", len(records), floats.Min(ks), floats.Max(ks))

	sorted := append([]float64(nil), amps...)
	sort.Float64s(sorted)
	fmt.Printf("amplitude: mean %.6f, std %.6f, median %.6f\n",
		stat.Mean(amps, nil), stat.StdDev(amps, nil),
		stat.Quantile(0.5, stat.Empirical, sorted, nil))

	fmt.Println()
	fmt.Printf("%6s %8s %12s %12s\n", "shell", "count", "amp_mean", "power")
	for _, bin := range telemetry.BinShells(records, *lx) {
		fmt.Printf("%6d %8d %12.6f %12.6f\n", bin.Shell, bin.Count, bin.AmpMean, bin.AmpTotal)
	}
}
