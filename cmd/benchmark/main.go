// Command benchmark runs the rv32sim acceptance program harness.
//
// Usage:
//
//	go run ./cmd/benchmark [flags]
//
// Flags:
//
//	-csv   Output results in CSV format (default: human-readable)
//	-json  Output results in JSON format
//	-max   Cap each program at this many instructions
//
// Example:
//
//	# Run all programs with human-readable output
//	go run ./cmd/benchmark
//
//	# Output CSV for spreadsheet comparison
//	go run ./cmd/benchmark -csv > results.csv
//
// Each program checks its own final register and memory state, so the
// harness doubles as an end-to-end correctness gate. The MIPS figures
// track emulator throughput across changes.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sarchlab/rv32sim/benchmarks"
)

func main() {
	csvOutput := flag.Bool("csv", false, "Output results in CSV format")
	jsonOutput := flag.Bool("json", false, "Output results in JSON format")
	maxInstructions := flag.Uint64("max", 0,
		"Cap each program at this many instructions (0 = default cap)")
	flag.Parse()

	config := benchmarks.DefaultConfig()
	config.Output = os.Stdout
	if *maxInstructions > 0 {
		config.MaxInstructions = *maxInstructions
	}

	harness := benchmarks.NewHarness(config)
	harness.AddPrograms(benchmarks.GetPrograms())

	results := harness.RunAll()

	switch {
	case *jsonOutput:
		if err := harness.PrintJSON(results); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding results: %v\n", err)
			os.Exit(1)
		}
	case *csvOutput:
		harness.PrintCSV(results)
	default:
		harness.PrintResults(results)
	}

	// Nonzero exit when any program failed, so CI can gate on the harness
	for _, r := range results {
		if !r.Pass {
			os.Exit(1)
		}
	}
}
