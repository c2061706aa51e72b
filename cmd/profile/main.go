// Package main provides a profiling wrapper for rv32sim to identify
// performance bottlenecks in the emulation loop.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"github.com/sarchlab/rv32sim/benchmarks"
	"github.com/sarchlab/rv32sim/emu"
	"github.com/sarchlab/rv32sim/loader"
)

var (
	cpuProfile  = flag.String("cpuprofile", "", "write cpu profile to file")
	memProfile  = flag.String("memprofile", "", "write memory profile to file")
	duration    = flag.Duration("duration", 30*time.Second, "max duration to run (for profiling)")
	instruction = flag.Int("max-instr", 50000000, "max instructions to execute (0 = unlimited)")
)

func main() {
	flag.Parse()

	// Start CPU profiling if requested
	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = f.Close() }()

		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "Error starting CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	base, image := workload()

	start := time.Now()

	// Stop a stuck run so the session does not hang forever
	go func() {
		time.Sleep(*duration)
		fmt.Printf("\nTimeout reached after %v - stopping execution\n", *duration)
		os.Exit(2)
	}()

	instrCount := runProfile(base, image)

	elapsed := time.Since(start)

	// Write memory profile if requested
	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating memory profile: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = f.Close() }()

		if err := pprof.WriteHeapProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing memory profile: %v\n", err)
		}
	}

	fmt.Printf("\nProfiling Results:\n")
	fmt.Printf("Instructions executed: %d\n", instrCount)
	fmt.Printf("Elapsed time: %v\n", elapsed)
	if instrCount > 0 {
		fmt.Printf("Instructions/second: %.0f\n", float64(instrCount)/elapsed.Seconds())
	}
}

// workload returns the image to profile: the file named on the command
// line, or a built-in arithmetic loop when none is given.
func workload() (uint32, []byte) {
	if flag.NArg() < 1 {
		fmt.Println("Profiling built-in ALU loop")
		return emu.DefaultEntry, aluLoop()
	}

	programPath := flag.Arg(0)
	prog, err := loader.Load(programPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading program: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Loaded: %s\n", programPath)
	fmt.Printf("Entry point: 0x%X\n", prog.Base)

	return prog.Base, prog.Data
}

// aluLoop builds a counted arithmetic loop that retires roughly forty
// million instructions, enough work for a stable profile.
func aluLoop() []byte {
	return benchmarks.BuildProgram(
		benchmarks.EncodeLUI(1, 0x500), // x1 = 0x00500000 iterations
		benchmarks.EncodeADDI(2, 2, 1),
		benchmarks.EncodeADDI(3, 3, 1),
		benchmarks.EncodeADDI(4, 4, 1),
		benchmarks.EncodeADDI(5, 5, 1),
		benchmarks.EncodeADDI(6, 6, 1),
		benchmarks.EncodeADDI(7, 7, 1),
		benchmarks.EncodeADDI(1, 1, -1),
		benchmarks.EncodeBNE(1, 0, -28),
		0, // halt
	)
}

// runProfile executes the image on a fresh emulator and returns the
// retired instruction count. A capped or failed run still profiled the
// hot loop, so errors are not fatal here.
func runProfile(base uint32, image []byte) uint64 {
	var opts []emu.EmulatorOption
	if *instruction > 0 {
		opts = append(opts, emu.WithMaxInstructions(uint64(*instruction)))
	}

	emulator := emu.NewEmulator(opts...)
	emulator.LoadProgram(base, image)

	_ = emulator.Run()

	return emulator.InstructionCount()
}
