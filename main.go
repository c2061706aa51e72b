// Package main provides the entry point for rv32sim.
// rv32sim is a functional RV32 instruction set simulator.
//
// For the full CLI, use: go run ./cmd/rv32sim
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("rv32sim - RV32 Instruction Set Simulator")
	fmt.Println("")
	fmt.Println("Usage: rv32sim [options] <program.bin>")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -v         Verbose output")
	fmt.Println("  -max       Stop after this many instructions")
	fmt.Println("  -entry     Load address and entry point")
	fmt.Println("  -trace     Print each instruction before it executes")
	fmt.Println("  -dump      Dump memory after the run, as addr,len")
	fmt.Println("  -tui       Open the interactive terminal dashboard")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/rv32sim' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/rv32sim' instead.")
	}
}
