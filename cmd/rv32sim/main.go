// Package main provides the entry point for rv32sim.
// rv32sim is a functional RV32 instruction set simulator.
package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/sarchlab/rv32sim/emu"
	"github.com/sarchlab/rv32sim/insts"
	"github.com/sarchlab/rv32sim/loader"
)

var (
	verbose         = flag.Bool("v", false, "Verbose output")
	maxInstructions = flag.Uint64("max", 0, "Stop after this many instructions (0 = unlimited)")
	entry           = flag.Uint64("entry", 0, "Load address and entry point (0 = image default)")
	trace           = flag.Bool("trace", false, "Print each instruction before it executes")
	dump            = flag.String("dump", "", "Dump memory after the run, as addr,len (e.g. 0x2000,64)")
	tui             = flag.Bool("tui", false, "Open the interactive terminal dashboard")
)

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: rv32sim [options] <program.bin>\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	programPath := flag.Arg(0)

	prog, err := loader.Load(programPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading program: %v\n", err)
		os.Exit(1)
	}

	base, err := loadBase(prog.Base, *entry)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Bad -entry value: %v\n", err)
		os.Exit(1)
	}

	if *verbose {
		fmt.Printf("Loaded: %s\n", programPath)
		fmt.Printf("Entry point: 0x%X\n", base)
		fmt.Printf("Image size: %d bytes\n", len(prog.Data))
	}

	var opts []emu.EmulatorOption
	if *maxInstructions > 0 {
		opts = append(opts, emu.WithMaxInstructions(*maxInstructions))
	}

	emulator := emu.NewEmulator(opts...)
	emulator.LoadProgram(base, prog.Data)

	if *tui {
		if err := runTUI(emulator, prog, base); err != nil {
			fmt.Fprintf(os.Stderr, "Dashboard error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *trace {
		err = runTrace(os.Stdout, emulator)
	} else {
		err = emulator.Run()
	}
	if err != nil {
		os.Exit(1)
	}

	if *verbose {
		fmt.Printf("\nInstructions executed: %d\n", emulator.InstructionCount())
		printState(os.Stdout, emulator)
	}

	if *dump != "" {
		addr, n, err := parseDump(*dump)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Bad -dump argument: %v\n", err)
			os.Exit(1)
		}
		if err := printMemory(os.Stdout, emulator, addr, n); err != nil {
			fmt.Fprintf(os.Stderr, "Error dumping memory: %v\n", err)
			os.Exit(1)
		}
	}
}

// runTrace single-steps the program to completion, printing each
// instruction's address, raw word, and mnemonic before it executes.
func runTrace(w io.Writer, emulator *emu.Emulator) error {
	decoder := insts.NewDecoder()

	var inst insts.Instruction
	for {
		pc := emulator.PC()
		word, err := emulator.Memory().Read32(pc)
		if err == nil {
			decoder.DecodeInto(word, &inst)
			fmt.Fprintf(w, "0x%08X: 0x%08X  %v\n", pc, word, inst.Op)
		}

		result := emulator.Step()
		if result.Err != nil {
			fmt.Fprintf(os.Stderr, "Emulation error: %v\n", result.Err)
			return result.Err
		}
		if result.Unsupported && result.Word == 0 {
			return nil
		}
	}
}

// abiNames maps integer register indices to their RISC-V ABI names.
var abiNames = [emu.NumRegs]string{
	"zero", "ra", "sp", "gp", "tp", "t0", "t1", "t2",
	"s0", "s1", "a0", "a1", "a2", "a3", "a4", "a5",
	"a6", "a7", "s2", "s3", "s4", "s5", "s6", "s7",
	"s8", "s9", "s10", "s11", "t3", "t4", "t5", "t6",
}

// printState writes the program counter and the integer register file,
// four registers per row, followed by any nonzero float registers.
func printState(w io.Writer, emulator *emu.Emulator) {
	fmt.Fprintf(w, "PC   = 0x%08X\n", emulator.PC())

	regFile := emulator.RegFile()
	for i := 0; i < emu.NumRegs; i++ {
		fmt.Fprintf(w, "%-4s = 0x%08X", abiNames[i], regFile.X[i])
		if i%4 == 3 {
			fmt.Fprintln(w)
		} else {
			fmt.Fprint(w, "  ")
		}
	}

	fregFile := emulator.FloatRegFile()
	for i := 0; i < emu.NumRegs; i++ {
		if fregFile.F[i] != 0 {
			fmt.Fprintf(w, "f%-3d = %g\n", i, fregFile.F[i])
		}
	}
}

// printMemory writes a hex and ASCII dump of n bytes of memory starting
// at addr, sixteen bytes per row.
func printMemory(w io.Writer, emulator *emu.Emulator, addr, n uint32) error {
	data, err := emulator.Memory().Dump(addr, n)
	if err != nil {
		return err
	}

	for row := 0; row < len(data); row += 16 {
		end := row + 16
		if end > len(data) {
			end = len(data)
		}

		fmt.Fprintf(w, "0x%08X: ", addr+uint32(row))
		for i := row; i < row+16; i++ {
			if i < end {
				fmt.Fprintf(w, "%02X ", data[i])
			} else {
				fmt.Fprint(w, "   ")
			}
		}

		fmt.Fprint(w, "|")
		for i := row; i < end; i++ {
			if data[i] >= 0x20 && data[i] <= 0x7E {
				fmt.Fprintf(w, "%c", data[i])
			} else {
				fmt.Fprint(w, ".")
			}
		}
		fmt.Fprintln(w, "|")
	}

	return nil
}

// loadBase resolves the load address: the -entry override when one is
// given, otherwise the image's own base. Overrides must fit in 32 bits.
func loadBase(imageBase uint32, override uint64) (uint32, error) {
	if override == 0 {
		return imageBase, nil
	}
	if override > math.MaxUint32 {
		return 0, fmt.Errorf("entry 0x%X does not fit in 32 bits", override)
	}
	return uint32(override), nil
}

// parseDump parses the -dump argument, an address and a byte count
// separated by a comma. Both numbers accept the usual 0x prefix.
func parseDump(s string) (addr, n uint32, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("want addr,len, got %q", s)
	}

	a, err := strconv.ParseUint(strings.TrimSpace(parts[0]), 0, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("bad address %q: %w", parts[0], err)
	}

	l, err := strconv.ParseUint(strings.TrimSpace(parts[1]), 0, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("bad length %q: %w", parts[1], err)
	}

	return uint32(a), uint32(l), nil
}
