// Package emu provides functional RV32 emulation.
package emu

import "fmt"

// NumRegs is the number of integer registers in the RV32 register file.
const NumRegs = 32

// RegFile represents the RV32 integer register file and program counter.
type RegFile struct {
	// X holds general-purpose registers x0-x31. x0 is hard-wired to
	// zero: ReadReg always returns 0 for it and WriteReg discards the
	// value.
	X [32]uint32

	// PC is the program counter.
	PC uint32
}

// ReadReg reads a register value. Register 0 always reads as zero.
// Indexes outside [0, 31] are decoder bugs and panic.
func (r *RegFile) ReadReg(reg uint8) uint32 {
	if reg >= NumRegs {
		panic(fmt.Sprintf("integer register index out of range: %d", reg))
	}
	if reg == 0 {
		return 0
	}
	return r.X[reg]
}

// WriteReg writes a value to a register. Writes to register 0 are
// discarded. Indexes outside [0, 31] are decoder bugs and panic.
func (r *RegFile) WriteReg(reg uint8, value uint32) {
	if reg >= NumRegs {
		panic(fmt.Sprintf("integer register index out of range: %d", reg))
	}
	if reg == 0 {
		return
	}
	r.X[reg] = value
}
