// Package emu provides functional RV32 emulation.
package emu

import (
	"fmt"
	"io"
	"os"

	"github.com/sarchlab/rv32sim/insts"
)

// DefaultEntry is the address programs load at and where execution starts
// unless overridden with WithEntry.
const DefaultEntry uint32 = 0x1000

// StepResult represents the result of executing a single instruction.
type StepResult struct {
	// Unsupported is true when the fetched word does not decode to a
	// known instruction. The word is skipped and PC moves past it.
	Unsupported bool

	// Word is the raw instruction word when Unsupported is true.
	Word uint32

	// Err is set if an error occurred during execution.
	Err error
}

// Emulator executes RV32 instructions functionally.
type Emulator struct {
	regFile  *RegFile
	fregFile *FloatRegFile
	memory   *Memory
	decoder  *insts.Decoder

	// Execution units
	alu        *ALU
	lsu        *LoadStoreUnit
	branchUnit *BranchUnit
	fpu        *FPU

	// I/O
	stderr io.Writer

	// Execution state
	entry            uint32
	instructionCount uint64
	maxInstructions  uint64 // 0 means no limit
}

// EmulatorOption is a functional option for configuring the Emulator.
type EmulatorOption func(*Emulator)

// WithStderr sets a custom writer for diagnostics.
func WithStderr(w io.Writer) EmulatorOption {
	return func(e *Emulator) {
		e.stderr = w
	}
}

// WithEntry sets the entry point. Execution starts there on creation and
// after every Reset.
func WithEntry(entry uint32) EmulatorOption {
	return func(e *Emulator) {
		e.entry = entry
	}
}

// WithMaxInstructions sets the maximum number of instructions to execute.
// A value of 0 means no limit.
func WithMaxInstructions(max uint64) EmulatorOption {
	return func(e *Emulator) {
		e.maxInstructions = max
	}
}

// NewEmulator creates a new RV32 emulator with all registers and memory
// zeroed and PC at the entry point.
func NewEmulator(opts ...EmulatorOption) *Emulator {
	e := &Emulator{
		regFile:  &RegFile{},
		fregFile: NewFloatRegFile(),
		memory:   NewMemory(),
		decoder:  insts.NewDecoder(),
		stderr:   os.Stderr,
		entry:    DefaultEntry,
	}

	// Apply options first (may move the entry point or redirect output)
	for _, opt := range opts {
		opt(e)
	}

	e.regFile.PC = e.entry

	// Create execution units
	e.alu = NewALU(e.regFile)
	e.lsu = NewLoadStoreUnit(e.regFile, e.memory)
	e.branchUnit = NewBranchUnit(e.regFile)
	e.fpu = NewFPU(e.fregFile, e.regFile, e.memory)

	return e
}

// RegFile returns the emulator's integer register file.
func (e *Emulator) RegFile() *RegFile {
	return e.regFile
}

// FloatRegFile returns the emulator's float register file.
func (e *Emulator) FloatRegFile() *FloatRegFile {
	return e.fregFile
}

// Memory returns the emulator's memory.
func (e *Emulator) Memory() *Memory {
	return e.memory
}

// PC returns the current program counter.
func (e *Emulator) PC() uint32 {
	return e.regFile.PC
}

// InstructionCount returns the number of instructions executed.
func (e *Emulator) InstructionCount() uint64 {
	return e.instructionCount
}

// LoadProgram copies program into memory starting at entry and points PC
// there. The entry address is remembered so a later Reset restarts at it.
func (e *Emulator) LoadProgram(entry uint32, program []byte) {
	e.memory.LoadProgram(entry, program)
	e.entry = entry
	e.regFile.PC = entry
}

// Reset returns the emulator to its initial state: all registers and
// memory zeroed, PC back at the entry point. Loaded programs are wiped
// and must be loaded again.
func (e *Emulator) Reset() {
	e.regFile = &RegFile{PC: e.entry}
	e.fregFile = NewFloatRegFile()
	e.memory = NewMemory()
	e.instructionCount = 0

	// Recreate execution units against the fresh state
	e.alu = NewALU(e.regFile)
	e.lsu = NewLoadStoreUnit(e.regFile, e.memory)
	e.branchUnit = NewBranchUnit(e.regFile)
	e.fpu = NewFPU(e.fregFile, e.regFile, e.memory)
}

// Step executes a single instruction.
// A failed fetch or a failed memory access leaves registers, memory, and
// PC exactly as they were before the step.
func (e *Emulator) Step() StepResult {
	// Check instruction limit before executing
	if e.maxInstructions > 0 && e.instructionCount >= e.maxInstructions {
		return StepResult{
			Err: fmt.Errorf("max instructions reached"),
		}
	}

	// 1. Fetch: read 4 bytes at PC
	word, err := e.memory.Read32(e.regFile.PC)
	if err != nil {
		return StepResult{
			Err: fmt.Errorf("fetch at PC=0x%X: %w", e.regFile.PC, err),
		}
	}

	// 2. Decode
	var inst insts.Instruction
	e.decoder.DecodeInto(word, &inst)

	// 3. Execute
	result := e.execute(&inst)

	e.instructionCount++

	return result
}

// Run executes instructions until the program halts or an error occurs.
// A zero word halts the run: freshly created memory is zero filled, so
// execution falling off the end of a program stops cleanly. Other
// undecodable words are reported and skipped.
func (e *Emulator) Run() error {
	for {
		result := e.Step()
		if result.Err != nil {
			_, _ = fmt.Fprintf(e.stderr, "Emulation error: %v\n", result.Err)
			return result.Err
		}

		if result.Unsupported {
			if result.Word == 0 {
				return nil
			}
			_, _ = fmt.Fprintf(e.stderr,
				"Unsupported instruction 0x%08X at PC=0x%X\n",
				result.Word, e.regFile.PC-4)
		}
	}
}

// execute dispatches a decoded instruction to the execution units.
func (e *Emulator) execute(inst *insts.Instruction) StepResult {
	// Undecodable words are diagnosed and skipped so a stray constant in
	// the instruction stream cannot corrupt state.
	if inst.Op == insts.OpUnknown {
		e.regFile.PC += 4
		return StepResult{Unsupported: true, Word: inst.Raw}
	}

	switch inst.Format {
	case insts.FormatR:
		e.executeR(inst)
	case insts.FormatI:
		return e.executeI(inst)
	case insts.FormatS:
		return e.executeS(inst)
	case insts.FormatB:
		e.executeB(inst)
		return StepResult{} // PC already updated by the branch
	case insts.FormatU:
		e.executeU(inst)
	case insts.FormatJ:
		e.branchUnit.JAL(inst.Rd, inst.Imm)
		return StepResult{} // PC already updated by the jump
	}

	// Advance PC past the executed instruction
	e.regFile.PC += 4

	return StepResult{}
}

// executeR executes register-register arithmetic and the floating point
// operations, which share the R encoding.
func (e *Emulator) executeR(inst *insts.Instruction) {
	switch inst.Op {
	case insts.OpADD:
		e.alu.ADD(inst.Rd, inst.Rs1, inst.Rs2)
	case insts.OpSUB:
		e.alu.SUB(inst.Rd, inst.Rs1, inst.Rs2)
	case insts.OpSLL:
		e.alu.SLL(inst.Rd, inst.Rs1, inst.Rs2)
	case insts.OpSLT:
		e.alu.SLT(inst.Rd, inst.Rs1, inst.Rs2)
	case insts.OpSLTU:
		e.alu.SLTU(inst.Rd, inst.Rs1, inst.Rs2)
	case insts.OpXOR:
		e.alu.XOR(inst.Rd, inst.Rs1, inst.Rs2)
	case insts.OpSRL:
		e.alu.SRL(inst.Rd, inst.Rs1, inst.Rs2)
	case insts.OpSRA:
		e.alu.SRA(inst.Rd, inst.Rs1, inst.Rs2)
	case insts.OpOR:
		e.alu.OR(inst.Rd, inst.Rs1, inst.Rs2)
	case insts.OpAND:
		e.alu.AND(inst.Rd, inst.Rs1, inst.Rs2)
	case insts.OpMUL:
		e.alu.MUL(inst.Rd, inst.Rs1, inst.Rs2)
	case insts.OpMULH:
		e.alu.MULH(inst.Rd, inst.Rs1, inst.Rs2)
	case insts.OpDIV:
		e.alu.DIV(inst.Rd, inst.Rs1, inst.Rs2)
	case insts.OpREM:
		e.alu.REM(inst.Rd, inst.Rs1, inst.Rs2)
	case insts.OpFADDS:
		e.fpu.FADDS(inst.Rd, inst.Rs1, inst.Rs2)
	case insts.OpFSUBS:
		e.fpu.FSUBS(inst.Rd, inst.Rs1, inst.Rs2)
	case insts.OpFMULS:
		e.fpu.FMULS(inst.Rd, inst.Rs1, inst.Rs2)
	case insts.OpFDIVS:
		e.fpu.FDIVS(inst.Rd, inst.Rs1, inst.Rs2)
	case insts.OpFSQRTS:
		e.fpu.FSQRTS(inst.Rd, inst.Rs1)
	case insts.OpFCVTWS:
		e.fpu.FCVTWS(inst.Rd, inst.Rs1)
	case insts.OpFCVTSW:
		e.fpu.FCVTSW(inst.Rd, inst.Rs1)
	}
}

// executeI executes immediate arithmetic, loads, and JALR.
func (e *Emulator) executeI(inst *insts.Instruction) StepResult {
	if inst.Op == insts.OpJALR {
		e.branchUnit.JALR(inst.Rd, inst.Rs1, inst.Imm)
		return StepResult{} // PC already updated by the jump
	}

	var err error
	switch inst.Op {
	case insts.OpADDI:
		e.alu.ADDI(inst.Rd, inst.Rs1, inst.Imm)
	case insts.OpLW:
		err = e.lsu.LW(inst.Rd, inst.Rs1, inst.Imm)
	case insts.OpLH:
		err = e.lsu.LH(inst.Rd, inst.Rs1, inst.Imm)
	case insts.OpFLW:
		err = e.fpu.FLW(inst.Rd, inst.Rs1, inst.Imm)
	}
	if err != nil {
		return StepResult{Err: fmt.Errorf("at PC=0x%X: %w", e.regFile.PC, err)}
	}

	e.regFile.PC += 4

	return StepResult{}
}

// executeS executes stores.
func (e *Emulator) executeS(inst *insts.Instruction) StepResult {
	var err error
	switch inst.Op {
	case insts.OpSW:
		err = e.lsu.SW(inst.Rs2, inst.Rs1, inst.Imm)
	case insts.OpSH:
		err = e.lsu.SH(inst.Rs2, inst.Rs1, inst.Imm)
	case insts.OpFSW:
		err = e.fpu.FSW(inst.Rs2, inst.Rs1, inst.Imm)
	}
	if err != nil {
		return StepResult{Err: fmt.Errorf("at PC=0x%X: %w", e.regFile.PC, err)}
	}

	e.regFile.PC += 4

	return StepResult{}
}

// executeB executes conditional branches. The branch unit leaves PC at
// the correct next instruction in both the taken and not-taken case.
func (e *Emulator) executeB(inst *insts.Instruction) {
	switch inst.Op {
	case insts.OpBEQ:
		e.branchUnit.BEQ(inst.Rs1, inst.Rs2, inst.Imm)
	case insts.OpBNE:
		e.branchUnit.BNE(inst.Rs1, inst.Rs2, inst.Imm)
	case insts.OpBLT:
		e.branchUnit.BLT(inst.Rs1, inst.Rs2, inst.Imm)
	case insts.OpBGE:
		e.branchUnit.BGE(inst.Rs1, inst.Rs2, inst.Imm)
	case insts.OpBLTU:
		e.branchUnit.BLTU(inst.Rs1, inst.Rs2, inst.Imm)
	case insts.OpBGEU:
		e.branchUnit.BGEU(inst.Rs1, inst.Rs2, inst.Imm)
	}
}

// executeU executes LUI and AUIPC. The decoder already placed the
// immediate's 20 bits in the upper word.
func (e *Emulator) executeU(inst *insts.Instruction) {
	switch inst.Op {
	case insts.OpLUI:
		e.regFile.WriteReg(inst.Rd, uint32(inst.Imm))
	case insts.OpAUIPC:
		e.regFile.WriteReg(inst.Rd, e.regFile.PC+uint32(inst.Imm))
	}
}
