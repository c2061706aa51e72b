// Package insts provides RV32 instruction definitions and decoding.
//
// This package implements decoding of RV32 machine code into structured
// instruction representations. It supports:
//   - Integer register-register: ADD, SUB, SLL, SLT, SLTU, XOR, SRL, SRA, OR, AND
//   - Multiply/divide: MUL, MULH, DIV, REM
//   - Immediate arithmetic: ADDI
//   - Loads and stores: LW, LH, SW, SH
//   - Control flow: BEQ, BNE, BLT, BGE, BLTU, BGEU, JAL, JALR
//   - Upper immediates: LUI, AUIPC
//   - Single-precision floats: FLW, FSW, FADD.S, FSUB.S, FMUL.S, FDIV.S,
//     FSQRT.S, FCVT.W.S, FCVT.S.W
//
// Operation selection is a single table lookup keyed by the
// (opcode, funct3, funct7) triple; see Lookup. Adding an instruction means
// adding an Op constant and one decode table entry.
//
// Usage:
//
//	decoder := insts.NewDecoder()
//	inst := decoder.Decode(0x002081B3) // ADD x3, x1, x2
//	fmt.Printf("Op: %v, Rd: %d, Rs1: %d, Rs2: %d\n", inst.Op, inst.Rd, inst.Rs1, inst.Rs2)
package insts

// Op represents an RV32 operation.
type Op uint16

// RV32 operations.
const (
	OpUnknown Op = iota

	// Integer register-register (OP), including the M subset
	OpADD
	OpSUB
	OpSLL
	OpSLT
	OpSLTU
	OpXOR
	OpSRL
	OpSRA
	OpOR
	OpAND
	OpMUL
	OpMULH
	OpDIV
	OpREM

	// Immediate arithmetic (OP-IMM)
	OpADDI

	// Loads and stores
	OpLW
	OpLH
	OpSW
	OpSH

	// Conditional branches and jumps
	OpBEQ
	OpBNE
	OpBLT
	OpBGE
	OpBLTU
	OpBGEU
	OpJAL
	OpJALR

	// Upper immediates
	OpLUI
	OpAUIPC

	// F extension
	OpFLW
	OpFSW
	OpFADDS
	OpFSUBS
	OpFMULS
	OpFDIVS
	OpFSQRTS
	OpFCVTWS
	OpFCVTSW
)

var opNames = map[Op]string{
	OpADD:    "add",
	OpSUB:    "sub",
	OpSLL:    "sll",
	OpSLT:    "slt",
	OpSLTU:   "sltu",
	OpXOR:    "xor",
	OpSRL:    "srl",
	OpSRA:    "sra",
	OpOR:     "or",
	OpAND:    "and",
	OpMUL:    "mul",
	OpMULH:   "mulh",
	OpDIV:    "div",
	OpREM:    "rem",
	OpADDI:   "addi",
	OpLW:     "lw",
	OpLH:     "lh",
	OpSW:     "sw",
	OpSH:     "sh",
	OpBEQ:    "beq",
	OpBNE:    "bne",
	OpBLT:    "blt",
	OpBGE:    "bge",
	OpBLTU:   "bltu",
	OpBGEU:   "bgeu",
	OpJAL:    "jal",
	OpJALR:   "jalr",
	OpLUI:    "lui",
	OpAUIPC:  "auipc",
	OpFLW:    "flw",
	OpFSW:    "fsw",
	OpFADDS:  "fadd.s",
	OpFSUBS:  "fsub.s",
	OpFMULS:  "fmul.s",
	OpFDIVS:  "fdiv.s",
	OpFSQRTS: "fsqrt.s",
	OpFCVTWS: "fcvt.w.s",
	OpFCVTSW: "fcvt.s.w",
}

// String returns the assembler mnemonic, or "unknown".
func (o Op) String() string {
	if name, ok := opNames[o]; ok {
		return name
	}
	return "unknown"
}

// Format represents an instruction encoding format.
type Format uint8

// Instruction encoding formats.
const (
	FormatUnknown Format = iota
	FormatR // Register-register (OP, OP-FP)
	FormatI // Register-immediate (OP-IMM, LOAD, JALR, FLW)
	FormatS // Store
	FormatB // Conditional branch
	FormatU // Upper immediate (LUI, AUIPC)
	FormatJ // Jump and link
)

// RV32 major opcodes, bits [6:0] of the instruction word.
const (
	OpcodeLoad    uint8 = 0x03
	OpcodeLoadFP  uint8 = 0x07
	OpcodeOPImm   uint8 = 0x13
	OpcodeAUIPC   uint8 = 0x17
	OpcodeStore   uint8 = 0x23
	OpcodeStoreFP uint8 = 0x27
	OpcodeOP      uint8 = 0x33
	OpcodeLUI     uint8 = 0x37
	OpcodeOPFP    uint8 = 0x53
	OpcodeBranch  uint8 = 0x63
	OpcodeJALR    uint8 = 0x67
	OpcodeJAL     uint8 = 0x6F
)

// Instruction represents a decoded RV32 instruction.
type Instruction struct {
	Raw    uint32 // Original instruction word
	Op     Op     // Operation code
	Format Format // Encoding format

	Opcode uint8 // Major opcode, bits [6:0]
	Rd     uint8 // Destination register, bits [11:7]
	Funct3 uint8 // Minor opcode, bits [14:12]
	Rs1    uint8 // First source register, bits [19:15]
	Rs2    uint8 // Second source register, bits [24:20]
	Funct7 uint8 // Minor opcode, bits [31:25]

	// Imm is the sign-extended immediate for I/S/B/U/J formats. B and J
	// immediates are byte offsets relative to the instruction's own
	// address, with bit 0 always zero.
	Imm int32
}

// Key selects an operation from the decode table. It holds the three
// encoding fields RV32 distinguishes instructions by; fields an opcode
// class does not key on are normalized to zero.
type Key struct {
	Opcode uint8
	Funct3 uint8
	Funct7 uint8
}

// decodeEntry pairs an operation with its encoding format.
type decodeEntry struct {
	op     Op
	format Format
}

// opcodeKeys records which selector fields each opcode class keys on.
// OP selects on funct3 and funct7; OP-FP selects on funct7 alone (its
// funct3 carries the rounding mode); LUI, AUIPC and JAL need the opcode
// only; the rest select on funct3.
var opcodeKeys = map[uint8]struct{ funct3, funct7 bool }{
	OpcodeLoad:    {funct3: true},
	OpcodeLoadFP:  {funct3: true},
	OpcodeOPImm:   {funct3: true},
	OpcodeAUIPC:   {},
	OpcodeStore:   {funct3: true},
	OpcodeStoreFP: {funct3: true},
	OpcodeOP:      {funct3: true, funct7: true},
	OpcodeLUI:     {},
	OpcodeOPFP:    {funct7: true},
	OpcodeBranch:  {funct3: true},
	OpcodeJALR:    {funct3: true},
	OpcodeJAL:     {},
}

// decodeTable maps a normalized Key to its operation and format.
var decodeTable = map[Key]decodeEntry{
	// OP
	{OpcodeOP, 0x0, 0x00}: {OpADD, FormatR},
	{OpcodeOP, 0x0, 0x20}: {OpSUB, FormatR},
	{OpcodeOP, 0x1, 0x00}: {OpSLL, FormatR},
	{OpcodeOP, 0x2, 0x00}: {OpSLT, FormatR},
	{OpcodeOP, 0x3, 0x00}: {OpSLTU, FormatR},
	{OpcodeOP, 0x4, 0x00}: {OpXOR, FormatR},
	{OpcodeOP, 0x5, 0x00}: {OpSRL, FormatR},
	{OpcodeOP, 0x5, 0x20}: {OpSRA, FormatR},
	{OpcodeOP, 0x6, 0x00}: {OpOR, FormatR},
	{OpcodeOP, 0x7, 0x00}: {OpAND, FormatR},

	// OP, M subset
	{OpcodeOP, 0x0, 0x01}: {OpMUL, FormatR},
	{OpcodeOP, 0x1, 0x01}: {OpMULH, FormatR},
	{OpcodeOP, 0x4, 0x01}: {OpDIV, FormatR},
	{OpcodeOP, 0x6, 0x01}: {OpREM, FormatR},

	// OP-IMM
	{OpcodeOPImm, 0x0, 0x00}: {OpADDI, FormatI},

	// LOAD / STORE
	{OpcodeLoad, 0x1, 0x00}:  {OpLH, FormatI},
	{OpcodeLoad, 0x2, 0x00}:  {OpLW, FormatI},
	{OpcodeStore, 0x1, 0x00}: {OpSH, FormatS},
	{OpcodeStore, 0x2, 0x00}: {OpSW, FormatS},

	// BRANCH
	{OpcodeBranch, 0x0, 0x00}: {OpBEQ, FormatB},
	{OpcodeBranch, 0x1, 0x00}: {OpBNE, FormatB},
	{OpcodeBranch, 0x4, 0x00}: {OpBLT, FormatB},
	{OpcodeBranch, 0x5, 0x00}: {OpBGE, FormatB},
	{OpcodeBranch, 0x6, 0x00}: {OpBLTU, FormatB},
	{OpcodeBranch, 0x7, 0x00}: {OpBGEU, FormatB},

	// Jumps and upper immediates
	{OpcodeJAL, 0x0, 0x00}:   {OpJAL, FormatJ},
	{OpcodeJALR, 0x0, 0x00}:  {OpJALR, FormatI},
	{OpcodeLUI, 0x0, 0x00}:   {OpLUI, FormatU},
	{OpcodeAUIPC, 0x0, 0x00}: {OpAUIPC, FormatU},

	// F extension
	{OpcodeLoadFP, 0x2, 0x00}:  {OpFLW, FormatI},
	{OpcodeStoreFP, 0x2, 0x00}: {OpFSW, FormatS},
	{OpcodeOPFP, 0x0, 0x00}:    {OpFADDS, FormatR},
	{OpcodeOPFP, 0x0, 0x04}:    {OpFSUBS, FormatR},
	{OpcodeOPFP, 0x0, 0x08}:    {OpFMULS, FormatR},
	{OpcodeOPFP, 0x0, 0x0C}:    {OpFDIVS, FormatR},
	{OpcodeOPFP, 0x0, 0x2C}:    {OpFSQRTS, FormatR},
	{OpcodeOPFP, 0x0, 0x60}:    {OpFCVTWS, FormatR},
	{OpcodeOPFP, 0x0, 0x68}:    {OpFCVTSW, FormatR},
}

// Lookup resolves an (opcode, funct3, funct7) triple to an operation and
// its encoding format. Selector fields the opcode class does not key on are
// ignored. The last result reports whether the triple names a supported
// instruction.
func Lookup(opcode, funct3, funct7 uint8) (Op, Format, bool) {
	use, ok := opcodeKeys[opcode]
	if !ok {
		return OpUnknown, FormatUnknown, false
	}

	key := Key{Opcode: opcode}
	if use.funct3 {
		key.Funct3 = funct3
	}
	if use.funct7 {
		key.Funct7 = funct7
	}

	entry, ok := decodeTable[key]
	if !ok {
		return OpUnknown, FormatUnknown, false
	}
	return entry.op, entry.format, true
}
