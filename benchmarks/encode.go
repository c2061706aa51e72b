package benchmarks

import (
	"encoding/binary"

	"github.com/sarchlab/rv32sim/insts"
)

// BuildProgram assembles instruction words into a little-endian byte image
// ready for Emulator.LoadProgram.
func BuildProgram(words ...uint32) []byte {
	program := make([]byte, 0, len(words)*4)
	for _, word := range words {
		buf := make([]byte, 4)
		binary.LittleEndian.PutUint32(buf, word)
		program = append(program, buf...)
	}
	return program
}

// Format encoders. Offsets and immediates are the architectural byte
// values; the encoders scatter them into the instruction bit groups.

// EncodeR encodes an R-format word: funct7 | rs2 | rs1 | funct3 | rd | opcode.
func EncodeR(opcode, rd, funct3, rs1, rs2, funct7 uint8) uint32 {
	return uint32(funct7&0x7F)<<25 | uint32(rs2&0x1F)<<20 | uint32(rs1&0x1F)<<15 |
		uint32(funct3&0x7)<<12 | uint32(rd&0x1F)<<7 | uint32(opcode&0x7F)
}

// EncodeI encodes an I-format word with a 12-bit signed immediate.
func EncodeI(opcode, rd, funct3, rs1 uint8, imm int32) uint32 {
	return uint32(imm&0xFFF)<<20 | uint32(rs1&0x1F)<<15 |
		uint32(funct3&0x7)<<12 | uint32(rd&0x1F)<<7 | uint32(opcode&0x7F)
}

// EncodeS encodes an S-format word. The immediate splits into bits [31:25]
// (imm[11:5]) and [11:7] (imm[4:0]).
func EncodeS(opcode, funct3, rs1, rs2 uint8, imm int32) uint32 {
	uimm := uint32(imm)
	return (uimm>>5&0x7F)<<25 | uint32(rs2&0x1F)<<20 | uint32(rs1&0x1F)<<15 |
		uint32(funct3&0x7)<<12 | (uimm&0x1F)<<7 | uint32(opcode&0x7F)
}

// EncodeB encodes a B-format word. The 13-bit branch offset (bit 0 always
// zero) scatters as imm[12|10:5] into bits [31:25] and imm[4:1|11] into
// bits [11:7].
func EncodeB(opcode, funct3, rs1, rs2 uint8, offset int32) uint32 {
	uimm := uint32(offset)
	return (uimm>>12&0x1)<<31 | (uimm>>5&0x3F)<<25 | uint32(rs2&0x1F)<<20 |
		uint32(rs1&0x1F)<<15 | uint32(funct3&0x7)<<12 | (uimm>>1&0xF)<<8 |
		(uimm>>11&0x1)<<7 | uint32(opcode&0x7F)
}

// EncodeU encodes a U-format word. The 20-bit immediate fills bits [31:12].
func EncodeU(opcode, rd uint8, imm20 uint32) uint32 {
	return (imm20&0xFFFFF)<<12 | uint32(rd&0x1F)<<7 | uint32(opcode&0x7F)
}

// EncodeJ encodes a J-format word. The 21-bit jump offset (bit 0 always
// zero) scatters as imm[20|10:1|11|19:12] into bits [31:12].
func EncodeJ(opcode, rd uint8, offset int32) uint32 {
	uimm := uint32(offset)
	return (uimm>>20&0x1)<<31 | (uimm>>1&0x3FF)<<21 | (uimm>>11&0x1)<<20 |
		(uimm>>12&0xFF)<<12 | uint32(rd&0x1F)<<7 | uint32(opcode&0x7F)
}

// Per-instruction wrappers, one per supported operation.

// EncodeADDI encodes addi rd, rs1, imm.
func EncodeADDI(rd, rs1 uint8, imm int32) uint32 {
	return EncodeI(insts.OpcodeOPImm, rd, 0x0, rs1, imm)
}

// EncodeADD encodes add rd, rs1, rs2.
func EncodeADD(rd, rs1, rs2 uint8) uint32 {
	return EncodeR(insts.OpcodeOP, rd, 0x0, rs1, rs2, 0x00)
}

// EncodeSUB encodes sub rd, rs1, rs2.
func EncodeSUB(rd, rs1, rs2 uint8) uint32 {
	return EncodeR(insts.OpcodeOP, rd, 0x0, rs1, rs2, 0x20)
}

// EncodeSLL encodes sll rd, rs1, rs2.
func EncodeSLL(rd, rs1, rs2 uint8) uint32 {
	return EncodeR(insts.OpcodeOP, rd, 0x1, rs1, rs2, 0x00)
}

// EncodeSLT encodes slt rd, rs1, rs2.
func EncodeSLT(rd, rs1, rs2 uint8) uint32 {
	return EncodeR(insts.OpcodeOP, rd, 0x2, rs1, rs2, 0x00)
}

// EncodeSLTU encodes sltu rd, rs1, rs2.
func EncodeSLTU(rd, rs1, rs2 uint8) uint32 {
	return EncodeR(insts.OpcodeOP, rd, 0x3, rs1, rs2, 0x00)
}

// EncodeXOR encodes xor rd, rs1, rs2.
func EncodeXOR(rd, rs1, rs2 uint8) uint32 {
	return EncodeR(insts.OpcodeOP, rd, 0x4, rs1, rs2, 0x00)
}

// EncodeSRL encodes srl rd, rs1, rs2.
func EncodeSRL(rd, rs1, rs2 uint8) uint32 {
	return EncodeR(insts.OpcodeOP, rd, 0x5, rs1, rs2, 0x00)
}

// EncodeSRA encodes sra rd, rs1, rs2.
func EncodeSRA(rd, rs1, rs2 uint8) uint32 {
	return EncodeR(insts.OpcodeOP, rd, 0x5, rs1, rs2, 0x20)
}

// EncodeOR encodes or rd, rs1, rs2.
func EncodeOR(rd, rs1, rs2 uint8) uint32 {
	return EncodeR(insts.OpcodeOP, rd, 0x6, rs1, rs2, 0x00)
}

// EncodeAND encodes and rd, rs1, rs2.
func EncodeAND(rd, rs1, rs2 uint8) uint32 {
	return EncodeR(insts.OpcodeOP, rd, 0x7, rs1, rs2, 0x00)
}

// EncodeMUL encodes mul rd, rs1, rs2.
func EncodeMUL(rd, rs1, rs2 uint8) uint32 {
	return EncodeR(insts.OpcodeOP, rd, 0x0, rs1, rs2, 0x01)
}

// EncodeMULH encodes mulh rd, rs1, rs2.
func EncodeMULH(rd, rs1, rs2 uint8) uint32 {
	return EncodeR(insts.OpcodeOP, rd, 0x1, rs1, rs2, 0x01)
}

// EncodeDIV encodes div rd, rs1, rs2.
func EncodeDIV(rd, rs1, rs2 uint8) uint32 {
	return EncodeR(insts.OpcodeOP, rd, 0x4, rs1, rs2, 0x01)
}

// EncodeREM encodes rem rd, rs1, rs2.
func EncodeREM(rd, rs1, rs2 uint8) uint32 {
	return EncodeR(insts.OpcodeOP, rd, 0x6, rs1, rs2, 0x01)
}

// EncodeLW encodes lw rd, offset(rs1).
func EncodeLW(rd, rs1 uint8, offset int32) uint32 {
	return EncodeI(insts.OpcodeLoad, rd, 0x2, rs1, offset)
}

// EncodeLH encodes lh rd, offset(rs1).
func EncodeLH(rd, rs1 uint8, offset int32) uint32 {
	return EncodeI(insts.OpcodeLoad, rd, 0x1, rs1, offset)
}

// EncodeSW encodes sw rs2, offset(rs1).
func EncodeSW(rs2, rs1 uint8, offset int32) uint32 {
	return EncodeS(insts.OpcodeStore, 0x2, rs1, rs2, offset)
}

// EncodeSH encodes sh rs2, offset(rs1).
func EncodeSH(rs2, rs1 uint8, offset int32) uint32 {
	return EncodeS(insts.OpcodeStore, 0x1, rs1, rs2, offset)
}

// EncodeBEQ encodes beq rs1, rs2, offset.
func EncodeBEQ(rs1, rs2 uint8, offset int32) uint32 {
	return EncodeB(insts.OpcodeBranch, 0x0, rs1, rs2, offset)
}

// EncodeBNE encodes bne rs1, rs2, offset.
func EncodeBNE(rs1, rs2 uint8, offset int32) uint32 {
	return EncodeB(insts.OpcodeBranch, 0x1, rs1, rs2, offset)
}

// EncodeBLT encodes blt rs1, rs2, offset.
func EncodeBLT(rs1, rs2 uint8, offset int32) uint32 {
	return EncodeB(insts.OpcodeBranch, 0x4, rs1, rs2, offset)
}

// EncodeBGE encodes bge rs1, rs2, offset.
func EncodeBGE(rs1, rs2 uint8, offset int32) uint32 {
	return EncodeB(insts.OpcodeBranch, 0x5, rs1, rs2, offset)
}

// EncodeBLTU encodes bltu rs1, rs2, offset.
func EncodeBLTU(rs1, rs2 uint8, offset int32) uint32 {
	return EncodeB(insts.OpcodeBranch, 0x6, rs1, rs2, offset)
}

// EncodeBGEU encodes bgeu rs1, rs2, offset.
func EncodeBGEU(rs1, rs2 uint8, offset int32) uint32 {
	return EncodeB(insts.OpcodeBranch, 0x7, rs1, rs2, offset)
}

// EncodeLUI encodes lui rd, imm20.
func EncodeLUI(rd uint8, imm20 uint32) uint32 {
	return EncodeU(insts.OpcodeLUI, rd, imm20)
}

// EncodeAUIPC encodes auipc rd, imm20.
func EncodeAUIPC(rd uint8, imm20 uint32) uint32 {
	return EncodeU(insts.OpcodeAUIPC, rd, imm20)
}

// EncodeJAL encodes jal rd, offset.
func EncodeJAL(rd uint8, offset int32) uint32 {
	return EncodeJ(insts.OpcodeJAL, rd, offset)
}

// EncodeJALR encodes jalr rd, offset(rs1).
func EncodeJALR(rd, rs1 uint8, offset int32) uint32 {
	return EncodeI(insts.OpcodeJALR, rd, 0x0, rs1, offset)
}

// EncodeFLW encodes flw fd, offset(rs1).
func EncodeFLW(fd, rs1 uint8, offset int32) uint32 {
	return EncodeI(insts.OpcodeLoadFP, fd, 0x2, rs1, offset)
}

// EncodeFSW encodes fsw fs2, offset(rs1).
func EncodeFSW(fs2, rs1 uint8, offset int32) uint32 {
	return EncodeS(insts.OpcodeStoreFP, 0x2, rs1, fs2, offset)
}

// The OP-FP wrappers fill funct3 with the dynamic rounding mode (0b111),
// the value assemblers emit. The decoder selects on funct7 alone.

// EncodeFADDS encodes fadd.s fd, fs1, fs2.
func EncodeFADDS(fd, fs1, fs2 uint8) uint32 {
	return EncodeR(insts.OpcodeOPFP, fd, 0x7, fs1, fs2, 0x00)
}

// EncodeFSUBS encodes fsub.s fd, fs1, fs2.
func EncodeFSUBS(fd, fs1, fs2 uint8) uint32 {
	return EncodeR(insts.OpcodeOPFP, fd, 0x7, fs1, fs2, 0x04)
}

// EncodeFMULS encodes fmul.s fd, fs1, fs2.
func EncodeFMULS(fd, fs1, fs2 uint8) uint32 {
	return EncodeR(insts.OpcodeOPFP, fd, 0x7, fs1, fs2, 0x08)
}

// EncodeFDIVS encodes fdiv.s fd, fs1, fs2.
func EncodeFDIVS(fd, fs1, fs2 uint8) uint32 {
	return EncodeR(insts.OpcodeOPFP, fd, 0x7, fs1, fs2, 0x0C)
}

// EncodeFSQRTS encodes fsqrt.s fd, fs1.
func EncodeFSQRTS(fd, fs1 uint8) uint32 {
	return EncodeR(insts.OpcodeOPFP, fd, 0x7, fs1, 0, 0x2C)
}

// EncodeFCVTWS encodes fcvt.w.s rd, fs1.
func EncodeFCVTWS(rd, fs1 uint8) uint32 {
	return EncodeR(insts.OpcodeOPFP, rd, 0x7, fs1, 0, 0x60)
}

// EncodeFCVTSW encodes fcvt.s.w fd, rs1.
func EncodeFCVTSW(fd, rs1 uint8) uint32 {
	return EncodeR(insts.OpcodeOPFP, fd, 0x7, rs1, 0, 0x68)
}
