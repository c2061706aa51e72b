// Package emu provides functional RV32 emulation.
package emu

import "math"

// ALU implements RV32 integer arithmetic and logic operations.
type ALU struct {
	regFile *RegFile
}

// NewALU creates a new ALU connected to the given register file.
func NewALU(regFile *RegFile) *ALU {
	return &ALU{regFile: regFile}
}

// ADD performs addition: rd = rs1 + rs2, wrapping modulo 2^32.
func (a *ALU) ADD(rd, rs1, rs2 uint8) {
	op1 := a.regFile.ReadReg(rs1)
	op2 := a.regFile.ReadReg(rs2)
	a.regFile.WriteReg(rd, op1+op2)
}

// ADDI performs addition with an immediate: rd = rs1 + imm, wrapping
// modulo 2^32.
func (a *ALU) ADDI(rd, rs1 uint8, imm int32) {
	op1 := a.regFile.ReadReg(rs1)
	a.regFile.WriteReg(rd, op1+uint32(imm))
}

// SUB performs subtraction: rd = rs1 - rs2, wrapping modulo 2^32.
func (a *ALU) SUB(rd, rs1, rs2 uint8) {
	op1 := a.regFile.ReadReg(rs1)
	op2 := a.regFile.ReadReg(rs2)
	a.regFile.WriteReg(rd, op1-op2)
}

// SLL performs a logical left shift: rd = rs1 << rs2[4:0].
func (a *ALU) SLL(rd, rs1, rs2 uint8) {
	op1 := a.regFile.ReadReg(rs1)
	shamt := a.regFile.ReadReg(rs2) & 0x1F
	a.regFile.WriteReg(rd, op1<<shamt)
}

// SRL performs a logical right shift: rd = rs1 >> rs2[4:0], filling with
// zeros.
func (a *ALU) SRL(rd, rs1, rs2 uint8) {
	op1 := a.regFile.ReadReg(rs1)
	shamt := a.regFile.ReadReg(rs2) & 0x1F
	a.regFile.WriteReg(rd, op1>>shamt)
}

// SRA performs an arithmetic right shift: rd = rs1 >> rs2[4:0], filling
// with the sign bit.
func (a *ALU) SRA(rd, rs1, rs2 uint8) {
	op1 := int32(a.regFile.ReadReg(rs1))
	shamt := a.regFile.ReadReg(rs2) & 0x1F
	a.regFile.WriteReg(rd, uint32(op1>>shamt))
}

// SLT sets rd to 1 when rs1 < rs2 as signed values, else 0.
func (a *ALU) SLT(rd, rs1, rs2 uint8) {
	if int32(a.regFile.ReadReg(rs1)) < int32(a.regFile.ReadReg(rs2)) {
		a.regFile.WriteReg(rd, 1)
	} else {
		a.regFile.WriteReg(rd, 0)
	}
}

// SLTU sets rd to 1 when rs1 < rs2 as unsigned values, else 0.
func (a *ALU) SLTU(rd, rs1, rs2 uint8) {
	if a.regFile.ReadReg(rs1) < a.regFile.ReadReg(rs2) {
		a.regFile.WriteReg(rd, 1)
	} else {
		a.regFile.WriteReg(rd, 0)
	}
}

// XOR performs bitwise exclusive OR: rd = rs1 ^ rs2.
func (a *ALU) XOR(rd, rs1, rs2 uint8) {
	op1 := a.regFile.ReadReg(rs1)
	op2 := a.regFile.ReadReg(rs2)
	a.regFile.WriteReg(rd, op1^op2)
}

// OR performs bitwise OR: rd = rs1 | rs2.
func (a *ALU) OR(rd, rs1, rs2 uint8) {
	op1 := a.regFile.ReadReg(rs1)
	op2 := a.regFile.ReadReg(rs2)
	a.regFile.WriteReg(rd, op1|op2)
}

// AND performs bitwise AND: rd = rs1 & rs2.
func (a *ALU) AND(rd, rs1, rs2 uint8) {
	op1 := a.regFile.ReadReg(rs1)
	op2 := a.regFile.ReadReg(rs2)
	a.regFile.WriteReg(rd, op1&op2)
}

// MUL computes the low 32 bits of the product: rd = rs1 * rs2. The low
// word is the same for signed and unsigned operands.
func (a *ALU) MUL(rd, rs1, rs2 uint8) {
	op1 := a.regFile.ReadReg(rs1)
	op2 := a.regFile.ReadReg(rs2)
	a.regFile.WriteReg(rd, op1*op2)
}

// MULH computes the high 32 bits of the signed 64-bit product of rs1 and
// rs2.
func (a *ALU) MULH(rd, rs1, rs2 uint8) {
	op1 := int64(int32(a.regFile.ReadReg(rs1)))
	op2 := int64(int32(a.regFile.ReadReg(rs2)))
	a.regFile.WriteReg(rd, uint32((op1*op2)>>32))
}

// DIV performs signed division, truncating toward zero: rd = rs1 / rs2.
// Division by zero yields -1 (all ones); the most negative value divided
// by -1 yields itself.
func (a *ALU) DIV(rd, rs1, rs2 uint8) {
	dividend := int32(a.regFile.ReadReg(rs1))
	divisor := int32(a.regFile.ReadReg(rs2))

	var result int32
	switch {
	case divisor == 0:
		result = -1
	case dividend == math.MinInt32 && divisor == -1:
		result = dividend
	default:
		result = dividend / divisor
	}
	a.regFile.WriteReg(rd, uint32(result))
}

// REM computes the signed remainder, with the sign of the dividend:
// rd = rs1 % rs2. A zero divisor yields rs1; the most negative value
// by -1 yields 0.
func (a *ALU) REM(rd, rs1, rs2 uint8) {
	dividend := int32(a.regFile.ReadReg(rs1))
	divisor := int32(a.regFile.ReadReg(rs2))

	var result int32
	switch {
	case divisor == 0:
		result = dividend
	case dividend == math.MinInt32 && divisor == -1:
		result = 0
	default:
		result = dividend % divisor
	}
	a.regFile.WriteReg(rd, uint32(result))
}
