// Package emu provides functional RV32 emulation.
package emu

// BranchUnit implements RV32 conditional branches and jumps. Every method
// leaves PC pointing at the next instruction to execute: the target when
// the branch is taken, the following instruction when it is not.
type BranchUnit struct {
	regFile *RegFile
}

// NewBranchUnit creates a new BranchUnit connected to the given register file.
func NewBranchUnit(regFile *RegFile) *BranchUnit {
	return &BranchUnit{regFile: regFile}
}

// BEQ branches to PC + offset when rs1 == rs2.
func (b *BranchUnit) BEQ(rs1, rs2 uint8, offset int32) {
	b.branchIf(b.regFile.ReadReg(rs1) == b.regFile.ReadReg(rs2), offset)
}

// BNE branches to PC + offset when rs1 != rs2.
func (b *BranchUnit) BNE(rs1, rs2 uint8, offset int32) {
	b.branchIf(b.regFile.ReadReg(rs1) != b.regFile.ReadReg(rs2), offset)
}

// BLT branches to PC + offset when rs1 < rs2 as signed values.
func (b *BranchUnit) BLT(rs1, rs2 uint8, offset int32) {
	b.branchIf(int32(b.regFile.ReadReg(rs1)) < int32(b.regFile.ReadReg(rs2)), offset)
}

// BGE branches to PC + offset when rs1 >= rs2 as signed values.
func (b *BranchUnit) BGE(rs1, rs2 uint8, offset int32) {
	b.branchIf(int32(b.regFile.ReadReg(rs1)) >= int32(b.regFile.ReadReg(rs2)), offset)
}

// BLTU branches to PC + offset when rs1 < rs2 as unsigned values.
func (b *BranchUnit) BLTU(rs1, rs2 uint8, offset int32) {
	b.branchIf(b.regFile.ReadReg(rs1) < b.regFile.ReadReg(rs2), offset)
}

// BGEU branches to PC + offset when rs1 >= rs2 as unsigned values.
func (b *BranchUnit) BGEU(rs1, rs2 uint8, offset int32) {
	b.branchIf(b.regFile.ReadReg(rs1) >= b.regFile.ReadReg(rs2), offset)
}

// JAL links the return address (PC + 4) into rd, then jumps to PC + offset.
func (b *BranchUnit) JAL(rd uint8, offset int32) {
	b.regFile.WriteReg(rd, b.regFile.PC+4)
	b.regFile.PC += uint32(offset)
}

// JALR jumps to rs1 + offset with bit 0 cleared, linking the return
// address (PC + 4) into rd.
func (b *BranchUnit) JALR(rd, rs1 uint8, offset int32) {
	// Read the target first (rd may be the same register as rs1).
	target := (b.regFile.ReadReg(rs1) + uint32(offset)) &^ 1

	b.regFile.WriteReg(rd, b.regFile.PC+4)
	b.regFile.PC = target
}

// branchIf moves PC to the branch target when taken, otherwise to the
// following instruction.
func (b *BranchUnit) branchIf(taken bool, offset int32) {
	if taken {
		b.regFile.PC += uint32(offset)
	} else {
		b.regFile.PC += 4
	}
}
