// Package emu provides functional RV32 emulation.
package emu

// LoadStoreUnit implements RV32 integer load and store operations.
//
// Loads read memory before touching the destination register and stores
// validate the address before writing, so a failed access leaves the
// architectural state untouched.
type LoadStoreUnit struct {
	regFile *RegFile
	memory  *Memory
}

// NewLoadStoreUnit creates a new LoadStoreUnit connected to the given
// register file and memory.
func NewLoadStoreUnit(regFile *RegFile, memory *Memory) *LoadStoreUnit {
	return &LoadStoreUnit{
		regFile: regFile,
		memory:  memory,
	}
}

// LW performs a 32-bit load: rd = mem[rs1 + offset]
func (lsu *LoadStoreUnit) LW(rd, rs1 uint8, offset int32) error {
	addr := lsu.regFile.ReadReg(rs1) + uint32(offset)
	value, err := lsu.memory.Read32(addr)
	if err != nil {
		return err
	}
	lsu.regFile.WriteReg(rd, value)
	return nil
}

// LH performs a 16-bit load with sign extension: rd = sign_extend(mem[rs1 + offset])
func (lsu *LoadStoreUnit) LH(rd, rs1 uint8, offset int32) error {
	addr := lsu.regFile.ReadReg(rs1) + uint32(offset)
	value, err := lsu.memory.Read16(addr)
	if err != nil {
		return err
	}
	lsu.regFile.WriteReg(rd, uint32(int32(int16(value))))
	return nil
}

// SW performs a 32-bit store: mem[rs1 + offset] = rs2
func (lsu *LoadStoreUnit) SW(rs2, rs1 uint8, offset int32) error {
	addr := lsu.regFile.ReadReg(rs1) + uint32(offset)
	value := lsu.regFile.ReadReg(rs2)
	return lsu.memory.Write32(addr, value)
}

// SH performs a 16-bit store: mem[rs1 + offset] = rs2[15:0]
func (lsu *LoadStoreUnit) SH(rs2, rs1 uint8, offset int32) error {
	addr := lsu.regFile.ReadReg(rs1) + uint32(offset)
	value := uint16(lsu.regFile.ReadReg(rs2))
	return lsu.memory.Write16(addr, value)
}
