package emu

import (
	"fmt"
	"math"
)

// FloatRegFile models the 32 single precision floating point registers
// f0 through f31. Unlike the integer file there is no hard-wired zero
// register, so every slot is writable.
type FloatRegFile struct {
	F [NumRegs]float32
}

// NewFloatRegFile creates a float register file with all registers zeroed.
func NewFloatRegFile() *FloatRegFile {
	return &FloatRegFile{}
}

// ReadReg returns the value of float register f<reg>.
func (f *FloatRegFile) ReadReg(reg uint8) float32 {
	if reg >= NumRegs {
		panic(fmt.Sprintf("float register index out of range: %d", reg))
	}

	return f.F[reg]
}

// WriteReg sets float register f<reg> to value.
func (f *FloatRegFile) WriteReg(reg uint8, value float32) {
	if reg >= NumRegs {
		panic(fmt.Sprintf("float register index out of range: %d", reg))
	}

	f.F[reg] = value
}

// FPU implements the single precision floating point operations.
type FPU struct {
	fregFile *FloatRegFile
	regFile  *RegFile // Conversions move values to and from integer registers
	memory   *Memory
}

// NewFPU creates a new FPU execution unit.
func NewFPU(fregFile *FloatRegFile, regFile *RegFile, memory *Memory) *FPU {
	return &FPU{
		fregFile: fregFile,
		regFile:  regFile,
		memory:   memory,
	}
}

// FADDS performs single precision addition: fd = fs1 + fs2.
func (f *FPU) FADDS(fd, fs1, fs2 uint8) {
	f.fregFile.WriteReg(fd, f.fregFile.ReadReg(fs1)+f.fregFile.ReadReg(fs2))
}

// FSUBS performs single precision subtraction: fd = fs1 - fs2.
func (f *FPU) FSUBS(fd, fs1, fs2 uint8) {
	f.fregFile.WriteReg(fd, f.fregFile.ReadReg(fs1)-f.fregFile.ReadReg(fs2))
}

// FMULS performs single precision multiplication: fd = fs1 * fs2.
func (f *FPU) FMULS(fd, fs1, fs2 uint8) {
	f.fregFile.WriteReg(fd, f.fregFile.ReadReg(fs1)*f.fregFile.ReadReg(fs2))
}

// FDIVS performs single precision division: fd = fs1 / fs2. Division by
// zero follows IEEE 754 and produces an infinity.
func (f *FPU) FDIVS(fd, fs1, fs2 uint8) {
	f.fregFile.WriteReg(fd, f.fregFile.ReadReg(fs1)/f.fregFile.ReadReg(fs2))
}

// FSQRTS computes the single precision square root: fd = sqrt(fs1).
func (f *FPU) FSQRTS(fd, fs1 uint8) {
	value := float64(f.fregFile.ReadReg(fs1))
	f.fregFile.WriteReg(fd, float32(math.Sqrt(value)))
}

// FCVTWS converts the float in fs1 to a signed 32-bit integer in rd,
// truncating toward zero.
func (f *FPU) FCVTWS(rd, fs1 uint8) {
	f.regFile.WriteReg(rd, uint32(int32(f.fregFile.ReadReg(fs1))))
}

// FCVTSW converts the signed 32-bit integer in rs1 to a float in fd.
func (f *FPU) FCVTSW(fd, rs1 uint8) {
	f.fregFile.WriteReg(fd, float32(int32(f.regFile.ReadReg(rs1))))
}

// FLW loads a 32-bit word from memory into float register fd, taking the
// raw bits as an IEEE 754 single. The destination is untouched when the
// access fails.
func (f *FPU) FLW(fd, rs1 uint8, offset int32) error {
	addr := f.regFile.ReadReg(rs1) + uint32(offset)

	bits, err := f.memory.Read32(addr)
	if err != nil {
		return err
	}

	f.fregFile.WriteReg(fd, math.Float32frombits(bits))

	return nil
}

// FSW stores the raw bits of float register fs2 to memory.
func (f *FPU) FSW(fs2, rs1 uint8, offset int32) error {
	addr := f.regFile.ReadReg(rs1) + uint32(offset)

	return f.memory.Write32(addr, math.Float32bits(f.fregFile.ReadReg(fs2)))
}
