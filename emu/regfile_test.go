package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rv32sim/emu"
)

var _ = Describe("RegFile", func() {
	var regFile *emu.RegFile

	BeforeEach(func() {
		regFile = &emu.RegFile{}
	})

	It("should start with all registers zero", func() {
		for reg := uint8(0); reg < emu.NumRegs; reg++ {
			Expect(regFile.ReadReg(reg)).To(Equal(uint32(0)))
		}
	})

	It("should round-trip values through a register", func() {
		regFile.WriteReg(5, 0xDEADBEEF)

		Expect(regFile.ReadReg(5)).To(Equal(uint32(0xDEADBEEF)))
	})

	It("should discard writes to x0", func() {
		regFile.WriteReg(0, 0xFFFFFFFF)

		Expect(regFile.ReadReg(0)).To(Equal(uint32(0)))
	})

	It("should read x0 as zero even after a direct array write", func() {
		regFile.X[0] = 0xFFFFFFFF

		Expect(regFile.ReadReg(0)).To(Equal(uint32(0)))
	})

	It("should keep x1 through x31 independent", func() {
		for reg := uint8(1); reg < emu.NumRegs; reg++ {
			regFile.WriteReg(reg, uint32(reg)*100)
		}

		for reg := uint8(1); reg < emu.NumRegs; reg++ {
			Expect(regFile.ReadReg(reg)).To(Equal(uint32(reg) * 100))
		}
	})

	It("should panic on an out-of-range read", func() {
		Expect(func() { regFile.ReadReg(32) }).To(Panic())
	})

	It("should panic on an out-of-range write", func() {
		Expect(func() { regFile.WriteReg(32, 1) }).To(Panic())
	})
})

var _ = Describe("FloatRegFile", func() {
	var fregFile *emu.FloatRegFile

	BeforeEach(func() {
		fregFile = emu.NewFloatRegFile()
	})

	It("should start with all registers zero", func() {
		for reg := uint8(0); reg < emu.NumRegs; reg++ {
			Expect(fregFile.ReadReg(reg)).To(Equal(float32(0)))
		}
	})

	It("should round-trip values through a register", func() {
		fregFile.WriteReg(3, 2.5)

		Expect(fregFile.ReadReg(3)).To(Equal(float32(2.5)))
	})

	It("should treat f0 as a normal writable register", func() {
		fregFile.WriteReg(0, 1.25)

		Expect(fregFile.ReadReg(0)).To(Equal(float32(1.25)))
	})

	It("should panic on an out-of-range access", func() {
		Expect(func() { fregFile.ReadReg(32) }).To(Panic())
		Expect(func() { fregFile.WriteReg(40, 1) }).To(Panic())
	})
})
