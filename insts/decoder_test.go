package insts_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rv32sim/insts"
)

var _ = Describe("Decoder", func() {
	var decoder *insts.Decoder

	BeforeEach(func() {
		decoder = insts.NewDecoder()
	})

	Describe("Integer register-register (OP)", func() {
		// ADD x3, x1, x2 -> 0x002081B3
		// Encoding: funct7=0x00, rs2=2, rs1=1, funct3=0x0, rd=3, opcode=0x33
		It("should decode ADD x3, x1, x2", func() {
			inst := decoder.Decode(0x002081B3)

			Expect(inst.Op).To(Equal(insts.OpADD))
			Expect(inst.Format).To(Equal(insts.FormatR))
			Expect(inst.Rd).To(Equal(uint8(3)))
			Expect(inst.Rs1).To(Equal(uint8(1)))
			Expect(inst.Rs2).To(Equal(uint8(2)))
		})

		// SUB x5, x6, x7 -> 0x407302B3
		// Encoding: funct7=0x20, rs2=7, rs1=6, funct3=0x0, rd=5, opcode=0x33
		It("should decode SUB x5, x6, x7", func() {
			inst := decoder.Decode(0x407302B3)

			Expect(inst.Op).To(Equal(insts.OpSUB))
			Expect(inst.Format).To(Equal(insts.FormatR))
			Expect(inst.Rd).To(Equal(uint8(5)))
			Expect(inst.Rs1).To(Equal(uint8(6)))
			Expect(inst.Rs2).To(Equal(uint8(7)))
		})

		// SLL x1, x2, x3 -> 0x003110B3
		It("should decode SLL x1, x2, x3", func() {
			inst := decoder.Decode(0x003110B3)

			Expect(inst.Op).To(Equal(insts.OpSLL))
			Expect(inst.Rd).To(Equal(uint8(1)))
			Expect(inst.Rs1).To(Equal(uint8(2)))
			Expect(inst.Rs2).To(Equal(uint8(3)))
		})

		// SLT x4, x5, x6 -> 0x0062A233, SLTU x4, x5, x6 -> 0x0062B233
		It("should distinguish SLT from SLTU by funct3", func() {
			Expect(decoder.Decode(0x0062A233).Op).To(Equal(insts.OpSLT))
			Expect(decoder.Decode(0x0062B233).Op).To(Equal(insts.OpSLTU))
		})

		// XOR x3, x1, x2 -> 0x0020C1B3
		// OR  x3, x1, x2 -> 0x0020E1B3
		// AND x3, x1, x2 -> 0x0020F1B3
		It("should decode the logical operations", func() {
			Expect(decoder.Decode(0x0020C1B3).Op).To(Equal(insts.OpXOR))
			Expect(decoder.Decode(0x0020E1B3).Op).To(Equal(insts.OpOR))
			Expect(decoder.Decode(0x0020F1B3).Op).To(Equal(insts.OpAND))
		})

		// SRL x8, x9, x10 -> 0x00A4D433 (funct7=0x00)
		// SRA x8, x9, x10 -> 0x40A4D433 (funct7=0x20)
		It("should distinguish SRL from SRA by funct7", func() {
			srl := decoder.Decode(0x00A4D433)
			Expect(srl.Op).To(Equal(insts.OpSRL))
			Expect(srl.Rd).To(Equal(uint8(8)))
			Expect(srl.Rs1).To(Equal(uint8(9)))
			Expect(srl.Rs2).To(Equal(uint8(10)))

			Expect(decoder.Decode(0x40A4D433).Op).To(Equal(insts.OpSRA))
		})
	})

	Describe("Multiply and divide (OP, M subset)", func() {
		// MUL  x3, x1, x2 -> 0x022081B3 (funct7=0x01, funct3=0x0)
		// MULH x3, x1, x2 -> 0x022091B3 (funct3=0x1)
		// DIV  x3, x1, x2 -> 0x0220C1B3 (funct3=0x4)
		// REM  x3, x1, x2 -> 0x0220E1B3 (funct3=0x6)
		It("should decode the M operations by funct7=0x01", func() {
			Expect(decoder.Decode(0x022081B3).Op).To(Equal(insts.OpMUL))
			Expect(decoder.Decode(0x022091B3).Op).To(Equal(insts.OpMULH))
			Expect(decoder.Decode(0x0220C1B3).Op).To(Equal(insts.OpDIV))
			Expect(decoder.Decode(0x0220E1B3).Op).To(Equal(insts.OpREM))
		})
	})

	Describe("Immediate arithmetic and loads (I-format)", func() {
		// ADDI x5, x0, 42 -> 0x02A00293
		It("should decode ADDI x5, x0, 42", func() {
			inst := decoder.Decode(0x02A00293)

			Expect(inst.Op).To(Equal(insts.OpADDI))
			Expect(inst.Format).To(Equal(insts.FormatI))
			Expect(inst.Rd).To(Equal(uint8(5)))
			Expect(inst.Rs1).To(Equal(uint8(0)))
			Expect(inst.Imm).To(Equal(int32(42)))
		})

		// ADDI x1, x2, -1 -> 0xFFF10093
		It("should sign-extend a negative I-immediate", func() {
			inst := decoder.Decode(0xFFF10093)

			Expect(inst.Op).To(Equal(insts.OpADDI))
			Expect(inst.Imm).To(Equal(int32(-1)))
		})

		// ADDI x1, x2, 2047  -> 0x7FF10093 (largest positive I-immediate)
		// ADDI x1, x2, -2048 -> 0x80010093 (most negative I-immediate)
		It("should decode the I-immediate extremes", func() {
			Expect(decoder.Decode(0x7FF10093).Imm).To(Equal(int32(2047)))
			Expect(decoder.Decode(0x80010093).Imm).To(Equal(int32(-2048)))
		})

		// LW x6, 0(x2) -> 0x00012303
		It("should decode LW x6, 0(x2)", func() {
			inst := decoder.Decode(0x00012303)

			Expect(inst.Op).To(Equal(insts.OpLW))
			Expect(inst.Format).To(Equal(insts.FormatI))
			Expect(inst.Rd).To(Equal(uint8(6)))
			Expect(inst.Rs1).To(Equal(uint8(2)))
			Expect(inst.Imm).To(Equal(int32(0)))
		})

		// LW x5, -4(x1) -> 0xFFC0A283
		It("should decode LW with a negative offset", func() {
			inst := decoder.Decode(0xFFC0A283)

			Expect(inst.Op).To(Equal(insts.OpLW))
			Expect(inst.Rd).To(Equal(uint8(5)))
			Expect(inst.Rs1).To(Equal(uint8(1)))
			Expect(inst.Imm).To(Equal(int32(-4)))
		})

		// LH x6, 2(x3) -> 0x00219303
		It("should decode LH x6, 2(x3)", func() {
			inst := decoder.Decode(0x00219303)

			Expect(inst.Op).To(Equal(insts.OpLH))
			Expect(inst.Rd).To(Equal(uint8(6)))
			Expect(inst.Rs1).To(Equal(uint8(3)))
			Expect(inst.Imm).To(Equal(int32(2)))
		})
	})

	Describe("Stores (S-format)", func() {
		// SW x5, 0(x2) -> 0x00512023
		It("should decode SW x5, 0(x2)", func() {
			inst := decoder.Decode(0x00512023)

			Expect(inst.Op).To(Equal(insts.OpSW))
			Expect(inst.Format).To(Equal(insts.FormatS))
			Expect(inst.Rs1).To(Equal(uint8(2)))
			Expect(inst.Rs2).To(Equal(uint8(5)))
			Expect(inst.Imm).To(Equal(int32(0)))
		})

		// SW x5, 8(x2) -> 0x00512423
		It("should reassemble the split positive S-immediate", func() {
			inst := decoder.Decode(0x00512423)

			Expect(inst.Op).To(Equal(insts.OpSW))
			Expect(inst.Imm).To(Equal(int32(8)))
		})

		// SW x1, -4(x2) -> 0xFE112E23
		It("should sign-extend the S-immediate", func() {
			inst := decoder.Decode(0xFE112E23)

			Expect(inst.Op).To(Equal(insts.OpSW))
			Expect(inst.Rs1).To(Equal(uint8(2)))
			Expect(inst.Rs2).To(Equal(uint8(1)))
			Expect(inst.Imm).To(Equal(int32(-4)))
		})

		// SH x5, 6(x3) -> 0x00519323
		It("should decode SH x5, 6(x3)", func() {
			inst := decoder.Decode(0x00519323)

			Expect(inst.Op).To(Equal(insts.OpSH))
			Expect(inst.Rs1).To(Equal(uint8(3)))
			Expect(inst.Rs2).To(Equal(uint8(5)))
			Expect(inst.Imm).To(Equal(int32(6)))
		})
	})

	Describe("Conditional branches (B-format)", func() {
		// BEQ x1, x2, +8 -> 0x00208463
		It("should decode BEQ x1, x2, +8", func() {
			inst := decoder.Decode(0x00208463)

			Expect(inst.Op).To(Equal(insts.OpBEQ))
			Expect(inst.Format).To(Equal(insts.FormatB))
			Expect(inst.Rs1).To(Equal(uint8(1)))
			Expect(inst.Rs2).To(Equal(uint8(2)))
			Expect(inst.Imm).To(Equal(int32(8)))
		})

		// BEQ x1, x2, -4 -> 0xFE208EE3
		It("should decode BEQ x1, x2, -4", func() {
			inst := decoder.Decode(0xFE208EE3)

			Expect(inst.Op).To(Equal(insts.OpBEQ))
			Expect(inst.Imm).To(Equal(int32(-4)))
		})

		// BEQ x0, x0, 0 -> 0x00000063
		It("should decode a zero branch offset", func() {
			inst := decoder.Decode(0x00000063)

			Expect(inst.Op).To(Equal(insts.OpBEQ))
			Expect(inst.Rs1).To(Equal(uint8(0)))
			Expect(inst.Rs2).To(Equal(uint8(0)))
			Expect(inst.Imm).To(Equal(int32(0)))
		})

		// BEQ x1, x2, +4094 -> 0x7E208FE3 (largest positive B-immediate)
		// BEQ x1, x2, -4096 -> 0x80208063 (most negative B-immediate)
		It("should decode the B-immediate extremes", func() {
			Expect(decoder.Decode(0x7E208FE3).Imm).To(Equal(int32(4094)))
			Expect(decoder.Decode(0x80208063).Imm).To(Equal(int32(-4096)))
		})

		// BNE  x1, x2, +8 -> 0x00209463
		// BLT  x1, x2, +8 -> 0x0020C463
		// BGE  x1, x2, +8 -> 0x0020D463
		// BLTU x1, x2, +8 -> 0x0020E463
		// BGEU x1, x2, +8 -> 0x0020F463
		It("should decode all six branch conditions", func() {
			Expect(decoder.Decode(0x00208463).Op).To(Equal(insts.OpBEQ))
			Expect(decoder.Decode(0x00209463).Op).To(Equal(insts.OpBNE))
			Expect(decoder.Decode(0x0020C463).Op).To(Equal(insts.OpBLT))
			Expect(decoder.Decode(0x0020D463).Op).To(Equal(insts.OpBGE))
			Expect(decoder.Decode(0x0020E463).Op).To(Equal(insts.OpBLTU))
			Expect(decoder.Decode(0x0020F463).Op).To(Equal(insts.OpBGEU))
		})
	})

	Describe("B-immediate reconstruction", func() {
		// Independent reference: place each encoding group into its
		// immediate position, then widen from bit 12 by ORing the upper
		// bits in.
		reference := func(word uint32) int32 {
			value := uint32(0)
			if word&(1<<31) != 0 {
				value |= 1 << 12
			}
			if word&(1<<7) != 0 {
				value |= 1 << 11
			}
			value |= ((word >> 25) & 0x3F) << 5
			value |= ((word >> 8) & 0xF) << 1
			if value&(1<<12) != 0 {
				value |= 0xFFFFE000
			}
			return int32(value)
		}

		It("should match the reference for every encoding bit combination", func() {
			for b31 := uint32(0); b31 <= 1; b31++ {
				for b7 := uint32(0); b7 <= 1; b7++ {
					for hi := uint32(0); hi < 64; hi++ {
						for lo := uint32(0); lo < 16; lo++ {
							// BEQ x1, x2 skeleton with the four
							// immediate groups filled in.
							word := b31<<31 | hi<<25 | lo<<8 | b7<<7
							word |= 2<<20 | 1<<15
							word |= uint32(insts.OpcodeBranch)

							inst := decoder.Decode(word)
							Expect(inst.Op).To(Equal(insts.OpBEQ))
							Expect(inst.Imm).To(Equal(reference(word)),
								"word 0x%08X", word)
						}
					}
				}
			}
		})
	})

	Describe("Jumps and upper immediates", func() {
		// JAL x1, +8 -> 0x008000EF
		It("should decode JAL x1, +8", func() {
			inst := decoder.Decode(0x008000EF)

			Expect(inst.Op).To(Equal(insts.OpJAL))
			Expect(inst.Format).To(Equal(insts.FormatJ))
			Expect(inst.Rd).To(Equal(uint8(1)))
			Expect(inst.Imm).To(Equal(int32(8)))
		})

		// JAL x0, -8 -> 0xFF9FF06F
		It("should decode JAL with a negative offset", func() {
			inst := decoder.Decode(0xFF9FF06F)

			Expect(inst.Op).To(Equal(insts.OpJAL))
			Expect(inst.Rd).To(Equal(uint8(0)))
			Expect(inst.Imm).To(Equal(int32(-8)))
		})

		// JALR x1, x5, 0 -> 0x000280E7
		It("should decode JALR x1, x5, 0", func() {
			inst := decoder.Decode(0x000280E7)

			Expect(inst.Op).To(Equal(insts.OpJALR))
			Expect(inst.Format).To(Equal(insts.FormatI))
			Expect(inst.Rd).To(Equal(uint8(1)))
			Expect(inst.Rs1).To(Equal(uint8(5)))
			Expect(inst.Imm).To(Equal(int32(0)))
		})

		// LUI x5, 0x12345 -> 0x123452B7
		It("should decode LUI x5, 0x12345", func() {
			inst := decoder.Decode(0x123452B7)

			Expect(inst.Op).To(Equal(insts.OpLUI))
			Expect(inst.Format).To(Equal(insts.FormatU))
			Expect(inst.Rd).To(Equal(uint8(5)))
			Expect(inst.Imm).To(Equal(int32(0x12345000)))
		})

		// LUI x1, 0xFFFFF -> 0xFFFFF0B7 (U-immediate keeps the raw upper bits)
		It("should keep the U-immediate sign", func() {
			inst := decoder.Decode(0xFFFFF0B7)

			Expect(inst.Op).To(Equal(insts.OpLUI))
			Expect(inst.Imm).To(Equal(int32(-4096)))
		})

		// AUIPC x5, 1 -> 0x00001297
		It("should decode AUIPC x5, 1", func() {
			inst := decoder.Decode(0x00001297)

			Expect(inst.Op).To(Equal(insts.OpAUIPC))
			Expect(inst.Format).To(Equal(insts.FormatU))
			Expect(inst.Rd).To(Equal(uint8(5)))
			Expect(inst.Imm).To(Equal(int32(0x1000)))
		})
	})

	Describe("F extension", func() {
		// FLW f1, 0(x2) -> 0x00012087
		It("should decode FLW f1, 0(x2)", func() {
			inst := decoder.Decode(0x00012087)

			Expect(inst.Op).To(Equal(insts.OpFLW))
			Expect(inst.Format).To(Equal(insts.FormatI))
			Expect(inst.Rd).To(Equal(uint8(1)))
			Expect(inst.Rs1).To(Equal(uint8(2)))
			Expect(inst.Imm).To(Equal(int32(0)))
		})

		// FSW f1, 0(x2) -> 0x00112027
		It("should decode FSW f1, 0(x2)", func() {
			inst := decoder.Decode(0x00112027)

			Expect(inst.Op).To(Equal(insts.OpFSW))
			Expect(inst.Format).To(Equal(insts.FormatS))
			Expect(inst.Rs1).To(Equal(uint8(2)))
			Expect(inst.Rs2).To(Equal(uint8(1)))
			Expect(inst.Imm).To(Equal(int32(0)))
		})

		// FADD.S f3, f1, f2 -> 0x002081D3 (funct7=0x00)
		// FSUB.S f3, f1, f2 -> 0x082081D3 (funct7=0x04)
		// FMUL.S f3, f1, f2 -> 0x102081D3 (funct7=0x08)
		// FDIV.S f3, f1, f2 -> 0x182081D3 (funct7=0x0C)
		It("should decode the float arithmetic by funct7", func() {
			inst := decoder.Decode(0x002081D3)
			Expect(inst.Op).To(Equal(insts.OpFADDS))
			Expect(inst.Format).To(Equal(insts.FormatR))
			Expect(inst.Rd).To(Equal(uint8(3)))
			Expect(inst.Rs1).To(Equal(uint8(1)))
			Expect(inst.Rs2).To(Equal(uint8(2)))

			Expect(decoder.Decode(0x082081D3).Op).To(Equal(insts.OpFSUBS))
			Expect(decoder.Decode(0x102081D3).Op).To(Equal(insts.OpFMULS))
			Expect(decoder.Decode(0x182081D3).Op).To(Equal(insts.OpFDIVS))
		})

		// FSQRT.S f3, f1  -> 0x580081D3 (funct7=0x2C, rs2=0)
		// FCVT.W.S x5, f1 -> 0xC00082D3 (funct7=0x60, rs2=0)
		// FCVT.S.W f1, x5 -> 0xD00280D3 (funct7=0x68, rs2=0)
		It("should decode the single-source float operations", func() {
			sqrt := decoder.Decode(0x580081D3)
			Expect(sqrt.Op).To(Equal(insts.OpFSQRTS))
			Expect(sqrt.Rd).To(Equal(uint8(3)))
			Expect(sqrt.Rs1).To(Equal(uint8(1)))

			cvtw := decoder.Decode(0xC00082D3)
			Expect(cvtw.Op).To(Equal(insts.OpFCVTWS))
			Expect(cvtw.Funct7).To(Equal(uint8(0x60)))
			Expect(cvtw.Rd).To(Equal(uint8(5)))
			Expect(cvtw.Rs1).To(Equal(uint8(1)))

			cvts := decoder.Decode(0xD00280D3)
			Expect(cvts.Op).To(Equal(insts.OpFCVTSW))
			Expect(cvts.Funct7).To(Equal(uint8(0x68)))
			Expect(cvts.Rd).To(Equal(uint8(1)))
			Expect(cvts.Rs1).To(Equal(uint8(5)))
		})

		// FADD.S f3, f1, f2 with rm=dyn (funct3=0x7) -> 0x0020F1D3
		It("should ignore the rounding mode field", func() {
			inst := decoder.Decode(0x0020F1D3)

			Expect(inst.Op).To(Equal(insts.OpFADDS))
			Expect(inst.Funct3).To(Equal(uint8(7)))
		})
	})

	Describe("Unknown instructions", func() {
		It("should mark a zero word unknown", func() {
			inst := decoder.Decode(0x00000000)

			Expect(inst.Op).To(Equal(insts.OpUnknown))
			Expect(inst.Format).To(Equal(insts.FormatUnknown))
			Expect(inst.Raw).To(Equal(uint32(0)))
		})

		// ECALL -> 0x00000073 (SYSTEM opcode, not implemented)
		It("should mark SYSTEM instructions unknown", func() {
			inst := decoder.Decode(0x00000073)

			Expect(inst.Op).To(Equal(insts.OpUnknown))
			Expect(inst.Opcode).To(Equal(uint8(0x73)))
		})

		// ADD encoding with a stray funct7 (0x10) -> 0x202081B3
		It("should mark an OP word with an unknown funct7 unknown", func() {
			inst := decoder.Decode(0x202081B3)

			Expect(inst.Op).To(Equal(insts.OpUnknown))
			Expect(inst.Funct7).To(Equal(uint8(0x10)))
		})

		// LB x6, 0(x2) -> 0x00010303 (byte loads not implemented)
		It("should mark an unimplemented load width unknown", func() {
			inst := decoder.Decode(0x00010303)

			Expect(inst.Op).To(Equal(insts.OpUnknown))
			Expect(inst.Opcode).To(Equal(insts.OpcodeLoad))
		})

		It("should keep raw fields for diagnostics", func() {
			inst := decoder.Decode(0xFFFFFFFF)

			Expect(inst.Op).To(Equal(insts.OpUnknown))
			Expect(inst.Raw).To(Equal(uint32(0xFFFFFFFF)))
			Expect(inst.Opcode).To(Equal(uint8(0x7F)))
			Expect(inst.Rd).To(Equal(uint8(0x1F)))
		})
	})

	Describe("DecodeInto", func() {
		It("should match Decode for representative words", func() {
			words := []uint32{
				0x002081B3, // add x3, x1, x2
				0x02A00293, // addi x5, x0, 42
				0x00512423, // sw x5, 8(x2)
				0xFE208EE3, // beq x1, x2, -4
				0x123452B7, // lui x5, 0x12345
				0xFF9FF06F, // jal x0, -8
				0x002081D3, // fadd.s f3, f1, f2
				0x00000073, // ecall (unknown)
			}

			for _, word := range words {
				var inst insts.Instruction
				decoder.DecodeInto(word, &inst)

				Expect(inst).To(Equal(*decoder.Decode(word)),
					"word 0x%08X", word)
			}
		})

		It("should overwrite every field of a reused Instruction", func() {
			var inst insts.Instruction
			decoder.DecodeInto(0xFE208EE3, &inst) // beq x1, x2, -4
			decoder.DecodeInto(0x02A00293, &inst) // addi x5, x0, 42

			Expect(inst).To(Equal(*decoder.Decode(0x02A00293)))
		})
	})
})
