package benchmarks

import (
	"fmt"

	"github.com/sarchlab/rv32sim/emu"
)

// ABI register numbers used by the canned programs.
const (
	regRA = 1  // x1, return address
	regT0 = 5  // x5
	regT1 = 6  // x6
	regT2 = 7  // x7
	regA0 = 10 // x10, result
	regA1 = 11 // x11
	regA2 = 12 // x12
	regT3 = 28 // x28
)

// Every program leaves its result in a0 and runs into a zero word to halt.
//
// GetPrograms returns the canned acceptance programs. Together they execute
// every instruction the emulator implements.
func GetPrograms() []Program {
	return []Program{
		sumLoop(),
		fibonacci(),
		memorySweep(),
		floatAccumulate(),
		branchLadder(),
		callReturn(),
		aluMix(),
	}
}

// checkReg fails when an integer register does not hold the expected value.
func checkReg(e *emu.Emulator, reg uint8, want uint32) error {
	if got := e.RegFile().ReadReg(reg); got != want {
		return fmt.Errorf("x%d = %d (0x%X), want %d (0x%X)", reg, got, got, want, want)
	}
	return nil
}

// checkWord fails when a memory word does not hold the expected value.
func checkWord(e *emu.Emulator, addr, want uint32) error {
	got, err := e.Memory().Read32(addr)
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("word at 0x%X = 0x%08X, want 0x%08X", addr, got, want)
	}
	return nil
}

// 1. Sum Loop - counted accumulation with a backward conditional branch
func sumLoop() Program {
	return Program{
		Name:        "sum_loop",
		Description: "Counted loop summing 1 through 10 - add/addi with a bge backedge",
		Image: BuildProgram(
			EncodeADDI(regA0, 0, 0),        // addi a0, x0, 0   ; sum = 0
			EncodeADDI(regT0, 0, 1),        // addi t0, x0, 1   ; i = 1
			EncodeADDI(regT1, 0, 10),       // addi t1, x0, 10  ; limit
			EncodeADD(regA0, regA0, regT0), // add  a0, a0, t0  ; sum += i
			EncodeADDI(regT0, regT0, 1),    // addi t0, t0, 1   ; i++
			EncodeBGE(regT1, regT0, -8),    // bge  t1, t0, -8  ; while i <= limit
			0,                              // halt
		),
		// 1+2+...+10 = 55
		Check: func(e *emu.Emulator) error {
			return checkReg(e, regA0, 55)
		},
	}
}

// 2. Fibonacci - iterative fib(12) with register shuffling through x0
func fibonacci() Program {
	return Program{
		Name:        "fibonacci",
		Description: "Iterative fib(12) - register moves via add with x0 and a bne backedge",
		Image: BuildProgram(
			EncodeADDI(regA0, 0, 0),        // addi a0, x0, 0   ; a = fib(0)
			EncodeADDI(regA1, 0, 1),        // addi a1, x0, 1   ; b = fib(1)
			EncodeADDI(regT0, 0, 12),       // addi t0, x0, 12  ; n
			EncodeADD(regA2, regA0, regA1), // add  a2, a0, a1  ; next = a + b
			EncodeADD(regA0, 0, regA1),     // add  a0, x0, a1  ; a = b
			EncodeADD(regA1, 0, regA2),     // add  a1, x0, a2  ; b = next
			EncodeADDI(regT0, regT0, -1),   // addi t0, t0, -1  ; n--
			EncodeBNE(regT0, 0, -16),       // bne  t0, x0, -16 ; until n == 0
			0,                              // halt
		),
		// fib: 1 1 2 3 5 8 13 21 34 55 89 144
		Check: func(e *emu.Emulator) error {
			return checkReg(e, regA0, 144)
		},
	}
}

// 3. Memory Sweep - load/multiply/store traffic between two buffers
func memorySweep() Program {
	return Program{
		Name:        "memory_sweep",
		Description: "Squares eight preloaded words - lw/mul/sw between two buffers",
		Setup: func(regFile *emu.RegFile, memory *emu.Memory) {
			// Source words the program squares and sums
			memory.LoadProgram(0x2000, BuildProgram(3, 1, 4, 1, 5, 9, 2, 6))
		},
		Image: BuildProgram(
			EncodeLUI(regA1, 0x2),          // lui  a1, 0x2     ; src = 0x2000
			EncodeADDI(regA2, regA1, 256),  // addi a2, a1, 256 ; dst = 0x2100
			EncodeADDI(regT0, 0, 0),        // addi t0, x0, 0   ; i = 0
			EncodeADDI(regT1, 0, 8),        // addi t1, x0, 8   ; n
			EncodeLW(regT2, regA1, 0),      // lw   t2, 0(a1)   ; v = *src
			EncodeMUL(regT2, regT2, regT2), // mul  t2, t2, t2  ; v*v
			EncodeSW(regT2, regA2, 0),      // sw   t2, 0(a2)   ; *dst = v*v
			EncodeADD(regA0, regA0, regT2), // add  a0, a0, t2  ; sum += v*v
			EncodeADDI(regA1, regA1, 4),    // addi a1, a1, 4
			EncodeADDI(regA2, regA2, 4),    // addi a2, a2, 4
			EncodeADDI(regT0, regT0, 1),    // addi t0, t0, 1
			EncodeBLT(regT0, regT1, -28),   // blt  t0, t1, -28 ; next element
			0,                              // halt
		),
		// 9+1+16+1+25+81+4+36 = 173
		Check: func(e *emu.Emulator) error {
			if err := checkReg(e, regA0, 173); err != nil {
				return err
			}
			// dst[5] = 9*9
			return checkWord(e, 0x2114, 81)
		},
	}
}

// 4. Float Accumulate - the full float pipeline from convert to spill
func floatAccumulate() Program {
	return Program{
		Name:        "float_accumulate",
		Description: "Accumulates 1..5 as floats, then divides, squares, roots and spills",
		Image: BuildProgram(
			EncodeADDI(regT0, 0, 0),      // addi  t0, x0, 0     ; i = 0
			EncodeADDI(regT1, 0, 5),      // addi  t1, x0, 5     ; n
			EncodeFCVTSW(0, 0),           // fcvt.s.w f0, x0     ; sum = 0.0
			EncodeADDI(regT0, regT0, 1),  // addi  t0, t0, 1     ; i++
			EncodeFCVTSW(1, regT0),       // fcvt.s.w f1, t0     ; (float)i
			EncodeFADDS(0, 0, 1),         // fadd.s f0, f0, f1   ; sum += (float)i
			EncodeBNE(regT0, regT1, -12), // bne   t0, t1, -12   ; until i == n
			EncodeFCVTSW(1, regT1),       // fcvt.s.w f1, t1     ; 5.0
			EncodeFDIVS(2, 0, 1),         // fdiv.s f2, f0, f1   ; mean = 15.0/5.0
			EncodeFMULS(2, 2, 2),         // fmul.s f2, f2, f2   ; 9.0
			EncodeFSQRTS(2, 2),           // fsqrt.s f2, f2      ; 3.0
			EncodeFSUBS(3, 0, 2),         // fsub.s f3, f0, f2   ; 12.0
			EncodeLUI(regA1, 0x2),        // lui   a1, 0x2       ; scratch = 0x2000
			EncodeFSW(3, regA1, 0),       // fsw   f3, 0(a1)     ; spill the result
			EncodeFLW(4, regA1, 0),       // flw   f4, 0(a1)     ; reload it
			EncodeFCVTWS(regA0, 4),       // fcvt.w.s a0, f4     ; a0 = 12
			0,                            // halt
		),
		Check: func(e *emu.Emulator) error {
			if err := checkReg(e, regA0, 12); err != nil {
				return err
			}
			// 12.0f spilled bit for bit
			return checkWord(e, 0x2000, 0x41400000)
		},
	}
}

// 5. Branch Ladder - every conditional branch across its signedness edge
func branchLadder() Program {
	return Program{
		Name:        "branch_ladder",
		Description: "Takes all six conditional branches over signed and unsigned edges",
		Image: BuildProgram(
			EncodeADDI(regT0, 0, 5),      // addi t0, x0, 5
			EncodeADDI(regT1, 0, 5),      // addi t1, x0, 5
			EncodeADDI(regT2, 0, -1),     // addi t2, x0, -1  ; 0xFFFFFFFF
			EncodeADDI(regT3, 0, 3),      // addi t3, x0, 3
			EncodeADDI(regA0, 0, 0),      // addi a0, x0, 0   ; score
			EncodeBEQ(regT0, regT1, 8),   // beq  t0, t1, 8   ; 5 == 5, taken
			EncodeJAL(0, 80),             // jal  x0, 80      ; wrong path
			EncodeADDI(regA0, regA0, 1),  // addi a0, a0, 1
			EncodeBNE(regT0, regT3, 8),   // bne  t0, t3, 8   ; 5 != 3, taken
			EncodeJAL(0, 68),             // jal  x0, 68
			EncodeADDI(regA0, regA0, 2),  // addi a0, a0, 2
			EncodeBLT(regT2, regT3, 8),   // blt  t2, t3, 8   ; -1 < 3 signed, taken
			EncodeJAL(0, 56),             // jal  x0, 56
			EncodeADDI(regA0, regA0, 4),  // addi a0, a0, 4
			EncodeBGE(regT0, regT3, 8),   // bge  t0, t3, 8   ; 5 >= 3, taken
			EncodeJAL(0, 44),             // jal  x0, 44
			EncodeADDI(regA0, regA0, 8),  // addi a0, a0, 8
			EncodeBLTU(regT3, regT2, 8),  // bltu t3, t2, 8   ; 3 < 0xFFFFFFFF, taken
			EncodeJAL(0, 32),             // jal  x0, 32
			EncodeADDI(regA0, regA0, 16), // addi a0, a0, 16
			EncodeBGEU(regT2, regT3, 8),  // bgeu t2, t3, 8   ; 0xFFFFFFFF >= 3, taken
			EncodeJAL(0, 20),             // jal  x0, 20
			EncodeADDI(regA0, regA0, 32), // addi a0, a0, 32
			EncodeBLT(regT3, regT2, 8),   // blt  t3, t2, 8   ; 3 < -1 signed, NOT taken
			EncodeADDI(regA0, regA0, 64), // addi a0, a0, 64  ; fall-through marker
			EncodeJAL(0, 8),              // jal  x0, 8       ; over the trap
			EncodeADDI(regA0, 0, 0),      // addi a0, x0, 0   ; trap wipes the score
			0,                            // halt
		),
		// 1+2+4+8+16+32+64 = 127; any wrong path lands in the trap
		Check: func(e *emu.Emulator) error {
			return checkReg(e, regA0, 127)
		},
	}
}

// 6. Call Return - function call linkage through ra
func callReturn() Program {
	return Program{
		Name:        "call_return",
		Description: "Doubles a value in a callee - auipc/jal/jalr linkage",
		Image: BuildProgram(
			EncodeAUIPC(regT0, 0),          // auipc t0, 0      ; t0 = code base
			EncodeADDI(regA0, 0, 7),        // addi  a0, x0, 7  ; argument
			EncodeJAL(regRA, 12),           // jal   ra, 12     ; call the doubler
			EncodeADD(regA0, regA0, regA0), // add   a0, a0, a0 ; after return: 28
			EncodeJAL(0, 12),               // jal   x0, 12     ; over the callee
			EncodeADD(regA0, regA0, regA0), // add   a0, a0, a0 ; callee: 7 -> 14
			EncodeJALR(0, regRA, 0),        // jalr  x0, 0(ra)  ; return
			0,                              // halt
		),
		Check: func(e *emu.Emulator) error {
			if err := checkReg(e, regA0, 28); err != nil {
				return err
			}
			if err := checkReg(e, regRA, 0x100C); err != nil {
				return err
			}
			return checkReg(e, regT0, 0x1000)
		},
	}
}

// 7. ALU Mix - logic, shifts, division edges and a halfword round-trip
func aluMix() Program {
	return Program{
		Name:        "alu_mix",
		Description: "Logic and shift identities, div/rem, mulh, and an sh/lh round-trip",
		Image: BuildProgram(
			EncodeADDI(regT0, 0, 116),       // addi t0, x0, 116 ; 0b01110100
			EncodeADDI(regT1, 0, 5),         // addi t1, x0, 5
			EncodeXOR(regT2, regT0, regT1),  // xor  t2, t0, t1  ; 113
			EncodeOR(regT2, regT2, regT1),   // or   t2, t2, t1  ; 117
			EncodeAND(regT2, regT2, regT0),  // and  t2, t2, t0  ; 116
			EncodeSLL(regT3, regT2, regT1),  // sll  t3, t2, t1  ; 3712
			EncodeSRL(regT3, regT3, regT1),  // srl  t3, t3, t1  ; 116
			EncodeSUB(regT3, regT3, regT1),  // sub  t3, t3, t1  ; 111
			EncodeDIV(regA0, regT3, regT1),  // div  a0, t3, t1  ; 22
			EncodeREM(regT2, regT3, regT1),  // rem  t2, t3, t1  ; 1
			EncodeADD(regA0, regA0, regT2),  // add  a0, a0, t2  ; 23
			EncodeSLT(regT2, regT1, regT3),  // slt  t2, t1, t3  ; 5 < 111 -> 1
			EncodeADD(regA0, regA0, regT2),  // add  a0, a0, t2  ; 24
			EncodeADDI(regT0, 0, -64),       // addi t0, x0, -64
			EncodeADDI(regT1, 0, 4),         // addi t1, x0, 4
			EncodeSRA(regT0, regT0, regT1),  // sra  t0, t0, t1  ; -4
			EncodeADDI(regT0, regT0, 5),     // addi t0, t0, 5   ; 1
			EncodeADD(regA0, regA0, regT0),  // add  a0, a0, t0  ; 25
			EncodeSLTU(regT2, 0, regA0),     // sltu t2, x0, a0  ; 0 < 25 -> 1
			EncodeADD(regA0, regA0, regT2),  // add  a0, a0, t2  ; 26
			EncodeLUI(regT0, 0x40000),       // lui  t0, 0x40000 ; 0x40000000
			EncodeMULH(regT2, regT0, regT1), // mulh t2, t0, t1  ; 2^30 * 4 >> 32 = 1
			EncodeADD(regA0, regA0, regT2),  // add  a0, a0, t2  ; 27
			EncodeLUI(regA1, 0x2),           // lui  a1, 0x2
			EncodeADDI(regT0, 0, -2),        // addi t0, x0, -2
			EncodeSH(regT0, regA1, 6),       // sh   t0, 6(a1)   ; 0xFFFE at 0x2006
			EncodeLH(regT2, regA1, 6),       // lh   t2, 6(a1)   ; sign-extends to -2
			EncodeADD(regA0, regA0, regT2),  // add  a0, a0, t2  ; 25
			0,                               // halt
		),
		Check: func(e *emu.Emulator) error {
			if err := checkReg(e, regA0, 25); err != nil {
				return err
			}
			got, err := e.Memory().Read16(0x2006)
			if err != nil {
				return err
			}
			if got != 0xFFFE {
				return fmt.Errorf("halfword at 0x2006 = 0x%04X, want 0xFFFE", got)
			}
			return nil
		},
	}
}
