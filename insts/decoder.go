// Package insts provides RV32 instruction definitions and decoding.
package insts

// Decoder decodes RV32 machine code into instructions.
type Decoder struct{}

// NewDecoder creates a new RV32 instruction decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode decodes a 32-bit instruction word. Words that do not map to a
// supported instruction come back with Op OpUnknown and the raw fields
// still populated for diagnostics.
func (d *Decoder) Decode(word uint32) *Instruction {
	inst := &Instruction{}
	d.DecodeInto(word, inst)
	return inst
}

// DecodeInto decodes a word into a caller-provided Instruction, avoiding
// the per-word allocation of Decode on hot paths.
func (d *Decoder) DecodeInto(word uint32, inst *Instruction) {
	*inst = Instruction{
		Raw:    word,
		Op:     OpUnknown,
		Format: FormatUnknown,

		Opcode: uint8(word & 0x7F),         // bits [6:0]
		Rd:     uint8((word >> 7) & 0x1F),  // bits [11:7]
		Funct3: uint8((word >> 12) & 0x7),  // bits [14:12]
		Rs1:    uint8((word >> 15) & 0x1F), // bits [19:15]
		Rs2:    uint8((word >> 20) & 0x1F), // bits [24:20]
		Funct7: uint8((word >> 25) & 0x7F), // bits [31:25]
	}

	op, format, ok := Lookup(inst.Opcode, inst.Funct3, inst.Funct7)
	if !ok {
		return
	}
	inst.Op = op
	inst.Format = format

	switch format {
	case FormatI:
		inst.Imm = immI(word)
	case FormatS:
		inst.Imm = immS(word)
	case FormatB:
		inst.Imm = immB(word)
	case FormatU:
		inst.Imm = immU(word)
	case FormatJ:
		inst.Imm = immJ(word)
	}
}

// immI extracts the I-type immediate: bits [31:20], sign-extended by an
// arithmetic shift of the whole word.
func immI(word uint32) int32 {
	return int32(word) >> 20
}

// immS extracts the S-type immediate: bits [31:25] hold imm[11:5] and
// bits [11:7] hold imm[4:0].
func immS(word uint32) int32 {
	return (int32(word)>>25)<<5 | int32((word>>7)&0x1F)
}

// immB extracts the B-type immediate, a byte offset with bit 0 always zero.
// The encoding scatters imm[12|10:5] into bits [31:25] and imm[4:1|11] into
// bits [11:7]; the assembled 13-bit value is sign-extended.
func immB(word uint32) int32 {
	imm := ((word >> 31) & 0x1) << 12 // bit 31  -> imm[12]
	imm |= ((word >> 7) & 0x1) << 11  // bit 7   -> imm[11]
	imm |= ((word >> 25) & 0x3F) << 5 // [30:25] -> imm[10:5]
	imm |= ((word >> 8) & 0xF) << 1   // [11:8]  -> imm[4:1]
	return int32(imm<<19) >> 19
}

// immU extracts the U-type immediate: bits [31:12], already in position,
// low 12 bits zero.
func immU(word uint32) int32 {
	return int32(word & 0xFFFFF000)
}

// immJ extracts the J-type immediate, a byte offset with bit 0 always zero.
// The encoding scatters imm[20|10:1|11|19:12] into bits [31:12]; the
// assembled 21-bit value is sign-extended.
func immJ(word uint32) int32 {
	imm := ((word >> 31) & 0x1) << 20  // bit 31  -> imm[20]
	imm |= ((word >> 12) & 0xFF) << 12 // [19:12] -> imm[19:12]
	imm |= ((word >> 20) & 0x1) << 11  // bit 20  -> imm[11]
	imm |= ((word >> 21) & 0x3FF) << 1 // [30:21] -> imm[10:1]
	return int32(imm<<11) >> 11
}
