package insts

// Decoder decodes Emotion Engine machine code into instructions.
//
// A Decoder holds no state. Decode is a pure function of the word and its
// address and may be called from any number of goroutines.
type Decoder struct{}

// NewDecoder creates a new Emotion Engine instruction decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode decodes the 32-bit word found at addr. Unrecognized encodings
// return an instruction of KindUndefined; Decode never fails.
func (d *Decoder) Decode(word, addr uint32) Instruction {
	inst := Instruction{Word: word}

	switch op := Opcode(word); op {
	case 0x00:
		d.decodeSpecial(word, &inst)
	case 0x01:
		d.decodeRegimm(word, addr, &inst)
	case 0x02, 0x03:
		d.decodeJump(word, addr, &inst)
	case 0x04, 0x05, 0x06, 0x07, 0x14, 0x15, 0x16, 0x17:
		d.decodeBranchImm(word, addr, &inst)
	case 0x08, 0x09, 0x0A, 0x0B, 0x0C, 0x0D, 0x0E, 0x0F, 0x18, 0x19:
		d.decodeALUImm(word, &inst)
	case 0x10, 0x11, 0x12, 0x13:
		d.decodeCop(word, addr, &inst)
	case 0x1C:
		d.decodeMMI(word, &inst)
	default:
		d.decodeLoadStore(word, &inst)
	}

	if inst.Kind == KindUndefined {
		// Nothing but the raw word survives a failed decode.
		return Instruction{Word: word}
	}

	if inst.Operand.Present() {
		v := inst.Operand.Value
		inst.HexDisplay = v >= 10 || v <= -10
	}

	return inst
}

// decodeJump decodes j and jal.
// Format: op(6) | target(26)
func (d *Decoder) decodeJump(word, addr uint32, inst *Instruction) {
	inst.Kind = KindBranch
	inst.Op = OpJ
	if Opcode(word) == 0x03 {
		inst.Op = OpJAL
	}
	inst.Target = JumpTarget(word, addr)
	inst.HasTarget = true
}

var branchImmOps = map[uint32]Op{
	0x04: OpBEQ,
	0x05: OpBNE,
	0x06: OpBLEZ,
	0x07: OpBGTZ,
	0x14: OpBEQL,
	0x15: OpBNEL,
	0x16: OpBLEZL,
	0x17: OpBGTZL,
}

// decodeBranchImm decodes the PC-relative compare branches.
// Format: op(6) | rs(5) | rt(5) | offset(16)
func (d *Decoder) decodeBranchImm(word, addr uint32, inst *Instruction) {
	op := Opcode(word)

	inst.Kind = KindBranch
	inst.Op = branchImmOps[op]
	inst.Reg1 = GPR(Rs(word))
	if op&0x3 < 2 {
		// beq/bne compare two registers; blez/bgtz only look at rs.
		inst.Reg2 = GPR(Rt(word))
	}
	inst.Target = BranchTarget(word, addr)
	inst.HasTarget = true
	inst.Likely = op >= 0x14
}

// decodeALUImm decodes the I-type arithmetic and logic ops.
// Format: op(6) | rs(5) | rt(5) | imm(16)
func (d *Decoder) decodeALUImm(word uint32, inst *Instruction) {
	inst.Kind = KindInteger
	inst.Reg1 = GPR(Rt(word))
	inst.Reg2 = GPR(Rs(word))
	inst.Operand = Operand{Kind: OperandSigned, Value: int64(Imm16(word))}

	switch Opcode(word) {
	case 0x08:
		inst.Op = OpADDI
	case 0x09:
		inst.Op = OpADDIU
	case 0x0A:
		inst.Op = OpSLTI
	case 0x0B:
		inst.Op = OpSLTIU
	case 0x0C:
		inst.Op = OpANDI
		inst.Operand = unsignedImm(word)
	case 0x0D:
		inst.Op = OpORI
		inst.Operand = unsignedImm(word)
	case 0x0E:
		inst.Op = OpXORI
		inst.Operand = unsignedImm(word)
	case 0x0F:
		inst.Op = OpLUI
		inst.Reg2 = Register{}
		inst.Operand = unsignedImm(word)
	case 0x18:
		inst.Op = OpDADDI
	case 0x19:
		inst.Op = OpDADDIU
	}
}

func unsignedImm(word uint32) Operand {
	return Operand{Kind: OperandUnsigned, Value: int64(UImm16(word))}
}

// memSpace says which namespace the rt field of a load/store names.
type memSpace uint8

const (
	memGPR memSpace = iota
	memFPR
	memVF
	memNone // cache and pref: rt is an operation code
)

type memEntry struct {
	op    Op
	space memSpace
}

var loadStoreOps = map[uint32]memEntry{
	0x1A: {OpLDL, memGPR},
	0x1B: {OpLDR, memGPR},
	0x1E: {OpLQ, memGPR},
	0x1F: {OpSQ, memGPR},
	0x20: {OpLB, memGPR},
	0x21: {OpLH, memGPR},
	0x22: {OpLWL, memGPR},
	0x23: {OpLW, memGPR},
	0x24: {OpLBU, memGPR},
	0x25: {OpLHU, memGPR},
	0x26: {OpLWR, memGPR},
	0x27: {OpLWU, memGPR},
	0x28: {OpSB, memGPR},
	0x29: {OpSH, memGPR},
	0x2A: {OpSWL, memGPR},
	0x2B: {OpSW, memGPR},
	0x2C: {OpSDL, memGPR},
	0x2D: {OpSDR, memGPR},
	0x2E: {OpSWR, memGPR},
	0x2F: {OpCACHE, memNone},
	0x31: {OpLWC1, memFPR},
	0x33: {OpPREF, memNone},
	0x36: {OpLQC2, memVF},
	0x37: {OpLD, memGPR},
	0x39: {OpSWC1, memFPR},
	0x3E: {OpSQC2, memVF},
	0x3F: {OpSD, memGPR},
}

// decodeLoadStore decodes base+offset memory ops.
// Format: op(6) | base(5) | rt(5) | offset(16)
func (d *Decoder) decodeLoadStore(word uint32, inst *Instruction) {
	entry, ok := loadStoreOps[Opcode(word)]
	if !ok {
		return
	}

	inst.Kind = KindLoadStore
	inst.Op = entry.op
	switch entry.space {
	case memGPR:
		inst.Reg1 = GPR(Rt(word))
	case memFPR:
		inst.Reg1 = FPR(Rt(word))
	case memVF:
		inst.Reg1 = VF(Rt(word))
	}
	inst.Reg2 = GPR(Rs(word))
	inst.Operand = Operand{Kind: OperandSigned, Value: int64(Imm16(word))}
}
