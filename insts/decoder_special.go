package insts

// specialForm describes how a SPECIAL function code uses its fields.
type specialForm uint8

const (
	formRdRsRt   specialForm = iota // rd, rs, rt
	formRdRtSa                      // rd, rt, sa
	formRdRtRs                      // rd, rt, rs (variable shifts)
	formRsRt                        // rs, rt (div, teq)
	formRd                          // rd (mfhi, mflo, mfsa)
	formRs                          // rs (mthi, mtlo, mtsa)
	formCode                        // 20-bit code field (syscall, break)
	formNoOperands                  // sync
)

type specialEntry struct {
	op   Op
	form specialForm
}

var specialOps = map[uint32]specialEntry{
	0x00: {OpSLL, formRdRtSa},
	0x02: {OpSRL, formRdRtSa},
	0x03: {OpSRA, formRdRtSa},
	0x04: {OpSLLV, formRdRtRs},
	0x06: {OpSRLV, formRdRtRs},
	0x07: {OpSRAV, formRdRtRs},
	0x0A: {OpMOVZ, formRdRsRt},
	0x0B: {OpMOVN, formRdRsRt},
	0x0C: {OpSYSCALL, formCode},
	0x0D: {OpBREAK, formCode},
	0x0F: {OpSYNC, formNoOperands},
	0x10: {OpMFHI, formRd},
	0x11: {OpMTHI, formRs},
	0x12: {OpMFLO, formRd},
	0x13: {OpMTLO, formRs},
	0x14: {OpDSLLV, formRdRtRs},
	0x16: {OpDSRLV, formRdRtRs},
	0x17: {OpDSRAV, formRdRtRs},
	0x18: {OpMULT, formRdRsRt},
	0x19: {OpMULTU, formRdRsRt},
	0x1A: {OpDIV, formRsRt},
	0x1B: {OpDIVU, formRsRt},
	0x20: {OpADD, formRdRsRt},
	0x21: {OpADDU, formRdRsRt},
	0x22: {OpSUB, formRdRsRt},
	0x23: {OpSUBU, formRdRsRt},
	0x24: {OpAND, formRdRsRt},
	0x25: {OpOR, formRdRsRt},
	0x26: {OpXOR, formRdRsRt},
	0x27: {OpNOR, formRdRsRt},
	0x28: {OpMFSA, formRd},
	0x29: {OpMTSA, formRs},
	0x2A: {OpSLT, formRdRsRt},
	0x2B: {OpSLTU, formRdRsRt},
	0x2C: {OpDADD, formRdRsRt},
	0x2D: {OpDADDU, formRdRsRt},
	0x2E: {OpDSUB, formRdRsRt},
	0x2F: {OpDSUBU, formRdRsRt},
	0x34: {OpTEQ, formRsRt},
	0x38: {OpDSLL, formRdRtSa},
	0x3A: {OpDSRL, formRdRtSa},
	0x3B: {OpDSRA, formRdRtSa},
	0x3C: {OpDSLL32, formRdRtSa},
	0x3E: {OpDSRL32, formRdRtSa},
	0x3F: {OpDSRA32, formRdRtSa},
}

// decodeSpecial decodes opcode 0x00, keyed by the function code.
// Format: 000000 | rs(5) | rt(5) | rd(5) | sa(5) | funct(6)
func (d *Decoder) decodeSpecial(word uint32, inst *Instruction) {
	funct := Funct(word)

	switch funct {
	case 0x08:
		// jr rs
		inst.Kind = KindBranch
		inst.Op = OpJR
		inst.Reg1 = GPR(Rs(word))
		return
	case 0x09:
		// jalr rd, rs
		inst.Kind = KindBranch
		inst.Op = OpJALR
		inst.Reg1 = GPR(Rd(word))
		inst.Reg2 = GPR(Rs(word))
		return
	}

	entry, ok := specialOps[funct]
	if !ok {
		return
	}

	inst.Op = entry.op
	inst.Kind = KindInteger
	if entry.op == OpSYSCALL {
		inst.Kind = KindBranch
	}

	applySpecialForm(word, entry.form, inst)
}

func applySpecialForm(word uint32, form specialForm, inst *Instruction) {
	switch form {
	case formRdRsRt:
		inst.Reg1 = GPR(Rd(word))
		inst.Reg2 = GPR(Rs(word))
		inst.Reg3 = GPR(Rt(word))
	case formRdRtSa:
		inst.Reg1 = GPR(Rd(word))
		inst.Reg2 = GPR(Rt(word))
		inst.Operand = Operand{Kind: OperandUnsigned, Value: int64(Shamt(word))}
	case formRdRtRs:
		inst.Reg1 = GPR(Rd(word))
		inst.Reg2 = GPR(Rt(word))
		inst.Reg3 = GPR(Rs(word))
	case formRsRt:
		inst.Reg1 = GPR(Rs(word))
		inst.Reg2 = GPR(Rt(word))
	case formRd:
		inst.Reg1 = GPR(Rd(word))
	case formRs:
		inst.Reg1 = GPR(Rs(word))
	case formCode:
		inst.Operand = Operand{Kind: OperandUnsigned, Value: int64((word >> 6) & 0xFFFFF)}
	}
}

type regimmEntry struct {
	op     Op
	likely bool
}

var regimmBranches = map[uint32]regimmEntry{
	0x00: {OpBLTZ, false},
	0x01: {OpBGEZ, false},
	0x02: {OpBLTZL, true},
	0x03: {OpBGEZL, true},
	0x10: {OpBLTZAL, false},
	0x11: {OpBGEZAL, false},
	0x12: {OpBLTZALL, true},
	0x13: {OpBGEZALL, true},
}

// decodeRegimm decodes opcode 0x01, keyed by the rt field.
// Format: 000001 | rs(5) | rt(5) | offset(16)
func (d *Decoder) decodeRegimm(word, addr uint32, inst *Instruction) {
	rt := Rt(word)

	if entry, ok := regimmBranches[rt]; ok {
		inst.Kind = KindBranch
		inst.Op = entry.op
		inst.Reg1 = GPR(Rs(word))
		inst.Target = BranchTarget(word, addr)
		inst.HasTarget = true
		inst.Likely = entry.likely
		return
	}

	switch rt {
	case 0x18:
		inst.Op = OpMTSAB
	case 0x19:
		inst.Op = OpMTSAH
	default:
		return
	}
	inst.Kind = KindInteger
	inst.Reg1 = GPR(Rs(word))
	inst.Operand = unsignedImm(word)
}
