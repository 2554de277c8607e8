package insts

// mmiForm says how an MMI op uses rd/rs/rt/sa.
type mmiForm uint8

const (
	mmiRdRsRt mmiForm = iota
	mmiRdRt
	mmiRdRs
	mmiRdRtSa
	mmiRdRtRs
	mmiRsRt
	mmiRd
	mmiRs
)

type mmiEntry struct {
	op   Op
	form mmiForm
}

var mmiDirectOps = map[uint32]mmiEntry{
	0x00: {OpMADD, mmiRdRsRt},
	0x01: {OpMADDU, mmiRdRsRt},
	0x04: {OpPLZCW, mmiRdRs},
	0x10: {OpMFHI1, mmiRd},
	0x11: {OpMTHI1, mmiRs},
	0x12: {OpMFLO1, mmiRd},
	0x13: {OpMTLO1, mmiRs},
	0x18: {OpMULT1, mmiRdRsRt},
	0x19: {OpMULTU1, mmiRdRsRt},
	0x1A: {OpDIV1, mmiRsRt},
	0x1B: {OpDIVU1, mmiRsRt},
	0x20: {OpMADD1, mmiRdRsRt},
	0x21: {OpMADDU1, mmiRdRsRt},
	0x31: {OpPMTHL, mmiRs},
	0x34: {OpPSLLH, mmiRdRtSa},
	0x36: {OpPSRLH, mmiRdRtSa},
	0x37: {OpPSRAH, mmiRdRtSa},
	0x3C: {OpPSLLW, mmiRdRtSa},
	0x3E: {OpPSRLW, mmiRdRtSa},
	0x3F: {OpPSRAW, mmiRdRtSa},
}

// MMI0-MMI3 are 32-entry tables indexed by the sa field.
var mmi0Ops = [32]mmiEntry{
	0x00: {OpPADDW, mmiRdRsRt},
	0x01: {OpPSUBW, mmiRdRsRt},
	0x02: {OpPCGTW, mmiRdRsRt},
	0x03: {OpPMAXW, mmiRdRsRt},
	0x04: {OpPADDH, mmiRdRsRt},
	0x05: {OpPSUBH, mmiRdRsRt},
	0x06: {OpPCGTH, mmiRdRsRt},
	0x07: {OpPMAXH, mmiRdRsRt},
	0x08: {OpPADDB, mmiRdRsRt},
	0x09: {OpPSUBB, mmiRdRsRt},
	0x0A: {OpPCGTB, mmiRdRsRt},
	0x10: {OpPADDSW, mmiRdRsRt},
	0x11: {OpPSUBSW, mmiRdRsRt},
	0x12: {OpPEXTLW, mmiRdRsRt},
	0x13: {OpPPACW, mmiRdRsRt},
	0x14: {OpPADDSH, mmiRdRsRt},
	0x15: {OpPSUBSH, mmiRdRsRt},
	0x16: {OpPEXTLH, mmiRdRsRt},
	0x17: {OpPPACH, mmiRdRsRt},
	0x18: {OpPADDSB, mmiRdRsRt},
	0x19: {OpPSUBSB, mmiRdRsRt},
	0x1A: {OpPEXTLB, mmiRdRsRt},
	0x1B: {OpPPACB, mmiRdRsRt},
	0x1E: {OpPEXT5, mmiRdRt},
	0x1F: {OpPPAC5, mmiRdRt},
}

var mmi1Ops = [32]mmiEntry{
	0x01: {OpPABSW, mmiRdRt},
	0x02: {OpPCEQW, mmiRdRsRt},
	0x03: {OpPMINW, mmiRdRsRt},
	0x04: {OpPADSBH, mmiRdRsRt},
	0x05: {OpPABSH, mmiRdRt},
	0x06: {OpPCEQH, mmiRdRsRt},
	0x07: {OpPMINH, mmiRdRsRt},
	0x0A: {OpPCEQB, mmiRdRsRt},
	0x10: {OpPADDUW, mmiRdRsRt},
	0x11: {OpPSUBUW, mmiRdRsRt},
	0x12: {OpPEXTUW, mmiRdRsRt},
	0x14: {OpPADDUH, mmiRdRsRt},
	0x15: {OpPSUBUH, mmiRdRsRt},
	0x16: {OpPEXTUH, mmiRdRsRt},
	0x18: {OpPADDUB, mmiRdRsRt},
	0x19: {OpPSUBUB, mmiRdRsRt},
	0x1A: {OpPEXTUB, mmiRdRsRt},
	0x1B: {OpQFSRV, mmiRdRsRt},
}

var mmi2Ops = [32]mmiEntry{
	0x00: {OpPMADDW, mmiRdRsRt},
	0x02: {OpPSLLVW, mmiRdRtRs},
	0x03: {OpPSRLVW, mmiRdRtRs},
	0x04: {OpPMSUBW, mmiRdRsRt},
	0x08: {OpPMFHI, mmiRd},
	0x09: {OpPMFLO, mmiRd},
	0x0A: {OpPINTH, mmiRdRsRt},
	0x0C: {OpPMULTW, mmiRdRsRt},
	0x0D: {OpPDIVW, mmiRsRt},
	0x0E: {OpPCPYLD, mmiRdRsRt},
	0x10: {OpPMADDH, mmiRdRsRt},
	0x11: {OpPHMADH, mmiRdRsRt},
	0x12: {OpPAND, mmiRdRsRt},
	0x13: {OpPXOR, mmiRdRsRt},
	0x14: {OpPMSUBH, mmiRdRsRt},
	0x15: {OpPHMSBH, mmiRdRsRt},
	0x1A: {OpPEXEH, mmiRdRt},
	0x1B: {OpPREVH, mmiRdRt},
	0x1C: {OpPMULTH, mmiRdRsRt},
	0x1D: {OpPDIVBW, mmiRsRt},
	0x1E: {OpPEXEW, mmiRdRt},
	0x1F: {OpPROT3W, mmiRdRt},
}

var mmi3Ops = [32]mmiEntry{
	0x00: {OpPMADDUW, mmiRdRsRt},
	0x03: {OpPSRAVW, mmiRdRtRs},
	0x08: {OpPMTHI, mmiRs},
	0x09: {OpPMTLO, mmiRs},
	0x0A: {OpPINTEH, mmiRdRsRt},
	0x0C: {OpPMULTUW, mmiRdRsRt},
	0x0D: {OpPDIVUW, mmiRsRt},
	0x0E: {OpPCPYUD, mmiRdRsRt},
	0x12: {OpPOR, mmiRdRsRt},
	0x13: {OpPNOR, mmiRdRsRt},
	0x1A: {OpPEXCH, mmiRdRt},
	0x1B: {OpPCPYH, mmiRdRt},
	0x1E: {OpPEXCW, mmiRdRt},
}

var pmfhlOps = [...]Op{OpPMFHLLW, OpPMFHLUW, OpPMFHLSLW, OpPMFHLLH, OpPMFHLSH}

// decodeMMI decodes opcode 0x1C, keyed by funct and, for the four
// subgroups and PMFHL, by the sa field.
// Format: 011100 | rs(5) | rt(5) | rd(5) | sa(5) | funct(6)
func (d *Decoder) decodeMMI(word uint32, inst *Instruction) {
	var entry mmiEntry

	switch funct := Funct(word); funct {
	case 0x08:
		entry = mmi0Ops[Shamt(word)]
	case 0x28:
		entry = mmi1Ops[Shamt(word)]
	case 0x09:
		entry = mmi2Ops[Shamt(word)]
	case 0x29:
		entry = mmi3Ops[Shamt(word)]
	case 0x30:
		if sub := Shamt(word); sub < uint32(len(pmfhlOps)) {
			entry = mmiEntry{pmfhlOps[sub], mmiRd}
		}
	default:
		entry = mmiDirectOps[funct]
	}

	if entry.op == OpUnknown {
		return
	}

	inst.Kind = KindInteger
	inst.Op = entry.op
	rd, rs, rt := GPR(Rd(word)), GPR(Rs(word)), GPR(Rt(word))

	switch entry.form {
	case mmiRdRsRt:
		inst.Reg1, inst.Reg2, inst.Reg3 = rd, rs, rt
	case mmiRdRt:
		inst.Reg1, inst.Reg2 = rd, rt
	case mmiRdRs:
		inst.Reg1, inst.Reg2 = rd, rs
	case mmiRdRtSa:
		inst.Reg1, inst.Reg2 = rd, rt
		inst.Operand = Operand{Kind: OperandUnsigned, Value: int64(Shamt(word))}
	case mmiRdRtRs:
		inst.Reg1, inst.Reg2, inst.Reg3 = rd, rt, rs
	case mmiRsRt:
		inst.Reg1, inst.Reg2 = rs, rt
	case mmiRd:
		inst.Reg1 = rd
	case mmiRs:
		inst.Reg1 = rs
	}
}
