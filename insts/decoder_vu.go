package insts

// vuForm describes the operand layout of a VU macro op.
type vuForm uint8

const (
	vuUndefined vuForm = iota
	vuBC               // fd, fs, ft.bc
	vuQ                // fd, fs, Q
	vuI                // fd, fs, I
	vuFull             // fd, fs, ft
	vuAccBC            // ACC, fs, ft.bc
	vuAccQ             // ACC, fs, Q
	vuAccI             // ACC, fs, I
	vuAccFull          // ACC, fs, ft
	vuIntR             // id, is, it
	vuIntImm           // it, is, imm5
	vuCallImm          // imm15
	vuCallReg          // CMSAR0
	vuFtFs             // ft, fs (conversions, moves)
	vuClip             // fs.xyz, ft.w
	vuNone
	vuLoadQ   // ft, (is)
	vuStoreQ  // fs, (it)
	vuDiv     // Q, fs.fsf, ft.ftf
	vuSqrt    // Q, ft.ftf
	vuMTIR    // it, fs.fsf
	vuMFIR    // ft, is
	vuIntMem  // it, (is)
	vuRandGet // ft, R
	vuRandSet // R, fs.fsf
)

type vuEntry struct {
	op   Op
	form vuForm
	kind Kind
}

func vu(op Op, form vuForm) vuEntry { return vuEntry{op, form, KindInteger} }

func vuMem(op Op, form vuForm) vuEntry { return vuEntry{op, form, KindLoadStore} }

// vuOps is indexed by funct. 0x3C-0x3F escape to vuSpecial2Ops.
var vuOps = [64]vuEntry{
	0x00: vu(OpVADDBC, vuBC), 0x01: vu(OpVADDBC, vuBC), 0x02: vu(OpVADDBC, vuBC), 0x03: vu(OpVADDBC, vuBC),
	0x04: vu(OpVSUBBC, vuBC), 0x05: vu(OpVSUBBC, vuBC), 0x06: vu(OpVSUBBC, vuBC), 0x07: vu(OpVSUBBC, vuBC),
	0x08: vu(OpVMADDBC, vuBC), 0x09: vu(OpVMADDBC, vuBC), 0x0A: vu(OpVMADDBC, vuBC), 0x0B: vu(OpVMADDBC, vuBC),
	0x0C: vu(OpVMSUBBC, vuBC), 0x0D: vu(OpVMSUBBC, vuBC), 0x0E: vu(OpVMSUBBC, vuBC), 0x0F: vu(OpVMSUBBC, vuBC),
	0x10: vu(OpVMAXBC, vuBC), 0x11: vu(OpVMAXBC, vuBC), 0x12: vu(OpVMAXBC, vuBC), 0x13: vu(OpVMAXBC, vuBC),
	0x14: vu(OpVMINIBC, vuBC), 0x15: vu(OpVMINIBC, vuBC), 0x16: vu(OpVMINIBC, vuBC), 0x17: vu(OpVMINIBC, vuBC),
	0x18: vu(OpVMULBC, vuBC), 0x19: vu(OpVMULBC, vuBC), 0x1A: vu(OpVMULBC, vuBC), 0x1B: vu(OpVMULBC, vuBC),
	0x1C: vu(OpVMULQ, vuQ),
	0x1D: vu(OpVMAXI, vuI),
	0x1E: vu(OpVMULI, vuI),
	0x1F: vu(OpVMINII, vuI),
	0x20: vu(OpVADDQ, vuQ),
	0x21: vu(OpVMADDQ, vuQ),
	0x22: vu(OpVADDI, vuI),
	0x23: vu(OpVMADDI, vuI),
	0x24: vu(OpVSUBQ, vuQ),
	0x25: vu(OpVMSUBQ, vuQ),
	0x26: vu(OpVSUBI, vuI),
	0x27: vu(OpVMSUBI, vuI),
	0x28: vu(OpVADD, vuFull),
	0x29: vu(OpVMADD, vuFull),
	0x2A: vu(OpVMUL, vuFull),
	0x2B: vu(OpVMAX, vuFull),
	0x2C: vu(OpVSUB, vuFull),
	0x2D: vu(OpVMSUB, vuFull),
	0x2E: vu(OpVOPMSUB, vuFull),
	0x2F: vu(OpVMINI, vuFull),
	0x30: vu(OpVIADD, vuIntR),
	0x31: vu(OpVISUB, vuIntR),
	0x32: vu(OpVIADDI, vuIntImm),
	0x34: vu(OpVIAND, vuIntR),
	0x35: vu(OpVIOR, vuIntR),
	0x38: vu(OpVCALLMS, vuCallImm),
	0x39: vu(OpVCALLMSR, vuCallReg),
}

// vuSpecial2Ops is indexed by Op2.
var vuSpecial2Ops = [128]vuEntry{
	0x00: vu(OpVADDABC, vuAccBC), 0x01: vu(OpVADDABC, vuAccBC), 0x02: vu(OpVADDABC, vuAccBC), 0x03: vu(OpVADDABC, vuAccBC),
	0x04: vu(OpVSUBABC, vuAccBC), 0x05: vu(OpVSUBABC, vuAccBC), 0x06: vu(OpVSUBABC, vuAccBC), 0x07: vu(OpVSUBABC, vuAccBC),
	0x08: vu(OpVMADDABC, vuAccBC), 0x09: vu(OpVMADDABC, vuAccBC), 0x0A: vu(OpVMADDABC, vuAccBC), 0x0B: vu(OpVMADDABC, vuAccBC),
	0x0C: vu(OpVMSUBABC, vuAccBC), 0x0D: vu(OpVMSUBABC, vuAccBC), 0x0E: vu(OpVMSUBABC, vuAccBC), 0x0F: vu(OpVMSUBABC, vuAccBC),
	0x10: vu(OpVITOF0, vuFtFs),
	0x11: vu(OpVITOF4, vuFtFs),
	0x12: vu(OpVITOF12, vuFtFs),
	0x13: vu(OpVITOF15, vuFtFs),
	0x14: vu(OpVFTOI0, vuFtFs),
	0x15: vu(OpVFTOI4, vuFtFs),
	0x16: vu(OpVFTOI12, vuFtFs),
	0x17: vu(OpVFTOI15, vuFtFs),
	0x18: vu(OpVMULABC, vuAccBC), 0x19: vu(OpVMULABC, vuAccBC), 0x1A: vu(OpVMULABC, vuAccBC), 0x1B: vu(OpVMULABC, vuAccBC),
	0x1C: vu(OpVMULAQ, vuAccQ),
	0x1D: vu(OpVABS, vuFtFs),
	0x1E: vu(OpVMULAI, vuAccI),
	0x1F: vu(OpVCLIP, vuClip),
	0x20: vu(OpVADDAQ, vuAccQ),
	0x21: vu(OpVMADDAQ, vuAccQ),
	0x22: vu(OpVADDAI, vuAccI),
	0x23: vu(OpVMADDAI, vuAccI),
	0x24: vu(OpVSUBAQ, vuAccQ),
	0x25: vu(OpVMSUBAQ, vuAccQ),
	0x26: vu(OpVSUBAI, vuAccI),
	0x27: vu(OpVMSUBAI, vuAccI),
	0x28: vu(OpVADDA, vuAccFull),
	0x29: vu(OpVMADDA, vuAccFull),
	0x2A: vu(OpVMULA, vuAccFull),
	0x2C: vu(OpVSUBA, vuAccFull),
	0x2D: vu(OpVMSUBA, vuAccFull),
	0x2E: vu(OpVOPMULA, vuAccFull),
	0x2F: vu(OpVNOP, vuNone),
	0x30: vu(OpVMOVE, vuFtFs),
	0x31: vu(OpVMR32, vuFtFs),
	0x34: vuMem(OpVLQI, vuLoadQ),
	0x35: vuMem(OpVSQI, vuStoreQ),
	0x36: vuMem(OpVLQD, vuLoadQ),
	0x37: vuMem(OpVSQD, vuStoreQ),
	0x38: vu(OpVDIV, vuDiv),
	0x39: vu(OpVSQRT, vuSqrt),
	0x3A: vu(OpVRSQRT, vuDiv),
	0x3B: vu(OpVWAITQ, vuNone),
	0x3C: vu(OpVMTIR, vuMTIR),
	0x3D: vu(OpVMFIR, vuMFIR),
	0x3E: vuMem(OpVILWR, vuIntMem),
	0x3F: vuMem(OpVISWR, vuIntMem),
	0x40: vu(OpVRNEXT, vuRandGet),
	0x41: vu(OpVRGET, vuRandGet),
	0x42: vu(OpVRINIT, vuRandSet),
	0x43: vu(OpVRXOR, vuRandSet),
}

// decodeVU decodes COP2 macro-mode instructions (rs >= 0x10).
// Format: 010010 | 1 | dest(4) | ft(5) | fs(5) | fd(5) | funct(6)
func (d *Decoder) decodeVU(word uint32, inst *Instruction) {
	funct := Funct(word)

	entry := vuOps[funct]
	if funct >= 0x3C {
		entry = vuSpecial2Ops[Op2(word)]
	}
	if entry.form == vuUndefined {
		return
	}

	inst.Kind = entry.kind
	inst.Op = entry.op
	applyVUForm(word, entry.form, inst)
}

func applyVUForm(word uint32, form vuForm, inst *Instruction) {
	fd, fs, ft := VUFd(word), VUFs(word), VUFt(word)
	dest := uint8(DestMask(word))

	switch form {
	case vuBC:
		inst.Reg1, inst.Reg2, inst.Reg3 = VF(fd), VF(fs), VF(ft)
		inst.Dest = dest
		inst.Broadcast = component(Broadcast(word))
	case vuQ:
		inst.Reg1, inst.Reg2, inst.Reg3 = VF(fd), VF(fs), RegVUQ
		inst.Dest = dest
	case vuI:
		inst.Reg1, inst.Reg2, inst.Reg3 = VF(fd), VF(fs), RegVUI
		inst.Dest = dest
	case vuFull:
		inst.Reg1, inst.Reg2, inst.Reg3 = VF(fd), VF(fs), VF(ft)
		inst.Dest = dest
	case vuAccBC:
		inst.Reg1, inst.Reg2, inst.Reg3 = RegVUACC, VF(fs), VF(ft)
		inst.Dest = dest
		inst.Broadcast = component(Broadcast(word))
	case vuAccQ:
		inst.Reg1, inst.Reg2, inst.Reg3 = RegVUACC, VF(fs), RegVUQ
		inst.Dest = dest
	case vuAccI:
		inst.Reg1, inst.Reg2, inst.Reg3 = RegVUACC, VF(fs), RegVUI
		inst.Dest = dest
	case vuAccFull:
		inst.Reg1, inst.Reg2, inst.Reg3 = RegVUACC, VF(fs), VF(ft)
		inst.Dest = dest
	case vuIntR:
		inst.Reg1, inst.Reg2, inst.Reg3 = VI(fd&0xF), VI(fs&0xF), VI(ft&0xF)
	case vuIntImm:
		inst.Reg1, inst.Reg2 = VI(ft&0xF), VI(fs&0xF)
		inst.Operand = Operand{Kind: OperandSigned, Value: int64(signExtend5(VUImm5(word)))}
	case vuCallImm:
		inst.Operand = Operand{Kind: OperandUnsigned, Value: int64(VUImm15(word))}
	case vuCallReg:
		inst.Reg1 = RegCMSAR0
	case vuFtFs:
		inst.Reg1, inst.Reg2 = VF(ft), VF(fs)
		inst.Dest = dest
	case vuClip:
		inst.Reg1, inst.Reg2 = VF(fs), VF(ft)
		inst.Dest = dest
		inst.Broadcast = CompW
	case vuLoadQ:
		inst.Reg1, inst.Reg2 = VF(ft), VI(fs&0xF)
		inst.Dest = dest
	case vuStoreQ:
		inst.Reg1, inst.Reg2 = VF(fs), VI(ft&0xF)
		inst.Dest = dest
	case vuDiv:
		inst.Reg1, inst.Reg2, inst.Reg3 = RegVUQ, VF(fs), VF(ft)
		inst.Source = component(SourceComp(word))
		inst.Temp = component(TempComp(word))
	case vuSqrt:
		inst.Reg1, inst.Reg2 = RegVUQ, VF(ft)
		inst.Temp = component(TempComp(word))
	case vuMTIR:
		inst.Reg1, inst.Reg2 = VI(ft&0xF), VF(fs)
		inst.Source = component(SourceComp(word))
	case vuMFIR:
		inst.Reg1, inst.Reg2 = VF(ft), VI(fs&0xF)
		inst.Dest = dest
	case vuIntMem:
		inst.Reg1, inst.Reg2 = VI(ft&0xF), VI(fs&0xF)
		inst.Dest = dest
	case vuRandGet:
		inst.Reg1, inst.Reg2 = VF(ft), RegVUR
		inst.Dest = dest
	case vuRandSet:
		inst.Reg1, inst.Reg2 = RegVUR, VF(fs)
		inst.Source = component(SourceComp(word))
	}
}
