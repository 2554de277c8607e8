package insts

// Coprocessor dispatch keys are rs | cop*0x100.
const (
	copMFC0  = 0x000
	copMTC0  = 0x004
	copBC0   = 0x008
	copC0    = 0x010
	copMFC1  = 0x100
	copCFC1  = 0x102
	copMTC1  = 0x104
	copCTC1  = 0x106
	copBC1   = 0x108
	copS     = 0x110
	copW     = 0x114
	copQMFC2 = 0x201
	copCFC2  = 0x202
	copQMTC2 = 0x205
	copCTC2  = 0x206
	copBC2   = 0x208
)

var copBranchOps = [3][4]Op{
	{OpBC0F, OpBC0T, OpBC0FL, OpBC0TL},
	{OpBC1F, OpBC1T, OpBC1FL, OpBC1TL},
	{OpBC2F, OpBC2T, OpBC2FL, OpBC2TL},
}

// decodeCop decodes opcodes 0x10-0x13.
// Format: 0100zz | rs(5) | rt(5) | rd(5) | ...
func (d *Decoder) decodeCop(word, addr uint32, inst *Instruction) {
	rs := Rs(word)
	cop := Opcode(word) & 0x3

	if cop == 2 && rs >= 0x10 {
		d.decodeVU(word, inst)
		return
	}

	switch rs | cop*0x100 {
	case copMFC0:
		d.setMove(inst, OpMFC0, GPR(Rt(word)), COP0(Rd(word)))
	case copMTC0:
		d.setMove(inst, OpMTC0, GPR(Rt(word)), COP0(Rd(word)))
	case copC0:
		d.decodeCOP0Function(word, inst)
	case copMFC1:
		d.setMove(inst, OpMFC1, GPR(Rt(word)), FPR(Rd(word)))
	case copMTC1:
		d.setMove(inst, OpMTC1, GPR(Rt(word)), FPR(Rd(word)))
	case copCFC1:
		d.setMove(inst, OpCFC1, GPR(Rt(word)), FCR(Rd(word)))
	case copCTC1:
		d.setMove(inst, OpCTC1, GPR(Rt(word)), FCR(Rd(word)))
	case copS:
		d.decodeFPU(word, inst)
	case copW:
		if Funct(word) == 0x20 {
			inst.Kind = KindInteger
			inst.Op = OpCVTSW
			inst.Reg1 = FPR(Shamt(word))
			inst.Reg2 = FPR(Rd(word))
		}
	case copQMFC2:
		d.setMove(inst, OpQMFC2, GPR(Rt(word)), VF(Rd(word)))
	case copQMTC2:
		d.setMove(inst, OpQMTC2, GPR(Rt(word)), VF(Rd(word)))
	case copCFC2:
		d.setMove(inst, OpCFC2, GPR(Rt(word)), VCR(Rd(word)))
	case copCTC2:
		d.setMove(inst, OpCTC2, GPR(Rt(word)), VCR(Rd(word)))
	case copBC0, copBC1, copBC2:
		d.decodeCopBranch(word, addr, cop, inst)
	}
}

func (d *Decoder) setMove(inst *Instruction, op Op, gpr, cop Register) {
	inst.Kind = KindInteger
	inst.Op = op
	inst.Reg1 = gpr
	inst.Reg2 = cop
}

// decodeCopBranch decodes bc0/bc1/bc2. Bit 16 is the sense and bit 17 the
// likely flag; other rt values are reserved.
func (d *Decoder) decodeCopBranch(word, addr, cop uint32, inst *Instruction) {
	rt := Rt(word)
	if rt > 3 {
		return
	}

	inst.Kind = KindBranch
	inst.Op = copBranchOps[cop][rt]
	inst.Sense = SenseFalse
	if rt&1 != 0 {
		inst.Sense = SenseTrue
	}
	inst.Likely = rt&2 != 0
	inst.Target = BranchTarget(word, addr)
	inst.HasTarget = true
}

// decodeCOP0Function decodes the COP0 CO group keyed by funct.
func (d *Decoder) decodeCOP0Function(word uint32, inst *Instruction) {
	inst.Kind = KindInteger

	switch Funct(word) {
	case 0x01:
		inst.Op = OpTLBR
	case 0x02:
		inst.Op = OpTLBWI
	case 0x06:
		inst.Op = OpTLBWR
	case 0x08:
		inst.Op = OpTLBP
	case 0x18:
		inst.Op = OpERET
		inst.Kind = KindBranch
	case 0x38:
		inst.Op = OpEI
	case 0x39:
		inst.Op = OpDI
	default:
		inst.Kind = KindUndefined
	}
}

// fpuForm says which of fd/fs/ft a .S op uses.
type fpuForm uint8

const (
	fpuFdFsFt fpuForm = iota
	fpuFdFs
	fpuFdFt
	fpuFsFt
	fpuNone
)

type fpuEntry struct {
	op   Op
	form fpuForm
}

var fpuOps = map[uint32]fpuEntry{
	0x00: {OpADDS, fpuFdFsFt},
	0x01: {OpSUBS, fpuFdFsFt},
	0x02: {OpMULS, fpuFdFsFt},
	0x03: {OpDIVS, fpuFdFsFt},
	0x04: {OpSQRTS, fpuFdFt},
	0x05: {OpABSS, fpuFdFs},
	0x06: {OpMOVS, fpuFdFs},
	0x07: {OpNEGS, fpuFdFs},
	0x16: {OpRSQRTS, fpuFdFsFt},
	0x18: {OpADDAS, fpuFsFt},
	0x19: {OpSUBAS, fpuFsFt},
	0x1A: {OpMULAS, fpuFsFt},
	0x1C: {OpMADDS, fpuFdFsFt},
	0x1D: {OpMSUBS, fpuFdFsFt},
	0x1E: {OpMADDAS, fpuFsFt},
	0x1F: {OpMSUBAS, fpuFsFt},
	0x24: {OpCVTWS, fpuFdFs},
	0x28: {OpMAXS, fpuFdFsFt},
	0x29: {OpMINS, fpuFdFsFt},
	0x30: {OpCFS, fpuNone},
	0x32: {OpCEQS, fpuFsFt},
	0x34: {OpCLTS, fpuFsFt},
	0x36: {OpCLES, fpuFsFt},
}

// decodeFPU decodes the COP1 single-precision group keyed by funct.
// Format: 010001 | 10000 | ft(5) | fs(5) | fd(5) | funct(6)
func (d *Decoder) decodeFPU(word uint32, inst *Instruction) {
	entry, ok := fpuOps[Funct(word)]
	if !ok {
		return
	}

	inst.Kind = KindInteger
	inst.Op = entry.op

	fd, fs, ft := FPR(Shamt(word)), FPR(Rd(word)), FPR(Rt(word))
	switch entry.form {
	case fpuFdFsFt:
		inst.Reg1, inst.Reg2, inst.Reg3 = fd, fs, ft
	case fpuFdFs:
		inst.Reg1, inst.Reg2 = fd, fs
	case fpuFdFt:
		inst.Reg1, inst.Reg2 = fd, ft
	case fpuFsFt:
		inst.Reg1, inst.Reg2 = fs, ft
	}
}
