package insts

// Normalize rewrites an instruction into its pseudo-op form for display.
// It works on a copy and never changes Kind, Target or Likely.
// Normalize(Normalize(x)) == Normalize(x).
func Normalize(inst Instruction) Instruction {
	out := inst

	switch inst.Op {
	case OpADDI, OpADDIU:
		if inst.Reg2.IsZero() {
			out.Op = OpLI
			out.Reg2 = Register{}
		}
	case OpDADDI, OpDADDIU:
		if inst.Reg2.IsZero() {
			out.Op = OpDLI
			out.Reg2 = Register{}
		}
	case OpADD, OpADDU:
		normalizeMove(&out, OpMOVE)
	case OpDADD, OpDADDU:
		normalizeMove(&out, OpDMOVE)
	case OpPADDW, OpPADDH, OpPADDB, OpPADDUW, OpPADDUH, OpPADDUB:
		normalizeMove(&out, OpQMOVE)
	case OpOR:
		if inst.Reg3.IsZero() {
			out.Op = OpMOVE
			out.Reg3 = Register{}
		}
	case OpSUBU:
		if inst.Reg2.IsZero() {
			out.Op = OpNEGU
			out.Reg2, out.Reg3 = inst.Reg3, Register{}
		}
	case OpNOR:
		if inst.Reg3.IsZero() {
			out.Op = OpNOT
			out.Reg3 = Register{}
		}
	case OpSLL:
		if inst.Reg1.IsZero() {
			out = Instruction{Op: OpNOP, Kind: inst.Kind, Word: inst.Word}
		}
	case OpBGEZAL:
		if inst.Reg1.IsZero() {
			out.Op = OpBAL
			out.Reg1 = Register{}
		}
	case OpBEQ:
		if inst.Reg1.IsZero() && inst.Reg2.IsZero() {
			out.Op = OpB
			out.Reg1, out.Reg2 = Register{}, Register{}
			break
		}
		normalizeZeroBranch(&out, OpBEQZ)
	case OpBNE:
		normalizeZeroBranch(&out, OpBNEZ)
	case OpBEQL:
		// beql $zero, $zero is left alone; there is no likely "b".
		if !(inst.Reg1.IsZero() && inst.Reg2.IsZero()) {
			normalizeZeroBranch(&out, OpBEQZL)
		}
	case OpBNEL:
		normalizeZeroBranch(&out, OpBNEZL)
	}

	return out
}

// normalizeMove collapses "op rd, $zero, x" and "op rd, x, $zero" into a
// two-operand move of the non-zero source.
func normalizeMove(inst *Instruction, move Op) {
	switch {
	case inst.Reg2.IsZero():
		inst.Op = move
		inst.Reg2, inst.Reg3 = inst.Reg3, Register{}
	case inst.Reg3.IsZero():
		inst.Op = move
		inst.Reg3 = Register{}
	}
}

// normalizeZeroBranch turns a compare against $zero into its one-register
// form, keeping the non-zero register in Reg1.
func normalizeZeroBranch(inst *Instruction, zeroForm Op) {
	switch {
	case inst.Reg1.IsZero() && inst.Reg2.IsValid() && !inst.Reg2.IsZero():
		inst.Op = zeroForm
		inst.Reg1, inst.Reg2 = inst.Reg2, Register{}
	case inst.Reg2.IsZero() && !inst.Reg1.IsZero():
		inst.Op = zeroForm
		inst.Reg2 = Register{}
	}
}
