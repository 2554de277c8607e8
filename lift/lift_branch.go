package lift

import (
	"github.com/sarchlab/eelift/insts"
	"github.com/sarchlab/eelift/ir"
)

// liftBranch lowers a control transfer together with its delay slot. The
// classifier decides the shape of the result, so both always agree on
// which instructions carry a delay slot.
func (l *Lifter) liftBranch(b *builder, delay *insts.Instruction) {
	i := b.inst
	flow := insts.Classify(i, b.addr)

	switch flow.Kind {
	case insts.FlowSystemCall:
		b.emit(ir.Syscall{})
		return
	case insts.FlowExceptionReturn:
		b.emit(ir.Intrinsic{Name: "eret"})
		return
	}

	var delayOps []ir.Op
	if delay != nil && insts.HasDelaySlot(i) {
		delayOps = l.liftDelay(*delay, b.addr+insts.Size, b.temps)
	}

	// Registers overwritten before the branch reads its inputs. A likely
	// branch evaluates its condition before the delay slot runs.
	link, linked := linkTarget(i)
	var clobbered []insts.Register
	if linked {
		clobbered = append(clobbered, link)
	}
	if !i.Likely {
		clobbered = append(clobbered, ir.Written(delayOps)...)
	}
	for _, r := range branchInputs(i) {
		for _, c := range clobbered {
			if r == c {
				b.save(r)
			}
		}
	}

	fallThrough := konst(4, int64(b.addr+insts.MaxLength))
	if linked {
		b.set(link, 8, konst(8, int64(int32(b.addr+insts.MaxLength))))
	}

	target := konst(4, int64(flow.Target))

	switch flow.Kind {
	case insts.FlowUnconditional:
		b.emit(delayOps...)
		b.emit(ir.Jump{Target: target})
	case insts.FlowReturn:
		ret := ir.Return{Target: b.reg(i.Reg1, 4)}
		b.emit(delayOps...)
		b.emit(ret)
	case insts.FlowIndirectJump:
		jump := ir.Jump{Target: b.reg(i.Reg1, 4)}
		b.emit(delayOps...)
		b.emit(jump)
	case insts.FlowIndirectCall:
		call := ir.Call{Target: b.reg(i.Reg2, 4)}
		b.emit(delayOps...)
		b.emit(call)
	case insts.FlowCall:
		if i.Op == insts.OpJAL {
			b.emit(delayOps...)
			b.emit(ir.Call{Target: target})
			return
		}
		b.conditional(delayOps, ir.Call{Target: target}, fallThrough)
	case insts.FlowConditionalPair:
		b.conditional(delayOps, ir.Jump{Target: target}, fallThrough)
	}
}

// conditional emits If{cond, taken, fall-through}. Likely branches run the
// delay slot on the taken path only.
func (b *builder) conditional(delayOps []ir.Op, taken ir.Op, fallThrough ir.Expr) {
	cond := b.branchCondition()
	notTaken := []ir.Op{ir.Jump{Target: fallThrough}}

	if b.inst.Likely {
		then := append(append([]ir.Op{}, delayOps...), taken)
		b.emit(ir.If{Cond: cond, Then: then, Else: notTaken})
		return
	}

	b.emit(delayOps...)
	b.emit(ir.If{Cond: cond, Then: []ir.Op{taken}, Else: notTaken})
}

func (b *builder) branchCondition() ir.Expr {
	i := b.inst
	zero := konst(8, 0)

	switch i.Op {
	case insts.OpBEQ, insts.OpBEQL:
		return cmp(ir.Eq, 8, b.reg(i.Reg1, 8), b.reg(i.Reg2, 8))
	case insts.OpBNE, insts.OpBNEL:
		return cmp(ir.Ne, 8, b.reg(i.Reg1, 8), b.reg(i.Reg2, 8))
	case insts.OpBLEZ, insts.OpBLEZL:
		return cmp(ir.LeS, 8, b.reg(i.Reg1, 8), zero)
	case insts.OpBGTZ, insts.OpBGTZL:
		return cmp(ir.GtS, 8, b.reg(i.Reg1, 8), zero)
	case insts.OpBLTZ, insts.OpBLTZL, insts.OpBLTZAL, insts.OpBLTZALL:
		return cmp(ir.LtS, 8, b.reg(i.Reg1, 8), zero)
	case insts.OpBGEZ, insts.OpBGEZL, insts.OpBGEZAL, insts.OpBGEZALL:
		return cmp(ir.GeS, 8, b.reg(i.Reg1, 8), zero)
	}

	// Coprocessor condition branches.
	c := ir.Eq
	if i.Sense == insts.SenseTrue {
		c = ir.Ne
	}
	return cmp(c, 1, b.reg(conditionRegister(i.Op), 1), konst(1, 0))
}

func conditionRegister(op insts.Op) insts.Register {
	switch op {
	case insts.OpBC0F, insts.OpBC0T, insts.OpBC0FL, insts.OpBC0TL:
		return insts.RegCOP0Cond
	case insts.OpBC1F, insts.OpBC1T, insts.OpBC1FL, insts.OpBC1TL:
		return insts.RegFPUCond
	default:
		return insts.RegCOP2Cond
	}
}

// branchInputs lists the registers a branch reads.
func branchInputs(i insts.Instruction) []insts.Register {
	switch i.Op {
	case insts.OpJALR:
		return []insts.Register{i.Reg2}
	case insts.OpBC0F, insts.OpBC0T, insts.OpBC0FL, insts.OpBC0TL,
		insts.OpBC1F, insts.OpBC1T, insts.OpBC1FL, insts.OpBC1TL,
		insts.OpBC2F, insts.OpBC2T, insts.OpBC2FL, insts.OpBC2TL:
		return []insts.Register{conditionRegister(i.Op)}
	}
	return i.Registers()
}

// linkTarget returns the register a branch-and-link writes.
func linkTarget(i insts.Instruction) (insts.Register, bool) {
	switch i.Op {
	case insts.OpJAL, insts.OpBLTZAL, insts.OpBGEZAL, insts.OpBLTZALL, insts.OpBGEZALL:
		return insts.LinkRegister, true
	case insts.OpJALR:
		return i.Reg1, !hardwired(i.Reg1)
	}
	return insts.Register{}, false
}
