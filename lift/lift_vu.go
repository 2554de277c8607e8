package lift

import (
	"github.com/sarchlab/eelift/insts"
	"github.com/sarchlab/eelift/ir"
)

// vuFamily is how a VU arithmetic op combines fs with its last operand.
type vuFamily struct {
	op ir.BinaryOp
	// accumulate folds the product into ACC: ACC op (fs * third).
	accumulate bool
}

var (
	vuAdd  = vuFamily{op: ir.FAdd}
	vuSub  = vuFamily{op: ir.FSub}
	vuMul  = vuFamily{op: ir.FMul}
	vuMax  = vuFamily{op: ir.FMax}
	vuMin  = vuFamily{op: ir.FMin}
	vuMadd = vuFamily{op: ir.FAdd, accumulate: true}
	vuMsub = vuFamily{op: ir.FSub, accumulate: true}
)

var vuArith = map[insts.Op]vuFamily{
	insts.OpVADDBC: vuAdd, insts.OpVADDQ: vuAdd, insts.OpVADDI: vuAdd, insts.OpVADD: vuAdd,
	insts.OpVADDABC: vuAdd, insts.OpVADDAQ: vuAdd, insts.OpVADDAI: vuAdd, insts.OpVADDA: vuAdd,

	insts.OpVSUBBC: vuSub, insts.OpVSUBQ: vuSub, insts.OpVSUBI: vuSub, insts.OpVSUB: vuSub,
	insts.OpVSUBABC: vuSub, insts.OpVSUBAQ: vuSub, insts.OpVSUBAI: vuSub, insts.OpVSUBA: vuSub,

	insts.OpVMULBC: vuMul, insts.OpVMULQ: vuMul, insts.OpVMULI: vuMul, insts.OpVMUL: vuMul,
	insts.OpVMULABC: vuMul, insts.OpVMULAQ: vuMul, insts.OpVMULAI: vuMul, insts.OpVMULA: vuMul,

	insts.OpVMAXBC: vuMax, insts.OpVMAXI: vuMax, insts.OpVMAX: vuMax,
	insts.OpVMINIBC: vuMin, insts.OpVMINII: vuMin, insts.OpVMINI: vuMin,

	insts.OpVMADDBC: vuMadd, insts.OpVMADDQ: vuMadd, insts.OpVMADDI: vuMadd, insts.OpVMADD: vuMadd,
	insts.OpVMADDABC: vuMadd, insts.OpVMADDAQ: vuMadd, insts.OpVMADDAI: vuMadd, insts.OpVMADDA: vuMadd,

	insts.OpVMSUBBC: vuMsub, insts.OpVMSUBQ: vuMsub, insts.OpVMSUBI: vuMsub, insts.OpVMSUB: vuMsub,
	insts.OpVMSUBABC: vuMsub, insts.OpVMSUBAQ: vuMsub, insts.OpVMSUBAI: vuMsub, insts.OpVMSUBA: vuMsub,
}

var vuConversions = map[insts.Op]ir.Convert{
	insts.OpVITOF0:  {Kind: ir.IntToFloat},
	insts.OpVITOF4:  {Kind: ir.IntToFloat, FracBits: 4},
	insts.OpVITOF12: {Kind: ir.IntToFloat, FracBits: 12},
	insts.OpVITOF15: {Kind: ir.IntToFloat, FracBits: 15},
	insts.OpVFTOI0:  {Kind: ir.FloatToInt},
	insts.OpVFTOI4:  {Kind: ir.FloatToInt, FracBits: 4},
	insts.OpVFTOI12: {Kind: ir.FloatToInt, FracBits: 12},
	insts.OpVFTOI15: {Kind: ir.FloatToInt, FracBits: 15},
}

var vuIntOps = map[insts.Op]ir.BinaryOp{
	insts.OpVIADD: ir.Add,
	insts.OpVISUB: ir.Sub,
	insts.OpVIAND: ir.And,
	insts.OpVIOR:  ir.Or,
}

// liftVU lowers COP2 macro-mode ops. vclip and the VU memory ops stay
// unimplemented.
func (b *builder) liftVU() bool {
	i := b.inst

	if fam, ok := vuArith[i.Op]; ok {
		b.liftVUArith(fam)
		return true
	}
	if conv, ok := vuConversions[i.Op]; ok {
		conv.Size = 4
		b.vuLanes(i.Reg1, func(l int) ir.Expr {
			c := conv
			c.Value = b.vfLane(i.Reg2, l)
			return c
		})
		return true
	}
	if op, ok := vuIntOps[i.Op]; ok {
		b.set(i.Reg1, 2, bin(op, 2, b.reg(i.Reg2, 2), b.reg(i.Reg3, 2)))
		return true
	}

	switch i.Op {
	case insts.OpVOPMSUB:
		b.vuCross(func(l int) ir.Expr {
			y, z := (l+1)%3, (l+2)%3
			return bin(ir.FSub, 4, b.vfLane(insts.RegVUACC, l),
				bin(ir.FMul, 4, b.vfLane(i.Reg2, y), b.vfLane(i.Reg3, z)))
		})
	case insts.OpVOPMULA:
		b.vuCross(func(l int) ir.Expr {
			y, z := (l+1)%3, (l+2)%3
			return bin(ir.FMul, 4, b.vfLane(i.Reg2, y), b.vfLane(i.Reg3, z))
		})
	case insts.OpVABS:
		b.vuLanes(i.Reg1, func(l int) ir.Expr {
			return ir.Unary{Op: ir.FAbs, Size: 4, Value: b.vfLane(i.Reg2, l)}
		})
	case insts.OpVMOVE:
		b.vuLanes(i.Reg1, func(l int) ir.Expr { return b.vfLane(i.Reg2, l) })
	case insts.OpVMR32:
		b.vuLanes(i.Reg1, func(l int) ir.Expr { return b.vfLane(i.Reg2, (l+1)%4) })
	case insts.OpVIADDI:
		b.set(i.Reg1, 2, bin(ir.Add, 2, b.reg(i.Reg2, 2), b.imm(2)))
	case insts.OpVCALLMS:
		b.emit(ir.Intrinsic{Name: "vcallms", Args: []ir.Expr{b.imm(4)}})
	case insts.OpVCALLMSR:
		b.emit(ir.Intrinsic{Name: "vcallmsr", Args: []ir.Expr{b.reg(insts.RegCMSAR0, 4)}})
	case insts.OpVDIV:
		b.set(insts.RegVUQ, 4, bin(ir.FDiv, 4, b.component(i.Reg2, i.Source), b.component(i.Reg3, i.Temp)))
	case insts.OpVSQRT:
		b.set(insts.RegVUQ, 4, ir.Unary{Op: ir.FSqrt, Size: 4, Value: b.component(i.Reg2, i.Temp)})
	case insts.OpVRSQRT:
		root := ir.Unary{Op: ir.FSqrt, Size: 4, Value: b.component(i.Reg3, i.Temp)}
		b.set(insts.RegVUQ, 4, bin(ir.FDiv, 4, b.component(i.Reg2, i.Source), root))
	case insts.OpVMTIR:
		b.set(i.Reg1, 2, ir.Low{Size: 2, Value: b.component(i.Reg2, i.Source)})
	case insts.OpVMFIR:
		b.vuLanes(i.Reg1, func(int) ir.Expr { return sext(4, b.reg(i.Reg2, 2)) })
	case insts.OpVRNEXT:
		b.emit(ir.Intrinsic{Name: "vrnext", Outputs: []insts.Register{insts.RegVUR}})
		b.vuLanes(i.Reg1, func(int) ir.Expr { return b.reg(insts.RegVUR, 4) })
	case insts.OpVRGET:
		b.vuLanes(i.Reg1, func(int) ir.Expr { return b.reg(insts.RegVUR, 4) })
	case insts.OpVRINIT:
		b.set(insts.RegVUR, 4, b.component(i.Reg2, i.Source))
	case insts.OpVRXOR:
		b.set(insts.RegVUR, 4, bin(ir.Xor, 4, b.reg(insts.RegVUR, 4), b.component(i.Reg2, i.Source)))
	case insts.OpVNOP, insts.OpVWAITQ:
		b.emit(ir.Nop{})
	default:
		return false
	}
	return true
}

func (b *builder) vfLane(r insts.Register, lane int) ir.Expr {
	return b.slice(r, lane*4, 4)
}

func (b *builder) component(r insts.Register, c insts.Component) ir.Expr {
	return b.vfLane(r, c.Lane())
}

// vuLanes writes fn(lane) into every lane of dst selected by the dest mask.
func (b *builder) vuLanes(dst insts.Register, fn func(lane int) ir.Expr) {
	lanes := insts.Lanes(b.inst.Dest)
	writes := make([]laneWrite, len(lanes))
	for n, c := range lanes {
		l := c.Lane()
		writes[n] = laneWrite{l * 4, 4, fn(l)}
	}
	b.writeLanes(dst, writes)
}

// vuCross is vuLanes restricted to x, y and z.
func (b *builder) vuCross(fn func(lane int) ir.Expr) {
	var writes []laneWrite
	for _, c := range insts.Lanes(b.inst.Dest) {
		if c == insts.CompW {
			continue
		}
		l := c.Lane()
		writes = append(writes, laneWrite{l * 4, 4, fn(l)})
	}
	b.writeLanes(b.inst.Reg1, writes)
}

func (b *builder) liftVUArith(fam vuFamily) {
	i := b.inst
	b.vuLanes(i.Reg1, func(l int) ir.Expr {
		src := b.vfLane(i.Reg2, l)
		if !fam.accumulate {
			return bin(fam.op, 4, src, b.vuOperand(l))
		}
		product := bin(ir.FMul, 4, src, b.vuOperand(l))
		return bin(fam.op, 4, b.vfLane(insts.RegVUACC, l), product)
	})
}

// vuOperand is the last operand of a VU arithmetic op for lane l: the
// broadcast lane of ft, the Q or I register, or the same lane of ft.
func (b *builder) vuOperand(l int) ir.Expr {
	i := b.inst
	switch {
	case i.Broadcast != insts.CompNone:
		return b.component(i.Reg3, i.Broadcast)
	case i.Reg3 == insts.RegVUQ || i.Reg3 == insts.RegVUI:
		return b.reg(i.Reg3, 4)
	}
	return b.vfLane(i.Reg3, l)
}
