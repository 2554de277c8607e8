package lift

import (
	"github.com/sarchlab/eelift/insts"
	"github.com/sarchlab/eelift/ir"
)

// liftCoprocessor lowers transfers between the GPRs and COP0/1/2 and the
// COP0 system operations.
func (b *builder) liftCoprocessor() bool {
	i := b.inst

	switch i.Op {
	case insts.OpMFC0, insts.OpMFC1, insts.OpCFC1, insts.OpCFC2:
		b.set32(i.Reg1, b.reg(i.Reg2, 4))
	case insts.OpMTC0, insts.OpMTC1, insts.OpCTC1, insts.OpCTC2:
		b.set(i.Reg2, 4, b.reg(i.Reg1, 4))
	case insts.OpQMFC2:
		b.set(i.Reg1, 16, b.reg(i.Reg2, 16))
	case insts.OpQMTC2:
		b.set(i.Reg2, 16, b.reg(i.Reg1, 16))
	case insts.OpTLBR, insts.OpTLBWI, insts.OpTLBWR, insts.OpTLBP:
		b.emit(ir.Intrinsic{Name: i.Mnemonic()})
	case insts.OpEI, insts.OpDI:
		b.emit(ir.Intrinsic{Name: i.Mnemonic(), Outputs: []insts.Register{insts.RegStatus}})
	default:
		return false
	}
	return true
}

var fpuBinary = map[insts.Op]ir.BinaryOp{
	insts.OpADDS: ir.FAdd,
	insts.OpSUBS: ir.FSub,
	insts.OpMULS: ir.FMul,
	insts.OpDIVS: ir.FDiv,
	insts.OpMAXS: ir.FMax,
	insts.OpMINS: ir.FMin,
}

var fpuUnary = map[insts.Op]ir.UnaryOp{
	insts.OpSQRTS: ir.FSqrt,
	insts.OpABSS:  ir.FAbs,
	insts.OpNEGS:  ir.FNeg,
}

var fpuAccumulate = map[insts.Op]ir.BinaryOp{
	insts.OpADDAS: ir.FAdd,
	insts.OpSUBAS: ir.FSub,
	insts.OpMULAS: ir.FMul,
}

var fpuCompare = map[insts.Op]ir.Condition{
	insts.OpCEQS: ir.FEq,
	insts.OpCLTS: ir.FLt,
	insts.OpCLES: ir.FLe,
}

// liftFPU lowers the COP1 single-precision group.
func (b *builder) liftFPU() bool {
	i := b.inst
	f := func(r insts.Register) ir.Expr { return b.reg(r, 4) }
	acc := ir.Reg{Reg: insts.RegFPUAcc, Size: 4}

	if op, ok := fpuBinary[i.Op]; ok {
		b.set(i.Reg1, 4, bin(op, 4, f(i.Reg2), f(i.Reg3)))
		return true
	}
	if op, ok := fpuUnary[i.Op]; ok {
		b.set(i.Reg1, 4, ir.Unary{Op: op, Size: 4, Value: f(i.Reg2)})
		return true
	}
	if op, ok := fpuAccumulate[i.Op]; ok {
		b.set(insts.RegFPUAcc, 4, bin(op, 4, f(i.Reg1), f(i.Reg2)))
		return true
	}
	if c, ok := fpuCompare[i.Op]; ok {
		b.set(insts.RegFPUCond, 1, cmp(c, 4, f(i.Reg1), f(i.Reg2)))
		return true
	}

	switch i.Op {
	case insts.OpMOVS:
		b.set(i.Reg1, 4, f(i.Reg2))
	case insts.OpRSQRTS:
		root := ir.Unary{Op: ir.FSqrt, Size: 4, Value: f(i.Reg3)}
		b.set(i.Reg1, 4, bin(ir.FDiv, 4, f(i.Reg2), root))
	case insts.OpMADDS:
		b.set(i.Reg1, 4, bin(ir.FAdd, 4, acc, bin(ir.FMul, 4, f(i.Reg2), f(i.Reg3))))
	case insts.OpMSUBS:
		b.set(i.Reg1, 4, bin(ir.FSub, 4, acc, bin(ir.FMul, 4, f(i.Reg2), f(i.Reg3))))
	case insts.OpMADDAS:
		b.set(insts.RegFPUAcc, 4, bin(ir.FAdd, 4, acc, bin(ir.FMul, 4, f(i.Reg1), f(i.Reg2))))
	case insts.OpMSUBAS:
		b.set(insts.RegFPUAcc, 4, bin(ir.FSub, 4, acc, bin(ir.FMul, 4, f(i.Reg1), f(i.Reg2))))
	case insts.OpCVTWS:
		b.set(i.Reg1, 4, ir.Convert{Kind: ir.FloatToInt, Size: 4, Value: f(i.Reg2)})
	case insts.OpCVTSW:
		b.set(i.Reg1, 4, ir.Convert{Kind: ir.IntToFloat, Size: 4, Value: f(i.Reg2)})
	case insts.OpCFS:
		b.set(insts.RegFPUCond, 1, konst(1, 0))
	default:
		return false
	}
	return true
}
