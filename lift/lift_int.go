package lift

import (
	"github.com/sarchlab/eelift/insts"
	"github.com/sarchlab/eelift/ir"
)

var aluOps = map[insts.Op]struct {
	op   ir.BinaryOp
	size int
}{
	insts.OpADD:   {ir.Add, 4},
	insts.OpADDU:  {ir.Add, 4},
	insts.OpSUB:   {ir.Sub, 4},
	insts.OpSUBU:  {ir.Sub, 4},
	insts.OpDADD:  {ir.Add, 8},
	insts.OpDADDU: {ir.Add, 8},
	insts.OpDSUB:  {ir.Sub, 8},
	insts.OpDSUBU: {ir.Sub, 8},
	insts.OpAND:   {ir.And, 8},
	insts.OpOR:    {ir.Or, 8},
	insts.OpXOR:   {ir.Xor, 8},
}

var aluImmOps = map[insts.Op]struct {
	op   ir.BinaryOp
	size int
}{
	insts.OpADDI:   {ir.Add, 4},
	insts.OpADDIU:  {ir.Add, 4},
	insts.OpDADDI:  {ir.Add, 8},
	insts.OpDADDIU: {ir.Add, 8},
	insts.OpANDI:   {ir.And, 8},
	insts.OpORI:    {ir.Or, 8},
	insts.OpXORI:   {ir.Xor, 8},
}

type shiftRule struct {
	op       ir.BinaryOp
	size     int
	bias     int64 // added to sa for the *32 forms
	variable bool
}

var shiftOps = map[insts.Op]shiftRule{
	insts.OpSLL:    {ir.Shl, 4, 0, false},
	insts.OpSRL:    {ir.Lsr, 4, 0, false},
	insts.OpSRA:    {ir.Asr, 4, 0, false},
	insts.OpSLLV:   {ir.Shl, 4, 0, true},
	insts.OpSRLV:   {ir.Lsr, 4, 0, true},
	insts.OpSRAV:   {ir.Asr, 4, 0, true},
	insts.OpDSLL:   {ir.Shl, 8, 0, false},
	insts.OpDSRL:   {ir.Lsr, 8, 0, false},
	insts.OpDSRA:   {ir.Asr, 8, 0, false},
	insts.OpDSLL32: {ir.Shl, 8, 32, false},
	insts.OpDSRL32: {ir.Lsr, 8, 32, false},
	insts.OpDSRA32: {ir.Asr, 8, 32, false},
	insts.OpDSLLV:  {ir.Shl, 8, 0, true},
	insts.OpDSRLV:  {ir.Lsr, 8, 0, true},
	insts.OpDSRAV:  {ir.Asr, 8, 0, true},
}

// liftALU lowers integer arithmetic, logic, shifts and the lo/hi unit.
func (b *builder) liftALU() bool {
	i := b.inst

	if rule, ok := aluOps[i.Op]; ok {
		b.write(i.Reg1, rule.size, bin(rule.op, rule.size, b.reg(i.Reg2, rule.size), b.reg(i.Reg3, rule.size)))
		return true
	}
	if rule, ok := aluImmOps[i.Op]; ok {
		b.write(i.Reg1, rule.size, bin(rule.op, rule.size, b.reg(i.Reg2, rule.size), b.imm(rule.size)))
		return true
	}
	if rule, ok := shiftOps[i.Op]; ok {
		b.liftShift(rule)
		return true
	}

	switch i.Op {
	case insts.OpNOR:
		b.set(i.Reg1, 8, ir.Unary{Op: ir.Not, Size: 8, Value: bin(ir.Or, 8, b.reg(i.Reg2, 8), b.reg(i.Reg3, 8))})
	case insts.OpLUI:
		b.set(i.Reg1, 8, konst(8, int64(int32(uint32(i.Operand.Value)<<16))))
	case insts.OpSLT:
		b.set(i.Reg1, 8, zext(8, cmp(ir.LtS, 8, b.reg(i.Reg2, 8), b.reg(i.Reg3, 8))))
	case insts.OpSLTU:
		b.set(i.Reg1, 8, zext(8, cmp(ir.LtU, 8, b.reg(i.Reg2, 8), b.reg(i.Reg3, 8))))
	case insts.OpSLTI:
		b.set(i.Reg1, 8, zext(8, cmp(ir.LtS, 8, b.reg(i.Reg2, 8), b.imm(8))))
	case insts.OpSLTIU:
		b.set(i.Reg1, 8, zext(8, cmp(ir.LtU, 8, b.reg(i.Reg2, 8), b.imm(8))))
	case insts.OpMOVZ, insts.OpMOVN:
		b.liftConditionalMove()
	case insts.OpMFHI, insts.OpMFLO, insts.OpMFHI1, insts.OpMFLO1:
		src, off := loHiOf(i.Op)
		b.set(i.Reg1, 8, b.slice(src, off, 8))
	case insts.OpMTHI, insts.OpMTLO, insts.OpMTHI1, insts.OpMTLO1:
		dst, off := loHiOf(i.Op)
		b.setSlice(dst, off, 8, b.reg(i.Reg1, 8))
	case insts.OpMFSA:
		b.set(i.Reg1, 8, ir.Reg{Reg: insts.RegSA, Size: 8})
	case insts.OpMTSA:
		b.set(insts.RegSA, 8, b.reg(i.Reg1, 8))
	case insts.OpMTSAB:
		// SA counts bits: byte shift amount * 8.
		sel := bin(ir.And, 8, bin(ir.Xor, 8, b.reg(i.Reg1, 8), b.imm(8)), konst(8, 0xF))
		b.set(insts.RegSA, 8, bin(ir.Shl, 8, sel, konst(1, 3)))
	case insts.OpMTSAH:
		sel := bin(ir.And, 8, bin(ir.Xor, 8, b.reg(i.Reg1, 8), b.imm(8)), konst(8, 0x7))
		b.set(insts.RegSA, 8, bin(ir.Shl, 8, sel, konst(1, 4)))
	case insts.OpMULT, insts.OpMULTU, insts.OpMULT1, insts.OpMULTU1,
		insts.OpMADD, insts.OpMADDU, insts.OpMADD1, insts.OpMADDU1:
		b.liftMultiply()
	case insts.OpDIV, insts.OpDIVU, insts.OpDIV1, insts.OpDIVU1:
		b.liftDivide()
	case insts.OpBREAK:
		b.emit(ir.Trap{Code: i.Operand.Value})
	case insts.OpTEQ:
		b.emit(ir.If{
			Cond: cmp(ir.Eq, 8, b.reg(i.Reg1, 8), b.reg(i.Reg2, 8)),
			Then: []ir.Op{ir.Trap{}},
		})
	case insts.OpSYNC:
		b.emit(ir.Intrinsic{Name: "sync"})
	default:
		return false
	}
	return true
}

// write stores an ALU result, widening 32-bit results by sign extension.
func (b *builder) write(r insts.Register, size int, v ir.Expr) {
	if size == 4 {
		b.set32(r, v)
		return
	}
	b.set(r, size, v)
}

func (b *builder) liftShift(rule shiftRule) {
	i := b.inst

	var amount ir.Expr
	if rule.variable {
		mask := int64(rule.size*8 - 1)
		amount = bin(ir.And, 4, b.reg(i.Reg3, 4), konst(4, mask))
	} else {
		amount = konst(1, i.Operand.Value+rule.bias)
	}

	b.write(i.Reg1, rule.size, bin(rule.op, rule.size, b.reg(i.Reg2, rule.size), amount))
}

func (b *builder) liftConditionalMove() {
	i := b.inst
	if hardwired(i.Reg1) {
		b.emit(ir.Nop{})
		return
	}

	cond := ir.Eq
	if i.Op == insts.OpMOVN {
		cond = ir.Ne
	}
	b.emit(ir.If{
		Cond: cmp(cond, 8, b.reg(i.Reg3, 8), konst(8, 0)),
		Then: []ir.Op{ir.SetReg{Reg: i.Reg1, Size: 8, Value: b.reg(i.Reg2, 8)}},
	})
}

// loHiOf returns the register and byte offset an lo/hi transfer touches.
// The pipeline-1 forms use the upper 64 bits.
func loHiOf(op insts.Op) (insts.Register, int) {
	switch op {
	case insts.OpMFHI, insts.OpMTHI:
		return insts.RegHi, 0
	case insts.OpMFLO, insts.OpMTLO:
		return insts.RegLo, 0
	case insts.OpMFHI1, insts.OpMTHI1:
		return insts.RegHi, 8
	default:
		return insts.RegLo, 8
	}
}

func pipelineOffset(op insts.Op) int {
	switch op {
	case insts.OpMULT1, insts.OpMULTU1, insts.OpMADD1, insts.OpMADDU1,
		insts.OpDIV1, insts.OpDIVU1:
		return 8
	}
	return 0
}

// liftMultiply splits the 64-bit product into sign-extended lo and hi
// words. The madd forms first add the current hi:lo pair.
func (b *builder) liftMultiply() {
	i := b.inst
	off := pipelineOffset(i.Op)

	signed := true
	accumulate := false
	switch i.Op {
	case insts.OpMULTU, insts.OpMULTU1:
		signed = false
	case insts.OpMADD, insts.OpMADD1:
		accumulate = true
	case insts.OpMADDU, insts.OpMADDU1:
		signed, accumulate = false, true
	}

	op := ir.Mul
	if !signed {
		op = ir.MulU
	}
	widen := func(r insts.Register) ir.Expr {
		return ir.Extend{Signed: signed, Size: 8, Value: b.reg(r, 4)}
	}
	product := bin(op, 8, widen(i.Reg2), widen(i.Reg3))

	if accumulate {
		hi := zext(8, ir.Low{Size: 4, Value: b.slice(insts.RegHi, off, 8)})
		lo := zext(8, ir.Low{Size: 4, Value: b.slice(insts.RegLo, off, 8)})
		hilo := bin(ir.Or, 8, bin(ir.Shl, 8, hi, konst(1, 32)), lo)
		product = bin(ir.Add, 8, hilo, product)
	}

	t := b.temp()
	b.emit(ir.SetTemp{Temp: t, Value: product})

	lo := sext(8, ir.Low{Size: 4, Value: t})
	hi := sext(8, ir.Low{Size: 4, Value: bin(ir.Lsr, 8, t, konst(1, 32))})
	b.setSlice(insts.RegLo, off, 8, lo)
	b.setSlice(insts.RegHi, off, 8, hi)
	b.set(i.Reg1, 8, lo)
}

// liftDivide writes the quotient to lo and the remainder to hi.
func (b *builder) liftDivide() {
	i := b.inst
	off := pipelineOffset(i.Op)

	div, mod := ir.DivS, ir.ModS
	if i.Op == insts.OpDIVU || i.Op == insts.OpDIVU1 {
		div, mod = ir.DivU, ir.ModU
	}

	n, d := b.reg(i.Reg1, 4), b.reg(i.Reg2, 4)
	b.setSlice(insts.RegLo, off, 8, sext(8, bin(div, 4, n, d)))
	b.setSlice(insts.RegHi, off, 8, sext(8, bin(mod, 4, n, d)))
}
