package lift

import (
	"github.com/sarchlab/eelift/insts"
	"github.com/sarchlab/eelift/ir"
)

type memRule struct {
	size    int
	signed  bool
	aligned bool // clears the low 4 address bits
}

var loadOps = map[insts.Op]memRule{
	insts.OpLB:   {size: 1, signed: true},
	insts.OpLBU:  {size: 1},
	insts.OpLH:   {size: 2, signed: true},
	insts.OpLHU:  {size: 2},
	insts.OpLW:   {size: 4, signed: true},
	insts.OpLWU:  {size: 4},
	insts.OpLD:   {size: 8},
	insts.OpLQ:   {size: 16, aligned: true},
	insts.OpLWC1: {size: 4},
	insts.OpLQC2: {size: 16, aligned: true},
}

var storeOps = map[insts.Op]memRule{
	insts.OpSB:   {size: 1},
	insts.OpSH:   {size: 2},
	insts.OpSW:   {size: 4},
	insts.OpSD:   {size: 8},
	insts.OpSQ:   {size: 16, aligned: true},
	insts.OpSWC1: {size: 4},
	insts.OpSQC2: {size: 16, aligned: true},
}

// liftMemory lowers base+offset loads and stores. The unaligned
// left/right forms have no rule and fall through.
func (b *builder) liftMemory() bool {
	i := b.inst

	if rule, ok := loadOps[i.Op]; ok {
		var v ir.Expr = ir.Load{Size: rule.size, Addr: b.address(rule.aligned)}
		size := rule.size
		if i.Reg1.Space == insts.SpaceGPR && rule.size < 8 {
			v = ir.Extend{Signed: rule.signed, Size: 8, Value: v}
			size = 8
		}
		b.set(i.Reg1, size, v)
		return true
	}

	if rule, ok := storeOps[i.Op]; ok {
		b.emit(ir.Store{Size: rule.size, Addr: b.address(rule.aligned), Value: b.reg(i.Reg1, rule.size)})
		return true
	}

	switch i.Op {
	case insts.OpCACHE:
		b.emit(ir.Intrinsic{
			Name: "cache",
			Args: []ir.Expr{konst(1, int64(insts.Rt(i.Word))), b.address(false)},
		})
	case insts.OpPREF:
		b.emit(ir.Nop{})
	default:
		return false
	}
	return true
}

// address computes base + sext(imm16) as a 32-bit value.
func (b *builder) address(aligned bool) ir.Expr {
	i := b.inst

	addr := b.reg(i.Reg2, 4)
	if v := i.Operand.Value; v != 0 {
		addr = bin(ir.Add, 4, addr, konst(4, v))
	}
	if aligned {
		addr = bin(ir.And, 4, addr, konst(4, -16))
	}
	return addr
}
