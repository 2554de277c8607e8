package lift

import (
	"github.com/sarchlab/eelift/insts"
	"github.com/sarchlab/eelift/ir"
)

type laneRule struct {
	width int
	op    ir.BinaryOp
}

var mmiArith = map[insts.Op]laneRule{
	insts.OpPADDW:  {4, ir.Add},
	insts.OpPADDH:  {2, ir.Add},
	insts.OpPADDB:  {1, ir.Add},
	insts.OpPSUBW:  {4, ir.Sub},
	insts.OpPSUBH:  {2, ir.Sub},
	insts.OpPSUBB:  {1, ir.Sub},
	insts.OpPADDSW: {4, ir.AddSatS},
	insts.OpPADDSH: {2, ir.AddSatS},
	insts.OpPADDSB: {1, ir.AddSatS},
	insts.OpPSUBSW: {4, ir.SubSatS},
	insts.OpPSUBSH: {2, ir.SubSatS},
	insts.OpPSUBSB: {1, ir.SubSatS},
	insts.OpPADDUW: {4, ir.AddSatU},
	insts.OpPADDUH: {2, ir.AddSatU},
	insts.OpPADDUB: {1, ir.AddSatU},
	insts.OpPSUBUW: {4, ir.SubSatU},
	insts.OpPSUBUH: {2, ir.SubSatU},
	insts.OpPSUBUB: {1, ir.SubSatU},
	insts.OpPMAXW:  {4, ir.MaxS},
	insts.OpPMAXH:  {2, ir.MaxS},
	insts.OpPMINW:  {4, ir.MinS},
	insts.OpPMINH:  {2, ir.MinS},
}

var mmiCompare = map[insts.Op]struct {
	width int
	cond  ir.Condition
}{
	insts.OpPCGTW: {4, ir.GtS},
	insts.OpPCGTH: {2, ir.GtS},
	insts.OpPCGTB: {1, ir.GtS},
	insts.OpPCEQW: {4, ir.Eq},
	insts.OpPCEQH: {2, ir.Eq},
	insts.OpPCEQB: {1, ir.Eq},
}

var mmiShift = map[insts.Op]laneRule{
	insts.OpPSLLH: {2, ir.Shl},
	insts.OpPSRLH: {2, ir.Lsr},
	insts.OpPSRAH: {2, ir.Asr},
	insts.OpPSLLW: {4, ir.Shl},
	insts.OpPSRLW: {4, ir.Lsr},
	insts.OpPSRAW: {4, ir.Asr},
}

var mmiVariableShift = map[insts.Op]ir.BinaryOp{
	insts.OpPSLLVW: ir.Shl,
	insts.OpPSRLVW: ir.Lsr,
	insts.OpPSRAVW: ir.Asr,
}

var mmiLogic = map[insts.Op]ir.BinaryOp{
	insts.OpPAND: ir.And,
	insts.OpPOR:  ir.Or,
	insts.OpPXOR: ir.Xor,
}

// laneSource names where a permuted lane comes from.
type laneSource uint8

const (
	fromRS laneSource = iota
	fromRT
	fromLO
	fromHI
)

type laneRef struct {
	src  laneSource
	lane int
}

type permutation struct {
	width int
	lanes []laneRef
}

func t(lanes ...int) []laneRef { return refs(fromRT, lanes) }

func refs(src laneSource, lanes []int) []laneRef {
	out := make([]laneRef, len(lanes))
	for i, l := range lanes {
		out[i] = laneRef{src, l}
	}
	return out
}

// interleave alternates rt and rs lanes: t[a], s[a], t[a+1], s[a+1], ...
func interleave(from, count int) []laneRef {
	out := make([]laneRef, 0, count*2)
	for i := from; i < from+count; i++ {
		out = append(out, laneRef{fromRT, i}, laneRef{fromRS, i})
	}
	return out
}

// pack takes the even lanes of rt then the even lanes of rs.
func pack(count int) []laneRef {
	out := make([]laneRef, 0, count)
	for _, src := range []laneSource{fromRT, fromRS} {
		for i := 0; i < count; i += 2 {
			out = append(out, laneRef{src, i})
		}
	}
	return out
}

var mmiPermutations = map[insts.Op]permutation{
	insts.OpPEXTLW: {4, interleave(0, 2)},
	insts.OpPEXTUW: {4, interleave(2, 2)},
	insts.OpPEXTLH: {2, interleave(0, 4)},
	insts.OpPEXTUH: {2, interleave(4, 4)},
	insts.OpPEXTLB: {1, interleave(0, 8)},
	insts.OpPEXTUB: {1, interleave(8, 8)},
	insts.OpPPACW:  {4, pack(4)},
	insts.OpPPACH:  {2, pack(8)},
	insts.OpPPACB:  {1, pack(16)},
	insts.OpPINTH: {2, []laneRef{
		{fromRT, 0}, {fromRS, 4}, {fromRT, 1}, {fromRS, 5},
		{fromRT, 2}, {fromRS, 6}, {fromRT, 3}, {fromRS, 7},
	}},
	insts.OpPINTEH: {2, []laneRef{
		{fromRT, 0}, {fromRS, 0}, {fromRT, 2}, {fromRS, 2},
		{fromRT, 4}, {fromRS, 4}, {fromRT, 6}, {fromRS, 6},
	}},
	insts.OpPCPYLD:  {8, []laneRef{{fromRT, 0}, {fromRS, 0}}},
	insts.OpPCPYUD:  {8, []laneRef{{fromRS, 1}, {fromRT, 1}}},
	insts.OpPCPYH:   {2, t(0, 0, 0, 0, 4, 4, 4, 4)},
	insts.OpPEXEH:   {2, t(2, 1, 0, 3, 6, 5, 4, 7)},
	insts.OpPEXCH:   {2, t(0, 2, 1, 3, 4, 6, 5, 7)},
	insts.OpPREVH:   {2, t(3, 2, 1, 0, 7, 6, 5, 4)},
	insts.OpPEXEW:   {4, t(2, 1, 0, 3)},
	insts.OpPEXCW:   {4, t(0, 2, 1, 3)},
	insts.OpPROT3W:  {4, t(1, 2, 0, 3)},
	insts.OpPMFHLLW: {4, []laneRef{{fromLO, 0}, {fromHI, 0}, {fromLO, 2}, {fromHI, 2}}},
	insts.OpPMFHLUW: {4, []laneRef{{fromLO, 1}, {fromHI, 1}, {fromLO, 3}, {fromHI, 3}}},
}

// liftMMI lowers the 128-bit multimedia ops that have a lane rule. The
// multiply-accumulate, divide, funnel-shift and 5-bit pack forms fall
// through to Unimplemented.
func (b *builder) liftMMI() bool {
	i := b.inst

	if rule, ok := mmiArith[i.Op]; ok {
		b.laneWise(rule.width, func(l, r ir.Expr) ir.Expr { return bin(rule.op, rule.width, l, r) })
		return true
	}
	if rule, ok := mmiCompare[i.Op]; ok {
		w := rule.width
		b.laneWise(w, func(l, r ir.Expr) ir.Expr {
			return ir.Select{Cond: cmp(rule.cond, w, l, r), True: konst(w, -1), False: konst(w, 0)}
		})
		return true
	}
	if rule, ok := mmiShift[i.Op]; ok {
		amount := konst(1, i.Operand.Value&int64(rule.width*8-1))
		b.unaryLanes(rule.width, func(v ir.Expr) ir.Expr { return bin(rule.op, rule.width, v, amount) })
		return true
	}
	if op, ok := mmiVariableShift[i.Op]; ok {
		b.liftVariableShift(op)
		return true
	}
	if op, ok := mmiLogic[i.Op]; ok {
		b.set(i.Reg1, 16, bin(op, 16, b.reg(i.Reg2, 16), b.reg(i.Reg3, 16)))
		return true
	}
	if p, ok := mmiPermutations[i.Op]; ok {
		b.permute(p)
		return true
	}

	switch i.Op {
	case insts.OpPNOR:
		b.set(i.Reg1, 16, ir.Unary{Op: ir.Not, Size: 16, Value: bin(ir.Or, 16, b.reg(i.Reg2, 16), b.reg(i.Reg3, 16))})
	case insts.OpPABSW:
		b.unaryLanes(4, func(v ir.Expr) ir.Expr { return ir.Unary{Op: ir.Abs, Size: 4, Value: v} })
	case insts.OpPABSH:
		b.unaryLanes(2, func(v ir.Expr) ir.Expr { return ir.Unary{Op: ir.Abs, Size: 2, Value: v} })
	case insts.OpPMFHI:
		b.set(i.Reg1, 16, ir.Reg{Reg: insts.RegHi, Size: 16})
	case insts.OpPMFLO:
		b.set(i.Reg1, 16, ir.Reg{Reg: insts.RegLo, Size: 16})
	case insts.OpPMTHI:
		b.set(insts.RegHi, 16, b.reg(i.Reg1, 16))
	case insts.OpPMTLO:
		b.set(insts.RegLo, 16, b.reg(i.Reg1, 16))
	default:
		return false
	}
	return true
}

// laneWise writes rd.lane = fn(rs.lane, rt.lane) for every lane.
func (b *builder) laneWise(width int, fn func(l, r ir.Expr) ir.Expr) {
	i := b.inst
	lanes := make([]laneWrite, 0, 16/width)
	for off := 0; off < 16; off += width {
		v := fn(b.slice(i.Reg2, off, width), b.slice(i.Reg3, off, width))
		lanes = append(lanes, laneWrite{off, width, v})
	}
	b.writeLanes(i.Reg1, lanes)
}

// unaryLanes writes rd.lane = fn(rt.lane) for every lane.
func (b *builder) unaryLanes(width int, fn func(v ir.Expr) ir.Expr) {
	i := b.inst
	lanes := make([]laneWrite, 0, 16/width)
	for off := 0; off < 16; off += width {
		lanes = append(lanes, laneWrite{off, width, fn(b.slice(i.Reg2, off, width))})
	}
	b.writeLanes(i.Reg1, lanes)
}

// liftVariableShift shifts words 0 and 2 of rt by rs and writes each
// sign-extended result to a doubleword of rd.
func (b *builder) liftVariableShift(op ir.BinaryOp) {
	i := b.inst
	lanes := make([]laneWrite, 0, 2)
	for off := 0; off < 16; off += 8 {
		amount := bin(ir.And, 4, b.slice(i.Reg3, off, 4), konst(4, 31))
		v := sext(8, bin(op, 4, b.slice(i.Reg2, off, 4), amount))
		lanes = append(lanes, laneWrite{off, 8, v})
	}
	b.writeLanes(i.Reg1, lanes)
}

func (b *builder) permute(p permutation) {
	i := b.inst

	// Two-source forms are rd, rs, rt. Single-source forms are rd, rt.
	rs, rt := i.Reg2, i.Reg3
	if !rt.IsValid() {
		rt = i.Reg2
	}

	lanes := make([]laneWrite, len(p.lanes))
	for n, ref := range p.lanes {
		var src insts.Register
		switch ref.src {
		case fromRS:
			src = rs
		case fromRT:
			src = rt
		case fromLO:
			src = insts.RegLo
		case fromHI:
			src = insts.RegHi
		}
		lanes[n] = laneWrite{n * p.width, p.width, b.slice(src, ref.lane*p.width, p.width)}
	}
	b.writeLanes(i.Reg1, lanes)
}
