package lift

import (
	"github.com/sarchlab/eelift/insts"
	"github.com/sarchlab/eelift/ir"
)

// builder accumulates the ops of one instruction.
type builder struct {
	inst  insts.Instruction
	addr  uint32
	ops   []ir.Op
	temps *int
	saved map[insts.Register]ir.Temp
}

func newBuilder(inst insts.Instruction, addr uint32, temps *int) *builder {
	return &builder{inst: inst, addr: addr, temps: temps}
}

func (b *builder) emit(ops ...ir.Op) {
	b.ops = append(b.ops, ops...)
}

// unimplemented discards anything emitted so far.
func (b *builder) unimplemented() {
	b.ops = []ir.Op{ir.Unimplemented{Mnemonic: b.inst.Mnemonic()}}
}

func (b *builder) temp() ir.Temp {
	t := ir.Temp{Index: *b.temps}
	*b.temps++
	return t
}

// save captures the current value of r so later reads see it rather than
// whatever a delay slot writes.
func (b *builder) save(r insts.Register) {
	if hardwired(r) {
		return
	}
	if b.saved == nil {
		b.saved = make(map[insts.Register]ir.Temp)
	}
	if _, ok := b.saved[r]; ok {
		return
	}
	t := b.temp()
	b.emit(ir.SetTemp{Temp: t, Value: ir.Reg{Reg: r, Size: saveWidth(r)}})
	b.saved[r] = t
}

func saveWidth(r insts.Register) int {
	if r.Space == insts.SpaceGPR && r.Width() > 8 {
		return 8
	}
	return r.Width()
}

// hardwired reports whether r always reads as zero and ignores writes.
func hardwired(r insts.Register) bool {
	return r.IsZero() || r == insts.VI(0)
}

func (b *builder) reg(r insts.Register, size int) ir.Expr {
	if hardwired(r) {
		return ir.Const{Size: size}
	}
	if t, ok := b.saved[r]; ok {
		if size < saveWidth(r) {
			return ir.Low{Size: size, Value: t}
		}
		return t
	}
	return ir.Reg{Reg: r, Size: size}
}

var vf0Lanes = [4]float64{0, 0, 0, 1}

func (b *builder) slice(r insts.Register, offset, size int) ir.Expr {
	switch {
	case hardwired(r):
		return ir.Const{Size: size}
	case r == insts.VF(0) && size == 4 && offset%4 == 0:
		return ir.FloatConst{Size: 4, Value: vf0Lanes[offset/4]}
	}
	return ir.Slice{Reg: r, Offset: offset, Size: size}
}

func (b *builder) set(r insts.Register, size int, v ir.Expr) {
	if hardwired(r) || r == insts.VF(0) || !r.IsValid() {
		return
	}
	b.emit(ir.SetReg{Reg: r, Size: size, Value: v})
}

// set32 writes a 32-bit result sign-extended to the 64-bit view.
func (b *builder) set32(r insts.Register, v ir.Expr) {
	b.set(r, 8, sext(8, v))
}

func (b *builder) setSlice(r insts.Register, offset, size int, v ir.Expr) {
	if hardwired(r) || r == insts.VF(0) || !r.IsValid() {
		return
	}
	b.emit(ir.SetSlice{Reg: r, Offset: offset, Size: size, Value: v})
}

// imm returns the decoded immediate as a constant of size bytes.
func (b *builder) imm(size int) ir.Const {
	return ir.Const{Size: size, Value: b.inst.Operand.Value}
}

type laneWrite struct {
	offset int
	size   int
	value  ir.Expr
}

// writeLanes emits one SetSlice per lane. When a lane reads a different
// lane of dst, every value is staged in a temp first so no lane observes
// an earlier lane's write.
func (b *builder) writeLanes(dst insts.Register, lanes []laneWrite) {
	if hardwired(dst) || dst == insts.VF(0) {
		return
	}

	stage := false
	for _, lw := range lanes {
		if crossRead(lw.value, dst, lw.offset) {
			stage = true
			break
		}
	}

	if stage {
		for i := range lanes {
			t := b.temp()
			b.emit(ir.SetTemp{Temp: t, Value: lanes[i].value})
			lanes[i].value = t
		}
	}

	for _, lw := range lanes {
		b.setSlice(dst, lw.offset, lw.size, lw.value)
	}
}

func crossRead(e ir.Expr, dst insts.Register, offset int) bool {
	found := false
	ir.WalkExpr(e, func(n ir.Expr) bool {
		switch n := n.(type) {
		case ir.Reg:
			found = n.Reg == dst
		case ir.Slice:
			found = n.Reg == dst && n.Offset != offset
		}
		return !found
	})
	return found
}

func sext(size int, v ir.Expr) ir.Expr { return ir.Extend{Signed: true, Size: size, Value: v} }

func zext(size int, v ir.Expr) ir.Expr { return ir.Extend{Size: size, Value: v} }

func bin(op ir.BinaryOp, size int, l, r ir.Expr) ir.Expr {
	return ir.Binary{Op: op, Size: size, Left: l, Right: r}
}

func cmp(c ir.Condition, size int, l, r ir.Expr) ir.Expr {
	return ir.Compare{Cond: c, Size: size, Left: l, Right: r}
}

func konst(size int, v int64) ir.Const { return ir.Const{Size: size, Value: v} }
