package ir_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/eelift/insts"
	"github.com/sarchlab/eelift/ir"
)

var _ = Describe("IR", func() {
	a0 := ir.Reg{Reg: insts.GPR(4), Size: 4}
	v0 := insts.GPR(2)

	Describe("printing", func() {
		It("should print constants in decimal below ten and hex above", func() {
			Expect(ir.Const{Size: 4, Value: 5}.String()).To(Equal("5"))
			Expect(ir.Const{Size: 4, Value: -3}.String()).To(Equal("-3"))
			Expect(ir.Const{Size: 4, Value: 0x100}.String()).To(Equal("0x100"))
			Expect(ir.Const{Size: 4, Value: -16}.String()).To(Equal("-0x10"))
		})

		It("should print register writes with their expression", func() {
			op := ir.SetReg{Reg: v0, Size: 8, Value: ir.Extend{
				Signed: true,
				Size:   8,
				Value:  ir.Binary{Op: ir.Add, Size: 4, Left: a0, Right: ir.Const{Size: 4, Value: 5}},
			}}
			Expect(op.String()).To(Equal("$v0 = sx.8(($a0 + 5))"))
		})

		It("should name VU lanes by letter", func() {
			s := ir.Slice{Reg: insts.VF(1), Offset: 8, Size: 4}
			Expect(s.String()).To(Equal("$vf1.z"))

			lo := ir.Slice{Reg: insts.RegLo, Offset: 8, Size: 8}
			Expect(lo.String()).To(Equal("$lo[8:16]"))
		})

		It("should print structured conditionals", func() {
			op := ir.If{
				Cond: ir.Compare{Cond: ir.Eq, Size: 8, Left: a0, Right: ir.Const{Size: 8}},
				Then: []ir.Op{ir.Jump{Target: ir.Const{Size: 4, Value: 0x100}}},
				Else: []ir.Op{ir.Jump{Target: ir.Const{Size: 4, Value: 0x8}}},
			}
			Expect(op.String()).To(Equal("if ($a0 == 0) { jump(0x100) } else { jump(8) }"))
		})

		It("should print intrinsics with outputs", func() {
			op := ir.Intrinsic{Name: "ei", Outputs: []insts.Register{insts.RegStatus}}
			Expect(op.String()).To(Equal("$Status = ei()"))
			Expect(ir.Unimplemented{Mnemonic: "lwl"}.String()).To(Equal("unimplemented(lwl)"))
		})

		It("should print memory access with its width", func() {
			op := ir.Store{Size: 4, Addr: a0, Value: ir.Reg{Reg: v0, Size: 4}}
			Expect(op.String()).To(Equal("[$a0].4 = $v0"))
		})
	})

	Describe("walking", func() {
		ops := []ir.Op{
			ir.SetReg{Reg: v0, Size: 8, Value: a0},
			ir.If{
				Cond: a0,
				Then: []ir.Op{ir.SetSlice{Reg: insts.VF(3), Offset: 0, Size: 4, Value: ir.FloatConst{Size: 4}}},
				Else: []ir.Op{ir.Unimplemented{Mnemonic: "vclip"}},
			},
		}

		It("should collect written registers from both arms", func() {
			Expect(ir.Written(ops)).To(Equal([]insts.Register{v0, insts.VF(3)}))
		})

		It("should find unimplemented markers anywhere", func() {
			Expect(ir.IsUnimplemented(ops)).To(BeTrue())
			Expect(ir.IsUnimplemented(ops[:1])).To(BeFalse())
		})

		It("should find register reads inside expressions", func() {
			e := ir.Extend{Size: 8, Value: ir.Load{Size: 4, Addr: ir.Binary{Op: ir.Add, Size: 4, Left: a0, Right: ir.Const{Size: 4, Value: 8}}}}
			Expect(ir.Reads(e, insts.GPR(4))).To(BeTrue())
			Expect(ir.Reads(e, v0)).To(BeFalse())
		})

		It("should format one op per line", func() {
			Expect(ir.Format([]ir.Op{ir.Nop{}, ir.Syscall{}})).To(Equal("nop\nsyscall\n"))
		})
	})
})
