package insts_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/eelift/insts"
)

var _ = Describe("Decoder", func() {
	var (
		decoder *insts.Decoder
		none    insts.Register
	)

	BeforeEach(func() {
		decoder = insts.NewDecoder()
	})

	Describe("ALU immediate", func() {
		It("should decode addiu $v0, $zero, 5", func() {
			inst := decoder.Decode(0x24020005, 0x00100000)

			Expect(inst.Op).To(Equal(insts.OpADDIU))
			Expect(inst.Mnemonic()).To(Equal("addiu"))
			Expect(inst.Kind).To(Equal(insts.KindInteger))
			Expect(inst.Reg1).To(Equal(insts.GPR(2)))
			Expect(inst.Reg2).To(Equal(insts.RegZero))
			Expect(inst.Operand).To(Equal(insts.Operand{Kind: insts.OperandSigned, Value: 5}))
			Expect(inst.HexDisplay).To(BeFalse())
		})

		It("should decode lui with an unsigned immediate and no source", func() {
			inst := decoder.Decode(iType(0x0F, 0, 1, 0x1234), 0)

			Expect(inst.Op).To(Equal(insts.OpLUI))
			Expect(inst.Reg1).To(Equal(insts.RegAT))
			Expect(inst.Reg2).To(Equal(none))
			Expect(inst.Operand.Kind).To(Equal(insts.OperandUnsigned))
			Expect(inst.Operand.Value).To(Equal(int64(0x1234)))
			Expect(inst.HexDisplay).To(BeTrue())
		})

		It("should zero-extend logical immediates", func() {
			inst := decoder.Decode(iType(0x0D, 9, 8, 0x8000), 0)

			Expect(inst.Op).To(Equal(insts.OpORI))
			Expect(inst.Operand.Value).To(Equal(int64(0x8000)))
		})

		It("should sign-extend arithmetic immediates", func() {
			inst := decoder.Decode(iType(0x19, 29, 29, 0xFFE0), 0)

			Expect(inst.Op).To(Equal(insts.OpDADDIU))
			Expect(inst.Operand.Value).To(Equal(int64(-32)))
			Expect(inst.HexDisplay).To(BeTrue())
		})

		It("should show small negative immediates in decimal", func() {
			inst := decoder.Decode(iType(0x0A, 4, 2, 0xFFFD), 0)

			Expect(inst.Op).To(Equal(insts.OpSLTI))
			Expect(inst.Operand.Value).To(Equal(int64(-3)))
			Expect(inst.HexDisplay).To(BeFalse())
		})
	})

	Describe("SPECIAL", func() {
		It("should decode addu rd, rs, rt", func() {
			inst := decoder.Decode(rType(4, 5, 2, 0, 0x21), 0)

			Expect(inst.Op).To(Equal(insts.OpADDU))
			Expect(inst.Reg1).To(Equal(insts.GPR(2)))
			Expect(inst.Reg2).To(Equal(insts.GPR(4)))
			Expect(inst.Reg3).To(Equal(insts.GPR(5)))
		})

		It("should decode shifts as rd, rt, sa", func() {
			inst := decoder.Decode(rType(0, 9, 8, 4, 0x00), 0)

			Expect(inst.Op).To(Equal(insts.OpSLL))
			Expect(inst.Reg1).To(Equal(insts.GPR(8)))
			Expect(inst.Reg2).To(Equal(insts.GPR(9)))
			Expect(inst.Operand).To(Equal(insts.Operand{Kind: insts.OperandUnsigned, Value: 4}))
		})

		It("should decode variable shifts as rd, rt, rs", func() {
			inst := decoder.Decode(rType(10, 9, 8, 0, 0x07), 0)

			Expect(inst.Op).To(Equal(insts.OpSRAV))
			Expect(inst.Reg2).To(Equal(insts.GPR(9)))
			Expect(inst.Reg3).To(Equal(insts.GPR(10)))
		})

		It("should decode the three-operand EE mult", func() {
			inst := decoder.Decode(rType(4, 5, 2, 0, 0x18), 0)

			Expect(inst.Op).To(Equal(insts.OpMULT))
			Expect(inst.Reg1).To(Equal(insts.GPR(2)))
		})

		It("should decode div rs, rt", func() {
			inst := decoder.Decode(rType(4, 5, 0, 0, 0x1A), 0)

			Expect(inst.Op).To(Equal(insts.OpDIV))
			Expect(inst.Reg1).To(Equal(insts.GPR(4)))
			Expect(inst.Reg2).To(Equal(insts.GPR(5)))
			Expect(inst.Reg3).To(Equal(none))
		})

		It("should decode jr $ra as an indirect branch", func() {
			inst := decoder.Decode(0x03E00008, 0)

			Expect(inst.Op).To(Equal(insts.OpJR))
			Expect(inst.Kind).To(Equal(insts.KindBranch))
			Expect(inst.Reg1).To(Equal(insts.RegRA))
			Expect(inst.HasTarget).To(BeFalse())
		})

		It("should decode jalr rd, rs", func() {
			inst := decoder.Decode(rType(25, 0, 31, 0, 0x09), 0)

			Expect(inst.Op).To(Equal(insts.OpJALR))
			Expect(inst.Reg1).To(Equal(insts.RegRA))
			Expect(inst.Reg2).To(Equal(insts.GPR(25)))
		})

		It("should decode syscall as a branch and break as integer", func() {
			Expect(decoder.Decode(0x0000000C, 0).Kind).To(Equal(insts.KindBranch))

			brk := decoder.Decode(rType(0, 0, 0, 0, 0x0D)|7<<6, 0)
			Expect(brk.Op).To(Equal(insts.OpBREAK))
			Expect(brk.Kind).To(Equal(insts.KindInteger))
			Expect(brk.Operand.Value).To(Equal(int64(7)))
		})

		It("should leave unassigned function codes undefined", func() {
			inst := decoder.Decode(rType(1, 2, 3, 0, 0x01), 0)
			Expect(inst.IsUndefined()).To(BeTrue())
		})
	})

	Describe("REGIMM", func() {
		It("should flag bltzl as likely", func() {
			inst := decoder.Decode(regimm(4, 0x02, 4), 0x1000)

			Expect(inst.Op).To(Equal(insts.OpBLTZL))
			Expect(inst.Likely).To(BeTrue())
			Expect(inst.Target).To(Equal(uint32(0x1014)))
			Expect(inst.HasTarget).To(BeTrue())
		})

		It("should decode bgezal", func() {
			inst := decoder.Decode(regimm(4, 0x11, 4), 0x1000)

			Expect(inst.Op).To(Equal(insts.OpBGEZAL))
			Expect(inst.Likely).To(BeFalse())
			Expect(inst.Reg1).To(Equal(insts.GPR(4)))
		})

		It("should decode mtsab rs, imm", func() {
			inst := decoder.Decode(regimm(4, 0x18, 3), 0)

			Expect(inst.Op).To(Equal(insts.OpMTSAB))
			Expect(inst.Kind).To(Equal(insts.KindInteger))
			Expect(inst.Reg1).To(Equal(insts.GPR(4)))
			Expect(inst.Operand).To(Equal(insts.Operand{Kind: insts.OperandUnsigned, Value: 3}))
		})

		It("should leave reserved rt values undefined", func() {
			Expect(decoder.Decode(regimm(4, 0x05, 0), 0).IsUndefined()).To(BeTrue())
		})
	})

	Describe("Branches and jumps", func() {
		It("should resolve beq +2 at A to A+12", func() {
			inst := decoder.Decode(iType(0x04, 4, 5, 0x0002), 0x00100000)

			Expect(inst.Op).To(Equal(insts.OpBEQ))
			Expect(inst.Kind).To(Equal(insts.KindBranch))
			Expect(inst.Reg1).To(Equal(insts.GPR(4)))
			Expect(inst.Reg2).To(Equal(insts.GPR(5)))
			Expect(inst.Target).To(Equal(uint32(0x0010000C)))
			Expect(inst.Likely).To(BeFalse())
		})

		It("should flag bnel as likely", func() {
			inst := decoder.Decode(iType(0x15, 4, 5, 0xFFFF), 0x2000)

			Expect(inst.Op).To(Equal(insts.OpBNEL))
			Expect(inst.Likely).To(BeTrue())
			Expect(inst.Target).To(Equal(uint32(0x2000)))
		})

		It("should give blez a single register", func() {
			inst := decoder.Decode(iType(0x06, 4, 0, 1), 0)

			Expect(inst.Op).To(Equal(insts.OpBLEZ))
			Expect(inst.Reg2).To(Equal(none))
		})

		It("should decode j and jal", func() {
			j := decoder.Decode(jType(0x02, 0x40000), 0x00100000)
			Expect(j.Op).To(Equal(insts.OpJ))
			Expect(j.Target).To(Equal(uint32(0x00100000)))

			jal := decoder.Decode(jType(0x03, 0x40010), 0x00100000)
			Expect(jal.Op).To(Equal(insts.OpJAL))
			Expect(jal.Target).To(Equal(uint32(0x00100040)))
		})
	})

	Describe("Loads and stores", func() {
		It("should decode lw rt, off(base)", func() {
			inst := decoder.Decode(iType(0x23, 29, 2, 0xFFF8), 0)

			Expect(inst.Op).To(Equal(insts.OpLW))
			Expect(inst.Kind).To(Equal(insts.KindLoadStore))
			Expect(inst.Reg1).To(Equal(insts.GPR(2)))
			Expect(inst.Reg2).To(Equal(insts.RegSP))
			Expect(inst.Operand.Value).To(Equal(int64(-8)))
		})

		It("should decode the quadword forms", func() {
			Expect(decoder.Decode(iType(0x1E, 29, 4, 16), 0).Op).To(Equal(insts.OpLQ))
			Expect(decoder.Decode(iType(0x1F, 29, 4, 16), 0).Op).To(Equal(insts.OpSQ))
		})

		It("should pick the coprocessor namespace for lwc1 and lqc2", func() {
			Expect(decoder.Decode(iType(0x31, 4, 2, 4), 0).Reg1).To(Equal(insts.FPR(2)))
			Expect(decoder.Decode(iType(0x36, 4, 3, 0), 0).Reg1).To(Equal(insts.VF(3)))
		})

		It("should leave cache without a data register", func() {
			inst := decoder.Decode(iType(0x2F, 4, 0x14, 0), 0)

			Expect(inst.Op).To(Equal(insts.OpCACHE))
			Expect(inst.Reg1).To(Equal(none))
			Expect(inst.Reg2).To(Equal(insts.GPR(4)))
		})
	})

	Describe("COP0", func() {
		It("should decode mfc0 gpr, cop0", func() {
			inst := decoder.Decode(cop(0, 0x00, 26, 12, 0, 0), 0)

			Expect(inst.Op).To(Equal(insts.OpMFC0))
			Expect(inst.Reg1).To(Equal(insts.GPR(26)))
			Expect(inst.Reg2).To(Equal(insts.RegStatus))
		})

		It("should decode eret as a branch", func() {
			inst := decoder.Decode(0x42000018, 0)

			Expect(inst.Op).To(Equal(insts.OpERET))
			Expect(inst.Kind).To(Equal(insts.KindBranch))
		})

		It("should decode ei and di", func() {
			Expect(decoder.Decode(cop(0, 0x10, 0, 0, 0, 0x38), 0).Op).To(Equal(insts.OpEI))
			Expect(decoder.Decode(cop(0, 0x10, 0, 0, 0, 0x39), 0).Op).To(Equal(insts.OpDI))
		})

		It("should decode bc0t", func() {
			inst := decoder.Decode(iType(0x10, 0x08, 1, 3), 0x100)

			Expect(inst.Op).To(Equal(insts.OpBC0T))
			Expect(inst.Sense).To(Equal(insts.SenseTrue))
			Expect(inst.Target).To(Equal(uint32(0x110)))
		})
	})

	Describe("COP1", func() {
		It("should decode add.s fd, fs, ft", func() {
			inst := decoder.Decode(cop(1, 0x10, 2, 1, 0, 0x00), 0)

			Expect(inst.Op).To(Equal(insts.OpADDS))
			Expect(inst.Reg1).To(Equal(insts.FPR(0)))
			Expect(inst.Reg2).To(Equal(insts.FPR(1)))
			Expect(inst.Reg3).To(Equal(insts.FPR(2)))
		})

		It("should decode compares as fs, ft", func() {
			inst := decoder.Decode(cop(1, 0x10, 2, 1, 0, 0x32), 0)

			Expect(inst.Op).To(Equal(insts.OpCEQS))
			Expect(inst.Mnemonic()).To(Equal("c.eq.s"))
			Expect(inst.Reg1).To(Equal(insts.FPR(1)))
			Expect(inst.Reg2).To(Equal(insts.FPR(2)))
		})

		It("should decode sqrt.s as fd, ft", func() {
			inst := decoder.Decode(cop(1, 0x10, 2, 1, 0, 0x04), 0)

			Expect(inst.Op).To(Equal(insts.OpSQRTS))
			Expect(inst.Reg1).To(Equal(insts.FPR(0)))
			Expect(inst.Reg2).To(Equal(insts.FPR(2)))
		})

		It("should decode cvt.s.w from the W format", func() {
			inst := decoder.Decode(cop(1, 0x14, 0, 1, 0, 0x20), 0)

			Expect(inst.Op).To(Equal(insts.OpCVTSW))
			Expect(inst.Reg1).To(Equal(insts.FPR(0)))
			Expect(inst.Reg2).To(Equal(insts.FPR(1)))
		})

		It("should decode moves between namespaces", func() {
			mfc1 := decoder.Decode(cop(1, 0x00, 2, 3, 0, 0), 0)
			Expect(mfc1.Op).To(Equal(insts.OpMFC1))
			Expect(mfc1.Reg1).To(Equal(insts.GPR(2)))
			Expect(mfc1.Reg2).To(Equal(insts.FPR(3)))

			ctc1 := decoder.Decode(cop(1, 0x06, 8, 31, 0, 0), 0)
			Expect(ctc1.Op).To(Equal(insts.OpCTC1))
			Expect(ctc1.Reg2).To(Equal(insts.RegFCSR))
		})

		It("should take sense from bit 16 and likely from bit 17", func() {
			tl := decoder.Decode(iType(0x11, 0x08, 3, 0x10), 0)
			Expect(tl.Op).To(Equal(insts.OpBC1TL))
			Expect(tl.Sense).To(Equal(insts.SenseTrue))
			Expect(tl.Likely).To(BeTrue())
			Expect(tl.Target).To(Equal(uint32(0x44)))

			f := decoder.Decode(iType(0x11, 0x08, 0, 0x10), 0)
			Expect(f.Op).To(Equal(insts.OpBC1F))
			Expect(f.Sense).To(Equal(insts.SenseFalse))
			Expect(f.Likely).To(BeFalse())
		})

		It("should leave unassigned .S functions undefined", func() {
			Expect(decoder.Decode(cop(1, 0x10, 0, 0, 0, 0x3F), 0).IsUndefined()).To(BeTrue())
		})
	})

	Describe("COP2 transfers", func() {
		It("should decode qmfc2 and ctc2", func() {
			q := decoder.Decode(cop(2, 0x01, 4, 5, 0, 0), 0)
			Expect(q.Op).To(Equal(insts.OpQMFC2))
			Expect(q.Reg1).To(Equal(insts.GPR(4)))
			Expect(q.Reg2).To(Equal(insts.VF(5)))

			c := decoder.Decode(cop(2, 0x06, 8, 27, 0, 0), 0)
			Expect(c.Op).To(Equal(insts.OpCTC2))
			Expect(c.Reg2).To(Equal(insts.RegCMSAR0))
		})

		It("should decode bc2f", func() {
			inst := decoder.Decode(iType(0x12, 0x08, 0, 1), 0)
			Expect(inst.Op).To(Equal(insts.OpBC2F))
			Expect(inst.Kind).To(Equal(insts.KindBranch))
		})
	})

	Describe("MMI", func() {
		DescribeTable("subgroup dispatch",
			func(word uint32, op insts.Op) {
				Expect(decoder.Decode(word, 0).Op).To(Equal(op))
			},
			Entry("paddw (MMI0)", mmi(4, 5, 2, 0x00, 0x08), insts.OpPADDW),
			Entry("ppacb (MMI0)", mmi(4, 5, 2, 0x1B, 0x08), insts.OpPPACB),
			Entry("pceqw (MMI1)", mmi(4, 5, 2, 0x02, 0x28), insts.OpPCEQW),
			Entry("pand (MMI2)", mmi(4, 5, 2, 0x12, 0x09), insts.OpPAND),
			Entry("por (MMI3)", mmi(4, 5, 2, 0x12, 0x29), insts.OpPOR),
			Entry("pmfhl.uw", mmi(0, 0, 2, 0x01, 0x30), insts.OpPMFHLUW),
			Entry("mult1", mmi(4, 5, 2, 0, 0x18), insts.OpMULT1),
			Entry("plzcw", mmi(4, 0, 2, 0, 0x04), insts.OpPLZCW),
		)

		It("should decode psllh rd, rt, sa", func() {
			inst := decoder.Decode(mmi(0, 5, 2, 3, 0x34), 0)

			Expect(inst.Op).To(Equal(insts.OpPSLLH))
			Expect(inst.Reg1).To(Equal(insts.GPR(2)))
			Expect(inst.Reg2).To(Equal(insts.GPR(5)))
			Expect(inst.Operand.Value).To(Equal(int64(3)))
		})

		It("should decode psllvw as rd, rt, rs", func() {
			inst := decoder.Decode(mmi(4, 5, 2, 0x02, 0x09), 0)

			Expect(inst.Op).To(Equal(insts.OpPSLLVW))
			Expect(inst.Reg2).To(Equal(insts.GPR(5)))
			Expect(inst.Reg3).To(Equal(insts.GPR(4)))
		})

		It("should decode pcpyh rd, rt", func() {
			inst := decoder.Decode(mmi(0, 5, 2, 0x1B, 0x29), 0)

			Expect(inst.Op).To(Equal(insts.OpPCPYH))
			Expect(inst.Reg1).To(Equal(insts.GPR(2)))
			Expect(inst.Reg2).To(Equal(insts.GPR(5)))
			Expect(inst.Reg3).To(Equal(none))
		})

		It("should leave holes in the subgroups undefined", func() {
			Expect(decoder.Decode(mmi(4, 5, 2, 0x0B, 0x08), 0).IsUndefined()).To(BeTrue())
			Expect(decoder.Decode(mmi(0, 0, 2, 0x05, 0x30), 0).IsUndefined()).To(BeTrue())
			Expect(decoder.Decode(mmi(0, 0, 0, 0, 0x3D), 0).IsUndefined()).To(BeTrue())
		})
	})

	Describe("VU macro mode", func() {
		It("should decode broadcast ops with their lane", func() {
			inst := decoder.Decode(vuOp(0xE, 3, 2, 1, 0x01), 0)

			Expect(inst.Op).To(Equal(insts.OpVADDBC))
			Expect(inst.Reg1).To(Equal(insts.VF(1)))
			Expect(inst.Reg2).To(Equal(insts.VF(2)))
			Expect(inst.Reg3).To(Equal(insts.VF(3)))
			Expect(inst.Dest).To(Equal(uint8(0xE)))
			Expect(inst.Broadcast).To(Equal(insts.CompY))
		})

		It("should keep the mnemonic independent of the dest mask", func() {
			a := decoder.Decode(vuOp(0xF, 3, 2, 1, 0x28), 0)
			b := decoder.Decode(vuOp(0x1, 3, 2, 1, 0x28), 0)

			Expect(a.Op).To(Equal(insts.OpVADD))
			Expect(b.Op).To(Equal(insts.OpVADD))
			Expect(b.Dest).To(Equal(uint8(0x1)))
		})

		It("should read Q and I from their special registers", func() {
			Expect(decoder.Decode(vuOp(0xF, 0, 2, 1, 0x1C), 0).Reg3).To(Equal(insts.RegVUQ))
			Expect(decoder.Decode(vuOp(0xF, 0, 2, 1, 0x1E), 0).Reg3).To(Equal(insts.RegVUI))
		})

		It("should decode the integer ALU ops", func() {
			inst := decoder.Decode(vuOp(0, 3, 2, 1, 0x30), 0)

			Expect(inst.Op).To(Equal(insts.OpVIADD))
			Expect(inst.Reg1).To(Equal(insts.VI(1)))
			Expect(inst.Reg2).To(Equal(insts.VI(2)))
			Expect(inst.Reg3).To(Equal(insts.VI(3)))
		})

		It("should sign-extend the viaddi immediate", func() {
			inst := decoder.Decode(vuOp(0, 1, 2, 0, 0x32)|0x1F<<5, 0)

			Expect(inst.Op).To(Equal(insts.OpVIADDI))
			Expect(inst.Reg1).To(Equal(insts.VI(1)))
			Expect(inst.Reg2).To(Equal(insts.VI(2)))
			Expect(inst.Operand).To(Equal(insts.Operand{Kind: insts.OperandSigned, Value: -1}))
		})

		It("should decode vcallms and vcallmsr", func() {
			ms := decoder.Decode(vuOp(0, 0, 0, 0, 0x38)|0x100<<6, 0)
			Expect(ms.Op).To(Equal(insts.OpVCALLMS))
			Expect(ms.Operand.Value).To(Equal(int64(0x100)))

			msr := decoder.Decode(vuOp(0, 0, 0, 0, 0x39), 0)
			Expect(msr.Op).To(Equal(insts.OpVCALLMSR))
			Expect(msr.Reg1).To(Equal(insts.RegCMSAR0))
		})

		Describe("special2", func() {
			It("should decode accumulator broadcast ops", func() {
				inst := decoder.Decode(vuSpecial2(0xF, 3, 2, 0x1B), 0)

				Expect(inst.Op).To(Equal(insts.OpVMULABC))
				Expect(inst.Reg1).To(Equal(insts.RegVUACC))
				Expect(inst.Reg2).To(Equal(insts.VF(2)))
				Expect(inst.Reg3).To(Equal(insts.VF(3)))
				Expect(inst.Broadcast).To(Equal(insts.CompW))
			})

			It("should decode vdiv with source and temp lanes", func() {
				inst := decoder.Decode(vuSpecial2(1<<2|0, 2, 1, 0x38), 0)

				Expect(inst.Op).To(Equal(insts.OpVDIV))
				Expect(inst.Reg1).To(Equal(insts.RegVUQ))
				Expect(inst.Reg2).To(Equal(insts.VF(1)))
				Expect(inst.Reg3).To(Equal(insts.VF(2)))
				Expect(inst.Source).To(Equal(insts.CompX))
				Expect(inst.Temp).To(Equal(insts.CompY))
			})

			It("should decode vsqrt with a temp lane", func() {
				inst := decoder.Decode(vuSpecial2(3<<2, 3, 0, 0x39), 0)

				Expect(inst.Op).To(Equal(insts.OpVSQRT))
				Expect(inst.Reg2).To(Equal(insts.VF(3)))
				Expect(inst.Temp).To(Equal(insts.CompW))
			})

			It("should decode vmtir it, fs.fsf", func() {
				inst := decoder.Decode(vuSpecial2(2, 1, 2, 0x3C), 0)

				Expect(inst.Op).To(Equal(insts.OpVMTIR))
				Expect(inst.Reg1).To(Equal(insts.VI(1)))
				Expect(inst.Reg2).To(Equal(insts.VF(2)))
				Expect(inst.Source).To(Equal(insts.CompZ))
			})

			It("should classify the queued transfers as load/store", func() {
				inst := decoder.Decode(vuSpecial2(0xF, 1, 2, 0x34), 0)

				Expect(inst.Op).To(Equal(insts.OpVLQI))
				Expect(inst.Kind).To(Equal(insts.KindLoadStore))
				Expect(inst.Reg1).To(Equal(insts.VF(1)))
				Expect(inst.Reg2).To(Equal(insts.VI(2)))
			})

			It("should decode vnop with no operands", func() {
				inst := decoder.Decode(vuSpecial2(0, 0, 0, 0x2F), 0)

				Expect(inst.Op).To(Equal(insts.OpVNOP))
				Expect(inst.Registers()).To(BeEmpty())
			})

			DescribeTable("conversions and moves",
				func(op2 uint32, op insts.Op) {
					inst := decoder.Decode(vuSpecial2(0xF, 1, 2, op2), 0)
					Expect(inst.Op).To(Equal(op))
					Expect(inst.Reg1).To(Equal(insts.VF(1)))
					Expect(inst.Reg2).To(Equal(insts.VF(2)))
				},
				Entry("vitof0", uint32(0x10), insts.OpVITOF0),
				Entry("vitof15", uint32(0x13), insts.OpVITOF15),
				Entry("vftoi4", uint32(0x15), insts.OpVFTOI4),
				Entry("vabs", uint32(0x1D), insts.OpVABS),
				Entry("vmove", uint32(0x30), insts.OpVMOVE),
				Entry("vmr32", uint32(0x31), insts.OpVMR32),
			)

			It("should leave unassigned op2 codes undefined", func() {
				Expect(decoder.Decode(vuSpecial2(0xF, 1, 2, 0x7F), 0).IsUndefined()).To(BeTrue())
				Expect(decoder.Decode(vuSpecial2(0xF, 1, 2, 0x2B), 0).IsUndefined()).To(BeTrue())
			})
		})

		It("should leave unassigned first-table codes undefined", func() {
			Expect(decoder.Decode(vuOp(0xF, 1, 2, 3, 0x33), 0).IsUndefined()).To(BeTrue())
		})
	})

	Describe("Undefined encodings", func() {
		It("should keep only the raw word for primary 0x3A", func() {
			word := iType(0x3A, 1, 2, 3)
			inst := decoder.Decode(word, 0x1000)

			Expect(inst).To(Equal(insts.Instruction{Word: word}))
			Expect(inst.Kind).To(Equal(insts.KindUndefined))
		})
	})

	Describe("Determinism", func() {
		It("should decode every word identically twice and never panic", func() {
			seed := uint32(0x12345678)
			for i := 0; i < 20000; i++ {
				seed = seed*1664525 + 1013904223
				addr := seed & 0x00FFFFFC
				var a, b insts.Instruction
				Expect(func() {
					a = decoder.Decode(seed, addr)
					b = decoder.Decode(seed, addr)
				}).NotTo(Panic())
				Expect(a).To(Equal(b))
			}
		})
	})
})
