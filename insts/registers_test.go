package insts_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/eelift/insts"
)

// recoverErr runs f and returns the error it panicked with.
func recoverErr(f func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err, _ = r.(error)
		}
	}()
	f()
	return nil
}

var _ = Describe("Registers", func() {
	DescribeTable("names and widths",
		func(r insts.Register, name string, width int) {
			Expect(r.Name()).To(Equal(name))
			Expect(r.Width()).To(Equal(width))
		},
		Entry("zero", insts.GPR(0), "$zero", 16),
		Entry("ra", insts.GPR(31), "$ra", 16),
		Entry("lo", insts.RegLo, "$lo", 16),
		Entry("pc", insts.RegPC, "$pc", 4),
		Entry("sa", insts.RegSA, "$sa", 8),
		Entry("f31", insts.FPR(31), "$f31", 4),
		Entry("fpu acc", insts.RegFPUAcc, "$acc", 4),
		Entry("fcsr", insts.FCR(31), "$fcsr", 4),
		Entry("fcc", insts.RegFPUCond, "$fcc", 1),
		Entry("status", insts.COP0(12), "$Status", 4),
		Entry("vi15", insts.VI(15), "$vi15", 2),
		Entry("vf7", insts.VF(7), "$vf7", 16),
		Entry("Q", insts.RegVUQ, "$Q", 4),
		Entry("ACC", insts.RegVUACC, "$ACC", 16),
		Entry("vcr27", insts.VCR(27), "$vcr27", 4),
	)

	It("should keep namespaces disjoint", func() {
		Expect(insts.GPR(1)).NotTo(Equal(insts.FPR(1)))
		Expect(insts.VI(1)).NotTo(Equal(insts.VF(1)))
		Expect(insts.FPR(0)).NotTo(Equal(insts.FCR(0)))
		Expect(insts.COP0(0)).NotTo(Equal(insts.COP0Control(0)))
	})

	It("should treat the zero value as absent", func() {
		var r insts.Register
		Expect(r.IsValid()).To(BeFalse())
		Expect(r.String()).To(Equal("<none>"))
		Expect(insts.RegZero.IsZero()).To(BeTrue())
		Expect(insts.GPR(0)).To(Equal(insts.RegZero))
	})

	It("should reject out-of-range indices", func() {
		err := recoverErr(func() { insts.VI(16) })
		Expect(errors.Is(err, insts.ErrRegisterIndex)).To(BeTrue())

		err = recoverErr(func() { insts.GPR(32) })
		Expect(errors.Is(err, insts.ErrRegisterIndex)).To(BeTrue())

		err = recoverErr(func() { _ = insts.Register{Space: insts.SpaceGPR, Index: 99}.Name() })
		Expect(errors.Is(err, insts.ErrRegisterIndex)).To(BeTrue())
	})

	It("should enumerate each namespace", func() {
		Expect(insts.Registers(insts.SpaceGPR)).To(HaveLen(36))
		Expect(insts.Registers(insts.SpaceFPU)).To(HaveLen(66))
		Expect(insts.Registers(insts.SpaceVUInt)).To(HaveLen(18))
		Expect(insts.Registers(insts.SpaceVUFloat)).To(HaveLen(35))
		Expect(insts.Registers(insts.SpaceNone)).To(BeNil())
	})

	It("should expose the ABI roles", func() {
		Expect(insts.LinkRegister.Name()).To(Equal("$ra"))
		Expect(insts.StackPointer.Name()).To(Equal("$sp"))
	})
})
