package disasm_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/eelift/disasm"
	"github.com/sarchlab/eelift/insts"
)

var _ = Describe("Render", func() {
	const addr = uint32(0x1000)

	var decoder *insts.Decoder

	BeforeEach(func() {
		decoder = insts.NewDecoder()
	})

	text := func(word uint32, opts disasm.Options) string {
		return disasm.Text(decoder.Decode(word, addr), opts)
	}

	DescribeTable("should render with pseudo-ops",
		func(word uint32, want string) {
			Expect(text(word, disasm.DefaultOptions())).To(Equal(want))
		},
		Entry("li", iType(0x09, 0, 2, 5), "li      $v0, 5"),
		Entry("negative hex", iType(0x09, 29, 29, 0xFFE0), "addiu   $sp, $sp, -0x20"),
		Entry("memory operand", iType(0x23, 29, 4, 16), "lw      $a0, 0x10($sp)"),
		Entry("branch target", iType(0x04, 4, 5, 2), "beq     $a0, $a1, 0x0000100c"),
		Entry("beqz", iType(0x04, 4, 0, 2), "beqz    $a0, 0x0000100c"),
		Entry("jr", uint32(0x03E00008), "jr      $ra"),
		Entry("nop", uint32(0), "nop"),
		Entry("move", rType(5, 0, 4, 0, 0x25), "move    $a0, $a1"),
		Entry("undefined", uint32(0x3A<<26), ".word   0xe8000000"),
		Entry("vu broadcast", vuOp(0xE, 3, 2, 1, 0x01), "vaddy.xyz $vf1, $vf2, $vf3y"),
		Entry("vu post-increment", vuSpecial2(0xF, 1, 2, 0x34), "vlqi.xyzw $vf1, ($vi2++)"),
		Entry("vu pre-decrement", vuSpecial2(0xF, 1, 2, 0x36), "vlqd.xyzw $vf1, (--$vi2)"),
		Entry("vdiv lanes", vuSpecial2(0x4, 2, 1, 0x38), "vdiv    $Q, $vf1x, $vf2y"),
	)

	It("should render raw forms without pseudo-ops", func() {
		Expect(text(iType(0x09, 0, 2, 5), disasm.Options{HexThreshold: 10})).To(Equal("addiu   $v0, $zero, 5"))
	})

	It("should honour the hex threshold", func() {
		Expect(text(iType(0x23, 29, 4, 16), disasm.Options{HexThreshold: 100})).To(Equal("lw      $a0, 16($sp)"))
	})

	It("should tag tokens", func() {
		tokens := disasm.Tokens(decoder.Decode(iType(0x23, 29, 4, 16), addr), disasm.DefaultOptions())
		kinds := make([]disasm.TokenKind, len(tokens))
		for i, t := range tokens {
			kinds[i] = t.Kind
		}
		Expect(kinds).To(Equal([]disasm.TokenKind{
			disasm.TokenMnemonic,
			disasm.TokenRegister,
			disasm.TokenSeparator,
			disasm.TokenInteger,
			disasm.TokenBeginMemory,
			disasm.TokenRegister,
			disasm.TokenEndMemory,
		}))
	})

	It("should prefix listing lines with the address and word", func() {
		Expect(disasm.Line(addr, decoder.Decode(0x03E00008, addr), disasm.DefaultOptions())).
			To(Equal("00001000:  03e00008  jr      $ra"))
	})
})
