package insts

// Field extractors. All of them are total over any 32-bit word.

// Opcode returns the primary opcode, bits [31:26].
func Opcode(w uint32) uint32 { return w >> 26 }

// Rs returns bits [25:21].
func Rs(w uint32) uint32 { return (w >> 21) & 0x1F }

// Rt returns bits [20:16].
func Rt(w uint32) uint32 { return (w >> 16) & 0x1F }

// Rd returns bits [15:11].
func Rd(w uint32) uint32 { return (w >> 11) & 0x1F }

// Shamt returns the shift amount, bits [10:6].
func Shamt(w uint32) uint32 { return (w >> 6) & 0x1F }

// Funct returns the function code, bits [5:0].
func Funct(w uint32) uint32 { return w & 0x3F }

// Imm16 returns bits [15:0] sign-extended.
func Imm16(w uint32) int32 { return int32(int16(w)) }

// UImm16 returns bits [15:0] zero-extended.
func UImm16(w uint32) uint32 { return w & 0xFFFF }

// Target26 returns the jump target field, bits [25:0].
func Target26(w uint32) uint32 { return w & 0x3FFFFFF }

// BranchTarget resolves a PC-relative branch at addr.
func BranchTarget(w, addr uint32) uint32 {
	return addr + 4 + uint32(Imm16(w))<<2
}

// JumpTarget resolves a j/jal target at addr. The high nibble comes from
// the delay slot address.
func JumpTarget(w, addr uint32) uint32 {
	return ((addr + 4) & 0xF0000000) | Target26(w)<<2
}

// VU macro-mode fields.

// Broadcast returns the broadcast lane selector, bits [1:0].
func Broadcast(w uint32) uint32 { return w & 0x3 }

// DestMask returns the destination lane mask, bits [24:21]. Bit 3 is x.
func DestMask(w uint32) uint32 { return (w >> 21) & 0xF }

// SourceComp returns the fs lane selector (fsf), bits [22:21].
func SourceComp(w uint32) uint32 { return (w >> 21) & 0x3 }

// TempComp returns the ft lane selector (ftf), bits [24:23].
func TempComp(w uint32) uint32 { return (w >> 23) & 0x3 }

// VUImm5 returns bits [9:5].
func VUImm5(w uint32) uint32 { return (w >> 5) & 0x1F }

// VUImm11 returns the microprogram offset, bits [10:0] sign-extended.
func VUImm11(w uint32) int32 { return int32(w<<21) >> 21 }

// VUImm15 returns the vcallms immediate, bits [20:6].
func VUImm15(w uint32) uint32 { return (w >> 6) & 0x7FFF }

// VUFd returns bits [10:6].
func VUFd(w uint32) uint32 { return (w >> 6) & 0x1F }

// VUFs returns bits [15:11].
func VUFs(w uint32) uint32 { return (w >> 11) & 0x1F }

// VUFt returns bits [20:16].
func VUFt(w uint32) uint32 { return (w >> 16) & 0x1F }

// Op2 returns the special2 function code. The hardware scatters it as
// bits [1:0] | bits [10:6] << 2.
func Op2(w uint32) uint32 { return (w & 0x3) | ((w >> 4) & 0x7C) }

// signExtend5 widens a 5-bit two's complement value.
func signExtend5(v uint32) int32 { return int32(v<<27) >> 27 }
