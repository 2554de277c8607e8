// Package insts decodes Emotion Engine (R5900) machine code.
//
// It covers the MIPS III base set, the EE multimedia (MMI) extension, COP0,
// the COP1 single-precision FPU and the VU0 macro-mode instructions issued
// through COP2. Decoding is table driven and total: every 32-bit word yields
// an Instruction, with KindUndefined for encodings that mean nothing.
//
// Usage:
//
//	decoder := insts.NewDecoder()
//	inst := decoder.Decode(0x24020005, 0x00100000) // addiu $v0, $zero, 5
//	inst = insts.Normalize(inst)                   // li $v0, 5
//	flow := insts.Classify(inst, 0x00100000)
package insts
