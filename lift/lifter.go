// Package lift lowers decoded Emotion Engine instructions to IR.
//
// A Lifter lowers one instruction at a time. Branches also take their
// delay-slot successor, whose effects are placed where the pipeline would
// apply them: before the branch decision for ordinary branches and on the
// taken path only for likely branches.
package lift

import (
	"fmt"

	"github.com/sarchlab/eelift/insts"
	"github.com/sarchlab/eelift/ir"
)

// CodeReader supplies little-endian code words.
type CodeReader interface {
	ReadU32(addr uint32) (uint32, error)
}

// Lifter lowers instructions to IR. It holds no per-call state and is
// safe for concurrent use.
type Lifter struct {
	decoder *insts.Decoder
}

// NewLifter creates a Lifter.
func NewLifter() *Lifter {
	return &Lifter{decoder: insts.NewDecoder()}
}

// Lift lowers inst located at addr. delay is the instruction at addr+4;
// it is consumed only when inst has a delay slot and may be nil.
//
// Lift never panics on decoded input and never returns an empty slice.
// Instructions without a lifting rule yield a single ir.Unimplemented.
func (l *Lifter) Lift(inst insts.Instruction, addr uint32, delay *insts.Instruction) []ir.Op {
	temps := 0
	return l.lift(inst, addr, delay, &temps)
}

// LiftAt decodes and lifts the instruction at addr, reading the delay
// slot when there is one. It returns the number of bytes consumed.
func (l *Lifter) LiftAt(r CodeReader, addr uint32) ([]ir.Op, uint32, error) {
	word, err := r.ReadU32(addr)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read instruction at 0x%08x: %w", addr, err)
	}

	inst := l.decoder.Decode(word, addr)
	if !insts.HasDelaySlot(inst) {
		return l.Lift(inst, addr, nil), insts.Size, nil
	}

	next, err := r.ReadU32(addr + insts.Size)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read delay slot at 0x%08x: %w", addr+insts.Size, err)
	}
	delay := l.decoder.Decode(next, addr+insts.Size)

	return l.Lift(inst, addr, &delay), insts.MaxLength, nil
}

func (l *Lifter) lift(
	inst insts.Instruction,
	addr uint32,
	delay *insts.Instruction,
	temps *int,
) []ir.Op {
	if inst.Op.IsPseudo() {
		// Display forms lift as the encoding they were derived from.
		raw := l.decoder.Decode(inst.Word, addr)
		if insts.Normalize(raw) != inst {
			return []ir.Op{ir.Unimplemented{Mnemonic: inst.Mnemonic()}}
		}
		inst = raw
	}

	b := newBuilder(inst, addr, temps)

	switch inst.Kind {
	case insts.KindUndefined:
		b.unimplemented()
	case insts.KindBranch:
		l.liftBranch(b, delay)
	default:
		b.liftOne()
	}

	if len(b.ops) == 0 {
		b.emit(ir.Nop{})
	}
	return b.ops
}

// liftDelay lowers a delay-slot instruction. A branch in a delay slot has
// undefined behavior on the R5900 and is not modeled.
func (l *Lifter) liftDelay(d insts.Instruction, addr uint32, temps *int) []ir.Op {
	if d.Kind == insts.KindBranch {
		return []ir.Op{ir.Unimplemented{Mnemonic: d.Mnemonic()}}
	}
	return l.lift(d, addr, nil, temps)
}

func (b *builder) liftOne() {
	handled := b.liftALU() ||
		b.liftMemory() ||
		b.liftCoprocessor() ||
		b.liftFPU() ||
		b.liftMMI() ||
		b.liftVU()
	if !handled {
		b.unimplemented()
	}
}
