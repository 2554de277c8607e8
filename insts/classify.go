package insts

import (
	"errors"
	"fmt"
)

// ErrMissingTarget is the panic cause when a Branch-kind instruction that
// needs a static target carries none. It points at a decoder table bug.
var ErrMissingTarget = errors.New("branch instruction has no target")

// BranchKind is the control-flow effect of an instruction.
type BranchKind uint8

// Branch kinds.
const (
	FlowNone BranchKind = iota
	FlowUnconditional
	FlowConditionalPair
	FlowCall
	FlowIndirectCall
	FlowReturn
	FlowIndirectJump
	FlowSystemCall
	FlowExceptionReturn
)

var branchKindNames = [...]string{
	FlowNone:            "none",
	FlowUnconditional:   "jump",
	FlowConditionalPair: "cond",
	FlowCall:            "call",
	FlowIndirectCall:    "icall",
	FlowReturn:          "ret",
	FlowIndirectJump:    "ijump",
	FlowSystemCall:      "syscall",
	FlowExceptionReturn: "eret",
}

func (k BranchKind) String() string {
	if int(k) < len(branchKindNames) {
		return branchKindNames[k]
	}
	return fmt.Sprintf("flow(%d)", uint8(k))
}

// Flow is the classifier result. Target is meaningful for
// FlowUnconditional, FlowConditionalPair and FlowCall. FalseTarget is the
// fall-through of a FlowConditionalPair.
type Flow struct {
	Kind        BranchKind
	Target      uint32
	FalseTarget uint32
}

// HasTarget reports whether the flow carries a static destination.
func (f Flow) HasTarget() bool {
	switch f.Kind {
	case FlowUnconditional, FlowConditionalPair, FlowCall:
		return true
	}
	return false
}

// Classify returns the control-flow effect of inst located at addr.
// Anything that is not KindBranch is FlowNone, including the traps
// break and teq.
func Classify(inst Instruction, addr uint32) Flow {
	if inst.Kind != KindBranch {
		return Flow{}
	}

	switch inst.Op {
	case OpJR:
		if inst.Reg1 == LinkRegister {
			return Flow{Kind: FlowReturn}
		}
		return Flow{Kind: FlowIndirectJump}
	case OpJALR:
		return Flow{Kind: FlowIndirectCall}
	case OpSYSCALL:
		return Flow{Kind: FlowSystemCall}
	case OpERET:
		return Flow{Kind: FlowExceptionReturn}
	}

	if !inst.HasTarget {
		panic(fmt.Errorf("%w: %s at 0x%08x", ErrMissingTarget, inst.Op, addr))
	}

	switch {
	case isCall(inst):
		return Flow{Kind: FlowCall, Target: inst.Target}
	case isUnconditional(inst):
		return Flow{Kind: FlowUnconditional, Target: inst.Target}
	}

	return Flow{Kind: FlowConditionalPair, Target: inst.Target, FalseTarget: addr + 8}
}

func isCall(inst Instruction) bool {
	switch inst.Op {
	case OpJAL, OpBAL, OpBLTZAL, OpBGEZAL, OpBLTZALL, OpBGEZALL:
		return true
	}
	return false
}

func isUnconditional(inst Instruction) bool {
	switch inst.Op {
	case OpJ, OpB:
		return true
	case OpBEQ:
		return inst.Reg1.IsZero() && inst.Reg2.IsZero()
	}
	return false
}

// HasDelaySlot reports whether inst is followed by a delay slot. Every
// branch has one except syscall and eret.
func HasDelaySlot(inst Instruction) bool {
	if inst.Kind != KindBranch {
		return false
	}
	return inst.Op != OpSYSCALL && inst.Op != OpERET
}
