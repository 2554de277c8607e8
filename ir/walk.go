package ir

import (
	"strings"

	"github.com/sarchlab/eelift/insts"
)

// Walk visits ops depth first, descending into both arms of every If.
// Returning false from fn stops the walk.
func Walk(ops []Op, fn func(Op) bool) bool {
	for _, op := range ops {
		if !fn(op) {
			return false
		}
		if branch, ok := op.(If); ok {
			if !Walk(branch.Then, fn) || !Walk(branch.Else, fn) {
				return false
			}
		}
	}
	return true
}

// WalkExpr visits e and its operands depth first.
func WalkExpr(e Expr, fn func(Expr) bool) bool {
	if e == nil {
		return true
	}
	if !fn(e) {
		return false
	}

	switch n := e.(type) {
	case Binary:
		return WalkExpr(n.Left, fn) && WalkExpr(n.Right, fn)
	case Unary:
		return WalkExpr(n.Value, fn)
	case Compare:
		return WalkExpr(n.Left, fn) && WalkExpr(n.Right, fn)
	case Select:
		return WalkExpr(n.Cond, fn) && WalkExpr(n.True, fn) && WalkExpr(n.False, fn)
	case Load:
		return WalkExpr(n.Addr, fn)
	case Extend:
		return WalkExpr(n.Value, fn)
	case Low:
		return WalkExpr(n.Value, fn)
	case Convert:
		return WalkExpr(n.Value, fn)
	}
	return true
}

// Reads reports whether e reads any part of r.
func Reads(e Expr, r insts.Register) bool {
	found := false
	WalkExpr(e, func(n Expr) bool {
		switch n := n.(type) {
		case Reg:
			found = n.Reg == r
		case Slice:
			found = n.Reg == r
		}
		return !found
	})
	return found
}

// Written returns every register the ops may write, in first-write order.
func Written(ops []Op) []insts.Register {
	var regs []insts.Register
	seen := make(map[insts.Register]bool)
	add := func(r insts.Register) {
		if !seen[r] {
			seen[r] = true
			regs = append(regs, r)
		}
	}

	Walk(ops, func(op Op) bool {
		switch op := op.(type) {
		case SetReg:
			add(op.Reg)
		case SetSlice:
			add(op.Reg)
		case Intrinsic:
			for _, r := range op.Outputs {
				add(r)
			}
		}
		return true
	})
	return regs
}

// IsUnimplemented reports whether the ops contain an Unimplemented marker.
func IsUnimplemented(ops []Op) bool {
	return !Walk(ops, func(op Op) bool {
		_, ok := op.(Unimplemented)
		return !ok
	})
}

// Format renders ops one per line.
func Format(ops []Op) string {
	var sb strings.Builder
	for _, op := range ops {
		sb.WriteString(op.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
