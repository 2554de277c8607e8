// Package ir defines the intermediate representation produced by the
// lifter: side-effect free expressions and the operations that consume
// them. Every node prints in a compact, LLIL-like notation.
package ir

import (
	"fmt"
	"math"
	"strings"

	"github.com/sarchlab/eelift/insts"
)

// Expr is a value-producing node.
type Expr interface {
	fmt.Stringer
	exprNode()
}

// Op is a statement-level node.
type Op interface {
	fmt.Stringer
	opNode()
}

// Const is an integer constant of Size bytes.
type Const struct {
	Size  int
	Value int64
}

func (c Const) String() string {
	switch {
	case c.Value > -10 && c.Value < 10:
		return fmt.Sprintf("%d", c.Value)
	case c.Value < 0 && c.Value != math.MinInt64:
		return fmt.Sprintf("-0x%x", -c.Value)
	default:
		return fmt.Sprintf("0x%x", uint64(c.Value))
	}
}

// FloatConst is an IEEE single or double constant.
type FloatConst struct {
	Size  int
	Value float64
}

func (c FloatConst) String() string { return fmt.Sprintf("%gf", c.Value) }

// Reg reads the low Size bytes of a register.
type Reg struct {
	Reg  insts.Register
	Size int
}

func (r Reg) String() string { return r.Reg.Name() }

// Slice reads Size bytes of a register starting Offset bytes above its
// least significant byte. VU lanes are 4-byte slices.
type Slice struct {
	Reg    insts.Register
	Offset int
	Size   int
}

func (s Slice) String() string { return sliceName(s.Reg, s.Offset, s.Size) }

func sliceName(r insts.Register, offset, size int) string {
	if r.Space == insts.SpaceVUFloat && r.Width() == 16 && size == 4 && offset%4 == 0 {
		return r.Name() + "." + "xyzw"[offset/4:offset/4+1]
	}
	return fmt.Sprintf("%s[%d:%d]", r.Name(), offset, offset+size)
}

// Temp is a lifter-local scratch value.
type Temp struct {
	Index int
}

func (t Temp) String() string { return fmt.Sprintf("temp%d", t.Index) }

// Binary applies a two-operand operator at Size bytes.
type Binary struct {
	Op          BinaryOp
	Size        int
	Left, Right Expr
}

func (b Binary) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right)
}

// Unary applies a one-operand operator at Size bytes.
type Unary struct {
	Op    UnaryOp
	Size  int
	Value Expr
}

func (u Unary) String() string { return fmt.Sprintf("%s(%s)", u.Op, u.Value) }

// Compare yields 1 when the relation holds and 0 otherwise.
type Compare struct {
	Cond        Condition
	Size        int
	Left, Right Expr
}

func (c Compare) String() string {
	return fmt.Sprintf("(%s %s %s)", c.Left, c.Cond, c.Right)
}

// Select picks True when Cond is non-zero and False otherwise.
type Select struct {
	Cond, True, False Expr
}

func (s Select) String() string {
	return fmt.Sprintf("(%s ? %s : %s)", s.Cond, s.True, s.False)
}

// Load reads Size bytes of memory at Addr.
type Load struct {
	Size int
	Addr Expr
}

func (l Load) String() string { return fmt.Sprintf("[%s].%d", l.Addr, l.Size) }

// Extend widens Value to Size bytes.
type Extend struct {
	Signed bool
	Size   int
	Value  Expr
}

func (e Extend) String() string {
	kind := "zx"
	if e.Signed {
		kind = "sx"
	}
	return fmt.Sprintf("%s.%d(%s)", kind, e.Size, e.Value)
}

// Low truncates Value to its low Size bytes.
type Low struct {
	Size  int
	Value Expr
}

func (l Low) String() string { return fmt.Sprintf("low.%d(%s)", l.Size, l.Value) }

// ConvertKind is the direction of a Convert.
type ConvertKind uint8

// Conversion directions.
const (
	IntToFloat ConvertKind = iota
	FloatToInt
)

// Convert moves a value between the integer and float domains. FracBits
// is the fixed-point scale of the integer side.
type Convert struct {
	Kind     ConvertKind
	Size     int
	FracBits int
	Value    Expr
}

func (c Convert) String() string {
	name := "itof"
	if c.Kind == FloatToInt {
		name = "ftoi"
	}
	if c.FracBits != 0 {
		return fmt.Sprintf("%s%d(%s)", name, c.FracBits, c.Value)
	}
	return fmt.Sprintf("%s(%s)", name, c.Value)
}

func (Const) exprNode()      {}
func (FloatConst) exprNode() {}
func (Reg) exprNode()        {}
func (Slice) exprNode()      {}
func (Temp) exprNode()       {}
func (Binary) exprNode()     {}
func (Unary) exprNode()      {}
func (Compare) exprNode()    {}
func (Select) exprNode()     {}
func (Load) exprNode()       {}
func (Extend) exprNode()     {}
func (Low) exprNode()        {}
func (Convert) exprNode()    {}

// SetReg writes Value to the low Size bytes of Reg.
type SetReg struct {
	Reg   insts.Register
	Size  int
	Value Expr
}

func (s SetReg) String() string { return fmt.Sprintf("%s = %s", s.Reg.Name(), s.Value) }

// SetSlice writes Value to Size bytes of Reg at Offset.
type SetSlice struct {
	Reg    insts.Register
	Offset int
	Size   int
	Value  Expr
}

func (s SetSlice) String() string {
	return fmt.Sprintf("%s = %s", sliceName(s.Reg, s.Offset, s.Size), s.Value)
}

// SetTemp binds a scratch value.
type SetTemp struct {
	Temp  Temp
	Value Expr
}

func (s SetTemp) String() string { return fmt.Sprintf("%s = %s", s.Temp, s.Value) }

// Store writes Size bytes of Value to memory at Addr.
type Store struct {
	Size  int
	Addr  Expr
	Value Expr
}

func (s Store) String() string {
	return fmt.Sprintf("[%s].%d = %s", s.Addr, s.Size, s.Value)
}

// If runs Then when Cond is non-zero and Else otherwise.
type If struct {
	Cond Expr
	Then []Op
	Else []Op
}

func (i If) String() string {
	s := fmt.Sprintf("if %s { %s }", i.Cond, join(i.Then))
	if len(i.Else) > 0 {
		s += fmt.Sprintf(" else { %s }", join(i.Else))
	}
	return s
}

// Jump transfers control to Target.
type Jump struct {
	Target Expr
}

func (j Jump) String() string { return fmt.Sprintf("jump(%s)", j.Target) }

// Call transfers control to Target and returns to the instruction after
// the delay slot.
type Call struct {
	Target Expr
}

func (c Call) String() string { return fmt.Sprintf("call(%s)", c.Target) }

// Return leaves the current function through Target.
type Return struct {
	Target Expr
}

func (r Return) String() string { return fmt.Sprintf("return(%s)", r.Target) }

// Syscall enters the kernel.
type Syscall struct{}

func (Syscall) String() string { return "syscall" }

// Trap raises a breakpoint or conditional trap exception.
type Trap struct {
	Code int64
}

func (t Trap) String() string { return fmt.Sprintf("trap(%d)", t.Code) }

// Intrinsic is a named effect with no IR expansion.
type Intrinsic struct {
	Name    string
	Outputs []insts.Register
	Args    []Expr
}

func (i Intrinsic) String() string {
	args := make([]string, len(i.Args))
	for n, a := range i.Args {
		args[n] = a.String()
	}
	call := fmt.Sprintf("%s(%s)", i.Name, strings.Join(args, ", "))
	if len(i.Outputs) == 0 {
		return call
	}
	outs := make([]string, len(i.Outputs))
	for n, r := range i.Outputs {
		outs[n] = r.Name()
	}
	return strings.Join(outs, ", ") + " = " + call
}

// Nop has no effect.
type Nop struct{}

func (Nop) String() string { return "nop" }

// Unimplemented marks an instruction whose semantics are not modeled.
// Analyses must stop at it.
type Unimplemented struct {
	Mnemonic string
}

func (u Unimplemented) String() string {
	return fmt.Sprintf("unimplemented(%s)", u.Mnemonic)
}

func (SetReg) opNode()        {}
func (SetSlice) opNode()      {}
func (SetTemp) opNode()       {}
func (Store) opNode()         {}
func (If) opNode()            {}
func (Jump) opNode()          {}
func (Call) opNode()          {}
func (Return) opNode()        {}
func (Syscall) opNode()       {}
func (Trap) opNode()          {}
func (Intrinsic) opNode()     {}
func (Nop) opNode()           {}
func (Unimplemented) opNode() {}

func join(ops []Op) string {
	parts := make([]string, len(ops))
	for i, op := range ops {
		parts[i] = op.String()
	}
	return strings.Join(parts, "; ")
}
