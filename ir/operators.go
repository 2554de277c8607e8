package ir

import "fmt"

// BinaryOp is a two-operand operator.
type BinaryOp uint8

// Binary operators. Saturating ops clamp to the lane range.
const (
	Add BinaryOp = iota
	Sub
	Mul
	MulU
	DivS
	DivU
	ModS
	ModU
	And
	Or
	Xor
	Shl
	Lsr
	Asr
	AddSatS
	AddSatU
	SubSatS
	SubSatU
	MaxS
	MinS
	FAdd
	FSub
	FMul
	FDiv
	FMax
	FMin
)

var binaryNames = [...]string{
	Add:     "+",
	Sub:     "-",
	Mul:     "*",
	MulU:    "*u",
	DivS:    "/s",
	DivU:    "/u",
	ModS:    "mod",
	ModU:    "modu",
	And:     "&",
	Or:      "|",
	Xor:     "^",
	Shl:     "<<",
	Lsr:     ">>",
	Asr:     ">>s",
	AddSatS: "+sat",
	AddSatU: "+usat",
	SubSatS: "-sat",
	SubSatU: "-usat",
	MaxS:    "max",
	MinS:    "min",
	FAdd:    "f+",
	FSub:    "f-",
	FMul:    "f*",
	FDiv:    "f/",
	FMax:    "fmax",
	FMin:    "fmin",
}

func (o BinaryOp) String() string {
	if int(o) < len(binaryNames) {
		return binaryNames[o]
	}
	return fmt.Sprintf("binop(%d)", uint8(o))
}

// UnaryOp is a one-operand operator.
type UnaryOp uint8

// Unary operators.
const (
	Neg UnaryOp = iota
	Not
	Abs
	FNeg
	FAbs
	FSqrt
)

var unaryNames = [...]string{
	Neg:   "neg",
	Not:   "not",
	Abs:   "abs",
	FNeg:  "fneg",
	FAbs:  "fabs",
	FSqrt: "fsqrt",
}

func (o UnaryOp) String() string {
	if int(o) < len(unaryNames) {
		return unaryNames[o]
	}
	return fmt.Sprintf("unop(%d)", uint8(o))
}

// Condition is a comparison relation.
type Condition uint8

// Comparison relations. The S and U suffixes pick signed or unsigned order.
const (
	Eq Condition = iota
	Ne
	LtS
	LtU
	LeS
	GtS
	GeS
	FEq
	FLt
	FLe
)

var conditionNames = [...]string{
	Eq:  "==",
	Ne:  "!=",
	LtS: "<s",
	LtU: "<u",
	LeS: "<=s",
	GtS: ">s",
	GeS: ">=s",
	FEq: "f==",
	FLt: "f<",
	FLe: "f<=",
}

func (c Condition) String() string {
	if int(c) < len(conditionNames) {
		return conditionNames[c]
	}
	return fmt.Sprintf("cond(%d)", uint8(c))
}
