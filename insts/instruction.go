package insts

// Kind classifies the effect of an instruction.
type Kind uint8

// Instruction kinds.
const (
	KindUndefined Kind = iota // failed to decode
	KindInteger               // ALU, moves, coprocessor transfers
	KindBranch                // any control transfer, including syscall and eret
	KindLoadStore             // indexed memory access
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindBranch:
		return "branch"
	case KindLoadStore:
		return "loadstore"
	default:
		return "undefined"
	}
}

// OperandKind tags the immediate operand.
type OperandKind uint8

// Operand kinds.
const (
	OperandNone OperandKind = iota
	OperandSigned
	OperandUnsigned
)

// Operand is an optional immediate value.
type Operand struct {
	Kind  OperandKind
	Value int64
}

// Present reports whether the operand carries a value.
func (o Operand) Present() bool { return o.Kind != OperandNone }

// Sense is the polarity of a coprocessor condition branch.
type Sense uint8

// Branch senses.
const (
	SenseNone Sense = iota
	SenseFalse
	SenseTrue
)

// Component selects a single VU lane. CompNone means the field is unused.
type Component uint8

// VU lanes.
const (
	CompNone Component = iota
	CompX
	CompY
	CompZ
	CompW
)

// Lane returns the 0-based lane index (x=0 ... w=3).
func (c Component) Lane() int { return int(c) - 1 }

// String returns the lane letter.
func (c Component) String() string {
	switch c {
	case CompX:
		return "x"
	case CompY:
		return "y"
	case CompZ:
		return "z"
	case CompW:
		return "w"
	}
	return ""
}

func component(v uint32) Component { return Component(v&3) + CompX }

// Lanes lists the lanes of a destination mask in x, y, z, w order.
// Mask bit 3 is x and bit 0 is w.
func Lanes(mask uint8) []Component {
	lanes := make([]Component, 0, 4)
	for i := 0; i < 4; i++ {
		if mask&(8>>i) != 0 {
			lanes = append(lanes, CompX+Component(i))
		}
	}
	return lanes
}

var destStrings = [16]string{
	"", "w", "z", "zw", "y", "yw", "yz", "yzw",
	"x", "xw", "xz", "xzw", "xy", "xyw", "xyz", "xyzw",
}

// DestString renders a destination mask as lane letters.
func DestString(mask uint8) string { return destStrings[mask&0xF] }

// Instruction is a decoded Emotion Engine instruction.
//
// Instructions are values. Decode and Normalize both return fresh copies,
// so no consumer can change what another consumer sees.
type Instruction struct {
	Op   Op
	Kind Kind

	// Operand registers. Reg1 is the primary destination when there is one.
	Reg1 Register
	Reg2 Register
	Reg3 Register

	Operand Operand

	// Branch fields.
	Target    uint32 // absolute target, valid when HasTarget
	HasTarget bool
	Likely    bool  // delay slot runs only when taken
	Sense     Sense // coprocessor condition branches

	// VU macro decoration.
	Dest      uint8     // destination lane mask, bit 3 = x
	Broadcast Component // single lane of the last operand
	Source    Component // fsf
	Temp      Component // ftf

	HexDisplay bool
	Word       uint32
}

// Mnemonic returns the canonical opcode name.
func (i Instruction) Mnemonic() string {
	return i.Op.String()
}

// IsUndefined reports whether the word failed to decode.
func (i Instruction) IsUndefined() bool {
	return i.Kind == KindUndefined
}

// Registers returns the populated operand registers in order.
func (i Instruction) Registers() []Register {
	regs := make([]Register, 0, 3)
	for _, r := range [...]Register{i.Reg1, i.Reg2, i.Reg3} {
		if r.IsValid() {
			regs = append(regs, r)
		}
	}
	return regs
}

// Size is the encoded length of every instruction.
const Size = 4

// MaxLength is the most bytes one lift consumes: a branch and its delay slot.
const MaxLength = 8
