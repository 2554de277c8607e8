package insts

import (
	"errors"
	"fmt"
)

// ErrRegisterIndex is the panic value cause when a register index falls
// outside its namespace. Valid encodings never produce one.
var ErrRegisterIndex = errors.New("register index out of range")

// Space identifies one of the disjoint register namespaces.
type Space uint8

// Register namespaces.
const (
	SpaceNone      Space = iota // absent operand
	SpaceGPR                    // general integer (128-bit) registers, lo/hi, pc, sa
	SpaceFPU                    // COP1 scalar float, accumulator, control, condition
	SpaceCOP0                   // system control coprocessor
	SpaceVUInt                  // VU0 integer registers, R, P
	SpaceVUFloat                // VU0 float registers, Q, ACC, I
	SpaceVUControl              // COP2 control registers, condition
)

var spaceNames = [...]string{
	SpaceNone:      "none",
	SpaceGPR:       "gpr",
	SpaceFPU:       "fpu",
	SpaceCOP0:      "cop0",
	SpaceVUInt:     "vi",
	SpaceVUFloat:   "vf",
	SpaceVUControl: "vcr",
}

func (s Space) String() string {
	if int(s) < len(spaceNames) {
		return spaceNames[s]
	}
	return fmt.Sprintf("space(%d)", uint8(s))
}

// Register is a (namespace, index) pair. The zero value is the absent
// register.
type Register struct {
	Space Space
	Index uint8
}

type regInfo struct {
	name  string
	width int // bytes
}

// Index layout inside each namespace.
const (
	gprLo = 32
	gprHi = 33
	gprPC = 34
	gprSA = 35

	fpuAcc     = 32
	fpuControl = 33 // $fcr0..$fcr31 occupy 33..64
	fpuCond    = 65

	cop0Control = 32 // control registers occupy 32..63
	cop0Cond    = 64

	viR = 16
	viP = 17

	vfQ   = 32
	vfACC = 33
	vfI   = 34

	vcrCond = 32
)

var gprNames = [32]string{
	"$zero", "$at", "$v0", "$v1", "$a0", "$a1", "$a2", "$a3",
	"$t0", "$t1", "$t2", "$t3", "$t4", "$t5", "$t6", "$t7",
	"$s0", "$s1", "$s2", "$s3", "$s4", "$s5", "$s6", "$s7",
	"$t8", "$t9", "$k0", "$k1", "$gp", "$sp", "$fp", "$ra",
}

var cop0Names = [32]string{
	"$Index", "$Random", "$EntryLo0", "$EntryLo1",
	"$Context", "$PageMask", "$Wired", "$cop0r7",
	"$BadVAddr", "$Count", "$EntryHi", "$Compare",
	"$Status", "$Cause", "$EPC", "$PRId",
	"$Config", "$cop0r17", "$cop0r18", "$cop0r19",
	"$cop0r20", "$cop0r21", "$cop0r22", "$BadPAddr",
	"$Debug", "$Perf", "$cop0r26", "$cop0r27",
	"$TagLo", "$TagHi", "$ErrorEPC", "$cop0r31",
}

var registerTables = buildRegisterTables()

func buildRegisterTables() [SpaceVUControl + 1][]regInfo {
	var t [SpaceVUControl + 1][]regInfo

	gpr := make([]regInfo, 0, 36)
	for _, n := range gprNames {
		gpr = append(gpr, regInfo{n, 16})
	}
	gpr = append(gpr,
		regInfo{"$lo", 16}, regInfo{"$hi", 16},
		regInfo{"$pc", 4}, regInfo{"$sa", 8})
	t[SpaceGPR] = gpr

	fpu := make([]regInfo, 0, 66)
	for i := 0; i < 32; i++ {
		fpu = append(fpu, regInfo{fmt.Sprintf("$f%d", i), 4})
	}
	fpu = append(fpu, regInfo{"$acc", 4})
	for i := 0; i < 31; i++ {
		fpu = append(fpu, regInfo{fmt.Sprintf("$fcr%d", i), 4})
	}
	fpu = append(fpu, regInfo{"$fcsr", 4}, regInfo{"$fcc", 1})
	t[SpaceFPU] = fpu

	cop0 := make([]regInfo, 0, 65)
	for _, n := range cop0Names {
		cop0 = append(cop0, regInfo{n, 4})
	}
	for i := 0; i < 32; i++ {
		cop0 = append(cop0, regInfo{fmt.Sprintf("$ccr%d", i), 4})
	}
	cop0 = append(cop0, regInfo{"$c0cond", 1})
	t[SpaceCOP0] = cop0

	vi := make([]regInfo, 0, 18)
	for i := 0; i < 16; i++ {
		vi = append(vi, regInfo{fmt.Sprintf("$vi%d", i), 2})
	}
	vi = append(vi, regInfo{"$R", 4}, regInfo{"$P", 4})
	t[SpaceVUInt] = vi

	vf := make([]regInfo, 0, 35)
	for i := 0; i < 32; i++ {
		vf = append(vf, regInfo{fmt.Sprintf("$vf%d", i), 16})
	}
	vf = append(vf, regInfo{"$Q", 4}, regInfo{"$ACC", 16}, regInfo{"$I", 4})
	t[SpaceVUFloat] = vf

	vcr := make([]regInfo, 0, 33)
	for i := 0; i < 32; i++ {
		vcr = append(vcr, regInfo{fmt.Sprintf("$vcr%d", i), 4})
	}
	vcr = append(vcr, regInfo{"$c2cond", 1})
	t[SpaceVUControl] = vcr

	return t
}

func mustRegister(s Space, index uint32, limit uint32) Register {
	if index >= limit {
		panic(fmt.Errorf("%w: %s index %d (limit %d)", ErrRegisterIndex, s, index, limit))
	}
	return Register{Space: s, Index: uint8(index)}
}

// GPR returns general-purpose register i (0-31).
func GPR(i uint32) Register { return mustRegister(SpaceGPR, i, 32) }

// FPR returns scalar float register $f<i> (0-31).
func FPR(i uint32) Register { return mustRegister(SpaceFPU, i, 32) }

// FCR returns FPU control register i (0-31).
func FCR(i uint32) Register {
	r := mustRegister(SpaceFPU, i, 32)
	r.Index += fpuControl
	return r
}

// COP0 returns system control register i (0-31).
func COP0(i uint32) Register { return mustRegister(SpaceCOP0, i, 32) }

// COP0Control returns COP0 control register i (0-31).
func COP0Control(i uint32) Register {
	r := mustRegister(SpaceCOP0, i, 32)
	r.Index += cop0Control
	return r
}

// VI returns VU integer register $vi<i> (0-15).
func VI(i uint32) Register { return mustRegister(SpaceVUInt, i, 16) }

// VF returns VU float register $vf<i> (0-31).
func VF(i uint32) Register { return mustRegister(SpaceVUFloat, i, 32) }

// VCR returns COP2 control register i (0-31).
func VCR(i uint32) Register { return mustRegister(SpaceVUControl, i, 32) }

// Well-known registers.
var (
	RegZero = Register{SpaceGPR, 0}
	RegAT   = Register{SpaceGPR, 1}
	RegGP   = Register{SpaceGPR, 28}
	RegSP   = Register{SpaceGPR, 29}
	RegFP   = Register{SpaceGPR, 30}
	RegRA   = Register{SpaceGPR, 31}
	RegLo   = Register{SpaceGPR, gprLo}
	RegHi   = Register{SpaceGPR, gprHi}
	RegPC   = Register{SpaceGPR, gprPC}
	RegSA   = Register{SpaceGPR, gprSA}

	RegFPUAcc  = Register{SpaceFPU, fpuAcc}
	RegFCSR    = Register{SpaceFPU, fpuControl + 31}
	RegFPUCond = Register{SpaceFPU, fpuCond}

	RegStatus   = Register{SpaceCOP0, 12}
	RegEPC      = Register{SpaceCOP0, 14}
	RegErrorEPC = Register{SpaceCOP0, 30}
	RegCOP0Cond = Register{SpaceCOP0, cop0Cond}

	RegVUR = Register{SpaceVUInt, viR}
	RegVUP = Register{SpaceVUInt, viP}

	RegVUQ   = Register{SpaceVUFloat, vfQ}
	RegVUACC = Register{SpaceVUFloat, vfACC}
	RegVUI   = Register{SpaceVUFloat, vfI}

	RegCMSAR0   = Register{SpaceVUControl, 27}
	RegCOP2Cond = Register{SpaceVUControl, vcrCond}
)

// LinkRegister and StackPointer are the ABI roles the classifier and
// callers rely on.
var (
	LinkRegister = RegRA
	StackPointer = RegSP
)

// IsValid reports whether r names a register rather than an absent operand.
func (r Register) IsValid() bool {
	return r.Space != SpaceNone
}

// IsZero reports whether r is the hardwired $zero register.
func (r Register) IsZero() bool {
	return r == RegZero
}

func (r Register) info() regInfo {
	if r.Space == SpaceNone || int(r.Space) >= len(registerTables) {
		panic(fmt.Errorf("%w: no namespace %s", ErrRegisterIndex, r.Space))
	}
	table := registerTables[r.Space]
	if int(r.Index) >= len(table) {
		panic(fmt.Errorf("%w: %s index %d (limit %d)",
			ErrRegisterIndex, r.Space, r.Index, len(table)))
	}
	return table[r.Index]
}

// Name returns the assembler name of the register.
func (r Register) Name() string {
	return r.info().name
}

// Width returns the register width in bytes.
func (r Register) Width() int {
	return r.info().width
}

func (r Register) String() string {
	if !r.IsValid() {
		return "<none>"
	}
	return r.Name()
}

// Registers returns every register of a namespace in index order.
func Registers(s Space) []Register {
	if s == SpaceNone || int(s) >= len(registerTables) {
		return nil
	}
	regs := make([]Register, len(registerTables[s]))
	for i := range regs {
		regs[i] = Register{Space: s, Index: uint8(i)}
	}
	return regs
}
