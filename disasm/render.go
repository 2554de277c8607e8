// Package disasm renders decoded instructions as text and sweeps code
// ranges.
package disasm

import (
	"fmt"
	"strings"

	"github.com/sarchlab/eelift/insts"
)

// TokenKind labels a piece of rendered text.
type TokenKind uint8

// Token kinds.
const (
	TokenMnemonic TokenKind = iota
	TokenRegister
	TokenSeparator
	TokenInteger
	TokenAddress
	TokenBeginMemory
	TokenEndMemory
	TokenText
)

// Token is one piece of a rendered instruction.
type Token struct {
	Kind TokenKind
	Text string
}

// MnemonicWidth is the column width of the mnemonic.
const MnemonicWidth = 7

// Options control rendering.
type Options struct {
	// Pseudo renders the normalized display form.
	Pseudo bool
	// HexThreshold is the magnitude from which immediates print in hex.
	HexThreshold int64
}

// DefaultOptions renders pseudo-ops and switches to hex at 10.
func DefaultOptions() Options {
	return Options{Pseudo: true, HexThreshold: 10}
}

// Tokens renders inst. An undefined word renders as a .word directive.
func Tokens(inst insts.Instruction, opts Options) []Token {
	if inst.IsUndefined() {
		return []Token{
			{TokenMnemonic, fmt.Sprintf("%-*s ", MnemonicWidth, ".word")},
			{TokenInteger, fmt.Sprintf("0x%08x", inst.Word)},
		}
	}
	if opts.Pseudo {
		inst = insts.Normalize(inst)
	}

	r := renderer{inst: inst, opts: opts}
	r.add(TokenMnemonic, fmt.Sprintf("%-*s ", MnemonicWidth, mnemonic(inst)))

	switch {
	case inst.Op == insts.OpCACHE || inst.Op == insts.OpPREF:
		r.integer(int64(insts.Rt(inst.Word)))
		r.memory(inst.Reg2, inst.Operand.Value)
	case inst.Kind == insts.KindLoadStore && inst.Reg2.Space == insts.SpaceGPR:
		r.register(inst.Reg1, insts.CompNone)
		r.memory(inst.Reg2, inst.Operand.Value)
	case inst.Kind == insts.KindLoadStore:
		r.register(inst.Reg1, insts.CompNone)
		r.vuMemory(inst.Op, inst.Reg2)
	default:
		r.operands()
	}

	return stripTrailing(r.tokens)
}

// Text renders inst as a single string.
func Text(inst insts.Instruction, opts Options) string {
	var sb strings.Builder
	for _, t := range Tokens(inst, opts) {
		sb.WriteString(t.Text)
	}
	return sb.String()
}

// Line renders an address-prefixed listing line.
func Line(addr uint32, inst insts.Instruction, opts Options) string {
	return fmt.Sprintf("%08x:  %08x  %s", addr, inst.Word, Text(inst, opts))
}

// mnemonic folds the broadcast lane and dest mask into the op name:
// vaddbc with lane y and mask xyz renders as vaddy.xyz.
func mnemonic(inst insts.Instruction) string {
	name := inst.Mnemonic()
	if inst.Broadcast != insts.CompNone {
		name = strings.TrimSuffix(name, "bc") + inst.Broadcast.String()
	}
	if inst.Dest != 0 {
		name += "." + insts.DestString(inst.Dest)
	}
	return name
}

type renderer struct {
	inst   insts.Instruction
	opts   Options
	tokens []Token
}

func (r *renderer) add(kind TokenKind, text string) {
	r.tokens = append(r.tokens, Token{kind, text})
}

func (r *renderer) separate() {
	if len(r.tokens) > 1 {
		r.add(TokenSeparator, ", ")
	}
}

func (r *renderer) register(reg insts.Register, lane insts.Component) {
	if !reg.IsValid() {
		return
	}
	r.separate()
	name := reg.Name()
	if lane != insts.CompNone {
		name += lane.String()
	}
	r.add(TokenRegister, name)
}

func (r *renderer) integer(v int64) {
	r.separate()
	r.add(TokenInteger, r.formatInt(v))
}

func (r *renderer) formatInt(v int64) string {
	if v >= r.opts.HexThreshold || v <= -r.opts.HexThreshold {
		if v < 0 {
			return fmt.Sprintf("-0x%x", -v)
		}
		return fmt.Sprintf("0x%x", v)
	}
	return fmt.Sprintf("%d", v)
}

func (r *renderer) memory(base insts.Register, offset int64) {
	r.separate()
	r.add(TokenInteger, r.formatInt(offset))
	r.add(TokenBeginMemory, "(")
	r.add(TokenRegister, base.Name())
	r.add(TokenEndMemory, ")")
}

// vuMemory renders the VU integer-register addressing forms: (vi++) for
// post-increment, (--vi) for pre-decrement and (vi) otherwise.
func (r *renderer) vuMemory(op insts.Op, base insts.Register) {
	r.separate()
	r.add(TokenBeginMemory, "(")
	switch op {
	case insts.OpVLQD, insts.OpVSQD:
		r.add(TokenText, "--")
		r.add(TokenRegister, base.Name())
	case insts.OpVLQI, insts.OpVSQI:
		r.add(TokenRegister, base.Name())
		r.add(TokenText, "++")
	default:
		r.add(TokenRegister, base.Name())
	}
	r.add(TokenEndMemory, ")")
}

func (r *renderer) operands() {
	i := r.inst

	switch i.Op {
	case insts.OpVDIV, insts.OpVRSQRT:
		r.register(i.Reg1, insts.CompNone)
		r.register(i.Reg2, i.Source)
		r.register(i.Reg3, i.Temp)
		return
	case insts.OpVSQRT:
		r.register(i.Reg1, insts.CompNone)
		r.register(i.Reg2, i.Temp)
		return
	case insts.OpVMTIR, insts.OpVRINIT, insts.OpVRXOR:
		r.register(i.Reg1, insts.CompNone)
		r.register(i.Reg2, i.Source)
		return
	}

	r.register(i.Reg1, insts.CompNone)
	r.register(i.Reg2, insts.CompNone)
	r.register(i.Reg3, i.Broadcast)

	if i.Operand.Present() {
		r.integer(i.Operand.Value)
	}
	if i.HasTarget {
		r.separate()
		r.add(TokenAddress, fmt.Sprintf("0x%08x", i.Target))
	}
}

// stripTrailing drops the padding of an operand-less mnemonic.
func stripTrailing(tokens []Token) []Token {
	if len(tokens) == 1 {
		tokens[0].Text = strings.TrimRight(tokens[0].Text, " ")
	}
	return tokens
}
