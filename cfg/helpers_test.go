package cfg_test

import (
	"errors"
	"fmt"
)

var errUnmapped = errors.New("unmapped")

type memory map[uint32]uint32

func (m memory) ReadU32(addr uint32) (uint32, error) {
	w, ok := m[addr]
	if !ok {
		return 0, fmt.Errorf("%w: 0x%08x", errUnmapped, addr)
	}
	return w, nil
}

// place stores words consecutively from base.
func (m memory) place(base uint32, words ...uint32) memory {
	for i, w := range words {
		m[base+uint32(i)*4] = w
	}
	return m
}

func rType(rs, rt, rd, sa, funct uint32) uint32 {
	return rs<<21 | rt<<16 | rd<<11 | sa<<6 | funct
}

func iType(op, rs, rt uint32, imm uint16) uint32 {
	return op<<26 | rs<<21 | rt<<16 | uint32(imm)
}

func jType(op, target uint32) uint32 {
	return op<<26 | (target>>2)&0x3FFFFFF
}

const (
	nop     = 0
	jrRA    = 31<<21 | 0x08
	syscall = 0x0C
)

func addiu(rt, rs uint32, imm uint16) uint32 { return iType(0x09, rs, rt, imm) }
