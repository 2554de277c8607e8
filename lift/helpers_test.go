package lift_test

import (
	"errors"
	"fmt"
)

var errUnmapped = errors.New("unmapped")

// memory is a sparse little code image.
type memory map[uint32]uint32

func (m memory) ReadU32(addr uint32) (uint32, error) {
	w, ok := m[addr]
	if !ok {
		return 0, fmt.Errorf("%w: 0x%08x", errUnmapped, addr)
	}
	return w, nil
}

func rType(rs, rt, rd, sa, funct uint32) uint32 {
	return rs<<21 | rt<<16 | rd<<11 | sa<<6 | funct
}

func iType(op, rs, rt uint32, imm uint16) uint32 {
	return op<<26 | rs<<21 | rt<<16 | uint32(imm)
}

func jType(op, target uint32) uint32 {
	return op<<26 | target&0x3FFFFFF
}

func mmi(rs, rt, rd, sa, funct uint32) uint32 {
	return 0x1C<<26 | rType(rs, rt, rd, sa, funct)
}

func vuOp(dest, ft, fs, fd, funct uint32) uint32 {
	return 0x12<<26 | 1<<25 | dest<<21 | ft<<16 | fs<<11 | fd<<6 | funct
}

func vuSpecial2(dest, ft, fs, op2 uint32) uint32 {
	return 0x12<<26 | 1<<25 | dest<<21 | ft<<16 | fs<<11 | (op2>>2)<<6 | 0x3C | op2&3
}

func regimm(rs, rt uint32, imm uint16) uint32 {
	return iType(0x01, rs, rt, imm)
}
