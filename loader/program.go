package loader

import (
	"encoding/binary"
	"fmt"
	"sort"
)

// SegmentAt returns the segment holding [addr, addr+n), or nil.
func (p *Program) SegmentAt(addr, n uint32) *Segment {
	for i := range p.Segments {
		if p.Segments[i].Contains(addr, n) {
			return &p.Segments[i]
		}
	}
	return nil
}

// ReadAt copies len(buf) bytes starting at addr. The bytes must lie in a
// single segment. Bytes past the file image of a segment read as zero.
func (p *Program) ReadAt(buf []byte, addr uint32) error {
	seg := p.SegmentAt(addr, uint32(len(buf)))
	if seg == nil {
		return fmt.Errorf("%w: 0x%08x+%d", ErrUnmapped, addr, len(buf))
	}

	off := int(addr - seg.VirtAddr)
	n := 0
	if off < len(seg.Data) {
		n = copy(buf, seg.Data[off:])
	}
	clear(buf[n:])
	return nil
}

// ReadU32 reads a little-endian word at addr.
func (p *Program) ReadU32(addr uint32) (uint32, error) {
	var buf [4]byte
	if err := p.ReadAt(buf[:], addr); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// Executable returns the segments with the execute flag.
func (p *Program) Executable() []Segment {
	var out []Segment
	for _, s := range p.Segments {
		if s.Flags&SegmentFlagExecute != 0 {
			out = append(out, s)
		}
	}
	return out
}

// Functions returns the function symbols in address order.
func (p *Program) Functions() []Symbol {
	var out []Symbol
	for _, s := range p.Symbols {
		if s.Kind == SymbolFunc {
			out = append(out, s)
		}
	}
	return out
}

// SymbolAt returns the symbol starting exactly at addr.
func (p *Program) SymbolAt(addr uint32) (Symbol, bool) {
	i := sort.Search(len(p.Symbols), func(i int) bool { return p.Symbols[i].Addr >= addr })
	if i < len(p.Symbols) && p.Symbols[i].Addr == addr {
		return p.Symbols[i], true
	}
	return Symbol{}, false
}
