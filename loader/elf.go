// Package loader reads Emotion Engine executables: ELF32 little-endian
// MIPS files built for the R5900 core.
package loader

import (
	"debug/elf"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/ianlancetaylor/demangle"
)

var (
	// ErrNotEE is returned for ELF files that are not EE executables.
	ErrNotEE = errors.New("not an Emotion Engine ELF file")
	// ErrUnmapped is returned when an address lies outside every segment.
	ErrUnmapped = errors.New("address not mapped")
)

// FlagR5900 is the e_flags bit set by toolchains targeting the TX79/R5900.
const FlagR5900 = 0x00920000

// e_flags offset in an ELF32 header.
const flagsOffset = 36

// SegmentFlags represents memory protection flags for a segment.
type SegmentFlags uint32

const (
	// SegmentFlagExecute indicates the segment is executable.
	SegmentFlagExecute SegmentFlags = 1 << iota
	// SegmentFlagWrite indicates the segment is writable.
	SegmentFlagWrite
	// SegmentFlagRead indicates the segment is readable.
	SegmentFlagRead
)

// Segment represents a loadable segment from an ELF binary.
type Segment struct {
	// VirtAddr is the virtual address where this segment should be loaded.
	VirtAddr uint32
	// Data contains the segment contents from the file.
	Data []byte
	// MemSize is the size in memory (may be larger than len(Data) for BSS).
	MemSize uint32
	// Flags contains the segment protection flags.
	Flags SegmentFlags
}

// Contains reports whether [addr, addr+n) lies inside the segment.
func (s *Segment) Contains(addr, n uint32) bool {
	return addr >= s.VirtAddr && uint64(addr)+uint64(n) <= uint64(s.VirtAddr)+uint64(s.MemSize)
}

// SymbolKind separates code from data symbols.
type SymbolKind uint8

// Symbol kinds.
const (
	SymbolFunc SymbolKind = iota
	SymbolObject
)

// Symbol is a function or object from the ELF symbol table.
type Symbol struct {
	// Name is the demangled name.
	Name string
	// Raw is the name as stored in the file.
	Raw  string
	Addr uint32
	Size uint32
	Kind SymbolKind
}

// Program is a loaded EE executable.
type Program struct {
	// EntryPoint is the virtual address where execution should begin.
	EntryPoint uint32
	// Flags is the raw e_flags word.
	Flags uint32
	// Segments contains all loadable segments from the ELF file.
	Segments []Segment
	// Symbols are sorted by address.
	Symbols []Symbol
}

// Options control validation.
type Options struct {
	// RequireEEFlag rejects files without the R5900 e_flags bit.
	RequireEEFlag bool
}

// DefaultOptions requires the R5900 flag.
func DefaultOptions() Options {
	return Options{RequireEEFlag: true}
}

// Load parses the EE ELF file at path with the default options.
func Load(path string) (*Program, error) {
	return LoadWithOptions(path, DefaultOptions())
}

// LoadWithOptions parses the EE ELF file at path.
func LoadWithOptions(path string, opts Options) (*Program, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ELF file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return Parse(file, opts)
}

// Parse reads an EE executable from r.
func Parse(r io.ReaderAt, opts Options) (*Program, error) {
	f, err := elf.NewFile(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ELF file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if f.Class != elf.ELFCLASS32 || f.Data != elf.ELFDATA2LSB {
		return nil, fmt.Errorf("%w: want 32-bit little-endian, got %v %v", ErrNotEE, f.Class, f.Data)
	}
	if f.Machine != elf.EM_MIPS {
		return nil, fmt.Errorf("%w: machine type %v", ErrNotEE, f.Machine)
	}

	flags, err := readFlags(r)
	if err != nil {
		return nil, err
	}
	if opts.RequireEEFlag && flags&FlagR5900 == 0 {
		return nil, fmt.Errorf("%w: e_flags 0x%08x lacks the R5900 bit", ErrNotEE, flags)
	}

	prog := &Program{
		EntryPoint: uint32(f.Entry),
		Flags:      flags,
	}

	for _, phdr := range f.Progs {
		if phdr.Type != elf.PT_LOAD {
			continue
		}

		seg, err := readSegment(phdr)
		if err != nil {
			return nil, err
		}
		prog.Segments = append(prog.Segments, seg)
	}

	prog.Symbols, err = readSymbols(f)
	if err != nil {
		return nil, err
	}

	return prog, nil
}

func readFlags(r io.ReaderAt) (uint32, error) {
	var buf [4]byte
	if _, err := r.ReadAt(buf[:], flagsOffset); err != nil {
		return 0, fmt.Errorf("failed to read e_flags: %w", err)
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

func readSegment(phdr *elf.Prog) (Segment, error) {
	data := make([]byte, phdr.Filesz)
	if phdr.Filesz > 0 {
		n, err := phdr.ReadAt(data, 0)
		if err != nil && err != io.EOF {
			return Segment{}, fmt.Errorf("failed to read segment at 0x%x: %w", phdr.Vaddr, err)
		}
		if uint64(n) != phdr.Filesz {
			return Segment{}, fmt.Errorf("short read for segment at 0x%x: got %d bytes, expected %d",
				phdr.Vaddr, n, phdr.Filesz)
		}
	}

	var flags SegmentFlags
	if phdr.Flags&elf.PF_X != 0 {
		flags |= SegmentFlagExecute
	}
	if phdr.Flags&elf.PF_W != 0 {
		flags |= SegmentFlagWrite
	}
	if phdr.Flags&elf.PF_R != 0 {
		flags |= SegmentFlagRead
	}

	return Segment{
		VirtAddr: uint32(phdr.Vaddr),
		Data:     data,
		MemSize:  uint32(phdr.Memsz),
		Flags:    flags,
	}, nil
}

func readSymbols(f *elf.File) ([]Symbol, error) {
	syms, err := f.Symbols()
	if errors.Is(err, elf.ErrNoSymbols) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read symbol table: %w", err)
	}

	var out []Symbol
	for _, s := range syms {
		var kind SymbolKind
		switch elf.ST_TYPE(s.Info) {
		case elf.STT_FUNC:
			kind = SymbolFunc
		case elf.STT_OBJECT:
			kind = SymbolObject
		default:
			continue
		}
		if s.Name == "" {
			continue
		}

		out = append(out, Symbol{
			Name: demangle.Filter(s.Name),
			Raw:  s.Name,
			Addr: uint32(s.Value),
			Size: uint32(s.Size),
			Kind: kind,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Addr < out[j].Addr })
	return out, nil
}
