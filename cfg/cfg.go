// Package cfg discovers functions and basic blocks by following the
// targets the control-flow classifier reports. It performs no data-flow
// analysis: indirect jumps end a block without successors.
package cfg

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/sarchlab/eelift/insts"
)

// CodeReader supplies little-endian code words.
type CodeReader interface {
	ReadU32(addr uint32) (uint32, error)
}

// Addr is a code address that renders as 0x%08x.
type Addr uint32

func (a Addr) String() string { return fmt.Sprintf("0x%08x", uint32(a)) }

// MarshalYAML renders the address in hex.
func (a Addr) MarshalYAML() (any, error) { return a.String(), nil }

// Block is a straight-line run of instructions. End is exclusive and
// includes the delay slot of a terminating branch.
type Block struct {
	Start      Addr   `yaml:"start"`
	End        Addr   `yaml:"end"`
	Terminator string `yaml:"terminator"`
	Successors []Addr `yaml:"successors,omitempty"`
	Calls      []Addr `yaml:"calls,omitempty"`
}

// Function is the set of blocks reachable from an entry without
// following calls.
type Function struct {
	Name   string   `yaml:"name"`
	Entry  Addr     `yaml:"entry"`
	Blocks []*Block `yaml:"blocks"`
}

// Graph is the result of a discovery run.
type Graph struct {
	Functions []*Function `yaml:"functions"`
	// External lists targets that could not be read.
	External []Addr `yaml:"external,omitempty"`
	// Truncated is set when the instruction limit stopped discovery.
	Truncated bool `yaml:"truncated,omitempty"`
}

// Root is a known function entry.
type Root struct {
	Addr uint32
	Name string
}

// Options control discovery.
type Options struct {
	// MaxInstructions caps the number of decoded instructions. 0 is
	// unlimited.
	MaxInstructions int
}

// Build discovers functions from roots and every call target they reach.
func Build(r CodeReader, roots []Root, opts Options) (*Graph, error) {
	b := &builder{
		reader:   r,
		decoder:  insts.NewDecoder(),
		opts:     opts,
		names:    make(map[uint32]string),
		done:     make(map[uint32]bool),
		external: make(map[uint32]bool),
		cache:    make(map[uint32]insts.Instruction),
	}

	for _, root := range roots {
		if root.Name != "" {
			if _, ok := b.names[root.Addr]; !ok {
				b.names[root.Addr] = root.Name
			}
		}
		b.queue = append(b.queue, root.Addr)
	}

	g := &Graph{}
	for len(b.queue) > 0 && !b.truncated {
		entry := b.queue[0]
		b.queue = b.queue[1:]
		if b.done[entry] {
			continue
		}
		b.done[entry] = true

		if fn := b.function(entry); fn != nil {
			g.Functions = append(g.Functions, fn)
		}
	}

	sort.Slice(g.Functions, func(i, j int) bool { return g.Functions[i].Entry < g.Functions[j].Entry })
	for addr := range b.external {
		g.External = append(g.External, Addr(addr))
	}
	sort.Slice(g.External, func(i, j int) bool { return g.External[i] < g.External[j] })
	g.Truncated = b.truncated

	return g, nil
}

// YAML renders the graph.
func (g *Graph) YAML() ([]byte, error) {
	out, err := yaml.Marshal(g)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal graph: %w", err)
	}
	return out, nil
}

// Function returns the function starting at entry.
func (g *Graph) Function(entry uint32) (*Function, bool) {
	for _, fn := range g.Functions {
		if fn.Entry == Addr(entry) {
			return fn, true
		}
	}
	return nil, false
}

type builder struct {
	reader  CodeReader
	decoder *insts.Decoder
	opts    Options

	queue     []uint32
	names     map[uint32]string
	done      map[uint32]bool
	external  map[uint32]bool
	cache     map[uint32]insts.Instruction
	decoded   int
	truncated bool
}

func (b *builder) decode(addr uint32) (insts.Instruction, bool) {
	if inst, ok := b.cache[addr]; ok {
		return inst, true
	}
	if b.opts.MaxInstructions > 0 && b.decoded >= b.opts.MaxInstructions {
		b.truncated = true
		return insts.Instruction{}, false
	}

	word, err := b.reader.ReadU32(addr)
	if err != nil {
		return insts.Instruction{}, false
	}
	inst := b.decoder.Decode(word, addr)
	b.cache[addr] = inst
	b.decoded++
	return inst, true
}

func (b *builder) function(entry uint32) *Function {
	if _, ok := b.decode(entry); !ok {
		if !b.truncated {
			b.external[entry] = true
		}
		return nil
	}

	visited, leaders := b.explore(entry)

	name, ok := b.names[entry]
	if !ok {
		name = fmt.Sprintf("sub_%08x", entry)
	}
	fn := &Function{Name: name, Entry: Addr(entry)}

	starts := make([]uint32, 0, len(leaders))
	for addr := range leaders {
		if visited[addr] {
			starts = append(starts, addr)
		}
	}
	sort.Slice(starts, func(i, j int) bool { return starts[i] < starts[j] })

	for _, start := range starts {
		fn.Blocks = append(fn.Blocks, b.block(start, visited, leaders))
	}
	return fn
}

// explore walks every path from entry and returns the visited
// instructions and the block leaders.
func (b *builder) explore(entry uint32) (visited, leaders map[uint32]bool) {
	visited = make(map[uint32]bool)
	leaders = map[uint32]bool{entry: true}
	work := []uint32{entry}

	push := func(addr uint32) {
		leaders[addr] = true
		work = append(work, addr)
	}

	for len(work) > 0 {
		addr := work[len(work)-1]
		work = work[:len(work)-1]

		for first := true; !visited[addr]; first = false {
			inst, ok := b.decode(addr)
			if !ok {
				if first && !b.truncated {
					b.external[addr] = true
				}
				break
			}
			visited[addr] = true

			flow := insts.Classify(inst, addr)
			if !terminates(flow.Kind) {
				addr += insts.Size
				continue
			}

			if insts.HasDelaySlot(inst) {
				if _, ok := b.decode(addr + insts.Size); ok {
					visited[addr+insts.Size] = true
				}
			}

			fall := addr + insts.MaxLength
			switch flow.Kind {
			case insts.FlowUnconditional:
				push(flow.Target)
			case insts.FlowConditionalPair:
				push(flow.Target)
				push(flow.FalseTarget)
			case insts.FlowCall:
				b.call(flow.Target)
				push(fall)
			case insts.FlowIndirectCall:
				push(fall)
			}
			break
		}
	}
	return visited, leaders
}

func (b *builder) call(target uint32) {
	if !b.done[target] {
		b.queue = append(b.queue, target)
	}
}

// block forms the block starting at start from the explored
// instructions.
func (b *builder) block(start uint32, visited, leaders map[uint32]bool) *Block {
	blk := &Block{Start: Addr(start), Terminator: insts.FlowNone.String()}

	for addr := start; ; addr += insts.Size {
		if addr != start && leaders[addr] {
			blk.End = Addr(addr)
			blk.Successors = []Addr{Addr(addr)}
			return blk
		}
		if !visited[addr] {
			blk.End = Addr(addr)
			return blk
		}

		inst := b.cache[addr]
		flow := insts.Classify(inst, addr)
		if !terminates(flow.Kind) {
			continue
		}

		blk.Terminator = flow.Kind.String()
		blk.End = Addr(addr + insts.Size)
		if insts.HasDelaySlot(inst) && visited[addr+insts.Size] {
			blk.End = Addr(addr + insts.MaxLength)
		}

		fall := Addr(addr + insts.MaxLength)
		switch flow.Kind {
		case insts.FlowUnconditional:
			blk.Successors = []Addr{Addr(flow.Target)}
		case insts.FlowConditionalPair:
			blk.Successors = []Addr{Addr(flow.Target), Addr(flow.FalseTarget)}
		case insts.FlowCall:
			blk.Calls = []Addr{Addr(flow.Target)}
			blk.Successors = []Addr{fall}
		case insts.FlowIndirectCall:
			blk.Successors = []Addr{fall}
		}
		return blk
	}
}

// terminates reports whether a flow kind ends a block. System calls
// return to the next instruction and do not.
func terminates(k insts.BranchKind) bool {
	return k != insts.FlowNone && k != insts.FlowSystemCall
}
