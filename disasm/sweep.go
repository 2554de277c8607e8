package disasm

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/sarchlab/eelift/insts"
)

// WordReader supplies little-endian code words.
type WordReader interface {
	ReadU32(addr uint32) (uint32, error)
}

// Entry is one decoded instruction of a sweep.
type Entry struct {
	Addr uint32
	Inst insts.Instruction
	Flow insts.Flow
}

// chunkSize is the number of words one decode task handles.
const chunkSize = 1024

// Sweep decodes count words starting at start. Words are read
// sequentially, since readers such as the fetch cache are not safe for
// concurrent use, and then decoded in parallel chunks. A read error on the
// first word is returned. A later one ends the sweep early.
func Sweep(ctx context.Context, r WordReader, start uint32, count, workers int) ([]Entry, error) {
	words := make([]uint32, 0, count)
	for n := 0; n < count; n++ {
		addr := start + uint32(n)*insts.Size
		w, err := r.ReadU32(addr)
		if err != nil {
			if n == 0 {
				return nil, fmt.Errorf("failed to read code at 0x%08x: %w", addr, err)
			}
			break
		}
		words = append(words, w)
	}

	entries := make([]Entry, len(words))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))

	for lo := 0; lo < len(words); lo += chunkSize {
		hi := min(lo+chunkSize, len(words))
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			decoder := insts.NewDecoder()
			for i := lo; i < hi; i++ {
				addr := start + uint32(i)*insts.Size
				inst := decoder.Decode(words[i], addr)
				entries[i] = Entry{
					Addr: addr,
					Inst: inst,
					Flow: insts.Classify(inst, addr),
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}
