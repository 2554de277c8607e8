package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sarchlab/eelift/disasm"
	"github.com/sarchlab/eelift/insts"
	"github.com/sarchlab/eelift/ir"
	"github.com/sarchlab/eelift/lift"
)

func newLiftCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lift <elf>",
		Short: "Print the IR of each instruction",
		Long: `Lift instructions starting at --start and print the IR below each
one. A branch is lifted together with its delay slot.`,
		Args: cobra.ExactArgs(1),
		RunE: runLift,
	}

	cmd.Flags().StringP("start", "s", "", "Start address or symbol (default: entry point)")
	cmd.Flags().IntP("count", "n", 16, "Number of instructions to lift")
	cmd.Flags().Bool("raw", false, "Print machine encodings instead of pseudo-ops")
	return cmd
}

func runLift(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	prog, cache, err := a.load(args[0])
	if err != nil {
		return err
	}

	start, err := resolveStart(cmd, prog)
	if err != nil {
		return err
	}
	count, _ := cmd.Flags().GetInt("count")
	count = a.limit(prog, start, count)

	out := cmd.OutOrStdout()
	opts := a.renderOptions(cmd)
	lifter := lift.NewLifter()
	decoder := insts.NewDecoder()

	unimplemented := 0
	addr := start
	for i := 0; i < count; i++ {
		ops, n, err := lifter.LiftAt(cache, addr)
		if err != nil {
			if i == 0 {
				return err
			}
			a.log.Warn("lift stopped", "addr", fmt.Sprintf("0x%08x", addr), "err", err)
			break
		}

		for off := uint32(0); off < n; off += insts.Size {
			word, err := cache.ReadU32(addr + off)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, disasm.Line(addr+off, decoder.Decode(word, addr+off), opts))
		}
		writeIR(out, ops)

		if ir.IsUnimplemented(ops) {
			unimplemented++
		}
		addr += n
	}

	a.logFetch(cache)
	if unimplemented > 0 {
		a.log.Info("lifted", "unimplemented", unimplemented)
	}
	return nil
}

func writeIR(w io.Writer, ops []ir.Op) {
	for _, line := range strings.Split(strings.TrimSuffix(ir.Format(ops), "\n"), "\n") {
		fmt.Fprintf(w, "    %s\n", line)
	}
}
