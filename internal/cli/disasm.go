package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sarchlab/eelift/disasm"
	"github.com/sarchlab/eelift/loader"
)

func newDisasmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "disasm <elf>",
		Short: "Print a disassembly listing",
		Long: `Print a listing of the code at --start. Pseudo-ops are shown unless
--raw is given. Each control-flow instruction is tagged with its kind.`,
		Args: cobra.ExactArgs(1),
		RunE: runDisasm,
	}

	cmd.Flags().StringP("start", "s", "", "Start address or symbol (default: entry point)")
	cmd.Flags().IntP("count", "n", 0, "Number of instructions (default: to the end of the segment)")
	cmd.Flags().Bool("raw", false, "Print machine encodings instead of pseudo-ops")
	return cmd
}

func runDisasm(cmd *cobra.Command, args []string) error {
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

	entries, err := disasm.Sweep(cmd.Context(), cache, start, count, a.config.Workers)
	if err != nil {
		return err
	}
	a.logFetch(cache)
	a.log.Debug("swept", "start", fmt.Sprintf("0x%08x", start), "count", len(entries))

	out := cmd.OutOrStdout()
	color := a.color(out)

	fmt.Fprintln(out, header(fmt.Sprintf("%s  entry 0x%08x", filepath.Base(args[0]), prog.EntryPoint), color))
	fmt.Fprint(out, renderListing(prog, entries, a.renderOptions(cmd), color))
	return nil
}

// renderListing formats swept entries with symbol labels and flow badges.
// Colouring runs over the whole body so the lexer sees complete lines.
func renderListing(prog *loader.Program, entries []disasm.Entry, opts disasm.Options, color bool) string {
	lines := make([]string, 0, len(entries))
	badges := make([]string, 0, len(entries))

	for _, e := range entries {
		if sym, ok := prog.SymbolAt(e.Addr); ok && sym.Kind == loader.SymbolFunc {
			lines = append(lines, "", sym.Name+":")
			badges = append(badges, "", "")
		}
		lines = append(lines, disasm.Line(e.Addr, e.Inst, opts))
		badges = append(badges, badge(e.Flow.Kind, color))
	}

	if color {
		if colored, err := disasm.Colorize(strings.Join(lines, "\n")); err == nil {
			if split := strings.Split(colored, "\n"); len(split) >= len(lines) {
				lines = split[:len(lines)]
			}
		}
	}

	var sb strings.Builder
	for i, line := range lines {
		sb.WriteString(line)
		if badges[i] != "" {
			sb.WriteString("  ")
			sb.WriteString(badges[i])
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
