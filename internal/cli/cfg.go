package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sarchlab/eelift/cfg"
	"github.com/sarchlab/eelift/loader"
)

func newCFGCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cfg <elf>",
		Short: "Discover functions and basic blocks",
		Long: `Walk the code from the entry point and every function symbol,
following branch and call targets, and print the resulting functions
and blocks.`,
		Args: cobra.ExactArgs(1),
		RunE: runCFG,
	}

	cmd.Flags().Bool("yaml", false, "Print the graph as YAML")
	return cmd
}

func runCFG(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	prog, cache, err := a.load(args[0])
	if err != nil {
		return err
	}

	g, err := cfg.Build(cache, roots(prog), cfg.Options{MaxInstructions: a.config.MaxInstructions})
	if err != nil {
		return err
	}
	a.logFetch(cache)
	a.log.Debug("discovered", "functions", len(g.Functions), "external", len(g.External))
	if g.Truncated {
		a.log.Warn("discovery truncated", "max_instructions", a.config.MaxInstructions)
	}

	out := cmd.OutOrStdout()
	if asYAML, _ := cmd.Flags().GetBool("yaml"); asYAML {
		data, err := g.YAML()
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	}

	writeGraph(out, g, a.color(out))
	return nil
}

// roots seeds discovery with the entry point and the function symbols.
func roots(prog *loader.Program) []cfg.Root {
	entry := cfg.Root{Addr: prog.EntryPoint, Name: "entry"}
	if sym, ok := prog.SymbolAt(prog.EntryPoint); ok {
		entry.Name = sym.Name
	}

	out := []cfg.Root{entry}
	for _, sym := range prog.Functions() {
		out = append(out, cfg.Root{Addr: sym.Addr, Name: sym.Name})
	}
	return out
}

func writeGraph(w io.Writer, g *cfg.Graph, color bool) {
	for _, fn := range g.Functions {
		fmt.Fprintf(w, "%s  %s\n", title(fn.Name, color), dim(fmt.Sprintf("%s  %d blocks", fn.Entry, len(fn.Blocks)), color))
		for _, b := range fn.Blocks {
			line := fmt.Sprintf("  %s-%s  %-7s", b.Start, b.End, b.Terminator)
			if len(b.Calls) > 0 {
				line += " call " + joinAddrs(b.Calls)
			}
			if len(b.Successors) > 0 {
				line += " -> " + joinAddrs(b.Successors)
			}
			fmt.Fprintln(w, strings.TrimRight(line, " "))
		}
	}

	if len(g.External) > 0 {
		fmt.Fprintf(w, "external: %s\n", joinAddrs(g.External))
	}
	if g.Truncated {
		fmt.Fprintln(w, "truncated")
	}
}

func joinAddrs(addrs []cfg.Addr) string {
	parts := make([]string, len(addrs))
	for i, a := range addrs {
		parts[i] = a.String()
	}
	return strings.Join(parts, ", ")
}
