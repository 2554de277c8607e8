// Package cli implements the eedis command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/sarchlab/eelift/config"
	"github.com/sarchlab/eelift/disasm"
	"github.com/sarchlab/eelift/fetch"
	"github.com/sarchlab/eelift/internal/logging"
	"github.com/sarchlab/eelift/loader"
)

// NewRootCommand builds the eedis command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "eedis",
		Short: "Emotion Engine disassembler and IR lifter",
		Long: `eedis decodes PS2 Emotion Engine (R5900) executables.
It prints listings with pseudo-ops, lowers instructions to IR and
discovers functions and basic blocks.`,
		Example: `
# List the code at the entry point
eedis disasm game.elf

# Lift 8 instructions of a symbol
eedis lift game.elf --start main --count 8

# Decode a single word
eedis decode 0x24020005
  `,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringP("config", "C", "", "Config file (.json, .yaml)")
	root.PersistentFlags().BoolP("debug", "d", false, "Debug")

	root.AddCommand(
		newDisasmCmd(),
		newLiftCmd(),
		newCFGCmd(),
		newDecodeCmd(),
		newSchemaCmd(),
	)
	return root
}

// Execute runs the command tree. Output that is not a terminal bypasses
// fang's styled help and errors.
func Execute() {
	root := NewRootCommand()

	if !term.IsTerminal(os.Stdout.Fd()) {
		if err := root.Execute(); err != nil {
			os.Exit(1)
		}
		return
	}

	if err := fang.Execute(
		context.Background(),
		root,
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}

// app is the per-invocation state shared by the subcommands.
type app struct {
	config *config.Config
	log    *logging.LoggerCloser
}

func newApp(cmd *cobra.Command) (*app, error) {
	lg := logging.NewLogger()
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		lg.SetLevel(log.DebugLevel)
	}

	conf := config.DefaultConfig()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			_ = lg.Close()
			return nil, err
		}
		conf = loaded
		lg.Debug("loaded config", "path", path)
	}

	return &app{config: conf, log: lg}, nil
}

func (a *app) Close() {
	_ = a.log.Close()
}

// load opens an executable and puts the fetch cache in front of it.
func (a *app) load(path string) (*loader.Program, *fetch.Cache, error) {
	prog, err := loader.LoadWithOptions(path, loader.Options{RequireEEFlag: a.config.RequireEEFlag})
	if err != nil {
		return nil, nil, err
	}

	a.log.Info("loaded",
		"path", path,
		"entry", fmt.Sprintf("0x%08x", prog.EntryPoint),
		"segments", len(prog.Segments),
		"symbols", len(prog.Symbols))

	return prog, fetch.New(a.config.FetchConfig(), prog), nil
}

func (a *app) renderOptions(cmd *cobra.Command) disasm.Options {
	opts := disasm.Options{Pseudo: a.config.Pseudo, HexThreshold: a.config.HexThreshold}
	if raw, _ := cmd.Flags().GetBool("raw"); raw {
		opts.Pseudo = false
	}
	return opts
}

// color reports whether w is a terminal that should get coloured output.
func (a *app) color(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && disasm.ShouldColor(a.config.Color, f)
}

// limit caps a requested instruction count. A count of 0 runs to the end
// of the segment holding start.
func (a *app) limit(prog *loader.Program, start uint32, count int) int {
	if count <= 0 {
		count = 1
		if seg := prog.SegmentAt(start, 4); seg != nil {
			count = int((seg.VirtAddr + seg.MemSize - start) / 4)
		}
	}
	if capped := a.config.MaxInstructions; capped > 0 && count > capped {
		count = capped
	}
	return count
}

func (a *app) logFetch(c *fetch.Cache) {
	st := c.Stats()
	a.log.Debug("fetch",
		"reads", st.Reads,
		"hits", st.Hits,
		"misses", st.Misses,
		"evictions", st.Evictions,
		"bypasses", st.Bypasses)
}

// parseAddr accepts decimal, 0x-prefixed hex and 0-prefixed octal.
func parseAddr(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q: %w", s, err)
	}
	return uint32(v), nil
}

// resolveStart reads the --start flag: an address or a symbol name. It
// defaults to the entry point.
func resolveStart(cmd *cobra.Command, prog *loader.Program) (uint32, error) {
	s, _ := cmd.Flags().GetString("start")
	if s == "" {
		return prog.EntryPoint, nil
	}
	if addr, err := parseAddr(s); err == nil {
		return addr, nil
	}
	for _, sym := range prog.Symbols {
		if sym.Name == s || sym.Raw == s {
			return sym.Addr, nil
		}
	}
	return 0, fmt.Errorf("unknown start %q: not an address or symbol", s)
}

// parseWord reads a hex word with or without the 0x prefix.
func parseWord(s string) (uint32, error) {
	v, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(s), "0x"), 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid instruction word %q: %w", s, err)
	}
	return uint32(v), nil
}
