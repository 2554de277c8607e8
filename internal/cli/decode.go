package cli

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/sarchlab/eelift/disasm"
	"github.com/sarchlab/eelift/insts"
	"github.com/sarchlab/eelift/lift"
)

func newDecodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode <hexword>",
		Short: "Decode a single instruction word",
		Long: `Decode one 32-bit word as if it were located at --addr and print its
text, control flow and IR. Branches are lifted without a delay slot.`,
		Example: `
eedis decode 0x10850003 --addr 0x00100000
eedis decode 4a0311a8 --dump
  `,
		Args: cobra.ExactArgs(1),
		RunE: runDecode,
	}

	cmd.Flags().String("addr", "0", "Address of the word")
	cmd.Flags().Bool("dump", false, "Dump the decoded record")
	cmd.Flags().Bool("raw", false, "Print the machine encoding instead of the pseudo-op")
	return cmd
}

func runDecode(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	word, err := parseWord(args[0])
	if err != nil {
		return err
	}
	s, _ := cmd.Flags().GetString("addr")
	addr, err := parseAddr(s)
	if err != nil {
		return err
	}

	inst := insts.NewDecoder().Decode(word, addr)
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, disasm.Line(addr, inst, a.renderOptions(cmd)))
	if flow := insts.Classify(inst, addr); flow.Kind != insts.FlowNone {
		line := "flow: " + flow.Kind.String()
		if flow.HasTarget() {
			line += fmt.Sprintf(" 0x%08x", flow.Target)
		}
		if flow.Kind == insts.FlowConditionalPair {
			line += fmt.Sprintf(", 0x%08x", flow.FalseTarget)
		}
		fmt.Fprintln(out, line)
	}
	writeIR(out, lift.NewLifter().Lift(inst, addr, nil))

	if dump, _ := cmd.Flags().GetBool("dump"); dump {
		spew.Fdump(out, inst)
	}
	return nil
}
