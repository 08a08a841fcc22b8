package commands

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/tracefang/pkg/lang/ast"
	"github.com/Sumatoshi-tech/tracefang/pkg/lang/provider"
)

// NewCheckCommand creates and configures the check command.
func NewCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <script>",
		Short: "Parse a script and verify structural invariants",
		Long:  "Parse a tracing script, verify the tree's structural invariants, and resolve every probe's provider.",
		Args:  cobra.ExactArgs(1),
		RunE:  runCheck,
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	_, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	if noColor(cmd) {
		color.NoColor = true //nolint:reassign // intentional override of library global
	}

	_, root, st, err := parseScript(args[0])
	if err != nil {
		return err
	}

	if err := ast.Verify(root); err != nil {
		return err
	}

	if err := provider.ResolveScript(root); err != nil {
		return err
	}

	logger.Debug("script checked", "symbols", st.Len())
	color.New(color.FgGreen).Fprintf(os.Stdout, "%s: OK\n", args[0])

	return nil
}
