package commands

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/tracefang/pkg/lang/ast"
	"github.com/Sumatoshi-tech/tracefang/pkg/lang/provider"
)

// NewStatsCommand creates and configures the stats command.
func NewStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <script>",
		Short: "Summarize a script's tree and probes",
		Args:  cobra.ExactArgs(1),
		RunE:  runStats,
	}
}

func runStats(cmd *cobra.Command, args []string) error {
	_, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	src, root, st, err := parseScript(args[0])
	if err != nil {
		return err
	}

	if resolveErr := provider.ResolveScript(root); resolveErr != nil {
		logger.Warn("provider resolution failed", "err", resolveErr)
	}

	counts := map[ast.Kind]int{}
	total := 0

	_ = ast.Walk(root, func(n *ast.Node) error {
		counts[n.Kind]++
		total++

		return nil
	}, nil)

	fmt.Fprintf(os.Stdout, "%s: %s source, %d nodes, %d symbols\n\n",
		args[0], humanize.Bytes(uint64(len(src))), total, st.Len())

	kindTbl := table.NewWriter()
	kindTbl.SetOutputMirror(os.Stdout)
	kindTbl.SetStyle(table.StyleLight)
	kindTbl.AppendHeader(table.Row{"Kind", "Count"})

	for kind := ast.KindScript; kind <= ast.KindInt; kind++ {
		if counts[kind] > 0 {
			kindTbl.AppendRow(table.Row{kind.String(), counts[kind]})
		}
	}

	kindTbl.AppendFooter(table.Row{"Total", total})
	kindTbl.Render()

	fmt.Fprintln(os.Stdout)
	renderProbes(root)

	return nil
}

func renderProbes(root *ast.Node) {
	probeTbl := table.NewWriter()
	probeTbl.SetOutputMirror(os.Stdout)
	probeTbl.SetStyle(table.StyleLight)
	probeTbl.AppendHeader(table.Row{"Probe", "Provider", "Predicate", "Statements"})

	for p := root.Script.Probes; p != nil; p = p.Next {
		providerName := "<unresolved>"
		if pvdr := p.Dyn.Probe.Provider; pvdr != nil {
			providerName = pvdr.Name()
		}

		pred := "no"
		if p.Probe.Pred != nil {
			pred = "yes"
		}

		stmts := 0
		for s := p.Probe.Stmts; s != nil; s = s.Next {
			stmts++
		}

		probeTbl.AppendRow(table.Row{p.Text, providerName, pred, stmts})
	}

	probeTbl.Render()
}
