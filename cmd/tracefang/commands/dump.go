package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/tracefang/internal/config"
	"github.com/Sumatoshi-tech/tracefang/pkg/lang/ast"
	"github.com/Sumatoshi-tech/tracefang/pkg/lang/provider"
)

// DumpCommand holds the flags for the dump command.
type DumpCommand struct {
	format string
	output string
}

// NewDumpCommand creates and configures the dump command.
func NewDumpCommand() *cobra.Command {
	cmd := &DumpCommand{}

	cobraCmd := &cobra.Command{
		Use:   "dump <script>",
		Short: "Parse a script and render its syntax tree",
		Long:  "Parse a tracing script and render its syntax tree with per-node annotations. Use - to read from stdin.",
		Args:  cobra.ExactArgs(1),
		RunE:  cmd.Run,
	}

	cobraCmd.Flags().StringVarP(&cmd.format, "format", "f", "", "output format: tree, json, or yaml (default from config)")
	cobraCmd.Flags().StringVarP(&cmd.output, "output", "o", "", "output file (default: stdout)")

	return cobraCmd
}

// Run executes the dump command.
func (c *DumpCommand) Run(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	_, root, st, err := parseScript(args[0])
	if err != nil {
		return err
	}

	// An unresolvable probe still dumps, just without a provider.
	if resolveErr := provider.ResolveScript(root); resolveErr != nil {
		logger.Warn("provider resolution failed", "err", resolveErr)
	}

	logger.Debug("parsed script", "symbols", st.Len())

	out, closeOut, err := c.openOutput()
	if err != nil {
		return err
	}
	defer closeOut()

	format := c.format
	if format == "" {
		format = cfg.Dump.Format
	}

	switch format {
	case config.FormatTree:
		dumper := ast.Dumper{Color: cfg.Dump.Color && !noColor(cmd)}

		return dumper.DumpTree(out, root)

	case config.FormatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")

		if err := enc.Encode(root); err != nil {
			return fmt.Errorf("encode tree: %w", err)
		}

		return nil

	case config.FormatYAML:
		return dumpYAML(out, root)
	}

	return fmt.Errorf("%w: %q", config.ErrInvalidDumpFormat, format)
}

func (c *DumpCommand) openOutput() (io.Writer, func(), error) {
	if c.output == "" {
		return os.Stdout, func() {}, nil
	}

	file, err := os.Create(c.output)
	if err != nil {
		return nil, nil, fmt.Errorf("create output: %w", err)
	}

	return file, func() { _ = file.Close() }, nil
}

// dumpYAML re-renders the JSON export as YAML so both formats share one
// wire shape.
func dumpYAML(w io.Writer, root *ast.Node) error {
	raw, err := json.Marshal(root)
	if err != nil {
		return fmt.Errorf("encode tree: %w", err)
	}

	var tree any
	if err := json.Unmarshal(raw, &tree); err != nil {
		return fmt.Errorf("decode tree: %w", err)
	}

	if err := yaml.NewEncoder(w).Encode(tree); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}

	return nil
}
