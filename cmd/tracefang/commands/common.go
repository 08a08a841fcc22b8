// Package commands implements the tracefang CLI subcommands.
package commands

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/tracefang/internal/config"
	"github.com/Sumatoshi-tech/tracefang/internal/logging"
	"github.com/Sumatoshi-tech/tracefang/pkg/lang/ast"
	"github.com/Sumatoshi-tech/tracefang/pkg/lang/parser"
	"github.com/Sumatoshi-tech/tracefang/pkg/lang/symtab"
)

// setup loads the configuration named by the inherited --config flag, applies
// the logging flag overrides, and builds the logger.
func setup(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	cfgPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, nil, fmt.Errorf("config flag: %w", err)
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return nil, nil, err
	}

	if level, flagErr := cmd.Flags().GetString("log-level"); flagErr == nil && level != "" {
		cfg.Log.Level = level
	}

	if format, flagErr := cmd.Flags().GetString("log-format"); flagErr == nil && format != "" {
		cfg.Log.Format = format
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	return cfg, logging.New(cfg.Log), nil
}

// noColor reports the inherited --no-color flag.
func noColor(cmd *cobra.Command) bool {
	v, err := cmd.Flags().GetBool("no-color")

	return err == nil && v
}

// readScript returns the script source from path, or stdin for "-".
func readScript(path string) ([]byte, error) {
	if path == "-" {
		src, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}

		return src, nil
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}

	return src, nil
}

// parseScript reads and parses one script file.
func parseScript(path string) ([]byte, *ast.Node, *symtab.Table, error) {
	src, err := readScript(path)
	if err != nil {
		return nil, nil, nil, err
	}

	root, st, err := parser.Parse(bytes.NewReader(src))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return src, root, st, nil
}
