// Package main provides the entry point for the tracefang CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/tracefang/cmd/tracefang/commands"
	"github.com/Sumatoshi-tech/tracefang/pkg/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tracefang",
		Short: "Tracefang - tracing-script compiler front-end",
		Long: `Tracefang compiles a small tracing-script language to in-kernel bytecode.

Commands:
  dump      Parse a script and render its syntax tree
  check     Parse a script and verify structural invariants
  stats     Summarize a script's tree and probes
  validate  Validate an exported tree against the AST schema`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("config", "", "config file path")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, or error")
	rootCmd.PersistentFlags().String("log-format", "", "log format: text or json")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")

	// Add commands.
	rootCmd.AddCommand(commands.NewDumpCommand())
	rootCmd.AddCommand(commands.NewCheckCommand())
	rootCmd.AddCommand(commands.NewStatsCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "tracefang %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
