package commands_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/tracefang/cmd/tracefang/commands"
)

const testScript = `
kprobe:vfs_read / pid == 42 / {
	@bytes["r"] = sum(arg(2));
	if (arg(2) > 4096) { hits = hits + 1; }
}
`

// newTestRoot mirrors the persistent flags the real root command carries.
func newTestRoot(subs ...*cobra.Command) *cobra.Command {
	root := &cobra.Command{Use: "tracefang", SilenceUsage: true, SilenceErrors: true}
	root.PersistentFlags().String("config", "", "config file path")
	root.PersistentFlags().String("log-level", "", "log level")
	root.PersistentFlags().String("log-format", "", "log format")
	root.PersistentFlags().Bool("no-color", false, "disable colored output")
	root.AddCommand(subs...)

	return root
}

func writeScript(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "script.tf")
	require.NoError(t, os.WriteFile(path, []byte(testScript), 0o600))

	return path
}

func execute(t *testing.T, root *cobra.Command, args ...string) error {
	t.Helper()

	root.SetArgs(args)

	return root.Execute()
}

func TestDumpCommand_Tree(t *testing.T) {
	script := writeScript(t)
	out := filepath.Join(t.TempDir(), "tree.txt")

	root := newTestRoot(commands.NewDumpCommand())
	require.NoError(t, execute(t, root, "dump", "-f", "tree", "-o", out, script))

	raw, err := os.ReadFile(out)
	require.NoError(t, err)

	text := string(raw)
	assert.Contains(t, text, "kprobe:vfs_read")
	assert.Contains(t, text, "@bytes")
	assert.Contains(t, text, "== ")
	assert.Contains(t, text, "loc:nowhere")
}

func TestDumpCommand_JSONValidates(t *testing.T) {
	script := writeScript(t)
	out := filepath.Join(t.TempDir(), "tree.json")

	root := newTestRoot(commands.NewDumpCommand(), commands.NewValidateCommand())
	require.NoError(t, execute(t, root, "dump", "-f", "json", "-o", out, script))

	// The exported tree round-trips through the schema validator.
	require.NoError(t, execute(t, root, "validate", out))
}

func TestDumpCommand_YAML(t *testing.T) {
	script := writeScript(t)
	out := filepath.Join(t.TempDir(), "tree.yaml")

	root := newTestRoot(commands.NewDumpCommand())
	require.NoError(t, execute(t, root, "dump", "-f", "yaml", "-o", out, script))

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "kind: script")
}

func TestDumpCommand_RejectsUnknownFormat(t *testing.T) {
	script := writeScript(t)

	root := newTestRoot(commands.NewDumpCommand())
	require.Error(t, execute(t, root, "dump", "-f", "dot", script))
}

func TestCheckCommand(t *testing.T) {
	script := writeScript(t)

	root := newTestRoot(commands.NewCheckCommand())
	require.NoError(t, execute(t, root, "check", "--no-color", script))
}

func TestCheckCommand_SyntaxError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.tf")
	require.NoError(t, os.WriteFile(path, []byte("kprobe:f { x = ; }"), 0o600))

	root := newTestRoot(commands.NewCheckCommand())
	require.Error(t, execute(t, root, "check", "--no-color", path))
}

func TestCheckCommand_UnknownProvider(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.tf")
	require.NoError(t, os.WriteFile(path, []byte("uprobe:/bin/sh:main { return; }"), 0o600))

	root := newTestRoot(commands.NewCheckCommand())
	require.Error(t, execute(t, root, "check", "--no-color", path))
}

func TestStatsCommand(t *testing.T) {
	script := writeScript(t)

	root := newTestRoot(commands.NewStatsCommand())
	require.NoError(t, execute(t, root, "stats", script))
}

func TestValidateCommand_RejectsMalformedTree(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"kind":"spaceship"}`), 0o600))

	root := newTestRoot(commands.NewValidateCommand())
	err := execute(t, root, "validate", "--no-color", path)
	require.ErrorIs(t, err, commands.ErrValidation)
}
