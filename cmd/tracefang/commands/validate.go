package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/xeipuuv/gojsonschema"

	"github.com/Sumatoshi-tech/tracefang/pkg/lang/spec"
)

// ErrValidation is returned when a tree export does not conform to the AST
// schema.
var ErrValidation = errors.New("tree does not conform to the AST schema")

// NewValidateCommand creates and configures the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file.json|->",
		Short: "Validate an exported tree against the AST schema",
		Long: `Validate a JSON tree export against the embedded AST schema.

Examples:
  tracefang dump -f json script.tf | tracefang validate -
  tracefang validate mytree.json
`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	if noColor(cmd) {
		color.NoColor = true //nolint:reassign // intentional override of library global
	}

	raw, err := readScript(args[0])
	if err != nil {
		return err
	}

	var inputData any
	if err := json.Unmarshal(raw, &inputData); err != nil {
		return fmt.Errorf("invalid JSON in %s: %w", args[0], err)
	}

	schemaRaw, err := spec.ASTSchemaFS.ReadFile(spec.SchemaPath)
	if err != nil {
		return fmt.Errorf("load schema: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaRaw),
		gojsonschema.NewGoLoader(inputData),
	)
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}

	if result.Valid() {
		color.New(color.FgGreen).Fprintf(os.Stdout, "tree is valid (%s)\n", args[0])

		return nil
	}

	color.New(color.FgRed).Fprintf(os.Stdout, "tree validation failed (%s)\n", args[0])

	for _, verr := range result.Errors() {
		color.New(color.FgRed).Fprintf(os.Stdout, "  - %s: %s\n", verr.Field(), verr.Description())
	}

	return ErrValidation
}
