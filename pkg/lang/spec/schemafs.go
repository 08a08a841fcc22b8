// Package spec provides the embedded JSON schema for exported syntax trees.
package spec

import "embed"

// ASTSchemaFS contains the embedded AST JSON schema.
//
//go:embed ast-schema.json
var ASTSchemaFS embed.FS

// SchemaPath is the name of the schema file inside [ASTSchemaFS].
const SchemaPath = "ast-schema.json"
